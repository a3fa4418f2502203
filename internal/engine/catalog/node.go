package catalog

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/biofind/internal/adapters/fs"     //nolint:depguard // Wired in engine wiring
	"go.trai.ch/biofind/internal/adapters/logger" //nolint:depguard // Wired in engine wiring
	"go.trai.ch/biofind/internal/adapters/store"  //nolint:depguard // Wired in engine wiring
	"go.trai.ch/biofind/internal/core/ports"
)

// NodeID is the unique identifier for the catalog Graft node.
const NodeID graft.ID = "engine.catalog"

func init() {
	graft.Register(graft.Node[ports.Catalog]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			store.NodeID,
			fs.HasherNodeID,
			logger.NodeID,
		},
		Run: func(ctx context.Context) (ports.Catalog, error) {
			snapshots, err := graft.Dep[ports.SnapshotStore](ctx)
			if err != nil {
				return nil, err
			}

			hasher, err := graft.Dep[ports.Hasher](ctx)
			if err != nil {
				return nil, err
			}

			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}

			return New(snapshots, hasher, log), nil
		},
	})
}
