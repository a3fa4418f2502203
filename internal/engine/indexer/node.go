package indexer

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/biofind/internal/adapters/fs"                 //nolint:depguard // Wired in engine wiring
	"go.trai.ch/biofind/internal/adapters/logger"             //nolint:depguard // Wired in engine wiring
	"go.trai.ch/biofind/internal/adapters/store"              //nolint:depguard // Wired in engine wiring
	"go.trai.ch/biofind/internal/adapters/telemetry/progrock" //nolint:depguard // Wired in engine wiring
	"go.trai.ch/biofind/internal/core/ports"
)

// NodeID is the unique identifier for the indexer Graft node.
const NodeID graft.ID = "engine.indexer"

func init() {
	graft.Register(graft.Node[*Builder]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			fs.ScannerNodeID,
			store.NodeID,
			fs.HasherNodeID,
			progrock.NodeID,
			logger.NodeID,
		},
		Run: func(ctx context.Context) (*Builder, error) {
			scanner, err := graft.Dep[ports.Scanner](ctx)
			if err != nil {
				return nil, err
			}

			snapshots, err := graft.Dep[ports.SnapshotStore](ctx)
			if err != nil {
				return nil, err
			}

			hasher, err := graft.Dep[ports.Hasher](ctx)
			if err != nil {
				return nil, err
			}

			telemetry, err := graft.Dep[ports.Telemetry](ctx)
			if err != nil {
				return nil, err
			}

			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}

			return NewBuilder(scanner, snapshots, hasher, telemetry, log), nil
		},
	})
}
