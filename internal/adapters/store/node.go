package store

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/biofind/internal/core/ports"
)

// NodeID is the graft node that provides the ports.SnapshotStore.
const NodeID graft.ID = "adapter.snapshot_store"

func init() {
	graft.Register(graft.Node[ports.SnapshotStore]{
		ID:        NodeID,
		Cacheable: true,
		Run: func(_ context.Context) (ports.SnapshotStore, error) {
			return NewStore(), nil
		},
	})
}
