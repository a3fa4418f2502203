package fs

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/biofind/internal/adapters/logger"
	"go.trai.ch/biofind/internal/core/ports"
)

const (
	ScannerNodeID graft.ID = "adapter.fs.scanner"
	HasherNodeID  graft.ID = "adapter.fs.hasher"
)

func init() {
	// Scanner Node
	graft.Register(graft.Node[ports.Scanner]{
		ID:        ScannerNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{logger.NodeID},
		Run: func(ctx context.Context) (ports.Scanner, error) {
			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}
			return NewScanner(log), nil
		},
	})

	// Hasher Node
	graft.Register(graft.Node[ports.Hasher]{
		ID:        HasherNodeID,
		Cacheable: true,
		Run: func(_ context.Context) (ports.Hasher, error) {
			return NewHasher(), nil
		},
	})
}
