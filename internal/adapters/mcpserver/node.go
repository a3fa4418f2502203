package mcpserver

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/biofind/internal/adapters/logger"
	"go.trai.ch/biofind/internal/core/ports"
)

// NodeID is the unique identifier for the MCP server Graft node.
const NodeID graft.ID = "adapter.mcpserver"

func init() {
	graft.Register(graft.Node[ports.ToolServer]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{logger.NodeID},
		Run: func(ctx context.Context) (ports.ToolServer, error) {
			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}
			return NewServer(log), nil
		},
	})
}
