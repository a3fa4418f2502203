package app

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/biofind/internal/adapters/config"             //nolint:depguard // Wired in app layer
	"go.trai.ch/biofind/internal/adapters/fs"                 //nolint:depguard // Wired in app layer
	"go.trai.ch/biofind/internal/adapters/logger"             //nolint:depguard // Wired in app layer
	"go.trai.ch/biofind/internal/adapters/mcpserver"          //nolint:depguard // Wired in app layer
	"go.trai.ch/biofind/internal/adapters/telemetry/progrock" //nolint:depguard // Wired in app layer
	"go.trai.ch/biofind/internal/adapters/watcher"            //nolint:depguard // Wired in app layer
	"go.trai.ch/biofind/internal/core/ports"
	"go.trai.ch/biofind/internal/engine/catalog"
	"go.trai.ch/biofind/internal/engine/indexer"
)

const (
	// AppNodeID is the unique identifier for the main App Graft node.
	AppNodeID graft.ID = "app.main"
	// ComponentsNodeID is the unique identifier for the App components Graft node.
	ComponentsNodeID graft.ID = "app.components"
)

func init() {
	// App Node
	graft.Register(graft.Node[*App]{
		ID:        AppNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			config.NodeID,
			logger.NodeID,
			fs.ScannerNodeID,
			indexer.NodeID,
			catalog.NodeID,
			watcher.NodeID,
			mcpserver.NodeID,
		},
		Run: runAppNode,
	})

	// Components Node
	graft.Register(graft.Node[*Components]{
		ID:        ComponentsNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			AppNodeID,
			logger.NodeID,
			progrock.NodeID,
		},
		Run: func(ctx context.Context) (*Components, error) {
			app, err := graft.Dep[*App](ctx)
			if err != nil {
				return nil, err
			}

			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}

			telemetry, err := graft.Dep[ports.Telemetry](ctx)
			if err != nil {
				return nil, err
			}

			return NewComponents(app, log, telemetry), nil
		},
	})
}

func runAppNode(ctx context.Context) (*App, error) {
	loader, err := graft.Dep[ports.ConfigLoader](ctx)
	if err != nil {
		return nil, err
	}

	log, err := graft.Dep[ports.Logger](ctx)
	if err != nil {
		return nil, err
	}

	scanner, err := graft.Dep[ports.Scanner](ctx)
	if err != nil {
		return nil, err
	}

	builder, err := graft.Dep[*indexer.Builder](ctx)
	if err != nil {
		return nil, err
	}

	cat, err := graft.Dep[ports.Catalog](ctx)
	if err != nil {
		return nil, err
	}

	watch, err := graft.Dep[ports.Watcher](ctx)
	if err != nil {
		return nil, err
	}

	server, err := graft.Dep[ports.ToolServer](ctx)
	if err != nil {
		return nil, err
	}

	return New(loader, log, scanner, builder, cat, watch, server), nil
}
