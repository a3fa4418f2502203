// Package wiring registers all Graft nodes for the application.
package wiring

import (
	// Register adapter nodes.
	_ "go.trai.ch/biofind/internal/adapters/config"
	_ "go.trai.ch/biofind/internal/adapters/fs"
	_ "go.trai.ch/biofind/internal/adapters/logger"
	_ "go.trai.ch/biofind/internal/adapters/mcpserver"
	_ "go.trai.ch/biofind/internal/adapters/store"
	_ "go.trai.ch/biofind/internal/adapters/telemetry/progrock"
	_ "go.trai.ch/biofind/internal/adapters/watcher"
	// Register app and engine nodes.
	_ "go.trai.ch/biofind/internal/app"
	_ "go.trai.ch/biofind/internal/engine/catalog"
	_ "go.trai.ch/biofind/internal/engine/indexer"
)
