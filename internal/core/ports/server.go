package ports

import (
	"context"

	"go.trai.ch/biofind/internal/core/domain"
)

// ToolServer exposes a catalog to tool-calling clients.
//
//go:generate mockgen -source=server.go -destination=mocks/mock_server.go -package=mocks
type ToolServer interface {
	// Serve answers requests on the server's transport until ctx is done.
	Serve(ctx context.Context, catalog Catalog, defaults domain.ResolveOptions) error
}
