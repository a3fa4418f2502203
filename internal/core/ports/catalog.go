package ports

import (
	"context"

	"go.trai.ch/biofind/internal/core/domain"
)

// Catalog serves queries from the live snapshot of a process.
//
//go:generate mockgen -source=catalog.go -destination=mocks/mock_catalog.go -package=mocks
type Catalog interface {
	// Snapshot returns the live snapshot, or domain.ErrNoSnapshot before the first load.
	Snapshot() (*domain.Snapshot, error)
	// Resolve answers queries against a single, consistent snapshot.
	Resolve(queries []string, opts domain.ResolveOptions) (domain.ResolutionResult, error)
	// Load reads the snapshot at path, publishes it, and remembers path for Reload.
	// It reports whether the live snapshot changed.
	Load(ctx context.Context, path string) (bool, error)
	// Reload loads the remembered snapshot file again and publishes it.
	// It reports whether the live snapshot changed.
	Reload(ctx context.Context) (bool, error)
}
