// Package ports defines the core interfaces for the application.
package ports

import (
	"context"

	"go.trai.ch/biofind/internal/core/domain"
)

// Scanner lists the immediate children of a repository root.
//
//go:generate go run go.uber.org/mock/mockgen -source=scanner.go -destination=mocks/mock_scanner.go -package=mocks
type Scanner interface {
	// Scan returns one entry per readable child of root, in listing order.
	//
	// Children that cannot be stat'd are skipped and reported as diagnostics.
	// Failing to open root itself is returned as an error.
	// workers bounds the number of concurrent stat calls; zero means one per CPU.
	Scan(ctx context.Context, root string, workers int) (*domain.ScanResult, error)
}
