package ports

import "go.trai.ch/biofind/internal/core/domain"

// SnapshotStore persists snapshots as single documents.
//
//go:generate go run go.uber.org/mock/mockgen -source=store.go -destination=mocks/mock_store.go -package=mocks
type SnapshotStore interface {
	// Save replaces the document at path atomically, creating parent directories.
	Save(path string, snap *domain.Snapshot) error
	// Load reads and validates the document at path.
	Load(path string) (*domain.Snapshot, error)
}
