package ports

import "go.trai.ch/biofind/internal/core/domain"

// Hasher defines the interface for computing hashes.
//
//go:generate mockgen -destination=mocks/hasher_mock.go -package=mocks -source=hasher.go
type Hasher interface {
	// ComputeSnapshotHash fingerprints the content of a snapshot, ignoring its timestamp.
	ComputeSnapshotHash(snap *domain.Snapshot) string
}
