package fs

import (
	"encoding/binary"
	"fmt"
	"math"

	"github.com/cespare/xxhash/v2"
	"go.trai.ch/biofind/internal/core/domain"
	"go.trai.ch/biofind/internal/core/ports"
)

var _ ports.Hasher = (*Hasher)(nil)

// Hasher provides hashing functionality for snapshots.
type Hasher struct{}

// NewHasher creates a new Hasher.
func NewHasher() *Hasher {
	return &Hasher{}
}

// ComputeSnapshotHash computes a single XXHash over the root, every entry in
// order, and the tool name set. GeneratedAt is left out so two scans of an
// unchanged repository hash the same.
func (h *Hasher) ComputeSnapshotHash(snap *domain.Snapshot) string {
	hasher := xxhash.New()

	_, _ = hasher.WriteString(snap.Root)
	_, _ = hasher.Write([]byte{0})

	for i := range snap.Entries {
		h.hashEntry(&snap.Entries[i], hasher)
	}
	_, _ = hasher.Write([]byte{0}) // Section separator

	for _, name := range snap.ToolNames {
		_, _ = hasher.WriteString(name)
		_, _ = hasher.Write([]byte{0})
	}
	_, _ = hasher.Write([]byte{0})

	return fmt.Sprintf("%016x", hasher.Sum64())
}

// hashEntry hashes the entry fields. A missing tag and an empty tag hash differently.
func (h *Hasher) hashEntry(e *domain.Entry, hasher *xxhash.Digest) {
	_, _ = hasher.WriteString(e.EntryName)
	_, _ = hasher.Write([]byte{0})
	_, _ = hasher.WriteString(e.ToolName)
	_, _ = hasher.Write([]byte{0})
	if e.Tag != nil {
		_, _ = hasher.Write([]byte{1})
		_, _ = hasher.WriteString(*e.Tag)
	}
	_, _ = hasher.Write([]byte{0})
	_, _ = hasher.WriteString(e.Path)
	_, _ = hasher.Write([]byte{0})

	var buf [16]byte
	binary.LittleEndian.PutUint64(buf[:8], uint64(e.SizeBytes)) //nolint:gosec // Sizes are never negative
	binary.LittleEndian.PutUint64(buf[8:], math.Float64bits(e.MTime))
	_, _ = hasher.Write(buf[:])
}
