// Package store persists snapshots as a single JSON document.
package store

import (
	"encoding/json"
	"errors"
	iofs "io/fs"
	"os"
	"path/filepath"
	"unicode/utf8"

	"go.trai.ch/biofind/internal/core/domain"
	"go.trai.ch/biofind/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.SnapshotStore = (*Store)(nil)

// Store implements ports.SnapshotStore using a flat JSON file.
type Store struct{}

// NewStore creates a new Store.
func NewStore() *Store {
	return &Store{}
}

// Save writes snap to path. The document is written to a temporary file in
// the same directory and renamed over path, so readers see either the old
// file or the complete new one.
func (s *Store) Save(path string, snap *domain.Snapshot) (err error) {
	if snap == nil {
		return domain.Kind(domain.ErrValidation, zerr.New("snapshot is nil"))
	}
	if err := checkText(snap); err != nil {
		return err
	}
	path = filepath.Clean(path)
	dir := filepath.Dir(path)

	if err := os.MkdirAll(dir, domain.DirPerm); err != nil {
		return writeError(err, "failed to create snapshot directory", dir)
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return writeError(err, "failed to create temporary snapshot", dir)
	}
	tmpName := tmp.Name()
	defer func() {
		if err != nil {
			_ = tmp.Close()
			_ = os.Remove(tmpName)
		}
	}()

	enc := json.NewEncoder(tmp)
	enc.SetIndent("", "  ")
	if err := enc.Encode(snap); err != nil {
		return writeError(err, "failed to encode snapshot", tmpName)
	}
	if err := tmp.Sync(); err != nil {
		return writeError(err, "failed to sync snapshot", tmpName)
	}
	if err := tmp.Close(); err != nil {
		return writeError(err, "failed to close snapshot", tmpName)
	}
	if err := os.Chmod(tmpName, domain.FilePerm); err != nil {
		return writeError(err, "failed to set snapshot permissions", tmpName)
	}
	if err := os.Rename(tmpName, path); err != nil {
		return writeError(err, "failed to replace snapshot", path)
	}

	return nil
}

// Load reads and validates the snapshot at path. A missing file is
// ErrNotFound; anything unreadable, malformed or inconsistent is
// ErrCacheCorrupt.
func (s *Store) Load(path string) (*domain.Snapshot, error) {
	path = filepath.Clean(path)

	//nolint:gosec // Path is cleaned and provided by trusted caller
	data, err := os.ReadFile(path)
	if err != nil {
		wrapped := zerr.With(zerr.Wrap(err, "failed to read snapshot"), "path", path)
		switch {
		case errors.Is(err, iofs.ErrNotExist):
			return nil, domain.Kind(domain.ErrNotFound, wrapped)
		case errors.Is(err, iofs.ErrPermission):
			return nil, domain.Kind(domain.ErrCacheCorrupt, domain.Kind(domain.ErrPermission, wrapped))
		default:
			return nil, domain.Kind(domain.ErrCacheCorrupt, wrapped)
		}
	}

	snap, err := decode(data)
	if err != nil {
		return nil, zerr.With(err, "path", path)
	}
	if err := snap.Validate(); err != nil {
		return nil, zerr.With(err, "path", path)
	}
	return snap, nil
}

// checkText rejects strings that JSON encoding would rewrite, since the
// rewritten document would no longer match its own tool_names.
func checkText(snap *domain.Snapshot) error {
	if !utf8.ValidString(snap.Root) {
		return domain.Kind(domain.ErrValidation, zerr.New("root is not valid UTF-8"))
	}
	for i, e := range snap.Entries {
		if !utf8.ValidString(e.EntryName) || !utf8.ValidString(e.Path) {
			err := zerr.With(zerr.New("entry is not valid UTF-8"), "index", i)
			return domain.Kind(domain.ErrValidation, err)
		}
	}
	return nil
}

func writeError(err error, msg, path string) error {
	wrapped := zerr.With(zerr.Wrap(err, msg), "path", path)
	if errors.Is(err, iofs.ErrPermission) {
		return domain.Kind(domain.ErrPermission, wrapped)
	}
	return wrapped
}
