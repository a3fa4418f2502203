// Package watcher reloads the snapshot when its file is replaced on disk.
package watcher

import (
	"context"
	"errors"
	iofs "io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.trai.ch/biofind/internal/core/domain"
	"go.trai.ch/biofind/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.Watcher = (*Watcher)(nil)

// Watcher implements ports.Watcher using fsnotify.
type Watcher struct {
	logger ports.Logger
}

// NewWatcher creates a new file watcher.
func NewWatcher(logger ports.Logger) *Watcher {
	return &Watcher{logger: logger}
}

// Watch calls onChange after path is written, created or renamed into place
// and no further event arrived for debounce. The parent directory is watched
// because the indexer replaces the file by renaming over it, which ends any
// watch held on the old file. Watch blocks until ctx is done.
func (w *Watcher) Watch(ctx context.Context, path string, debounce time.Duration, onChange func(context.Context)) error {
	target, err := filepath.Abs(path)
	if err != nil {
		return zerr.With(zerr.Wrap(err, "failed to resolve watched path"), "path", path)
	}
	dir := filepath.Dir(target)

	if err := os.MkdirAll(dir, domain.DirPerm); err != nil {
		return w.classify(err, dir)
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return zerr.Wrap(err, "failed to create file watcher")
	}
	defer func() { _ = fsw.Close() }()

	if err := fsw.Add(dir); err != nil {
		return w.classify(err, dir)
	}

	debouncer := NewDebouncer(debounce, func([]string) {
		if ctx.Err() == nil {
			onChange(ctx)
		}
	})
	defer debouncer.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-fsw.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != target || !relevant(event.Op) {
				continue
			}
			debouncer.Add(event.Name)
		case err, ok := <-fsw.Errors:
			if !ok {
				return nil
			}
			w.logger.Warn("snapshot watcher: " + err.Error())
		}
	}
}

// relevant reports whether op can leave a new snapshot at the watched path.
// Remove and chmod events are ignored: a removed snapshot keeps the live one.
func relevant(op fsnotify.Op) bool {
	return op.Has(fsnotify.Create) || op.Has(fsnotify.Write) || op.Has(fsnotify.Rename)
}

func (w *Watcher) classify(err error, dir string) error {
	wrapped := zerr.With(zerr.Wrap(err, "failed to watch snapshot directory"), "path", dir)
	switch {
	case errors.Is(err, iofs.ErrNotExist):
		return domain.Kind(domain.ErrNotFound, wrapped)
	case errors.Is(err, iofs.ErrPermission):
		return domain.Kind(domain.ErrPermission, wrapped)
	default:
		return wrapped
	}
}
