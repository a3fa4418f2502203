// Package fs provides file system adapters for listing and fingerprinting repositories.
package fs

import (
	"context"
	"errors"
	iofs "io/fs"
	"os"
	"path/filepath"
	"runtime"
	"unicode/utf8"

	"go.trai.ch/biofind/internal/core/domain"
	"go.trai.ch/biofind/internal/core/ports"
	"go.trai.ch/zerr"
	"golang.org/x/sync/errgroup"
)

var _ ports.Scanner = (*Scanner)(nil)

// Scanner lists a repository root one level deep. Sub-directories are
// reported as opaque entries and never traversed.
type Scanner struct {
	logger ports.Logger
}

// NewScanner creates a new Scanner.
func NewScanner(logger ports.Logger) *Scanner {
	return &Scanner{logger: logger}
}

type child struct {
	entry domain.Entry
	diag  *domain.ScanDiagnostic
}

// Scan returns one entry per immediate child of root, in directory listing order.
func (s *Scanner) Scan(ctx context.Context, root string, workers int) (*domain.ScanResult, error) {
	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, "failed to resolve root"), "root", root)
	}

	info, err := os.Stat(abs)
	if err != nil {
		return nil, classify(err, "failed to stat root", abs)
	}
	if !info.IsDir() {
		return nil, domain.Kind(domain.ErrValidation, zerr.With(zerr.New("root is not a directory"), "root", abs))
	}

	dirents, err := os.ReadDir(abs)
	if err != nil {
		return nil, classify(err, "failed to list root", abs)
	}

	if workers <= 0 {
		workers = runtime.NumCPU()
	}

	// Stat calls run concurrently, each writing its own slot, so the output
	// keeps the listing order.
	children := make([]child, len(dirents))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i, d := range dirents {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			children[i] = statChild(abs, d.Name())
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, zerr.With(zerr.Wrap(err, "scan interrupted"), "root", abs)
	}

	result := &domain.ScanResult{
		Root:    abs,
		Entries: make([]domain.Entry, 0, len(children)),
	}
	for _, c := range children {
		if c.diag != nil {
			result.Diagnostics = append(result.Diagnostics, *c.diag)
			s.logger.Warn("skipping unreadable entry: " + c.diag.Error())
			continue
		}
		result.Entries = append(result.Entries, c.entry)
	}

	return result, nil
}

// statChild follows symlinks so a link to a build reports the size of its target.
// Names that are not valid UTF-8 cannot be stored in the snapshot document
// and are reported as diagnostics.
func statChild(root, name string) child {
	path := filepath.Join(root, name)
	if !utf8.ValidString(name) {
		err := zerr.With(zerr.New("entry name is not valid UTF-8"), "path", path)
		return child{diag: &domain.ScanDiagnostic{
			Name: name,
			Path: path,
			Err:  domain.Kind(domain.ErrValidation, err),
		}}
	}
	info, err := os.Stat(path)
	if err != nil {
		return child{diag: &domain.ScanDiagnostic{
			Name: name,
			Path: path,
			Err:  classify(err, "failed to stat entry", path),
		}}
	}
	return child{entry: domain.NewEntry(name, path, info.Size(), info.ModTime())}
}

// classify tags filesystem errors with the matching domain error kind.
func classify(err error, msg, path string) error {
	wrapped := zerr.With(zerr.Wrap(err, msg), "path", path)
	switch {
	case errors.Is(err, iofs.ErrNotExist):
		return domain.Kind(domain.ErrNotFound, wrapped)
	case errors.Is(err, iofs.ErrPermission):
		return domain.Kind(domain.ErrPermission, wrapped)
	default:
		return wrapped
	}
}
