// Package catalog holds the live snapshot of a serving process.
package catalog

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"go.trai.ch/biofind/internal/core/domain"
	"go.trai.ch/biofind/internal/core/ports"
	"go.trai.ch/zerr"
	"golang.org/x/sync/singleflight"
)

var _ ports.Catalog = (*Catalog)(nil)

// generation is one published snapshot together with its fingerprint.
// Both are swapped as a unit.
type generation struct {
	snap        *domain.Snapshot
	fingerprint string
}

// Catalog publishes snapshots through a single atomic pointer. Readers never
// lock; a reload builds the new generation off to the side and swaps it in.
type Catalog struct {
	store  ports.SnapshotStore
	hasher ports.Hasher
	logger ports.Logger

	current atomic.Pointer[generation]
	group   singleflight.Group
	// requests counts load requests. A load records the count it started
	// at, so a caller knows whether the read it shared began after its own
	// request.
	requests atomic.Uint64

	mu   sync.Mutex
	path string
}

// New creates an empty Catalog.
func New(store ports.SnapshotStore, hasher ports.Hasher, logger ports.Logger) *Catalog {
	return &Catalog{
		store:  store,
		hasher: hasher,
		logger: logger,
	}
}

// Snapshot returns the live snapshot.
func (c *Catalog) Snapshot() (*domain.Snapshot, error) {
	g := c.current.Load()
	if g == nil {
		return nil, domain.ErrNoSnapshot
	}
	return g.snap, nil
}

// Resolve answers queries against the snapshot live at the time of the call.
func (c *Catalog) Resolve(queries []string, opts domain.ResolveOptions) (domain.ResolutionResult, error) {
	var snap *domain.Snapshot
	if g := c.current.Load(); g != nil {
		snap = g.snap
	}
	return domain.Resolve(queries, snap, opts)
}

// Load reads the snapshot at path and publishes it. Later calls to Reload
// read the same path.
func (c *Catalog) Load(ctx context.Context, path string) (bool, error) {
	c.mu.Lock()
	c.path = path
	c.mu.Unlock()

	return c.load(ctx, path)
}

// Reload reads the snapshot file given to Load again. Concurrent reloads
// share one read, but a reload requested while a read is already under way
// waits for it and reads the file once more. The live snapshot is kept when
// the file cannot be loaded.
func (c *Catalog) Reload(ctx context.Context) (bool, error) {
	c.mu.Lock()
	path := c.path
	c.mu.Unlock()

	if path == "" {
		return false, zerr.Wrap(domain.ErrNoSnapshot, "reload before load")
	}
	return c.load(ctx, path)
}

type outcome struct {
	changed bool
	started uint64
}

func (c *Catalog) load(ctx context.Context, path string) (bool, error) {
	want := c.requests.Add(1)
	changed := false

	for {
		ch := c.group.DoChan(path, func() (any, error) {
			started := c.requests.Load()
			ok, err := c.publish(path)
			return outcome{changed: ok, started: started}, err
		})

		var res singleflight.Result
		select {
		case <-ctx.Done():
			return false, ctx.Err()
		case res = <-ch:
		}

		out, _ := res.Val.(outcome)
		if out.started < want {
			// The shared read began before this request and may have seen
			// an older file.
			changed = changed || out.changed
			continue
		}
		if res.Err != nil {
			return false, res.Err
		}
		return changed || out.changed, nil
	}
}

// publish loads path and swaps it in unless its content equals the live snapshot.
func (c *Catalog) publish(path string) (bool, error) {
	snap, err := c.store.Load(path)
	if err != nil {
		return false, err
	}

	next := &generation{snap: snap, fingerprint: c.hasher.ComputeSnapshotHash(snap)}
	if prev := c.current.Load(); prev != nil && prev.fingerprint == next.fingerprint {
		return false, nil
	}

	c.current.Store(next)
	c.logger.Info(fmt.Sprintf("loaded snapshot %s: %d entries, %d tools (generated %s)",
		path, snap.EntryCount, len(snap.ToolNames), snap.GeneratedAt.Format(time.RFC3339)))
	return true, nil
}
