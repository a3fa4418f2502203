package catalog_test

import (
	"context"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/biofind/internal/core/domain"
	"go.trai.ch/biofind/internal/core/ports/mocks"
	"go.trai.ch/biofind/internal/engine/catalog"
	"go.uber.org/mock/gomock"
)

func snapshotOf(names ...string) *domain.Snapshot {
	entries := make([]domain.Entry, len(names))
	for i, n := range names {
		entries[i] = domain.NewEntry(n, "/repo/"+n, 1, time.Unix(0, 0))
	}
	return domain.NewSnapshot("/repo", entries, time.Now())
}

type fixture struct {
	store  *mocks.MockSnapshotStore
	hasher *mocks.MockHasher
	log    *mocks.MockLogger
	cat    *catalog.Catalog
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	ctrl := gomock.NewController(t)
	f := &fixture{
		store:  mocks.NewMockSnapshotStore(ctrl),
		hasher: mocks.NewMockHasher(ctrl),
		log:    mocks.NewMockLogger(ctrl),
	}
	f.log.EXPECT().Info(gomock.Any()).AnyTimes()
	f.cat = catalog.New(f.store, f.hasher, f.log)
	return f
}

func TestCatalog_Empty(t *testing.T) {
	f := newFixture(t)

	_, err := f.cat.Snapshot()
	assert.ErrorIs(t, err, domain.ErrNoSnapshot)

	_, err = f.cat.Resolve([]string{"bwa"}, domain.DefaultResolveOptions())
	assert.ErrorIs(t, err, domain.ErrNoSnapshot)

	res, err := f.cat.Resolve(nil, domain.DefaultResolveOptions())
	require.NoError(t, err)
	assert.Equal(t, domain.EmptyResolution(), res)

	_, err = f.cat.Reload(context.Background())
	assert.ErrorIs(t, err, domain.ErrNoSnapshot)
}

func TestCatalog_LoadAndResolve(t *testing.T) {
	f := newFixture(t)
	snap := snapshotOf("bwa:0.7", "samtools:1.21", "star:2.7")

	f.store.EXPECT().Load("/cache/snapshot.json").Return(snap, nil)
	f.hasher.EXPECT().ComputeSnapshotHash(snap).Return("h1")

	changed, err := f.cat.Load(context.Background(), "/cache/snapshot.json")
	require.NoError(t, err)
	assert.True(t, changed)

	got, err := f.cat.Snapshot()
	require.NoError(t, err)
	assert.Same(t, snap, got)

	res, err := f.cat.Resolve([]string{"BWA", "samtool"}, domain.DefaultResolveOptions())
	require.NoError(t, err)
	assert.Equal(t, []string{"BWA"}, res.Found)
	assert.Equal(t, map[string][]string{"samtool": {"samtools"}}, res.Suggestions)
}

func TestCatalog_ReloadSkipsUnchanged(t *testing.T) {
	f := newFixture(t)
	first := snapshotOf("bwa:0.7")
	same := snapshotOf("bwa:0.7")
	next := snapshotOf("bwa:0.7", "star:2.7")

	gomock.InOrder(
		f.store.EXPECT().Load("/cache/snapshot.json").Return(first, nil),
		f.store.EXPECT().Load("/cache/snapshot.json").Return(same, nil),
		f.store.EXPECT().Load("/cache/snapshot.json").Return(next, nil),
	)
	f.hasher.EXPECT().ComputeSnapshotHash(first).Return("h1")
	f.hasher.EXPECT().ComputeSnapshotHash(same).Return("h1")
	f.hasher.EXPECT().ComputeSnapshotHash(next).Return("h2")

	ctx := context.Background()
	_, err := f.cat.Load(ctx, "/cache/snapshot.json")
	require.NoError(t, err)

	changed, err := f.cat.Reload(ctx)
	require.NoError(t, err)
	assert.False(t, changed)
	got, _ := f.cat.Snapshot()
	assert.Same(t, first, got, "identical content keeps the live generation")

	changed, err = f.cat.Reload(ctx)
	require.NoError(t, err)
	assert.True(t, changed)
	got, _ = f.cat.Snapshot()
	assert.Same(t, next, got)
}

func TestCatalog_ReloadFailureKeepsLive(t *testing.T) {
	f := newFixture(t)
	snap := snapshotOf("bwa:0.7")

	gomock.InOrder(
		f.store.EXPECT().Load("/cache/snapshot.json").Return(snap, nil),
		f.store.EXPECT().Load("/cache/snapshot.json").Return(nil, domain.ErrCacheCorrupt),
	)
	f.hasher.EXPECT().ComputeSnapshotHash(snap).Return("h1")

	ctx := context.Background()
	_, err := f.cat.Load(ctx, "/cache/snapshot.json")
	require.NoError(t, err)

	_, err = f.cat.Reload(ctx)
	require.ErrorIs(t, err, domain.ErrCacheCorrupt)

	got, err := f.cat.Snapshot()
	require.NoError(t, err)
	assert.Same(t, snap, got)
}

func TestCatalog_LoadCancelled(t *testing.T) {
	f := newFixture(t)
	release := make(chan struct{})
	f.store.EXPECT().Load(gomock.Any()).DoAndReturn(func(string) (*domain.Snapshot, error) {
		<-release
		return snapshotOf("bwa"), nil
	})
	finished := make(chan struct{})
	f.hasher.EXPECT().ComputeSnapshotHash(gomock.Any()).DoAndReturn(func(*domain.Snapshot) string {
		close(finished)
		return "h1"
	})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := f.cat.Load(ctx, "/cache/snapshot.json")
	assert.ErrorIs(t, err, context.Canceled)

	// The abandoned load still completes in the background.
	close(release)
	<-finished
	require.Eventually(t, func() bool {
		_, err := f.cat.Snapshot()
		return err == nil
	}, time.Second, 10*time.Millisecond)
}

// disk is a snapshot file whose content tests replace while a load reads it.
type disk struct {
	mu   sync.Mutex
	snap *domain.Snapshot
}

func (d *disk) set(snap *domain.Snapshot) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.snap = snap
}

func (d *disk) read() *domain.Snapshot {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.snap
}

// hashByTools fingerprints a snapshot by its tool names.
func hashByTools(snap *domain.Snapshot) string {
	return strings.Join(snap.ToolNames, ",")
}

func TestCatalog_ReloadAfterReplaceDuringLoad(t *testing.T) {
	f := newFixture(t)
	f.hasher.EXPECT().ComputeSnapshotHash(gomock.Any()).DoAndReturn(hashByTools).AnyTimes()

	file := &disk{snap: snapshotOf("bwa:0.7")}
	started := make(chan struct{})
	release := make(chan struct{})
	var calls atomic.Int32
	f.store.EXPECT().Load("/cache/snapshot.json").DoAndReturn(func(string) (*domain.Snapshot, error) {
		snap := file.read()
		if calls.Add(1) == 2 {
			close(started)
			<-release
		}
		return snap, nil
	}).MinTimes(3)

	ctx := context.Background()
	_, err := f.cat.Load(ctx, "/cache/snapshot.json")
	require.NoError(t, err)

	file.set(snapshotOf("bwa:0.7", "star:2.7"))
	first := make(chan error, 1)
	go func() {
		_, err := f.cat.Reload(ctx)
		first <- err
	}()
	<-started

	// The first reload already read the file; replace it again and ask for
	// another reload while that read is still being published.
	file.set(snapshotOf("bwa:0.7", "samtools:1.21", "star:2.7"))
	second := make(chan error, 1)
	go func() {
		_, err := f.cat.Reload(ctx)
		second <- err
	}()
	time.Sleep(50 * time.Millisecond)
	close(release)

	require.NoError(t, <-first)
	require.NoError(t, <-second)

	got, err := f.cat.Snapshot()
	require.NoError(t, err)
	assert.Equal(t, []string{"bwa", "samtools", "star"}, got.ToolNames)
}

func TestCatalog_ConcurrentReloadsShareReads(t *testing.T) {
	f := newFixture(t)
	f.hasher.EXPECT().ComputeSnapshotHash(gomock.Any()).DoAndReturn(hashByTools).AnyTimes()

	file := &disk{snap: snapshotOf("bwa:0.7")}
	started := make(chan struct{})
	release := make(chan struct{})
	var calls atomic.Int32
	f.store.EXPECT().Load("/cache/snapshot.json").DoAndReturn(func(string) (*domain.Snapshot, error) {
		snap := file.read()
		if calls.Add(1) == 2 {
			close(started)
			<-release
		}
		return snap, nil
	}).AnyTimes()

	_, err := f.cat.Load(context.Background(), "/cache/snapshot.json")
	require.NoError(t, err)
	file.set(snapshotOf("bwa:0.7", "star:2.7"))

	var wg sync.WaitGroup
	results := make([]error, 8)
	wg.Add(1)
	go func() {
		defer wg.Done()
		_, results[0] = f.cat.Reload(context.Background())
	}()
	<-started
	for i := 1; i < len(results); i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, results[i] = f.cat.Reload(context.Background())
		}()
	}
	// Let the followers queue behind the in-flight read before releasing it.
	time.Sleep(50 * time.Millisecond)
	close(release)
	wg.Wait()

	for _, err := range results {
		assert.NoError(t, err)
	}
	// One initial load, the in-flight read, and at most one more read per
	// follower; followers waiting together share theirs.
	assert.GreaterOrEqual(t, calls.Load(), int32(3))
	assert.LessOrEqual(t, calls.Load(), int32(len(results)+1))

	got, _ := f.cat.Snapshot()
	assert.Equal(t, []string{"bwa", "star"}, got.ToolNames)
}

func TestCatalog_ResolveDuringSwap(t *testing.T) {
	f := newFixture(t)
	old := snapshotOf("bwa:0.7")
	next := snapshotOf("star:2.7")
	gomock.InOrder(
		f.store.EXPECT().Load(gomock.Any()).Return(old, nil),
		f.store.EXPECT().Load(gomock.Any()).Return(next, nil),
	)
	f.hasher.EXPECT().ComputeSnapshotHash(old).Return("h1")
	f.hasher.EXPECT().ComputeSnapshotHash(next).Return("h2")

	ctx := context.Background()
	_, err := f.cat.Load(ctx, "/cache/snapshot.json")
	require.NoError(t, err)

	var wg sync.WaitGroup
	for range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for range 200 {
				res, err := f.cat.Resolve([]string{"bwa", "star"}, domain.DefaultResolveOptions())
				if !assert.NoError(t, err) {
					return
				}
				// One generation per call: exactly one of the two is known.
				assert.Len(t, res.Found, 1)
				assert.Len(t, res.Entries, 1)
			}
		}()
	}
	_, err = f.cat.Reload(ctx)
	require.NoError(t, err)
	wg.Wait()
}
