package commands_test

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/biofind/cmd/biofind/commands"
	"go.trai.ch/biofind/internal/app"
	"go.trai.ch/biofind/internal/core/domain"
	"go.trai.ch/biofind/internal/core/ports/mocks"
	"go.uber.org/mock/gomock"
)

type fixture struct {
	loader  *mocks.MockConfigLoader
	scanner *mocks.MockScanner
	catalog *mocks.MockCatalog
	server  *mocks.MockToolServer
	out     *bytes.Buffer
	cli     *commands.CLI
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	ctrl := gomock.NewController(t)
	f := &fixture{
		loader:  mocks.NewMockConfigLoader(ctrl),
		scanner: mocks.NewMockScanner(ctrl),
		catalog: mocks.NewMockCatalog(ctrl),
		server:  mocks.NewMockToolServer(ctrl),
		out:     &bytes.Buffer{},
	}
	log := mocks.NewMockLogger(ctrl)
	log.EXPECT().SetLevel(gomock.Any()).AnyTimes()

	cfg := domain.DefaultConfig()
	cfg.Cache = "/cache/snapshot.json"
	f.loader.EXPECT().Load(gomock.Any(), gomock.Any()).Return(cfg, nil).AnyTimes()

	a := app.New(f.loader, log, f.scanner, nil, f.catalog, mocks.NewMockWatcher(ctrl), f.server)
	f.cli = commands.New(a)
	f.cli.SetOut(f.out)
	return f
}

func (f *fixture) run(t *testing.T, args ...string) error {
	t.Helper()
	f.cli.SetArgs(args)
	return f.cli.Execute(context.Background())
}

func testSnapshot() *domain.Snapshot {
	names := []string{"samtools:1.21", "samtools:1.9", "bwa:0.7.17", "star:2.7.11a", "README"}
	entries := make([]domain.Entry, len(names))
	for i, n := range names {
		entries[i] = domain.NewEntry(n, "/repo/"+n, 1, time.Unix(0, 0))
	}
	return domain.NewSnapshot("/repo", entries, time.Now())
}

func (f *fixture) serveSnapshot(snap *domain.Snapshot) {
	f.catalog.EXPECT().Load(gomock.Any(), gomock.Any()).Return(true, nil).AnyTimes()
	f.catalog.EXPECT().Snapshot().Return(snap, nil).AnyTimes()
	f.catalog.EXPECT().Resolve(gomock.Any(), gomock.Any()).DoAndReturn(
		func(queries []string, opts domain.ResolveOptions) (domain.ResolutionResult, error) {
			return domain.Resolve(queries, snap, opts)
		}).AnyTimes()
}

func TestResolve_Text(t *testing.T) {
	f := newFixture(t)
	f.serveSnapshot(testSnapshot())

	require.NoError(t, f.run(t, "resolve", "BWA", "samtool", "zzz"))

	assert.Equal(t, "found (1): BWA\n"+
		"missing (2): samtool, zzz\n"+
		"  samtool: did you mean samtools?\n"+
		"bwa:0.7.17\t/repo/bwa:0.7.17\n", f.out.String())
}

func TestResolve_JSON(t *testing.T) {
	f := newFixture(t)
	f.serveSnapshot(testSnapshot())

	require.NoError(t, f.run(t, "resolve", "--json", "bwa", "bwa"))

	var res domain.ResolutionResult
	require.NoError(t, json.Unmarshal(f.out.Bytes(), &res))
	assert.Equal(t, []string{"bwa", "bwa"}, res.Found)
	assert.Equal(t, 2, res.Count)
	assert.Empty(t, res.Missing)
	assert.Len(t, res.Entries, 1)
}

func TestResolve_Flags(t *testing.T) {
	f := newFixture(t)
	f.catalog.EXPECT().Load(gomock.Any(), "/tmp/other.json").Return(true, nil)
	f.catalog.EXPECT().Resolve([]string{"bwa"}, domain.ResolveOptions{Limit: 2, Cutoff: 0.5}).
		Return(domain.EmptyResolution(), nil)

	require.NoError(t, f.run(t, "resolve", "--cache", "/tmp/other.json", "-n", "2", "--cutoff", "0.5", "bwa"))
}

func TestResolve_RequiresNames(t *testing.T) {
	f := newFixture(t)
	assert.Error(t, f.run(t, "resolve"))
}

func TestVersions(t *testing.T) {
	f := newFixture(t)
	f.serveSnapshot(testSnapshot())

	require.NoError(t, f.run(t, "versions", "samtools"))
	assert.Equal(t, "1.21\t/repo/samtools:1.21\n1.9\t/repo/samtools:1.9\n", f.out.String())

	f.out.Reset()
	require.NoError(t, f.run(t, "versions", "readme"))
	assert.Equal(t, "-\t/repo/README\n", f.out.String())

	err := f.run(t, "versions", "missing")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestList(t *testing.T) {
	f := newFixture(t)
	f.serveSnapshot(testSnapshot())

	require.NoError(t, f.run(t, "list"))
	assert.Equal(t, "README\nbwa\nsamtools\nstar\n", f.out.String())

	f.out.Reset()
	require.NoError(t, f.run(t, "list", "2"))
	assert.Equal(t, "README\nbwa\n(2 of 4 tools)\n", f.out.String())

	assert.ErrorIs(t, f.run(t, "list", "two"), domain.ErrValidation)
	assert.ErrorIs(t, f.run(t, "list", "--", "-1"), domain.ErrValidation)
}

func TestScan(t *testing.T) {
	f := newFixture(t)
	res := &domain.ScanResult{
		Root:    "/other",
		Entries: []domain.Entry{domain.NewEntry("bwa:0.7.17", "/other/bwa:0.7.17", 42, time.Unix(0, 0))},
	}
	f.scanner.EXPECT().Scan(gomock.Any(), "/other", 3).Return(res, nil)

	require.NoError(t, f.run(t, "scan", "--root", "/other", "--workers", "3"))
	assert.Equal(t, "bwa:0.7.17\t42\t/other/bwa:0.7.17\n", f.out.String())
}

func TestServe(t *testing.T) {
	f := newFixture(t)
	f.catalog.EXPECT().Load(gomock.Any(), "/cache/snapshot.json").Return(true, nil)
	f.server.EXPECT().Serve(gomock.Any(), f.catalog, domain.DefaultResolveOptions()).Return(nil)

	require.NoError(t, f.run(t, "serve", "--no-watch"))
}

func TestVersionCmd(t *testing.T) {
	f := newFixture(t)

	require.NoError(t, f.run(t, "version"))
	assert.Contains(t, f.out.String(), "biofind version")
}

func TestRoot_Help(t *testing.T) {
	f := newFixture(t)

	require.NoError(t, f.run(t, "--help"))
}
