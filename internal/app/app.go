// Package app implements the application layer for biofind.
package app

import (
	"context"
	"fmt"
	"os"

	"go.trai.ch/biofind/internal/core/domain"
	"go.trai.ch/biofind/internal/core/ports"
	"go.trai.ch/biofind/internal/engine/indexer"
	"go.trai.ch/zerr"
	"golang.org/x/sync/errgroup"
)

// App represents the main application logic.
type App struct {
	configLoader ports.ConfigLoader
	logger       ports.Logger
	scanner      ports.Scanner
	builder      *indexer.Builder
	catalog      ports.Catalog
	watcher      ports.Watcher
	server       ports.ToolServer
	getwd        func() (string, error)
}

// New creates a new App instance.
func New(
	loader ports.ConfigLoader,
	log ports.Logger,
	scanner ports.Scanner,
	builder *indexer.Builder,
	catalog ports.Catalog,
	watcher ports.Watcher,
	server ports.ToolServer,
) *App {
	return &App{
		configLoader: loader,
		logger:       log,
		scanner:      scanner,
		builder:      builder,
		catalog:      catalog,
		watcher:      watcher,
		server:       server,
		getwd:        os.Getwd,
	}
}

// Options selects the configuration file and carries command line values
// that take precedence over it. Zero values keep the configured setting.
type Options struct {
	ConfigPath string
	Root       string
	Cache      string
	Workers    int
	Limit      *int
	Cutoff     *float64
	NoWatch    bool
}

// Config loads the configuration, applies opts and sets the log level.
func (a *App) Config(opts Options) (domain.Config, error) {
	cwd, err := a.getwd()
	if err != nil {
		return domain.Config{}, zerr.Wrap(err, "failed to get working directory")
	}

	cfg, err := a.configLoader.Load(cwd, opts.ConfigPath)
	if err != nil {
		return domain.Config{}, zerr.Wrap(err, "failed to load configuration")
	}

	if opts.Root != "" {
		cfg.Root = opts.Root
	}
	if opts.Cache != "" {
		cfg.Cache = opts.Cache
	}
	if opts.Workers != 0 {
		cfg.Workers = opts.Workers
	}
	if opts.Limit != nil {
		cfg.Resolve.Limit = *opts.Limit
	}
	if opts.Cutoff != nil {
		cfg.Resolve.Cutoff = *opts.Cutoff
	}
	if opts.NoWatch {
		cfg.Watch = false
	}
	if err := cfg.Validate(); err != nil {
		return domain.Config{}, err
	}

	a.logger.SetLevel(cfg.LogLevel)
	return cfg, nil
}

// Build scans the configured root and writes a new snapshot.
func (a *App) Build(ctx context.Context, opts Options) (*domain.BuildReport, error) {
	cfg, err := a.Config(opts)
	if err != nil {
		return nil, err
	}

	report, err := a.builder.Build(ctx, cfg.Root, cfg.Cache, cfg.Workers)
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, "build failed"), "root", cfg.Root)
	}

	if n := len(report.Diagnostics); n > 0 {
		a.logger.Warn(fmt.Sprintf("%d entries could not be read and were skipped", n))
	}
	a.logger.Info(fmt.Sprintf("indexed %d entries (%d tools) from %s",
		report.Snapshot.EntryCount, len(report.Snapshot.ToolNames), report.Snapshot.Root))
	return report, nil
}

// Scan lists the configured root without writing a snapshot.
func (a *App) Scan(ctx context.Context, opts Options) (*domain.ScanResult, error) {
	cfg, err := a.Config(opts)
	if err != nil {
		return nil, err
	}

	res, err := a.scanner.Scan(ctx, cfg.Root, cfg.Workers)
	if err != nil {
		return nil, zerr.Wrap(err, "scan failed")
	}
	return res, nil
}

// Resolve answers queries against the configured snapshot.
func (a *App) Resolve(ctx context.Context, opts Options, queries []string) (domain.ResolutionResult, error) {
	cfg, err := a.open(ctx, opts)
	if err != nil {
		return domain.ResolutionResult{}, err
	}
	return a.catalog.Resolve(queries, cfg.Resolve)
}

// Versions returns every stored entry of tool.
func (a *App) Versions(ctx context.Context, opts Options, tool string) ([]domain.Entry, error) {
	snap, err := a.snapshot(ctx, opts)
	if err != nil {
		return nil, err
	}

	versions := snap.Versions(tool)
	if len(versions) == 0 {
		return nil, domain.Kind(domain.ErrNotFound, zerr.With(zerr.New("unknown tool"), "tool", tool))
	}
	return versions, nil
}

// List returns up to limit sorted tool names and the total number of tools.
// A limit of zero lists every tool.
func (a *App) List(ctx context.Context, opts Options, limit int) ([]string, int, error) {
	if limit < 0 {
		return nil, 0, domain.Kind(domain.ErrValidation,
			zerr.With(zerr.New("limit must not be negative"), "limit", limit))
	}

	snap, err := a.snapshot(ctx, opts)
	if err != nil {
		return nil, 0, err
	}
	return snap.ListToolNames(limit), len(snap.ToolNames), nil
}

// Serve loads the snapshot and answers tool calls until ctx is done. When
// watching is enabled, replacing the snapshot file reloads the catalog.
func (a *App) Serve(ctx context.Context, opts Options) error {
	cfg, err := a.open(ctx, opts)
	if err != nil {
		return err
	}

	if !cfg.Watch {
		return a.server.Serve(ctx, a.catalog, cfg.Resolve)
	}

	g, ctx := errgroup.WithContext(ctx)
	watchCtx, stopWatch := context.WithCancel(ctx)
	defer stopWatch()

	g.Go(func() error {
		return a.watcher.Watch(watchCtx, cfg.Cache, cfg.Debounce, a.reload)
	})
	g.Go(func() error {
		// A disconnected client stops the watcher too.
		defer stopWatch()
		return a.server.Serve(ctx, a.catalog, cfg.Resolve)
	})

	return g.Wait()
}

func (a *App) reload(ctx context.Context) {
	changed, err := a.catalog.Reload(ctx)
	if err != nil {
		a.logger.Error(zerr.Wrap(err, "snapshot reload failed, keeping the live snapshot"))
		return
	}
	if !changed {
		a.logger.Info("snapshot rewritten without changes")
	}
}

func (a *App) open(ctx context.Context, opts Options) (domain.Config, error) {
	cfg, err := a.Config(opts)
	if err != nil {
		return domain.Config{}, err
	}

	if _, err := a.catalog.Load(ctx, cfg.Cache); err != nil {
		return domain.Config{}, zerr.With(zerr.Wrap(err, "failed to load snapshot"), "path", cfg.Cache)
	}
	return cfg, nil
}

func (a *App) snapshot(ctx context.Context, opts Options) (*domain.Snapshot, error) {
	if _, err := a.open(ctx, opts); err != nil {
		return nil, err
	}
	return a.catalog.Snapshot()
}
