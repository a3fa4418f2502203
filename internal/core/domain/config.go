package domain

import (
	"runtime"
	"time"

	"go.trai.ch/zerr"
)

// Config holds the runtime settings of the indexer and the query surfaces.
type Config struct {
	Root     string
	Cache    string
	LogLevel LogLevel
	Workers  int
	Resolve  ResolveOptions
	Watch    bool
	Debounce time.Duration
}

// DefaultConfig returns the settings used when no configuration file exists.
func DefaultConfig() Config {
	return Config{
		Root:     DefaultRepositoryRoot,
		Cache:    DefaultSnapshotPath(),
		LogLevel: LogLevelInfo,
		Workers:  runtime.NumCPU(),
		Resolve:  DefaultResolveOptions(),
		Watch:    true,
		Debounce: DefaultReloadDebounce,
	}
}

// Validate checks every setting and returns the first violation.
func (c Config) Validate() error {
	if c.Root == "" {
		return Kind(ErrValidation, zerr.New("root must not be empty"))
	}
	if c.Cache == "" {
		return Kind(ErrValidation, zerr.New("cache must not be empty"))
	}
	if c.Workers < 0 {
		return Kind(ErrValidation, zerr.With(zerr.New("scan workers must not be negative"), "workers", c.Workers))
	}
	if c.Debounce < 0 {
		return Kind(ErrValidation, zerr.With(zerr.New("debounce must not be negative"), "debounce", c.Debounce.String()))
	}
	return c.Resolve.Validate()
}
