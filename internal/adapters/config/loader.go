// Package config provides the configuration loader for biofind.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	iofs "io/fs"
	"os"
	"path/filepath"
	"time"

	"go.trai.ch/biofind/internal/core/domain"
	"go.trai.ch/biofind/internal/core/ports"
	"go.trai.ch/zerr"
	"gopkg.in/yaml.v3"
)

// SupportedVersion is the only configuration schema version understood.
const SupportedVersion = "1"

var _ ports.ConfigLoader = (*Loader)(nil)

// Loader implements ports.ConfigLoader using a YAML file.
type Loader struct {
	Logger ports.Logger
}

// NewLoader creates a new Loader with the given logger.
func NewLoader(logger ports.Logger) *Loader {
	return &Loader{Logger: logger}
}

// Load reads the configuration file at path, resolved against cwd when
// relative. An empty path means biofind.yaml in cwd, which may be absent;
// a path given explicitly must exist.
func (l *Loader) Load(cwd, path string) (domain.Config, error) {
	explicit := path != ""
	if !explicit {
		path = domain.ConfigFileName
	}
	if !filepath.IsAbs(path) {
		path = filepath.Join(cwd, path)
	}

	cfg := domain.DefaultConfig()

	data, err := os.ReadFile(path) //nolint:gosec // path is provided by user
	switch {
	case err == nil:
	case errors.Is(err, iofs.ErrNotExist) && !explicit:
		cfg.Cache = resolvePath(cwd, cfg.Cache)
		return cfg, nil
	case errors.Is(err, iofs.ErrNotExist):
		return domain.Config{}, domain.Kind(domain.ErrNotFound,
			zerr.With(zerr.Wrap(err, "failed to read config file"), "path", path))
	case errors.Is(err, iofs.ErrPermission):
		return domain.Config{}, domain.Kind(domain.ErrPermission,
			zerr.With(zerr.Wrap(err, "failed to read config file"), "path", path))
	default:
		return domain.Config{}, zerr.With(zerr.Wrap(err, "failed to read config file"), "path", path)
	}

	var file Biofile
	if err := decodeStrict(data, &file); err != nil {
		return domain.Config{}, domain.Kind(domain.ErrValidation,
			zerr.With(zerr.Wrap(err, "failed to parse config file"), "path", path))
	}

	if err := l.apply(&cfg, &file, filepath.Dir(path)); err != nil {
		return domain.Config{}, zerr.With(err, "path", path)
	}
	if cfg.Cache == domain.DefaultSnapshotPath() {
		cfg.Cache = resolvePath(cwd, cfg.Cache)
	}

	if err := cfg.Validate(); err != nil {
		return domain.Config{}, zerr.With(err, "path", path)
	}
	return cfg, nil
}

// apply overlays the settings present in file onto cfg. Relative paths in
// the file are relative to the directory holding it.
func (l *Loader) apply(cfg *domain.Config, file *Biofile, dir string) error {
	if file.Version != "" && file.Version != SupportedVersion {
		l.Logger.Warn(fmt.Sprintf("unknown config version %q, reading it as version %s", file.Version, SupportedVersion))
	}

	if file.Root != "" {
		cfg.Root = resolvePath(dir, file.Root)
	}
	if file.Cache != "" {
		cfg.Cache = resolvePath(dir, file.Cache)
	}
	if file.LogLevel != "" {
		level, err := domain.ParseLogLevel(file.LogLevel)
		if err != nil {
			return err
		}
		cfg.LogLevel = level
	}
	if file.Scan.Workers != nil {
		cfg.Workers = *file.Scan.Workers
	}
	if file.Resolve.Limit != nil {
		cfg.Resolve.Limit = *file.Resolve.Limit
	}
	if file.Resolve.Cutoff != nil {
		cfg.Resolve.Cutoff = *file.Resolve.Cutoff
	}
	if file.Serve.Watch != nil {
		cfg.Watch = *file.Serve.Watch
	}
	if file.Serve.Debounce != "" {
		d, err := time.ParseDuration(file.Serve.Debounce)
		if err != nil {
			return domain.Kind(domain.ErrValidation,
				zerr.With(zerr.Wrap(err, "invalid serve.debounce"), "debounce", file.Serve.Debounce))
		}
		cfg.Debounce = d
	}
	return nil
}

// decodeStrict rejects unknown keys so a misspelled setting is reported
// instead of silently ignored.
func decodeStrict(data []byte, out *Biofile) error {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(out); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}

func resolvePath(dir, p string) string {
	if filepath.IsAbs(p) {
		return filepath.Clean(p)
	}
	return filepath.Join(dir, p)
}
