package ports

import "go.trai.ch/biofind/internal/core/domain"

// ConfigLoader defines the interface for loading the runtime configuration.
//
//go:generate mockgen -source=config_loader.go -destination=mocks/mock_config_loader.go -package=mocks
type ConfigLoader interface {
	// Load reads the configuration file at path, or the default file in cwd
	// when path is empty, and returns validated settings.
	Load(cwd, path string) (domain.Config, error)
}
