package config

// Biofile represents the structure of the biofind.yaml configuration file.
// Pointer fields distinguish an omitted setting from an explicit zero.
type Biofile struct {
	Version  string     `yaml:"version"`
	Root     string     `yaml:"root"`
	Cache    string     `yaml:"cache"`
	LogLevel string     `yaml:"log_level"`
	Scan     ScanDTO    `yaml:"scan"`
	Resolve  ResolveDTO `yaml:"resolve"`
	Serve    ServeDTO   `yaml:"serve"`
}

// ScanDTO holds the indexing settings.
type ScanDTO struct {
	Workers *int `yaml:"workers"`
}

// ResolveDTO holds the default suggestion ranking settings.
type ResolveDTO struct {
	Limit  *int     `yaml:"limit"`
	Cutoff *float64 `yaml:"cutoff"`
}

// ServeDTO holds the settings of the long-running tool server.
type ServeDTO struct {
	Watch    *bool  `yaml:"watch"`
	Debounce string `yaml:"debounce"`
}
