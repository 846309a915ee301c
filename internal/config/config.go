package config

import (
	"os"

	"gopkg.in/yaml.v3"
)

// DefaultBaseURL is the Treasury par-yield XML feed, templated with the
// four-digit year via %d.
const DefaultBaseURL = "https://www.treasury.gov/resource-center/data-chart-center/interest-rates/pages/XmlView.aspx?data=yieldyear&year=%d"

// ---------------------------------------------------------------------------
// Configuration structs
// ---------------------------------------------------------------------------

// Config is the top-level configuration for the ust data pipeline.
type Config struct {
	Storage Storage `yaml:"storage"`
	Source  Source  `yaml:"source"`
	Export  Export  `yaml:"export"`
	Logging Logging `yaml:"logging"`
}

// Storage holds paths for the XML cache and the persisted rate table.
type Storage struct {
	CacheDir   string `yaml:"cache_dir"`
	TablePath  string `yaml:"table_path"`
	SQLitePath string `yaml:"sqlite_path"` // optional mirror, empty disables
}

// Source configures the upstream Treasury feed.
type Source struct {
	BaseURL        string `yaml:"base_url"` // %d substituted with the year
	TimeoutSeconds int    `yaml:"timeout_seconds"`
	RetryAttempts  int    `yaml:"retry_attempts"` // transport errors only
	StartYear      int    `yaml:"start_year"`
}

// Export controls emission of derived artifacts after an update.
type Export struct {
	Dir     string `yaml:"dir"`
	Excel   bool   `yaml:"excel"`
	Parquet bool   `yaml:"parquet"`
}

// Logging configures the application logger.
type Logging struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// ---------------------------------------------------------------------------
// Loading
// ---------------------------------------------------------------------------

// Load reads the YAML configuration file at the given path, parses it into a
// Config struct, applies defaults for unset fields, and then applies
// environment variable overrides.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	cfg := &Config{}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}

	applyDefaults(cfg)
	applyEnvOverrides(cfg)

	return cfg, nil
}

// Default returns a Config with all defaults applied and environment
// overrides honored, for running without a config file.
func Default() *Config {
	cfg := &Config{}
	applyDefaults(cfg)
	applyEnvOverrides(cfg)
	return cfg
}

func applyDefaults(cfg *Config) {
	if cfg.Storage.CacheDir == "" {
		cfg.Storage.CacheDir = "xml"
	}
	if cfg.Storage.TablePath == "" {
		cfg.Storage.TablePath = "ust.csv"
	}
	if cfg.Source.BaseURL == "" {
		cfg.Source.BaseURL = DefaultBaseURL
	}
	if cfg.Source.TimeoutSeconds == 0 {
		cfg.Source.TimeoutSeconds = 30
	}
	if cfg.Source.RetryAttempts == 0 {
		cfg.Source.RetryAttempts = 3
	}
	if cfg.Source.StartYear == 0 {
		cfg.Source.StartYear = 1990
	}
	if cfg.Export.Dir == "" {
		cfg.Export.Dir = "."
	}
	if cfg.Logging.Level == "" {
		cfg.Logging.Level = "info"
	}
}

// applyEnvOverrides checks well-known environment variables and overrides
// the corresponding configuration fields when they are set.
func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("UST_CACHE_DIR"); v != "" {
		cfg.Storage.CacheDir = v
	}
	if v := os.Getenv("UST_TABLE_PATH"); v != "" {
		cfg.Storage.TablePath = v
	}
	if v := os.Getenv("UST_SQLITE_PATH"); v != "" {
		cfg.Storage.SQLitePath = v
	}
	if v := os.Getenv("UST_BASE_URL"); v != "" {
		cfg.Source.BaseURL = v
	}
	if v := os.Getenv("UST_EXPORT_DIR"); v != "" {
		cfg.Export.Dir = v
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		cfg.Logging.Level = v
	}
}
