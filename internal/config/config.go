package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config holds the runtime settings read from the optional config file.
// Every field has a working default so no config file is required.
type Config struct {
	// DBPath is the SQLite database file. SHOWRUNNER_DB overrides it.
	DBPath string `yaml:"db_path"`

	// TerritoryBufferHours is the minimum gap demanded between items in
	// different territories during conflict scans.
	TerritoryBufferHours float64 `yaml:"territory_buffer_hours"`

	// Business hours bound the preferred daily window for slot finding.
	BusinessHoursStart int `yaml:"business_hours_start"`
	BusinessHoursEnd   int `yaml:"business_hours_end"`

	// DefaultOwner is the user ID stamped on created records when no
	// --user flag is given.
	DefaultOwner string `yaml:"default_owner"`
}

func defaults() Config {
	return Config{
		DBPath:               defaultDBPath(),
		TerritoryBufferHours: 4,
		BusinessHoursStart:   9,
		BusinessHoursEnd:     18,
	}
}

func defaultDBPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "showrunner.db"
	}
	return filepath.Join(home, ".showrunner", "showrunner.db")
}

func defaultConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".showrunner", "config.yaml")
}

// Load reads the config file (SHOWRUNNER_CONFIG, or ~/.showrunner/config.yaml
// when unset), applies env overrides, and validates. A missing file yields
// the defaults.
func Load() (Config, error) {
	cfg := defaults()

	path := os.Getenv("SHOWRUNNER_CONFIG")
	if path == "" {
		path = defaultConfigPath()
	}
	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case err == nil:
			if err := yaml.Unmarshal(data, &cfg); err != nil {
				return cfg, fmt.Errorf("parsing config %s: %w", path, err)
			}
		case !os.IsNotExist(err):
			return cfg, fmt.Errorf("reading config %s: %w", path, err)
		}
	}

	if dbPath := os.Getenv("SHOWRUNNER_DB"); dbPath != "" {
		cfg.DBPath = dbPath
	}

	if err := cfg.validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	if c.TerritoryBufferHours < 0 {
		return fmt.Errorf("territory_buffer_hours must not be negative")
	}
	if c.BusinessHoursStart < 0 || c.BusinessHoursEnd > 24 || c.BusinessHoursStart >= c.BusinessHoursEnd {
		return fmt.Errorf("business hours %d-%d out of order", c.BusinessHoursStart, c.BusinessHoursEnd)
	}
	return nil
}
