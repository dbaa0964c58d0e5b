// Package config loads runtime options from a YAML file with environment
// overrides for secrets. Economic constants are not configurable; only
// how a run executes is.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config holds the runtime options for one simulation run.
type Config struct {
	// Seed selects a deterministic randomness source. 0 means
	// non-deterministic (random.org if keyed, crypto/rand otherwise).
	Seed int64 `yaml:"seed"`

	// Speed is the engine speed multiplier. 1.0 runs a tick per 100ms
	// of wall time; higher values run faster.
	Speed float64 `yaml:"speed"`

	// DBPath is the SQLite file recording runs and events.
	DBPath string `yaml:"db_path"`

	// APIPort serves the read-only observation API.
	APIPort int `yaml:"api_port"`

	// FlushEveryTicks batches event writes to the database.
	FlushEveryTicks int `yaml:"flush_every_ticks"`

	// AdminKey guards the admin POST endpoints. Empty disables them.
	// Overridden by FOOBARTORY_ADMIN_KEY.
	AdminKey string `yaml:"admin_key"`

	// RandomOrgKey enables the random.org entropy source for unseeded
	// runs. Overridden by RANDOM_ORG_KEY.
	RandomOrgKey string `yaml:"random_org_key"`
}

// Default returns the configuration used when no file is present.
func Default() Config {
	return Config{
		Speed:           1.0,
		DBPath:          "data/foobartory.db",
		APIPort:         8080,
		FlushEveryTicks: 100,
	}
}

// Load reads the configuration at path, applying defaults for absent
// fields and env overrides for secrets. A missing file is not an error:
// the defaults are returned.
func Load(path string) (Config, error) {
	cfg := Default()

	raw, err := os.ReadFile(path)
	switch {
	case os.IsNotExist(err):
		// Fall through to env overrides.
	case err != nil:
		return cfg, fmt.Errorf("read config: %w", err)
	default:
		if err := yaml.Unmarshal(raw, &cfg); err != nil {
			return cfg, fmt.Errorf("%s: %w", path, err)
		}
	}

	if v := os.Getenv("FOOBARTORY_ADMIN_KEY"); v != "" {
		cfg.AdminKey = v
	}
	if v := os.Getenv("RANDOM_ORG_KEY"); v != "" {
		cfg.RandomOrgKey = v
	}

	if cfg.Speed <= 0 {
		cfg.Speed = 1.0
	}
	if cfg.FlushEveryTicks <= 0 {
		cfg.FlushEveryTicks = 100
	}
	return cfg, nil
}
