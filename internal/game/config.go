package game

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"

	"github.com/samdwyer/vaultdelve/internal/archive"
	"github.com/samdwyer/vaultdelve/internal/logger"
	"github.com/samdwyer/vaultdelve/internal/telemetry"
	"github.com/samdwyer/vaultdelve/internal/world"
)

// Config holds game configuration options.
type Config struct {
	// Seed for random number generation. A seed of 0 means a random seed
	// will be generated.
	Seed      int64            `yaml:"seed"`
	Dungeon   world.Params     `yaml:"dungeon"`
	Logging   logger.Config    `yaml:"logging"`
	Archive   ArchiveConfig    `yaml:"archive"`
	Telemetry telemetry.Config `yaml:"telemetry"`
}

// ArchiveConfig selects whether generated floors are archived and where.
type ArchiveConfig struct {
	Enabled        bool `yaml:"enabled"`
	archive.Config `yaml:",inline"`
}

// DefaultConfig returns the standard dungeon with console logging and no
// archive.
func DefaultConfig() Config {
	return Config{
		Dungeon: world.DefaultParams(),
		Logging: logger.DefaultConfig(),
		Archive: ArchiveConfig{Config: archive.DefaultConfig("data/levels.db")},
	}
}

// LoadConfig reads a YAML config over the defaults. A missing file yields
// the defaults. Environment overrides are applied last: VAULTDELVE_SEED and
// the LOG_* variables.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case errors.Is(err, os.ErrNotExist):
		case err != nil:
			return cfg, fmt.Errorf("read config %s: %w", path, err)
		default:
			if err := yaml.Unmarshal(data, &cfg); err != nil {
				return cfg, fmt.Errorf("parse config %s: %w", path, err)
			}
		}
	}

	if s := os.Getenv("VAULTDELVE_SEED"); s != "" {
		seed, err := strconv.ParseInt(s, 10, 64)
		if err != nil {
			return cfg, fmt.Errorf("VAULTDELVE_SEED: %w", err)
		}
		cfg.Seed = seed
	}
	logger.ApplyEnv(&cfg.Logging)

	if err := cfg.Dungeon.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}
