package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/linkrank/pkg/pipeline"
)

// Config holds persistent CLI defaults loaded from the TOML config file.
// Command-line flags override config values, which override built-in
// defaults.
type Config struct {
	Method     string `toml:"method"`
	WalkSteps  int    `toml:"walk_steps"`
	Iterations int    `toml:"iterations"`
	Top        int    `toml:"top"`

	Cache    string `toml:"cache"`     // file, redis or off
	CacheDir string `toml:"cache_dir"` // overrides ~/.cache/linkrank

	Listen string `toml:"listen"` // serve listen address

	Redis RedisConfig `toml:"redis"`
}

// RedisConfig holds connection settings for the redis cache backend.
type RedisConfig struct {
	Addr     string `toml:"addr"`
	Password string `toml:"password"`
	DB       int    `toml:"db"`
}

// DefaultConfig returns the built-in defaults.
func DefaultConfig() Config {
	return Config{
		Method:     pipeline.DefaultMethod,
		WalkSteps:  pipeline.DefaultWalkSteps,
		Iterations: pipeline.DefaultIterations,
		Top:        pipeline.DefaultTopN,
		Cache:      cacheModeFile,
		Listen:     ":8080",
	}
}

// LoadConfig loads the config file at path, or the default location when
// path is empty. A missing file is not an error: defaults are returned.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()

	explicit := path != ""
	if path == "" {
		var err error
		if path, err = defaultConfigPath(); err != nil {
			return cfg, nil
		}
	}

	if _, err := os.Stat(path); os.IsNotExist(err) {
		if explicit {
			return cfg, fmt.Errorf("config file not found: %s", path)
		}
		return cfg, nil
	}

	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, nil
}

// defaultConfigPath returns ~/.config/linkrank/config.toml, honoring
// XDG_CONFIG_HOME.
func defaultConfigPath() (string, error) {
	if configHome := os.Getenv("XDG_CONFIG_HOME"); configHome != "" {
		return filepath.Join(configHome, appName, "config.toml"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", appName, "config.toml"), nil
}
