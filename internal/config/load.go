package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"gopkg.in/yaml.v3"
)

// ErrInvalidConfig is wrapped by every Validate failure.
var ErrInvalidConfig = errors.New("invalid config")

// Load loads configuration with priority: defaults < file < flags.
func Load() (*Config, error) {
	cfg := Default()

	// Explicit path first, then the standard locations
	configPath := ConfigPath()
	if configPath == "" {
		configPath = findConfigFile()
	}

	if configPath != "" {
		if err := loadFromFile(cfg, configPath); err != nil {
			return nil, fmt.Errorf("loading config from %s: %w", configPath, err)
		}
	}

	// Apply CLI flags (highest priority)
	if err := applyFlags(cfg); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the values the tools cannot work around.
func (c *Config) Validate() error {
	switch {
	case c.Build.UpTo < 0:
		return fmt.Errorf("%w: build.up_to must be >= 0, got %d", ErrInvalidConfig, c.Build.UpTo)
	case c.Preview.Size < 1:
		return fmt.Errorf("%w: preview.size must be >= 1, got %d", ErrInvalidConfig, c.Preview.Size)
	case c.Preview.Supersample < 1:
		return fmt.Errorf("%w: preview.supersample must be >= 1, got %d", ErrInvalidConfig, c.Preview.Supersample)
	case c.Preview.MaterialSmoothness < 0:
		return fmt.Errorf("%w: preview.material_smoothness must be >= 0", ErrInvalidConfig)
	}
	return nil
}

// findConfigFile looks for config in standard locations.
func findConfigFile() string {
	candidates := []string{
		"./config.yaml",
		filepath.Join(ConfigDir(), "config.yaml"),
	}

	for _, path := range candidates {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}

// ConfigDir returns the OS-appropriate config directory.
func ConfigDir() string {
	switch runtime.GOOS {
	case "darwin":
		home, _ := os.UserHomeDir()
		return filepath.Join(home, "Library", "Application Support", "TerrainConstructor")
	case "windows":
		return filepath.Join(os.Getenv("APPDATA"), "TerrainConstructor")
	default: // Linux and others
		if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
			return filepath.Join(xdg, "terrain-constructor")
		}
		home, _ := os.UserHomeDir()
		return filepath.Join(home, ".config", "terrain-constructor")
	}
}

// loadFromFile merges a YAML file over the values already in cfg.
func loadFromFile(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return yaml.Unmarshal(data, cfg)
}
