package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"gopkg.in/yaml.v3"
)

// Load loads configuration with priority: defaults < file < flags.
func Load() (*Config, error) {
	return LoadWith(cli)
}

// LoadWith is Load with explicit flag values.
func LoadWith(f *Flags) (*Config, error) {
	cfg := Default()

	// Explicit path takes priority
	configPath := f.Config
	if configPath == "" {
		configPath = findConfigFile()
	}

	if configPath != "" {
		if err := loadFromFile(cfg, configPath); err != nil {
			return nil, fmt.Errorf("loading config from %s: %w", configPath, err)
		}
	}

	f.apply(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate rejects settings the viewer cannot start with.
func (c *Config) Validate() error {
	var errs []error
	if c.Graphics.Width <= 0 || c.Graphics.Height <= 0 {
		errs = append(errs, fmt.Errorf("graphics: invalid size %dx%d", c.Graphics.Width, c.Graphics.Height))
	}
	if c.Assets.WallsTexture == "" || c.Assets.WoodTexture == "" || c.Assets.StoneTexture == "" {
		errs = append(errs, errors.New("assets: every texture path must be set"))
	}
	if c.Controls.ScrollStep < 0 || c.Controls.RotationSpeed < 0 {
		errs = append(errs, errors.New("controls: speeds must not be negative"))
	}
	if b := c.Controls.InitialBrightness; b < MinBrightness || b > MaxBrightness {
		errs = append(errs, fmt.Errorf("controls: initial brightness %v outside [%v, %v]", b, MinBrightness, MaxBrightness))
	}
	return errors.Join(errs...)
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
		return filepath.Join(home, "Library", "Application Support", "HouseViewer")
	case "windows":
		return filepath.Join(os.Getenv("APPDATA"), "HouseViewer")
	default: // Linux and others
		if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
			return filepath.Join(xdg, "house-viewer")
		}
		home, _ := os.UserHomeDir()
		return filepath.Join(home, ".config", "house-viewer")
	}
}

// loadFromFile loads config from a YAML file, merging with existing values.
func loadFromFile(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return yaml.Unmarshal(data, cfg)
}
