// Package config loads the optional uvc-controls configuration file.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

const (
	appName  = "uvc-controls"
	fileName = "config.yaml"
)

// Device selects the camera to open. Path takes precedence over the IDs; zero
// IDs match any device.
type Device struct {
	Path      string `yaml:"path,omitempty"`
	VendorID  uint16 `yaml:"vendor_id,omitempty"`
	ProductID uint16 `yaml:"product_id,omitempty"`
}

type Config struct {
	LogLevel string `yaml:"log_level"`
	Device   Device `yaml:"device"`
}

func Default() *Config {
	return &Config{LogLevel: "info"}
}

// Dir returns $XDG_CONFIG_HOME/uvc-controls, or ~/.config/uvc-controls.
func Dir() (string, error) {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, appName), nil
	}
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("cannot determine home directory: %w", err)
	}
	return filepath.Join(homeDir, ".config", appName), nil
}

func Path() (string, error) {
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, fileName), nil
}

// Load reads the config at path, or the default location when path is empty.
// A missing file yields the defaults.
func Load(path string) (*Config, error) {
	if path == "" {
		p, err := Path()
		if err != nil {
			return nil, err
		}
		path = p
	}

	cfg := Default()
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}
	return cfg, nil
}
