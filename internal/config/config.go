package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	ThemeAuto  = "auto"
	ThemeDark  = "dark"
	ThemeLight = "light"
)

// Config captures the client's startup preferences. Everything here is
// static: read once at startup, never re-read.
type Config struct {
	Theme             string    `yaml:"theme"`
	ServerURL         string    `yaml:"server_url"`
	RefreshIntervalMS int       `yaml:"refresh_interval_ms"`
	ExportDir         string    `yaml:"export_dir"`
	Endpoints         Endpoints `yaml:"endpoints"`
}

// Endpoints are the backend route paths, overridable per deployment.
type Endpoints struct {
	PortStatus   string `yaml:"port_status"`
	Alerts       string `yaml:"alerts"`
	SystemInfo   string `yaml:"system_info"`
	ResolveAlert string `yaml:"resolve_alert"`
}

// Interval returns the refresh cadence as a duration.
func (c Config) Interval() time.Duration {
	if c.RefreshIntervalMS <= 0 {
		return 3000 * time.Millisecond
	}
	return time.Duration(c.RefreshIntervalMS) * time.Millisecond
}

// Load reads configuration data from the provided path. If the file does not exist,
// a default configuration is returned without an error.
func Load(path string) (Config, error) {
	cfg := Default()

	resolved, err := resolvePath(path)
	if err != nil {
		return cfg, fmt.Errorf("resolve config path: %w", err)
	}

	data, err := os.ReadFile(resolved)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("read config: %w", err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}

	return cfg, nil
}

// Default returns a usable configuration when no file exists yet.
func Default() Config {
	return Config{
		Theme:             ThemeAuto,
		ServerURL:         "http://127.0.0.1:5000",
		RefreshIntervalMS: 3000,
		ExportDir:         ".",
	}
}

// DefaultPath returns the standard configuration path within the user's
// XDG config directory.
func DefaultPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("user config dir: %w", err)
	}
	return filepath.Join(dir, "portsentry", "config.yaml"), nil
}

func resolvePath(path string) (string, error) {
	if path != "" {
		return path, nil
	}
	return DefaultPath()
}
