package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v3"

	"github.com/forge-scaffold/forge/internal/defs"
)

// Loader reads the configuration file and applies environment overrides.
type Loader struct {
	fileFound bool
}

// NewLoader creates a new Loader instance.
func NewLoader() *Loader {
	return &Loader{}
}

// DefaultPath returns the configuration file location, usually
// ~/.config/forge/config.yaml.
func DefaultPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("resolve user config directory: %w", err)
	}
	return filepath.Join(dir, defs.ConfigDirName, defs.ConfigYAML), nil
}

// Load builds the configuration in three layers: compiled defaults, the YAML
// file at path (DefaultPath when empty), then environment variables. A
// missing file is not an error. The result is validated.
func (l *Loader) Load(path string) (*Config, error) {
	cfg := NewDefaultConfig()
	l.fileFound = false

	if path == "" {
		p, err := DefaultPath()
		if err != nil {
			slog.Debug("no user config directory, using defaults", "error", err)
		}
		path = p
	}

	if path != "" {
		found, err := loadYAMLFile(path, cfg)
		if err != nil {
			return nil, err
		}
		l.fileFound = found
		if !found {
			slog.Debug("config file not found, using defaults", "path", path)
		}
	}

	if err := applyEnvOverrides(cfg); err != nil {
		return nil, err
	}

	if err := Validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// FileFound reports whether the last Load read a configuration file.
func (l *Loader) FileFound() bool {
	return l.fileFound
}

// applyEnvOverrides overlays environment variables section by section.
// Environment variables have higher priority than file-based values; unset
// variables leave the field alone.
func applyEnvOverrides(cfg *Config) error {
	sections := []any{&cfg.Interpreter, &cfg.Install, &cfg.Log}
	for _, section := range sections {
		if err := envconfig.Process("", section); err != nil {
			return fmt.Errorf("%w: %w", ErrInvalidEnv, err)
		}
	}
	return nil
}

// loadYAMLFile reads a YAML file and unmarshals it over target. Returns
// (true, nil) if the file was found and parsed, (false, nil) if it does not
// exist, or (false, error) on failure.
func loadYAMLFile(path string, target *Config) (bool, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, fmt.Errorf("read %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, target); err != nil {
		return false, fmt.Errorf("parse %s: %w: %v", path, ErrInvalidYAML, err)
	}
	return true, nil
}
