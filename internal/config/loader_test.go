package config

import (
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestNewDefaultConfigIsValid(t *testing.T) {
	cfg := NewDefaultConfig()
	if err := Validate(cfg); err != nil {
		t.Fatalf("default config invalid: %v", err)
	}

	if cfg.Interpreter.Mode != "proxy" {
		t.Errorf("Mode = %q, want proxy", cfg.Interpreter.Mode)
	}
	if cfg.Interpreter.ProxyURL != DefaultProxyURL {
		t.Errorf("ProxyURL = %q, want %q", cfg.Interpreter.ProxyURL, DefaultProxyURL)
	}
	if cfg.Interpreter.Model != "claude-3-5-haiku-20241022" {
		t.Errorf("Model = %q", cfg.Interpreter.Model)
	}
	if cfg.Interpreter.Timeout != 60*time.Second {
		t.Errorf("Timeout = %v, want 60s", cfg.Interpreter.Timeout)
	}
	if cfg.Install.PackageManager != "pnpm" {
		t.Errorf("PackageManager = %q, want pnpm", cfg.Install.PackageManager)
	}
	if cfg.Install.Skip {
		t.Error("Skip should default to false")
	}
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	l := NewLoader()
	cfg, err := l.Load(filepath.Join(t.TempDir(), "absent.yaml"))
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}

	if l.FileFound() {
		t.Error("FileFound should be false")
	}
	if want := NewDefaultConfig().Install; cfg.Install != want {
		t.Errorf("Install = %+v, want %+v", cfg.Install, want)
	}
}

func TestLoadFileOverlaysDefaults(t *testing.T) {
	path := writeConfig(t, `
interpreter:
  mode: direct
  timeout: 30s
  retries: 0
install:
  package_manager: npm
log:
  level: debug
`)
	l := NewLoader()
	cfg, err := l.Load(path)
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}

	if !l.FileFound() {
		t.Error("FileFound should be true")
	}
	if cfg.Interpreter.Mode != "direct" {
		t.Errorf("Mode = %q, want direct", cfg.Interpreter.Mode)
	}
	if cfg.Interpreter.Timeout != 30*time.Second {
		t.Errorf("Timeout = %v, want 30s", cfg.Interpreter.Timeout)
	}
	if cfg.Interpreter.Retries != 0 {
		t.Errorf("Retries = %d, want 0", cfg.Interpreter.Retries)
	}
	if cfg.Install.PackageManager != "npm" {
		t.Errorf("PackageManager = %q, want npm", cfg.Install.PackageManager)
	}
	if cfg.Log.Level != "debug" {
		t.Errorf("Log.Level = %q, want debug", cfg.Log.Level)
	}

	// Untouched keys keep their defaults.
	if cfg.Interpreter.ProxyURL != DefaultProxyURL {
		t.Errorf("ProxyURL = %q, want default", cfg.Interpreter.ProxyURL)
	}
	if cfg.Interpreter.Model != DefaultModel {
		t.Errorf("Model = %q, want default", cfg.Interpreter.Model)
	}
	if cfg.Log.Format != DefaultLogFormat {
		t.Errorf("Log.Format = %q, want default", cfg.Log.Format)
	}
}

func TestLoadIgnoresAPIKeyInFile(t *testing.T) {
	t.Setenv("ANTHROPIC_API_KEY", "")
	path := writeConfig(t, "interpreter:\n  api_key: sk-from-file\n  APIKey: sk-from-file\n")

	cfg, err := NewLoader().Load(path)
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	if cfg.Interpreter.APIKey != "" {
		t.Errorf("APIKey = %q, the file must not set it", cfg.Interpreter.APIKey)
	}
}

func TestLoadEnvOverridesFile(t *testing.T) {
	path := writeConfig(t, `
interpreter:
  proxy_url: https://file.example.com
install:
  package_manager: npm
`)
	t.Setenv("FORGE_PROXY_URL", "https://env.example.com/proxy")
	t.Setenv("ANTHROPIC_API_KEY", "sk-env")
	t.Setenv("FORGE_INTERPRETER_MODE", "direct")
	t.Setenv("FORGE_INTERPRETER_TIMEOUT", "5s")
	t.Setenv("FORGE_INTERPRETER_RETRIES", "4")
	t.Setenv("FORGE_PACKAGE_MANAGER", "yarn")
	t.Setenv("FORGE_SKIP_INSTALL", "true")
	t.Setenv("FORGE_LOG_LEVEL", "warn")

	cfg, err := NewLoader().Load(path)
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}

	checks := []struct {
		name      string
		got, want any
	}{
		{"ProxyURL", cfg.Interpreter.ProxyURL, "https://env.example.com/proxy"},
		{"APIKey", cfg.Interpreter.APIKey, "sk-env"},
		{"Mode", cfg.Interpreter.Mode, "direct"},
		{"Timeout", cfg.Interpreter.Timeout, 5 * time.Second},
		{"Retries", cfg.Interpreter.Retries, 4},
		{"PackageManager", cfg.Install.PackageManager, "yarn"},
		{"Skip", cfg.Install.Skip, true},
		{"Log.Level", cfg.Log.Level, "warn"},
	}
	for _, c := range checks {
		if c.got != c.want {
			t.Errorf("%s = %v, want %v", c.name, c.got, c.want)
		}
	}
}

func TestLoadInvalidYAML(t *testing.T) {
	path := writeConfig(t, "interpreter: [unclosed\n")
	_, err := NewLoader().Load(path)
	if !errors.Is(err, ErrInvalidYAML) {
		t.Errorf("error = %v, want ErrInvalidYAML", err)
	}
}

func TestLoadInvalidEnv(t *testing.T) {
	t.Setenv("FORGE_INTERPRETER_RETRIES", "many")
	_, err := NewLoader().Load(filepath.Join(t.TempDir(), "absent.yaml"))
	if !errors.Is(err, ErrInvalidEnv) {
		t.Errorf("error = %v, want ErrInvalidEnv", err)
	}
}

func TestLoadRunsValidation(t *testing.T) {
	path := writeConfig(t, "install:\n  package_manager: pip\n")
	_, err := NewLoader().Load(path)
	if !errors.Is(err, ErrUnsupportedPackageManager) {
		t.Errorf("error = %v, want ErrUnsupportedPackageManager", err)
	}
	if !errors.Is(err, ErrInvalidConfig) {
		t.Errorf("error = %v, want ErrInvalidConfig", err)
	}
}

func TestDefaultPath(t *testing.T) {
	path, err := DefaultPath()
	if err != nil {
		t.Skipf("no user config dir: %v", err)
	}
	got := filepath.Join(filepath.Base(filepath.Dir(path)), filepath.Base(path))
	if want := filepath.Join("forge", "config.yaml"); got != want {
		t.Errorf("DefaultPath() ends in %q, want %q", got, want)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		field  string
		want   error
	}{
		{"mode", func(c *Config) { c.Interpreter.Mode = "carrier-pigeon" }, "interpreter.mode", ErrInvalidMode},
		{"proxy url scheme", func(c *Config) { c.Interpreter.ProxyURL = "ftp://proxy" }, "interpreter.proxy_url", ErrInvalidConfig},
		{"api url host", func(c *Config) { c.Interpreter.APIURL = "https://" }, "interpreter.api_url", ErrInvalidConfig},
		{"model", func(c *Config) { c.Interpreter.Model = "" }, "interpreter.model", ErrInvalidConfig},
		{"timeout", func(c *Config) { c.Interpreter.Timeout = 0 }, "interpreter.timeout", ErrInvalidConfig},
		{"retries", func(c *Config) { c.Interpreter.Retries = 11 }, "interpreter.retries", ErrInvalidConfig},
		{"package manager", func(c *Config) { c.Install.PackageManager = "pip" }, "install.package_manager", ErrUnsupportedPackageManager},
		{"log level", func(c *Config) { c.Log.Level = "loud" }, "log.level", ErrInvalidConfig},
		{"log format", func(c *Config) { c.Log.Format = "xml" }, "log.format", ErrInvalidConfig},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := NewDefaultConfig()
			tt.mutate(cfg)

			err := Validate(cfg)
			if err == nil {
				t.Fatal("expected a validation error")
			}
			if !errors.Is(err, tt.want) {
				t.Errorf("error = %v, want %v", err, tt.want)
			}
			if !errors.Is(err, ErrInvalidConfig) {
				t.Errorf("error = %v, want ErrInvalidConfig", err)
			}

			var verrs *ValidationErrors
			if !errors.As(err, &verrs) {
				t.Fatalf("error = %T, want *ValidationErrors", err)
			}
			if len(verrs.Errors) != 1 {
				t.Fatalf("got %d errors, want 1: %v", len(verrs.Errors), verrs.Errors)
			}
			if got := verrs.Errors[0].Field; got != tt.field {
				t.Errorf("Field = %q, want %q", got, tt.field)
			}
		})
	}
}

func TestSlogLevel(t *testing.T) {
	tests := []struct {
		level string
		want  slog.Level
		ok    bool
	}{
		{"off", slog.LevelInfo, false},
		{"debug", slog.LevelDebug, true},
		{"INFO", slog.LevelInfo, true},
		{"warn", slog.LevelWarn, true},
		{"error", slog.LevelError, true},
	}
	for _, tt := range tests {
		got, ok := LogConfig{Level: tt.level}.SlogLevel()
		if ok != tt.ok || got != tt.want {
			t.Errorf("SlogLevel(%q) = %v, %v; want %v, %v", tt.level, got, ok, tt.want, tt.ok)
		}
	}
}
