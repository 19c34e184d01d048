package config

import (
	"fmt"
	"log/slog"
	"net/url"
	"slices"
	"strings"

	"github.com/forge-scaffold/forge/internal/shell"
)

var (
	validModes      = []string{"proxy", "direct"}
	validLogLevels  = []string{"off", "debug", "info", "warn", "error"}
	validLogFormats = []string{"text", "json"}
)

// maxRetries caps interpreter retries.
const maxRetries = 10

// Validate checks the configuration for correctness.
func Validate(cfg *Config) error {
	var errs []ValidationError

	errs = append(errs, validateInterpreter(&cfg.Interpreter)...)
	errs = append(errs, validateInstall(&cfg.Install)...)
	errs = append(errs, validateLog(&cfg.Log)...)

	if len(errs) > 0 {
		return &ValidationErrors{Errors: errs}
	}
	return nil
}

func validateInterpreter(ic *InterpreterConfig) []ValidationError {
	var errs []ValidationError

	if !slices.Contains(validModes, ic.Mode) {
		errs = append(errs, ValidationError{
			Field:   "interpreter.mode",
			Message: fmt.Sprintf("must be one of: %s", strings.Join(validModes, ", ")),
			Value:   ic.Mode,
			Wrapped: ErrInvalidMode,
		})
	}

	for field, raw := range map[string]string{
		"interpreter.proxy_url": ic.ProxyURL,
		"interpreter.api_url":   ic.APIURL,
	} {
		if err := validateHTTPURL(raw); err != nil {
			errs = append(errs, ValidationError{
				Field:   field,
				Message: err.Error(),
				Value:   raw,
				Wrapped: ErrInvalidConfig,
			})
		}
	}

	if ic.Model == "" {
		errs = append(errs, ValidationError{
			Field:   "interpreter.model",
			Message: "required field is empty",
			Wrapped: ErrInvalidConfig,
		})
	}

	if ic.Timeout <= 0 {
		errs = append(errs, ValidationError{
			Field:   "interpreter.timeout",
			Message: "must be positive",
			Value:   ic.Timeout,
			Wrapped: ErrInvalidConfig,
		})
	}

	if ic.Retries < 0 || ic.Retries > maxRetries {
		errs = append(errs, ValidationError{
			Field:   "interpreter.retries",
			Message: fmt.Sprintf("must be between 0 and %d", maxRetries),
			Value:   ic.Retries,
			Wrapped: ErrInvalidConfig,
		})
	}

	slices.SortFunc(errs, func(a, b ValidationError) int { return strings.Compare(a.Field, b.Field) })
	return errs
}

func validateHTTPURL(raw string) error {
	u, err := url.Parse(raw)
	if err != nil {
		return fmt.Errorf("not a valid URL: %v", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("must be an http or https URL")
	}
	if u.Host == "" {
		return fmt.Errorf("missing host")
	}
	return nil
}

func validateInstall(ic *InstallConfig) []ValidationError {
	supported := shell.SupportedPackageManagers()
	if slices.Contains(supported, ic.PackageManager) {
		return nil
	}
	return []ValidationError{{
		Field:   "install.package_manager",
		Message: fmt.Sprintf("must be one of: %s", strings.Join(supported, ", ")),
		Value:   ic.PackageManager,
		Wrapped: ErrUnsupportedPackageManager,
	}}
}

func validateLog(lc *LogConfig) []ValidationError {
	var errs []ValidationError
	if !slices.Contains(validLogLevels, strings.ToLower(lc.Level)) {
		errs = append(errs, ValidationError{
			Field:   "log.level",
			Message: fmt.Sprintf("must be one of: %s", strings.Join(validLogLevels, ", ")),
			Value:   lc.Level,
			Wrapped: ErrInvalidConfig,
		})
	}
	if !slices.Contains(validLogFormats, strings.ToLower(lc.Format)) {
		errs = append(errs, ValidationError{
			Field:   "log.format",
			Message: fmt.Sprintf("must be one of: %s", strings.Join(validLogFormats, ", ")),
			Value:   lc.Format,
			Wrapped: ErrInvalidConfig,
		})
	}
	return errs
}

// SlogLevel maps Level to a slog level. ok is false when logging is off.
func (lc LogConfig) SlogLevel() (level slog.Level, ok bool) {
	switch strings.ToLower(lc.Level) {
	case "debug":
		return slog.LevelDebug, true
	case "info":
		return slog.LevelInfo, true
	case "warn":
		return slog.LevelWarn, true
	case "error":
		return slog.LevelError, true
	default:
		return slog.LevelInfo, false
	}
}
