package config

import "time"

// Default value constants.
const (
	DefaultInterpreterMode = "proxy"
	DefaultProxyURL        = "https://forge-proxy.jjarrett21.workers.dev"
	DefaultAPIURL          = "https://api.anthropic.com/v1/messages"
	DefaultModel           = "claude-3-5-haiku-20241022"
	DefaultTimeout         = 60 * time.Second
	DefaultRetries         = 2

	DefaultPackageManager = "pnpm"

	// DefaultLogLevel is "off": diagnostics are silent unless asked for.
	DefaultLogLevel  = "off"
	DefaultLogFormat = "text"
)

// NewDefaultConfig returns a Config with all fields set to compiled defaults.
func NewDefaultConfig() *Config {
	return &Config{
		Interpreter: NewDefaultInterpreterConfig(),
		Install:     NewDefaultInstallConfig(),
		Log:         NewDefaultLogConfig(),
	}
}

// NewDefaultInterpreterConfig returns an InterpreterConfig with default values.
func NewDefaultInterpreterConfig() InterpreterConfig {
	return InterpreterConfig{
		Mode:     DefaultInterpreterMode,
		ProxyURL: DefaultProxyURL,
		APIURL:   DefaultAPIURL,
		Model:    DefaultModel,
		Timeout:  DefaultTimeout,
		Retries:  DefaultRetries,
	}
}

// NewDefaultInstallConfig returns an InstallConfig with default values.
func NewDefaultInstallConfig() InstallConfig {
	return InstallConfig{PackageManager: DefaultPackageManager}
}

// NewDefaultLogConfig returns a LogConfig with default values.
func NewDefaultLogConfig() LogConfig {
	return LogConfig{Level: DefaultLogLevel, Format: DefaultLogFormat}
}
