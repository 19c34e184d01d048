package config

import "time"

// Config is the root configuration for forge.
type Config struct {
	Interpreter InterpreterConfig `yaml:"interpreter"`
	Install     InstallConfig     `yaml:"install"`
	Log         LogConfig         `yaml:"log"`
}

// InterpreterConfig controls how --from-prompt descriptions are interpreted.
type InterpreterConfig struct {
	// Mode is "proxy" (default) or "direct".
	Mode     string `yaml:"mode" envconfig:"FORGE_INTERPRETER_MODE"`
	ProxyURL string `yaml:"proxy_url" envconfig:"FORGE_PROXY_URL"`

	// APIKey is only read from the environment.
	APIKey string `yaml:"-" envconfig:"ANTHROPIC_API_KEY"`

	APIURL  string        `yaml:"api_url" envconfig:"FORGE_API_URL"`
	Model   string        `yaml:"model" envconfig:"FORGE_MODEL"`
	Timeout time.Duration `yaml:"timeout" envconfig:"FORGE_INTERPRETER_TIMEOUT"`
	Retries int           `yaml:"retries" envconfig:"FORGE_INTERPRETER_RETRIES"`
}

// InstallConfig controls dependency installation after composition.
type InstallConfig struct {
	PackageManager string `yaml:"package_manager" envconfig:"FORGE_PACKAGE_MANAGER"`
	Skip           bool   `yaml:"skip" envconfig:"FORGE_SKIP_INSTALL"`
}

// LogConfig controls diagnostic logging on stderr.
type LogConfig struct {
	Level  string `yaml:"level" envconfig:"FORGE_LOG_LEVEL"`
	Format string `yaml:"format" envconfig:"FORGE_LOG_FORMAT"`
}
