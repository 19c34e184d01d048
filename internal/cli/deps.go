// Package cli provides the Cobra command tree and dependency injection
// wiring for the forge CLI. This file defines the Dependencies struct
// (Composition Root) that wires all domain modules together.
package cli

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/forge-scaffold/forge/internal/blueprint"
	"github.com/forge-scaffold/forge/internal/catalog"
	"github.com/forge-scaffold/forge/internal/cli/wizard"
	"github.com/forge-scaffold/forge/internal/config"
	"github.com/forge-scaffold/forge/internal/core/project"
	"github.com/forge-scaffold/forge/internal/interpret"
	"github.com/forge-scaffold/forge/internal/shell"
	"github.com/forge-scaffold/forge/internal/template"
	"github.com/forge-scaffold/forge/internal/ui"
)

// Prompter asks the user for input. The default implementation uses the
// huh wizard; tests substitute canned answers.
type Prompter interface {
	RunWizard() (*wizard.WizardResult, error)
	AskDescription() (string, error)
	Confirm(title string) (bool, error)
}

type huhPrompter struct{}

func (huhPrompter) RunWizard() (*wizard.WizardResult, error) { return wizard.RunWithDefaults() }
func (huhPrompter) AskDescription() (string, error)          { return wizard.AskDescription() }
func (huhPrompter) Confirm(title string) (bool, error)       { return wizard.Confirm(title) }

// Dependencies holds all domain-level services used by CLI commands.
// This is the Composition Root: the only place where concrete types
// are instantiated and wired together.
type Dependencies struct {
	Config       *config.Config
	Logger       *slog.Logger
	Theme        *ui.Theme
	Headless     *ui.HeadlessManager
	Prompter     Prompter
	Catalog      *catalog.Catalog
	Composer     project.Composer
	Orchestrator project.Orchestrator

	// Interpreter is built on first use by EnsureInterpreter, so a missing
	// API key only matters for --from-prompt.
	Interpreter interpret.Interpreter
}

// InitOptions carries the global flags that shape the dependencies.
type InitOptions struct {
	ConfigPath  string
	Verbose     bool
	SkipInstall bool

	// Stdout receives generator output and user notes.
	Stdout io.Writer
	// Stderr receives generator errors and diagnostic logs.
	Stderr io.Writer
}

// deps is the global dependencies instance, initialized by InitDependencies.
// CLI commands access this through the package-level variable.
var deps *Dependencies

// InitDependencies loads the configuration and wires every domain module.
func InitDependencies(opts InitOptions) error {
	if opts.Stdout == nil {
		opts.Stdout = os.Stdout
	}
	if opts.Stderr == nil {
		opts.Stderr = os.Stderr
	}

	loader := config.NewLoader()
	cfg, err := loader.Load(opts.ConfigPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if opts.SkipInstall {
		cfg.Install.Skip = true
	}

	logger := newLogger(cfg.Log, opts.Verbose, opts.Stderr)

	workDir, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("get working directory: %w", err)
	}

	deployer, err := template.NewEmbeddedDeployer()
	if err != nil {
		return fmt.Errorf("load templates: %w", err)
	}

	runner := shell.NewExecRunner(opts.Stdout, opts.Stderr, logger)
	cat := catalog.New(runner, deployer,
		catalog.WithOutput(opts.Stdout),
		catalog.WithLogger(logger),
	)

	var installer blueprint.Installer
	if !cfg.Install.Skip {
		pi, err := shell.NewPackageInstaller(runner, cfg.Install.PackageManager)
		if err != nil {
			return err
		}
		installer = pi
	}
	composer := blueprint.NewComposer(blueprint.ComposerOptions{
		Installer: installer,
		Out:       opts.Stdout,
		WorkDir:   workDir,
		Logger:    logger,
	})

	orch, err := project.New(project.Options{
		WorkDir:    workDir,
		Blueprints: cat,
		Composer:   composer,
		Deployer:   deployer,
		Logger:     logger,
	})
	if err != nil {
		return fmt.Errorf("wire orchestrator: %w", err)
	}

	deps = &Dependencies{
		Config:       cfg,
		Logger:       logger,
		Theme:        ui.NewTheme(),
		Headless:     ui.NewHeadlessManager(),
		Prompter:     huhPrompter{},
		Catalog:      cat,
		Composer:     composer,
		Orchestrator: orch,
	}
	logger.Debug("dependencies initialized",
		"workdir", workDir,
		"config_file", loader.FileFound(),
		"interpreter_mode", cfg.Interpreter.Mode,
		"package_manager", cfg.Install.PackageManager,
		"skip_install", cfg.Install.Skip,
	)
	return nil
}

// GetDeps returns the current Dependencies instance.
// Returns nil if InitDependencies has not been called.
func GetDeps() *Dependencies {
	return deps
}

// SetDeps replaces the global dependencies (used for testing).
func SetDeps(d *Dependencies) {
	deps = d
}

// EnsureInterpreter lazily builds the interpreter from the configuration.
// Subsequent calls are no-ops once it exists.
func (d *Dependencies) EnsureInterpreter() (interpret.Interpreter, error) {
	if d.Interpreter != nil {
		return d.Interpreter, nil
	}
	ic := d.Config.Interpreter
	it, err := interpret.New(interpret.Mode(ic.Mode), ic.ProxyURL, ic.APIKey,
		interpret.WithTimeout(ic.Timeout),
		interpret.WithRetries(ic.Retries),
		interpret.WithAPIURL(ic.APIURL),
		interpret.WithModel(ic.Model),
		interpret.WithLogger(d.Logger),
	)
	if err != nil {
		return nil, err
	}
	d.Interpreter = it
	return it, nil
}

// packageManager returns the configured package manager for user hints.
func (d *Dependencies) packageManager() string {
	if d.Config == nil {
		return ""
	}
	return d.Config.Install.PackageManager
}

// newLogger builds the diagnostic logger. Logging is off unless the config
// names a level or verbose is set, which forces debug.
func newLogger(lc config.LogConfig, verbose bool, w io.Writer) *slog.Logger {
	level, ok := lc.SlogLevel()
	if verbose {
		level, ok = slog.LevelDebug, true
	}
	if !ok {
		return slog.New(slog.DiscardHandler)
	}

	handlerOpts := &slog.HandlerOptions{Level: level}
	if strings.EqualFold(lc.Format, "json") {
		return slog.New(slog.NewJSONHandler(w, handlerOpts))
	}
	return slog.New(slog.NewTextHandler(w, handlerOpts))
}
