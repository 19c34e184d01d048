package project

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/forge-scaffold/forge/internal/blueprint"
	"github.com/forge-scaffold/forge/internal/catalog"
	"github.com/forge-scaffold/forge/internal/defs"
	"github.com/forge-scaffold/forge/internal/template"
	"github.com/forge-scaffold/forge/pkg/models"
)

// Blueprints supplies blueprints by technology. *catalog.Catalog satisfies it.
type Blueprints interface {
	Frontend(kind models.Frontend) (blueprint.Blueprint, error)
	Backend(kind models.Backend, p catalog.Params) (blueprint.Blueprint, error)
	Docker(kind models.Backend, p catalog.Params) (blueprint.Blueprint, error)
}

// Composer applies blueprints to a target. *blueprint.Composer satisfies it.
type Composer interface {
	Compose(ctx context.Context, target string, blueprints []blueprint.Blueprint) error
}

// Options configures an Orchestrator.
type Options struct {
	// WorkDir is where projects are created. Defaults to the process
	// working directory.
	WorkDir string

	Blueprints Blueprints
	Composer   Composer

	// Deployer writes the FastAPI project layout.
	Deployer template.Deployer

	Logger *slog.Logger
}

// BackendOptions are the backend-related choices beyond the backend kind.
type BackendOptions struct {
	Database  models.Database
	UseDocker bool
}

// BackendOption configures a backend creation.
type BackendOption func(*BackendOptions)

// WithDatabase selects the database the backend is wired for.
func WithDatabase(db models.Database) BackendOption {
	return func(o *BackendOptions) { o.Database = db }
}

// WithDocker adds container files for the backend.
func WithDocker(enabled bool) BackendOption {
	return func(o *BackendOptions) { o.UseDocker = enabled }
}

// Result describes where a project was created.
type Result struct {
	Root        string
	Layout      models.Layout
	FrontendDir string // empty when no frontend was generated
	BackendDir  string // empty when no backend was generated
}

// Orchestrator creates projects from configurations.
type Orchestrator interface {
	// CreateProject validates cfg and creates the project it describes
	// under the working directory.
	CreateProject(ctx context.Context, cfg models.ProjectConfig) (*Result, error)

	// CreateFrontendProject creates a frontend at <workdir>/<name>.
	CreateFrontendProject(ctx context.Context, name string, kind models.Frontend) error

	// CreateBackendProject creates a backend at <workdir>/<name>/backend.
	CreateBackendProject(ctx context.Context, name string, kind models.Backend, opts ...BackendOption) error

	// CreateFullStackProject creates <workdir>/<name> with frontend/ and backend/.
	CreateFullStackProject(ctx context.Context, name string, fe models.Frontend, be models.Backend, opts ...BackendOption) error
}

type orchestrator struct {
	workDir    string
	blueprints Blueprints
	composer   Composer
	deployer   template.Deployer
	logger     *slog.Logger
}

// New creates an Orchestrator with the given dependencies.
func New(opts Options) (Orchestrator, error) {
	if opts.Blueprints == nil || opts.Composer == nil || opts.Deployer == nil {
		return nil, fmt.Errorf("project: blueprints, composer and deployer are required")
	}
	workDir := opts.WorkDir
	if workDir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("resolve working directory: %w", err)
		}
		workDir = wd
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &orchestrator{
		workDir:    workDir,
		blueprints: opts.Blueprints,
		composer:   opts.Composer,
		deployer:   opts.Deployer,
		logger:     logger,
	}, nil
}

// CreateProject dispatches on which of frontend and backend are selected.
func (o *orchestrator) CreateProject(ctx context.Context, cfg models.ProjectConfig) (*Result, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	root := filepath.Join(o.workDir, cfg.ProjectName)
	result := &Result{Root: root, Layout: cfg.Layout()}
	backendOpts := []BackendOption{WithDatabase(cfg.Database), WithDocker(cfg.UseDocker)}

	o.logger.Info("creating project",
		"name", cfg.ProjectName,
		"layout", result.Layout,
		"frontend", cfg.Frontend,
		"backend", cfg.Backend,
	)

	var err error
	switch result.Layout {
	case models.LayoutFullStack:
		result.FrontendDir = filepath.Join(root, defs.FrontendDir)
		result.BackendDir = filepath.Join(root, defs.BackendDir)
		err = o.CreateFullStackProject(ctx, cfg.ProjectName, cfg.Frontend, cfg.Backend, backendOpts...)
	case models.LayoutFrontendOnly:
		result.FrontendDir = root
		err = o.CreateFrontendProject(ctx, cfg.ProjectName, cfg.Frontend)
	case models.LayoutBackendOnly:
		result.BackendDir = filepath.Join(root, defs.BackendDir)
		err = o.CreateBackendProject(ctx, cfg.ProjectName, cfg.Backend, backendOpts...)
	default:
		// Validate already rejects this; kept for callers of a zero config.
		return nil, models.ErrNothingSelected
	}
	if err != nil {
		return nil, err
	}
	return result, nil
}

// CreateFrontendProject composes the frontend blueprint at <workdir>/<name>.
func (o *orchestrator) CreateFrontendProject(ctx context.Context, name string, kind models.Frontend) error {
	bp, err := o.blueprints.Frontend(kind)
	if err != nil {
		return err
	}

	target := filepath.Join(o.workDir, name)
	if err := o.composer.Compose(ctx, target, []blueprint.Blueprint{bp}); err != nil {
		return fmt.Errorf("create frontend %s: %w", name, err)
	}
	return nil
}

// CreateBackendProject generates the backend at <workdir>/<name>/backend.
// FastAPI uses its own layout with a root docker-compose.yml; every other
// backend goes through the composer.
func (o *orchestrator) CreateBackendProject(ctx context.Context, name string, kind models.Backend, opts ...BackendOption) error {
	bo := applyBackendOptions(opts)

	if kind == models.BackendFastAPI {
		return o.createFastAPIProject(ctx, name, bo)
	}

	bps, err := o.backendBlueprints(name, kind, bo)
	if err != nil {
		return err
	}

	target := filepath.Join(o.workDir, name, defs.BackendDir)
	if err := o.composer.Compose(ctx, target, bps); err != nil {
		return fmt.Errorf("create backend %s: %w", name, err)
	}
	return nil
}

// CreateFullStackProject creates the project root, generates the frontend
// under a temporary sibling name and moves it to frontend/, then generates
// the backend.
func (o *orchestrator) CreateFullStackProject(ctx context.Context, name string, fe models.Frontend, be models.Backend, opts ...BackendOption) error {
	// Resolve both blueprints before touching the filesystem.
	if _, err := o.blueprints.Frontend(fe); err != nil {
		return err
	}
	if be != models.BackendFastAPI {
		if _, err := o.backendBlueprints(name, be, applyBackendOptions(opts)); err != nil {
			return err
		}
	}

	root := filepath.Join(o.workDir, name)
	if err := os.MkdirAll(root, 0o755); err != nil {
		return fmt.Errorf("create project directory: %w", err)
	}

	// Step 1: Frontend, staged next to the project and moved into place.
	gen := func(ctx context.Context, _, stage string) error {
		return o.CreateFrontendProject(ctx, stage, fe)
	}
	stageOpts := blueprint.StageOptions{Dir: o.workDir, Prefix: name + "-frontend"}
	if err := blueprint.Stage(ctx, filepath.Join(root, defs.FrontendDir), gen, stageOpts); err != nil {
		return fmt.Errorf("create frontend for %s: %w", name, err)
	}

	// Step 2: Backend.
	return o.CreateBackendProject(ctx, name, be, opts...)
}

func (o *orchestrator) backendBlueprints(name string, kind models.Backend, bo BackendOptions) ([]blueprint.Blueprint, error) {
	params := catalog.Params{ProjectName: name, Database: bo.Database}

	bp, err := o.blueprints.Backend(kind, params)
	if err != nil {
		return nil, err
	}
	bps := []blueprint.Blueprint{bp}

	if bo.UseDocker {
		docker, err := o.blueprints.Docker(kind, params)
		if err != nil {
			return nil, err
		}
		bps = append(bps, docker)
	}
	return bps, nil
}

func applyBackendOptions(opts []BackendOption) BackendOptions {
	bo := BackendOptions{Database: models.DatabaseNone}
	for _, opt := range opts {
		opt(&bo)
	}
	return bo
}
