// Package catalog defines the concrete blueprints forge knows about and
// maps technology choices onto them.
package catalog

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"slices"

	"github.com/forge-scaffold/forge/internal/blueprint"
	"github.com/forge-scaffold/forge/internal/shell"
	"github.com/forge-scaffold/forge/internal/template"
	"github.com/forge-scaffold/forge/pkg/models"
)

// ErrUnsupported indicates a technology choice with no blueprint.
var ErrUnsupported = errors.New("unsupported")

// Params carries the project-level choices static blueprints render into
// their files.
type Params struct {
	// ProjectName names generated modules, crates and databases.
	// Empty means the base name of the composition target.
	ProjectName string
	Database    models.Database
}

// Catalog builds blueprints. Generator-backed blueprints run their tools
// through the Runner; static ones write embedded trees through the Deployer.
type Catalog struct {
	runner   shell.Runner
	deployer template.Deployer
	out      io.Writer
	logger   *slog.Logger
}

// Option configures a Catalog.
type Option func(*Catalog)

// WithOutput sets where progress notes ("Creating Next.js project...") go.
func WithOutput(w io.Writer) Option {
	return func(c *Catalog) {
		if w != nil {
			c.out = w
		}
	}
}

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(c *Catalog) {
		if l != nil {
			c.logger = l
		}
	}
}

// New creates a Catalog.
func New(runner shell.Runner, deployer template.Deployer, opts ...Option) *Catalog {
	c := &Catalog{
		runner:   runner,
		deployer: deployer,
		out:      io.Discard,
		logger:   slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Frontend returns the blueprint for a frontend technology.
func (c *Catalog) Frontend(kind models.Frontend) (blueprint.Blueprint, error) {
	switch kind {
	case models.FrontendReact:
		return c.reactKitchenSink(), nil
	case models.FrontendNext:
		return c.nextJS(), nil
	case models.FrontendSvelte:
		return c.svelte(), nil
	case models.FrontendSvelteKit:
		return c.svelteKit(), nil
	default:
		return blueprint.Blueprint{}, fmt.Errorf("%w frontend type %q", ErrUnsupported, kind)
	}
}

// Backend returns the composable blueprint for a backend technology.
func (c *Catalog) Backend(kind models.Backend, p Params) (blueprint.Blueprint, error) {
	switch kind {
	case models.BackendFastAPI:
		return c.fastAPI(p), nil
	case models.BackendExpress:
		return c.express(p), nil
	case models.BackendTypeScriptPrisma:
		return c.typeScriptPrisma(p), nil
	case models.BackendGolang:
		return c.golang(p), nil
	case models.BackendRust:
		return c.rust(p), nil
	case models.BackendJava:
		return c.java(p), nil
	default:
		return blueprint.Blueprint{}, fmt.Errorf("%w backend type %q", ErrUnsupported, kind)
	}
}

// Lookup resolves a blueprint by its technology name, as typed on the
// command line.
func (c *Catalog) Lookup(name string, p Params) (blueprint.Blueprint, error) {
	if fe := models.Frontend(name); fe.IsValid() && fe != models.FrontendNone {
		return c.Frontend(fe)
	}
	if be := models.Backend(name); be.IsValid() && be != models.BackendNone {
		return c.Backend(be, p)
	}
	return blueprint.Blueprint{}, fmt.Errorf("%w blueprint %q (available: %v)", ErrUnsupported, name, Names())
}

// Files returns the paths a static blueprint writes into its target, or
// nil for generated blueprints and unknown names.
func (c *Catalog) Files(name string) []string {
	be := models.Backend(name)
	if c.deployer == nil || !be.IsValid() || be == models.BackendNone {
		return nil
	}
	return c.deployer.ListTemplates(name)
}

// Names returns every blueprint name Lookup accepts.
func Names() []string {
	var names []string
	for _, fe := range models.AllFrontends() {
		names = append(names, string(fe))
	}
	for _, be := range models.AllBackends() {
		names = append(names, string(be))
	}
	return slices.Clip(names)
}

// Port returns the port a backend listens on in development.
func Port(kind models.Backend) int {
	switch kind {
	case models.BackendExpress, models.BackendTypeScriptPrisma:
		return 3000
	case models.BackendGolang, models.BackendRust, models.BackendJava:
		return 8080
	default:
		return 8000
	}
}
