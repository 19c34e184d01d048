package blueprint

import (
	"context"
	"errors"
	"fmt"
	"maps"
	"slices"
	"strings"

	"github.com/Masterminds/semver/v3"
)

// SetupFunc performs a blueprint's filesystem work inside target.
//
// Setups of one composition run strictly in list order, each seeing every
// write of the setups before it, including a package.json an earlier setup
// (or generator) produced. The context is only used for external processes.
type SetupFunc func(ctx context.Context, target string) error

// Blueprint is a reusable unit describing one technology's contribution to
// a project: package declarations, scripts, and a setup action.
//
// Blueprints are immutable values. The Composer never modifies them, so the
// same Blueprint may be composed any number of times.
type Blueprint struct {
	// Name is used for display and logging only.
	Name string

	Dependencies    map[string]string
	DevDependencies map[string]string
	Scripts         map[string]string

	Setup SetupFunc
}

// HasPackages reports whether the blueprint declares any dependency.
func (b Blueprint) HasPackages() bool {
	return len(b.Dependencies) > 0 || len(b.DevDependencies) > 0
}

// ScriptNames returns the declared script names in sorted order.
func (b Blueprint) ScriptNames() []string {
	return slices.Sorted(maps.Keys(b.Scripts))
}

// Validate checks the declaration: a setup action must exist, every version
// constraint must parse, and scripts must not be blank.
func (b Blueprint) Validate() error {
	var errs []error
	if b.Setup == nil {
		errs = append(errs, fmt.Errorf("%s: missing setup action", b.Name))
	}
	for _, group := range []struct {
		kind string
		deps map[string]string
	}{
		{"dependency", b.Dependencies},
		{"devDependency", b.DevDependencies},
	} {
		for _, pkg := range slices.Sorted(maps.Keys(group.deps)) {
			if _, err := semver.NewConstraint(group.deps[pkg]); err != nil {
				errs = append(errs, fmt.Errorf("%s: %s %s: constraint %q: %w", b.Name, group.kind, pkg, group.deps[pkg], err))
			}
		}
	}
	for _, name := range b.ScriptNames() {
		if strings.TrimSpace(b.Scripts[name]) == "" {
			errs = append(errs, fmt.Errorf("%s: script %q is empty", b.Name, name))
		}
	}
	if len(errs) > 0 {
		return fmt.Errorf("%w: %w", ErrInvalidBlueprint, errors.Join(errs...))
	}
	return nil
}
