// Package blueprint composes per-technology blueprints into a target
// directory and merges their package.json declarations.
package blueprint

import "errors"

// Sentinel errors for composition.
var (
	// ErrNoBlueprints indicates Compose was called with an empty list.
	ErrNoBlueprints = errors.New("no blueprints to compose")

	// ErrSetupFailed indicates a blueprint's setup action returned an error.
	ErrSetupFailed = errors.New("blueprint setup failed")

	// ErrInstallFailed indicates the dependency installation step failed.
	ErrInstallFailed = errors.New("dependency installation failed")

	// ErrStageMissing indicates an external generator exited without
	// producing its staged output directory.
	ErrStageMissing = errors.New("staged output directory not found")

	// ErrInvalidManifest indicates an existing package.json could not be parsed.
	ErrInvalidManifest = errors.New("invalid package.json")

	// ErrInvalidBlueprint indicates a blueprint declaration failed validation.
	ErrInvalidBlueprint = errors.New("invalid blueprint declaration")
)
