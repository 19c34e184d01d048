package shell

import (
	"context"
	"fmt"
	"slices"
)

// DefaultPackageManager installs Node.js dependencies when none is configured.
const DefaultPackageManager = "pnpm"

// SupportedPackageManagers lists the package managers forge can drive.
func SupportedPackageManagers() []string {
	return []string{"pnpm", "npm", "yarn", "bun"}
}

// PackageInstaller runs "<manager> install" in a directory.
type PackageInstaller struct {
	runner  Runner
	manager string
}

// NewPackageInstaller creates an installer for the named package manager.
// An empty name selects DefaultPackageManager.
func NewPackageInstaller(runner Runner, manager string) (*PackageInstaller, error) {
	if manager == "" {
		manager = DefaultPackageManager
	}
	if !slices.Contains(SupportedPackageManagers(), manager) {
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedPackageManager, manager)
	}
	return &PackageInstaller{runner: runner, manager: manager}, nil
}

// Manager returns the package manager name.
func (i *PackageInstaller) Manager() string {
	return i.manager
}

// Install runs the package manager in dir and waits for it.
func (i *PackageInstaller) Install(ctx context.Context, dir string) error {
	if err := i.runner.Run(ctx, Command{Name: i.manager, Args: []string{"install"}, Dir: dir}); err != nil {
		return fmt.Errorf("%s install: %w", i.manager, err)
	}
	return nil
}
