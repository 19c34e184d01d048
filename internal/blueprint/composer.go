package blueprint

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/forge-scaffold/forge/internal/defs"
)

// Installer installs the packages declared in dir/package.json.
type Installer interface {
	Install(ctx context.Context, dir string) error
}

// ComposerOptions configures a Composer.
type ComposerOptions struct {
	// Installer runs when the merged manifest declares packages.
	// Nil disables installation.
	Installer Installer

	// Out receives user-facing notes such as Python setup guidance.
	// Defaults to io.Discard.
	Out io.Writer

	// WorkDir is the directory guidance paths are made relative to.
	// Defaults to the process working directory.
	WorkDir string

	Logger *slog.Logger
}

// Composer applies blueprints to a target directory.
type Composer struct {
	installer Installer
	out       io.Writer
	workDir   string
	logger    *slog.Logger
}

// NewComposer creates a Composer.
func NewComposer(opts ComposerOptions) *Composer {
	c := &Composer{
		installer: opts.Installer,
		out:       opts.Out,
		workDir:   opts.WorkDir,
		logger:    opts.Logger,
	}
	if c.out == nil {
		c.out = io.Discard
	}
	if c.logger == nil {
		c.logger = slog.New(slog.DiscardHandler)
	}
	return c
}

// Compose creates target if needed, runs every blueprint's setup in list
// order, merges their declarations into target/package.json (later
// blueprints win on key collisions), persists the manifest with
// type "module", and installs packages when any are declared.
//
// Steps never overlap. A failing step aborts the composition; files written
// by earlier steps stay on disk.
func (c *Composer) Compose(ctx context.Context, target string, blueprints []Blueprint) error {
	if len(blueprints) == 0 {
		return ErrNoBlueprints
	}

	// Step 1: Ensure the target directory exists.
	if err := os.MkdirAll(target, 0o755); err != nil {
		return fmt.Errorf("create target directory: %w", err)
	}

	// Step 2: Run setup actions in order.
	for _, bp := range blueprints {
		if bp.Setup == nil {
			continue
		}
		c.logger.Debug("running blueprint setup", "blueprint", bp.Name, "target", target)
		if err := bp.Setup(ctx, target); err != nil {
			return fmt.Errorf("%w: %s: %w", ErrSetupFailed, bp.Name, err)
		}
	}

	// Step 3: Load the manifest left by setups, or start a new one.
	manifest, found, err := LoadManifest(target)
	if err != nil {
		return err
	}
	c.logger.Debug("manifest loaded", "path", ManifestPath(target), "existing", found)

	// Step 4: Merge declarations in blueprint order.
	for _, bp := range blueprints {
		manifest.Merge(bp)
	}

	// Step 5: Force ES module mode.
	manifest.Type = ModuleType

	// Step 6: Persist.
	if err := manifest.Save(target); err != nil {
		return fmt.Errorf("save manifest: %w", err)
	}

	// Step 7: Install declared packages.
	if manifest.HasPackages() {
		if c.installer == nil {
			c.logger.Info("dependency installation skipped", "target", target)
		} else {
			_, _ = fmt.Fprintf(c.out, "Installing npm dependencies in %s...\n", target)
			if err := c.installer.Install(ctx, target); err != nil {
				return fmt.Errorf("%w: %w", ErrInstallFailed, err)
			}
		}
	}

	// Step 8: Point Python backends at their own setup.
	c.printPythonGuidance(target)

	return nil
}

// printPythonGuidance prints virtualenv instructions when target contains a
// Python backend. It never fails.
func (c *Composer) printPythonGuidance(target string) {
	backend := filepath.Join(target, defs.BackendDir)
	if _, err := os.Stat(filepath.Join(backend, defs.RequirementsTXT)); err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			c.logger.Debug("python backend check failed", "error", err)
		}
		return
	}

	rel := backend
	base := c.workDir
	if base == "" {
		if wd, err := os.Getwd(); err == nil {
			base = wd
		}
	}
	if base != "" {
		if r, err := filepath.Rel(base, backend); err == nil {
			rel = r
		}
	}

	_, _ = fmt.Fprintf(c.out, "\nPython backend detected. To set up:\n"+
		"  cd %s\n"+
		"  python -m venv venv\n"+
		"  source venv/bin/activate  # On Windows: venv\\Scripts\\activate\n"+
		"  pip install -r requirements.txt\n", rel)
}
