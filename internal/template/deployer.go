package template

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"
)

// Deployer writes template trees from an embedded filesystem into a
// destination directory.
type Deployer interface {
	// Deploy writes every file under tree into dest, preserving the
	// relative layout, and returns the written paths relative to dest.
	// Files ending in .tmpl are rendered with tmplCtx and saved without the
	// suffix. Existing files are overwritten; unrelated files are untouched.
	Deploy(ctx context.Context, tree, dest string, tmplCtx *TemplateContext) ([]string, error)

	// ListTemplates returns the destination-relative paths of a tree.
	ListTemplates(tree string) []string
}

type deployer struct {
	fsys     fs.FS
	renderer Renderer
}

// NewDeployer creates a Deployer backed by the given filesystem.
// In production the fs.FS comes from go:embed; in tests use testing/fstest.MapFS.
func NewDeployer(fsys fs.FS) Deployer {
	return &deployer{fsys: fsys, renderer: NewRenderer(fsys)}
}

// NewEmbeddedDeployer creates a Deployer over the built-in templates.
func NewEmbeddedDeployer() (Deployer, error) {
	fsys, err := EmbeddedTemplates()
	if err != nil {
		return nil, fmt.Errorf("load embedded templates: %w", err)
	}
	return NewDeployer(fsys), nil
}

// Deploy walks tree and writes each file below dest.
func (d *deployer) Deploy(ctx context.Context, tree, dest string, tmplCtx *TemplateContext) ([]string, error) {
	dest = filepath.Clean(dest)
	if tmplCtx == nil {
		tmplCtx = NewTemplateContext(WithProject("", dest))
	}

	info, err := fs.Stat(d.fsys, tree)
	if err != nil || !info.IsDir() {
		return nil, fmt.Errorf("%w: tree %q", ErrTemplateNotFound, tree)
	}

	var written []string
	walkErr := fs.WalkDir(d.fsys, tree, func(p string, entry fs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		// Check context cancellation before each file
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		if entry.IsDir() {
			return nil
		}

		rel := strings.TrimPrefix(p, tree+"/")
		if err := validateDeployPath(dest, rel); err != nil {
			return err
		}

		var content []byte
		destRel := rel
		if before, ok := strings.CutSuffix(rel, ".tmpl"); ok {
			rendered, renderErr := d.renderer.Render(p, tmplCtx)
			if renderErr != nil {
				return fmt.Errorf("template render %q: %w", p, renderErr)
			}
			content = rendered
			destRel = before
		} else {
			raw, readErr := fs.ReadFile(d.fsys, p)
			if readErr != nil {
				return fmt.Errorf("template deploy read %q: %w", p, readErr)
			}
			content = raw
		}

		destPath := filepath.Join(dest, filepath.FromSlash(destRel))
		if err := os.MkdirAll(filepath.Dir(destPath), 0o755); err != nil {
			return fmt.Errorf("template deploy mkdir %q: %w", filepath.Dir(destPath), err)
		}

		if err := os.WriteFile(destPath, content, fileMode(destRel)); err != nil {
			return fmt.Errorf("template deploy write %q: %w", destPath, err)
		}
		// WriteFile keeps the mode of an existing file.
		if err := os.Chmod(destPath, fileMode(destRel)); err != nil {
			return fmt.Errorf("template deploy chmod %q: %w", destPath, err)
		}

		written = append(written, destRel)
		return nil
	})
	if walkErr != nil {
		return written, walkErr
	}
	return written, nil
}

// ListTemplates returns sorted destination paths of all files in tree.
func (d *deployer) ListTemplates(tree string) []string {
	var list []string
	_ = fs.WalkDir(d.fsys, tree, func(p string, entry fs.DirEntry, err error) error {
		if err != nil {
			return nil // skip errors during listing
		}
		if entry.IsDir() {
			return nil
		}
		rel := strings.TrimPrefix(p, tree+"/")
		list = append(list, strings.TrimSuffix(rel, ".tmpl"))
		return nil
	})
	sort.Strings(list)
	return list
}

// fileMode returns 0o755 for scripts and wrappers, 0o644 otherwise.
func fileMode(rel string) fs.FileMode {
	base := path.Base(rel)
	if strings.HasSuffix(base, ".sh") || base == "mvnw" {
		return 0o755
	}
	return 0o644
}

// validateDeployPath ensures a template path does not escape dest.
func validateDeployPath(dest, relPath string) error {
	cleaned := filepath.Clean(filepath.FromSlash(relPath))

	if filepath.IsAbs(cleaned) {
		return fmt.Errorf("%w: absolute path %q", ErrPathTraversal, relPath)
	}
	if cleaned == ".." || strings.HasPrefix(cleaned, ".."+string(filepath.Separator)) {
		return fmt.Errorf("%w: parent reference in %q", ErrPathTraversal, relPath)
	}

	absDest, err := filepath.Abs(dest)
	if err != nil {
		return fmt.Errorf("resolve destination: %w", err)
	}
	absPath := filepath.Join(absDest, cleaned)
	if !strings.HasPrefix(absPath, absDest+string(filepath.Separator)) {
		return fmt.Errorf("%w: %q escapes destination", ErrPathTraversal, relPath)
	}
	return nil
}
