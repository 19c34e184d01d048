package project

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/forge-scaffold/forge/internal/catalog"
	"github.com/forge-scaffold/forge/internal/defs"
	"github.com/forge-scaffold/forge/internal/template"
	"github.com/forge-scaffold/forge/pkg/models"
)

// fastAPITree is the embedded layout for FastAPI projects: a backend/ package
// with its Dockerfile plus a docker-compose.yml at the project root.
const fastAPITree = "fastapi-legacy"

// createFastAPIProject writes the FastAPI layout directly, without the
// composer. The generated project always runs against PostgreSQL through
// docker compose, so the database and docker options are not consulted.
func (o *orchestrator) createFastAPIProject(ctx context.Context, name string, _ BackendOptions) error {
	root := filepath.Join(o.workDir, name)
	testsDir := filepath.Join(root, defs.BackendDir, "tests")
	if err := os.MkdirAll(testsDir, 0o755); err != nil {
		return fmt.Errorf("%w: create %s: %w", ErrCreateFailed, testsDir, err)
	}

	tmplCtx := template.NewTemplateContext(
		template.WithProject(name, root),
		template.WithBackend(models.BackendFastAPI, catalog.Port(models.BackendFastAPI)),
		template.WithDatabase(models.DatabasePostgres),
	)
	written, err := o.deployer.Deploy(ctx, fastAPITree, root, tmplCtx)
	if err != nil {
		return fmt.Errorf("%w: deploy fastapi project: %w", ErrCreateFailed, err)
	}

	o.logger.Info("created fastapi project", "root", root, "files", len(written))
	return nil
}
