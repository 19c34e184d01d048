package catalog

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/forge-scaffold/forge/internal/blueprint"
	"github.com/forge-scaffold/forge/internal/template"
	"github.com/forge-scaffold/forge/pkg/models"
)

func expressDependencies() map[string]string {
	return map[string]string{
		"express": "^4.18.2",
		"cors":    "^2.8.5",
		"dotenv":  "^16.3.1",
	}
}

func expressDevDependencies() map[string]string {
	return map[string]string{
		"@types/express": "^4.17.21",
		"@types/cors":    "^2.8.17",
		"@types/node":    "^20.10.5",
		"typescript":     "^5.3.3",
		"tsx":            "^4.7.0",
		"nodemon":        "^3.0.2",
	}
}

func (c *Catalog) express(p Params) blueprint.Blueprint {
	return blueprint.Blueprint{
		Name:            "express",
		Dependencies:    expressDependencies(),
		DevDependencies: expressDevDependencies(),
		Scripts: map[string]string{
			"dev":   "tsx watch src/index.ts",
			"build": "tsc",
			"start": "node dist/index.js",
		},
		Setup: c.deploy("express", models.BackendExpress, p),
	}
}

func (c *Catalog) typeScriptPrisma(p Params) blueprint.Blueprint {
	deps := expressDependencies()
	deps["@prisma/client"] = "^5.7.0"
	dev := expressDevDependencies()
	dev["prisma"] = "^5.7.0"

	return blueprint.Blueprint{
		Name:            "typescript-prisma",
		Dependencies:    deps,
		DevDependencies: dev,
		Scripts: map[string]string{
			"dev":         "tsx watch src/index.ts",
			"build":       "tsc && prisma generate",
			"start":       "node dist/index.js",
			"db:generate": "prisma generate",
			"db:push":     "prisma db push",
			"db:migrate":  "prisma migrate dev",
			"db:studio":   "prisma studio",
		},
		Setup: c.deploy("typescript-prisma", models.BackendTypeScriptPrisma, p),
	}
}

func (c *Catalog) golang(p Params) blueprint.Blueprint {
	return blueprint.Blueprint{
		Name: "golang",
		Scripts: map[string]string{
			"dev:api":   "go run main.go",
			"build:api": "go build -o bin/server main.go",
		},
		Setup: c.deploy("golang", models.BackendGolang, p, "internal/handlers", "internal/models"),
	}
}

func (c *Catalog) rust(p Params) blueprint.Blueprint {
	return blueprint.Blueprint{
		Name: "rust",
		Scripts: map[string]string{
			"dev:api":   "cargo run",
			"build:api": "cargo build --release",
			"test:api":  "cargo test",
		},
		Setup: c.deploy("rust", models.BackendRust, p),
	}
}

func (c *Catalog) java(p Params) blueprint.Blueprint {
	return blueprint.Blueprint{
		Name: "java",
		Scripts: map[string]string{
			"dev:api":   "./mvnw spring-boot:run",
			"build:api": "./mvnw clean package",
			"start:api": "java -jar target/*.jar",
		},
		Setup: c.deploy("java", models.BackendJava, p, "src/test/java"),
	}
}

// fastAPI writes a single-file FastAPI app under backend/. Projects created
// through the orchestrator use the fuller layout in internal/core/project.
func (c *Catalog) fastAPI(p Params) blueprint.Blueprint {
	return blueprint.Blueprint{
		Name: "fastapi",
		Scripts: map[string]string{
			"dev:api": "cd backend && python -m uvicorn main:app --reload --port 8000",
		},
		Setup: c.deploy("fastapi", models.BackendFastAPI, p),
	}
}

// Docker returns a blueprint adding a Dockerfile and a compose file (with a
// PostgreSQL service when the database is postgres) for a backend.
func (c *Catalog) Docker(kind models.Backend, p Params) (blueprint.Blueprint, error) {
	var runtime string
	switch kind {
	case models.BackendExpress, models.BackendTypeScriptPrisma:
		runtime = "node"
	case models.BackendGolang:
		runtime = "go"
	case models.BackendRust:
		runtime = "rust"
	case models.BackendJava:
		runtime = "java"
	default:
		return blueprint.Blueprint{}, fmt.Errorf("%w docker backend type %q", ErrUnsupported, kind)
	}

	return blueprint.Blueprint{
		Name: "docker-" + runtime,
		Scripts: map[string]string{
			"docker:up":   "docker compose up --build",
			"docker:down": "docker compose down",
		},
		Setup: func(ctx context.Context, target string) error {
			tmplCtx := c.templateContext(kind, p, target)
			for _, tree := range []string{"docker/" + runtime, "docker/compose"} {
				if _, err := c.deployer.Deploy(ctx, tree, target, tmplCtx); err != nil {
					return fmt.Errorf("deploy %s: %w", tree, err)
				}
			}
			return nil
		},
	}, nil
}

// deploy returns a setup writing an embedded tree into the target, after
// creating any extra empty directories.
func (c *Catalog) deploy(tree string, kind models.Backend, p Params, dirs ...string) blueprint.SetupFunc {
	return func(ctx context.Context, target string) error {
		for _, d := range dirs {
			if err := os.MkdirAll(filepath.Join(target, filepath.FromSlash(d)), 0o755); err != nil {
				return fmt.Errorf("create %s: %w", d, err)
			}
		}
		written, err := c.deployer.Deploy(ctx, tree, target, c.templateContext(kind, p, target))
		if err != nil {
			return fmt.Errorf("deploy %s: %w", tree, err)
		}
		c.logger.Debug("deployed template tree", "tree", tree, "target", target, "files", len(written))
		return nil
	}
}

func (c *Catalog) templateContext(kind models.Backend, p Params, target string) *template.TemplateContext {
	return template.NewTemplateContext(
		template.WithProject(p.ProjectName, target),
		template.WithBackend(kind, Port(kind)),
		template.WithDatabase(p.Database),
	)
}
