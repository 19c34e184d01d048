package catalog

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/forge-scaffold/forge/internal/blueprint"
	"github.com/forge-scaffold/forge/internal/shell"
)

// svelteAnswers drives the create-svelte prompts: skeleton template, then
// TypeScript, ESLint, Prettier and Playwright.
const svelteAnswers = "skeleton\n\nyes\nyes\nyes\nyes\n"

func (c *Catalog) reactKitchenSink() blueprint.Blueprint {
	return blueprint.Blueprint{
		Name: "react-kitchen-sink",
		// The generator installs its own dependencies.
		Scripts: map[string]string{
			"dev":     "vite",
			"build":   "tsc && vite build",
			"preview": "vite preview",
			"test":    "vitest",
		},
		Setup: c.generated("Kitchen Sink", func(stage string) shell.Command {
			return shell.Command{
				Name:  "npx",
				Args:  []string{"-y", "react-vite-kitchen-sink"},
				Stdin: stage + "\n\n",
			}
		}, nil),
	}
}

func (c *Catalog) nextJS() blueprint.Blueprint {
	return blueprint.Blueprint{
		Name: "nextjs",
		Dependencies: map[string]string{
			"next":      "^14.0.4",
			"react":     "^18.2.0",
			"react-dom": "^18.2.0",
		},
		DevDependencies: map[string]string{
			"@types/node":        "^20.10.5",
			"@types/react":       "^18.2.45",
			"@types/react-dom":   "^18.2.18",
			"typescript":         "^5.3.3",
			"eslint":             "^8.56.0",
			"eslint-config-next": "^14.0.4",
		},
		Scripts: map[string]string{
			"dev":   "next dev",
			"build": "next build",
			"start": "next start",
			"lint":  "next lint",
		},
		Setup: c.generated("Next.js", func(stage string) shell.Command {
			return shell.Command{
				Name: "npx",
				Args: []string{
					"create-next-app@latest", stage,
					"--typescript", "--tailwind", "--eslint", "--app",
					"--no-src-dir", "--import-alias", "@/*", "--yes",
				},
			}
		}, nil),
	}
}

func svelteDevDependencies() map[string]string {
	return map[string]string{
		"@sveltejs/vite-plugin-svelte": "^3.0.1",
		"@types/node":                  "^20.10.5",
		"typescript":                   "^5.3.3",
		"vite":                         "^5.0.8",
		"svelte-check":                 "^3.6.2",
		"tslib":                        "^2.6.2",
	}
}

func createSvelte(stage string) shell.Command {
	return shell.Command{
		Name:  "npm",
		Args:  []string{"create", "svelte@latest", stage},
		Stdin: svelteAnswers,
	}
}

func (c *Catalog) svelte() blueprint.Blueprint {
	return blueprint.Blueprint{
		Name:            "svelte",
		Dependencies:    map[string]string{"svelte": "^4.2.8"},
		DevDependencies: svelteDevDependencies(),
		Scripts: map[string]string{
			"dev":     "vite",
			"build":   "vite build",
			"preview": "vite preview",
			"check":   "svelte-check --tsconfig ./tsconfig.json",
		},
		Setup: c.generated("Svelte", createSvelte, nil),
	}
}

func (c *Catalog) svelteKit() blueprint.Blueprint {
	dev := svelteDevDependencies()
	dev["@sveltejs/adapter-auto"] = "^3.0.0"

	return blueprint.Blueprint{
		Name: "sveltekit",
		Dependencies: map[string]string{
			"@sveltejs/kit": "^2.0.0",
			"svelte":        "^4.2.8",
		},
		DevDependencies: dev,
		Scripts: map[string]string{
			"dev":     "vite dev",
			"build":   "vite build",
			"preview": "vite preview",
			"check":   "svelte-kit sync && svelte-check --tsconfig ./tsconfig.json",
		},
		Setup: c.generated("SvelteKit", createSvelte, ensureSvelteKit),
	}
}

// ensureSvelteKit declares @sveltejs/kit in the staged package.json when
// the generator left it out.
func ensureSvelteKit(stagePath string) error {
	if _, err := os.Stat(blueprint.ManifestPath(stagePath)); errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	m, _, err := blueprint.LoadManifest(stagePath)
	if err != nil {
		return err
	}
	if _, ok := m.Dependencies["@sveltejs/kit"]; ok {
		return nil
	}
	m.Dependencies["@sveltejs/kit"] = "^2.0.0"
	return m.Save(stagePath)
}

// generated returns a setup that runs an external generator through
// blueprint.Stage so the generator's output lands at the target.
func (c *Catalog) generated(label string, command func(stage string) shell.Command, prepare func(string) error) blueprint.SetupFunc {
	return func(ctx context.Context, target string) error {
		_, _ = fmt.Fprintf(c.out, "Creating %s project: %s...\n", label, filepath.Base(target))

		gen := func(ctx context.Context, dir, stage string) error {
			cmd := command(stage)
			cmd.Dir = dir
			c.logger.Debug("running generator", "cmd", cmd.String(), "dir", dir)
			return c.runner.Run(ctx, cmd)
		}
		return blueprint.Stage(ctx, target, gen, blueprint.StageOptions{Prepare: prepare})
	}
}
