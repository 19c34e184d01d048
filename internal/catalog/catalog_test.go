package catalog

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"

	"github.com/forge-scaffold/forge/internal/blueprint"
	"github.com/forge-scaffold/forge/internal/shell"
	"github.com/forge-scaffold/forge/internal/template"
	"github.com/forge-scaffold/forge/pkg/models"
)

// generatorRunner mimics project generators: it creates the staged
// directory named on the command line (or in stdin) with a package.json.
type generatorRunner struct {
	calls    []shell.Command
	manifest string
	err      error
}

func (g *generatorRunner) Run(_ context.Context, cmd shell.Command) error {
	g.calls = append(g.calls, cmd)
	if g.err != nil {
		return g.err
	}
	stage := ""
	for _, a := range cmd.Args {
		if strings.Contains(a, "-temp-") {
			stage = a
		}
	}
	if stage == "" {
		stage, _, _ = strings.Cut(cmd.Stdin, "\n")
	}
	dir := filepath.Join(cmd.Dir, stage)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	manifest := g.manifest
	if manifest == "" {
		manifest = `{"name": "generated", "dependencies": {"svelte": "^4.0.0"}}`
	}
	return os.WriteFile(filepath.Join(dir, "package.json"), []byte(manifest), 0o644)
}

func newTestCatalog(t *testing.T, runner shell.Runner) *Catalog {
	t.Helper()
	d, err := template.NewEmbeddedDeployer()
	if err != nil {
		t.Fatalf("NewEmbeddedDeployer error: %v", err)
	}
	return New(runner, d)
}

func TestEveryEnumIsMapped(t *testing.T) {
	c := newTestCatalog(t, &generatorRunner{})

	for _, fe := range models.AllFrontends() {
		bp, err := c.Frontend(fe)
		if err != nil {
			t.Errorf("Frontend(%q) error: %v", fe, err)
			continue
		}
		if err := bp.Validate(); err != nil {
			t.Errorf("Frontend(%q) declaration invalid: %v", fe, err)
		}
	}
	for _, be := range models.AllBackends() {
		bp, err := c.Backend(be, Params{})
		if err != nil {
			t.Errorf("Backend(%q) error: %v", be, err)
			continue
		}
		if err := bp.Validate(); err != nil {
			t.Errorf("Backend(%q) declaration invalid: %v", be, err)
		}
	}
}

func TestUnsupportedKinds(t *testing.T) {
	c := newTestCatalog(t, &generatorRunner{})

	_, err := c.Frontend("angular")
	if !errors.Is(err, ErrUnsupported) || !strings.Contains(err.Error(), "unsupported frontend type") {
		t.Errorf("Frontend(angular) error = %v", err)
	}
	_, err = c.Frontend(models.FrontendNone)
	if !errors.Is(err, ErrUnsupported) {
		t.Errorf("Frontend(none) error = %v", err)
	}
	_, err = c.Backend("rails", Params{})
	if !errors.Is(err, ErrUnsupported) || !strings.Contains(err.Error(), "unsupported backend type") {
		t.Errorf("Backend(rails) error = %v", err)
	}
	_, err = c.Docker(models.BackendFastAPI, Params{})
	if !errors.Is(err, ErrUnsupported) {
		t.Errorf("Docker(fastapi) error = %v", err)
	}
	_, err = c.Lookup("cobol", Params{})
	if !errors.Is(err, ErrUnsupported) {
		t.Errorf("Lookup(cobol) error = %v", err)
	}
}

func TestLookup(t *testing.T) {
	c := newTestCatalog(t, &generatorRunner{})
	for _, name := range Names() {
		bp, err := c.Lookup(name, Params{})
		if err != nil {
			t.Errorf("Lookup(%q) error: %v", name, err)
			continue
		}
		if bp.Setup == nil {
			t.Errorf("Lookup(%q) has no setup", name)
		}
	}
	if len(Names()) != len(models.AllFrontends())+len(models.AllBackends()) {
		t.Errorf("Names() = %v", Names())
	}
}

func TestGeneratorBlueprints(t *testing.T) {
	tests := []struct {
		kind    models.Frontend
		command string
	}{
		{models.FrontendReact, "npx"},
		{models.FrontendNext, "npx"},
		{models.FrontendSvelte, "npm"},
		{models.FrontendSvelteKit, "npm"},
	}
	for _, tt := range tests {
		t.Run(string(tt.kind), func(t *testing.T) {
			runner := &generatorRunner{}
			c := newTestCatalog(t, runner)
			bp, err := c.Frontend(tt.kind)
			if err != nil {
				t.Fatal(err)
			}

			parent := t.TempDir()
			target := filepath.Join(parent, "web")
			if err := os.MkdirAll(target, 0o755); err != nil {
				t.Fatal(err)
			}
			if err := bp.Setup(context.Background(), target); err != nil {
				t.Fatalf("Setup error: %v", err)
			}

			if len(runner.calls) != 1 {
				t.Fatalf("expected 1 generator call, got %d", len(runner.calls))
			}
			call := runner.calls[0]
			if call.Name != tt.command {
				t.Errorf("command = %q, want %q", call.Name, tt.command)
			}
			if call.Dir != parent {
				t.Errorf("generator dir = %q, want %q", call.Dir, parent)
			}
			if _, err := os.Stat(filepath.Join(target, "package.json")); err != nil {
				t.Errorf("generated output not relocated: %v", err)
			}
			entries, _ := os.ReadDir(parent)
			if len(entries) != 1 {
				t.Errorf("staging leftovers in parent: %d entries", len(entries))
			}
		})
	}
}

func TestSvelteKitEnsuresKitDependency(t *testing.T) {
	c := newTestCatalog(t, &generatorRunner{manifest: `{"name": "kit", "devDependencies": {"vite": "^5.0.0"}}`})
	bp, err := c.Frontend(models.FrontendSvelteKit)
	if err != nil {
		t.Fatal(err)
	}

	target := filepath.Join(t.TempDir(), "kit")
	if err := bp.Setup(context.Background(), target); err != nil {
		t.Fatalf("Setup error: %v", err)
	}
	m, _, err := blueprint.LoadManifest(target)
	if err != nil {
		t.Fatal(err)
	}
	if m.Dependencies["@sveltejs/kit"] != "^2.0.0" {
		t.Errorf("@sveltejs/kit not ensured: %v", m.Dependencies)
	}
	if m.DevDependencies["vite"] == "" {
		t.Error("existing devDependencies lost")
	}
}

func TestGeneratorFailure(t *testing.T) {
	failure := &shell.CommandError{Command: "npx", ExitCode: 1}
	c := newTestCatalog(t, &generatorRunner{err: failure})
	bp, _ := c.Frontend(models.FrontendNext)

	parent := t.TempDir()
	err := bp.Setup(context.Background(), filepath.Join(parent, "web"))
	if !errors.Is(err, shell.ErrCommandFailed) {
		t.Errorf("expected ErrCommandFailed, got %v", err)
	}
}

func TestStaticBackendBlueprints(t *testing.T) {
	tests := []struct {
		kind  models.Backend
		files []string
		dirs  []string
	}{
		{models.BackendExpress, []string{"src/index.ts", "tsconfig.json", ".env.example"}, nil},
		{models.BackendTypeScriptPrisma, []string{"prisma/schema.prisma", "src/index.ts"}, nil},
		{models.BackendGolang, []string{"go.mod", "main.go"}, []string{"internal/handlers", "internal/models"}},
		{models.BackendRust, []string{"Cargo.toml", "src/main.rs"}, nil},
		{models.BackendJava, []string{"pom.xml", "mvnw"}, []string{"src/test/java"}},
		{models.BackendFastAPI, []string{"backend/main.py", "backend/requirements.txt"}, nil},
	}
	for _, tt := range tests {
		t.Run(string(tt.kind), func(t *testing.T) {
			c := newTestCatalog(t, &generatorRunner{})
			bp, err := c.Backend(tt.kind, Params{ProjectName: "shop", Database: models.DatabaseSQLite})
			if err != nil {
				t.Fatal(err)
			}
			target := t.TempDir()
			if err := bp.Setup(context.Background(), target); err != nil {
				t.Fatalf("Setup error: %v", err)
			}
			for _, f := range append(tt.files, tt.dirs...) {
				if _, err := os.Stat(filepath.Join(target, f)); err != nil {
					t.Errorf("expected %q: %v", f, err)
				}
			}
		})
	}
}

func TestRenderedBackendFiles(t *testing.T) {
	c := newTestCatalog(t, &generatorRunner{})

	t.Run("prisma_provider_follows_database", func(t *testing.T) {
		bp, _ := c.Backend(models.BackendTypeScriptPrisma, Params{ProjectName: "shop", Database: models.DatabaseSQLite})
		target := t.TempDir()
		if err := bp.Setup(context.Background(), target); err != nil {
			t.Fatal(err)
		}
		data, _ := os.ReadFile(filepath.Join(target, "prisma", "schema.prisma"))
		if !strings.Contains(string(data), `provider = "sqlite"`) {
			t.Errorf("schema.prisma:\n%s", data)
		}
	})

	t.Run("go_module_named_after_project", func(t *testing.T) {
		bp, _ := c.Backend(models.BackendGolang, Params{ProjectName: "shop"})
		target := t.TempDir()
		if err := bp.Setup(context.Background(), target); err != nil {
			t.Fatal(err)
		}
		data, _ := os.ReadFile(filepath.Join(target, "go.mod"))
		if !strings.HasPrefix(string(data), "module shop\n") {
			t.Errorf("go.mod:\n%s", data)
		}
	})
}

func TestDockerBlueprint(t *testing.T) {
	c := newTestCatalog(t, &generatorRunner{})

	tests := []struct {
		name     string
		db       models.Database
		wantDB   bool
		wantPort string
	}{
		{"postgres", models.DatabasePostgres, true, "3000:3000"},
		{"no_database", models.DatabaseNone, false, "3000:3000"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			bp, err := c.Docker(models.BackendExpress, Params{ProjectName: "shop", Database: tt.db})
			if err != nil {
				t.Fatal(err)
			}
			if bp.Scripts["docker:up"] == "" {
				t.Error("docker:up script missing")
			}
			target := t.TempDir()
			if err := bp.Setup(context.Background(), target); err != nil {
				t.Fatalf("Setup error: %v", err)
			}
			if _, err := os.Stat(filepath.Join(target, "Dockerfile")); err != nil {
				t.Errorf("Dockerfile missing: %v", err)
			}
			data, err := os.ReadFile(filepath.Join(target, "docker-compose.yml"))
			if err != nil {
				t.Fatal(err)
			}
			compose := string(data)
			if got := strings.Contains(compose, "image: postgres"); got != tt.wantDB {
				t.Errorf("postgres service present = %v, want %v:\n%s", got, tt.wantDB, compose)
			}
			if !strings.Contains(compose, tt.wantPort) {
				t.Errorf("port mapping %q missing:\n%s", tt.wantPort, compose)
			}
		})
	}

	for _, be := range models.AllBackends() {
		if be == models.BackendFastAPI {
			continue
		}
		if _, err := c.Docker(be, Params{}); err != nil {
			t.Errorf("Docker(%q) error: %v", be, err)
		}
	}
}

func TestComposeFastAPIBlueprint(t *testing.T) {
	c := newTestCatalog(t, &generatorRunner{})
	bp, err := c.Lookup("fastapi", Params{})
	if err != nil {
		t.Fatal(err)
	}

	var out strings.Builder
	work := t.TempDir()
	target := filepath.Join(work, "svc")
	composer := blueprint.NewComposer(blueprint.ComposerOptions{Out: &out, WorkDir: work})
	if err := composer.Compose(context.Background(), target, []blueprint.Blueprint{bp}); err != nil {
		t.Fatalf("Compose error: %v", err)
	}

	m, _, err := blueprint.LoadManifest(target)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(m.Scripts["dev:api"], "uvicorn main:app") {
		t.Errorf("dev:api = %q", m.Scripts["dev:api"])
	}
	if !strings.Contains(out.String(), "Python backend detected") {
		t.Errorf("expected python guidance, got %q", out.String())
	}
}

func TestNewDefaultLoggerIsSilent(t *testing.T) {
	c := New(nil, nil)
	if c.logger.Enabled(context.Background(), slog.LevelError) {
		t.Error("default logger should discard every level")
	}
}

func TestFiles(t *testing.T) {
	c := newTestCatalog(t, nil)

	files := c.Files("golang")
	for _, want := range []string{"main.go", "go.mod"} {
		if !slices.Contains(files, want) {
			t.Errorf("Files(golang) = %v, missing %s", files, want)
		}
	}
	for _, f := range files {
		if strings.HasSuffix(f, ".tmpl") {
			t.Errorf("Files(golang) should list destination paths, got %s", f)
		}
	}

	for _, name := range []string{"react", "sveltekit", "cobol", "none"} {
		if got := c.Files(name); got != nil {
			t.Errorf("Files(%s) = %v, want nil", name, got)
		}
	}
	if got := New(nil, nil).Files("golang"); got != nil {
		t.Errorf("Files without a deployer = %v, want nil", got)
	}
}
