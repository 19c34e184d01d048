package project

import (
	"fmt"
	"path"
	"strings"

	"github.com/forge-scaffold/forge/internal/catalog"
	"github.com/forge-scaffold/forge/internal/defs"
	"github.com/forge-scaffold/forge/pkg/models"
)

// NextSteps returns a markdown note telling the user how to start the
// project described by cfg. packageManager names the command used for
// package.json scripts.
func NextSteps(cfg models.ProjectConfig, packageManager string) string {
	if packageManager == "" {
		packageManager = "npm"
	}

	var b strings.Builder
	b.WriteString("## Next steps\n")

	frontendDir := cfg.ProjectName
	backendDir := path.Join(cfg.ProjectName, defs.BackendDir)
	if cfg.Layout() == models.LayoutFullStack {
		frontendDir = path.Join(cfg.ProjectName, defs.FrontendDir)
	}

	if cfg.HasFrontend() {
		writeSection(&b, "Frontend", frontendDir, packageManager+" run dev")
	}

	if cfg.HasBackend() {
		switch {
		case cfg.Backend == models.BackendFastAPI:
			// The FastAPI layout keeps docker-compose.yml at the project root.
			writeSection(&b, "Backend", cfg.ProjectName, "docker compose up --build")
		case cfg.UseDocker:
			writeSection(&b, "Backend", backendDir, "docker compose up --build")
		default:
			writeSection(&b, "Backend", backendDir, backendRunCommand(cfg.Backend, packageManager))
		}
	}

	b.WriteString("\n### URLs\n\n")
	if cfg.HasFrontend() {
		fmt.Fprintf(&b, "- Frontend: http://localhost:%d\n", frontendPort(cfg.Frontend))
	}
	if cfg.HasBackend() {
		port := catalog.Port(cfg.Backend)
		fmt.Fprintf(&b, "- Backend: http://localhost:%d\n", port)
		if cfg.Backend == models.BackendFastAPI {
			fmt.Fprintf(&b, "- API Docs: http://localhost:%d/docs\n", port)
		}
	}

	return b.String()
}

func writeSection(b *strings.Builder, title, dir, command string) {
	fmt.Fprintf(b, "\n### %s\n\n```bash\ncd %s\n%s\n```\n", title, dir, command)
}

func backendRunCommand(kind models.Backend, packageManager string) string {
	switch kind {
	case models.BackendExpress, models.BackendTypeScriptPrisma:
		return packageManager + " run dev"
	default:
		return packageManager + " run dev:api"
	}
}

func frontendPort(kind models.Frontend) int {
	if kind == models.FrontendNext {
		return 3000
	}
	return 5173
}
