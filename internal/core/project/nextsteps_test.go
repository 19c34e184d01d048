package project

import (
	"strings"
	"testing"

	"github.com/forge-scaffold/forge/pkg/models"
)

func TestNextSteps(t *testing.T) {
	tests := []struct {
		name    string
		cfg     models.ProjectConfig
		want    []string
		notWant []string
	}{
		{
			name: "frontend only",
			cfg:  models.ProjectConfig{ProjectName: "site", Frontend: models.FrontendReact, Backend: models.BackendNone},
			want: []string{"cd site\npnpm run dev", "Frontend: http://localhost:5173"},
			notWant: []string{"Backend:"},
		},
		{
			name: "full stack local",
			cfg:  models.ProjectConfig{ProjectName: "shop", Frontend: models.FrontendNext, Backend: models.BackendGolang},
			want: []string{
				"cd shop/frontend\npnpm run dev",
				"cd shop/backend\npnpm run dev:api",
				"Frontend: http://localhost:3000",
				"Backend: http://localhost:8080",
			},
			notWant: []string{"docker compose"},
		},
		{
			name: "backend docker",
			cfg:  models.ProjectConfig{ProjectName: "api", Frontend: models.FrontendNone, Backend: models.BackendExpress, UseDocker: true},
			want: []string{"cd api/backend\ndocker compose up --build", "Backend: http://localhost:3000"},
			notWant: []string{"Frontend:"},
		},
		{
			name: "fastapi",
			cfg:  models.ProjectConfig{ProjectName: "py", Frontend: models.FrontendNone, Backend: models.BackendFastAPI},
			want:    []string{"cd py\ndocker compose up --build", "API Docs: http://localhost:8000/docs"},
			notWant: []string{"uvicorn", "py/backend"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NextSteps(tt.cfg, "pnpm")
			for _, w := range tt.want {
				if !strings.Contains(got, w) {
					t.Errorf("NextSteps missing %q in:\n%s", w, got)
				}
			}
			for _, nw := range tt.notWant {
				if strings.Contains(got, nw) {
					t.Errorf("NextSteps should not contain %q in:\n%s", nw, got)
				}
			}
		})
	}
}

func TestNextStepsDefaultsPackageManager(t *testing.T) {
	got := NextSteps(models.ProjectConfig{ProjectName: "x", Frontend: models.FrontendSvelte, Backend: models.BackendNone}, "")
	if !strings.Contains(got, "npm run dev") {
		t.Errorf("NextSteps should fall back to npm, got:\n%s", got)
	}
}
