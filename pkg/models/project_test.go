package models_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/forge-scaffold/forge/pkg/models"
)

func TestEnumsAreValid(t *testing.T) {
	for _, fe := range models.AllFrontends() {
		if !fe.IsValid() {
			t.Errorf("frontend %q should be valid", fe)
		}
	}
	for _, be := range models.AllBackends() {
		if !be.IsValid() {
			t.Errorf("backend %q should be valid", be)
		}
	}
	for _, db := range models.AllDatabases() {
		if !db.IsValid() {
			t.Errorf("database %q should be valid", db)
		}
	}
	if models.Frontend("angular").IsValid() {
		t.Error("angular should not be a valid frontend")
	}
	if models.Backend("").IsValid() {
		t.Error("empty backend should not be valid")
	}
}

func TestProjectConfigLayout(t *testing.T) {
	tests := []struct {
		name string
		fe   models.Frontend
		be   models.Backend
		want models.Layout
	}{
		{"full stack", models.FrontendReact, models.BackendFastAPI, models.LayoutFullStack},
		{"frontend only", models.FrontendNext, models.BackendNone, models.LayoutFrontendOnly},
		{"backend only", models.FrontendNone, models.BackendGolang, models.LayoutBackendOnly},
		{"nothing", models.FrontendNone, models.BackendNone, models.LayoutEmpty},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := models.ProjectConfig{ProjectName: "app", Frontend: tt.fe, Backend: tt.be, Database: models.DatabaseNone}
			if got := cfg.Layout(); got != tt.want {
				t.Errorf("Layout() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestProjectConfigValidate(t *testing.T) {
	valid := models.ProjectConfig{
		ProjectName: "my-app_2",
		Frontend:    models.FrontendReact,
		Backend:     models.BackendExpress,
		Database:    models.DatabasePostgres,
		UseDocker:   true,
	}

	t.Run("valid_config", func(t *testing.T) {
		if err := valid.Validate(); err != nil {
			t.Fatalf("Validate() error: %v", err)
		}
	})

	t.Run("bad_project_names", func(t *testing.T) {
		for _, name := range []string{"", "my app", "app/../x", "app.js"} {
			cfg := valid
			cfg.ProjectName = name
			err := cfg.Validate()
			if !errors.Is(err, models.ErrInvalidConfig) {
				t.Errorf("name %q: expected ErrInvalidConfig, got %v", name, err)
			}
		}
	})

	t.Run("unknown_enums_reported_together", func(t *testing.T) {
		cfg := valid
		cfg.Frontend = "angular"
		cfg.Backend = "rails"
		cfg.Database = "mongo"
		err := cfg.Validate()

		var verrs *models.ValidationErrors
		if !errors.As(err, &verrs) {
			t.Fatalf("expected *ValidationErrors, got %T", err)
		}
		if len(verrs.Errors) != 3 {
			t.Errorf("expected 3 errors, got %d: %v", len(verrs.Errors), err)
		}
	})

	t.Run("nothing_selected", func(t *testing.T) {
		cfg := valid
		cfg.Frontend = models.FrontendNone
		cfg.Backend = models.BackendNone
		err := cfg.Validate()
		if !errors.Is(err, models.ErrNothingSelected) {
			t.Fatalf("expected ErrNothingSelected, got %v", err)
		}
		if !errors.Is(err, models.ErrInvalidConfig) {
			t.Error("nothing selected should also be an invalid configuration")
		}
		if !strings.Contains(err.Error(), "at least one of frontend or backend") {
			t.Errorf("unexpected message: %v", err)
		}
	})
}

func TestValidateProjectName(t *testing.T) {
	if err := models.ValidateProjectName("Forge_App-1"); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
	err := models.ValidateProjectName("bad name")
	if err == nil || !strings.Contains(err.Error(), "letters, numbers, hyphens, and underscores") {
		t.Errorf("unexpected error: %v", err)
	}
}
