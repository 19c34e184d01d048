package models

import (
	"regexp"
)

// Frontend identifies a frontend technology.
type Frontend string

const (
	FrontendReact     Frontend = "react"
	FrontendNext      Frontend = "next"
	FrontendSvelte    Frontend = "svelte"
	FrontendSvelteKit Frontend = "sveltekit"
	FrontendNone      Frontend = "none"
)

// AllFrontends returns every selectable frontend, excluding none.
func AllFrontends() []Frontend {
	return []Frontend{FrontendReact, FrontendNext, FrontendSvelte, FrontendSvelteKit}
}

// IsValid reports whether f is a known frontend value, including none.
func (f Frontend) IsValid() bool {
	switch f {
	case FrontendReact, FrontendNext, FrontendSvelte, FrontendSvelteKit, FrontendNone:
		return true
	}
	return false
}

// Label returns a human readable name for the frontend.
func (f Frontend) Label() string {
	switch f {
	case FrontendReact:
		return "React (Vite kitchen sink)"
	case FrontendNext:
		return "Next.js"
	case FrontendSvelte:
		return "Svelte"
	case FrontendSvelteKit:
		return "SvelteKit"
	case FrontendNone:
		return "None"
	}
	return string(f)
}

// Backend identifies a backend technology.
type Backend string

const (
	BackendFastAPI          Backend = "fastapi"
	BackendExpress          Backend = "express"
	BackendTypeScriptPrisma Backend = "typescript-prisma"
	BackendGolang           Backend = "golang"
	BackendRust             Backend = "rust"
	BackendJava             Backend = "java"
	BackendNone             Backend = "none"
)

// AllBackends returns every selectable backend, excluding none.
func AllBackends() []Backend {
	return []Backend{
		BackendFastAPI,
		BackendExpress,
		BackendTypeScriptPrisma,
		BackendGolang,
		BackendRust,
		BackendJava,
	}
}

// IsValid reports whether b is a known backend value, including none.
func (b Backend) IsValid() bool {
	switch b {
	case BackendFastAPI, BackendExpress, BackendTypeScriptPrisma,
		BackendGolang, BackendRust, BackendJava, BackendNone:
		return true
	}
	return false
}

// Label returns a human readable name for the backend.
func (b Backend) Label() string {
	switch b {
	case BackendFastAPI:
		return "FastAPI (Python)"
	case BackendExpress:
		return "Express (TypeScript)"
	case BackendTypeScriptPrisma:
		return "Express + Prisma (TypeScript)"
	case BackendGolang:
		return "Go (gorilla/mux)"
	case BackendRust:
		return "Rust (Actix Web)"
	case BackendJava:
		return "Java (Spring Boot)"
	case BackendNone:
		return "None"
	}
	return string(b)
}

// Database identifies a database choice.
type Database string

const (
	DatabasePostgres Database = "postgres"
	DatabaseSQLite   Database = "sqlite"
	DatabaseNone     Database = "none"
)

// AllDatabases returns every selectable database, excluding none.
func AllDatabases() []Database {
	return []Database{DatabasePostgres, DatabaseSQLite}
}

// IsValid reports whether d is a known database value, including none.
func (d Database) IsValid() bool {
	switch d {
	case DatabasePostgres, DatabaseSQLite, DatabaseNone:
		return true
	}
	return false
}

// Label returns a human readable name for the database.
func (d Database) Label() string {
	switch d {
	case DatabasePostgres:
		return "PostgreSQL"
	case DatabaseSQLite:
		return "SQLite"
	case DatabaseNone:
		return "None"
	}
	return string(d)
}

// Layout is the directory shape a configuration produces.
type Layout string

const (
	LayoutFullStack    Layout = "full-stack"
	LayoutFrontendOnly Layout = "frontend-only"
	LayoutBackendOnly  Layout = "backend-only"
	LayoutEmpty        Layout = "empty"
)

// ProjectConfig is the structured description of a project to create.
// It is transient: nothing in forge persists it.
type ProjectConfig struct {
	ProjectName string   `json:"projectName" yaml:"project_name"`
	Frontend    Frontend `json:"frontend" yaml:"frontend"`
	Backend     Backend  `json:"backend" yaml:"backend"`
	Database    Database `json:"database" yaml:"database"`
	UseDocker   bool     `json:"useDocker" yaml:"use_docker"`
}

// HasFrontend reports whether a frontend other than none is selected.
func (c ProjectConfig) HasFrontend() bool {
	return c.Frontend != "" && c.Frontend != FrontendNone
}

// HasBackend reports whether a backend other than none is selected.
func (c ProjectConfig) HasBackend() bool {
	return c.Backend != "" && c.Backend != BackendNone
}

// Layout returns the directory shape for the configuration.
func (c ProjectConfig) Layout() Layout {
	switch {
	case c.HasFrontend() && c.HasBackend():
		return LayoutFullStack
	case c.HasFrontend():
		return LayoutFrontendOnly
	case c.HasBackend():
		return LayoutBackendOnly
	default:
		return LayoutEmpty
	}
}

var projectNamePattern = regexp.MustCompile(`^[A-Za-z0-9_-]+$`)

// ValidateProjectName checks a project name on its own. The wizard uses it
// to reject bad input while the user is still typing.
func ValidateProjectName(name string) error {
	if name == "" {
		return &ValidationError{Field: "projectName", Message: "project name is required", Wrapped: ErrInvalidConfig}
	}
	if !projectNamePattern.MatchString(name) {
		return &ValidationError{
			Field:   "projectName",
			Message: "project name can only contain letters, numbers, hyphens, and underscores",
			Value:   name,
			Wrapped: ErrInvalidConfig,
		}
	}
	return nil
}

// Validate checks every field and returns a *ValidationErrors listing all
// problems, or nil.
func (c ProjectConfig) Validate() error {
	var errs []ValidationError

	if err := ValidateProjectName(c.ProjectName); err != nil {
		errs = append(errs, *err.(*ValidationError))
	}
	if !c.Frontend.IsValid() {
		errs = append(errs, ValidationError{
			Field:   "frontend",
			Message: "must be one of: react, next, svelte, sveltekit, none",
			Value:   string(c.Frontend),
			Wrapped: ErrInvalidConfig,
		})
	}
	if !c.Backend.IsValid() {
		errs = append(errs, ValidationError{
			Field:   "backend",
			Message: "must be one of: fastapi, express, typescript-prisma, golang, rust, java, none",
			Value:   string(c.Backend),
			Wrapped: ErrInvalidConfig,
		})
	}
	if !c.Database.IsValid() {
		errs = append(errs, ValidationError{
			Field:   "database",
			Message: "must be one of: postgres, sqlite, none",
			Value:   string(c.Database),
			Wrapped: ErrInvalidConfig,
		})
	}
	if c.Frontend == FrontendNone && c.Backend == BackendNone {
		errs = append(errs, ValidationError{
			Field:   "frontend",
			Message: ErrNothingSelected.Error(),
			Wrapped: ErrNothingSelected,
		})
	}

	if len(errs) > 0 {
		return &ValidationErrors{Errors: errs}
	}
	return nil
}
