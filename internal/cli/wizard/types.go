// Package wizard provides the interactive huh-based wizard that collects a
// project configuration when forge runs without flags.
package wizard

import (
	"errors"

	"github.com/forge-scaffold/forge/pkg/models"
)

// Project types offered by the wizard.
const (
	ProjectTypeFrontend  = "frontend"
	ProjectTypeBackend   = "backend"
	ProjectTypeFullStack = "fullstack"
)

// WizardResult holds the user's selections from the wizard.
type WizardResult struct {
	ProjectName string // Project name (required)
	ProjectType string // frontend, backend, fullstack
	Frontend    string // Frontend technology, empty when not asked
	Backend     string // Backend technology, empty when not asked
	Database    string // Database, empty when not asked
	UseDocker   string // "yes" or "no", empty when not asked
}

// WantsFrontend reports whether the selected project type has a frontend.
func (r *WizardResult) WantsFrontend() bool {
	return r.ProjectType == ProjectTypeFrontend || r.ProjectType == ProjectTypeFullStack
}

// WantsBackend reports whether the selected project type has a backend.
func (r *WizardResult) WantsBackend() bool {
	return r.ProjectType == ProjectTypeBackend || r.ProjectType == ProjectTypeFullStack
}

// ToConfig converts the answers into a project configuration. Parts the
// user was not asked about become none.
func (r *WizardResult) ToConfig() models.ProjectConfig {
	cfg := models.ProjectConfig{
		ProjectName: r.ProjectName,
		Frontend:    models.FrontendNone,
		Backend:     models.BackendNone,
		Database:    models.DatabaseNone,
	}
	if r.WantsFrontend() && r.Frontend != "" {
		cfg.Frontend = models.Frontend(r.Frontend)
	}
	if r.WantsBackend() && r.Backend != "" {
		cfg.Backend = models.Backend(r.Backend)
		cfg.UseDocker = r.UseDocker == "yes"
		if r.Database != "" {
			cfg.Database = models.Database(r.Database)
		}
		// The FastAPI layout always ships PostgreSQL via docker compose.
		if cfg.Backend == models.BackendFastAPI {
			cfg.Database = models.DatabasePostgres
			cfg.UseDocker = true
		}
	}
	return cfg
}

// QuestionType represents the type of wizard question.
type QuestionType int

const (
	// QuestionTypeSelect is a single-choice selection question.
	QuestionTypeSelect QuestionType = iota
	// QuestionTypeInput is a text input question.
	QuestionTypeInput
)

// Question defines a single wizard question.
type Question struct {
	ID          string                   // Unique identifier
	Type        QuestionType             // Select or Input
	Title       string                   // Question title
	Description string                   // Additional description
	Placeholder string                   // Placeholder for input questions
	Options     []Option                 // Options for select questions
	Default     string                   // Default value
	Required    bool                     // Whether the field is required
	Validate    func(string) error       // Extra validation for input questions
	Condition   func(*WizardResult) bool // Condition for showing this question
}

// Option represents a selectable option.
type Option struct {
	Label string // Display label
	Value string // Actual value stored
	Desc  string // Optional description
}

// Error definitions for the wizard package.
var (
	// ErrCancelled is returned when the user cancels the wizard.
	ErrCancelled = errors.New("operation cancelled")
	// ErrNoQuestions is returned when no questions are provided.
	ErrNoQuestions = errors.New("no questions provided")
	// ErrRequired is returned when a required answer is empty.
	ErrRequired = errors.New("this field is required")
)
