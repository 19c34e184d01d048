package wizard

import (
	"github.com/forge-scaffold/forge/pkg/models"
)

// Question IDs.
const (
	QuestionProjectName = "project_name"
	QuestionProjectType = "project_type"
	QuestionFrontend    = "frontend"
	QuestionBackend     = "backend"
	QuestionDatabase    = "database"
	QuestionDocker      = "docker"
)

var frontendHints = map[models.Frontend]string{
	models.FrontendReact:     "Vite + Tailwind + React Query",
	models.FrontendNext:      "Next.js 14, TypeScript, Tailwind CSS",
	models.FrontendSvelte:    "Svelte with Vite and TypeScript",
	models.FrontendSvelteKit: "SvelteKit with TypeScript",
}

var backendHints = map[models.Backend]string{
	models.BackendFastAPI:          "Python, PostgreSQL and Docker Compose",
	models.BackendExpress:          "Express.js with TypeScript",
	models.BackendTypeScriptPrisma: "Express.js, TypeScript and Prisma ORM",
	models.BackendGolang:           "Go with Gorilla Mux",
	models.BackendRust:             "Rust with Actix Web",
	models.BackendJava:             "Spring Boot with Spring Data JPA",
}

// DefaultQuestions returns the questions asked by `forge` with no flags:
// 1. Project name
// 2. Project type
// 3. Frontend (frontend and full-stack projects)
// 4. Backend (backend and full-stack projects)
// 5. Database (backends other than FastAPI)
// 6. Docker (backends other than FastAPI)
func DefaultQuestions() []Question {
	return []Question{
		{
			ID:          QuestionProjectName,
			Type:        QuestionTypeInput,
			Title:       "What is your project name?",
			Description: "Letters, numbers, hyphens and underscores.",
			Placeholder: "my-awesome-app",
			Required:    true,
			Validate:    models.ValidateProjectName,
		},
		{
			ID:    QuestionProjectType,
			Type:  QuestionTypeSelect,
			Title: "What type of project do you want to create?",
			// Default option must be first to avoid the huh v0.8.0 viewport
			// YOffset bug that hides options above the default.
			Options: []Option{
				{Label: "Full Stack", Value: ProjectTypeFullStack, Desc: "Frontend + Backend"},
				{Label: "Frontend", Value: ProjectTypeFrontend, Desc: "Single-page or server-rendered web app"},
				{Label: "Backend", Value: ProjectTypeBackend, Desc: "API server"},
			},
			Default:  ProjectTypeFullStack,
			Required: true,
		},
		{
			ID:        QuestionFrontend,
			Type:      QuestionTypeSelect,
			Title:     "Which frontend?",
			Options:   frontendOptions(),
			Default:   string(models.FrontendReact),
			Required:  true,
			Condition: (*WizardResult).WantsFrontend,
		},
		{
			ID:        QuestionBackend,
			Type:      QuestionTypeSelect,
			Title:     "Which backend?",
			Options:   backendOptions(),
			Default:   string(models.BackendFastAPI),
			Required:  true,
			Condition: (*WizardResult).WantsBackend,
		},
		{
			ID:        QuestionDatabase,
			Type:      QuestionTypeSelect,
			Title:     "Which database?",
			Options:   databaseOptions(),
			Default:   string(models.DatabasePostgres),
			Required:  true,
			Condition: configurableBackend,
		},
		{
			ID:          QuestionDocker,
			Type:        QuestionTypeSelect,
			Title:       "Add Docker support?",
			Description: "Dockerfile and docker-compose.yml for the backend.",
			Options: []Option{
				{Label: "Yes", Value: "yes"},
				{Label: "No", Value: "no"},
			},
			Default:   "yes",
			Required:  true,
			Condition: configurableBackend,
		},
	}
}

// configurableBackend is true once a backend other than FastAPI is chosen.
func configurableBackend(r *WizardResult) bool {
	return r.WantsBackend() && r.Backend != "" && r.Backend != string(models.BackendFastAPI)
}

func frontendOptions() []Option {
	opts := make([]Option, 0, len(models.AllFrontends()))
	for _, f := range models.AllFrontends() {
		opts = append(opts, Option{Label: f.Label(), Value: string(f), Desc: frontendHints[f]})
	}
	return opts
}

func backendOptions() []Option {
	opts := make([]Option, 0, len(models.AllBackends()))
	for _, b := range models.AllBackends() {
		opts = append(opts, Option{Label: b.Label(), Value: string(b), Desc: backendHints[b]})
	}
	return opts
}

func databaseOptions() []Option {
	opts := make([]Option, 0, len(models.AllDatabases())+1)
	for _, d := range models.AllDatabases() {
		opts = append(opts, Option{Label: d.Label(), Value: string(d)})
	}
	return append(opts, Option{Label: models.DatabaseNone.Label(), Value: string(models.DatabaseNone)})
}

// FilteredQuestions returns questions filtered by their conditions.
// Questions whose conditions return false are excluded.
func FilteredQuestions(questions []Question, result *WizardResult) []Question {
	filtered := make([]Question, 0, len(questions))
	for _, q := range questions {
		if q.Condition == nil || q.Condition(result) {
			filtered = append(filtered, q)
		}
	}
	return filtered
}

// QuestionByID finds a question by its ID.
func QuestionByID(questions []Question, id string) *Question {
	for i := range questions {
		if questions[i].ID == id {
			return &questions[i]
		}
	}
	return nil
}
