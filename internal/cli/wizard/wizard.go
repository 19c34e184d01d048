package wizard

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/huh"
)

// Run executes the wizard and returns the result.
// Each question runs as its own independent huh.Form to avoid the huh v0.8.x
// YOffset scroll bug that occurs when multiple groups share a single viewport.
func Run(questions []Question) (*WizardResult, error) {
	if len(questions) == 0 {
		return nil, ErrNoQuestions
	}

	result := &WizardResult{}
	theme := newForgeWizardTheme()

	for i := range questions {
		q := &questions[i]

		// Skip questions whose condition is not met by earlier answers.
		if q.Condition != nil && !q.Condition(result) {
			continue
		}

		form := huh.NewForm(buildQuestionGroup(q, result)).
			WithTheme(theme).
			WithAccessible(false)

		if err := runForm(form); err != nil {
			return nil, err
		}
	}

	return result, nil
}

// RunWithDefaults runs the wizard with DefaultQuestions.
func RunWithDefaults() (*WizardResult, error) {
	return Run(DefaultQuestions())
}

// AskDescription prompts for a free-text project description.
func AskDescription() (string, error) {
	var description string
	field := huh.NewText().
		Title("Describe the project you want to build:").
		Placeholder("I want a web app with React UI, FastAPI backend, and Postgres. Use Docker.").
		Value(&description).
		Validate(func(s string) error {
			if strings.TrimSpace(s) == "" {
				return errors.New("project description is required")
			}
			return nil
		})

	form := huh.NewForm(huh.NewGroup(field)).WithTheme(newForgeWizardTheme())
	if err := runForm(form); err != nil {
		return "", err
	}
	return strings.TrimSpace(description), nil
}

// Confirm asks a yes/no question defaulting to yes.
func Confirm(title string) (bool, error) {
	confirmed := true
	field := huh.NewConfirm().
		Title(title).
		Affirmative("Yes").
		Negative("No").
		Value(&confirmed)

	form := huh.NewForm(huh.NewGroup(field)).WithTheme(newForgeWizardTheme())
	if err := runForm(form); err != nil {
		return false, err
	}
	return confirmed, nil
}

func runForm(form *huh.Form) error {
	if err := form.Run(); err != nil {
		if errors.Is(err, huh.ErrUserAborted) {
			return ErrCancelled
		}
		return fmt.Errorf("wizard error: %w", err)
	}
	return nil
}

// buildQuestionGroup creates a huh.Group for a single question.
// Conditional questions use WithHideFunc to check visibility at runtime.
func buildQuestionGroup(q *Question, result *WizardResult) *huh.Group {
	var field huh.Field

	switch q.Type {
	case QuestionTypeSelect:
		field = buildSelectField(q, result)
	case QuestionTypeInput:
		field = buildInputField(q, result)
	}

	g := huh.NewGroup(field)

	if q.Condition != nil {
		cond := q.Condition
		g = g.WithHideFunc(func() bool {
			return !cond(result)
		})
	}

	return g
}

// buildSelectField creates a huh.Select field for a select-type question.
// Options are static: OptionsFunc forces a fixed height in huh v0.8.x,
// which resets the viewport offset on every update.
func buildSelectField(q *Question, result *WizardResult) *huh.Select[string] {
	selected := q.Default
	// Record the default so an untouched select still yields an answer.
	saveAnswer(q.ID, selected, result)

	opts := make([]huh.Option[string], len(q.Options))
	for i, opt := range q.Options {
		key := opt.Label
		if opt.Desc != "" {
			key = opt.Label + " - " + opt.Desc
		}
		opts[i] = huh.NewOption(key, opt.Value)
	}

	sel := huh.NewSelect[string]().
		Title(q.Title).
		Description(q.Description).
		Options(opts...).
		Value(&selected)

	qID := q.ID
	sel.Validate(func(val string) error {
		saveAnswer(qID, val, result)
		return nil
	})

	return sel
}

// buildInputField creates a huh.Input field for an input-type question.
func buildInputField(q *Question, result *WizardResult) *huh.Input {
	value := q.Default

	inp := huh.NewInput().
		Title(q.Title).
		Description(q.Description).
		Value(&value)

	if q.Placeholder != "" {
		inp = inp.Placeholder(q.Placeholder)
	} else if q.Default != "" {
		inp = inp.Placeholder(q.Default)
	}

	qID := q.ID
	inp = inp.Validate(func(val string) error {
		v, err := checkInput(q, val)
		if err != nil {
			return err
		}
		saveAnswer(qID, v, result)
		return nil
	})

	return inp
}

// checkInput trims val, applies the default and runs the question's checks.
func checkInput(q *Question, val string) (string, error) {
	v := strings.TrimSpace(val)
	if v == "" && q.Default != "" {
		v = q.Default
	}
	if v == "" {
		if q.Required {
			return "", ErrRequired
		}
		return v, nil
	}
	if q.Validate != nil {
		if err := q.Validate(v); err != nil {
			return "", err
		}
	}
	return v, nil
}

// saveAnswer stores an answer in the result.
func saveAnswer(id, value string, result *WizardResult) {
	switch id {
	case QuestionProjectName:
		result.ProjectName = value
	case QuestionProjectType:
		result.ProjectType = value
	case QuestionFrontend:
		result.Frontend = value
	case QuestionBackend:
		result.Backend = value
	case QuestionDatabase:
		result.Database = value
	case QuestionDocker:
		result.UseDocker = value
	}
}
