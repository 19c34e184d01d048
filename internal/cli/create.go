package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/forge-scaffold/forge/internal/cli/wizard"
	"github.com/forge-scaffold/forge/internal/core/project"
	"github.com/forge-scaffold/forge/internal/interpret"
	"github.com/forge-scaffold/forge/internal/ui"
	"github.com/forge-scaffold/forge/pkg/models"
)

// ErrNeedsTerminal indicates a prompt was required but stdin or stdout is
// not a terminal.
var ErrNeedsTerminal = errors.New("interactive input needs a terminal")

// configFlags are the flags that select the non-interactive flow.
var configFlags = []string{"name", "frontend", "backend", "database", "docker"}

// runCreate resolves a project configuration from the wizard, a description
// or flags, then creates the project and prints the next steps.
func runCreate(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	out := cmd.OutOrStdout()

	cfg, err := resolveConfig(ctx, cmd, args)
	if errors.Is(err, wizard.ErrCancelled) {
		_, _ = fmt.Fprintln(out, cliMuted.Render("Cancelled."))
		return nil
	}
	if err != nil {
		return err
	}

	_, _ = fmt.Fprintln(out, renderSummary(cfg, summaryStyles()))

	if getBoolFlag(cmd, "from-prompt") && !getBoolFlag(cmd, "yes") {
		ok, err := confirmCreate(cmd)
		if errors.Is(err, wizard.ErrCancelled) || (err == nil && !ok) {
			_, _ = fmt.Fprintln(out, cliMuted.Render("Cancelled."))
			return nil
		}
		if err != nil {
			return err
		}
	}

	_, _ = fmt.Fprintf(out, "%s Creating %s project %s...\n", symProgress(), cfg.Layout(), cliPrimary.Render(cfg.ProjectName))
	res, err := deps.Orchestrator.CreateProject(ctx, cfg)
	if err != nil {
		return fmt.Errorf("create %s: %w", cfg.ProjectName, err)
	}
	deps.Logger.Info("project created", "root", res.Root, "layout", res.Layout)

	var pairs []kvPair
	pairs = append(pairs, kvPair{"Location", res.Root})
	if res.FrontendDir != "" {
		pairs = append(pairs, kvPair{"Frontend", res.FrontendDir})
	}
	if res.BackendDir != "" {
		pairs = append(pairs, kvPair{"Backend", res.BackendDir})
	}
	_, _ = fmt.Fprintln(out, renderSuccessCard(
		fmt.Sprintf("Created %s", cfg.ProjectName),
		renderKeyValueLines(pairs),
	))

	plain := deps.Theme.NoColor || deps.Headless.IsHeadless()
	_, _ = fmt.Fprint(out, renderMarkdown(project.NextSteps(cfg, deps.packageManager()), plain))
	return nil
}

// resolveConfig picks the flow: --from-prompt, configuration flags, or the
// wizard when a terminal is attached.
func resolveConfig(ctx context.Context, cmd *cobra.Command, args []string) (models.ProjectConfig, error) {
	switch {
	case getBoolFlag(cmd, "from-prompt"):
		return configFromPrompt(ctx, cmd, args)
	case getBoolFlag(cmd, "non-interactive") || anyFlagChanged(cmd, configFlags...):
		return configFromFlags(cmd)
	case deps.Headless.IsHeadless():
		return models.ProjectConfig{}, fmt.Errorf("%w: pass --name with --frontend or --backend, or --from-prompt with a description", ErrNeedsTerminal)
	}

	result, err := deps.Prompter.RunWizard()
	if err != nil {
		return models.ProjectConfig{}, err
	}
	return result.ToConfig(), nil
}

// configFromFlags builds a configuration from flags. Unset parts are none.
func configFromFlags(cmd *cobra.Command) (models.ProjectConfig, error) {
	cfg := models.ProjectConfig{
		ProjectName: getStringFlag(cmd, "name"),
		Frontend:    models.Frontend(orNone(getStringFlag(cmd, "frontend"))),
		Backend:     models.Backend(orNone(getStringFlag(cmd, "backend"))),
		Database:    models.Database(orNone(getStringFlag(cmd, "database"))),
		UseDocker:   getBoolFlag(cmd, "docker"),
	}
	if cfg.Backend == models.BackendFastAPI {
		cfg.Database = models.DatabasePostgres
		cfg.UseDocker = true
	}
	if err := cfg.Validate(); err != nil {
		return models.ProjectConfig{}, err
	}
	return cfg, nil
}

// configFromPrompt interprets the description given as arguments, or asked
// for interactively. --name overrides the interpreted project name.
func configFromPrompt(ctx context.Context, cmd *cobra.Command, args []string) (models.ProjectConfig, error) {
	description := strings.TrimSpace(strings.Join(args, " "))
	if description == "" {
		if deps.Headless.IsHeadless() || getBoolFlag(cmd, "non-interactive") {
			return models.ProjectConfig{}, fmt.Errorf("%w: pass it as an argument", interpret.ErrEmptyDescription)
		}
		d, err := deps.Prompter.AskDescription()
		if err != nil {
			return models.ProjectConfig{}, err
		}
		description = d
	}

	interp, err := deps.EnsureInterpreter()
	if err != nil {
		return models.ProjectConfig{}, err
	}

	spin := ui.NewSpinner(deps.Theme, deps.Headless, cmd.OutOrStdout(), "Interpreting your description...")
	cfg, err := interp.Interpret(ctx, description)
	if err != nil {
		spin.Stop("")
		return models.ProjectConfig{}, interpretFailure(err)
	}
	spin.Stop(symSuccess() + " Configuration ready")

	if name := getStringFlag(cmd, "name"); name != "" {
		cfg.ProjectName = name
		if err := cfg.Validate(); err != nil {
			return models.ProjectConfig{}, err
		}
	}
	return cfg, nil
}

// interpretFailure gives each interpretation failure its own message.
func interpretFailure(err error) error {
	switch {
	case errors.Is(err, interpret.ErrQuotaExceeded):
		// The service message already points at the interactive flow.
		return err
	case errors.Is(err, interpret.ErrMalformedJSON):
		return fmt.Errorf("could not read the interpreted configuration, try rephrasing the description: %w", err)
	case errors.Is(err, interpret.ErrInvalidConfig):
		return fmt.Errorf("the description did not map to a supported project: %w", err)
	case errors.Is(err, interpret.ErrEmptyResponse), errors.Is(err, interpret.ErrUnexpectedResponse):
		return fmt.Errorf("the interpreter gave no usable answer, try again: %w", err)
	case errors.Is(err, interpret.ErrService):
		return fmt.Errorf("interpretation failed, run forge without --from-prompt to use the interactive flow: %w", err)
	}
	return err
}

func confirmCreate(cmd *cobra.Command) (bool, error) {
	if deps.Headless.IsHeadless() || getBoolFlag(cmd, "non-interactive") {
		return false, fmt.Errorf("%w: pass --yes to create without confirmation", ErrNeedsTerminal)
	}
	return deps.Prompter.Confirm("Create this project?")
}

// renderSummary shows the configuration about to be created.
func renderSummary(cfg models.ProjectConfig, st *wizard.Styles) string {
	title := cases.Title(language.English)
	pairs := []kvPair{
		{"Name", cfg.ProjectName},
		{"Layout", title.String(string(cfg.Layout()))},
	}
	if cfg.HasFrontend() {
		pairs = append(pairs, kvPair{"Frontend", cfg.Frontend.Label()})
	}
	if cfg.HasBackend() {
		pairs = append(pairs,
			kvPair{"Backend", cfg.Backend.Label()},
			kvPair{"Database", cfg.Database.Label()},
			kvPair{"Docker", title.String(yesNo(cfg.UseDocker))},
		)
	}

	lines := make([]string, 0, len(pairs)+2)
	lines = append(lines, st.Title.Render("Project"), "")
	for _, p := range pairs {
		lines = append(lines, st.Label.Render(p.key)+st.Value.Render(p.value))
	}
	return st.Card.Render(strings.Join(lines, "\n"))
}

func summaryStyles() *wizard.Styles {
	if deps.Theme.NoColor {
		return wizard.NoColorStyles()
	}
	return wizard.NewStyles()
}

func anyFlagChanged(cmd *cobra.Command, names ...string) bool {
	for _, n := range names {
		if f := cmd.Flags().Lookup(n); f != nil && f.Changed {
			return true
		}
	}
	return false
}

func orNone(s string) string {
	if s == "" {
		return "none"
	}
	return s
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}

// printWarning writes a yellow note.
func printWarning(w io.Writer, msg string) {
	_, _ = fmt.Fprintln(w, symWarning()+" "+cliWarn.Render(msg))
}
