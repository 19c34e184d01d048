package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/forge-scaffold/forge/internal/catalog"
	"github.com/forge-scaffold/forge/pkg/models"
)

var blueprintsCmd = &cobra.Command{
	Use:   "blueprints",
	Short: "List the catalog blueprints and check their declarations",
	Args:  cobra.NoArgs,
	RunE:  runBlueprints,
}

func init() {
	rootCmd.AddCommand(blueprintsCmd)
}

func runBlueprints(cmd *cobra.Command, _ []string) error {
	out := cmd.OutOrStdout()
	params := catalog.Params{ProjectName: "app", Database: models.DatabasePostgres}

	var (
		lines   []string
		invalid []error
	)
	for _, name := range catalog.Names() {
		bp, err := deps.Catalog.Lookup(name, params)
		if err != nil {
			return err
		}

		mark := symSuccess()
		if err := bp.Validate(); err != nil {
			mark = symError()
			invalid = append(invalid, err)
		}

		scripts := "-"
		if names := bp.ScriptNames(); len(names) > 0 {
			scripts = strings.Join(names, ", ")
		}
		lines = append(lines, fmt.Sprintf("%s %s  %s",
			mark,
			cliPrimary.Width(18).Render(name),
			cliMuted.Render(fmt.Sprintf("%d deps, %d dev deps, scripts: %s",
				len(bp.Dependencies), len(bp.DevDependencies), scripts)),
		))
		if files := deps.Catalog.Files(name); len(files) > 0 {
			lines = append(lines, strings.Repeat(" ", 21)+cliMuted.Render("files: "+strings.Join(files, ", ")))
		}
	}

	_, _ = fmt.Fprintln(out, renderCard("Blueprints", strings.Join(lines, "\n")))
	for _, err := range invalid {
		_, _ = fmt.Fprintln(out, symError()+" "+cliError.Render(err.Error()))
	}
	if len(invalid) > 0 {
		return fmt.Errorf("%d invalid blueprint(s): %w", len(invalid), errors.Join(invalid...))
	}
	return nil
}
