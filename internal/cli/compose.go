package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/forge-scaffold/forge/internal/blueprint"
	"github.com/forge-scaffold/forge/internal/catalog"
	"github.com/forge-scaffold/forge/pkg/models"
)

var composeCmd = &cobra.Command{
	Use:   "compose <target> <blueprint>...",
	Short: "Compose catalog blueprints into a directory",
	Long: `Compose applies blueprints to a target directory in the order given and
merges their package.json declarations. Later blueprints win on conflicting
keys. Files already in the target are kept.

Blueprint names are the technology names accepted by --frontend and
--backend, plus "docker" for the Docker files of the preceding backend.

Examples:
  forge compose ./api express
  forge compose ./api golang docker --database postgres
  forge compose ./web react`,
	Args: cobra.MinimumNArgs(2),
	RunE: runCompose,
}

func init() {
	rootCmd.AddCommand(composeCmd)

	composeCmd.Flags().String("name", "", "Project name used in generated files (default: target directory name)")
	composeCmd.Flags().String("database", "none", "Database for backend and docker blueprints: postgres, sqlite or none")
}

func runCompose(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	out := cmd.OutOrStdout()

	target, err := filepath.Abs(args[0])
	if err != nil {
		return fmt.Errorf("resolve target: %w", err)
	}

	db := models.Database(getStringFlag(cmd, "database"))
	if !db.IsValid() {
		return fmt.Errorf("%w: database %q", models.ErrInvalidConfig, db)
	}
	params := catalog.Params{
		ProjectName: getStringFlag(cmd, "name"),
		Database:    db,
	}

	bps, err := resolveBlueprints(args[1:], params)
	if err != nil {
		return err
	}

	if entries, err := os.ReadDir(target); err == nil && len(entries) > 0 {
		printWarning(out, fmt.Sprintf("%s is not empty; existing files are kept", target))
	}

	_, _ = fmt.Fprintf(out, "%s Composing %d blueprint(s) into %s\n", symProgress(), len(bps), target)
	if err := deps.Composer.Compose(ctx, target, bps); err != nil {
		return fmt.Errorf("compose %s: %w", target, err)
	}

	names := make([]string, 0, len(bps))
	for _, bp := range bps {
		names = append(names, bp.Name)
	}
	_, _ = fmt.Fprintln(out, renderSuccessCard(
		fmt.Sprintf("Composed %s", filepath.Base(target)),
		renderKeyValueLines([]kvPair{
			{"Target", target},
			{"Blueprints", fmt.Sprint(names)},
		}),
	))
	return nil
}

// resolveBlueprints maps names to catalog blueprints. "docker" resolves
// against the most recent backend name.
func resolveBlueprints(names []string, params catalog.Params) ([]blueprint.Blueprint, error) {
	var (
		bps         []blueprint.Blueprint
		lastBackend models.Backend
	)
	for _, name := range names {
		if name == "docker" {
			if lastBackend == "" {
				return nil, fmt.Errorf("%w: docker must follow a backend blueprint", catalog.ErrUnsupported)
			}
			bp, err := deps.Catalog.Docker(lastBackend, params)
			if err != nil {
				return nil, err
			}
			bps = append(bps, bp)
			continue
		}

		bp, err := deps.Catalog.Lookup(name, params)
		if err != nil {
			return nil, err
		}
		if be := models.Backend(name); be.IsValid() {
			lastBackend = be
		}
		bps = append(bps, bp)
	}
	return bps, nil
}
