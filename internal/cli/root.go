package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/forge-scaffold/forge/pkg/version"
)

var rootCmd = &cobra.Command{
	Use:   "forge [description]",
	Short: "Scaffold frontend, backend and full-stack projects",
	Long: `forge creates new projects from blueprints.

Run without flags for the interactive wizard, describe the project in plain
English with --from-prompt, or pick every part with flags.

Examples:
  forge
  forge --from-prompt "React UI with an Express API and Postgres, in Docker"
  forge --name shop --frontend next --backend golang --database postgres --docker
  forge compose ./api express docker`,
	Version:           version.GetVersion(),
	Args:              validateRootArgs,
	PersistentPreRunE: initDependencies,
	RunE:              runCreate,
	SilenceUsage:      true,
	SilenceErrors:     true,
}

// Execute runs the root command and prints a failure, if any, in red.
func Execute() error {
	err := rootCmd.Execute()
	if err != nil {
		_, _ = fmt.Fprintln(rootCmd.ErrOrStderr(), symError()+" "+cliError.Render(err.Error()))
	}
	return err
}

func init() {
	rootCmd.SetVersionTemplate(fmt.Sprintf("forge %s\n", version.GetVersion()))

	pf := rootCmd.PersistentFlags()
	pf.String("config", "", "Configuration file (default: ~/.config/forge/config.yaml)")
	pf.BoolP("verbose", "v", false, "Log diagnostics to stderr")
	pf.Bool("skip-install", false, "Do not install packages after composing")

	addCreateFlags(rootCmd)
}

// addCreateFlags registers the flags of the create flow.
func addCreateFlags(cmd *cobra.Command) {
	f := cmd.Flags()
	f.Bool("from-prompt", false, "Describe the project in plain English instead of using the wizard")
	f.BoolP("yes", "y", false, "Create the interpreted project without asking for confirmation")
	f.String("name", "", "Project name")
	f.String("frontend", "", "Frontend: react, next, svelte, sveltekit or none")
	f.String("backend", "", "Backend: fastapi, express, typescript-prisma, golang, rust, java or none")
	f.String("database", "", "Database: postgres, sqlite or none")
	f.Bool("docker", false, "Add Docker files to the backend")
	f.Bool("non-interactive", false, "Never prompt; build the configuration from flags")
}

// initDependencies wires the composition root once. Tests install their own
// Dependencies with SetDeps beforehand.
func initDependencies(cmd *cobra.Command, _ []string) error {
	if deps != nil {
		return nil
	}
	return InitDependencies(InitOptions{
		ConfigPath:  getStringFlag(cmd, "config"),
		Verbose:     getBoolFlag(cmd, "verbose"),
		SkipInstall: getBoolFlag(cmd, "skip-install"),
		Stdout:      cmd.OutOrStdout(),
		Stderr:      cmd.ErrOrStderr(),
	})
}

// validateRootArgs only accepts positional words as a --from-prompt
// description.
func validateRootArgs(cmd *cobra.Command, args []string) error {
	if len(args) > 0 && !getBoolFlag(cmd, "from-prompt") {
		return fmt.Errorf("unknown command %q for %q (a description needs --from-prompt)", args[0], cmd.CommandPath())
	}
	return nil
}

// getStringFlag retrieves a string flag value from the command.
func getStringFlag(cmd *cobra.Command, name string) string {
	val, err := cmd.Flags().GetString(name)
	if err != nil {
		return ""
	}
	return val
}

// getBoolFlag retrieves a bool flag value from the command.
func getBoolFlag(cmd *cobra.Command, name string) bool {
	val, err := cmd.Flags().GetBool(name)
	if err != nil {
		return false
	}
	return val
}
