package cli

import (
	"fmt"
	"os"

	"github.com/arkmod-labs/arkmod/internal/branding"
	"github.com/spf13/cobra"
)

var (
	buildVersion string
	buildCommit  string
	buildDate    string
)

var rootCmd = &cobra.Command{
	Use:   branding.CLIName(),
	Short: branding.Description(),
	Long: branding.DisplayName() + ` applies declarative modification manifests to a project tree.
A manifest declares anchored edits (insert, replace, delete, create); arkmod
validates every edit against the current tree and applies all of them or none,
so re-running an absorbed manifest is a safe no-op.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the root command with build info injected via ldflags.
func Execute(version, commit, date string) error {
	buildVersion = version
	buildCommit = commit
	buildDate = date
	err := rootCmd.Execute()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	}
	return err
}
