package cli

import (
	"fmt"

	"github.com/arkmod-labs/arkmod/internal/config"
	"github.com/arkmod-labs/arkmod/internal/manifest"
	"github.com/spf13/cobra"
)

var validateCmd = &cobra.Command{
	Use:   "validate [manifest]",
	Short: "Check a manifest without touching the project tree",
	Long: `Validate a manifest against the schema and per-action field requirements.
Only the manifest file itself is read; no target file is inspected.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runValidate,
}

func init() {
	rootCmd.AddCommand(validateCmd)
}

func runValidate(cmd *cobra.Command, args []string) error {
	config.Load()

	manifestPath := config.Get(config.KeyManifestPath)
	if len(args) == 1 {
		manifestPath = args[0]
	}

	result, err := manifest.ValidateFile(manifestPath)
	if err != nil {
		return fmt.Errorf("validating manifest: %w", err)
	}
	if !result.Valid {
		printIssues(cmd, result)
		return fmt.Errorf("manifest %s failed schema validation", manifestPath)
	}

	m, err := manifest.Load(manifestPath)
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Manifest %s is valid: %d modification(s) across %d file(s).\n",
		manifestPath, len(m.Modifications), len(m.GroupByPath()))
	return nil
}
