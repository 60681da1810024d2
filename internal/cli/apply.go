package cli

import (
	"fmt"
	"os"

	"github.com/arkmod-labs/arkmod/internal/anchor"
	"github.com/arkmod-labs/arkmod/internal/config"
	"github.com/arkmod-labs/arkmod/internal/engine"
	"github.com/arkmod-labs/arkmod/internal/manifest"
	"github.com/spf13/cobra"
)

var (
	applyDryRun bool
	applyRoot   string
	applyMode   string
)

var applyCmd = &cobra.Command{
	Use:   "apply [manifest]",
	Short: "Validate and apply a modification manifest",
	Long: `Apply the modifications declared in a manifest to the project tree.

Every modification is first resolved against the current on-disk content; if
any anchor fails to resolve, the whole run blocks and nothing is written.
Re-running a manifest the tree has already absorbed reports every entry as
skipped and changes nothing. With no argument the manifest path comes from
configuration (manifest.path, default modifications.yaml).`,
	Args: cobra.MaximumNArgs(1),
	RunE: runApply,
}

func init() {
	applyCmd.Flags().BoolVar(&applyDryRun, "dry-run", false, "Validate and report without writing any file")
	applyCmd.Flags().StringVar(&applyRoot, "root", ".", "Project root that manifest paths resolve against")
	applyCmd.Flags().StringVar(&applyMode, "match-mode", "", "Anchor matching mode: strict or normalize-whitespace (default from config)")
	rootCmd.AddCommand(applyCmd)
}

func runApply(cmd *cobra.Command, args []string) error {
	config.Load()

	manifestPath := config.Get(config.KeyManifestPath)
	if len(args) == 1 {
		manifestPath = args[0]
	}

	// Schema validation first, for field-level diagnostics before the
	// typed parse.
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

	modeStr := applyMode
	if modeStr == "" {
		modeStr = config.Get(config.KeyMatchMode)
	}
	mode, err := anchor.ParseMode(modeStr)
	if err != nil {
		return err
	}

	if !applyDryRun {
		release, err := engine.AcquireLock(applyRoot)
		if err != nil {
			return err
		}
		defer release()
	}

	report := engine.Run(m, engine.Options{
		Root:          applyRoot,
		Mode:          mode,
		DryRun:        applyDryRun,
		BackupEnabled: config.GetBool(config.KeyBackupEnabled),
		BackupKeep:    config.GetInt(config.KeyBackupKeep),
		BackupDir:     config.BackupDir(),
	})

	report.Render(cmd.OutOrStdout())

	if !applyDryRun && config.GetBool(config.KeyReceiptEnabled) {
		if _, err := engine.WriteReceipt(report, config.ReceiptDir()); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: could not write receipt: %v\n", err)
		}
	}

	if !report.Succeeded() {
		_, _, failed := report.Counts()
		if report.Status == engine.StateBlocked {
			return fmt.Errorf("run blocked: %d modification(s) failed to resolve, no files written", failed)
		}
		return fmt.Errorf("run finished with %d failed modification(s)", failed)
	}
	return nil
}

func printIssues(cmd *cobra.Command, result *manifest.ValidationResult) {
	for _, issue := range result.Issues {
		if issue.Path != "" {
			fmt.Fprintf(cmd.OutOrStdout(), "  %s: %s\n", issue.Path, issue.Message)
		} else {
			fmt.Fprintf(cmd.OutOrStdout(), "  %s\n", issue.Message)
		}
	}
}
