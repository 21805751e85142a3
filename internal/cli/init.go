package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/ariel-frischer/copr-release/internal/config"
	"github.com/ariel-frischer/copr-release/internal/errors"
	"github.com/ariel-frischer/copr-release/internal/output"
	"github.com/spf13/cobra"
)

var initCmd = &cobra.Command{
	Use:     "init",
	Short:   "Write a commented project config template",
	GroupID: GroupUtility,
	Long: `Write a commented configuration template to .copr-release/config.yml.

An existing config is never overwritten unless --force is given.

Examples:
  copr-release init          # Create .copr-release/config.yml
  copr-release init --force  # Overwrite an existing config`,
	Args: cobra.NoArgs,
	RunE: runInit,
}

func init() {
	rootCmd.AddCommand(initCmd)
	initCmd.Flags().BoolP("force", "f", false, "Overwrite an existing config")
}

func runInit(cmd *cobra.Command, args []string) error {
	force, _ := cmd.Flags().GetBool("force")

	path := config.ProjectConfigPath()
	if _, err := os.Stat(path); err == nil && !force {
		return errors.NewConfigError(
			fmt.Sprintf("%s already exists", path),
			"Re-run with --force to overwrite it")
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}
	if err := os.WriteFile(path, []byte(config.GetDefaultConfigTemplate()), 0o644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}

	output.PrintStepSuccess(cmd.OutOrStdout(), "wrote "+path)
	return nil
}
