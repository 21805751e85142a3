package cli

import (
	"os"

	"github.com/ariel-frischer/copr-release/internal/output"
	"github.com/spf13/cobra"
)

var cleanCmd = &cobra.Command{
	Use:     "clean",
	Short:   "Remove the SRPM build output directory",
	GroupID: GroupUtility,
	Args:    cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfiguration()
		if err != nil {
			return err
		}
		if err := os.RemoveAll(cfg.Outdir); err != nil {
			return err
		}
		output.PrintStepSuccess(cmd.OutOrStdout(), "removed "+cfg.Outdir)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(cleanCmd)
}
