package cli

import (
	"github.com/ariel-frischer/copr-release/internal/version"
	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:     "version",
	Short:   "Show copr-release version information",
	GroupID: GroupUtility,
	Args:    cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		if version.IsDevBuild() {
			cmd.Printf("copr-release %s (dev build)\n", version.Version)
		} else {
			cmd.Printf("copr-release %s\n", version.Version)
		}
		if verboseMode {
			cmd.Printf("commit: %s\n", version.Commit)
			cmd.Printf("built:  %s\n", version.BuildDate)
		}
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
