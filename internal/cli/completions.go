package cli

import (
	"github.com/ariel-frischer/copr-release/internal/errors"
	"github.com/ariel-frischer/copr-release/internal/powercomp"
	"github.com/spf13/cobra"
)

var completionsCmd = &cobra.Command{
	Use:     "completions <bash|zsh|fish>",
	Short:   "Print the system76-power completion script for a shell",
	GroupID: GroupCompletion,
	Long: `Print the tab-completion script for the packaged system76-power CLI.

The script is installed alongside the package so interactive shells can
complete system76-power subcommands and their arguments. It calls back into
'copr-release suggest' for the token tables.`,
	Args:      cobra.ExactArgs(1),
	ValidArgs: []string{"bash", "zsh", "fish"},
	RunE: func(cmd *cobra.Command, args []string) error {
		script, err := powercomp.Script(args[0])
		if err != nil {
			return &ExitError{
				Code: ExitInvalidArguments,
				Err: errors.NewArgumentError(err.Error(),
					"Use one of: bash, zsh, fish"),
			}
		}
		cmd.Print(script)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(completionsCmd)
}
