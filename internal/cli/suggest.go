package cli

import (
	"github.com/ariel-frischer/copr-release/internal/powercomp"
	"github.com/spf13/cobra"
)

var suggestCmd = &cobra.Command{
	Use:     "suggest [tokens...]",
	Short:   "Print next-token suggestions for a partial system76-power command line",
	GroupID: GroupCompletion,
	Long: `Print the valid next tokens for a partial system76-power command line,
one per line. Used by the scripts emitted by 'copr-release completions';
tokens are the words typed after the program name. Pass "--" before the
tokens so flag-like tokens such as --list-profiles are not parsed as flags.`,
	Args: cobra.ArbitraryArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		for _, s := range powercomp.SuggestionsFor(args) {
			cmd.Println(s)
		}
		return nil
	},
}

func init() {
	suggestCmd.Flags().SetInterspersed(false)
	rootCmd.AddCommand(suggestCmd)
}
