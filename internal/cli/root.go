// Package cli implements the copr-release command line interface.
package cli

import (
	"fmt"
	"os"

	"github.com/ariel-frischer/copr-release/internal/config"
	"github.com/ariel-frischer/copr-release/internal/errors"
	"github.com/ariel-frischer/copr-release/internal/gitrepo"
	"github.com/spf13/cobra"
)

// Command group IDs for help output organization.
const (
	GroupRelease    = "release"
	GroupInspection = "inspection"
	GroupCompletion = "completion"
	GroupUtility    = "utility"
)

var (
	cfgFile     string
	debugMode   bool
	verboseMode bool
)

var rootCmd = &cobra.Command{
	Use:   "copr-release",
	Short: "Automate COPR releases driven by changelog and git tags",
	Long: `copr-release automates publishing RPM builds of a packaged project
(system76-power by default) to a COPR project.

It derives the next version from the Debian-style changelog, the next
release counter from the repository's existing release tags, stamps the RPM
spec file, builds a source package with rpkg, submits it with copr-cli, and
records the release as a git tag pushed to the remote.

Project home: https://github.com/ariel-frischer/copr-release`,
	Example: `  copr-release resolve             # show the next version/release pair
  copr-release bump                # stamp the spec file in place
  copr-release release             # run the full release pipeline
  copr-release tags                # list existing release tags
  copr-release completions bash    # system76-power completion script`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		if debugMode {
			gitrepo.SetDebugLogger(func(format string, args ...any) {
				fmt.Fprintf(os.Stderr, format+"\n", args...)
			})
		}
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "config file (default .copr-release/config.yml)")
	rootCmd.PersistentFlags().BoolVarP(&debugMode, "debug", "d", false, "enable debug output")
	rootCmd.PersistentFlags().BoolVarP(&verboseMode, "verbose", "v", false, "enable verbose output")

	rootCmd.AddGroup(
		&cobra.Group{ID: GroupRelease, Title: "Release Commands:"},
		&cobra.Group{ID: GroupInspection, Title: "Inspection Commands:"},
		&cobra.Group{ID: GroupCompletion, Title: "system76-power Completion Commands:"},
		&cobra.Group{ID: GroupUtility, Title: "Utility Commands:"},
	)
}

// Execute runs the root command and prints any resulting error to stderr.
// The caller maps the returned error to a process exit code via ExitCode.
func Execute() error {
	err := rootCmd.Execute()
	if err != nil {
		printError(err)
	}
	return err
}

// printError formats errors for the terminal. Structured CLIErrors keep
// their category and remediation; everything else is categorized by type.
func printError(err error) {
	if cliErr := errors.AsCLIError(err); cliErr != nil {
		errors.PrintError(cliErr)
		return
	}
	errors.PrintSimpleError(err, categoryFor(err))
}

// loadConfiguration loads config honoring the --config flag.
func loadConfiguration() (*config.Configuration, error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, errors.WrapWithMessage(err, errors.Configuration, "loading configuration")
	}
	return cfg, nil
}
