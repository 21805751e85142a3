package cli

import (
	"os/signal"
	"syscall"

	"github.com/ariel-frischer/copr-release/internal/release"
	"github.com/spf13/cobra"
)

var (
	releaseSkipFetch     bool
	releaseKeepArtifacts bool
	releaseNoWait        bool
)

var releaseCmd = &cobra.Command{
	Use:     "release",
	Short:   "Run the full release pipeline",
	GroupID: GroupRelease,
	Long: `Run the full release pipeline:

  1. fetch and fast-forward the release branch
  2. resolve the next version/release pair
  3. stamp the spec file
  4. commit the stamped metadata
  5. build the source package with rpkg
  6. submit the build to COPR with copr-cli
  7. tag the release
  8. push branch and tag to the remote

Every step blocks until its external tool completes. The first failure
aborts the run with a distinct exit code; there is no retry.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfiguration()
		if err != nil {
			return err
		}
		if releaseSkipFetch {
			cfg.SkipFetch = true
		}
		if releaseKeepArtifacts {
			cfg.KeepArtifacts = true
		}
		if releaseNoWait {
			cfg.NoWait = true
		}
		if err := cfg.ValidateForRelease(); err != nil {
			return err
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		p := release.New(cfg, cmd.OutOrStdout())
		_, err = p.Run(ctx)
		return err
	},
}

func init() {
	rootCmd.AddCommand(releaseCmd)

	releaseCmd.Flags().BoolVar(&releaseSkipFetch, "skip-fetch", false, "skip the fetch/merge step")
	releaseCmd.Flags().BoolVar(&releaseKeepArtifacts, "keep-artifacts", false, "keep the SRPM output directory after a successful release")
	releaseCmd.Flags().BoolVar(&releaseNoWait, "nowait", false, "return once the build is accepted instead of waiting")
}
