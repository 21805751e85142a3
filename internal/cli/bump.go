package cli

import (
	"path/filepath"

	"github.com/ariel-frischer/copr-release/internal/gitrepo"
	"github.com/ariel-frischer/copr-release/internal/output"
	"github.com/ariel-frischer/copr-release/internal/specfile"
	"github.com/spf13/cobra"
)

var bumpCmd = &cobra.Command{
	Use:     "bump",
	Short:   "Resolve and stamp the spec file's Version/Release fields",
	GroupID: GroupRelease,
	Long: `Resolve the next version/release pair and rewrite the spec file's
Version and Release lines in place. All other lines are preserved verbatim.
No commit, build, or tag is created; use 'copr-release release' for the full
pipeline.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfiguration()
		if err != nil {
			return err
		}

		res, err := resolveCurrent()
		if err != nil {
			return err
		}

		repo, err := gitrepo.Open("")
		if err != nil {
			return err
		}
		root, err := repo.Root()
		if err != nil {
			return err
		}

		spec, err := specfile.Load(filepath.Join(root, cfg.SpecFile))
		if err != nil {
			return err
		}
		if err := spec.Stamp(res.Version, res.Release); err != nil {
			return err
		}
		if err := spec.Save(); err != nil {
			return err
		}

		output.PrintStepSuccess(cmd.OutOrStdout(), cfg.SpecFile+" stamped with "+res.Tag().String())
		return nil
	},
}

func init() {
	rootCmd.AddCommand(bumpCmd)
}
