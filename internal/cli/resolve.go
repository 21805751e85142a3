package cli

import (
	"path/filepath"

	"github.com/ariel-frischer/copr-release/internal/gitrepo"
	"github.com/ariel-frischer/copr-release/internal/release"
	"github.com/spf13/cobra"
)

var resolveCmd = &cobra.Command{
	Use:     "resolve",
	Short:   "Show the next version/release pair without changing anything",
	GroupID: GroupInspection,
	Long: `Resolve the next version/release pair for the package.

The version is the most recent changelog entry for the package; the release
counter is one past the highest existing release tag for that version, or 1
when the version has never been tagged. Nothing is written.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		res, err := resolveCurrent()
		if err != nil {
			return err
		}
		cmd.Printf("version=%s release=%d tag=%s\n", res.Version, res.Release, res.Tag())
		return nil
	},
}

func init() {
	rootCmd.AddCommand(resolveCmd)
}

// resolveCurrent resolves the version/release pair for the repository at the
// current working directory.
func resolveCurrent() (*release.Resolution, error) {
	cfg, err := loadConfiguration()
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	repo, err := gitrepo.Open("")
	if err != nil {
		return nil, err
	}
	root, err := repo.Root()
	if err != nil {
		return nil, err
	}
	names, err := repo.TagNames()
	if err != nil {
		return nil, err
	}

	return release.ResolveFile(filepath.Join(root, cfg.Changelog), names, cfg.Package)
}
