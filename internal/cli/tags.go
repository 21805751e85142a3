package cli

import (
	"sort"
	"strings"

	"github.com/Masterminds/semver/v3"
	"github.com/ariel-frischer/copr-release/internal/gitrepo"
	"github.com/ariel-frischer/copr-release/internal/output"
	"github.com/ariel-frischer/copr-release/internal/tag"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

var tagsFetch bool

var tagsCmd = &cobra.Command{
	Use:     "tags",
	Short:   "List existing release tags for the package",
	GroupID: GroupInspection,
	Long: `List the package's release tags grouped by version, newest version and
highest release counter first. Tags outside the package's release namespace
are ignored.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfiguration()
		if err != nil {
			return err
		}
		if err := cfg.Validate(); err != nil {
			return err
		}

		repo, err := gitrepo.Open("")
		if err != nil {
			return err
		}
		if tagsFetch {
			if err := repo.Fetch(cfg.Remote); err != nil {
				return err
			}
		}
		names, err := repo.TagNames()
		if err != nil {
			return err
		}

		tags := collectReleaseTags(names, cfg.Package)
		if len(tags) == 0 {
			cmd.Printf("No release tags for %s\n", cfg.Package)
			return nil
		}

		t := table.NewWriter()
		t.SetOutputMirror(cmd.OutOrStdout())
		t.SetAllowedRowLength(output.GetTerminalWidth())
		t.AppendHeader(table.Row{"Version", "Release", "Tag"})
		for _, rt := range tags {
			t.AppendRow(table.Row{rt.Version, rt.Release, rt.String()})
		}
		t.Render()
		return nil
	},
}

func init() {
	rootCmd.AddCommand(tagsCmd)

	tagsCmd.Flags().BoolVar(&tagsFetch, "fetch", false, "fetch from the remote before listing")
}

// collectReleaseTags parses the package's release tags out of the full tag
// listing and sorts them newest version first, highest release first.
// Tags that don't parse as release tags are skipped; only resolution treats
// malformed suffixes as fatal.
func collectReleaseTags(names []string, pkg string) []tag.Tag {
	var tags []tag.Tag
	for _, name := range names {
		// Try every name against each version embedded in it: release tags
		// are <pkg>-<x.y.z>-<n>, so extract candidate versions by parsing.
		if t, ok := parseAnyVersion(name, pkg); ok {
			tags = append(tags, t)
		}
	}

	sort.SliceStable(tags, func(i, j int) bool {
		vi, erri := semver.StrictNewVersion(tags[i].Version)
		vj, errj := semver.StrictNewVersion(tags[j].Version)
		if erri == nil && errj == nil && !vi.Equal(vj) {
			return vi.GreaterThan(vj)
		}
		if tags[i].Version != tags[j].Version {
			return tags[i].Version > tags[j].Version
		}
		return tags[i].Release > tags[j].Release
	})
	return tags
}

// parseAnyVersion parses a tag name of the form <pkg>-<version>-<release>
// without knowing the version up front. The release counter never contains
// a dash, so the version is everything before the last one.
func parseAnyVersion(name, pkg string) (tag.Tag, bool) {
	prefix := pkg + "-"
	if len(name) <= len(prefix) || name[:len(prefix)] != prefix {
		return tag.Tag{}, false
	}
	rest := name[len(prefix):]

	i := strings.LastIndex(rest, "-")
	if i < 0 {
		return tag.Tag{}, false
	}
	version := rest[:i]
	if _, err := semver.StrictNewVersion(version); err != nil {
		return tag.Tag{}, false
	}
	t, ok, err := tag.Parse(name, pkg, version)
	if err != nil || !ok {
		return tag.Tag{}, false
	}
	return t, true
}
