package cli

import (
	"path/filepath"

	"github.com/ariel-frischer/copr-release/internal/gitrepo"
	"github.com/ariel-frischer/copr-release/internal/history"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

var historyCmd = &cobra.Command{
	Use:     "history",
	Short:   "Show recorded release submissions",
	GroupID: GroupInspection,
	Args:    cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfiguration()
		if err != nil {
			return err
		}

		path := cfg.HistoryFile
		if !filepath.IsAbs(path) {
			repo, err := gitrepo.Open("")
			if err == nil {
				if root, rerr := repo.Root(); rerr == nil {
					path = filepath.Join(root, path)
				}
			}
		}

		entries, err := history.Load(path)
		if err != nil {
			return err
		}
		if len(entries) == 0 {
			cmd.Println("No recorded releases")
			return nil
		}

		t := table.NewWriter()
		t.SetOutputMirror(cmd.OutOrStdout())
		t.AppendHeader(table.Row{"Submitted", "Tag", "Project", "Artifact"})
		for i := len(entries) - 1; i >= 0; i-- {
			e := entries[i]
			t.AppendRow(table.Row{e.SubmittedAt.Format("2006-01-02 15:04"), e.Tag, e.Project, filepath.Base(e.Artifact)})
		}
		t.Render()
		return nil
	},
}

func init() {
	rootCmd.AddCommand(historyCmd)
}
