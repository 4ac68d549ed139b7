package seeds

import (
	"fmt"
	"os"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/unilab-kr/boardmap/cmd/common"
	internalseeds "github.com/unilab-kr/boardmap/internal/seeds"
)

// newListCommand creates the seeds list command, which displays the
// keyword table and CMS patterns in formatted tables.
func newListCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List the configured seed data",
		RunE: func(cmd *cobra.Command, args []string) error {
			deps, err := common.NewCommandDeps()
			if err != nil {
				return fmt.Errorf("failed to initialize dependencies: %w", err)
			}

			seed, err := internalseeds.Load(deps.Config.SeedPath)
			if err != nil {
				return fmt.Errorf("load seeds: %w", err)
			}

			renderCampuses(seed.Campuses)
			renderKeywords(seed.Keywords)
			renderCmsPatterns(seed.CmsPatterns)
			return nil
		},
	}
}

func renderCampuses(campuses []internalseeds.CampusSeed) {
	t := table.NewWriter()
	t.SetOutputMirror(os.Stdout)
	t.SetStyle(table.StyleLight)
	t.SetTitle("Campuses")
	t.AppendHeader(table.Row{"Name", "Index URL"})
	for _, c := range campuses {
		t.AppendRow(table.Row{c.Name, c.URL})
	}
	t.Render()
}

func renderKeywords(keywords []internalseeds.KeywordEntry) {
	t := table.NewWriter()
	t.SetOutputMirror(os.Stdout)
	t.SetStyle(table.StyleLight)
	t.SetTitle("Keywords (match order)")
	t.AppendHeader(table.Row{"#", "Keyword", "Category ID", "Display Name"})
	for i, k := range keywords {
		t.AppendRow(table.Row{i + 1, k.Keyword, k.ID, k.DisplayName})
	}
	t.Render()
}

func renderCmsPatterns(patterns []internalseeds.CmsPattern) {
	t := table.NewWriter()
	t.SetOutputMirror(os.Stdout)
	t.SetStyle(table.StyleLight)
	t.SetTitle("CMS Patterns (detection order)")
	t.AppendHeader(table.Row{"#", "Name", "URL Markers", "Markup Markers", "Row Selector"})
	for i, p := range patterns {
		t.AppendRow(table.Row{i + 1, p.Name, p.URLContains, p.MarkupContains, p.Selectors.RowSelector})
	}
	t.Render()
}
