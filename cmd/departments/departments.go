// Package departments implements the departments command: crawl the
// campus index pages into the department tree that discovery consumes.
package departments

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/unilab-kr/boardmap/cmd/common"
	"github.com/unilab-kr/boardmap/internal/departments"
	"github.com/unilab-kr/boardmap/internal/fetch"
	"github.com/unilab-kr/boardmap/internal/output"
	"github.com/unilab-kr/boardmap/internal/seeds"
)

// Command returns the departments command for use in the root command.
func Command() *cobra.Command {
	return &cobra.Command{
		Use:   "departments",
		Short: "Crawl campus index pages into a department tree",
		Long: `Fetches each campus index page from the seed data, extracts colleges and
their departments with homepage URLs, and writes the resulting tree as JSON.
Departments without a discoverable homepage get the NOT_FOUND sentinel and
are reported during discovery.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			deps, err := common.NewCommandDeps()
			if err != nil {
				return fmt.Errorf("failed to initialize dependencies: %w", err)
			}

			seed, err := seeds.Load(deps.Config.SeedPath)
			if err != nil {
				return fmt.Errorf("load seeds: %w", err)
			}

			fetcher := fetch.New(deps.Config.HTTP.UserAgent, deps.Logger)
			crawler := departments.NewCrawler(fetcher, deps.Logger)

			campuses := crawler.CrawlAll(cmd.Context(), seed.Campuses)
			if len(campuses) == 0 {
				return fmt.Errorf("no campuses could be crawled")
			}

			path := deps.Config.Output.DepartmentsPath
			if err := output.WriteJSON(path, campuses); err != nil {
				return fmt.Errorf("write department tree: %w", err)
			}
			deps.Logger.Info("department tree written", "path", path)
			return nil
		},
	}
}
