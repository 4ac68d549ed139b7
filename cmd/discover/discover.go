// Package discover implements the discover command: run board discovery
// over a previously crawled (or hand-written) department tree and write
// the augmented tree plus the manual review ledger.
package discover

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/unilab-kr/boardmap/cmd/common"
	"github.com/unilab-kr/boardmap/internal/boards"
	"github.com/unilab-kr/boardmap/internal/classify"
	"github.com/unilab-kr/boardmap/internal/cms"
	"github.com/unilab-kr/boardmap/internal/discovery"
	"github.com/unilab-kr/boardmap/internal/fetch"
	"github.com/unilab-kr/boardmap/internal/models"
	"github.com/unilab-kr/boardmap/internal/output"
	"github.com/unilab-kr/boardmap/internal/seeds"
	"github.com/unilab-kr/boardmap/internal/worker"
)

// Command returns the discover command for use in the root command.
func Command() *cobra.Command {
	var inputPath string
	var workers int

	cmd := &cobra.Command{
		Use:   "discover",
		Short: "Discover notice boards for every department",
		Long: `Reads the department tree produced by the departments command, visits each
department homepage (sitemap first when one is linked), and writes the tree
back with discovered boards attached, plus a manual review file for the
departments the heuristics could not handle.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			deps, err := common.NewCommandDeps()
			if err != nil {
				return fmt.Errorf("failed to initialize dependencies: %w", err)
			}

			seed, err := seeds.Load(deps.Config.SeedPath)
			if err != nil {
				return fmt.Errorf("load seeds: %w", err)
			}

			if inputPath == "" {
				inputPath = deps.Config.Output.DepartmentsPath
			}
			campuses, err := readCampusTree(inputPath)
			if err != nil {
				return err
			}

			fetcher := fetch.New(deps.Config.HTTP.UserAgent, deps.Logger)
			extractor := boards.NewExtractor(
				cms.NewDetector(seed.CmsPatterns),
				classify.New(seed.Keywords),
				deps.Logger,
			)
			ledger := discovery.NewLedger()
			discoverer := discovery.NewDiscoverer(
				fetcher,
				extractor,
				ledger,
				deps.Logger,
				deps.Config.HTTP.HomepageTimeout,
				deps.Config.HTTP.SitemapTimeout,
			)

			poolCfg := worker.DefaultConfig()
			poolCfg.PoolSize = deps.Config.Discovery.Workers
			poolCfg.JobTimeout = deps.Config.Discovery.JobTimeout
			if workers > 0 {
				poolCfg.PoolSize = workers
			}

			runner := discovery.NewRunner(discoverer, ledger, poolCfg, deps.Logger)
			result, err := runner.Run(cmd.Context(), campuses)
			if err != nil {
				return fmt.Errorf("discovery run: %w", err)
			}

			boardsPath := deps.Config.Output.BoardsPath
			reviewPath := deps.Config.Output.ReviewPath
			if err := output.WriteRunResult(result, boardsPath, reviewPath); err != nil {
				return fmt.Errorf("write results: %w", err)
			}

			output.RenderRunSummary(os.Stdout, result)
			deps.Logger.Info("results written",
				"boards", boardsPath,
				"review", reviewPath,
			)
			return nil
		},
	}

	cmd.Flags().StringVarP(&inputPath, "input", "i", "", "department tree JSON (default: output.departments_path)")
	cmd.Flags().IntVarP(&workers, "workers", "w", 0, "override the concurrent department worker count")
	return cmd
}

// readCampusTree loads the campus → colleges → departments structure.
func readCampusTree(path string) ([]models.Campus, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read department tree %s: %w", path, err)
	}
	var campuses []models.Campus
	if err := json.Unmarshal(data, &campuses); err != nil {
		return nil, fmt.Errorf("parse department tree %s: %w", path, err)
	}
	return campuses, nil
}
