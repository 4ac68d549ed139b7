// Package seeds implements the seeds command group for inspecting and
// validating the seed data that drives discovery.
package seeds

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/unilab-kr/boardmap/cmd/common"
	internalseeds "github.com/unilab-kr/boardmap/internal/seeds"
)

// Command returns the seeds command group.
func Command() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "seeds",
		Short: "Inspect and validate seed data",
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	cmd.AddCommand(newListCommand())
	cmd.AddCommand(newValidateCommand())
	return cmd
}

// newValidateCommand creates the seeds validate command.
func newValidateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "validate",
		Short: "Validate the seed data",
		Long: `Checks the seed file for structural problems, including keyword entries
shadowed by earlier-declared substrings and CMS patterns without detection
markers or selectors.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			deps, err := common.NewCommandDeps()
			if err != nil {
				return fmt.Errorf("failed to initialize dependencies: %w", err)
			}

			seed, err := internalseeds.Load(deps.Config.SeedPath)
			if err != nil {
				return fmt.Errorf("seed validation failed: %w", err)
			}

			deps.Logger.Info("seed data is valid",
				"campuses", len(seed.Campuses),
				"keywords", len(seed.Keywords),
				"cms_patterns", len(seed.CmsPatterns),
			)
			return nil
		},
	}
}
