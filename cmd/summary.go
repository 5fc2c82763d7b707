package cmd

import (
	"github.com/huangsam/hammer/core"
	"github.com/spf13/cobra"
)

// summaryCmd prints the per-author tables of a project.
var summaryCmd = &cobra.Command{
	Use:   "summary <project>",
	Short: "Print per-author statistics of a project.",
	Long: `Print, for every author of a project, the number of commits, the lines and tests
they own at the current heads, and the lines they added and deleted.

The text output also shows the commits per day of week and per hour of day,
in each author's local time.

Examples:
  hammer summary backend
  hammer summary backend --output csv --output-file backend.csv`,
	Args:    cobra.ExactArgs(1),
	PreRunE: setupArgs(0, -1),
	RunE: func(_ *cobra.Command, _ []string) error {
		return withSession(func(h *core.Hammer) error {
			summary, err := core.Summarize(h)
			if err != nil {
				return err
			}
			return writer.WriteSummary(summary, cfg)
		})
	},
}
