package cmd

import (
	"errors"
	"fmt"
	"strings"

	"github.com/huangsam/hammer/core"
	"github.com/huangsam/hammer/internal/contract"
	"github.com/huangsam/hammer/internal/plot"
	"github.com/huangsam/hammer/schema"
	"github.com/spf13/cobra"
)

// graphCmd renders a chart of a project.
var graphCmd = &cobra.Command{
	Use:   "graph <project> <type>",
	Short: "Render a chart of a project as an HTML page.",
	Long: `Render one chart of a project as a standalone HTML page.

Chart types:
  line-count         total lines over time
  line-author-count  lines owned by each author over time
  test-count         total tests over time
  test-author-count  tests owned by each author over time
  day-of-week        commits per day of week
  time-of-day        commits per hour of day

The page is written to <project>-<type>.html unless --output-file is given.

Examples:
  hammer graph backend line-author-count
  hammer graph backend test-count --frequency monthly --output-file tests.html`,
	Args:    cobra.ExactArgs(2),
	PreRunE: setupArgs(0, -1),
	RunE: func(_ *cobra.Command, args []string) error {
		graph := schema.GraphType(strings.ToLower(args[1]))
		if _, ok := schema.ValidGraphTypes[graph]; !ok {
			return fmt.Errorf("invalid graph type '%s'. must be one of %v", args[1], schema.AllGraphTypes)
		}
		return withSession(func(h *core.Hammer) error {
			data, err := graphData(h)
			if err != nil {
				return err
			}
			err = writer.WriteGraph(graph, data, cfg)
			if errors.Is(err, plot.ErrNoData) {
				return fmt.Errorf("%w: %s has no %s", err, h.ProjectName(), graph)
			}
			return err
		})
	},
}

// graphData gathers the series, head and summary that the charts draw from.
func graphData(h *core.Hammer) (plot.Data, error) {
	it, err := h.IterCommits(cfg.Frequency)
	if err != nil {
		return plot.Data{}, err
	}
	head, err := h.HeadCommit()
	if err != nil {
		return plot.Data{}, err
	}
	summary, err := core.Summarize(h)
	if err != nil {
		return plot.Data{}, err
	}

	combined := core.Collect(it)
	points := make([]schema.CombinedCommit, 0, len(combined))
	for _, c := range combined {
		points = append(points, *c)
	}

	width := cfg.Width
	if width == 0 {
		width = contract.DefaultGraphWidth
	}
	return plot.Data{
		Project:   h.ProjectName(),
		Frequency: cfg.Frequency,
		Width:     width,
		Points:    points,
		Head:      *head,
		Summary:   summary,
	}, nil
}
