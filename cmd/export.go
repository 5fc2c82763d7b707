package cmd

import (
	"fmt"
	"strings"

	"github.com/huangsam/hammer/core"
	"github.com/huangsam/hammer/schema"
	"github.com/spf13/cobra"
)

// exportCmd writes a dataset of a project for external analysis.
var exportCmd = &cobra.Command{
	Use:   "export <project> <commits|details|series>",
	Short: "Export the data of a project as CSV, JSON or Parquet.",
	Long: `Export one dataset of a project.

Datasets:
  commits  one row per commit, with its line changes and totals
  details  one row per commit and author, with the lines and tests they own
  series   one row per resampled interval and author, combined across repositories

Parquet output requires --output-file.

Examples:
  hammer export backend commits --output csv
  hammer export backend series --frequency weekly --output parquet --output-file series.parquet`,
	Args:    cobra.ExactArgs(2),
	PreRunE: setupArgs(0, -1),
	RunE: func(_ *cobra.Command, args []string) error {
		kind := schema.ExportKind(strings.ToLower(args[1]))
		if _, ok := schema.ValidExportKinds[kind]; !ok {
			return fmt.Errorf("invalid export kind '%s'. must be commits, details or series", args[1])
		}
		return withSession(func(h *core.Hammer) error {
			data, err := exportData(h, kind)
			if err != nil {
				return err
			}
			return writer.WriteExport(data, cfg)
		})
	},
}

func exportData(h *core.Hammer, kind schema.ExportKind) (schema.ExportData, error) {
	data := schema.ExportData{Kind: kind}
	var err error
	switch kind {
	case schema.CommitsExport:
		data.Commits, err = core.CommitRecords(h)
	case schema.DetailsExport:
		data.Details, err = core.DetailRecords(h)
	case schema.SeriesExport:
		data.Series, err = core.SeriesRecords(h, cfg.Frequency)
	}
	return data, err
}
