package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/huangsam/hammer/internal/contract"
	"github.com/huangsam/hammer/schema"
)

var summaryHeader = []string{"Author", "Email", "Commits", "Lines", "Tests", "Added", "Deleted"}

var weekdayNames = [7]string{"Mon", "Tue", "Wed", "Thu", "Fri", "Sat", "Sun"}

// WriteSummaryResults outputs a project summary, dispatching based on the output format configured.
func WriteSummaryResults(w io.Writer, summary schema.ProjectSummary, cfg *contract.Config) error {
	switch cfg.Output {
	case schema.JSONOut:
		if err := writeJSON(w, summary); err != nil {
			return fmt.Errorf("error writing JSON output: %w", err)
		}
	case schema.CSVOut:
		if err := writeSummaryCSV(w, summary); err != nil {
			return fmt.Errorf("error writing CSV output: %w", err)
		}
	default:
		return writeSummaryTable(w, summary, cfg)
	}
	return nil
}

// writeSummaryCSV writes one row per author.
func writeSummaryCSV(w io.Writer, summary schema.ProjectSummary) error {
	return writeCSVWithHeader(w, summaryHeader, func(cw *csv.Writer) error {
		for _, a := range summary.Authors {
			row := []string{
				a.Name,
				a.Email,
				strconv.Itoa(a.Commits),
				strconv.Itoa(a.Lines),
				strconv.Itoa(a.Tests),
				strconv.Itoa(a.AddedLines),
				strconv.Itoa(a.DeletedLines),
			}
			if err := cw.Write(row); err != nil {
				return fmt.Errorf("failed to write CSV row: %w", err)
			}
		}
		return nil
	})
}

// writeSummaryTable writes the author table, a totals row and the commit histograms.
func writeSummaryTable(w io.Writer, summary schema.ProjectSummary, cfg *contract.Config) error {
	if err := writeHeading(w, fmt.Sprintf("Project %s", summary.Project), cfg); err != nil {
		return err
	}
	if len(summary.Authors) == 0 {
		_, err := fmt.Fprintln(w, "No commits have been processed yet")
		return err
	}

	width := GetMaxAuthorWidth(cfg)
	var data [][]string
	var added, deleted int
	for _, a := range summary.Authors {
		data = append(data, []string{
			contract.TruncateLabel(a.Name, width),
			a.Email,
			formatCount(a.Commits),
			formatCount(a.Lines),
			formatCount(a.Tests),
			formatCount(a.AddedLines),
			formatCount(a.DeletedLines),
		})
		added += a.AddedLines
		deleted += a.DeletedLines
	}
	data = append(data, []string{
		"Total", "",
		formatCount(summary.TotalCommits),
		formatCount(summary.TotalLines),
		formatCount(summary.TotalTests),
		formatCount(added),
		formatCount(deleted),
	})
	if err := writeTable(w, summaryHeader, data); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "%d repositories, head at %s\n", summary.Repositories, summary.HeadTime.Format(time.RFC3339)); err != nil {
		return err
	}

	if err := writeHeading(w, "Commits per day of week", cfg); err != nil {
		return err
	}
	days := make([]string, 0, len(weekdayNames))
	counts := make([]string, 0, len(weekdayNames))
	for i, name := range weekdayNames {
		days = append(days, name)
		counts = append(counts, formatCount(summary.WeekdayCommits[i]))
	}
	if err := writeTable(w, days, [][]string{counts}); err != nil {
		return err
	}

	if err := writeHeading(w, "Commits per hour of day", cfg); err != nil {
		return err
	}
	var hours [][]string
	for hour, n := range summary.HourCommits {
		if n > 0 {
			hours = append(hours, []string{fmt.Sprintf("%02d:00", hour), formatCount(n)})
		}
	}
	return writeTable(w, []string{"Hour", "Commits"}, hours)
}
