package outwriter

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/huangsam/hammer/internal/contract"
	"github.com/huangsam/hammer/internal/parquet"
	"github.com/huangsam/hammer/schema"
)

// ErrParquetOutputFile is returned when Parquet output is requested without a file.
var ErrParquetOutputFile = errors.New("parquet output requires --output-file")

// WriteExportResults writes a dataset as Parquet, CSV or JSON.
// The text output mode is treated as CSV.
func WriteExportResults(data schema.ExportData, cfg *contract.Config) error {
	if cfg.Output == schema.ParquetOut {
		if cfg.OutputFile == "" {
			return ErrParquetOutputFile
		}
		if err := writeExportParquet(data, cfg.OutputFile); err != nil {
			return err
		}
		fmt.Fprintf(os.Stderr, "💾 Wrote %d %s rows to %s\n", data.Len(), data.Kind, cfg.OutputFile)
		return nil
	}
	return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
		if cfg.Output == schema.JSONOut {
			return writeExportJSON(w, data)
		}
		return writeExportCSV(w, data)
	}, fmt.Sprintf("Wrote %s export", data.Kind))
}

func writeExportParquet(data schema.ExportData, path string) error {
	switch data.Kind {
	case schema.CommitsExport:
		return parquet.WriteCommitsParquet(parquet.ConvertCommitRecords(data.Commits), path)
	case schema.DetailsExport:
		return parquet.WriteAuthorCommitsParquet(parquet.ConvertDetailRecords(data.Details), path)
	case schema.SeriesExport:
		return parquet.WriteSeriesParquet(parquet.ConvertSeriesRecords(data.Series), path)
	}
	return fmt.Errorf("unknown export kind %q", data.Kind)
}

func writeExportJSON(w io.Writer, data schema.ExportData) error {
	switch data.Kind {
	case schema.CommitsExport:
		return writeJSON(w, nonNil(data.Commits))
	case schema.DetailsExport:
		return writeJSON(w, nonNil(data.Details))
	case schema.SeriesExport:
		return writeJSON(w, nonNil(data.Series))
	}
	return fmt.Errorf("unknown export kind %q", data.Kind)
}

func nonNil[T any](rows []T) []T {
	if rows == nil {
		return []T{}
	}
	return rows
}

func writeExportCSV(w io.Writer, data schema.ExportData) error {
	switch data.Kind {
	case schema.CommitsExport:
		header := []string{"hexsha", "repository", "author", "commit_time", "utc_offset", "added_lines", "deleted_lines", "parent_ids", "total_lines", "total_tests"}
		return writeCSVWithHeader(w, header, func(cw *csv.Writer) error {
			for _, r := range data.Commits {
				row := []string{
					r.Hexsha, r.Repository, r.Author,
					r.CommitTime.Format(time.RFC3339),
					formatInt32(r.UTCOffset),
					formatOptional(r.AddedLines),
					formatOptional(r.DeletedLines),
					strings.Join(r.ParentIDs, " "),
					formatInt32(r.TotalLines),
					formatInt32(r.TotalTests),
				}
				if err := cw.Write(row); err != nil {
					return fmt.Errorf("failed to write CSV row: %w", err)
				}
			}
			return nil
		})
	case schema.DetailsExport:
		header := []string{"hexsha", "author", "commit_time", "line_count", "test_count"}
		return writeCSVWithHeader(w, header, func(cw *csv.Writer) error {
			for _, r := range data.Details {
				row := []string{r.Hexsha, r.Author, r.CommitTime.Format(time.RFC3339), formatInt32(r.LineCount), formatOptional(r.TestCount)}
				if err := cw.Write(row); err != nil {
					return fmt.Errorf("failed to write CSV row: %w", err)
				}
			}
			return nil
		})
	case schema.SeriesExport:
		header := []string{"commit_time", "utc_offset", "author", "line_count", "test_count"}
		return writeCSVWithHeader(w, header, func(cw *csv.Writer) error {
			for _, r := range data.Series {
				row := []string{r.CommitTime.Format(time.RFC3339), formatInt32(r.UTCOffset), r.Author, formatInt32(r.LineCount), formatInt32(r.TestCount)}
				if err := cw.Write(row); err != nil {
					return fmt.Errorf("failed to write CSV row: %w", err)
				}
			}
			return nil
		})
	}
	return fmt.Errorf("unknown export kind %q", data.Kind)
}

func formatInt32(n int32) string {
	return strconv.FormatInt(int64(n), 10)
}

// formatOptional renders a null value as an empty cell.
func formatOptional(n *int32) string {
	if n == nil {
		return ""
	}
	return formatInt32(*n)
}
