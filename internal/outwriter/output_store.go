package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"
	"maps"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/huangsam/hammer/internal/contract"
	"github.com/huangsam/hammer/schema"
)

// WriteSourceResults outputs the classified files of a repository.
func WriteSourceResults(w io.Writer, files []schema.SourceFile, cfg *contract.Config) error {
	switch cfg.Output {
	case schema.JSONOut:
		return writeJSON(w, files)
	case schema.CSVOut:
		return writeCSVWithHeader(w, []string{"path", "test", "language", "test_lines"}, func(cw *csv.Writer) error {
			for _, f := range files {
				row := []string{f.Path, strconv.FormatBool(f.Test), f.Language, strconv.Itoa(len(f.TestLines))}
				if err := cw.Write(row); err != nil {
					return fmt.Errorf("failed to write CSV row: %w", err)
				}
			}
			return nil
		})
	}

	var tests int
	for _, f := range files {
		kind := "source"
		if f.Test {
			kind = "test"
			tests++
		}
		if _, err := fmt.Fprintf(w, "%-6s %s\n", kind, f.Path); err != nil {
			return err
		}
		for _, line := range f.TestLines {
			if _, err := fmt.Fprintf(w, "       > %s\n", line); err != nil {
				return err
			}
		}
	}
	_, err := fmt.Fprintf(w, "%d source files, %d test files\n", len(files)-tests, tests)
	return err
}

// WriteProjectResults outputs the project names, one per line.
func WriteProjectResults(w io.Writer, projects []string, cfg *contract.Config) error {
	switch cfg.Output {
	case schema.JSONOut:
		if projects == nil {
			projects = []string{}
		}
		return writeJSON(w, projects)
	case schema.CSVOut:
		return writeCSVWithHeader(w, []string{"project"}, func(cw *csv.Writer) error {
			for _, p := range projects {
				if err := cw.Write([]string{p}); err != nil {
					return fmt.Errorf("failed to write CSV row: %w", err)
				}
			}
			return nil
		})
	}
	if len(projects) == 0 {
		_, err := fmt.Fprintln(w, "No projects")
		return err
	}
	_, err := fmt.Fprintln(w, strings.Join(projects, "\n"))
	return err
}

// WriteStatusResults outputs the store status.
func WriteStatusResults(w io.Writer, status schema.StoreStatus, cfg *contract.Config) error {
	if cfg.Output == schema.JSONOut {
		return writeJSON(w, status)
	}

	if err := writeHeading(w, "Store status", cfg); err != nil {
		return err
	}
	latest := "never"
	if status.LatestCommit != nil {
		latest = fmt.Sprintf("%s (%s)", status.LatestCommit.Format(time.RFC3339), humanize.Time(*status.LatestCommit))
	}
	rows := [][]string{
		{"Backend", status.Backend},
		{"Connected", verdict(status.Connected, cfg)},
		{"Initialized", strconv.FormatBool(status.Initialized)},
		{"Schema version", strconv.FormatUint(uint64(status.SchemaVersion), 10)},
		{"Dirty", strconv.FormatBool(status.Dirty)},
		{"Projects", formatCount(status.Projects)},
		{"Latest commit", latest},
	}
	for _, table := range slices.Sorted(maps.Keys(status.TableSizes)) {
		rows = append(rows, []string{table + " rows", humanize.Comma(status.TableSizes[table])})
	}
	return writeTable(w, []string{"Property", "Value"}, rows)
}

// WriteRegressionResults outputs the mismatches of a regression check.
func WriteRegressionResults(w io.Writer, result schema.RegressionResult, cfg *contract.Config) error {
	switch cfg.Output {
	case schema.JSONOut:
		if result.Mismatches == nil {
			result.Mismatches = []schema.Mismatch{}
		}
		return writeJSON(w, result)
	case schema.CSVOut:
		return writeCSVWithHeader(w, []string{"hexsha", "field", "detail"}, func(cw *csv.Writer) error {
			for _, m := range result.Mismatches {
				if err := cw.Write([]string{m.Hexsha, m.Field, m.Detail}); err != nil {
					return fmt.Errorf("failed to write CSV row: %w", err)
				}
			}
			return nil
		})
	}

	title := fmt.Sprintf("Regression %s vs %s: %s", result.Baseline, result.Candidate, verdict(result.OK(), cfg))
	if err := writeHeading(w, title, cfg); err != nil {
		return err
	}
	for _, m := range result.Mismatches {
		if _, err := fmt.Fprintf(w, "%s %s\n%s\n", m.Hexsha, m.Field, m.Detail); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintf(w, "Checked %s commits, %s mismatches\n", formatCount(result.Checked), formatCount(len(result.Mismatches)))
	return err
}
