// Package outwriter has output and writer logic.
package outwriter

import (
	"fmt"
	"io"
	"os"

	"github.com/huangsam/hammer/internal/contract"
	"github.com/huangsam/hammer/internal/plot"
	"github.com/huangsam/hammer/schema"
	"golang.org/x/term"
)

// OutWriter provides a unified interface for all output operations.
// It encapsulates the various output formats and provides a clean API for the commands.
type OutWriter struct{}

// NewOutWriter creates a new instance of the output writer.
func NewOutWriter() *OutWriter {
	return &OutWriter{}
}

// WriteSummary prints the per-author tables of a project using the configured output format.
func (ow *OutWriter) WriteSummary(summary schema.ProjectSummary, cfg *contract.Config) error {
	return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
		return WriteSummaryResults(w, summary, cfg)
	}, "Wrote summary")
}

// WriteSources prints the classified source files of a repository.
func (ow *OutWriter) WriteSources(files []schema.SourceFile, cfg *contract.Config) error {
	return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
		return WriteSourceResults(w, files, cfg)
	}, "Wrote sources")
}

// WriteProjects prints the project names known to the store.
func (ow *OutWriter) WriteProjects(projects []string, cfg *contract.Config) error {
	return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
		return WriteProjectResults(w, projects, cfg)
	}, "Wrote projects")
}

// WriteStatus prints the store status.
func (ow *OutWriter) WriteStatus(status schema.StoreStatus, cfg *contract.Config) error {
	return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
		return WriteStatusResults(w, status, cfg)
	}, "Wrote status")
}

// WriteRegression prints the outcome of a regression check.
func (ow *OutWriter) WriteRegression(result schema.RegressionResult, cfg *contract.Config) error {
	return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
		return WriteRegressionResults(w, result, cfg)
	}, "Wrote regression report")
}

// WriteExport writes an exported dataset. Parquet output requires cfg.OutputFile.
func (ow *OutWriter) WriteExport(data schema.ExportData, cfg *contract.Config) error {
	return WriteExportResults(data, cfg)
}

// WriteGraph renders a chart as an HTML page. Without cfg.OutputFile the page
// goes to <project>-<graph>.html in the working directory.
func (ow *OutWriter) WriteGraph(graph schema.GraphType, data plot.Data, cfg *contract.Config) error {
	chart, err := plot.Build(graph, data)
	if err != nil {
		return err
	}
	return writeWithFile(GraphFileName(data.Project, graph, cfg), chart.Render, "Wrote graph")
}

// GraphFileName returns where WriteGraph puts the chart.
func GraphFileName(project string, graph schema.GraphType, cfg *contract.Config) string {
	if cfg.OutputFile != "" {
		return cfg.OutputFile
	}
	return fmt.Sprintf("%s-%s.html", project, graph)
}

// GetMaxAuthorWidth calculates the maximum width for author names in table output
// based on terminal width and table configuration.
func GetMaxAuthorWidth(cfg *contract.Config) int {
	var termWidth int

	// Check for absolute width override from flag/env
	if cfg.Width > 0 {
		termWidth = cfg.Width
	}

	if termWidth == 0 { // Not set by override
		detectedWidth, _, err := term.GetSize(int(os.Stdout.Fd()))
		if err != nil || detectedWidth <= 0 {
			// Fallback to conservative default if terminal size can't be detected
			termWidth = 80
		} else {
			termWidth = detectedWidth
		}
	}

	// Email + Commits + Lines + Tests + Added + Deleted with borders/padding
	baseWidth := 30 + 5*12

	available := termWidth - baseWidth
	if available < 15 {
		return 15
	}
	if available > 50 {
		return 50
	}
	return available
}
