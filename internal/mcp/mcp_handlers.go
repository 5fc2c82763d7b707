package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/huangsam/hammer/core"
	"github.com/huangsam/hammer/internal/contract"
	"github.com/huangsam/hammer/schema"
	"github.com/mark3labs/mcp-go/mcp"
)

const (
	seriesLines = "lines"
	seriesTests = "tests"

	defaultCommitLimit = 50
)

// toolHandler holds common dependencies for MCP tool handlers.
type toolHandler struct {
	baseCfg *contract.Config
	store   contract.Store
	git     contract.GitClient
}

// seriesPoint is one point of a line series.
type seriesPoint struct {
	CommitTime string          `json:"commit_time"`
	Counts     schema.CountMap `json:"counts"`
}

func textResult(data any) (*mcp.CallToolResult, error) {
	jsonData, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to encode result: %v", err)), nil
	}
	return mcp.NewToolResultText(string(jsonData)), nil
}

func (h *toolHandler) open(ctx context.Context, project string) (*core.Hammer, error) {
	if project == "" {
		return nil, fmt.Errorf("project is required")
	}
	return core.New(ctx, project, h.store, h.git, core.WithFlushInterval(h.baseCfg.FlushInterval))
}

func (h *toolHandler) handleListProjects(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	projects, err := h.store.ListProjects(ctx)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("listing projects failed: %v", err)), nil
	}
	if projects == nil {
		projects = []string{}
	}
	return textResult(projects)
}

func (h *toolHandler) handleGetProjectSummary(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	hm, err := h.open(ctx, request.GetString("project", ""))
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("opening project failed: %v", err)), nil
	}
	summary, err := core.Summarize(hm)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("summary failed: %v", err)), nil
	}
	return textResult(summary)
}

func (h *toolHandler) handleGetLineSeries(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	freq := contract.DefaultFrequency
	if f := request.GetString("frequency", ""); f != "" {
		parsed, err := schema.ParseFrequency(f)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("invalid series parameters: %v", err)), nil
		}
		freq = parsed
	}
	kind := request.GetString("kind", seriesLines)
	if kind != seriesLines && kind != seriesTests {
		return mcp.NewToolResultError(fmt.Sprintf("invalid series parameters: unknown kind '%s'", kind)), nil
	}

	hm, err := h.open(ctx, request.GetString("project", ""))
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("opening project failed: %v", err)), nil
	}
	it, err := hm.IterCommits(freq)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("series failed: %v", err)), nil
	}

	points := []seriesPoint{}
	for _, c := range core.Collect(it) {
		counts := c.LineCounts
		if kind == seriesTests {
			counts = c.TestCounts
		}
		points = append(points, seriesPoint{CommitTime: c.CommitTime.Format("2006-01-02T15:04:05-07:00"), Counts: counts})
	}
	return textResult(points)
}

func (h *toolHandler) handleListCommits(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	limit := request.GetInt("limit", defaultCommitLimit)
	if limit < 1 {
		return mcp.NewToolResultError("invalid limit: must be at least 1"), nil
	}

	hm, err := h.open(ctx, request.GetString("project", ""))
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("opening project failed: %v", err)), nil
	}
	records, err := core.CommitRecords(hm)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("listing commits failed: %v", err)), nil
	}
	if len(records) > limit {
		records = records[len(records)-limit:]
	}
	if records == nil {
		records = []schema.CommitRecord{}
	}
	return textResult(records)
}
