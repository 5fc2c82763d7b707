// Package mcp provides the Model Context Protocol (MCP) server implementation.
package mcp

import (
	"context"

	"github.com/huangsam/hammer/internal/contract"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// NewMCPServer initializes and configures the hammer MCP server without starting it.
// This is exposed for unit testing.
func NewMCPServer(baseCfg *contract.Config, store contract.Store, git contract.GitClient) *server.MCPServer {
	s := server.NewMCPServer(
		"Hammer Statistics Server",
		"1.0.0",
		server.WithLogging(),
	)

	h := &toolHandler{
		baseCfg: baseCfg,
		store:   store,
		git:     git,
	}

	// --- 1. Tool: list_projects ---
	s.AddTool(mcp.NewTool("list_projects",
		mcp.WithDescription("List the projects stored in the hammer database."),
	), h.handleListProjects)

	// --- 2. Tool: get_project_summary ---
	s.AddTool(mcp.NewTool("get_project_summary",
		mcp.WithDescription("Summarize a project: per-author commits, lines, tests and line changes, plus commit time histograms."),
		mcp.WithString("project", mcp.Description("Name of the project."), mcp.Required()),
	), h.handleGetProjectSummary)

	// --- 3. Tool: get_line_series ---
	s.AddTool(mcp.NewTool("get_line_series",
		mcp.WithDescription("Get the per-author line or test counts of a project over time, combined across its repositories."),
		mcp.WithString("project", mcp.Description("Name of the project."), mcp.Required()),
		mcp.WithString("frequency", mcp.Description("Resampling frequency. Defaults to 'daily'."), mcp.Enum("daily", "weekly", "monthly", "yearly")),
		mcp.WithString("kind", mcp.Description("Counts to return. Defaults to 'lines'."), mcp.Enum(seriesLines, seriesTests)),
	), h.handleGetLineSeries)

	// --- 4. Tool: list_commits ---
	s.AddTool(mcp.NewTool("list_commits",
		mcp.WithDescription("List the most recent processed commits of a project with their line statistics."),
		mcp.WithString("project", mcp.Description("Name of the project."), mcp.Required()),
		mcp.WithNumber("limit", mcp.Description("Limit the number of commits returned. Defaults to 50.")),
	), h.handleListCommits)

	return s
}

// StartMCPServer starts the hammer MCP server on stdio.
func StartMCPServer(_ context.Context, baseCfg *contract.Config, store contract.Store, git contract.GitClient) error {
	s := NewMCPServer(baseCfg, store, git)
	return server.ServeStdio(s)
}
