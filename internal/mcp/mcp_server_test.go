package mcp_test

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/huangsam/hammer/internal/contract"
	mcp_internal "github.com/huangsam/hammer/internal/mcp"
	"github.com/huangsam/hammer/schema"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	alice = "Alice <alice@example.com>"
	bob   = "Bob <bob@example.com>"
)

// newServer returns a server over a mocked store holding project "demo" with two commits.
func newServer(t *testing.T) (*server.MCPServer, *contract.MockStore) {
	t.Helper()
	ctx := context.Background()
	when := time.Date(2020, 1, 6, 9, 0, 0, 0, time.UTC)
	added, deleted := 14, 0

	st := new(contract.MockStore)
	st.On("Initialized", ctx).Return(true, nil)
	st.On("CheckSchema", ctx).Return(nil)
	st.On("ListProjects", ctx).Return([]string{"demo"}, nil)
	st.On("ProjectExists", ctx, "demo").Return(true, nil)
	st.On("ProjectExists", ctx, "missing").Return(false, nil)
	st.On("LoadRepositories", ctx, "demo").Return([]*schema.Repository{{ID: 1, Path: "/repos/demo", HeadCommitID: "c2"}}, nil)
	st.On("LoadAuthors", ctx).Return([]*schema.Author{{CanonicalName: alice}, {CanonicalName: bob}}, nil)
	st.On("LoadCommits", ctx, "demo").Return([]*schema.Commit{
		{Hexsha: "c1", AuthorName: alice, RepositoryID: 1, CommitTime: when, AddedLines: &added, DeletedLines: &deleted, LineCounts: schema.CountMap{alice: 14}},
		{Hexsha: "c2", AuthorName: bob, RepositoryID: 1, CommitTime: when.AddDate(0, 0, 1), ParentIDs: []string{"c1"}, LineCounts: schema.CountMap{alice: 10, bob: 4}, TestCounts: schema.CountMap{bob: 1}},
	}, nil)

	cfg := &contract.Config{FlushInterval: contract.DefaultFlushInterval}
	return mcp_internal.NewMCPServer(cfg, st, new(contract.MockGitClient)), st
}

func call(t *testing.T, s *server.MCPServer, name string, args map[string]any) *mcp.CallToolResult {
	t.Helper()
	tool := s.GetTool(name)
	require.NotNil(t, tool, "Tool %s should exist", name)

	req := mcp.CallToolRequest{Params: mcp.CallToolParams{Name: name, Arguments: args}}
	res, err := tool.Handler(context.Background(), req)
	require.NoError(t, err, "The MCP handler should not return a raw error for tool logic failures")
	require.NotEmpty(t, res.Content)
	return res
}

func text(res *mcp.CallToolResult) string {
	return res.Content[0].(mcp.TextContent).Text
}

func TestMCPServerHandlers(t *testing.T) {
	s, _ := newServer(t)

	t.Run("list_projects", func(t *testing.T) {
		res := call(t, s, "list_projects", nil)
		assert.False(t, res.IsError)
		assert.JSONEq(t, `["demo"]`, text(res))
	})

	t.Run("get_project_summary", func(t *testing.T) {
		res := call(t, s, "get_project_summary", map[string]any{"project": "demo"})
		require.False(t, res.IsError, text(res))

		var summary schema.ProjectSummary
		require.NoError(t, json.Unmarshal([]byte(text(res)), &summary))
		assert.Equal(t, 2, summary.TotalCommits)
		assert.Equal(t, 14, summary.TotalLines)
		require.Len(t, summary.Authors, 2)
		assert.Equal(t, "Alice", summary.Authors[0].Name)
	})

	t.Run("get_line_series tests", func(t *testing.T) {
		res := call(t, s, "get_line_series", map[string]any{"project": "demo", "kind": "tests"})
		require.False(t, res.IsError, text(res))

		var points []map[string]any
		require.NoError(t, json.Unmarshal([]byte(text(res)), &points))
		require.Len(t, points, 2)
		assert.Equal(t, map[string]any{bob: 1.0}, points[1]["counts"])
	})

	t.Run("list_commits limit", func(t *testing.T) {
		res := call(t, s, "list_commits", map[string]any{"project": "demo", "limit": 1.0})
		require.False(t, res.IsError, text(res))

		var records []schema.CommitRecord
		require.NoError(t, json.Unmarshal([]byte(text(res)), &records))
		require.Len(t, records, 1)
		assert.Equal(t, "c2", records[0].Hexsha)
		assert.Nil(t, records[0].AddedLines)
	})
}

func TestMCPServerHandlers_ValidationErrors(t *testing.T) {
	s, _ := newServer(t)

	t.Run("get_project_summary unknown project", func(t *testing.T) {
		res := call(t, s, "get_project_summary", map[string]any{"project": "missing"})
		assert.True(t, res.IsError, "The response should indicate an error state")
		assert.Contains(t, text(res), schema.ErrStoreNotInitialized.Error())
	})

	t.Run("get_project_summary missing project", func(t *testing.T) {
		res := call(t, s, "get_project_summary", map[string]any{})
		assert.True(t, res.IsError)
		assert.Contains(t, text(res), "project is required")
	})

	t.Run("get_line_series invalid frequency", func(t *testing.T) {
		res := call(t, s, "get_line_series", map[string]any{"project": "demo", "frequency": "hourly"})
		assert.True(t, res.IsError)
		assert.Contains(t, text(res), "invalid frequency")
	})

	t.Run("get_line_series invalid kind", func(t *testing.T) {
		res := call(t, s, "get_line_series", map[string]any{"project": "demo", "kind": "bytes"})
		assert.True(t, res.IsError)
		assert.Contains(t, text(res), "unknown kind")
	})

	t.Run("list_commits invalid limit", func(t *testing.T) {
		res := call(t, s, "list_commits", map[string]any{"project": "demo", "limit": 0.0})
		assert.True(t, res.IsError)
		assert.Contains(t, text(res), "must be at least 1")
	})
}
