package contract

import (
	"context"
	"errors"
	"os"
	"os/exec"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// skipIfGitNotAvailable skips the test if git binary is not found in PATH
func skipIfGitNotAvailable(t *testing.T) {
	t.Helper()
	if _, err := exec.LookPath("git"); err != nil {
		t.Skipf("git binary not found in PATH: %v", err)
	}
}

// gitIn runs git inside dir with a fixed identity and date.
func gitIn(t *testing.T, dir, date string, args ...string) {
	t.Helper()
	cmd := exec.Command("git", args...)
	cmd.Dir = dir
	cmd.Env = append(os.Environ(),
		"GIT_AUTHOR_NAME=Ada", "GIT_AUTHOR_EMAIL=ada@example.com",
		"GIT_COMMITTER_NAME=Ada", "GIT_COMMITTER_EMAIL=ada@example.com",
		"GIT_AUTHOR_DATE="+date, "GIT_COMMITTER_DATE="+date,
		"GIT_CONFIG_NOSYSTEM=1", "HOME="+dir,
	)
	out, err := cmd.CombinedOutput()
	require.NoError(t, err, string(out))
}

// newFixtureRepo creates a repository with two commits: one adding two files
// and one renaming a file while editing the other.
func newFixtureRepo(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	gitIn(t, dir, "2020-01-01T10:00:00+0200", "init", "-q")
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.txt"), []byte("one\ntwo\nthree\n"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "b.txt"), []byte("alpha\nbeta\ngamma\ndelta\n"), 0o644))
	gitIn(t, dir, "2020-01-01T10:00:00+0200", "add", ".")
	gitIn(t, dir, "2020-01-01T10:00:00+0200", "commit", "-q", "-m", "first")

	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.txt"), []byte("one\nTWO\nthree\nfour\n"), 0o644))
	gitIn(t, dir, "2020-01-02T10:00:00-0500", "mv", "b.txt", "c.txt")
	gitIn(t, dir, "2020-01-02T10:00:00-0500", "commit", "-q", "-a", "-m", "second")
	return dir
}

// TestMockGitClient_Run ensures the mock correctly records and returns
// expected values when its Run method is called.
func TestMockGitClient_Run(t *testing.T) {
	mockClient := new(MockGitClient)
	ctx := context.Background()
	expectedErr := errors.New("mocked git error")

	mockClient.On("Run", ctx, "/path/to/repo", "log", "-1").Return([]byte("a1b2c3d"), expectedErr).Once()

	out, err := mockClient.Run(ctx, "/path/to/repo", "log", "-1")
	assert.Equal(t, []byte("a1b2c3d"), out)
	assert.Equal(t, expectedErr, err)
	mockClient.AssertExpectations(t)
}

// TestNewLocalGitClient tests the constructor for LocalGitClient.
func TestNewLocalGitClient(t *testing.T) {
	client := NewLocalGitClient()
	assert.NotNil(t, client, "NewLocalGitClient should return a non-nil client")
	assert.IsType(t, &LocalGitClient{}, client)
}

func TestLocalGitClient_RunFailure(t *testing.T) {
	skipIfGitNotAvailable(t)

	client := NewLocalGitClient()
	_, err := client.Run(context.Background(), t.TempDir(), "rev-parse", "HEAD")
	require.Error(t, err)
	var exitErr *exec.ExitError
	assert.ErrorAs(t, err, &exitErr)
}

func TestLocalGitClient_EmptyRepository(t *testing.T) {
	skipIfGitNotAvailable(t)

	dir := t.TempDir()
	gitIn(t, dir, "2020-01-01T10:00:00Z", "init", "-q")
	client := NewLocalGitClient()

	commits, err := client.ListCommits(context.Background(), dir)
	require.NoError(t, err)
	assert.Empty(t, commits)

	authors, err := client.ListAuthors(context.Background(), dir)
	require.NoError(t, err)
	assert.Empty(t, authors)
}

func TestLocalGitClient_History(t *testing.T) {
	skipIfGitNotAvailable(t)

	ctx := context.Background()
	dir := newFixtureRepo(t)
	client := NewLocalGitClient()

	commits, err := client.ListCommits(ctx, dir)
	require.NoError(t, err)
	require.Len(t, commits, 2)

	authors, err := client.ListAuthors(ctx, dir)
	require.NoError(t, err)
	assert.Equal(t, []string{"Ada <ada@example.com>"}, authors)

	ok, err := client.CommitExists(ctx, dir, commits[0])
	require.NoError(t, err)
	assert.True(t, ok)
	ok, err = client.CommitExists(ctx, dir, "0123456789012345678901234567890123456789")
	require.NoError(t, err)
	assert.False(t, ok)

	root, err := client.GetCommit(ctx, dir, commits[0])
	require.NoError(t, err)
	assert.Empty(t, root.ParentIDs)
	assert.Equal(t, "Ada", root.AuthorName)
	_, offset := root.AuthorTime.Zone()
	assert.Equal(t, 7200, offset)

	second, err := client.GetCommit(ctx, dir, commits[1])
	require.NoError(t, err)
	assert.Equal(t, []string{commits[0]}, second.ParentIDs)
	_, offset = second.AuthorTime.Zone()
	assert.Equal(t, -5*3600, offset)

	literal, err := client.ResolveMailmap(ctx, dir, "Ada <ada@example.com>")
	require.NoError(t, err)
	assert.Equal(t, "Ada <ada@example.com>", literal)
}

func TestLocalGitClient_Content(t *testing.T) {
	skipIfGitNotAvailable(t)

	ctx := context.Background()
	dir := newFixtureRepo(t)
	client := NewLocalGitClient()
	commits, err := client.ListCommits(ctx, dir)
	require.NoError(t, err)

	tree, err := client.ListTree(ctx, dir, commits[0])
	require.NoError(t, err)
	require.Len(t, tree, 2)
	assert.Equal(t, "a.txt", tree[0].Path)

	blob, err := client.ReadBlob(ctx, dir, tree[1].BlobID)
	require.NoError(t, err)
	assert.Equal(t, "alpha\nbeta\ngamma\ndelta\n", string(blob))

	hunks, err := client.Blame(ctx, dir, commits[1], "a.txt")
	require.NoError(t, err)
	total := 0
	for _, h := range hunks {
		assert.Equal(t, "Ada <ada@example.com>", h.Author)
		total += len(h.Lines)
	}
	assert.Equal(t, 4, total)
}

func TestLocalGitClient_Differences(t *testing.T) {
	skipIfGitNotAvailable(t)

	ctx := context.Background()
	dir := newFixtureRepo(t)
	client := NewLocalGitClient()
	commits, err := client.ListCommits(ctx, dir)
	require.NoError(t, err)

	cs, err := client.DiffTree(ctx, dir, commits[0], commits[1])
	require.NoError(t, err)
	assert.Len(t, cs.Modified, 1)
	assert.Equal(t, "a.txt", cs.Modified[0].To)
	require.Len(t, cs.Renamed, 1)
	assert.Equal(t, "b.txt", cs.Renamed[0].From)
	assert.Equal(t, "c.txt", cs.Renamed[0].To)

	root, err := client.NumstatDiff(ctx, dir, "", commits[0])
	require.NoError(t, err)
	added := 0
	for _, e := range root {
		added += e.Added
	}
	assert.Equal(t, 7, added)

	stats, err := client.NumstatDiff(ctx, dir, commits[0], commits[1])
	require.NoError(t, err)
	byPath := map[string][2]int{}
	for _, e := range stats {
		byPath[e.Path] = [2]int{e.Added, e.Deleted}
	}
	assert.Equal(t, [2]int{2, 1}, byPath["a.txt"])
	assert.Equal(t, [2]int{0, 0}, byPath["c.txt"])
}
