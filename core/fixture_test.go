package core

import (
	"context"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"

	"github.com/huangsam/hammer/internal/contract"
	"github.com/huangsam/hammer/internal/store"
	"github.com/huangsam/hammer/schema"
	"github.com/stretchr/testify/require"
)

const (
	alice = "Alice <alice@example.com>"
	bob   = "Bob <bob@example.com>"
)

// skipIfGitNotAvailable skips the test if git binary is not found in PATH
func skipIfGitNotAvailable(t *testing.T) {
	t.Helper()
	if _, err := exec.LookPath("git"); err != nil {
		t.Skipf("git binary not found in PATH: %v", err)
	}
}

// fixtureRepo is a scratch repository that tests commit into.
type fixtureRepo struct {
	t   *testing.T
	dir string
}

func newFixture(t *testing.T) *fixtureRepo {
	t.Helper()
	skipIfGitNotAvailable(t)
	r := &fixtureRepo{t: t, dir: t.TempDir()}
	r.git(alice, "2020-01-01T00:00:00+0000", "init", "-q")
	return r
}

// git runs a git command as author, which is given as "Name <email>".
func (r *fixtureRepo) git(author, date string, args ...string) string {
	r.t.Helper()
	name, email, _ := strings.Cut(author, " <")
	email = strings.TrimSuffix(email, ">")
	cmd := exec.Command("git", args...)
	cmd.Dir = r.dir
	cmd.Env = append(os.Environ(),
		"GIT_AUTHOR_NAME="+name, "GIT_AUTHOR_EMAIL="+email,
		"GIT_COMMITTER_NAME="+name, "GIT_COMMITTER_EMAIL="+email,
		"GIT_AUTHOR_DATE="+date, "GIT_COMMITTER_DATE="+date,
		"GIT_CONFIG_NOSYSTEM=1", "HOME="+r.dir,
	)
	out, err := cmd.CombinedOutput()
	require.NoError(r.t, err, string(out))
	return strings.TrimSpace(string(out))
}

// write replaces the given files, creating parent directories as needed.
func (r *fixtureRepo) write(files map[string]string) {
	r.t.Helper()
	for path, content := range files {
		full := filepath.Join(r.dir, path)
		require.NoError(r.t, os.MkdirAll(filepath.Dir(full), 0o755))
		require.NoError(r.t, os.WriteFile(full, []byte(content), 0o644))
	}
}

// commit writes files and commits every change, returning the new commit id.
func (r *fixtureRepo) commit(author, date string, files map[string]string) string {
	r.t.Helper()
	r.write(files)
	r.git(author, date, "add", "-A")
	r.git(author, date, "commit", "-q", "--allow-empty", "-m", "change")
	return r.git(author, date, "rev-parse", "HEAD")
}

// numberedLines returns "prefix 1\n" through "prefix n\n".
func numberedLines(prefix string, from, to int) string {
	var b strings.Builder
	for i := from; i <= to; i++ {
		b.WriteString(prefix)
		b.WriteString(" ")
		b.WriteString(strings.Repeat("x", i))
		b.WriteString("\n")
	}
	return b.String()
}

// newSQLiteStore opens an uninitialized SQLite store in a temporary directory.
func newSQLiteStore(t *testing.T) *store.SQLStore {
	t.Helper()
	s, err := store.Open(context.Background(), schema.SQLiteBackend, filepath.Join(t.TempDir(), "hammer.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

// newSession opens a session over project with the local git client.
func newSession(t *testing.T, s contract.Store, project string, opts ...Option) *Hammer {
	t.Helper()
	h, err := New(context.Background(), project, s, contract.NewLocalGitClient(), opts...)
	require.NoError(t, err)
	return h
}

// commitByID returns the processed commit with the given id.
func commitByID(t *testing.T, h *Hammer, id string) *schema.Commit {
	t.Helper()
	commits, err := h.IterIndividualCommits()
	require.NoError(t, err)
	for _, c := range commits {
		if c.Hexsha == id {
			return c
		}
	}
	require.Failf(t, "commit not found", "commit %s is not in project %s", id, h.ProjectName())
	return nil
}
