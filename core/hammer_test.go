package core

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/huangsam/hammer/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddRepositoryAttributesLines(t *testing.T) {
	ctx := context.Background()
	r := newFixture(t)
	first := r.commit(alice, "2020-01-06T10:00:00+0200", map[string]string{
		"file.txt": numberedLines("a", 1, 14),
	})
	second := r.commit(bob, "2020-01-07T11:30:00+0200", map[string]string{
		"file.txt": numberedLines("a", 1, 10) + numberedLines("b", 1, 4),
	})

	s := newSQLiteStore(t)
	h := newSession(t, s, "demo")
	require.NoError(t, h.AddRepository(ctx, r.dir, "", nil))

	c1 := commitByID(t, h, first)
	assert.Equal(t, schema.CountMap{alice: 14}, c1.LineCounts)
	assert.Empty(t, c1.TestCounts)
	assert.Equal(t, alice, c1.AuthorName)
	require.NotNil(t, c1.AddedLines)
	assert.Equal(t, 14, *c1.AddedLines)
	assert.Equal(t, 0, *c1.DeletedLines)
	assert.Empty(t, c1.ParentIDs)
	assert.Equal(t, 10, c1.CommitTime.Hour())
	assert.Equal(t, 7200, c1.UTCOffset())

	c2 := commitByID(t, h, second)
	assert.Equal(t, schema.CountMap{alice: 10, bob: 4}, c2.LineCounts)
	assert.Equal(t, []string{first}, c2.ParentIDs)
	assert.Equal(t, 4, *c2.AddedLines)
	assert.Equal(t, 4, *c2.DeletedLines)

	head, err := h.HeadCommit()
	require.NoError(t, err)
	assert.Equal(t, schema.CountMap{alice: 10, bob: 4}, head.LineCounts)
	assert.Equal(t, second, h.Repositories()[0].HeadCommitID)

	authors, err := h.IterAuthors()
	require.NoError(t, err)
	require.Len(t, authors, 2)
	assert.Equal(t, alice, authors[0].CanonicalName)
	assert.Equal(t, bob, authors[1].CanonicalName)

	// A new session rebuilds the same state from the store.
	reopened := newSession(t, s, "demo")
	assert.Equal(t, c2.LineCounts, commitByID(t, reopened, second).LineCounts)
	assert.Equal(t, c2.CommitTime.Unix(), commitByID(t, reopened, second).CommitTime.Unix())
	assert.Equal(t, 7200, commitByID(t, reopened, second).UTCOffset())
}

func TestUpdateDataIsIdempotent(t *testing.T) {
	ctx := context.Background()
	r := newFixture(t)
	r.commit(alice, "2020-01-06T10:00:00+0000", map[string]string{"a.txt": numberedLines("a", 1, 5)})
	s := newSQLiteStore(t)
	h := newSession(t, s, "demo")
	require.NoError(t, h.AddRepository(ctx, r.dir, "", nil))

	before, err := h.IterIndividualCommits()
	require.NoError(t, err)
	head := h.Repositories()[0].HeadCommitID

	require.NoError(t, h.UpdateData(ctx))
	after, err := h.IterIndividualCommits()
	require.NoError(t, err)
	assert.Len(t, after, len(before))
	assert.Equal(t, head, h.Repositories()[0].HeadCommitID)

	third := r.commit(bob, "2020-01-08T10:00:00+0000", map[string]string{"b.txt": numberedLines("b", 1, 3)})
	require.NoError(t, h.UpdateData(ctx))
	after, err = h.IterIndividualCommits()
	require.NoError(t, err)
	assert.Len(t, after, len(before)+1)
	assert.Equal(t, third, h.Repositories()[0].HeadCommitID)
	assert.Equal(t, schema.CountMap{alice: 5, bob: 3}, commitByID(t, h, third).LineCounts)
}

func TestAddRepositoryTwiceIsSkipped(t *testing.T) {
	ctx := context.Background()
	r := newFixture(t)
	r.commit(alice, "2020-01-06T10:00:00+0000", map[string]string{"a.txt": "one\n"})
	s := newSQLiteStore(t)
	h := newSession(t, s, "demo")
	require.NoError(t, h.AddRepository(ctx, r.dir, "", nil))
	require.NoError(t, h.AddRepository(ctx, filepath.Join(r.dir, "."), "", nil))
	assert.Len(t, h.Repositories(), 1)
}

func TestEarliestCommitDate(t *testing.T) {
	ctx := context.Background()
	r := newFixture(t)
	r.commit(alice, "2020-01-01T10:00:00+0000", map[string]string{"a.txt": numberedLines("a", 1, 6)})
	second := r.commit(bob, "2020-02-01T10:00:00+0000", map[string]string{"b.txt": numberedLines("b", 1, 2)})
	third := r.commit(alice, "2020-03-01T10:00:00+0000", map[string]string{"b.txt": numberedLines("b", 1, 3)})

	s := newSQLiteStore(t)
	h := newSession(t, s, "limited")
	earliest := time.Date(2020, time.January, 15, 0, 0, 0, 0, time.UTC)
	require.NoError(t, h.AddRepository(ctx, r.dir, "", &earliest))

	commits, err := h.IterIndividualCommits()
	require.NoError(t, err)
	require.Len(t, commits, 2)
	assert.Equal(t, second, commits[0].Hexsha)
	assert.Equal(t, third, commits[1].Hexsha)

	// The excluded parent exists, so the first kept commit is blamed in full.
	assert.Equal(t, schema.CountMap{alice: 6, bob: 2}, commits[0].LineCounts)
	assert.Equal(t, schema.CountMap{alice: 7, bob: 2}, commits[1].LineCounts)
	require.NotNil(t, commits[0].AddedLines)
	assert.Equal(t, 2, *commits[0].AddedLines)

	require.NotNil(t, h.Repositories()[0].StartTime)
	assert.True(t, earliest.Equal(*h.Repositories()[0].StartTime))
}

func TestTestLinesAndExcludedPaths(t *testing.T) {
	ctx := context.Background()
	r := newFixture(t)
	configPath := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(configPath, []byte(`{
		"sourceFiles": ["**/*.go"],
		"excludedSourceFiles": ["vendor/**"],
		"testFiles": ["**/*_test.go"],
		"testLineRegex": "^func Test"
	}`), 0o644))

	first := r.commit(alice, "2020-01-06T10:00:00+0000", map[string]string{
		"main.go":      "package main\n\nfunc main() {}\n",
		"main_test.go": "package main\n\nfunc TestA(t *testing.T) {}\nfunc TestB(t *testing.T) {}\n",
		"README.md":    "docs\n",
	})
	second := r.commit(bob, "2020-01-07T10:00:00+0000", map[string]string{
		"vendor/lib/lib.go": "package lib\n",
	})

	s := newSQLiteStore(t)
	h := newSession(t, s, "tests")
	require.NoError(t, h.AddRepository(ctx, r.dir, configPath, nil))

	c1 := commitByID(t, h, first)
	assert.Equal(t, schema.CountMap{alice: 7}, c1.LineCounts)
	assert.Equal(t, schema.CountMap{alice: 2}, c1.TestCounts)
	assert.Equal(t, 7, *c1.AddedLines)

	c2 := commitByID(t, h, second)
	assert.Equal(t, c1.LineCounts, c2.LineCounts)
	assert.Equal(t, c1.TestCounts, c2.TestCounts)
	assert.Equal(t, 0, *c2.AddedLines)
}

func TestIncrementalMatchesFullRecompute(t *testing.T) {
	ctx := context.Background()
	r := newFixture(t)
	r.commit(alice, "2020-01-01T10:00:00+0100", map[string]string{
		"a.txt":     numberedLines("a", 1, 8),
		"dir/b.txt": numberedLines("b", 1, 5),
	})
	r.commit(bob, "2020-01-02T10:00:00-0700", map[string]string{
		"a.txt": numberedLines("a", 1, 4) + numberedLines("bob", 1, 3),
	})
	r.git(bob, "2020-01-03T10:00:00-0700", "mv", "dir/b.txt", "dir/c.txt")
	r.commit(bob, "2020-01-03T10:00:00-0700", map[string]string{
		"dir/c.txt": numberedLines("b", 1, 4),
	})
	r.git(alice, "2020-01-04T10:00:00+0100", "checkout", "-q", "-b", "feature")
	r.commit(alice, "2020-01-04T10:00:00+0100", map[string]string{"feature.txt": numberedLines("f", 1, 6)})
	r.git(alice, "2020-01-05T10:00:00+0100", "checkout", "-q", "-")
	r.commit(bob, "2020-01-05T10:00:00-0700", map[string]string{"main.txt": numberedLines("m", 1, 2)})
	r.git(bob, "2020-01-06T10:00:00-0700", "merge", "-q", "--no-ff", "-m", "merge", "feature")
	r.git(alice, "2020-01-07T10:00:00+0100", "rm", "-q", "a.txt")
	r.commit(alice, "2020-01-07T10:00:00+0100", map[string]string{"main.txt": numberedLines("m", 1, 5)})

	s := newSQLiteStore(t)
	incremental := newSession(t, s, "incremental")
	require.NoError(t, incremental.AddRepository(ctx, r.dir, "", nil))
	full := newSession(t, newSQLiteStore(t), "full", WithFullRecompute(true))
	require.NoError(t, full.AddRepository(ctx, r.dir, "", nil))

	result, err := CompareProjects(full, incremental)
	require.NoError(t, err)
	assert.True(t, result.OK(), "mismatches: %v", result.Mismatches)
	assert.Equal(t, 7, result.Checked)

	commits, err := incremental.IterIndividualCommits()
	require.NoError(t, err)
	var merges int
	for _, c := range commits {
		if len(c.ParentIDs) > 1 {
			merges++
			assert.Nil(t, c.AddedLines)
			assert.Nil(t, c.DeletedLines)
		}
	}
	assert.Equal(t, 1, merges)
}

func TestReadsRequireProject(t *testing.T) {
	s := newSQLiteStore(t)
	h := newSession(t, s, "missing")

	_, err := h.IterIndividualCommits()
	assert.ErrorIs(t, err, schema.ErrStoreNotInitialized)
	_, err = h.HeadCommit()
	assert.ErrorIs(t, err, schema.ErrStoreNotInitialized)
	_, err = h.IterCommits(schema.NoFrequency)
	assert.ErrorIs(t, err, schema.ErrStoreNotInitialized)
	assert.ErrorIs(t, h.UpdateData(context.Background()), schema.ErrStoreNotInitialized)
}

func TestAddRepositoryEmptyRepository(t *testing.T) {
	r := newFixture(t)
	s := newSQLiteStore(t)
	h := newSession(t, s, "empty")
	require.NoError(t, h.AddRepository(context.Background(), r.dir, "", nil))

	commits, err := h.IterIndividualCommits()
	require.NoError(t, err)
	assert.Empty(t, commits)
	_, err = h.HeadCommit()
	assert.ErrorIs(t, err, schema.ErrNoCommits)
}

func TestAddRepositoryRejectsMissingPath(t *testing.T) {
	skipIfGitNotAvailable(t)
	s := newSQLiteStore(t)
	h := newSession(t, s, "demo")
	err := h.AddRepository(context.Background(), filepath.Join(t.TempDir(), "nope"), "", nil)
	assert.Error(t, err)
}
