// Package contract provides interfaces and shared utilities for hammer's internal architecture.
package contract

import (
	"context"

	"github.com/huangsam/hammer/schema"
)

// GitClient defines the repository operations needed to compute line statistics.
// This allows the core logic to be tested without needing a real git executable.
type GitClient interface {
	// --- Generic / Low-Level ---

	// Run executes a git command and returns its standard output.
	// Its use should be minimized in favor of the explicit methods below.
	Run(ctx context.Context, repoPath string, args ...string) ([]byte, error)

	// --- History ---

	// ListCommits returns every commit reachable from HEAD, oldest first.
	// A repository without HEAD yields no commits.
	ListCommits(ctx context.Context, repoPath string) ([]string, error)

	// ListAuthors returns the distinct mailmap-applied "Name <email>" authors of HEAD.
	ListAuthors(ctx context.Context, repoPath string) ([]string, error)

	// CommitExists reports whether the object store holds the commit.
	CommitExists(ctx context.Context, repoPath string, hexsha string) (bool, error)

	// GetCommit reads the raw metadata of a commit.
	GetCommit(ctx context.Context, repoPath string, hexsha string) (schema.CommitInfo, error)

	// ResolveMailmap returns the canonical form of an author literal.
	ResolveMailmap(ctx context.Context, repoPath string, literal string) (string, error)

	// --- Content ---

	// ListTree returns all blobs reachable from the tree of a commit.
	ListTree(ctx context.Context, repoPath string, ref string) ([]schema.TreeEntry, error)

	// ReadBlob returns the contents of a blob.
	ReadBlob(ctx context.Context, repoPath string, blobID string) ([]byte, error)

	// Blame attributes every line of path at ref, ignoring whitespace changes.
	Blame(ctx context.Context, repoPath string, ref string, path string) ([]schema.BlameHunk, error)

	// --- Differences ---

	// DiffTree returns the files changed between two commits, with rename detection.
	DiffTree(ctx context.Context, repoPath string, from, to string) (schema.ChangeSet, error)

	// NumstatDiff returns added and deleted line counts per file. An empty from
	// diffs against the empty tree.
	NumstatDiff(ctx context.Context, repoPath string, from, to string) ([]schema.NumstatEntry, error)
}

// Store defines the persistence gateway of projects, repositories, authors and commits.
// This allows the store to be mocked for testing.
type Store interface {
	// Initialized reports whether any schema version has been applied.
	Initialized(ctx context.Context) (bool, error)

	// CheckSchema returns schema.ErrOldSchema when migrations are pending.
	CheckSchema(ctx context.Context) error

	// Migrate moves the schema to target: -1 means latest, 0 removes everything.
	Migrate(ctx context.Context, target int) (from, to uint, err error)

	CreateProject(ctx context.Context, name string) error
	ProjectExists(ctx context.Context, name string) (bool, error)
	ListProjects(ctx context.Context) ([]string, error)

	// AddRepository links repo to project, reusing a row with the same path.
	// The repository ID is set on return.
	AddRepository(ctx context.Context, project string, repo *schema.Repository) error

	LoadRepositories(ctx context.Context, project string) ([]*schema.Repository, error)
	LoadAuthors(ctx context.Context) ([]*schema.Author, error)

	// LoadCommits returns the commits of every repository in project, with their counts.
	LoadCommits(ctx context.Context, project string) ([]*schema.Commit, error)

	// Begin opens a write transaction.
	Begin(ctx context.Context) (StoreTx, error)

	// GetStatus returns status information about the store.
	GetStatus(ctx context.Context) (schema.StoreStatus, error)

	// Close closes the underlying connection.
	Close() error
}

// StoreTx is a batch of writes that become durable on Commit.
type StoreTx interface {
	SaveAuthor(ctx context.Context, author *schema.Author) error
	SaveCommit(ctx context.Context, commit *schema.Commit) error
	UpdateHead(ctx context.Context, repositoryID int64, hexsha string) error
	Commit() error
	Rollback() error
}
