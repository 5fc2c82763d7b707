package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"slices"

	"github.com/huangsam/hammer/internal/contract"
	"github.com/huangsam/hammer/schema"
)

// sqlTx implements contract.StoreTx.
type sqlTx struct {
	tx      *sql.Tx
	backend schema.DatabaseBackend
}

var _ contract.StoreTx = &sqlTx{} // Compile-time check

// SaveAuthor implements the StoreTx interface.
func (t *sqlTx) SaveAuthor(ctx context.Context, author *schema.Author) error {
	aliases := author.Aliases
	if aliases == nil {
		aliases = []string{}
	}
	encoded, err := json.Marshal(aliases)
	if err != nil {
		return err
	}
	query := upsertQuery(t.backend, "hammer_authors", []string{"canonical_name"}, authorUpsertColumns)
	if _, err := t.tx.ExecContext(ctx, rebind(t.backend, query), author.CanonicalName, string(encoded)); err != nil {
		return fmt.Errorf("failed to save author %q: %w", author.CanonicalName, err)
	}
	return nil
}

// SaveCommit implements the StoreTx interface. The detail rows of the commit
// are replaced as a whole.
func (t *sqlTx) SaveCommit(ctx context.Context, c *schema.Commit) error {
	parents := c.ParentIDs
	if parents == nil {
		parents = []string{}
	}
	encoded, err := json.Marshal(parents)
	if err != nil {
		return err
	}

	query := upsertQuery(t.backend, "hammer_commits", []string{"hexsha"}, commitUpsertColumns)
	args := []any{
		c.Hexsha, c.AuthorName, nullableInt(c.AddedLines), nullableInt(c.DeletedLines),
		c.CommitTime.Unix(), c.UTCOffset(), string(encoded), c.RepositoryID,
	}
	if _, err := t.tx.ExecContext(ctx, rebind(t.backend, query), args...); err != nil {
		return fmt.Errorf("failed to save commit %s: %w", c.Hexsha, err)
	}

	if _, err := t.tx.ExecContext(ctx, rebind(t.backend, `DELETE FROM hammer_author_commits WHERE commit_id = ?`), c.Hexsha); err != nil {
		return fmt.Errorf("failed to clear details of commit %s: %w", c.Hexsha, err)
	}

	authors := make([]string, 0, len(c.LineCounts))
	for name := range c.LineCounts {
		authors = append(authors, name)
	}
	for name := range c.TestCounts {
		if _, ok := c.LineCounts[name]; !ok {
			authors = append(authors, name)
		}
	}
	slices.Sort(authors)

	insert := rebind(t.backend, `INSERT INTO hammer_author_commits (author_name, commit_id, line_count, test_count) VALUES (?, ?, ?, ?)`)
	for _, name := range authors {
		var tests sql.NullInt64
		if n, ok := c.TestCounts[name]; ok {
			tests = sql.NullInt64{Int64: int64(n), Valid: true}
		}
		if _, err := t.tx.ExecContext(ctx, insert, name, c.Hexsha, c.LineCounts[name], tests); err != nil {
			return fmt.Errorf("failed to save details of commit %s: %w", c.Hexsha, err)
		}
	}
	return nil
}

// UpdateHead implements the StoreTx interface.
func (t *sqlTx) UpdateHead(ctx context.Context, repositoryID int64, hexsha string) error {
	query := rebind(t.backend, `UPDATE hammer_repositories SET head_commit_id = ? WHERE id = ?`)
	if _, err := t.tx.ExecContext(ctx, query, hexsha, repositoryID); err != nil {
		return fmt.Errorf("failed to update head of repository %d: %w", repositoryID, err)
	}
	return nil
}

// Commit implements the StoreTx interface.
func (t *sqlTx) Commit() error {
	return t.tx.Commit()
}

// Rollback implements the StoreTx interface.
func (t *sqlTx) Rollback() error {
	return t.tx.Rollback()
}
