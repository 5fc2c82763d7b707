package core

import (
	"context"
	"fmt"
	"slices"

	"github.com/huangsam/hammer/internal/contract"
	"github.com/huangsam/hammer/schema"
)

// authorResolver maps every known "Name <email>" literal to its canonical author.
type authorResolver struct {
	git       contract.GitClient
	byLiteral map[string]*schema.Author
	dirty     []*schema.Author
}

func newAuthorResolver(git contract.GitClient, known []*schema.Author) *authorResolver {
	r := &authorResolver{git: git, byLiteral: make(map[string]*schema.Author)}
	for _, a := range known {
		r.byLiteral[a.CanonicalName] = a
		for _, alias := range a.Aliases {
			r.byLiteral[alias] = a
		}
	}
	return r
}

// markDirty queues author to be written before the next commit row.
func (r *authorResolver) markDirty(author *schema.Author) {
	if !slices.Contains(r.dirty, author) {
		r.dirty = append(r.dirty, author)
	}
}

// drainDirty returns the queued authors and empties the queue.
func (r *authorResolver) drainDirty() []*schema.Author {
	out := r.dirty
	r.dirty = nil
	return out
}

// resolveOrCreate returns the author of a mailmap-applied literal, creating it when unknown.
func (r *authorResolver) resolveOrCreate(literal string) *schema.Author {
	if a, ok := r.byLiteral[literal]; ok {
		return a
	}
	a := &schema.Author{CanonicalName: literal}
	r.byLiteral[literal] = a
	r.markDirty(a)
	return a
}

// bulkPass registers every author reachable from HEAD of the repository.
func (r *authorResolver) bulkPass(ctx context.Context, repoPath string) error {
	literals, err := r.git.ListAuthors(ctx, repoPath)
	if err != nil {
		return fmt.Errorf("listing authors of %s: %w", repoPath, err)
	}
	for _, literal := range literals {
		r.resolveOrCreate(literal)
	}
	return nil
}

// resolveWithAlias resolves a raw literal, consulting the mailmap for unknown
// spellings and recording them as aliases of their canonical author.
func (r *authorResolver) resolveWithAlias(ctx context.Context, repoPath string, literal string) (*schema.Author, error) {
	if a, ok := r.byLiteral[literal]; ok {
		return a, nil
	}
	canonical, err := r.git.ResolveMailmap(ctx, repoPath, literal)
	if err != nil {
		return nil, fmt.Errorf("resolving author %q: %w", literal, err)
	}
	a, ok := r.byLiteral[canonical]
	if !ok {
		return nil, fmt.Errorf("%w: %q maps to %q", schema.ErrUnknownAuthor, literal, canonical)
	}
	if a.AddAlias(literal) {
		r.markDirty(a)
	}
	r.byLiteral[literal] = a
	return a, nil
}

// lookup returns the author with the given canonical name.
func (r *authorResolver) lookup(canonical string) (*schema.Author, bool) {
	a, ok := r.byLiteral[canonical]
	if !ok || a.CanonicalName != canonical {
		return nil, false
	}
	return a, true
}
