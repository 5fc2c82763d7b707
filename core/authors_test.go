package core

import (
	"context"
	"testing"

	"github.com/huangsam/hammer/internal/contract"
	"github.com/huangsam/hammer/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAuthorResolverAliases(t *testing.T) {
	ctx := context.Background()
	git := new(contract.MockGitClient)
	git.On("ListAuthors", ctx, repoPath).Return([]string{alice}, nil)
	git.On("ResolveMailmap", ctx, repoPath, "alice <old@example.com>").Return(alice, nil).Once()

	r := newAuthorResolver(git, nil)
	require.NoError(t, r.bulkPass(ctx, repoPath))
	dirty := r.drainDirty()
	require.Len(t, dirty, 1)
	assert.Equal(t, alice, dirty[0].CanonicalName)

	a, err := r.resolveWithAlias(ctx, repoPath, "alice <old@example.com>")
	require.NoError(t, err)
	assert.Equal(t, alice, a.CanonicalName)
	assert.Equal(t, []string{"alice <old@example.com>"}, a.Aliases)
	assert.Len(t, r.drainDirty(), 1, "new alias is queued for saving")

	// The alias is remembered, so the mailmap is consulted only once.
	again, err := r.resolveWithAlias(ctx, repoPath, "alice <old@example.com>")
	require.NoError(t, err)
	assert.Same(t, a, again)
	assert.Empty(t, r.drainDirty())
	git.AssertExpectations(t)
}

func TestAuthorResolverKnownAuthors(t *testing.T) {
	known := []*schema.Author{{CanonicalName: alice, Aliases: []string{"A <a@old>"}}}
	r := newAuthorResolver(new(contract.MockGitClient), known)

	a, err := r.resolveWithAlias(context.Background(), repoPath, "A <a@old>")
	require.NoError(t, err)
	assert.Equal(t, alice, a.CanonicalName)

	_, ok := r.lookup("A <a@old>")
	assert.False(t, ok, "lookup only matches canonical names")
	found, ok := r.lookup(alice)
	assert.True(t, ok)
	assert.Same(t, known[0], found)
	assert.Empty(t, r.drainDirty())
}

func TestAuthorResolverUnknown(t *testing.T) {
	ctx := context.Background()
	git := new(contract.MockGitClient)
	git.On("ResolveMailmap", ctx, repoPath, bob).Return(bob, nil)

	r := newAuthorResolver(git, nil)
	_, err := r.resolveWithAlias(ctx, repoPath, bob)
	assert.ErrorIs(t, err, schema.ErrUnknownAuthor)
}
