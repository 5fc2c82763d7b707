package contract

import (
	"context"

	"github.com/huangsam/hammer/schema"
	"github.com/stretchr/testify/mock"
)

// MockGitClient is a mock implementation of GitClient for testing.
type MockGitClient struct {
	mock.Mock
}

var _ GitClient = &MockGitClient{} // Compile-time check

// Run implements the GitClient interface.
func (m *MockGitClient) Run(ctx context.Context, repoPath string, args ...string) ([]byte, error) {
	mockArgs := []any{ctx, repoPath}
	for _, arg := range args {
		mockArgs = append(mockArgs, arg)
	}
	ret := m.Called(mockArgs...)
	output, _ := ret.Get(0).([]byte)
	return output, ret.Error(1)
}

// ListCommits implements the GitClient interface.
func (m *MockGitClient) ListCommits(ctx context.Context, repoPath string) ([]string, error) {
	ret := m.Called(ctx, repoPath)
	ids, _ := ret.Get(0).([]string)
	return ids, ret.Error(1)
}

// ListAuthors implements the GitClient interface.
func (m *MockGitClient) ListAuthors(ctx context.Context, repoPath string) ([]string, error) {
	ret := m.Called(ctx, repoPath)
	authors, _ := ret.Get(0).([]string)
	return authors, ret.Error(1)
}

// CommitExists implements the GitClient interface.
func (m *MockGitClient) CommitExists(ctx context.Context, repoPath string, hexsha string) (bool, error) {
	ret := m.Called(ctx, repoPath, hexsha)
	return ret.Bool(0), ret.Error(1)
}

// GetCommit implements the GitClient interface.
func (m *MockGitClient) GetCommit(ctx context.Context, repoPath string, hexsha string) (schema.CommitInfo, error) {
	ret := m.Called(ctx, repoPath, hexsha)
	info, _ := ret.Get(0).(schema.CommitInfo)
	return info, ret.Error(1)
}

// ResolveMailmap implements the GitClient interface.
func (m *MockGitClient) ResolveMailmap(ctx context.Context, repoPath string, literal string) (string, error) {
	ret := m.Called(ctx, repoPath, literal)
	return ret.String(0), ret.Error(1)
}

// ListTree implements the GitClient interface.
func (m *MockGitClient) ListTree(ctx context.Context, repoPath string, ref string) ([]schema.TreeEntry, error) {
	ret := m.Called(ctx, repoPath, ref)
	entries, _ := ret.Get(0).([]schema.TreeEntry)
	return entries, ret.Error(1)
}

// ReadBlob implements the GitClient interface.
func (m *MockGitClient) ReadBlob(ctx context.Context, repoPath string, blobID string) ([]byte, error) {
	ret := m.Called(ctx, repoPath, blobID)
	content, _ := ret.Get(0).([]byte)
	return content, ret.Error(1)
}

// Blame implements the GitClient interface.
func (m *MockGitClient) Blame(ctx context.Context, repoPath string, ref string, path string) ([]schema.BlameHunk, error) {
	ret := m.Called(ctx, repoPath, ref, path)
	hunks, _ := ret.Get(0).([]schema.BlameHunk)
	return hunks, ret.Error(1)
}

// DiffTree implements the GitClient interface.
func (m *MockGitClient) DiffTree(ctx context.Context, repoPath string, from, to string) (schema.ChangeSet, error) {
	ret := m.Called(ctx, repoPath, from, to)
	cs, _ := ret.Get(0).(schema.ChangeSet)
	return cs, ret.Error(1)
}

// NumstatDiff implements the GitClient interface.
func (m *MockGitClient) NumstatDiff(ctx context.Context, repoPath string, from, to string) ([]schema.NumstatEntry, error) {
	ret := m.Called(ctx, repoPath, from, to)
	entries, _ := ret.Get(0).([]schema.NumstatEntry)
	return entries, ret.Error(1)
}
