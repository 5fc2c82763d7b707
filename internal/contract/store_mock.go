package contract

import (
	"context"

	"github.com/huangsam/hammer/schema"
	"github.com/stretchr/testify/mock"
)

// MockStore is a mock implementation of Store for testing.
type MockStore struct {
	mock.Mock
}

var _ Store = &MockStore{} // Compile-time check

// Initialized implements the Store interface.
func (m *MockStore) Initialized(ctx context.Context) (bool, error) {
	args := m.Called(ctx)
	return args.Bool(0), args.Error(1)
}

// CheckSchema implements the Store interface.
func (m *MockStore) CheckSchema(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

// Migrate implements the Store interface.
func (m *MockStore) Migrate(ctx context.Context, target int) (uint, uint, error) {
	args := m.Called(ctx, target)
	return args.Get(0).(uint), args.Get(1).(uint), args.Error(2)
}

// CreateProject implements the Store interface.
func (m *MockStore) CreateProject(ctx context.Context, name string) error {
	return m.Called(ctx, name).Error(0)
}

// ProjectExists implements the Store interface.
func (m *MockStore) ProjectExists(ctx context.Context, name string) (bool, error) {
	args := m.Called(ctx, name)
	return args.Bool(0), args.Error(1)
}

// ListProjects implements the Store interface.
func (m *MockStore) ListProjects(ctx context.Context) ([]string, error) {
	args := m.Called(ctx)
	names, _ := args.Get(0).([]string)
	return names, args.Error(1)
}

// AddRepository implements the Store interface.
func (m *MockStore) AddRepository(ctx context.Context, project string, repo *schema.Repository) error {
	return m.Called(ctx, project, repo).Error(0)
}

// LoadRepositories implements the Store interface.
func (m *MockStore) LoadRepositories(ctx context.Context, project string) ([]*schema.Repository, error) {
	args := m.Called(ctx, project)
	repos, _ := args.Get(0).([]*schema.Repository)
	return repos, args.Error(1)
}

// LoadAuthors implements the Store interface.
func (m *MockStore) LoadAuthors(ctx context.Context) ([]*schema.Author, error) {
	args := m.Called(ctx)
	authors, _ := args.Get(0).([]*schema.Author)
	return authors, args.Error(1)
}

// LoadCommits implements the Store interface.
func (m *MockStore) LoadCommits(ctx context.Context, project string) ([]*schema.Commit, error) {
	args := m.Called(ctx, project)
	commits, _ := args.Get(0).([]*schema.Commit)
	return commits, args.Error(1)
}

// Begin implements the Store interface.
func (m *MockStore) Begin(ctx context.Context) (StoreTx, error) {
	args := m.Called(ctx)
	tx, _ := args.Get(0).(StoreTx)
	return tx, args.Error(1)
}

// GetStatus implements the Store interface.
func (m *MockStore) GetStatus(ctx context.Context) (schema.StoreStatus, error) {
	args := m.Called(ctx)
	return args.Get(0).(schema.StoreStatus), args.Error(1)
}

// Close implements the Store interface.
func (m *MockStore) Close() error {
	return m.Called().Error(0)
}

// MockStoreTx is a mock implementation of StoreTx for testing.
type MockStoreTx struct {
	mock.Mock
}

var _ StoreTx = &MockStoreTx{} // Compile-time check

// SaveAuthor implements the StoreTx interface.
func (m *MockStoreTx) SaveAuthor(ctx context.Context, author *schema.Author) error {
	return m.Called(ctx, author).Error(0)
}

// SaveCommit implements the StoreTx interface.
func (m *MockStoreTx) SaveCommit(ctx context.Context, commit *schema.Commit) error {
	return m.Called(ctx, commit).Error(0)
}

// UpdateHead implements the StoreTx interface.
func (m *MockStoreTx) UpdateHead(ctx context.Context, repositoryID int64, hexsha string) error {
	return m.Called(ctx, repositoryID, hexsha).Error(0)
}

// Commit implements the StoreTx interface.
func (m *MockStoreTx) Commit() error {
	return m.Called().Error(0)
}

// Rollback implements the StoreTx interface.
func (m *MockStoreTx) Rollback() error {
	return m.Called().Error(0)
}
