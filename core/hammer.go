// Package core has the statistics engine of hammer: the session, the
// per-commit line attribution, the repository walker and the combined series.
package core

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/huangsam/hammer/internal/classify"
	"github.com/huangsam/hammer/internal/contract"
	"github.com/huangsam/hammer/schema"
)

func logger() *slog.Logger { return slog.Default().With("package", "core") }

// Hammer is a session over one project of a store.
type Hammer struct {
	project string
	store   contract.Store
	git     contract.GitClient

	authors     *authorResolver
	commits     map[string]*schema.Commit
	repos       []*schema.Repository
	classifiers map[int64]*classify.Classifier

	flushInterval time.Duration
	now           func() time.Time
	fullRecompute bool

	// ready is set once the store has a schema and the project exists.
	ready bool
}

// Option configures a Hammer.
type Option func(*Hammer)

// WithFlushInterval sets how often the walker commits its pending writes.
func WithFlushInterval(d time.Duration) Option {
	return func(h *Hammer) {
		if d > 0 {
			h.flushInterval = d
		}
	}
}

// WithClock replaces the clock used to time flushes.
func WithClock(now func() time.Time) Option {
	return func(h *Hammer) {
		if now != nil {
			h.now = now
		}
	}
}

// WithFullRecompute blames every file of every commit instead of diffing against the parent.
func WithFullRecompute(full bool) Option {
	return func(h *Hammer) { h.fullRecompute = full }
}

// New opens a session over project. An uninitialized store is accepted so
// that AddRepository can create the schema.
func New(ctx context.Context, project string, store contract.Store, git contract.GitClient, opts ...Option) (*Hammer, error) {
	h := &Hammer{
		project:       project,
		store:         store,
		git:           git,
		authors:       newAuthorResolver(git, nil),
		commits:       make(map[string]*schema.Commit),
		classifiers:   make(map[int64]*classify.Classifier),
		flushInterval: contract.DefaultFlushInterval,
		now:           time.Now,
	}
	for _, opt := range opts {
		opt(h)
	}

	initialized, err := store.Initialized(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to inspect store: %w", err)
	}
	if !initialized {
		return h, nil
	}
	if err := store.CheckSchema(ctx); err != nil {
		return nil, err
	}
	if err := h.load(ctx); err != nil {
		return nil, err
	}
	return h, nil
}

// load reads the project state from the store. A missing project leaves the session unready.
func (h *Hammer) load(ctx context.Context) error {
	exists, err := h.store.ProjectExists(ctx, h.project)
	if err != nil {
		return err
	}
	if !exists {
		h.ready = false
		return nil
	}

	repos, err := h.store.LoadRepositories(ctx, h.project)
	if err != nil {
		return err
	}
	authors, err := h.store.LoadAuthors(ctx)
	if err != nil {
		return err
	}
	commits, err := h.store.LoadCommits(ctx, h.project)
	if err != nil {
		return err
	}

	classifiers := make(map[int64]*classify.Classifier, len(repos))
	for _, repo := range repos {
		c, err := classify.Load(repo.ConfigPath)
		if err != nil {
			return fmt.Errorf("repository %s: %w", repo.Path, err)
		}
		classifiers[repo.ID] = c
	}

	h.repos = repos
	h.classifiers = classifiers
	h.authors = newAuthorResolver(h.git, authors)
	h.commits = make(map[string]*schema.Commit, len(commits))
	for _, c := range commits {
		h.commits[c.Hexsha] = c
	}
	h.ready = true
	return nil
}

// requireReady fails reads and updates on a store or project that does not exist yet.
func (h *Hammer) requireReady() error {
	if !h.ready {
		return fmt.Errorf("%w: project %q", schema.ErrStoreNotInitialized, h.project)
	}
	return nil
}

func (h *Hammer) classifierFor(repo *schema.Repository) *classify.Classifier {
	if c, ok := h.classifiers[repo.ID]; ok {
		return c
	}
	return classify.Default()
}

// AddRepository adds the repository at path to the project, creating the
// schema and the project when needed, and processes its history.
// An empty configPath means the default configuration file inside the repository.
func (h *Hammer) AddRepository(ctx context.Context, path, configPath string, earliest *time.Time) error {
	initialized, err := h.store.Initialized(ctx)
	if err != nil {
		return err
	}
	if !initialized {
		if _, _, err := h.store.Migrate(ctx, -1); err != nil {
			return fmt.Errorf("failed to create schema: %w", err)
		}
	} else if err := h.store.CheckSchema(ctx); err != nil {
		return err
	}
	if err := h.store.CreateProject(ctx, h.project); err != nil {
		return err
	}
	if err := h.load(ctx); err != nil {
		return err
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("invalid repository path %q: %w", path, err)
	}
	if h.repositoryIndex(abs) >= 0 {
		contract.LogWarn(fmt.Sprintf("Repository %s is already in project %s", abs, h.project), nil)
		return nil
	}
	if info, err := os.Stat(abs); err != nil || !info.IsDir() {
		return fmt.Errorf("repository path %q is not a directory", abs)
	}
	if configPath == "" {
		configPath = filepath.Join(abs, schema.DefaultConfigFileName)
	} else if configPath, err = filepath.Abs(configPath); err != nil {
		return err
	}
	if _, err := classify.ReadConfig(configPath); err != nil {
		return err
	}

	repo := &schema.Repository{Path: abs, ConfigPath: configPath, StartTime: earliest}
	if err := h.store.AddRepository(ctx, h.project, repo); err != nil {
		return err
	}
	if err := h.load(ctx); err != nil {
		return err
	}
	idx := h.repositoryIndex(abs)
	if idx < 0 {
		return fmt.Errorf("repository %s missing from project %s after insert", abs, h.project)
	}
	logger().Info("added repository", "project", h.project, "path", abs)
	return h.processRepository(ctx, h.repos[idx])
}

func (h *Hammer) repositoryIndex(path string) int {
	return slices.IndexFunc(h.repos, func(r *schema.Repository) bool { return r.Path == path })
}

// UpdateData processes the new commits of every repository of the project.
func (h *Hammer) UpdateData(ctx context.Context) error {
	if err := h.requireReady(); err != nil {
		return err
	}
	for _, repo := range h.repos {
		if err := h.processRepository(ctx, repo); err != nil {
			return err
		}
	}
	return nil
}

// ProjectName returns the name of the project.
func (h *Hammer) ProjectName() string {
	return h.project
}

// Exists reports whether the project is present in an initialized store.
func (h *Hammer) Exists() bool {
	return h.ready
}

// Repositories returns the repositories of the project in insertion order.
func (h *Hammer) Repositories() []*schema.Repository {
	return slices.Clone(h.repos)
}

// IterAuthors returns the authors of the commits of the project, sorted by canonical name.
func (h *Hammer) IterAuthors() ([]*schema.Author, error) {
	if err := h.requireReady(); err != nil {
		return nil, err
	}
	seen := make(map[string]struct{})
	var out []*schema.Author
	add := func(name string) {
		if _, ok := seen[name]; ok {
			return
		}
		seen[name] = struct{}{}
		a, ok := h.authors.lookup(name)
		if !ok {
			a = &schema.Author{CanonicalName: name}
		}
		out = append(out, a)
	}
	for _, c := range h.commits {
		add(c.AuthorName)
		for name := range c.LineCounts {
			add(name)
		}
	}
	slices.SortFunc(out, func(a, b *schema.Author) int {
		return strings.Compare(a.CanonicalName, b.CanonicalName)
	})
	return out, nil
}

// IterIndividualCommits returns the commits of the project sorted by time, then hexsha.
func (h *Hammer) IterIndividualCommits() ([]*schema.Commit, error) {
	if err := h.requireReady(); err != nil {
		return nil, err
	}
	out := make([]*schema.Commit, 0, len(h.commits))
	for _, c := range h.commits {
		out = append(out, c)
	}
	slices.SortFunc(out, func(a, b *schema.Commit) int {
		if c := a.CommitTime.Compare(b.CommitTime); c != 0 {
			return c
		}
		return strings.Compare(a.Hexsha, b.Hexsha)
	})
	return out, nil
}

// IterCommits returns the combined series of the project, resampled at freq.
func (h *Hammer) IterCommits(freq schema.Frequency) (CommitIterator, error) {
	if err := h.requireReady(); err != nil {
		return nil, err
	}
	branches := make([][]*schema.Commit, 0, len(h.repos))
	for _, repo := range h.repos {
		branches = append(branches, h.branch(repo))
	}
	var it CommitIterator = NewCombinedIterator(branches)
	if freq != schema.NoFrequency {
		it = Resample(it, freq)
	}
	return it, nil
}

// HeadCommit returns the combined state of the current heads of all repositories.
func (h *Hammer) HeadCommit() (*schema.CombinedCommit, error) {
	if err := h.requireReady(); err != nil {
		return nil, err
	}
	head := &schema.CombinedCommit{LineCounts: schema.CountMap{}, TestCounts: schema.CountMap{}}
	found := false
	for _, repo := range h.repos {
		c, ok := h.commits[repo.HeadCommitID]
		if !ok {
			continue
		}
		found = true
		head.LineCounts = head.LineCounts.Add(c.LineCounts)
		head.TestCounts = head.TestCounts.Add(c.TestCounts)
		if c.CommitTime.After(head.CommitTime) {
			head.CommitTime = c.CommitTime
		}
	}
	if !found {
		return nil, fmt.Errorf("%w: project %q", schema.ErrNoCommits, h.project)
	}
	return head, nil
}

// branch returns the first-parent chain of the repository head, oldest first.
// The chain stops at the first commit that was not processed.
func (h *Hammer) branch(repo *schema.Repository) []*schema.Commit {
	var chain []*schema.Commit
	seen := make(map[string]struct{})
	id := repo.HeadCommitID
	for id != "" {
		c, ok := h.commits[id]
		if !ok {
			break
		}
		if _, dup := seen[id]; dup {
			break
		}
		seen[id] = struct{}{}
		chain = append(chain, c)
		if len(c.ParentIDs) == 0 {
			break
		}
		id = c.ParentIDs[0]
	}
	slices.Reverse(chain)
	return chain
}
