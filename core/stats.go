package core

import (
	"bytes"
	"context"
	"fmt"

	"github.com/huangsam/hammer/internal/classify"
	"github.com/huangsam/hammer/schema"
)

// statsMode is the strategy used to compute the counts of one commit.
type statsMode int

const (
	blobMode   statsMode = iota // every line of the tree belongs to the commit author
	fullMode                    // blame every source file at the commit
	diffedMode                  // parent counts plus the blame delta of changed files
)

func (m statsMode) String() string {
	switch m {
	case blobMode:
		return "blob"
	case fullMode:
		return "full"
	default:
		return "diffed"
	}
}

// statsBuilder computes the line and test counts of one commit.
type statsBuilder struct {
	h          *Hammer
	repo       *schema.Repository
	classifier *classify.Classifier
	info       schema.CommitInfo
	author     *schema.Author

	lines schema.CountMap
	tests schema.CountMap
}

func (h *Hammer) newStatsBuilder(repo *schema.Repository, info schema.CommitInfo, author *schema.Author) *statsBuilder {
	return &statsBuilder{
		h:          h,
		repo:       repo,
		classifier: h.classifierFor(repo),
		info:       info,
		author:     author,
		lines:      schema.CountMap{},
		tests:      schema.CountMap{},
	}
}

// selectMode picks a strategy from the parents of the commit. It returns the
// processed first parent when diffed mode applies.
func (b *statsBuilder) selectMode(ctx context.Context) (statsMode, *schema.Commit, bool, error) {
	parents := b.info.ParentIDs
	if len(parents) == 0 {
		return blobMode, nil, false, nil
	}
	exists, err := b.h.git.CommitExists(ctx, b.repo.Path, parents[0])
	if err != nil {
		return 0, nil, false, err
	}
	if !exists {
		return blobMode, nil, false, nil
	}
	if len(parents) > 1 || b.h.fullRecompute {
		return fullMode, nil, true, nil
	}
	if prev, ok := b.h.commits[parents[0]]; ok {
		return diffedMode, prev, true, nil
	}
	return fullMode, nil, true, nil
}

// build runs the selected strategy and returns the finished commit.
func (b *statsBuilder) build(ctx context.Context) (*schema.Commit, error) {
	mode, prev, parentExists, err := b.selectMode(ctx)
	if err != nil {
		return nil, err
	}
	logger().Debug("computing commit", "hexsha", b.info.Hexsha, "mode", mode)

	switch mode {
	case blobMode:
		err = b.countBlobs(ctx)
	case fullMode:
		err = b.countBlame(ctx)
	case diffedMode:
		err = b.countDiff(ctx, prev)
	}
	if err != nil {
		return nil, fmt.Errorf("commit %s (%s mode): %w", b.info.Hexsha, mode, err)
	}

	commit := &schema.Commit{
		Hexsha:       b.info.Hexsha,
		AuthorName:   b.author.CanonicalName,
		ParentIDs:    b.info.ParentIDs,
		RepositoryID: b.repo.ID,
		CommitTime:   b.info.AuthorTime,
		LineCounts:   b.lines.Clone(),
		TestCounts:   b.tests.Clone(),
	}
	if len(b.info.ParentIDs) <= 1 {
		from := ""
		if parentExists {
			from = b.info.ParentIDs[0]
		}
		added, deleted, err := b.lineTotals(ctx, from)
		if err != nil {
			return nil, fmt.Errorf("commit %s totals: %w", b.info.Hexsha, err)
		}
		commit.AddedLines, commit.DeletedLines = &added, &deleted
	}
	return commit, nil
}

// countBlobs attributes every line of every source blob to the commit author.
func (b *statsBuilder) countBlobs(ctx context.Context) error {
	entries, err := b.h.git.ListTree(ctx, b.repo.Path, b.info.Hexsha)
	if err != nil {
		return err
	}
	for _, entry := range entries {
		if !b.classifier.IsSourceFile(entry.Path) {
			continue
		}
		content, err := b.h.git.ReadBlob(ctx, b.repo.Path, entry.BlobID)
		if err != nil {
			return err
		}
		lines := splitLines(content)
		b.lines[b.author.CanonicalName] += len(lines)
		b.tests[b.author.CanonicalName] += b.classifier.CountTestLines(entry.Path, lines)
	}
	return nil
}

// countBlame blames every source file of the commit tree.
func (b *statsBuilder) countBlame(ctx context.Context) error {
	entries, err := b.h.git.ListTree(ctx, b.repo.Path, b.info.Hexsha)
	if err != nil {
		return err
	}
	for _, entry := range entries {
		if !b.classifier.IsSourceFile(entry.Path) {
			continue
		}
		lines, tests, err := b.blameFile(ctx, b.info.Hexsha, entry.Path)
		if err != nil {
			return err
		}
		b.lines = b.lines.Add(lines)
		b.tests = b.tests.Add(tests)
	}
	return nil
}

// countDiff applies the blame delta of the changed files to the parent counts.
func (b *statsBuilder) countDiff(ctx context.Context, prev *schema.Commit) error {
	parent := prev.Hexsha
	cs, err := b.h.git.DiffTree(ctx, b.repo.Path, parent, b.info.Hexsha)
	if err != nil {
		return err
	}

	curLines, curTests, err := b.blamePaths(ctx, b.info.Hexsha, cs.CurrentPaths())
	if err != nil {
		return err
	}
	prevLines, prevTests, err := b.blamePaths(ctx, parent, cs.PreviousPaths())
	if err != nil {
		return err
	}
	b.lines = prev.LineCounts.Add(curLines.Subtract(prevLines))
	b.tests = prev.TestCounts.Add(curTests.Subtract(prevTests))
	return nil
}

// blamePaths sums the blame counts of the source files among paths at ref.
func (b *statsBuilder) blamePaths(ctx context.Context, ref string, paths []string) (schema.CountMap, schema.CountMap, error) {
	lines, tests := schema.CountMap{}, schema.CountMap{}
	for _, path := range paths {
		if !b.classifier.IsSourceFile(path) {
			continue
		}
		l, t, err := b.blameFile(ctx, ref, path)
		if err != nil {
			return nil, nil, err
		}
		lines, tests = lines.Add(l), tests.Add(t)
	}
	return lines, tests, nil
}

// blameFile returns the per-author line and test counts of one file at ref.
func (b *statsBuilder) blameFile(ctx context.Context, ref, path string) (schema.CountMap, schema.CountMap, error) {
	hunks, err := b.h.git.Blame(ctx, b.repo.Path, ref, path)
	if err != nil {
		return nil, nil, err
	}
	lines, tests := schema.CountMap{}, schema.CountMap{}
	for _, hunk := range hunks {
		author, err := b.h.authors.resolveWithAlias(ctx, b.repo.Path, hunk.Author)
		if err != nil {
			return nil, nil, err
		}
		lines[author.CanonicalName] += len(hunk.Lines)
		tests[author.CanonicalName] += b.classifier.CountTestLines(path, hunk.Lines)
	}
	return lines.Clone(), tests.Clone(), nil
}

// lineTotals sums the added and deleted lines of the source files changed
// since from. An empty from compares against the empty tree.
func (b *statsBuilder) lineTotals(ctx context.Context, from string) (int, int, error) {
	entries, err := b.h.git.NumstatDiff(ctx, b.repo.Path, from, b.info.Hexsha)
	if err != nil {
		return 0, 0, err
	}
	added, deleted := 0, 0
	for _, e := range entries {
		if e.Binary || !b.classifier.IsSourceFile(e.Path) {
			continue
		}
		added += e.Added
		deleted += e.Deleted
	}
	return added, deleted, nil
}

// splitLines splits content after every newline. A trailing partial line
// counts as a line; an empty blob has none.
func splitLines(content []byte) []string {
	var lines []string
	for len(content) > 0 {
		i := bytes.IndexByte(content, '\n')
		if i < 0 {
			lines = append(lines, string(content))
			break
		}
		lines = append(lines, string(content[:i+1]))
		content = content[i+1:]
	}
	return lines
}
