package core

import (
	"time"

	"github.com/huangsam/hammer/schema"
)

// CommitIterator is a pull-based sequence of combined commits.
type CommitIterator interface {
	// Next returns the next combined commit, or false once the sequence is exhausted.
	Next() (*schema.CombinedCommit, bool)
}

// CombinedIterator merges the branches of several repositories into one
// chronological sequence of project states.
type CombinedIterator struct {
	branches [][]*schema.Commit
	cursors  []int
	current  []*schema.Commit
}

// NewCombinedIterator returns an iterator over branches, each ordered oldest first.
// The order of branches breaks ties between identical commit times.
func NewCombinedIterator(branches [][]*schema.Commit) *CombinedIterator {
	return &CombinedIterator{
		branches: branches,
		cursors:  make([]int, len(branches)),
		current:  make([]*schema.Commit, len(branches)),
	}
}

// Next advances the branch whose next commit is the earliest and returns the
// sum of the latest commit seen on every branch.
func (it *CombinedIterator) Next() (*schema.CombinedCommit, bool) {
	best := -1
	var earliest time.Time
	for i, branch := range it.branches {
		if it.cursors[i] >= len(branch) {
			continue
		}
		t := branch[it.cursors[i]].CommitTime
		if best < 0 || t.Before(earliest) {
			best, earliest = i, t
		}
	}
	if best < 0 {
		return nil, false
	}

	advancing := it.branches[best][it.cursors[best]]
	it.current[best] = advancing
	it.cursors[best]++

	combined := &schema.CombinedCommit{
		CommitTime: advancing.CommitTime,
		LineCounts: schema.CountMap{},
		TestCounts: schema.CountMap{},
	}
	for _, c := range it.current {
		if c == nil {
			continue
		}
		combined.LineCounts = combined.LineCounts.Add(c.LineCounts)
		combined.TestCounts = combined.TestCounts.Add(c.TestCounts)
	}
	return combined, true
}

// resampled keeps the first commit of every interval of a frequency.
type resampled struct {
	src       CommitIterator
	freq      schema.Frequency
	nextStart time.Time
}

// Resample wraps src so that at most one commit per interval of freq is emitted.
func Resample(src CommitIterator, freq schema.Frequency) CommitIterator {
	return &resampled{src: src, freq: freq}
}

func (r *resampled) Next() (*schema.CombinedCommit, bool) {
	for {
		c, ok := r.src.Next()
		if !ok {
			return nil, false
		}
		if r.nextStart.IsZero() || !c.CommitTime.Before(r.nextStart) {
			r.nextStart = r.freq.NextInstance(r.freq.StartOfInterval(c.CommitTime))
			return c, true
		}
	}
}

// Collect drains it into a slice.
func Collect(it CommitIterator) []*schema.CombinedCommit {
	var out []*schema.CombinedCommit
	for {
		c, ok := it.Next()
		if !ok {
			return out
		}
		out = append(out, c)
	}
}
