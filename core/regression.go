package core

import (
	"fmt"
	"strings"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/huangsam/hammer/schema"
)

// comparedCommit is the part of a commit that must agree between projects.
type comparedCommit struct {
	Author     string
	Added      *int
	Deleted    *int
	Time       int64
	Offset     int
	LineCounts schema.CountMap
	TestCounts schema.CountMap
}

func compareKey(c *schema.Commit) comparedCommit {
	return comparedCommit{
		Author:     c.AuthorName,
		Added:      c.AddedLines,
		Deleted:    c.DeletedLines,
		Time:       c.CommitTime.Unix(),
		Offset:     c.UTCOffset(),
		LineCounts: c.LineCounts,
		TestCounts: c.TestCounts,
	}
}

// CompareProjects checks that candidate computed the same commits as baseline.
// The baseline is usually built with WithFullRecompute.
func CompareProjects(baseline, candidate *Hammer) (schema.RegressionResult, error) {
	result := schema.RegressionResult{Baseline: baseline.ProjectName(), Candidate: candidate.ProjectName()}
	want, err := baseline.IterIndividualCommits()
	if err != nil {
		return result, fmt.Errorf("baseline %s: %w", baseline.ProjectName(), err)
	}
	got, err := candidate.IterIndividualCommits()
	if err != nil {
		return result, fmt.Errorf("candidate %s: %w", candidate.ProjectName(), err)
	}

	byID := make(map[string]*schema.Commit, len(got))
	for _, c := range got {
		byID[c.Hexsha] = c
	}
	opts := cmp.Options{cmpopts.EquateEmpty()}
	for _, w := range want {
		g, ok := byID[w.Hexsha]
		if !ok {
			result.Mismatches = append(result.Mismatches, schema.Mismatch{
				Hexsha: w.Hexsha, Field: "commit", Detail: "missing from " + candidate.ProjectName(),
			})
			continue
		}
		delete(byID, w.Hexsha)
		result.Checked++
		result.Mismatches = append(result.Mismatches, commitMismatches(w.Hexsha, compareKey(w), compareKey(g), opts)...)
	}
	for _, g := range got {
		if _, extra := byID[g.Hexsha]; extra {
			result.Mismatches = append(result.Mismatches, schema.Mismatch{
				Hexsha: g.Hexsha, Field: "commit", Detail: "not in " + baseline.ProjectName(),
			})
		}
	}
	return result, nil
}

func commitMismatches(hexsha string, want, got comparedCommit, opts cmp.Options) []schema.Mismatch {
	fields := []struct {
		name      string
		want, got any
	}{
		{"author", want.Author, got.Author},
		{"added_lines", want.Added, got.Added},
		{"deleted_lines", want.Deleted, got.Deleted},
		{"commit_time", want.Time, got.Time},
		{"utc_offset", want.Offset, got.Offset},
		{"line_counts", want.LineCounts, got.LineCounts},
		{"test_counts", want.TestCounts, got.TestCounts},
	}
	var out []schema.Mismatch
	for _, f := range fields {
		if diff := cmp.Diff(f.want, f.got, opts); diff != "" {
			out = append(out, schema.Mismatch{Hexsha: hexsha, Field: f.name, Detail: strings.TrimSpace(diff)})
		}
	}
	return out
}
