package core

import (
	"cmp"
	"errors"
	"slices"
	"strings"

	"github.com/huangsam/hammer/schema"
)

// Summarize builds the per-author tables and the commit time histograms of the project.
// A project without processed commits yields an empty summary.
func Summarize(h *Hammer) (schema.ProjectSummary, error) {
	summary := schema.ProjectSummary{
		Project:      h.ProjectName(),
		Repositories: len(h.Repositories()),
	}
	commits, err := h.IterIndividualCommits()
	if err != nil {
		return summary, err
	}
	head, err := h.HeadCommit()
	if errors.Is(err, schema.ErrNoCommits) {
		return summary, nil
	}
	if err != nil {
		return summary, err
	}
	authors, err := h.IterAuthors()
	if err != nil {
		return summary, err
	}

	rows := make(map[string]*schema.AuthorSummary, len(authors))
	for _, a := range authors {
		rows[a.CanonicalName] = &schema.AuthorSummary{Name: a.Name(), Email: a.Email()}
	}
	row := func(name string) *schema.AuthorSummary {
		r, ok := rows[name]
		if !ok {
			a := &schema.Author{CanonicalName: name}
			r = &schema.AuthorSummary{Name: a.Name(), Email: a.Email()}
			rows[name] = r
		}
		return r
	}

	for _, c := range commits {
		r := row(c.AuthorName)
		r.Commits++
		if c.AddedLines != nil {
			r.AddedLines += *c.AddedLines
		}
		if c.DeletedLines != nil {
			r.DeletedLines += *c.DeletedLines
		}
		// Histograms use the author's own clock.
		summary.WeekdayCommits[(int(c.CommitTime.Weekday())+6)%7]++
		summary.HourCommits[c.CommitTime.Hour()]++
	}
	for name, n := range head.LineCounts {
		row(name).Lines = n
	}
	for name, n := range head.TestCounts {
		row(name).Tests = n
	}

	summary.HeadTime = head.CommitTime
	summary.TotalCommits = len(commits)
	summary.TotalLines = head.LineCounts.Total()
	summary.TotalTests = head.TestCounts.Total()
	for _, r := range rows {
		summary.Authors = append(summary.Authors, *r)
	}
	slices.SortFunc(summary.Authors, func(a, b schema.AuthorSummary) int {
		if c := cmp.Compare(b.Lines, a.Lines); c != 0 {
			return c
		}
		if c := cmp.Compare(b.Commits, a.Commits); c != 0 {
			return c
		}
		return strings.Compare(a.Name+a.Email, b.Name+b.Email)
	})
	return summary, nil
}
