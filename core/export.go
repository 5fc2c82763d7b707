package core

import (
	"maps"
	"slices"

	"github.com/huangsam/hammer/schema"
)

func int32Ptr(n *int) *int32 {
	if n == nil {
		return nil
	}
	v := int32(*n)
	return &v
}

// CommitRecords returns one row per processed commit, in time order.
func CommitRecords(h *Hammer) ([]schema.CommitRecord, error) {
	commits, err := h.IterIndividualCommits()
	if err != nil {
		return nil, err
	}
	paths := make(map[int64]string, len(h.repos))
	for _, r := range h.repos {
		paths[r.ID] = r.Path
	}
	out := make([]schema.CommitRecord, 0, len(commits))
	for _, c := range commits {
		out = append(out, schema.CommitRecord{
			Hexsha:       c.Hexsha,
			Repository:   paths[c.RepositoryID],
			Author:       c.AuthorName,
			CommitTime:   c.CommitTime,
			UTCOffset:    int32(c.UTCOffset()),
			AddedLines:   int32Ptr(c.AddedLines),
			DeletedLines: int32Ptr(c.DeletedLines),
			ParentIDs:    c.ParentIDs,
			TotalLines:   int32(c.LineCounts.Total()),
			TotalTests:   int32(c.TestCounts.Total()),
		})
	}
	return out, nil
}

// DetailRecords returns one row per author with lines in a processed commit.
func DetailRecords(h *Hammer) ([]schema.DetailRecord, error) {
	commits, err := h.IterIndividualCommits()
	if err != nil {
		return nil, err
	}
	var out []schema.DetailRecord
	for _, c := range commits {
		for _, author := range sortedNames(c.LineCounts) {
			row := schema.DetailRecord{
				Hexsha:     c.Hexsha,
				Author:     author,
				CommitTime: c.CommitTime,
				LineCount:  int32(c.LineCounts[author]),
			}
			if n, ok := c.TestCounts[author]; ok {
				tests := int32(n)
				row.TestCount = &tests
			}
			out = append(out, row)
		}
	}
	return out, nil
}

// SeriesRecords returns the combined series resampled at freq, one row per author and point.
func SeriesRecords(h *Hammer, freq schema.Frequency) ([]schema.SeriesRecord, error) {
	it, err := h.IterCommits(freq)
	if err != nil {
		return nil, err
	}
	var out []schema.SeriesRecord
	for _, c := range Collect(it) {
		names := sortedNames(c.LineCounts.Add(c.TestCounts))
		for _, author := range names {
			out = append(out, schema.SeriesRecord{
				CommitTime: c.CommitTime,
				UTCOffset:  int32(c.UTCOffset()),
				Author:     author,
				LineCount:  int32(c.LineCounts[author]),
				TestCount:  int32(c.TestCounts[author]),
			})
		}
	}
	return out, nil
}

func sortedNames(m schema.CountMap) []string {
	return slices.Sorted(maps.Keys(m))
}
