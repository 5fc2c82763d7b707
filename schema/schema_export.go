package schema

import "time"

// CommitRecord is one exported row per processed commit.
type CommitRecord struct {
	Hexsha       string    `json:"hexsha"`
	Repository   string    `json:"repository"`
	Author       string    `json:"author"`
	CommitTime   time.Time `json:"commit_time"`
	UTCOffset    int32     `json:"utc_offset"`
	AddedLines   *int32    `json:"added_lines"`
	DeletedLines *int32    `json:"deleted_lines"`
	ParentIDs    []string  `json:"parent_ids"`
	TotalLines   int32     `json:"total_lines"`
	TotalTests   int32     `json:"total_tests"`
}

// DetailRecord is one exported row per author of a processed commit.
type DetailRecord struct {
	Hexsha     string    `json:"hexsha"`
	Author     string    `json:"author"`
	CommitTime time.Time `json:"commit_time"`
	LineCount  int32     `json:"line_count"`
	TestCount  *int32    `json:"test_count"`
}

// SeriesRecord is one exported row per author of a combined commit.
type SeriesRecord struct {
	CommitTime time.Time `json:"commit_time"`
	UTCOffset  int32     `json:"utc_offset"`
	Author     string    `json:"author"`
	LineCount  int32     `json:"line_count"`
	TestCount  int32     `json:"test_count"`
}

// ExportData is one exported dataset. Only the rows of Kind are set.
type ExportData struct {
	Kind    ExportKind
	Commits []CommitRecord
	Details []DetailRecord
	Series  []SeriesRecord
}

// Len returns the number of rows of the dataset.
func (d ExportData) Len() int {
	switch d.Kind {
	case CommitsExport:
		return len(d.Commits)
	case DetailsExport:
		return len(d.Details)
	default:
		return len(d.Series)
	}
}
