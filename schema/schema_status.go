package schema

import "time"

// StoreStatus represents the status of the project store.
type StoreStatus struct {
	Backend       string           `json:"backend"`
	Connected     bool             `json:"connected"`
	Initialized   bool             `json:"initialized"`
	SchemaVersion uint             `json:"schema_version"`
	Dirty         bool             `json:"dirty"`
	Projects      int              `json:"projects"`
	TableSizes    map[string]int64 `json:"table_sizes"`
	LatestCommit  *time.Time       `json:"latest_commit,omitempty"`
}

// AuthorSummary holds the per-author totals of a project.
type AuthorSummary struct {
	Name         string `json:"name"`
	Email        string `json:"email"`
	Commits      int    `json:"commits"`
	Lines        int    `json:"lines"`
	Tests        int    `json:"tests"`
	AddedLines   int    `json:"added_lines"`
	DeletedLines int    `json:"deleted_lines"`
}

// ProjectSummary holds the tables printed by the summary command.
type ProjectSummary struct {
	Project      string          `json:"project"`
	Repositories int             `json:"repositories"`
	HeadTime     time.Time       `json:"head_time"`
	TotalCommits int             `json:"total_commits"`
	TotalLines   int             `json:"total_lines"`
	TotalTests   int             `json:"total_tests"`
	Authors      []AuthorSummary `json:"authors"`

	// WeekdayCommits is indexed Monday first, in author-local time.
	WeekdayCommits [7]int `json:"weekday_commits"`
	// HourCommits is indexed by author-local hour of day.
	HourCommits [24]int `json:"hour_commits"`
}

// Mismatch describes one difference found by the regression checker.
type Mismatch struct {
	Hexsha string `json:"hexsha"`
	Field  string `json:"field"`
	Detail string `json:"detail"`
}

// RegressionResult is the outcome of comparing two projects commit by commit.
type RegressionResult struct {
	Baseline   string     `json:"baseline"`
	Candidate  string     `json:"candidate"`
	Checked    int        `json:"checked"`
	Mismatches []Mismatch `json:"mismatches"`
}

// OK reports whether the projects agree on every commit.
func (r RegressionResult) OK() bool {
	return len(r.Mismatches) == 0
}
