// Package schema has the models, constants and errors shared by all parts of hammer.
package schema

import (
	"regexp"
	"slices"
	"time"
)

// authorLinePattern splits "Name <email>" into its two halves.
var authorLinePattern = regexp.MustCompile(`^(.*)\s+(<.*>)$`)

// Author is a canonical author identity together with the other literal
// spellings of "Name <email>" that resolve to it through the mailmap.
type Author struct {
	CanonicalName string   `json:"canonical_name"`
	Aliases       []string `json:"aliases,omitempty"`
}

// Name returns the name part of the canonical name.
func (a *Author) Name() string {
	if m := authorLinePattern.FindStringSubmatch(a.CanonicalName); m != nil {
		return m[1]
	}
	return a.CanonicalName
}

// Email returns the email part of the canonical name, including angle brackets.
func (a *Author) Email() string {
	if m := authorLinePattern.FindStringSubmatch(a.CanonicalName); m != nil {
		return m[2]
	}
	return ""
}

// AddAlias records literal as an alias and reports whether it was new.
func (a *Author) AddAlias(literal string) bool {
	if literal == a.CanonicalName || slices.Contains(a.Aliases, literal) {
		return false
	}
	a.Aliases = append(a.Aliases, literal)
	return true
}

// Commit is the processed form of a single commit.
type Commit struct {
	Hexsha       string   `json:"hexsha"`
	AuthorName   string   `json:"author"`
	AddedLines   *int     `json:"added_lines,omitempty"`   // nil for merge commits
	DeletedLines *int     `json:"deleted_lines,omitempty"` // nil for merge commits
	ParentIDs    []string `json:"parent_ids"`
	RepositoryID int64    `json:"repository_id"`

	// CommitTime is the author time in the author's own fixed zone.
	CommitTime time.Time `json:"commit_time"`

	LineCounts CountMap `json:"line_counts"`
	TestCounts CountMap `json:"test_counts"`
}

// UTCOffset returns the author's offset from UTC in seconds.
func (c *Commit) UTCOffset() int {
	_, offset := c.CommitTime.Zone()
	return offset
}

// Repository is a git working copy tracked by one or more projects.
type Repository struct {
	ID           int64  `json:"id"`
	Path         string `json:"path"`
	ConfigPath   string `json:"config_path"`
	HeadCommitID string `json:"head_commit_id,omitempty"`

	// StartTime excludes commits authored before it when set.
	StartTime *time.Time `json:"start_time,omitempty"`
}

// CombinedCommit is the state of every repository in a project as of one commit.
type CombinedCommit struct {
	CommitTime time.Time `json:"commit_time"`
	LineCounts CountMap  `json:"line_counts"`
	TestCounts CountMap  `json:"test_counts"`
}

// UTCOffset returns the offset from UTC in seconds of the commit that produced this state.
func (c *CombinedCommit) UTCOffset() int {
	_, offset := c.CommitTime.Zone()
	return offset
}

// FixedZone returns a location for an offset in seconds east of UTC.
func FixedZone(offset int) *time.Location {
	if offset == 0 {
		return time.UTC
	}
	return time.FixedZone("", offset)
}

// SourceFile is a file at HEAD that the classifier counts.
type SourceFile struct {
	Path     string `json:"path"`
	Test     bool   `json:"test"`
	Language string `json:"language,omitempty"`

	// TestLines holds the test-marker lines of a test file, without line endings.
	TestLines []string `json:"test_lines,omitempty"`
}
