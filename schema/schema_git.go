package schema

import (
	"fmt"
	"time"
)

// CommitInfo is the raw commit metadata read from the object store.
// Author fields are as recorded, with no mailmap applied.
type CommitInfo struct {
	Hexsha      string
	AuthorName  string
	AuthorEmail string
	AuthorTime  time.Time
	ParentIDs   []string
}

// AuthorLine returns the literal "Name <email>" form of the author.
func (c CommitInfo) AuthorLine() string {
	return fmt.Sprintf("%s <%s>", c.AuthorName, c.AuthorEmail)
}

// TreeEntry is a blob reachable from a commit's tree.
type TreeEntry struct {
	Path   string
	BlobID string
}

// BlameHunk is a run of consecutive lines attributed to one commit.
type BlameHunk struct {
	CommitID string
	Author   string // "Name <email>" with the mailmap applied
	Lines    []string
}

// PathPair is the before and after path of a changed file.
type PathPair struct {
	From string
	To   string
}

// ChangeSet is the file-level difference between two commits.
type ChangeSet struct {
	Added    []string
	Deleted  []string
	Renamed  []PathPair
	Modified []PathPair
}

// CurrentPaths returns the paths changed on the newer side.
func (c ChangeSet) CurrentPaths() []string {
	paths := make([]string, 0, len(c.Added)+len(c.Renamed)+len(c.Modified))
	paths = append(paths, c.Added...)
	for _, p := range c.Renamed {
		paths = append(paths, p.To)
	}
	for _, p := range c.Modified {
		paths = append(paths, p.To)
	}
	return paths
}

// PreviousPaths returns the paths changed on the older side.
func (c ChangeSet) PreviousPaths() []string {
	paths := make([]string, 0, len(c.Deleted)+len(c.Renamed)+len(c.Modified))
	paths = append(paths, c.Deleted...)
	for _, p := range c.Renamed {
		paths = append(paths, p.From)
	}
	for _, p := range c.Modified {
		paths = append(paths, p.From)
	}
	return paths
}

// NumstatEntry is one row of a numeric diff summary.
type NumstatEntry struct {
	Added   int
	Deleted int
	Binary  bool
	Path    string
}
