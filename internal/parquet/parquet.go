// Package parquet provides data structures and functions for exporting hammer
// commit statistics to Parquet files using github.com/parquet-go/parquet-go.
package parquet

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/huangsam/hammer/schema"
	"github.com/parquet-go/parquet-go"
)

// Commit represents a single processed commit.
// This struct maps to the hammer_commits database table.
type Commit struct {
	// Hexsha is the full object id of the commit
	Hexsha string `parquet:"hexsha,snappy"`

	// Repository is the absolute path of the repository holding the commit
	Repository string `parquet:"repository,snappy,dict"`

	// Author is the canonical "Name <email>" of the commit author
	Author string `parquet:"author,snappy,dict"`

	// CommitTime is the author time (stored as TIMESTAMP with nanosecond precision)
	CommitTime time.Time `parquet:"commit_time,snappy"`

	// UTCOffset is the author's offset from UTC in seconds
	UTCOffset int32 `parquet:"utc_offset,snappy"`

	// AddedLines is the number of source lines added (nullable, absent for merges)
	AddedLines *int32 `parquet:"added_lines,optional,snappy"`

	// DeletedLines is the number of source lines deleted (nullable, absent for merges)
	DeletedLines *int32 `parquet:"deleted_lines,optional,snappy"`

	// ParentIDs holds the parent ids separated by "|"
	ParentIDs string `parquet:"parent_ids,snappy"`

	// TotalLines is the number of source lines in the tree of the commit
	TotalLines int32 `parquet:"total_lines,snappy"`

	// TotalTests is the number of test lines in the tree of the commit
	TotalTests int32 `parquet:"total_tests,snappy"`
}

// AuthorCommit represents the lines of one author in one commit.
// This struct maps to the hammer_author_commits database table.
type AuthorCommit struct {
	Hexsha     string    `parquet:"hexsha,snappy"`
	Author     string    `parquet:"author,snappy,dict"`
	CommitTime time.Time `parquet:"commit_time,snappy"`
	LineCount  int32     `parquet:"line_count,snappy"`

	// TestCount is null when the author has no test lines
	TestCount *int32 `parquet:"test_count,optional,snappy"`
}

// SeriesPoint represents the lines of one author in one combined commit.
type SeriesPoint struct {
	CommitTime time.Time `parquet:"commit_time,snappy"`
	UTCOffset  int32     `parquet:"utc_offset,snappy"`
	Author     string    `parquet:"author,snappy,dict"`
	LineCount  int32     `parquet:"line_count,snappy"`
	TestCount  int32     `parquet:"test_count,snappy"`
}

// writeParquet writes rows to a new Parquet file at outputPath.
// The schema is derived from the struct tags of T.
func writeParquet[T any](data []T, outputPath string) error {
	file, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer func() { _ = file.Close() }()

	writer := parquet.NewGenericWriter[T](file)
	if _, err := writer.Write(data); err != nil {
		_ = writer.Close()
		return fmt.Errorf("failed to write data to parquet file: %w", err)
	}
	if err := writer.Close(); err != nil {
		return fmt.Errorf("failed to finish parquet file: %w", err)
	}
	return nil
}

// WriteCommitsParquet writes a slice of Commit structs to a Parquet file.
func WriteCommitsParquet(data []Commit, outputPath string) error {
	return writeParquet(data, outputPath)
}

// WriteAuthorCommitsParquet writes a slice of AuthorCommit structs to a Parquet file.
func WriteAuthorCommitsParquet(data []AuthorCommit, outputPath string) error {
	return writeParquet(data, outputPath)
}

// WriteSeriesParquet writes a slice of SeriesPoint structs to a Parquet file.
func WriteSeriesParquet(data []SeriesPoint, outputPath string) error {
	return writeParquet(data, outputPath)
}

// ConvertCommitRecords converts schema.CommitRecord to Commit for Parquet export.
func ConvertCommitRecords(records []schema.CommitRecord) []Commit {
	result := make([]Commit, len(records))
	for i, record := range records {
		result[i] = Commit{
			Hexsha:       record.Hexsha,
			Repository:   record.Repository,
			Author:       record.Author,
			CommitTime:   record.CommitTime,
			UTCOffset:    record.UTCOffset,
			AddedLines:   record.AddedLines,
			DeletedLines: record.DeletedLines,
			ParentIDs:    strings.Join(record.ParentIDs, "|"),
			TotalLines:   record.TotalLines,
			TotalTests:   record.TotalTests,
		}
	}
	return result
}

// ConvertDetailRecords converts schema.DetailRecord to AuthorCommit for Parquet export.
func ConvertDetailRecords(records []schema.DetailRecord) []AuthorCommit {
	result := make([]AuthorCommit, len(records))
	for i, record := range records {
		result[i] = AuthorCommit{
			Hexsha:     record.Hexsha,
			Author:     record.Author,
			CommitTime: record.CommitTime,
			LineCount:  record.LineCount,
			TestCount:  record.TestCount,
		}
	}
	return result
}

// ConvertSeriesRecords converts schema.SeriesRecord to SeriesPoint for Parquet export.
func ConvertSeriesRecords(records []schema.SeriesRecord) []SeriesPoint {
	result := make([]SeriesPoint, len(records))
	for i, record := range records {
		result[i] = SeriesPoint(record)
	}
	return result
}
