package parquet

import (
	"io"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/huangsam/hammer/schema"
	"github.com/parquet-go/parquet-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func int32p(v int32) *int32 { return &v }

func readAll[T any](t *testing.T, path string) []T {
	t.Helper()
	file, err := os.Open(path)
	require.NoError(t, err, "Should be able to open output file")
	defer file.Close()

	reader := parquet.NewGenericReader[T](file)
	defer reader.Close()

	rows := make([]T, reader.NumRows())
	n, err := reader.Read(rows)
	if err != nil && err != io.EOF {
		require.NoError(t, err, "Should be able to read data")
	}
	return rows[:n]
}

func TestStructTags(t *testing.T) {
	tests := []struct {
		name    string
		model   any
		columns []string
	}{
		{"commit", new(Commit), []string{
			"hexsha", "repository", "author", "commit_time", "utc_offset",
			"added_lines", "deleted_lines", "parent_ids", "total_lines", "total_tests",
		}},
		{"author commit", new(AuthorCommit), []string{"hexsha", "author", "commit_time", "line_count", "test_count"}},
		{"series point", new(SeriesPoint), []string{"commit_time", "utc_offset", "author", "line_count", "test_count"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := parquet.SchemaOf(tt.model)
			require.NotNil(t, s)
			for _, colName := range tt.columns {
				col, ok := s.Lookup(colName)
				require.True(t, ok, "Column %s should exist in schema", colName)
				require.NotNil(t, col, "Column %s should not be nil", colName)
			}
		})
	}
}

func TestWriteCommitsParquet(t *testing.T) {
	when := time.Date(2020, 1, 6, 9, 0, 0, 0, time.UTC)
	records := []schema.CommitRecord{
		{
			Hexsha: "c1", Repository: "/repos/demo", Author: "Alice <alice@example.com>",
			CommitTime: when, UTCOffset: 7200, AddedLines: int32p(14), DeletedLines: int32p(0),
			TotalLines: 14,
		},
		{
			Hexsha: "c2", Repository: "/repos/demo", Author: "Bob <bob@example.com>",
			CommitTime: when.Add(time.Hour), ParentIDs: []string{"c1", "b1"},
			TotalLines: 14, TotalTests: 2,
		},
	}
	data := ConvertCommitRecords(records)
	assert.Equal(t, "c1|b1", data[1].ParentIDs)

	outputPath := filepath.Join(t.TempDir(), "commits.parquet")
	require.NoError(t, WriteCommitsParquet(data, outputPath))

	info, err := os.Stat(outputPath)
	require.NoError(t, err, "Output file should exist")
	assert.Greater(t, info.Size(), int64(0), "Output file should not be empty")

	read := readAll[Commit](t, outputPath)
	require.Len(t, read, 2)
	for i := range data {
		assert.Equal(t, data[i].Hexsha, read[i].Hexsha)
		assert.Equal(t, data[i].Author, read[i].Author)
		assert.Equal(t, data[i].UTCOffset, read[i].UTCOffset)
		assert.Equal(t, data[i].ParentIDs, read[i].ParentIDs)
		assert.Equal(t, data[i].TotalTests, read[i].TotalTests)
		assert.WithinDuration(t, data[i].CommitTime, read[i].CommitTime, time.Nanosecond)
	}
	require.NotNil(t, read[0].AddedLines)
	assert.Equal(t, int32(14), *read[0].AddedLines)
	assert.Nil(t, read[1].AddedLines, "merge commits keep null line changes")
	assert.Nil(t, read[1].DeletedLines)
}

func TestWriteAuthorCommitsParquet(t *testing.T) {
	when := time.Date(2020, 1, 6, 9, 0, 0, 0, time.UTC)
	data := ConvertDetailRecords([]schema.DetailRecord{
		{Hexsha: "c1", Author: "Alice <alice@example.com>", CommitTime: when, LineCount: 10, TestCount: int32p(2)},
		{Hexsha: "c1", Author: "Bob <bob@example.com>", CommitTime: when, LineCount: 4},
	})

	outputPath := filepath.Join(t.TempDir(), "author_commits.parquet")
	require.NoError(t, WriteAuthorCommitsParquet(data, outputPath))

	read := readAll[AuthorCommit](t, outputPath)
	require.Len(t, read, 2)
	assert.Equal(t, int32(10), read[0].LineCount)
	require.NotNil(t, read[0].TestCount)
	assert.Equal(t, int32(2), *read[0].TestCount)
	assert.Nil(t, read[1].TestCount)
}

func TestWriteSeriesParquet(t *testing.T) {
	when := time.Date(2020, 1, 6, 0, 0, 0, 0, time.UTC)
	data := ConvertSeriesRecords([]schema.SeriesRecord{
		{CommitTime: when, Author: "Alice <alice@example.com>", LineCount: 14},
		{CommitTime: when.AddDate(0, 0, 7), UTCOffset: -3600, Author: "Bob <bob@example.com>", LineCount: 4, TestCount: 1},
	})

	outputPath := filepath.Join(t.TempDir(), "series.parquet")
	require.NoError(t, WriteSeriesParquet(data, outputPath))

	read := readAll[SeriesPoint](t, outputPath)
	require.Len(t, read, 2)
	assert.Equal(t, int32(-3600), read[1].UTCOffset)
	assert.Equal(t, int32(1), read[1].TestCount)
}

func TestWriteParquet_EmptyData(t *testing.T) {
	outputPath := filepath.Join(t.TempDir(), "empty_commits.parquet")
	require.NoError(t, WriteCommitsParquet([]Commit{}, outputPath), "Writing empty data should not produce error")

	info, err := os.Stat(outputPath)
	require.NoError(t, err, "Output file should exist")
	assert.Greater(t, info.Size(), int64(0), "Output file should have parquet footer")
	assert.Empty(t, readAll[Commit](t, outputPath))
}

func TestWriteParquet_InvalidPath(t *testing.T) {
	err := WriteSeriesParquet(nil, filepath.Join(t.TempDir(), "missing", "series.parquet"))
	assert.Error(t, err)
}
