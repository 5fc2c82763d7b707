package plot

import (
	"bytes"
	"fmt"
	"testing"
	"time"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/huangsam/hammer/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testData() Data {
	start := time.Date(2020, 1, 6, 0, 0, 0, 0, time.UTC)
	points := []schema.CombinedCommit{
		{CommitTime: start, LineCounts: schema.CountMap{"alice": 14}},
		{CommitTime: start.AddDate(0, 0, 1), LineCounts: schema.CountMap{"alice": 10, "bob": 4}, TestCounts: schema.CountMap{"bob": 1}},
	}
	data := Data{
		Project:   "demo",
		Frequency: schema.Daily,
		Points:    points,
		Head:      points[1],
	}
	data.Summary.TotalCommits = 2
	data.Summary.WeekdayCommits[0] = 1
	data.Summary.WeekdayCommits[1] = 1
	data.Summary.HourCommits[9] = 2
	return data
}

func TestBuild(t *testing.T) {
	for _, graph := range schema.AllGraphTypes {
		t.Run(string(graph), func(t *testing.T) {
			chart, err := Build(graph, testData())
			require.NoError(t, err)
			require.NotNil(t, chart)

			var buf bytes.Buffer
			require.NoError(t, chart.Render(&buf))
			assert.Contains(t, buf.String(), "echarts")
		})
	}

	_, err := Build("pie", testData())
	assert.Error(t, err)
}

func TestTotalsChart(t *testing.T) {
	line, err := totalsChart(testData(), "Lines of code", "Lines", lineCounts)
	require.NoError(t, err)
	require.Len(t, line.MultiSeries, 1)
	assert.Equal(t, "Total", line.MultiSeries[0].Name)
	assert.Equal(t, []string{"2020-01-06", "2020-01-07"}, timeLabels(testData()))
}

func TestPerAuthorChart(t *testing.T) {
	t.Run("ranked by head counts", func(t *testing.T) {
		line, err := perAuthorChart(testData(), "Lines of code per author", "Lines", lineCounts)
		require.NoError(t, err)
		require.Len(t, line.MultiSeries, 2)
		assert.Equal(t, "alice", line.MultiSeries[0].Name)
		assert.Equal(t, "bob", line.MultiSeries[1].Name)
	})

	t.Run("others", func(t *testing.T) {
		counts := schema.CountMap{}
		for i := range MaxAuthors + 3 {
			counts[fmt.Sprintf("author%02d", i)] = 100 - i
		}
		point := schema.CombinedCommit{CommitTime: time.Now(), LineCounts: counts}
		data := Data{Points: []schema.CombinedCommit{point}, Head: point}

		line, err := perAuthorChart(data, "Lines of code per author", "Lines", lineCounts)
		require.NoError(t, err)
		require.Len(t, line.MultiSeries, MaxAuthors+1)
		assert.Equal(t, "author00", line.MultiSeries[0].Name)
		assert.Equal(t, "Others", line.MultiSeries[MaxAuthors].Name)
	})

	t.Run("no test lines", func(t *testing.T) {
		data := testData()
		data.Points = data.Points[:1]
		_, err := Build(schema.TestAuthorCountGraph, data)
		assert.ErrorIs(t, err, ErrNoData)
	})
}

func TestHistogramCharts(t *testing.T) {
	bar, err := dayOfWeekChart(testData())
	require.NoError(t, err)
	require.Len(t, bar.MultiSeries, 1)

	_, err = timeOfDayChart(Data{})
	assert.ErrorIs(t, err, ErrNoData)

	var _ Renderer = (*charts.Bar)(nil)
}
