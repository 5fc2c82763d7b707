// Package plot renders project charts as standalone HTML pages with go-echarts.
package plot

import (
	"cmp"
	"errors"
	"fmt"
	"io"
	"maps"
	"slices"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
	"github.com/huangsam/hammer/schema"
)

// MaxAuthors is the number of authors drawn individually in per-author charts.
// The remaining authors are summed into a single "Others" series.
const MaxAuthors = 10

// ErrNoData is returned when a chart would have nothing to draw.
var ErrNoData = errors.New("no data for graph")

// Data is everything a chart may draw from.
type Data struct {
	Project   string
	Frequency schema.Frequency
	Width     int

	// Points is the combined series of the project, resampled at Frequency.
	Points []schema.CombinedCommit

	// Head is the latest combined state, used to rank authors.
	Head schema.CombinedCommit

	// Summary provides the commit histograms.
	Summary schema.ProjectSummary
}

// Renderer is a chart that renders itself as an HTML page.
type Renderer interface {
	Render(w io.Writer) error
}

// Build returns the chart of the given type.
func Build(graph schema.GraphType, data Data) (Renderer, error) {
	switch graph {
	case schema.LineCountGraph:
		return asRenderer(totalsChart(data, "Lines of code", "Lines", lineCounts))
	case schema.TestCountGraph:
		return asRenderer(totalsChart(data, "Tests", "Tests", testCounts))
	case schema.LineAuthorCountGraph:
		return asRenderer(perAuthorChart(data, "Lines of code per author", "Lines", lineCounts))
	case schema.TestAuthorCountGraph:
		return asRenderer(perAuthorChart(data, "Tests per author", "Tests", testCounts))
	case schema.DayOfWeekGraph:
		return asRenderer(dayOfWeekChart(data))
	case schema.TimeOfDayGraph:
		return asRenderer(timeOfDayChart(data))
	}
	return nil, fmt.Errorf("unknown graph type %q", graph)
}

// asRenderer keeps a failed build from yielding a non-nil interface.
func asRenderer[T Renderer](chart T, err error) (Renderer, error) {
	if err != nil {
		return nil, err
	}
	return chart, nil
}

type countsOf func(c schema.CombinedCommit) schema.CountMap

func lineCounts(c schema.CombinedCommit) schema.CountMap { return c.LineCounts }
func testCounts(c schema.CombinedCommit) schema.CountMap { return c.TestCounts }

func globalOptions(data Data, title, yAxis string) []charts.GlobalOpts {
	width := data.Width
	if width <= 0 {
		width = 1200
	}
	return []charts.GlobalOpts{
		charts.WithInitializationOpts(opts.Initialization{
			PageTitle: fmt.Sprintf("%s: %s", data.Project, title),
			Width:     fmt.Sprintf("%dpx", width),
			Height:    "600px",
		}),
		charts.WithTitleOpts(opts.Title{Title: title, Subtitle: data.Project, Left: "center"}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true), Trigger: "axis"}),
		charts.WithLegendOpts(opts.Legend{Show: opts.Bool(true), Type: "scroll", Top: "10%", Left: "center"}),
		charts.WithDataZoomOpts(opts.DataZoom{Type: "slider", Start: 0, End: 100}, opts.DataZoom{Type: "inside"}),
		charts.WithYAxisOpts(opts.YAxis{Name: yAxis}),
		charts.WithGridOpts(opts.Grid{Top: "20%", Bottom: "15%", ContainLabel: opts.Bool(true)}),
	}
}

func timeLabels(data Data) []string {
	layout := "2006-01-02 15:04"
	switch data.Frequency {
	case schema.Daily, schema.Weekly:
		layout = "2006-01-02"
	case schema.Monthly:
		layout = "2006-01"
	case schema.Yearly:
		layout = "2006"
	}
	labels := make([]string, len(data.Points))
	for i, p := range data.Points {
		labels[i] = p.CommitTime.Format(layout)
	}
	return labels
}

func totalsChart(data Data, title, yAxis string, counts countsOf) (*charts.Line, error) {
	if len(data.Points) == 0 {
		return nil, ErrNoData
	}
	values := make([]opts.LineData, len(data.Points))
	for i, p := range data.Points {
		values[i] = opts.LineData{Value: counts(p).Total()}
	}

	line := charts.NewLine()
	line.SetGlobalOptions(globalOptions(data, title, yAxis)...)
	line.SetXAxis(timeLabels(data))
	line.AddSeries("Total", values, charts.WithLineChartOpts(opts.LineChart{ShowSymbol: opts.Bool(false)}))
	return line, nil
}

// rankedAuthors returns every author present in the series, the largest at head first.
func rankedAuthors(data Data, counts countsOf) []string {
	seen := make(map[string]struct{})
	for _, p := range data.Points {
		for author := range counts(p) {
			seen[author] = struct{}{}
		}
	}
	head := counts(data.Head)
	return slices.SortedFunc(maps.Keys(seen), func(a, b string) int {
		if c := cmp.Compare(head[b], head[a]); c != 0 {
			return c
		}
		return cmp.Compare(a, b)
	})
}

func perAuthorChart(data Data, title, yAxis string, counts countsOf) (*charts.Line, error) {
	authors := rankedAuthors(data, counts)
	if len(authors) == 0 {
		return nil, ErrNoData
	}
	top, rest := authors, []string(nil)
	if len(authors) > MaxAuthors {
		top, rest = authors[:MaxAuthors], authors[MaxAuthors:]
	}

	line := charts.NewLine()
	line.SetGlobalOptions(globalOptions(data, title, yAxis)...)
	line.SetXAxis(timeLabels(data))

	stacked := []charts.SeriesOpts{
		charts.WithLineChartOpts(opts.LineChart{Stack: "total", ShowSymbol: opts.Bool(false)}),
		charts.WithAreaStyleOpts(opts.AreaStyle{Opacity: opts.Float(0.6)}),
	}
	for _, author := range top {
		values := make([]opts.LineData, len(data.Points))
		for i, p := range data.Points {
			values[i] = opts.LineData{Value: counts(p)[author]}
		}
		line.AddSeries(author, values, stacked...)
	}
	if len(rest) > 0 {
		values := make([]opts.LineData, len(data.Points))
		for i, p := range data.Points {
			total := 0
			for _, author := range rest {
				total += counts(p)[author]
			}
			values[i] = opts.LineData{Value: total}
		}
		line.AddSeries("Others", values, stacked...)
	}
	return line, nil
}

func barChart(data Data, title string, labels []string, counts []int) (*charts.Bar, error) {
	if data.Summary.TotalCommits == 0 {
		return nil, ErrNoData
	}
	values := make([]opts.BarData, len(counts))
	for i, n := range counts {
		values[i] = opts.BarData{Value: n}
	}
	bar := charts.NewBar()
	bar.SetGlobalOptions(globalOptions(data, title, "Commits")...)
	bar.SetXAxis(labels)
	bar.AddSeries("Commits", values)
	return bar, nil
}

func dayOfWeekChart(data Data) (*charts.Bar, error) {
	labels := []string{"Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday", "Sunday"}
	return barChart(data, "Commits per day of week", labels, data.Summary.WeekdayCommits[:])
}

func timeOfDayChart(data Data) (*charts.Bar, error) {
	labels := make([]string, 24)
	for hour := range labels {
		labels[hour] = fmt.Sprintf("%02d", hour)
	}
	return barChart(data, "Commits per hour of day", labels, data.Summary.HourCommits[:])
}
