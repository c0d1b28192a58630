package report

import (
	"errors"
	"io"

	"github.com/carbocation/filtlongqc/filtlong"
	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

// ErrNoData is returned when no sample carries the metric a graph plots.
var ErrNoData = errors.New("no samples have data for this plot")

// Category is the single series drawn by a bar graph.
type Category struct {
	Metric string
	Name   string
	Color  string
}

// BarGraph describes one report section holding a bar chart.
type BarGraph struct {
	ID          string
	Name        string
	Anchor      string
	Description string
	Title       string
	YLabel      string
	Category    Category
}

// FileName is the name under which the graph's PNG is written.
func (b BarGraph) FileName() string {
	return b.ID + ".png"
}

// BarGraphs returns the target bases and keeping bases sections, in the order
// they appear in the report.
func BarGraphs() []BarGraph {
	return []BarGraph{
		{
			ID:          "filtlong-targetbases-barplot",
			Name:        "Filtlong-number of target bases",
			Anchor:      "targetbases-barplot",
			Description: "Shows the number of target bases.",
			Title:       "Filtlong: Number of target bases",
			YLabel:      "Read Counts",
			Category:    Category{Metric: filtlong.MetricTargetBases, Name: "Target bases", Color: "7cb5ec"},
		},
		{
			ID:          "filtlong-keepingbases-barplot",
			Name:        "Filtlong-number of keeping bases",
			Anchor:      "keepingbases-barplot",
			Description: "Shows the number of keeping bases.",
			Title:       "Filtlong: Number of keeping bases",
			YLabel:      "Read Counts",
			Category:    Category{Metric: filtlong.MetricKeepingBases, Name: "Keeping bases", Color: "7cb5ec"},
		},
	}
}

// Bars returns one bar per sample that has the graph's metric, sorted by
// sample.
func (b BarGraph) Bars(table filtlong.SampleTable) []chart.Value {
	style := chart.Style{
		FillColor:   drawing.ColorFromHex(b.Category.Color),
		StrokeColor: drawing.ColorFromHex(b.Category.Color),
		StrokeWidth: 0,
	}

	bars := make([]chart.Value, 0, len(table))
	for _, id := range table.SampleIDs() {
		v, ok := table[id].Metric(b.Category.Metric)
		if !ok {
			continue
		}
		bars = append(bars, chart.Value{Label: id, Value: v, Style: style})
	}

	return bars
}

// RenderBarGraph draws the graph as a PNG.
func RenderBarGraph(w io.Writer, b BarGraph, table filtlong.SampleTable) error {
	bars := b.Bars(table)
	if len(bars) == 0 {
		return ErrNoData
	}

	// Bars start at zero. An all-zero plot (every sample fell below the
	// length cutoff) still needs a non-empty range.
	yMax := 0.0
	for _, bar := range bars {
		if bar.Value > yMax {
			yMax = bar.Value
		}
	}
	if yMax == 0 {
		yMax = 1
	}

	graph := chart.BarChart{
		Title:  b.Title,
		Width:  256 + 64*len(bars),
		Height: 512,
		Background: chart.Style{
			Padding: chart.Box{Top: 40},
		},
		YAxis: chart.YAxis{
			Name:  b.YLabel,
			Range: &chart.ContinuousRange{Min: 0, Max: yMax * 1.1},
		},
		BarWidth: 48,
		Bars:     bars,
	}

	return graph.Render(chart.PNG, w)
}
