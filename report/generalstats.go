package report

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/carbocation/filtlongqc/filtlong"
)

// ReadCountConfig controls how base counts are scaled for display.
type ReadCountConfig struct {
	Multiplier float64
	Prefix     string
	Desc       string
}

var DefaultReadCountConfig = ReadCountConfig{
	Multiplier: 0.000001,
	Prefix:     "M",
	Desc:       "millions",
}

// Header describes one column of the general statistics table.
type Header struct {
	Metric      string
	Title       string
	Description string
	Scale       string
	SharedKey   string
	Hidden      bool
	Modify      func(float64) float64
}

func (h Header) format(v float64) string {
	if h.Modify != nil {
		v = h.Modify(v)
	}

	return fmt.Sprintf("%.1f", v)
}

// GeneralStatsHeaders returns the target and keeping bases columns. The
// keeping bases column is hidden by default.
func GeneralStatsHeaders(cfg ReadCountConfig) []Header {
	modify := func(x float64) float64 { return x * cfg.Multiplier }

	return []Header{
		{
			Metric:      filtlong.MetricTargetBases,
			Title:       fmt.Sprintf("Target bases (%s)", cfg.Prefix),
			Description: fmt.Sprintf("Keep only the best reads up to this many total bases (%s)", cfg.Desc),
			Scale:       "Greens",
			SharedKey:   "read_count",
			Modify:      modify,
		},
		{
			Metric:      filtlong.MetricKeepingBases,
			Title:       fmt.Sprintf("Keeping bases (%s)", cfg.Prefix),
			Description: fmt.Sprintf("Keeping bases (%s)", cfg.Desc),
			Scale:       "Purples",
			SharedKey:   "read_count",
			Hidden:      true,
			Modify:      modify,
		},
	}
}

// WriteGeneralStats renders the table as aligned text, one row per sample.
// Hidden columns are skipped unless showHidden is set.
func WriteGeneralStats(w io.Writer, table filtlong.SampleTable, headers []Header, showHidden bool) error {
	cols := make([]Header, 0, len(headers))
	for _, h := range headers {
		if h.Hidden && !showHidden {
			continue
		}
		cols = append(cols, h)
	}

	tw := tabwriter.NewWriter(w, 0, 8, 2, ' ', 0)

	titles := []string{"Sample"}
	for _, h := range cols {
		titles = append(titles, h.Title)
	}
	fmt.Fprintln(tw, strings.Join(titles, "\t"))

	for _, id := range table.SampleIDs() {
		row := []string{id}
		for _, h := range cols {
			v, ok := table[id].Metric(h.Metric)
			if !ok {
				row = append(row, "")
				continue
			}
			row = append(row, h.format(v))
		}
		fmt.Fprintln(tw, strings.Join(row, "\t"))
	}

	return tw.Flush()
}
