package report

import (
	"fmt"

	"github.com/carbocation/filtlongqc/filtlong"
	"github.com/carbocation/pfx"
	"github.com/montanaflynn/stats"
)

// MetricSummary describes the distribution of one metric across samples.
type MetricSummary struct {
	Metric string
	N      int
	Mean   float64
	Median float64
	Min    float64
	Max    float64
}

func (s MetricSummary) String() string {
	if s.N == 0 {
		return fmt.Sprintf("%s: no samples", s.Metric)
	}

	return fmt.Sprintf("%s: N=%d mean=%.0f median=%.0f min=%.0f max=%.0f", s.Metric, s.N, s.Mean, s.Median, s.Min, s.Max)
}

// Summarize computes summary statistics for target and keeping bases. A
// metric that no sample carries is returned with N=0.
func Summarize(table filtlong.SampleTable) ([]MetricSummary, error) {
	out := make([]MetricSummary, 0, 2)

	for _, metric := range []string{filtlong.MetricTargetBases, filtlong.MetricKeepingBases} {
		data := make(stats.Float64Data, 0, len(table))
		for _, rec := range table {
			if v, ok := rec.Metric(metric); ok {
				data = append(data, v)
			}
		}

		s := MetricSummary{Metric: metric, N: data.Len()}
		if data.Len() < 1 {
			out = append(out, s)
			continue
		}

		var err error
		if s.Mean, err = data.Mean(); err != nil {
			return nil, pfx.Err(err)
		}
		if s.Median, err = data.Median(); err != nil {
			return nil, pfx.Err(err)
		}
		if s.Min, err = data.Min(); err != nil {
			return nil, pfx.Err(err)
		}
		if s.Max, err = data.Max(); err != nil {
			return nil, pfx.Err(err)
		}

		out = append(out, s)
	}

	return out, nil
}
