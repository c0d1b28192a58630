package filtlong

import (
	"sort"

	"gopkg.in/guregu/null.v3"
)

// Metric names, as used in data exports and report headers.
const (
	MetricTargetBases  = "TargetBases"
	MetricKeepingBases = "KeepingBases"
)

// MetricsRecord holds the metrics parsed from one sample's log.
type MetricsRecord struct {
	TargetBases  float64    `json:"TargetBases"`
	KeepingBases null.Float `json:"KeepingBases"`

	// Source is the path of the log that produced this record.
	Source string `json:"-"`
}

// Metrics returns the fields that have been set, keyed by metric name.
func (m MetricsRecord) Metrics() map[string]float64 {
	out := map[string]float64{
		MetricTargetBases: m.TargetBases,
	}
	if m.KeepingBases.Valid {
		out[MetricKeepingBases] = m.KeepingBases.Float64
	}

	return out
}

// Metric returns the named metric and whether it is set.
func (m MetricsRecord) Metric(name string) (float64, bool) {
	v, ok := m.Metrics()[name]
	return v, ok
}

// SampleTable maps a sample ID to its record.
type SampleTable map[string]*MetricsRecord

// SampleIDs returns the table's keys in sorted order.
func (t SampleTable) SampleIDs() []string {
	out := make([]string, 0, len(t))
	for id := range t {
		out = append(out, id)
	}
	sort.Strings(out)

	return out
}

// Remove deletes the given samples. Unknown IDs are ignored.
func (t SampleTable) Remove(ids ...string) {
	for _, id := range ids {
		delete(t, id)
	}
}
