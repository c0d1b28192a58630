package report

import (
	"bytes"
	"encoding/json"
	"errors"
	"math"
	"strings"
	"testing"

	"github.com/carbocation/filtlongqc/filtlong"
)

func testTable(t *testing.T) filtlong.SampleTable {
	table := filtlong.SampleTable{}
	acc := filtlong.NewAccumulator(func(filtlong.Diagnostic) {})

	for _, v := range []struct {
		Sample string
		Lines  []string
	}{
		{"s2", []string{"target: 500000000 bases", "keeping 450000000 bases"}},
		{"s1", []string{"target: 400000000 bases"}},
		{"s3", []string{"target: 300000000 bases", "all reads fall below min length"}},
	} {
		if err := acc.Process(v.Sample, v.Lines, table); err != nil {
			t.Fatal(err)
		}
	}

	return table
}

func TestWriteDataFile(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteDataFile(&buf, testTable(t)); err != nil {
		t.Fatal(err)
	}

	expected := "Sample\tTarget bases\tKeeping bases\n" +
		"s1\t400000000\t\n" +
		"s2\t500000000\t450000000\n" +
		"s3\t300000000\t0\n"
	if buf.String() != expected {
		t.Errorf("got:\n%s\nexpected:\n%s", buf.String(), expected)
	}
}

func TestWriteJSON(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteJSON(&buf, testTable(t)); err != nil {
		t.Fatal(err)
	}

	var got map[string]map[string]*float64
	if err := json.Unmarshal(buf.Bytes(), &got); err != nil {
		t.Fatal(err)
	}

	if len(got) != 3 {
		t.Fatalf("expected 3 samples, got %d", len(got))
	}
	if v := got["s1"]["KeepingBases"]; v != nil {
		t.Errorf("s1 should have null keeping bases, got %v", *v)
	}
	if v := got["s2"]["KeepingBases"]; v == nil || *v != 450000000 {
		t.Errorf("s2 keeping bases: %v", v)
	}
	if _, exists := got["s2"]["Source"]; exists {
		t.Error("source path should not be exported")
	}
}

func TestGeneralStats(t *testing.T) {
	headers := GeneralStatsHeaders(DefaultReadCountConfig)
	if len(headers) != 2 {
		t.Fatalf("expected 2 headers, got %d", len(headers))
	}
	if headers[0].Title != "Target bases (M)" || headers[0].Hidden {
		t.Errorf("unexpected target header %+v", headers[0])
	}
	if headers[1].Title != "Keeping bases (M)" || !headers[1].Hidden {
		t.Errorf("unexpected keeping header %+v", headers[1])
	}
	if headers[0].SharedKey != "read_count" || headers[1].SharedKey != "read_count" {
		t.Error("both columns should share the read_count scale")
	}

	var buf bytes.Buffer
	if err := WriteGeneralStats(&buf, testTable(t), headers, false); err != nil {
		t.Fatal(err)
	}
	out := buf.String()
	if strings.Contains(out, "Keeping bases") {
		t.Errorf("hidden column was rendered:\n%s", out)
	}
	if !strings.Contains(out, "500.0") || !strings.Contains(out, "Target bases (M)") {
		t.Errorf("unexpected table:\n%s", out)
	}

	buf.Reset()
	if err := WriteGeneralStats(&buf, testTable(t), headers, true); err != nil {
		t.Fatal(err)
	}
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 4 {
		t.Fatalf("expected a header and 3 rows, got:\n%s", buf.String())
	}
	if !strings.Contains(lines[2], "450.0") {
		t.Errorf("s2 row lacks keeping bases: %q", lines[2])
	}
}

func TestSummarize(t *testing.T) {
	summaries, err := Summarize(testTable(t))
	if err != nil {
		t.Fatal(err)
	}

	for _, v := range []MetricSummary{
		{filtlong.MetricTargetBases, 3, 400000000, 400000000, 300000000, 500000000},
		{filtlong.MetricKeepingBases, 2, 225000000, 225000000, 0, 450000000},
	} {
		var got *MetricSummary
		for i := range summaries {
			if summaries[i].Metric == v.Metric {
				got = &summaries[i]
			}
		}
		if got == nil {
			t.Fatalf("%s: missing", v.Metric)
		}
		if got.N != v.N || math.Abs(got.Mean-v.Mean) > 1e-6 || math.Abs(got.Median-v.Median) > 1e-6 || got.Min != v.Min || got.Max != v.Max {
			t.Errorf("%s: got %+v, expected %+v", v.Metric, *got, v)
		}
	}
}

func TestSummarizeNoKeeping(t *testing.T) {
	table := filtlong.SampleTable{"s1": &filtlong.MetricsRecord{TargetBases: 10}}
	summaries, err := Summarize(table)
	if err != nil {
		t.Fatal(err)
	}
	if summaries[1].N != 0 {
		t.Errorf("expected no keeping bases, got %+v", summaries[1])
	}
}

func TestBarGraphs(t *testing.T) {
	graphs := BarGraphs()
	if len(graphs) != 2 {
		t.Fatalf("expected 2 graphs, got %d", len(graphs))
	}

	table := testTable(t)
	if bars := graphs[0].Bars(table); len(bars) != 3 {
		t.Errorf("target graph: expected 3 bars, got %d", len(bars))
	}

	bars := graphs[1].Bars(table)
	if len(bars) != 2 || bars[0].Label != "s2" || bars[1].Label != "s3" {
		t.Errorf("keeping graph: unexpected bars %+v", bars)
	}

	for _, g := range graphs {
		var buf bytes.Buffer
		if err := RenderBarGraph(&buf, g, table); err != nil {
			t.Fatalf("%s: %v", g.ID, err)
		}
		if !bytes.HasPrefix(buf.Bytes(), []byte("\x89PNG")) {
			t.Errorf("%s: output is not a PNG", g.ID)
		}
	}
}

func TestRenderBarGraphNoData(t *testing.T) {
	table := filtlong.SampleTable{"s1": &filtlong.MetricsRecord{TargetBases: 10}}

	var buf bytes.Buffer
	if err := RenderBarGraph(&buf, BarGraphs()[1], table); !errors.Is(err, ErrNoData) {
		t.Errorf("expected ErrNoData, got %v", err)
	}
}

func TestRenderBarGraphAllZero(t *testing.T) {
	table := filtlong.SampleTable{}
	if err := filtlong.NewAccumulator(nil).Process("s1", []string{"target: 10 bases", "reads fall below min length"}, table); err != nil {
		t.Fatal(err)
	}

	var buf bytes.Buffer
	if err := RenderBarGraph(&buf, BarGraphs()[1], table); err != nil {
		t.Error(err)
	}
}

func TestBigQueryRows(t *testing.T) {
	rows := BigQueryRows(testTable(t))
	if len(rows) != 3 {
		t.Fatalf("expected 3 rows, got %d", len(rows))
	}

	if rows[0].SampleID != "s1" || rows[0].KeepingBases.Valid {
		t.Errorf("s1: unexpected row %+v", rows[0])
	}
	if !rows[2].KeepingBases.Valid || rows[2].KeepingBases.Float64 != 0 {
		t.Errorf("s3: keeping bases should be a valid 0, got %+v", rows[2].KeepingBases)
	}
	if rows[1].Source.Valid {
		t.Errorf("rows without a source path should carry a null source")
	}
}
