package main

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/carbocation/filtlongqc/filtlong"
	"github.com/carbocation/filtlongqc/report"
)

func writeLog(t *testing.T, path string, lines ...string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatal(err)
	}

	text := "Scoring long reads\n"
	for _, l := range lines {
		text += l + "\n"
	}
	if err := os.WriteFile(path, []byte(text), 0644); err != nil {
		t.Fatal(err)
	}
}

func TestRun(t *testing.T) {
	dir := t.TempDir()
	writeLog(t, filepath.Join(dir, "a", "s1.log"), "  target: 100 bases")
	writeLog(t, filepath.Join(dir, "b", "s1.log"), "  target: 500000000 bases", "  keeping 450000000 bases")
	writeLog(t, filepath.Join(dir, "s2.log"), "  target: 300000000 bases", "  all reads fall below min length")
	writeLog(t, filepath.Join(dir, "broken.log"), "  target: many bases")
	writeLog(t, filepath.Join(dir, "neg_ctrl.log"), "  target: 1 bases")

	out := filepath.Join(dir, "out")
	cfg := &Config{
		LogsPath:   dir,
		OutputPath: out,
		Ignore:     []string{"neg_*"},
		Threads:    2,
		ReadCount:  report.DefaultReadCountConfig,
	}

	if err := run(context.Background(), cfg); err != nil {
		t.Fatal(err)
	}

	if cfg.diagnostics != 1 {
		t.Errorf("expected 1 duplicate diagnostic, got %d", cfg.diagnostics)
	}

	data, err := os.ReadFile(filepath.Join(out, report.DataFileName))
	if err != nil {
		t.Fatal(err)
	}
	expected := "Sample\tTarget bases\tKeeping bases\n" +
		"s1\t500000000\t450000000\n" +
		"s2\t300000000\t0\n"
	if string(data) != expected {
		t.Errorf("got:\n%s\nexpected:\n%s", data, expected)
	}

	for _, g := range report.BarGraphs() {
		if _, err := os.Stat(filepath.Join(out, g.FileName())); err != nil {
			t.Errorf("%s: %v", g.ID, err)
		}
	}
}

func TestRunNoReports(t *testing.T) {
	dir := t.TempDir()
	writeLog(t, filepath.Join(dir, "fragment.log"), "  keeping 450000000 bases")

	cfg := &Config{
		LogsPath:   dir,
		OutputPath: filepath.Join(dir, "out"),
		Threads:    1,
		ReadCount:  report.DefaultReadCountConfig,
		NoPlots:    true,
	}

	if err := run(context.Background(), cfg); !errors.Is(err, filtlong.ErrNoReports) {
		t.Errorf("expected ErrNoReports, got %v", err)
	}
}
