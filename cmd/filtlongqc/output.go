package main

import (
	"context"
	"errors"
	"log"
	"os"
	"path/filepath"

	"cloud.google.com/go/bigquery"
	"github.com/carbocation/filtlongqc/filtlong"
	"github.com/carbocation/filtlongqc/report"
	"github.com/carbocation/pfx"
)

func writeOutputs(ctx context.Context, cfg *Config, table filtlong.SampleTable) error {
	if err := os.MkdirAll(cfg.OutputPath, 0755); err != nil {
		return pfx.Err(err)
	}

	if err := writeFile(filepath.Join(cfg.OutputPath, report.DataFileName), func(f *os.File) error {
		return report.WriteDataFile(f, table)
	}); err != nil {
		return err
	}

	if err := writeFile(filepath.Join(cfg.OutputPath, report.JSONFileName), func(f *os.File) error {
		return report.WriteJSON(f, table)
	}); err != nil {
		return err
	}

	if err := report.WriteGeneralStats(STDOUT, table, report.GeneralStatsHeaders(cfg.ReadCount), cfg.ShowHidden); err != nil {
		return err
	}

	summaries, err := report.Summarize(table)
	if err != nil {
		return err
	}
	for _, s := range summaries {
		log.Println(s)
	}

	if !cfg.NoPlots {
		for _, graph := range report.BarGraphs() {
			err := writeFile(filepath.Join(cfg.OutputPath, graph.FileName()), func(f *os.File) error {
				return report.RenderBarGraph(f, graph, table)
			})
			if errors.Is(err, report.ErrNoData) {
				log.Printf("%s: %v\n", graph.Name, err)
				os.Remove(filepath.Join(cfg.OutputPath, graph.FileName()))
				continue
			} else if err != nil {
				return err
			}
			log.Println("Wrote", graph.Name, "to", graph.FileName())
		}
	}

	if cfg.BQTable != "" {
		if err := exportBigQuery(ctx, cfg, table); err != nil {
			return err
		}
	}

	return nil
}

func exportBigQuery(ctx context.Context, cfg *Config, table filtlong.SampleTable) error {
	BQ := &report.WrappedBigQuery{
		Context: ctx,
		Project: cfg.BQProject,
		Dataset: cfg.BQDataset,
		Table:   cfg.BQTable,
	}

	var err error
	BQ.Client, err = bigquery.NewClient(BQ.Context, BQ.Project)
	if err != nil {
		return pfx.Err(err)
	}
	defer BQ.Client.Close()

	rows := report.BigQueryRows(table)
	if err := report.ExportBigQuery(BQ, rows); err != nil {
		return err
	}
	log.Printf("Inserted %d rows into %s.%s.%s\n", len(rows), BQ.Project, BQ.Dataset, BQ.Table)

	return nil
}

func writeFile(path string, write func(f *os.File) error) error {
	f, err := os.Create(path)
	if err != nil {
		return pfx.Err(err)
	}

	if err := write(f); err != nil {
		f.Close()
		return err
	}

	return f.Close()
}
