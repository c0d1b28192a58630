package main

import (
	"context"
	"log"

	"github.com/carbocation/filtlongqc"
	"github.com/carbocation/filtlongqc/discovery"
	"github.com/carbocation/filtlongqc/filtlong"
	"github.com/carbocation/filtlongqc/samplefilter"
)

type readResult struct {
	lines []string
	err   error
}

func run(ctx context.Context, cfg *Config) error {
	logs, err := discovery.Find(ctx, cfg.LogsPath, cfg.sclient, cfg.Discovery)
	if err != nil {
		return err
	}
	log.Println("Found", len(logs), "Filtlong logs under", cfg.LogsPath)

	table := collect(ctx, cfg, logs)

	filter, err := buildFilter(cfg)
	if err != nil {
		return err
	}
	if removed := filter.Apply(table); len(removed) > 0 {
		log.Println("Ignoring", len(removed), "samples:", removed)
	}

	if err := filtlong.CheckNotEmpty(table); err != nil {
		return err
	}
	log.Printf("Found %d reports\n", len(table))

	return writeOutputs(ctx, cfg, table)
}

// collect reads the logs concurrently, then feeds them to the accumulator in
// discovery order so that the last duplicate in that order wins.
func collect(ctx context.Context, cfg *Config, logs []discovery.Log) filtlong.SampleTable {
	results := make([]readResult, len(logs))

	sem := make(chan struct{}, cfg.Threads)
	for i, l := range logs {
		sem <- struct{}{}
		go func(i int, path string) {
			defer func() { <-sem }()
			lines, err := filtlongqc.ReadLogLines(ctx, path, cfg.sclient)
			results[i] = readResult{lines: lines, err: err}
		}(i, l.Path)
	}

	// Make sure we finish all the reads before accumulating
	for i := 0; i < cap(sem); i++ {
		sem <- struct{}{}
	}

	acc := filtlong.NewAccumulator(func(d filtlong.Diagnostic) {
		cfg.diagnostics++
		filtlong.LogDiagnostic(d)
	})

	table := filtlong.SampleTable{}
	for i, l := range logs {
		if results[i].err != nil {
			log.Printf("Skipping %s: %v\n", l.Path, results[i].err)
			continue
		}

		if err := acc.ProcessSource(l.SampleID, l.Path, results[i].lines, table); err != nil {
			log.Println("Skipping sample:", err)
			continue
		}
	}

	if cfg.diagnostics > 0 {
		log.Println(cfg.diagnostics, "duplicate sample names were overwritten")
	}

	return table
}

func buildFilter(cfg *Config) (*samplefilter.Filter, error) {
	patterns := append([]string(nil), cfg.Ignore...)

	if cfg.IgnoreFile != "" {
		fromFile, err := samplefilter.ReadPatternsFile(cfg.IgnoreFile)
		if err != nil {
			return nil, err
		}
		patterns = append(patterns, fromFile...)
	}

	return samplefilter.New(patterns...)
}
