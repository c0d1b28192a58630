// filtlongqc collects the target and keeping base counts from Filtlong logs
// into a per-sample table, and writes the data file, general statistics and
// bar charts for reporting.
package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"runtime"
	"strings"

	"cloud.google.com/go/storage"
	"github.com/carbocation/filtlongqc"
	"github.com/carbocation/filtlongqc/compileinfo"
	"github.com/carbocation/filtlongqc/discovery"
	"github.com/carbocation/filtlongqc/report"
)

var (
	BufferSize = 4096 * 8
	STDOUT     = bufio.NewWriterSize(os.Stdout, BufferSize)
)

type Config struct {
	LogsPath    string
	OutputPath  string
	Ignore      []string
	IgnoreFile  string
	Discovery   discovery.Options
	Threads     int
	ReadCount   report.ReadCountConfig
	ShowHidden  bool
	NoPlots     bool
	BQProject   string
	BQDataset   string
	BQTable     string
	sclient     *storage.Client
	diagnostics int
}

func main() {
	defer STDOUT.Flush()

	compileinfo.Fprint(os.Stderr)

	cfg := Config{
		ReadCount: report.DefaultReadCountConfig,
	}

	flag.StringVar(&cfg.LogsPath, "logs", "", "Directory, single file, or gs:// prefix holding Filtlong logs. May be on Google Storage.")
	flag.StringVar(&cfg.OutputPath, "out", ".", "Local directory into which the data file, JSON and plots will be written.")
	flag.Func("ignore", "Comma-separated glob patterns of sample names to drop (e.g., neg_*,blank). May be repeated.", func(v string) error {
		for _, p := range strings.Split(v, ",") {
			if p = strings.TrimSpace(p); p != "" {
				cfg.Ignore = append(cfg.Ignore, p)
			}
		}
		return nil
	})
	flag.StringVar(&cfg.IgnoreFile, "ignore-file", "", "File with one sample name glob pattern per line (first column is used). Optional.")
	flag.StringVar(&cfg.Discovery.Contents, "contents", discovery.DefaultContents, "Text that identifies a file as a Filtlong log.")
	flag.IntVar(&cfg.Discovery.NumLines, "num-lines", discovery.DefaultNumLines, "Number of lines at the top of each file to search for -contents.")
	flag.IntVar(&cfg.Threads, "threads", runtime.NumCPU(), "Number of logs to read concurrently.")
	flag.Float64Var(&cfg.ReadCount.Multiplier, "read-count-multiplier", cfg.ReadCount.Multiplier, "Multiplier applied to base counts in the general statistics table.")
	flag.StringVar(&cfg.ReadCount.Prefix, "read-count-prefix", cfg.ReadCount.Prefix, "Unit prefix shown in the general statistics column titles.")
	flag.StringVar(&cfg.ReadCount.Desc, "read-count-desc", cfg.ReadCount.Desc, "Unit description shown in the general statistics column descriptions.")
	flag.BoolVar(&cfg.ShowHidden, "show-hidden", false, "Also print columns that are hidden by default (Keeping bases)?")
	flag.BoolVar(&cfg.NoPlots, "no-plots", false, "Skip rendering the bar charts?")
	flag.StringVar(&cfg.BQProject, "bq-project", "", "Google Cloud project for the optional BigQuery export.")
	flag.StringVar(&cfg.BQDataset, "bq-dataset", "", "BigQuery dataset for the optional export.")
	flag.StringVar(&cfg.BQTable, "bq-table", "", "BigQuery table for the optional export. Created if it does not exist.")
	flag.Parse()

	if cfg.LogsPath == "" {
		fmt.Fprintln(os.Stderr, "Please provide --logs")
		flag.PrintDefaults()
		os.Exit(1)
	}

	if cfg.BQTable != "" && (cfg.BQProject == "" || cfg.BQDataset == "") {
		fmt.Fprintln(os.Stderr, "Please provide --bq-project and --bq-dataset alongside --bq-table")
		flag.PrintDefaults()
		os.Exit(1)
	}

	if cfg.Threads < 1 {
		cfg.Threads = 1
	}

	var err error
	if cfg.LogsPath, err = filtlongqc.ExpandHome(cfg.LogsPath); err != nil {
		log.Fatalln(err)
	}
	if cfg.OutputPath, err = filtlongqc.ExpandHome(cfg.OutputPath); err != nil {
		log.Fatalln(err)
	}
	if cfg.IgnoreFile, err = filtlongqc.ExpandHome(cfg.IgnoreFile); err != nil {
		log.Fatalln(err)
	}

	ctx := context.Background()

	if strings.HasPrefix(cfg.LogsPath, "gs://") {
		cfg.sclient, err = storage.NewClient(ctx)
		if err != nil {
			log.Fatalln(err)
		}
		defer cfg.sclient.Close()
	}

	log.Println("Launched filtlongqc")

	if err := run(ctx, &cfg); err != nil {
		STDOUT.Flush()
		log.Fatalln(err)
	}
}
