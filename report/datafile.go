// Package report turns a filtlong.SampleTable into the outputs consumed by
// downstream reporting: a tab-delimited data file, JSON, a general
// statistics table, bar charts and summary statistics.
package report

import (
	"encoding/csv"
	"encoding/json"
	"io"

	"github.com/carbocation/filtlongqc/filtlong"
	"github.com/carbocation/pfx"
	"github.com/gocarina/gocsv"
	"gopkg.in/guregu/null.v3"
)

// DataFileName is the conventional name of the tab-delimited export.
const DataFileName = "multiqc_filtlong.txt"

// JSONFileName is the conventional name of the JSON export.
const JSONFileName = "multiqc_filtlong.json"

// DataRow is one line of the data file. Unset keeping bases are written as an
// empty cell.
type DataRow struct {
	Sample       string     `csv:"Sample"`
	TargetBases  float64    `csv:"Target bases"`
	KeepingBases null.Float `csv:"Keeping bases"`
}

// DataRows flattens the table into rows sorted by sample.
func DataRows(table filtlong.SampleTable) []*DataRow {
	out := make([]*DataRow, 0, len(table))
	for _, id := range table.SampleIDs() {
		rec := table[id]
		out = append(out, &DataRow{
			Sample:       id,
			TargetBases:  rec.TargetBases,
			KeepingBases: rec.KeepingBases,
		})
	}

	return out
}

// WriteDataFile writes the table as tab-delimited text with a header row.
func WriteDataFile(w io.Writer, table filtlong.SampleTable) error {
	cw := csv.NewWriter(w)
	cw.Comma = '\t'

	if err := gocsv.MarshalCSV(DataRows(table), gocsv.NewSafeCSVWriter(cw)); err != nil {
		return pfx.Err(err)
	}

	return nil
}

// WriteJSON writes the table as a JSON object keyed by sample.
func WriteJSON(w io.Writer, table filtlong.SampleTable) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "    ")

	if err := enc.Encode(table); err != nil {
		return pfx.Err(err)
	}

	return nil
}
