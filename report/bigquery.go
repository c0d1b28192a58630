package report

import (
	"context"
	"errors"
	"log"
	"net/http"

	"cloud.google.com/go/bigquery"
	"github.com/carbocation/filtlongqc/filtlong"
	"github.com/carbocation/pfx"
	"google.golang.org/api/googleapi"
)

// BigQueryRow is the schema of the BigQuery export.
type BigQueryRow struct {
	SampleID     string               `bigquery:"sample_id"`
	TargetBases  float64              `bigquery:"target_bases"`
	KeepingBases bigquery.NullFloat64 `bigquery:"keeping_bases"`
	Source       bigquery.NullString  `bigquery:"source"`
}

// BigQueryRows converts the table into rows sorted by sample.
func BigQueryRows(table filtlong.SampleTable) []*BigQueryRow {
	out := make([]*BigQueryRow, 0, len(table))
	for _, id := range table.SampleIDs() {
		rec := table[id]
		out = append(out, &BigQueryRow{
			SampleID:     id,
			TargetBases:  rec.TargetBases,
			KeepingBases: bigquery.NullFloat64{Float64: rec.KeepingBases.Float64, Valid: rec.KeepingBases.Valid},
			Source:       bigquery.NullString{StringVal: rec.Source, Valid: rec.Source != ""},
		})
	}

	return out
}

// WrappedBigQuery bundles a client with its context and destination.
type WrappedBigQuery struct {
	Context context.Context
	Client  *bigquery.Client
	Project string
	Dataset string
	Table   string
}

// EnsureBigQueryTable creates the destination table with the BigQueryRow
// schema if it does not exist yet.
func EnsureBigQueryTable(BQ *WrappedBigQuery) error {
	tbl := BQ.Client.Dataset(BQ.Dataset).Table(BQ.Table)

	_, err := tbl.Metadata(BQ.Context)
	if err == nil {
		return nil
	}

	var apiErr *googleapi.Error
	if !errors.As(err, &apiErr) || apiErr.Code != http.StatusNotFound {
		return pfx.Err(err)
	}

	schema, err := bigquery.InferSchema(BigQueryRow{})
	if err != nil {
		return pfx.Err(err)
	}

	log.Printf("Creating BigQuery table %s.%s.%s\n", BQ.Project, BQ.Dataset, BQ.Table)
	if err := tbl.Create(BQ.Context, &bigquery.TableMetadata{Schema: schema}); err != nil {
		return pfx.Err(err)
	}

	return nil
}

// ExportBigQuery streams rows into the destination table, creating it first if
// needed.
func ExportBigQuery(BQ *WrappedBigQuery, rows []*BigQueryRow) error {
	if len(rows) == 0 {
		return nil
	}

	if err := EnsureBigQueryTable(BQ); err != nil {
		return err
	}

	inserter := BQ.Client.Dataset(BQ.Dataset).Table(BQ.Table).Inserter()
	if err := inserter.Put(BQ.Context, rows); err != nil {
		return pfx.Err(err)
	}

	return nil
}
