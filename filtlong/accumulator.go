package filtlong

import (
	"bufio"
	"errors"
	"io"
	"log"

	"github.com/carbocation/pfx"
)

type DiagnosticKind byte

const (
	// DuplicateSample is emitted when a target line arrives for a sample
	// that already has a record. The record is replaced, not merged.
	DuplicateSample DiagnosticKind = iota + 1
)

// Diagnostic is an informational event raised while accumulating. It never
// stops processing.
type Diagnostic struct {
	Kind     DiagnosticKind
	SampleID string
	Source   string
}

func (d Diagnostic) String() string {
	switch d.Kind {
	case DuplicateSample:
		return "Duplicate sample name found! Overwriting: " + d.SampleID
	}

	return "Unknown diagnostic for " + d.SampleID
}

// LogDiagnostic is the default sink. It writes through the standard logger.
func LogDiagnostic(d Diagnostic) {
	log.Println(d)
}

// Accumulator drives Classify over each sample's log and builds up a
// SampleTable. It is not safe for concurrent use with the same table.
type Accumulator struct {
	Diagnostics func(Diagnostic)
}

// NewAccumulator returns an Accumulator that reports to sink, or to
// LogDiagnostic if sink is nil.
func NewAccumulator(sink func(Diagnostic)) *Accumulator {
	if sink == nil {
		sink = LogDiagnostic
	}

	return &Accumulator{Diagnostics: sink}
}

// Process reads lines for one sample into table.
func (a *Accumulator) Process(sampleID string, lines []string, table SampleTable) error {
	return a.ProcessSource(sampleID, "", lines, table)
}

// ProcessSource is Process, additionally recording the path of the log that
// produced the sample's record.
//
// If a marker line cannot be parsed, processing of this sample stops, the
// sample's entry is put back the way it was before the call, and an
// *ExtractionError is returned. Entries for other samples are never touched.
func (a *Accumulator) ProcessSource(sampleID, source string, lines []string, table SampleTable) error {
	prior, hadPrior := table[sampleID]
	if hadPrior {
		snapshot := *prior
		prior = &snapshot
	}

	for i, line := range lines {
		marker, err := Classify(line)
		if _, exists := table[sampleID]; err != nil && marker.Kind != TargetMarker && !exists {
			// A keeping line with nothing to attach to is dropped whether or
			// not its value parses.
			continue
		}
		if err != nil {
			if hadPrior {
				table[sampleID] = prior
			} else {
				delete(table, sampleID)
			}
			return annotate(err, sampleID, source, i+1)
		}

		a.apply(sampleID, source, marker, table)
	}

	return nil
}

// ProcessReader is ProcessSource for a log that has not been split into lines
// yet. Line terminators are removed before classification.
func (a *Accumulator) ProcessReader(sampleID, source string, r io.Reader, table SampleTable) error {
	lines, err := ReadLines(r)
	if err != nil {
		return pfx.Err(err)
	}

	return a.ProcessSource(sampleID, source, lines, table)
}

func (a *Accumulator) apply(sampleID, source string, marker Marker, table SampleTable) {
	switch marker.Kind {
	case TargetMarker:
		if _, exists := table[sampleID]; exists {
			a.emit(Diagnostic{Kind: DuplicateSample, SampleID: sampleID, Source: source})
		}
		table[sampleID] = &MetricsRecord{TargetBases: marker.Value, Source: source}

	case KeepingMarker, FallbackMarker:
		// Without a preceding target line the log is a fragment; drop it.
		rec, exists := table[sampleID]
		if !exists {
			return
		}
		rec.KeepingBases.SetValid(marker.Value)
	}
}

func (a *Accumulator) emit(d Diagnostic) {
	if a.Diagnostics == nil {
		LogDiagnostic(d)
		return
	}
	a.Diagnostics(d)
}

func annotate(err error, sampleID, source string, lineNumber int) error {
	var ee *ExtractionError
	if !errors.As(err, &ee) {
		return err
	}

	out := *ee
	out.SampleID = sampleID
	out.Source = source
	out.LineNumber = lineNumber

	return &out
}

// ReadLines splits r into lines without their "\n" or "\r\n" terminators.
func ReadLines(r io.Reader) ([]string, error) {
	lines := make([]string, 0)

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
	}

	return lines, scanner.Err()
}
