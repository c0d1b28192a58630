package filtlong

import (
	"errors"
	"fmt"
)

// ErrNoReports is returned when no sample produced a record. Callers treat
// it as fatal for the run.
var ErrNoReports = errors.New("no reports found")

var errMissingValue = errors.New("no value follows the marker")

// ExtractionError reports a marker line whose value could not be read. It is
// scoped to one sample: the rest of the batch is unaffected.
type ExtractionError struct {
	SampleID   string
	Source     string
	LineNumber int // 1-based; 0 when the error came straight from Classify
	Text       string
	Err        error
}

func (e *ExtractionError) Error() string {
	where := e.SampleID
	if e.Source != "" {
		where = fmt.Sprintf("%s (%s)", e.SampleID, e.Source)
	}
	if where == "" {
		return fmt.Sprintf("extracting value from %q: %v", e.Text, e.Err)
	}

	return fmt.Sprintf("%s: line %d: extracting value from %q: %v", where, e.LineNumber, e.Text, e.Err)
}

func (e *ExtractionError) Unwrap() error {
	return e.Err
}

// CheckNotEmpty returns ErrNoReports if the table holds no samples.
func CheckNotEmpty(table SampleTable) error {
	if len(table) == 0 {
		return ErrNoReports
	}

	return nil
}
