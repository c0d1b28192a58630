// Package filtlong recognizes the metric lines that Filtlong prints and
// accumulates them into a per-sample table.
package filtlong

import (
	"strconv"
	"strings"
	"unicode"
)

// Substrings that identify the lines of a Filtlong log that carry metrics.
// These are matched verbatim against the tool's output.
const (
	TargetText   = "target:"
	KeepingText  = "keeping"
	FallbackText = "fall below"
)

type MarkerKind byte

const (
	NoMatch MarkerKind = iota
	TargetMarker
	KeepingMarker
	FallbackMarker
)

func (k MarkerKind) String() string {
	switch k {
	case TargetMarker:
		return "target"
	case KeepingMarker:
		return "keeping"
	case FallbackMarker:
		return "fallback"
	}

	return "none"
}

// Marker is the classification of one line. Value is only meaningful for
// TargetMarker and KeepingMarker; FallbackMarker always carries 0.
type Marker struct {
	Kind  MarkerKind
	Value float64
}

// Classify decides which marker, if any, a line of Filtlong output
// represents. "target:" is tested first, then "keeping", then "fall below".
// For target and keeping lines the value is the second space-delimited token
// after the line is left-trimmed. A token that is missing or does not parse
// as a float yields an *ExtractionError; the returned Marker still carries
// the Kind that matched.
func Classify(line string) (Marker, error) {
	switch {
	case strings.Contains(line, TargetText):
		v, err := secondToken(line)
		return Marker{Kind: TargetMarker, Value: v}, err
	case strings.Contains(line, KeepingText):
		v, err := secondToken(line)
		return Marker{Kind: KeepingMarker, Value: v}, err
	case strings.Contains(line, FallbackText):
		return Marker{Kind: FallbackMarker, Value: 0}, nil
	}

	return Marker{Kind: NoMatch}, nil
}

func secondToken(line string) (float64, error) {
	cols := strings.Split(strings.TrimLeftFunc(line, unicode.IsSpace), " ")
	if len(cols) < 2 {
		return 0, &ExtractionError{Text: line, Err: errMissingValue}
	}

	v, err := strconv.ParseFloat(strings.TrimSpace(cols[1]), 64)
	if err != nil {
		return 0, &ExtractionError{Text: line, Err: err}
	}

	return v, nil
}
