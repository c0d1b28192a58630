package filtlong

import (
	"errors"
	"strconv"
	"testing"
)

func TestClassify(t *testing.T) {
	for _, v := range []struct {
		Line  string
		Kind  MarkerKind
		Value float64
	}{
		{"target: 500000000 bases", TargetMarker, 500000000},
		{"  target: 500000000 bases", TargetMarker, 500000000},
		{"\ttarget: 1.5e9 bases", TargetMarker, 1.5e9},
		{"keeping 450000000 bases", KeepingMarker, 450000000},
		{"  keeping 12 bases", KeepingMarker, 12},
		{"  all reads fall below min length", FallbackMarker, 0},
		{"Scoring long reads", NoMatch, 0},
		{"", NoMatch, 0},
		{"Keeping 450000000 bases", NoMatch, 0},

		// Precedence: target beats keeping beats fall below
		{"target: 10 keeping 20", TargetMarker, 10},
		{"keeping 30 reads that fall below", KeepingMarker, 30},
	} {
		m, err := Classify(v.Line)
		if err != nil {
			t.Fatalf("%q: unexpected error: %v", v.Line, err)
		}
		if m.Kind != v.Kind || m.Value != v.Value {
			t.Errorf("%q: got %s(%v), expected %s(%v)", v.Line, m.Kind, m.Value, v.Kind, v.Value)
		}
	}
}

func TestClassifyMalformed(t *testing.T) {
	for _, v := range []struct {
		Line string
		Kind MarkerKind
	}{
		{"target: lots bases", TargetMarker},
		{"target:", TargetMarker},
		{"keeping some bases", KeepingMarker},
		{"target:  500 bases", TargetMarker}, // second token is empty
	} {
		m, err := Classify(v.Line)
		if err == nil {
			t.Fatalf("%q: expected an error", v.Line)
		}

		var ee *ExtractionError
		if !errors.As(err, &ee) {
			t.Fatalf("%q: expected *ExtractionError, got %T", v.Line, err)
		}
		if ee.Text != v.Line {
			t.Errorf("%q: error carries text %q", v.Line, ee.Text)
		}
		if m.Kind != v.Kind {
			t.Errorf("%q: got kind %s, expected %s", v.Line, m.Kind, v.Kind)
		}
	}

	_, err := Classify("keeping many bases")
	if !errors.Is(err, strconv.ErrSyntax) {
		t.Errorf("expected the strconv error to be wrapped, got %v", err)
	}
}
