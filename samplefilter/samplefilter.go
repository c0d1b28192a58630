// Package samplefilter removes samples from a table by name.
package samplefilter

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path"
	"sort"
	"strings"

	"github.com/carbocation/filtlongqc"
	"github.com/carbocation/filtlongqc/filtlong"
	"github.com/carbocation/pfx"
)

// Filter ignores samples whose names match any of its shell glob patterns.
type Filter struct {
	patterns []string
}

// New validates the patterns and returns a Filter. Empty patterns are
// dropped.
func New(patterns ...string) (*Filter, error) {
	f := &Filter{}
	for _, p := range patterns {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		if _, err := path.Match(p, ""); err != nil {
			return nil, fmt.Errorf("invalid sample pattern %q: %w", p, err)
		}
		f.patterns = append(f.patterns, p)
	}

	return f, nil
}

func (f *Filter) Patterns() []string {
	return append([]string(nil), f.patterns...)
}

// Ignore reports whether sampleID matches any pattern.
func (f *Filter) Ignore(sampleID string) bool {
	for _, p := range f.patterns {
		if ok, _ := path.Match(p, sampleID); ok {
			return true
		}
	}

	return false
}

// Apply deletes ignored samples from table and returns their IDs, sorted.
func (f *Filter) Apply(table filtlong.SampleTable) []string {
	removed := make([]string, 0)
	for id := range table {
		if f.Ignore(id) {
			removed = append(removed, id)
		}
	}
	sort.Strings(removed)

	table.Remove(removed...)

	return removed
}

// ReadPatternsFile reads one pattern per row from the first column of a
// delimited file. Lines starting with # are comments.
func ReadPatternsFile(fileName string) ([]string, error) {
	data, err := os.ReadFile(fileName)
	if err != nil {
		return nil, pfx.Err(err)
	}

	cr := csv.NewReader(bytes.NewReader(data))
	cr.Comma = filtlongqc.DetermineDelimiter(data)
	cr.Comment = '#'
	cr.FieldsPerRecord = -1

	patterns := make([]string, 0)
	for {
		cols, err := cr.Read()
		if err == io.EOF {
			break
		} else if err != nil {
			return nil, pfx.Err(err)
		}

		if len(cols) < 1 || strings.TrimSpace(cols[0]) == "" {
			continue
		}
		patterns = append(patterns, strings.TrimSpace(cols[0]))
	}

	return patterns, nil
}
