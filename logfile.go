// Package filtlongqc opens tool logs from local disk or Google Storage,
// decompressing them as needed, and derives sample names from their paths.
package filtlongqc

import (
	"bufio"
	"context"
	"io"

	"cloud.google.com/go/storage"
	"github.com/carbocation/pfx"
)

// LogFile reads a tool log line by line. The log may live on local disk or in
// Google Storage and may be compressed.
type LogFile struct {
	path    string
	rc      io.ReadCloser
	scanner *bufio.Scanner
	line    string
}

// OpenLog opens path for line-by-line reading. client may be nil when path is
// local.
func OpenLog(ctx context.Context, path string, client *storage.Client) (*LogFile, error) {
	f, _, err := MaybeOpenSeekerFromGoogleStorage(ctx, path, client)
	if err != nil {
		return nil, pfx.Err(err)
	}

	rc, err := MaybeDecompress(f)
	if err != nil {
		f.Close()
		return nil, pfx.Err(err)
	}

	scanner := bufio.NewScanner(rc)
	scanner.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)

	return &LogFile{
		path:    path,
		rc:      rc,
		scanner: scanner,
	}, nil
}

func (l *LogFile) Path() string {
	return l.path
}

func (l *LogFile) Close() error {
	return l.rc.Close()
}

// Scan advances to the next line, returning false at the end of the log or on
// error.
func (l *LogFile) Scan() bool {
	if !l.scanner.Scan() {
		return false
	}
	l.line = l.scanner.Text()

	return true
}

// Text returns the line most recently read by Scan, without its terminator.
func (l *LogFile) Text() string {
	return l.line
}

func (l *LogFile) Err() error {
	return l.scanner.Err()
}

// ReadLogLines opens path and returns all of its lines.
func ReadLogLines(ctx context.Context, path string, client *storage.Client) ([]string, error) {
	lf, err := OpenLog(ctx, path, client)
	if err != nil {
		return nil, err
	}
	defer lf.Close()

	lines := make([]string, 0)
	for lf.Scan() {
		lines = append(lines, lf.Text())
	}

	if err := lf.Err(); err != nil {
		return nil, pfx.Err(err)
	}

	return lines, nil
}

// HeadLines returns up to n lines from the start of path.
func HeadLines(ctx context.Context, path string, client *storage.Client, n int) ([]string, error) {
	lf, err := OpenLog(ctx, path, client)
	if err != nil {
		return nil, err
	}
	defer lf.Close()

	lines := make([]string, 0, n)
	for len(lines) < n && lf.Scan() {
		lines = append(lines, lf.Text())
	}

	if err := lf.Err(); err != nil {
		return nil, pfx.Err(err)
	}

	return lines, nil
}
