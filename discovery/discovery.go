// Package discovery finds Filtlong logs on local disk or in Google Storage.
package discovery

import (
	"context"
	"io/fs"
	"log"
	"path/filepath"
	"sort"
	"strings"

	"cloud.google.com/go/storage"
	"github.com/carbocation/filtlongqc"
	"github.com/carbocation/pfx"
	"google.golang.org/api/iterator"
)

const (
	// DefaultContents is the text that identifies a Filtlong log.
	DefaultContents = "Scoring long reads"

	// DefaultNumLines is how far into each file to look for Contents.
	DefaultNumLines = 20
)

// Options controls which files are recognized as logs.
type Options struct {
	Contents        string
	NumLines        int
	CleanExtensions []string
}

func (o Options) withDefaults() Options {
	if o.Contents == "" {
		o.Contents = DefaultContents
	}
	if o.NumLines <= 0 {
		o.NumLines = DefaultNumLines
	}

	return o
}

// Log is one discovered log and the sample it belongs to.
type Log struct {
	SampleID string
	Path     string
}

// Find dispatches to FindGoogleStorage for gs:// paths and to FindLocal
// otherwise.
func Find(ctx context.Context, path string, client *storage.Client, opts Options) ([]Log, error) {
	if strings.HasPrefix(path, "gs://") {
		return FindGoogleStorage(ctx, path, client, opts)
	}

	return FindLocal(ctx, path, opts)
}

// FindLocal walks root, or checks root itself if it is a file, and returns the
// logs found sorted by path. Hidden directories are skipped.
func FindLocal(ctx context.Context, root string, opts Options) ([]Log, error) {
	opts = opts.withDefaults()

	candidates := make([]string, 0)
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if path != root && strings.HasPrefix(d.Name(), ".") {
				return filepath.SkipDir
			}
			return nil
		}
		if !d.Type().IsRegular() {
			return nil
		}
		candidates = append(candidates, path)
		return nil
	})
	if err != nil {
		return nil, pfx.Err(err)
	}

	return sniff(ctx, candidates, nil, opts)
}

// FindGoogleStorage lists the objects under a gs://bucket/prefix path and
// returns the logs found sorted by path.
func FindGoogleStorage(ctx context.Context, prefix string, client *storage.Client, opts Options) ([]Log, error) {
	opts = opts.withDefaults()

	if client == nil {
		return nil, pfx.Err("a storage client is required for " + prefix)
	}

	pathParts := strings.SplitN(strings.TrimPrefix(prefix, "gs://"), "/", 2)
	bucketName := pathParts[0]
	objectPrefix := ""
	if len(pathParts) == 2 {
		objectPrefix = pathParts[1]
	}

	candidates := make([]string, 0)
	it := client.Bucket(bucketName).Objects(ctx, &storage.Query{Prefix: objectPrefix})
	for {
		attrs, err := it.Next()
		if err == iterator.Done {
			break
		} else if err != nil {
			return nil, pfx.Err(err)
		}

		if strings.HasSuffix(attrs.Name, "/") {
			continue
		}
		candidates = append(candidates, "gs://"+bucketName+"/"+attrs.Name)
	}

	return sniff(ctx, candidates, client, opts)
}

func sniff(ctx context.Context, candidates []string, client *storage.Client, opts Options) ([]Log, error) {
	sort.Strings(candidates)

	out := make([]Log, 0)
	for _, path := range candidates {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		ok, err := IsLog(ctx, path, client, opts)
		if err != nil {
			log.Printf("Skipping %s: %v\n", path, err)
			continue
		}
		if !ok {
			continue
		}

		out = append(out, Log{
			SampleID: filtlongqc.CleanSampleName(path, opts.CleanExtensions),
			Path:     path,
		})
	}

	return out, nil
}

// IsLog reports whether one of the first opts.NumLines lines of path contains
// opts.Contents.
func IsLog(ctx context.Context, path string, client *storage.Client, opts Options) (bool, error) {
	opts = opts.withDefaults()

	lines, err := filtlongqc.HeadLines(ctx, path, client, opts.NumLines)
	if err != nil {
		return false, err
	}

	for _, line := range lines {
		if strings.Contains(line, opts.Contents) {
			return true, nil
		}
	}

	return false, nil
}
