package filtlongqc

import (
	"path"
	"strings"
)

// DefaultCleanExtensions are cut from file names to derive sample names.
var DefaultCleanExtensions = []string{
	".gz",
	".bz2",
	".xz",
	".zip",
	".fastq",
	".fq",
	".log",
	".txt",
	".out",
	".err",
	".stderr",
	"_filtlong",
}

// CleanSampleName derives a sample name from a local or gs:// path. The name
// is the base name, truncated at the first occurrence of any of exts. If exts
// is nil, DefaultCleanExtensions is used.
func CleanSampleName(filePath string, exts []string) string {
	if exts == nil {
		exts = DefaultCleanExtensions
	}

	name := path.Base(strings.ReplaceAll(filePath, "\\", "/"))
	for _, ext := range exts {
		if ext == "" {
			continue
		}
		if i := strings.Index(name, ext); i > 0 {
			name = name[:i]
		}
	}

	return strings.TrimSpace(name)
}
