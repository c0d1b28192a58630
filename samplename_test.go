package filtlongqc

import "testing"

func TestCleanSampleName(t *testing.T) {
	for _, v := range []struct {
		Path     string
		Expected string
	}{
		{"sample1.log", "sample1"},
		{"/data/runs/sample1.log", "sample1"},
		{"gs://bucket/logs/sample2.filtlong.log.gz", "sample2.filtlong"},
		{"logs/sample3_filtlong.txt", "sample3"},
		{"noext", "noext"},
		{".log", ".log"},
	} {
		if got := CleanSampleName(v.Path, nil); got != v.Expected {
			t.Errorf("%s: got %q, expected %q", v.Path, got, v.Expected)
		}
	}

	if got := CleanSampleName("a.stats.log", []string{".stats"}); got != "a" {
		t.Errorf("custom extensions: got %q", got)
	}
}
