package hollow

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/gkampitakis/go-snaps/snaps"
)

// TestGoldenManifestedOutput snapshots the manifested JSON of a small
// fixture library under testdata/golden, the same golden-file discipline
// the teacher applies to its interpreter fixtures.
func TestGoldenManifestedOutput(t *testing.T) {
	files, err := filepath.Glob("testdata/golden/*.hollow")
	if err != nil {
		t.Fatal(err)
	}
	if len(files) == 0 {
		t.Fatal("no fixtures found under testdata/golden")
	}
	for _, f := range files {
		f := f
		t.Run(filepath.Base(f), func(t *testing.T) {
			code, err := os.ReadFile(f)
			if err != nil {
				t.Fatal(err)
			}
			e := New()
			v, err := e.EvaluateSnippet(f, string(code))
			if err != nil {
				t.Fatalf("EvaluateSnippet(%s): %v", f, err)
			}
			out, err := e.Manifest(v)
			if err != nil {
				t.Fatalf("Manifest(%s): %v", f, err)
			}
			snaps.MatchSnapshot(t, filepath.Base(f), out)
		})
	}
}
