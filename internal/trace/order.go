package trace

import "github.com/maruel/natural"

// SortFiles orders a list of source file names in natural (human)
// order — "file2" before "file10" — for presenting multi-document
// manifest output or diagnostics listings. This is presentation only:
// it never affects the spec-mandated lexicographic field iteration
// order used during evaluation and manifestation.
func SortFiles(names []string) {
	natural.Sort(names)
}
