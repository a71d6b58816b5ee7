package eval

// levenshtein returns the edit distance between a and b, used to build
// "did you mean" suggestions for VariableIsNotDefined and NoSuchField
// errors (jrsonnet does the same for its diagnostics).
func levenshtein(a, b string) int {
	ra, rb := []rune(a), []rune(b)
	la, lb := len(ra), len(rb)
	if la == 0 {
		return lb
	}
	if lb == 0 {
		return la
	}
	prev := make([]int, lb+1)
	cur := make([]int, lb+1)
	for j := 0; j <= lb; j++ {
		prev[j] = j
	}
	for i := 1; i <= la; i++ {
		cur[0] = i
		for j := 1; j <= lb; j++ {
			cost := 1
			if ra[i-1] == rb[j-1] {
				cost = 0
			}
			del := prev[j] + 1
			ins := cur[j-1] + 1
			sub := prev[j-1] + cost
			cur[j] = min3(del, ins, sub)
		}
		prev, cur = cur, prev
	}
	return prev[lb]
}

func min3(a, b, c int) int {
	m := a
	if b < m {
		m = b
	}
	if c < m {
		m = c
	}
	return m
}

// suggestionsFor returns candidates within an edit distance proportional
// to the query's length, closest first, capped at 3 — mirroring the
// terse single-line "did you mean" hints jrsonnet attaches to
// VariableIsNotDefined and field lookup errors.
func suggestionsFor(name string, candidates []string) []string {
	type scored struct {
		name string
		dist int
	}
	maxDist := 1 + len(name)/4
	var matches []scored
	for _, c := range candidates {
		d := levenshtein(name, c)
		if d <= maxDist && d > 0 {
			matches = append(matches, scored{c, d})
		}
	}
	for i := 1; i < len(matches); i++ {
		for j := i; j > 0 && matches[j].dist < matches[j-1].dist; j-- {
			matches[j], matches[j-1] = matches[j-1], matches[j]
		}
	}
	if len(matches) > 3 {
		matches = matches[:3]
	}
	out := make([]string, len(matches))
	for i, m := range matches {
		out[i] = m.name
	}
	return out
}
