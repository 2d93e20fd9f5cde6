package suggest

// Distance returns the Levenshtein edit distance between a and b: the number
// of single-byte insertions, deletions or substitutions turning one into the
// other.
func Distance(a, b string) int {
	if a == b {
		return 0
	}

	if len(a) > len(b) {
		a, b = b, a
	}

	if len(a) == 0 {
		return len(b)
	}

	// Two rows over the shorter string.
	prev := make([]int, len(a)+1)
	curr := make([]int, len(a)+1)

	for i := range prev {
		prev[i] = i
	}

	for j := 1; j <= len(b); j++ {
		curr[0] = j

		for i := 1; i <= len(a); i++ {
			cost := 1
			if a[i-1] == b[j-1] {
				cost = 0
			}

			curr[i] = min(prev[i]+1, curr[i-1]+1, prev[i-1]+cost)
		}

		prev, curr = curr, prev
	}

	return prev[len(a)]
}

// Similarity maps the distance of the folded names into [0, 1], where 1
// means equal after folding.
func Similarity(a, b string) float64 {
	fa, fb := Fold(a), Fold(b)
	if fa == "" && fb == "" {
		return 1
	}

	return 1 - float64(Distance(fa, fb))/float64(max(len(fa), len(fb)))
}
