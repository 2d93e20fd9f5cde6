package suggest

import "fmt"

// MinSimilarity is the lowest score Closest accepts.
const MinSimilarity = 0.6

// Closest returns the candidate most similar to name. Ties keep the earlier
// candidate. ok is false when no candidate reaches MinSimilarity or when name
// itself is a candidate.
func Closest(name string, candidates []string) (best string, ok bool) {
	bestScore := MinSimilarity

	for _, c := range candidates {
		if c == name {
			return "", false
		}

		if s := Similarity(name, c); s >= bestScore && (!ok || s > bestScore) {
			best, bestScore, ok = c, s, true
		}
	}

	return best, ok
}

// Hint returns "; did you mean X?" for the closest candidate, or "".
func Hint(name string, candidates []string) string {
	if best, ok := Closest(name, candidates); ok {
		return fmt.Sprintf("; did you mean %s?", best)
	}

	return ""
}
