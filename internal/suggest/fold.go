package suggest

import (
	"strings"
	"unicode"
)

// Fold lowercases s and drops '_', '-' and ' '.
func Fold(s string) string {
	var b strings.Builder

	b.Grow(len(s))

	for _, r := range s {
		if r == '_' || r == '-' || r == ' ' {
			continue
		}

		b.WriteRune(unicode.ToLower(r))
	}

	return b.String()
}
