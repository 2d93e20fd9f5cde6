package common

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// UnknownStr is the String() value of out-of-range enum values.
const UnknownStr = "unknown"

// LowerFirst returns s with its first rune lower-cased.
func LowerFirst(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}

	return string(unicode.ToLower(r)) + s[size:]
}

// SnakeCase converts a CamelCase identifier to snake_case.
// Runs of upper-case letters are kept together: "HTTPServer" -> "http_server".
func SnakeCase(s string) string {
	runes := []rune(s)

	var sb strings.Builder

	for i, r := range runes {
		if unicode.IsUpper(r) && i > 0 {
			prevLower := unicode.IsLower(runes[i-1]) || unicode.IsDigit(runes[i-1])
			nextLower := i+1 < len(runes) && unicode.IsLower(runes[i+1])

			if prevLower || (nextLower && unicode.IsUpper(runes[i-1])) {
				sb.WriteByte('_')
			}
		}

		sb.WriteRune(unicode.ToLower(r))
	}

	return sb.String()
}
