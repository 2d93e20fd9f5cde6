package suggest

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDistance(t *testing.T) {
	tests := []struct {
		a, b string
		want int
	}{
		{"", "", 0},
		{"", "abc", 3},
		{"abc", "", 3},
		{"a", "b", 1},
		{"ab", "abc", 1},
		{"kitten", "sitting", 3},
		{"saturday", "sunday", 3},
		{"Hello", "hello", 1},
		{"contructor", "constructor", 1},
	}

	for _, tt := range tests {
		t.Run(tt.a+"_"+tt.b, func(t *testing.T) {
			assert.Equal(t, tt.want, Distance(tt.a, tt.b))
			assert.Equal(t, tt.want, Distance(tt.b, tt.a), "symmetric")
		})
	}
}

func TestFold(t *testing.T) {
	assert.Equal(t, "jsonname", Fold("JSON_Name"))
	assert.Equal(t, "jsonname", Fold("json-name"))
	assert.Equal(t, "", Fold("_ -"))
}

func TestSimilarity(t *testing.T) {
	assert.InDelta(t, 1.0, Similarity("", ""), 0.001)
	assert.InDelta(t, 1.0, Similarity("Full_Name", "fullName"), 0.001)
	assert.InDelta(t, 0.5, Similarity("abcd", "abxy"), 0.001)
	assert.InDelta(t, 0.0, Similarity("abc", "xyz"), 0.001)
}

func TestClosest(t *testing.T) {
	verbs := []string{"value", "constructor", "builder", "name", "token", "param"}

	best, ok := Closest("contructor", verbs)
	assert.True(t, ok)
	assert.Equal(t, "constructor", best)

	best, ok = Closest("nam", verbs)
	assert.True(t, ok)
	assert.Equal(t, "name", best)

	_, ok = Closest("zzz", verbs)
	assert.False(t, ok)

	_, ok = Closest("name", verbs)
	assert.False(t, ok, "exact match is not a suggestion")

	_, ok = Closest("x", nil)
	assert.False(t, ok)
}

func TestClosest_TieKeepsFirst(t *testing.T) {
	best, ok := Closest("ab", []string{"abc", "abd"})
	assert.True(t, ok)
	assert.Equal(t, "abc", best)
}

func TestHint(t *testing.T) {
	assert.Equal(t, "; did you mean radius?", Hint("radus", []string{"center", "radius"}))
	assert.Empty(t, Hint("weight", []string{"center", "radius"}))
}
