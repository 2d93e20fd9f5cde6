package common

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLowerFirst(t *testing.T) {
	assert.Equal(t, "name", LowerFirst("Name"))
	assert.Equal(t, "uRL", LowerFirst("URL"))
	assert.Equal(t, "x", LowerFirst("x"))
	assert.Empty(t, LowerFirst(""))
}

func TestSnakeCase(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"Point", "point"},
		{"OrderItem", "order_item"},
		{"HTTPServer", "http_server"},
		{"UserID", "user_id"},
		{"V2Config", "v2_config"},
		{"a", "a"},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, SnakeCase(tt.input))
		})
	}
}
