package utils

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestToInt(t *testing.T) {
	tests := []struct {
		name string
		val  any
		want int
	}{
		{"Int", 7, 7},
		{"Float from JSON", float64(42), 42},
		{"JSON number", json.Number("13"), 13},
		{"String", "99", 99},
		{"Bytes", []byte("5"), 5},
		{"Invalid string", "abc", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ToInt(tt.val))
		})
	}
}

func TestToString(t *testing.T) {
	assert.Equal(t, "abc", ToString("abc"))
	assert.Equal(t, "3", ToString(float64(3)))
	assert.Equal(t, "12", ToString([]byte("12")))
}
