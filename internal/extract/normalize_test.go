package extract

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeLines(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want []string
	}{
		{"empty", "", []string{}},
		{"blank lines dropped", "\n\n  \n", []string{}},
		{"trims and preserves order", "  a \r\n\n b\nc  ", []string{"a", "b", "c"}},
		{"single line", "hello", []string{"hello"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NormalizeLines(tt.raw))
		})
	}
}

func TestCollapseSpaces(t *testing.T) {
	assert.Equal(t, "a b c", collapseSpaces("  a\t b \n c "))
	assert.Equal(t, "", collapseSpaces("   "))
}
