package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSplitLines(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want []string
	}{
		{"empty", "", nil},
		{"single terminated", "a\n", []string{"a\n"}},
		{"single unterminated", "a", []string{"a"}},
		{"trailing fragment", "a\nb", []string{"a\n", "b"}},
		{"blank lines", "\n\n", []string{"\n", "\n"}},
		{"crlf", "a\r\nb\r\n", []string{"a\r\n", "b\r\n"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SplitLines([]byte(tt.in))
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.in, string(JoinLines(got)))
		})
	}
}
