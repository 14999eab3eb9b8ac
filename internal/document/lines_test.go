package document

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSplitJoinRoundTrip(t *testing.T) {
	tests := []struct {
		name    string
		content string
		lines   []string
		format  Format
	}{
		{"empty", "", nil, DefaultFormat},
		{"single no newline", "a", []string{"a"}, Format{EOL: "\n"}},
		{"final newline", "a\nb\n", []string{"a", "b"}, Format{EOL: "\n", FinalNewline: true}},
		{"no final newline", "a\nb", []string{"a", "b"}, Format{EOL: "\n"}},
		{"blank line only", "\n", []string{""}, Format{EOL: "\n", FinalNewline: true}},
		{"trailing blank line", "a\n\n", []string{"a", ""}, Format{EOL: "\n", FinalNewline: true}},
		{"crlf", "a\r\nb\r\n", []string{"a", "b"}, Format{EOL: "\r\n", FinalNewline: true}},
		{"mixed keeps carriage returns", "a\r\nb\n", []string{"a\r", "b"}, Format{EOL: "\n", FinalNewline: true}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lines, f := SplitLines(tt.content)
			assert.Equal(t, tt.lines, lines)
			assert.Equal(t, tt.format, f)
			assert.Equal(t, tt.content, JoinLines(lines, f))
		})
	}
}
