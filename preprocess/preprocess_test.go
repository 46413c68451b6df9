package preprocess

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStripComments(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		expect string
	}{
		{"no comment", `x = 1`, `x = 1`},
		{"line comment", "x = 1 # comment\n", "x = 1 \n"},
		{"full line comment", "# this is a comment\nx = 1\n", "\nx = 1\n"},
		{"comment in string", `x = "hello # world"`, `x = "hello # world"`},
		{"comment in single string", `x = 'a#b'`, `x = 'a#b'`},
		{"comment after string", "x = \"hello\" # comment\n", "x = \"hello\" \n"},
		{"quote inside comment", "# don't\nx = 'y'\n", "\nx = 'y'\n"},
		{"multiple comments", "# first\nx = 1 # second\ny = 2\n", "\nx = 1 \ny = 2\n"},
		{"comment at eof", "x = 1 # trailing", "x = 1 "},
		{"escaped quote", `s = "a\"#b"`, `s = "a\"#b"`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expect, StripComments(tt.input))
		})
	}
}

func TestStripCommentsPreservesLineCount(t *testing.T) {
	src := "import turtle # the pen\n# header\nturtle.color('red') # c\n\n# end\n"
	out := StripComments(src)
	assert.Equal(t, strings.Count(src, "\n"), strings.Count(out, "\n"))
}

func TestStripCommentsUnterminatedStringDoesNotLeak(t *testing.T) {
	// The unterminated string ends at the newline, so the comment on the
	// next line is still stripped.
	out := StripComments("x = \"abc\ny = 1 # gone\n")
	assert.Equal(t, "x = \"abc\ny = 1 \n", out)
}

func TestNormalizeNewlines(t *testing.T) {
	assert.Equal(t, "a\nb\nc", NormalizeNewlines("a\r\nb\rc"))
	assert.Equal(t, "plain\n", NormalizeNewlines("plain\n"))
}

func TestClean(t *testing.T) {
	assert.Equal(t, "x = 1 \ny\n", Clean("x = 1 # c\r\ny\r\n"))
}
