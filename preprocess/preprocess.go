// Package preprocess holds the text passes that run before lexing.
package preprocess

import (
	"strings"

	"github.com/rubiojr/curly/scanner"
)

// StripComments removes # comments from source, respecting string
// boundaries. Newlines are always copied through, so line numbers in the
// stripped text match the input.
func StripComments(src string) string {
	var sb strings.Builder
	sb.Grow(len(src))
	sc := scanner.New(src)
	for ch, ok := sc.Next(); ok; ch, ok = sc.Next() {
		if sc.InComment() {
			continue
		}
		sb.WriteByte(ch)
	}
	return sb.String()
}

// NormalizeNewlines rewrites CRLF and lone CR line endings to LF.
func NormalizeNewlines(src string) string {
	if !strings.Contains(src, "\r") {
		return src
	}
	src = strings.ReplaceAll(src, "\r\n", "\n")
	return strings.ReplaceAll(src, "\r", "\n")
}

// Clean runs every pre-lexing pass in order.
func Clean(src string) string {
	return StripComments(NormalizeNewlines(src))
}
