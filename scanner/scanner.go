// Package scanner provides string- and comment-aware byte scanning for the
// curly preprocessor. It tracks double-quoted and single-quoted string
// literals and backslash escapes so that '#' only opens a line comment
// outside a string. Callers check InComment() instead of keeping their own
// flags.
package scanner

// closingKind tracks which type of string delimiter was just closed.
type closingKind byte

const (
	noClosing     closingKind = iota
	closingDouble             // just closed a "..." string
	closingSingle             // just closed a '...' string
)

// CodeScanner iterates byte-by-byte over source text.
//
// InComment() returns true from the '#' up to, but not including, the
// newline that ends the comment.
//
// Strings never span lines: a newline inside a string literal ends the
// string state. Reporting the unterminated literal is left to the lexer.
type CodeScanner struct {
	src     string
	pos     int
	inDbl   bool
	inSgl   bool
	inCmt   bool
	escaped bool
	closing closingKind // set when a closing delimiter is processed
}

// New creates a CodeScanner for the given source text.
// Call Next() to advance to the first byte.
func New(src string) *CodeScanner {
	return &CodeScanner{src: src, pos: -1}
}

// Next advances to the next byte, updating string/comment/escape state.
// Returns the byte and true, or (0, false) at end of input.
func (s *CodeScanner) Next() (byte, bool) {
	s.closing = noClosing
	s.pos++
	if s.pos >= len(s.src) {
		return 0, false
	}
	ch := s.src[s.pos]
	if ch == '\n' {
		s.inDbl, s.inSgl, s.inCmt, s.escaped = false, false, false, false
		return ch, true
	}
	if s.inCmt {
		return ch, true
	}

	if s.escaped {
		s.escaped = false
		return ch, true
	}
	if ch == '\\' && (s.inDbl || s.inSgl) {
		s.escaped = true
		return ch, true
	}
	switch {
	case ch == '"' && !s.inSgl:
		if s.inDbl {
			s.closing = closingDouble
		}
		s.inDbl = !s.inDbl
	case ch == '\'' && !s.inDbl:
		if s.inSgl {
			s.closing = closingSingle
		}
		s.inSgl = !s.inSgl
	case ch == '#' && !s.inDbl && !s.inSgl:
		s.inCmt = true
	}

	return ch, true
}

// inString reports whether the current position is inside a string literal,
// including both opening and closing delimiters.
func (s *CodeScanner) inString() bool {
	return s.inDbl || s.inSgl || s.closing != noClosing
}

// InComment reports whether the current byte belongs to a line comment.
func (s *CodeScanner) InComment() bool { return s.inCmt }
