package compiler

import (
	"fmt"
	"strings"
)

// pyWriter manages indented output for the code generator.
type pyWriter struct {
	sb     strings.Builder
	indent int
	unit   string // one indentation level
}

func newPyWriter(width int) *pyWriter {
	if width <= 0 {
		width = DefaultIndentWidth
	}
	return &pyWriter{unit: strings.Repeat(" ", width)}
}

// Prefix writes the indentation of the current level.
func (w *pyWriter) Prefix() {
	w.sb.WriteString(strings.Repeat(w.unit, w.indent))
}

// Linef writes an indented, formatted line with a trailing newline.
func (w *pyWriter) Linef(format string, args ...any) {
	w.Prefix()
	fmt.Fprintf(&w.sb, format, args...)
	w.sb.WriteByte('\n')
}

// Raw writes text without indentation.
func (w *pyWriter) Raw(s string) { w.sb.WriteString(s) }

// Indent increases the indentation level.
func (w *pyWriter) Indent() { w.indent++ }

// Dedent decreases the indentation level.
func (w *pyWriter) Dedent() { w.indent-- }

// Len returns the number of bytes written so far.
func (w *pyWriter) Len() int { return w.sb.Len() }

// String returns the accumulated output.
func (w *pyWriter) String() string { return w.sb.String() }
