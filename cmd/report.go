package cmd

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"

	"github.com/rubiojr/curly/ast"
	"github.com/rubiojr/curly/compiler"
	"github.com/rubiojr/curly/lexer"
	"github.com/rubiojr/curly/parser"
)

const (
	colorRed    = "\033[31m"
	colorYellow = "\033[33m"
	colorCyan   = "\033[36m"
	colorDim    = "\033[2m"
	colorReset  = "\033[0m"
)

// reporter prints diagnostics as "file:line: severity: message" rows.
type reporter struct {
	w     io.Writer
	file  string
	color bool
}

// newReporter colors output only when w is a terminal, NO_COLOR is unset
// and noColor is false.
func newReporter(w io.Writer, file string, noColor bool) *reporter {
	return &reporter{w: w, file: file, color: !noColor && colorOK(w)}
}

func colorOK(w io.Writer) bool {
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

func (r *reporter) paint(code, s string) string {
	if !r.color {
		return s
	}
	return code + s + colorReset
}

func (r *reporter) diagnostic(d compiler.Diagnostic) {
	loc := r.file
	if d.Line > 0 {
		loc = fmt.Sprintf("%s:%d", r.file, d.Line)
	}
	sev := d.Severity.String()
	switch d.Severity {
	case ast.SeverityError:
		sev = r.paint(colorRed, sev)
	case ast.SeverityWarning:
		sev = r.paint(colorYellow, sev)
	default:
		sev = r.paint(colorCyan, sev)
	}
	fmt.Fprintf(r.w, "%s: %s: %s\n", loc, sev, d.Message)
}

func (r *reporter) diagnostics(diags []compiler.Diagnostic) {
	for _, d := range diags {
		r.diagnostic(d)
	}
}

// fatal reports a lexical or syntax error as a single error diagnostic.
func (r *reporter) fatal(err error) {
	r.diagnostic(fatalDiagnostic(err))
}

func fatalDiagnostic(err error) compiler.Diagnostic {
	line := 0
	var le *lexer.LexicalError
	var se *parser.SyntaxError
	switch {
	case errors.As(err, &le):
		line = le.Line
	case errors.As(err, &se):
		line = se.Line
	}
	msg := err.Error()
	if line > 0 {
		msg = strings.TrimPrefix(msg, fmt.Sprintf("line %d: ", line))
	}
	return compiler.Diagnostic{Severity: ast.SeverityError, Message: msg, Line: line}
}

func isFatal(err error) bool {
	var le *lexer.LexicalError
	var se *parser.SyntaxError
	return errors.As(err, &le) || errors.As(err, &se)
}

// stages prints per-stage timings and sizes.
func (r *reporter) stages(res *compiler.Result) {
	for _, s := range res.Stages {
		fmt.Fprintf(r.w, "%s\n", r.paint(colorDim, fmt.Sprintf("%-9s %v", s.Name, s.Elapsed)))
	}
	fmt.Fprintf(r.w, "%s\n", r.paint(colorDim, fmt.Sprintf("tokens: %d, nodes: %d", len(res.Tokens), res.NodeCount())))
	if res.Consumed != nil {
		fmt.Fprintf(r.w, "%s\n", r.paint(colorDim, fmt.Sprintf("parsed %d tokens before failing", len(res.Consumed))))
	}
}
