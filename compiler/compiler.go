package compiler

import (
	"fmt"
	"os"
	"time"

	"github.com/rubiojr/curly/ast"
	"github.com/rubiojr/curly/lexer"
	"github.com/rubiojr/curly/parser"
	"github.com/rubiojr/curly/preprocess"
)

// Diagnostic is a line-tagged advisory message.
type Diagnostic = ast.Diagnostic

// Options configures a translation.
type Options struct {
	// IndentWidth is the number of spaces per nesting level (default 4).
	IndentWidth int
	// KeepStripped, when set, is the path TranslateFile writes the
	// comment-stripped source to.
	KeepStripped string
}

// Stage records how long one pipeline stage took.
type Stage struct {
	Name    string
	Elapsed time.Duration
}

// Result holds everything one translation produced. On a fatal error the
// stages that completed still fill in their fields.
type Result struct {
	SourceFile  string
	Stripped    string
	Tokens      []lexer.Token
	Tree        *ast.Tree
	Output      string
	Diagnostics []Diagnostic
	Stages      []Stage
	// Consumed holds the tokens the parser accepted before a syntax error.
	Consumed []lexer.Token
}

// NodeCount returns the number of nodes in the tree, or 0 without one.
func (r *Result) NodeCount() int {
	if r.Tree == nil {
		return 0
	}
	n := 0
	ast.Inspect(r.Tree, func(ast.Node) bool { n++; return true })
	return n
}

// Compiler orchestrates strip, scan, parse, validate and generate. A
// Compiler holds no per-run state and may be shared between goroutines.
type Compiler struct {
	Options Options
	// Checks run over every parsed tree; nil means DefaultChecks.
	Checks ast.CheckChain
}

// DefaultChecks returns the checks a translation runs by default.
func DefaultChecks() ast.CheckChain {
	return ast.CheckChain{ImportCheck()}
}

// New returns a compiler with the given options.
func New(opts Options) *Compiler {
	return &Compiler{Options: opts}
}

// Translate runs the whole pipeline over brace-form source. Lexical and
// syntax errors are returned as *lexer.LexicalError and
// *parser.SyntaxError; no output is produced for them.
func (c *Compiler) Translate(src string) (*Result, error) {
	res := &Result{}
	timed := func(name string, fn func() error) error {
		start := time.Now()
		err := fn()
		res.Stages = append(res.Stages, Stage{Name: name, Elapsed: time.Since(start)})
		return err
	}

	_ = timed("strip", func() error {
		res.Stripped = preprocess.Clean(src)
		return nil
	})

	err := timed("scan", func() error {
		toks, err := lexer.Tokenize(res.Stripped)
		res.Tokens = toks
		return err
	})
	if err != nil {
		return res, err
	}

	err = timed("parse", func() error {
		p := parser.New(res.Tokens)
		tree, err := p.ParseProgram()
		res.Tree = tree
		if err != nil {
			res.Consumed = p.Consumed()
		}
		return err
	})
	if err != nil {
		return res, err
	}

	_ = timed("check", func() error {
		checks := c.Checks
		if checks == nil {
			checks = DefaultChecks()
		}
		res.Diagnostics = checks.Run(res.Tree)
		return nil
	})

	_ = timed("generate", func() error {
		res.Output = Generate(res.Tree, c.Options.IndentWidth)
		return nil
	})
	return res, nil
}

// TranslateFile reads and translates a source file. When
// Options.KeepStripped is set the comment-stripped source is written there,
// even if translation later fails.
func (c *Compiler) TranslateFile(filename string) (*Result, error) {
	src, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", filename, err)
	}
	res, err := c.Translate(string(src))
	res.SourceFile = filename
	if c.Options.KeepStripped != "" {
		if werr := os.WriteFile(c.Options.KeepStripped, []byte(res.Stripped), 0644); werr != nil {
			return res, fmt.Errorf("writing stripped source: %w", werr)
		}
	}
	return res, err
}

// Translate translates src with default options.
func Translate(src string) (*Result, error) {
	return New(Options{}).Translate(src)
}
