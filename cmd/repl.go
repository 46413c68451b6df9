package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/peterh/liner"
	"github.com/urfave/cli/v3"
	"golang.org/x/term"

	"github.com/rubiojr/curly/compiler"
	"github.com/rubiojr/curly/lexer"
	"github.com/rubiojr/curly/parser"
	"github.com/rubiojr/curly/preprocess"
)

const (
	promptMain  = "curly> "
	promptCont  = "  ...> "
	historyFile = ".curly_history"
)

// replAction translates snippets typed at a terminal. When stdin is not a
// terminal the whole stream is translated as one program.
func (a *app) replAction(ctx context.Context, cmd *cli.Command) error {
	if !term.IsTerminal(int(os.Stdin.Fd())) {
		return a.translateStream(cmd, os.Stdin)
	}

	ln := liner.NewLiner()
	defer ln.Close()
	ln.SetCtrlCAborts(true)

	if home, err := os.UserHomeDir(); err == nil {
		histPath := filepath.Join(home, historyFile)
		if f, err := os.Open(histPath); err == nil {
			_, _ = ln.ReadHistory(f)
			_ = f.Close()
		}
		defer func() {
			if f, err := os.Create(histPath); err == nil {
				_, _ = ln.WriteHistory(f)
				_ = f.Close()
			}
		}()
	}

	fmt.Fprintln(a.stdout, "curly repl: type brace-form code, :quit to exit")
	comp := compiler.New(compiler.Options{})
	rep := a.reporter(cmd, "<repl>")
	for {
		src, ok := readSnippet(ln)
		if !ok {
			fmt.Fprintln(a.stdout)
			return nil
		}
		switch strings.TrimSpace(src) {
		case "":
			continue
		case ":quit", ":q":
			return nil
		}
		for _, line := range strings.Split(src, "\n") {
			ln.AppendHistory(line)
		}

		res, err := comp.Translate(src + "\n")
		if err != nil {
			rep.fatal(err)
			continue
		}
		rep.diagnostics(res.Diagnostics)
		fmt.Fprint(a.stdout, res.Output)
	}
}

// readSnippet reads lines until they form a complete program or a
// definite error. ok is false at end of input.
func readSnippet(ln *liner.State) (string, bool) {
	var b strings.Builder
	for {
		prompt := promptMain
		if b.Len() > 0 {
			prompt = promptCont
		}
		line, err := ln.Prompt(prompt)
		if errors.Is(err, io.EOF) {
			return "", false
		}
		if errors.Is(err, liner.ErrPromptAborted) {
			return "", true
		}
		if err != nil {
			return "", false
		}
		if b.Len() > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(line)

		if !incomplete(b.String()) {
			return b.String(), true
		}
	}
}

// incomplete reports whether src parses only up to its end and needs more
// lines.
func incomplete(src string) bool {
	toks, err := lexer.Tokenize(preprocess.Clean(src + "\n"))
	if err != nil {
		return false
	}
	_, err = parser.Parse(toks)
	return parser.IsIncomplete(err)
}

func (a *app) translateStream(cmd *cli.Command, r io.Reader) error {
	src, err := io.ReadAll(r)
	if err != nil {
		return fmt.Errorf("reading stdin: %w", err)
	}
	rep := a.reporter(cmd, "<stdin>")
	res, err := compiler.New(compiler.Options{}).Translate(string(src))
	if cmd.Bool("verbose") {
		rep.stages(res)
	}
	if err != nil {
		rep.fatal(err)
		return errFatal
	}
	rep.diagnostics(res.Diagnostics)
	fmt.Fprint(a.stdout, res.Output)
	return nil
}
