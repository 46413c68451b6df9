package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/rubiojr/curly/ast"
	"github.com/rubiojr/curly/compiler"
	"github.com/rubiojr/curly/doc"
	"github.com/rubiojr/curly/lexer"
	"github.com/rubiojr/curly/preprocess"
)

// exitError carries a process exit code out of an action. Whatever caused
// it has already been reported.
type exitError struct{ code int }

func (e *exitError) Error() string { return fmt.Sprintf("exit status %d", e.code) }

var (
	errFatal  = &exitError{code: 1}
	errStrict = &exitError{code: 2}
)

// Execute runs the curly CLI with the given version string.
func Execute(version string) {
	if err := newApp(version, os.Stdout, os.Stderr).Run(context.Background(), os.Args); err != nil {
		var xe *exitError
		if errors.As(err, &xe) {
			os.Exit(xe.code)
		}
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

// app holds the output streams so commands can be driven from tests.
type app struct {
	stdout io.Writer
	stderr io.Writer
}

func newApp(version string, stdout, stderr io.Writer) *cli.Command {
	a := &app{stdout: stdout, stderr: stderr}
	return &cli.Command{
		Name:                   "curly",
		Usage:                  "Translate brace-delimited Python into indented Python",
		Version:                version,
		UseShortOptionHandling: true,
		Writer:                 stdout,
		ErrWriter:              stderr,
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:    "no-color",
				Aliases: []string{"C"},
				Usage:   "Disable ANSI color output",
			},
			// no short alias: -v belongs to --version
			&cli.BoolFlag{
				Name:  "verbose",
				Usage: "Print pipeline stage timings to stderr",
			},
		},
		// Allow `curly prog.cpy` as shorthand for `curly translate prog.cpy`
		Action: func(ctx context.Context, cmd *cli.Command) error {
			if cmd.NArg() > 0 && doc.IsSourceFile(cmd.Args().First()) {
				return a.translate(cmd, cmd.Args().First(), "", false)
			}
			return cli.ShowAppHelp(cmd)
		},
		Commands: []*cli.Command{
			{
				Name:      "translate",
				Usage:     "Translate a brace-form file to indented Python",
				ArgsUsage: "<file.cpy>",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "output",
						Aliases: []string{"o"},
						Usage:   "Write the translation to this path instead of stdout",
					},
					&cli.StringFlag{
						Name:  "keep-stripped",
						Usage: "Write the comment-stripped source to this path",
					},
					&cli.IntFlag{
						Name:  "indent",
						Usage: "Spaces per nesting level",
						Value: compiler.DefaultIndentWidth,
					},
					&cli.BoolFlag{
						Name:  "strict",
						Usage: "Exit with status 2 when warnings or errors are reported",
					},
				},
				Action: a.translateAction,
			},
			{
				Name:      "check",
				Usage:     "Validate a file and report diagnostics without output",
				ArgsUsage: "<file.cpy>",
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:  "strict",
						Usage: "Exit with status 2 when warnings or errors are reported",
					},
				},
				Action: a.checkAction,
			},
			{
				Name:      "tokens",
				Usage:     "List the tokens of a file",
				ArgsUsage: "<file.cpy>",
				Action:    a.tokensAction,
			},
			{
				Name:      "tree",
				Usage:     "Print the syntax tree of a file",
				ArgsUsage: "<file.cpy>",
				Action:    a.treeAction,
			},
			{
				Name:      "doc",
				Usage:     "Show checked call signatures or the docs of a source file",
				ArgsUsage: "[name | file.cpy [function] | dir]",
				Action:    a.docAction,
			},
			{
				Name:   "repl",
				Usage:  "Translate snippets interactively",
				Action: a.replAction,
			},
		},
	}
}

func (a *app) translateAction(ctx context.Context, cmd *cli.Command) error {
	if cmd.NArg() < 1 {
		return fmt.Errorf("usage: curly translate [-o output] <file.cpy>")
	}
	return a.translate(cmd, cmd.Args().First(), cmd.String("output"), cmd.Bool("strict"))
}

func (a *app) translate(cmd *cli.Command, path, output string, strict bool) error {
	opts := compiler.Options{IndentWidth: int(cmd.Int("indent")), KeepStripped: cmd.String("keep-stripped")}
	res, ok, err := a.run(cmd, path, opts)
	if err != nil || !ok {
		return orFatal(err)
	}
	if output == "" {
		fmt.Fprint(a.stdout, res.Output)
	} else if err := os.WriteFile(output, []byte(res.Output), 0644); err != nil {
		return fmt.Errorf("writing %s: %w", output, err)
	}
	return strictExit(strict, res.Diagnostics)
}

func (a *app) checkAction(ctx context.Context, cmd *cli.Command) error {
	if cmd.NArg() < 1 {
		return fmt.Errorf("usage: curly check <file.cpy>")
	}
	res, ok, err := a.run(cmd, cmd.Args().First(), compiler.Options{})
	if err != nil || !ok {
		return orFatal(err)
	}
	if len(res.Diagnostics) == 0 {
		fmt.Fprintf(a.stdout, "%s: ok\n", cmd.Args().First())
	}
	return strictExit(cmd.Bool("strict"), res.Diagnostics)
}

func (a *app) tokensAction(ctx context.Context, cmd *cli.Command) error {
	if cmd.NArg() < 1 {
		return fmt.Errorf("usage: curly tokens <file.cpy>")
	}
	path := cmd.Args().First()
	src, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading %s: %w", path, err)
	}
	toks, err := lexer.Tokenize(preprocess.Clean(string(src)))
	for _, t := range toks {
		fmt.Fprintln(a.stdout, t)
	}
	if err != nil {
		a.reporter(cmd, path).fatal(err)
		return errFatal
	}
	return nil
}

func (a *app) treeAction(ctx context.Context, cmd *cli.Command) error {
	if cmd.NArg() < 1 {
		return fmt.Errorf("usage: curly tree <file.cpy>")
	}
	res, ok, err := a.run(cmd, cmd.Args().First(), compiler.Options{})
	if err != nil || !ok {
		return orFatal(err)
	}
	fmt.Fprint(a.stdout, ast.Dump(res.Tree))
	return nil
}

func (a *app) docAction(ctx context.Context, cmd *cli.Command) error {
	if cmd.NArg() == 0 {
		fmt.Fprint(a.stdout, doc.FormatAllSignatures())
		return nil
	}
	target := cmd.Args().First()

	if info, err := os.Stat(target); err == nil && info.IsDir() {
		fd, err := doc.ExtractDir(target)
		if err != nil {
			return err
		}
		fmt.Fprint(a.stdout, doc.FormatFile(fd))
		return nil
	}

	if doc.IsSourceFile(target) {
		fd, err := doc.ExtractFile(target)
		if err != nil {
			return fmt.Errorf("reading %s: %w", target, err)
		}
		if cmd.NArg() < 2 {
			fmt.Fprint(a.stdout, doc.FormatFile(fd))
			return nil
		}
		name := cmd.Args().Get(1)
		f, ok := doc.LookupFunc(fd, name)
		if !ok {
			return unknown("function", name, doc.FuncNames(fd))
		}
		fmt.Fprint(a.stdout, doc.FormatSymbol(f.Doc, f.Signature()))
		return nil
	}

	sig, ok := compiler.LookupSignature(target)
	if !ok {
		return unknown("checked call", target, compiler.SignatureNames())
	}
	fmt.Fprint(a.stdout, doc.FormatSignature(sig))
	return nil
}

// run translates path and reports everything it produced. ok is false
// when translation failed and the failure was already reported.
func (a *app) run(cmd *cli.Command, path string, opts compiler.Options) (*compiler.Result, bool, error) {
	rep := a.reporter(cmd, path)
	res, err := compiler.New(opts).TranslateFile(path)
	if res == nil {
		return nil, false, err
	}
	if cmd.Bool("verbose") {
		rep.stages(res)
	}
	if err != nil {
		if !isFatal(err) {
			return nil, false, err
		}
		rep.fatal(err)
		return nil, false, nil
	}
	rep.diagnostics(res.Diagnostics)
	return res, true, nil
}

func (a *app) reporter(cmd *cli.Command, path string) *reporter {
	return newReporter(a.stderr, path, cmd.Bool("no-color"))
}

func orFatal(err error) error {
	if err != nil {
		return err
	}
	return errFatal
}

func strictExit(strict bool, diags []compiler.Diagnostic) error {
	if !strict {
		return nil
	}
	for _, d := range diags {
		if d.Severity >= ast.SeverityWarning {
			return errStrict
		}
	}
	return nil
}

func unknown(what, name string, candidates []string) error {
	msg := fmt.Sprintf("unknown %s %q", what, name)
	if hint := compiler.Suggest(name, candidates); hint != "" {
		msg += fmt.Sprintf(" (did you mean %q?)", hint)
	}
	if len(candidates) > 0 {
		msg += "; known: " + strings.Join(candidates, ", ")
	}
	return errors.New(msg)
}
