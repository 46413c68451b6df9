package compiler

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/lithammer/fuzzysearch/fuzzy"

	"github.com/rubiojr/curly/ast"
	"github.com/rubiojr/curly/lexer"
	"github.com/rubiojr/curly/parser"
)

// ImportTable maps each name bound by an import statement to the leaf that
// binds it.
type ImportTable map[string]*ast.Leaf

// NewImportTable builds the table from the root's exported identifiers.
// The first binding of a name wins.
func NewImportTable(root *ast.Tree) ImportTable {
	tbl := make(ImportTable)
	for _, l := range root.Exports() {
		if _, ok := tbl[l.Text()]; !ok {
			tbl[l.Text()] = l
		}
	}
	return tbl
}

// Names returns the bound names in sorted order.
func (t ImportTable) Names() []string {
	names := make([]string, 0, len(t))
	for n := range t {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// importCheck implements ast.Check and validates module references and
// allow-listed member calls.
type importCheck struct{}

// ImportCheck returns a Check that reports references to modules that were
// never imported, names that shadow imported modules, and allow-listed
// calls whose literal arguments have the wrong shape.
func ImportCheck() ast.Check { return importCheck{} }

func (importCheck) Name() string { return "imports" }

func (c importCheck) Check(root *ast.Tree) []ast.Diagnostic {
	tbl := NewImportTable(root)
	if len(tbl) == 0 {
		return []ast.Diagnostic{{
			Severity: ast.SeverityWarning,
			Message:  "no module imported",
			Check:    c.Name(),
		}}
	}
	w := &importWalker{table: tbl, names: tbl.Names(), check: c.Name()}
	ast.Inspect(root, func(n ast.Node) bool {
		if t, ok := n.(*ast.Tree); ok && t.Kind == ast.IdentifierStmt {
			w.statement(t)
		}
		return true
	})
	return w.diags
}

type importWalker struct {
	table ImportTable
	names []string
	check string
	diags []ast.Diagnostic
}

func (w *importWalker) report(sev ast.Severity, line int, format string, args ...any) {
	w.diags = append(w.diags, ast.Diagnostic{
		Severity: sev,
		Message:  fmt.Sprintf(format, args...),
		Line:     line,
		Check:    w.check,
	})
}

// statement checks one identifier-led statement. The statement is
// call-shaped when any primary in its subtree carries a '.' trailer; every
// such primary is checked on its own, wherever it appears.
func (w *importWalker) statement(stmt *ast.Tree) {
	dotted := dottedPrimaries(stmt)
	if len(dotted) == 0 {
		w.conflict(stmt)
		return
	}
	for _, prim := range dotted {
		lead := prim.TreeAt(0).LeafAt(0)
		name := lead.Text()
		if _, imported := w.table[name]; imported {
			w.call(name, trailerChain(prim))
			continue
		}
		msg := fmt.Sprintf("reference to a name that was never imported: %q", name)
		if hint := Suggest(name, w.names); hint != "" {
			msg += fmt.Sprintf(" (did you mean %q?)", hint)
		}
		w.report(ast.SeverityWarning, lead.Line(), "%s", msg)
	}
}

// conflict reports a statement without member access whose leading name
// is an imported module.
func (w *importWalker) conflict(stmt *ast.Tree) {
	prim := parser.LeadPrimary(stmt.TreeAt(0))
	if prim == nil {
		return
	}
	lead := prim.TreeAt(0).LeafAt(0)
	if lead == nil || lead.Kind() != lexer.IDENTIFIER {
		return
	}
	if _, imported := w.table[lead.Text()]; imported {
		w.report(ast.SeverityWarning, lead.Line(),
			"identifier %q conflicts with imported module name", lead.Text())
	}
}

// dottedPrimaries returns, in source order, the identifier-led primaries
// under n whose trailer chain contains a '.' trailer.
func dottedPrimaries(n ast.Node) []*ast.Tree {
	var out []*ast.Tree
	ast.Inspect(n, func(n ast.Node) bool {
		prim, ok := n.(*ast.Tree)
		if !ok || prim.Kind != ast.Primary {
			return true
		}
		lead := prim.TreeAt(0).LeafAt(0)
		if lead == nil || lead.Kind() != lexer.IDENTIFIER {
			return true
		}
		for _, tr := range trailerChain(prim) {
			if tr.LeafAt(0).Kind() == lexer.DOT {
				out = append(out, prim)
				break
			}
		}
		return true
	})
	return out
}

// call checks "module.member(args)" against the allow-list. Other shapes
// and members outside the allow-list are not inspected.
func (w *importWalker) call(module string, trailers []*ast.Tree) {
	if len(trailers) < 2 {
		return
	}
	member, invoke := trailers[0], trailers[1]
	if member.LeafAt(0).Kind() != lexer.DOT || invoke.LeafAt(0).Kind() != lexer.LPAREN {
		return
	}
	name := member.LeafAt(1).Text()
	sig, ok := LookupSignature(name)
	if !ok {
		return
	}
	callee := module + "." + name
	line := invoke.Line()
	args, err := evalArguments(invoke.TreeAt(1))
	if err != nil {
		var nl *NotLiteralError
		if errors.As(err, &nl) {
			w.report(ast.SeverityInfo, line, "%s: arguments not checked: %s is not a literal", callee, nl.What)
			return
		}
		w.report(ast.SeverityInfo, line, "%s: arguments not checked: %v", callee, err)
		return
	}
	if err := sig.Check(sig, subject(args)); err != nil {
		w.report(ast.SeverityError, line, "%s: %v", callee, err)
	}
}

// trailerChain returns the trailers that follow a primary's atom.
func trailerChain(prim *ast.Tree) []*ast.Tree {
	var out []*ast.Tree
	for rest := prim.TreeAt(1); rest != nil; rest = rest.TreeAt(1) {
		out = append(out, rest.TreeAt(0))
	}
	return out
}

// Suggest returns the candidate nearest to name, or "" when nothing is
// reasonably close.
func Suggest(name string, candidates []string) string {
	if len(candidates) == 0 {
		return ""
	}
	ranks := fuzzy.RankFindFold(name, candidates)
	if len(ranks) > 0 {
		sort.Sort(ranks)
		return ranks[0].Target
	}
	best, bestDist := "", 3
	for _, c := range candidates {
		if d := fuzzy.LevenshteinDistance(strings.ToLower(name), strings.ToLower(c)); d < bestDist {
			best, bestDist = c, d
		}
	}
	return best
}
