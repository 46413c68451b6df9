package ast

import (
	"testing"

	"github.com/rubiojr/curly/lexer"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ident(name string, line int) *Leaf {
	return NewLeaf(lexer.Token{Kind: lexer.IDENTIFIER, Text: name, Line: line})
}

func TestNewConcatenatesExports(t *testing.T) {
	a := NewBinding(DottedName, ident("turtle", 1), ident("turtle", 1))
	b := NewBinding(DottedName, ident("math", 1), ident("math", 1))
	names := New(DottedAsNames, a, New(DottedAsNamesRest, NewLeaf(lexer.Token{Kind: lexer.COMMA, Text: ","}), b))

	var got []string
	for _, l := range names.Exports() {
		got = append(got, l.Text())
	}
	assert.Equal(t, []string{"turtle", "math"}, got)
}

func TestNewBindingReplacesExports(t *testing.T) {
	dn := NewBinding(DottedName, ident("turtle", 1), ident("turtle", 1))
	alias := ident("t", 1)
	as := NewBinding(DottedAsName, alias, dn, New(DottedAsNameRest, NewLeaf(lexer.Token{Kind: lexer.AS, Text: "as"}), alias))
	require.Len(t, as.Exports(), 1)
	assert.Same(t, alias, as.Exports()[0])
}

func TestLeavesContributeNoExports(t *testing.T) {
	tree := New(Atom, ident("turtle", 1))
	assert.Empty(t, tree.Exports())
}

func TestNormalizeTypedNil(t *testing.T) {
	var missing *Tree
	var leaf *Leaf
	tree := New(Power, New(Primary, New(Atom, ident("x", 1)), nil), missing, leaf)
	assert.Nil(t, tree.Child(1))
	assert.Nil(t, tree.Child(2))
	assert.Nil(t, tree.TreeAt(1))
	assert.Nil(t, tree.Child(7))
}

func TestTreeLine(t *testing.T) {
	tree := New(Statement, nil, New(SimpleStmt, ident("x", 4)))
	assert.Equal(t, 4, tree.Line())
	assert.Equal(t, 0, New(Statements).Line())
}

func TestFindAndInspect(t *testing.T) {
	atom := New(Atom, ident("x", 2))
	tree := New(Expression, New(Disjunction, New(Primary, atom, nil), nil))
	assert.Same(t, atom, Find(tree, Atom))
	assert.Nil(t, Find(tree, Slice))

	visited := 0
	Inspect(tree, func(n Node) bool {
		visited++
		tr, ok := n.(*Tree)
		return !ok || tr.Kind != Primary
	})
	// Expression, Disjunction, Primary; Primary's children are skipped.
	assert.Equal(t, 3, visited)
}

func TestDump(t *testing.T) {
	tree := New(Statement,
		New(SimpleStmt, NewLeaf(lexer.Token{Kind: lexer.PASS, Text: "pass", Line: 1})),
		NewLeaf(lexer.Token{Kind: lexer.NEWLINE, Text: "\n", Line: 1}),
	)
	want := "statement\n" +
		"    simple_stmt\n" +
		"        PASS \"pass\" (line 1)\n" +
		"    NEWLINE \"\\n\" (line 1)\n"
	assert.Equal(t, want, Dump(tree))
}

type countCheck struct{ name string }

func (c countCheck) Name() string { return c.name }

func (c countCheck) Check(root *Tree) []Diagnostic {
	return []Diagnostic{{Severity: SeverityWarning, Message: c.name, Line: root.Line(), Check: c.name}}
}

func TestCheckChainRunsAll(t *testing.T) {
	root := New(Program, ident("x", 3))
	diags := CheckChain{countCheck{"a"}, countCheck{"b"}}.Run(root)
	require.Len(t, diags, 2)
	assert.Equal(t, "a", diags[0].Message)
	assert.Equal(t, "b", diags[1].Check)
	assert.Equal(t, "line 3: warning: a", diags[0].String())
}

func TestDiagnosticWithoutLine(t *testing.T) {
	d := Diagnostic{Severity: SeverityError, Message: "boom"}
	assert.Equal(t, "error: boom", d.String())
	assert.Equal(t, "info", SeverityInfo.String())
}

func TestKindString(t *testing.T) {
	assert.Equal(t, "identifier_stmt", IdentifierStmt.String())
	assert.Equal(t, "Kind(250)", Kind(250).String())
}
