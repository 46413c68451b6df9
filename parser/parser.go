// Package parser builds a concrete syntax tree from a token sequence.
//
// The parser is LL(1): every decision looks at exactly one token, and an
// optional part is taken as empty only when the lookahead belongs to the
// follow set of that part. All cursor state lives in a Parser value.
package parser

import (
	"errors"
	"fmt"
	"strings"

	"github.com/rubiojr/curly/ast"
	"github.com/rubiojr/curly/lexer"
)

// SyntaxError reports a token that no grammar alternative accepts.
type SyntaxError struct {
	Line     int
	Pos      int // index of the offending token
	Expected []lexer.Kind
	Found    lexer.Token
	Msg      string // set for semantic restrictions, e.g. bad assignment targets
}

func (e *SyntaxError) Error() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "line %d: syntax error: ", e.Line)
	if e.Msg != "" {
		sb.WriteString(e.Msg)
		return sb.String()
	}
	found := e.Found.Kind.String()
	if e.Found.Kind == lexer.IDENTIFIER || e.Found.Kind == lexer.NUMBER {
		found += " " + e.Found.Lexeme()
	}
	if len(e.Expected) == 0 || len(e.Expected) > 5 {
		fmt.Fprintf(&sb, "unexpected %s", found)
		return sb.String()
	}
	fmt.Fprintf(&sb, "expected %s, found %s", joinKinds(e.Expected), found)
	return sb.String()
}

func joinKinds(ks []lexer.Kind) string {
	names := make([]string, len(ks))
	for i, k := range ks {
		names[i] = k.String()
	}
	if len(names) == 1 {
		return names[0]
	}
	return strings.Join(names[:len(names)-1], ", ") + " or " + names[len(names)-1]
}

// IsIncomplete reports whether err is a syntax error caused by input ending
// too early, as happens while a block is still open.
func IsIncomplete(err error) bool {
	var se *SyntaxError
	return errors.As(err, &se) && se.Msg == "" && se.Found.Kind == lexer.END
}

// Parser holds the cursor over one token sequence.
type Parser struct {
	toks []lexer.Token
	pos  int
}

// New returns a parser over toks. A missing END terminator is appended.
func New(toks []lexer.Token) *Parser {
	if n := len(toks); n == 0 || toks[n-1].Kind != lexer.END {
		line := 1
		if n > 0 {
			line = toks[n-1].Line
		}
		toks = append(toks[:n:n], lexer.Token{Kind: lexer.END, Line: line})
	}
	return &Parser{toks: toks}
}

// Parse parses a complete program.
func Parse(toks []lexer.Token) (*ast.Tree, error) {
	return New(toks).ParseProgram()
}

// Consumed returns the tokens the parser has accepted so far.
func (p *Parser) Consumed() []lexer.Token { return p.toks[:p.pos] }

func (p *Parser) peek() lexer.Token { return p.toks[p.pos] }

func (p *Parser) at(s set) bool { return s.has(p.peek().Kind) }

func (p *Parser) is(k lexer.Kind) bool { return p.peek().Kind == k }

// next consumes the lookahead. END is never consumed past.
func (p *Parser) next() *ast.Leaf {
	tok := p.toks[p.pos]
	if tok.Kind != lexer.END {
		p.pos++
	}
	return ast.NewLeaf(tok)
}

func (p *Parser) expect(k lexer.Kind) (*ast.Leaf, error) {
	if !p.is(k) {
		return nil, p.errorf(setOf(k))
	}
	return p.next(), nil
}

func (p *Parser) errorf(expected set) error {
	tok := p.peek()
	return &SyntaxError{Line: tok.Line, Pos: p.pos, Expected: expected.kinds(), Found: tok}
}

func (p *Parser) restrict(msg string) error {
	tok := p.peek()
	return &SyntaxError{Line: tok.Line, Pos: p.pos, Found: tok, Msg: msg}
}

// empty checks that an optional part may be left out here.
func (p *Parser) empty(first, follow set) error {
	if p.at(follow) {
		return nil
	}
	return p.errorf(first | follow)
}

// ParseProgram parses statements up to the END token.
func (p *Parser) ParseProgram() (*ast.Tree, error) {
	var stmts ast.Node
	if !p.is(lexer.END) {
		s, err := p.statements()
		if err != nil {
			return nil, err
		}
		stmts = s
	}
	end, err := p.expect(lexer.END)
	if err != nil {
		return nil, err
	}
	return ast.New(ast.Program, stmts, end), nil
}

// statements is iterative so long programs do not deepen the stack; the
// resulting tree keeps the right-nested shape.
func (p *Parser) statements() (*ast.Tree, error) {
	var list []*ast.Tree
	for {
		if !p.at(firstStmt) {
			return nil, p.errorf(firstStmt)
		}
		s, err := p.statement()
		if err != nil {
			return nil, err
		}
		list = append(list, s)
		if p.is(lexer.END) || p.is(lexer.RBRACE) {
			break
		}
	}
	var rest *ast.Tree
	for i := len(list) - 1; i >= 0; i-- {
		rest = ast.New(ast.Statements, list[i], rest)
	}
	return rest, nil
}

func (p *Parser) statement() (*ast.Tree, error) {
	switch {
	case p.is(lexer.NEWLINE):
		return ast.New(ast.Statement, p.next()), nil
	case p.at(firstCompound):
		c, err := p.compound()
		if err != nil {
			return nil, err
		}
		return ast.New(ast.Statement, c), nil
	}
	s, err := p.simple()
	if err != nil {
		return nil, err
	}
	term, err := p.terminator()
	if err != nil {
		return nil, err
	}
	return ast.New(ast.Statement, s, term), nil
}

// terminator accepts NEWLINE or ';'. Before END or '}' it synthesizes a
// NEWLINE leaf without consuming anything.
func (p *Parser) terminator() (*ast.Leaf, error) {
	tok := p.peek()
	switch tok.Kind {
	case lexer.NEWLINE, lexer.SEMICOLON:
		return p.next(), nil
	case lexer.END, lexer.RBRACE:
		return ast.NewLeaf(lexer.Token{Kind: lexer.NEWLINE, Text: "\n", Line: tok.Line}), nil
	}
	return nil, p.errorf(stmtEnd)
}

func (p *Parser) compound() (*ast.Tree, error) {
	var (
		t   *ast.Tree
		err error
	)
	switch p.peek().Kind {
	case lexer.DEF:
		t, err = p.functionDef()
	case lexer.IF:
		t, err = p.ifStmt()
	case lexer.FOR:
		t, err = p.forStmt()
	default:
		t, err = p.whileStmt()
	}
	if err != nil {
		return nil, err
	}
	return ast.New(ast.CompoundStmt, t), nil
}

func (p *Parser) functionDef() (*ast.Tree, error) {
	def := p.next()
	name, err := p.expect(lexer.IDENTIFIER)
	if err != nil {
		return nil, err
	}
	lparen, err := p.expect(lexer.LPAREN)
	if err != nil {
		return nil, err
	}
	var args ast.Node
	if !p.is(lexer.RPAREN) {
		if !p.at(firstExpr) {
			return nil, p.errorf(firstExpr | setOf(lexer.RPAREN))
		}
		a, err := p.arguments()
		if err != nil {
			return nil, err
		}
		args = a
	}
	rparen, err := p.expect(lexer.RPAREN)
	if err != nil {
		return nil, err
	}
	colon, err := p.expect(lexer.COLON)
	if err != nil {
		return nil, err
	}
	body, err := p.block()
	if err != nil {
		return nil, err
	}
	return ast.New(ast.FunctionDef, def, name, lparen, args, rparen, colon, body), nil
}

// header parses "expression ':' block", shared by if, elif and while.
func (p *Parser) header() (ast.Node, *ast.Leaf, *ast.Tree, error) {
	if !p.at(firstExpr) {
		return nil, nil, nil, p.errorf(firstExpr)
	}
	cond, err := p.expression()
	if err != nil {
		return nil, nil, nil, err
	}
	colon, err := p.expect(lexer.COLON)
	if err != nil {
		return nil, nil, nil, err
	}
	body, err := p.block()
	if err != nil {
		return nil, nil, nil, err
	}
	return cond, colon, body, nil
}

func (p *Parser) ifStmt() (*ast.Tree, error) {
	kw := p.next()
	cond, colon, body, err := p.header()
	if err != nil {
		return nil, err
	}
	tail, err := p.ifTail()
	if err != nil {
		return nil, err
	}
	return ast.New(ast.IfStmt, kw, cond, colon, body, tail), nil
}

func (p *Parser) ifTail() (ast.Node, error) {
	switch p.peek().Kind {
	case lexer.ELIF:
		kw := p.next()
		cond, colon, body, err := p.header()
		if err != nil {
			return nil, err
		}
		tail, err := p.ifTail()
		if err != nil {
			return nil, err
		}
		return ast.New(ast.ElifStmt, kw, cond, colon, body, tail), nil
	case lexer.ELSE:
		kw := p.next()
		colon, err := p.expect(lexer.COLON)
		if err != nil {
			return nil, err
		}
		body, err := p.block()
		if err != nil {
			return nil, err
		}
		return ast.New(ast.ElseBlock, kw, colon, body), nil
	}
	return nil, p.empty(setOf(lexer.ELIF, lexer.ELSE), followCompound)
}

func (p *Parser) forStmt() (*ast.Tree, error) {
	kw := p.next()
	target, err := p.expect(lexer.IDENTIFIER)
	if err != nil {
		return nil, err
	}
	in, err := p.expect(lexer.IN)
	if err != nil {
		return nil, err
	}
	if !p.at(firstExpr) {
		return nil, p.errorf(firstExpr)
	}
	iter, err := p.expression()
	if err != nil {
		return nil, err
	}
	colon, err := p.expect(lexer.COLON)
	if err != nil {
		return nil, err
	}
	body, err := p.block()
	if err != nil {
		return nil, err
	}
	return ast.New(ast.ForStmt, kw, target, in, iter, colon, body), nil
}

func (p *Parser) whileStmt() (*ast.Tree, error) {
	kw := p.next()
	cond, colon, body, err := p.header()
	if err != nil {
		return nil, err
	}
	return ast.New(ast.WhileStmt, kw, cond, colon, body), nil
}

// block parses NEWLINE '{' statements '}' and the newline that usually
// follows the closing brace.
func (p *Parser) block() (*ast.Tree, error) {
	nl, err := p.expect(lexer.NEWLINE)
	if err != nil {
		return nil, err
	}
	lbrace, err := p.expect(lexer.LBRACE)
	if err != nil {
		return nil, err
	}
	body, err := p.statements()
	if err != nil {
		return nil, err
	}
	rbrace, err := p.expect(lexer.RBRACE)
	if err != nil {
		return nil, err
	}
	var trail ast.Node
	if p.is(lexer.NEWLINE) {
		trail = p.next()
	} else if err := p.empty(setOf(lexer.NEWLINE), followBlockTail); err != nil {
		return nil, err
	}
	return ast.New(ast.Block, nl, lbrace, body, rbrace, trail), nil
}

func (p *Parser) simple() (*ast.Tree, error) {
	var (
		n   ast.Node
		err error
	)
	switch tok := p.peek(); {
	case tok.Kind == lexer.IDENTIFIER:
		n, err = p.identifierStmt()
	case firstExpr.has(tok.Kind):
		var e *ast.Tree
		if e, err = p.expression(); err == nil {
			n = ast.New(ast.ExpressionStmt, e)
		}
	case tok.Kind == lexer.RETURN:
		n, err = p.returnStmt()
	case tok.Kind == lexer.IMPORT:
		n, err = p.importStmt()
	case tok.Kind == lexer.GLOBAL:
		n, err = p.globalStmt()
	case tok.Kind == lexer.PASS, tok.Kind == lexer.BREAK, tok.Kind == lexer.CONTINUE:
		n = p.next()
	default:
		return nil, p.errorf(firstSimple)
	}
	if err != nil {
		return nil, err
	}
	return ast.New(ast.SimpleStmt, n), nil
}

func (p *Parser) identifierStmt() (*ast.Tree, error) {
	target, err := p.expression()
	if err != nil {
		return nil, err
	}
	if !p.at(assigns) {
		return ast.New(ast.IdentifierStmt, target, nil), nil
	}
	if !assignable(target) {
		return nil, p.restrict("cannot assign to expression")
	}
	op := p.next()
	if !p.at(firstExpr) {
		return nil, p.errorf(firstExpr)
	}
	value, err := p.expression()
	if err != nil {
		return nil, err
	}
	return ast.New(ast.IdentifierStmt, target, ast.New(ast.IdentifierOpt, op, value)), nil
}

func (p *Parser) returnStmt() (*ast.Tree, error) {
	kw := p.next()
	if !p.at(firstExpr) {
		if err := p.empty(firstExpr, stmtEnd); err != nil {
			return nil, err
		}
		return ast.New(ast.ReturnStmt, kw, nil), nil
	}
	e, err := p.expression()
	if err != nil {
		return nil, err
	}
	return ast.New(ast.ReturnStmt, kw, e), nil
}

func (p *Parser) importStmt() (*ast.Tree, error) {
	kw := p.next()
	names, err := p.dottedAsNames()
	if err != nil {
		return nil, err
	}
	return ast.New(ast.ImportStmt, kw, names), nil
}

func (p *Parser) dottedAsNames() (*ast.Tree, error) {
	name, err := p.dottedAsName()
	if err != nil {
		return nil, err
	}
	if !p.is(lexer.COMMA) {
		if err := p.empty(setOf(lexer.COMMA), followImport); err != nil {
			return nil, err
		}
		return ast.New(ast.DottedAsNames, name, nil), nil
	}
	comma := p.next()
	more, err := p.dottedAsNames()
	if err != nil {
		return nil, err
	}
	return ast.New(ast.DottedAsNames, name, ast.New(ast.DottedAsNamesRest, comma, more)), nil
}

// dottedAsName binds the alias when one is given, otherwise the first
// component of the dotted module name.
func (p *Parser) dottedAsName() (*ast.Tree, error) {
	dn, err := p.dottedName()
	if err != nil {
		return nil, err
	}
	if !p.is(lexer.AS) {
		if err := p.empty(setOf(lexer.AS), followImport|setOf(lexer.COMMA)); err != nil {
			return nil, err
		}
		return ast.New(ast.DottedAsName, dn, nil), nil
	}
	as := p.next()
	alias, err := p.expect(lexer.IDENTIFIER)
	if err != nil {
		return nil, err
	}
	return ast.NewBinding(ast.DottedAsName, alias, dn, ast.New(ast.DottedAsNameRest, as, alias)), nil
}

func (p *Parser) dottedName() (*ast.Tree, error) {
	id, err := p.expect(lexer.IDENTIFIER)
	if err != nil {
		return nil, err
	}
	rest, err := p.dottedNameRest()
	if err != nil {
		return nil, err
	}
	return ast.NewBinding(ast.DottedName, id, id, rest), nil
}

func (p *Parser) dottedNameRest() (ast.Node, error) {
	if !p.is(lexer.DOT) {
		return nil, p.empty(setOf(lexer.DOT), followImport|setOf(lexer.AS, lexer.COMMA))
	}
	dot := p.next()
	id, err := p.expect(lexer.IDENTIFIER)
	if err != nil {
		return nil, err
	}
	rest, err := p.dottedNameRest()
	if err != nil {
		return nil, err
	}
	return ast.New(ast.DottedNameRest, dot, id, rest), nil
}

func (p *Parser) globalStmt() (*ast.Tree, error) {
	kw := p.next()
	names, err := p.nameList()
	if err != nil {
		return nil, err
	}
	return ast.New(ast.GlobalStmt, kw, names), nil
}

func (p *Parser) nameList() (*ast.Tree, error) {
	id, err := p.expect(lexer.IDENTIFIER)
	if err != nil {
		return nil, err
	}
	if !p.is(lexer.COMMA) {
		if err := p.empty(setOf(lexer.COMMA), stmtEnd); err != nil {
			return nil, err
		}
		return ast.New(ast.NameList, id, nil), nil
	}
	comma := p.next()
	more, err := p.nameList()
	if err != nil {
		return nil, err
	}
	return ast.New(ast.NameList, id, ast.New(ast.NameListRest, comma, more)), nil
}

// assignable reports whether e is a single primary that may stand on the
// left of '=': a name, attribute or subscription, but not a call.
func assignable(e *ast.Tree) bool {
	prim := soloPrimary(e)
	if prim == nil {
		return false
	}
	atom := prim.TreeAt(0)
	if atom == nil || atom.LeafAt(0) == nil || atom.LeafAt(0).Kind() != lexer.IDENTIFIER {
		return false
	}
	var last *ast.Tree
	for rest := prim.TreeAt(1); rest != nil; rest = rest.TreeAt(1) {
		last = rest.TreeAt(0)
	}
	return last == nil || last.LeafAt(0).Kind() != lexer.LPAREN
}

// soloPrimary unwraps an expression that consists of one primary and no
// operators, returning nil otherwise.
func soloPrimary(e *ast.Tree) *ast.Tree {
	n := e
	for n != nil {
		switch n.Kind {
		case ast.Primary:
			return n
		case ast.Expression:
			n = n.TreeAt(0)
		case ast.Disjunction, ast.Conjunction, ast.Comparison, ast.Sum, ast.Term, ast.Power:
			if n.Child(1) != nil {
				return nil
			}
			n = n.TreeAt(0)
		case ast.Inversion, ast.Factor:
			if len(n.Children) != 1 {
				return nil
			}
			n = n.TreeAt(0)
		default:
			return nil
		}
	}
	return nil
}

// IsBareName reports whether the expression e is a lone identifier.
func IsBareName(e *ast.Tree) bool {
	prim := soloPrimary(e)
	if prim == nil || prim.Child(1) != nil {
		return false
	}
	leaf := prim.TreeAt(0).LeafAt(0)
	return leaf != nil && leaf.Kind() == lexer.IDENTIFIER
}

// LeadPrimary returns the leftmost primary of an expression, following
// the first operand at every level.
func LeadPrimary(e *ast.Tree) *ast.Tree {
	n := e
	for n != nil && n.Kind != ast.Primary {
		if n.Kind == ast.Atom {
			return nil
		}
		// Inversion and Factor keep their operand last.
		switch n.Kind {
		case ast.Inversion, ast.Factor:
			n = n.TreeAt(len(n.Children) - 1)
		default:
			n = n.TreeAt(0)
		}
	}
	return n
}
