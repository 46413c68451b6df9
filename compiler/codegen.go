package compiler

import (
	"strings"

	"github.com/rubiojr/curly/ast"
	"github.com/rubiojr/curly/lexer"
)

// DefaultIndentWidth is the number of spaces per nesting level.
const DefaultIndentWidth = 4

// codeGen re-linearizes a syntax tree into indentation-delimited source.
type codeGen struct {
	w *pyWriter
}

// Generate renders root as indentation-delimited source. It never fails;
// every tree the parser accepts has a rendering.
func Generate(root *ast.Tree, indentWidth int) string {
	g := &codeGen{w: newPyWriter(indentWidth)}
	g.node(root)
	return g.w.String()
}

func (g *codeGen) node(n ast.Node) {
	switch n := n.(type) {
	case *ast.Leaf:
		g.w.Raw(renderLeaf(n))
	case *ast.Tree:
		g.tree(n)
	}
}

func (g *codeGen) children(t *ast.Tree) {
	for _, c := range t.Children {
		g.node(c)
	}
}

func (g *codeGen) tree(t *ast.Tree) {
	switch t.Kind {
	case ast.Statement:
		if t.LeafAt(0) != nil {
			// blank line
			return
		}
		g.w.Prefix()
		g.node(t.Child(0))
		if t.Child(1) != nil {
			g.w.Raw("\n")
		}

	case ast.Block:
		g.w.Indent()
		start := g.w.Len()
		g.node(t.Child(2))
		if g.w.Len() == start {
			g.w.Linef("pass")
		}
		g.w.Dedent()

	case ast.FunctionDef:
		g.w.Raw("def ")
		g.node(t.Child(1))
		g.w.Raw("(")
		g.node(t.Child(3))
		g.w.Raw("):\n")
		g.node(t.Child(6))

	case ast.IfStmt:
		g.header("if ", t.Child(1))
		g.node(t.Child(3))
		g.node(t.Child(4))

	case ast.ElifStmt:
		g.w.Prefix()
		g.header("elif ", t.Child(1))
		g.node(t.Child(3))
		g.node(t.Child(4))

	case ast.ElseBlock:
		g.w.Prefix()
		g.w.Raw("else:\n")
		g.node(t.Child(2))

	case ast.ForStmt:
		g.w.Raw("for ")
		g.node(t.Child(1))
		g.w.Raw(" in ")
		g.node(t.Child(3))
		g.w.Raw(":\n")
		g.node(t.Child(5))

	case ast.WhileStmt:
		g.header("while ", t.Child(1))
		g.node(t.Child(3))

	case ast.ReturnStmt:
		g.w.Raw("return")
		if e := t.Child(1); e != nil {
			g.w.Raw(" ")
			g.node(e)
		}

	case ast.ImportStmt:
		g.w.Raw("import ")
		g.node(t.Child(1))

	case ast.GlobalStmt:
		g.w.Raw("global ")
		g.node(t.Child(1))

	case ast.IdentifierOpt:
		g.w.Raw(" ")
		g.node(t.Child(0))
		g.w.Raw(" ")
		g.node(t.Child(1))

	default:
		g.children(t)
	}
}

func (g *codeGen) header(keyword string, cond ast.Node) {
	g.w.Raw(keyword)
	g.node(cond)
	g.w.Raw(":\n")
}

func renderLeaf(l *ast.Leaf) string {
	k := l.Kind()
	switch k {
	case lexer.STRING:
		return requote(l.Token.Text, l.Token.Quote)
	case lexer.NUMBER:
		return lexer.FormatNumber(l.Token.Number)
	case lexer.LBRACE, lexer.RBRACE:
		return ""
	case lexer.NEWLINE, lexer.SEMICOLON:
		return "\n"
	case lexer.AND, lexer.OR, lexer.IN, lexer.AS:
		return " " + k.Spelling() + " "
	case lexer.NOT:
		return "not "
	}
	if k.IsKeyword() {
		return k.Spelling()
	}
	return l.Token.Text
}

// requote renders a string body in double quotes. Bodies taken from
// single-quoted literals get their bare double quotes escaped; existing
// escapes are kept as written.
func requote(body string, q byte) string {
	if q != '\'' || !strings.Contains(body, `"`) {
		return `"` + body + `"`
	}
	var sb strings.Builder
	sb.WriteByte('"')
	for i := 0; i < len(body); i++ {
		c := body[i]
		switch {
		case c == '\\' && i+1 < len(body):
			sb.WriteByte(c)
			i++
			sb.WriteByte(body[i])
		case c == '"':
			sb.WriteString(`\"`)
		default:
			sb.WriteByte(c)
		}
	}
	sb.WriteByte('"')
	return sb.String()
}
