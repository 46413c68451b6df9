// Package ast defines the concrete syntax tree produced by the parser.
//
// A Node is exactly one of two variants: a *Leaf, which owns one token and
// has no children, or a *Tree, which realizes one grammar production and
// owns an ordered list of children. Absent optional parts are nil entries
// in Children, so consumers can index slots positionally.
package ast

import "github.com/rubiojr/curly/lexer"

// Node is the interface for all syntax tree nodes.
type Node interface {
	node()
	// Line returns the source line of the first token under the node,
	// or 0 when the subtree holds no tokens.
	Line() int
}

// Leaf is a terminal node holding one token.
type Leaf struct {
	Token lexer.Token
}

func (l *Leaf) node()     {}
func (l *Leaf) Line() int { return l.Token.Line }

// Kind returns the token kind of the leaf.
func (l *Leaf) Kind() lexer.Kind { return l.Token.Kind }

// Text returns the leaf's source text.
func (l *Leaf) Text() string { return l.Token.Lexeme() }

// NewLeaf wraps a token.
func NewLeaf(tok lexer.Token) *Leaf { return &Leaf{Token: tok} }

// Tree is an internal node realizing one grammar production.
type Tree struct {
	Kind     Kind
	Children []Node

	exports []*Leaf
}

func (t *Tree) node() {}

func (t *Tree) Line() int {
	for _, c := range t.Children {
		if c == nil {
			continue
		}
		if l := c.Line(); l > 0 {
			return l
		}
	}
	return 0
}

// Child returns the i-th child slot, or nil when the slot is absent or out
// of range.
func (t *Tree) Child(i int) Node {
	if i < 0 || i >= len(t.Children) {
		return nil
	}
	return t.Children[i]
}

// TreeAt returns the i-th child if it is an internal node.
func (t *Tree) TreeAt(i int) *Tree {
	sub, _ := t.Child(i).(*Tree)
	return sub
}

// LeafAt returns the i-th child if it is a leaf.
func (t *Tree) LeafAt(i int) *Leaf {
	l, _ := t.Child(i).(*Leaf)
	return l
}

// Exports returns the leaves in this subtree that name something bound by
// an import statement, in source order. The slice must not be modified.
func (t *Tree) Exports() []*Leaf { return t.exports }

// New builds an internal node. Its exports are the concatenation of the
// exports of its internal children.
func New(kind Kind, children ...Node) *Tree {
	t := &Tree{Kind: kind, Children: normalize(children)}
	for _, c := range t.Children {
		if sub, ok := c.(*Tree); ok {
			t.exports = append(t.exports, sub.exports...)
		}
	}
	return t
}

// NewBinding builds an internal node that binds exactly one name. The
// children's exports are replaced by bound.
func NewBinding(kind Kind, bound *Leaf, children ...Node) *Tree {
	return &Tree{Kind: kind, Children: normalize(children), exports: []*Leaf{bound}}
}

// normalize turns typed nil pointers into untyped nil slots.
func normalize(children []Node) []Node {
	for i, c := range children {
		switch n := c.(type) {
		case *Tree:
			if n == nil {
				children[i] = nil
			}
		case *Leaf:
			if n == nil {
				children[i] = nil
			}
		}
	}
	return children
}
