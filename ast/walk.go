package ast

import (
	"fmt"
	"strings"
)

// Inspect traverses the tree rooted at n in depth-first order, calling fn
// for every present node. If fn returns false, the children of that node
// are skipped.
func Inspect(n Node, fn func(Node) bool) {
	if n == nil || !fn(n) {
		return
	}
	if t, ok := n.(*Tree); ok {
		for _, c := range t.Children {
			if c != nil {
				Inspect(c, fn)
			}
		}
	}
}

// Leaves returns every leaf under n in source order.
func Leaves(n Node) []*Leaf {
	var out []*Leaf
	Inspect(n, func(n Node) bool {
		if l, ok := n.(*Leaf); ok {
			out = append(out, l)
		}
		return true
	})
	return out
}

// Find returns the first internal node of the given kind under n, in
// depth-first order, or nil.
func Find(n Node, kind Kind) *Tree {
	var found *Tree
	Inspect(n, func(n Node) bool {
		if found != nil {
			return false
		}
		if t, ok := n.(*Tree); ok && t.Kind == kind {
			found = t
			return false
		}
		return true
	})
	return found
}

// Dump renders the tree as indented text, one node per line: production
// names for internal nodes, kind, text and line for leaves.
func Dump(n Node) string {
	var sb strings.Builder
	dump(&sb, n, 0)
	return sb.String()
}

func dump(sb *strings.Builder, n Node, lvl int) {
	indent := strings.Repeat("    ", lvl)
	switch n := n.(type) {
	case *Leaf:
		fmt.Fprintf(sb, "%s%s %q (line %d)\n", indent, n.Kind().Name(), n.Text(), n.Line())
	case *Tree:
		fmt.Fprintf(sb, "%s%s\n", indent, n.Kind)
		for _, c := range n.Children {
			if c != nil {
				dump(sb, c, lvl+1)
			}
		}
	}
}
