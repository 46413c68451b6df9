package ast

// Check inspects a finished tree without modifying it and reports
// advisory diagnostics.
type Check interface {
	Name() string
	Check(root *Tree) []Diagnostic
}

// CheckChain runs checks in order and collects every diagnostic.
type CheckChain []Check

// Run executes each check in sequence. Diagnostics never stop the chain.
func (cc CheckChain) Run(root *Tree) []Diagnostic {
	var out []Diagnostic
	for _, c := range cc {
		out = append(out, c.Check(root)...)
	}
	return out
}
