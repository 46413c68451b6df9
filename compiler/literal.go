package compiler

import (
	"fmt"
	"strings"

	"github.com/rubiojr/curly/ast"
	"github.com/rubiojr/curly/lexer"
)

// ValueKind classifies a literal value.
type ValueKind uint8

const (
	NumberValue ValueKind = iota
	StringValue
	BoolValue
	NoneValue
	TupleValue
	ListValue
)

// Value is a literal recovered from the syntax tree: a number, string,
// boolean, None, or a tuple or list of values.
type Value struct {
	Kind  ValueKind
	Num   float64
	Str   string
	Bool  bool
	Items []Value
}

func (v Value) IsNumber() bool { return v.Kind == NumberValue }
func (v Value) IsString() bool { return v.Kind == StringValue }
func (v Value) IsTuple() bool  { return v.Kind == TupleValue }
func (v Value) IsList() bool   { return v.Kind == ListValue }

// allNumbers reports whether every item of a sequence is a number.
func (v Value) allNumbers() bool {
	for _, it := range v.Items {
		if !it.IsNumber() {
			return false
		}
	}
	return true
}

// String renders v the way the target language would print it.
func (v Value) String() string {
	switch v.Kind {
	case NumberValue:
		return lexer.FormatNumber(v.Num)
	case StringValue:
		return quote(v.Str)
	case BoolValue:
		if v.Bool {
			return "True"
		}
		return "False"
	case NoneValue:
		return "None"
	}
	parts := make([]string, len(v.Items))
	for i, it := range v.Items {
		parts[i] = it.String()
	}
	if v.Kind == ListValue {
		return "[" + strings.Join(parts, ", ") + "]"
	}
	if len(parts) == 1 {
		return "(" + parts[0] + ",)"
	}
	return "(" + strings.Join(parts, ", ") + ")"
}

// NotLiteralError reports an expression that is not made only of literals.
type NotLiteralError struct {
	Line int
	What string
}

func (e *NotLiteralError) Error() string {
	return fmt.Sprintf("line %d: %s is not a literal", e.Line, e.What)
}

func notLiteral(n ast.Node, what string) error {
	return &NotLiteralError{Line: n.Line(), What: what}
}

// EvalLiteral evaluates an expression consisting only of numbers (with an
// optional sign), strings, True, False, None, tuples and lists. Any name,
// operator or trailer yields a *NotLiteralError.
func EvalLiteral(n ast.Node) (Value, error) {
	switch n := n.(type) {
	case *ast.Leaf:
		return evalLeaf(n)
	case *ast.Tree:
		switch n.Kind {
		case ast.Expression, ast.Atom:
			return EvalLiteral(n.Child(0))
		case ast.Disjunction, ast.Conjunction, ast.Comparison, ast.Sum, ast.Term, ast.Power, ast.Primary:
			if rest := n.Child(1); rest != nil {
				return Value{}, notLiteral(n, describe(rest))
			}
			return EvalLiteral(n.Child(0))
		case ast.Inversion:
			if len(n.Children) != 1 {
				return Value{}, notLiteral(n, "'not' expression")
			}
			return EvalLiteral(n.Child(0))
		case ast.Factor:
			if len(n.Children) == 1 {
				return EvalLiteral(n.Child(0))
			}
			return evalSigned(n)
		case ast.Tuple:
			return evalTuple(n)
		case ast.List:
			items, err := evalItems(n.Child(1))
			if err != nil {
				return Value{}, err
			}
			return Value{Kind: ListValue, Items: items}, nil
		}
		return Value{}, notLiteral(n, n.Kind.String())
	}
	return Value{}, fmt.Errorf("no expression")
}

func evalLeaf(l *ast.Leaf) (Value, error) {
	switch l.Kind() {
	case lexer.NUMBER:
		return Value{Kind: NumberValue, Num: l.Token.Number}, nil
	case lexer.STRING:
		return Value{Kind: StringValue, Str: unescape(l.Token.Text)}, nil
	case lexer.TRUE:
		return Value{Kind: BoolValue, Bool: true}, nil
	case lexer.FALSE:
		return Value{Kind: BoolValue}, nil
	case lexer.NONE:
		return Value{Kind: NoneValue}, nil
	case lexer.IDENTIFIER:
		return Value{}, notLiteral(l, fmt.Sprintf("name %q", l.Text()))
	}
	return Value{}, notLiteral(l, l.Kind().String())
}

func evalSigned(f *ast.Tree) (Value, error) {
	v, err := EvalLiteral(f.Child(1))
	if err != nil {
		return Value{}, err
	}
	if !v.IsNumber() {
		return Value{}, notLiteral(f, "signed "+kindName(v.Kind))
	}
	if f.LeafAt(0).Kind() == lexer.MINUS {
		v.Num = -v.Num
	}
	return v, nil
}

// evalTuple follows the target language: "(x)" is x itself, while "(x,)"
// and "(x, y)" are tuples.
func evalTuple(t *ast.Tree) (Value, error) {
	exprs := t.TreeAt(1)
	if exprs != nil && exprs.Child(1) == nil {
		return EvalLiteral(exprs.Child(0))
	}
	items, err := evalItems(exprs)
	if err != nil {
		return Value{}, err
	}
	return Value{Kind: TupleValue, Items: items}, nil
}

// evalItems evaluates an expressions chain.
func evalItems(n ast.Node) ([]Value, error) {
	items := []Value{}
	exprs, _ := n.(*ast.Tree)
	for exprs != nil {
		v, err := EvalLiteral(exprs.Child(0))
		if err != nil {
			return nil, err
		}
		items = append(items, v)
		rest := exprs.TreeAt(1)
		if rest == nil {
			break
		}
		exprs = rest.TreeAt(1)
	}
	return items, nil
}

// evalArguments evaluates every argument of a call trailer's arguments chain.
func evalArguments(args *ast.Tree) ([]Value, error) {
	var out []Value
	for args != nil {
		arg := args.TreeAt(0)
		if kw := arg.LeafAt(1); kw != nil {
			return nil, notLiteral(arg, "keyword argument")
		}
		v, err := EvalLiteral(arg.Child(0))
		if err != nil {
			return nil, err
		}
		out = append(out, v)
		rest := args.TreeAt(1)
		if rest == nil {
			break
		}
		args = rest.TreeAt(1)
	}
	return out, nil
}

// subject folds call arguments into the single value a signature check
// inspects: nil for no arguments, the value itself for one, and a tuple
// of all of them otherwise.
func subject(args []Value) *Value {
	switch len(args) {
	case 0:
		return nil
	case 1:
		return &args[0]
	}
	return &Value{Kind: TupleValue, Items: args}
}

func describe(n ast.Node) string {
	t, ok := n.(*ast.Tree)
	if !ok {
		return "expression"
	}
	switch t.Kind {
	case ast.PrimaryRest:
		return "call or attribute"
	case ast.PowerRest:
		return "'**' expression"
	}
	if op := t.LeafAt(0); op != nil {
		return fmt.Sprintf("%q expression", op.Text())
	}
	return t.Kind.String()
}

func kindName(k ValueKind) string {
	switch k {
	case NumberValue:
		return "number"
	case StringValue:
		return "string"
	case BoolValue:
		return "boolean"
	case NoneValue:
		return "None"
	case TupleValue:
		return "tuple"
	}
	return "list"
}

var quoter = strings.NewReplacer(`\`, `\\`, `"`, `\"`, "\n", `\n`, "\t", `\t`)

func quote(s string) string { return `"` + quoter.Replace(s) + `"` }

// unescape decodes the backslash escapes of a string body. Unknown
// escapes keep their backslash.
func unescape(body string) string {
	if !strings.Contains(body, `\`) {
		return body
	}
	var sb strings.Builder
	for i := 0; i < len(body); i++ {
		c := body[i]
		if c != '\\' || i+1 == len(body) {
			sb.WriteByte(c)
			continue
		}
		i++
		switch body[i] {
		case 'n':
			sb.WriteByte('\n')
		case 't':
			sb.WriteByte('\t')
		case '\\', '"', '\'':
			sb.WriteByte(body[i])
		default:
			sb.WriteByte('\\')
			sb.WriteByte(body[i])
		}
	}
	return sb.String()
}
