package compiler

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rubiojr/curly/ast"
)

// valueOf parses "v = <expr>" and returns the expression tree.
func valueOf(t *testing.T, expr string) *ast.Tree {
	t.Helper()
	res := translate(t, "v = "+expr+"\n")
	opt := ast.Find(res.Tree, ast.IdentifierOpt)
	require.NotNil(t, opt)
	return opt.TreeAt(1)
}

func TestEvalLiteral(t *testing.T) {
	tests := []struct {
		expr string
		want string
		kind ValueKind
	}{
		{"3", "3", NumberValue},
		{"-3.5", "-3.5", NumberValue},
		{"+-2", "-2", NumberValue},
		{"(1)", "1", NumberValue},
		{"((1))", "1", NumberValue},
		{"(1,)", "(1,)", TupleValue},
		{"()", "()", TupleValue},
		{"(1, 'a')", `(1, "a")`, TupleValue},
		{"[]", "[]", ListValue},
		{"[1, [True, None], (2, 3)]", "[1, [True, None], (2, 3)]", ListValue},
		{"'a\\nb'", `"a\nb"`, StringValue},
		{"False", "False", BoolValue},
	}
	for _, tt := range tests {
		t.Run(tt.expr, func(t *testing.T) {
			v, err := EvalLiteral(valueOf(t, tt.expr))
			require.NoError(t, err)
			assert.Equal(t, tt.kind, v.Kind)
			assert.Equal(t, tt.want, v.String())
		})
	}
}

func TestEvalLiteralRejects(t *testing.T) {
	tests := []struct {
		expr string
		what string
	}{
		{"x", `name "x"`},
		{"1 + 2", `"+" expression`},
		{"2 * 3", `"*" expression`},
		{"2 ** 3", "'**' expression"},
		{"f(1)", "call or attribute"},
		{"not True", "'not' expression"},
		{"-'a'", "signed string"},
		{"(1, y)", `name "y"`},
		{"1 < 2", `"<" expression`},
	}
	for _, tt := range tests {
		t.Run(tt.expr, func(t *testing.T) {
			_, err := EvalLiteral(valueOf(t, tt.expr))
			require.Error(t, err)
			var nl *NotLiteralError
			require.True(t, errors.As(err, &nl))
			assert.Equal(t, tt.what, nl.What)
			assert.Equal(t, 1, nl.Line)
		})
	}
}

func TestUnescape(t *testing.T) {
	assert.Equal(t, "plain", unescape("plain"))
	assert.Equal(t, "a\tb\n", unescape(`a\tb\n`))
	assert.Equal(t, `q"'\`, unescape(`q\"\'\\`))
	assert.Equal(t, `\d`, unescape(`\d`))
	assert.Equal(t, `end\`, unescape(`end\`))
}

func TestSubject(t *testing.T) {
	assert.Nil(t, subject(nil))
	one := []Value{{Kind: NumberValue, Num: 1}}
	assert.Equal(t, &one[0], subject(one))
	two := []Value{{Kind: NumberValue, Num: 1}, {Kind: StringValue, Str: "a"}}
	s := subject(two)
	require.NotNil(t, s)
	assert.True(t, s.IsTuple())
	assert.Len(t, s.Items, 2)
}

func TestSignatureRegistry(t *testing.T) {
	assert.Equal(t, []string{"color", "distance", "setpos", "towards"}, SignatureNames())
	sig, ok := LookupSignature("setpos")
	require.True(t, ok)
	assert.Equal(t, "setpos(x, y=None)", sig.Usage)
	assert.NotEmpty(t, sig.Forms)
	_, ok = LookupSignature("forward")
	assert.False(t, ok)
}

func TestArgErrorString(t *testing.T) {
	sig, _ := LookupSignature("color")
	err := sig.Check(sig, &Value{Kind: NumberValue, Num: 5})
	require.Error(t, err)
	var ae *ArgError
	require.True(t, errors.As(err, &ae))
	assert.Equal(t, TypeError, ae.Kind)
	assert.Equal(t, "type error: color(*args): unsupported argument 5", err.Error())
}
