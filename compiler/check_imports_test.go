package compiler

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rubiojr/curly/ast"
)

func diagnose(t *testing.T, src string) []ast.Diagnostic {
	t.Helper()
	return translate(t, src).Diagnostics
}

func TestNoModuleImported(t *testing.T) {
	diags := diagnose(t, "x = 1\nturtle.setpos(1)\n")
	require.Len(t, diags, 1)
	assert.Equal(t, ast.SeverityWarning, diags[0].Severity)
	assert.Equal(t, "no module imported", diags[0].Message)
	assert.Equal(t, 0, diags[0].Line)
	assert.Equal(t, "imports", diags[0].Check)
}

func TestImportConflict(t *testing.T) {
	diags := diagnose(t, "import turtle\nturtle = 5\nturtle(1)\n")
	require.Len(t, diags, 2)
	for i, d := range diags {
		assert.Equal(t, ast.SeverityWarning, d.Severity)
		assert.Contains(t, d.Message, "conflicts with imported module name")
		assert.Equal(t, i+2, d.Line)
	}
}

func TestNeverImported(t *testing.T) {
	diags := diagnose(t, "import turtle\nturtel.forward(10)\n")
	require.Len(t, diags, 1)
	assert.Equal(t, 2, diags[0].Line)
	assert.Contains(t, diags[0].Message, "never imported")
	assert.Contains(t, diags[0].Message, `did you mean "turtle"?`)
}

func TestSeveralImports(t *testing.T) {
	diags := diagnose(t, "import turtle\nimport math\nturtle.forward(1)\nmath.sqrt(2)\nx = math.pi\n")
	assert.Empty(t, diags)
}

func TestAliasBindsOnlyAlias(t *testing.T) {
	diags := diagnose(t, "import turtle as t\nt.setpos(1, 2)\nturtle.setpos(1, 2)\n")
	require.Len(t, diags, 1)
	assert.Equal(t, 3, diags[0].Line)
	assert.Contains(t, diags[0].Message, "never imported")
	assert.NotContains(t, diags[0].Message, "did you mean")
}

func TestDottedImportBindsFirstComponent(t *testing.T) {
	diags := diagnose(t, "import os.path\nos.path.join(\"a\")\n")
	assert.Empty(t, diags)
}

func TestPointSignatures(t *testing.T) {
	tests := []struct {
		args string
		msg  string // empty when the call is accepted
	}{
		{"1, 2", ""},
		{"(1, 2)", ""},
		{"[1, 2]", ""},
		{"-1, +2.5", ""},
		{"(1,)", "tuple must contain 2 numbers"},
		{"1", "expects 2 numbers"},
		{"", "got no arguments"},
		{"1, 2, 3", "expects 2 numbers"},
		{"\"a\", 2", "not a number"},
		{"(1, 2), (3, 4)", "not a number"},
		{"None", "expects 2 numbers"},
	}
	for _, member := range []string{"setpos", "towards", "distance"} {
		for _, tt := range tests {
			t.Run(member+"("+tt.args+")", func(t *testing.T) {
				diags := diagnose(t, "import turtle\nturtle."+member+"("+tt.args+")\n")
				if tt.msg == "" {
					assert.Empty(t, diags)
					return
				}
				require.Len(t, diags, 1)
				assert.Equal(t, ast.SeverityError, diags[0].Severity)
				assert.Contains(t, diags[0].Message, "type error")
				assert.Contains(t, diags[0].Message, tt.msg)
				assert.Contains(t, diags[0].Message, "turtle."+member)
			})
		}
	}
}

func TestColorSignature(t *testing.T) {
	tests := []struct {
		args string
		kind string // "", "type error" or "value error"
	}{
		{"", ""},
		{"\"red\"", ""},
		{"(0.1, 0.2, 0.3)", ""},
		{"0.1, 0.2, 0.3", ""},
		{"1, 1, 1", ""},
		{"((0.1, 0.2, 0.3), (0.4, 0.5, 0.6))", ""},
		{"(0.1, 0.2, 0.3), (0.4, 0.5, 0.6)", ""},
		{"[0.1, 0.2, 0.3]", ""},
		{"[\"red\", \"blue\"]", ""},
		{"(1.2,1.3,1.4)", "value error"},
		{"0.5, 2, 0.5", "value error"},
		{"(0.1, 0.2, 0.3), (0.4, 0.5, 1.6)", "value error"},
		{"[1, 2, 3]", "value error"},
		{"[\"red\", 1]", "type error"},
		{"5", "type error"},
		{"(1, 2)", "type error"},
		{"(\"a\", \"b\", \"c\")", "type error"},
		{"(0.1, 0.2), (0.3, 0.4)", "type error"},
		{"\"red\", \"blue\"", "type error"},
	}
	for _, tt := range tests {
		t.Run("color("+tt.args+")", func(t *testing.T) {
			diags := diagnose(t, "import turtle\nturtle.color("+tt.args+")\n")
			if tt.kind == "" {
				assert.Empty(t, diags)
				return
			}
			require.Len(t, diags, 1)
			assert.Equal(t, ast.SeverityError, diags[0].Severity)
			assert.Contains(t, diags[0].Message, tt.kind)
		})
	}
}

func TestNonLiteralArgumentsSkipped(t *testing.T) {
	tests := []string{
		"turtle.setpos(x, 2)",
		"turtle.color(pencolor=\"red\")",
		"turtle.setpos(1 + 1, 2)",
		"turtle.color(rgb())",
	}
	for _, call := range tests {
		t.Run(call, func(t *testing.T) {
			diags := diagnose(t, "import turtle\n"+call+"\n")
			require.Len(t, diags, 1)
			assert.Equal(t, ast.SeverityInfo, diags[0].Severity)
			assert.Contains(t, diags[0].Message, "arguments not checked")
			assert.Equal(t, 2, diags[0].Line)
		})
	}
}

func TestChecksInsideBlocks(t *testing.T) {
	diags := diagnose(t, "import turtle\nfor i in range(3):\n{if i:\n{turtle.setpos(1)}\n}\n")
	require.Len(t, diags, 1)
	assert.Equal(t, 4, diags[0].Line)
}

func TestShapesNotInspected(t *testing.T) {
	for _, src := range []string{
		"import turtle\nturtle.speed = 3\n",
		"import turtle\nturtle.colour((2, 2, 2))\n",
		"import turtle\nturtle.screen.color(5)\n",
		"import turtle\nx = turtle.heading()\n",
	} {
		assert.Empty(t, diagnose(t, src), src)
	}
}

func TestDottedCallsAnywhereInStatement(t *testing.T) {
	diags := diagnose(t, "import turtle\nx = turtle.distance(1)\n")
	require.Len(t, diags, 1)
	assert.Equal(t, ast.SeverityError, diags[0].Severity)
	assert.Equal(t, 2, diags[0].Line)
	assert.Contains(t, diags[0].Message, "turtle.distance: type error")

	diags = diagnose(t, "import turtle\nd = turtel.distance(1, 2)\n")
	require.Len(t, diags, 1)
	assert.Equal(t, ast.SeverityWarning, diags[0].Severity)
	assert.Contains(t, diags[0].Message, `never imported: "turtel"`)
	assert.Contains(t, diags[0].Message, `did you mean "turtle"?`)

	diags = diagnose(t, "import turtle\nprint(turtle.towards((1,)), turtle.color(5))\n")
	require.Len(t, diags, 2)
	assert.Contains(t, diags[0].Message, "turtle.towards: type error: towards(x, y=None): tuple must contain 2 numbers")
	assert.Contains(t, diags[1].Message, "turtle.color: type error")

	assert.Empty(t, diagnose(t, "import turtle\nx = turtle.setpos(1, 2)\n"))
}

func TestConflictNeedsNoMemberAccess(t *testing.T) {
	diags := diagnose(t, "import turtle\nimport math\nturtle = math.pi\n")
	assert.Empty(t, diags)

	diags = diagnose(t, "import turtle\nturtle = [1, 2]\n")
	require.Len(t, diags, 1)
	assert.Contains(t, diags[0].Message, "conflicts with imported module name")
}

func TestImportTable(t *testing.T) {
	res := translate(t, "import turtle as t, math\nimport math\n")
	tbl := NewImportTable(res.Tree)
	assert.Equal(t, []string{"math", "t"}, tbl.Names())
	assert.Equal(t, 1, tbl["math"].Line())
}

func TestSuggest(t *testing.T) {
	assert.Equal(t, "turtle", Suggest("turtel", []string{"math", "turtle"}))
	assert.Equal(t, "turtle", Suggest("ttl", []string{"math", "turtle"}))
	assert.Equal(t, "", Suggest("zzz", []string{"math", "turtle"}))
	assert.Equal(t, "", Suggest("x", nil))
}
