package lexer

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func kinds(toks []Token) []Kind {
	out := make([]Kind, len(toks))
	for i, t := range toks {
		out[i] = t.Kind
	}
	return out
}

func lex(t *testing.T, src string) []Token {
	t.Helper()
	toks, err := Tokenize(src)
	require.NoError(t, err)
	return toks
}

func TestTokenizeEmpty(t *testing.T) {
	toks := lex(t, "")
	require.Len(t, toks, 1)
	assert.Equal(t, END, toks[0].Kind)
	assert.Equal(t, 1, toks[0].Line)
}

func TestTokenizeOperators(t *testing.T) {
	tests := []struct {
		src  string
		want []Kind
	}{
		{"==", []Kind{EQ, END}},
		{"=x", []Kind{ASSIGN, IDENTIFIER, END}},
		{"= =", []Kind{ASSIGN, ASSIGN, END}},
		{"<= < >= > !=", []Kind{LTEQ, LT, GTEQ, GT, NOTEQ, END}},
		{"+ - * /", []Kind{PLUS, MINUS, TIMES, DIVIDE, END}},
		{"+= -= *= /=", []Kind{AUGASSIGN, AUGASSIGN, AUGASSIGN, AUGASSIGN, END}},
		{"**", []Kind{POWER, END}},
		{"2**3", []Kind{NUMBER, POWER, NUMBER, END}},
		{"***", []Kind{POWER, TIMES, END}},
		{"()[]{}.,:;", []Kind{LPAREN, RPAREN, LBRACKET, RBRACKET, LBRACE, RBRACE, DOT, COMMA, COLON, SEMICOLON, END}},
	}
	for _, tt := range tests {
		t.Run(tt.src, func(t *testing.T) {
			assert.Equal(t, tt.want, kinds(lex(t, tt.src)))
		})
	}
}

func TestAugAssignText(t *testing.T) {
	toks := lex(t, "x -= 1")
	require.Equal(t, AUGASSIGN, toks[1].Kind)
	assert.Equal(t, "-=", toks[1].Text)
}

func TestKeywordsCaseInsensitive(t *testing.T) {
	toks := lex(t, "def IF Else true NONE and_x")
	assert.Equal(t, []Kind{DEF, IF, ELSE, TRUE, NONE, IDENTIFIER, END}, kinds(toks))
	assert.Equal(t, "IF", toks[1].Text)
	assert.Equal(t, "Else", toks[2].Text)
	assert.Equal(t, "and_x", toks[5].Text)
}

func TestNumbers(t *testing.T) {
	tests := []struct {
		src  string
		want float64
	}{
		{"3", 3},
		{"3.0", 3},
		{"3.14", 3.14},
		{"3.", 3},
		{".5", 0.5},
		{"1e-5", 0.00001},
		{"1E+3", 1000},
		{"2.5e2", 250},
		{"1.e2", 100},
	}
	for _, tt := range tests {
		t.Run(tt.src, func(t *testing.T) {
			toks := lex(t, tt.src)
			require.Len(t, toks, 2)
			assert.Equal(t, NUMBER, toks[0].Kind)
			assert.Equal(t, tt.want, toks[0].Number)
		})
	}
}

func TestDotDisambiguation(t *testing.T) {
	assert.Equal(t, []Kind{IDENTIFIER, DOT, IDENTIFIER, END}, kinds(lex(t, "turtle.color")))
	assert.Equal(t, []Kind{DOT, NUMBER, END}, kinds(lex(t, "..5")))
	assert.Equal(t, []Kind{NUMBER, END}, kinds(lex(t, ".25")))
}

func TestStrings(t *testing.T) {
	toks := lex(t, `"abc" 'd"e' "a\"b"`)
	require.Equal(t, []Kind{STRING, STRING, STRING, END}, kinds(toks))
	assert.Equal(t, "abc", toks[0].Text)
	assert.Equal(t, byte('"'), toks[0].Quote)
	assert.Equal(t, `d"e`, toks[1].Text)
	assert.Equal(t, byte('\''), toks[1].Quote)
	assert.Equal(t, `a\"b`, toks[2].Text)
}

func TestNewlineLines(t *testing.T) {
	toks := lex(t, "a\nb\n")
	require.Equal(t, []Kind{IDENTIFIER, NEWLINE, IDENTIFIER, NEWLINE, END}, kinds(toks))
	assert.Equal(t, []int{1, 1, 2, 2, 3}, []int{toks[0].Line, toks[1].Line, toks[2].Line, toks[3].Line, toks[4].Line})
}

func TestLinesNonDecreasingAndSingleEnd(t *testing.T) {
	toks := lex(t, "def f(x):\n{return x+1}\n\nf(2)\n")
	ends := 0
	for i, tok := range toks {
		if tok.Kind == END {
			ends++
		}
		if i > 0 {
			assert.GreaterOrEqual(t, tok.Line, toks[i-1].Line)
		}
	}
	assert.Equal(t, 1, ends)
	assert.Equal(t, END, toks[len(toks)-1].Kind)
}

func TestLexicalErrors(t *testing.T) {
	tests := []struct {
		name string
		src  string
		line int
		msg  string
	}{
		{"unterminated double", "x = 1\n\"abc\nx", 2, "unterminated string"},
		{"unterminated single at eof", "'abc", 1, "unterminated string"},
		{"bad char", "x = $", 1, "unrecognized character"},
		{"bare bang", "!x", 1, "unrecognized character"},
		{"exponent without digits", "1e", 1, "malformed exponent"},
		{"exponent sign without digits", "\n\n1e-x", 3, "malformed exponent"},
		{"overflow", "1e999", 1, "number out of range"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			toks, err := Tokenize(tt.src)
			require.Error(t, err)
			assert.Nil(t, toks)
			var lexErr *LexicalError
			require.True(t, errors.As(err, &lexErr))
			assert.Equal(t, tt.line, lexErr.Line)
			assert.Equal(t, tt.msg, lexErr.Msg)
		})
	}
}

func TestLexicalErrorContext(t *testing.T) {
	_, err := Tokenize("1e-x")
	var lexErr *LexicalError
	require.True(t, errors.As(err, &lexErr))
	assert.Equal(t, "1e-x", lexErr.Context)
	assert.Contains(t, err.Error(), "line 1")
}

func TestFormatNumber(t *testing.T) {
	tests := []struct {
		v    float64
		want string
	}{
		{3, "3"},
		{-2, "-2"},
		{0, "0"},
		{3.14, "3.14"},
		{0.1, "0.1"},
		{1e-5, "1e-05"},
		{0.0001, "0.0001"},
		{1e20, "100000000000000000000"},
		{2.5, "2.5"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, FormatNumber(tt.v), "FormatNumber(%v)", tt.v)
	}
}

func TestKindStrings(t *testing.T) {
	assert.Equal(t, "RPAREN", RPAREN.Name())
	assert.Equal(t, "')'", RPAREN.String())
	assert.Equal(t, "end of input", END.String())
	assert.Equal(t, "'True'", TRUE.String())
	assert.True(t, AND.IsKeyword())
	assert.False(t, IDENTIFIER.IsKeyword())
	assert.Equal(t, IDENTIFIER, Lookup("turtle"))
	assert.Equal(t, GLOBAL, Lookup("Global"))
}

func TestTokenString(t *testing.T) {
	tok := Token{Kind: NUMBER, Number: 2, Text: "2.0", Line: 4}
	assert.Equal(t, "NUMBER          2               4", tok.String())
}
