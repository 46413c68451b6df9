package lexer

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Kind identifies the lexical class of a token.
type Kind uint8

const (
	ILLEGAL Kind = iota

	IDENTIFIER
	NUMBER
	STRING

	// operators and punctuation
	PLUS      // +
	MINUS     // -
	TIMES     // *
	DIVIDE    // /
	POWER     // **
	ASSIGN    // =
	AUGASSIGN // += -= *= /=
	EQ        // ==
	NOTEQ     // !=
	LT        // <
	LTEQ      // <=
	GT        // >
	GTEQ      // >=
	LPAREN    // (
	RPAREN    // )
	LBRACE    // {
	RBRACE    // }
	LBRACKET  // [
	RBRACKET  // ]
	DOT       // .
	COMMA     // ,
	COLON     // :
	SEMICOLON // ;

	keywordBeg
	DEF
	IF
	ELSE
	ELIF
	FOR
	IN
	WHILE
	BREAK
	CONTINUE
	RETURN
	PASS
	IMPORT
	AS
	GLOBAL
	TRUE
	FALSE
	NONE
	OR
	AND
	NOT
	keywordEnd

	END
	NEWLINE

	kindCount
)

var kindNames = [...]string{
	ILLEGAL:    "ILLEGAL",
	IDENTIFIER: "IDENTIFIER",
	NUMBER:     "NUMBER",
	STRING:     "STRING",
	PLUS:       "PLUS",
	MINUS:      "MINUS",
	TIMES:      "TIMES",
	DIVIDE:     "DIVIDE",
	POWER:      "POWER",
	ASSIGN:     "ASSIGN",
	AUGASSIGN:  "AUGASSIGN",
	EQ:         "EQ",
	NOTEQ:      "NOTEQ",
	LT:         "LT",
	LTEQ:       "LTEQ",
	GT:         "GT",
	GTEQ:       "GTEQ",
	LPAREN:     "LPAREN",
	RPAREN:     "RPAREN",
	LBRACE:     "LBRACE",
	RBRACE:     "RBRACE",
	LBRACKET:   "LBRACKET",
	RBRACKET:   "RBRACKET",
	DOT:        "DOT",
	COMMA:      "COMMA",
	COLON:      "COLON",
	SEMICOLON:  "SEMICOLON",
	DEF:        "DEF",
	IF:         "IF",
	ELSE:       "ELSE",
	ELIF:       "ELIF",
	FOR:        "FOR",
	IN:         "IN",
	WHILE:      "WHILE",
	BREAK:      "BREAK",
	CONTINUE:   "CONTINUE",
	RETURN:     "RETURN",
	PASS:       "PASS",
	IMPORT:     "IMPORT",
	AS:         "AS",
	GLOBAL:     "GLOBAL",
	TRUE:       "TRUE",
	FALSE:      "FALSE",
	NONE:       "NONE",
	OR:         "OR",
	AND:        "AND",
	NOT:        "NOT",
	END:        "END",
	NEWLINE:    "NEWLINE",
}

// spellings holds the canonical source text of fixed-spelling kinds.
var spellings = [...]string{
	PLUS:      "+",
	MINUS:     "-",
	TIMES:     "*",
	DIVIDE:    "/",
	POWER:     "**",
	ASSIGN:    "=",
	EQ:        "==",
	NOTEQ:     "!=",
	LT:        "<",
	LTEQ:      "<=",
	GT:        ">",
	GTEQ:      ">=",
	LPAREN:    "(",
	RPAREN:    ")",
	LBRACE:    "{",
	RBRACE:    "}",
	LBRACKET:  "[",
	RBRACKET:  "]",
	DOT:       ".",
	COMMA:     ",",
	COLON:     ":",
	SEMICOLON: ";",
	DEF:       "def",
	IF:        "if",
	ELSE:      "else",
	ELIF:      "elif",
	FOR:       "for",
	IN:        "in",
	WHILE:     "while",
	BREAK:     "break",
	CONTINUE:  "continue",
	RETURN:    "return",
	PASS:      "pass",
	IMPORT:    "import",
	AS:        "as",
	GLOBAL:    "global",
	TRUE:      "True",
	FALSE:     "False",
	NONE:      "None",
	OR:        "or",
	AND:       "and",
	NOT:       "not",
	NEWLINE:   "\n",
	kindCount: "",
}

// keywords maps the lower-cased spelling of every keyword to its kind.
var keywords map[string]Kind

func init() {
	keywords = make(map[string]Kind, keywordEnd-keywordBeg)
	for k := keywordBeg + 1; k < keywordEnd; k++ {
		keywords[strings.ToLower(spellings[k])] = k
	}
}

// Lookup maps an identifier to its keyword kind, matching
// case-insensitively. It returns IDENTIFIER for non-keywords.
func Lookup(ident string) Kind {
	if k, ok := keywords[strings.ToLower(ident)]; ok {
		return k
	}
	return IDENTIFIER
}

// Name returns the enumeration name of k, e.g. "RPAREN".
func (k Kind) Name() string {
	if int(k) < len(kindNames) && kindNames[k] != "" {
		return kindNames[k]
	}
	return fmt.Sprintf("Kind(%d)", k)
}

// Spelling returns the canonical source text of k, or "" for kinds whose
// text varies (identifiers, literals, augmented assignment, END).
func (k Kind) Spelling() string {
	if int(k) < len(spellings) {
		return spellings[k]
	}
	return ""
}

// String describes k for error messages.
func (k Kind) String() string {
	switch k {
	case IDENTIFIER:
		return "identifier"
	case NUMBER:
		return "number"
	case STRING:
		return "string"
	case AUGASSIGN:
		return "augmented assignment"
	case END:
		return "end of input"
	case NEWLINE:
		return "newline"
	}
	if s := k.Spelling(); s != "" {
		return "'" + s + "'"
	}
	return k.Name()
}

// IsKeyword reports whether k is a keyword kind.
func (k Kind) IsKeyword() bool { return k > keywordBeg && k < keywordEnd }

// Token is a lexical unit. Number is only meaningful for NUMBER tokens;
// Text holds the source spelling for every other kind (for STRING, the
// body between the quotes).
type Token struct {
	Kind   Kind
	Text   string
	Number float64
	Line   int
	Quote  byte // opening quote of a STRING token
}

// Lexeme returns the token's text, formatting numbers with FormatNumber.
func (t Token) Lexeme() string {
	if t.Kind == NUMBER {
		return FormatNumber(t.Number)
	}
	return t.Text
}

// String renders the token as a fixed-width row: kind, value, line.
func (t Token) String() string {
	val := t.Lexeme()
	if t.Kind == NEWLINE {
		val = `\n`
	}
	return fmt.Sprintf("%-15s %-15s %d", t.Kind.Name(), val, t.Line)
}

// FormatNumber renders a numeric literal value: integral values print as
// integers, others as the shortest decimal that round-trips, switching to
// exponent form for very small or very large magnitudes.
func FormatNumber(v float64) string {
	if v == math.Trunc(v) {
		return strconv.FormatFloat(v, 'f', -1, 64)
	}
	if v != 0 {
		exp := strconv.FormatFloat(v, 'e', -1, 64)
		i := strings.LastIndexByte(exp, 'e')
		n, _ := strconv.Atoi(exp[i+1:])
		if n < -4 || n >= 16 {
			return exp
		}
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}
