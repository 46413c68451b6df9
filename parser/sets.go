package parser

import (
	"math/bits"

	"github.com/rubiojr/curly/lexer"
)

// set is a bitset of token kinds used for first and follow sets.
type set uint64

func setOf(kinds ...lexer.Kind) set {
	var s set
	for _, k := range kinds {
		s |= 1 << k
	}
	return s
}

func (s set) has(k lexer.Kind) bool { return s&(1<<k) != 0 }

func (s set) kinds() []lexer.Kind {
	var out []lexer.Kind
	for v := uint64(s); v != 0; v &= v - 1 {
		out = append(out, lexer.Kind(bits.TrailingZeros64(v)))
	}
	return out
}

var (
	stmtEnd = setOf(lexer.NEWLINE, lexer.SEMICOLON, lexer.END, lexer.RBRACE)

	firstAtom = setOf(lexer.IDENTIFIER, lexer.TRUE, lexer.FALSE, lexer.NONE,
		lexer.NUMBER, lexer.STRING, lexer.LPAREN, lexer.LBRACKET)
	firstExpr     = firstAtom | setOf(lexer.NOT, lexer.PLUS, lexer.MINUS)
	firstCompound = setOf(lexer.DEF, lexer.IF, lexer.FOR, lexer.WHILE)
	firstSimple   = firstExpr | setOf(lexer.RETURN, lexer.IMPORT, lexer.GLOBAL,
		lexer.PASS, lexer.BREAK, lexer.CONTINUE)
	firstStmt    = firstCompound | firstSimple | setOf(lexer.NEWLINE)
	firstTrailer = setOf(lexer.DOT, lexer.LPAREN, lexer.LBRACKET)

	compOps = setOf(lexer.EQ, lexer.NOTEQ, lexer.LT, lexer.LTEQ, lexer.GT, lexer.GTEQ)
	sumOps  = setOf(lexer.PLUS, lexer.MINUS)
	termOps = setOf(lexer.TIMES, lexer.DIVIDE)
	assigns = setOf(lexer.ASSIGN, lexer.AUGASSIGN)

	// Tokens that may close an expression in any context.
	exprEnd = stmtEnd | assigns | setOf(lexer.RPAREN, lexer.RBRACKET, lexer.COMMA, lexer.COLON)

	followDisjunction = exprEnd
	followConjunction = followDisjunction | setOf(lexer.OR)
	followComparison  = followConjunction | setOf(lexer.AND)
	followSum         = followComparison | compOps
	followTerm        = followSum | sumOps
	followFactor      = followTerm | termOps
	followPrimary     = followFactor | setOf(lexer.POWER)

	// A compound statement ends where the next statement, or the
	// enclosing block or program, begins.
	followCompound  = firstStmt | setOf(lexer.END, lexer.RBRACE)
	followBlockTail = setOf(lexer.END, lexer.RBRACE, lexer.ELIF, lexer.ELSE)
	followImport    = stmtEnd
)
