// Package lexer turns comment-stripped brace-form source into tokens.
//
// The scanner is a deterministic finite-state machine with one character
// of lookahead and no backtracking. Each call to Tokenize owns its own
// state, so concurrent translations never share a cursor.
package lexer

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"unicode"
)

// LexicalError reports input the scanner cannot tokenize.
type LexicalError struct {
	Line    int
	Context string // pending token text plus the offending character
	Msg     string
}

func (e *LexicalError) Error() string {
	if e.Context == "" {
		return fmt.Sprintf("line %d: lexical error: %s", e.Line, e.Msg)
	}
	return fmt.Sprintf("line %d: lexical error: %s: %q", e.Line, e.Msg, e.Context)
}

type state uint8

const (
	stDefault    state = iota
	stIdent            // identifier or keyword
	stDouble           // "..." body
	stSingle           // '...' body
	stInt              // integer digits
	stFracStart        // integer digits followed by '.'
	stFrac             // fraction digits
	stExpMark          // seen 'e' or 'E'
	stExpSign          // seen exponent sign
	stExp              // exponent digits
	stDot              // bare '.', number or member access
	stArith            // + - * / pending
	stRelational       // = < > ! pending
)

const eof rune = -1

type lexer struct {
	src    []rune
	pos    int
	line   int
	state  state
	buf    []rune
	quote  rune
	escape bool
	tokens []Token
}

// Tokenize scans src into a token sequence terminated by exactly one END
// token. src is expected to be comment-stripped already.
func Tokenize(src string) ([]Token, error) {
	lx := &lexer{src: []rune(src), line: 1}
	if err := lx.run(); err != nil {
		return nil, err
	}
	return lx.tokens, nil
}

func (lx *lexer) peek() rune {
	if lx.pos < len(lx.src) {
		return lx.src[lx.pos]
	}
	return eof
}

// take appends the current character to the pending token and advances.
func (lx *lexer) take(c rune) {
	lx.buf = append(lx.buf, c)
	lx.pos++
}

func (lx *lexer) emit(k Kind, text string) {
	lx.tokens = append(lx.tokens, Token{Kind: k, Text: text, Line: lx.line})
	lx.buf = lx.buf[:0]
	lx.state = stDefault
}

func (lx *lexer) emitNumber() error {
	text := string(lx.buf)
	v, err := strconv.ParseFloat(text, 64)
	if err != nil && !errors.Is(err, strconv.ErrRange) {
		return lx.fail("malformed number", 0)
	}
	if math.IsInf(v, 0) {
		return lx.fail("number out of range", 0)
	}
	lx.tokens = append(lx.tokens, Token{Kind: NUMBER, Text: text, Number: v, Line: lx.line})
	lx.buf = lx.buf[:0]
	lx.state = stDefault
	return nil
}

func (lx *lexer) fail(msg string, c rune) error {
	ctx := string(lx.buf)
	if c > 0 && c != '\n' {
		ctx += string(c)
	}
	return &LexicalError{Line: lx.line, Context: ctx, Msg: msg}
}

var singles = map[rune]Kind{
	':': COLON,
	',': COMMA,
	';': SEMICOLON,
	'(': LPAREN,
	')': RPAREN,
	'{': LBRACE,
	'}': RBRACE,
	'[': LBRACKET,
	']': RBRACKET,
}

func isIdentStart(c rune) bool { return c == '_' || unicode.IsLetter(c) }
func isIdentPart(c rune) bool  { return isIdentStart(c) || isDigit(c) }
func isDigit(c rune) bool      { return c >= '0' && c <= '9' }

func (lx *lexer) run() error {
	for {
		c := lx.peek()
		switch lx.state {
		case stDefault:
			switch {
			case c == eof:
				lx.tokens = append(lx.tokens, Token{Kind: END, Line: lx.line})
				return nil
			case c == '\n':
				lx.emit(NEWLINE, "\n")
				lx.line++
				lx.pos++
			case c == ' ' || c == '\t':
				lx.pos++
			case isIdentStart(c):
				lx.take(c)
				lx.state = stIdent
			case isDigit(c):
				lx.take(c)
				lx.state = stInt
			case c == '.':
				lx.take(c)
				lx.state = stDot
			case c == '+' || c == '-' || c == '*' || c == '/':
				lx.take(c)
				lx.state = stArith
			case c == '=' || c == '<' || c == '>' || c == '!':
				lx.take(c)
				lx.state = stRelational
			case c == '"':
				lx.pos++
				lx.quote = c
				lx.state = stDouble
			case c == '\'':
				lx.pos++
				lx.quote = c
				lx.state = stSingle
			default:
				k, ok := singles[c]
				if !ok {
					return lx.fail("unrecognized character", c)
				}
				lx.pos++
				lx.emit(k, string(c))
			}

		case stIdent:
			if c != eof && isIdentPart(c) {
				lx.take(c)
				continue
			}
			text := string(lx.buf)
			lx.emit(Lookup(text), text)

		case stDouble, stSingle:
			switch {
			case c == eof || c == '\n':
				return lx.fail("unterminated string", c)
			case lx.escape:
				lx.escape = false
				lx.take(c)
			case c == '\\':
				lx.escape = true
				lx.take(c)
			case c == lx.quote:
				lx.pos++
				lx.tokens = append(lx.tokens, Token{Kind: STRING, Text: string(lx.buf), Line: lx.line, Quote: byte(lx.quote)})
				lx.buf = lx.buf[:0]
				lx.state = stDefault
			default:
				lx.take(c)
			}

		case stInt:
			switch {
			case isDigit(c):
				lx.take(c)
			case c == '.':
				lx.take(c)
				lx.state = stFracStart
			case c == 'e' || c == 'E':
				lx.take(c)
				lx.state = stExpMark
			default:
				if err := lx.emitNumber(); err != nil {
					return err
				}
			}

		case stFracStart, stFrac:
			switch {
			case isDigit(c):
				lx.take(c)
				lx.state = stFrac
			case c == 'e' || c == 'E':
				lx.take(c)
				lx.state = stExpMark
			default:
				if err := lx.emitNumber(); err != nil {
					return err
				}
			}

		case stExpMark:
			switch {
			case c == '+' || c == '-':
				lx.take(c)
				lx.state = stExpSign
			case isDigit(c):
				lx.take(c)
				lx.state = stExp
			default:
				return lx.fail("malformed exponent", c)
			}

		case stExpSign:
			if !isDigit(c) {
				return lx.fail("malformed exponent", c)
			}
			lx.take(c)
			lx.state = stExp

		case stExp:
			if isDigit(c) {
				lx.take(c)
				continue
			}
			if err := lx.emitNumber(); err != nil {
				return err
			}

		case stDot:
			if isDigit(c) {
				lx.take(c)
				lx.state = stFrac
				continue
			}
			lx.emit(DOT, ".")

		case stArith:
			op := lx.buf[0]
			switch {
			case c == '=':
				lx.take(c)
				lx.emit(AUGASSIGN, string(lx.buf))
			case op == '*' && c == '*':
				lx.take(c)
				lx.emit(POWER, "**")
			default:
				lx.emit(arithKinds[op], string(op))
			}

		case stRelational:
			op := lx.buf[0]
			if c == '=' {
				lx.take(c)
				lx.emit(relationalKinds[op], string(lx.buf))
				continue
			}
			switch op {
			case '=':
				lx.emit(ASSIGN, "=")
			case '<':
				lx.emit(LT, "<")
			case '>':
				lx.emit(GT, ">")
			default:
				return lx.fail("unrecognized character", c)
			}
		}
	}
}

var arithKinds = map[rune]Kind{'+': PLUS, '-': MINUS, '*': TIMES, '/': DIVIDE}

var relationalKinds = map[rune]Kind{'=': EQ, '<': LTEQ, '>': GTEQ, '!': NOTEQ}
