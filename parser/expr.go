package parser

import (
	"github.com/rubiojr/curly/ast"
	"github.com/rubiojr/curly/lexer"
)

// expression parses a full expression. The caller guarantees the
// lookahead is in firstExpr or accepts the resulting error.
func (p *Parser) expression() (*ast.Tree, error) {
	d, err := p.disjunction()
	if err != nil {
		return nil, err
	}
	return ast.New(ast.Expression, d), nil
}

func (p *Parser) disjunction() (*ast.Tree, error) {
	lhs, err := p.conjunction()
	if err != nil {
		return nil, err
	}
	rest, err := p.binaryRest(ast.DisjunctionRest, setOf(lexer.OR), followDisjunction, p.conjunction)
	if err != nil {
		return nil, err
	}
	return ast.New(ast.Disjunction, lhs, rest), nil
}

func (p *Parser) conjunction() (*ast.Tree, error) {
	lhs, err := p.inversion()
	if err != nil {
		return nil, err
	}
	rest, err := p.binaryRest(ast.ConjunctionRest, setOf(lexer.AND), followConjunction, p.inversion)
	if err != nil {
		return nil, err
	}
	return ast.New(ast.Conjunction, lhs, rest), nil
}

func (p *Parser) inversion() (*ast.Tree, error) {
	if p.is(lexer.NOT) {
		not := p.next()
		inner, err := p.inversion()
		if err != nil {
			return nil, err
		}
		return ast.New(ast.Inversion, not, inner), nil
	}
	c, err := p.comparison()
	if err != nil {
		return nil, err
	}
	return ast.New(ast.Inversion, c), nil
}

func (p *Parser) comparison() (*ast.Tree, error) {
	lhs, err := p.sum()
	if err != nil {
		return nil, err
	}
	rest, err := p.binaryRest(ast.ComparisonRest, compOps, followComparison, p.sum)
	if err != nil {
		return nil, err
	}
	return ast.New(ast.Comparison, lhs, rest), nil
}

func (p *Parser) sum() (*ast.Tree, error) {
	lhs, err := p.term()
	if err != nil {
		return nil, err
	}
	rest, err := p.binaryRest(ast.SumRest, sumOps, followSum, p.term)
	if err != nil {
		return nil, err
	}
	return ast.New(ast.Sum, lhs, rest), nil
}

func (p *Parser) term() (*ast.Tree, error) {
	lhs, err := p.factor()
	if err != nil {
		return nil, err
	}
	rest, err := p.binaryRest(ast.TermRest, termOps, followTerm, p.factor)
	if err != nil {
		return nil, err
	}
	return ast.New(ast.Term, lhs, rest), nil
}

// binaryRest parses the right-nested tail "op operand tail?" of a
// left-operand production.
func (p *Parser) binaryRest(kind ast.Kind, ops, follow set, operand func() (*ast.Tree, error)) (ast.Node, error) {
	if !p.at(ops) {
		return nil, p.empty(ops, follow)
	}
	op := p.next()
	rhs, err := operand()
	if err != nil {
		return nil, err
	}
	rest, err := p.binaryRest(kind, ops, follow, operand)
	if err != nil {
		return nil, err
	}
	return ast.New(kind, op, rhs, rest), nil
}

func (p *Parser) factor() (*ast.Tree, error) {
	if p.at(sumOps) {
		sign := p.next()
		inner, err := p.factor()
		if err != nil {
			return nil, err
		}
		return ast.New(ast.Factor, sign, inner), nil
	}
	pw, err := p.power()
	if err != nil {
		return nil, err
	}
	return ast.New(ast.Factor, pw), nil
}

func (p *Parser) power() (*ast.Tree, error) {
	prim, err := p.primary()
	if err != nil {
		return nil, err
	}
	if !p.is(lexer.POWER) {
		if err := p.empty(setOf(lexer.POWER), followFactor); err != nil {
			return nil, err
		}
		return ast.New(ast.Power, prim, nil), nil
	}
	op := p.next()
	exp, err := p.factor()
	if err != nil {
		return nil, err
	}
	return ast.New(ast.Power, prim, ast.New(ast.PowerRest, op, exp)), nil
}

func (p *Parser) primary() (*ast.Tree, error) {
	a, err := p.atom()
	if err != nil {
		return nil, err
	}
	rest, err := p.primaryRest()
	if err != nil {
		return nil, err
	}
	return ast.New(ast.Primary, a, rest), nil
}

func (p *Parser) primaryRest() (ast.Node, error) {
	if !p.at(firstTrailer) {
		return nil, p.empty(firstTrailer, followPrimary)
	}
	tr, err := p.trailer()
	if err != nil {
		return nil, err
	}
	rest, err := p.primaryRest()
	if err != nil {
		return nil, err
	}
	return ast.New(ast.PrimaryRest, tr, rest), nil
}

func (p *Parser) trailer() (*ast.Tree, error) {
	switch p.peek().Kind {
	case lexer.DOT:
		dot := p.next()
		name, err := p.expect(lexer.IDENTIFIER)
		if err != nil {
			return nil, err
		}
		return ast.New(ast.Trailer, dot, name), nil
	case lexer.LPAREN:
		lparen := p.next()
		var args ast.Node
		if !p.is(lexer.RPAREN) {
			if !p.at(firstExpr) {
				return nil, p.errorf(firstExpr | setOf(lexer.RPAREN))
			}
			a, err := p.arguments()
			if err != nil {
				return nil, err
			}
			args = a
		}
		rparen, err := p.expect(lexer.RPAREN)
		if err != nil {
			return nil, err
		}
		return ast.New(ast.Trailer, lparen, args, rparen), nil
	}
	lbracket := p.next()
	sl, err := p.slices()
	if err != nil {
		return nil, err
	}
	rbracket, err := p.expect(lexer.RBRACKET)
	if err != nil {
		return nil, err
	}
	return ast.New(ast.Trailer, lbracket, sl, rbracket), nil
}

func (p *Parser) slices() (*ast.Tree, error) {
	s, err := p.slice()
	if err != nil {
		return nil, err
	}
	if !p.is(lexer.COMMA) {
		return ast.New(ast.Slices, s, nil), nil
	}
	comma := p.next()
	more, err := p.slices()
	if err != nil {
		return nil, err
	}
	return ast.New(ast.Slices, s, ast.New(ast.SlicesRest, comma, more)), nil
}

var (
	firstSlice  = firstExpr | setOf(lexer.COLON)
	followSlice = setOf(lexer.COMMA, lexer.RBRACKET)
)

// slice parses "lower? (':' upper?)?"; at least one part must be present.
func (p *Parser) slice() (*ast.Tree, error) {
	if !p.at(firstSlice) {
		return nil, p.errorf(firstSlice)
	}
	var lower, colon, upper ast.Node
	if p.at(firstExpr) {
		e, err := p.expression()
		if err != nil {
			return nil, err
		}
		lower = e
	}
	if p.is(lexer.COLON) {
		colon = p.next()
		if p.at(firstExpr) {
			e, err := p.expression()
			if err != nil {
				return nil, err
			}
			upper = e
		}
	}
	if !p.at(followSlice) {
		if colon == nil {
			return nil, p.errorf(setOf(lexer.COLON) | followSlice)
		}
		return nil, p.errorf(followSlice)
	}
	return ast.New(ast.Slice, lower, colon, upper), nil
}

func (p *Parser) atom() (*ast.Tree, error) {
	switch p.peek().Kind {
	case lexer.IDENTIFIER, lexer.TRUE, lexer.FALSE, lexer.NONE, lexer.NUMBER, lexer.STRING:
		return ast.New(ast.Atom, p.next()), nil
	case lexer.LPAREN:
		t, err := p.enclosed(ast.Tuple, lexer.RPAREN)
		if err != nil {
			return nil, err
		}
		return ast.New(ast.Atom, t), nil
	case lexer.LBRACKET:
		l, err := p.enclosed(ast.List, lexer.RBRACKET)
		if err != nil {
			return nil, err
		}
		return ast.New(ast.Atom, l), nil
	}
	return nil, p.errorf(firstExpr)
}

// enclosed parses a parenthesized tuple or a bracketed list.
func (p *Parser) enclosed(kind ast.Kind, closer lexer.Kind) (*ast.Tree, error) {
	open := p.next()
	var items ast.Node
	if !p.is(closer) {
		if !p.at(firstExpr) {
			return nil, p.errorf(firstExpr | setOf(closer))
		}
		e, err := p.expressions()
		if err != nil {
			return nil, err
		}
		items = e
	}
	end, err := p.expect(closer)
	if err != nil {
		return nil, err
	}
	return ast.New(kind, open, items, end), nil
}

var followExpressions = setOf(lexer.RPAREN, lexer.RBRACKET)

func (p *Parser) expressions() (*ast.Tree, error) {
	e, err := p.expression()
	if err != nil {
		return nil, err
	}
	if !p.is(lexer.COMMA) {
		if err := p.empty(setOf(lexer.COMMA), followExpressions); err != nil {
			return nil, err
		}
		return ast.New(ast.Expressions, e, nil), nil
	}
	comma := p.next()
	var more ast.Node
	if p.at(firstExpr) {
		m, err := p.expressions()
		if err != nil {
			return nil, err
		}
		more = m
	} else if err := p.empty(firstExpr, followExpressions); err != nil {
		return nil, err
	}
	return ast.New(ast.Expressions, e, ast.New(ast.ExpressionsRest, comma, more)), nil
}

var followArguments = setOf(lexer.RPAREN)

func (p *Parser) arguments() (*ast.Tree, error) {
	a, err := p.argument()
	if err != nil {
		return nil, err
	}
	if !p.is(lexer.COMMA) {
		if err := p.empty(setOf(lexer.COMMA), followArguments); err != nil {
			return nil, err
		}
		return ast.New(ast.Arguments, a, nil), nil
	}
	comma := p.next()
	var more ast.Node
	if p.at(firstExpr) {
		m, err := p.arguments()
		if err != nil {
			return nil, err
		}
		more = m
	} else if err := p.empty(firstExpr, followArguments); err != nil {
		return nil, err
	}
	return ast.New(ast.Arguments, a, ast.New(ast.ArgumentsRest, comma, more)), nil
}

// argument parses a positional argument or a keyword argument of the form
// name=value.
func (p *Parser) argument() (*ast.Tree, error) {
	e, err := p.expression()
	if err != nil {
		return nil, err
	}
	if !p.is(lexer.ASSIGN) {
		if err := p.empty(setOf(lexer.ASSIGN), setOf(lexer.COMMA, lexer.RPAREN)); err != nil {
			return nil, err
		}
		return ast.New(ast.Argument, e, nil, nil), nil
	}
	if !IsBareName(e) {
		return nil, p.restrict("keyword must be an identifier")
	}
	eq := p.next()
	if !p.at(firstExpr) {
		return nil, p.errorf(firstExpr)
	}
	v, err := p.expression()
	if err != nil {
		return nil, err
	}
	return ast.New(ast.Argument, e, eq, v), nil
}
