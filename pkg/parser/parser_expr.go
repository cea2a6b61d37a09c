package parser

import (
	"github.com/leapstack-labs/sqlbridge/pkg/core"
	"github.com/leapstack-labs/sqlbridge/pkg/dialect"
	"github.com/leapstack-labs/sqlbridge/pkg/spi"
	"github.com/leapstack-labs/sqlbridge/pkg/token"
)

// Expression precedence parsing using Pratt parser with dialect-aware precedence.
//
// Precedence levels (from spi package):
//
//	PrecedenceNone       = 0
//	PrecedenceOr         = 1
//	PrecedenceAnd        = 2
//	PrecedenceNot        = 3
//	PrecedenceComparison = 4  (=, !=, <, >, <=, >=, IS, IN, BETWEEN, LIKE, ILIKE)
//	PrecedenceAddition   = 5  (+, -, ||)
//	PrecedenceMultiply   = 6  (*, /, %)
//	PrecedenceUnary      = 7  (-, +, NOT)
//	PrecedencePostfix    = 8  (::, [], ())
//
// The parser uses dialect.Precedence() to look up operator precedence
// dynamically, so dialects can add custom operators (like ILIKE or ::).

// parseExpression parses an expression using precedence climbing.
func (p *Parser) parseExpression() core.Expr {
	return p.parseExpressionWithPrecedence(spi.PrecedenceNone + 1)
}

// parseExpressionWithPrecedence implements Pratt parsing with dialect-aware precedence.
func (p *Parser) parseExpressionWithPrecedence(minPrecedence int) core.Expr {
	// Parse prefix (unary operators and primary expressions)
	left := p.parsePrefixExpr()
	if left == nil {
		return nil
	}

	// Parse infix operators while their precedence is >= minPrecedence
	for {
		prec := p.getInfixPrecedence()
		if prec < minPrecedence {
			break
		}

		left = p.parseInfixExpr(left, prec)
		if left == nil {
			break
		}
	}

	return left
}

// parsePrefixExpr parses prefix expressions (unary operators and primary expressions).
func (p *Parser) parsePrefixExpr() core.Expr {
	switch p.token.Type {
	case token.NOT:
		p.nextToken()
		expr := p.parseExpressionWithPrecedence(spi.PrecedenceNot)
		return &core.UnaryExpr{Op: token.NOT, Expr: expr}

	case token.MINUS:
		p.nextToken()
		expr := p.parseExpressionWithPrecedence(spi.PrecedenceUnary)
		return &core.UnaryExpr{Op: token.MINUS, Expr: expr}

	case token.PLUS:
		p.nextToken()
		expr := p.parseExpressionWithPrecedence(spi.PrecedenceUnary)
		return &core.UnaryExpr{Op: token.PLUS, Expr: expr}

	default:
		return p.parsePrimary()
	}
}

// getInfixPrecedence returns the precedence of the current token as an infix operator.
// Returns 0 if the token is not an infix operator for this dialect.
func (p *Parser) getInfixPrecedence() int {
	if prec := p.dialect.Precedence(p.token.Type); prec > 0 {
		return prec
	}
	// NOT as infix (for NOT IN, NOT LIKE, etc.) - handled specially
	if p.token.Type == token.NOT {
		return spi.PrecedenceComparison
	}
	return spi.PrecedenceNone
}

// parseInfixExpr parses an infix expression given the left operand and current precedence.
func (p *Parser) parseInfixExpr(left core.Expr, prec int) core.Expr {
	// Handle special infix operators first
	switch p.token.Type {
	case token.NOT:
		// NOT IN, NOT BETWEEN, NOT LIKE, NOT ILIKE
		return p.parseNotInfixExpr(left)

	case token.IS:
		return p.parseIsExpr(left)

	case token.IN:
		p.nextToken()
		return p.parseInExpr(left, false)

	case token.BETWEEN:
		p.nextToken()
		return p.parseBetweenExpr(left, false)

	case token.LIKE:
		p.nextToken()
		return p.parseLikeExpr(left, false, false)

	case dialect.TokenIlike:
		p.nextToken()
		return p.parseLikeExpr(left, false, true)
	}

	// Check for custom infix handler (dialect-specific operators like ::)
	if handler := p.dialect.InfixHandler(p.token.Type); handler != nil {
		op := p.token
		p.nextToken()
		result, err := handler(p, left)
		if err != nil {
			p.addError(err.Error())
			return left
		}
		if result != nil {
			return result.(core.Expr)
		}
		// If handler returned nil, fall through to standard binary handling
		return &core.BinaryExpr{Left: left, Op: op.Type, Right: p.parseExpressionWithPrecedence(prec + 1)}
	}

	// Standard binary operators
	op := p.token
	p.nextToken()

	// Parse right operand with higher precedence (left-associative)
	right := p.parseExpressionWithPrecedence(prec + 1)

	return &core.BinaryExpr{Left: left, Op: op.Type, Right: right}
}

// parseNotInfixExpr handles NOT as an infix modifier (NOT IN, NOT BETWEEN, NOT LIKE).
func (p *Parser) parseNotInfixExpr(left core.Expr) core.Expr {
	p.nextToken() // consume NOT

	switch p.token.Type {
	case token.IN:
		p.nextToken()
		return p.parseInExpr(left, true)

	case token.BETWEEN:
		p.nextToken()
		return p.parseBetweenExpr(left, true)

	case token.LIKE:
		p.nextToken()
		return p.parseLikeExpr(left, true, false)

	case dialect.TokenIlike:
		p.nextToken()
		return p.parseLikeExpr(left, true, true)

	default:
		p.addError("expected IN, BETWEEN, LIKE, or ILIKE after NOT")
		return left
	}
}

// parseIsExpr parses IS [NOT] NULL / IS [NOT] TRUE / IS [NOT] FALSE.
func (p *Parser) parseIsExpr(left core.Expr) core.Expr {
	p.nextToken() // consume IS

	isNot := p.match(token.NOT)

	switch p.token.Type {
	case token.NULL:
		p.nextToken()
		return &core.IsNullExpr{Expr: left, Not: isNot}

	case token.TRUE:
		p.nextToken()
		return &core.IsBoolExpr{Expr: left, Not: isNot, Value: true}

	case token.FALSE:
		p.nextToken()
		return &core.IsBoolExpr{Expr: left, Not: isNot, Value: false}

	default:
		p.addError("expected NULL, TRUE, or FALSE after IS")
		return left
	}
}

// parseInExpr parses an IN expression.
func (p *Parser) parseInExpr(left core.Expr, not bool) core.Expr {
	p.expect(token.LPAREN)
	in := &core.InExpr{Expr: left, Not: not}

	// Check if it's a subquery
	if p.check(token.SELECT) || p.check(token.WITH) {
		in.Query = p.parseStatement()
	} else {
		// List of values
		in.Values = p.parseExpressionList()
	}

	p.expect(token.RPAREN)
	return in
}

// parseBetweenExpr parses a BETWEEN expression.
func (p *Parser) parseBetweenExpr(left core.Expr, not bool) core.Expr {
	between := &core.BetweenExpr{Expr: left, Not: not}
	// Parse low bound at addition precedence to avoid capturing AND
	between.Low = p.parseExpressionWithPrecedence(spi.PrecedenceAddition)
	p.expect(token.AND)
	// Parse high bound at addition precedence
	between.High = p.parseExpressionWithPrecedence(spi.PrecedenceAddition)
	return between
}

// parseLikeExpr parses a LIKE/ILIKE expression.
// Both spellings converge on LikeExpr; the case-insensitive flag is the
// only trace of which operator appeared.
func (p *Parser) parseLikeExpr(left core.Expr, not, caseInsensitive bool) core.Expr {
	like := &core.LikeExpr{Expr: left, Not: not, CaseInsensitive: caseInsensitive}
	// Parse pattern at addition precedence
	like.Pattern = p.parseExpressionWithPrecedence(spi.PrecedenceAddition)
	return like
}
