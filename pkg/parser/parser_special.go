package parser

import (
	"strings"

	"github.com/leapstack-labs/sqlbridge/pkg/core"
	"github.com/leapstack-labs/sqlbridge/pkg/token"
)

// Special expression parsing: CASE, CAST, data types, parenthesized
// expressions, subqueries.
//
// Grammar:
//
//	case_expr     → CASE [expr] (WHEN expr THEN expr)+ [ELSE expr] END
//	cast_expr     → CAST "(" expr AS data_type ")"
//	exists_expr   → [NOT] EXISTS "(" statement ")"
//	paren_expr    → "(" expression ")" | "(" statement ")"  -- subquery if SELECT/WITH
//	data_type     → identifier ["(" param ["," param]* ")"]

// parseCaseExpr parses a CASE expression.
func (p *Parser) parseCaseExpr() core.Expr {
	p.expect(token.CASE)
	caseExpr := &core.CaseExpr{}

	// Simple CASE: CASE expr WHEN ...
	if !p.check(token.WHEN) {
		caseExpr.Operand = p.parseExpression()
	}

	// WHEN clauses
	for p.match(token.WHEN) {
		when := core.WhenClause{}
		when.Condition = p.parseExpression()
		p.expect(token.THEN)
		when.Result = p.parseExpression()
		caseExpr.Whens = append(caseExpr.Whens, when)
	}

	// ELSE clause
	if p.match(token.ELSE) {
		caseExpr.Else = p.parseExpression()
	}

	p.expect(token.END)
	return caseExpr
}

// parseCastExpr parses a CAST expression.
func (p *Parser) parseCastExpr() core.Expr {
	p.expect(token.CAST)
	p.expect(token.LPAREN)

	cast := &core.CastExpr{}
	cast.Expr = p.parseExpression()

	p.expect(token.AS)

	cast.Type = p.parseDataType()

	p.expect(token.RPAREN)
	return cast
}

// multiwordTypeHeads lists type names spelled as two identifiers.
// The second word is consumed only when it completes one of these, so a
// following alias or column name is never swallowed.
var multiwordTypeHeads = map[string]string{
	"DOUBLE":    "PRECISION",
	"CHARACTER": "VARYING",
	"LONG":      "VARCHAR",
}

// parseDataType parses a data type with optional parameters, resolved to
// the canonical type name through the dialect's type mapping.
func (p *Parser) parseDataType() core.DataType {
	if !p.check(token.IDENT) {
		p.addError("expected type name")
		return core.DataType{}
	}

	name := strings.ToUpper(p.token.Literal)
	p.nextToken()

	// Multiword type names: DOUBLE PRECISION, CHARACTER VARYING, ...
	if second, ok := multiwordTypeHeads[name]; ok {
		if p.check(token.IDENT) && strings.EqualFold(p.token.Literal, second) {
			name += " " + second
			p.nextToken()
		}
	}

	// Type parameters like VARCHAR(255) or NUMERIC(10, 2)
	var params []string
	if p.match(token.LPAREN) {
		for {
			if p.check(token.NUMBER) || p.check(token.IDENT) {
				params = append(params, p.token.Literal)
				p.nextToken()
			} else {
				p.addError("expected type parameter")
				break
			}

			if !p.match(token.COMMA) {
				break
			}
		}
		p.expect(token.RPAREN)
	}

	canonical, params := p.dialect.ResolveType(name, params)
	return core.DataType{Name: canonical, Params: params}
}

// parseParenExpr parses a parenthesized expression or subquery.
func (p *Parser) parseParenExpr() core.Expr {
	p.expect(token.LPAREN)

	// Check if this is a subquery
	if p.check(token.SELECT) || p.check(token.WITH) {
		// Subquery expression (scalar subquery, or in WHERE/HAVING for IN/EXISTS)
		subquery := &core.SubqueryExpr{Select: p.parseStatement()}
		p.expect(token.RPAREN)
		return subquery
	}

	expr := p.parseExpression()
	p.expect(token.RPAREN)
	return &core.ParenExpr{Expr: expr}
}

// parseExistsExpr parses an EXISTS expression.
func (p *Parser) parseExistsExpr(not bool) core.Expr {
	// Consume EXISTS keyword
	p.nextToken()

	p.expect(token.LPAREN)
	exists := &core.ExistsExpr{Not: not, Select: p.parseStatement()}
	p.expect(token.RPAREN)

	return exists
}
