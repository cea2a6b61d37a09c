package parser

import (
	"fmt"

	"github.com/leapstack-labs/sqlbridge/pkg/core"
	"github.com/leapstack-labs/sqlbridge/pkg/token"
)

// Primary expression parsing: literals, column refs, function calls.
//
// Grammar:
//
//	primary       → literal | column_ref | func_call | paren_expr | case_expr | cast_expr | exists_expr
//	literal       → NUMBER | STRING | TRUE | FALSE | NULL
//	column_ref    → [table "."] column | [schema "." table "."] column
//	func_call     → identifier "(" [DISTINCT] [expr_list | "*"] ")"
//	                [WITHIN GROUP "(" ORDER BY order_list ")"]
//	                [FILTER "(" WHERE expr ")"] [OVER window_spec]

// parsePrimary parses primary expressions.
func (p *Parser) parsePrimary() core.Expr {
	// Check for dialect-specific prefix handlers first
	if handler := p.dialect.PrefixHandler(p.token.Type); handler != nil {
		p.nextToken() // consume the prefix token
		expr, err := handler(p)
		if err != nil {
			p.addError(err.Error())
			return nil
		}
		if expr != nil {
			return expr.(core.Expr)
		}
		return nil
	}

	switch p.token.Type {
	case token.NUMBER:
		lit := &core.Literal{Type: core.LiteralNumber, Value: p.token.Literal}
		p.nextToken()
		return lit

	case token.STRING:
		lit := &core.Literal{Type: core.LiteralString, Value: p.token.Literal}
		p.nextToken()
		return lit

	case token.TRUE:
		p.nextToken()
		return &core.Literal{Type: core.LiteralBool, Value: "true"}

	case token.FALSE:
		p.nextToken()
		return &core.Literal{Type: core.LiteralBool, Value: "false"}

	case token.NULL:
		p.nextToken()
		return &core.Literal{Type: core.LiteralNull, Value: "null"}

	case token.CASE:
		return p.parseCaseExpr()

	case token.CAST:
		return p.parseCastExpr()

	case token.NOT:
		// EXISTS check
		if p.checkPeek(token.EXISTS) {
			p.nextToken() // consume NOT
			return p.parseExistsExpr(true)
		}
		// Regular NOT expression
		p.nextToken()
		return &core.UnaryExpr{Op: token.NOT, Expr: p.parsePrimary()}

	case token.EXISTS:
		return p.parseExistsExpr(false)

	case token.IDENT:
		return p.parseIdentifierExpr()

	case token.LPAREN:
		return p.parseParenExpr()

	case token.STAR:
		// SELECT * context
		p.nextToken()
		return &core.StarExpr{}

	default:
		p.addError(fmt.Sprintf("unexpected token in expression: %s", p.token.Type))
		p.nextToken()
		return nil
	}
}

// parseIdentifierExpr parses an identifier which could be a column ref or function call.
func (p *Parser) parseIdentifierExpr() core.Expr {
	name := p.token.Literal
	p.nextToken()

	// Check if it's a function call
	if p.check(token.LPAREN) {
		return p.parseFuncCall(name)
	}

	// Qualified column reference: table.column or schema.table.column
	if p.check(token.DOT) {
		return p.parseQualifiedColumnRef(name)
	}

	// Simple column reference
	return &core.ColumnRef{Column: name}
}

// parseQualifiedColumnRef parses a qualified column reference.
func (p *Parser) parseQualifiedColumnRef(firstPart string) core.Expr {
	parts := []string{firstPart}

	for p.match(token.DOT) {
		// Check for table.*
		if p.check(token.STAR) {
			p.nextToken()
			return &core.StarExpr{Table: firstPart}
		}

		if p.check(token.IDENT) {
			parts = append(parts, p.token.Literal)
			p.nextToken()
		}
	}

	// Build column reference
	ref := &core.ColumnRef{}
	switch len(parts) {
	case 2:
		ref.Table = parts[0]
		ref.Column = parts[1]
	case 3:
		// schema.table.column - keep table.column
		ref.Table = parts[1]
		ref.Column = parts[2]
	default:
		ref.Column = parts[len(parts)-1]
	}

	return ref
}

// parseFuncCall parses a function call.
// The dialect spelling is resolved to the canonical name here, including
// any argument reorder, so the tree carries no dialect-specific naming.
func (p *Parser) parseFuncCall(name string) core.Expr {
	fn := &core.FuncCall{}

	p.expect(token.LPAREN)

	// Handle COUNT(*) or other aggregate(*)
	if p.check(token.STAR) {
		fn.Star = true
		p.nextToken()
	} else if !p.check(token.RPAREN) {
		// Check for DISTINCT
		if p.match(token.DISTINCT) {
			fn.Distinct = true
		}

		// Parse arguments
		for {
			arg := p.parseExpression()
			fn.Args = append(fn.Args, arg)

			if !p.match(token.COMMA) {
				break
			}
		}
	}

	p.expect(token.RPAREN)

	fn.Name, fn.Args = p.resolveFunc(name, fn.Args)

	// WITHIN GROUP (ORDER BY ...) for ordered-set aggregates
	if p.dialect.SupportsWithinGroup() && p.check(token.WITHIN) {
		p.nextToken()
		p.expect(token.GROUP)
		p.expect(token.LPAREN)
		p.expect(token.ORDER)
		p.expect(token.BY)
		fn.WithinGroup = p.parseOrderByList()
		p.expect(token.RPAREN)
	}

	// FILTER clause (for aggregates)
	if p.match(token.FILTER) {
		p.expect(token.LPAREN)
		p.expect(token.WHERE)
		fn.Filter = p.parseExpression()
		p.expect(token.RPAREN)
	}

	// OVER clause (window function)
	if p.match(token.OVER) {
		fn.Window = p.parseWindowSpec()
	}

	return fn
}

// resolveFunc maps a dialect function spelling to the canonical name and
// argument order.
func (p *Parser) resolveFunc(name string, args []core.Expr) (string, []core.Expr) {
	anyArgs := make([]any, len(args))
	for i, a := range args {
		anyArgs[i] = a
	}

	canonical, anyArgs := p.dialect.ResolveFunction(name, anyArgs)

	out := make([]core.Expr, len(anyArgs))
	for i, a := range anyArgs {
		out[i], _ = a.(core.Expr)
	}
	return canonical, out
}
