package parser

import (
	"fmt"

	"github.com/leapstack-labs/sqlbridge/pkg/core"
	"github.com/leapstack-labs/sqlbridge/pkg/dialect"
	"github.com/leapstack-labs/sqlbridge/pkg/spi"
	"github.com/leapstack-labs/sqlbridge/pkg/token"
)

// Statement parsing: WITH clause, CTEs, SELECT body, SELECT list, ORDER BY.
//
// Grammar:
//
//	statement     → [WITH cte_list] select_body
//	cte_list      → cte ("," cte)*
//	cte           → identifier AS "(" statement ")"
//	select_body   → select_core [(UNION|INTERSECT|EXCEPT) [ALL|DISTINCT] select_body]
//	select_core   → SELECT [DISTINCT|ALL] select_list
//	                [FROM from_clause]
//	                [clauses based on dialect sequence]
//	select_list   → select_item ("," select_item)*
//	select_item   → "*" | table "." "*" | expr [AS identifier]
//	order_list    → order_item ("," order_item)*
//	order_item    → expr [ASC|DESC] [NULLS FIRST|LAST]
//
// The parser uses dialect.ClauseSequence() and dialect.ClauseDef() to
// parse clauses in the correct order for the current dialect, and to
// reject unsupported clauses.

// parseStatement parses a complete SELECT statement.
func (p *Parser) parseStatement() *core.SelectStmt {
	stmt := &core.SelectStmt{}

	// Optional WITH clause
	if p.check(token.WITH) {
		stmt.With = p.parseWithClause()
	}

	// Required SELECT body
	stmt.Body = p.parseSelectBody()

	return stmt
}

// parseWithClause parses a WITH clause with CTEs.
func (p *Parser) parseWithClause() *core.WithClause {
	p.expect(token.WITH)
	with := &core.WithClause{}

	// Optional RECURSIVE
	if p.match(token.RECURSIVE) {
		with.Recursive = true
	}

	// Parse CTE list
	for {
		cte := p.parseCTE()
		with.CTEs = append(with.CTEs, cte)

		if !p.match(token.COMMA) {
			break
		}
	}

	return with
}

// parseCTE parses a single CTE.
func (p *Parser) parseCTE() *core.CTE {
	cte := &core.CTE{}

	// CTE name
	if !p.check(token.IDENT) {
		p.addError("expected CTE name")
		return cte
	}
	cte.Name = p.token.Literal
	p.nextToken()

	// AS
	p.expect(token.AS)

	// ( SelectStatement )
	p.expect(token.LPAREN)
	cte.Select = p.parseStatement()
	p.expect(token.RPAREN)

	return cte
}

// parseSelectBody parses a SELECT body with possible set operations.
func (p *Parser) parseSelectBody() *core.SelectBody {
	body := &core.SelectBody{}
	body.Left = p.parseSelectCore()

	// Check for set operations
	if p.check(token.UNION) || p.check(token.INTERSECT) || p.check(token.EXCEPT) {
		switch p.token.Type {
		case token.UNION:
			p.nextToken()
			if p.match(token.ALL) {
				body.Op = core.SetOpUnionAll
				body.All = true
			} else {
				body.Op = core.SetOpUnion
				p.match(token.DISTINCT) // optional
			}
		case token.INTERSECT:
			p.nextToken()
			body.Op = core.SetOpIntersect
			p.match(token.ALL) // optional
		case token.EXCEPT:
			p.nextToken()
			body.Op = core.SetOpExcept
			p.match(token.ALL) // optional
		}

		// Parse the right side (recursively for chained operations)
		body.Right = p.parseSelectBody()
	}

	return body
}

// parseSelectCore parses a single SELECT clause.
func (p *Parser) parseSelectCore() *core.SelectCore {
	p.expect(token.SELECT)
	sel := &core.SelectCore{}

	// DISTINCT / ALL
	if p.match(token.DISTINCT) {
		sel.Distinct = true
	} else {
		p.match(token.ALL) // optional, consume if present
	}

	// SELECT list
	sel.Columns = p.parseSelectList()

	// FROM clause
	if p.match(token.FROM) {
		sel.From = p.parseFromClause()
	}

	// Parse optional clauses using the dialect's clause sequence
	p.parseClauses(sel)

	return sel
}

// parseClauses parses clauses using dialect.ClauseDef() for both parsing
// logic and slot-based assignment. This is fully declarative - no
// hardcoded clause knowledge in the parser.
func (p *Parser) parseClauses(sel *core.SelectCore) {
	sequence := p.dialect.ClauseSequence()
	if sequence == nil {
		return // No clauses to parse for this dialect
	}

	for {
		matched := false

		// Try to match against any clause in the sequence
		for _, clauseType := range sequence {
			if p.check(clauseType) {
				def, ok := p.dialect.ClauseDef(clauseType)
				if !ok {
					p.addError(fmt.Sprintf("no definition for clause %s in dialect %s", clauseType, p.dialect.Name))
					p.nextToken()
					matched = true
					break
				}

				p.nextToken() // consume clause keyword

				result, err := def.Handler(p)
				if err != nil {
					p.addError(err.Error())
				}

				// Use slot-based assignment (declarative)
				p.assignToSlot(sel, def.Slot, result)
				matched = true
				break
			}
		}

		// Check for unsupported clause (known globally but not in this dialect)
		if !matched {
			if name, isKnown := dialect.IsKnownClause(p.token.Type); isKnown {
				// Check if it's in this dialect's sequence
				inSequence := false
				for _, tok := range sequence {
					if tok == p.token.Type {
						inSequence = true
						break
					}
				}
				if !inSequence {
					p.addError(fmt.Sprintf(ErrUnsupportedClause, name, p.dialect.Name))
					p.nextToken()
					continue
				}
			}
		}

		if !matched {
			break
		}
	}

	// Handle OFFSET which typically follows LIMIT
	if p.match(token.OFFSET) {
		sel.Offset = p.parseExpression()
	}
}

// assignToSlot stores the parsed clause result in the appropriate SelectCore field.
func (p *Parser) assignToSlot(sel *core.SelectCore, slot spi.ClauseSlot, result any) {
	if result == nil {
		return
	}

	switch slot {
	case spi.SlotWhere:
		if expr, ok := result.(core.Expr); ok {
			sel.Where = expr
		}

	case spi.SlotGroupBy:
		switch v := result.(type) {
		case []core.Expr:
			sel.GroupBy = v
		case []spi.Expr:
			exprs := make([]core.Expr, len(v))
			for i, e := range v {
				if expr, ok := e.(core.Expr); ok {
					exprs[i] = expr
				}
			}
			sel.GroupBy = exprs
		}

	case spi.SlotHaving:
		if expr, ok := result.(core.Expr); ok {
			sel.Having = expr
		}

	case spi.SlotWindow:
		if windows, ok := result.([]core.WindowDef); ok {
			sel.Windows = windows
		}

	case spi.SlotOrderBy:
		switch v := result.(type) {
		case []core.OrderByItem:
			sel.OrderBy = v
		case []spi.OrderByItem:
			items := make([]core.OrderByItem, len(v))
			for i, item := range v {
				if obi, ok := item.(core.OrderByItem); ok {
					items[i] = obi
				}
			}
			sel.OrderBy = items
		}

	case spi.SlotLimit:
		if expr, ok := result.(core.Expr); ok {
			sel.Limit = expr
		}

	case spi.SlotOffset:
		if expr, ok := result.(core.Expr); ok {
			sel.Offset = expr
		}

	case spi.SlotFetch:
		if fetch, ok := result.(*core.FetchClause); ok {
			sel.Fetch = fetch
		}

	case spi.SlotExtensions:
		if node, ok := result.(core.Node); ok {
			sel.Extensions = append(sel.Extensions, node)
		}
	}
}

// parseSelectList parses the list of SELECT items.
func (p *Parser) parseSelectList() []core.SelectItem {
	var items []core.SelectItem

	for {
		item := p.parseSelectItem()
		items = append(items, item)

		if !p.match(token.COMMA) {
			break
		}
	}

	return items
}

// parseSelectItem parses a single SELECT item.
func (p *Parser) parseSelectItem() core.SelectItem {
	item := core.SelectItem{}

	// Check for * or table.*
	if p.check(token.STAR) {
		item.Star = true
		p.nextToken()
		return item
	}

	// Check for table.* pattern using 3-token lookahead (no rollback needed)
	if p.check(token.IDENT) && p.checkPeek(token.DOT) && p.checkPeek2(token.STAR) {
		tableName := p.token.Literal
		p.nextToken() // consume identifier
		p.nextToken() // consume DOT
		p.nextToken() // consume STAR
		item.TableStar = tableName
		return item
	}

	// Regular expression
	item.Expr = p.parseExpression()

	// Optional alias
	if p.match(token.AS) {
		if p.check(token.IDENT) {
			item.Alias = p.token.Literal
			p.nextToken()
		} else {
			p.addError("expected alias after AS")
		}
	} else if p.check(token.IDENT) && !p.isKeyword(p.token) {
		// Alias without AS
		item.Alias = p.token.Literal
		p.nextToken()
	}

	return item
}

// parseOrderByList parses a list of ORDER BY items.
func (p *Parser) parseOrderByList() []core.OrderByItem {
	var items []core.OrderByItem

	for {
		item := p.parseOrderByItem()
		items = append(items, item)

		if !p.match(token.COMMA) {
			break
		}
	}

	return items
}

// parseOrderByItem parses a single ORDER BY item.
func (p *Parser) parseOrderByItem() core.OrderByItem {
	item := core.OrderByItem{}
	item.Expr = p.parseExpression()

	// ASC / DESC
	if p.match(token.ASC) {
		item.Desc = false
	} else if p.match(token.DESC) {
		item.Desc = true
	}

	// NULLS FIRST / LAST
	if p.match(token.NULLS) {
		if p.match(token.FIRST) {
			b := true
			item.NullsFirst = &b
		} else if p.match(token.LAST) {
			b := false
			item.NullsFirst = &b
		}
	}

	return item
}

// parseExpressionList parses a comma-separated list of expressions.
func (p *Parser) parseExpressionList() []core.Expr {
	var exprs []core.Expr

	for {
		expr := p.parseExpression()
		exprs = append(exprs, expr)

		if !p.match(token.COMMA) {
			break
		}
	}

	return exprs
}
