// This file contains stateless clause handlers that form the "toolbox" of
// reusable parsing logic. These handlers are pure functions that accept
// spi.ParserOps and return spi.Node.
package dialect

import (
	"github.com/leapstack-labs/sqlbridge/pkg/core"
	"github.com/leapstack-labs/sqlbridge/pkg/spi"
	"github.com/leapstack-labs/sqlbridge/pkg/token"
)

// ---------- Standard Clause Handlers ----------
// These are stateless functions that can be composed into any dialect.
// The leading keyword has already been consumed when these are called.

// ParseWhere handles the standard WHERE clause.
// The WHERE keyword has already been consumed.
func ParseWhere(p spi.ParserOps) (spi.Node, error) {
	return p.ParseExpression()
}

// ParseGroupBy handles the standard GROUP BY clause.
// The GROUP keyword has already been consumed.
func ParseGroupBy(p spi.ParserOps) (spi.Node, error) {
	if err := p.Expect(token.BY); err != nil {
		return nil, err
	}
	return p.ParseExpressionList()
}

// ParseHaving handles the standard HAVING clause.
// The HAVING keyword has already been consumed.
func ParseHaving(p spi.ParserOps) (spi.Node, error) {
	return p.ParseExpression()
}

// ParseWindow handles named window definitions.
// The WINDOW keyword has already been consumed.
func ParseWindow(p spi.ParserOps) (spi.Node, error) {
	return p.ParseWindowDefs()
}

// ParseOrderBy handles the standard ORDER BY clause.
// The ORDER keyword has already been consumed.
func ParseOrderBy(p spi.ParserOps) (spi.Node, error) {
	if err := p.Expect(token.BY); err != nil {
		return nil, err
	}
	return p.ParseOrderByList()
}

// ParseLimit handles the standard LIMIT clause.
// The LIMIT keyword has already been consumed.
func ParseLimit(p spi.ParserOps) (spi.Node, error) {
	return p.ParseExpression()
}

// ParseOffset handles the standard OFFSET clause.
// The OFFSET keyword has already been consumed.
func ParseOffset(p spi.ParserOps) (spi.Node, error) {
	return p.ParseExpression()
}

// ParseFetch handles the FETCH FIRST/NEXT clause (SQL:2008).
// The FETCH keyword has already been consumed.
func ParseFetch(p spi.ParserOps) (spi.Node, error) {
	fetch := &core.FetchClause{}

	// FIRST or NEXT (semantically identical)
	switch {
	case p.Match(token.FIRST):
		fetch.First = true
	case p.Match(token.NEXT):
		fetch.First = false
	default:
		p.AddError("expected FIRST or NEXT after FETCH")
		return fetch, nil
	}

	// Optional count expression (if not directly ROW/ROWS)
	if !p.Check(token.ROW) && !p.Check(token.ROWS) {
		expr, err := p.ParseExpression()
		if err != nil {
			p.AddError(err.Error())
			return fetch, nil
		}
		fetch.Count = expr.(core.Expr)
	}

	// ROW or ROWS (both valid, singular or plural)
	if !p.Match(token.ROW) && !p.Match(token.ROWS) {
		p.AddError("expected ROW or ROWS in FETCH clause")
	}

	// ONLY or WITH TIES
	switch {
	case p.Match(token.ONLY):
		fetch.WithTies = false
	case p.Match(token.WITH):
		if !p.Match(token.TIES) {
			p.AddError("expected TIES after WITH")
		}
		fetch.WithTies = true
	default:
		p.AddError("expected ONLY or WITH TIES")
	}

	return fetch, nil
}

// ---------- Standard Clause Sets ----------

// StandardClauses returns the ANSI SELECT clause sequence with handlers.
// Dialects compose this list, optionally appending their own clauses.
func StandardClauses() []ClauseDef {
	return []ClauseDef{
		{Token: token.WHERE, Handler: ParseWhere, Slot: spi.SlotWhere},
		{Token: token.GROUP, Handler: ParseGroupBy, Slot: spi.SlotGroupBy},
		{Token: token.HAVING, Handler: ParseHaving, Slot: spi.SlotHaving},
		{Token: token.WINDOW, Handler: ParseWindow, Slot: spi.SlotWindow},
		{Token: token.ORDER, Handler: ParseOrderBy, Slot: spi.SlotOrderBy},
		{Token: token.LIMIT, Handler: ParseLimit, Slot: spi.SlotLimit},
		{Token: token.OFFSET, Handler: ParseOffset, Slot: spi.SlotOffset},
		{Token: token.FETCH, Handler: ParseFetch, Slot: spi.SlotFetch},
	}
}

// ---------- Operator Handlers ----------

// ParseCastOperator handles the :: shorthand cast operator.
// The :: token has already been consumed; left is the cast operand.
// Both CAST(x AS t) and x::t produce the same CastExpr, so the two
// spellings converge in the canonical tree.
func ParseCastOperator(p spi.ParserOps, left spi.Expr) (spi.Expr, error) {
	node, err := p.ParseDataType()
	if err != nil {
		return nil, err
	}
	return &core.CastExpr{
		Expr: left.(core.Expr),
		Type: node.(core.DataType),
	}, nil
}
