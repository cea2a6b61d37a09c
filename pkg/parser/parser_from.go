package parser

import (
	"github.com/leapstack-labs/sqlbridge/pkg/core"
	"github.com/leapstack-labs/sqlbridge/pkg/dialect"
	"github.com/leapstack-labs/sqlbridge/pkg/token"
)

// FROM clause parsing: table references, derived tables, lateral joins, JOINs.
//
// Grammar:
//
//	from_clause   → table_ref (join)*
//	table_ref     → table_name | derived_table | lateral_table
//	table_name    → [catalog "."] [schema "."] identifier [AS identifier]
//	derived_table → "(" statement ")" [AS] identifier
//	lateral_table → LATERAL "(" statement ")" [AS] identifier
//	join          → join_type JOIN table_ref [ON expr] | "," table_ref
//	join_type     → [INNER] | LEFT [OUTER] | RIGHT [OUTER] | FULL [OUTER] | CROSS

// joinInner is the default join type for "plain JOIN" syntax.
// The value matches what the ANSI dialect registers for token.INNER.
const joinInner core.JoinType = "INNER"

// parseFromClause parses the FROM clause.
func (p *Parser) parseFromClause() *core.FromClause {
	from := &core.FromClause{}
	from.Source = p.parseTableRef()

	// Parse JOINs
	for {
		join := p.parseJoin()
		if join == nil {
			break
		}
		from.Joins = append(from.Joins, join)
	}

	return from
}

// parseTableRef parses a table reference.
func (p *Parser) parseTableRef() core.TableRef {
	// LATERAL subquery. Dialects that cannot correlate FROM items reject
	// it here through their construct policy; parsing continues so the
	// rejection doesn't cascade into later clauses.
	if p.match(token.LATERAL) {
		if err := p.dialect.ParseReject(dialect.ConstructLateralJoin); err != nil {
			p.addError(err.Error())
		}
		return p.parseLateralTable()
	}

	// Derived table (subquery)
	if p.check(token.LPAREN) {
		return p.parseDerivedTable()
	}

	// Simple table name
	return p.parseTableName()
}

// parseTableName parses a table name with optional schema/catalog and alias.
func (p *Parser) parseTableName() *core.TableName {
	table := p.parseBareTableName()

	// Optional alias
	if p.match(token.AS) {
		if p.check(token.IDENT) {
			table.Alias = p.token.Literal
			p.nextToken()
		}
	} else if p.check(token.IDENT) && !p.isJoinKeyword(p.token) && !p.isClauseKeyword(p.token) {
		table.Alias = p.token.Literal
		p.nextToken()
	}

	return table
}

// parseBareTableName parses a possibly qualified table name with no alias.
// Also used by dialect statement handlers (COPY, CREATE, ...) where a
// trailing identifier is never an alias.
func (p *Parser) parseBareTableName() *core.TableName {
	table := &core.TableName{}

	if !p.check(token.IDENT) {
		p.addError("expected table name")
		return table
	}

	// Parse potentially qualified name: catalog.schema.table
	parts := []string{p.token.Literal}
	p.nextToken()

	for p.match(token.DOT) {
		if p.check(token.IDENT) {
			parts = append(parts, p.token.Literal)
			p.nextToken()
		}
	}

	switch len(parts) {
	case 1:
		table.Name = parts[0]
	case 2:
		table.Schema = parts[0]
		table.Name = parts[1]
	case 3:
		table.Catalog = parts[0]
		table.Schema = parts[1]
		table.Name = parts[2]
	}

	return table
}

// parseDerivedTable parses a derived table (subquery in FROM).
func (p *Parser) parseDerivedTable() *core.DerivedTable {
	p.expect(token.LPAREN)
	derived := &core.DerivedTable{}
	derived.Select = p.parseStatement()
	p.expect(token.RPAREN)

	// Alias is required for derived tables
	if p.match(token.AS) {
		if p.check(token.IDENT) {
			derived.Alias = p.token.Literal
			p.nextToken()
		}
	} else if p.check(token.IDENT) {
		derived.Alias = p.token.Literal
		p.nextToken()
	}

	return derived
}

// parseLateralTable parses a LATERAL subquery.
func (p *Parser) parseLateralTable() *core.LateralTable {
	p.expect(token.LPAREN)
	lateral := &core.LateralTable{}
	lateral.Select = p.parseStatement()
	p.expect(token.RPAREN)

	// Alias
	if p.match(token.AS) {
		if p.check(token.IDENT) {
			lateral.Alias = p.token.Literal
			p.nextToken()
		}
	} else if p.check(token.IDENT) {
		lateral.Alias = p.token.Literal
		p.nextToken()
	}

	return lateral
}

// parseJoin parses a JOIN clause.
func (p *Parser) parseJoin() *core.Join {
	join := &core.Join{}

	// Comma join (implicit cross join) - hardcoded special case
	if p.match(token.COMMA) {
		join.Type = core.JoinComma
		join.Right = p.parseTableRef()
		return join
	}

	// Check for NATURAL modifier first
	if p.match(token.NATURAL) {
		join.Natural = true
	}

	// Try dialect join type lookup (covers standard + extensions)
	if def, ok := p.dialect.JoinTypeDef(p.token.Type); ok {
		join.Type = core.JoinType(def.Type)
		p.nextToken()

		// Handle optional modifier (OUTER for LEFT/RIGHT/FULL)
		if def.OptionalToken != 0 {
			p.match(def.OptionalToken)
		}

		if !p.expect(token.JOIN) {
			return nil
		}

		join.Right = p.parseTableRef()
		p.parseJoinCondition(join)
		return join
	}

	// Plain JOIN (no type keyword) = INNER JOIN
	if !p.check(token.JOIN) {
		if join.Natural {
			p.addError("expected JOIN after NATURAL")
		}
		return nil
	}
	join.Type = joinInner

	p.expect(token.JOIN)
	join.Right = p.parseTableRef()
	p.parseJoinCondition(join)
	return join
}

// parseJoinCondition handles ON/USING/NATURAL validation.
func (p *Parser) parseJoinCondition(join *core.Join) {
	switch {
	case join.Natural:
		// NATURAL JOIN cannot have ON or USING
		if p.check(token.ON) {
			p.addError("NATURAL JOIN cannot have ON clause")
		}
		if p.check(token.USING) {
			p.addError("NATURAL JOIN cannot have USING clause")
		}
	case p.match(token.ON):
		join.Condition = p.parseExpression()
	case p.match(token.USING):
		join.Using = p.parseUsingColumns()
	}
}

// parseUsingColumns parses the column list in USING (col1, col2, ...).
func (p *Parser) parseUsingColumns() []string {
	p.expect(token.LPAREN)
	var cols []string
	for {
		if !p.check(token.IDENT) {
			p.addError("expected column name in USING clause")
			break
		}
		cols = append(cols, p.token.Literal)
		p.nextToken()
		if !p.match(token.COMMA) {
			break
		}
	}
	p.expect(token.RPAREN)
	return cols
}
