// This file contains shared DDL parsing logic for CREATE statements.
// Dialect statement handlers compose these the same way clause handlers
// compose the SELECT toolbox.
package dialect

import (
	"github.com/leapstack-labs/sqlbridge/pkg/core"
	"github.com/leapstack-labs/sqlbridge/pkg/spi"
	"github.com/leapstack-labs/sqlbridge/pkg/token"
)

// ParseCreateTable parses the remainder of a CREATE TABLE statement.
// The CREATE and TABLE keywords have already been consumed.
func ParseCreateTable(p spi.ParserOps) (*core.CreateTableStmt, error) {
	stmt := &core.CreateTableStmt{}

	if p.MatchIdent("IF") {
		if !p.Match(token.NOT) {
			p.AddError("expected NOT after IF")
		}
		if !p.Match(token.EXISTS) {
			p.AddError("expected EXISTS after IF NOT")
		}
		stmt.IfNotExists = true
	}

	node, err := p.ParseTableName()
	if err != nil {
		return nil, err
	}
	stmt.Table = node.(*core.TableName)

	cols, err := ParseColumnDefs(p)
	if err != nil {
		return nil, err
	}
	stmt.Columns = cols

	return stmt, nil
}

// ParseColumnDefs parses a parenthesized column definition list.
func ParseColumnDefs(p spi.ParserOps) ([]core.ColumnDef, error) {
	if err := p.Expect(token.LPAREN); err != nil {
		return nil, err
	}

	var cols []core.ColumnDef
	for {
		col, err := parseColumnDef(p)
		if err != nil {
			return nil, err
		}
		cols = append(cols, col)

		if !p.Match(token.COMMA) {
			break
		}
	}

	if err := p.Expect(token.RPAREN); err != nil {
		return nil, err
	}
	return cols, nil
}

func parseColumnDef(p spi.ParserOps) (core.ColumnDef, error) {
	var col core.ColumnDef

	name, err := p.ParseIdentifier()
	if err != nil {
		return col, err
	}
	col.Name = name

	node, err := p.ParseDataType()
	if err != nil {
		return col, err
	}
	col.Type = node.(core.DataType)

	// Column attributes in any order
attrs:
	for {
		switch {
		case p.Match(token.NOT):
			if err := p.Expect(token.NULL); err != nil {
				return col, err
			}
			col.NotNull = true
		case p.Match(token.PRIMARY):
			if err := p.Expect(token.KEY); err != nil {
				return col, err
			}
			col.PrimaryKey = true
		case p.Match(token.DEFAULT):
			expr, err := p.ParseExpression()
			if err != nil {
				return col, err
			}
			col.Default = expr.(core.Expr)
		default:
			break attrs
		}
	}

	return col, nil
}
