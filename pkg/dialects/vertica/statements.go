package vertica

import (
	"strings"

	"github.com/leapstack-labs/sqlbridge/pkg/core"
	"github.com/leapstack-labs/sqlbridge/pkg/dialect"
	"github.com/leapstack-labs/sqlbridge/pkg/spi"
	"github.com/leapstack-labs/sqlbridge/pkg/token"
)

// Statement handlers for Vertica's bulk-data and DDL extensions.
// COPY and EXPORT options use soft keywords (MatchIdent) so DELIMITER,
// SKIP and friends stay ordinary identifiers everywhere else.

// parseCopy handles COPY tbl [(cols)] FROM {LOCAL 'path' | STDIN | 'path'}
// with trailing load options. The COPY keyword has already been consumed.
func parseCopy(p spi.ParserOps) (spi.Node, error) {
	stmt := &core.CopyStmt{}

	node, err := p.ParseTableName()
	if err != nil {
		return nil, err
	}
	stmt.Table = node.(*core.TableName)

	if p.Match(token.LPAREN) {
		cols, err := parseIdentList(p)
		if err != nil {
			return nil, err
		}
		stmt.Columns = cols
		if err := p.Expect(token.RPAREN); err != nil {
			return nil, err
		}
	}

	if err := p.Expect(token.FROM); err != nil {
		return nil, err
	}

	switch {
	case p.MatchIdent("STDIN"):
		stmt.Stdin = true
	case p.MatchIdent("LOCAL"):
		stmt.Local = true
		path, err := p.ParseStringLit()
		if err != nil {
			return nil, err
		}
		stmt.Path = path
	default:
		path, err := p.ParseStringLit()
		if err != nil {
			return nil, err
		}
		stmt.Path = path
	}

	// Load options in any order
	for {
		switch {
		case p.MatchIdent("DELIMITER"):
			delim, err := p.ParseStringLit()
			if err != nil {
				return nil, err
			}
			stmt.Delimiter = delim
		case p.MatchIdent("SKIP"):
			expr, err := p.ParseExpression()
			if err != nil {
				return nil, err
			}
			stmt.Skip = expr.(core.Expr)
		case p.MatchIdent("REJECTMAX"):
			expr, err := p.ParseExpression()
			if err != nil {
				return nil, err
			}
			stmt.RejectMax = expr.(core.Expr)
		case p.MatchIdent("DIRECT"):
			stmt.Direct = true
		case p.MatchIdent("ABORT"):
			if !p.Match(token.ON) {
				p.AddError("expected ON after ABORT")
			}
			if !p.MatchIdent("ERROR") {
				p.AddError("expected ERROR after ABORT ON")
			}
			stmt.AbortOnError = true
		default:
			return stmt, nil
		}
	}
}

// parseExport handles EXPORT TO <format> [(opt = value, ...)] AS SELECT.
// The EXPORT keyword has already been consumed.
func parseExport(p spi.ParserOps) (spi.Node, error) {
	stmt := &core.ExportStmt{}

	if !p.MatchIdent("TO") {
		p.AddError("expected TO after EXPORT")
	}

	format, err := p.ParseIdentifier()
	if err != nil {
		return nil, err
	}
	stmt.Format = strings.ToUpper(format)

	if p.Match(token.LPAREN) {
		for {
			key, err := p.ParseIdentifier()
			if err != nil {
				return nil, err
			}
			if err := p.Expect(token.EQ); err != nil {
				return nil, err
			}
			value, err := p.ParseExpression()
			if err != nil {
				return nil, err
			}
			stmt.Options = append(stmt.Options, core.ExportOption{
				Key:   key,
				Value: value.(core.Expr),
			})
			if !p.Match(token.COMMA) {
				break
			}
		}
		if err := p.Expect(token.RPAREN); err != nil {
			return nil, err
		}
	}

	if err := p.Expect(token.AS); err != nil {
		return nil, err
	}

	sel, err := p.ParseSelect()
	if err != nil {
		return nil, err
	}
	stmt.Select = sel.(*core.SelectStmt)

	return stmt, nil
}

// parseCreate handles CREATE TABLE and CREATE PROJECTION. The CREATE
// keyword has already been consumed.
func parseCreate(p spi.ParserOps) (spi.Node, error) {
	switch {
	case p.Match(token.TABLE):
		return parseCreateTable(p)
	case p.MatchIdent("PROJECTION"):
		return parseCreateProjection(p)
	default:
		p.AddError("expected TABLE or PROJECTION after CREATE")
		return nil, nil
	}
}

// parseCreateTable extends the shared CREATE TABLE grammar with
// Vertica's physical-layout clauses: ORDER BY and segmentation.
func parseCreateTable(p spi.ParserOps) (spi.Node, error) {
	stmt, err := dialect.ParseCreateTable(p)
	if err != nil {
		return nil, err
	}

	if p.Match(token.ORDER) {
		if err := p.Expect(token.BY); err != nil {
			return nil, err
		}
		exprs, err := p.ParseExpressionList()
		if err != nil {
			return nil, err
		}
		stmt.OrderBy = toExprs(exprs)
	}

	seg, err := parseSegmentation(p)
	if err != nil {
		return nil, err
	}
	stmt.Segmentation = seg

	return stmt, nil
}

func parseCreateProjection(p spi.ParserOps) (spi.Node, error) {
	stmt := &core.CreateProjectionStmt{}

	node, err := p.ParseTableName()
	if err != nil {
		return nil, err
	}
	stmt.Name = node.(*core.TableName)

	if p.Match(token.LPAREN) {
		cols, err := parseIdentList(p)
		if err != nil {
			return nil, err
		}
		stmt.Columns = cols
		if err := p.Expect(token.RPAREN); err != nil {
			return nil, err
		}
	}

	if err := p.Expect(token.AS); err != nil {
		return nil, err
	}

	sel, err := p.ParseSelect()
	if err != nil {
		return nil, err
	}
	stmt.Select = sel.(*core.SelectStmt)

	seg, err := parseSegmentation(p)
	if err != nil {
		return nil, err
	}
	stmt.Segmentation = seg

	return stmt, nil
}

// parseSegmentation handles SEGMENTED BY expr [ALL NODES] and
// UNSEGMENTED [ALL NODES]. Returns nil when neither form is present.
func parseSegmentation(p spi.ParserOps) (*core.Segmentation, error) {
	seg := &core.Segmentation{}

	switch {
	case p.MatchIdent("SEGMENTED"):
		if err := p.Expect(token.BY); err != nil {
			return nil, err
		}
		expr, err := p.ParseExpression()
		if err != nil {
			return nil, err
		}
		seg.ByExpr = expr.(core.Expr)
	case p.MatchIdent("UNSEGMENTED"):
	default:
		return nil, nil
	}

	if p.Match(token.ALL) {
		if !p.MatchIdent("NODES") {
			p.AddError("expected NODES after ALL")
		}
		seg.AllNodes = true
	}

	return seg, nil
}

// parseArrayLiteral handles ARRAY[e1, e2, ...]. The ARRAY keyword has
// already been consumed.
func parseArrayLiteral(p spi.ParserOps) (spi.Expr, error) {
	if err := p.Expect(token.LBRACKET); err != nil {
		return nil, err
	}

	arr := &core.ArrayExpr{}
	if !p.Check(token.RBRACKET) {
		exprs, err := p.ParseExpressionList()
		if err != nil {
			return nil, err
		}
		arr.Elements = toExprs(exprs)
	}

	if err := p.Expect(token.RBRACKET); err != nil {
		return nil, err
	}
	return arr, nil
}

func parseIdentList(p spi.ParserOps) ([]string, error) {
	var names []string
	for {
		name, err := p.ParseIdentifier()
		if err != nil {
			return nil, err
		}
		names = append(names, name)
		if !p.Match(token.COMMA) {
			break
		}
	}
	return names, nil
}

func toExprs(exprs []spi.Expr) []core.Expr {
	out := make([]core.Expr, len(exprs))
	for i, e := range exprs {
		out[i] = e.(core.Expr)
	}
	return out
}
