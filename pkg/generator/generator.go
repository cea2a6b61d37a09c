// Package generator renders the canonical AST as SQL text in a target
// dialect.
//
// Generation is the inverse of parsing: canonical function and type names
// are mapped back to the dialect's spellings, and constructs the dialect
// cannot express fail with dialect.UnsupportedError instead of being
// approximated. Output is a single line with uppercase keywords.
package generator

import (
	"bytes"
	"strings"

	"github.com/leapstack-labs/sqlbridge/pkg/core"
	"github.com/leapstack-labs/sqlbridge/pkg/dialect"
)

// Generate renders a canonical statement as SQL in the given dialect.
func Generate(stmt core.Stmt, d *dialect.Dialect) (string, error) {
	if d == nil {
		return "", dialect.ErrDialectRequired
	}
	p := &printer{dialect: d}
	p.stmt(stmt)
	if p.err != nil {
		return "", p.err
	}
	return p.output.String(), nil
}

// printer accumulates output and records the first error. Emission
// methods keep writing after a failure; the buffer is discarded then, so
// only the error ordering matters.
type printer struct {
	dialect *dialect.Dialect
	output  bytes.Buffer
	err     error
}

func (p *printer) fail(err error) {
	if p.err == nil {
		p.err = err
	}
}

// checkSupported records the policy error if the dialect cannot render
// the construct.
func (p *printer) checkSupported(construct string) {
	if err := p.dialect.RenderReject(construct); err != nil {
		p.fail(err)
	}
}

func (p *printer) write(s string) {
	p.output.WriteString(s)
}

func (p *printer) space() {
	p.output.WriteByte(' ')
}

// kw writes uppercase keywords separated by spaces.
func (p *printer) kw(words ...string) {
	for i, w := range words {
		if i > 0 {
			p.space()
		}
		p.write(strings.ToUpper(w))
	}
}

func (p *printer) ident(name string) {
	p.write(name)
}

// stringLit writes a single-quoted string with doubled-quote escaping.
func (p *printer) stringLit(s string) {
	p.output.WriteByte('\'')
	p.write(strings.ReplaceAll(s, "'", "''"))
	p.output.WriteByte('\'')
}

// formatList prints count items with separators.
func (p *printer) formatList(count int, format func(i int), sep string) {
	for i := 0; i < count; i++ {
		format(i)
		if i < count-1 {
			p.write(sep)
		}
	}
}

// ---------- Statements ----------

func (p *printer) stmt(s core.Stmt) {
	switch s := s.(type) {
	case *core.SelectStmt:
		p.selectStmt(s)
	case *core.CreateTableStmt:
		p.createTableStmt(s)
	case *core.CreateProjectionStmt:
		p.checkSupported(dialect.ConstructProjection)
		p.createProjectionStmt(s)
	case *core.CopyStmt:
		if s.Local {
			p.checkSupported(dialect.ConstructCopyLocal)
		} else {
			p.checkSupported(dialect.ConstructCopyFrom)
		}
		p.copyStmt(s)
	case *core.ExportStmt:
		p.checkSupported(dialect.ConstructExport)
		p.exportStmt(s)
	default:
		p.fail(&dialect.UnsupportedError{
			Dialect:   p.dialect.Name,
			Construct: "statement",
		})
	}
}

func (p *printer) selectStmt(s *core.SelectStmt) {
	if s.With != nil {
		p.kw("WITH")
		p.space()
		if s.With.Recursive {
			p.kw("RECURSIVE")
			p.space()
		}
		p.formatList(len(s.With.CTEs), func(i int) {
			cte := s.With.CTEs[i]
			p.ident(cte.Name)
			p.space()
			p.kw("AS")
			p.write(" (")
			p.selectStmt(cte.Select)
			p.write(")")
		}, ", ")
		p.space()
	}
	p.selectBody(s.Body)
}

func (p *printer) selectBody(b *core.SelectBody) {
	p.selectCore(b.Left)
	if b.Op != core.SetOpNone && b.Right != nil {
		p.space()
		p.kw(string(b.Op))
		p.space()
		p.selectBody(b.Right)
	}
}

func (p *printer) selectCore(sel *core.SelectCore) {
	p.kw("SELECT")
	p.space()
	if sel.Distinct {
		p.kw("DISTINCT")
		p.space()
	}
	p.formatList(len(sel.Columns), func(i int) {
		p.selectItem(sel.Columns[i])
	}, ", ")

	if sel.From != nil {
		p.space()
		p.kw("FROM")
		p.space()
		p.fromClause(sel.From)
	}

	if sel.Where != nil {
		p.space()
		p.kw("WHERE")
		p.space()
		p.expr(sel.Where)
	}

	if len(sel.GroupBy) > 0 {
		p.space()
		p.kw("GROUP", "BY")
		p.space()
		p.exprList(sel.GroupBy)
	}

	if sel.Having != nil {
		p.space()
		p.kw("HAVING")
		p.space()
		p.expr(sel.Having)
	}

	if len(sel.Windows) > 0 {
		p.space()
		p.kw("WINDOW")
		p.space()
		p.formatList(len(sel.Windows), func(i int) {
			w := sel.Windows[i]
			p.ident(w.Name)
			p.space()
			p.kw("AS")
			p.space()
			p.windowSpec(w.Spec)
		}, ", ")
	}

	if len(sel.OrderBy) > 0 {
		p.space()
		p.kw("ORDER", "BY")
		p.space()
		p.orderByList(sel.OrderBy)
	}

	if sel.Limit != nil {
		p.space()
		p.kw("LIMIT")
		p.space()
		p.expr(sel.Limit)
	}

	if sel.Offset != nil {
		p.space()
		p.kw("OFFSET")
		p.space()
		p.expr(sel.Offset)
	}

	if sel.Fetch != nil {
		p.space()
		p.fetchClause(sel.Fetch)
	}
}

func (p *printer) fetchClause(f *core.FetchClause) {
	p.kw("FETCH")
	p.space()
	if f.First {
		p.kw("FIRST")
	} else {
		p.kw("NEXT")
	}
	if f.Count != nil {
		p.space()
		p.expr(f.Count)
		p.space()
		p.kw("ROWS")
	} else {
		p.space()
		p.kw("ROW")
	}
	p.space()
	if f.WithTies {
		p.kw("WITH", "TIES")
	} else {
		p.kw("ONLY")
	}
}

func (p *printer) selectItem(item core.SelectItem) {
	switch {
	case item.Star:
		p.write("*")
	case item.TableStar != "":
		p.ident(item.TableStar)
		p.write(".*")
	default:
		p.expr(item.Expr)
		if item.Alias != "" {
			p.space()
			p.kw("AS")
			p.space()
			p.ident(item.Alias)
		}
	}
}

// ---------- FROM and Joins ----------

func (p *printer) fromClause(from *core.FromClause) {
	p.tableRef(from.Source)
	for _, join := range from.Joins {
		p.join(join)
	}
}

func (p *printer) tableRef(ref core.TableRef) {
	switch ref := ref.(type) {
	case *core.TableName:
		p.tableName(ref)
		if ref.Alias != "" {
			p.space()
			p.kw("AS")
			p.space()
			p.ident(ref.Alias)
		}
	case *core.DerivedTable:
		p.write("(")
		p.selectStmt(ref.Select)
		p.write(")")
		if ref.Alias != "" {
			p.space()
			p.kw("AS")
			p.space()
			p.ident(ref.Alias)
		}
	case *core.LateralTable:
		p.checkSupported(dialect.ConstructLateralJoin)
		p.kw("LATERAL")
		p.write(" (")
		p.selectStmt(ref.Select)
		p.write(")")
		if ref.Alias != "" {
			p.space()
			p.kw("AS")
			p.space()
			p.ident(ref.Alias)
		}
	}
}

func (p *printer) tableName(t *core.TableName) {
	if t.Catalog != "" {
		p.ident(t.Catalog)
		p.write(".")
	}
	if t.Schema != "" {
		p.ident(t.Schema)
		p.write(".")
	}
	p.ident(t.Name)
}

func (p *printer) join(j *core.Join) {
	if j.Type == core.JoinComma {
		p.write(", ")
		p.tableRef(j.Right)
		return
	}

	p.space()
	if j.Natural {
		p.kw("NATURAL")
		p.space()
	}
	if j.Type != "" && j.Type != "INNER" {
		p.kw(string(j.Type))
		p.space()
	}
	p.kw("JOIN")
	p.space()
	p.tableRef(j.Right)

	switch {
	case j.Condition != nil:
		p.space()
		p.kw("ON")
		p.space()
		p.expr(j.Condition)
	case len(j.Using) > 0:
		p.space()
		p.kw("USING")
		p.write(" (")
		p.formatList(len(j.Using), func(i int) {
			p.ident(j.Using[i])
		}, ", ")
		p.write(")")
	}
}

// ---------- Lists ----------

func (p *printer) exprList(exprs []core.Expr) {
	p.formatList(len(exprs), func(i int) {
		p.expr(exprs[i])
	}, ", ")
}

func (p *printer) orderByList(items []core.OrderByItem) {
	p.formatList(len(items), func(i int) {
		item := items[i]
		p.expr(item.Expr)
		if item.Desc {
			p.space()
			p.kw("DESC")
		}
		if item.NullsFirst != nil {
			p.space()
			if *item.NullsFirst {
				p.kw("NULLS", "FIRST")
			} else {
				p.kw("NULLS", "LAST")
			}
		}
	}, ", ")
}
