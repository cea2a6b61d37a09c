package generator

import (
	"github.com/leapstack-labs/sqlbridge/pkg/core"
)

// DDL and bulk-data statement rendering. The construct policy check has
// already run by the time these are called; a dialect that reaches here
// accepts the statement's syntax.

func (p *printer) createTableStmt(s *core.CreateTableStmt) {
	p.kw("CREATE", "TABLE")
	p.space()
	if s.IfNotExists {
		p.kw("IF", "NOT", "EXISTS")
		p.space()
	}
	p.tableName(s.Table)
	p.write(" (")
	p.formatList(len(s.Columns), func(i int) {
		p.columnDef(s.Columns[i])
	}, ", ")
	p.write(")")

	if len(s.OrderBy) > 0 {
		p.space()
		p.kw("ORDER", "BY")
		p.space()
		p.exprList(s.OrderBy)
	}
	if s.Segmentation != nil {
		p.space()
		p.segmentation(s.Segmentation)
	}
}

func (p *printer) columnDef(col core.ColumnDef) {
	p.ident(col.Name)
	p.space()
	p.dataType(col.Type)
	if col.NotNull {
		p.space()
		p.kw("NOT", "NULL")
	}
	if col.PrimaryKey {
		p.space()
		p.kw("PRIMARY", "KEY")
	}
	if col.Default != nil {
		p.space()
		p.kw("DEFAULT")
		p.space()
		p.expr(col.Default)
	}
}

func (p *printer) segmentation(seg *core.Segmentation) {
	if seg.ByExpr == nil {
		p.kw("UNSEGMENTED")
	} else {
		p.kw("SEGMENTED", "BY")
		p.space()
		p.expr(seg.ByExpr)
	}
	if seg.AllNodes {
		p.space()
		p.kw("ALL", "NODES")
	}
}

func (p *printer) createProjectionStmt(s *core.CreateProjectionStmt) {
	p.kw("CREATE", "PROJECTION")
	p.space()
	p.tableName(s.Name)
	if len(s.Columns) > 0 {
		p.write(" (")
		p.formatList(len(s.Columns), func(i int) {
			p.ident(s.Columns[i])
		}, ", ")
		p.write(")")
	}
	p.space()
	p.kw("AS")
	p.space()
	p.selectStmt(s.Select)

	if len(s.OrderBy) > 0 {
		p.space()
		p.kw("ORDER", "BY")
		p.space()
		p.exprList(s.OrderBy)
	}
	if s.Segmentation != nil {
		p.space()
		p.segmentation(s.Segmentation)
	}
}

func (p *printer) copyStmt(s *core.CopyStmt) {
	p.kw("COPY")
	p.space()
	p.tableName(s.Table)
	if len(s.Columns) > 0 {
		p.write(" (")
		p.formatList(len(s.Columns), func(i int) {
			p.ident(s.Columns[i])
		}, ", ")
		p.write(")")
	}
	p.space()
	p.kw("FROM")
	p.space()
	switch {
	case s.Stdin:
		p.kw("STDIN")
	case s.Local:
		p.kw("LOCAL")
		p.space()
		p.stringLit(s.Path)
	default:
		p.stringLit(s.Path)
	}

	if s.Delimiter != "" {
		p.space()
		p.kw("DELIMITER")
		p.space()
		p.stringLit(s.Delimiter)
	}
	if s.Skip != nil {
		p.space()
		p.kw("SKIP")
		p.space()
		p.expr(s.Skip)
	}
	if s.RejectMax != nil {
		p.space()
		p.kw("REJECTMAX")
		p.space()
		p.expr(s.RejectMax)
	}
	if s.AbortOnError {
		p.space()
		p.kw("ABORT", "ON", "ERROR")
	}
	if s.Direct {
		p.space()
		p.kw("DIRECT")
	}
}

func (p *printer) exportStmt(s *core.ExportStmt) {
	p.kw("EXPORT", "TO")
	p.space()
	p.kw(s.Format)
	if len(s.Options) > 0 {
		p.write(" (")
		p.formatList(len(s.Options), func(i int) {
			opt := s.Options[i]
			p.ident(opt.Key)
			p.write(" = ")
			p.expr(opt.Value)
		}, ", ")
		p.write(")")
	}
	p.space()
	p.kw("AS")
	p.space()
	p.selectStmt(s.Select)
}
