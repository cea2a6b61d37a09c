package generator

import (
	"strings"

	"github.com/leapstack-labs/sqlbridge/pkg/core"
	"github.com/leapstack-labs/sqlbridge/pkg/dialect"
)

// Expression rendering. Canonical names flow back through the dialect's
// mapping tables here, mirroring what the parser did on the way in.

func (p *printer) expr(e core.Expr) {
	switch e := e.(type) {
	case *core.Literal:
		p.literal(e)
	case *core.ColumnRef:
		if e.Table != "" {
			p.ident(e.Table)
			p.write(".")
		}
		p.ident(e.Column)
	case *core.StarExpr:
		if e.Table != "" {
			p.ident(e.Table)
			p.write(".")
		}
		p.write("*")
	case *core.BinaryExpr:
		p.expr(e.Left)
		p.space()
		p.write(e.Op.String())
		p.space()
		p.expr(e.Right)
	case *core.UnaryExpr:
		p.kw(e.Op.String())
		if len(e.Op.String()) > 1 {
			p.space() // word operators like NOT
		}
		p.expr(e.Expr)
	case *core.ParenExpr:
		p.write("(")
		p.expr(e.Expr)
		p.write(")")
	case *core.FuncCall:
		p.funcCall(e)
	case *core.CastExpr:
		p.castExpr(e)
	case *core.CaseExpr:
		p.caseExpr(e)
	case *core.InExpr:
		p.inExpr(e)
	case *core.BetweenExpr:
		p.betweenExpr(e)
	case *core.IsNullExpr:
		p.expr(e.Expr)
		p.space()
		p.kw("IS")
		p.space()
		if e.Not {
			p.kw("NOT")
			p.space()
		}
		p.kw("NULL")
	case *core.IsBoolExpr:
		p.expr(e.Expr)
		p.space()
		p.kw("IS")
		p.space()
		if e.Not {
			p.kw("NOT")
			p.space()
		}
		if e.Value {
			p.kw("TRUE")
		} else {
			p.kw("FALSE")
		}
	case *core.LikeExpr:
		p.likeExpr(e)
	case *core.SubqueryExpr:
		p.write("(")
		p.selectStmt(e.Select)
		p.write(")")
	case *core.ExistsExpr:
		if e.Not {
			p.kw("NOT")
			p.space()
		}
		p.kw("EXISTS")
		p.write(" (")
		p.selectStmt(e.Select)
		p.write(")")
	case *core.ArrayExpr:
		p.kw("ARRAY")
		p.write("[")
		p.exprList(e.Elements)
		p.write("]")
	default:
		p.fail(&dialect.UnsupportedError{
			Dialect:   p.dialect.Name,
			Construct: "expression",
		})
	}
}

func (p *printer) literal(lit *core.Literal) {
	switch lit.Type {
	case core.LiteralString:
		p.stringLit(lit.Value)
	case core.LiteralBool:
		p.kw(lit.Value)
	case core.LiteralNull:
		p.kw("NULL")
	default:
		p.write(lit.Value)
	}
}

// funcCall maps the canonical function name back to the dialect spelling,
// reordering arguments when the mapping says so. An unrenderable function
// fails instead of passing the canonical name through.
func (p *printer) funcCall(fn *core.FuncCall) {
	args := make([]any, len(fn.Args))
	for i, a := range fn.Args {
		args[i] = a
	}

	name, args, err := p.dialect.RenderFunction(fn.Name, args)
	if err != nil {
		p.fail(err)
		return
	}

	p.write(name)
	p.write("(")
	if fn.Star {
		p.write("*")
	} else {
		if fn.Distinct {
			p.kw("DISTINCT")
			p.space()
		}
		p.formatList(len(args), func(i int) {
			if e, ok := args[i].(core.Expr); ok {
				p.expr(e)
			}
		}, ", ")
	}
	p.write(")")

	if len(fn.WithinGroup) > 0 {
		p.space()
		p.kw("WITHIN", "GROUP")
		p.write(" (")
		p.kw("ORDER", "BY")
		p.space()
		p.orderByList(fn.WithinGroup)
		p.write(")")
	}

	if fn.Filter != nil {
		p.space()
		p.kw("FILTER")
		p.write(" (")
		p.kw("WHERE")
		p.space()
		p.expr(fn.Filter)
		p.write(")")
	}

	if fn.Window != nil {
		p.space()
		p.kw("OVER")
		p.space()
		p.windowSpec(fn.Window)
	}
}

func (p *printer) castExpr(cast *core.CastExpr) {
	p.kw("CAST")
	p.write("(")
	p.expr(cast.Expr)
	p.space()
	p.kw("AS")
	p.space()
	p.dataType(cast.Type)
	p.write(")")
}

func (p *printer) dataType(dt core.DataType) {
	name, params := p.dialect.RenderType(dt.Name, dt.Params)
	p.write(name)
	if len(params) > 0 {
		p.write("(")
		p.write(strings.Join(params, ", "))
		p.write(")")
	}
}

func (p *printer) caseExpr(c *core.CaseExpr) {
	p.kw("CASE")
	if c.Operand != nil {
		p.space()
		p.expr(c.Operand)
	}
	for _, when := range c.Whens {
		p.space()
		p.kw("WHEN")
		p.space()
		p.expr(when.Condition)
		p.space()
		p.kw("THEN")
		p.space()
		p.expr(when.Result)
	}
	if c.Else != nil {
		p.space()
		p.kw("ELSE")
		p.space()
		p.expr(c.Else)
	}
	p.space()
	p.kw("END")
}

func (p *printer) inExpr(in *core.InExpr) {
	p.expr(in.Expr)
	p.space()
	if in.Not {
		p.kw("NOT")
		p.space()
	}
	p.kw("IN")
	p.write(" (")
	if in.Query != nil {
		p.selectStmt(in.Query)
	} else {
		p.exprList(in.Values)
	}
	p.write(")")
}

func (p *printer) betweenExpr(b *core.BetweenExpr) {
	p.expr(b.Expr)
	p.space()
	if b.Not {
		p.kw("NOT")
		p.space()
	}
	p.kw("BETWEEN")
	p.space()
	p.expr(b.Low)
	p.space()
	p.kw("AND")
	p.space()
	p.expr(b.High)
}

// likeExpr renders case-insensitive matching with the dialect's ILIKE
// operator when it has one, and through LOWER() on both operands when it
// doesn't. The rewrite preserves semantics exactly, so it is not an
// approximation.
func (p *printer) likeExpr(like *core.LikeExpr) {
	if like.CaseInsensitive && !p.dialect.HasKeyword("ILIKE") {
		p.kw("LOWER")
		p.write("(")
		p.expr(like.Expr)
		p.write(")")
		p.space()
		if like.Not {
			p.kw("NOT")
			p.space()
		}
		p.kw("LIKE")
		p.space()
		p.kw("LOWER")
		p.write("(")
		p.expr(like.Pattern)
		p.write(")")
		return
	}

	p.expr(like.Expr)
	p.space()
	if like.Not {
		p.kw("NOT")
		p.space()
	}
	if like.CaseInsensitive {
		p.kw("ILIKE")
	} else {
		p.kw("LIKE")
	}
	p.space()
	p.expr(like.Pattern)
}

func (p *printer) windowSpec(spec *core.WindowSpec) {
	if spec.Name != "" {
		p.ident(spec.Name)
		return
	}

	p.write("(")
	needSpace := false
	if len(spec.PartitionBy) > 0 {
		p.kw("PARTITION", "BY")
		p.space()
		p.exprList(spec.PartitionBy)
		needSpace = true
	}
	if len(spec.OrderBy) > 0 {
		if needSpace {
			p.space()
		}
		p.kw("ORDER", "BY")
		p.space()
		p.orderByList(spec.OrderBy)
		needSpace = true
	}
	if spec.Frame != nil {
		if needSpace {
			p.space()
		}
		p.frameSpec(spec.Frame)
	}
	p.write(")")
}

func (p *printer) frameSpec(frame *core.FrameSpec) {
	p.kw(string(frame.Type))
	p.space()
	if frame.End != nil {
		p.kw("BETWEEN")
		p.space()
		p.frameBound(frame.Start)
		p.space()
		p.kw("AND")
		p.space()
		p.frameBound(frame.End)
	} else {
		p.frameBound(frame.Start)
	}
}

func (p *printer) frameBound(bound *core.FrameBound) {
	switch bound.Type {
	case core.FrameExprPreceding:
		p.expr(bound.Offset)
		p.space()
		p.kw("PRECEDING")
	case core.FrameExprFollowing:
		p.expr(bound.Offset)
		p.space()
		p.kw("FOLLOWING")
	default:
		p.kw(string(bound.Type))
	}
}
