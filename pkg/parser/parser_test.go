package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/sqlbridge/pkg/core"
	"github.com/leapstack-labs/sqlbridge/pkg/dialect"
	"github.com/leapstack-labs/sqlbridge/pkg/token"
)

// testDialect builds a standalone dialect so the parser tests don't depend
// on the registered dialect packages.
func testDialect() *dialect.Dialect {
	return dialect.New(&core.DialectConfig{
		Name:                 "testsql",
		Aggregates:           []string{"SUM", "COUNT", "MIN", "MAX", "AVG"},
		SupportsIlike:        true,
		SupportsCastOperator: true,
		SupportsWithinGroup:  true,
	}).
		Clauses(dialect.StandardClauses()...).
		Operators(dialect.ANSIOperators).
		JoinTypes(dialect.ANSIJoinTypes).
		Functions(
			dialect.FunctionMapping{Canonical: "DATE_DIFF", Native: "DATEDIFF"},
			dialect.FunctionMapping{
				Canonical: "DATE_ADD", Native: "DATEADD",
				ParseArgs:  dialect.ReorderArgs(2, 1, 0),
				RenderArgs: dialect.ReorderArgs(2, 1, 0),
			},
		).
		Types(
			dialect.TypeMapping{Canonical: "FLOAT", Native: "DOUBLE PRECISION"},
		).
		Unsupported(
			dialect.ConstructPolicy{Construct: dialect.ConstructDollarQuote, Phase: dialect.PhaseParse},
			dialect.ConstructPolicy{Construct: dialect.ConstructLateralJoin, Phase: dialect.PhaseParse},
		).
		RejectForm("$", dialect.ConstructDollarQuote).
		Build()
}

func mustParse(t *testing.T, sql string) *core.SelectStmt {
	t.Helper()
	stmt, err := Parse(sql, testDialect())
	require.NoError(t, err)
	sel, ok := stmt.(*core.SelectStmt)
	require.True(t, ok, "expected *core.SelectStmt, got %T", stmt)
	return sel
}

func TestParseSimpleSelect(t *testing.T) {
	stmt := mustParse(t, "SELECT a, b FROM t")

	sel := stmt.Body.Left
	require.Len(t, sel.Columns, 2)
	colA, ok := sel.Columns[0].Expr.(*core.ColumnRef)
	require.True(t, ok)
	assert.Equal(t, "a", colA.Column)

	tbl, ok := sel.From.Source.(*core.TableName)
	require.True(t, ok)
	assert.Equal(t, "t", tbl.Name)
}

func TestParseSelectClauses(t *testing.T) {
	stmt := mustParse(t, "SELECT a FROM t WHERE a > 1 GROUP BY a HAVING COUNT(*) > 2 ORDER BY a DESC LIMIT 10 OFFSET 5")

	sel := stmt.Body.Left
	assert.NotNil(t, sel.Where)
	require.Len(t, sel.GroupBy, 1)
	assert.NotNil(t, sel.Having)
	require.Len(t, sel.OrderBy, 1)
	assert.True(t, sel.OrderBy[0].Desc)
	assert.NotNil(t, sel.Limit)
	assert.NotNil(t, sel.Offset)
}

func TestParseSetOperations(t *testing.T) {
	stmt := mustParse(t, "SELECT a FROM t UNION ALL SELECT b FROM u")

	assert.Equal(t, core.SetOpUnionAll, stmt.Body.Op)
	assert.True(t, stmt.Body.All)
	require.NotNil(t, stmt.Body.Right)
}

func TestParseWithClause(t *testing.T) {
	stmt := mustParse(t, "WITH x AS (SELECT a FROM t) SELECT a FROM x")

	require.NotNil(t, stmt.With)
	require.Len(t, stmt.With.CTEs, 1)
	assert.Equal(t, "x", stmt.With.CTEs[0].Name)
}

func TestParseJoins(t *testing.T) {
	tests := []struct {
		name string
		sql  string
		want core.JoinType
	}{
		{"plain join", "SELECT a FROM t JOIN u ON t.id = u.id", "INNER"},
		{"left join", "SELECT a FROM t LEFT JOIN u ON t.id = u.id", "LEFT"},
		{"left outer join", "SELECT a FROM t LEFT OUTER JOIN u ON t.id = u.id", "LEFT"},
		{"cross join", "SELECT a FROM t CROSS JOIN u", "CROSS"},
		{"comma join", "SELECT a FROM t, u", core.JoinComma},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stmt := mustParse(t, tt.sql)
			joins := stmt.Body.Left.From.Joins
			require.Len(t, joins, 1)
			assert.Equal(t, tt.want, joins[0].Type)
		})
	}
}

func TestParseJoinUsing(t *testing.T) {
	stmt := mustParse(t, "SELECT a FROM t JOIN u USING (id, name)")
	joins := stmt.Body.Left.From.Joins
	require.Len(t, joins, 1)
	assert.Equal(t, []string{"id", "name"}, joins[0].Using)
}

func TestParseFunctionResolution(t *testing.T) {
	t.Run("mapped name", func(t *testing.T) {
		stmt := mustParse(t, "SELECT DATEDIFF('day', a, b) FROM t")
		fn, ok := stmt.Body.Left.Columns[0].Expr.(*core.FuncCall)
		require.True(t, ok)
		assert.Equal(t, "DATE_DIFF", fn.Name)
		require.Len(t, fn.Args, 3)
	})

	t.Run("argument reorder", func(t *testing.T) {
		stmt := mustParse(t, "SELECT DATEADD('month', 3, start_date) FROM t")
		fn, ok := stmt.Body.Left.Columns[0].Expr.(*core.FuncCall)
		require.True(t, ok)
		assert.Equal(t, "DATE_ADD", fn.Name)
		require.Len(t, fn.Args, 3)
		// Native order (unit, count, expr) becomes canonical (expr, count, unit)
		first, ok := fn.Args[0].(*core.ColumnRef)
		require.True(t, ok)
		assert.Equal(t, "start_date", first.Column)
		last, ok := fn.Args[2].(*core.Literal)
		require.True(t, ok)
		assert.Equal(t, "month", last.Value)
	})

	t.Run("unmapped name is uppercased", func(t *testing.T) {
		stmt := mustParse(t, "SELECT md5(a) FROM t")
		fn, ok := stmt.Body.Left.Columns[0].Expr.(*core.FuncCall)
		require.True(t, ok)
		assert.Equal(t, "MD5", fn.Name)
	})
}

func TestParseWithinGroup(t *testing.T) {
	stmt := mustParse(t, "SELECT APPROXIMATE_PERCENTILE(x) WITHIN GROUP (ORDER BY y) FROM t")
	fn, ok := stmt.Body.Left.Columns[0].Expr.(*core.FuncCall)
	require.True(t, ok)
	require.Len(t, fn.WithinGroup, 1)
}

func TestParseWindowFunction(t *testing.T) {
	stmt := mustParse(t, "SELECT ROW_NUMBER() OVER (PARTITION BY a ORDER BY b) FROM t")
	fn, ok := stmt.Body.Left.Columns[0].Expr.(*core.FuncCall)
	require.True(t, ok)
	require.NotNil(t, fn.Window)
	require.Len(t, fn.Window.PartitionBy, 1)
	require.Len(t, fn.Window.OrderBy, 1)
}

func TestParseNamedWindow(t *testing.T) {
	stmt := mustParse(t, "SELECT SUM(x) OVER w FROM t WINDOW w AS (PARTITION BY a)")
	sel := stmt.Body.Left
	require.Len(t, sel.Windows, 1)
	assert.Equal(t, "w", sel.Windows[0].Name)
	require.NotNil(t, sel.Windows[0].Spec)
}

func TestParseIlike(t *testing.T) {
	stmt := mustParse(t, "SELECT a FROM t WHERE name ILIKE '%foo%'")
	like, ok := stmt.Body.Left.Where.(*core.LikeExpr)
	require.True(t, ok)
	assert.True(t, like.CaseInsensitive)
	assert.False(t, like.Not)
}

func TestParseNotLike(t *testing.T) {
	stmt := mustParse(t, "SELECT a FROM t WHERE name NOT LIKE 'x%'")
	like, ok := stmt.Body.Left.Where.(*core.LikeExpr)
	require.True(t, ok)
	assert.True(t, like.Not)
	assert.False(t, like.CaseInsensitive)
}

func TestParseCastOperator(t *testing.T) {
	stmt := mustParse(t, "SELECT a::DOUBLE PRECISION FROM t")
	cast, ok := stmt.Body.Left.Columns[0].Expr.(*core.CastExpr)
	require.True(t, ok)
	assert.Equal(t, "FLOAT", cast.Type.Name)
}

func TestParseCastExpr(t *testing.T) {
	stmt := mustParse(t, "SELECT CAST(a AS VARCHAR(255)) FROM t")
	cast, ok := stmt.Body.Left.Columns[0].Expr.(*core.CastExpr)
	require.True(t, ok)
	assert.Equal(t, "VARCHAR", cast.Type.Name)
	assert.Equal(t, []string{"255"}, cast.Type.Params)
}

func TestParseCaseExpr(t *testing.T) {
	stmt := mustParse(t, "SELECT CASE WHEN a > 1 THEN 'big' ELSE 'small' END FROM t")
	caseExpr, ok := stmt.Body.Left.Columns[0].Expr.(*core.CaseExpr)
	require.True(t, ok)
	require.Len(t, caseExpr.Whens, 1)
	assert.NotNil(t, caseExpr.Else)
}

func TestParseRejectedForms(t *testing.T) {
	t.Run("dollar quote", func(t *testing.T) {
		_, err := Parse("SELECT $$tag$$ FROM t", testDialect())
		require.Error(t, err)
		var perr *ParseError
		require.ErrorAs(t, err, &perr)
		assert.Contains(t, err.Error(), "dollar-quoted string literal is not supported in testsql dialect")
	})

	t.Run("lateral join", func(t *testing.T) {
		_, err := Parse("SELECT a FROM t, LATERAL (SELECT b FROM u) x", testDialect())
		require.Error(t, err)
		assert.Contains(t, err.Error(), "LATERAL join is not supported in testsql dialect")
	})
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name string
		sql  string
	}{
		{"empty statement", ""},
		{"garbage start", "FROB x"},
		{"trailing tokens", "SELECT a FROM t t2 t3"},
		{"missing end", "SELECT CASE WHEN a THEN b FROM t"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(tt.sql, testDialect())
			require.Error(t, err)
			var perr *ParseError
			assert.ErrorAs(t, err, &perr)
		})
	}
}

func TestParseErrorPosition(t *testing.T) {
	_, err := Parse("SELECT a FROM", testDialect())
	require.Error(t, err)
	var perr *ParseError
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, 1, perr.Pos.Line)
	assert.Greater(t, perr.Pos.Column, 1)
}

func TestParseRequiresDialect(t *testing.T) {
	_, err := Parse("SELECT 1", nil)
	assert.ErrorIs(t, err, dialect.ErrDialectRequired)
}

func TestTokenize(t *testing.T) {
	toks := Tokenize("SELECT a + 1", testDialect())
	require.Len(t, toks, 5)
	assert.Equal(t, token.SELECT, toks[0].Type)
	assert.Equal(t, token.IDENT, toks[1].Type)
	assert.Equal(t, token.PLUS, toks[2].Type)
	assert.Equal(t, token.NUMBER, toks[3].Type)
	assert.Equal(t, token.EOF, toks[4].Type)
}

func TestLexerComments(t *testing.T) {
	l := NewLexer("SELECT a -- trailing\nFROM t /* block */", testDialect())
	for {
		if l.NextToken().Type == token.EOF {
			break
		}
	}
	require.Len(t, l.Comments, 2)
	assert.Equal(t, token.LineComment, l.Comments[0].Kind)
	assert.Equal(t, token.BlockComment, l.Comments[1].Kind)
}
