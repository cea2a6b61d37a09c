package generator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/sqlbridge/pkg/core"
	"github.com/leapstack-labs/sqlbridge/pkg/dialect"
	"github.com/leapstack-labs/sqlbridge/pkg/parser"
)

// sourceDialect can read and write the mapped spellings; targetDialect is
// a plain ANSI-style dialect without them.
func sourceDialect() *dialect.Dialect {
	return dialect.New(&core.DialectConfig{
		Name:                 "src",
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
			dialect.FunctionMapping{Canonical: "GENERATE_SERIES", Native: "", Reason: "no series generator"},
		).
		Types(
			dialect.TypeMapping{Canonical: "FLOAT", Native: "DOUBLE PRECISION"},
		).
		Build()
}

func targetDialect() *dialect.Dialect {
	return dialect.New(&core.DialectConfig{
		Name:       "dst",
		Aggregates: []string{"SUM", "COUNT", "MIN", "MAX", "AVG"},
	}).
		Clauses(dialect.StandardClauses()...).
		Operators(dialect.ANSIOperators).
		JoinTypes(dialect.ANSIJoinTypes).
		Unsupported(
			dialect.ConstructPolicy{Construct: dialect.ConstructCopyFrom, Phase: dialect.PhaseGenerate},
			dialect.ConstructPolicy{Construct: dialect.ConstructLateralJoin, Phase: dialect.PhaseGenerate},
		).
		Build()
}

// roundTrip parses in src and renders back in src; the output of a second
// pass must equal the first (generation reaches a fixed point).
func roundTrip(t *testing.T, sql string) string {
	t.Helper()
	src := sourceDialect()
	stmt, err := parser.Parse(sql, src)
	require.NoError(t, err)
	out, err := Generate(stmt, src)
	require.NoError(t, err)

	stmt2, err := parser.Parse(out, src)
	require.NoError(t, err)
	out2, err := Generate(stmt2, src)
	require.NoError(t, err)
	assert.Equal(t, out, out2)

	return out
}

func TestGenerateRoundTrip(t *testing.T) {
	tests := []struct {
		name string
		sql  string
		want string
	}{
		{
			"simple select",
			"select a, b from t",
			"SELECT a, b FROM t",
		},
		{
			"full clause set",
			"SELECT a FROM t WHERE a > 1 GROUP BY a HAVING COUNT(*) > 2 ORDER BY a DESC LIMIT 10 OFFSET 5",
			"SELECT a FROM t WHERE a > 1 GROUP BY a HAVING COUNT(*) > 2 ORDER BY a DESC LIMIT 10 OFFSET 5",
		},
		{
			"joins",
			"SELECT a FROM t LEFT OUTER JOIN u ON t.id = u.id",
			"SELECT a FROM t LEFT JOIN u ON t.id = u.id",
		},
		{
			"cte and union",
			"WITH x AS (SELECT a FROM t) SELECT a FROM x UNION ALL SELECT b FROM u",
			"WITH x AS (SELECT a FROM t) SELECT a FROM x UNION ALL SELECT b FROM u",
		},
		{
			"case expression",
			"SELECT CASE WHEN a > 1 THEN 'big' ELSE 'small' END AS size FROM t",
			"SELECT CASE WHEN a > 1 THEN 'big' ELSE 'small' END AS size FROM t",
		},
		{
			"window function",
			"SELECT ROW_NUMBER() OVER (PARTITION BY a ORDER BY b) FROM t",
			"SELECT ROW_NUMBER() OVER (PARTITION BY a ORDER BY b) FROM t",
		},
		{
			"cast shorthand normalizes to CAST",
			"SELECT a::DOUBLE PRECISION FROM t",
			"SELECT CAST(a AS DOUBLE PRECISION) FROM t",
		},
		{
			"function mapping survives the trip",
			"SELECT DATEDIFF('day', a, b) FROM t",
			"SELECT DATEDIFF('day', a, b) FROM t",
		},
		{
			"argument reorder is undone on render",
			"SELECT DATEADD('month', 3, d) FROM t",
			"SELECT DATEADD('month', 3, d) FROM t",
		},
		{
			"ilike",
			"SELECT a FROM t WHERE name ILIKE '%x%'",
			"SELECT a FROM t WHERE name ILIKE '%x%'",
		},
		{
			"between and in",
			"SELECT a FROM t WHERE a BETWEEN 1 AND 10 AND b IN (1, 2, 3)",
			"SELECT a FROM t WHERE a BETWEEN 1 AND 10 AND b IN (1, 2, 3)",
		},
		{
			"is null and exists",
			"SELECT a FROM t WHERE a IS NOT NULL AND EXISTS (SELECT 1 FROM u)",
			"SELECT a FROM t WHERE a IS NOT NULL AND EXISTS (SELECT 1 FROM u)",
		},
		{
			"string escaping",
			"SELECT 'it''s' FROM t",
			"SELECT 'it''s' FROM t",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, roundTrip(t, tt.sql))
		})
	}
}

func TestGenerateCrossDialect(t *testing.T) {
	src := sourceDialect()
	dst := targetDialect()

	t.Run("mapped function falls back to canonical name", func(t *testing.T) {
		stmt, err := parser.Parse("SELECT DATEDIFF('day', a, b) FROM t", src)
		require.NoError(t, err)
		out, err := Generate(stmt, dst)
		require.NoError(t, err)
		assert.Equal(t, "SELECT DATE_DIFF('day', a, b) FROM t", out)
	})

	t.Run("ilike lowers to LOWER/LIKE without the operator", func(t *testing.T) {
		stmt, err := parser.Parse("SELECT a FROM t WHERE name ILIKE '%x%'", src)
		require.NoError(t, err)
		out, err := Generate(stmt, dst)
		require.NoError(t, err)
		assert.Equal(t, "SELECT a FROM t WHERE LOWER(name) LIKE LOWER('%x%')", out)
	})

	t.Run("mapped type falls back to canonical name", func(t *testing.T) {
		stmt, err := parser.Parse("SELECT CAST(a AS DOUBLE PRECISION) FROM t", src)
		require.NoError(t, err)
		out, err := Generate(stmt, dst)
		require.NoError(t, err)
		assert.Equal(t, "SELECT CAST(a AS FLOAT) FROM t", out)
	})
}

func TestGenerateUnrenderableFunction(t *testing.T) {
	stmt := &core.SelectStmt{
		Body: &core.SelectBody{
			Left: &core.SelectCore{
				Columns: []core.SelectItem{
					{Expr: &core.FuncCall{Name: "GENERATE_SERIES", Args: []core.Expr{
						&core.Literal{Type: core.LiteralNumber, Value: "1"},
						&core.Literal{Type: core.LiteralNumber, Value: "10"},
					}}},
				},
			},
		},
	}

	_, err := Generate(stmt, sourceDialect())
	require.Error(t, err)
	var unsup *dialect.UnsupportedError
	require.ErrorAs(t, err, &unsup)
	assert.Contains(t, err.Error(), "GENERATE_SERIES is not supported in src dialect")
}

func TestGenerateRejectsPolicyConstructs(t *testing.T) {
	copyStmt := &core.CopyStmt{
		Table: &core.TableName{Name: "events"},
		Path:  "/data/events.csv",
	}

	_, err := Generate(copyStmt, targetDialect())
	require.Error(t, err)
	var unsup *dialect.UnsupportedError
	require.ErrorAs(t, err, &unsup)
	assert.Equal(t, "COPY statement is not supported in dst dialect", err.Error())
}

func TestGenerateCopyStmt(t *testing.T) {
	stmt := &core.CopyStmt{
		Table:     &core.TableName{Schema: "public", Name: "events"},
		Columns:   []string{"id", "ts"},
		Local:     true,
		Path:      "/data/events.csv",
		Delimiter: "|",
		Skip:      &core.Literal{Type: core.LiteralNumber, Value: "1"},
		Direct:    true,
	}

	out, err := Generate(stmt, sourceDialect())
	require.NoError(t, err)
	assert.Equal(t, "COPY public.events (id, ts) FROM LOCAL '/data/events.csv' DELIMITER '|' SKIP 1 DIRECT", out)
}

func TestGenerateCreateTable(t *testing.T) {
	stmt := &core.CreateTableStmt{
		Table: &core.TableName{Name: "users"},
		Columns: []core.ColumnDef{
			{Name: "id", Type: core.DataType{Name: "INT"}, PrimaryKey: true},
			{Name: "name", Type: core.DataType{Name: "VARCHAR", Params: []string{"64"}}, NotNull: true},
		},
		OrderBy:      []core.Expr{&core.ColumnRef{Column: "id"}},
		Segmentation: &core.Segmentation{ByExpr: &core.FuncCall{Name: "HASH", Args: []core.Expr{&core.ColumnRef{Column: "id"}}}, AllNodes: true},
	}

	out, err := Generate(stmt, sourceDialect())
	require.NoError(t, err)
	assert.Equal(t, "CREATE TABLE users (id INT PRIMARY KEY, name VARCHAR(64) NOT NULL) ORDER BY id SEGMENTED BY HASH(id) ALL NODES", out)
}

func TestGenerateRequiresDialect(t *testing.T) {
	_, err := Generate(&core.SelectStmt{Body: &core.SelectBody{Left: &core.SelectCore{}}}, nil)
	assert.ErrorIs(t, err, dialect.ErrDialectRequired)
}
