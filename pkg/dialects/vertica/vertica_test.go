package vertica

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/sqlbridge/pkg/core"
	"github.com/leapstack-labs/sqlbridge/pkg/dialect"
	"github.com/leapstack-labs/sqlbridge/pkg/generator"
	"github.com/leapstack-labs/sqlbridge/pkg/parser"
)

func TestRegistered(t *testing.T) {
	d, err := dialect.MustGet("vertica")
	require.NoError(t, err)
	assert.Same(t, Vertica, d)
}

// roundTrip checks that rendering reaches a fixed point in one pass.
func roundTrip(t *testing.T, sql string) string {
	t.Helper()
	stmt, err := parser.Parse(sql, Vertica)
	require.NoError(t, err)
	out, err := generator.Generate(stmt, Vertica)
	require.NoError(t, err)

	stmt2, err := parser.Parse(out, Vertica)
	require.NoError(t, err)
	out2, err := generator.Generate(stmt2, Vertica)
	require.NoError(t, err)
	assert.Equal(t, out, out2)

	return out
}

func TestRoundTrip(t *testing.T) {
	tests := []struct {
		name string
		sql  string
		want string
	}{
		{
			"ilike",
			"SELECT a FROM t WHERE name ILIKE '%x%'",
			"SELECT a FROM t WHERE name ILIKE '%x%'",
		},
		{
			"not ilike",
			"SELECT a FROM t WHERE name NOT ILIKE '%x%'",
			"SELECT a FROM t WHERE name NOT ILIKE '%x%'",
		},
		{
			"array literal",
			"SELECT ARRAY[1, 2, 3] FROM t",
			"SELECT ARRAY[1, 2, 3] FROM t",
		},
		{
			"within group",
			"SELECT PERCENTILE_CONT(0.5) WITHIN GROUP (ORDER BY x) FROM t",
			"SELECT PERCENTILE_CONT(0.5) WITHIN GROUP (ORDER BY x) FROM t",
		},
		{
			"datediff keeps its spelling",
			"SELECT DATEDIFF('day', a, b) FROM t",
			"SELECT DATEDIFF('day', a, b) FROM t",
		},
		{
			"dateadd argument order is restored",
			"SELECT DATEADD('month', 3, start_date) FROM t",
			"SELECT DATEADD('month', 3, start_date) FROM t",
		},
		{
			"md5 identity",
			"SELECT MD5(email) FROM users",
			"SELECT MD5(email) FROM users",
		},
		{
			"cast shorthand",
			"SELECT a::DOUBLE PRECISION FROM t",
			"SELECT CAST(a AS DOUBLE PRECISION) FROM t",
		},
		{
			"copy from local",
			"COPY public.events (id, ts) FROM LOCAL '/data/events.csv' DELIMITER '|' SKIP 1 REJECTMAX 100 ABORT ON ERROR DIRECT",
			"COPY public.events (id, ts) FROM LOCAL '/data/events.csv' DELIMITER '|' SKIP 1 REJECTMAX 100 ABORT ON ERROR DIRECT",
		},
		{
			"copy from stdin",
			"COPY t FROM STDIN",
			"COPY t FROM STDIN",
		},
		{
			"export",
			"EXPORT TO PARQUET (directory = '/tmp/out') AS SELECT a FROM t",
			"EXPORT TO PARQUET (directory = '/tmp/out') AS SELECT a FROM t",
		},
		{
			"create table with layout clauses",
			"CREATE TABLE t (id INT PRIMARY KEY, name VARCHAR(64) NOT NULL) ORDER BY id SEGMENTED BY HASH(id) ALL NODES",
			"CREATE TABLE t (id INT PRIMARY KEY, name VARCHAR(64) NOT NULL) ORDER BY id SEGMENTED BY HASH(id) ALL NODES",
		},
		{
			"create table unsegmented",
			"CREATE TABLE t (id INT) UNSEGMENTED ALL NODES",
			"CREATE TABLE t (id INT) UNSEGMENTED ALL NODES",
		},
		{
			"create projection",
			"CREATE PROJECTION p_events (id, ts) AS SELECT id, ts FROM events ORDER BY id SEGMENTED BY HASH(id) ALL NODES",
			"CREATE PROJECTION p_events (id, ts) AS SELECT id, ts FROM events ORDER BY id SEGMENTED BY HASH(id) ALL NODES",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, roundTrip(t, tt.sql))
		})
	}
}

func TestFunctionMappings(t *testing.T) {
	t.Run("datediff resolves to canonical", func(t *testing.T) {
		stmt, err := parser.Parse("SELECT DATEDIFF('day', a, b) FROM t", Vertica)
		require.NoError(t, err)
		fn := firstColumn(t, stmt).(*core.FuncCall)
		assert.Equal(t, "DATE_DIFF", fn.Name)
	})

	t.Run("dateadd reorders to canonical order", func(t *testing.T) {
		stmt, err := parser.Parse("SELECT DATEADD('month', 3, d) FROM t", Vertica)
		require.NoError(t, err)
		fn := firstColumn(t, stmt).(*core.FuncCall)
		require.Equal(t, "DATE_ADD", fn.Name)
		require.Len(t, fn.Args, 3)
		date, ok := fn.Args[0].(*core.ColumnRef)
		require.True(t, ok)
		assert.Equal(t, "d", date.Column)
	})

	t.Run("parse-only aliases fold into one canonical name", func(t *testing.T) {
		aliases := map[string]string{
			"SELECT TIMESTAMPADD('day', 1, d) FROM t": "DATE_ADD",
			"SELECT NVL(a, 0) FROM t":                 "COALESCE",
			"SELECT SUBSTR(s, 1, 3) FROM t":           "SUBSTRING",
			"SELECT INSTR(s, 'x') FROM t":             "STRPOS",
		}
		for sql, want := range aliases {
			stmt, err := parser.Parse(sql, Vertica)
			require.NoError(t, err, sql)
			fn := firstColumn(t, stmt).(*core.FuncCall)
			assert.Equal(t, want, fn.Name, sql)
		}
	})

	t.Run("canonical coalesce renders unchanged", func(t *testing.T) {
		name, _, err := Vertica.RenderFunction("COALESCE", nil)
		require.NoError(t, err)
		assert.Equal(t, "COALESCE", name)
	})

	t.Run("generate_series is unrenderable", func(t *testing.T) {
		_, _, err := Vertica.RenderFunction("GENERATE_SERIES", nil)
		require.Error(t, err)
		var unsup *dialect.UnsupportedError
		require.ErrorAs(t, err, &unsup)
		assert.Contains(t, err.Error(), "GENERATE_SERIES is not supported in vertica dialect")
	})
}

func TestTypeMappings(t *testing.T) {
	t.Run("double precision resolves to float", func(t *testing.T) {
		stmt, err := parser.Parse("SELECT CAST(a AS DOUBLE PRECISION) FROM t", Vertica)
		require.NoError(t, err)
		cast := firstColumn(t, stmt).(*core.CastExpr)
		assert.Equal(t, "FLOAT", cast.Type.Name)
	})

	t.Run("postgres aliases resolve on parse only", func(t *testing.T) {
		for sql, want := range map[string]string{
			"SELECT CAST(a AS FLOAT8) FROM t": "FLOAT",
			"SELECT CAST(a AS INT8) FROM t":   "INT",
			"SELECT CAST(a AS BYTEA) FROM t":  "VARBINARY",
		} {
			stmt, err := parser.Parse(sql, Vertica)
			require.NoError(t, err, sql)
			cast := firstColumn(t, stmt).(*core.CastExpr)
			assert.Equal(t, want, cast.Type.Name, sql)
		}
	})

	t.Run("canonical text renders as varchar", func(t *testing.T) {
		name, _ := Vertica.RenderType("TEXT", nil)
		assert.Equal(t, "VARCHAR", name)
	})

	t.Run("bare numeric gets default precision and scale", func(t *testing.T) {
		stmt, err := parser.Parse("SELECT CAST(a AS NUMERIC) FROM t", Vertica)
		require.NoError(t, err)
		cast := firstColumn(t, stmt).(*core.CastExpr)
		assert.Equal(t, "NUMERIC", cast.Type.Name)
		assert.Equal(t, []string{"37", "15"}, cast.Type.Params)
	})

	t.Run("parameterized numeric keeps its parameters", func(t *testing.T) {
		stmt, err := parser.Parse("SELECT CAST(a AS NUMERIC(10, 2)) FROM t", Vertica)
		require.NoError(t, err)
		cast := firstColumn(t, stmt).(*core.CastExpr)
		assert.Equal(t, []string{"10", "2"}, cast.Type.Params)
	})
}

func TestRejectedConstructs(t *testing.T) {
	t.Run("dollar quoted literal", func(t *testing.T) {
		_, err := parser.Parse("SELECT $$tag$$ FROM t", Vertica)
		require.Error(t, err)
		var perr *parser.ParseError
		require.ErrorAs(t, err, &perr)
		assert.Contains(t, err.Error(), "dollar-quoted string literal is not supported in vertica dialect")
	})

	t.Run("lateral join", func(t *testing.T) {
		_, err := parser.Parse("SELECT a FROM t, LATERAL (SELECT b FROM u) x", Vertica)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "LATERAL join is not supported in vertica dialect")
	})

	t.Run("lateral is unrenderable too", func(t *testing.T) {
		stmt := &core.SelectStmt{
			Body: &core.SelectBody{
				Left: &core.SelectCore{
					Columns: []core.SelectItem{{Star: true}},
					From: &core.FromClause{
						Source: &core.LateralTable{
							Select: &core.SelectStmt{Body: &core.SelectBody{Left: &core.SelectCore{
								Columns: []core.SelectItem{{Star: true}},
							}}},
							Alias: "x",
						},
					},
				},
			},
		}
		_, err := generator.Generate(stmt, Vertica)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "LATERAL join is not supported in vertica dialect")
	})
}

func firstColumn(t *testing.T, stmt core.Stmt) core.Expr {
	t.Helper()
	sel, ok := stmt.(*core.SelectStmt)
	require.True(t, ok, "expected *core.SelectStmt, got %T", stmt)
	require.NotEmpty(t, sel.Body.Left.Columns)
	return sel.Body.Left.Columns[0].Expr
}
