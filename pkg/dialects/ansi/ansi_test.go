package ansi

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
	d, err := dialect.MustGet("ansi")
	require.NoError(t, err)
	assert.Same(t, ANSI, d)
}

func TestParseStandardSQL(t *testing.T) {
	sqls := []string{
		"SELECT a, b FROM t WHERE a > 1 ORDER BY b",
		"SELECT COUNT(*) FROM t GROUP BY a HAVING COUNT(*) > 1",
		"SELECT a FROM t JOIN u ON t.id = u.id LEFT JOIN v USING (id)",
		"WITH x AS (SELECT 1 AS n) SELECT n FROM x",
		"SELECT a FROM t FETCH FIRST 10 ROWS ONLY",
		"CREATE TABLE t (id INT PRIMARY KEY, name VARCHAR(50) NOT NULL)",
	}
	for _, sql := range sqls {
		_, err := parser.Parse(sql, ANSI)
		assert.NoError(t, err, sql)
	}
}

func TestLateralAllowed(t *testing.T) {
	stmt, err := parser.Parse("SELECT a FROM t, LATERAL (SELECT b FROM u WHERE u.id = t.id) x", ANSI)
	require.NoError(t, err)

	out, err := generator.Generate(stmt, ANSI)
	require.NoError(t, err)
	assert.Contains(t, out, "LATERAL")
}

func TestNoIlikeKeyword(t *testing.T) {
	// ILIKE is a plain identifier here; the grammar rejects it.
	_, err := parser.Parse("SELECT a FROM t WHERE name ILIKE 'x%'", ANSI)
	assert.Error(t, err)
}

func TestVendorStatementsUnrenderable(t *testing.T) {
	tests := []struct {
		name string
		stmt core.Stmt
		want string
	}{
		{
			"copy",
			&core.CopyStmt{Table: &core.TableName{Name: "t"}, Path: "/tmp/t.csv"},
			"COPY statement is not supported in ansi dialect: bulk load is vendor syntax",
		},
		{
			"copy local",
			&core.CopyStmt{Table: &core.TableName{Name: "t"}, Local: true, Path: "/tmp/t.csv"},
			"COPY FROM LOCAL statement is not supported in ansi dialect: bulk load is vendor syntax",
		},
		{
			"export",
			&core.ExportStmt{Format: "PARQUET", Select: selectOne()},
			"EXPORT statement is not supported in ansi dialect: unload is vendor syntax",
		},
		{
			"projection",
			&core.CreateProjectionStmt{Name: &core.TableName{Name: "p"}, Select: selectOne()},
			"CREATE PROJECTION statement is not supported in ansi dialect: projections are a columnar storage feature",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := generator.Generate(tt.stmt, ANSI)
			require.Error(t, err)
			var unsup *dialect.UnsupportedError
			require.ErrorAs(t, err, &unsup)
			assert.Equal(t, tt.want, err.Error())
		})
	}
}

func selectOne() *core.SelectStmt {
	return &core.SelectStmt{
		Body: &core.SelectBody{
			Left: &core.SelectCore{
				Columns: []core.SelectItem{
					{Expr: &core.Literal{Type: core.LiteralNumber, Value: "1"}},
				},
			},
		},
	}
}
