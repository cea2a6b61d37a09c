package transpile

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/sqlbridge/pkg/dialect"
	"github.com/leapstack-labs/sqlbridge/pkg/parser"

	_ "github.com/leapstack-labs/sqlbridge/pkg/dialects/ansi"
	_ "github.com/leapstack-labs/sqlbridge/pkg/dialects/vertica"
)

func TestTranspileDateDiff(t *testing.T) {
	out, err := Transpile("SELECT DATEDIFF('day', a, b) FROM t", "vertica", "ansi")
	require.NoError(t, err)
	assert.Equal(t, "SELECT DATE_DIFF('day', a, b) FROM t", out)
}

func TestTranspileDollarQuoteFails(t *testing.T) {
	_, err := Transpile("SELECT $$tag$$ FROM t", "vertica", "ansi")
	require.Error(t, err)
	var perr *parser.ParseError
	require.ErrorAs(t, err, &perr)
	assert.Contains(t, err.Error(), "dollar-quoted string literal is not supported in vertica dialect")
}

func TestTranspileLateralFails(t *testing.T) {
	_, err := Transpile("SELECT a FROM t, LATERAL (SELECT b FROM u) x", "vertica", "ansi")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "LATERAL join is not supported in vertica dialect")
}

func TestTranspileCopyLocal(t *testing.T) {
	sql := "COPY t (a, b) FROM LOCAL '/data/t.csv' DELIMITER ','"

	// Parses cleanly in Vertica
	stmt, err := Parse(sql, "vertica")
	require.NoError(t, err)

	// Renders back in Vertica
	out, err := Render(stmt, "vertica")
	require.NoError(t, err)
	assert.Equal(t, "COPY t (a, b) FROM LOCAL '/data/t.csv' DELIMITER ','", out)

	// ANSI has no COPY syntax
	_, err = Render(stmt, "ansi")
	require.Error(t, err)
	var unsup *dialect.UnsupportedError
	require.ErrorAs(t, err, &unsup)
	assert.Contains(t, err.Error(), "COPY FROM LOCAL statement is not supported in ansi dialect")
}

func TestTranspileMD5Identity(t *testing.T) {
	sql := "SELECT MD5(email) FROM users"
	out, err := Transpile(sql, "vertica", "vertica")
	require.NoError(t, err)
	assert.Equal(t, sql, out)
}

func TestTranspileFixedPoint(t *testing.T) {
	sqls := []string{
		"SELECT a, b FROM t WHERE a > 1 ORDER BY b DESC LIMIT 10",
		"SELECT DATEADD('month', 3, d) FROM t",
		"SELECT a FROM t WHERE name ILIKE '%x%'",
	}
	for _, sql := range sqls {
		once, err := Transpile(sql, "vertica", "vertica")
		require.NoError(t, err, sql)
		twice, err := Transpile(once, "vertica", "vertica")
		require.NoError(t, err, sql)
		assert.Equal(t, once, twice, sql)
	}
}

func TestUnknownDialect(t *testing.T) {
	_, err := Transpile("SELECT 1", "oracle", "ansi")
	require.Error(t, err)
	assert.Contains(t, err.Error(), `unknown dialect "oracle"`)

	_, err = Transpile("SELECT 1", "", "ansi")
	assert.ErrorIs(t, err, dialect.ErrDialectRequired)
}
