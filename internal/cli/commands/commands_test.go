package commands

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	_ "github.com/leapstack-labs/sqlbridge/pkg/dialects/ansi"
	_ "github.com/leapstack-labs/sqlbridge/pkg/dialects/vertica"
)

func TestTranspileInput(t *testing.T) {
	var out bytes.Buffer
	err := transpileInput(&out, "SELECT DATEDIFF('day', a, b) FROM t;", "vertica", "ansi")
	require.NoError(t, err)
	assert.Equal(t, "SELECT DATE_DIFF('day', a, b) FROM t;\n", out.String())
}

func TestTranspileInputMultipleStatements(t *testing.T) {
	var out bytes.Buffer
	err := transpileInput(&out, "SELECT a FROM t; SELECT b FROM u;", "vertica", "ansi")
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, "SELECT a FROM t;", lines[0])
	assert.Equal(t, "SELECT b FROM u;", lines[1])
}

func TestTranspileInputFailsClosed(t *testing.T) {
	var out bytes.Buffer
	err := transpileInput(&out, "SELECT $$tag$$ FROM t;", "vertica", "ansi")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "dollar-quoted string literal")
	assert.Empty(t, out.String())
}

func TestTranspileInputEmpty(t *testing.T) {
	var out bytes.Buffer
	err := transpileInput(&out, "  \n ", "vertica", "ansi")
	assert.Error(t, err)
}

func TestDialectsCommand(t *testing.T) {
	cmd := NewDialectsCommand()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.Run(cmd, nil)

	assert.Contains(t, out.String(), "vertica")
	assert.Contains(t, out.String(), "ansi")
}

func TestVersionCommand(t *testing.T) {
	cmd := NewVersionCommand("1.2.3")
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.Run(cmd, nil)

	assert.Contains(t, out.String(), "sqlbridge v1.2.3")
}

func TestSplitStatements(t *testing.T) {
	stmts := splitStatements("SELECT 1;\n\nSELECT 2;;\n")
	assert.Equal(t, []string{"SELECT 1", "SELECT 2"}, stmts)
}
