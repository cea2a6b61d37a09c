package token

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLookupIdent(t *testing.T) {
	assert.Equal(t, SELECT, LookupIdent("select"))
	assert.Equal(t, LATERAL, LookupIdent("lateral"))
	assert.Equal(t, IDENT, LookupIdent("employees"))
	// Lookup is on the lowercased form only
	assert.Equal(t, IDENT, LookupIdent("SELECT"))
}

func TestRegisterDynamicToken(t *testing.T) {
	tok := Register("TESTKW")
	assert.True(t, IsDynamic(tok))
	assert.Equal(t, "TESTKW", tok.String())

	other := Register("TESTKW2")
	assert.NotEqual(t, tok, other)
}

func TestTokenTypeString(t *testing.T) {
	assert.Equal(t, "SELECT", SELECT.String())
	assert.Equal(t, "||", DPIPE.String())
	assert.Equal(t, "TOKEN(900)", TokenType(900).String())
}

func TestSpanContains(t *testing.T) {
	s := Span{Start: Position{Line: 1, Column: 1, Offset: 4}, End: Position{Line: 1, Column: 8, Offset: 11}}
	assert.True(t, s.Contains(4))
	assert.True(t, s.Contains(10))
	assert.False(t, s.Contains(11))
	assert.False(t, s.Contains(0))
}
