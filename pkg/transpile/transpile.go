// Package transpile is the top-level API: parse SQL in one dialect,
// render it in another. Dialects are looked up by registered name, so
// callers only need to import the dialect packages they use.
package transpile

import (
	"github.com/leapstack-labs/sqlbridge/pkg/core"
	"github.com/leapstack-labs/sqlbridge/pkg/dialect"
	"github.com/leapstack-labs/sqlbridge/pkg/generator"
	"github.com/leapstack-labs/sqlbridge/pkg/parser"
)

// Parse parses SQL in the named read dialect into the canonical AST.
func Parse(sql, read string) (core.Stmt, error) {
	d, err := dialect.MustGet(read)
	if err != nil {
		return nil, err
	}
	return parser.Parse(sql, d)
}

// Render renders a canonical statement as SQL in the named write dialect.
func Render(stmt core.Stmt, write string) (string, error) {
	d, err := dialect.MustGet(write)
	if err != nil {
		return "", err
	}
	return generator.Generate(stmt, d)
}

// Transpile parses SQL in the read dialect and renders it in the write
// dialect. Parse errors and unsupported-construct errors pass through
// unchanged; no SQL is emitted on failure.
func Transpile(sql, read, write string) (string, error) {
	stmt, err := Parse(sql, read)
	if err != nil {
		return "", err
	}
	return Render(stmt, write)
}
