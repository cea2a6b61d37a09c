package ansi

import (
	"github.com/leapstack-labs/sqlbridge/pkg/dialect"
	"github.com/leapstack-labs/sqlbridge/pkg/spi"
	"github.com/leapstack-labs/sqlbridge/pkg/token"
)

func init() {
	dialect.Register(ANSI)
}

// ANSI is the base ANSI SQL dialect.
// Uses explicit composition - no inheritance.
var ANSI = dialect.New(Config).
	// Clause sequence and handlers
	Clauses(dialect.StandardClauses()...).
	// Standard operator precedence
	Operators(dialect.ANSIOperators).
	// Standard join types
	JoinTypes(dialect.ANSIJoinTypes).
	// DDL
	AddStatement(token.CREATE, parseCreate).
	// Bulk-load and unload statements have no ANSI syntax; statements
	// parsed elsewhere cannot be rendered here.
	Unsupported(
		dialect.ConstructPolicy{
			Construct: dialect.ConstructCopyFrom,
			Phase:     dialect.PhaseGenerate,
			Reason:    "bulk load is vendor syntax",
		},
		dialect.ConstructPolicy{
			Construct: dialect.ConstructCopyLocal,
			Phase:     dialect.PhaseGenerate,
			Reason:    "bulk load is vendor syntax",
		},
		dialect.ConstructPolicy{
			Construct: dialect.ConstructExport,
			Phase:     dialect.PhaseGenerate,
			Reason:    "unload is vendor syntax",
		},
		dialect.ConstructPolicy{
			Construct: dialect.ConstructProjection,
			Phase:     dialect.PhaseGenerate,
			Reason:    "projections are a columnar storage feature",
		},
	).
	Build()

// parseCreate handles CREATE statements. The CREATE keyword has already
// been consumed; only CREATE TABLE exists in the base dialect.
func parseCreate(p spi.ParserOps) (spi.Node, error) {
	if err := p.Expect(token.TABLE); err != nil {
		return nil, err
	}
	return dialect.ParseCreateTable(p)
}
