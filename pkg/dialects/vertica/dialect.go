package vertica

import (
	"github.com/leapstack-labs/sqlbridge/pkg/dialect"
	"github.com/leapstack-labs/sqlbridge/pkg/token"
)

func init() {
	dialect.Register(Vertica)
}

// Vertica-specific tokens.
// ILIKE and :: use the shared tokens auto-wired from the config flags.
var (
	TokenCopy   = token.Register("COPY")
	TokenExport = token.Register("EXPORT")
	TokenArray  = token.Register("ARRAY")
)

// Vertica is the Vertica dialect configuration.
// Uses explicit composition - no inheritance from ANSI.
var Vertica = dialect.New(Config).
	// Statement keywords for the lexer
	AddKeyword("COPY", TokenCopy).
	AddKeyword("EXPORT", TokenExport).
	AddKeyword("ARRAY", TokenArray).
	// Clause sequence and handlers - standard ANSI set
	Clauses(dialect.StandardClauses()...).
	Operators(dialect.ANSIOperators).
	JoinTypes(dialect.ANSIJoinTypes).
	// Expression extensions
	AddPrefix(TokenArray, parseArrayLiteral).
	// Statement extensions
	AddStatement(TokenCopy, parseCopy).
	AddStatement(TokenExport, parseExport).
	AddStatement(token.CREATE, parseCreate).
	// Name and type mapping tables
	Functions(verticaFunctions...).
	Types(verticaTypes...).
	// Constructs Vertica does not accept. A parse-phase entry also makes
	// the construct unrenderable on output.
	Unsupported(
		dialect.ConstructPolicy{
			Construct: dialect.ConstructDollarQuote,
			Phase:     dialect.PhaseParse,
			Reason:    "Vertica has no dollar-quoted literal syntax",
		},
		dialect.ConstructPolicy{
			Construct: dialect.ConstructLateralJoin,
			Phase:     dialect.PhaseParse,
			Reason:    "Vertica does not implement LATERAL subqueries",
		},
	).
	RejectForm("$", dialect.ConstructDollarQuote).
	Build()
