package dialect

import "github.com/leapstack-labs/sqlbridge/pkg/token"

// Shared dynamic tokens for constructs that several dialects opt into.
// Registering them once here keeps the token values stable across dialects
// so handlers and the generator can compare against them directly.
var (
	// TokenIlike is the ILIKE case-insensitive match operator.
	TokenIlike = token.Register("ILIKE")

	// TokenDColon is the :: shorthand cast operator.
	TokenDColon = token.Register("::")
)
