package token

import "sync/atomic"

// nextTokenID tracks the next available dynamic token ID.
// Dynamic tokens start after maxBuiltin (999).
var nextTokenID = int32(maxBuiltin)

// dynamicTokens maps registered dynamic tokens to their names.
// The ID counter is atomic; map writes happen during package init()
// of dialect packages, before any parsing starts.
var dynamicTokens = make(map[TokenType]string)

// Register registers a new dynamic token with the given name.
// This is used by dialect packages to claim token types for
// dialect-specific keywords like ILIKE, COPY, or EXPORT.
//
// The returned token type is stable for the process lifetime.
// Registration happens at init() time.
func Register(name string) TokenType {
	id := atomic.AddInt32(&nextTokenID, 1)
	t := TokenType(id)
	dynamicTokens[t] = name
	return t
}

// getDynamicName returns the name of a dynamic token.
func getDynamicName(t TokenType) (string, bool) {
	name, ok := dynamicTokens[t]
	return name, ok
}

// IsDynamic returns true if the token type is a dynamically registered token.
func IsDynamic(t TokenType) bool {
	return t > maxBuiltin
}
