// Package dialect provides SQL dialect configuration: keyword and operator
// tables, clause sequences, function/type mappings, and unsupported-construct
// policies.
//
// This package contains the public contract for dialect definitions used by
// the parser and generator. Concrete dialect implementations are registered
// from pkg/dialects/*/ packages.
package dialect

import (
	"strings"

	"github.com/leapstack-labs/sqlbridge/pkg/core"
	"github.com/leapstack-labs/sqlbridge/pkg/spi"
	"github.com/leapstack-labs/sqlbridge/pkg/token"
)

// JoinTypeDef defines a dialect-specific join type.
type JoinTypeDef struct {
	Token         token.TokenType // The trigger token for this join type
	Type          string          // JoinType value (e.g., "LEFT", "INNER")
	OptionalToken token.TokenType // Optional modifier token (OUTER) - 0 means none
	RequiresOn    bool            // true if ON clause is required
	AllowsUsing   bool            // true if USING clause is allowed
}

// ClauseDef bundles clause parsing logic with storage destination.
type ClauseDef struct {
	Token   token.TokenType   // The trigger token for this clause (e.g., token.WHERE)
	Handler spi.ClauseHandler // Handler function to parse the clause
	Slot    spi.ClauseSlot    // Where to store the parsed result
}

// OperatorDef defines an infix operator for toolbox composition.
// If Symbol is set, it is registered as a lexer symbol.
type OperatorDef struct {
	Token      token.TokenType
	Precedence int
	Symbol     string
	Handler    spi.InfixHandler
}

// Dialect represents a SQL dialect configuration.
type Dialect struct {
	Name        string
	Identifiers core.IdentifierConfig

	DefaultSchema string
	Placeholder   core.PlaceholderStyle

	// Function classifications (normalized to dialect's normalization strategy)
	aggregates map[string]struct{}
	generators map[string]struct{}
	windows    map[string]struct{}

	// Keywords and types for listings
	keywords  map[string]struct{}
	dataTypes []string

	// Parsing behavior
	clauseSequence []token.TokenType                      // Order of clauses in SELECT statement
	clauseDefs     map[token.TokenType]ClauseDef          // Handler + Slot per clause
	symbols        map[string]token.TokenType             // Custom operators: "::" -> TokenDColon
	dynamicKw      map[string]token.TokenType             // Custom keywords: "ILIKE" -> TokenIlike
	precedence     map[token.TokenType]int                // Operator precedence for expressions
	infixHandlers  map[token.TokenType]spi.InfixHandler   // Optional custom infix parsing
	prefixHandlers map[token.TokenType]spi.PrefixHandler  // Prefix expression handlers
	joinTypes      map[token.TokenType]JoinTypeDef        // Dialect-specific join types
	statements     map[token.TokenType]spi.StatementHandler // Top-level statement handlers (COPY, CREATE, ...)
	withinGroup    bool                                   // WITHIN GROUP ordered-set aggregates

	// Mapping tables (see mapping.go)
	funcByNative    map[string]FunctionMapping // dialect spelling -> entry (parse direction)
	funcByCanonical map[string]FunctionMapping // canonical name -> entry (render direction)
	typeByNative    map[string]TypeMapping
	typeByCanonical map[string]TypeMapping

	// Unsupported-construct policy (see policy.go)
	policies   map[string]ConstructPolicy // construct -> policy
	lexRejects map[string]string          // lexical prefix -> construct
}

// Config returns the pure data configuration for this dialect.
func (d *Dialect) Config() *core.DialectConfig {
	aggregates := make([]string, 0, len(d.aggregates))
	for f := range d.aggregates {
		aggregates = append(aggregates, f)
	}
	generators := make([]string, 0, len(d.generators))
	for f := range d.generators {
		generators = append(generators, f)
	}
	windows := make([]string, 0, len(d.windows))
	for f := range d.windows {
		windows = append(windows, f)
	}
	keywords := make([]string, 0, len(d.keywords))
	for kw := range d.keywords {
		keywords = append(keywords, kw)
	}

	return &core.DialectConfig{
		Name:          d.Name,
		Identifiers:   d.Identifiers,
		DefaultSchema: d.DefaultSchema,
		Placeholder:   d.Placeholder,
		Aggregates:    aggregates,
		Generators:    generators,
		Windows:       windows,
		Keywords:      keywords,
		DataTypes:     d.dataTypes,
	}
}

// NormalizeName normalizes an identifier according to dialect rules.
func (d *Dialect) NormalizeName(name string) string {
	switch d.Identifiers.Normalization {
	case core.NormUppercase:
		return strings.ToUpper(name)
	case core.NormLowercase, core.NormCaseInsensitive:
		return strings.ToLower(name)
	default: // NormCaseSensitive
		return name
	}
}

// IsAggregate returns true if the function is an aggregate function.
func (d *Dialect) IsAggregate(name string) bool {
	_, ok := d.aggregates[d.NormalizeName(name)]
	return ok
}

// IsGenerator returns true if the function generates values without input columns.
func (d *Dialect) IsGenerator(name string) bool {
	_, ok := d.generators[d.NormalizeName(name)]
	return ok
}

// IsWindow returns true if the function is a window-only function.
func (d *Dialect) IsWindow(name string) bool {
	_, ok := d.windows[d.NormalizeName(name)]
	return ok
}

// Keywords returns all reserved keywords.
func (d *Dialect) Keywords() []string {
	kws := make([]string, 0, len(d.keywords))
	for kw := range d.keywords {
		kws = append(kws, kw)
	}
	return kws
}

// DataTypes returns all supported data types.
func (d *Dialect) DataTypes() []string {
	return d.dataTypes
}

// QuoteIdentifier quotes an identifier using the dialect's quote characters.
func (d *Dialect) QuoteIdentifier(name string) string {
	escaped := strings.ReplaceAll(name, d.Identifiers.QuoteEnd, d.Identifiers.Escape)
	return d.Identifiers.Quote + escaped + d.Identifiers.QuoteEnd
}

// ---------- Parsing Behavior Methods ----------

// ClauseSequence returns the ordered list of clause token types for this dialect.
func (d *Dialect) ClauseSequence() []token.TokenType {
	return d.clauseSequence
}

// ClauseDef returns the definition (handler + slot) for a clause token type.
func (d *Dialect) ClauseDef(t token.TokenType) (ClauseDef, bool) {
	def, ok := d.clauseDefs[t]
	return def, ok
}

// IsClauseToken returns true if this dialect supports the given clause token.
func (d *Dialect) IsClauseToken(t token.TokenType) bool {
	_, ok := d.clauseDefs[t]
	return ok
}

// Symbols returns the custom operators map for lexer symbol matching.
func (d *Dialect) Symbols() map[string]token.TokenType {
	return d.symbols
}

// LookupKeyword returns the token type for a dialect keyword.
// Returns the token type and true if found, or IDENT and false if not.
func (d *Dialect) LookupKeyword(name string) (token.TokenType, bool) {
	if t, ok := d.dynamicKw[strings.ToLower(name)]; ok {
		return t, true
	}
	return token.IDENT, false
}

// HasKeyword returns true if the dialect registers the given keyword.
func (d *Dialect) HasKeyword(name string) bool {
	_, ok := d.dynamicKw[strings.ToLower(name)]
	return ok
}

// Precedence returns the precedence level for an operator token.
// Returns 0 (PrecedenceNone) if the operator is not recognized.
func (d *Dialect) Precedence(t token.TokenType) int {
	if p, ok := d.precedence[t]; ok {
		return p
	}
	return spi.PrecedenceNone
}

// InfixHandler returns the custom infix handler for an operator token.
func (d *Dialect) InfixHandler(t token.TokenType) spi.InfixHandler {
	return d.infixHandlers[t]
}

// PrefixHandler returns the custom prefix handler for an operator token.
func (d *Dialect) PrefixHandler(t token.TokenType) spi.PrefixHandler {
	return d.prefixHandlers[t]
}

// JoinTypeDef returns the definition for a dialect-specific join type.
func (d *Dialect) JoinTypeDef(t token.TokenType) (JoinTypeDef, bool) {
	def, ok := d.joinTypes[t]
	return def, ok
}

// StatementHandler returns the handler for a top-level statement keyword.
func (d *Dialect) StatementHandler(t token.TokenType) spi.StatementHandler {
	return d.statements[t]
}

// SupportsWithinGroup returns true if the dialect parses
// WITHIN GROUP (ORDER BY ...) ordered-set aggregate syntax.
func (d *Dialect) SupportsWithinGroup() bool {
	return d.withinGroup
}
