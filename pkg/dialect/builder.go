package dialect

import (
	"fmt"
	"strings"

	"github.com/leapstack-labs/sqlbridge/pkg/core"
	"github.com/leapstack-labs/sqlbridge/pkg/spi"
	"github.com/leapstack-labs/sqlbridge/pkg/token"
)

// Builder provides a fluent API for constructing dialects.
type Builder struct {
	dialect *Dialect
	config  *core.DialectConfig // Optional config for auto-wiring features

	// Pending tables validated at Build()
	pendingFuncs    []FunctionMapping
	pendingTypes    []TypeMapping
	pendingPolicies []ConstructPolicy
}

func newBuilder(name string) *Builder {
	return &Builder{
		dialect: &Dialect{
			Name: name,
			Identifiers: core.IdentifierConfig{
				Quote:         `"`,
				QuoteEnd:      `"`,
				Escape:        `""`,
				Normalization: core.NormLowercase,
			},
			aggregates:      make(map[string]struct{}),
			generators:      make(map[string]struct{}),
			windows:         make(map[string]struct{}),
			keywords:        make(map[string]struct{}),
			clauseDefs:      make(map[token.TokenType]ClauseDef),
			symbols:         make(map[string]token.TokenType),
			dynamicKw:       make(map[string]token.TokenType),
			precedence:      make(map[token.TokenType]int),
			infixHandlers:   make(map[token.TokenType]spi.InfixHandler),
			prefixHandlers:  make(map[token.TokenType]spi.PrefixHandler),
			joinTypes:       make(map[token.TokenType]JoinTypeDef),
			statements:      make(map[token.TokenType]spi.StatementHandler),
			funcByNative:    make(map[string]FunctionMapping),
			funcByCanonical: make(map[string]FunctionMapping),
			typeByNative:    make(map[string]TypeMapping),
			typeByCanonical: make(map[string]TypeMapping),
			policies:        make(map[string]ConstructPolicy),
			lexRejects:      make(map[string]string),
		},
	}
}

// NewDialect creates a new dialect builder with the given name.
func NewDialect(name string) *Builder {
	return newBuilder(name)
}

// New creates a dialect builder from a DialectConfig.
// The builder auto-wires features based on config flags when Build() is
// called. This is the preferred constructor for dialects that use feature
// flags.
func New(cfg *core.DialectConfig) *Builder {
	b := newBuilder(cfg.Name)
	b.config = cfg
	b.dialect.Identifiers = cfg.Identifiers
	b.dialect.DefaultSchema = cfg.DefaultSchema
	b.dialect.Placeholder = cfg.Placeholder
	return b
}

// Identifiers configures identifier quoting and normalization.
func (b *Builder) Identifiers(quote, quoteEnd, escape string, norm core.NormalizationStrategy) *Builder {
	b.dialect.Identifiers = core.IdentifierConfig{
		Quote:         quote,
		QuoteEnd:      quoteEnd,
		Escape:        escape,
		Normalization: norm,
	}
	return b
}

// Aggregates adds aggregate functions to the dialect.
func (b *Builder) Aggregates(funcs ...string) *Builder {
	for _, f := range funcs {
		b.dialect.aggregates[b.dialect.NormalizeName(f)] = struct{}{}
	}
	return b
}

// Generators adds generator functions (no input columns) to the dialect.
func (b *Builder) Generators(funcs ...string) *Builder {
	for _, f := range funcs {
		b.dialect.generators[b.dialect.NormalizeName(f)] = struct{}{}
	}
	return b
}

// Windows adds window-only functions to the dialect.
func (b *Builder) Windows(funcs ...string) *Builder {
	for _, f := range funcs {
		b.dialect.windows[b.dialect.NormalizeName(f)] = struct{}{}
	}
	return b
}

// WithKeywords registers reserved keywords for listings.
func (b *Builder) WithKeywords(kws ...string) *Builder {
	for _, kw := range kws {
		b.dialect.keywords[b.dialect.NormalizeName(kw)] = struct{}{}
	}
	return b
}

// WithDataTypes registers supported data types.
func (b *Builder) WithDataTypes(types ...string) *Builder {
	b.dialect.dataTypes = append(b.dialect.dataTypes, types...)
	return b
}

// DefaultSchema sets the default schema name.
func (b *Builder) DefaultSchema(schema string) *Builder {
	b.dialect.DefaultSchema = schema
	return b
}

// PlaceholderStyle sets how query parameters are formatted.
func (b *Builder) PlaceholderStyle(style core.PlaceholderStyle) *Builder {
	b.dialect.Placeholder = style
	return b
}

// ---------- Parsing Behavior Builder Methods ----------

// AddOperator registers a custom operator symbol for the lexer.
func (b *Builder) AddOperator(symbol string, t token.TokenType) *Builder {
	b.dialect.symbols[symbol] = t
	return b
}

// AddKeyword registers a dialect keyword for the lexer.
func (b *Builder) AddKeyword(name string, t token.TokenType) *Builder {
	b.dialect.dynamicKw[strings.ToLower(name)] = t
	return b
}

// ClauseSequence sets the full clause sequence (for base dialects).
func (b *Builder) ClauseSequence(tokens ...token.TokenType) *Builder {
	b.dialect.clauseSequence = tokens
	return b
}

// ClauseHandler registers a handler for a clause token with storage slot.
func (b *Builder) ClauseHandler(t token.TokenType, handler spi.ClauseHandler, slot spi.ClauseSlot) *Builder {
	b.dialect.clauseDefs[t] = ClauseDef{Token: t, Handler: handler, Slot: slot}
	// Register globally for error messages
	recordClause(t, t.String())
	return b
}

// Clauses sets the clause sequence from a list of ClauseDefs.
// This replaces inheritance - explicitly list all supported clauses.
func (b *Builder) Clauses(defs ...ClauseDef) *Builder {
	b.dialect.clauseSequence = make([]token.TokenType, len(defs))
	for i, def := range defs {
		b.dialect.clauseSequence[i] = def.Token
		b.dialect.clauseDefs[def.Token] = def
		recordClause(def.Token, def.Token.String())
	}
	return b
}

// AddInfix registers an infix operator with precedence.
func (b *Builder) AddInfix(t token.TokenType, precedence int) *Builder {
	b.dialect.precedence[t] = precedence
	return b
}

// AddInfixWithHandler registers an infix operator with custom handler.
func (b *Builder) AddInfixWithHandler(t token.TokenType, precedence int, handler spi.InfixHandler) *Builder {
	b.dialect.precedence[t] = precedence
	b.dialect.infixHandlers[t] = handler
	return b
}

// AddPrefix registers a prefix expression handler (e.g., ARRAY for array literals).
func (b *Builder) AddPrefix(t token.TokenType, handler spi.PrefixHandler) *Builder {
	b.dialect.prefixHandlers[t] = handler
	return b
}

// AddJoinType registers a dialect-specific join type.
func (b *Builder) AddJoinType(t token.TokenType, def JoinTypeDef) *Builder {
	b.dialect.joinTypes[t] = def
	return b
}

// JoinTypes adds join type definitions in bulk.
func (b *Builder) JoinTypes(sets ...[]JoinTypeDef) *Builder {
	for _, set := range sets {
		for _, jt := range set {
			b.dialect.joinTypes[jt.Token] = jt
		}
	}
	return b
}

// Operators adds operator definitions in bulk.
// If Symbol is provided, it's registered with the lexer.
func (b *Builder) Operators(sets ...[]OperatorDef) *Builder {
	for _, set := range sets {
		for _, op := range set {
			b.dialect.precedence[op.Token] = op.Precedence
			if op.Handler != nil {
				b.dialect.infixHandlers[op.Token] = op.Handler
			}
			if op.Symbol != "" {
				b.dialect.symbols[op.Symbol] = op.Token
			}
		}
	}
	return b
}

// AddStatement registers a top-level statement handler keyed by its
// leading token (COPY, CREATE, EXPORT, ...).
func (b *Builder) AddStatement(t token.TokenType, handler spi.StatementHandler) *Builder {
	b.dialect.statements[t] = handler
	return b
}

// ---------- Mapping and Policy Builder Methods ----------

// Functions adds function mapping entries. Entries are validated at Build().
func (b *Builder) Functions(mappings ...FunctionMapping) *Builder {
	for _, m := range mappings {
		if m.Native != "" && !m.RenderOnly {
			b.dialect.funcByNative[strings.ToUpper(m.Native)] = m
		}
		if !m.ParseOnly {
			b.dialect.funcByCanonical[strings.ToUpper(m.Canonical)] = m
		}
	}
	b.pendingFuncs = append(b.pendingFuncs, mappings...)
	return b
}

// Types adds type mapping entries. Entries are validated at Build().
func (b *Builder) Types(mappings ...TypeMapping) *Builder {
	for _, m := range mappings {
		if m.Native != "" && !m.RenderOnly {
			b.dialect.typeByNative[strings.ToUpper(m.Native)] = m
		}
		if !m.ParseOnly {
			b.dialect.typeByCanonical[strings.ToUpper(m.Canonical)] = m
		}
	}
	b.pendingTypes = append(b.pendingTypes, mappings...)
	return b
}

// Unsupported adds unsupported-construct policy entries.
func (b *Builder) Unsupported(policies ...ConstructPolicy) *Builder {
	b.pendingPolicies = append(b.pendingPolicies, policies...)
	return b
}

// RejectForm registers a lexical prefix whose appearance in the input is
// rejected outright (e.g. "$" for dollar-quoted strings). The construct
// must have a parse-phase policy entry; this is checked at Build().
func (b *Builder) RejectForm(prefix, construct string) *Builder {
	b.dialect.lexRejects[prefix] = construct
	return b
}

// ---------- Build ----------

// Build validates and returns the constructed dialect.
// Malformed mapping or policy tables indicate a configuration bug in the
// dialect definition; Build panics so that registration fails at init()
// time rather than surfacing as wrong SQL later.
func (b *Builder) Build() *Dialect {
	d := b.dialect

	if err := ValidateFunctionMappings(b.pendingFuncs); err != nil {
		panic(fmt.Sprintf("dialect %s: %v", d.Name, err))
	}
	if err := ValidateTypeMappings(b.pendingTypes); err != nil {
		panic(fmt.Sprintf("dialect %s: %v", d.Name, err))
	}
	for _, pol := range b.pendingPolicies {
		if pol.Construct == "" {
			panic(fmt.Sprintf("dialect %s: policy entry with empty construct", d.Name))
		}
		if _, dup := d.policies[pol.Construct]; dup {
			panic(fmt.Sprintf("dialect %s: duplicate policy entry for %s", d.Name, pol.Construct))
		}
		d.policies[pol.Construct] = pol
	}
	for prefix, construct := range d.lexRejects {
		pol, ok := d.policies[construct]
		if !ok || pol.Phase != PhaseParse {
			panic(fmt.Sprintf("dialect %s: lexical reject %q needs a parse-phase policy for %s", d.Name, prefix, construct))
		}
	}

	cfg := b.config
	if cfg == nil {
		return d
	}

	// ===== Auto-wire function classifications from config =====
	for _, f := range cfg.Aggregates {
		d.aggregates[d.NormalizeName(f)] = struct{}{}
	}
	for _, f := range cfg.Generators {
		d.generators[d.NormalizeName(f)] = struct{}{}
	}
	for _, f := range cfg.Windows {
		d.windows[d.NormalizeName(f)] = struct{}{}
	}
	for _, kw := range cfg.Keywords {
		d.keywords[d.NormalizeName(kw)] = struct{}{}
	}
	d.dataTypes = append(d.dataTypes, cfg.DataTypes...)

	// ===== Auto-wire operator extensions =====

	if cfg.SupportsIlike {
		b.AddKeyword("ILIKE", TokenIlike)
		d.precedence[TokenIlike] = spi.PrecedenceComparison
	}

	if cfg.SupportsCastOperator {
		b.AddOperator("::", TokenDColon)
		b.AddInfixWithHandler(TokenDColon, spi.PrecedencePostfix, ParseCastOperator)
	}

	d.withinGroup = cfg.SupportsWithinGroup

	return d
}
