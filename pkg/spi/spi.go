// Package spi provides Service Provider Interface types for dialect
// handlers to interact with the parser without circular dependencies.
package spi

import (
	"github.com/leapstack-labs/sqlbridge/pkg/token"
)

// ParserOps exposes parser operations to dialect handlers.
// This interface allows dialect-specific code to interact with the parser
// without creating circular dependencies.
type ParserOps interface {
	// Token access
	Token() token.Token
	Peek() token.Token

	// Consumption
	Match(t token.TokenType) bool
	Expect(t token.TokenType) error
	NextToken()
	Check(t token.TokenType) bool
	// MatchIdent consumes the current token if it is an identifier whose
	// uppercased literal equals word. Used for soft keywords (LOCAL,
	// DELIMITER, ...) that stay plain identifiers outside their statement.
	MatchIdent(word string) bool

	// Sub-parsers
	ParseExpression() (Expr, error)
	ParseExpressionList() ([]Expr, error)
	ParseOrderByList() ([]OrderByItem, error)
	ParseIdentifier() (string, error)
	ParseStringLit() (string, error)
	// ParseSelect parses a full SELECT statement (with optional WITH).
	// The result is a *core.SelectStmt.
	ParseSelect() (Node, error)
	// ParseTableName parses a possibly qualified table name with no alias.
	// The result is a *core.TableName.
	ParseTableName() (Node, error)
	// ParseDataType parses a type name with optional parameters, resolved
	// through the dialect's type mapping. The result is a core.DataType.
	ParseDataType() (Node, error)
	// ParseWindowDefs parses a named window definition list.
	// The result is a []core.WindowDef.
	ParseWindowDefs() (Node, error)

	// Error handling
	AddError(msg string)
	Position() token.Position
}

// ClauseHandler parses a dialect-specific clause.
// Called AFTER the clause keyword has been consumed.
// Returns the parsed node or an error.
type ClauseHandler func(p ParserOps) (Node, error)

// InfixHandler parses a dialect-specific infix operator.
// Called AFTER the operator has been consumed.
// left is the already-parsed left operand.
type InfixHandler func(p ParserOps, left Expr) (Expr, error)

// PrefixHandler parses a dialect-specific prefix expression.
// Called AFTER the prefix token has been consumed.
type PrefixHandler func(p ParserOps) (Expr, error)

// StatementHandler parses a dialect-specific top-level statement
// (COPY, EXPORT, CREATE, ...). Called AFTER the leading keyword has
// been consumed. The result must be a core.Stmt.
type StatementHandler func(p ParserOps) (Node, error)

// Node is the parsed result (opaque to avoid circular deps).
type Node interface{}

// Expr is an expression node.
type Expr interface{}

// OrderByItem represents an ORDER BY item.
type OrderByItem interface{}

// Precedence constants for operator precedence parsing.
const (
	PrecedenceNone       = 0
	PrecedenceOr         = 1
	PrecedenceAnd        = 2
	PrecedenceNot        = 3
	PrecedenceComparison = 4 // =, <>, <, >, <=, >=, LIKE, ILIKE, IN, BETWEEN
	PrecedenceAddition   = 5 // +, -, ||
	PrecedenceMultiply   = 6 // *, /, %
	PrecedenceUnary      = 7 // -, +, NOT
	PrecedencePostfix    = 8 // ::, [], ()
)

// ClauseSlot specifies where a parsed clause result should be stored in
// SelectCore. This enables dialects to declaratively specify storage
// locations for their clauses.
type ClauseSlot int

// ClauseSlot constants define where parsed clause results are stored in SelectCore.
const (
	SlotWhere ClauseSlot = iota
	SlotGroupBy
	SlotHaving
	SlotWindow
	SlotOrderBy
	SlotLimit
	SlotOffset
	SlotFetch      // FETCH FIRST/NEXT clause
	SlotExtensions // Default for custom/dialect-specific clauses
)

// String returns the slot name for debugging.
func (s ClauseSlot) String() string {
	switch s {
	case SlotWhere:
		return "WHERE"
	case SlotGroupBy:
		return "GROUP BY"
	case SlotHaving:
		return "HAVING"
	case SlotWindow:
		return "WINDOW"
	case SlotOrderBy:
		return "ORDER BY"
	case SlotLimit:
		return "LIMIT"
	case SlotOffset:
		return "OFFSET"
	case SlotFetch:
		return "FETCH"
	case SlotExtensions:
		return "EXTENSIONS"
	default:
		return "UNKNOWN"
	}
}
