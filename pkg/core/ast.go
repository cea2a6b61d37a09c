// Package core defines the canonical, dialect-neutral SQL AST.
//
// Parsers produce these nodes regardless of the source dialect; generators
// consume them regardless of the target dialect. Dialect-specific syntax is
// normalized away at parse time (function names, argument order, operator
// spellings), so a node tree carries no memory of which dialect produced it.
package core

import "github.com/leapstack-labs/sqlbridge/pkg/token"

// Node is the base interface for all AST nodes.
// This provides type safety for parser extension points (spi.ClauseHandler,
// spi.StatementHandler, etc.) without requiring pkg/core to import pkg/spi.
type Node interface {
	// Pos returns the position of the first character of the node.
	Pos() token.Position
	// End returns the position of the character immediately after the node.
	End() token.Position
}

// Expr is a marker interface for expression nodes.
type Expr interface {
	Node
	exprNode() // Marker method to distinguish expressions
}

// Stmt is a marker interface for statement nodes.
type Stmt interface {
	Node
	stmtNode() // Marker method to distinguish statements
}

// TableRef is a marker interface for table reference nodes in FROM clauses.
type TableRef interface {
	Node
	tableRefNode()
}

// NodeInfo carries source span information and is embedded in AST nodes.
type NodeInfo struct {
	Span token.Span
}

// Pos implements Node.
func (n NodeInfo) Pos() token.Position { return n.Span.Start }

// End implements Node.
func (n NodeInfo) End() token.Position { return n.Span.End }
