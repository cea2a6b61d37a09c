// Package parser provides dialect-aware SQL parsing into the canonical AST.
//
// # Usage
//
//	d, ok := dialect.Get("vertica")
//	stmt, err := parser.Parse("SELECT a, b FROM t", d)
//
// # Grammar Overview
//
// The parser implements a recursive descent parser for a subset of SQL:
//
//	statement     → dialect_statement | [WITH cte_list] select_body
//	select_body   → select_core [(UNION|INTERSECT|EXCEPT) [ALL] select_body]
//	select_core   → SELECT [DISTINCT] select_list FROM from_clause
//	                [clauses based on dialect sequence]
//
// Dialect statements (COPY, EXPORT, CREATE, ...) dispatch to the dialect's
// registered statement handlers. See each file for detailed grammar rules
// for that section.
package parser

import (
	"fmt"
	"strings"

	"github.com/leapstack-labs/sqlbridge/pkg/core"
	"github.com/leapstack-labs/sqlbridge/pkg/dialect"
	"github.com/leapstack-labs/sqlbridge/pkg/spi"
	"github.com/leapstack-labs/sqlbridge/pkg/token"
)

// Parser parses SQL into the canonical AST.
type Parser struct {
	lexer   *Lexer
	token   token.Token // current token
	peek    token.Token // lookahead token
	peek2   token.Token // second lookahead token
	errors  []error
	dialect *dialect.Dialect // required
}

// NewParser creates a new parser for the given SQL input and dialect.
func NewParser(sql string, d *dialect.Dialect) *Parser {
	p := &Parser{
		lexer:   NewLexer(sql, d),
		dialect: d,
	}
	// Read three tokens to initialize current, peek, and peek2
	p.nextToken()
	p.nextToken()
	p.nextToken()
	return p
}

// Parse parses the SQL in the given dialect and returns the canonical
// statement. The first error encountered is returned; a statement that
// produced any error is not returned, so callers never see a tree built
// from input the dialect could not fully read.
func Parse(sql string, d *dialect.Dialect) (core.Stmt, error) {
	if d == nil {
		return nil, dialect.ErrDialectRequired
	}
	p := NewParser(sql, d)
	stmt := p.parseTopLevel()
	if len(p.errors) > 0 {
		return nil, p.errors[0]
	}
	return stmt, nil
}

// Dialect returns the parser's dialect.
func (p *Parser) Dialect() *dialect.Dialect {
	return p.dialect
}

// parseTopLevel dispatches on the leading token: dialect statement
// handlers first (COPY, EXPORT, CREATE, ...), then SELECT/WITH.
func (p *Parser) parseTopLevel() core.Stmt {
	if handler := p.dialect.StatementHandler(p.token.Type); handler != nil {
		p.nextToken() // consume the statement keyword
		node, err := handler(p)
		if err != nil {
			p.addError(err.Error())
			return nil
		}
		stmt, ok := node.(core.Stmt)
		if !ok {
			p.addError(fmt.Sprintf("statement handler returned non-statement node %T", node))
			return nil
		}
		p.expectEnd()
		return stmt
	}

	if p.check(token.SELECT) || p.check(token.WITH) {
		stmt := p.parseStatement()
		p.expectEnd()
		return stmt
	}

	p.addError(fmt.Sprintf("unexpected token %s at start of statement", p.token.Type))
	return nil
}

// expectEnd reports trailing input after a complete statement.
func (p *Parser) expectEnd() {
	if !p.check(token.EOF) && len(p.errors) == 0 {
		p.addError(fmt.Sprintf("unexpected token %s after end of statement", p.token.Type))
	}
}

// ---------- Token Helpers ----------

// nextToken advances to the next token.
func (p *Parser) nextToken() {
	p.token = p.peek
	p.peek = p.peek2
	p.peek2 = p.lexer.NextToken()

	// Rejected lexical forms surface as ILLEGAL tokens carrying the
	// construct name. Report the policy error once, at the form's position.
	if p.peek2.Type == token.ILLEGAL {
		if err := p.dialect.ParseReject(p.peek2.Literal); err != nil {
			p.errors = append(p.errors, &ParseError{
				Pos:     p.peek2.Pos,
				Message: err.Error(),
			})
		}
	}
}

// check returns true if the current token is of the given type.
func (p *Parser) check(t token.TokenType) bool {
	return p.token.Type == t
}

// checkPeek returns true if the peek token is of the given type.
func (p *Parser) checkPeek(t token.TokenType) bool {
	return p.peek.Type == t
}

// checkPeek2 returns true if the peek2 token is of the given type.
func (p *Parser) checkPeek2(t token.TokenType) bool {
	return p.peek2.Type == t
}

// match consumes the current token if it matches and returns true.
func (p *Parser) match(t token.TokenType) bool {
	if p.check(t) {
		p.nextToken()
		return true
	}
	return false
}

// matchIdent consumes the current token if it is an identifier with the
// given uppercased spelling. Used for soft keywords that stay plain
// identifiers outside their statement.
func (p *Parser) matchIdent(word string) bool {
	if p.check(token.IDENT) && strings.EqualFold(p.token.Literal, word) {
		p.nextToken()
		return true
	}
	return false
}

// expect consumes the current token if it matches, otherwise adds an error.
func (p *Parser) expect(t token.TokenType) bool {
	if p.check(t) {
		p.nextToken()
		return true
	}
	p.addError(fmt.Sprintf(ErrUnexpectedToken, p.token.Type, t))
	return false
}

// addError adds a parse error.
func (p *Parser) addError(msg string) {
	p.errors = append(p.errors, &ParseError{
		Pos:     p.token.Pos,
		Message: msg,
	})
}

// ---------- Keyword Helpers ----------

// isKeyword returns true if the token is a reserved keyword that can't be used as alias.
func (p *Parser) isKeyword(tok token.Token) bool {
	// Core SQL keywords that are always reserved (non-clause)
	switch tok.Type {
	case token.FROM, token.UNION, token.INTERSECT, token.EXCEPT,
		token.LEFT, token.RIGHT, token.INNER, token.OUTER, token.FULL,
		token.CROSS, token.JOIN, token.ON, token.LATERAL:
		return true
	}
	// Dialect clause keywords
	if p.dialect.IsClauseToken(tok.Type) {
		return true
	}
	// Check global registry (for keywords from other dialects)
	if _, isKnown := dialect.IsKnownClause(tok.Type); isKnown {
		return true
	}
	return false
}

// isJoinKeyword returns true if token is a JOIN-related keyword.
func (p *Parser) isJoinKeyword(tok token.Token) bool {
	switch tok.Type {
	case token.JOIN, token.LEFT, token.RIGHT, token.INNER, token.OUTER,
		token.FULL, token.CROSS, token.ON, token.NATURAL, token.LATERAL:
		return true
	}
	return false
}

// isClauseKeyword returns true if token starts a new clause.
func (p *Parser) isClauseKeyword(tok token.Token) bool {
	// Set operation keywords (always clause-like)
	switch tok.Type {
	case token.UNION, token.INTERSECT, token.EXCEPT:
		return true
	}
	// Dialect clause keywords
	if p.dialect.IsClauseToken(tok.Type) {
		return true
	}
	// Check global registry
	if _, isKnown := dialect.IsKnownClause(tok.Type); isKnown {
		return true
	}
	return false
}

// ---------- spi.ParserOps Implementation ----------
// These methods implement the spi.ParserOps interface for dialect handlers.

// Token returns the current token (implements spi.ParserOps).
func (p *Parser) Token() token.Token {
	return p.token
}

// Peek returns the lookahead token (implements spi.ParserOps).
func (p *Parser) Peek() token.Token {
	return p.peek
}

// Match consumes the current token if it matches (implements spi.ParserOps).
func (p *Parser) Match(t token.TokenType) bool {
	return p.match(t)
}

// Expect consumes the current token if it matches, otherwise returns an error (implements spi.ParserOps).
func (p *Parser) Expect(t token.TokenType) error {
	if p.check(t) {
		p.nextToken()
		return nil
	}
	return &ParseError{
		Pos:     p.token.Pos,
		Message: fmt.Sprintf(ErrUnexpectedToken, p.token.Type, t),
	}
}

// NextToken advances to the next token (implements spi.ParserOps).
func (p *Parser) NextToken() {
	p.nextToken()
}

// Check returns true if the current token is of the given type (implements spi.ParserOps).
func (p *Parser) Check(t token.TokenType) bool {
	return p.check(t)
}

// MatchIdent consumes the current token if it is an identifier with the
// given uppercased spelling (implements spi.ParserOps).
func (p *Parser) MatchIdent(word string) bool {
	return p.matchIdent(word)
}

// ParseExpression parses an expression (implements spi.ParserOps).
func (p *Parser) ParseExpression() (spi.Expr, error) {
	expr := p.parseExpression()
	if len(p.errors) > 0 {
		return nil, p.errors[len(p.errors)-1]
	}
	return expr, nil
}

// ParseExpressionList parses a comma-separated list of expressions (implements spi.ParserOps).
func (p *Parser) ParseExpressionList() ([]spi.Expr, error) {
	exprs := p.parseExpressionList()
	result := make([]spi.Expr, len(exprs))
	for i, e := range exprs {
		result[i] = e
	}
	if len(p.errors) > 0 {
		return nil, p.errors[len(p.errors)-1]
	}
	return result, nil
}

// ParseOrderByList parses an ORDER BY list (implements spi.ParserOps).
func (p *Parser) ParseOrderByList() ([]spi.OrderByItem, error) {
	items := p.parseOrderByList()
	result := make([]spi.OrderByItem, len(items))
	for i, item := range items {
		result[i] = item
	}
	if len(p.errors) > 0 {
		return nil, p.errors[len(p.errors)-1]
	}
	return result, nil
}

// ParseIdentifier parses an identifier (implements spi.ParserOps).
func (p *Parser) ParseIdentifier() (string, error) {
	if p.check(token.IDENT) {
		name := p.token.Literal
		p.nextToken()
		return name, nil
	}
	return "", &ParseError{
		Pos:     p.token.Pos,
		Message: fmt.Sprintf(ErrUnexpectedToken, p.token.Type, token.IDENT),
	}
}

// ParseStringLit parses a string literal (implements spi.ParserOps).
func (p *Parser) ParseStringLit() (string, error) {
	if p.check(token.STRING) {
		val := p.token.Literal
		p.nextToken()
		return val, nil
	}
	return "", &ParseError{
		Pos:     p.token.Pos,
		Message: fmt.Sprintf(ErrUnexpectedToken, p.token.Type, token.STRING),
	}
}

// ParseSelect parses a full SELECT statement (implements spi.ParserOps).
func (p *Parser) ParseSelect() (spi.Node, error) {
	stmt := p.parseStatement()
	if len(p.errors) > 0 {
		return nil, p.errors[len(p.errors)-1]
	}
	return stmt, nil
}

// ParseTableName parses a possibly qualified table name with no alias
// (implements spi.ParserOps).
func (p *Parser) ParseTableName() (spi.Node, error) {
	tbl := p.parseBareTableName()
	if len(p.errors) > 0 {
		return nil, p.errors[len(p.errors)-1]
	}
	return tbl, nil
}

// ParseDataType parses a data type resolved through the dialect's type
// mapping (implements spi.ParserOps).
func (p *Parser) ParseDataType() (spi.Node, error) {
	dt := p.parseDataType()
	if len(p.errors) > 0 {
		return nil, p.errors[len(p.errors)-1]
	}
	return dt, nil
}

// AddError adds a parse error (implements spi.ParserOps).
func (p *Parser) AddError(msg string) {
	p.addError(msg)
}

// Position returns the current token's position (implements spi.ParserOps).
func (p *Parser) Position() token.Position {
	return p.token.Pos
}
