package parser

import (
	"github.com/leapstack-labs/sqlbridge/pkg/core"
	"github.com/leapstack-labs/sqlbridge/pkg/spi"
	"github.com/leapstack-labs/sqlbridge/pkg/token"
)

// Window specification parsing: OVER clauses, PARTITION BY, ORDER BY, frame specs.
//
// Grammar:
//
//	window_def    → identifier AS "(" window_spec ")"
//	window_spec   → identifier | "(" [PARTITION BY expr_list] [ORDER BY order_list] [frame_spec] ")"
//	frame_spec    → (ROWS|RANGE|GROUPS) frame_extent
//	frame_extent  → BETWEEN frame_bound AND frame_bound | frame_bound
//	frame_bound   → UNBOUNDED PRECEDING | UNBOUNDED FOLLOWING | CURRENT ROW | expr PRECEDING | expr FOLLOWING

// parseWindowSpec parses a window specification.
func (p *Parser) parseWindowSpec() *core.WindowSpec {
	spec := &core.WindowSpec{}

	// Named window reference
	if p.check(token.IDENT) {
		spec.Name = p.token.Literal
		p.nextToken()
		return spec
	}

	p.expect(token.LPAREN)

	// PARTITION BY
	if p.match(token.PARTITION) {
		p.expect(token.BY)
		spec.PartitionBy = p.parseExpressionList()
	}

	// ORDER BY
	if p.match(token.ORDER) {
		p.expect(token.BY)
		spec.OrderBy = p.parseOrderByList()
	}

	// Frame specification
	if p.check(token.ROWS) || p.check(token.RANGE) || p.check(token.GROUPS) {
		spec.Frame = p.parseFrameSpec()
	}

	p.expect(token.RPAREN)
	return spec
}

// parseFrameSpec parses a window frame specification.
func (p *Parser) parseFrameSpec() *core.FrameSpec {
	frame := &core.FrameSpec{}

	// Frame type
	switch {
	case p.match(token.ROWS):
		frame.Type = core.FrameRows
	case p.match(token.RANGE):
		frame.Type = core.FrameRange
	case p.match(token.GROUPS):
		frame.Type = core.FrameGroups
	}

	// BETWEEN ... AND ...
	if p.match(token.BETWEEN) {
		frame.Start = p.parseFrameBound()
		p.expect(token.AND)
		frame.End = p.parseFrameBound()
	} else {
		// Single bound
		frame.Start = p.parseFrameBound()
	}

	return frame
}

// parseFrameBound parses a frame bound.
func (p *Parser) parseFrameBound() *core.FrameBound {
	bound := &core.FrameBound{}

	switch {
	case p.match(token.UNBOUNDED):
		if p.match(token.PRECEDING) {
			bound.Type = core.FrameUnboundedPreceding
		} else if p.match(token.FOLLOWING) {
			bound.Type = core.FrameUnboundedFollowing
		}

	case p.match(token.CURRENT):
		p.expect(token.ROW)
		bound.Type = core.FrameCurrentRow

	default:
		// N PRECEDING or N FOLLOWING
		bound.Offset = p.parseExpression()
		if p.match(token.PRECEDING) {
			bound.Type = core.FrameExprPreceding
		} else if p.match(token.FOLLOWING) {
			bound.Type = core.FrameExprFollowing
		}
	}

	return bound
}

// ParseWindowDefs parses the named window definition list of a WINDOW
// clause (implements spi.ParserOps). The WINDOW keyword has already been
// consumed.
func (p *Parser) ParseWindowDefs() (spi.Node, error) {
	var defs []core.WindowDef

	for {
		def := core.WindowDef{}

		if !p.check(token.IDENT) {
			p.addError("expected window name")
			break
		}
		def.Name = p.token.Literal
		p.nextToken()

		p.expect(token.AS)
		def.Spec = p.parseWindowSpec()
		defs = append(defs, def)

		if !p.match(token.COMMA) {
			break
		}
	}

	if len(p.errors) > 0 {
		return nil, p.errors[len(p.errors)-1]
	}
	return defs, nil
}
