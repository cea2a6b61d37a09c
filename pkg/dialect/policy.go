package dialect

import "fmt"

// Phase identifies where a construct policy applies.
type Phase int

const (
	// PhaseParse rejects the construct while reading dialect text.
	PhaseParse Phase = iota
	// PhaseGenerate rejects the construct while writing dialect text.
	PhaseGenerate
)

// Construct names used in policy tables and error messages.
// These are user-facing strings; keep them readable.
const (
	ConstructDollarQuote = "dollar-quoted string literal"
	ConstructLateralJoin = "LATERAL join"
	ConstructCopyFrom    = "COPY statement"
	ConstructCopyLocal   = "COPY FROM LOCAL statement"
	ConstructExport      = "EXPORT statement"
	ConstructProjection  = "CREATE PROJECTION statement"
)

// ConstructPolicy declares that a dialect cannot handle a construct.
// Parse-phase entries reject the construct on input; every entry,
// regardless of phase, also blocks rendering. A construct a dialect
// cannot read is never one it can faithfully write.
type ConstructPolicy struct {
	Construct string
	Phase     Phase
	Reason    string // optional, appended to the error message
}

// UnsupportedError reports a construct the dialect cannot express.
// Translation never silently approximates; the caller sees exactly which
// construct failed and in which dialect.
type UnsupportedError struct {
	Dialect   string
	Construct string
	Reason    string
}

func (e *UnsupportedError) Error() string {
	msg := fmt.Sprintf("%s is not supported in %s dialect", e.Construct, e.Dialect)
	if e.Reason != "" {
		msg += ": " + e.Reason
	}
	return msg
}

// ParseReject returns the policy error if the construct is rejected
// during parsing, or nil if the dialect accepts it.
func (d *Dialect) ParseReject(construct string) *UnsupportedError {
	pol, ok := d.policies[construct]
	if !ok || pol.Phase != PhaseParse {
		return nil
	}
	return &UnsupportedError{Dialect: d.Name, Construct: construct, Reason: pol.Reason}
}

// RenderReject returns the policy error if the construct cannot be
// rendered in this dialect. Any policy entry blocks rendering.
func (d *Dialect) RenderReject(construct string) *UnsupportedError {
	pol, ok := d.policies[construct]
	if !ok {
		return nil
	}
	return &UnsupportedError{Dialect: d.Name, Construct: construct, Reason: pol.Reason}
}

// RejectedForm checks the remaining input against the dialect's lexical
// reject table. It returns the construct name and true when the input
// starts with a rejected prefix. The lexer calls this before falling back
// to its generic symbol scan.
func (d *Dialect) RejectedForm(remaining string) (string, bool) {
	for prefix, construct := range d.lexRejects {
		if len(remaining) >= len(prefix) && remaining[:len(prefix)] == prefix {
			return construct, true
		}
	}
	return "", false
}
