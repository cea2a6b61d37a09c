package vertica

import "github.com/leapstack-labs/sqlbridge/pkg/dialect"

// Type name mappings between Vertica spellings and canonical names.
//
// Parse-only entries cover the Postgres-compatible aliases Vertica
// accepts on input but always reports under its own name. TEXT is the
// reverse case: a canonical name Vertica cannot spell, rendered as
// unbounded VARCHAR. Unparameterized NUMERIC gets Vertica's default
// precision and scale on parse so the canonical type is explicit.
var verticaTypes = []dialect.TypeMapping{
	{Canonical: "FLOAT", Native: "DOUBLE PRECISION"},
	{Canonical: "FLOAT", Native: "DOUBLE", ParseOnly: true},
	{Canonical: "FLOAT", Native: "FLOAT8", ParseOnly: true},
	{Canonical: "INT", Native: "INT8", ParseOnly: true},
	{Canonical: "VARBINARY", Native: "BYTEA", ParseOnly: true},
	{Canonical: "TEXT", Native: "VARCHAR", RenderOnly: true},
	{
		Canonical:   "NUMERIC",
		Native:      "NUMERIC",
		ParseParams: dialect.DefaultParams("37", "15"),
	},
}
