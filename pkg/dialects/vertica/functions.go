package vertica

import "github.com/leapstack-labs/sqlbridge/pkg/dialect"

// Function name mappings between Vertica spellings and canonical names.
//
// DATEADD takes (unit, count, date) in Vertica; the canonical order is
// (date, count, unit), so both directions reverse the argument list.
// Parse-only entries fold Vertica aliases into one canonical name;
// spelling them back out would be ambiguous. Hash functions (MD5, SHA1,
// SHA256) need no entries: unmapped names pass through by identity.
var verticaFunctions = []dialect.FunctionMapping{
	{Canonical: "DATE_DIFF", Native: "DATEDIFF"},
	{
		Canonical:  "DATE_ADD",
		Native:     "DATEADD",
		ParseArgs:  dialect.ReorderArgs(2, 1, 0),
		RenderArgs: dialect.ReorderArgs(2, 1, 0),
	},
	{
		Canonical: "DATE_ADD",
		Native:    "TIMESTAMPADD",
		ParseOnly: true,
		ParseArgs: dialect.ReorderArgs(2, 1, 0),
	},
	{Canonical: "COALESCE", Native: "NVL", ParseOnly: true},
	{Canonical: "SUBSTRING", Native: "SUBSTR", ParseOnly: true},
	{Canonical: "APPROX_COUNT_DISTINCT", Native: "APPROXIMATE_COUNT_DISTINCT"},
	{Canonical: "APPROX_MEDIAN", Native: "APPROXIMATE_MEDIAN"},
	{Canonical: "STRPOS", Native: "INSTR"},

	// Vertica has no lazy series generator.
	{Canonical: "GENERATE_SERIES", Native: "", Reason: "no set-returning series function"},
}
