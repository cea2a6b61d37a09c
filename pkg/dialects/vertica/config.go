// Package vertica provides the Vertica SQL dialect definition.
// This package is pure Go with no database driver dependencies.
package vertica

import "github.com/leapstack-labs/sqlbridge/pkg/core"

// Config is the Vertica dialect configuration.
// Pure data; the Builder reads feature flags and auto-wires capabilities.
var Config = &core.DialectConfig{
	Name:          "vertica",
	DefaultSchema: "public",
	Placeholder:   core.PlaceholderQuestion,
	Identifiers: core.IdentifierConfig{
		Quote:         `"`,
		QuoteEnd:      `"`,
		Escape:        `""`,
		Normalization: core.NormCaseInsensitive,
	},

	// Framework features (auto-wired by the Builder)
	SupportsIlike:        true,
	SupportsCastOperator: true,
	SupportsWithinGroup:  true,

	Aggregates: []string{
		"SUM", "COUNT", "AVG", "MIN", "MAX",
		"STDDEV", "STDDEV_POP", "STDDEV_SAMP", "VARIANCE", "VAR_POP", "VAR_SAMP",
		"APPROXIMATE_COUNT_DISTINCT", "APPROXIMATE_MEDIAN",
		"PERCENTILE_CONT", "PERCENTILE_DISC",
		"LISTAGG", "BOOL_AND", "BOOL_OR",
	},
	Generators: []string{
		"NOW", "CURRENT_TIMESTAMP", "CURRENT_DATE", "GETDATE", "SYSDATE",
		"RANDOM", "RANDOMINT",
	},
	Windows: []string{
		"ROW_NUMBER", "RANK", "DENSE_RANK", "PERCENT_RANK", "NTILE",
		"LAG", "LEAD", "FIRST_VALUE", "LAST_VALUE", "MEDIAN", "CUME_DIST",
	},
	Keywords: []string{
		"COPY", "EXPORT", "PROJECTION", "SEGMENTED", "UNSEGMENTED",
		"NODES", "DIRECT", "REJECTMAX", "ILIKE",
	},
	DataTypes: []string{
		"BOOLEAN", "INT", "INTEGER", "BIGINT", "SMALLINT", "TINYINT",
		"FLOAT", "DOUBLE PRECISION", "NUMERIC", "DECIMAL", "MONEY",
		"CHAR", "VARCHAR", "LONG VARCHAR", "BINARY", "VARBINARY", "LONG VARBINARY",
		"DATE", "TIME", "TIMESTAMP", "TIMESTAMPTZ", "TIMETZ", "INTERVAL", "UUID",
	},
}
