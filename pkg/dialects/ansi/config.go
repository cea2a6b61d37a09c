// Package ansi provides the base ANSI SQL dialect: standard clause
// sequence, operators, and join types, with no vendor extensions.
package ansi

import "github.com/leapstack-labs/sqlbridge/pkg/core"

// Config is the ANSI dialect configuration.
// Pure data; the Builder reads feature flags and auto-wires capabilities.
var Config = &core.DialectConfig{
	Name:          "ansi",
	DefaultSchema: "public",
	Placeholder:   core.PlaceholderQuestion,
	Identifiers: core.IdentifierConfig{
		Quote:         `"`,
		QuoteEnd:      `"`,
		Escape:        `""`,
		Normalization: core.NormLowercase,
	},

	Aggregates: []string{
		"SUM", "COUNT", "AVG", "MIN", "MAX",
		"STDDEV", "VARIANCE",
	},
	Generators: []string{
		"NOW", "CURRENT_TIMESTAMP", "CURRENT_DATE",
	},
	Windows: []string{
		"ROW_NUMBER", "RANK", "DENSE_RANK", "NTILE",
		"LAG", "LEAD", "FIRST_VALUE", "LAST_VALUE",
	},
	DataTypes: []string{
		"BOOLEAN", "INT", "BIGINT", "SMALLINT", "FLOAT", "NUMERIC",
		"CHAR", "VARCHAR", "DATE", "TIME", "TIMESTAMP", "INTERVAL",
	},
}
