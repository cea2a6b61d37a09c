package dialect

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/sqlbridge/pkg/core"
)

func TestNormalizeName(t *testing.T) {
	tests := []struct {
		name     string
		strategy core.NormalizationStrategy
		input    string
		want     string
	}{
		{"lowercase", core.NormLowercase, "MyColumn", "mycolumn"},
		{"uppercase", core.NormUppercase, "MyColumn", "MYCOLUMN"},
		{"case sensitive", core.NormCaseSensitive, "MyColumn", "MyColumn"},
		{"case insensitive", core.NormCaseInsensitive, "MyColumn", "mycolumn"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := NewDialect("test").
				Identifiers(`"`, `"`, `""`, tt.strategy).
				Build()
			assert.Equal(t, tt.want, d.NormalizeName(tt.input))
		})
	}
}

func TestQuoteIdentifier(t *testing.T) {
	d := NewDialect("test").Build()
	assert.Equal(t, `"my_table"`, d.QuoteIdentifier("my_table"))
	assert.Equal(t, `"weird""name"`, d.QuoteIdentifier(`weird"name`))
}

func TestFunctionClassification(t *testing.T) {
	d := NewDialect("test").
		Aggregates("SUM", "COUNT").
		Generators("NOW").
		Windows("ROW_NUMBER").
		Build()

	assert.True(t, d.IsAggregate("sum"))
	assert.True(t, d.IsAggregate("SUM"))
	assert.False(t, d.IsAggregate("now"))
	assert.True(t, d.IsGenerator("NOW"))
	assert.True(t, d.IsWindow("row_number"))
	assert.False(t, d.IsWindow("sum"))
}

func TestResolveFunction(t *testing.T) {
	d := NewDialect("test").
		Functions(
			FunctionMapping{Canonical: "DATE_DIFF", Native: "DATEDIFF"},
			FunctionMapping{Canonical: "COALESCE", Native: "NVL", ParseOnly: true},
		).
		Build()

	t.Run("mapped name", func(t *testing.T) {
		name, _ := d.ResolveFunction("datediff", nil)
		assert.Equal(t, "DATE_DIFF", name)
	})

	t.Run("parse-only alias", func(t *testing.T) {
		name, _ := d.ResolveFunction("NVL", nil)
		assert.Equal(t, "COALESCE", name)
	})

	t.Run("unmapped name is identity", func(t *testing.T) {
		name, _ := d.ResolveFunction("md5", nil)
		assert.Equal(t, "MD5", name)
	})
}

func TestRenderFunction(t *testing.T) {
	d := NewDialect("test").
		Functions(
			FunctionMapping{Canonical: "DATE_DIFF", Native: "DATEDIFF"},
			FunctionMapping{Canonical: "GENERATE_SERIES", Native: "", Reason: "no series generator"},
			FunctionMapping{Canonical: "COALESCE", Native: "NVL", ParseOnly: true},
		).
		Build()

	t.Run("mapped name", func(t *testing.T) {
		name, _, err := d.RenderFunction("DATE_DIFF", nil)
		require.NoError(t, err)
		assert.Equal(t, "DATEDIFF", name)
	})

	t.Run("parse-only entry does not claim render direction", func(t *testing.T) {
		name, _, err := d.RenderFunction("COALESCE", nil)
		require.NoError(t, err)
		assert.Equal(t, "COALESCE", name)
	})

	t.Run("unrenderable function", func(t *testing.T) {
		_, _, err := d.RenderFunction("GENERATE_SERIES", nil)
		require.Error(t, err)
		var unsup *UnsupportedError
		require.ErrorAs(t, err, &unsup)
		assert.Equal(t, "function GENERATE_SERIES is not supported in test dialect: no series generator", err.Error())
	})
}

func TestReorderArgs(t *testing.T) {
	swap := ReorderArgs(2, 1, 0)

	args := []any{"a", "b", "c"}
	assert.Equal(t, []any{"c", "b", "a"}, swap(args))

	// Mismatched arity passes through untouched
	two := []any{"a", "b"}
	assert.Equal(t, two, swap(two))
}

func TestDefaultParams(t *testing.T) {
	dp := DefaultParams("37", "15")
	assert.Equal(t, []string{"37", "15"}, dp(nil))
	assert.Equal(t, []string{"10", "2"}, dp([]string{"10", "2"}))
}

func TestTypeMappings(t *testing.T) {
	d := NewDialect("test").
		Types(
			TypeMapping{Canonical: "FLOAT", Native: "DOUBLE"},
			TypeMapping{Canonical: "VARBINARY", Native: "BYTEA", ParseOnly: true},
			TypeMapping{Canonical: "VARCHAR", Native: "TEXT", RenderOnly: true},
		).
		Build()

	t.Run("two-way", func(t *testing.T) {
		name, _ := d.ResolveType("double", nil)
		assert.Equal(t, "FLOAT", name)
		name, _ = d.RenderType("FLOAT", nil)
		assert.Equal(t, "DOUBLE", name)
	})

	t.Run("parse-only", func(t *testing.T) {
		name, _ := d.ResolveType("BYTEA", nil)
		assert.Equal(t, "VARBINARY", name)
		name, _ = d.RenderType("VARBINARY", nil)
		assert.Equal(t, "VARBINARY", name)
	})

	t.Run("render-only", func(t *testing.T) {
		name, _ := d.RenderType("VARCHAR", nil)
		assert.Equal(t, "TEXT", name)
		name, _ = d.ResolveType("TEXT", nil)
		assert.Equal(t, "TEXT", name)
	})
}

func TestValidateFunctionMappings(t *testing.T) {
	tests := []struct {
		name     string
		mappings []FunctionMapping
		wantErr  string
	}{
		{
			name: "valid table",
			mappings: []FunctionMapping{
				{Canonical: "DATE_DIFF", Native: "DATEDIFF"},
				{Canonical: "COALESCE", Native: "NVL", ParseOnly: true},
			},
		},
		{
			name: "duplicate native",
			mappings: []FunctionMapping{
				{Canonical: "A", Native: "F"},
				{Canonical: "B", Native: "f"},
			},
			wantErr: "duplicate native function mapping for F",
		},
		{
			name: "duplicate canonical",
			mappings: []FunctionMapping{
				{Canonical: "A", Native: "F"},
				{Canonical: "a", Native: "G"},
			},
			wantErr: "duplicate canonical function mapping for A",
		},
		{
			name: "parse-only and render-only together",
			mappings: []FunctionMapping{
				{Canonical: "A", Native: "F", ParseOnly: true, RenderOnly: true},
			},
			wantErr: "mutually exclusive",
		},
		{
			name: "unrenderable cannot be parse-only",
			mappings: []FunctionMapping{
				{Canonical: "A", Native: "", ParseOnly: true},
			},
			wantErr: "unrenderable entry cannot be ParseOnly",
		},
		{
			name: "empty canonical",
			mappings: []FunctionMapping{
				{Canonical: "", Native: "F"},
			},
			wantErr: "empty canonical name",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateFunctionMappings(tt.mappings)
			if tt.wantErr == "" {
				assert.NoError(t, err)
			} else {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
			}
		})
	}
}

func TestBuildPanicsOnMalformedMappings(t *testing.T) {
	assert.Panics(t, func() {
		NewDialect("broken").
			Functions(
				FunctionMapping{Canonical: "A", Native: "F"},
				FunctionMapping{Canonical: "B", Native: "F"},
			).
			Build()
	})
}

func TestBuildPanicsOnOrphanRejectForm(t *testing.T) {
	assert.Panics(t, func() {
		NewDialect("broken").
			RejectForm("$", ConstructDollarQuote).
			Build()
	})
}

func TestConstructPolicies(t *testing.T) {
	d := NewDialect("test").
		Unsupported(
			ConstructPolicy{Construct: ConstructDollarQuote, Phase: PhaseParse},
			ConstructPolicy{Construct: ConstructCopyFrom, Phase: PhaseGenerate, Reason: "no bulk loader"},
		).
		RejectForm("$", ConstructDollarQuote).
		Build()

	t.Run("parse-phase entry rejects on parse", func(t *testing.T) {
		err := d.ParseReject(ConstructDollarQuote)
		require.NotNil(t, err)
		assert.Equal(t, "dollar-quoted string literal is not supported in test dialect", err.Error())
	})

	t.Run("generate-phase entry does not reject on parse", func(t *testing.T) {
		assert.Nil(t, d.ParseReject(ConstructCopyFrom))
	})

	t.Run("any entry rejects on render", func(t *testing.T) {
		require.NotNil(t, d.RenderReject(ConstructDollarQuote))
		err := d.RenderReject(ConstructCopyFrom)
		require.NotNil(t, err)
		assert.Equal(t, "COPY statement is not supported in test dialect: no bulk loader", err.Error())
	})

	t.Run("unlisted construct passes", func(t *testing.T) {
		assert.Nil(t, d.ParseReject(ConstructLateralJoin))
		assert.Nil(t, d.RenderReject(ConstructLateralJoin))
	})

	t.Run("lexical reject matches prefix", func(t *testing.T) {
		construct, ok := d.RejectedForm("$$body$$")
		require.True(t, ok)
		assert.Equal(t, ConstructDollarQuote, construct)

		_, ok = d.RejectedForm("'plain string'")
		assert.False(t, ok)
	})
}

func TestRegistry(t *testing.T) {
	d := NewDialect("registry_probe").Build()
	Register(d)

	got, ok := Get("REGISTRY_PROBE")
	require.True(t, ok)
	assert.Same(t, d, got)

	assert.Contains(t, List(), "registry_probe")

	_, err := MustGet("no_such_dialect")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown dialect")

	_, err = MustGet("")
	assert.ErrorIs(t, err, ErrDialectRequired)
}
