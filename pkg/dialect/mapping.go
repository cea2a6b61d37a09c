package dialect

import (
	"fmt"
	"strings"
)

// ArgTransform rewrites a function call's argument order when the dialect
// and canonical forms disagree. It receives the parsed arguments and
// returns the rewritten list. A nil transform keeps arguments as-is.
type ArgTransform func(args []any) []any

// ReorderArgs returns an ArgTransform that permutes arguments by index.
// ReorderArgs(2, 1, 0) turns f(a, b, c) into f(c, b, a). Calls with a
// different argument count pass through unchanged.
func ReorderArgs(order ...int) ArgTransform {
	return func(args []any) []any {
		if len(args) != len(order) {
			return args
		}
		out := make([]any, len(args))
		for i, idx := range order {
			out[i] = args[idx]
		}
		return out
	}
}

// FunctionMapping maps one dialect function spelling to its canonical name.
//
// The table is a partial bijection: a two-way entry contributes to both the
// parse direction (Native -> Canonical) and the render direction
// (Canonical -> Native). ParseOnly entries fold a dialect alias into the
// canonical form without claiming the render direction; RenderOnly entries
// pick a spelling for a canonical function the dialect parses under another
// name. An entry with an empty Native marks the canonical function as
// unrenderable in this dialect, with Reason explaining why.
type FunctionMapping struct {
	Canonical  string
	Native     string
	ParseOnly  bool
	RenderOnly bool
	Reason     string // set when Native == "" (unrenderable)

	// Argument rewrites, applied on top of the name swap
	ParseArgs  ArgTransform // native arg order -> canonical arg order
	RenderArgs ArgTransform // canonical arg order -> native arg order
}

// ParamTransform rewrites type parameters between dialect and canonical
// forms. It receives the written parameters and returns the rewritten list.
type ParamTransform func(params []string) []string

// DefaultParams returns a ParamTransform that supplies defaults when the
// type is written bare. Explicit parameters pass through unchanged.
func DefaultParams(defaults ...string) ParamTransform {
	return func(params []string) []string {
		if len(params) > 0 {
			return params
		}
		return defaults
	}
}

// TypeMapping maps one dialect type name to its canonical name, with the
// same partial-bijection semantics as FunctionMapping.
type TypeMapping struct {
	Canonical  string
	Native     string
	ParseOnly  bool
	RenderOnly bool

	ParseParams  ParamTransform
	RenderParams ParamTransform
}

// ---------- Lookup ----------

// ResolveFunction maps a dialect function name to its canonical form,
// applying any parse-direction argument transform. Unmapped names resolve
// to themselves: most functions are already canonical.
func (d *Dialect) ResolveFunction(name string, args []any) (string, []any) {
	m, ok := d.funcByNative[strings.ToUpper(name)]
	if !ok {
		return strings.ToUpper(name), args
	}
	if m.ParseArgs != nil {
		args = m.ParseArgs(args)
	}
	return m.Canonical, args
}

// RenderFunction maps a canonical function name to the dialect spelling,
// applying any render-direction argument transform. A mapping with an
// empty Native means the dialect has no equivalent; rendering fails with
// an UnsupportedError rather than approximating.
func (d *Dialect) RenderFunction(canonical string, args []any) (string, []any, error) {
	m, ok := d.funcByCanonical[strings.ToUpper(canonical)]
	if !ok {
		return strings.ToUpper(canonical), args, nil
	}
	if m.Native == "" {
		return "", nil, &UnsupportedError{
			Dialect:   d.Name,
			Construct: fmt.Sprintf("function %s", strings.ToUpper(canonical)),
			Reason:    m.Reason,
		}
	}
	if m.RenderArgs != nil {
		args = m.RenderArgs(args)
	}
	return m.Native, args, nil
}

// ResolveType maps a dialect type name to its canonical form.
func (d *Dialect) ResolveType(name string, params []string) (string, []string) {
	m, ok := d.typeByNative[strings.ToUpper(name)]
	if !ok {
		return strings.ToUpper(name), params
	}
	if m.ParseParams != nil {
		params = m.ParseParams(params)
	}
	return m.Canonical, params
}

// RenderType maps a canonical type name to the dialect spelling.
func (d *Dialect) RenderType(canonical string, params []string) (string, []string) {
	m, ok := d.typeByCanonical[strings.ToUpper(canonical)]
	if !ok {
		return strings.ToUpper(canonical), params
	}
	if m.RenderParams != nil {
		params = m.RenderParams(params)
	}
	return m.Native, params
}

// ---------- Validation ----------

// ValidateFunctionMappings checks a mapping table for internal
// consistency. Duplicate native names among parse-direction entries, or
// duplicate canonical names among render-direction entries, would make
// the table ambiguous.
func ValidateFunctionMappings(mappings []FunctionMapping) error {
	byNative := make(map[string]struct{})
	byCanonical := make(map[string]struct{})
	for _, m := range mappings {
		if m.Canonical == "" {
			return fmt.Errorf("function mapping with empty canonical name")
		}
		if m.ParseOnly && m.RenderOnly {
			return fmt.Errorf("function mapping %s: ParseOnly and RenderOnly are mutually exclusive", m.Canonical)
		}
		if m.Native == "" && m.ParseOnly {
			return fmt.Errorf("function mapping %s: unrenderable entry cannot be ParseOnly", m.Canonical)
		}
		if m.Native != "" && !m.RenderOnly {
			key := strings.ToUpper(m.Native)
			if _, dup := byNative[key]; dup {
				return fmt.Errorf("duplicate native function mapping for %s", key)
			}
			byNative[key] = struct{}{}
		}
		if !m.ParseOnly {
			key := strings.ToUpper(m.Canonical)
			if _, dup := byCanonical[key]; dup {
				return fmt.Errorf("duplicate canonical function mapping for %s", key)
			}
			byCanonical[key] = struct{}{}
		}
	}
	return nil
}

// ValidateTypeMappings checks a type mapping table for internal consistency.
func ValidateTypeMappings(mappings []TypeMapping) error {
	byNative := make(map[string]struct{})
	byCanonical := make(map[string]struct{})
	for _, m := range mappings {
		if m.Canonical == "" {
			return fmt.Errorf("type mapping with empty canonical name")
		}
		if m.Native == "" {
			return fmt.Errorf("type mapping %s: empty native name", m.Canonical)
		}
		if m.ParseOnly && m.RenderOnly {
			return fmt.Errorf("type mapping %s: ParseOnly and RenderOnly are mutually exclusive", m.Canonical)
		}
		if !m.RenderOnly {
			key := strings.ToUpper(m.Native)
			if _, dup := byNative[key]; dup {
				return fmt.Errorf("duplicate native type mapping for %s", key)
			}
			byNative[key] = struct{}{}
		}
		if !m.ParseOnly {
			key := strings.ToUpper(m.Canonical)
			if _, dup := byCanonical[key]; dup {
				return fmt.Errorf("duplicate canonical type mapping for %s", key)
			}
			byCanonical[key] = struct{}{}
		}
	}
	return nil
}
