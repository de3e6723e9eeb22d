package variables

import (
	"sort"
	"strings"
)

// Column prefixes recognized by the classifier. Anything else is ignored for
// classification but stays available in record field maps.
const (
	ErrorPrefix = "Error:"
	ValuePrefix = "Value:"
)

// IsErrorColumn reports whether name carries the literal Error: prefix.
func IsErrorColumn(name string) bool { return strings.HasPrefix(name, ErrorPrefix) }

// IsValueColumn reports whether name carries the literal Value: prefix.
func IsValueColumn(name string) bool { return strings.HasPrefix(name, ValuePrefix) }

// Variable is one logical calibration quantity: the trimmed base name shared
// by an Error: column and/or a Value: column. It owns its own column
// references, selection flag, and palette color so nothing drifts across
// index-based lookups.
type Variable struct {
	Name        string
	ErrorColumn string // "" when the variable has no error side
	ValueColumn string // "" when the variable has no value side
	Selected    bool
	Color       int // palette slot, assigned once per load
}

// HasError reports whether the variable has an error-side column.
func (v *Variable) HasError() bool { return v.ErrorColumn != "" }

// HasValue reports whether the variable has a value-side column.
func (v *Variable) HasValue() bool { return v.ValueColumn != "" }

// Registry is the per-load set of variables, ordered lexicographically by
// base name, with an O(1) name index for has/resolve lookups.
type Registry struct {
	vars   []*Variable
	byName map[string]*Variable
}

// Classify derives the registry from the column universe of a load (the
// first record's field names, in header order). Columns sharing a trimmed
// base across the two prefixes collapse into one variable.
func Classify(columns []string) *Registry {
	byName := make(map[string]*Variable)
	var vars []*Variable
	lookup := func(base string) *Variable {
		v, ok := byName[base]
		if !ok {
			v = &Variable{Name: base}
			byName[base] = v
			vars = append(vars, v)
		}
		return v
	}
	for _, col := range columns {
		switch {
		case IsErrorColumn(col):
			base := strings.TrimSpace(strings.TrimPrefix(col, ErrorPrefix))
			if v := lookup(base); v.ErrorColumn == "" {
				v.ErrorColumn = col
			}
		case IsValueColumn(col):
			base := strings.TrimSpace(strings.TrimPrefix(col, ValuePrefix))
			if v := lookup(base); v.ValueColumn == "" {
				v.ValueColumn = col
			}
		}
	}
	sort.Slice(vars, func(i, j int) bool { return vars[i].Name < vars[j].Name })
	for i, v := range vars {
		v.Color = i
	}
	return &Registry{vars: vars, byName: byName}
}

// Len returns the number of variables.
func (r *Registry) Len() int { return len(r.vars) }

// At returns the variable at index i, or nil when i is stale or out of range.
func (r *Registry) At(i int) *Variable {
	if r == nil || i < 0 || i >= len(r.vars) {
		return nil
	}
	return r.vars[i]
}

// Lookup resolves a base name to its variable.
func (r *Registry) Lookup(base string) (*Variable, bool) {
	if r == nil {
		return nil, false
	}
	v, ok := r.byName[base]
	return v, ok
}

// Names returns the sorted base names.
func (r *Registry) Names() []string {
	out := make([]string, len(r.vars))
	for i, v := range r.vars {
		out[i] = v.Name
	}
	return out
}

// Vars returns the ordered variable records.
func (r *Registry) Vars() []*Variable { return r.vars }

// Selected returns the selected variables in registry order.
func (r *Registry) Selected() []*Variable {
	var out []*Variable
	for _, v := range r.vars {
		if v.Selected {
			out = append(out, v)
		}
	}
	return out
}

// HasError reports whether base resolves to a variable with an error column.
func (r *Registry) HasError(base string) bool {
	v, ok := r.Lookup(base)
	return ok && v.HasError()
}

// HasValue reports whether base resolves to a variable with a value column.
func (r *Registry) HasValue(base string) bool {
	v, ok := r.Lookup(base)
	return ok && v.HasValue()
}

// ResolveError returns the full error-column name for base.
func (r *Registry) ResolveError(base string) (string, bool) {
	v, ok := r.Lookup(base)
	if !ok || !v.HasError() {
		return "", false
	}
	return v.ErrorColumn, true
}

// ResolveValue returns the full value-column name for base.
func (r *Registry) ResolveValue(base string) (string, bool) {
	v, ok := r.Lookup(base)
	if !ok || !v.HasValue() {
		return "", false
	}
	return v.ValueColumn, true
}
