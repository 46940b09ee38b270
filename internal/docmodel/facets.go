package docmodel

// Facets are optional auxiliary capabilities attached to a value without
// altering its payload: Named (a one-shot "name", used by
// UNPIVOT and struct projection) and OrderedBindNames (an ordered list
// of bind names for positional `@` reference).
//
// Design note: re-expressed here as "a small struct
// of optional facet payloads carried alongside the value" rather than a
// dynamic capability-query interface, exactly the alternative the
// design notes suggest. A single wrapper type (faceted) carries a merged
// facetSet so that wrapping with one facet preserves any facet already
// attached — wrapping never drops a previously attached capability, only
// Unnamed explicitly masks Named.

type facetSet struct {
	hasName   bool
	name      Value
	hasBind   bool
	bindNames []string
}

type faceted struct {
	Value
	facets *facetSet
}

// innerOf returns v's underlying value, stripping at most one level of
// faceted wrapping. By construction a faceted.Value is never itself
// faceted (cloneFacets always merges into a single facetSet), so one
// level is enough.
func innerOf(v Value) Value {
	if f, ok := v.(*faceted); ok {
		return f.Value
	}
	return v
}

func cloneFacets(v Value) *facetSet {
	if f, ok := v.(*faceted); ok && f.facets != nil {
		c := *f.facets
		return &c
	}
	return &facetSet{}
}

// WithName attaches (or replaces) the Named facet, preserving any
// OrderedBindNames facet already on v.
func WithName(v Value, name Value) Value {
	fs := cloneFacets(v)
	fs.hasName = true
	fs.name = name
	return &faceted{Value: innerOf(v), facets: fs}
}

// Named returns v's one-shot name, if any.
func Named(v Value) (Value, bool) {
	if f, ok := v.(*faceted); ok && f.facets != nil && f.facets.hasName {
		return f.facets.name, true
	}
	return nil, false
}

// Unnamed masks only the Named facet, keeping any
// OrderedBindNames facet intact.
func Unnamed(v Value) Value {
	fs := cloneFacets(v)
	fs.hasName = false
	fs.name = nil
	return &faceted{Value: innerOf(v), facets: fs}
}

// WithBindNames attaches (or replaces) the OrderedBindNames facet,
// preserving any Named facet already on v.
func WithBindNames(v Value, names []string) Value {
	fs := cloneFacets(v)
	fs.hasBind = true
	fs.bindNames = append([]string(nil), names...)
	return &faceted{Value: innerOf(v), facets: fs}
}

// BindNames returns v's ordered bind names, if any.
func BindNames(v Value) ([]string, bool) {
	if f, ok := v.(*faceted); ok && f.facets != nil && f.facets.hasBind {
		return f.facets.bindNames, true
	}
	return nil, false
}

// Unwrap strips all facet wrapping, returning the plain underlying
// value. Evaluator code that needs to type-assert Sequence/StructVal
// must call Unwrap first, since *faceted only promotes Type().
func Unwrap(v Value) Value {
	for {
		f, ok := v.(*faceted)
		if !ok {
			return v
		}
		v = f.Value
	}
}
