// Package equality implements PTS equality: the type-strict
// equivalence used as the conformance-test oracle, distinct from the
// evaluator's coercing SQL `=`.
//
// What: a single recursive PTSEqual(a, b Value) bool, plus the
// multiplicity-counting BAG comparison it needs.
// How: a type-tag switch in a "compare by concrete Go type" style,
// generalized to the document model's closed type set instead of Go's
// native types.
// Why: the spec's PTS rules (same declared-null type, decimal-ignores-
// scale, bag-by-multiset) don't correspond to any single Go `==`, so
// they are spelled out explicitly rather than leaned on operator
// overloading.
package equality

import (
	"github.com/gopartiql/partiqlcore/internal/docmodel"
)

// PTSEqual reports whether a and b are PTS-equal. Facet
// wrapping is transparent to equality: both sides are unwrapped first.
func PTSEqual(a, b docmodel.Value) bool {
	a = docmodel.Unwrap(a)
	b = docmodel.Unwrap(b)

	aMissing := a.Type() == docmodel.MissingType
	bMissing := b.Type() == docmodel.MissingType
	if aMissing || bMissing {
		return aMissing && bMissing
	}

	if a.Type() != b.Type() {
		return false
	}

	switch av := a.(type) {
	case docmodel.NullValue:
		bv := b.(docmodel.NullValue)
		return av.Declared == bv.Declared
	case docmodel.BoolValue:
		return av == b.(docmodel.BoolValue)
	case docmodel.IntValue:
		bv := b.(docmodel.IntValue)
		return av.V.Cmp(bv.V) == 0
	case docmodel.FloatValue:
		return av == b.(docmodel.FloatValue)
	case docmodel.DecimalValue:
		bv := b.(docmodel.DecimalValue)
		return av.V.Equal(bv.V)
	case docmodel.SymbolValue:
		return av == b.(docmodel.SymbolValue)
	case docmodel.StringValue:
		return av == b.(docmodel.StringValue)
	case docmodel.ClobValue:
		bv := b.(docmodel.ClobValue)
		return bytesEqual(av.V, bv.V)
	case docmodel.BlobValue:
		bv := b.(docmodel.BlobValue)
		return bytesEqual(av.V, bv.V)
	case docmodel.TimestampValue:
		bv := b.(docmodel.TimestampValue)
		return docmodel.CompareInstants(av.V, bv.V) == 0
	}

	switch a.Type() {
	case docmodel.ListType:
		return sequenceEqual(a, b)
	case docmodel.SexpType:
		if sexpIsBag(a) && sexpIsBag(b) {
			return bagEqualSlices(drainAny(a)[1:], drainAny(b)[1:])
		}
		return sequenceEqual(a, b)
	case docmodel.BagType:
		return bagEqual(a, b)
	case docmodel.StructType:
		return structEqual(a, b)
	}
	return false
}

// sexpIsBag reports whether v is a SEXP headed by the symbol `bag` with
// more than one element — the s-expression shape used to spell a BAG
// literal in contexts (test fixtures, quoted AST) that only have the
// list/sexp container forms available. Such a sexp compares by
// multiplicity like a real BAG, not positionally like an ordinary sexp.
func sexpIsBag(v docmodel.Value) bool {
	elems := drainAny(v)
	if len(elems) <= 1 {
		return false
	}
	head, ok := elems[0].(docmodel.SymbolValue)
	return ok && head == "bag"
}

func bytesEqual(a, b []byte) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func drainAny(v docmodel.Value) []docmodel.Value {
	seq, ok := v.(docmodel.Sequence)
	if !ok {
		return nil
	}
	return docmodel.Drain(seq)
}

// sequenceEqual implements LIST/SEXP positional structural equality.
func sequenceEqual(a, b docmodel.Value) bool {
	ai, bi := drainAny(a), drainAny(b)
	if len(ai) != len(bi) {
		return false
	}
	for i := range ai {
		if !PTSEqual(ai[i], bi[i]) {
			return false
		}
	}
	return true
}

// bagEqual implements BAG equality by multiplicity: equal
// iff same size and every element's multiplicity, counted via PTSEqual
// itself, matches. O(n^2) in the bag size; conformance bags are small.
func bagEqual(a, b docmodel.Value) bool {
	return bagEqualSlices(drainAny(a), drainAny(b))
}

func bagEqualSlices(ai, bi []docmodel.Value) bool {
	if len(ai) != len(bi) {
		return false
	}
	used := make([]bool, len(bi))
	for _, x := range ai {
		found := false
		for j, y := range bi {
			if used[j] {
				continue
			}
			if PTSEqual(x, y) {
				used[j] = true
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}

// structEqual implements STRUCT equality: same size; every
// left field has a same-named field on the right that is recursively
// equal. Field order is irrelevant.
func structEqual(a, b docmodel.Value) bool {
	as, aok := a.(docmodel.StructVal)
	bs, bok := b.(docmodel.StructVal)
	if !aok || !bok {
		return false
	}
	af, bf := as.Fields(), bs.Fields()
	if len(af) != len(bf) {
		return false
	}
	for _, f := range af {
		bv, ok := bs.FieldByName(f.Name)
		if !ok || !PTSEqual(f.Value, bv) {
			return false
		}
	}
	return true
}
