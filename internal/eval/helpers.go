package eval

import (
	"fmt"
	"strings"

	"github.com/gopartiql/partiqlcore/internal/docmodel"
)

func lowerName(s string) string { return strings.ToLower(s) }

func trimLeft(s, cutset string) string  { return strings.TrimLeft(s, cutset) }
func trimRight(s, cutset string) string { return strings.TrimRight(s, cutset) }

func syntheticName(zeroBasedIndex int) string { return fmt.Sprintf("_%d", zeroBasedIndex+1) }

func isFalseBool(v docmodel.Value) bool {
	b, ok := v.(docmodel.BoolValue)
	return ok && !bool(b)
}

func isTrueBool(v docmodel.Value) bool {
	b, ok := v.(docmodel.BoolValue)
	return ok && bool(b)
}

func isUnknown(v docmodel.Value) bool {
	return v.Type() == docmodel.NullType || v.Type() == docmodel.MissingType
}

func isTextual(v docmodel.Value) bool {
	switch v.(type) {
	case docmodel.StringValue, docmodel.SymbolValue:
		return true
	}
	return false
}

// toIntClamped converts a numeric value to a plain int, the grain
// SUBSTRING's FROM/FOR arguments need. Out-of-int64-range magnitudes
// clamp rather than error: a FROM/FOR far outside the string's length
// is legal SQL and simply yields an empty or full-length result.
func toIntClamped(v docmodel.Value) int {
	switch t := v.(type) {
	case docmodel.IntValue:
		if !fitsInt64(t.V) {
			if t.V.Sign() < 0 {
				return -1 << 31
			}
			return 1 << 31
		}
		return int(t.V.Int64())
	case docmodel.FloatValue:
		return int(t)
	case docmodel.DecimalValue:
		f, _ := t.V.Float64()
		return int(f)
	}
	return 0
}

// combineAnd applies the AND truth table to two already-evaluated
// boolean/NULL/MISSING operands (used by BETWEEN's desugaring into two
// comparisons).
func combineAnd(a, b docmodel.Value) docmodel.Value {
	if isFalseBool(a) || isFalseBool(b) {
		return docmodel.BoolValue(false)
	}
	if a.Type() == docmodel.MissingType || b.Type() == docmodel.MissingType {
		return docmodel.Missing
	}
	if isUnknown(a) || isUnknown(b) {
		return docmodel.NewNull(docmodel.BoolType)
	}
	return docmodel.BoolValue(true)
}

func substringRunes(text []rune, from int, length int, hasLength bool) string {
	n := len(text)
	start := from - 1
	end := n
	if hasLength {
		end = start + length
	}
	if start < 0 {
		start = 0
	}
	if end > n {
		end = n
	}
	if end < start {
		return ""
	}
	return string(text[start:end])
}
