package eval

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/gopartiql/partiqlcore/internal/docmodel"
	"github.com/gopartiql/partiqlcore/internal/equality"
)

// upperCaser/lowerCaser use golang.org/x/text/cases for Unicode-correct
// case folding rather than strings.ToUpper/ToLower, matching how the
// document model's SYMBOL/STRING text is meant to be locale-agnostic
// but still Unicode-aware.
var upperCaser = cases.Upper(language.Und)
var lowerCaser = cases.Lower(language.Und)

// callBuiltin dispatches a scalar (non-aggregate) builtin function by
// name against already-evaluated arguments. Aggregate functions
// (COUNT/SUM/AVG/MIN/MAX) are intercepted earlier, in the SELECT
// projection evaluator, since they need the whole group's rows rather
// than a single row's arguments.
func callBuiltin(name string, args []docmodel.Value) (docmodel.Value, error) {
	switch strings.ToLower(name) {
	case "upper":
		if len(args) != 1 {
			return nil, errInvalidArguments("upper() takes exactly one argument")
		}
		if isNullOrMissing(args[0]) {
			return args[0], nil
		}
		return docmodel.StringValue(upperCaser.String(docmodel.Text(args[0]))), nil

	case "lower":
		if len(args) != 1 {
			return nil, errInvalidArguments("lower() takes exactly one argument")
		}
		if isNullOrMissing(args[0]) {
			return args[0], nil
		}
		return docmodel.StringValue(lowerCaser.String(docmodel.Text(args[0]))), nil

	case "char_length", "character_length", "length":
		if len(args) != 1 {
			return nil, errInvalidArguments(name + "() takes exactly one argument")
		}
		if isNullOrMissing(args[0]) {
			return args[0], nil
		}
		return docmodel.NewInt(int64(len([]rune(docmodel.Text(args[0]))))), nil

	case "abs":
		if len(args) != 1 {
			return nil, errInvalidArguments("abs() takes exactly one argument")
		}
		return evalAbs(args[0])

	case "coalesce":
		for _, a := range args {
			if !isNullOrMissing(a) {
				return a, nil
			}
		}
		return docmodel.Missing, nil

	case "nullif":
		if len(args) != 2 {
			return nil, errInvalidArguments("nullif() takes exactly two arguments")
		}
		if equality.PTSEqual(args[0], args[1]) {
			return docmodel.NewNull(args[0].Type()), nil
		}
		return args[0], nil
	}
	return nil, errInvalidArguments("unknown function " + name)
}

func isNullOrMissing(v docmodel.Value) bool {
	return v.Type() == docmodel.NullType || v.Type() == docmodel.MissingType
}

func evalAbs(v docmodel.Value) (docmodel.Value, error) {
	switch t := v.(type) {
	case docmodel.IntValue:
		neg := t.V.Sign() < 0
		if !neg {
			return t, nil
		}
		n, err := evalNeg(t)
		return n, err
	case docmodel.FloatValue:
		if t < 0 {
			return -t, nil
		}
		return t, nil
	case docmodel.DecimalValue:
		return docmodel.NewDecimal(t.V.Abs()), nil
	}
	if isNullOrMissing(v) {
		return v, nil
	}
	return nil, errInvalidArguments("abs() requires a number")
}

// aggregateNames is consulted by the SELECT projection evaluator to
// decide whether a `call` node needs the whole group's rows rather than
// a single row.
var aggregateNames = map[string]bool{
	"count": true, "sum": true, "avg": true, "min": true, "max": true,
}
