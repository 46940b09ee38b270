package eval

import (
	"math"
	"math/big"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/gopartiql/partiqlcore/internal/docmodel"
)

var int64Min = big.NewInt(math.MinInt64)
var int64Max = big.NewInt(math.MaxInt64)

func fitsInt64(bi *big.Int) bool {
	return bi.Cmp(int64Min) >= 0 && bi.Cmp(int64Max) <= 0
}

// typeNameToType maps a parsed CAST/IS type-name symbol to the runtime
// Type tag it casts into. VARCHAR/CHAR/CHARACTER all land on StringType
// — their length parameter is applied as a post-processing truncate/pad
// step in evalCast, the SQL idiom of treating length as a constraint on
// a text value rather than a distinct runtime representation.
func typeNameToType(name string) (docmodel.Type, bool) {
	switch name {
	case "bool", "boolean":
		return docmodel.BoolType, true
	case "int", "integer":
		return docmodel.IntType, true
	case "float", "double":
		return docmodel.FloatType, true
	case "decimal", "numeric":
		return docmodel.DecimalType, true
	case "timestamp":
		return docmodel.TimestampType, true
	case "string", "varchar", "char", "character":
		return docmodel.StringType, true
	case "symbol":
		return docmodel.SymbolType, true
	case "clob":
		return docmodel.ClobType, true
	case "blob":
		return docmodel.BlobType, true
	case "list":
		return docmodel.ListType, true
	case "sexp":
		return docmodel.SexpType, true
	case "bag":
		return docmodel.BagType, true
	case "struct":
		return docmodel.StructType, true
	case "null":
		return docmodel.NullType, true
	case "missing":
		return docmodel.MissingType, true
	}
	return 0, false
}

// parseIntText implements the text->INT cast cell: base-10, or
// `0x…`/`0b…` with an optional leading sign, leading zeros stripped.
func parseIntText(s string) (*big.Int, bool) {
	s = strings.TrimSpace(s)
	neg := false
	if strings.HasPrefix(s, "+") {
		s = s[1:]
	} else if strings.HasPrefix(s, "-") {
		neg = true
		s = s[1:]
	}
	base := 10
	switch {
	case strings.HasPrefix(s, "0x"), strings.HasPrefix(s, "0X"):
		base = 16
		s = s[2:]
	case strings.HasPrefix(s, "0b"), strings.HasPrefix(s, "0B"):
		base = 2
		s = s[2:]
	}
	s = strings.TrimLeft(s, "0")
	if s == "" {
		s = "0"
	}
	bi, ok := new(big.Int).SetString(s, base)
	if !ok {
		return nil, false
	}
	if neg {
		bi.Neg(bi)
	}
	return bi, true
}

func isZeroNumeric(v docmodel.Value) bool {
	switch t := v.(type) {
	case docmodel.IntValue:
		return t.V.Sign() == 0
	case docmodel.FloatValue:
		return float64(t) == 0
	case docmodel.DecimalValue:
		return t.V.IsZero()
	}
	return false
}

// evalCast applies the cast table. NULL and MISSING cast to themselves
// unconditionally. params carries any CAST-target type parameters the
// parser validated for arity (e.g. VARCHAR(n)).
func evalCast(v docmodel.Value, targetName string, params []docmodel.Value) (docmodel.Value, error) {
	if v.Type() == docmodel.NullType || v.Type() == docmodel.MissingType {
		return v, nil
	}
	target, ok := typeNameToType(targetName)
	if !ok {
		return nil, errInvalidArguments("unknown CAST target " + targetName)
	}
	source := v.Type()

	switch target {
	case docmodel.BoolType:
		switch t := v.(type) {
		case docmodel.BoolValue:
			return t, nil
		case docmodel.IntValue, docmodel.FloatValue, docmodel.DecimalValue:
			return docmodel.BoolValue(!isZeroNumeric(v)), nil
		case docmodel.StringValue:
			return docmodel.BoolValue(strings.EqualFold(string(t), "true")), nil
		case docmodel.SymbolValue:
			return docmodel.BoolValue(strings.EqualFold(string(t), "true")), nil
		}
		return nil, errInvalidCast(source, target)

	case docmodel.IntType:
		var bi *big.Int
		switch t := v.(type) {
		case docmodel.BoolValue:
			if t {
				bi = big.NewInt(1)
			} else {
				bi = big.NewInt(0)
			}
		case docmodel.IntValue:
			bi = t.V
		case docmodel.FloatValue:
			bf := big.NewFloat(float64(t))
			bi, _ = bf.Int(nil)
		case docmodel.DecimalValue:
			parsed, ok := new(big.Int).SetString(t.V.Truncate(0).String(), 10)
			if !ok {
				return nil, errCastFailed(source, target, "malformed decimal value")
			}
			bi = parsed
		case docmodel.StringValue, docmodel.SymbolValue:
			parsed, ok := parseIntText(docmodel.Text(v))
			if !ok {
				return nil, errCastFailed(source, target, "malformed integer text")
			}
			bi = parsed
		default:
			return nil, errInvalidCast(source, target)
		}
		if !fitsInt64(bi) {
			return nil, errIntOverflow(source.String())
		}
		return docmodel.NewBigInt(bi), nil

	case docmodel.FloatType:
		switch t := v.(type) {
		case docmodel.BoolValue:
			if t {
				return docmodel.FloatValue(1.0), nil
			}
			return docmodel.FloatValue(0.0), nil
		case docmodel.IntValue, docmodel.FloatValue, docmodel.DecimalValue:
			return docmodel.FloatValue(toFloat(v)), nil
		case docmodel.StringValue, docmodel.SymbolValue:
			f, err := strconv.ParseFloat(docmodel.Text(v), 64)
			if err != nil {
				return nil, errCastFailed(source, target, "malformed float text")
			}
			return docmodel.FloatValue(f), nil
		}
		return nil, errInvalidCast(source, target)

	case docmodel.DecimalType:
		switch t := v.(type) {
		case docmodel.BoolValue:
			if t {
				return docmodel.NewDecimal(decimal.NewFromInt(1)), nil
			}
			return docmodel.NewDecimal(decimal.NewFromInt(0)), nil
		case docmodel.IntValue, docmodel.FloatValue, docmodel.DecimalValue:
			return docmodel.NewDecimal(toDecimal(v)), nil
		case docmodel.StringValue, docmodel.SymbolValue:
			d, err := decimal.NewFromString(docmodel.Text(v))
			if err != nil {
				return nil, errCastFailed(source, target, "malformed decimal text")
			}
			return docmodel.NewDecimal(d), nil
		}
		return nil, errInvalidCast(source, target)

	case docmodel.TimestampType:
		switch v.(type) {
		case docmodel.StringValue, docmodel.SymbolValue:
			ts, err := docmodel.ParseTimestamp(docmodel.Text(v))
			if err != nil {
				return nil, errCastFailed(source, target, err.Error())
			}
			return docmodel.NewTimestamp(ts), nil
		}
		return nil, errInvalidCast(source, target)

	case docmodel.StringType, docmodel.SymbolType:
		text, err := castToText(v, source, target)
		if err != nil {
			return nil, err
		}
		text = applyTextLength(targetName, params, text)
		if target == docmodel.SymbolType {
			return docmodel.SymbolValue(text), nil
		}
		return docmodel.StringValue(text), nil

	case docmodel.ClobType, docmodel.BlobType:
		var bytes []byte
		switch t := v.(type) {
		case docmodel.ClobValue:
			bytes = t.V
		case docmodel.BlobValue:
			bytes = t.V
		default:
			return nil, errInvalidCast(source, target)
		}
		if target == docmodel.ClobType {
			return docmodel.ClobValue{V: bytes}, nil
		}
		return docmodel.BlobValue{V: bytes}, nil

	case docmodel.ListType, docmodel.SexpType, docmodel.BagType:
		seq, ok := v.(docmodel.Sequence)
		if !ok {
			return nil, errInvalidCast(source, target)
		}
		items := docmodel.Drain(seq)
		return &docmodel.EagerSequence{Container: target, Items: items}, nil

	case docmodel.StructType:
		if _, ok := v.(docmodel.StructVal); ok {
			return v, nil
		}
		return nil, errInvalidCast(source, target)
	}
	return nil, errInvalidCast(source, target)
}

func castToText(v docmodel.Value, source, target docmodel.Type) (string, error) {
	switch t := v.(type) {
	case docmodel.BoolValue:
		if t {
			return "true", nil
		}
		return "false", nil
	case docmodel.IntValue:
		return t.V.String(), nil
	case docmodel.FloatValue:
		return strconv.FormatFloat(float64(t), 'g', -1, 64), nil
	case docmodel.DecimalValue:
		return t.V.String(), nil
	case docmodel.StringValue:
		return string(t), nil
	case docmodel.SymbolValue:
		return string(t), nil
	case docmodel.TimestampValue:
		return t.V.String(), nil
	}
	return "", errInvalidCast(source, target)
}

// applyTextLength applies VARCHAR(n) truncation or CHAR(n)/CHARACTER(n)
// space-padding-or-truncation, when the CAST target carried a length
// parameter.
func applyTextLength(targetName string, params []docmodel.Value, text string) string {
	if len(params) == 0 {
		return text
	}
	n, ok := params[0].(docmodel.IntValue)
	if !ok {
		return text
	}
	length := int(n.V.Int64())
	runes := []rune(text)
	switch targetName {
	case "varchar":
		if len(runes) > length {
			return string(runes[:length])
		}
		return text
	case "char", "character":
		if len(runes) > length {
			return string(runes[:length])
		}
		return text + strings.Repeat(" ", length-len(runes))
	}
	return text
}
