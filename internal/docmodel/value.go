// Package docmodel is the thin facade over the embedding self-describing
// document model: typed scalars, symbols, strings, blobs/clobs,
// decimals, timestamps, and the list/s-expression/bag/struct containers.
//
// What: a uniform runtime Value with a closed type tag, scalar/container
// constructors, an Adapter seam for the real (external) data library, and
// the facet protocol (Named, OrderedBindNames) layered on top.
// How: one small concrete struct per scalar kind plus two container
// shapes (eager slice-backed, and the lazy single-pass SequenceExprValue
// in sequence.go), one file per concern.
// Why: the evaluator and equality packages need a single vocabulary for
// "a document-model value" that doesn't leak the real Ion library's types
// into the rest of the core — that library is an external collaborator,
// consumed only through Adapter.
package docmodel

import (
	"math/big"

	"github.com/shopspring/decimal"
)

// Type is the closed type tag of a document-model value.
type Type int

const (
	MissingType Type = iota
	NullType
	BoolType
	IntType
	FloatType
	DecimalType
	TimestampType
	SymbolType
	StringType
	ClobType
	BlobType
	ListType
	SexpType
	BagType
	StructType
)

func (t Type) String() string {
	switch t {
	case MissingType:
		return "MISSING"
	case NullType:
		return "NULL"
	case BoolType:
		return "BOOL"
	case IntType:
		return "INT"
	case FloatType:
		return "FLOAT"
	case DecimalType:
		return "DECIMAL"
	case TimestampType:
		return "TIMESTAMP"
	case SymbolType:
		return "SYMBOL"
	case StringType:
		return "STRING"
	case ClobType:
		return "CLOB"
	case BlobType:
		return "BLOB"
	case ListType:
		return "LIST"
	case SexpType:
		return "SEXP"
	case BagType:
		return "BAG"
	case StructType:
		return "STRUCT"
	default:
		return "UNKNOWN"
	}
}

// IsContainer reports whether t is one of LIST, SEXP, BAG.
func (t Type) IsContainer() bool {
	return t == ListType || t == SexpType || t == BagType
}

// Value is the uniform runtime value. Concrete scalar and container
// types below all implement it; Sequence and StructVal are additional
// capability interfaces a Value may also satisfy.
type Value interface {
	Type() Type
}

// --- scalars ---

type MissingValue struct{}

func (MissingValue) Type() Type { return MissingType }

// Missing is the single shared MISSING value. It is encoded at the
// embedding layer as a typed null with annotation "missing" and no
// other annotations; internally we just use a distinct type tag, since
// the Ion encoding itself is the external adapter's concern.
var Missing Value = MissingValue{}

// NullValue is a typed null: nulls of different declared types never
// compare equal under PTS equality.
type NullValue struct {
	Declared Type
}

func (n NullValue) Type() Type { return NullType }

func NewNull(declared Type) Value { return NullValue{Declared: declared} }

type BoolValue bool

func (BoolValue) Type() Type { return BoolType }

// IntValue holds an arbitrary-precision integer. math/big is standard
// library; no third-party arbitrary-precision *integer* library fits
// here (shopspring/decimal only covers scaled decimals), so this one
// concern stays on stdlib — see DESIGN.md.
type IntValue struct{ V *big.Int }

func (IntValue) Type() Type { return IntType }

func NewInt(i int64) Value       { return IntValue{V: big.NewInt(i)} }
func NewBigInt(i *big.Int) Value { return IntValue{V: i} }

// NewBigIntFromString parses a base-10 arbitrary-precision integer,
// returning ok=false on malformed input.
func NewBigIntFromString(s string) (Value, bool) {
	i, ok := new(big.Int).SetString(s, 10)
	if !ok {
		return nil, false
	}
	return IntValue{V: i}, true
}

type FloatValue float64

func (FloatValue) Type() Type { return FloatType }

// DecimalValue wraps shopspring/decimal.Decimal, chosen because it keeps
// scale (exponent) and unscaled value separate, so decimal equality can
// ignore scale.
type DecimalValue struct{ V decimal.Decimal }

func (DecimalValue) Type() Type { return DecimalType }

func NewDecimal(d decimal.Decimal) Value { return DecimalValue{V: d} }

type SymbolValue string

func (SymbolValue) Type() Type { return SymbolType }

type StringValue string

func (StringValue) Type() Type { return StringType }

type ClobValue struct{ V []byte }

func (ClobValue) Type() Type { return ClobType }

type BlobValue struct{ V []byte }

func (BlobValue) Type() Type { return BlobType }

// Bool unwraps a BOOL value; callers are expected to have already
// checked Type() == BoolType.
func Bool(v Value) bool { return bool(v.(BoolValue)) }

// Text unwraps a STRING or SYMBOL value's text.
func Text(v Value) string {
	switch t := v.(type) {
	case StringValue:
		return string(t)
	case SymbolValue:
		return string(t)
	default:
		return ""
	}
}
