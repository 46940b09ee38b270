package docmodel

import (
	"math/big"

	"github.com/shopspring/decimal"
)

// Adapter is the external collaborator for the document model:
// construction of scalars and containers, the type discriminator,
// iteration/field lookup, timestamp/decimal comparison, and parsing a
// single embedded value from text (the ION_LITERAL lexer path). The
// real embedding document library lives outside this module;
// DefaultAdapter below is the self-contained stand-in this core ships
// so it is runnable without that external dependency.
type Adapter interface {
	NewBool(b bool) Value
	NewInt(i int64) Value
	NewBigInt(i *big.Int) Value
	NewFloat(f float64) Value
	NewDecimal(d decimal.Decimal) Value
	NewTimestamp(ts Timestamp) Value
	NewString(s string) Value
	NewSymbol(s string) Value
	NewBlob(b []byte) Value
	NewClob(b []byte) Value
	NewList(items []Value) Value
	NewSexp(items []Value) Value
	NewBag(items []Value) Value
	NewStruct(fields []Field) Value
	NewNullOfType(declared Type) Value
	Missing() Value
	TypeOf(v Value) Type
	CompareTimestamps(a, b Timestamp) int
	CompareDecimals(a, b decimal.Decimal) int
	// ParseText parses a single document-model value from its textual
	// form, used by the lexer's backtick-quoted ION_LITERAL path.
	ParseText(src string) (Value, error)
}

// DefaultAdapter is the Adapter this module ships by default.
type DefaultAdapter struct{}

func (DefaultAdapter) NewBool(b bool) Value { return BoolValue(b) }
func (DefaultAdapter) NewInt(i int64) Value          { return NewInt(i) }
func (DefaultAdapter) NewBigInt(i *big.Int) Value    { return NewBigInt(i) }
func (DefaultAdapter) NewFloat(f float64) Value              { return FloatValue(f) }
func (DefaultAdapter) NewDecimal(d decimal.Decimal) Value    { return NewDecimal(d) }
func (DefaultAdapter) NewTimestamp(ts Timestamp) Value        { return NewTimestamp(ts) }
func (DefaultAdapter) NewString(s string) Value              { return StringValue(s) }
func (DefaultAdapter) NewSymbol(s string) Value              { return SymbolValue(s) }
func (DefaultAdapter) NewBlob(b []byte) Value                { return BlobValue{V: b} }
func (DefaultAdapter) NewClob(b []byte) Value                { return ClobValue{V: b} }
func (DefaultAdapter) NewList(items []Value) Value           { return NewList(items) }
func (DefaultAdapter) NewSexp(items []Value) Value           { return NewSexp(items) }
func (DefaultAdapter) NewBag(items []Value) Value            { return NewBag(items) }
func (DefaultAdapter) NewStruct(fields []Field) Value        { return NewStruct(fields) }
func (DefaultAdapter) NewNullOfType(declared Type) Value     { return NewNull(declared) }
func (DefaultAdapter) Missing() Value                        { return Missing }
func (DefaultAdapter) TypeOf(v Value) Type                   { return Unwrap(v).Type() }
func (DefaultAdapter) CompareTimestamps(a, b Timestamp) int   { return CompareInstants(a, b) }
func (DefaultAdapter) CompareDecimals(a, b decimal.Decimal) int {
	return a.Cmp(b)
}
func (DefaultAdapter) ParseText(src string) (Value, error) { return ParseText(src) }
