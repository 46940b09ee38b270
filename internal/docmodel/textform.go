package docmodel

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// Stringify renders v in the embedding data text form well enough to be
// directly printable and comparable in tests, the same normalizer
// shape as a debug-printer built against a small set of scalar/
// container kinds, here against docmodel.Value instead of
// *big.Rat/uuid.UUID.
func Stringify(v Value) string {
	var b strings.Builder
	stringify(&b, v)
	return b.String()
}

func stringify(b *strings.Builder, v Value) {
	if name, ok := Named(v); ok {
		b.WriteByte('\'')
		b.WriteString(Stringify(name))
		b.WriteString("':")
	}
	switch t := Unwrap(v).(type) {
	case MissingValue:
		b.WriteString("missing")
	case NullValue:
		b.WriteString("null.")
		b.WriteString(strings.ToLower(t.Declared.String()))
	case BoolValue:
		b.WriteString(strconv.FormatBool(bool(t)))
	case IntValue:
		b.WriteString(t.V.String())
	case FloatValue:
		b.WriteString(strconv.FormatFloat(float64(t), 'g', -1, 64))
	case DecimalValue:
		b.WriteString(t.V.String())
	case TimestampValue:
		b.WriteString(t.V.String())
	case SymbolValue:
		b.WriteString(string(t))
	case StringValue:
		b.WriteByte('"')
		b.WriteString(strings.ReplaceAll(string(t), `"`, `\"`))
		b.WriteByte('"')
	case ClobValue:
		fmt.Fprintf(b, "{{clob:%x}}", t.V)
	case BlobValue:
		fmt.Fprintf(b, "{{%x}}", t.V)
	case *EagerSequence:
		open, close := bracketsFor(t.Container)
		b.WriteString(open)
		for i, item := range t.Items {
			if i > 0 {
				b.WriteString(", ")
			}
			stringify(b, item)
		}
		b.WriteString(close)
	case *SequenceExprValue:
		mat := t.Materialize()
		stringify(b, mat)
	case *Struct:
		b.WriteByte('{')
		for i, f := range t.Fields() {
			if i > 0 {
				b.WriteString(", ")
			}
			b.WriteString(f.Name)
			b.WriteString(": ")
			stringify(b, f.Value)
		}
		b.WriteByte('}')
	default:
		fmt.Fprintf(b, "%v", t)
	}
}

func bracketsFor(t Type) (string, string) {
	switch t {
	case ListType:
		return "[", "]"
	case SexpType:
		return "(", ")"
	default:
		return "<<", ">>"
	}
}

// ParseText parses a single document-model value from a restricted
// textual grammar covering the scalar and container literal forms the
// lexer's backtick ION_LITERAL path needs: null[.type], true/false,
// integers, decimals, double-quoted strings, bare symbols, [list],
// (sexp) and {struct: fields}. It is intentionally not a full Ion text
// parser — that grammar belongs to the external adapter — just enough
// to make embedded literals round-trip for this core's own tests.
func ParseText(src string) (Value, error) {
	p := &textParser{s: strings.TrimSpace(src)}
	v, err := p.parseValue()
	if err != nil {
		return nil, err
	}
	p.skipWS()
	if p.pos != len(p.s) {
		return nil, fmt.Errorf("trailing input at %d in %q", p.pos, src)
	}
	return v, nil
}

type textParser struct {
	s   string
	pos int
}

func (p *textParser) skipWS() {
	for p.pos < len(p.s) && (p.s[p.pos] == ' ' || p.s[p.pos] == '\t' || p.s[p.pos] == '\n' || p.s[p.pos] == '\r') {
		p.pos++
	}
}

func (p *textParser) peek() byte {
	if p.pos >= len(p.s) {
		return 0
	}
	return p.s[p.pos]
}

func (p *textParser) parseValue() (Value, error) {
	p.skipWS()
	switch c := p.peek(); {
	case c == '"':
		return p.parseString()
	case c == '[':
		return p.parseSeq('[', ']', ListType)
	case c == '(':
		return p.parseSeq('(', ')', SexpType)
	case c == '{':
		return p.parseStruct()
	case c == '-' || (c >= '0' && c <= '9'):
		return p.parseNumber()
	default:
		return p.parseSymbolLike()
	}
}

func (p *textParser) parseString() (Value, error) {
	p.pos++ // consume opening quote
	start := p.pos
	var sb strings.Builder
	for p.pos < len(p.s) {
		c := p.s[p.pos]
		if c == '"' {
			p.pos++
			return StringValue(sb.String()), nil
		}
		if c == '\\' && p.pos+1 < len(p.s) {
			sb.WriteByte(p.s[p.pos+1])
			p.pos += 2
			continue
		}
		sb.WriteByte(c)
		p.pos++
	}
	return nil, fmt.Errorf("unterminated string starting at %d", start)
}

func (p *textParser) parseSeq(open, close byte, container Type) (Value, error) {
	p.pos++ // consume open
	var items []Value
	for {
		p.skipWS()
		if p.peek() == close {
			p.pos++
			break
		}
		if len(items) > 0 {
			if p.peek() != ',' {
				return nil, fmt.Errorf("expected ',' at %d", p.pos)
			}
			p.pos++
		}
		p.skipWS()
		if p.peek() == close {
			p.pos++
			break
		}
		v, err := p.parseValue()
		if err != nil {
			return nil, err
		}
		items = append(items, v)
	}
	switch container {
	case ListType:
		return NewList(items), nil
	default:
		return NewSexp(items), nil
	}
}

func (p *textParser) parseStruct() (Value, error) {
	p.pos++ // consume '{'
	var fields []Field
	for {
		p.skipWS()
		if p.peek() == '}' {
			p.pos++
			break
		}
		if len(fields) > 0 {
			if p.peek() != ',' {
				return nil, fmt.Errorf("expected ',' at %d", p.pos)
			}
			p.pos++
			p.skipWS()
		}
		name, err := p.parseFieldName()
		if err != nil {
			return nil, err
		}
		p.skipWS()
		if p.peek() != ':' {
			return nil, fmt.Errorf("expected ':' at %d", p.pos)
		}
		p.pos++
		v, err := p.parseValue()
		if err != nil {
			return nil, err
		}
		fields = append(fields, Field{Name: name, Value: v})
	}
	return NewStruct(fields), nil
}

func (p *textParser) parseFieldName() (string, error) {
	if p.peek() == '"' {
		v, err := p.parseString()
		if err != nil {
			return "", err
		}
		return string(v.(StringValue)), nil
	}
	start := p.pos
	for p.pos < len(p.s) && p.s[p.pos] != ':' && p.s[p.pos] != ' ' {
		p.pos++
	}
	return p.s[start:p.pos], nil
}

func (p *textParser) parseNumber() (Value, error) {
	start := p.pos
	isDecimal := false
	if p.peek() == '-' {
		p.pos++
	}
	for p.pos < len(p.s) && p.s[p.pos] >= '0' && p.s[p.pos] <= '9' {
		p.pos++
	}
	if p.pos < len(p.s) && p.s[p.pos] == '.' {
		isDecimal = true
		p.pos++
		for p.pos < len(p.s) && p.s[p.pos] >= '0' && p.s[p.pos] <= '9' {
			p.pos++
		}
	}
	if p.pos < len(p.s) && (p.s[p.pos] == 'e' || p.s[p.pos] == 'E') {
		isDecimal = true
		p.pos++
		if p.pos < len(p.s) && (p.s[p.pos] == '+' || p.s[p.pos] == '-') {
			p.pos++
		}
		for p.pos < len(p.s) && p.s[p.pos] >= '0' && p.s[p.pos] <= '9' {
			p.pos++
		}
	}
	text := p.s[start:p.pos]
	if isDecimal {
		d, err := decimal.NewFromString(text)
		if err != nil {
			return nil, fmt.Errorf("invalid decimal literal %q: %w", text, err)
		}
		return NewDecimal(d), nil
	}
	bi, ok := NewBigIntFromString(text)
	if !ok {
		return nil, fmt.Errorf("invalid integer literal %q", text)
	}
	return bi, nil
}

func (p *textParser) parseSymbolLike() (Value, error) {
	start := p.pos
	for p.pos < len(p.s) {
		c := p.s[p.pos]
		if c == ',' || c == '}' || c == ')' || c == ']' || c == ' ' || c == '\t' || c == '\n' || c == '\r' || c == ':' {
			break
		}
		p.pos++
	}
	text := p.s[start:p.pos]
	switch text {
	case "true":
		return BoolValue(true), nil
	case "false":
		return BoolValue(false), nil
	case "missing":
		return Missing, nil
	case "null":
		return NewNull(NullType), nil
	}
	if strings.HasPrefix(text, "null.") {
		return NewNull(typeFromName(strings.TrimPrefix(text, "null."))), nil
	}
	if text == "" {
		return nil, fmt.Errorf("expected a value at %d", p.pos)
	}
	return SymbolValue(text), nil
}

func typeFromName(name string) Type {
	switch strings.ToLower(name) {
	case "bool":
		return BoolType
	case "int":
		return IntType
	case "float":
		return FloatType
	case "decimal":
		return DecimalType
	case "timestamp":
		return TimestampType
	case "symbol":
		return SymbolType
	case "string":
		return StringType
	case "clob":
		return ClobType
	case "blob":
		return BlobType
	case "list":
		return ListType
	case "sexp":
		return SexpType
	case "struct":
		return StructType
	default:
		return NullType
	}
}
