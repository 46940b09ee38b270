package lexer

import (
	"testing"

	"github.com/shopspring/decimal"

	"github.com/gopartiql/partiqlcore/internal/docmodel"
)

// TestNumberForms checks every literal shape the number grammar
// recognizes in one pass: a lone minus (an operator, since nothing
// digit-shaped follows it), a signed integer with no space, and the
// decimal-promoting forms (dot, trailing/leading-dot exponent).
func TestNumberForms(t *testing.T) {
	toks, err := New("- 1 -1 1.0 1e1 .5 1.5e-2", docmodel.DefaultAdapter{}).Tokenize()
	if err != nil {
		t.Fatalf("Tokenize: %v", err)
	}

	want := []struct {
		typ TokenType
		val docmodel.Value
	}{
		{OPERATOR, docmodel.SymbolValue("-")},
		{LITERAL, docmodel.NewInt(1)},
		{LITERAL, docmodel.NewInt(-1)},
		{LITERAL, docmodel.NewDecimal(decimal.RequireFromString("1.0"))},
		{LITERAL, docmodel.NewDecimal(decimal.RequireFromString("10"))},
		{LITERAL, docmodel.NewDecimal(decimal.RequireFromString("0.5"))},
		{LITERAL, docmodel.NewDecimal(decimal.RequireFromString("0.015"))},
		{EOF, nil},
	}

	if len(toks) != len(want) {
		t.Fatalf("got %d tokens, want %d: %+v", len(toks), len(want), toks)
	}
	for i, w := range want {
		if toks[i].Type != w.typ {
			t.Fatalf("token %d: type = %v, want %v", i, toks[i].Type, w.typ)
		}
		if w.typ == EOF {
			continue
		}
		switch wv := w.val.(type) {
		case docmodel.IntValue:
			gv, ok := toks[i].Value.(docmodel.IntValue)
			if !ok || gv.V.Cmp(wv.V) != 0 {
				t.Fatalf("token %d: value = %v, want %v", i, toks[i].Value, w.val)
			}
		case docmodel.DecimalValue:
			gv, ok := toks[i].Value.(docmodel.DecimalValue)
			if !ok || !gv.V.Equal(wv.V) {
				t.Fatalf("token %d: value = %v, want %v", i, toks[i].Value, w.val)
			}
		case docmodel.SymbolValue:
			if toks[i].Text() != string(wv) {
				t.Fatalf("token %d: text = %q, want %q", i, toks[i].Text(), string(wv))
			}
		}
	}
}

func TestTokenTextRoundTrips(t *testing.T) {
	toks, err := New("select foo from bar", docmodel.DefaultAdapter{}).Tokenize()
	if err != nil {
		t.Fatalf("Tokenize: %v", err)
	}
	var got []string
	for _, tok := range toks {
		if tok.Type == EOF {
			continue
		}
		got = append(got, tok.Text())
	}
	want := []string{"select", "foo", "from", "bar"}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("token %d: got %q, want %q", i, got[i], want[i])
		}
	}
}

func TestInvalidCharacterReportsPosition(t *testing.T) {
	_, err := New("select # from t", docmodel.DefaultAdapter{}).Tokenize()
	if err == nil {
		t.Fatalf("expected an error for an unrecognized character")
	}
	lexErr, ok := err.(*Error)
	if !ok {
		t.Fatalf("got error of type %T, want *Error", err)
	}
	if lexErr.Pos.Line != 1 || lexErr.Pos.Column != 8 {
		t.Fatalf("got position %+v, want line 1 col 8", lexErr.Pos)
	}
}
