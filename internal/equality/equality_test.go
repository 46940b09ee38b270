package equality

import (
	"testing"

	"github.com/shopspring/decimal"

	"github.com/gopartiql/partiqlcore/internal/docmodel"
)

func dec(s string) docmodel.Value { return docmodel.NewDecimal(decimal.RequireFromString(s)) }

func bag(items ...docmodel.Value) docmodel.Value { return docmodel.NewBag(items) }

// TestPTSEqualScenarios checks four scenarios central to a
// conformance-test oracle: decimal equality ignores scale,
// differently-declared nulls are never equal, and BAG equality is by
// multiset membership rather than positional order.
func TestPTSEqualScenarios(t *testing.T) {
	cases := []struct {
		name string
		a, b docmodel.Value
		want bool
	}{
		{"decimal scale ignored", dec("1.0"), dec("1.00"), true},
		{"differently typed nulls", docmodel.NewNull(docmodel.IntType), docmodel.NewNull(docmodel.StringType), false},
		{"bag same multiset different order", bag(docmodel.NewInt(1), docmodel.NewInt(1), docmodel.NewInt(2)), bag(docmodel.NewInt(2), docmodel.NewInt(1), docmodel.NewInt(1)), true},
		{"bag different multiplicity", bag(docmodel.NewInt(1), docmodel.NewInt(1), docmodel.NewInt(2)), bag(docmodel.NewInt(1), docmodel.NewInt(2), docmodel.NewInt(2)), false},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got := PTSEqual(c.a, c.b)
			if got != c.want {
				t.Fatalf("PTSEqual(%v, %v) = %v, want %v", c.a, c.b, got, c.want)
			}
		})
	}
}

func TestPTSEqualIsReflexiveSymmetricTransitive(t *testing.T) {
	vals := []docmodel.Value{
		docmodel.NewInt(42),
		dec("3.1400"),
		docmodel.StringValue("hi"),
		docmodel.NewNull(docmodel.BoolType),
		docmodel.Missing,
		bag(docmodel.NewInt(1), docmodel.NewInt(2)),
	}
	for _, v := range vals {
		if !PTSEqual(v, v) {
			t.Fatalf("PTSEqual(%v, %v) should be reflexively true", v, v)
		}
	}
	a, b, c := dec("1.0"), dec("1.00"), dec("1.000")
	if !PTSEqual(a, b) || !PTSEqual(b, c) {
		t.Fatalf("expected a==b==c by scale-ignoring decimal equality")
	}
	if !PTSEqual(a, c) {
		t.Fatalf("expected transitivity: a==c")
	}
	if !PTSEqual(b, a) {
		t.Fatalf("expected symmetry: b==a")
	}
}

func TestPTSEqualMissingOnlyEqualsMissing(t *testing.T) {
	if !PTSEqual(docmodel.Missing, docmodel.Missing) {
		t.Fatalf("MISSING should equal MISSING")
	}
	if PTSEqual(docmodel.Missing, docmodel.NewNull(docmodel.NullType)) {
		t.Fatalf("MISSING should not equal NULL")
	}
}

func TestPTSEqualStructIgnoresFieldOrder(t *testing.T) {
	a := docmodel.NewStruct([]docmodel.Field{{Name: "x", Value: docmodel.NewInt(1)}, {Name: "y", Value: docmodel.NewInt(2)}})
	b := docmodel.NewStruct([]docmodel.Field{{Name: "y", Value: docmodel.NewInt(2)}, {Name: "x", Value: docmodel.NewInt(1)}})
	if !PTSEqual(a, b) {
		t.Fatalf("expected struct equality to ignore field declaration order")
	}
}
