package eval

import (
	"testing"

	"github.com/gopartiql/partiqlcore/internal/docmodel"
	"github.com/gopartiql/partiqlcore/internal/equality"
)

func animalsFixture() docmodel.Value {
	names := []string{"Kumo", "Mochi", "Lilikoi"}
	items := make([]docmodel.Value, len(names))
	for i, n := range names {
		items[i] = docmodel.NewStruct([]docmodel.Field{{Name: "name", Value: docmodel.StringValue(n)}})
	}
	return docmodel.NewBag(items)
}

func runSelect(t *testing.T, source string, root map[string]docmodel.Value) []docmodel.Value {
	t.Helper()
	x, err := Compile(source, nil, nil)
	if err != nil {
		t.Fatalf("Compile(%q): %v", source, err)
	}
	v, err := x.Eval(root)
	if err != nil {
		t.Fatalf("Eval(%q): %v", source, err)
	}
	bag, ok := docmodel.Unwrap(v).(docmodel.Sequence)
	if !ok {
		t.Fatalf("expected a BAG result, got %T", v)
	}
	return docmodel.Drain(bag)
}

// TestLikeWithEscapeMatchesLiteralPercent exercises the ESCAPE
// scenario: with '[' declared as the escape character, "1%[%" means
// "literal '1', then any run, then a literal '%'", which "100%" matches.
// Since the WHERE clause doesn't reference a row column, it evaluates to
// the same boolean for every row — all three animals survive.
func TestLikeWithEscapeMatchesLiteralPercent(t *testing.T) {
	rows := runSelect(t, `SELECT * FROM animals a WHERE '100%' LIKE '1%[%' ESCAPE '['`, map[string]docmodel.Value{
		"animals": animalsFixture(),
	})
	if len(rows) != 3 {
		t.Fatalf("got %d rows, want 3: %v", len(rows), rows)
	}
}

func TestLikeSingleUnderscoreDoesNotMatchDoubleLetter(t *testing.T) {
	rows := runSelect(t, `SELECT * FROM animals a WHERE 'Kuumo' LIKE 'K_mo'`, map[string]docmodel.Value{
		"animals": animalsFixture(),
	})
	if len(rows) != 0 {
		t.Fatalf("got %d rows, want 0: %v", len(rows), rows)
	}
}

func TestSelectStarReconstructsRowFields(t *testing.T) {
	rows := runSelect(t, `SELECT * FROM animals a WHERE a.name = 'Mochi'`, map[string]docmodel.Value{
		"animals": animalsFixture(),
	})
	if len(rows) != 1 {
		t.Fatalf("got %d rows, want 1: %v", len(rows), rows)
	}
	want := docmodel.NewStruct([]docmodel.Field{{Name: "name", Value: docmodel.StringValue("Mochi")}})
	if !equality.PTSEqual(rows[0], want) {
		t.Fatalf("got %v, want %v", rows[0], want)
	}
}

func TestCountStarOverEmptyGroupStillYieldsOneRow(t *testing.T) {
	rows := runSelect(t, `SELECT COUNT(*) AS n FROM animals a WHERE a.name = 'nobody'`, map[string]docmodel.Value{
		"animals": animalsFixture(),
	})
	if len(rows) != 1 {
		t.Fatalf("got %d rows, want 1", len(rows))
	}
	n, ok := rows[0].(docmodel.StructVal).FieldByName("n")
	if !ok {
		t.Fatalf("expected a field named n")
	}
	iv, ok := n.(docmodel.IntValue)
	if !ok || iv.V.Int64() != 0 {
		t.Fatalf("got n = %v, want 0", n)
	}
}

func TestOrderByDescLimit(t *testing.T) {
	rows := runSelect(t, `SELECT a.name AS name FROM animals a ORDER BY a.name DESC LIMIT 1`, map[string]docmodel.Value{
		"animals": animalsFixture(),
	})
	if len(rows) != 1 {
		t.Fatalf("got %d rows, want 1", len(rows))
	}
	name, _ := rows[0].(docmodel.StructVal).FieldByName("name")
	if docmodel.Text(name) != "Mochi" {
		t.Fatalf("got %v, want Mochi (lexically greatest)", name)
	}
}

func TestUnpivotIteratesStructFields(t *testing.T) {
	row := docmodel.NewStruct([]docmodel.Field{
		{Name: "a", Value: docmodel.NewInt(1)},
		{Name: "b", Value: docmodel.NewInt(2)},
	})
	rows := runSelect(t, `SELECT k AS k, v AS v FROM UNPIVOT r AS v AT k`, map[string]docmodel.Value{
		"r": row,
	})
	if len(rows) != 2 {
		t.Fatalf("got %d rows, want 2: %v", len(rows), rows)
	}
	seen := map[string]int64{}
	for _, r := range rows {
		k, _ := r.(docmodel.StructVal).FieldByName("k")
		v, _ := r.(docmodel.StructVal).FieldByName("v")
		seen[docmodel.Text(k)] = docmodel.Unwrap(v).(docmodel.IntValue).V.Int64()
	}
	if seen["a"] != 1 || seen["b"] != 2 {
		t.Fatalf("got %v, want a:1 b:2", seen)
	}
}
