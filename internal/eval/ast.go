package eval

import "github.com/gopartiql/partiqlcore/internal/docmodel"

// op and args are the evaluator's own accessors over the `(op arg ...)`
// s-expression AST, duplicated from internal/parser's identical helpers
// rather than imported: the evaluator's contract is to walk an AST-as-
// data value, not to depend on the component that happens
// to produce it.
func op(v docmodel.Value) (string, bool) {
	seq, ok := docmodel.Unwrap(v).(*docmodel.EagerSequence)
	if !ok || seq.Container != docmodel.SexpType || len(seq.Items) == 0 {
		return "", false
	}
	sym, ok := seq.Items[0].(docmodel.SymbolValue)
	if !ok {
		return "", false
	}
	return string(sym), true
}

func args(v docmodel.Value) []docmodel.Value {
	seq, ok := docmodel.Unwrap(v).(*docmodel.EagerSequence)
	if !ok || seq.Container != docmodel.SexpType || len(seq.Items) == 0 {
		return nil
	}
	return seq.Items[1:]
}

func argAt(v docmodel.Value, i int) docmodel.Value {
	a := args(v)
	if i < 0 || i >= len(a) {
		return nil
	}
	return a[i]
}

// symbolText reads a SymbolValue argument as plain text.
func symbolText(v docmodel.Value) (string, bool) {
	sym, ok := v.(docmodel.SymbolValue)
	if !ok {
		return "", false
	}
	return string(sym), true
}

// aliasOf reads the identifier out of an `as`/`at` marker node, which
// carries zero args when absent and one SYMBOL arg when present.
func aliasOf(marker docmodel.Value) (string, bool) {
	a := args(marker)
	if len(a) == 0 {
		return "", false
	}
	return symbolText(a[0])
}

// mkNode/mkLit build `(op arg ...)` s-expression nodes, used by the
// aggregate-substitution rewrite in select.go to splice a reduced
// aggregate value back into an AST as a literal.
func mkNode(op string, a ...docmodel.Value) docmodel.Value {
	items := make([]docmodel.Value, 0, len(a)+1)
	items = append(items, docmodel.SymbolValue(op))
	items = append(items, a...)
	return docmodel.NewSexp(items)
}

func mkLit(v docmodel.Value) docmodel.Value { return mkNode("lit", v) }
