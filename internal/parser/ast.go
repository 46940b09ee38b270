// Package parser turns a lexer.Token stream into an AST expressed as a
// document-model value: `(op arg ...)` s-expressions,
// directly printable and comparable in conformance tests.
//
// What: precedence-climbing for expressions (a ladder of priority-level
// parse functions, the direct re-expression of "OR < AND < NOT <
// comparison < BETWEEN/LIKE/IN/IS < + - < * / % < unary < ||/path") and
// recursive descent for statement forms.
// How: a cursor over the full token slice with arbitrary lookahead
// (cur/peekAt + expectKeyword/expectType/expectOperatorWord helpers),
// generalized to emit s-expression
// AST values instead of typed Go AST structs.
// Why: an introspectable, serializable AST matters for test parity; an
// s-expression document-model value gets that for free, where a typed
// Go struct tree would need a hand-written serializer to match.
package parser

import (
	"github.com/gopartiql/partiqlcore/internal/docmodel"
)

// node builds the s-expression `(op arg ...)`.
func node(op string, args ...docmodel.Value) docmodel.Value {
	items := make([]docmodel.Value, 0, len(args)+1)
	items = append(items, docmodel.SymbolValue(op))
	items = append(items, args...)
	return docmodel.NewSexp(items)
}

// Op returns the operator symbol of an s-expression AST node.
func Op(v docmodel.Value) (string, bool) {
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

// Args returns the argument values of an s-expression AST node (the
// items after the operator symbol).
func Args(v docmodel.Value) []docmodel.Value {
	seq, ok := docmodel.Unwrap(v).(*docmodel.EagerSequence)
	if !ok || seq.Container != docmodel.SexpType || len(seq.Items) == 0 {
		return nil
	}
	return seq.Items[1:]
}

func lit(v docmodel.Value) docmodel.Value     { return node("lit", v) }
func litInt(i int64) docmodel.Value           { return lit(docmodel.NewInt(i)) }
func litStr(s string) docmodel.Value          { return lit(docmodel.StringValue(s)) }
func idNode(name string) docmodel.Value       { return node("id", docmodel.SymbolValue(name)) }
