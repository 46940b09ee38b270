package eval

import (
	"github.com/gopartiql/partiqlcore/internal/docmodel"
	"github.com/gopartiql/partiqlcore/internal/parser"
)

// Executable is a compiled query: parsing happens once in
// Compile, and the resulting AST can be evaluated against any number of
// root environments. "An evaluator session is single-use"
// refers to the Evaluator Eval constructs internally for that one call,
// not to the Executable itself — the AST it wraps carries no mutable
// state, so re-evaluating it against a fresh root environment is safe
// and is exactly how a conformance harness runs the same query against
// multiple fixtures.
type Executable struct {
	ast     docmodel.Value
	adapter docmodel.Adapter
	opts    *Options
}

// Compile lexes and parses source against adapter, producing an
// executable from source text. opts may be nil to accept every
// default (see Options).
func Compile(source string, adapter docmodel.Adapter, opts *Options) (*Executable, error) {
	if adapter == nil {
		adapter = docmodel.DefaultAdapter{}
	}
	log := opts.logger()
	ast, err := parser.Parse(source, adapter)
	if err != nil {
		return nil, err
	}
	log.WithField("op", opString(ast)).Debug("compiled query AST")
	return &Executable{ast: ast, adapter: adapter, opts: opts}, nil
}

// Eval evaluates the compiled query against root, a root environment
// of bound names, and returns a value. Each call runs in its own
// Evaluator session.
func (x *Executable) Eval(root map[string]docmodel.Value) (docmodel.Value, error) {
	env := NewRootEnvironment(root)
	ev := NewEvaluator(x.adapter, x.opts)
	ev.log.WithField("bindings", len(root)).Debug("evaluating compiled query")
	return ev.eval(x.ast, env)
}

// opString returns ast's top-level operator symbol, or "?" for a bare
// literal AST — used only for a Debug log line, never for dispatch.
func opString(ast docmodel.Value) string {
	if o, ok := op(ast); ok {
		return o
	}
	return "?"
}
