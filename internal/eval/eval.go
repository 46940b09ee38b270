package eval

import (
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/gopartiql/partiqlcore/internal/docmodel"
)

// Evaluator walks one compiled AST against a root environment. Its own
// state is limited to the adapter seam, its Options and a logging
// identity — all
// evaluation state lives in the *Environment chain, not on the
// evaluator itself, so a single Evaluator is reused unchanged across
// every node visited for one Eval call.
type Evaluator struct {
	adapter   docmodel.Adapter
	sessionID uuid.UUID
	log       *logrus.Entry
	opts      *Options
}

// NewEvaluator builds an Evaluator for a single evaluation session,
// tagged with a fresh session id for log correlation. opts may be nil.
func NewEvaluator(adapter docmodel.Adapter, opts *Options) *Evaluator {
	id := uuid.New()
	return &Evaluator{
		adapter:   adapter,
		sessionID: id,
		log:       logrus.NewEntry(opts.logger()).WithField("session", id.String()),
		opts:      opts,
	}
}

// eval recursively walks a `(op arg ...)` AST node against env,
// applying the evaluation rules for each operator it recognizes.
func (ev *Evaluator) eval(ast docmodel.Value, env *Environment) (docmodel.Value, error) {
	o, ok := op(ast)
	if !ok {
		// A bare, non-sexp value reached eval directly — only happens for
		// AST fragments built internally (e.g. a `lit` node's embedded
		// literal payload). Treat it as already-evaluated.
		return ast, nil
	}

	switch o {
	case "lit":
		return argAt(ast, 0), nil

	case "id":
		name, _ := symbolText(argAt(ast, 0))
		v, found := env.Lookup(name)
		if !found {
			return nil, errBindingNotFound(name)
		}
		return v, nil

	case "@":
		name, _ := symbolText(argAt(ast, 0))
		v, found := env.LookupLocal(name)
		if !found {
			return nil, errBindingNotFound(name)
		}
		return v, nil

	case "path":
		return ev.evalPath(ast, env)
	case "path_wildcard":
		return ev.evalPathWildcard(ast, env)

	case "neg":
		v, err := ev.eval(argAt(ast, 0), env)
		if err != nil {
			return nil, err
		}
		if v.Type() == docmodel.MissingType {
			return docmodel.Missing, nil
		}
		if v.Type() == docmodel.NullType {
			return docmodel.NewNull(docmodel.NullType), nil
		}
		return evalNeg(v)

	case "+", "-", "*", "/", "%":
		left, right, err := ev.evalBinaryOperands(ast, env)
		if err != nil {
			return nil, err
		}
		if propagated, done := propagateNullMissing(left, right, docmodel.NullType); done {
			return propagated, nil
		}
		return evalArith(o, left, right)

	case "=", "<>", "<", ">", "<=", ">=":
		left, right, err := ev.evalBinaryOperands(ast, env)
		if err != nil {
			return nil, err
		}
		if propagated, done := propagateNullMissing(left, right, docmodel.BoolType); done {
			return propagated, nil
		}
		return evalCompareOp(o, left, right)

	case "||":
		left, right, err := ev.evalBinaryOperands(ast, env)
		if err != nil {
			return nil, err
		}
		if propagated, done := propagateNullMissing(left, right, docmodel.StringType); done {
			return propagated, nil
		}
		if !isTextual(left) || !isTextual(right) {
			return nil, errInvalidArguments("|| requires text operands")
		}
		return docmodel.StringValue(docmodel.Text(left) + docmodel.Text(right)), nil

	case "and":
		return ev.evalAnd(argAt(ast, 0), argAt(ast, 1), env)
	case "or":
		return ev.evalOr(argAt(ast, 0), argAt(ast, 1), env)
	case "not":
		v, err := ev.eval(argAt(ast, 0), env)
		if err != nil {
			return nil, err
		}
		return evalNot(v)

	case "between":
		v, err := ev.eval(argAt(ast, 0), env)
		if err != nil {
			return nil, err
		}
		lo, err := ev.eval(argAt(ast, 1), env)
		if err != nil {
			return nil, err
		}
		hi, err := ev.eval(argAt(ast, 2), env)
		if err != nil {
			return nil, err
		}
		ge, err := compareTriple(">=", v, lo)
		if err != nil {
			return nil, err
		}
		le, err := compareTriple("<=", v, hi)
		if err != nil {
			return nil, err
		}
		return combineAnd(ge, le), nil

	case "like":
		return ev.evalLikeNode(ast, env)

	case "in":
		return ev.evalIn(ast, env)

	case "is":
		return ev.evalIs(ast, env)

	case "cast":
		v, err := ev.eval(argAt(ast, 0), env)
		if err != nil {
			return nil, err
		}
		typeNode := argAt(ast, 1)
		targetName, _ := symbolText(argAt(typeNode, 0))
		return evalCast(v, targetName, args(typeNode)[1:])

	case "case":
		return ev.evalCase(ast, env)

	case "substring":
		return ev.evalSubstring(ast, env)

	case "trim":
		return ev.evalTrim(ast, env)

	case "call":
		return ev.evalCall(ast, env)

	case "values":
		return ev.evalValues(ast, env)

	case "select":
		return ev.evalSelect(ast, env)
	}

	return nil, errInvalidArguments("cannot evaluate AST node " + o)
}

func (ev *Evaluator) evalBinaryOperands(ast docmodel.Value, env *Environment) (docmodel.Value, docmodel.Value, error) {
	left, err := ev.eval(argAt(ast, 0), env)
	if err != nil {
		return nil, nil, err
	}
	right, err := ev.eval(argAt(ast, 1), env)
	if err != nil {
		return nil, nil, err
	}
	return left, right, nil
}

// compareTriple evaluates a comparison with MISSING/NULL propagation, the
// shared building block BETWEEN's desugaring into two comparisons needs.
func compareTriple(cmpOp string, a, b docmodel.Value) (docmodel.Value, error) {
	if propagated, done := propagateNullMissing(a, b, docmodel.BoolType); done {
		return propagated, nil
	}
	return evalCompareOp(cmpOp, a, b)
}

func evalNot(v docmodel.Value) (docmodel.Value, error) {
	if isUnknown(v) {
		return docmodel.NewNull(docmodel.BoolType), nil
	}
	b, ok := v.(docmodel.BoolValue)
	if !ok {
		return nil, errInvalidArguments("NOT requires a boolean operand")
	}
	return docmodel.BoolValue(!bool(b)), nil
}

// evalAnd/evalOr implement SQL three-valued logic: FALSE
// dominates AND regardless of the other operand's unknown-ness, TRUE
// dominates OR the same way; otherwise an unknown operand makes the
// whole expression unknown.
func (ev *Evaluator) evalAnd(leftAst, rightAst docmodel.Value, env *Environment) (docmodel.Value, error) {
	left, err := ev.eval(leftAst, env)
	if err != nil {
		return nil, err
	}
	if isFalseBool(left) {
		return docmodel.BoolValue(false), nil
	}
	right, err := ev.eval(rightAst, env)
	if err != nil {
		return nil, err
	}
	if isFalseBool(right) {
		return docmodel.BoolValue(false), nil
	}
	if isUnknown(left) || isUnknown(right) {
		return docmodel.NewNull(docmodel.BoolType), nil
	}
	if isTrueBool(left) && isTrueBool(right) {
		return docmodel.BoolValue(true), nil
	}
	return nil, errInvalidArguments("AND requires boolean operands")
}

func (ev *Evaluator) evalOr(leftAst, rightAst docmodel.Value, env *Environment) (docmodel.Value, error) {
	left, err := ev.eval(leftAst, env)
	if err != nil {
		return nil, err
	}
	if isTrueBool(left) {
		return docmodel.BoolValue(true), nil
	}
	right, err := ev.eval(rightAst, env)
	if err != nil {
		return nil, err
	}
	if isTrueBool(right) {
		return docmodel.BoolValue(true), nil
	}
	if isUnknown(left) || isUnknown(right) {
		return docmodel.NewNull(docmodel.BoolType), nil
	}
	if isFalseBool(left) && isFalseBool(right) {
		return docmodel.BoolValue(false), nil
	}
	return nil, errInvalidArguments("OR requires boolean operands")
}

func (ev *Evaluator) evalPath(ast docmodel.Value, env *Environment) (docmodel.Value, error) {
	base, err := ev.eval(argAt(ast, 0), env)
	if err != nil {
		return nil, err
	}
	if isNullOrMissing(base) {
		return docmodel.Missing, nil
	}
	idxVal, err := ev.eval(argAt(ast, 1), env)
	if err != nil {
		return nil, err
	}
	switch bt := docmodel.Unwrap(base).(type) {
	case docmodel.StructVal:
		var name string
		switch t := idxVal.(type) {
		case docmodel.StringValue:
			name = string(t)
		case docmodel.SymbolValue:
			name = string(t)
		default:
			return docmodel.Missing, nil
		}
		if fv, found := bt.FieldByName(name); found {
			return fv, nil
		}
		return docmodel.Missing, nil
	case docmodel.Sequence:
		items := docmodel.Drain(bt)
		i, ok := asIndex(idxVal)
		if !ok || i < 0 || i >= len(items) {
			return docmodel.Missing, nil
		}
		return items[i], nil
	}
	return docmodel.Missing, nil
}

func asIndex(v docmodel.Value) (int, bool) {
	iv, ok := v.(docmodel.IntValue)
	if !ok || !fitsInt64(iv.V) {
		return 0, false
	}
	return int(iv.V.Int64()), true
}

func (ev *Evaluator) evalPathWildcard(ast docmodel.Value, env *Environment) (docmodel.Value, error) {
	base, err := ev.eval(argAt(ast, 0), env)
	if err != nil {
		return nil, err
	}
	if isNullOrMissing(base) {
		return docmodel.NewBag(nil), nil
	}
	switch bt := docmodel.Unwrap(base).(type) {
	case docmodel.StructVal:
		fields := bt.Fields()
		items := make([]docmodel.Value, len(fields))
		for i, f := range fields {
			items[i] = f.Value
		}
		return docmodel.NewBag(items), nil
	case docmodel.Sequence:
		return docmodel.NewBag(docmodel.Drain(bt)), nil
	}
	return docmodel.NewBag(nil), nil
}

func (ev *Evaluator) evalLikeNode(ast docmodel.Value, env *Environment) (docmodel.Value, error) {
	v, err := ev.eval(argAt(ast, 0), env)
	if err != nil {
		return nil, err
	}
	p, err := ev.eval(argAt(ast, 1), env)
	if err != nil {
		return nil, err
	}
	if propagated, done := propagateNullMissing(v, p, docmodel.BoolType); done {
		return propagated, nil
	}
	if !isTextual(v) || !isTextual(p) {
		return nil, errInvalidArguments("LIKE operands must be text")
	}
	var escRune rune
	hasEsc := false
	if len(args(ast)) == 3 {
		e, err := ev.eval(argAt(ast, 2), env)
		if err != nil {
			return nil, err
		}
		if isNullOrMissing(e) {
			return e, nil
		}
		if !isTextual(e) {
			return nil, errInvalidArguments("ESCAPE must be text")
		}
		er := []rune(docmodel.Text(e))
		if len(er) != 1 {
			return nil, errInvalidArguments("ESCAPE must be exactly one character")
		}
		escRune = er[0]
		hasEsc = true
	}
	matched, err := evalLikeWithPolicy(docmodel.Text(v), docmodel.Text(p), escRune, hasEsc, ev.opts, ev.log)
	if err != nil {
		return nil, err
	}
	return docmodel.BoolValue(matched), nil
}

// evalIn implements `x IN (e1, e2, ...)`: MISSING left
// propagates; otherwise an UNKNOWN left or any UNKNOWN/no-match item
// yields UNKNOWN rather than FALSE, matching NULL IN (...)'s standard
// SQL three-valued behavior.
func (ev *Evaluator) evalIn(ast docmodel.Value, env *Environment) (docmodel.Value, error) {
	left, err := ev.eval(argAt(ast, 0), env)
	if err != nil {
		return nil, err
	}
	if left.Type() == docmodel.MissingType {
		return docmodel.Missing, nil
	}
	leftNull := left.Type() == docmodel.NullType
	anyUnknown := leftNull
	for _, itemAst := range args(ast)[1:] {
		item, err := ev.eval(itemAst, env)
		if err != nil {
			return nil, err
		}
		if isUnknown(item) {
			anyUnknown = true
			continue
		}
		if !leftNull && sqlEquals(left, item) {
			return docmodel.BoolValue(true), nil
		}
	}
	if anyUnknown {
		return docmodel.NewNull(docmodel.BoolType), nil
	}
	return docmodel.BoolValue(false), nil
}

// evalIs implements `x IS [NOT] <type>`: a type discriminator
// test, never three-valued, since an IS check must be able to identify
// NULL/MISSING themselves.
func (ev *Evaluator) evalIs(ast docmodel.Value, env *Environment) (docmodel.Value, error) {
	v, err := ev.eval(argAt(ast, 0), env)
	if err != nil {
		return nil, err
	}
	typeNode := argAt(ast, 1)
	name, _ := symbolText(argAt(typeNode, 0))
	if name == "any" {
		return docmodel.BoolValue(true), nil
	}
	target, ok := typeNameToType(name)
	if !ok {
		return nil, errInvalidArguments("unknown type " + name)
	}
	return docmodel.BoolValue(docmodel.Unwrap(v).Type() == target), nil
}

func (ev *Evaluator) evalCase(ast docmodel.Value, env *Environment) (docmodel.Value, error) {
	all := args(ast)
	subjectAst := all[0]
	whens := all[1 : len(all)-1]
	elseNode := all[len(all)-1]

	hasSubject := true
	if o, ok := op(subjectAst); ok && o == "no_subject" {
		hasSubject = false
	}
	var subject docmodel.Value
	if hasSubject {
		v, err := ev.eval(subjectAst, env)
		if err != nil {
			return nil, err
		}
		subject = v
	}

	for _, w := range whens {
		condAst, resultAst := argAt(w, 0), argAt(w, 1)
		var matched bool
		if hasSubject {
			condVal, err := ev.eval(condAst, env)
			if err != nil {
				return nil, err
			}
			matched = !isNullOrMissing(subject) && !isNullOrMissing(condVal) && sqlEquals(subject, condVal)
		} else {
			condVal, err := ev.eval(condAst, env)
			if err != nil {
				return nil, err
			}
			matched = isTrueBool(condVal)
		}
		if matched {
			return ev.eval(resultAst, env)
		}
	}

	if o, ok := op(elseNode); ok && o == "else" {
		return ev.eval(argAt(elseNode, 0), env)
	}
	return docmodel.NewNull(docmodel.NullType), nil
}

func (ev *Evaluator) evalSubstring(ast docmodel.Value, env *Environment) (docmodel.Value, error) {
	v, err := ev.eval(argAt(ast, 0), env)
	if err != nil {
		return nil, err
	}
	if isNullOrMissing(v) {
		return v, nil
	}
	if !isTextual(v) {
		return nil, errInvalidArguments("SUBSTRING requires a text source")
	}
	text := []rune(docmodel.Text(v))

	fromVal, err := ev.eval(argAt(ast, 1), env)
	if err != nil {
		return nil, err
	}
	if isNullOrMissing(fromVal) {
		return fromVal, nil
	}
	from := toIntClamped(fromVal)

	rest := args(ast)
	hasLen := len(rest) == 3
	length := 0
	if hasLen {
		lenVal, err := ev.eval(rest[2], env)
		if err != nil {
			return nil, err
		}
		if isNullOrMissing(lenVal) {
			return lenVal, nil
		}
		length = toIntClamped(lenVal)
	}
	return docmodel.StringValue(substringRunes(text, from, length, hasLen)), nil
}

func (ev *Evaluator) evalTrim(ast docmodel.Value, env *Environment) (docmodel.Value, error) {
	spec, _ := symbolText(argAt(ast, 0))
	rest := args(ast)

	srcAst := rest[1]
	src, err := ev.eval(srcAst, env)
	if err != nil {
		return nil, err
	}
	if isNullOrMissing(src) {
		return src, nil
	}
	if !isTextual(src) {
		return nil, errInvalidArguments("TRIM requires a text source")
	}
	text := docmodel.Text(src)

	cutset := " "
	if len(rest) == 3 {
		charsVal, err := ev.eval(rest[2], env)
		if err != nil {
			return nil, err
		}
		if isNullOrMissing(charsVal) {
			return charsVal, nil
		}
		cutset = docmodel.Text(charsVal)
	}

	switch spec {
	case "leading":
		text = trimLeft(text, cutset)
	case "trailing":
		text = trimRight(text, cutset)
	default:
		text = trimRight(trimLeft(text, cutset), cutset)
	}
	return docmodel.StringValue(text), nil
}

func (ev *Evaluator) evalCall(ast docmodel.Value, env *Environment) (docmodel.Value, error) {
	name, _ := symbolText(argAt(ast, 0))
	if aggregateNames[lowerName(name)] {
		return nil, errInvalidArguments(name + "() is an aggregate function and is only valid in a SELECT projection or HAVING clause")
	}
	rest := args(ast)[1:]
	argVals := make([]docmodel.Value, len(rest))
	for i, a := range rest {
		v, err := ev.eval(a, env)
		if err != nil {
			return nil, err
		}
		argVals[i] = v
	}
	return callBuiltin(name, argVals)
}

func (ev *Evaluator) evalValues(ast docmodel.Value, env *Environment) (docmodel.Value, error) {
	rows := args(ast)
	items := make([]docmodel.Value, len(rows))
	for i, rowAst := range rows {
		rowItems := args(rowAst)
		fields := make([]docmodel.Field, len(rowItems))
		for j, e := range rowItems {
			v, err := ev.eval(e, env)
			if err != nil {
				return nil, err
			}
			fields[j] = docmodel.Field{Name: syntheticName(j), Value: v}
		}
		items[i] = docmodel.NewStruct(fields)
	}
	return docmodel.NewBag(items), nil
}
