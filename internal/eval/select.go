package eval

import (
	"sort"
	"strings"

	"github.com/gopartiql/partiqlcore/internal/docmodel"
	"github.com/gopartiql/partiqlcore/internal/equality"
)

// rangeItem is one element a FROM-clause source produces, paired with
// the value its AT alias binds to.
type rangeItem struct {
	value docmodel.Value
	pos   docmodel.Value
}

// rangeOver iterates v the way a FROM-clause source does: over a
// sequence's elements (AT binds the zero-based position), or — under
// UNPIVOT — over a struct's fields (AT binds the field-name symbol).
// NULL/MISSING sources and a non-UNPIVOT scalar both degrade to
// tolerant cases: the former contributes zero rows, the latter is
// treated as its own single-element sequence.
func rangeOver(v docmodel.Value, unpivot bool) ([]rangeItem, error) {
	uv := docmodel.Unwrap(v)
	if unpivot {
		sv, ok := uv.(docmodel.StructVal)
		if !ok {
			if isNullOrMissing(v) {
				return nil, nil
			}
			// A non-struct source still unpivots: it degrades to a
			// singleton bag whose one element carries the synthetic
			// field name "_1", the same name a struct field called
			// "_1" would produce.
			name := docmodel.SymbolValue("_1")
			return []rangeItem{{value: docmodel.WithName(v, name), pos: name}}, nil
		}
		fields := sv.Fields()
		items := make([]rangeItem, len(fields))
		for i, f := range fields {
			name := docmodel.SymbolValue(f.Name)
			items[i] = rangeItem{value: docmodel.WithName(f.Value, name), pos: name}
		}
		return items, nil
	}
	if isNullOrMissing(v) {
		return nil, nil
	}
	if seq, ok := uv.(docmodel.Sequence); ok {
		drained := docmodel.Drain(seq)
		items := make([]rangeItem, len(drained))
		for i, d := range drained {
			items[i] = rangeItem{value: d, pos: docmodel.NewInt(int64(i))}
		}
		return items, nil
	}
	return []rangeItem{{value: v, pos: docmodel.NewInt(0)}}, nil
}

// defaultFromAlias is the binding name a FROM item gets when it carries
// no explicit AS alias: the identifier text for a plain column/variable
// reference, else a positional synthetic name.
func defaultFromAlias(srcAst docmodel.Value, idx int) string {
	if o, ok := op(srcAst); ok && o == "id" {
		if name, ok2 := symbolText(argAt(srcAst, 0)); ok2 {
			return name
		}
	}
	return syntheticName(idx)
}

// evalSelect evaluates a `(select distinct? projection from where
// group_by having order_by limit)` node against outerEnv,
// returning a BAG of STRUCT values.
func (ev *Evaluator) evalSelect(ast docmodel.Value, outerEnv *Environment) (docmodel.Value, error) {
	all := args(ast)
	distinct := bool(all[0].(docmodel.BoolValue))
	projection := all[1]
	fromNode := all[2]
	whereNode := all[3]
	groupByNode := all[4]
	havingNode := all[5]
	orderByNode := all[6]
	limitNode := all[7]

	rowEnvs, err := ev.evalFrom(fromNode, outerEnv)
	if err != nil {
		return nil, err
	}

	filtered := rowEnvs
	if len(args(whereNode)) == 1 {
		filtered = nil
		for _, e := range rowEnvs {
			wv, err := ev.eval(argAt(whereNode, 0), e)
			if err != nil {
				return nil, err
			}
			if isTrueBool(wv) {
				filtered = append(filtered, e)
			}
		}
	}

	groupByKeys := args(groupByNode)
	isGrouped := len(groupByKeys) > 0 || containsAggregateCall(projection) || containsAggregateCall(havingNode)

	type projected struct {
		value    docmodel.Value
		sortKeys []docmodel.Value
	}
	var results []projected

	orderKeyNodes := args(orderByNode)

	if isGrouped {
		groups, order := groupRows(groupByKeys, filtered, ev, outerEnv)
		for _, gid := range order {
			g := groups[gid]
			groupEnv := NewEnvironment(outerEnv)
			for i, keyAst := range groupByKeys {
				groupEnv.Bind(defaultFromAlias(keyAst, i), g.keyValues[i])
			}
			if len(args(havingNode)) == 1 {
				hv, err := ev.evalProjExpr(argAt(havingNode, 0), groupEnv, g.rows)
				if err != nil {
					return nil, err
				}
				if !isTrueBool(hv) {
					continue
				}
			}
			val, err := ev.buildProjection(projection, groupEnv, g.rows, outerEnv)
			if err != nil {
				return nil, err
			}
			keys := make([]docmodel.Value, len(orderKeyNodes))
			for i, k := range orderKeyNodes {
				kv, err := ev.evalProjExpr(argAt(k, 0), groupEnv, g.rows)
				if err != nil {
					return nil, err
				}
				keys[i] = kv
			}
			results = append(results, projected{value: val, sortKeys: keys})
		}
	} else {
		for _, e := range filtered {
			val, err := ev.buildProjection(projection, e, nil, outerEnv)
			if err != nil {
				return nil, err
			}
			keys := make([]docmodel.Value, len(orderKeyNodes))
			for i, k := range orderKeyNodes {
				kv, err := ev.eval(argAt(k, 0), e)
				if err != nil {
					return nil, err
				}
				keys[i] = kv
			}
			results = append(results, projected{value: val, sortKeys: keys})
		}
	}

	if distinct {
		var deduped []projected
		for _, r := range results {
			dup := false
			for _, d := range deduped {
				if equality.PTSEqual(r.value, d.value) {
					dup = true
					break
				}
			}
			if !dup {
				deduped = append(deduped, r)
			}
		}
		results = deduped
	}

	if len(orderKeyNodes) > 0 {
		dirs := make([]string, len(orderKeyNodes))
		for i, k := range orderKeyNodes {
			dirs[i], _ = symbolText(argAt(k, 1))
		}
		sort.SliceStable(results, func(i, j int) bool {
			for k := range dirs {
				cmp := compareForOrder(results[i].sortKeys[k], results[j].sortKeys[k])
				if cmp == 0 {
					continue
				}
				if dirs[k] == "desc" {
					return cmp > 0
				}
				return cmp < 0
			}
			return false
		})
	}

	limitArgs := args(limitNode)
	if len(limitArgs) >= 1 {
		offset := 0
		if len(limitArgs) == 2 {
			ov, err := ev.eval(limitArgs[1], outerEnv)
			if err != nil {
				return nil, err
			}
			offset = toIntClamped(ov)
		}
		lv, err := ev.eval(limitArgs[0], outerEnv)
		if err != nil {
			return nil, err
		}
		limit := toIntClamped(lv)
		if offset < 0 {
			offset = 0
		}
		if offset > len(results) {
			offset = len(results)
		}
		results = results[offset:]
		if limit < len(results) {
			results = results[:limit]
		}
	}

	items := make([]docmodel.Value, len(results))
	for i, r := range results {
		items[i] = r.value
	}
	return docmodel.NewBag(items), nil
}

func compareForOrder(a, b docmodel.Value) int {
	if cmp, ok := compareValues(a, b); ok {
		return cmp
	}
	return 0
}

// evalFrom cross-joins every comma-separated FROM item, nested-loop
// style: each item's source is evaluated against every environment the
// prior items produced, and contributes one child environment per
// element it ranges over.
func (ev *Evaluator) evalFrom(fromNode docmodel.Value, outerEnv *Environment) ([]*Environment, error) {
	envs := []*Environment{outerEnv}
	for idx, fi := range args(fromNode) {
		fiArgs := args(fi)
		unpivot := bool(fiArgs[0].(docmodel.BoolValue))
		srcAst := fiArgs[1]
		asAlias, hasAs := aliasOf(fiArgs[2])
		atAlias, hasAt := aliasOf(fiArgs[3])

		var next []*Environment
		for _, e := range envs {
			srcVal, err := ev.eval(srcAst, e)
			if err != nil {
				return nil, err
			}
			items, err := rangeOver(srcVal, unpivot)
			if err != nil {
				return nil, err
			}
			name := asAlias
			if !hasAs {
				name = defaultFromAlias(srcAst, idx)
			}
			for _, item := range items {
				child := NewEnvironment(e)
				child.Bind(name, item.value)
				if hasAt {
					child.Bind(atAlias, item.pos)
				}
				next = append(next, child)
			}
		}
		envs = next
	}
	return envs[:], nil
}

type groupBucket struct {
	keyValues []docmodel.Value
	rows      []*Environment
}

// groupRows partitions filtered rows by GROUP BY key tuple, matching
// tuples by the docmodel.Stringify text of their values (keys that
// render to the same text share a group even where PTS equality would
// tell them apart), or into a single implicit group (possibly of zero rows) when an
// aggregate appears without an explicit GROUP BY — the standard SQL rule
// that COUNT(*) over an empty table still returns one row reading 0.
func groupRows(groupByKeys []docmodel.Value, filtered []*Environment, ev *Evaluator, outerEnv *Environment) (map[string]*groupBucket, []string) {
	groups := map[string]*groupBucket{}
	var order []string
	if len(groupByKeys) == 0 {
		rows := filtered
		if rows == nil {
			// A non-nil, zero-length slice here (vs. nil) is what tells
			// evalProjExpr this is a grouped query whose single implicit
			// group has no rows, as opposed to an ungrouped query — the
			// two must not collapse to the same nil check, or COUNT(*)
			// over zero matching rows would never get aggregate
			// substitution applied to it.
			rows = []*Environment{}
		}
		groups["_all"] = &groupBucket{rows: rows}
		order = []string{"_all"}
		return groups, order
	}
	for _, e := range filtered {
		keys := make([]docmodel.Value, len(groupByKeys))
		for i, k := range groupByKeys {
			kv, err := ev.eval(k, e)
			if err != nil {
				kv = docmodel.Missing
			}
			keys[i] = kv
		}
		id := groupKeyID(keys)
		g, ok := groups[id]
		if !ok {
			g = &groupBucket{keyValues: keys}
			groups[id] = g
			order = append(order, id)
		}
		g.rows = append(g.rows, e)
	}
	return groups, order
}

func groupKeyID(keys []docmodel.Value) string {
	var b strings.Builder
	for i, k := range keys {
		if i > 0 {
			b.WriteByte('\x1f')
		}
		b.WriteString(docmodel.Stringify(k))
	}
	return b.String()
}

// containsAggregateCall reports whether any node in v's AST subtree is a
// `call` to an aggregate function name, walking the s-expression tree
// generically regardless of what operator contains it.
func containsAggregateCall(v docmodel.Value) bool {
	o, ok := op(v)
	if !ok {
		return false
	}
	if o == "call" {
		if name, ok2 := symbolText(argAt(v, 0)); ok2 && aggregateNames[lowerName(name)] {
			return true
		}
	}
	for _, a := range args(v) {
		if containsAggregateCall(a) {
			return true
		}
	}
	return false
}

// evalAggregate reduces one aggregate `call` node over a group's rows.
func (ev *Evaluator) evalAggregate(ast docmodel.Value, rows []*Environment) (docmodel.Value, error) {
	name, _ := symbolText(argAt(ast, 0))
	lname := lowerName(name)
	rest := args(ast)[1:]

	if lname == "count" && len(rest) == 1 {
		if s, ok := symbolText(rest[0]); ok && s == "*" {
			return docmodel.NewInt(int64(len(rows))), nil
		}
	}
	if len(rest) != 1 {
		return nil, errInvalidArguments(name + "() takes exactly one argument")
	}
	argAst := rest[0]

	var vals []docmodel.Value
	for _, r := range rows {
		v, err := ev.eval(argAst, r)
		if err != nil {
			return nil, err
		}
		if isNullOrMissing(v) {
			continue
		}
		vals = append(vals, v)
	}

	switch lname {
	case "count":
		return docmodel.NewInt(int64(len(vals))), nil
	case "sum":
		if len(vals) == 0 {
			return docmodel.NewNull(docmodel.NullType), nil
		}
		acc := vals[0]
		for _, v := range vals[1:] {
			var err error
			acc, err = evalArith("+", acc, v)
			if err != nil {
				return nil, err
			}
		}
		return acc, nil
	case "avg":
		if len(vals) == 0 {
			return docmodel.NewNull(docmodel.NullType), nil
		}
		acc := vals[0]
		for _, v := range vals[1:] {
			var err error
			acc, err = evalArith("+", acc, v)
			if err != nil {
				return nil, err
			}
		}
		return evalArith("/", acc, docmodel.NewInt(int64(len(vals))))
	case "min":
		if len(vals) == 0 {
			return docmodel.NewNull(docmodel.NullType), nil
		}
		best := vals[0]
		for _, v := range vals[1:] {
			if cmp, ok := compareValues(v, best); ok && cmp < 0 {
				best = v
			}
		}
		return best, nil
	case "max":
		if len(vals) == 0 {
			return docmodel.NewNull(docmodel.NullType), nil
		}
		best := vals[0]
		for _, v := range vals[1:] {
			if cmp, ok := compareValues(v, best); ok && cmp > 0 {
				best = v
			}
		}
		return best, nil
	}
	return nil, errInvalidArguments("unknown aggregate " + name)
}

// evalProjExpr evaluates ast for a projection/HAVING/ORDER BY position.
// When groupRows is non-nil (a grouped query), every aggregate `call`
// subtree is first replaced by its reduced value — an AST-as-data
// rewrite rather than a second evaluator dispatch, since the rest of the
// expression (arithmetic around the aggregate, say) is still plain
// scalar evaluation once the aggregate leaves are resolved.
func (ev *Evaluator) evalProjExpr(ast docmodel.Value, env *Environment, groupRows []*Environment) (docmodel.Value, error) {
	if groupRows == nil {
		return ev.eval(ast, env)
	}
	rewritten, err := ev.substituteAggregates(ast, groupRows)
	if err != nil {
		return nil, err
	}
	return ev.eval(rewritten, env)
}

func (ev *Evaluator) substituteAggregates(ast docmodel.Value, groupRows []*Environment) (docmodel.Value, error) {
	o, ok := op(ast)
	if !ok {
		return ast, nil
	}
	if o == "call" {
		if name, ok2 := symbolText(argAt(ast, 0)); ok2 && aggregateNames[lowerName(name)] {
			v, err := ev.evalAggregate(ast, groupRows)
			if err != nil {
				return nil, err
			}
			return mkLit(v), nil
		}
	}
	childArgs := args(ast)
	newArgs := make([]docmodel.Value, len(childArgs))
	for i, c := range childArgs {
		nc, err := ev.substituteAggregates(c, groupRows)
		if err != nil {
			return nil, err
		}
		newArgs[i] = nc
	}
	return mkNode(o, newArgs...), nil
}

// buildProjection evaluates a `select_star`/`select_list` node into one
// output STRUCT. stopAt bounds the SELECT * field walk to bindings the
// FROM clause itself introduced, so SELECT * never pulls in the outer
// query's own environment.
func (ev *Evaluator) buildProjection(projection docmodel.Value, env *Environment, groupRows []*Environment, stopAt *Environment) (docmodel.Value, error) {
	o, _ := op(projection)
	switch o {
	case "select_star":
		return buildStarStruct(env, stopAt), nil
	case "select_list":
		items := args(projection)
		b := &docmodel.StructBuilder{}
		for i, it := range items {
			itemArgs := args(it)
			exprAst := itemArgs[0]
			v, err := ev.evalProjExpr(exprAst, env, groupRows)
			if err != nil {
				return nil, err
			}
			name := ""
			if len(itemArgs) == 2 {
				name, _ = symbolText(itemArgs[1])
			} else if named, ok := docmodel.Named(v); ok {
				name = docmodel.Text(named)
			} else if eo, ok := op(exprAst); ok && eo == "id" {
				name, _ = symbolText(argAt(exprAst, 0))
			} else if eo, ok := op(exprAst); ok && eo == "path" {
				if lit, ok2 := litStringOf(argAt(exprAst, 1)); ok2 {
					name = lit
				}
			}
			if name == "" {
				name = syntheticName(i)
			}
			b.Add(name, v)
		}
		return b.Build(), nil
	}
	return nil, errInvalidArguments("unsupported projection form")
}

// litStringOf reads the STRING payload of a `(lit "...")` node, the
// shape a `.fieldName` path step's index argument always takes.
func litStringOf(v docmodel.Value) (string, bool) {
	if o, ok := op(v); !ok || o != "lit" {
		return "", false
	}
	sv, ok := argAt(v, 0).(docmodel.StringValue)
	if !ok {
		return "", false
	}
	return string(sv), true
}

// collectBindings walks env's parent chain up to (but excluding) stopAt,
// returning every bound name in FROM-declaration (outer-to-inner) order.
func collectBindings(env *Environment, stopAt *Environment) []string {
	var chain []*Environment
	for e := env; e != nil && e != stopAt; e = e.parent {
		chain = append(chain, e)
	}
	var names []string
	for i := len(chain) - 1; i >= 0; i-- {
		names = append(names, chain[i].order...)
	}
	return names
}

// buildStarStruct reconstructs SELECT *'s result: each FROM binding that
// holds a struct splices its fields directly into the result (the
// ordinary "row" case), anything else is carried under its own binding
// name (e.g. UNPIVOT over scalars, or a FROM source that isn't itself a
// struct).
func buildStarStruct(env *Environment, stopAt *Environment) *docmodel.Struct {
	b := &docmodel.StructBuilder{}
	for _, name := range collectBindings(env, stopAt) {
		v, ok := env.Lookup(name)
		if !ok {
			continue
		}
		if sv, ok := docmodel.Unwrap(v).(docmodel.StructVal); ok {
			for _, f := range sv.Fields() {
				b.Add(f.Name, f.Value)
			}
		} else {
			b.Add(name, v)
		}
	}
	return b.Build()
}
