package parser

import (
	"github.com/gopartiql/partiqlcore/internal/docmodel"
	"github.com/gopartiql/partiqlcore/internal/lexer"
)

// parseStatement is the grammar root: a SELECT query, a bare VALUES row
// constructor, or any scalar expression (SQL++ allows a bare expression
// as a top-level query, the form most conformance-suite scalar cases
// use).
func (p *Parser) parseStatement() (docmodel.Value, error) {
	if p.atKeyword("select") {
		return p.parseSelect()
	}
	if p.atKeyword("values") {
		return p.parseValues()
	}
	return p.parseExpr()
}

// parseFromItem parses one comma-separated FROM-clause source:
// `[UNPIVOT] expr [AS alias] [AT position_alias]`.
func (p *Parser) parseFromItem() (docmodel.Value, error) {
	unpivot := false
	if p.atKeyword("unpivot") {
		p.advance()
		unpivot = true
	}
	src, err := p.parseExpr()
	if err != nil {
		return nil, err
	}

	asNode := node("as")
	if p.atKeyword("as") {
		p.advance()
		name, ok := p.identLike()
		if !ok {
			return nil, p.errExpectedIdentForAlias()
		}
		asNode = node("as", docmodel.SymbolValue(name))
	}

	atNode := node("at")
	if p.atKeyword("at") {
		p.advance()
		name, ok := p.identLike()
		if !ok {
			return nil, p.errExpectedIdentForAt()
		}
		atNode = node("at", docmodel.SymbolValue(name))
	}

	return node("from_item", docmodel.BoolValue(unpivot), src, asNode, atNode), nil
}

// parseSelect parses a full SELECT query. The returned node is always
// `(select distinct? projection from where group_by having order_by
// limit)` with a fixed arity of 8 arguments — absent clauses are filled
// with an empty marker node of the matching name so the evaluator can
// destructure by position without nil checks.
func (p *Parser) parseSelect() (docmodel.Value, error) {
	p.advance() // 'select'

	distinct := false
	if p.atKeyword("distinct") {
		p.advance()
		distinct = true
	}

	projection, err := p.parseProjection()
	if err != nil {
		return nil, err
	}

	if err := p.expectKeyword("from"); err != nil {
		return nil, p.errSelectMissingFrom()
	}
	var fromItems []docmodel.Value
	for {
		fi, err := p.parseFromItem()
		if err != nil {
			return nil, err
		}
		fromItems = append(fromItems, fi)
		if p.atType(lexer.Comma) {
			p.advance()
			continue
		}
		break
	}
	fromNode := node("from", fromItems...)

	whereNode := node("where")
	if p.atKeyword("where") {
		p.advance()
		e, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		whereNode = node("where", e)
	}

	groupByNode := node("group_by")
	if p.atKeyword("group") {
		p.advance()
		if err := p.expectKeyword("by"); err != nil {
			return nil, err
		}
		var keys []docmodel.Value
		for {
			if p.cur().Type == lexer.LITERAL {
				return nil, p.errUnsupportedLiteralsGroupBy()
			}
			e, err := p.parseExpr()
			if err != nil {
				return nil, err
			}
			keys = append(keys, e)
			if p.atType(lexer.Comma) {
				p.advance()
				continue
			}
			break
		}
		groupByNode = node("group_by", keys...)
	}

	havingNode := node("having")
	if p.atKeyword("having") {
		p.advance()
		e, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		havingNode = node("having", e)
	}

	orderByNode := node("order_by")
	if p.atKeyword("order") {
		p.advance()
		if err := p.expectKeyword("by"); err != nil {
			return nil, err
		}
		var keys []docmodel.Value
		for {
			e, err := p.parseExpr()
			if err != nil {
				return nil, err
			}
			dir := "asc"
			if p.atKeyword("asc") {
				p.advance()
			} else if p.atKeyword("desc") {
				p.advance()
				dir = "desc"
			}
			keys = append(keys, node("order_key", e, docmodel.SymbolValue(dir)))
			if p.atType(lexer.Comma) {
				p.advance()
				continue
			}
			break
		}
		orderByNode = node("order_by", keys...)
	}

	limitNode := node("limit")
	if p.atKeyword("limit") {
		p.advance()
		e, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		limitNode = node("limit", e)
		if p.atKeyword("offset") {
			p.advance()
			o, err := p.parseExpr()
			if err != nil {
				return nil, err
			}
			limitNode = node("limit", e, o)
		}
	}

	return node("select",
		docmodel.BoolValue(distinct),
		projection,
		fromNode,
		whereNode,
		groupByNode,
		havingNode,
		orderByNode,
		limitNode,
	), nil
}

// parseProjection parses `*` or a comma-separated list of `expr [AS
// alias]` projection items.
func (p *Parser) parseProjection() (docmodel.Value, error) {
	if p.atType(lexer.Star) {
		p.advance()
		return node("select_star"), nil
	}
	var items []docmodel.Value
	for {
		e, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		if p.atKeyword("as") {
			p.advance()
			name, ok := p.identLike()
			if !ok {
				return nil, p.errExpectedIdentForAlias()
			}
			items = append(items, node("item", e, docmodel.SymbolValue(name)))
		} else {
			items = append(items, node("item", e))
		}
		if p.atType(lexer.Comma) {
			p.advance()
			continue
		}
		break
	}
	return node("select_list", items...), nil
}
