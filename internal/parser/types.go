package parser

import (
	"github.com/gopartiql/partiqlcore/internal/docmodel"
	"github.com/gopartiql/partiqlcore/internal/lexer"
)

// typeArity holds [min,max] allowed type-parameter counts for each CAST
// target. VARCHAR takes exactly one length; CHAR/CHARACTER take an
// optional length; DECIMAL/NUMERIC take up to precision and scale;
// everything else takes none.
type arity struct{ min, max int }

var typeArity = map[string]arity{
	"bool":      {0, 0},
	"boolean":   {0, 0},
	"int":       {0, 0},
	"integer":   {0, 0},
	"float":     {0, 0},
	"double":    {0, 0},
	"decimal":   {0, 2},
	"numeric":   {0, 2},
	"varchar":   {1, 1},
	"char":      {0, 1},
	"character": {0, 1},
	"string":    {0, 0},
	"symbol":    {0, 0},
	"timestamp": {0, 0},
	"clob":      {0, 0},
	"blob":      {0, 0},
	"list":      {0, 0},
	"sexp":      {0, 0},
	"bag":       {0, 0},
	"struct":    {0, 0},
	"any":       {0, 0},
	"null":      {0, 0},
	"missing":   {0, 0},
}

// parseTypeName parses a CAST/IS target type: a bare type keyword, or
// one followed by a parenthesized, comma-separated list of non-negative
// integer parameters whose count must fall within that type's arity.
func (p *Parser) parseTypeName() (docmodel.Value, error) {
	t := p.cur()
	if t.Type != lexer.KEYWORD {
		return nil, p.errExpectedTypeName()
	}
	name := t.Text()
	info, ok := typeArity[name]
	if !ok {
		return nil, p.errExpectedTypeName()
	}
	p.advance()

	var params []docmodel.Value
	if p.atType(lexer.LeftParen) {
		p.advance()
		for {
			pt := p.cur()
			if pt.Type != lexer.LITERAL {
				return nil, p.errInvalidTypeParam()
			}
			iv, ok := pt.Value.(docmodel.IntValue)
			if !ok || iv.V.Sign() < 0 {
				return nil, p.errInvalidTypeParam()
			}
			params = append(params, pt.Value)
			p.advance()
			if p.atType(lexer.Comma) {
				p.advance()
				continue
			}
			break
		}
		if _, err := p.expectType(lexer.RightParen); err != nil {
			return nil, err
		}
	}

	if len(params) < info.min || len(params) > info.max {
		return nil, p.errCastArity(info.min, info.max)
	}

	items := []docmodel.Value{docmodel.SymbolValue(name)}
	items = append(items, params...)
	return node("type", items...), nil
}

// parseCast parses `CAST(expr AS type[(params)])`.
func (p *Parser) parseCast() (docmodel.Value, error) {
	p.advance() // 'cast'
	if _, err := p.expectType(lexer.LeftParen); err != nil {
		return nil, p.errExpectedLeftParenAfterCast()
	}
	expr, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	if err := p.expectKeyword("as"); err != nil {
		return nil, err
	}
	typ, err := p.parseTypeName()
	if err != nil {
		return nil, err
	}
	if _, err := p.expectType(lexer.RightParen); err != nil {
		return nil, err
	}
	return node("cast", expr, typ), nil
}

// parseCase parses both the simple (`CASE expr WHEN val THEN ...`) and
// searched (`CASE WHEN cond THEN ...`) forms. The subject slot always
// carries a node, using a `no_subject` marker node when absent, so the
// evaluator never has to special-case a nil AST child.
func (p *Parser) parseCase() (docmodel.Value, error) {
	p.advance() // 'case'
	subject := node("no_subject")
	if !p.atKeyword("when") {
		e, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		subject = e
	}

	var whens []docmodel.Value
	for p.atKeyword("when") {
		p.advance()
		cond, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		if err := p.expectKeyword("then"); err != nil {
			return nil, err
		}
		result, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		whens = append(whens, node("when", cond, result))
	}
	if len(whens) == 0 {
		return nil, p.errExpectedWhenClause()
	}

	elseNode := node("no_else")
	if p.atKeyword("else") {
		p.advance()
		e, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		elseNode = node("else", e)
	}
	if err := p.expectKeyword("end"); err != nil {
		return nil, err
	}

	items := append([]docmodel.Value{subject}, whens...)
	items = append(items, elseNode)
	return node("case", items...), nil
}

// parseSubstring parses both `SUBSTRING(e FROM n [FOR m])` and
// `SUBSTRING(e, n[, m])`.
func (p *Parser) parseSubstring() (docmodel.Value, error) {
	p.advance() // 'substring'
	if _, err := p.expectType(lexer.LeftParen); err != nil {
		return nil, p.errExpectedLeftParenBuiltin()
	}
	e, err := p.parseExpr()
	if err != nil {
		return nil, err
	}

	var from, forLen docmodel.Value
	hasFor := false
	switch {
	case p.atKeyword("from"):
		p.advance()
		from, err = p.parseExpr()
		if err != nil {
			return nil, err
		}
		if p.atKeyword("for") {
			p.advance()
			forLen, err = p.parseExpr()
			if err != nil {
				return nil, err
			}
			hasFor = true
		}
	case p.atType(lexer.Comma):
		p.advance()
		from, err = p.parseExpr()
		if err != nil {
			return nil, err
		}
		if p.atType(lexer.Comma) {
			p.advance()
			forLen, err = p.parseExpr()
			if err != nil {
				return nil, err
			}
			hasFor = true
		}
	default:
		return nil, p.errExpectedArgumentDelimiter()
	}

	if _, err := p.expectType(lexer.RightParen); err != nil {
		return nil, p.errExpectedRightParenBuiltin()
	}
	items := []docmodel.Value{e, from}
	if hasFor {
		items = append(items, forLen)
	}
	return node("substring", items...), nil
}

// parseTrim parses `TRIM([[LEADING|TRAILING|BOTH] [chars] FROM] s)`. The
// presence of a FROM keyword is what distinguishes the two-argument form
// (explicit trim characters) from the bare single-expression form.
func (p *Parser) parseTrim() (docmodel.Value, error) {
	p.advance() // 'trim'
	if _, err := p.expectType(lexer.LeftParen); err != nil {
		return nil, p.errExpectedLeftParenBuiltin()
	}
	spec := "both"
	switch {
	case p.atKeyword("leading"):
		p.advance()
		spec = "leading"
	case p.atKeyword("trailing"):
		p.advance()
		spec = "trailing"
	case p.atKeyword("both"):
		p.advance()
		spec = "both"
	}

	var first docmodel.Value
	if !p.atKeyword("from") {
		e, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		first = e
	}
	var src, chars docmodel.Value
	hasChars := false
	if p.atKeyword("from") {
		p.advance()
		if first != nil {
			chars = first
			hasChars = true
		}
		e, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		src = e
	} else {
		src = first
	}

	if _, err := p.expectType(lexer.RightParen); err != nil {
		return nil, p.errExpectedRightParenBuiltin()
	}
	items := []docmodel.Value{docmodel.SymbolValue(spec), src}
	if hasChars {
		items = append(items, chars)
	}
	return node("trim", items...), nil
}

// parseValues parses `VALUES (e, e, ...), (e, e, ...), ...`.
func (p *Parser) parseValues() (docmodel.Value, error) {
	p.advance() // 'values'
	var rows []docmodel.Value
	for {
		if _, err := p.expectType(lexer.LeftParen); err != nil {
			return nil, p.errExpectedLeftParenValueConstructor()
		}
		var items []docmodel.Value
		for {
			e, err := p.parseExpr()
			if err != nil {
				return nil, err
			}
			items = append(items, e)
			if p.atType(lexer.Comma) {
				p.advance()
				continue
			}
			break
		}
		if _, err := p.expectType(lexer.RightParen); err != nil {
			return nil, err
		}
		rows = append(rows, node("row", items...))
		if p.atType(lexer.Comma) {
			p.advance()
			continue
		}
		break
	}
	return node("values", rows...), nil
}
