package parser

import (
	"strings"

	"github.com/gopartiql/partiqlcore/internal/docmodel"
	"github.com/gopartiql/partiqlcore/internal/lexer"
)

// parseExpr is the top of the precedence ladder: OR < AND < NOT <
// comparison < BETWEEN/LIKE/IN/IS < + - < * / % < unary < ||/path.
// Each rung below binds tighter than the one above it, the
// direct re-expression of that ordering as nested parse functions
// rather than a numeric-priority table — simpler to keep correct by
// hand for a fixed, small operator set than a generic climber.
func (p *Parser) parseExpr() (docmodel.Value, error) { return p.parseOr() }

func (p *Parser) parseOr() (docmodel.Value, error) {
	left, err := p.parseAnd()
	if err != nil {
		return nil, err
	}
	for p.atOperatorWord("or") {
		p.advance()
		right, err := p.parseAnd()
		if err != nil {
			return nil, err
		}
		left = node("or", left, right)
	}
	return left, nil
}

func (p *Parser) parseAnd() (docmodel.Value, error) {
	left, err := p.parseNot()
	if err != nil {
		return nil, err
	}
	for p.atOperatorWord("and") {
		p.advance()
		right, err := p.parseNot()
		if err != nil {
			return nil, err
		}
		left = node("and", left, right)
	}
	return left, nil
}

func (p *Parser) parseNot() (docmodel.Value, error) {
	if p.atOperatorWord("not") {
		p.advance()
		operand, err := p.parseNot()
		if err != nil {
			return nil, err
		}
		return node("not", operand), nil
	}
	return p.parseComparison()
}

var comparisonOps = map[string]bool{"=": true, "<>": true, "<": true, ">": true, "<=": true, ">=": true}

func (p *Parser) parseComparison() (docmodel.Value, error) {
	left, err := p.parsePredicate()
	if err != nil {
		return nil, err
	}
	if p.cur().Type == lexer.OPERATOR && comparisonOps[p.cur().Text()] {
		op := p.advance().Text()
		right, err := p.parsePredicate()
		if err != nil {
			return nil, err
		}
		return node(op, left, right), nil
	}
	return left, nil
}

func (p *Parser) peekIsBetweenLikeIn() bool {
	n := p.peekAt(1)
	if n.Type != lexer.OPERATOR {
		return false
	}
	t := n.Text()
	return t == "between" || t == "like" || t == "in"
}

// parsePredicate applies at most one of BETWEEN/LIKE/IN/IS to an
// additive-level operand — these bind tighter than comparison, looser
// than + -.
func (p *Parser) parsePredicate() (docmodel.Value, error) {
	left, err := p.parseAdditive()
	if err != nil {
		return nil, err
	}
	negate := false
	if p.atOperatorWord("not") && p.peekIsBetweenLikeIn() {
		p.advance()
		negate = true
	}
	switch {
	case p.atOperatorWord("between"):
		p.advance()
		lo, err := p.parseAdditive()
		if err != nil {
			return nil, err
		}
		if err := p.expectOperatorWord("and"); err != nil {
			return nil, err
		}
		hi, err := p.parseAdditive()
		if err != nil {
			return nil, err
		}
		result := node("between", left, lo, hi)
		if negate {
			result = node("not", result)
		}
		return result, nil

	case p.atOperatorWord("like"):
		p.advance()
		pattern, err := p.parseAdditive()
		if err != nil {
			return nil, err
		}
		var result docmodel.Value
		if p.atKeyword("escape") {
			p.advance()
			esc, err := p.parseAdditive()
			if err != nil {
				return nil, err
			}
			result = node("like", left, pattern, esc)
		} else {
			result = node("like", left, pattern)
		}
		if negate {
			result = node("not", result)
		}
		return result, nil

	case p.atOperatorWord("in"):
		p.advance()
		if _, err := p.expectType(lexer.LeftParen); err != nil {
			return nil, err
		}
		items := []docmodel.Value{left}
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
		result := node("in", items...)
		if negate {
			result = node("not", result)
		}
		return result, nil

	case p.atOperatorWord("is"):
		p.advance()
		innerNegate := false
		if p.atOperatorWord("not") {
			p.advance()
			innerNegate = true
		}
		typ, err := p.parseTypeName()
		if err != nil {
			return nil, err
		}
		result := node("is", left, typ)
		if innerNegate {
			result = node("not", result)
		}
		return result, nil
	}
	if negate {
		// "NOT" was consumed speculatively expecting BETWEEN/LIKE/IN but
		// none followed; peekIsBetweenLikeIn already guards against this,
		// so this is unreachable in practice.
		return nil, p.errUnexpectedOperator()
	}
	return left, nil
}

func (p *Parser) parseAdditive() (docmodel.Value, error) {
	left, err := p.parseMultiplicative()
	if err != nil {
		return nil, err
	}
	for p.atOperator("+") || p.atOperator("-") {
		op := p.advance().Text()
		right, err := p.parseMultiplicative()
		if err != nil {
			return nil, err
		}
		left = node(op, left, right)
	}
	return left, nil
}

func (p *Parser) parseMultiplicative() (docmodel.Value, error) {
	left, err := p.parseUnary()
	if err != nil {
		return nil, err
	}
	for {
		switch {
		case p.atType(lexer.Star):
			p.advance()
			right, err := p.parseUnary()
			if err != nil {
				return nil, err
			}
			left = node("*", left, right)
		case p.atOperator("/") || p.atOperator("%"):
			op := p.advance().Text()
			right, err := p.parseUnary()
			if err != nil {
				return nil, err
			}
			left = node(op, left, right)
		default:
			return left, nil
		}
	}
}

func (p *Parser) parseUnary() (docmodel.Value, error) {
	if p.atOperator("-") {
		p.advance()
		operand, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		return node("neg", operand), nil
	}
	if p.atOperator("+") {
		p.advance()
		return p.parseUnary()
	}
	return p.parseConcatAndPath()
}

// parseConcatAndPath handles `||` and path suffixes (`.ident`, `[expr]`,
// `.*`, `[*]`) — the tightest-binding tier. Consecutive dots are invalid
// (PARSE_INVALID_PATH_COMPONENT).
func (p *Parser) parseConcatAndPath() (docmodel.Value, error) {
	left, err := p.parsePrimary()
	if err != nil {
		return nil, err
	}
	for {
		switch {
		case p.atOperator("||"):
			p.advance()
			right, err := p.parsePrimary()
			if err != nil {
				return nil, err
			}
			left = node("||", left, right)
		case p.atType(lexer.Dot):
			p.advance()
			if p.atType(lexer.Dot) {
				return nil, p.errInvalidPathComponent()
			}
			if p.atType(lexer.Star) {
				p.advance()
				left = node("path_wildcard", left)
				continue
			}
			name, ok := p.identLike()
			if !ok {
				return nil, p.errInvalidPathComponent()
			}
			left = node("path", left, litStr(name))
		case p.atType(lexer.LeftBracket):
			p.advance()
			if p.atType(lexer.Star) {
				p.advance()
				if _, err := p.expectType(lexer.RightBracket); err != nil {
					return nil, err
				}
				left = node("path_wildcard", left)
				continue
			}
			idx, err := p.parseExpr()
			if err != nil {
				return nil, err
			}
			if _, err := p.expectType(lexer.RightBracket); err != nil {
				return nil, err
			}
			left = node("path", left, idx)
		default:
			return left, nil
		}
	}
}

func (p *Parser) parsePrimary() (docmodel.Value, error) {
	t := p.cur()
	switch t.Type {
	case lexer.LITERAL, lexer.IonLiteral:
		p.advance()
		return lit(t.Value), nil
	case lexer.At:
		p.advance()
		name, ok := p.identLike()
		if !ok {
			return nil, p.errMissingIdentAfterAt()
		}
		return node("@", docmodel.SymbolValue(name)), nil
	case lexer.IDENTIFIER:
		p.advance()
		if p.atType(lexer.LeftParen) {
			return p.parseCall(t.Text())
		}
		return idNode(t.Text()), nil
	case lexer.LeftParen:
		p.advance()
		e, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		if _, err := p.expectType(lexer.RightParen); err != nil {
			return nil, err
		}
		return e, nil
	case lexer.KEYWORD:
		switch t.Text() {
		case "null":
			p.advance()
			return lit(docmodel.NewNull(docmodel.NullType)), nil
		case "missing":
			p.advance()
			return lit(docmodel.Missing), nil
		case "cast":
			return p.parseCast()
		case "case":
			return p.parseCase()
		case "substring":
			return p.parseSubstring()
		case "trim":
			return p.parseTrim()
		case "select":
			return p.parseSelect()
		case "values":
			return p.parseValues()
		}
		return nil, p.errUnexpectedKeyword()
	}
	return nil, p.errExpectedExpression()
}

func (p *Parser) parseCall(name string) (docmodel.Value, error) {
	p.advance() // consume '('
	isCountStar := strings.EqualFold(name, "count") && p.atType(lexer.Star)
	if isCountStar {
		p.advance()
		if _, err := p.expectType(lexer.RightParen); err != nil {
			return nil, err
		}
		return node("call", docmodel.SymbolValue(name), docmodel.SymbolValue("*")), nil
	}
	items := []docmodel.Value{docmodel.SymbolValue(name)}
	if !p.atType(lexer.RightParen) {
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
	}
	if _, err := p.expectType(lexer.RightParen); err != nil {
		return nil, err
	}
	return node("call", items...), nil
}
