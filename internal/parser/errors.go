package parser

import (
	"github.com/gopartiql/partiqlcore/internal/errs"
	"github.com/gopartiql/partiqlcore/internal/lexer"
)

func (p *Parser) baseProps(tok lexer.Token) map[errs.PropertyKey]any {
	return map[errs.PropertyKey]any{
		errs.LineNumber:   tok.Pos.Line,
		errs.ColumnNumber: tok.Pos.Column,
		errs.TokenType:    tok.Type.String(),
		errs.TokenValue:   tok.Value,
	}
}

func (p *Parser) errExpectedKeyword(keyword string) error {
	props := p.baseProps(p.cur())
	props[errs.Keyword] = keyword
	return errs.NewParserException(errs.ParseExpectedKeyword, "expected keyword "+keyword, props)
}

func (p *Parser) errUnexpectedToken() error {
	return errs.NewParserException(errs.ParseUnexpectedToken, "unexpected token", p.baseProps(p.cur()))
}

func (p *Parser) errUnexpectedKeyword() error {
	return errs.NewParserException(errs.ParseUnexpectedKeyword, "unexpected keyword", p.baseProps(p.cur()))
}

func (p *Parser) errExpectedTypeName() error {
	return errs.NewParserException(errs.ParseExpectedTypeName, "expected a type name", p.baseProps(p.cur()))
}

func (p *Parser) errMissingIdentAfterAt() error {
	return errs.NewParserException(errs.ParseMissingIdentAfterAt, "expected an identifier after '@'", p.baseProps(p.cur()))
}

func (p *Parser) errInvalidPathComponent() error {
	return errs.NewParserException(errs.ParseInvalidPathComponent, "invalid path component", p.baseProps(p.cur()))
}

func (p *Parser) errExpectedExpression() error {
	return errs.NewParserException(errs.ParseExpectedExpression, "expected an expression", p.baseProps(p.cur()))
}

func (p *Parser) errExpectedTokenType(want lexer.TokenType) error {
	props := p.baseProps(p.cur())
	props[errs.ExpectedTokenType] = want.String()
	return errs.NewParserException(errs.ParseExpectedTokenType, "expected "+want.String(), props)
}

func (p *Parser) errExpected2TokenTypes(a, b lexer.TokenType) error {
	props := p.baseProps(p.cur())
	props[errs.ExpectedTokenType1Of2] = a.String()
	props[errs.ExpectedTokenType2Of2] = b.String()
	return errs.NewParserException(errs.ParseExpected2TokenTypes, "expected "+a.String()+" or "+b.String(), props)
}

func (p *Parser) errExpectedLeftParenAfterCast() error {
	return errs.NewParserException(errs.ParseExpectedLeftParenAfterCast, "expected '(' after CAST", p.baseProps(p.cur()))
}

func (p *Parser) errExpectedLeftParenValueConstructor() error {
	return errs.NewParserException(errs.ParseExpectedLeftParenValueConstructor, "expected '(' to start a VALUES row", p.baseProps(p.cur()))
}

func (p *Parser) errUnexpectedTerm() error {
	return errs.NewParserException(errs.ParseUnexpectedTerm, "unexpected term", p.baseProps(p.cur()))
}

func (p *Parser) errSelectMissingFrom() error {
	return errs.NewParserException(errs.ParseSelectMissingFrom, "SELECT is missing a FROM clause", p.baseProps(p.cur()))
}

func (p *Parser) errUnsupportedLiteralsGroupBy() error {
	return errs.NewParserException(errs.ParseUnsupportedLiteralsGroupby, "GROUP BY keys must be expressions, not ordinal literals", p.baseProps(p.cur()))
}

func (p *Parser) errExpectedIdentForAlias() error {
	return errs.NewParserException(errs.ParseExpectedIdentForAlias, "expected an identifier for AS alias", p.baseProps(p.cur()))
}

func (p *Parser) errExpectedIdentForAt() error {
	return errs.NewParserException(errs.ParseExpectedIdentForAt, "expected an identifier for AT alias", p.baseProps(p.cur()))
}

func (p *Parser) errExpectedWhenClause() error {
	return errs.NewParserException(errs.ParseExpectedWhenClause, "CASE requires at least one WHEN clause", p.baseProps(p.cur()))
}

func (p *Parser) errUnexpectedOperator() error {
	return errs.NewParserException(errs.ParseUnexpectedOperator, "unexpected operator", p.baseProps(p.cur()))
}

func (p *Parser) errCastArity(min, max int) error {
	props := p.baseProps(p.cur())
	props[errs.ExpectedArityMin] = min
	props[errs.ExpectedArityMax] = max
	return errs.NewParserException(errs.ParseCastArity, "wrong number of type parameters for CAST target", props)
}

func (p *Parser) errInvalidTypeParam() error {
	return errs.NewParserException(errs.ParseInvalidTypeParam, "invalid CAST type parameter", p.baseProps(p.cur()))
}

func (p *Parser) errExpectedLeftParenBuiltin() error {
	return errs.NewParserException(errs.ParseExpectedLeftParenBuiltinFunctionCall, "expected '(' to start function arguments", p.baseProps(p.cur()))
}

func (p *Parser) errExpectedRightParenBuiltin() error {
	return errs.NewParserException(errs.ParseExpectedRightParenBuiltinFunctionCall, "expected ')' to close function arguments", p.baseProps(p.cur()))
}

func (p *Parser) errExpectedArgumentDelimiter() error {
	return errs.NewParserException(errs.ParseExpectedArgumentDelimiter, "expected ',' between arguments", p.baseProps(p.cur()))
}
