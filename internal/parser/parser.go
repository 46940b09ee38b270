package parser

import (
	"strings"

	"github.com/gopartiql/partiqlcore/internal/docmodel"
	"github.com/gopartiql/partiqlcore/internal/lexer"
)

// Parser holds the full token slice and a cursor, using a cur/peek idiom
// generalized to arbitrary lookahead since SQL++'s CAST/TRIM/SUBSTRING
// forms occasionally need to peek past two tokens.
type Parser struct {
	toks []lexer.Token
	pos  int
}

// New builds a Parser over src's token stream (already lexed).
func New(toks []lexer.Token) *Parser {
	return &Parser{toks: toks}
}

// Parse is the module's single entry point: parse one statement to EOF.
func Parse(src string, adapter docmodel.Adapter) (docmodel.Value, error) {
	lx := lexer.New(src, adapter)
	toks, err := lx.Tokenize()
	if err != nil {
		return nil, err
	}
	p := New(toks)
	ast, err := p.parseStatement()
	if err != nil {
		return nil, err
	}
	if p.cur().Type != lexer.EOF {
		return nil, p.errUnexpectedToken()
	}
	return ast, nil
}

func (p *Parser) cur() lexer.Token {
	if p.pos >= len(p.toks) {
		return lexer.Token{Type: lexer.EOF}
	}
	return p.toks[p.pos]
}

func (p *Parser) peekAt(n int) lexer.Token {
	i := p.pos + n
	if i >= len(p.toks) {
		return lexer.Token{Type: lexer.EOF}
	}
	return p.toks[i]
}

func (p *Parser) advance() lexer.Token {
	t := p.cur()
	if p.pos < len(p.toks) {
		p.pos++
	}
	return t
}

func (p *Parser) atKeyword(kw string) bool {
	t := p.cur()
	return t.Type == lexer.KEYWORD && t.Text() == kw
}

func (p *Parser) atOperatorWord(word string) bool {
	t := p.cur()
	return t.Type == lexer.OPERATOR && t.Text() == word
}

func (p *Parser) atOperator(sym string) bool {
	t := p.cur()
	return t.Type == lexer.OPERATOR && t.Text() == sym
}

func (p *Parser) atType(tt lexer.TokenType) bool { return p.cur().Type == tt }

func (p *Parser) expectKeyword(kw string) error {
	if p.atKeyword(kw) {
		p.advance()
		return nil
	}
	return p.errExpectedKeyword(strings.ToUpper(kw))
}

func (p *Parser) expectOperatorWord(word string) error {
	if p.atOperatorWord(word) {
		p.advance()
		return nil
	}
	return p.errExpectedKeyword(strings.ToUpper(word))
}

func (p *Parser) expectType(tt lexer.TokenType) (lexer.Token, error) {
	if p.atType(tt) {
		return p.advance(), nil
	}
	return lexer.Token{}, p.errExpectedTokenType(tt)
}

// identLike accepts an IDENTIFIER or a KEYWORD token as an identifier
// name — keywords double as identifiers to keep the grammar practical
// for common column names.
func (p *Parser) identLike() (string, bool) {
	t := p.cur()
	if t.Type == lexer.IDENTIFIER || t.Type == lexer.KEYWORD {
		p.advance()
		return t.Text(), true
	}
	return "", false
}
