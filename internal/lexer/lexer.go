package lexer

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"github.com/gopartiql/partiqlcore/internal/docmodel"
)

func isUnicodeLetter(r rune) bool { return unicode.IsLetter(r) }

// Error reports the lexer's sole error shape: any transition to ERROR,
// or a stray EOF while INCOMPLETE.
type Error struct {
	Pos SourcePosition
	Msg string
}

func (e *Error) Error() string { return e.Msg }

func newLexError(pos SourcePosition, format string, args ...any) *Error {
	return &Error{Pos: pos, Msg: fmt.Sprintf(format, args...) + fmt.Sprintf(" at %d:%d", pos.Line, pos.Column)}
}

// Lexer scans UTF-8 source text into a finite token list.
// It is a pure function of its input: no shared state survives between
// calls to Tokenize on distinct Lexer instances.
type Lexer struct {
	src     []rune
	pos     int
	tracker *positionTracker
	adapter docmodel.Adapter
}

// New builds a Lexer over src using the given Adapter for literal
// construction (the `ION_LITERAL` path needs Adapter.ParseText).
func New(src string, adapter docmodel.Adapter) *Lexer {
	if adapter == nil {
		adapter = docmodel.DefaultAdapter{}
	}
	return &Lexer{src: []rune(src), tracker: newPositionTracker(), adapter: adapter}
}

// Tokenize scans the entire source into a token stream, suppressing
// whitespace and comments.
func (l *Lexer) Tokenize() ([]Token, error) {
	var out []Token
	for {
		tok, err := l.next()
		if err != nil {
			return nil, err
		}
		if tok.Type == EOF {
			out = append(out, tok)
			return out, nil
		}
		out = append(out, tok)
	}
}

func (l *Lexer) eof() bool { return l.pos >= len(l.src) }

func (l *Lexer) peek() rune {
	if l.eof() {
		return utf8.RuneError
	}
	return l.src[l.pos]
}

func (l *Lexer) peekN(n int) rune {
	if l.pos+n >= len(l.src) {
		return utf8.RuneError
	}
	return l.src[l.pos+n]
}

func (l *Lexer) advance() rune {
	r := l.src[l.pos]
	l.pos++
	l.tracker.advance(r)
	return r
}

func (l *Lexer) pos0() SourcePosition { return l.tracker.current() }

// next scans exactly one token, skipping any run of whitespace or
// comments first — single tokens of a whitespace sub-type that are
// suppressed from the output stream.
func (l *Lexer) next() (Token, error) {
	for {
		if l.eof() {
			return Token{Type: EOF, Pos: l.pos0()}, nil
		}
		if l.skipWhitespaceOrComment() {
			continue
		}
		break
	}
	start := l.pos0()
	r := l.peek()
	for _, entry := range l.dispatchTable() {
		if entry.class(r) {
			tok, err := entry.handler(l)
			if err != nil {
				return Token{}, err
			}
			tok.Pos = start
			return tok, nil
		}
	}
	bad := l.advance()
	return Token{}, newLexError(start, "Invalid character %q", string(bad))
}

func (l *Lexer) skipWhitespaceOrComment() bool {
	r := l.peek()
	if unicode.IsSpace(r) {
		l.advance()
		return true
	}
	if r == '-' && l.peekN(1) == '-' {
		l.advance()
		l.advance()
		for !l.eof() && l.peek() != '\n' {
			l.advance()
		}
		return true
	}
	if r == '/' && l.peekN(1) == '*' {
		l.advance()
		l.advance()
		for !l.eof() {
			if l.peek() == '*' && l.peekN(1) == '/' {
				l.advance()
				l.advance()
				break
			}
			l.advance()
		}
		return true
	}
	return false
}

func (l *Lexer) lexPunct() (Token, error) {
	r := l.advance()
	var tt TokenType
	switch r {
	case '(':
		tt = LeftParen
	case ')':
		tt = RightParen
	case '[':
		tt = LeftBracket
	case ']':
		tt = RightBracket
	case '{':
		tt = LeftCurly
	case '}':
		tt = RightCurly
	case ':':
		tt = Colon
	case ',':
		tt = Comma
	case '*':
		tt = Star
	}
	return Token{Type: tt, Value: docmodel.SymbolValue(string(r))}, nil
}

func (l *Lexer) lexOperator() (Token, error) {
	if l.peek() == '.' {
		l.advance()
		return Token{Type: Dot, Value: docmodel.SymbolValue(".")}, nil
	}
	two := string([]rune{l.peek(), l.peekN(1)})
	for _, op := range maxMunchOperators {
		if two == op {
			l.advance()
			l.advance()
			return Token{Type: OPERATOR, Value: docmodel.SymbolValue(canonicalOperator(op))}, nil
		}
	}
	r := l.advance()
	return Token{Type: OPERATOR, Value: docmodel.SymbolValue(canonicalOperator(string(r)))}, nil
}

func (l *Lexer) lexIdentOrKeyword() (Token, error) {
	var sb strings.Builder
	for !l.eof() && isIdentCont(l.peek()) {
		sb.WriteRune(l.advance())
	}
	text := sb.String()
	lower := strings.ToLower(text)
	switch {
	case IsKeyword(lower):
		return Token{Type: KEYWORD, Value: docmodel.SymbolValue(lower)}, nil
	case IsOperatorWord(lower):
		return Token{Type: OPERATOR, Value: docmodel.SymbolValue(lower)}, nil
	case lower == "true":
		return Token{Type: LITERAL, Value: docmodel.BoolValue(true)}, nil
	case lower == "false":
		return Token{Type: LITERAL, Value: docmodel.BoolValue(false)}, nil
	default:
		return Token{Type: IDENTIFIER, Value: docmodel.SymbolValue(text)}, nil
	}
}

func (l *Lexer) lexQuotedIdentifier() (Token, error) {
	start := l.pos0()
	l.advance() // opening "
	var sb strings.Builder
	for {
		if l.eof() {
			return Token{}, newLexError(start, "Invalid character %q", "EOF")
		}
		r := l.advance()
		if r == '"' {
			break
		}
		sb.WriteRune(r)
	}
	return Token{Type: IDENTIFIER, Value: docmodel.SymbolValue(sb.String())}, nil
}

// lexQuotedString scans a single-quoted string literal. `''` inside
// denotes a literal quote; the enclosing quotes themselves
// are stripped.
func (l *Lexer) lexQuotedString() (Token, error) {
	start := l.pos0()
	l.advance() // opening '
	var sb strings.Builder
	for {
		if l.eof() {
			return Token{}, newLexError(start, "Invalid character %q", "EOF")
		}
		r := l.advance()
		if r == '\'' {
			if l.peek() == '\'' {
				l.advance()
				sb.WriteRune('\'')
				continue
			}
			break
		}
		sb.WriteRune(r)
	}
	return Token{Type: LITERAL, Value: docmodel.StringValue(sb.String())}, nil
}

// lexNumber scans integer and decimal literals: a `.`
// followed by digits, or an `e`/`E` exponent, promotes the literal to
// DECIMAL rather than FLOAT — e-notation numbers always become DECIMAL.
func (l *Lexer) lexNumber() (Token, error) {
	var sb strings.Builder
	if l.peek() == '-' || l.peek() == '+' {
		sb.WriteRune(l.advance())
	}
	isDecimal := false
	for !l.eof() && isDigit(l.peek()) {
		sb.WriteRune(l.advance())
	}
	if l.peek() == '.' && isDigit(l.peekN(1)) {
		isDecimal = true
		sb.WriteRune(l.advance())
		for !l.eof() && isDigit(l.peek()) {
			sb.WriteRune(l.advance())
		}
	}
	if l.peek() == 'e' || l.peek() == 'E' {
		save := l.pos
		saveTracker := *l.tracker
		var exp strings.Builder
		exp.WriteRune(l.advance())
		if l.peek() == '+' || l.peek() == '-' {
			exp.WriteRune(l.advance())
		}
		if isDigit(l.peek()) {
			for !l.eof() && isDigit(l.peek()) {
				exp.WriteRune(l.advance())
			}
			isDecimal = true
			sb.WriteString(exp.String())
		} else {
			// not actually an exponent; back out.
			l.pos = save
			*l.tracker = saveTracker
		}
	}
	text := sb.String()
	if isDecimal {
		d, err := decimal.NewFromString(text)
		if err != nil {
			return Token{}, fmt.Errorf("invalid decimal literal %q: %w", text, err)
		}
		return Token{Type: LITERAL, Value: docmodel.NewDecimal(d)}, nil
	}
	v, ok := docmodel.NewBigIntFromString(text)
	if !ok {
		return Token{}, fmt.Errorf("invalid integer literal %q", text)
	}
	return Token{Type: LITERAL, Value: v}, nil
}

// lexIonLiteral scans a backtick-quoted embedded document-model
// literal via the permissive mini-lexer in minilexer.go, then hands the
// raw text to the Adapter's text parser.
func (l *Lexer) lexIonLiteral() (Token, error) {
	start := l.pos0()
	l.advance() // opening backtick
	raw, err := l.scanIonLiteralBody()
	if err != nil {
		return Token{}, newLexError(start, "%s", err.Error())
	}
	v, err := l.adapter.ParseText(raw)
	if err != nil {
		logrus.WithError(err).Debug("lexer: ION_LITERAL failed to parse via adapter")
		return Token{}, newLexError(start, "invalid embedded literal: %s", err.Error())
	}
	return Token{Type: IonLiteral, Value: v}, nil
}

// lexAt scans the `@identifier` positional-binding prefix token as its
// own AT token type, parsed together with the following identifier by
// the parser (PARSE_MISSING_IDENT_AFTER_AT if absent).
func (l *Lexer) lexAt() (Token, error) {
	l.advance()
	return Token{Type: At, Value: docmodel.SymbolValue("@")}, nil
}
