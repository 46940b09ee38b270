// Package lexer turns PartiQL/SQL++ source text into a finite stream of
// positioned tokens.
//
// What: a table-driven scanner over Unicode code points: a dispatch
// table maps the class of a token's first rune to the handler that
// scans the rest of that token, rather than a plain switch-on-first-rune
// scanner. The state kinds
// (INITIAL/START/START_AND_TERMINAL/INCOMPLETE/TERMINAL/ERROR) tag the
// table's rows; there is no delegate fallthrough between states.
// How: single-pass, rune-based, carrying a positionTracker so every
// token records the SourcePosition of its first code point.
// Why: a table-driven dispatch keeps the "which characters start which
// token kind" decision in one place (dispatchTable in dfa.go) instead of
// smeared across an ever-growing if/else chain, which is what a
// switch-dispatch scanner tends to grow into once SQL++'s richer
// literal forms (backtick ION_LITERAL, triple-quoted nested strings)
// are added.
package lexer

import "github.com/gopartiql/partiqlcore/internal/docmodel"

// TokenType is the closed set of token kinds this lexer recognizes.
type TokenType int

const (
	EOF TokenType = iota
	IDENTIFIER
	KEYWORD
	OPERATOR
	LITERAL
	LeftParen
	RightParen
	LeftBracket
	RightBracket
	LeftCurly
	RightCurly
	Colon
	Comma
	Star
	Dot
	At
	IonLiteral
)

func (t TokenType) String() string {
	switch t {
	case EOF:
		return "EOF"
	case IDENTIFIER:
		return "IDENTIFIER"
	case KEYWORD:
		return "KEYWORD"
	case OPERATOR:
		return "OPERATOR"
	case LITERAL:
		return "LITERAL"
	case LeftParen:
		return "("
	case RightParen:
		return ")"
	case LeftBracket:
		return "["
	case RightBracket:
		return "]"
	case LeftCurly:
		return "{"
	case RightCurly:
		return "}"
	case Colon:
		return ":"
	case Comma:
		return ","
	case Star:
		return "*"
	case Dot:
		return "."
	case At:
		return "@"
	case IonLiteral:
		return "ION_LITERAL"
	default:
		return "?"
	}
}

// SourcePosition is a 1-indexed (line, column) pair.
type SourcePosition struct {
	Line   int
	Column int
}

// Token is (TokenType, payload, SourcePosition). Payload
// is a document-model value: identifier/keyword/operator text as a
// SYMBOL, or the literal's parsed value.
type Token struct {
	Type  TokenType
	Value docmodel.Value
	Pos   SourcePosition
}

// Text returns the token's payload as plain text, for tokens whose
// payload is textual (IDENTIFIER/KEYWORD/OPERATOR/SYMBOL literals).
func (t Token) Text() string {
	return docmodel.Text(t.Value)
}
