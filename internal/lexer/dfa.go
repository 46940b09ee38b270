package lexer

// StateKind is the closed set of DFA node kinds. beginsToken reports
// the kinds that start a new token; endsToken reports the kinds that
// permit flushing the token under construction. The dispatch table
// below tags its rows with Start or StartAndTerminal; there are no
// delegate states: a rune that no row accepts is reported as an
// invalid character.
type StateKind int

const (
	Initial StateKind = iota
	Start
	StartAndTerminal
	Incomplete
	Terminal
	ErrorState
)

func (k StateKind) beginsToken() bool {
	return k == Start || k == StartAndTerminal
}

func (k StateKind) endsToken() bool {
	return k == Terminal || k == StartAndTerminal
}

// dispatchEntry is one row of the lexer's dispatch table: a predicate
// over the lookahead rune (the "class" the DFA's START state branches
// on) and the handler that scans the rest of that token's run. This is
// the table-driven seam this lexer leans on: adding a new token shape
// means adding one row here, not inserting another if/else branch deep
// inside a monolithic scan loop.
type dispatchEntry struct {
	kind    StateKind
	class   func(r rune) bool
	handler func(l *Lexer) (Token, error)
}

func (l *Lexer) dispatchTable() []dispatchEntry {
	return []dispatchEntry{
		{Start, func(r rune) bool { return r == '\'' }, (*Lexer).lexQuotedString},
		{Start, func(r rune) bool { return r == '"' }, (*Lexer).lexQuotedIdentifier},
		{Start, func(r rune) bool { return r == '`' }, (*Lexer).lexIonLiteral},
		{Start, func(r rune) bool { return r == '.' && isDigit(l.peekN(1)) }, (*Lexer).lexNumber},
		{Start, isDigit, (*Lexer).lexNumber},
		{Start, func(r rune) bool { return (r == '-' || r == '+') && isDigit(l.peekN(1)) }, (*Lexer).lexNumber},
		{Start, isIdentStart, (*Lexer).lexIdentOrKeyword},
		{StartAndTerminal, isSinglePunct, (*Lexer).lexPunct},
		{Start, func(r rune) bool { return r == '@' }, (*Lexer).lexAt},
		{Start, func(r rune) bool { return r == '!' && l.peekN(1) == '=' }, (*Lexer).lexOperator},
		{Start, isOperatorStart, (*Lexer).lexOperator},
	}
}

func isDigit(r rune) bool { return r >= '0' && r <= '9' }

func isIdentStart(r rune) bool {
	return r == '_' || r == '$' || isLetter(r)
}

func isLetter(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || r > 127 && isUnicodeLetter(r)
}

func isIdentCont(r rune) bool {
	return isIdentStart(r) || isDigit(r)
}

func isSinglePunct(r rune) bool {
	switch r {
	case '(', ')', '[', ']', '{', '}', ':', ',', '*':
		return true
	default:
		return false
	}
}

func isOperatorStart(r rune) bool {
	if r >= 0 && r < 128 && singleCharOperators[byte(r)] {
		return true
	}
	return r == '|' || r == '.'
}
