package lexer

// keywords is the fixed allow-list of clause/type-name keywords.
// Boolean-flavored connective words (AND, OR, NOT, LIKE, BETWEEN, IN,
// IS) are deliberately excluded here — the parser treats them as
// operators participating in precedence climbing, not structural
// keywords, even though `BETWEEN ... AND` later demands the
// literal word "AND" as a required token.
var keywords = map[string]bool{
	"select": true, "from": true, "where": true, "group": true, "by": true,
	"having": true, "order": true, "limit": true, "offset": true,
	"as": true, "at": true,
	"case": true, "when": true, "then": true, "else": true, "end": true,
	"cast": true, "substring": true, "for": true, "trim": true,
	"leading": true, "trailing": true, "both": true,
	"values": true, "distinct": true, "unpivot": true,
	"asc": true, "desc": true, "escape": true,
	"null": true, "missing": true,

	// type names, recognized as keywords so CAST(expr AS <type>) and
	// IS [NOT] <type> can parse a type name without a separate lexical
	// class.
	"bool": true, "boolean": true,
	"int": true, "integer": true,
	"float": true, "double": true,
	"decimal": true, "numeric": true,
	"varchar": true, "char": true, "character": true,
	"string": true, "symbol": true,
	"timestamp": true,
	"clob": true, "blob": true,
	"list": true, "sexp": true, "bag": true, "struct": true,
	"any": true,
}

// operatorWords is the fixed set of identifier-shaped tokens that are
// lexed as OPERATOR rather than KEYWORD.
var operatorWords = map[string]bool{
	"and": true, "or": true, "not": true,
	"like": true, "between": true, "in": true, "is": true,
}

// IsKeyword reports whether lower-cased text is a recognized keyword.
func IsKeyword(lower string) bool { return keywords[lower] }

// IsOperatorWord reports whether lower-cased text is a recognized
// word-shaped operator (e.g. "and").
func IsOperatorWord(lower string) bool { return operatorWords[lower] }
