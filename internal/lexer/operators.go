package lexer

// operatorAliases normalizes overloadable-operator spellings to their
// canonical form.
var operatorAliases = map[string]string{
	"!=": "<>",
}

func canonicalOperator(s string) string {
	if alias, ok := operatorAliases[s]; ok {
		return alias
	}
	return s
}

// maxMunchOperators lists multi-character operator spellings, longest
// first within each starting byte, so the symbol tokenizer can greedily
// match the longest valid operator starting at the cursor.
var maxMunchOperators = []string{
	"<>", "<=", ">=", "||", "!=",
}

// singleCharOperators is the set of one-character overloadable operator
// symbols. Note
// `*` is excluded: it is always lexed as the distinct STAR punctuation
// token, not an OPERATOR, since it is also SELECT *'s wildcard.
var singleCharOperators = map[byte]bool{
	'+': true, '-': true, '/': true, '%': true,
	'=': true, '<': true, '>': true,
}
