package eval

import (
	"fmt"

	"github.com/sirupsen/logrus"
)

// LIKE pattern matching: matched on code points, not bytes.
// `_` matches any single code point, `%` matches any (possibly empty)
// run. With ESCAPE c, c must precede `_`, `%`, or itself to produce that
// literal character.
//
// Open question resolved: by default, an escape preceding a character
// that isn't `_`, `%`, or the escape itself is treated as that literal
// character rather than rejected — the common, permissive SQL LIKE
// behavior — and logged at Warn since it's a likely pattern typo.
// Options.RejectLikeEscapeOfNonMetacharacter flips this to an error for
// embedders that want stricter patterns. A dangling escape at the end
// of the pattern is always rejected, since there is no following
// character for it to escape.

type likeItem struct {
	kind byte // 'l' literal, '_' any-one, '%' any-run
	r    rune
}

// onNonMetaEscape is called when an ESCAPE character precedes something
// other than itself, `_`, or `%`; nil means "don't report it".
func compileLikePattern(pattern []rune, escape rune, hasEscape bool, rejectNonMetaEscape bool, onNonMetaEscape func(rune)) ([]likeItem, error) {
	var items []likeItem
	i := 0
	for i < len(pattern) {
		c := pattern[i]
		if hasEscape && c == escape {
			i++
			if i >= len(pattern) {
				return nil, errInvalidArguments("LIKE pattern ends with a dangling ESCAPE character")
			}
			next := pattern[i]
			if next != '_' && next != '%' && next != escape {
				if rejectNonMetaEscape {
					return nil, errInvalidArguments(fmt.Sprintf("ESCAPE character must precede '_', '%%', or itself, not %q", next))
				}
				if onNonMetaEscape != nil {
					onNonMetaEscape(next)
				}
			}
			items = append(items, likeItem{kind: 'l', r: next})
			i++
			continue
		}
		switch c {
		case '_':
			items = append(items, likeItem{kind: '_'})
		case '%':
			items = append(items, likeItem{kind: '%'})
		default:
			items = append(items, likeItem{kind: 'l', r: c})
		}
		i++
	}
	return items, nil
}

func matchLikeItems(s []rune, si int, items []likeItem, ii int) bool {
	for ii < len(items) {
		it := items[ii]
		switch it.kind {
		case 'l':
			if si >= len(s) || s[si] != it.r {
				return false
			}
			si++
			ii++
		case '_':
			if si >= len(s) {
				return false
			}
			si++
			ii++
		case '%':
			for k := si; k <= len(s); k++ {
				if matchLikeItems(s, k, items, ii+1) {
					return true
				}
			}
			return false
		}
	}
	return si == len(s)
}

// EvalLike reports whether s matches pattern, anchored and case-
// sensitive, with an optional ESCAPE character and the default
// (permissive, unlogged) non-metacharacter escape policy.
func EvalLike(s, pattern string, escape rune, hasEscape bool) (bool, error) {
	items, err := compileLikePattern([]rune(pattern), escape, hasEscape, false, nil)
	if err != nil {
		return false, err
	}
	return matchLikeItems([]rune(s), 0, items, 0), nil
}

// evalLikeWithPolicy is EvalLike plus an evaluator's configured escape
// policy: it rejects (or logs a Warn for) an ESCAPE preceding something
// other than itself, `_`, or `%`, per opts.
func evalLikeWithPolicy(s, pattern string, escape rune, hasEscape bool, opts *Options, log *logrus.Entry) (bool, error) {
	reject := opts.rejectLikeEscapeOfNonMetacharacter()
	var warned rune
	var sawWarn bool
	items, err := compileLikePattern([]rune(pattern), escape, hasEscape, reject, func(r rune) {
		warned, sawWarn = r, true
	})
	if err != nil {
		return false, err
	}
	if sawWarn && log != nil {
		log.WithField("escaped", string(warned)).Warn("LIKE ESCAPE character precedes a non-metacharacter; treating it as that literal character")
	}
	return matchLikeItems([]rune(s), 0, items, 0), nil
}
