package eval

import "testing"

// TestLikeEscapeOfNonMetacharacterIsPermissiveByDefault checks the open
// question's default resolution: escaping a character that isn't `_`,
// `%`, or the escape itself is accepted and treated as that literal.
func TestLikeEscapeOfNonMetacharacterIsPermissiveByDefault(t *testing.T) {
	// '[' escapes 'x', which is neither '_', '%', nor '[' itself — the
	// permissive fallback treats "[x" as the literal character 'x'.
	matched, err := evalLikeWithPolicy("1x", "1[x", '[', true, nil, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !matched {
		t.Fatalf("expected '1x' to match pattern '1[x' under the permissive escape fallback")
	}
}

// TestLikeEscapeOfNonMetacharacterCanBeRejected checks that
// Options.RejectLikeEscapeOfNonMetacharacter turns the permissive
// fallback into an evaluation error.
func TestLikeEscapeOfNonMetacharacterCanBeRejected(t *testing.T) {
	opts := &Options{RejectLikeEscapeOfNonMetacharacter: true}
	_, err := evalLikeWithPolicy("1x", "1[x", '[', true, opts, nil)
	if err == nil {
		t.Fatalf("expected an error rejecting ESCAPE before a non-metacharacter, got none")
	}
}
