package eval

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gopartiql/partiqlcore/internal/docmodel"
	"github.com/gopartiql/partiqlcore/internal/errs"
)

// TestCastIntOverflow checks the overflow scenario: a textual
// integer literal too large for the evaluator's 64-bit CAST-to-INT range
// must fail with EVALUATOR_INT_OVERFLOW rather than silently wrapping or
// succeeding with an arbitrary-precision result.
func TestCastIntOverflow(t *testing.T) {
	_, err := evalCast(docmodel.StringValue("99999999999999999999"), "int", nil)
	require.Error(t, err)
	ee, ok := err.(*errs.EvaluationException)
	require.True(t, ok, "got error of type %T, want *errs.EvaluationException", err)
	assert.Equal(t, errs.EvaluatorIntOverflow, ee.Code)
}

// TestCastIntNormalization checks the text->INT normalization forms: a
// leading-zero-padded negative decimal, and a signed hex literal.
func TestCastIntNormalization(t *testing.T) {
	cases := []struct {
		text string
		want int64
	}{
		{"-0005", -5},
		{"+0x10", 16},
	}
	for _, c := range cases {
		t.Run(c.text, func(t *testing.T) {
			v, err := evalCast(docmodel.StringValue(c.text), "int", nil)
			require.NoError(t, err)
			iv, ok := v.(docmodel.IntValue)
			require.True(t, ok, "got %T, want docmodel.IntValue", v)
			assert.Equal(t, c.want, iv.V.Int64())
		})
	}
}

// TestCastBoolNormalization checks text->BOOL's case-insensitive "true"
// match and that any other text casts to false rather than erroring.
func TestCastBoolNormalization(t *testing.T) {
	cases := []struct {
		text string
		want bool
	}{
		{"true", true},
		{"TrUe", true},
		{"other", false},
	}
	for _, c := range cases {
		t.Run(c.text, func(t *testing.T) {
			v, err := evalCast(docmodel.StringValue(c.text), "bool", nil)
			require.NoError(t, err)
			bv, ok := v.(docmodel.BoolValue)
			require.True(t, ok, "got %T, want docmodel.BoolValue", v)
			assert.Equal(t, c.want, bool(bv))
		})
	}
}

func TestCastIsIdempotentOnItsOwnResult(t *testing.T) {
	first, err := evalCast(docmodel.StringValue("42"), "int", nil)
	require.NoError(t, err)
	second, err := evalCast(first, "int", nil)
	require.NoError(t, err)
	assert.Equal(t, int64(42), second.(docmodel.IntValue).V.Int64())
}

func TestCastNullAndMissingPassThrough(t *testing.T) {
	n := docmodel.NewNull(docmodel.IntType)
	v, err := evalCast(n, "string", nil)
	require.NoError(t, err)
	assert.Equal(t, n, v, "CAST of NULL must return the NULL unchanged")

	v, err = evalCast(docmodel.Missing, "string", nil)
	require.NoError(t, err)
	assert.Equal(t, docmodel.Missing, v, "CAST of MISSING must return MISSING unchanged")
}
