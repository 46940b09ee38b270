package eval

import "github.com/sirupsen/logrus"

// Options configures a compiled query. The zero value is ready to use:
// Logger falls back to logrus.StandardLogger(), and the LIKE escape
// policy defaults to the permissive reading of the open question an
// ESCAPE character preceding something other than itself, `_`, or `%`
// is treated as that literal character rather than rejected.
//
// This is deliberately small: identifier case sensitivity and the rest
// of the evaluation rules aren't knobs, so the only real choice left to
// an embedder is how strict to be about LIKE patterns and where logs go.
type Options struct {
	Logger *logrus.Logger

	// RejectLikeEscapeOfNonMetacharacter flips the LIKE/ESCAPE open
	// question the other way: when true, an ESCAPE character preceding
	// anything other than itself, `_`, or `%` is a PARSE-time-equivalent
	// evaluation error instead of a permissive literal-escape fallback.
	RejectLikeEscapeOfNonMetacharacter bool
}

func (o *Options) logger() *logrus.Logger {
	if o != nil && o.Logger != nil {
		return o.Logger
	}
	return logrus.StandardLogger()
}

func (o *Options) rejectLikeEscapeOfNonMetacharacter() bool {
	return o != nil && o.RejectLikeEscapeOfNonMetacharacter
}
