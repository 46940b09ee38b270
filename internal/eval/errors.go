package eval

import (
	"github.com/gopartiql/partiqlcore/internal/docmodel"
	"github.com/gopartiql/partiqlcore/internal/errs"
)

func errBindingNotFound(name string) error {
	return errs.NewEvaluationException(errs.EvaluatorBindingNotFound, "no binding for '"+name+"'", nil)
}

func errInvalidArguments(msg string) error {
	return errs.NewEvaluationException(errs.EvaluatorInvalidArguments, msg, nil)
}

func errIntOverflow(from string) error {
	props := map[errs.PropertyKey]any{errs.CastFrom: from, errs.CastTo: "INT"}
	return errs.NewEvaluationException(errs.EvaluatorIntOverflow, "integer overflow casting "+from, props)
}

func errInvalidCast(from, to docmodel.Type) error {
	props := map[errs.PropertyKey]any{errs.CastFrom: from.String(), errs.CastTo: to.String()}
	return errs.NewEvaluationException(errs.EvaluatorInvalidCast, "no conversion from "+from.String()+" to "+to.String(), props)
}

func errCastFailed(from, to docmodel.Type, reason string) error {
	props := map[errs.PropertyKey]any{errs.CastFrom: from.String(), errs.CastTo: to.String()}
	return errs.NewEvaluationException(errs.EvaluatorCastFailed, reason, props)
}
