// Package errs defines the structured error taxonomy shared by the
// parser and evaluator.
//
// What: two exception families (ParserException, EvaluationException),
// each a typed struct carrying a stable code and a property map, plus
// the closed set of property keys errors may carry.
// How: each exception's Error() renders its code, message and property
// map in one fixed format, while Code and Properties stay available as
// fields, so the same error can be consumed either as a human message
// or as structured data by a conformance harness.
// Why: property maps are part of the public contract; a bare error
// string would lose LINE_NUMBER/TOKEN_TYPE/etc. for callers that need
// to render or compare them.
package errs

import (
	"fmt"

	"github.com/pkg/errors"
)

// PropertyKey names one field of an error's property map.
type PropertyKey string

const (
	LineNumber             PropertyKey = "LINE_NUMBER"
	ColumnNumber            PropertyKey = "COLUMN_NUMBER"
	TokenType               PropertyKey = "TOKEN_TYPE"
	TokenValue              PropertyKey = "TOKEN_VALUE"
	Keyword                 PropertyKey = "KEYWORD"
	ExpectedTokenType       PropertyKey = "EXPECTED_TOKEN_TYPE"
	ExpectedTokenType1Of2   PropertyKey = "EXPECTED_TOKEN_TYPE_1_OF_2"
	ExpectedTokenType2Of2   PropertyKey = "EXPECTED_TOKEN_TYPE_2_OF_2"
	ExpectedArityMin        PropertyKey = "EXPECTED_ARITY_MIN"
	ExpectedArityMax        PropertyKey = "EXPECTED_ARITY_MAX"
	CastFrom                PropertyKey = "CAST_FROM"
	CastTo                  PropertyKey = "CAST_TO"
)

// ParserCode enumerates the parser's error codes.
type ParserCode string

const (
	ParseExpectedKeyword                        ParserCode = "PARSE_EXPECTED_KEYWORD"
	ParseExpectedTypeName                       ParserCode = "PARSE_EXPECTED_TYPE_NAME"
	ParseMissingIdentAfterAt                    ParserCode = "PARSE_MISSING_IDENT_AFTER_AT"
	ParseUnexpectedToken                        ParserCode = "PARSE_UNEXPECTED_TOKEN"
	ParseUnexpectedKeyword                      ParserCode = "PARSE_UNEXPECTED_KEYWORD"
	ParseInvalidPathComponent                   ParserCode = "PARSE_INVALID_PATH_COMPONENT"
	ParseCastArity                              ParserCode = "PARSE_CAST_ARITY"
	ParseInvalidTypeParam                       ParserCode = "PARSE_INVALID_TYPE_PARAM"
	ParseExpectedWhenClause                     ParserCode = "PARSE_EXPECTED_WHEN_CLAUSE"
	ParseUnexpectedOperator                     ParserCode = "PARSE_UNEXPECTED_OPERATOR"
	ParseExpectedExpression                     ParserCode = "PARSE_EXPECTED_EXPRESSION"
	ParseExpectedTokenType                      ParserCode = "PARSE_EXPECTED_TOKEN_TYPE"
	ParseExpected2TokenTypes                    ParserCode = "PARSE_EXPECTED_2_TOKEN_TYPES"
	ParseExpectedLeftParenAfterCast              ParserCode = "PARSE_EXPECTED_LEFT_PAREN_AFTER_CAST"
	ParseExpectedLeftParenValueConstructor       ParserCode = "PARSE_EXPECTED_LEFT_PAREN_VALUE_CONSTRUCTOR"
	ParseUnexpectedTerm                         ParserCode = "PARSE_UNEXPECTED_TERM"
	ParseSelectMissingFrom                      ParserCode = "PARSE_SELECT_MISSING_FROM"
	ParseUnsupportedLiteralsGroupby             ParserCode = "PARSE_UNSUPPORTED_LITERALS_GROUPBY"
	ParseExpectedIdentForAlias                  ParserCode = "PARSE_EXPECTED_IDENT_FOR_ALIAS"
	ParseExpectedIdentForAt                     ParserCode = "PARSE_EXPECTED_IDENT_FOR_AT"
	ParseExpectedLeftParenBuiltinFunctionCall    ParserCode = "PARSE_EXPECTED_LEFT_PAREN_BUILTIN_FUNCTION_CALL"
	ParseExpectedRightParenBuiltinFunctionCall   ParserCode = "PARSE_EXPECTED_RIGHT_PAREN_BUILTIN_FUNCTION_CALL"
	ParseExpectedArgumentDelimiter               ParserCode = "PARSE_EXPECTED_ARGUMENT_DELIMITER"
)

// ParserException is raised by the parser; Properties carries
// structured context for the given Code.
type ParserException struct {
	Code       ParserCode
	Message    string
	Properties map[PropertyKey]any
}

func (e *ParserException) Error() string {
	return fmt.Sprintf("%s: %s (%v)", e.Code, e.Message, e.Properties)
}

// NewParserException builds a ParserException, defaulting Properties
// to an empty, non-nil map so callers can always index it safely.
func NewParserException(code ParserCode, message string, props map[PropertyKey]any) *ParserException {
	if props == nil {
		props = map[PropertyKey]any{}
	}
	return &ParserException{Code: code, Message: message, Properties: props}
}

// EvaluationCode enumerates the evaluator's error codes.
type EvaluationCode string

const (
	EvaluatorCastFailed           EvaluationCode = "EVALUATOR_CAST_FAILED"
	EvaluatorCastFailedNoLocation  EvaluationCode = "EVALUATOR_CAST_FAILED_NO_LOCATION"
	EvaluatorInvalidCast           EvaluationCode = "EVALUATOR_INVALID_CAST"
	EvaluatorInvalidCastNoLocation EvaluationCode = "EVALUATOR_INVALID_CAST_NO_LOCATION"
	EvaluatorIntOverflow           EvaluationCode = "EVALUATOR_INT_OVERFLOW"
	EvaluatorBindingNotFound       EvaluationCode = "EVALUATOR_BINDING_NOT_FOUND"
	EvaluatorInvalidArguments      EvaluationCode = "EVALUATOR_INVALID_ARGUMENTS"
	EvaluatorGeneric               EvaluationCode = "EVALUATOR_GENERIC"
)

// EvaluationException is raised by the evaluator. Internal marks a
// bug-in-engine condition as opposed to a user-facing data/query error.
type EvaluationException struct {
	Code       EvaluationCode
	Message    string
	Properties map[PropertyKey]any
	Internal   bool
}

func (e *EvaluationException) Error() string {
	return fmt.Sprintf("%s: %s (%v)", e.Code, e.Message, e.Properties)
}

// NewEvaluationException builds an EvaluationException with a non-nil
// Properties map.
func NewEvaluationException(code EvaluationCode, message string, props map[PropertyKey]any) *EvaluationException {
	if props == nil {
		props = map[PropertyKey]any{}
	}
	return &EvaluationException{Code: code, Message: message, Properties: props}
}

// NewInternalEvaluationException wraps cause as an EVALUATOR_GENERIC,
// internal=true error. It is the only place this package reaches for
// pkg/errors: internal errors are bugs-in-engine, so preserving a
// stack trace for postmortems is worth the extra dependency, whereas
// the user-facing codes above are expected control flow and carry
// none.
func NewInternalEvaluationException(cause error) *EvaluationException {
	wrapped := errors.Wrap(cause, "internal evaluator error")
	return &EvaluationException{
		Code:       EvaluatorGeneric,
		Message:    wrapped.Error(),
		Properties: map[PropertyKey]any{},
		Internal:   true,
	}
}
