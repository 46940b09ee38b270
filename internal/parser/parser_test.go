package parser

import (
	"testing"

	"github.com/gopartiql/partiqlcore/internal/docmodel"
	"github.com/gopartiql/partiqlcore/internal/errs"
	"github.com/gopartiql/partiqlcore/internal/lexer"
)

// TestBetweenMissingAndReportsExpectedKeyword checks the BETWEEN clause's
// required "AND" token: with it omitted, the parser must report
// PARSE_EXPECTED_KEYWORD pointing at whatever token follows the lower
// bound, not at the BETWEEN keyword itself.
func TestBetweenMissingAndReportsExpectedKeyword(t *testing.T) {
	_, err := Parse("5 BETWEEN 1  10", docmodel.DefaultAdapter{})
	if err == nil {
		t.Fatalf("expected a parse error")
	}
	pe, ok := err.(*errs.ParserException)
	if !ok {
		t.Fatalf("got error of type %T, want *errs.ParserException", err)
	}
	if pe.Code != errs.ParseExpectedKeyword {
		t.Fatalf("got code %v, want %v", pe.Code, errs.ParseExpectedKeyword)
	}
	if pe.Properties[errs.Keyword] != "AND" {
		t.Fatalf("got KEYWORD %v, want AND", pe.Properties[errs.Keyword])
	}
	if pe.Properties[errs.LineNumber] != 1 {
		t.Fatalf("got LINE_NUMBER %v, want 1", pe.Properties[errs.LineNumber])
	}
	if pe.Properties[errs.ColumnNumber] != 14 {
		t.Fatalf("got COLUMN_NUMBER %v, want 14", pe.Properties[errs.ColumnNumber])
	}
	if pe.Properties[errs.TokenType] != lexer.LITERAL.String() {
		t.Fatalf("got TOKEN_TYPE %v, want %v", pe.Properties[errs.TokenType], lexer.LITERAL.String())
	}
	iv, ok := pe.Properties[errs.TokenValue].(docmodel.Value)
	if !ok || docmodel.Unwrap(iv).Type() != docmodel.IntType {
		t.Fatalf("got TOKEN_VALUE %v, want an INT literal", pe.Properties[errs.TokenValue])
	}
}

func TestParseSelectStarRequiresFrom(t *testing.T) {
	_, err := Parse("SELECT *", docmodel.DefaultAdapter{})
	if err == nil {
		t.Fatalf("expected a parse error")
	}
	pe, ok := err.(*errs.ParserException)
	if !ok {
		t.Fatalf("got error of type %T, want *errs.ParserException", err)
	}
	if pe.Code != errs.ParseSelectMissingFrom {
		t.Fatalf("got code %v, want %v", pe.Code, errs.ParseSelectMissingFrom)
	}
}

func TestParseSimpleSelectShape(t *testing.T) {
	ast, err := Parse("SELECT a, b AS c FROM t WHERE a > 1", docmodel.DefaultAdapter{})
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	seq, ok := docmodel.Unwrap(ast).(*docmodel.EagerSequence)
	if !ok || seq.Container != docmodel.SexpType {
		t.Fatalf("expected a SEXP AST, got %T", ast)
	}
	head, ok := seq.Items[0].(docmodel.SymbolValue)
	if !ok || string(head) != "select" {
		t.Fatalf("expected a (select ...) node, got head %v", seq.Items[0])
	}
	if len(seq.Items) != 9 {
		t.Fatalf("expected the fixed 8-arg select node (9 items incl. head), got %d", len(seq.Items))
	}
}
