package rox

import (
	"errors"
	"fmt"
	"strings"
	"testing"
)

func TestLexErrorMessages(t *testing.T) {
	_, errs := ScanAll("ok\n  @")
	if len(errs) != 1 {
		t.Fatalf("expected one error, got %v", errs)
	}
	msg := errs[0].Error()
	if !strings.HasPrefix(msg, "lex error at 2:3: unexpected character '@'") {
		t.Fatalf("unexpected message %q", msg)
	}
	if !strings.Contains(msg, " 2 |   @\n   |   ^") {
		t.Fatalf("expected code frame in %q", msg)
	}

	_, errs = ScanAll(`"open`)
	var lexErr *LexError
	if !errors.As(errs[0], &lexErr) {
		t.Fatalf("expected *LexError, got %T", errs[0])
	}
	if got := lexErr.Diagnostic(); got != "[line 1] Error: Unterminated string." {
		t.Fatalf("unexpected diagnostic %q", got)
	}
	if lexErr.Kind.String() != "UnterminatedString" {
		t.Fatalf("unexpected kind name %s", lexErr.Kind)
	}
}

func TestParseErrorMessages(t *testing.T) {
	cases := []struct {
		src        string
		message    string
		diagnostic string
	}{
		{")", "parse error at 1:1: expected expression, got \")\"", "[line 1] Error at ')': Expect expression."},
		{"1 +", "parse error at 1:4: expected expression, got end of input", "[line 1] Error at end: Expect expression."},
		{"(1", "parse error at 1:1: expected ')' to close group opened on line 1, got end of input", "[line 1] Error at end: Expect ')' after expression."},
		{"(1 +\n 2\n 3", "parse error at 1:1: expected ')' to close group opened on line 1, got number 3", "[line 3] Error at '3': Expect ')' after expression."},
		{"(1\n\n", "parse error at 1:1: expected ')' to close group opened on line 1, got end of input", "[line 3] Error at end: Expect ')' after expression."},
		{"1 true", "parse error at 1:3: unexpected 'true' after expression", "[line 1] Error at 'true': Expect end of expression."},
		{"1 x", "parse error at 1:3: unexpected identifier \"x\" after expression", "[line 1] Error at 'x': Expect end of expression."},
	}
	for _, tc := range cases {
		_, err := ParseString(tc.src)
		var parseErr *ParseError
		if !errors.As(err, &parseErr) {
			t.Fatalf("%q: expected parse error, got %v", tc.src, err)
		}
		if first := strings.SplitN(err.Error(), "\n", 2)[0]; first != tc.message {
			t.Fatalf("%q: expected message %q, got %q", tc.src, tc.message, first)
		}
		if got := parseErr.Diagnostic(); got != tc.diagnostic {
			t.Fatalf("%q: expected diagnostic %q, got %q", tc.src, tc.diagnostic, got)
		}
	}
}

func TestParseErrorWithoutSourceHasNoFrame(t *testing.T) {
	_, err := Parse([]Token{{Type: TokenRightParen, Lexeme: ")", Pos: Position{Line: 1, Column: 1}}})
	if err == nil || strings.Contains(err.Error(), "\n") {
		t.Fatalf("expected single-line error, got %v", err)
	}
}

func TestDiagnosticsFlattensWrappedErrors(t *testing.T) {
	_, lexErrs := ScanAll("@")
	_, parseErr := ParseString(")")
	wrapped := fmt.Errorf("parse main.lox: %w", errors.Join(lexErrs[0], parseErr))

	lines := Diagnostics(wrapped)
	if len(lines) != 2 {
		t.Fatalf("expected both wrapped errors, got %v", lines)
	}

	lines = Diagnostics(errors.Join(lexErrs[0], parseErr, errors.New("other")))
	want := []string{
		"[line 1] Error: Unexpected character: @",
		"[line 1] Error at ')': Expect expression.",
		"other",
	}
	if strings.Join(lines, "|") != strings.Join(want, "|") {
		t.Fatalf("expected %v, got %v", want, lines)
	}
	if Diagnostics(nil) != nil {
		t.Fatalf("nil error has no diagnostics")
	}
}

func TestFormatCodeFrameClampsColumn(t *testing.T) {
	frame := formatCodeFrame("ab", Position{Line: 1, Column: 10})
	if !strings.HasSuffix(frame, "   ^") {
		t.Fatalf("caret should sit just past the line end, got %q", frame)
	}
	if formatCodeFrame("ab", Position{Line: 3, Column: 1}) != "" {
		t.Fatalf("out of range line should produce no frame")
	}
}
