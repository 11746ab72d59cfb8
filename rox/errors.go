package rox

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"
)

var (
	ErrUnexpectedCharacter     = errors.New("unexpected character")
	ErrUnterminatedString      = errors.New("unterminated string")
	ErrExpectedExpression      = errors.New("expected expression")
	ErrUnterminatedGrouping    = errors.New("unterminated grouping")
	ErrUnexpectedTrailingInput = errors.New("unexpected trailing input")
	ErrTooDeep                 = errors.New("expression nested too deeply")
)

// LexErrorKind classifies a lexical error.
type LexErrorKind int

const (
	UnexpectedCharacter LexErrorKind = iota
	UnterminatedString
)

func (k LexErrorKind) String() string {
	switch k {
	case UnexpectedCharacter:
		return "UnexpectedCharacter"
	case UnterminatedString:
		return "UnterminatedString"
	default:
		return fmt.Sprintf("LexErrorKind(%d)", int(k))
	}
}

// LexError reports a problem at a single position of the source. For
// UnterminatedString the position is the opening quote.
type LexError struct {
	Kind LexErrorKind
	Char rune
	Pos  Position

	// Raw is the source text of Char. It differs from string(Char) when the
	// input held a byte that is not valid UTF-8.
	Raw string

	source string
}

func (e *LexError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "lex error at %s: ", e.Pos)
	switch e.Kind {
	case UnexpectedCharacter:
		if b0, ok := e.invalidByte(); ok {
			fmt.Fprintf(&b, "unexpected character '\\x%02x'", b0)
		} else {
			fmt.Fprintf(&b, "unexpected character %q", e.Char)
		}
	default:
		b.WriteString("unterminated string")
	}
	writeCodeFrame(&b, e.source, e.Pos)
	return b.String()
}

// Diagnostic renders the one-line "[line N] Error: ..." form used by
// command-line front-ends.
func (e *LexError) Diagnostic() string {
	if e.Kind == UnterminatedString {
		return fmt.Sprintf("[line %d] Error: Unterminated string.", e.Pos.Line)
	}
	if b0, ok := e.invalidByte(); ok {
		return fmt.Sprintf("[line %d] Error: Unexpected character: \\x%02x", e.Pos.Line, b0)
	}
	return fmt.Sprintf("[line %d] Error: Unexpected character: %c", e.Pos.Line, e.Char)
}

func (e *LexError) invalidByte() (byte, bool) {
	if e.Char == utf8.RuneError && len(e.Raw) == 1 {
		return e.Raw[0], true
	}
	return 0, false
}

func (e *LexError) Unwrap() error {
	if e.Kind == UnterminatedString {
		return ErrUnterminatedString
	}
	return ErrUnexpectedCharacter
}

// ParseErrorKind classifies a parse error.
type ParseErrorKind int

const (
	ExpectedExpression ParseErrorKind = iota
	UnterminatedGrouping
	UnexpectedTrailingInput
	TooDeep
)

func (k ParseErrorKind) String() string {
	switch k {
	case ExpectedExpression:
		return "ExpectedExpression"
	case UnterminatedGrouping:
		return "UnterminatedGrouping"
	case UnexpectedTrailingInput:
		return "UnexpectedTrailingInput"
	case TooDeep:
		return "TooDeep"
	default:
		return fmt.Sprintf("ParseErrorKind(%d)", int(k))
	}
}

// ParseError describes the first token the parser could not accept.
//
// Found is the offending token. Pos is where the problem is reported: the
// offending token for most kinds, the opening parenthesis for
// UnterminatedGrouping.
type ParseError struct {
	Kind  ParseErrorKind
	Found Token
	Pos   Position

	source string
}

func (e *ParseError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "parse error at %s: ", e.Pos)
	switch e.Kind {
	case ExpectedExpression:
		fmt.Fprintf(&b, "expected expression, got %s", tokenLabel(e.Found))
	case UnterminatedGrouping:
		fmt.Fprintf(&b, "expected ')' to close group opened on line %d, got %s", e.Pos.Line, tokenLabel(e.Found))
	case UnexpectedTrailingInput:
		fmt.Fprintf(&b, "unexpected %s after expression", tokenLabel(e.Found))
	case TooDeep:
		fmt.Fprintf(&b, "expression nested more than %d levels deep", MaxDepth)
	}
	writeCodeFrame(&b, e.source, e.Pos)
	return b.String()
}

// Diagnostic renders the one-line "[line N] Error at 'x': ..." form. The line
// is always the one holding the named token, which for UnterminatedGrouping
// may be below the opening parenthesis.
func (e *ParseError) Diagnostic() string {
	line := e.Pos.Line
	if e.Kind == UnterminatedGrouping {
		line = e.Found.Pos.Line
	}
	where := "end"
	if e.Found.Type != TokenEOF {
		where = "'" + e.Found.Lexeme + "'"
	}
	var msg string
	switch e.Kind {
	case ExpectedExpression:
		msg = "Expect expression."
	case UnterminatedGrouping:
		msg = "Expect ')' after expression."
	case UnexpectedTrailingInput:
		msg = "Expect end of expression."
	case TooDeep:
		msg = "Expression nested too deeply."
	}
	return fmt.Sprintf("[line %d] Error at %s: %s", line, where, msg)
}

func (e *ParseError) Unwrap() error {
	switch e.Kind {
	case UnterminatedGrouping:
		return ErrUnterminatedGrouping
	case UnexpectedTrailingInput:
		return ErrUnexpectedTrailingInput
	case TooDeep:
		return ErrTooDeep
	default:
		return ErrExpectedExpression
	}
}

// Diagnostics flattens err, including errors.Join trees and %w wrappers,
// into one "[line N] Error..." line per lexical or parse error. Errors that
// contain neither are rendered with Error().
func Diagnostics(err error) []string {
	switch e := err.(type) {
	case nil:
		return nil
	case *LexError:
		return []string{e.Diagnostic()}
	case *ParseError:
		return []string{e.Diagnostic()}
	case interface{ Unwrap() []error }:
		var lines []string
		for _, inner := range e.Unwrap() {
			lines = append(lines, Diagnostics(inner)...)
		}
		return lines
	}

	var lexErr *LexError
	var parseErr *ParseError
	if errors.As(err, &lexErr) || errors.As(err, &parseErr) {
		return Diagnostics(errors.Unwrap(err))
	}
	return []string{err.Error()}
}

func tokenLabel(tok Token) string {
	switch tok.Type {
	case TokenEOF:
		return "end of input"
	case TokenIdentifier:
		return fmt.Sprintf("identifier %q", tok.Lexeme)
	case TokenString:
		return "string " + tok.Lexeme
	case TokenNumber:
		return "number " + tok.Lexeme
	default:
		if tok.Type.IsKeyword() {
			return "'" + tok.Lexeme + "'"
		}
		return fmt.Sprintf("%q", tok.Lexeme)
	}
}
