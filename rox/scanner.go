package rox

import (
	"iter"
	"strconv"
	"unicode"
	"unicode/utf8"
)

// Scanner turns source text into tokens on demand. It is a single-pass
// cursor over the source; scanning the same text again needs a new Scanner.
type Scanner struct {
	input string

	// start of the token being scanned
	start    int
	startPos Position

	offset int
	line   int
	column int

	done bool
}

// NewScanner returns a scanner positioned at the start of input.
func NewScanner(input string) *Scanner {
	return &Scanner{input: input, line: 1, column: 1}
}

// Next returns the next token or a lexical error for the current position.
//
// After an unexpected character the scanner has already moved past it, so
// calling Next again continues with the following input. Once the end of input
// is reached Next returns a TokenEOF token on every call.
func (s *Scanner) Next() (Token, error) {
	for {
		s.start = s.offset
		s.startPos = s.pos()

		if s.atEnd() {
			s.done = true
			return Token{Type: TokenEOF, Pos: s.startPos}, nil
		}

		r := s.advance()
		switch r {
		case '\n':
			continue
		case '(':
			return s.makeToken(TokenLeftParen), nil
		case ')':
			return s.makeToken(TokenRightParen), nil
		case '{':
			return s.makeToken(TokenLeftBrace), nil
		case '}':
			return s.makeToken(TokenRightBrace), nil
		case ',':
			return s.makeToken(TokenComma), nil
		case '.':
			return s.makeToken(TokenDot), nil
		case '-':
			return s.makeToken(TokenMinus), nil
		case '+':
			return s.makeToken(TokenPlus), nil
		case ';':
			return s.makeToken(TokenSemicolon), nil
		case '*':
			return s.makeToken(TokenStar), nil
		case '!':
			return s.makeToken(s.either('=', TokenBangEqual, TokenBang)), nil
		case '=':
			return s.makeToken(s.either('=', TokenEqualEqual, TokenEqual)), nil
		case '<':
			return s.makeToken(s.either('=', TokenLessEqual, TokenLess)), nil
		case '>':
			return s.makeToken(s.either('=', TokenGreaterEqual, TokenGreater)), nil
		case '/':
			if s.peek() == '/' {
				s.skipComment()
				continue
			}
			return s.makeToken(TokenSlash), nil
		case '"':
			return s.readString()
		}

		switch {
		case unicode.IsSpace(r):
			continue
		case isDigit(r):
			return s.readNumber(), nil
		case isAlpha(r):
			return s.readIdentifier(), nil
		default:
			return Token{}, &LexError{Kind: UnexpectedCharacter, Char: r, Raw: s.lexeme(), Pos: s.startPos, source: s.input}
		}
	}
}

// Done reports whether the EOF token has been produced.
func (s *Scanner) Done() bool {
	return s.done
}

// Tokens returns a lazy sequence over the remaining tokens and lexical
// errors. The sequence ends after the EOF token has been yielded.
func (s *Scanner) Tokens() iter.Seq2[Token, error] {
	return func(yield func(Token, error) bool) {
		for !s.done {
			tok, err := s.Next()
			if !yield(tok, err) {
				return
			}
		}
	}
}

// ScanAll scans input to completion. The returned tokens always end with a
// TokenEOF token; errs holds every lexical error in source order.
func ScanAll(input string) (tokens []Token, errs []error) {
	for tok, err := range NewScanner(input).Tokens() {
		if err != nil {
			errs = append(errs, err)
			continue
		}
		tokens = append(tokens, tok)
	}
	return tokens, errs
}

func (s *Scanner) pos() Position {
	return Position{Line: s.line, Column: s.column, Offset: s.offset}
}

func (s *Scanner) atEnd() bool {
	return s.offset >= len(s.input)
}

func (s *Scanner) advance() rune {
	r, w := utf8.DecodeRuneInString(s.input[s.offset:])
	s.offset += w
	if r == '\n' {
		s.line++
		s.column = 1
	} else {
		s.column++
	}
	return r
}

func (s *Scanner) peek() rune {
	if s.atEnd() {
		return 0
	}
	r, _ := utf8.DecodeRuneInString(s.input[s.offset:])
	return r
}

func (s *Scanner) peekNext() rune {
	if s.atEnd() {
		return 0
	}
	_, w := utf8.DecodeRuneInString(s.input[s.offset:])
	if s.offset+w >= len(s.input) {
		return 0
	}
	r, _ := utf8.DecodeRuneInString(s.input[s.offset+w:])
	return r
}

// either consumes next and returns two if it is the upcoming rune, else one.
func (s *Scanner) either(next rune, two, one TokenType) TokenType {
	if s.peek() == next {
		s.advance()
		return two
	}
	return one
}

func (s *Scanner) lexeme() string {
	return s.input[s.start:s.offset]
}

func (s *Scanner) makeToken(tt TokenType) Token {
	return Token{Type: tt, Lexeme: s.lexeme(), Pos: s.startPos}
}

// skipComment discards everything up to, not including, the next newline.
func (s *Scanner) skipComment() {
	for !s.atEnd() && s.peek() != '\n' {
		s.advance()
	}
}

func (s *Scanner) readString() (Token, error) {
	for !s.atEnd() && s.peek() != '"' {
		s.advance()
	}
	if s.atEnd() {
		return Token{}, &LexError{Kind: UnterminatedString, Char: '"', Raw: `"`, Pos: s.startPos, source: s.input}
	}
	s.advance()

	lexeme := s.lexeme()
	return Token{
		Type:    TokenString,
		Lexeme:  lexeme,
		Literal: lexeme[1 : len(lexeme)-1],
		Pos:     s.startPos,
	}, nil
}

func (s *Scanner) readNumber() Token {
	for isDigit(s.peek()) {
		s.advance()
	}
	if s.peek() == '.' && isDigit(s.peekNext()) {
		s.advance()
		for isDigit(s.peek()) {
			s.advance()
		}
	}

	lexeme := s.lexeme()
	// digits with an optional fraction always parse; overlong runs saturate to +Inf
	value, _ := strconv.ParseFloat(lexeme, 64)
	return Token{Type: TokenNumber, Lexeme: lexeme, Literal: value, Pos: s.startPos}
}

func (s *Scanner) readIdentifier() Token {
	for isAlphaNumeric(s.peek()) {
		s.advance()
	}
	return s.makeToken(LookupIdent(s.lexeme()))
}

func isDigit(r rune) bool {
	return r >= '0' && r <= '9'
}

func isAlpha(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || r == '_'
}

func isAlphaNumeric(r rune) bool {
	return isAlpha(r) || isDigit(r)
}
