package rox

import "errors"

// MaxDepth bounds how many groupings and prefix operators may nest.
const MaxDepth = 256

type parser struct {
	tokens []Token
	pos    int
	depth  int

	source string
}

// Parse builds the AST for a single expression from tokens. A missing
// trailing EOF token is implied. The first error stops the parse and is
// returned as a *ParseError.
func Parse(tokens []Token) (Expr, error) {
	return newParser(tokens, "").parse()
}

// ParseString scans and parses src. If scanning produced lexical errors they
// are all returned, joined, and no parse is attempted. Returned errors carry
// a code frame of src.
func ParseString(src string) (Expr, error) {
	tokens, errs := ScanAll(src)
	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}
	return newParser(tokens, src).parse()
}

func newParser(tokens []Token, source string) *parser {
	if n := len(tokens); n == 0 || tokens[n-1].Type != TokenEOF {
		eof := Token{Type: TokenEOF, Pos: Position{Line: 1, Column: 1}}
		if n > 0 {
			last := tokens[n-1]
			eof.Pos = Position{
				Line:   last.Pos.Line,
				Column: last.Pos.Column + len([]rune(last.Lexeme)),
				Offset: last.Pos.Offset + len(last.Lexeme),
			}
		}
		tokens = append(tokens[:n:n], eof)
	}
	return &parser{tokens: tokens, source: source}
}

func (p *parser) parse() (Expr, error) {
	expr, err := p.expression()
	if err != nil {
		return nil, err
	}
	if tok := p.peek(); tok.Type != TokenEOF {
		return nil, p.errorAt(UnexpectedTrailingInput, tok, tok.Pos)
	}
	// advance never moves past an EOF, so anything behind one is unread
	for _, tok := range p.tokens[p.pos+1:] {
		if tok.Type != TokenEOF {
			return nil, p.errorAt(UnexpectedTrailingInput, tok, tok.Pos)
		}
	}
	return expr, nil
}

func (p *parser) expression() (Expr, error) {
	return p.equality()
}

func (p *parser) equality() (Expr, error) {
	left, err := p.comparison()
	if err != nil {
		return nil, err
	}
	var expr Expr = left
	for {
		op, tok, ok := p.matchBinary(TokenEqualEqual, TokenBangEqual)
		if !ok {
			return expr, nil
		}
		right, err := p.comparison()
		if err != nil {
			return nil, err
		}
		expr = &Equality{Left: expr, Op: op, Right: right, position: tok.Pos}
	}
}

func (p *parser) comparison() (ComparisonExpr, error) {
	left, err := p.term()
	if err != nil {
		return nil, err
	}
	var expr ComparisonExpr = left
	for {
		op, tok, ok := p.matchBinary(TokenGreater, TokenGreaterEqual, TokenLess, TokenLessEqual)
		if !ok {
			return expr, nil
		}
		right, err := p.term()
		if err != nil {
			return nil, err
		}
		expr = &Comparison{Left: expr, Op: op, Right: right, position: tok.Pos}
	}
}

func (p *parser) term() (TermExpr, error) {
	left, err := p.factor()
	if err != nil {
		return nil, err
	}
	var expr TermExpr = left
	for {
		op, tok, ok := p.matchBinary(TokenMinus, TokenPlus)
		if !ok {
			return expr, nil
		}
		right, err := p.factor()
		if err != nil {
			return nil, err
		}
		expr = &Term{Left: expr, Op: op, Right: right, position: tok.Pos}
	}
}

func (p *parser) factor() (FactorExpr, error) {
	left, err := p.unary()
	if err != nil {
		return nil, err
	}
	var expr FactorExpr = left
	for {
		op, tok, ok := p.matchBinary(TokenSlash, TokenStar)
		if !ok {
			return expr, nil
		}
		right, err := p.unary()
		if err != nil {
			return nil, err
		}
		expr = &Factor{Left: expr, Op: op, Right: right, position: tok.Pos}
	}
}

func (p *parser) unary() (UnaryExpr, error) {
	tok := p.peek()
	var op UnaryOp
	switch tok.Type {
	case TokenBang:
		op = OpNot
	case TokenMinus:
		op = OpNegate
	default:
		return p.primary()
	}
	p.advance()

	if err := p.enter(tok); err != nil {
		return nil, err
	}
	defer p.leave()

	right, err := p.unary()
	if err != nil {
		return nil, err
	}
	return &Unary{Op: op, Right: right, position: tok.Pos}, nil
}

func (p *parser) primary() (PrimaryExpr, error) {
	tok := p.peek()
	switch tok.Type {
	case TokenNumber:
		p.advance()
		return &Literal{Kind: LiteralNumber, Value: tok.Literal, position: tok.Pos}, nil
	case TokenString:
		p.advance()
		return &Literal{Kind: LiteralString, Value: tok.Literal, position: tok.Pos}, nil
	case TokenTrue:
		p.advance()
		return &Literal{Kind: LiteralTrue, Value: true, position: tok.Pos}, nil
	case TokenFalse:
		p.advance()
		return &Literal{Kind: LiteralFalse, Value: false, position: tok.Pos}, nil
	case TokenNil:
		p.advance()
		return &Literal{Kind: LiteralNil, position: tok.Pos}, nil
	case TokenLeftParen:
		return p.grouping()
	default:
		return nil, p.errorAt(ExpectedExpression, tok, tok.Pos)
	}
}

func (p *parser) grouping() (PrimaryExpr, error) {
	open := p.advance()

	if err := p.enter(open); err != nil {
		return nil, err
	}
	defer p.leave()

	inner, err := p.expression()
	if err != nil {
		return nil, err
	}
	if tok := p.peek(); tok.Type != TokenRightParen {
		return nil, p.errorAt(UnterminatedGrouping, tok, open.Pos)
	}
	p.advance()
	return &Grouping{Inner: inner, position: open.Pos}, nil
}

var binaryOps = map[TokenType]BinaryOp{
	TokenEqualEqual:   OpEqual,
	TokenBangEqual:    OpNotEqual,
	TokenGreater:      OpGreater,
	TokenGreaterEqual: OpGreaterEqual,
	TokenLess:         OpLess,
	TokenLessEqual:    OpLessEqual,
	TokenMinus:        OpSubtract,
	TokenPlus:         OpAdd,
	TokenSlash:        OpDivide,
	TokenStar:         OpMultiply,
}

// matchBinary consumes the next token if it is one of types.
func (p *parser) matchBinary(types ...TokenType) (BinaryOp, Token, bool) {
	tok := p.peek()
	for _, tt := range types {
		if tok.Type == tt {
			p.advance()
			return binaryOps[tt], tok, true
		}
	}
	return 0, Token{}, false
}

func (p *parser) peek() Token {
	return p.tokens[p.pos]
}

func (p *parser) advance() Token {
	tok := p.tokens[p.pos]
	if tok.Type != TokenEOF {
		p.pos++
	}
	return tok
}

func (p *parser) enter(tok Token) error {
	p.depth++
	if p.depth > MaxDepth {
		return p.errorAt(TooDeep, tok, tok.Pos)
	}
	return nil
}

func (p *parser) leave() {
	p.depth--
}

func (p *parser) errorAt(kind ParseErrorKind, found Token, pos Position) *ParseError {
	return &ParseError{Kind: kind, Found: found, Pos: pos, source: p.source}
}
