// Package rox is the front-end of a Lox interpreter: a scanner that turns
// source text into tokens and a recursive-descent parser for the expression
// grammar.
//
// The scanner is a pull-based cursor. Next returns one token or one lexical
// error per call; after an unexpected character it keeps going, so a single
// pass reports every bad character in a file. The token stream always ends
// with an explicit EOF token.
//
// The parser accepts a token slice and returns one expression tree:
//
//	expression := equality
//	equality   := comparison (( "!=" | "==" ) comparison)*
//	comparison := term (( ">" | ">=" | "<" | "<=" ) term)*
//	term       := factor (( "-" | "+" ) factor)*
//	factor     := unary (( "/" | "*" ) unary)*
//	unary      := ( "!" | "-" ) unary | primary
//	primary    := NUMBER | STRING | "true" | "false" | "nil" | "(" expression ")"
//
// Each precedence level has its own node type and interface, and the
// interfaces nest so that a binary node's right operand is always of a
// tighter-binding level. Comments start with // and run to the end of the
// line.
package rox
