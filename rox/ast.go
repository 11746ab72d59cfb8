package rox

// Node is implemented by every AST node.
type Node interface {
	Pos() Position
}

// The expression interfaces mirror the precedence levels, lowest first. Each
// level embeds the one below it, so a node of a higher level can stand in
// wherever a lower level is expected, but never the other way round. This
// keeps every binary node's right operand strictly tighter-binding than the
// node itself.
type (
	// Expr is any expression (equality level).
	Expr interface {
		Node
		exprNode()
	}

	ComparisonExpr interface {
		Expr
		comparisonNode()
	}

	TermExpr interface {
		ComparisonExpr
		termNode()
	}

	FactorExpr interface {
		TermExpr
		factorNode()
	}

	UnaryExpr interface {
		FactorExpr
		unaryNode()
	}

	PrimaryExpr interface {
		UnaryExpr
		primaryNode()
	}
)

// BinaryOp is an infix operator.
type BinaryOp int

const (
	OpEqual BinaryOp = iota
	OpNotEqual
	OpGreater
	OpGreaterEqual
	OpLess
	OpLessEqual
	OpSubtract
	OpAdd
	OpDivide
	OpMultiply
)

var binaryOpSymbols = [...]string{
	OpEqual:        "==",
	OpNotEqual:     "!=",
	OpGreater:      ">",
	OpGreaterEqual: ">=",
	OpLess:         "<",
	OpLessEqual:    "<=",
	OpSubtract:     "-",
	OpAdd:          "+",
	OpDivide:       "/",
	OpMultiply:     "*",
}

func (op BinaryOp) String() string {
	if int(op) < 0 || int(op) >= len(binaryOpSymbols) {
		return "?"
	}
	return binaryOpSymbols[op]
}

// UnaryOp is a prefix operator.
type UnaryOp int

const (
	OpNot UnaryOp = iota
	OpNegate
)

func (op UnaryOp) String() string {
	switch op {
	case OpNot:
		return "!"
	case OpNegate:
		return "-"
	default:
		return "?"
	}
}

// Equality is `left (== | !=) right`.
type Equality struct {
	Left     Expr
	Op       BinaryOp
	Right    ComparisonExpr
	position Position
}

func (e *Equality) exprNode()     {}
func (e *Equality) Pos() Position { return e.position }

// Comparison is `left (> | >= | < | <=) right`.
type Comparison struct {
	Left     ComparisonExpr
	Op       BinaryOp
	Right    TermExpr
	position Position
}

func (e *Comparison) exprNode()       {}
func (e *Comparison) comparisonNode() {}
func (e *Comparison) Pos() Position   { return e.position }

// Term is `left (+ | -) right`.
type Term struct {
	Left     TermExpr
	Op       BinaryOp
	Right    FactorExpr
	position Position
}

func (e *Term) exprNode()       {}
func (e *Term) comparisonNode() {}
func (e *Term) termNode()       {}
func (e *Term) Pos() Position   { return e.position }

// Factor is `left (* | /) right`.
type Factor struct {
	Left     FactorExpr
	Op       BinaryOp
	Right    UnaryExpr
	position Position
}

func (e *Factor) exprNode()       {}
func (e *Factor) comparisonNode() {}
func (e *Factor) termNode()       {}
func (e *Factor) factorNode()     {}
func (e *Factor) Pos() Position   { return e.position }

// Unary is a prefix `!` or `-` applied to another unary-level expression.
type Unary struct {
	Op       UnaryOp
	Right    UnaryExpr
	position Position
}

func (e *Unary) exprNode()       {}
func (e *Unary) comparisonNode() {}
func (e *Unary) termNode()       {}
func (e *Unary) factorNode()     {}
func (e *Unary) unaryNode()      {}
func (e *Unary) Pos() Position   { return e.position }

// LiteralKind distinguishes the primary literal forms.
type LiteralKind int

const (
	LiteralNumber LiteralKind = iota
	LiteralString
	LiteralTrue
	LiteralFalse
	LiteralNil
)

func (k LiteralKind) String() string {
	switch k {
	case LiteralNumber:
		return "number"
	case LiteralString:
		return "string"
	case LiteralTrue:
		return "true"
	case LiteralFalse:
		return "false"
	default:
		return "nil"
	}
}

// Literal is a number, string, boolean or nil. Value is a float64, a
// string, a bool, or nil respectively.
type Literal struct {
	Kind     LiteralKind
	Value    any
	position Position
}

func (e *Literal) exprNode()       {}
func (e *Literal) comparisonNode() {}
func (e *Literal) termNode()       {}
func (e *Literal) factorNode()     {}
func (e *Literal) unaryNode()      {}
func (e *Literal) primaryNode()    {}
func (e *Literal) Pos() Position   { return e.position }

// Grouping is a parenthesized expression.
type Grouping struct {
	Inner    Expr
	position Position
}

func (e *Grouping) exprNode()       {}
func (e *Grouping) comparisonNode() {}
func (e *Grouping) termNode()       {}
func (e *Grouping) factorNode()     {}
func (e *Grouping) unaryNode()      {}
func (e *Grouping) primaryNode()    {}
func (e *Grouping) Pos() Position   { return e.position }

// NumberLit, StringLit, BoolLit and NilLit build literal nodes without
// position information, mainly for comparing trees.
func NumberLit(v float64) *Literal { return &Literal{Kind: LiteralNumber, Value: v} }
func StringLit(v string) *Literal  { return &Literal{Kind: LiteralString, Value: v} }
func NilLit() *Literal             { return &Literal{Kind: LiteralNil} }

func BoolLit(v bool) *Literal {
	if v {
		return &Literal{Kind: LiteralTrue, Value: true}
	}
	return &Literal{Kind: LiteralFalse, Value: false}
}

// Group wraps inner in a Grouping without position information.
func Group(inner Expr) *Grouping { return &Grouping{Inner: inner} }

// Binary assembles the binary node matching op's precedence level. The
// operand types must fit that level; it panics otherwise. It is meant for
// building expected trees, the parser constructs nodes directly.
func Binary(left Expr, op BinaryOp, right Expr) Expr {
	switch op {
	case OpEqual, OpNotEqual:
		return &Equality{Left: left, Op: op, Right: right.(ComparisonExpr)}
	case OpGreater, OpGreaterEqual, OpLess, OpLessEqual:
		return &Comparison{Left: left.(ComparisonExpr), Op: op, Right: right.(TermExpr)}
	case OpAdd, OpSubtract:
		return &Term{Left: left.(TermExpr), Op: op, Right: right.(FactorExpr)}
	default:
		return &Factor{Left: left.(FactorExpr), Op: op, Right: right.(UnaryExpr)}
	}
}

// Prefix builds a Unary node without position information.
func Prefix(op UnaryOp, right UnaryExpr) *Unary { return &Unary{Op: op, Right: right} }
