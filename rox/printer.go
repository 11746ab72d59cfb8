package rox

import (
	"fmt"
	"strings"
)

// Sprint renders expr in parenthesized prefix form, e.g. (+ 1 (* 2 3)).
func Sprint(expr Expr) string {
	var b strings.Builder
	writeExpr(&b, expr)
	return b.String()
}

func writeExpr(b *strings.Builder, expr Expr) {
	switch e := expr.(type) {
	case nil:
		b.WriteString("<nil>")
	case *Equality:
		writeBinary(b, e.Op, e.Left, e.Right)
	case *Comparison:
		writeBinary(b, e.Op, e.Left, e.Right)
	case *Term:
		writeBinary(b, e.Op, e.Left, e.Right)
	case *Factor:
		writeBinary(b, e.Op, e.Left, e.Right)
	case *Unary:
		b.WriteString("(")
		b.WriteString(e.Op.String())
		b.WriteString(" ")
		writeExpr(b, e.Right)
		b.WriteString(")")
	case *Grouping:
		b.WriteString("(group ")
		writeExpr(b, e.Inner)
		b.WriteString(")")
	case *Literal:
		b.WriteString(literalText(e))
	default:
		fmt.Fprintf(b, "<%T>", expr)
	}
}

func writeBinary(b *strings.Builder, op BinaryOp, left, right Expr) {
	b.WriteString("(")
	b.WriteString(op.String())
	b.WriteString(" ")
	writeExpr(b, left)
	b.WriteString(" ")
	writeExpr(b, right)
	b.WriteString(")")
}

func literalText(l *Literal) string {
	switch l.Kind {
	case LiteralNumber:
		if f, ok := l.Value.(float64); ok {
			return FormatNumber(f)
		}
		return fmt.Sprint(l.Value)
	case LiteralString:
		s, _ := l.Value.(string)
		return s
	default:
		return l.Kind.String()
	}
}

// Walk traverses expr in pre-order, calling fn for each node. If fn returns
// false the node's children are skipped.
func Walk(expr Expr, fn func(Expr) bool) {
	if expr == nil || !fn(expr) {
		return
	}
	for _, child := range Children(expr) {
		Walk(child, fn)
	}
}

// Children returns the direct sub-expressions of expr in source order.
func Children(expr Expr) []Expr {
	switch e := expr.(type) {
	case *Equality:
		return []Expr{e.Left, e.Right}
	case *Comparison:
		return []Expr{e.Left, e.Right}
	case *Term:
		return []Expr{e.Left, e.Right}
	case *Factor:
		return []Expr{e.Left, e.Right}
	case *Unary:
		return []Expr{e.Right}
	case *Grouping:
		return []Expr{e.Inner}
	default:
		return nil
	}
}

// Depth returns the height of the tree rooted at expr; a leaf has depth 1.
func Depth(expr Expr) int {
	if expr == nil {
		return 0
	}
	deepest := 0
	for _, child := range Children(expr) {
		deepest = max(deepest, Depth(child))
	}
	return deepest + 1
}
