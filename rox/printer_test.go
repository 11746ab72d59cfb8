package rox

import (
	"strings"
	"testing"
)

func TestSprintBuiltTrees(t *testing.T) {
	expr := Binary(
		Group(Binary(NumberLit(1), OpSubtract, NumberLit(0.5))),
		OpLessEqual,
		Prefix(OpNegate, StringLit("x")),
	)
	if got := Sprint(expr); got != "(<= (group (- 1 0.5)) (- x))" {
		t.Fatalf("unexpected rendering %s", got)
	}
	if got := Sprint(Binary(BoolLit(true), OpEqual, NilLit())); got != "(== true nil)" {
		t.Fatalf("unexpected rendering %s", got)
	}
	if got := Sprint(nil); got != "<nil>" {
		t.Fatalf("unexpected nil rendering %s", got)
	}
}

func TestBinaryRejectsLooserRightOperand(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatalf("expected panic for a term used as a factor operand")
		}
	}()
	Binary(NumberLit(1), OpMultiply, Binary(NumberLit(2), OpAdd, NumberLit(3)))
}

func TestWalkVisitsPreOrder(t *testing.T) {
	expr := mustParse(t, "-(1 + 2) * 3")
	var kinds []string
	Walk(expr, func(e Expr) bool {
		kinds = append(kinds, Tree(e).Kind)
		return true
	})
	want := "factor unary grouping term number number number"
	if got := strings.Join(kinds, " "); got != want {
		t.Fatalf("expected %q, got %q", want, got)
	}
}

func TestWalkCanSkipChildren(t *testing.T) {
	expr := mustParse(t, "(1 + 2) == (3 + 4)")
	count := 0
	Walk(expr, func(e Expr) bool {
		count++
		_, isGroup := e.(*Grouping)
		return !isGroup
	})
	if count != 3 {
		t.Fatalf("expected root and two groupings, visited %d", count)
	}
}

func TestTreeEncodesNodes(t *testing.T) {
	root := Tree(mustParse(t, "1 +\n\"two\""))
	if root.Kind != "term" || root.Op != "+" || root.Line != 1 {
		t.Fatalf("unexpected root %#v", root)
	}
	if len(root.Children) != 2 {
		t.Fatalf("expected 2 children, got %d", len(root.Children))
	}
	if c := root.Children[0]; c.Kind != "number" || c.Value != 1.0 {
		t.Fatalf("unexpected left child %#v", c)
	}
	if c := root.Children[1]; c.Kind != "string" || c.Value != "two" || c.Line != 2 {
		t.Fatalf("unexpected right child %#v", c)
	}
	if Tree(nil) != nil {
		t.Fatalf("nil expression should give nil tree")
	}
	if leaf := Tree(NilLit()); leaf.Kind != "nil" || leaf.Value != nil || leaf.Children != nil {
		t.Fatalf("unexpected nil leaf %#v", leaf)
	}
}

func TestFormatNumber(t *testing.T) {
	cases := map[float64]string{
		0:       "0",
		42:      "42",
		0.1:     "0.1",
		1.5:     "1.5",
		123.456: "123.456",
		1e21:    "1000000000000000000000",
	}
	for in, want := range cases {
		if got := FormatNumber(in); got != want {
			t.Fatalf("FormatNumber(%v): expected %s, got %s", in, want, got)
		}
	}
}
