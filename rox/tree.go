package rox

// TreeNode is a plain, encoder-friendly view of an expression tree.
type TreeNode struct {
	Kind     string      `json:"kind" yaml:"kind"`
	Op       string      `json:"op,omitempty" yaml:"op,omitempty"`
	Value    any         `json:"value,omitempty" yaml:"value,omitempty"`
	Line     int         `json:"line" yaml:"line"`
	Children []*TreeNode `json:"children,omitempty" yaml:"children,omitempty"`
}

// Tree converts expr into TreeNodes. Node kinds are the precedence level
// names: equality, comparison, term, factor, unary, grouping, and the literal
// kinds number, string, true, false and nil.
func Tree(expr Expr) *TreeNode {
	if expr == nil {
		return nil
	}

	node := &TreeNode{Line: expr.Pos().Line}
	switch e := expr.(type) {
	case *Equality:
		node.Kind, node.Op = "equality", e.Op.String()
	case *Comparison:
		node.Kind, node.Op = "comparison", e.Op.String()
	case *Term:
		node.Kind, node.Op = "term", e.Op.String()
	case *Factor:
		node.Kind, node.Op = "factor", e.Op.String()
	case *Unary:
		node.Kind, node.Op = "unary", e.Op.String()
	case *Grouping:
		node.Kind = "grouping"
	case *Literal:
		node.Kind = e.Kind.String()
		if e.Kind == LiteralNumber || e.Kind == LiteralString {
			node.Value = e.Value
		}
	}

	for _, child := range Children(expr) {
		node.Children = append(node.Children, Tree(child))
	}
	return node
}
