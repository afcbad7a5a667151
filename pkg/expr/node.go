// Package expr builds, evaluates, differentiates and simplifies
// arithmetic and trigonometric expression trees.
package expr

import "math"

// ExprNode is the interface for all expression tree nodes.
//
// The set of implementations is closed: *ConstNode, *VarNode, *UnaryNode and
// *BinaryNode. Nodes are never mutated after construction; Diff and Simplify
// always return new trees (sharing unchanged subtrees is fine).
type ExprNode interface {
	Eval(b Binding) (float64, error)
	String() string
	LaTeX() string
	NodeCount() int
	Depth() int
	node()
}

// Binding maps variable names to values.
type Binding map[string]float64

// UnaryOp identifies a unary operation.
type UnaryOp int

const (
	OpSin UnaryOp = iota
	OpCos
	OpLn
)

// BinaryOp identifies a binary operation.
type BinaryOp int

const (
	OpAdd BinaryOp = iota
	OpSub
	OpMul
	OpDiv
	OpPow // Left ^ Right
)

// VarNode represents a named variable.
type VarNode struct {
	Name string
}

// ConstNode represents a fixed scalar.
type ConstNode struct {
	Val float64
}

// UnaryNode applies a unary operation to a child expression.
type UnaryNode struct {
	Op    UnaryOp
	Child ExprNode
}

// BinaryNode applies a binary operation to two child expressions.
type BinaryNode struct {
	Op          BinaryOp
	Left, Right ExprNode
}

func (*VarNode) node()    {}
func (*ConstNode) node()  {}
func (*UnaryNode) node()  {}
func (*BinaryNode) node() {}

// IsTerminal reports whether node is a Const or a Var.
func IsTerminal(node ExprNode) bool {
	switch node.(type) {
	case *ConstNode, *VarNode:
		return true
	default:
		return false
	}
}

// isNil reports whether node is nil or a typed nil pointer.
func isNil(node ExprNode) bool {
	switch n := node.(type) {
	case nil:
		return true
	case *VarNode:
		return n == nil
	case *ConstNode:
		return n == nil
	case *UnaryNode:
		return n == nil
	case *BinaryNode:
		return n == nil
	}
	return false
}

// Equal reports whether a and b are structurally identical trees.
// Variables compare by name only.
func Equal(a, b ExprNode) bool {
	switch x := a.(type) {
	case *ConstNode:
		y, ok := b.(*ConstNode)
		return ok && (x.Val == y.Val || math.IsNaN(x.Val) && math.IsNaN(y.Val))
	case *VarNode:
		y, ok := b.(*VarNode)
		return ok && x.Name == y.Name
	case *UnaryNode:
		y, ok := b.(*UnaryNode)
		return ok && x.Op == y.Op && Equal(x.Child, y.Child)
	case *BinaryNode:
		y, ok := b.(*BinaryNode)
		return ok && x.Op == y.Op && Equal(x.Left, y.Left) && Equal(x.Right, y.Right)
	default:
		return false
	}
}

// DependsOn reports whether the tree references the variable v.
func DependsOn(node ExprNode, v *VarNode) bool {
	switch n := node.(type) {
	case *VarNode:
		return n.Name == v.Name
	case *ConstNode:
		return false
	case *UnaryNode:
		return DependsOn(n.Child, v)
	case *BinaryNode:
		return DependsOn(n.Left, v) || DependsOn(n.Right, v)
	default:
		return false
	}
}

// Vars returns the names of the free variables of node in first-seen order.
func Vars(node ExprNode) []string {
	var names []string
	seen := map[string]bool{}
	var walk func(ExprNode)
	walk = func(n ExprNode) {
		switch n := n.(type) {
		case *VarNode:
			if !seen[n.Name] {
				seen[n.Name] = true
				names = append(names, n.Name)
			}
		case *UnaryNode:
			walk(n.Child)
		case *BinaryNode:
			walk(n.Left)
			walk(n.Right)
		}
	}
	walk(node)
	return names
}
