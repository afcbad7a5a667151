package expr

import "math"

// Simplify returns an algebraically reduced copy of node.
//
// Children are reduced first, then local rules are applied: constant
// folding, additive and multiplicative identities, coefficient
// normalization (x*5 -> 5*x) and collection of like terms (5*x + 5*x -> 10*x).
// Every rule produces an already-reduced tree, so one bottom-up pass is
// enough and Simplify(Simplify(e)) is structurally equal to Simplify(e).
func Simplify(node ExprNode) ExprNode {
	switch n := node.(type) {
	case *VarNode, *ConstNode:
		return node

	case *UnaryNode:
		child := Simplify(n.Child)
		if c, ok := child.(*ConstNode); ok {
			if k, ok := fold(applyUnary(n.Op, c.Val)); ok {
				return k
			}
		}
		return &UnaryNode{Op: n.Op, Child: child}

	case *BinaryNode:
		left := Simplify(n.Left)
		right := Simplify(n.Right)

		lc, lok := left.(*ConstNode)
		rc, rok := right.(*ConstNode)

		if lok && rok {
			if k, ok := fold(applyBinary(n.Op, lc.Val, rc.Val)); ok {
				return k
			}
		}

		switch n.Op {
		case OpAdd:
			// 0 + x = x
			if lok && lc.Val == 0 {
				return right
			}
			// x + 0 = x
			if rok && rc.Val == 0 {
				return left
			}
			return collect(OpAdd, left, right)

		case OpSub:
			// x - 0 = x
			if rok && rc.Val == 0 {
				return left
			}
			// 0 - x = -1 * x
			if lok && lc.Val == 0 {
				return product(C(-1), right)
			}
			return collect(OpSub, left, right)

		case OpMul:
			return product(left, right)

		case OpDiv:
			// x / 1 = x
			if rok && rc.Val == 1 {
				return left
			}
			// 0 / x = 0, leaving 0/0 alone
			if lok && lc.Val == 0 && !rok {
				return C(0)
			}

		case OpPow:
			// x^0 = 1
			if rok && rc.Val == 0 {
				return C(1)
			}
			// x^1 = x
			if rok && rc.Val == 1 {
				return left
			}
			// 1^x = 1
			if lok && lc.Val == 1 {
				return C(1)
			}
		}

		return &BinaryNode{Op: n.Op, Left: left, Right: right}

	default:
		return node
	}
}

// fold wraps a computed value as a constant unless it is NaN, which would
// break structural equality.
func fold(v float64) (*ConstNode, bool) {
	if math.IsNaN(v) {
		return nil, false
	}
	return C(v), true
}

// split separates a leading constant coefficient:
// 5*x -> (5, x), 7 -> (7, nil), x -> (1, x).
// Only a finite coefficient over a coefficient-free term is separated, so
// unfolded shapes such as Inf*0 or 2*(3*x) left by an overflow stay opaque.
func split(n ExprNode) (float64, ExprNode) {
	switch t := n.(type) {
	case *ConstNode:
		return t.Val, nil
	case *BinaryNode:
		if t.Op == OpMul {
			if c, ok := t.Left.(*ConstNode); ok && finite(c.Val) && isTerm(t.Right) {
				return c.Val, t.Right
			}
		}
	}
	return 1, n
}

// isTerm reports whether n carries no leading constant coefficient.
func isTerm(n ExprNode) bool {
	switch t := n.(type) {
	case *ConstNode:
		return false
	case *BinaryNode:
		if t.Op == OpMul {
			_, ok := t.Left.(*ConstNode)
			return !ok
		}
	}
	return true
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// scale builds k*t for a reduced, coefficient-free term t.
func scale(k float64, t ExprNode) ExprNode {
	switch k {
	case 0:
		return C(0)
	case 1:
		return t
	}
	return mul(C(k), t)
}

// product multiplies two reduced trees, pulling constant coefficients to the left.
func product(l, r ExprNode) ExprNode {
	lk, lt := split(l)
	rk, rt := split(r)
	k := lk * rk
	if !finite(k) || (lt == nil && rt == nil) {
		return mul(l, r)
	}
	switch {
	case lt == nil:
		return scale(k, rt)
	case rt == nil:
		return scale(k, lt)
	default:
		return scale(k, mul(lt, rt))
	}
}

// collect merges a*t + b*t into (a+b)*t (and a*t - b*t into (a-b)*t).
func collect(op BinaryOp, l, r ExprNode) ExprNode {
	lk, lt := split(l)
	rk, rt := split(r)
	if lt != nil && rt != nil && Equal(lt, rt) {
		k := lk + rk
		if op == OpSub {
			k = lk - rk
		}
		if finite(k) {
			return scale(k, lt)
		}
	}
	return &BinaryNode{Op: op, Left: l, Right: r}
}
