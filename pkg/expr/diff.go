package expr

// Diff returns the derivative of node with respect to v. The result is not
// simplified; pass it through Simplify for a readable tree.
func Diff(node ExprNode, v *VarNode) ExprNode {
	switch n := node.(type) {
	case *ConstNode:
		return C(0)

	case *VarNode:
		if n.Name == v.Name {
			return C(1)
		}
		return C(0)

	case *UnaryNode:
		dChild := Diff(n.Child, v)
		switch n.Op {
		case OpSin:
			return mul(dChild, Cos(n.Child))
		case OpCos:
			return mul(C(-1), mul(dChild, Sin(n.Child)))
		case OpLn:
			return div(dChild, n.Child)
		}

	case *BinaryNode:
		if n.Op == OpPow {
			return diffPow(n, v)
		}
		dl := Diff(n.Left, v)
		dr := Diff(n.Right, v)
		switch n.Op {
		case OpAdd:
			return add(dl, dr)
		case OpSub:
			return sub(dl, dr)
		case OpMul:
			// (l*r)' = l'*r + l*r'
			return add(mul(dl, n.Right), mul(n.Left, dr))
		case OpDiv:
			// (l/r)' = (l'*r - l*r') / r^2
			return div(sub(mul(dl, n.Right), mul(n.Left, dr)), mul(n.Right, n.Right))
		}
	}
	panic("expr: Diff of unknown node " + node.String())
}

// diffPow applies the power rule, picking the simplest form for whichever
// side depends on v.
func diffPow(n *BinaryNode, v *VarNode) ExprNode {
	base, exp := n.Left, n.Right
	baseDep := DependsOn(base, v)
	expDep := DependsOn(exp, v)

	switch {
	case !baseDep && !expDep:
		return C(0)
	case !expDep:
		// (b^k)' = k * b^(k-1) * b'
		return mul(mul(exp, pow(base, decrement(exp))), Diff(base, v))
	case !baseDep:
		// (k^e)' = k^e * ln(k) * e'
		return mul(mul(n, Ln(base)), Diff(exp, v))
	default:
		// (b^e)' = b^e * (e' * ln(b) + e * b' / b)
		return mul(n, add(
			mul(Diff(exp, v), Ln(base)),
			div(mul(exp, Diff(base, v)), base),
		))
	}
}

func decrement(e ExprNode) ExprNode {
	if c, ok := e.(*ConstNode); ok {
		return C(c.Val - 1)
	}
	return sub(e, C(1))
}
