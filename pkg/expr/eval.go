package expr

import "math"

// Eval evaluates node against the binding b.
func Eval(node ExprNode, b Binding) (float64, error) {
	return node.Eval(b)
}

// Eval for VarNode looks the name up in the binding.
func (v *VarNode) Eval(b Binding) (float64, error) {
	val, ok := b[v.Name]
	if !ok {
		return 0, &UnboundVariableError{Name: v.Name}
	}
	return val, nil
}

// Eval for ConstNode returns the constant value.
func (c *ConstNode) Eval(Binding) (float64, error) {
	return c.Val, nil
}

// Eval for UnaryNode dispatches on op.
func (u *UnaryNode) Eval(b Binding) (float64, error) {
	child, err := u.Child.Eval(b)
	if err != nil {
		return 0, err
	}
	return applyUnary(u.Op, child), nil
}

// Eval for BinaryNode dispatches on op. Division by zero and domain errors
// produce Inf or NaN like plain float64 arithmetic.
func (bn *BinaryNode) Eval(b Binding) (float64, error) {
	left, err := bn.Left.Eval(b)
	if err != nil {
		return 0, err
	}
	right, err := bn.Right.Eval(b)
	if err != nil {
		return 0, err
	}
	return applyBinary(bn.Op, left, right), nil
}

func applyUnary(op UnaryOp, x float64) float64 {
	switch op {
	case OpSin:
		return math.Sin(x)
	case OpCos:
		return math.Cos(x)
	case OpLn:
		return math.Log(x)
	default:
		return math.NaN()
	}
}

func applyBinary(op BinaryOp, l, r float64) float64 {
	switch op {
	case OpAdd:
		return l + r
	case OpSub:
		return l - r
	case OpMul:
		return l * r
	case OpDiv:
		return l / r
	case OpPow:
		return math.Pow(l, r)
	default:
		return math.NaN()
	}
}
