package expr

// C returns a constant node.
func C(v float64) *ConstNode {
	return &ConstNode{Val: v}
}

// Var returns a variable node. Two variables with the same name are interchangeable.
func Var(name string) *VarNode {
	return &VarNode{Name: name}
}

// Const builds a constant from any Go integer or floating-point value.
func Const(v any) (*ConstNode, error) {
	f, ok := toFloat(v)
	if !ok {
		return nil, newConstructionError("constant", "non-numeric value %v (%T)", v, v)
	}
	return &ConstNode{Val: f}, nil
}

// Lift returns v unchanged if it is already a node, and promotes raw numbers to constants.
func Lift(v any) (ExprNode, error) {
	if n, ok := v.(ExprNode); ok {
		if isNil(n) {
			return nil, newConstructionError("lift", "nil node")
		}
		return n, nil
	}
	return Const(v)
}

// Add returns l + r.
func Add(l ExprNode, r any) (ExprNode, error) { return binary(OpAdd, l, r) }

// Sub returns l - r.
func Sub(l ExprNode, r any) (ExprNode, error) { return binary(OpSub, l, r) }

// Mul returns l * r.
func Mul(l ExprNode, r any) (ExprNode, error) { return binary(OpMul, l, r) }

// Div returns l / r.
func Div(l ExprNode, r any) (ExprNode, error) { return binary(OpDiv, l, r) }

// Pow returns base ^ exp. Both operands must be terminal (Const or Var).
func Pow(base, exp ExprNode) (ExprNode, error) {
	if isNil(base) || isNil(exp) {
		return nil, newConstructionError("power", "nil operand")
	}
	if !IsTerminal(base) || !IsTerminal(exp) {
		return nil, newConstructionError("power", "operands must be constants or variables, got %s and %s", base, exp)
	}
	return &BinaryNode{Op: OpPow, Left: base, Right: exp}, nil
}

// Sin returns sin(x). Sin, Cos, Ln and NewBinary do not check their
// operands; callers must pass non-nil nodes.
func Sin(x ExprNode) ExprNode { return &UnaryNode{Op: OpSin, Child: x} }

// Cos returns cos(x).
func Cos(x ExprNode) ExprNode { return &UnaryNode{Op: OpCos, Child: x} }

// Ln returns the natural logarithm of x.
func Ln(x ExprNode) ExprNode { return &UnaryNode{Op: OpLn, Child: x} }

// NewBinary builds a binary node without operand checks. Pow built this way
// may have compound operands.
func NewBinary(op BinaryOp, l, r ExprNode) ExprNode {
	return &BinaryNode{Op: op, Left: l, Right: r}
}

// Must panics if err is non-nil. Intended for literal trees.
func Must(node ExprNode, err error) ExprNode {
	if err != nil {
		panic(err)
	}
	return node
}

func binary(op BinaryOp, l ExprNode, r any) (ExprNode, error) {
	if isNil(l) {
		return nil, newConstructionError(binaryOpNames[op], "nil left operand")
	}
	right, err := Lift(r)
	if err != nil {
		return nil, err
	}
	return &BinaryNode{Op: op, Left: l, Right: right}, nil
}

// Unchecked builders used by Diff and Simplify.
func add(l, r ExprNode) ExprNode { return &BinaryNode{Op: OpAdd, Left: l, Right: r} }
func sub(l, r ExprNode) ExprNode { return &BinaryNode{Op: OpSub, Left: l, Right: r} }
func mul(l, r ExprNode) ExprNode { return &BinaryNode{Op: OpMul, Left: l, Right: r} }
func div(l, r ExprNode) ExprNode { return &BinaryNode{Op: OpDiv, Left: l, Right: r} }
func pow(l, r ExprNode) ExprNode { return &BinaryNode{Op: OpPow, Left: l, Right: r} }

func toFloat(v any) (float64, bool) {
	switch x := v.(type) {
	case float64:
		return x, true
	case float32:
		return float64(x), true
	case int:
		return float64(x), true
	case int8:
		return float64(x), true
	case int16:
		return float64(x), true
	case int32:
		return float64(x), true
	case int64:
		return float64(x), true
	case uint:
		return float64(x), true
	case uint8:
		return float64(x), true
	case uint16:
		return float64(x), true
	case uint32:
		return float64(x), true
	case uint64:
		return float64(x), true
	default:
		return 0, false
	}
}
