package expr

import (
	"fmt"
	"strconv"
)

var unaryOpNames = map[UnaryOp]string{
	OpSin: "sin",
	OpCos: "cos",
	OpLn:  "ln",
}

var binaryOpSymbols = map[BinaryOp]string{
	OpAdd: "+",
	OpSub: "-",
	OpMul: "*",
	OpDiv: "/",
	OpPow: "^",
}

var binaryOpNames = map[BinaryOp]string{
	OpAdd: "add",
	OpSub: "sub",
	OpMul: "mul",
	OpDiv: "div",
	OpPow: "power",
}

func (op UnaryOp) String() string {
	if name, ok := unaryOpNames[op]; ok {
		return name
	}
	return fmt.Sprintf("UnaryOp(%d)", int(op))
}

func (op BinaryOp) String() string {
	if name, ok := binaryOpNames[op]; ok {
		return name
	}
	return fmt.Sprintf("BinaryOp(%d)", int(op))
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}

// String methods

func (v *VarNode) String() string {
	return v.Name
}

func (c *ConstNode) String() string {
	return formatFloat(c.Val)
}

func (u *UnaryNode) String() string {
	return fmt.Sprintf("%s(%s)", unaryOpNames[u.Op], u.Child.String())
}

func (b *BinaryNode) String() string {
	return fmt.Sprintf("(%s %s %s)", b.Left.String(), binaryOpSymbols[b.Op], b.Right.String())
}

// LaTeX methods

func (v *VarNode) LaTeX() string {
	return v.Name
}

func (c *ConstNode) LaTeX() string {
	return formatFloat(c.Val)
}

func (u *UnaryNode) LaTeX() string {
	child := u.Child.LaTeX()
	switch u.Op {
	case OpSin:
		return fmt.Sprintf("\\sin{(%s)}", child)
	case OpCos:
		return fmt.Sprintf("\\cos{(%s)}", child)
	case OpLn:
		return fmt.Sprintf("\\ln{(%s)}", child)
	default:
		return child
	}
}

func (b *BinaryNode) LaTeX() string {
	left := b.Left.LaTeX()
	right := b.Right.LaTeX()
	switch b.Op {
	case OpAdd:
		return fmt.Sprintf("{%s} + {%s}", left, right)
	case OpSub:
		return fmt.Sprintf("{%s} - \\left({%s}\\right)", left, right)
	case OpMul:
		return fmt.Sprintf("\\left({%s}\\right) \\cdot \\left({%s}\\right)", left, right)
	case OpDiv:
		return fmt.Sprintf("\\frac{%s}{%s}", left, right)
	case OpPow:
		return fmt.Sprintf("{%s}^{%s}", left, right)
	default:
		return ""
	}
}
