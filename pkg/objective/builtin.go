package objective

import (
	"math"

	"github.com/wildfunctions/steepest_descent/pkg/expr"
)

func init() {
	Register("quadratic", newQuadratic)
	Register("linear", newLinear)
	Register("bowl", newBowl)
	Register("wave", newWave)
	Register("ratio", newRatio)
	Register("power", newPower)
}

var (
	x = expr.Var("x")
	y = expr.Var("y")
)

// x * 5 * x
func newQuadratic() Objective {
	return &static{
		name:        "quadratic",
		description: "5x^2, minimum at x=0",
		tree:        expr.Must(expr.Mul(expr.Must(expr.Mul(x, 5.0)), x)),
		vars:        []*expr.VarNode{x},
		start:       expr.Binding{"x": 0.56},
		minimum:     expr.Binding{"x": 0},
	}
}

// 1 * x + 5; unbounded below, so descent always exhausts.
func newLinear() Objective {
	return &static{
		name:        "linear",
		description: "x + 5, no minimum",
		tree:        expr.Must(expr.Add(expr.Must(expr.Mul(expr.C(1), x)), 5.0)),
		vars:        []*expr.VarNode{x},
		start:       expr.Binding{"x": 0.56},
	}
}

func newBowl() Objective {
	dx := expr.Must(expr.Sub(x, 1))
	dy := expr.Must(expr.Add(y, 2))
	return &static{
		name:        "bowl",
		description: "(x-1)^2 + (y+2)^2, minimum at (1, -2)",
		tree:        expr.Must(expr.Add(expr.Must(expr.Mul(dx, dx)), expr.Must(expr.Mul(dy, dy)))),
		vars:        []*expr.VarNode{x, y},
		start:       expr.Binding{"x": 3, "y": 1},
		minimum:     expr.Binding{"x": 1, "y": -2},
	}
}

func newWave() Objective {
	return &static{
		name:        "wave",
		description: "sin(x) + cos(y), local minimum at (-pi/2, pi)",
		tree:        expr.Must(expr.Add(expr.Sin(x), expr.Cos(y))),
		vars:        []*expr.VarNode{x, y},
		start:       expr.Binding{"x": -1, "y": 2.5},
		minimum:     expr.Binding{"x": -math.Pi / 2, "y": math.Pi},
	}
}

func newRatio() Objective {
	return &static{
		name:        "ratio",
		description: "(x^2 + 1) / 2, minimum at x=0",
		tree:        expr.Must(expr.Div(expr.Must(expr.Add(expr.Must(expr.Mul(x, x)), 1)), 2)),
		vars:        []*expr.VarNode{x},
		start:       expr.Binding{"x": 2},
		minimum:     expr.Binding{"x": 0},
	}
}

func newPower() Objective {
	return &static{
		name:        "power",
		description: "x^2 + 3, minimum at x=0",
		tree:        expr.Must(expr.Add(expr.Must(expr.Pow(x, expr.C(2))), 3)),
		vars:        []*expr.VarNode{x},
		start:       expr.Binding{"x": 1.5},
		minimum:     expr.Binding{"x": 0},
	}
}
