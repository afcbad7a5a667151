package descent

import (
	"bytes"
	"errors"
	"log/slog"
	"math"
	"strings"
	"testing"

	"github.com/wildfunctions/steepest_descent/pkg/expr"
)

func quadratic() (expr.ExprNode, *expr.VarNode) {
	x := expr.Var("x")
	return expr.Must(expr.Mul(expr.Must(expr.Mul(x, expr.C(5))), x)), x
}

func TestSteepestDescent_Quadratic(t *testing.T) {
	f, x := quadratic()
	coord := expr.Binding{"x": 0.56}

	cfg := Config{
		MaxCycle:     30,
		GradCriteria: 0.05,
		DiffCriteria: 0.05,
		StepFactor:   0.1,
		RecordTrace:  true,
	}
	res, err := SteepestDescent(f, []*expr.VarNode{x}, coord, cfg)
	if err != nil {
		t.Fatal(err)
	}

	if res.Status != Converged {
		t.Errorf("Status = %v, want converged", res.Status)
	}
	if res.Cycles < 1 || res.Cycles > 30 {
		t.Errorf("Cycles = %d, want within [1, 30]", res.Cycles)
	}
	if math.Abs(coord["x"]) > 1e-6 {
		t.Errorf("x = %v, want ~0", coord["x"])
	}

	// |x| never grows between cycles.
	prev := math.Inf(1)
	for _, c := range res.Trace {
		ax := math.Abs(c.Coordinate["x"])
		if ax > prev {
			t.Errorf("cycle %d: |x| grew from %v to %v", c.Cycle, prev, ax)
		}
		prev = ax
	}

	if got := res.Partials["x"].String(); got != "(10 * x)" {
		t.Errorf("partial = %s, want (10 * x)", got)
	}
	t.Logf("converged in %d cycles at x=%v value=%v", res.Cycles, coord["x"], res.Value)
}

func TestSteepestDescent_SmallStepMovesMonotonically(t *testing.T) {
	f, x := quadratic()
	coord := expr.Binding{"x": 0.56}

	cfg := DefaultConfig()
	cfg.StepFactor = 0.02
	cfg.RecordTrace = true
	res, err := SteepestDescent(f, []*expr.VarNode{x}, coord, cfg)
	if err != nil {
		t.Fatal(err)
	}

	for i := 1; i < len(res.Trace); i++ {
		a, b := res.Trace[i-1].Coordinate["x"], res.Trace[i].Coordinate["x"]
		if b > a || b < 0 {
			t.Errorf("cycle %d: x went from %v to %v", i, a, b)
		}
	}
	if coord["x"] >= 0.56 {
		t.Errorf("x = %v, expected movement toward 0", coord["x"])
	}
}

func TestSteepestDescent_ConvergesImmediately(t *testing.T) {
	f, x := quadratic()
	coord := expr.Binding{"x": 0.001}

	res, err := SteepestDescent(f, []*expr.VarNode{x}, coord, DefaultConfig())
	if err != nil {
		t.Fatal(err)
	}
	if res.Status != Converged || res.Cycles != 1 {
		t.Errorf("Status=%v Cycles=%d, want converged after 1 cycle", res.Status, res.Cycles)
	}
	if coord["x"] != 0.001 {
		t.Errorf("coordinate changed to %v", coord["x"])
	}
}

func TestSteepestDescent_Exhausted(t *testing.T) {
	x := expr.Var("x")
	// Linear objective: gradient never shrinks.
	f := expr.Must(expr.Mul(expr.C(3), x))
	coord := expr.Binding{"x": 1}

	cfg := DefaultConfig()
	cfg.MaxCycle = 5
	res, err := SteepestDescent(f, []*expr.VarNode{x}, coord, cfg)
	if err != nil {
		t.Fatal(err)
	}
	if res.Status != Exhausted {
		t.Errorf("Status = %v, want exhausted", res.Status)
	}
	if res.Cycles != 5 {
		t.Errorf("Cycles = %d, want 5", res.Cycles)
	}
	want := 1 - 5*3*cfg.StepFactor
	if math.Abs(coord["x"]-want) > 1e-12 {
		t.Errorf("x = %v, want %v", coord["x"], want)
	}
}

func TestSteepestDescent_ZeroCycles(t *testing.T) {
	f, x := quadratic()
	coord := expr.Binding{"x": 0.56}
	cfg := DefaultConfig()
	cfg.MaxCycle = 0

	res, err := SteepestDescent(f, []*expr.VarNode{x}, coord, cfg)
	if err != nil {
		t.Fatal(err)
	}
	if res.Status != Exhausted || res.Cycles != 0 {
		t.Errorf("Status=%v Cycles=%d, want exhausted after 0 cycles", res.Status, res.Cycles)
	}
}

func TestSteepestDescent_TwoVariables(t *testing.T) {
	x, y := expr.Var("x"), expr.Var("y")
	dx := expr.Must(expr.Sub(x, 1))
	dy := expr.Must(expr.Add(y, 2))
	f := expr.Must(expr.Add(expr.Must(expr.Mul(dx, dx)), expr.Must(expr.Mul(dy, dy))))
	coord := expr.Binding{"x": 3, "y": 1}

	cfg := DefaultConfig()
	cfg.MaxCycle = 200
	cfg.GradCriteria = 1e-6
	cfg.DiffCriteria = 1e-9
	res, err := SteepestDescent(f, []*expr.VarNode{x, y}, coord, cfg)
	if err != nil {
		t.Fatal(err)
	}
	if res.Status != Converged {
		t.Errorf("Status = %v, want converged", res.Status)
	}
	if math.Abs(coord["x"]-1) > 1e-4 || math.Abs(coord["y"]+2) > 1e-4 {
		t.Errorf("coordinate = %v, want x=1 y=-2", coord)
	}
}

func TestSteepestDescent_InvalidStepFactor(t *testing.T) {
	f, x := quadratic()
	// The binding is missing x; a config error must win over evaluation.
	coord := expr.Binding{}

	for _, step := range []float64{0, -0.1} {
		cfg := DefaultConfig()
		cfg.StepFactor = step
		_, err := SteepestDescent(f, []*expr.VarNode{x}, coord, cfg)
		if !errors.Is(err, ErrInvalidConfig) {
			t.Errorf("step %v: error = %v, want ErrInvalidConfig", step, err)
		}
		var ce *ConfigError
		if !errors.As(err, &ce) || ce.Field != "step_factor" {
			t.Errorf("step %v: error = %#v, want ConfigError on step_factor", step, err)
		}
	}
	if len(coord) != 0 {
		t.Errorf("coordinate modified: %v", coord)
	}
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		field  string
	}{
		{"defaults", func(*Config) {}, ""},
		{"negative cycles", func(c *Config) { c.MaxCycle = -1 }, "max_cycle"},
		{"negative grad criteria", func(c *Config) { c.GradCriteria = -1 }, "grad_criteria"},
		{"negative diff criteria", func(c *Config) { c.DiffCriteria = -1 }, "diff_criteria"},
		{"negative depth", func(c *Config) { c.MaxDepth = -1 }, "max_depth"},
		{"nan step factor", func(c *Config) { c.StepFactor = math.NaN() }, "step_factor"},
		{"nan grad criteria", func(c *Config) { c.GradCriteria = math.NaN() }, "grad_criteria"},
		{"nan diff criteria", func(c *Config) { c.DiffCriteria = math.NaN() }, "diff_criteria"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.field == "" {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			var ce *ConfigError
			if !errors.As(err, &ce) || ce.Field != tt.field {
				t.Errorf("error = %v, want ConfigError on %s", err, tt.field)
			}
		})
	}
}

func TestSteepestDescent_UnboundVariable(t *testing.T) {
	x, y := expr.Var("x"), expr.Var("y")
	f := expr.Must(expr.Mul(x, y))
	coord := expr.Binding{"x": 1}

	_, err := SteepestDescent(f, []*expr.VarNode{x}, coord, DefaultConfig())
	if !errors.Is(err, expr.ErrUnboundVariable) {
		t.Fatalf("error = %v, want ErrUnboundVariable", err)
	}
}

func TestSteepestDescent_TooDeep(t *testing.T) {
	x := expr.Var("x")
	var f expr.ExprNode = x
	for i := 0; i < 10; i++ {
		f = expr.Sin(f)
	}
	cfg := DefaultConfig()
	cfg.MaxDepth = 5

	_, err := SteepestDescent(f, []*expr.VarNode{x}, expr.Binding{"x": 1}, cfg)
	if !errors.Is(err, ErrTooDeep) {
		t.Errorf("error = %v, want ErrTooDeep", err)
	}
}

func TestOptimizer_Logging(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	o, err := New(DefaultConfig(), WithLogger(logger))
	if err != nil {
		t.Fatal(err)
	}
	f, x := quadratic()
	if _, err := o.Minimize(f, []*expr.VarNode{x}, expr.Binding{"x": 0.56}); err != nil {
		t.Fatal(err)
	}

	out := buf.String()
	for _, want := range []string{"partial derivative", "descent cycle", "descent finished", "status=converged"} {
		if !strings.Contains(out, want) {
			t.Errorf("log output missing %q:\n%s", want, out)
		}
	}
}

func TestPartials(t *testing.T) {
	x, y := expr.Var("x"), expr.Var("y")
	f := expr.Must(expr.Add(expr.Must(expr.Mul(x, y)), expr.Sin(y)))

	p := Partials(f, []*expr.VarNode{x, y})
	if !expr.Equal(p["x"], y) {
		t.Errorf("d/dx = %s, want y", p["x"])
	}
	if got := p["y"].String(); got != "(x + cos(y))" {
		t.Errorf("d/dy = %s, want (x + cos(y))", got)
	}
}
