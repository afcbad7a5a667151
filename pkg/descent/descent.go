// Package descent minimizes a scalar expression by steepest descent over
// symbolic partial derivatives.
package descent

import (
	"fmt"
	"io"
	"log/slog"
	"math"

	"github.com/wildfunctions/steepest_descent/pkg/expr"
)

// Status tells why a run stopped.
type Status int

const (
	Exhausted Status = iota // MaxCycle reached without meeting the criteria
	Converged
)

func (s Status) String() string {
	if s == Converged {
		return "converged"
	}
	return "exhausted"
}

// MarshalText lets Status render as a word in JSON and YAML reports.
func (s Status) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// CycleReport captures one iteration, before the coordinate update.
type CycleReport struct {
	Cycle      int          `json:"cycle"`
	Value      float64      `json:"value"`
	Diff       float64      `json:"diff"`
	GradSum    float64      `json:"grad_sum"`
	Gradient   expr.Binding `json:"gradient"`
	Coordinate expr.Binding `json:"coordinate"`
}

// Result summarizes a run. The final coordinate lives in the caller's binding.
type Result struct {
	Status   Status                   `json:"status"`
	Cycles   int                      `json:"cycles"`
	Value    float64                  `json:"value"`
	GradSum  float64                  `json:"grad_sum"`
	Gradient expr.Binding             `json:"gradient"`
	Partials map[string]expr.ExprNode `json:"-"`
	Trace    []CycleReport            `json:"trace,omitempty"`
}

// Optimizer runs steepest descent with a fixed configuration.
type Optimizer struct {
	cfg     Config
	logger  *slog.Logger
	metrics *Metrics
}

// Option configures an Optimizer.
type Option func(*Optimizer)

// WithLogger sets the structured logger. The default discards everything.
func WithLogger(l *slog.Logger) Option {
	return func(o *Optimizer) {
		if l != nil {
			o.logger = l
		}
	}
}

// WithMetrics records run statistics on m.
func WithMetrics(m *Metrics) Option {
	return func(o *Optimizer) { o.metrics = m }
}

// New validates cfg and returns an Optimizer.
func New(cfg Config, opts ...Option) (*Optimizer, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	o := &Optimizer{
		cfg:    cfg,
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(o)
	}
	return o, nil
}

// SteepestDescent minimizes f over vars starting at coord, updating coord in place.
func SteepestDescent(f expr.ExprNode, vars []*expr.VarNode, coord expr.Binding, cfg Config) (Result, error) {
	o, err := New(cfg)
	if err != nil {
		return Result{}, err
	}
	return o.Minimize(f, vars, coord)
}

// Partials returns Simplify(Diff(f, v)) for every v, keyed by variable name.
func Partials(f expr.ExprNode, vars []*expr.VarNode) map[string]expr.ExprNode {
	partials, _ := computePartials(f, vars)
	return partials
}

func computePartials(f expr.ExprNode, vars []*expr.VarNode) (map[string]expr.ExprNode, map[string]int) {
	out := make(map[string]expr.ExprNode, len(vars))
	rawSizes := make(map[string]int, len(vars))
	for _, v := range vars {
		raw := expr.Diff(f, v)
		out[v.Name] = expr.Simplify(raw)
		rawSizes[v.Name] = raw.NodeCount()
	}
	return out, rawSizes
}

// Minimize runs the descent loop. Each cycle evaluates f and its gradient at
// coord and stops when the gradient sum is below GradCriteria, either on the
// first cycle or together with a value change below DiffCriteria. Otherwise
// every coordinate moves by -gradient*StepFactor.
//
// The stopping metric is the plain sum of the partials, not a norm, so
// opposite-signed components can cancel in multivariate problems.
func (o *Optimizer) Minimize(f expr.ExprNode, vars []*expr.VarNode, coord expr.Binding) (Result, error) {
	if o.cfg.MaxDepth > 0 && f.Depth() > o.cfg.MaxDepth {
		return Result{}, fmt.Errorf("%w: depth %d exceeds limit %d", ErrTooDeep, f.Depth(), o.cfg.MaxDepth)
	}

	partials, rawSizes := computePartials(f, vars)
	for _, v := range vars {
		p := partials[v.Name]
		o.metrics.recordPartial(rawSizes[v.Name], p.NodeCount())
		o.logger.Debug("partial derivative",
			slog.String("var", v.Name),
			slog.String("expr", p.String()),
			slog.Int("raw_nodes", rawSizes[v.Name]),
			slog.Int("reduced_nodes", p.NodeCount()),
		)
	}

	result := Result{Status: Exhausted, Partials: partials}
	prevValue := math.Inf(1)

	for cycle := 0; cycle < o.cfg.MaxCycle; cycle++ {
		value, err := f.Eval(coord)
		if err != nil {
			return result, fmt.Errorf("cycle %d: evaluating objective: %w", cycle, err)
		}

		gradient := make(expr.Binding, len(vars))
		var gradSum float64
		for _, v := range vars {
			g, err := partials[v.Name].Eval(coord)
			if err != nil {
				return result, fmt.Errorf("cycle %d: evaluating d/d%s: %w", cycle, v.Name, err)
			}
			gradient[v.Name] = g
			gradSum += g
		}

		diff := value - prevValue

		result.Cycles = cycle + 1
		result.Value = value
		result.GradSum = gradSum
		result.Gradient = gradient
		o.metrics.recordCycle(value, gradSum)

		if o.cfg.RecordTrace {
			result.Trace = append(result.Trace, CycleReport{
				Cycle:      cycle,
				Value:      value,
				Diff:       diff,
				GradSum:    gradSum,
				Gradient:   gradient,
				Coordinate: snapshot(coord, vars),
			})
		}

		o.logger.Debug("descent cycle",
			slog.Int("cycle", cycle),
			slog.Float64("value", value),
			slog.Float64("diff", diff),
			slog.Float64("grad_sum", gradSum),
		)

		gradSmall := math.Abs(gradSum) < o.cfg.GradCriteria
		if (cycle == 0 && gradSmall) || (gradSmall && math.Abs(diff) < o.cfg.DiffCriteria) {
			result.Status = Converged
			break
		}

		for _, v := range vars {
			coord[v.Name] -= gradient[v.Name] * o.cfg.StepFactor
		}
		prevValue = value
	}

	o.metrics.recordRun(result.Status.String())
	o.logger.Info("descent finished",
		slog.String("status", result.Status.String()),
		slog.Int("cycles", result.Cycles),
		slog.Float64("value", result.Value),
	)
	return result, nil
}

func snapshot(coord expr.Binding, vars []*expr.VarNode) expr.Binding {
	out := make(expr.Binding, len(vars))
	for _, v := range vars {
		out[v.Name] = coord[v.Name]
	}
	return out
}
