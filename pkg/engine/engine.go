package engine

import (
	"io"
	"log/slog"
	"math"
	"time"

	"github.com/google/uuid"

	"github.com/wildfunctions/steepest_descent/pkg/descent"
	"github.com/wildfunctions/steepest_descent/pkg/expr"
	"github.com/wildfunctions/steepest_descent/pkg/objective"
)

// Engine runs one optimization described by a Config.
type Engine struct {
	cfg       Config
	objective objective.Objective
	optimizer *descent.Optimizer
	logger    *slog.Logger
	now       func() time.Time
}

// Option configures an Engine.
type Option func(*engineOptions)

type engineOptions struct {
	logger  *slog.Logger
	metrics *descent.Metrics
}

// WithLogger sets the logger used by the engine and its optimizer.
func WithLogger(l *slog.Logger) Option {
	return func(o *engineOptions) {
		if l != nil {
			o.logger = l
		}
	}
}

// WithMetrics records optimizer statistics on m.
func WithMetrics(m *descent.Metrics) Option {
	return func(o *engineOptions) { o.metrics = m }
}

// New creates a new engine from the given config.
func New(cfg Config, opts ...Option) (*Engine, error) {
	ApplyDefaults(&cfg)
	if err := Validate(&cfg); err != nil {
		return nil, err
	}

	o := engineOptions{logger: slog.New(slog.NewTextHandler(io.Discard, nil))}
	for _, opt := range opts {
		opt(&o)
	}

	obj, err := objective.Get(cfg.Objective)
	if err != nil {
		return nil, err
	}

	dcfg := cfg.Descent
	if cfg.Verbose {
		dcfg.RecordTrace = true
	}
	optimizer, err := descent.New(dcfg, descent.WithLogger(o.logger), descent.WithMetrics(o.metrics))
	if err != nil {
		return nil, err
	}

	return &Engine{
		cfg:       cfg,
		objective: obj,
		optimizer: optimizer,
		logger:    o.logger,
		now:       time.Now,
	}, nil
}

// Run executes the descent and returns the final report.
func (e *Engine) Run() (Report, error) {
	runID := uuid.NewString()
	logger := e.logger.With(slog.String("run_id", runID), slog.String("objective", e.objective.Name()))

	coord := e.objective.Start()
	for k, v := range e.cfg.Start {
		coord[k] = v
	}
	start := copyBinding(coord)

	logger.Info("starting descent",
		slog.String("expr", e.objective.Expr().String()),
		slog.Int("max_cycle", e.cfg.Descent.MaxCycle),
		slog.Float64("step_factor", e.cfg.Descent.StepFactor),
	)

	startedAt := e.now().UTC()
	res, err := e.optimizer.Minimize(e.objective.Expr(), e.objective.Vars(), coord)
	if err != nil {
		logger.Error("descent failed", slog.String("error", err.Error()))
		return Report{}, err
	}

	report := Report{
		RunID:      runID,
		Config:     e.cfg,
		Objective:  e.objective.Name(),
		Expression: e.objective.Expr().String(),
		LaTeX:      e.objective.Expr().LaTeX(),
		Partials:   make(map[string]string, len(res.Partials)),
		Start:      start,
		Final:      coord,
		Status:     res.Status,
		Cycles:     res.Cycles,
		Value:      res.Value,
		GradSum:    res.GradSum,
		Gradient:   res.Gradient,
		StartedAt:  startedAt,
		FinishedAt: e.now().UTC(),
	}
	for _, v := range e.objective.Vars() {
		report.Partials[v.Name] = res.Partials[v.Name].String()
	}
	if minimum := e.objective.Minimum(); minimum != nil {
		report.Distance = distance(coord, minimum)
	}
	if e.cfg.Verbose {
		report.Trace = make([]TraceEntry, len(res.Trace))
		for i, c := range res.Trace {
			report.Trace[i] = newTraceEntry(c)
		}
	}
	return report, nil
}

func distance(a, b expr.Binding) *float64 {
	var sum float64
	for k, v := range b {
		d := a[k] - v
		sum += d * d
	}
	d := math.Sqrt(sum)
	return &d
}

func copyBinding(b expr.Binding) expr.Binding {
	out := make(expr.Binding, len(b))
	for k, v := range b {
		out[k] = v
	}
	return out
}
