package descent

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/wildfunctions/steepest_descent/pkg/expr"
)

func TestMetrics_RecordRun(t *testing.T) {
	registry := prometheus.NewRegistry()
	metrics := NewMetrics(registry)

	o, err := New(DefaultConfig(), WithMetrics(metrics))
	if err != nil {
		t.Fatal(err)
	}
	f, x := quadratic()
	res, err := o.Minimize(f, []*expr.VarNode{x}, expr.Binding{"x": 0.56})
	if err != nil {
		t.Fatal(err)
	}

	if got := testutil.ToFloat64(metrics.runs.WithLabelValues("converged")); got != 1 {
		t.Errorf("converged runs = %v, want 1", got)
	}
	if got := testutil.ToFloat64(metrics.cycles); got != float64(res.Cycles) {
		t.Errorf("cycles = %v, want %d", got, res.Cycles)
	}
	if got := testutil.ToFloat64(metrics.objective); got != res.Value {
		t.Errorf("objective gauge = %v, want %v", got, res.Value)
	}
	if got := testutil.CollectAndCount(metrics.partialNodes); got != 2 {
		t.Errorf("partial histogram series = %d, want 2", got)
	}
}

func TestMetrics_Exhausted(t *testing.T) {
	registry := prometheus.NewRegistry()
	metrics := NewMetrics(registry)

	cfg := DefaultConfig()
	cfg.MaxCycle = 3
	o, err := New(cfg, WithMetrics(metrics))
	if err != nil {
		t.Fatal(err)
	}
	x := expr.Var("x")
	if _, err := o.Minimize(x, []*expr.VarNode{x}, expr.Binding{"x": 0}); err != nil {
		t.Fatal(err)
	}

	if got := testutil.ToFloat64(metrics.runs.WithLabelValues("exhausted")); got != 1 {
		t.Errorf("exhausted runs = %v, want 1", got)
	}
	if got := testutil.ToFloat64(metrics.cycles); got != 3 {
		t.Errorf("cycles = %v, want 3", got)
	}
}

func TestMetrics_NilIsNoop(t *testing.T) {
	var m *Metrics
	m.recordCycle(1, 2)
	m.recordRun("converged")
	m.recordPartial(3, 1)
}
