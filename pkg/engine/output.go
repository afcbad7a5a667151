package engine

import (
	"encoding/json"
	"fmt"
	"io"
	"math"
	"sort"
	"strings"
	"time"

	"github.com/wildfunctions/steepest_descent/pkg/descent"
	"github.com/wildfunctions/steepest_descent/pkg/expr"
)

// TraceEntry summarizes one descent cycle.
type TraceEntry struct {
	Cycle      int          `json:"cycle"`
	Value      float64      `json:"value"`
	Diff       *float64     `json:"diff,omitempty"` // nil on the first cycle
	GradSum    float64      `json:"grad_sum"`
	Gradient   expr.Binding `json:"gradient"`
	Coordinate expr.Binding `json:"coordinate"`
}

func newTraceEntry(c descent.CycleReport) TraceEntry {
	te := TraceEntry{
		Cycle:      c.Cycle,
		Value:      c.Value,
		GradSum:    c.GradSum,
		Gradient:   c.Gradient,
		Coordinate: c.Coordinate,
	}
	if !math.IsInf(c.Diff, 0) && !math.IsNaN(c.Diff) {
		d := c.Diff
		te.Diff = &d
	}
	return te
}

// Report summarizes the entire run.
type Report struct {
	RunID      string            `json:"run_id"`
	Config     Config            `json:"config"`
	Objective  string            `json:"objective"`
	Expression string            `json:"expression"`
	LaTeX      string            `json:"latex"`
	Partials   map[string]string `json:"partials"`
	Start      expr.Binding      `json:"start"`
	Final      expr.Binding      `json:"final"`
	Status     descent.Status    `json:"status"`
	Cycles     int               `json:"cycles"`
	Value      float64           `json:"value"`
	GradSum    float64           `json:"grad_sum"`
	Gradient   expr.Binding      `json:"gradient"`
	Distance   *float64          `json:"distance_to_minimum,omitempty"`
	Trace      []TraceEntry      `json:"trace,omitempty"`
	StartedAt  time.Time         `json:"started_at"`
	FinishedAt time.Time         `json:"finished_at"`
}

// formatBinding renders a binding with sorted keys: "x=0.5, y=1".
func formatBinding(b expr.Binding) string {
	keys := make([]string, 0, len(b))
	for k := range b {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, len(keys))
	for i, k := range keys {
		parts[i] = fmt.Sprintf("%s=%.6g", k, b[k])
	}
	return strings.Join(parts, ", ")
}

// WriteTraceEntry writes one cycle in human-readable format.
func WriteTraceEntry(w io.Writer, t TraceEntry) {
	diff := "-"
	if t.Diff != nil {
		diff = fmt.Sprintf("%.6g", *t.Diff)
	}
	fmt.Fprintf(w, "Cycle %4d | Value: %.6g | Diff: %s | GradSum: %.6g | %s\n",
		t.Cycle, t.Value, diff, t.GradSum, formatBinding(t.Coordinate))
}

// WriteTextFinal writes the final report in human-readable format.
func WriteTextFinal(w io.Writer, r Report) {
	if len(r.Trace) > 0 {
		fmt.Fprintln(w, "--- Trace ---")
		for _, t := range r.Trace {
			WriteTraceEntry(w, t)
		}
	}

	names := make([]string, 0, len(r.Partials))
	for k := range r.Partials {
		names = append(names, k)
	}
	sort.Strings(names)

	fmt.Fprintln(w, "\n========== FINAL RESULT ==========")
	fmt.Fprintf(w, "Run:       %s\n", r.RunID)
	fmt.Fprintf(w, "Objective: %s\n", r.Objective)
	fmt.Fprintf(w, "Expr:      %s\n", r.Expression)
	fmt.Fprintf(w, "LaTeX:     %s\n", r.LaTeX)
	for _, name := range names {
		fmt.Fprintf(w, "d/d%-7s %s\n", name+":", r.Partials[name])
	}
	fmt.Fprintf(w, "Start:     %s\n", formatBinding(r.Start))
	fmt.Fprintf(w, "Final:     %s\n", formatBinding(r.Final))
	fmt.Fprintf(w, "Status:    %s after %d cycles\n", r.Status, r.Cycles)
	fmt.Fprintf(w, "Value:     %.10g\n", r.Value)
	fmt.Fprintf(w, "GradSum:   %.6g\n", r.GradSum)
	if r.Distance != nil {
		fmt.Fprintf(w, "Distance:  %.6g\n", *r.Distance)
	}
	fmt.Fprintln(w, "==================================")
}

// WriteJSONFinal writes the final report as JSON.
func WriteJSONFinal(w io.Writer, r Report) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(r)
}
