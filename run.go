package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"github.com/wildfunctions/steepest_descent/pkg/descent"
	"github.com/wildfunctions/steepest_descent/pkg/engine"
)

var runFlags struct {
	objective    string
	format       string
	maxCycle     int
	stepFactor   float64
	gradCriteria float64
	diffCriteria float64
	metricsOut   string
}

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Minimize an objective by steepest descent",
	Long: `Minimize a built-in objective by steepest descent.

Settings come from the config file (or the built-in defaults), then from
DESCENT_* environment variables, then from flags.

Examples:
  # Default objective and settings
  descent run

  # Bigger step, more cycles, JSON report
  descent run --objective bowl --step 0.3 --max-cycle 200 --format json

  # Write Prometheus metrics for the run
  descent run --metrics-out descent.prom`,
	RunE: runDescent,
}

func init() {
	rootCmd.AddCommand(runCmd)
	addRunFlags(runCmd)
}

// addRunFlags defines the override flags. Only flags set on the command
// line override the configuration.
func addRunFlags(cmd *cobra.Command) {
	defaults := descent.DefaultConfig()
	cmd.Flags().StringVarP(&runFlags.objective, "objective", "o", "", "override objective name")
	cmd.Flags().StringVarP(&runFlags.format, "format", "f", "", "override output format: text, json")
	cmd.Flags().IntVar(&runFlags.maxCycle, "max-cycle", defaults.MaxCycle, "override maximum number of cycles")
	cmd.Flags().Float64Var(&runFlags.stepFactor, "step", defaults.StepFactor, "override step factor")
	cmd.Flags().Float64Var(&runFlags.gradCriteria, "grad", defaults.GradCriteria, "override gradient criterion")
	cmd.Flags().Float64Var(&runFlags.diffCriteria, "diff", defaults.DiffCriteria, "override value-change criterion")
	cmd.Flags().StringVar(&runFlags.metricsOut, "metrics-out", "", "write Prometheus metrics to this file after the run")
}

func runDescent(cmd *cobra.Command, args []string) error {
	cfg, err := loadRunConfig(cmd)
	if err != nil {
		return err
	}

	logger := newLogger(cmd.ErrOrStderr())
	registry := prometheus.NewRegistry()
	metrics := descent.NewMetrics(registry)

	e, err := engine.New(cfg, engine.WithLogger(logger), engine.WithMetrics(metrics))
	if err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	report, err := e.Run()
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	switch cfg.Format {
	case "json":
		if err := engine.WriteJSONFinal(out, report); err != nil {
			return fmt.Errorf("error writing JSON: %w", err)
		}
	default:
		engine.WriteTextFinal(out, report)
	}

	if runFlags.metricsOut != "" {
		if err := prometheus.WriteToTextfile(runFlags.metricsOut, registry); err != nil {
			return fmt.Errorf("failed to write metrics: %w", err)
		}
	}
	return nil
}

// loadRunConfig reads the config file when one is given and applies flag overrides.
func loadRunConfig(cmd *cobra.Command) (engine.Config, error) {
	cfg := engine.DefaultConfig()
	if cfgFile != "" {
		loaded, err := engine.LoadConfig(cfgFile)
		if err != nil {
			return cfg, err
		}
		cfg = *loaded
	}

	flags := cmd.Flags()
	if flags.Changed("objective") {
		cfg.Objective = runFlags.objective
	}
	if flags.Changed("format") {
		cfg.Format = runFlags.format
	}
	if flags.Changed("max-cycle") {
		cfg.Descent.MaxCycle = runFlags.maxCycle
	}
	if flags.Changed("step") {
		cfg.Descent.StepFactor = runFlags.stepFactor
	}
	if flags.Changed("grad") {
		cfg.Descent.GradCriteria = runFlags.gradCriteria
	}
	if flags.Changed("diff") {
		cfg.Descent.DiffCriteria = runFlags.diffCriteria
	}
	if verbose {
		cfg.Verbose = true
	}
	return cfg, nil
}

func newLogger(w io.Writer) *slog.Logger {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	if w == nil {
		w = os.Stderr
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}
