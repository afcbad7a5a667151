package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/wildfunctions/steepest_descent/pkg/expr"
	"github.com/wildfunctions/steepest_descent/pkg/objective"
)

var diffFlags struct {
	objective string
	variable  string
}

var diffCmd = &cobra.Command{
	Use:   "diff",
	Short: "Print the partial derivatives of an objective",
	Long: `Print each partial derivative of an objective as computed by the
differentiator and after reduction.

Examples:
  # All partials of the bowl objective
  descent diff --objective bowl

  # Only d/dy
  descent diff --objective wave --var y`,
	RunE: diffObjective,
}

func init() {
	rootCmd.AddCommand(diffCmd)

	diffCmd.Flags().StringVarP(&diffFlags.objective, "objective", "o", "quadratic", "objective name")
	diffCmd.Flags().StringVar(&diffFlags.variable, "var", "", "differentiate with respect to this variable only")
}

func diffObjective(cmd *cobra.Command, args []string) error {
	obj, err := objective.Get(diffFlags.objective)
	if err != nil {
		return err
	}

	vars := obj.Vars()
	if diffFlags.variable != "" {
		vars = nil
		for _, v := range obj.Vars() {
			if v.Name == diffFlags.variable {
				vars = append(vars, v)
			}
		}
		if len(vars) == 0 {
			return fmt.Errorf("objective %s has no variable %q", obj.Name(), diffFlags.variable)
		}
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "f = %s\n", obj.Expr())
	for _, v := range vars {
		raw := expr.Diff(obj.Expr(), v)
		reduced := expr.Simplify(raw)
		fmt.Fprintf(out, "\nd/d%s\n", v.Name)
		fmt.Fprintf(out, "  raw:     %s (%d nodes)\n", raw, raw.NodeCount())
		fmt.Fprintf(out, "  reduced: %s (%d nodes)\n", reduced, reduced.NodeCount())
		fmt.Fprintf(out, "  latex:   %s\n", reduced.LaTeX())
	}
	return nil
}
