package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/wildfunctions/steepest_descent/pkg/objective"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List built-in objectives",
	RunE:  listObjectives,
}

func init() {
	rootCmd.AddCommand(listCmd)
}

func listObjectives(cmd *cobra.Command, args []string) error {
	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tEXPRESSION\tDESCRIPTION")
	for _, name := range objective.Names() {
		obj, err := objective.Get(name)
		if err != nil {
			return err
		}
		fmt.Fprintf(w, "%s\t%s\t%s\n", obj.Name(), obj.Expr(), obj.Description())
	}
	return w.Flush()
}
