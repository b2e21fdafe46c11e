// Command vroute solves vehicle-routing benchmark instances from the
// command line.
package main

import (
	"os"

	"github.com/spf13/cobra"
)

func main() {
	root := &cobra.Command{
		Use:           "vroute",
		Short:         "vroute solves vehicle routing problems",
		Long:          "vroute is a metaheuristic vehicle-routing solver (ILS + LAHC over a granular local search).",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(newSolveCommand())

	if err := root.Execute(); err != nil {
		os.Stderr.WriteString("error: " + err.Error() + "\n")
		os.Exit(1)
	}
}
