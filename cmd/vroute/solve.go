// Command vroute - the solve subcommand.
package main

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/samber/lo"
	"github.com/spf13/cobra"

	"github.com/katalvlaran/vroute/ils"
	"github.com/katalvlaran/vroute/stop"
	"github.com/katalvlaran/vroute/vrp"
	"github.com/katalvlaran/vroute/vrplib"
)

// errInfeasible makes the command exit non-zero when no feasible solution
// was found within the budget.
var errInfeasible = errors.New("no feasible solution found")

func newSolveCommand() *cobra.Command {
	var (
		seed          int64
		maxIterations int
		maxRuntime    time.Duration
		noImprovement int
		paramsPath    string
		quiet         bool
		verbose       bool
	)

	cmd := &cobra.Command{
		Use:   "solve <instance>",
		Short: "Solve a VRPLIB instance",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := vrplib.ReadFile(args[0])
			if err != nil {
				return err
			}

			opts := ils.DefaultOptions()
			opts.Seed = seed
			if paramsPath != "" {
				if err = applyParamsFile(paramsPath, &opts); err != nil {
					return err
				}
			}
			opts.MaxIterations = maxIterations
			opts.MaxRuntime = maxRuntime
			if noImprovement > 0 {
				if opts.Stop, err = stop.NoImprovement(noImprovement); err != nil {
					return err
				}
			}

			logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.TimeOnly}).
				With().Timestamp().Logger()
			switch {
			case quiet:
				logger = zerolog.Nop()
			case verbose:
				logger = logger.Level(zerolog.DebugLevel)
			default:
				logger = logger.Level(zerolog.InfoLevel)
			}
			opts.Logger = logger

			result, err := ils.Solve(data, opts)
			if err != nil {
				return err
			}
			report(cmd, result)
			if !result.Best.IsFeasible() {
				return errInfeasible
			}

			return nil
		},
	}

	cmd.Flags().Int64Var(&seed, "seed", 0, "RNG seed (0 uses the fixed default stream)")
	cmd.Flags().IntVar(&maxIterations, "max-iterations", 0, "iteration budget (0 = unset)")
	cmd.Flags().DurationVar(&maxRuntime, "max-runtime", 10*time.Second, "wall-clock budget")
	cmd.Flags().IntVar(&noImprovement, "no-improvement", 0, "stop after this many non-improving iterations (0 = unset)")
	cmd.Flags().StringVar(&paramsPath, "params", "", "YAML parameter file")
	cmd.Flags().BoolVar(&quiet, "quiet", false, "suppress progress logging")
	cmd.Flags().BoolVar(&verbose, "verbose", false, "log per-improvement progress")

	return cmd
}

// report prints the solution summary and per-route lines.
func report(cmd *cobra.Command, result ils.Result) {
	best := result.Best
	out := cmd.OutOrStdout()

	fmt.Fprintf(out, "routes:      %d\n", best.NumRoutes())
	fmt.Fprintf(out, "clients:     %d\n", best.NumClients())
	fmt.Fprintf(out, "distance:    %d\n", best.Distance())
	fmt.Fprintf(out, "duration:    %d\n", best.Duration())
	fmt.Fprintf(out, "feasible:    %t\n", best.IsFeasible())
	fmt.Fprintf(out, "complete:    %t\n", best.IsComplete())
	fmt.Fprintf(out, "iterations:  %d\n", result.NumIterations)
	fmt.Fprintf(out, "runtime:     %s\n", result.Runtime)
	if result.Stats.FinalCost != ils.Infinity() {
		fmt.Fprintf(out, "cost:        %d\n", result.Stats.FinalCost)
	}

	longest := lo.MaxBy(best.Routes(), func(a, b vrp.Route) bool {
		return a.NumClients() > b.NumClients()
	})
	fmt.Fprintf(out, "largest route serves %d clients\n", longest.NumClients())

	for i, r := range best.Routes() {
		fmt.Fprintf(out, "route %3d (type %d, %d trips, distance %6d): %v\n",
			i, r.VehicleType(), r.NumTrips(), r.Distance(), r.Visits())
	}
}
