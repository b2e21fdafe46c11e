// Package ils - the solver entry point and the ILS/LAHC driver.
//
// Solve validates options, assembles the stop criterion, and runs the
// outer loop:
//
//	intensify → register with penalties → best bookkeeping → LAHC
//	acceptance → restart on stagnation → consult the stop criterion.
package ils

import (
	"errors"
	"math/rand"
	"time"

	"github.com/rs/zerolog"

	"github.com/katalvlaran/vroute/search"
	"github.com/katalvlaran/vroute/segment"
	"github.com/katalvlaran/vroute/stop"
	"github.com/katalvlaran/vroute/vrp"
)

// Sentinel errors.
var (
	// ErrNoStop indicates options with no stopping criterion at all.
	ErrNoStop = errors.New("ils: no stopping criterion")

	// ErrBadILSParams indicates out-of-range driver parameters.
	ErrBadILSParams = errors.New("ils: invalid parameters")
)

// Default driver knobs.
const (
	// DefaultMaxNoImprovement triggers a restart after this many
	// consecutive iterations without best-cost improvement.
	DefaultMaxNoImprovement = 50000

	// DefaultHistorySize is the LAHC buffer length.
	DefaultHistorySize = 500
)

// ILSParams configures the outer loop.
type ILSParams struct {
	// MaxNoImprovement (≥ 0) is the restart threshold.
	MaxNoImprovement int

	// HistorySize (≥ 1) is the LAHC buffer length.
	HistorySize int
}

// DefaultILSParams returns the production defaults.
func DefaultILSParams() ILSParams {
	return ILSParams{
		MaxNoImprovement: DefaultMaxNoImprovement,
		HistorySize:      DefaultHistorySize,
	}
}

// validate rejects nonsensical driver parameters.
func (p ILSParams) validate() error {
	if p.MaxNoImprovement < 0 || p.HistorySize < 1 {
		return ErrBadILSParams
	}

	return nil
}

// Options configures a solve. Zero value is not meaningful; use
// DefaultOptions() and override fields as needed.
type Options struct {
	// Seed drives every random decision; a fixed seed reproduces the solve
	// byte for byte.
	Seed int64

	// Stop is the primary stopping criterion; it may be nil when
	// MaxIterations or MaxRuntime is set.
	Stop stop.Criterion

	// MaxIterations (> 0) caps outer-loop iterations; 0 leaves it unset.
	MaxIterations int

	// MaxRuntime (> 0) caps wall-clock time; 0 leaves it unset.
	MaxRuntime time.Duration

	// ILS configures the outer loop.
	ILS ILSParams

	// Penalty configures the adaptive penalty manager.
	Penalty PenaltyParams

	// LocalSearch configures the inner engine.
	LocalSearch search.Params

	// Logger receives progress events; defaults to a no-op logger.
	Logger zerolog.Logger
}

// DefaultOptions returns safe production defaults: seed 0, no stop
// criterion (callers set one), default inner and outer parameters, silent
// logging.
func DefaultOptions() Options {
	return Options{
		ILS:         DefaultILSParams(),
		Penalty:     DefaultPenaltyParams(),
		LocalSearch: search.DefaultParams(),
		Logger:      zerolog.Nop(),
	}
}

// Stats carries the cost trajectory of one solve. Costs follow the
// feasible-or-Unbounded convention.
type Stats struct {
	// InitialCost is the best cost after the first intensification.
	InitialCost int64

	// FinalCost is the best cost at the end of the solve.
	FinalCost int64
}

// Result is the outcome of one solve.
type Result struct {
	// Best is the best solution found; its cost is Unbounded iff no
	// feasible solution was reached.
	Best *vrp.Solution

	// Stats carries the cost trajectory.
	Stats Stats

	// NumIterations counts completed outer-loop iterations.
	NumIterations int

	// Runtime is the wall-clock duration of the solve.
	Runtime time.Duration
}

// Solve runs the full metaheuristic on a validated instance.
func Solve(data *vrp.ProblemData, opts Options) (Result, error) {
	if data == nil {
		return Result{}, search.ErrNilData
	}
	if err := opts.ILS.validate(); err != nil {
		return Result{}, err
	}

	criterion, err := assembleStop(opts)
	if err != nil {
		return Result{}, err
	}

	pm, err := NewPenaltyManager(data, opts.Penalty)
	if err != nil {
		return Result{}, err
	}

	ls, err := search.New(data, opts.Seed, opts.LocalSearch)
	if err != nil {
		return Result{}, err
	}
	restartRNG := search.RNGStream(opts.Seed, 1)

	started := time.Now()
	log := opts.Logger

	seedSol, err := randomSolution(data, restartRNG)
	if err != nil {
		return Result{}, err
	}
	current, err := ls.Intensify(seedSol, pm.CostEvaluator())
	if err != nil {
		return Result{}, err
	}
	pm.Register(current)

	best := current
	bestCost := pm.CostEvaluator().Cost(best)
	initialCost := bestCost
	log.Debug().Int64("cost", bestCost).Msg("initial solution")

	buffer := newLateBuffer(opts.ILS.HistorySize)
	var (
		iterations int
		noImprove  int
	)
	for !criterion.ShouldStop(bestCost) {
		ce := pm.CostEvaluator()

		candidate, ierr := ls.Intensify(current, ce)
		if ierr != nil {
			return Result{}, ierr
		}
		pm.Register(candidate)

		candCost := ce.Cost(candidate)
		if candCost < bestCost {
			best, bestCost = candidate, candCost
			noImprove = 0
			log.Debug().Int("iteration", iterations).Int64("cost", bestCost).Msg("improved")
		}

		candPen := ce.PenalisedCost(candidate)
		currentPen := ce.PenalisedCost(current)
		late, seen := buffer.Peek()
		if candPen < currentPen || (seen && candPen < late) {
			current = candidate
			buffer.Append(candPen)
		} else {
			buffer.Skip()
		}

		noImprove++
		iterations++

		if noImprove >= opts.ILS.MaxNoImprovement {
			current, err = restart(data, ls, pm, restartRNG)
			if err != nil {
				return Result{}, err
			}
			pm.Register(current)
			if c := pm.CostEvaluator().Cost(current); c < bestCost {
				best, bestCost = current, c
			}
			buffer.Reset()
			noImprove = 0
			log.Info().Int("iteration", iterations).Msg("restart")
		}
	}

	log.Info().
		Int("iterations", iterations).
		Int64("cost", bestCost).
		Dur("runtime", time.Since(started)).
		Msg("solve finished")

	return Result{
		Best:          best,
		Stats:         Stats{InitialCost: initialCost, FinalCost: bestCost},
		NumIterations: iterations,
		Runtime:       time.Since(started),
	}, nil
}

// restart generates a fresh random solution and drives it feasible under
// maximal penalties.
func restart(data *vrp.ProblemData, ls *search.LocalSearch, pm *PenaltyManager, rng *rand.Rand) (*vrp.Solution, error) {
	seedSol, err := randomSolution(data, rng)
	if err != nil {
		return nil, err
	}

	return ls.Intensify(seedSol, pm.MaxCostEvaluator())
}

// assembleStop combines the explicit criterion with the iteration and
// runtime conveniences.
func assembleStop(opts Options) (stop.Criterion, error) {
	var criteria []stop.Criterion
	if opts.Stop != nil {
		criteria = append(criteria, opts.Stop)
	}
	if opts.MaxIterations > 0 {
		c, err := stop.MaxIterations(opts.MaxIterations)
		if err != nil {
			return nil, err
		}
		criteria = append(criteria, c)
	}
	if opts.MaxRuntime > 0 {
		c, err := stop.MaxRuntime(opts.MaxRuntime)
		if err != nil {
			return nil, err
		}
		criteria = append(criteria, c)
	}

	switch len(criteria) {
	case 0:
		return nil, ErrNoStop
	case 1:
		return criteria[0], nil
	default:
		return stop.Any(criteria)
	}
}

// Infinity returns the infeasible-cost sentinel callers compare Result
// costs against.
func Infinity() int64 { return segment.Unbounded }
