// Package ils - end-to-end solver tests: the deterministic tiny CVRP,
// option validation, and stop-criterion interplay.
package ils

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/vroute/search"
	"github.com/katalvlaran/vroute/stop"
	"github.com/katalvlaran/vroute/vrp"
)

// tinyCVRP: depot (0,0), clients (10,0) and (20,0) with delivery 10 each,
// one vehicle of capacity 100.
func tinyCVRP(t *testing.T) *vrp.ProblemData {
	t.Helper()

	m, err := vrp.MatrixFromRows([][]int64{
		{0, 10, 20},
		{10, 0, 10},
		{20, 10, 0},
	})
	require.NoError(t, err)

	c1 := vrp.NewClient(10, 0)
	c1.Delivery = []int64{10}
	c2 := vrp.NewClient(20, 0)
	c2.Delivery = []int64{10}

	data, derr := vrp.NewProblemData(
		[]vrp.Location{vrp.NewDepot(0, 0)},
		[]vrp.Location{c1, c2},
		[]vrp.VehicleType{vrp.NewVehicleType(1, []int64{100})},
		nil,
		[]*vrp.Matrix{m},
		[]*vrp.Matrix{m},
	)
	require.NoError(t, derr)

	return data
}

func TestSolve_TinyCVRPDeterministic(t *testing.T) {
	data := tinyCVRP(t)

	solveOnce := func() Result {
		opts := DefaultOptions()
		opts.Seed = 42
		opts.MaxIterations = 50
		res, err := Solve(data, opts)
		require.NoError(t, err)

		return res
	}

	res := solveOnce()
	require.True(t, res.Best.IsFeasible())
	require.True(t, res.Best.IsComplete())
	require.Equal(t, 1, res.Best.NumRoutes())
	require.Equal(t, 2, res.Best.Route(0).NumClients())
	require.Equal(t, int64(40), res.Best.Distance()) // the 0→1→2→0 round trip
	require.Equal(t, 49, res.NumIterations) // the 50th loop-top consultation stops
	require.NotEqual(t, Infinity(), res.Stats.FinalCost)

	// Byte-identical re-run.
	again := solveOnce()
	require.Equal(t, res.Best.Route(0).Visits(), again.Best.Route(0).Visits())
	require.Equal(t, res.Best.Distance(), again.Best.Distance())
	require.Equal(t, res.NumIterations, again.NumIterations)
	require.Equal(t, res.Stats, again.Stats)
}

func TestSolve_FirstFeasibleStopsEarly(t *testing.T) {
	data := tinyCVRP(t)

	opts := DefaultOptions()
	opts.Seed = 7
	opts.Stop = stop.FirstFeasible()
	opts.MaxIterations = 1000

	res, err := Solve(data, opts)
	require.NoError(t, err)
	require.True(t, res.Best.IsFeasible())
	require.Less(t, res.NumIterations, 1000)
}

func TestSolve_ZeroIterationBudget(t *testing.T) {
	data := tinyCVRP(t)

	opts := DefaultOptions()
	c, err := stop.MaxIterations(0)
	require.NoError(t, err)
	opts.Stop = c

	res, serr := Solve(data, opts)
	require.NoError(t, serr)
	require.Equal(t, 0, res.NumIterations)
	require.NotNil(t, res.Best) // the initial intensification still ran
}

func TestSolve_RequiresStopCriterion(t *testing.T) {
	data := tinyCVRP(t)

	_, err := Solve(data, DefaultOptions())
	require.ErrorIs(t, err, ErrNoStop)
}

func TestSolve_RejectsBadILSParams(t *testing.T) {
	data := tinyCVRP(t)

	opts := DefaultOptions()
	opts.MaxIterations = 1
	opts.ILS.HistorySize = 0
	_, err := Solve(data, opts)
	require.ErrorIs(t, err, ErrBadILSParams)
}

func TestSolve_RestartPath(t *testing.T) {
	data := tinyCVRP(t)

	opts := DefaultOptions()
	opts.Seed = 11
	opts.MaxIterations = 20
	opts.ILS.MaxNoImprovement = 3 // force restarts within the budget

	res, err := Solve(data, opts)
	require.NoError(t, err)
	require.True(t, res.Best.IsFeasible())
	require.Equal(t, int64(40), res.Best.Distance())
}

func TestRandomSolution_CoversAllClients(t *testing.T) {
	data := tinyCVRP(t)

	sol, err := randomSolution(data, search.RNGStream(21, 0))
	require.NoError(t, err)
	require.Equal(t, 2, sol.NumClients())
	require.Empty(t, sol.MissingClients())
}
