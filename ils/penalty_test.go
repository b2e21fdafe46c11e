// Package ils - penalty-manager tests: seeding, adaptation direction,
// clipping, evaluators, and the prize-aware time-warp floor.
package ils

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/vroute/vrp"
)

// penaltyData has one depot and one client whose delivery (5) exceeds the
// capacity (3), so any visiting solution is load-infeasible.
func penaltyData(t *testing.T) *vrp.ProblemData {
	t.Helper()

	m, err := vrp.MatrixFromRows([][]int64{{0, 10}, {10, 0}})
	require.NoError(t, err)

	c := vrp.NewClient(10, 0)
	c.Delivery = []int64{5}

	data, derr := vrp.NewProblemData(
		[]vrp.Location{vrp.NewDepot(0, 0)},
		[]vrp.Location{c},
		[]vrp.VehicleType{vrp.NewVehicleType(1, []int64{3})},
		nil,
		[]*vrp.Matrix{m},
		[]*vrp.Matrix{m},
	)
	require.NoError(t, derr)

	return data
}

// register feeds sol into pm n times.
func register(pm *PenaltyManager, sol *vrp.Solution, n int) {
	for i := 0; i < n; i++ {
		pm.Register(sol)
	}
}

func TestPenaltyManager_AdaptsUpAndDown(t *testing.T) {
	data := penaltyData(t)

	params := DefaultPenaltyParams()
	params.SolutionsBetweenUpdates = 4
	pm, err := NewPenaltyManager(data, params)
	require.NoError(t, err)

	infeasible := visitingSolution(t, data)
	require.Positive(t, infeasible.ExcessLoad()[0])
	feasible, serr := vrp.NewSolution(data, nil)
	require.NoError(t, serr)

	before := pm.LoadPenalty(0)
	register(pm, infeasible, 4) // feasibility rate 0 < target − tol
	require.InDelta(t, before*params.PenaltyIncrease, pm.LoadPenalty(0), 1e-9)

	mid := pm.LoadPenalty(0)
	register(pm, feasible, 4) // feasibility rate 1 > target + tol
	require.InDelta(t, mid*params.PenaltyDecrease, pm.LoadPenalty(0), 1e-9)
}

func TestPenaltyManager_Clips(t *testing.T) {
	data := penaltyData(t)

	params := DefaultPenaltyParams()
	params.SolutionsBetweenUpdates = 1
	params.MaxPenalty = 2.0
	pm, err := NewPenaltyManager(data, params)
	require.NoError(t, err)

	infeasible := visitingSolution(t, data)
	register(pm, infeasible, 100)
	require.LessOrEqual(t, pm.LoadPenalty(0), params.MaxPenalty)

	feasible, serr := vrp.NewSolution(data, nil)
	require.NoError(t, serr)
	register(pm, feasible, 200)
	require.GreaterOrEqual(t, pm.LoadPenalty(0), params.MinPenalty)
}

func TestPenaltyManager_Evaluators(t *testing.T) {
	data := penaltyData(t)

	pm, err := NewPenaltyManager(data, DefaultPenaltyParams())
	require.NoError(t, err)

	ce := pm.CostEvaluator()
	require.GreaterOrEqual(t, ce.LoadPenalty(0), int64(1)) // integer floor

	maxCE := pm.MaxCostEvaluator()
	require.Equal(t, int64(DefaultMaxPenalty), maxCE.LoadPenalty(0))
	require.Equal(t, int64(DefaultMaxPenalty), maxCE.DistPenalty())
}

func TestPenaltyManager_PrizeAwareTWFloor(t *testing.T) {
	m, err := vrp.MatrixFromRows([][]int64{{0, 10}, {10, 0}})
	require.NoError(t, err)

	c := vrp.NewClient(10, 0)
	c.Required = false
	c.Prize = 250000 // above the default penalty ceiling

	data, derr := vrp.NewProblemData(
		[]vrp.Location{vrp.NewDepot(0, 0)},
		[]vrp.Location{c},
		[]vrp.VehicleType{vrp.NewVehicleType(1, []int64{})},
		nil,
		[]*vrp.Matrix{m},
		[]*vrp.Matrix{m},
	)
	require.NoError(t, derr)

	pm, perr := NewPenaltyManager(data, DefaultPenaltyParams())
	require.NoError(t, perr)

	// A unit of warp must always cost more than the largest prize gained
	// by tolerating it.
	require.Greater(t, pm.TWPenalty(), float64(c.Prize))
	require.Greater(t, pm.CostEvaluator().TWPenalty(), c.Prize)
}

func TestPenaltyParams_Validation(t *testing.T) {
	data := penaltyData(t)

	bad := DefaultPenaltyParams()
	bad.PenaltyIncrease = 0.5
	_, err := NewPenaltyManager(data, bad)
	require.ErrorIs(t, err, ErrBadPenaltyParams)

	bad = DefaultPenaltyParams()
	bad.MaxPenalty = bad.MinPenalty / 2
	_, err = NewPenaltyManager(data, bad)
	require.ErrorIs(t, err, ErrBadPenaltyParams)
}

// visitingSolution routes the single client.
func visitingSolution(t *testing.T, data *vrp.ProblemData) *vrp.Solution {
	t.Helper()

	r, err := vrp.NewRoute(data, []int{1}, 0)
	require.NoError(t, err)
	sol, err := vrp.NewSolution(data, []vrp.Route{r})
	require.NoError(t, err)

	return sol
}
