// Package search - orchestrator tests: improvement, idempotence at a local
// optimum, statistics, determinism, and the completion pass.
package search

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/vroute/vrp"
)

// exhaustiveParams disables perturbation for reproducible fixed points.
func exhaustiveParams() Params {
	p := DefaultParams()
	p.Exhaustive = true

	return p
}

// badSplit builds a deliberately poor but valid solution: clients dealt
// against geography.
func badSplit(t *testing.T, data *vrp.ProblemData) *vrp.Solution {
	t.Helper()

	r1, err := vrp.NewRoute(data, []int{1, 4, 2}, 0)
	require.NoError(t, err)
	r2, err := vrp.NewRoute(data, []int{6, 3, 5}, 0)
	require.NoError(t, err)
	sol, err := vrp.NewSolution(data, []vrp.Route{r1, r2})
	require.NoError(t, err)

	return sol
}

func TestLocalSearch_SearchImproves(t *testing.T) {
	data := sixClientData(t)
	ce := testEvaluator()

	ls, err := New(data, 42, exhaustiveParams())
	require.NoError(t, err)

	start := badSplit(t, data)
	improved, err := ls.Search(start, ce)
	require.NoError(t, err)

	require.LessOrEqual(t, ce.PenalisedCost(improved), ce.PenalisedCost(start))
	require.Equal(t, 6, improved.NumClients())
	require.True(t, improved.IsComplete())
}

func TestLocalSearch_IdempotentAtLocalOptimum(t *testing.T) {
	data := sixClientData(t)
	ce := testEvaluator()

	ls, err := New(data, 42, exhaustiveParams())
	require.NoError(t, err)

	first, err := ls.Intensify(badSplit(t, data), ce)
	require.NoError(t, err)

	applied := totalApplications(ls.Statistics())
	second, err := ls.Intensify(first, ce)
	require.NoError(t, err)

	require.Equal(t, ce.PenalisedCost(first), ce.PenalisedCost(second))
	require.Equal(t, applied, totalApplications(ls.Statistics()),
		"a locally optimal solution must re-emerge with zero applications")
}

func TestLocalSearch_StatisticsInvariant(t *testing.T) {
	data := sixClientData(t)
	ce := testEvaluator()

	ls, err := New(data, 7, DefaultParams())
	require.NoError(t, err)

	_, err = ls.Intensify(badSplit(t, data), ce)
	require.NoError(t, err)

	stats := ls.Statistics()
	for _, op := range stats.NodeOps {
		require.LessOrEqual(t, op.NumApplications, op.NumEvaluations, op.Name)
	}
	for _, op := range stats.RouteOps {
		require.LessOrEqual(t, op.NumApplications, op.NumEvaluations, op.Name)
	}
	require.GreaterOrEqual(t, stats.NumMoves, stats.NumImproving)
}

func TestLocalSearch_Deterministic(t *testing.T) {
	data := sixClientData(t)
	ce := testEvaluator()

	run := func() *vrp.Solution {
		ls, err := New(data, 1234, DefaultParams())
		require.NoError(t, err)
		out, err := ls.Intensify(badSplit(t, data), ce)
		require.NoError(t, err)

		return out
	}

	a, b := run(), run()
	require.Equal(t, a.NumRoutes(), b.NumRoutes())
	for i := 0; i < a.NumRoutes(); i++ {
		require.Equal(t, a.Route(i).Visits(), b.Route(i).Visits())
	}
	require.Equal(t, a.Distance(), b.Distance())
}

func TestLocalSearch_CompletionInsertsRequired(t *testing.T) {
	data := sixClientData(t)
	ce := testEvaluator()

	ls, err := New(data, 3, exhaustiveParams())
	require.NoError(t, err)

	// Start with clients 5 and 6 missing.
	r1, err := vrp.NewRoute(data, []int{1, 2, 3, 4}, 0)
	require.NoError(t, err)
	partial, err := vrp.NewSolution(data, []vrp.Route{r1})
	require.NoError(t, err)
	require.False(t, partial.IsComplete())

	out, err := ls.Search(partial, ce)
	require.NoError(t, err)
	require.True(t, out.IsComplete())
	require.Empty(t, out.MissingClients())
}

func TestLocalSearch_CompletionSkipsUnprofitableOptional(t *testing.T) {
	data := prizeData(t)
	ce := NewCostEvaluator([]int64{1}, 1, 1)

	ls, err := New(data, 5, exhaustiveParams())
	require.NoError(t, err)

	empty, err := vrp.NewSolution(data, nil)
	require.NoError(t, err)

	out, err := ls.Search(empty, ce)
	require.NoError(t, err)

	// The far, low-prize client stays out; the near, high-prize one is
	// collected.
	require.Equal(t, 1, out.NumClients())
	require.Equal(t, []int{1}, out.Route(0).Visits())
}

func TestLocalSearch_RejectsBadParams(t *testing.T) {
	data := sixClientData(t)

	bad := DefaultParams()
	bad.OverlapTolerance = 2
	_, err := New(data, 1, bad)
	require.ErrorIs(t, err, ErrBadParams)

	routeAsNode := DefaultParams()
	routeAsNode.NodeOperators = []OpTag{OpSwapStar}
	_, err = New(data, 1, routeAsNode)
	require.ErrorIs(t, err, ErrBadOperator)

	_, err = New(nil, 1, DefaultParams())
	require.ErrorIs(t, err, ErrNilData)
}

// totalApplications sums operator applications.
func totalApplications(s *Statistics) int {
	var sum int
	for _, op := range s.NodeOps {
		sum += op.NumApplications
	}
	for _, op := range s.RouteOps {
		sum += op.NumApplications
	}

	return sum
}

// prizeData has two optional clients: one near with a big prize, one far
// with a prize below its travel cost.
func prizeData(t *testing.T) *vrp.ProblemData {
	t.Helper()

	coords := [][2]int64{{0, 0}, {5, 0}, {100, 0}}
	m := euclidMatrix(coords)

	near := vrp.NewClient(5, 0)
	near.Required = false
	near.Prize = 50
	near.Delivery = []int64{1}

	far := vrp.NewClient(100, 0)
	far.Required = false
	far.Prize = 30 // round trip costs 200
	far.Delivery = []int64{1}

	data, err := vrp.NewProblemData(
		[]vrp.Location{vrp.NewDepot(0, 0)},
		[]vrp.Location{near, far},
		[]vrp.VehicleType{vrp.NewVehicleType(1, []int64{10})},
		nil,
		[]*vrp.Matrix{m},
		[]*vrp.Matrix{m},
	)
	require.NoError(t, err)

	return data
}
