// Package vrp_test exercises finalised routes and solutions: cached
// aggregates, trip bookkeeping, schedules, and the distance invariant.
package vrp_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/vroute/vrp"
)

func TestNewRoute_Aggregates(t *testing.T) {
	data := okData(t)

	r, err := vrp.NewRoute(data, []int{1, 2}, 0)
	require.NoError(t, err)

	require.Equal(t, 2, r.NumClients())
	require.Equal(t, 1, r.NumTrips())
	require.Equal(t, int64(40), r.Distance()) // 0→1→2→0
	require.Equal(t, int64(40), r.TravelDuration())
	require.Equal(t, int64(40), r.Duration())
	require.Equal(t, int64(0), r.TimeWarp())
	require.Equal(t, int64(0), r.ExcessDistance())
	require.Equal(t, []int64{20}, r.Delivery())
	require.Equal(t, []int64{0}, r.ExcessLoad())
	require.Equal(t, int64(40), r.DistanceCost()) // unit distance cost 1
	require.True(t, r.IsFeasible())

	x, y := r.Centroid()
	require.InDelta(t, 15.0, x, 1e-9)
	require.InDelta(t, 0.0, y, 1e-9)
}

func TestNewRoute_DistanceEqualsArcSum(t *testing.T) {
	data := reloadData(t)

	// Two trips: 0→1→0 (reload) →2→0.
	r, err := vrp.NewRoute(data, []int{1, 0, 2}, 0)
	require.NoError(t, err)

	require.Equal(t, 2, r.NumTrips())
	require.Equal(t, int64(10+10+20+20), r.Distance())
	require.Equal(t, []int64{0}, r.ExcessLoad()) // 10 per trip under cap 10
	require.True(t, r.IsFeasible())
}

func TestNewRoute_TripCapAndDepotLegality(t *testing.T) {
	data := okData(t)

	// Depot 0 is not a reload depot of the single type.
	_, err := vrp.NewRoute(data, []int{1, 0, 2}, 0)
	require.ErrorIs(t, err, vrp.ErrDepotInRoute)

	reload := reloadData(t)
	_, err = vrp.NewRoute(reload, []int{1, 0, 2, 0, 2}, 0)
	require.Error(t, err) // revisit aside, the trip cap (2) breaks first
}

func TestNewRoute_Empty(t *testing.T) {
	data := okData(t)

	r, err := vrp.NewRoute(data, nil, 0)
	require.NoError(t, err)
	require.True(t, r.Empty())
	require.Equal(t, int64(0), r.Distance()) // no depot-to-depot arc
	require.Equal(t, int64(0), r.Duration())

	x, y := r.Centroid()
	require.Equal(t, 0.0, x)
	require.Equal(t, 0.0, y)
}

func TestRoute_Schedule(t *testing.T) {
	data := windowData(t)

	r, err := vrp.NewRoute(data, []int{1, 2}, 0)
	require.NoError(t, err)

	// The duration-minimising start is 5: leaving later than 5 warps at
	// client 2, leaving earlier waits at client 1.
	require.Equal(t, int64(5), r.StartTime())
	require.Equal(t, int64(45), r.Duration())
	require.Equal(t, int64(5), r.TimeWarp())

	sched := r.Schedule()
	require.Len(t, sched, 4) // depot, two clients, depot

	// Client 1 opens at 15: arrive exactly at 15, no waiting.
	require.Equal(t, 1, sched[1].Location)
	require.Equal(t, int64(15), sched[1].StartService)
	require.Equal(t, int64(0), sched[1].WaitDuration)
	require.Equal(t, int64(20), sched[1].EndService) // 5 service

	// Client 2 closes at 25: arrive at 30, warp 5.
	require.Equal(t, int64(25), sched[2].StartService)
	require.Equal(t, int64(5), sched[2].TimeWarp)

	require.Equal(t, r.TimeWarp(), sched[1].TimeWarp+sched[2].TimeWarp+sched[3].TimeWarp)
	require.Equal(t, int64(45), r.EndTime())
}

func TestNewSolution_Aggregates(t *testing.T) {
	data := okData(t)

	r, err := vrp.NewRoute(data, []int{1, 2}, 0)
	require.NoError(t, err)
	sol, err := vrp.NewSolution(data, []vrp.Route{r})
	require.NoError(t, err)

	require.Equal(t, 1, sol.NumRoutes())
	require.Equal(t, 2, sol.NumClients())
	require.Equal(t, r.Distance(), sol.Distance())
	require.Equal(t, r.Duration(), sol.Duration())
	require.True(t, sol.IsFeasible())
	require.True(t, sol.IsComplete())
	require.Empty(t, sol.MissingClients())
	require.Equal(t, int64(0), sol.UncollectedPrizes())
}

func TestNewSolution_Rejections(t *testing.T) {
	data := okData(t)

	r1, err := vrp.NewRoute(data, []int{1}, 0)
	require.NoError(t, err)
	r2, err := vrp.NewRoute(data, []int{1}, 0)
	require.NoError(t, err)

	_, err = vrp.NewSolution(data, []vrp.Route{r1, r2})
	require.Error(t, err) // client 1 twice (and one vehicle overused)
}

func TestNewSolution_MissingRequired(t *testing.T) {
	data := okData(t)

	r, err := vrp.NewRoute(data, []int{1}, 0)
	require.NoError(t, err)
	sol, err := vrp.NewSolution(data, []vrp.Route{r})
	require.NoError(t, err)

	require.False(t, sol.IsComplete())
	require.Equal(t, []int{2}, sol.MissingClients())
	require.True(t, sol.IsFeasible()) // incompleteness is not infeasibility
}

// reloadData allows a mid-route reload at depot 0 with per-trip capacity 10.
func reloadData(t *testing.T) *vrp.ProblemData {
	t.Helper()

	m := squareMatrix(t, [][]int64{
		{0, 10, 20},
		{10, 0, 10},
		{20, 10, 0},
	})

	c1 := vrp.NewClient(10, 0)
	c1.Delivery = []int64{10}
	c2 := vrp.NewClient(20, 0)
	c2.Delivery = []int64{10}

	vt := vrp.NewVehicleType(1, []int64{10})
	vt.ReloadDepots = []int{0}
	vt.MaxReloads = 1

	data, err := vrp.NewProblemData(
		[]vrp.Location{vrp.NewDepot(0, 0)},
		[]vrp.Location{c1, c2},
		[]vrp.VehicleType{vt},
		nil,
		[]*vrp.Matrix{m},
		[]*vrp.Matrix{m},
	)
	require.NoError(t, err)

	return data
}

// windowData puts tight windows on the okData geometry: client 1 opens
// late, client 2 closes early, service 5 at client 1.
func windowData(t *testing.T) *vrp.ProblemData {
	t.Helper()

	m := squareMatrix(t, [][]int64{
		{0, 10, 20},
		{10, 0, 10},
		{20, 10, 0},
	})

	c1 := vrp.NewClient(10, 0)
	c1.TwEarly, c1.TwLate = 15, 40
	c1.ServiceDuration = 5
	c2 := vrp.NewClient(20, 0)
	c2.TwEarly, c2.TwLate = 0, 25

	data, err := vrp.NewProblemData(
		[]vrp.Location{vrp.NewDepot(0, 0)},
		[]vrp.Location{c1, c2},
		[]vrp.VehicleType{vrp.NewVehicleType(1, []int64{100})},
		nil,
		[]*vrp.Matrix{m},
		[]*vrp.Matrix{m},
	)
	require.NoError(t, err)

	return data
}
