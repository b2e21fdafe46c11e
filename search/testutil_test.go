// Package search - shared fixtures for the operator and orchestrator tests.
package search

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/vroute/vrp"
)

// euclidMatrix builds a rounded Euclidean matrix over coords.
func euclidMatrix(coords [][2]int64) *vrp.Matrix {
	m := vrp.NewMatrix(len(coords))
	for i := range coords {
		for j := range coords {
			if i == j {
				continue
			}
			dx := float64(coords[i][0] - coords[j][0])
			dy := float64(coords[i][1] - coords[j][1])
			m.Set(i, j, int64(math.Round(math.Hypot(dx, dy))))
		}
	}

	return m
}

// lineCoords is the shared geometry: a depot at the origin and six clients.
var lineCoords = [][2]int64{
	{0, 0}, {10, 0}, {20, 0}, {30, 5}, {5, 15}, {25, 10}, {15, 20},
}

// sixClientData builds a 1-depot / 6-client instance with tight capacity
// and a couple of binding time windows, so operator deltas exercise every
// penalty family.
func sixClientData(t *testing.T) *vrp.ProblemData {
	t.Helper()

	m := euclidMatrix(lineCoords)

	clients := make([]vrp.Location, 0, 6)
	for i := 1; i < len(lineCoords); i++ {
		c := vrp.NewClient(lineCoords[i][0], lineCoords[i][1])
		c.Delivery = []int64{5}
		c.ServiceDuration = 2
		clients = append(clients, c)
	}
	clients[2].TwEarly, clients[2].TwLate = 0, 30
	clients[4].TwEarly, clients[4].TwLate = 10, 40

	vt := vrp.NewVehicleType(2, []int64{12})
	vt.MaxDistance = 90
	vt.ReloadDepots = []int{0}
	vt.MaxReloads = 1

	data, err := vrp.NewProblemData(
		[]vrp.Location{vrp.NewDepot(0, 0)},
		clients,
		[]vrp.VehicleType{vt},
		nil,
		[]*vrp.Matrix{m},
		[]*vrp.Matrix{m},
	)
	require.NoError(t, err)

	return data
}

// testEvaluator carries penalties that make every violation family visible.
func testEvaluator() CostEvaluator {
	return NewCostEvaluator([]int64{11}, 7, 3)
}

// mkRoute fills a fresh route with the given client locations.
func mkRoute(data *vrp.ProblemData, idx, vehicleType int, clients ...int) (*Route, map[int]*Node) {
	r := NewRoute(data, idx, vehicleType)
	nodes := make(map[int]*Node, len(clients))
	for _, c := range clients {
		n := NewNode(c, false)
		nodes[c] = n
		r.Append(n)
	}
	r.Update()

	return r, nodes
}

// twoRoutes builds the canonical [1 2 3] / [4 5 6] split.
func twoRoutes(t *testing.T, data *vrp.ProblemData) (*Route, *Route, map[int]*Node) {
	t.Helper()

	rA, nodesA := mkRoute(data, 0, 0, 1, 2, 3)
	rB, nodesB := mkRoute(data, 1, 0, 4, 5, 6)
	for c, n := range nodesB {
		nodesA[c] = n
	}

	return rA, rB, nodesA
}

// emptyRouteBugData reproduces the two-depot / one-client geometry of the
// empty-route accounting rule.
func emptyRouteBugData(t *testing.T) *vrp.ProblemData {
	t.Helper()

	m, err := vrp.MatrixFromRows([][]int64{
		{0, 5, 1},
		{5, 0, 1},
		{1, 1, 0},
	})
	require.NoError(t, err)

	vt := vrp.NewVehicleType(2, nil)
	vt.StartDepot, vt.EndDepot = 0, 1
	vt.ShiftDuration = 0
	vt.MaxOvertime = 0

	data, err := vrp.NewProblemData(
		[]vrp.Location{vrp.NewDepot(0, 0), vrp.NewDepot(5, 0)},
		[]vrp.Location{vrp.NewClient(2, 0)},
		[]vrp.VehicleType{vt},
		nil,
		[]*vrp.Matrix{m},
		[]*vrp.Matrix{m},
	)
	require.NoError(t, err)

	return data
}
