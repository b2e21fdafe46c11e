// Package ils - random initial solutions.
//
// A fresh start deals every client, shuffled, round-robin across the whole
// fleet. The result is usually infeasible; the first intensification under
// penalties shapes it.
package ils

import (
	"math/rand"

	"github.com/katalvlaran/vroute/vrp"
)

// randomSolution deals the shuffled clients over the fleet's route slots.
func randomSolution(data *vrp.ProblemData, rng *rand.Rand) (*vrp.Solution, error) {
	clients := make([]int, 0, data.NumClients())
	for c := data.NumDepots(); c < data.NumLocations(); c++ {
		clients = append(clients, c)
	}
	rng.Shuffle(len(clients), func(i, j int) {
		clients[i], clients[j] = clients[j], clients[i]
	})

	// One bucket per vehicle, in type order.
	buckets := make([][]int, 0, data.NumVehicles())
	types := make([]int, 0, data.NumVehicles())
	for t := 0; t < data.NumVehicleTypes(); t++ {
		for i := 0; i < data.VehicleType(t).Count; i++ {
			buckets = append(buckets, nil)
			types = append(types, t)
		}
	}
	for i, c := range clients {
		slot := i % len(buckets)
		buckets[slot] = append(buckets[slot], c)
	}

	routes := make([]vrp.Route, 0, len(buckets))
	for slot, visits := range buckets {
		if len(visits) == 0 {
			continue
		}
		r, err := vrp.NewRoute(data, visits, types[slot])
		if err != nil {
			return nil, err
		}
		routes = append(routes, r)
	}

	return vrp.NewSolution(data, routes)
}
