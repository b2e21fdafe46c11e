// Package search - granular neighbourhood construction.
//
// Each client gets a small, fixed candidate set of partners, computed once
// per LocalSearch lifetime, reducing the move scan from O(N²) to O(N·K).
// Proximity blends distance and duration on profile 0 with optional
// weighted waiting-time and time-warp terms; ties break on the lower
// client index so the candidate order is stable across runs.
package search

import (
	"sort"

	"github.com/katalvlaran/vroute/segment"
	"github.com/katalvlaran/vroute/vrp"
)

// computeNeighbours builds the per-client candidate lists. The returned
// slice is indexed by flat location; depot entries are nil.
func computeNeighbours(data *vrp.ProblemData, k int, np NeighbourhoodParams) [][]int {
	out := make([][]int, data.NumLocations())

	type cand struct {
		loc  int
		prox float64
	}
	cands := make([]cand, 0, data.NumClients())

	var u, v int
	for u = data.NumDepots(); u < data.NumLocations(); u++ {
		cands = cands[:0]
		for v = data.NumDepots(); v < data.NumLocations(); v++ {
			if v == u {
				continue
			}
			cands = append(cands, cand{loc: v, prox: proximity(data, np, u, v)})
		}
		sort.SliceStable(cands, func(i, j int) bool {
			if cands[i].prox != cands[j].prox {
				return cands[i].prox < cands[j].prox
			}

			return cands[i].loc < cands[j].loc
		})

		n := min(k, len(cands))
		list := make([]int, 0, n)
		for i := 0; i < n; i++ {
			list = append(list, cands[i].loc)
		}
		out[u] = list
	}

	return out
}

// proximity scores v as a partner of u: travel effort plus the temporal
// friction of serving v directly after u.
func proximity(data *vrp.ProblemData, np NeighbourhoodParams, u, v int) float64 {
	lu, lv := data.Location(u), data.Location(v)
	dur := data.Dur(0, u, v)

	p := float64(data.Dist(0, u, v)) + float64(dur)

	// Earliest arrival at v after serving u as late as allowed.
	if lu.TwLate != segment.Unbounded {
		late := segment.SatAdd(segment.SatAdd(lu.TwLate, lu.ServiceDuration), dur)
		if wait := lv.TwEarly - late; wait > 0 {
			p += np.WeightWaitTime * float64(wait)
		}
	}

	// Latest arrival at v after serving u as early as possible.
	if lv.TwLate != segment.Unbounded {
		early := segment.SatAdd(segment.SatAdd(lu.TwEarly, lu.ServiceDuration), dur)
		if warp := early - lv.TwLate; warp > 0 {
			p += np.WeightTimeWarp * float64(warp)
		}
	}

	return p
}
