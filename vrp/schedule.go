// Package vrp - route schedule reconstruction.
//
// The schedule is a single forward pass from the route's chosen start time,
// serving every stop as early as its window allows. Service that cannot
// start by the late bound is forced to start exactly at it and the excess
// is charged as time warp; the pass therefore reproduces the segment
// algebra's total warp.
package vrp

import "github.com/katalvlaran/vroute/segment"

// buildSchedule simulates seq (sentinels included) from startTime and
// returns one Visit row per stop.
func buildSchedule(data *ProblemData, vt VehicleType, seq []int, startTime int64) []Visit {
	out := make([]Visit, 0, len(seq))

	var (
		t    = startTime
		trip int
		i    int
	)
	for i = 0; i < len(seq); i++ {
		loc := data.Location(seq[i])

		arrival := t
		if i > 0 {
			arrival = segment.SatAdd(t, data.Dur(vt.Profile, seq[i-1], seq[i]))
		}

		twEarly, twLate := loc.TwEarly, loc.TwLate
		if i == 0 || i == len(seq)-1 {
			// Sentinels honour the vehicle shift as well as the depot window.
			twEarly = max(twEarly, vt.TwEarly)
			twLate = min(twLate, vt.TwLate)
		}

		wait := max(0, twEarly-arrival)
		warp := max(0, segment.SatSub(arrival, twLate))
		startSvc := min(max(arrival, twEarly), twLate)

		service := loc.ServiceDuration
		if i == 0 || i == len(seq)-1 {
			service = 0
		}

		out = append(out, Visit{
			Location:     seq[i],
			Trip:         trip,
			StartService: startSvc,
			EndService:   segment.SatAdd(startSvc, service),
			WaitDuration: wait,
			TimeWarp:     warp,
		})

		t = segment.SatAdd(startSvc, service)
		if i > 0 && i < len(seq)-1 && data.IsDepot(seq[i]) {
			trip++
		}
	}

	return out
}
