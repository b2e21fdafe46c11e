// Package search - proposal evaluation.
//
// Every move operator scores its proposal by building the affected routes'
// would-be location sequences (into reusable scratch) and folding them with
// the segment algebra. The same fold fills a Route's cached totals on
// Update, so a returned delta always equals the observed change after
// Apply + Update, exactly.
//
// Complexity: one fold is O(len(seq) × dims); sequences are built into
// caller-owned scratch with no hidden allocations after warm-up.
package search

import (
	"github.com/katalvlaran/vroute/segment"
	"github.com/katalvlaran/vroute/vrp"
)

// routeEval carries the cost-relevant totals of one route layout.
type routeEval struct {
	distance       int64
	excessDistance int64
	duration       int64
	timeWarp       int64
	overtime       int64
	excessLoad     []int64
	fixed          int64
}

// reset clears ev for reuse, sizing the load vector to dims.
func (ev *routeEval) reset(dims int) {
	*ev = routeEval{excessLoad: ev.excessLoad[:0]}
	for i := 0; i < dims; i++ {
		ev.excessLoad = append(ev.excessLoad, 0)
	}
}

// evalSeq folds the full location sequence seq (both depot sentinels
// included) under vehicle type vt into ev. A sequence without clients
// evaluates to all zeros: an unused vehicle costs nothing and travels
// nothing.
func evalSeq(data *vrp.ProblemData, vt vrp.VehicleType, seq []int, ev *routeEval) {
	ev.reset(data.NumLoadDimensions())

	var (
		i       int
		clients int
	)
	for i = 1; i+1 < len(seq); i++ {
		if !data.IsDepot(seq[i]) {
			clients++
		}
	}
	if clients == 0 {
		return
	}
	ev.fixed = vt.FixedCost

	// Distance: plain arc sums against the type's profile.
	for i = 0; i+1 < len(seq); i++ {
		ev.distance = segment.SatAdd(ev.distance, data.Dist(vt.Profile, seq[i], seq[i+1]))
	}
	ev.excessDistance = max(0, segment.SatSub(ev.distance, vt.MaxDistance))

	// Loads: per-dimension fold, finalising at every depot. Initial cargo
	// rides the first trip as a pickup at the start sentinel.
	var dim int
	for dim = 0; dim < data.NumLoadDimensions(); dim++ {
		ls := segment.NewLoadSegment(0, vt.InitialLoad[dim])
		for i = 1; i < len(seq); i++ {
			if data.IsDepot(seq[i]) {
				ls = ls.Finalise(vt.Capacity[dim])
				continue
			}
			loc := data.Location(seq[i])
			ls = ls.Merge(segment.NewLoadSegment(loc.Delivery[dim], loc.Pickup[dim]))
		}
		ev.excessLoad[dim] = ls.Excess
	}

	// Duration: segment fold, then the shift split into overtime and warp.
	ds := seqDuration(data, vt, seq)
	ev.duration = ds.Duration
	ev.timeWarp = ds.Warp()
	rawOver := max(0, segment.SatSub(ds.Duration, vt.ShiftDuration))
	ev.overtime = min(rawOver, vt.MaxOvertime)
	ev.timeWarp = segment.SatAdd(ev.timeWarp, rawOver-ev.overtime)
}

// seqDuration folds the duration segments of seq left to right, with the
// sentinels' windows intersected with the vehicle shift.
func seqDuration(data *vrp.ProblemData, vt vrp.VehicleType, seq []int) segment.DurationSegment {
	ds := shiftSentinelDuration(data, vt, seq[0])

	var i int
	for i = 1; i < len(seq); i++ {
		arc := data.Dur(vt.Profile, seq[i-1], seq[i])
		var next segment.DurationSegment
		if i == len(seq)-1 {
			next = shiftSentinelDuration(data, vt, seq[i])
		} else {
			loc := data.Location(seq[i])
			next = segment.NewDurationSegment(loc.ServiceDuration, loc.TwEarly, loc.TwLate, loc.ReleaseTime)
		}
		ds = ds.Merge(arc, next)
	}

	return ds
}

// shiftSentinelDuration intersects a depot sentinel's window with the
// vehicle shift; sentinels carry no service.
func shiftSentinelDuration(data *vrp.ProblemData, vt vrp.VehicleType, depot int) segment.DurationSegment {
	loc := data.Location(depot)

	return segment.NewDurationSegment(0, max(loc.TwEarly, vt.TwEarly), min(loc.TwLate, vt.TwLate), 0)
}

// interiorLegal reports whether an interior sequence is admissible for vt:
// every interior depot is one of its reload depots and the implied trip
// count respects its cap.
func interiorLegal(data *vrp.ProblemData, vt vrp.VehicleType, seq []int) bool {
	trips := 1
	for i := 1; i+1 < len(seq); i++ {
		if !data.IsDepot(seq[i]) {
			continue
		}
		trips++
		legal := false
		for _, dep := range vt.ReloadDepots {
			if dep == seq[i] {
				legal = true
				break
			}
		}
		if !legal {
			return false
		}
	}

	return trips <= vt.MaxTrips()
}

// deltaSeq returns the change in penalised cost were route r laid out as
// seq. r must be up to date.
func deltaSeq(ce CostEvaluator, r *Route, seq []int, ev *routeEval) int64 {
	evalSeq(r.data, r.vt, seq, ev)

	return segment.SatSub(ce.evalCost(ev, r.vt), r.cost(ce))
}
