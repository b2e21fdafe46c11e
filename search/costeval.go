// Package search - the penalised cost evaluator.
//
// A CostEvaluator is a frozen bundle of penalty weights. It never adapts;
// the penalty manager constructs a fresh evaluator whenever its weights
// move. All arithmetic saturates against segment.Unbounded.
//
// Complexity: solution-level costs are O(routes + dims); route-level and
// proposal-level helpers are O(dims).
package search

import (
	"github.com/katalvlaran/vroute/segment"
	"github.com/katalvlaran/vroute/vrp"
)

// CostEvaluator maps routes, proposals, and solutions to a penalised
// scalar cost under fixed penalty weights.
type CostEvaluator struct {
	loadPenalties []int64
	twPenalty     int64
	distPenalty   int64
}

// NewCostEvaluator bundles one weight per load dimension, a weight on time
// warp, and a weight on excess distance.
func NewCostEvaluator(loadPenalties []int64, twPenalty, distPenalty int64) CostEvaluator {
	return CostEvaluator{
		loadPenalties: append([]int64(nil), loadPenalties...),
		twPenalty:     twPenalty,
		distPenalty:   distPenalty,
	}
}

// LoadPenalty returns the weight of load dimension dim.
func (ce CostEvaluator) LoadPenalty(dim int) int64 { return ce.loadPenalties[dim] }

// TWPenalty returns the time-warp weight.
func (ce CostEvaluator) TWPenalty() int64 { return ce.twPenalty }

// DistPenalty returns the excess-distance weight.
func (ce CostEvaluator) DistPenalty() int64 { return ce.distPenalty }

// PenalisedCost maps a finalised solution to its penalised cost: the real
// cost terms (distance, duration, overtime, fixed vehicles, uncollected
// prizes) plus the weighted violations.
func (ce CostEvaluator) PenalisedCost(s *vrp.Solution) int64 {
	var c int64
	for _, r := range s.Routes() {
		c = segment.SatAdd(c, segment.SatAdd(r.DistanceCost(), r.DurationCost()))
		c = segment.SatAdd(c, r.OvertimeCost())
	}
	c = segment.SatAdd(c, s.FixedCost())
	c = segment.SatAdd(c, s.UncollectedPrizes())

	c = segment.SatAdd(c, segment.SatMul(ce.twPenalty, s.TimeWarp()))
	c = segment.SatAdd(c, segment.SatMul(ce.distPenalty, s.ExcessDistance()))
	for dim, ex := range s.ExcessLoad() {
		c = segment.SatAdd(c, segment.SatMul(ce.loadPenalties[dim], ex))
	}

	return c
}

// Cost maps a feasible solution to its real cost (all penalty terms zero)
// and an infeasible one to the Unbounded sentinel.
func (ce CostEvaluator) Cost(s *vrp.Solution) int64 {
	if !s.IsFeasible() {
		return segment.Unbounded
	}

	return ce.PenalisedCost(s)
}

// evalCost combines a proposal evaluation with a vehicle type's cost rates
// under the evaluator's penalty weights.
func (ce CostEvaluator) evalCost(ev *routeEval, vt vrp.VehicleType) int64 {
	c := ev.fixed
	c = segment.SatAdd(c, segment.SatMul(vt.UnitDistanceCost, ev.distance))
	c = segment.SatAdd(c, segment.SatMul(vt.UnitDurationCost, ev.duration))
	c = segment.SatAdd(c, segment.SatMul(vt.UnitOvertimeCost, ev.overtime))
	c = segment.SatAdd(c, segment.SatMul(ce.twPenalty, ev.timeWarp))
	c = segment.SatAdd(c, segment.SatMul(ce.distPenalty, ev.excessDistance))
	for dim, ex := range ev.excessLoad {
		c = segment.SatAdd(c, segment.SatMul(ce.loadPenalties[dim], ex))
	}

	return c
}
