// Package ils - adaptive penalty management.
//
// Three constraint families carry independently adapted weights: one per
// load dimension, one for time warp, one for excess distance. Weights live
// as float64 internally and are rounded (floor 1) into the integer cost
// evaluators handed to the search layer.
package ils

import (
	"errors"
	"math"

	"github.com/katalvlaran/vroute/search"
	"github.com/katalvlaran/vroute/vrp"
)

// ErrBadPenaltyParams indicates out-of-range penalty configuration.
var ErrBadPenaltyParams = errors.New("ils: invalid penalty parameters")

// Default penalty knobs.
const (
	DefaultSolutionsBetweenUpdates = 500
	DefaultPenaltyIncrease         = 1.25
	DefaultPenaltyDecrease         = 0.85
	DefaultTargetFeasible          = 0.65
	DefaultFeasTolerance           = 0.05
	DefaultMinPenalty              = 0.1
	DefaultMaxPenalty              = 100000.0
)

// PenaltyParams configures the adaptation cycle.
type PenaltyParams struct {
	// SolutionsBetweenUpdates is the registration window length.
	SolutionsBetweenUpdates int

	// PenaltyIncrease (> 1) scales a weight up when feasibility is rare.
	PenaltyIncrease float64

	// PenaltyDecrease (< 1) scales a weight down when feasibility is easy.
	PenaltyDecrease float64

	// TargetFeasible ∈ [0, 1] is the aimed-for feasibility rate.
	TargetFeasible float64

	// FeasTolerance is the dead band around the target.
	FeasTolerance float64

	// MinPenalty and MaxPenalty clip every weight.
	MinPenalty, MaxPenalty float64
}

// DefaultPenaltyParams returns the production defaults.
func DefaultPenaltyParams() PenaltyParams {
	return PenaltyParams{
		SolutionsBetweenUpdates: DefaultSolutionsBetweenUpdates,
		PenaltyIncrease:         DefaultPenaltyIncrease,
		PenaltyDecrease:         DefaultPenaltyDecrease,
		TargetFeasible:          DefaultTargetFeasible,
		FeasTolerance:           DefaultFeasTolerance,
		MinPenalty:              DefaultMinPenalty,
		MaxPenalty:              DefaultMaxPenalty,
	}
}

// validate rejects nonsensical configurations.
func (p PenaltyParams) validate() error {
	switch {
	case p.SolutionsBetweenUpdates < 1,
		p.PenaltyIncrease <= 1,
		p.PenaltyDecrease <= 0 || p.PenaltyDecrease >= 1,
		p.TargetFeasible < 0 || p.TargetFeasible > 1,
		p.FeasTolerance < 0,
		p.MinPenalty <= 0,
		p.MaxPenalty < p.MinPenalty:
		return ErrBadPenaltyParams
	}

	return nil
}

// PenaltyManager adapts the violation weights over the whole solve.
type PenaltyManager struct {
	params PenaltyParams

	loadPen []float64
	twPen   float64
	distPen float64

	// twMax may exceed params.MaxPenalty on prize-collecting instances; see
	// NewPenaltyManager.
	twMax float64

	loadFeas [][]bool
	twFeas   []bool
	distFeas []bool
}

// NewPenaltyManager seeds weights from the instance: roughly the mean arc
// cost divided by the mean magnitude a violation of that family takes,
// clipped into [MinPenalty, MaxPenalty].
//
// Prize-aware rule: on prize-collecting instances the time-warp weight is
// floored above the largest optional prize, so tolerating a warp never
// beats dropping the client; its ceiling is raised accordingly.
func NewPenaltyManager(data *vrp.ProblemData, params PenaltyParams) (*PenaltyManager, error) {
	if err := params.validate(); err != nil {
		return nil, err
	}

	pm := &PenaltyManager{
		params:   params,
		loadPen:  make([]float64, data.NumLoadDimensions()),
		loadFeas: make([][]bool, data.NumLoadDimensions()),
		twMax:    params.MaxPenalty,
	}

	avgDist := float64(data.AvgArcDistance())
	avgDur := float64(data.AvgArcDuration())

	for d := range pm.loadPen {
		pm.loadPen[d] = pm.clip(avgDist / (1 + float64(data.AvgClientDemand(d))))
	}
	pm.twPen = pm.clip(avgDist / (1 + avgDur))
	pm.distPen = pm.clip(avgDist / (1 + avgDist))

	if maxPrize := data.MaxOptionalPrize(); maxPrize > 0 {
		floor := float64(maxPrize + 1)
		pm.twMax = math.Max(pm.twMax, floor)
		pm.twPen = math.Max(pm.twPen, floor)
	}

	return pm, nil
}

// clip bounds a weight into [MinPenalty, MaxPenalty].
func (pm *PenaltyManager) clip(w float64) float64 {
	return math.Min(math.Max(w, pm.params.MinPenalty), pm.params.MaxPenalty)
}

// Register appends per-family feasibility of the solution to the rolling
// windows, adapting any weight whose window is full.
func (pm *PenaltyManager) Register(s *vrp.Solution) {
	for d := range pm.loadPen {
		pm.loadFeas[d] = append(pm.loadFeas[d], s.ExcessLoad()[d] == 0)
		if len(pm.loadFeas[d]) >= pm.params.SolutionsBetweenUpdates {
			pm.loadPen[d] = pm.adapt(pm.loadPen[d], pm.loadFeas[d], pm.params.MaxPenalty)
			pm.loadFeas[d] = pm.loadFeas[d][:0]
		}
	}

	pm.twFeas = append(pm.twFeas, s.TimeWarp() == 0)
	if len(pm.twFeas) >= pm.params.SolutionsBetweenUpdates {
		pm.twPen = pm.adapt(pm.twPen, pm.twFeas, pm.twMax)
		pm.twFeas = pm.twFeas[:0]
	}

	pm.distFeas = append(pm.distFeas, s.ExcessDistance() == 0)
	if len(pm.distFeas) >= pm.params.SolutionsBetweenUpdates {
		pm.distPen = pm.adapt(pm.distPen, pm.distFeas, pm.params.MaxPenalty)
		pm.distFeas = pm.distFeas[:0]
	}
}

// adapt nudges one weight toward the target feasibility rate.
func (pm *PenaltyManager) adapt(pen float64, feas []bool, ceiling float64) float64 {
	var feasible int
	for _, ok := range feas {
		if ok {
			feasible++
		}
	}
	rate := float64(feasible) / float64(len(feas))

	switch {
	case rate < pm.params.TargetFeasible-pm.params.FeasTolerance:
		pen *= pm.params.PenaltyIncrease
	case rate > pm.params.TargetFeasible+pm.params.FeasTolerance:
		pen *= pm.params.PenaltyDecrease
	}

	return math.Min(math.Max(pen, pm.params.MinPenalty), ceiling)
}

// CostEvaluator freezes the current weights into an integer evaluator.
// Fractional weights round half away from zero with a floor of one unit.
func (pm *PenaltyManager) CostEvaluator() search.CostEvaluator {
	loads := make([]int64, len(pm.loadPen))
	for d, w := range pm.loadPen {
		loads[d] = weightToInt(w)
	}

	return search.NewCostEvaluator(loads, weightToInt(pm.twPen), weightToInt(pm.distPen))
}

// MaxCostEvaluator freezes every weight at its ceiling; used to drive
// restart solutions feasible during the completion pass.
func (pm *PenaltyManager) MaxCostEvaluator() search.CostEvaluator {
	loads := make([]int64, len(pm.loadPen))
	for d := range loads {
		loads[d] = weightToInt(pm.params.MaxPenalty)
	}

	return search.NewCostEvaluator(loads, weightToInt(pm.twMax), weightToInt(pm.params.MaxPenalty))
}

// weightToInt rounds a float weight into the integer cost domain.
func weightToInt(w float64) int64 {
	v := int64(math.Round(w))
	if v < 1 {
		return 1
	}

	return v
}

// LoadPenalty, TWPenalty, DistPenalty expose the raw weights for
// diagnostics.
func (pm *PenaltyManager) LoadPenalty(dim int) float64 { return pm.loadPen[dim] }
func (pm *PenaltyManager) TWPenalty() float64          { return pm.twPen }
func (pm *PenaltyManager) DistPenalty() float64        { return pm.distPen }
