// Package search defines shared types, configuration, operator tags, and
// sentinel errors for the local-search layer.
//
// Design goals:
//   - A single Params struct covers the orchestrator's knobs; zero value is
//     not meaningful, use DefaultParams().
//   - The operator set is closed and known at compile time; OpTag names
//     each member and Params selects subsets.
//   - Strict sentinels; no fmt.Errorf where a sentinel suffices.
package search

import "errors"

// Sentinel errors.
var (
	// ErrBadOperator indicates an unknown operator tag or an Exchange shape
	// outside the supported (m, n) grid.
	ErrBadOperator = errors.New("search: unsupported operator")

	// ErrBadParams indicates out-of-range LocalSearch parameters.
	ErrBadParams = errors.New("search: invalid parameters")

	// ErrNilData indicates a nil problem handle.
	ErrNilData = errors.New("search: nil problem data")

	// ErrNilSolution indicates a nil solution handle.
	ErrNilSolution = errors.New("search: nil solution")
)

// OpTag names one member of the closed operator set.
type OpTag int

// Operator tags, in the deterministic registration order used by the
// orchestrator.
const (
	// OpExchange10 relocates one node after another position.
	OpExchange10 OpTag = iota

	// OpExchange20, OpExchange30 relocate segments of two / three nodes.
	OpExchange20
	OpExchange30

	// OpExchange11, OpExchange21, OpExchange22, OpExchange31, OpExchange32,
	// OpExchange33 swap contiguous segments of the tagged lengths.
	OpExchange11
	OpExchange21
	OpExchange22
	OpExchange31
	OpExchange32
	OpExchange33

	// OpSwapTails exchanges route tails after the two anchors.
	OpSwapTails

	// OpRelocateWithDepot relocates a node across routes together with the
	// best-placed reload-depot sentinel.
	OpRelocateWithDepot

	// OpSwapStar exchanges one client per route with free reinsertion.
	OpSwapStar

	// OpSwapRoutes exchanges the whole visit sequences of two routes of
	// different vehicle types.
	OpSwapRoutes
)

// NeighbourhoodParams weights the proximity metric of the granular
// neighbourhood. Proximity of v as a partner of u is
//
//	dist(u,v) + dur(u,v)
//	+ WeightWaitTime × expected waiting at v after serving u
//	+ WeightTimeWarp × expected warp at v after serving u
//
// measured on profile 0.
type NeighbourhoodParams struct {
	// WeightWaitTime scales the waiting-time term.
	WeightWaitTime float64

	// WeightTimeWarp scales the time-warp term.
	WeightTimeWarp float64
}

// Default knobs.
const (
	// DefaultGranularNeighbours is the candidate-set size per client.
	DefaultGranularNeighbours = 40

	// DefaultOverlapTolerance gates route-pair operators on centroid
	// proximity.
	DefaultOverlapTolerance = 0.05

	// DefaultPerturbationSize caps the random removals of the perturbation
	// pass.
	DefaultPerturbationSize = 8

	// DefaultWeightWaitTime and DefaultWeightTimeWarp weight the
	// neighbourhood proximity metric. Both default to zero: the default
	// metric is pure distance + duration, and the temporal terms are
	// opt-in knobs.
	DefaultWeightWaitTime = 0.0
	DefaultWeightTimeWarp = 0.0
)

// Params configures a LocalSearch instance. Use DefaultParams() and
// override fields as needed.
type Params struct {
	// Exhaustive disables the perturbation pass: pure local search from the
	// given solution.
	Exhaustive bool

	// NodeOperators selects the node-level operator subset, in scan order.
	NodeOperators []OpTag

	// RouteOperators selects the route-level operator subset, in scan
	// order.
	RouteOperators []OpTag

	// OverlapTolerance ∈ [0,1] gates route pairs on centroid proximity.
	OverlapTolerance float64

	// GranularNeighbours is K, the candidate-set size per client.
	GranularNeighbours int

	// Neighbourhood weights the proximity metric.
	Neighbourhood NeighbourhoodParams

	// PerturbationSize caps random removals per perturbation pass.
	PerturbationSize int
}

// DefaultParams returns production defaults: the full operator set, K=40
// granular neighbourhoods, 5% overlap tolerance, perturbation enabled.
func DefaultParams() Params {
	return Params{
		Exhaustive: false,
		NodeOperators: []OpTag{
			OpExchange10, OpExchange20, OpExchange30,
			OpExchange11, OpExchange21, OpExchange22,
			OpExchange31, OpExchange32, OpExchange33,
			OpSwapTails, OpRelocateWithDepot,
		},
		RouteOperators:     []OpTag{OpSwapStar, OpSwapRoutes},
		OverlapTolerance:   DefaultOverlapTolerance,
		GranularNeighbours: DefaultGranularNeighbours,
		Neighbourhood: NeighbourhoodParams{
			WeightWaitTime: DefaultWeightWaitTime,
			WeightTimeWarp: DefaultWeightTimeWarp,
		},
		PerturbationSize: DefaultPerturbationSize,
	}
}

// validate rejects out-of-range knobs.
func (p Params) validate() error {
	if p.OverlapTolerance < 0 || p.OverlapTolerance > 1 {
		return ErrBadParams
	}
	if p.GranularNeighbours <= 0 {
		return ErrBadParams
	}
	if p.PerturbationSize < 0 {
		return ErrBadParams
	}

	return nil
}

// NodeOperator proposes and applies a move anchored at two nodes.
//
// Evaluate returns the exact change in penalised cost were the move
// applied, or 0 when the move is not representable at the anchors. Apply
// mutates the involved routes and leaves them dirty; the caller updates
// them before the next query.
type NodeOperator interface {
	Evaluate(u, v *Node, ce CostEvaluator) int64
	Apply(u, v *Node)
	Name() string
}

// RouteOperator proposes and applies a move on a whole route pair, under
// the same Evaluate/Apply contract as NodeOperator.
type RouteOperator interface {
	Evaluate(a, b *Route, ce CostEvaluator) int64
	Apply(a, b *Route)
	Name() string
}
