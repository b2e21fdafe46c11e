// Package search - the SwapRoutes operator.
//
// Exchanges the entire visit sequences of two routes with different vehicle
// types. Same-type pairs, self-pairs, and both-empty pairs are not
// representable; a received interior must stay admissible for its new
// vehicle (reload-depot set and trip cap).
package search

// SwapRoutes exchanges whole visit sequences between vehicle types.
type SwapRoutes struct {
	seqA, seqB []int
	evA, evB   routeEval
}

// NewSwapRoutes returns the operator.
func NewSwapRoutes() *SwapRoutes { return &SwapRoutes{} }

// Name implements RouteOperator.
func (s *SwapRoutes) Name() string { return "SwapRoutes" }

// Evaluate implements RouteOperator.
func (s *SwapRoutes) Evaluate(a, b *Route, ce CostEvaluator) int64 {
	if a == b || a.VehicleTypeIdx() == b.VehicleTypeIdx() {
		return 0
	}
	if a.Empty() && b.Empty() {
		return 0
	}

	s.seqA = crossSeq(s.seqA[:0], a, b)
	s.seqB = crossSeq(s.seqB[:0], b, a)
	if !interiorLegal(a.data, a.vt, s.seqA) || !interiorLegal(b.data, b.vt, s.seqB) {
		return 0
	}

	return deltaSeq(ce, a, s.seqA, &s.evA) + deltaSeq(ce, b, s.seqB, &s.evB)
}

// Apply implements RouteOperator.
func (s *SwapRoutes) Apply(a, b *Route) {
	interiorA := detachInterior(a)
	interiorB := detachInterior(b)
	a.setInterior(interiorB)
	b.setInterior(interiorA)
}

// crossSeq is r's sentinels around donor's interior.
func crossSeq(dst []int, r, donor *Route) []int {
	dst = append(dst, r.StartNode().Loc())
	if donor.Size() > 2 {
		dst = donor.appendSeq(dst, 1, donor.Size()-2)
	}

	return append(dst, r.EndNode().Loc())
}

// detachInterior removes and returns a route's interior nodes in order.
func detachInterior(r *Route) []*Node {
	out := make([]*Node, 0, r.Size()-2)
	for i := 1; i < r.Size()-1; i++ {
		out = append(out, r.GetNode(i))
	}
	r.nodes = r.nodes[:0]
	r.nodes = append(r.nodes, &r.start, &r.end)
	r.reindex()

	return out
}
