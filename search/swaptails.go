// Package search - the SwapTails operator.
//
// SwapTails(u, v) exchanges everything after u in u's route with everything
// after v in v's route. Tails may carry reload sentinels, so the received
// tail must stay admissible for the receiving vehicle (reload-depot set and
// trip cap).
package search

// SwapTails exchanges route tails at two anchors.
type SwapTails struct {
	seqA, seqB []int
	evA, evB   routeEval
}

// NewSwapTails returns the operator.
func NewSwapTails() *SwapTails { return &SwapTails{} }

// Name implements NodeOperator.
func (s *SwapTails) Name() string { return "SwapTails" }

// Evaluate implements NodeOperator.
func (s *SwapTails) Evaluate(u, v *Node, ce CostEvaluator) int64 {
	if !u.HasRoute() || !v.HasRoute() {
		return 0
	}
	rU, rV := u.Route(), v.Route()
	if rU == rV {
		return 0
	}
	// The end sentinels never move; anchoring both at them is a no-op.
	if u.Idx() == rU.Size()-1 && v.Idx() == rV.Size()-1 {
		return 0
	}

	s.seqA = tailSwapSeq(s.seqA[:0], rU, u.Idx(), rV, v.Idx())
	s.seqB = tailSwapSeq(s.seqB[:0], rV, v.Idx(), rU, u.Idx())
	if !interiorLegal(rU.data, rU.vt, s.seqA) || !interiorLegal(rV.data, rV.vt, s.seqB) {
		return 0
	}

	return deltaSeq(ce, rU, s.seqA, &s.evA) + deltaSeq(ce, rV, s.seqB, &s.evB)
}

// Apply implements NodeOperator.
func (s *SwapTails) Apply(u, v *Node) {
	rU, rV := u.Route(), v.Route()
	uIdx, vIdx := u.Idx(), v.Idx()

	tailU := removeTail(rU, uIdx+1)
	tailV := removeTail(rV, vIdx+1)
	rU.insertAllAt(rU.Size()-1, tailV)
	rV.insertAllAt(rV.Size()-1, tailU)
}

// tailSwapSeq is r's head up to position at, followed by other's tail
// after position oat, with r's own end sentinel.
func tailSwapSeq(dst []int, r *Route, at int, other *Route, oat int) []int {
	dst = r.appendSeq(dst, 0, min(at, r.Size()-2))
	if oat+1 <= other.Size()-2 {
		dst = other.appendSeq(dst, oat+1, other.Size()-2)
	}

	return append(dst, r.EndNode().Loc())
}

// removeTail detaches and returns the interior nodes from position from to
// the last interior position.
func removeTail(r *Route, from int) []*Node {
	if from > r.Size()-2 {
		return nil
	}

	return removeRange(r, from, r.Size()-2)
}
