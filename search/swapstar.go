// Package search - the SwapStar operator.
//
// SwapStar exchanges one client per route between two centroid-overlapping
// routes, reinserting each client at its best position in the other route
// rather than in the vacated slot (the in-place swap remains admissible).
//
// The scan follows the classic scheme: removal gains and the three best
// insertion positions per client are precomputed against the unmodified
// routes, pairs are ranked by that approximation, and the best pair is
// re-evaluated exactly (full position scan on the reduced routes) before
// its delta is returned.
package search

import "github.com/katalvlaran/vroute/segment"

// swapStarTop is the number of cached insertion positions per client.
const swapStarTop = 3

// insPos is one candidate insertion slot: after position pos, at cost d.
type insPos struct {
	d   int64
	pos int
}

// SwapStar exchanges one client per route with free reinsertion.
type SwapStar struct {
	tolerance float64

	seq []int
	ev  routeEval

	remA, remB   []int64
	topA, topB   [][swapStarTop]insPos
	planU, planV *Node
	planAnchorA  *Node // reinsertion anchor of V inside route A
	planAnchorB  *Node // reinsertion anchor of U inside route B
}

// NewSwapStar returns the operator with the given overlap tolerance.
func NewSwapStar(tolerance float64) *SwapStar {
	return &SwapStar{tolerance: tolerance}
}

// Name implements RouteOperator.
func (s *SwapStar) Name() string { return "SwapStar" }

// Evaluate implements RouteOperator.
func (s *SwapStar) Evaluate(a, b *Route, ce CostEvaluator) int64 {
	if a == b || a.Empty() || b.Empty() {
		return 0
	}
	if !a.OverlapsWith(b, s.tolerance) {
		return 0
	}

	s.remA = s.removalDeltas(a, ce, s.remA[:0])
	s.remB = s.removalDeltas(b, ce, s.remB[:0])
	s.topA = s.insertionTops(a, b, ce, s.topA[:0]) // clients of a into b
	s.topB = s.insertionTops(b, a, ce, s.topB[:0]) // clients of b into a

	// Rank pairs by the removal + cached-insertion approximation.
	var (
		bestApprox       int64 = segment.Unbounded
		bestI, bestJ     int
		haveCandidate    bool
		i, j             int
		approxU, approxV int64
	)
	for i = 1; i < a.Size()-1; i++ {
		if a.GetNode(i).IsDepot() {
			continue
		}
		for j = 1; j < b.Size()-1; j++ {
			if b.GetNode(j).IsDepot() {
				continue
			}
			approxU = bestCached(s.topA[i], j)
			approxV = bestCached(s.topB[j], i)
			approx := segment.SatAdd(segment.SatAdd(s.remA[i], s.remB[j]), segment.SatAdd(approxU, approxV))
			if !haveCandidate || approx < bestApprox {
				bestApprox, bestI, bestJ = approx, i, j
				haveCandidate = true
			}
		}
	}
	if !haveCandidate {
		return 0
	}

	// Exact re-evaluation of the best pair: full position scans on the
	// reduced routes.
	u, v := a.GetNode(bestI), b.GetNode(bestJ)
	deltaB, anchorB := s.bestExactInsertion(b, bestJ, u.Loc(), ce)
	deltaA, anchorA := s.bestExactInsertion(a, bestI, v.Loc(), ce)

	s.planU, s.planV = u, v
	s.planAnchorA, s.planAnchorB = anchorA, anchorB

	return deltaA + deltaB
}

// Apply implements RouteOperator, replaying the plan of the last Evaluate.
func (s *SwapStar) Apply(a, b *Route) {
	u, v := s.planU, s.planV
	a.Remove(u.Idx())
	b.Remove(v.Idx())
	b.insertAllAfter(s.planAnchorB.Idx(), []*Node{u})
	a.insertAllAfter(s.planAnchorA.Idx(), []*Node{v})
}

// removalDeltas scores removing each client position of r.
func (s *SwapStar) removalDeltas(r *Route, ce CostEvaluator, out []int64) []int64 {
	for len(out) < r.Size() {
		out = append(out, 0)
	}
	for i := 1; i < r.Size()-1; i++ {
		if r.GetNode(i).IsDepot() {
			continue
		}
		s.seq = cutSeq(s.seq[:0], r, i, i)
		out[i] = deltaSeq(ce, r, s.seq, &s.ev)
	}

	return out
}

// insertionTops caches, for each client position of src, the three
// cheapest insertion anchors into dst (dst unmodified).
func (s *SwapStar) insertionTops(src, dst *Route, ce CostEvaluator, out [][swapStarTop]insPos) [][swapStarTop]insPos {
	for len(out) < src.Size() {
		out = append(out, [swapStarTop]insPos{})
	}

	var i, p int
	for i = 1; i < src.Size()-1; i++ {
		top := [swapStarTop]insPos{{d: segment.Unbounded, pos: -1}, {d: segment.Unbounded, pos: -1}, {d: segment.Unbounded, pos: -1}}
		if !src.GetNode(i).IsDepot() {
			loc := src.GetNode(i).Loc()
			for p = 0; p < dst.Size()-1; p++ {
				s.seq = spliceOneSeq(s.seq[:0], dst, p, loc)
				d := deltaSeq(ce, dst, s.seq, &s.ev)
				top = pushTop(top, insPos{d: d, pos: p})
			}
		}
		out[i] = top
	}

	return out
}

// bestExactInsertion scans every anchor of r (with position skip removed)
// for the cheapest insertion of loc, returning the exact route delta and
// the surviving anchor node.
func (s *SwapStar) bestExactInsertion(r *Route, skip int, loc int, ce CostEvaluator) (int64, *Node) {
	var (
		best   int64 = segment.Unbounded
		anchor *Node
		p      int
	)
	for p = 0; p < r.Size()-1; p++ {
		if p == skip {
			continue
		}
		s.seq = insertCutSeq(s.seq[:0], r, skip, loc, p)
		d := deltaSeq(ce, r, s.seq, &s.ev)
		if anchor == nil || d < best {
			best, anchor = d, r.GetNode(p)
		}
	}

	return best, anchor
}

// bestCached picks the cheapest cached anchor not invalidated by the
// other removal at position other or its predecessor slot.
func bestCached(top [swapStarTop]insPos, other int) int64 {
	for _, c := range top {
		if c.pos < 0 {
			continue
		}
		if c.pos == other || c.pos == other-1 {
			continue
		}

		return c.d
	}

	return top[0].d
}

// pushTop keeps the three cheapest candidates, stable by scan order.
func pushTop(top [swapStarTop]insPos, c insPos) [swapStarTop]insPos {
	for i := 0; i < swapStarTop; i++ {
		if c.d < top[i].d {
			copy(top[i+1:], top[i:swapStarTop-1])
			top[i] = c

			return top
		}
	}

	return top
}

// spliceOneSeq is r's sequence with loc inserted after position at.
func spliceOneSeq(dst []int, r *Route, at, loc int) []int {
	dst = r.appendSeq(dst, 0, at)
	dst = append(dst, loc)

	return r.appendSeq(dst, at+1, r.Size()-1)
}

// insertCutSeq is r's sequence with position skip removed and loc inserted
// after position after (after != skip).
func insertCutSeq(dst []int, r *Route, skip, loc, after int) []int {
	for i := 0; i < r.Size(); i++ {
		if i == skip {
			continue
		}
		dst = append(dst, r.GetNode(i).Loc())
		if i == after {
			dst = append(dst, loc)
		}
	}

	return dst
}
