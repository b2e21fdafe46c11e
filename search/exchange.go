// Package search - the Exchange(m, n) operator family.
//
// Exchange(m, 0) relocates m consecutive clients after another position,
// possibly across routes. Exchange(m, n) with n ≥ 1 swaps two disjoint
// client segments of lengths m and n. The supported grid is
// (1,0) (2,0) (3,0) (1,1) (2,1) (2,2) (3,1) (3,2) (3,3) with m ≥ n.
//
// Guards (Evaluate returns 0):
//   - a detached anchor, or a depot where a client is required;
//   - a moved segment running over a depot or off the route end;
//   - overlapping segments on one route; adjacent (2,2) on one route;
//   - the no-op relocate (v immediately precedes u, or v inside the moved
//     segment).
//
// Deltas are exact: the proposal fold scores both affected routes,
// fixed-cost accounting and the empty-route rule included.
package search

import "fmt"

// Exchange moves or swaps contiguous client segments; see the package note
// on the supported (m, n) grid.
type Exchange struct {
	m, n int

	seqA, seqB []int
	evA, evB   routeEval
}

// NewExchange validates the (m, n) shape and returns the operator.
func NewExchange(m, n int) (*Exchange, error) {
	if m < 1 || m > 3 || n < 0 || n > m {
		return nil, ErrBadOperator
	}

	return &Exchange{m: m, n: n}, nil
}

// Name implements NodeOperator.
func (e *Exchange) Name() string { return fmt.Sprintf("Exchange(%d,%d)", e.m, e.n) }

// segmentAt checks that m consecutive nodes starting at u stay interior
// and client-only, returning the last position or -1.
func segmentAt(u *Node, m int) int {
	r := u.Route()
	last := u.Idx() + m - 1
	if last >= r.Size()-1 {
		return -1
	}
	for i := u.Idx(); i <= last; i++ {
		if r.GetNode(i).IsDepot() {
			return -1
		}
	}

	return last
}

// Evaluate implements NodeOperator.
func (e *Exchange) Evaluate(u, v *Node, ce CostEvaluator) int64 {
	if !u.HasRoute() || !v.HasRoute() || u.IsDepot() {
		return 0
	}
	if e.n == 0 {
		return e.evaluateRelocate(u, v, ce)
	}

	return e.evaluateSwap(u, v, ce)
}

// evaluateRelocate scores moving the m-segment at u to just after v.
func (e *Exchange) evaluateRelocate(u, v *Node, ce CostEvaluator) int64 {
	rU, rV := u.Route(), v.Route()

	uLast := segmentAt(u, e.m)
	if uLast < 0 {
		return 0
	}
	// Inserting after the end sentinel is not representable.
	if v.Idx() == rV.Size()-1 {
		return 0
	}
	if rU == rV {
		// No-op and overlap guards: v immediately before u, or inside the
		// moved segment.
		if v.Idx() >= u.Idx()-1 && v.Idx() <= uLast {
			return 0
		}
	}

	if rU == rV {
		e.seqA = relocateSeq(e.seqA[:0], rU, u.Idx(), uLast, v.Idx())

		return deltaSeq(ce, rU, e.seqA, &e.evA)
	}

	e.seqA = cutSeq(e.seqA[:0], rU, u.Idx(), uLast)
	e.seqB = spliceSeq(e.seqB[:0], rV, v.Idx(), rU, u.Idx(), uLast)

	return deltaSeq(ce, rU, e.seqA, &e.evA) + deltaSeq(ce, rV, e.seqB, &e.evB)
}

// evaluateSwap scores exchanging the m-segment at u with the n-segment at v.
func (e *Exchange) evaluateSwap(u, v *Node, ce CostEvaluator) int64 {
	if v.IsDepot() {
		return 0
	}
	rU, rV := u.Route(), v.Route()

	uLast := segmentAt(u, e.m)
	vLast := segmentAt(v, e.n)
	if uLast < 0 || vLast < 0 {
		return 0
	}
	if rU == rV {
		if u.Idx() <= vLast && v.Idx() <= uLast {
			// Overlapping segments are ill-defined.
			return 0
		}
		adjacent := uLast+1 == v.Idx() || vLast+1 == u.Idx()
		if adjacent && e.m == 2 && e.n == 2 {
			return 0
		}

		e.seqA = swapSameRouteSeq(e.seqA[:0], rU, u.Idx(), uLast, v.Idx(), vLast)

		return deltaSeq(ce, rU, e.seqA, &e.evA)
	}

	e.seqA = spliceReplaceSeq(e.seqA[:0], rU, u.Idx(), uLast, rV, v.Idx(), vLast)
	e.seqB = spliceReplaceSeq(e.seqB[:0], rV, v.Idx(), vLast, rU, u.Idx(), uLast)

	return deltaSeq(ce, rU, e.seqA, &e.evA) + deltaSeq(ce, rV, e.seqB, &e.evB)
}

// Apply implements NodeOperator. The caller updates both routes afterwards.
func (e *Exchange) Apply(u, v *Node) {
	rU, rV := u.Route(), v.Route()
	uIdx := u.Idx()
	uLast := uIdx + e.m - 1

	if e.n == 0 {
		moved := removeRange(rU, uIdx, uLast)
		// v.Idx() is read after the removal: reindexing keeps it live even
		// when v sits past the removed stretch of the same route.
		rV.insertAllAfter(v.Idx(), moved)

		return
	}

	vIdx := v.Idx()
	vLast := vIdx + e.n - 1
	if rU == rV {
		applySameRouteSwap(rU, uIdx, uLast, vIdx, vLast)

		return
	}
	aNodes := removeRange(rU, uIdx, uLast)
	bNodes := removeRange(rV, vIdx, vLast)
	rU.insertAllAt(uIdx, bNodes)
	rV.insertAllAt(vIdx, aNodes)
}

// --- sequence builders (locations, sentinels included) ---

// cutSeq is r's sequence with positions cutFrom..cutTo removed.
func cutSeq(dst []int, r *Route, cutFrom, cutTo int) []int {
	dst = r.appendSeq(dst, 0, cutFrom-1)

	return r.appendSeq(dst, cutTo+1, r.Size()-1)
}

// spliceSeq is r's sequence with src's positions insFrom..insTo inserted
// after position at.
func spliceSeq(dst []int, r *Route, at int, src *Route, insFrom, insTo int) []int {
	dst = r.appendSeq(dst, 0, at)
	dst = src.appendSeq(dst, insFrom, insTo)

	return r.appendSeq(dst, at+1, r.Size()-1)
}

// relocateSeq is r's sequence with its own segment from..to moved after
// position at (at outside the segment).
func relocateSeq(dst []int, r *Route, from, to, at int) []int {
	var i int
	for i = 0; i < r.Size(); i++ {
		if i >= from && i <= to {
			continue
		}
		dst = append(dst, r.GetNode(i).Loc())
		if i == at {
			dst = r.appendSeq(dst, from, to)
		}
	}

	return dst
}

// swapSameRouteSeq is r's sequence with its disjoint segments exchanged.
func swapSameRouteSeq(dst []int, r *Route, aFrom, aTo, bFrom, bTo int) []int {
	var i int
	for i = 0; i < r.Size(); i++ {
		switch {
		case i == aFrom:
			dst = r.appendSeq(dst, bFrom, bTo)
			i = aTo
		case i == bFrom:
			dst = r.appendSeq(dst, aFrom, aTo)
			i = bTo
		default:
			dst = append(dst, r.GetNode(i).Loc())
		}
	}

	return dst
}

// spliceReplaceSeq is r's sequence with its segment from..to replaced by
// src's segment sFrom..sTo.
func spliceReplaceSeq(dst []int, r *Route, from, to int, src *Route, sFrom, sTo int) []int {
	dst = r.appendSeq(dst, 0, from-1)
	dst = src.appendSeq(dst, sFrom, sTo)

	return r.appendSeq(dst, to+1, r.Size()-1)
}

// --- node-level splices shared by Apply implementations ---

// removeRange detaches and returns positions from..to of r.
func removeRange(r *Route, from, to int) []*Node {
	out := make([]*Node, 0, to-from+1)
	for i := from; i <= to; i++ {
		out = append(out, r.GetNode(i))
	}
	for i := to; i >= from; i-- {
		r.Remove(i)
	}

	return out
}

// insertAllAt inserts detached nodes so the first lands at position at.
func (r *Route) insertAllAt(at int, nodes []*Node) {
	for i, n := range nodes {
		r.Insert(at+i, n)
	}
}

// insertAllAfter inserts detached nodes just after position at.
func (r *Route) insertAllAfter(at int, nodes []*Node) {
	r.insertAllAt(at+1, nodes)
}

// applySameRouteSwap exchanges two disjoint node ranges of one route.
func applySameRouteSwap(r *Route, aFrom, aTo, bFrom, bTo int) {
	if aFrom > bFrom {
		aFrom, aTo, bFrom, bTo = bFrom, bTo, aFrom, aTo
	}
	interior := make([]*Node, 0, r.Size()-2)
	var i int
	for i = 1; i < r.Size()-1; i++ {
		switch {
		case i == aFrom:
			for j := bFrom; j <= bTo; j++ {
				interior = append(interior, r.GetNode(j))
			}
			i = aTo
		case i == bFrom:
			for j := aFrom; j <= aTo; j++ {
				interior = append(interior, r.GetNode(j))
			}
			i = bTo
		default:
			interior = append(interior, r.GetNode(i))
		}
	}
	r.setInterior(interior)
}
