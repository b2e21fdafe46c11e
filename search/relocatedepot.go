// Package search - the RelocateWithDepot operator.
//
// Moves one client across routes and inserts a reload-depot sentinel on the
// better side of it, scanning every reload depot of the receiving vehicle.
// Preconditions (Evaluate returns 0): the destination allows reloads, has a
// trip left under its cap, and differs from the source route.
package search

// RelocateWithDepot relocates a node together with a new reload sentinel.
type RelocateWithDepot struct {
	seqA, seqB []int
	evA, evB   routeEval

	// Plan of the last successful Evaluate, replayed by Apply.
	planDepot      int
	planDepotFirst bool
}

// NewRelocateWithDepot returns the operator.
func NewRelocateWithDepot() *RelocateWithDepot { return &RelocateWithDepot{} }

// Name implements NodeOperator.
func (o *RelocateWithDepot) Name() string { return "RelocateWithDepot" }

// Evaluate implements NodeOperator.
func (o *RelocateWithDepot) Evaluate(u, v *Node, ce CostEvaluator) int64 {
	if !u.HasRoute() || !v.HasRoute() || u.IsDepot() {
		return 0
	}
	rU, rV := u.Route(), v.Route()
	if rU == rV {
		return 0
	}
	if !rV.vt.CanReload() || rV.NumTrips() >= rV.vt.MaxTrips() {
		return 0
	}
	// Inserting after the end sentinel is not representable.
	if v.Idx() == rV.Size()-1 {
		return 0
	}

	o.seqA = cutSeq(o.seqA[:0], rU, u.Idx(), u.Idx())
	deltaA := deltaSeq(ce, rU, o.seqA, &o.evA)

	var (
		best      int64
		bestFound bool
	)
	for _, depot := range rV.vt.ReloadDepots {
		for _, depotFirst := range [2]bool{true, false} {
			o.seqB = relocateDepotSeq(o.seqB[:0], rV, v.Idx(), u.Loc(), depot, depotFirst)
			d := deltaA + deltaSeq(ce, rV, o.seqB, &o.evB)
			if !bestFound || d < best {
				best, bestFound = d, true
				o.planDepot, o.planDepotFirst = depot, depotFirst
			}
		}
	}

	return best
}

// Apply implements NodeOperator, replaying the plan of the last Evaluate.
func (o *RelocateWithDepot) Apply(u, v *Node) {
	rU, rV := u.Route(), v.Route()
	moved := rU.Remove(u.Idx())

	depotNode := NewNode(o.planDepot, true)
	if o.planDepotFirst {
		rV.insertAllAfter(v.Idx(), []*Node{depotNode, moved})
	} else {
		rV.insertAllAfter(v.Idx(), []*Node{moved, depotNode})
	}
}

// relocateDepotSeq is r's sequence with client and depot inserted after
// position at, in the requested order.
func relocateDepotSeq(dst []int, r *Route, at, client, depot int, depotFirst bool) []int {
	dst = r.appendSeq(dst, 0, at)
	if depotFirst {
		dst = append(dst, depot, client)
	} else {
		dst = append(dst, client, depot)
	}

	return r.appendSeq(dst, at+1, r.Size()-1)
}
