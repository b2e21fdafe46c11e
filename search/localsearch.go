// Package search - the LocalSearch orchestrator.
//
// LocalSearch owns the mutable routes for one working solution, the
// granular neighbourhoods, the operator set, and a seeded RNG. Two entry
// points share one engine:
//
//	Search    - node operators only.
//	Intensify - the full mixed loop, route operators included.
//
// The main loop scans clients in a fresh random permutation, applies the
// first strictly improving move found for a client and rescans it, falls
// back to route operators when a whole pass stays flat, and stops at the
// fixed point. A perturbation pass (random client removals, skipped when
// Exhaustive) precedes the loop; completion passes re-insert required
// clients at their cheapest slots and optional clients when the prize
// beats the insertion cost.
package search

import (
	"math/rand"

	"github.com/katalvlaran/vroute/segment"
	"github.com/katalvlaran/vroute/vrp"
)

// LocalSearch drives the operator set over one working solution at a time.
type LocalSearch struct {
	data   *vrp.ProblemData
	rng    *rand.Rand
	params Params

	routes     []*Route
	typeOffset []int
	clientNode []*Node
	neighbours [][]int

	nodeOps  []NodeOperator
	routeOps []RouteOperator
	stats    Statistics

	orderBuf    []int
	typeCounts  []int
	emptyByType []int
	insSeq      []int
	insEv       routeEval
}

// New builds a LocalSearch over data with a deterministic seed.
func New(data *vrp.ProblemData, seed int64, params Params) (*LocalSearch, error) {
	if data == nil {
		return nil, ErrNilData
	}
	if err := params.validate(); err != nil {
		return nil, err
	}

	ls := &LocalSearch{
		data:   data,
		rng:    RNGStream(seed, 0),
		params: params,
	}

	var err error
	for _, tag := range params.NodeOperators {
		var op NodeOperator
		if op, err = makeNodeOperator(tag); err != nil {
			return nil, err
		}
		ls.nodeOps = append(ls.nodeOps, op)
	}
	for _, tag := range params.RouteOperators {
		var op RouteOperator
		if op, err = makeRouteOperator(tag, params.OverlapTolerance); err != nil {
			return nil, err
		}
		ls.routeOps = append(ls.routeOps, op)
	}
	ls.stats.init(ls.nodeOps, ls.routeOps)

	// One route slot per vehicle, grouped by type in type order.
	ls.typeOffset = make([]int, data.NumVehicleTypes())
	for t := 0; t < data.NumVehicleTypes(); t++ {
		ls.typeOffset[t] = len(ls.routes)
		for i := 0; i < data.VehicleType(t).Count; i++ {
			ls.routes = append(ls.routes, NewRoute(data, len(ls.routes), t))
		}
	}
	ls.typeCounts = make([]int, data.NumVehicleTypes())
	ls.emptyByType = make([]int, data.NumVehicleTypes())

	ls.clientNode = make([]*Node, data.NumLocations())
	for c := data.NumDepots(); c < data.NumLocations(); c++ {
		ls.clientNode[c] = NewNode(c, false)
		ls.orderBuf = append(ls.orderBuf, c)
	}

	ls.neighbours = computeNeighbours(data, params.GranularNeighbours, params.Neighbourhood)

	return ls, nil
}

// makeNodeOperator maps a tag to its node operator.
func makeNodeOperator(tag OpTag) (NodeOperator, error) {
	switch tag {
	case OpExchange10:
		return NewExchange(1, 0)
	case OpExchange20:
		return NewExchange(2, 0)
	case OpExchange30:
		return NewExchange(3, 0)
	case OpExchange11:
		return NewExchange(1, 1)
	case OpExchange21:
		return NewExchange(2, 1)
	case OpExchange22:
		return NewExchange(2, 2)
	case OpExchange31:
		return NewExchange(3, 1)
	case OpExchange32:
		return NewExchange(3, 2)
	case OpExchange33:
		return NewExchange(3, 3)
	case OpSwapTails:
		return NewSwapTails(), nil
	case OpRelocateWithDepot:
		return NewRelocateWithDepot(), nil
	default:
		return nil, ErrBadOperator
	}
}

// makeRouteOperator maps a tag to its route operator.
func makeRouteOperator(tag OpTag, overlapTolerance float64) (RouteOperator, error) {
	switch tag {
	case OpSwapStar:
		return NewSwapStar(overlapTolerance), nil
	case OpSwapRoutes:
		return NewSwapRoutes(), nil
	default:
		return nil, ErrBadOperator
	}
}

// Statistics returns the cumulative counters (read-only).
func (ls *LocalSearch) Statistics() *Statistics { return &ls.stats }

// Search improves the solution with node operators only.
func (ls *LocalSearch) Search(sol *vrp.Solution, ce CostEvaluator) (*vrp.Solution, error) {
	return ls.run(sol, ce, false)
}

// Intensify runs the full mixed loop, route operators included.
func (ls *LocalSearch) Intensify(sol *vrp.Solution, ce CostEvaluator) (*vrp.Solution, error) {
	return ls.run(sol, ce, true)
}

// run is the shared engine behind Search and Intensify.
func (ls *LocalSearch) run(sol *vrp.Solution, ce CostEvaluator, withRouteOps bool) (*vrp.Solution, error) {
	if sol == nil {
		return nil, ErrNilSolution
	}
	if err := ls.loadSolution(sol); err != nil {
		return nil, err
	}

	if !ls.params.Exhaustive {
		ls.perturb()
	}
	ls.completion(ce)
	ls.improve(ce, withRouteOps)
	ls.completion(ce)

	return ls.export()
}

// loadSolution distributes the solution's routes over the per-type route
// slots and re-attaches client nodes.
func (ls *LocalSearch) loadSolution(sol *vrp.Solution) error {
	for _, r := range ls.routes {
		r.Clear()
	}
	for _, n := range ls.clientNode {
		if n != nil {
			n.detach()
		}
	}
	for t := range ls.typeCounts {
		ls.typeCounts[t] = 0
	}

	for _, vr := range sol.Routes() {
		t := vr.VehicleType()
		if ls.typeCounts[t] >= ls.data.VehicleType(t).Count {
			return &vrp.SolveError{Reason: "more routes than vehicles of a type"}
		}
		r := ls.routes[ls.typeOffset[t]+ls.typeCounts[t]]
		ls.typeCounts[t]++

		for _, visit := range vr.Visits() {
			if ls.data.IsDepot(visit) {
				r.Append(NewNode(visit, true))
				continue
			}
			r.Append(ls.clientNode[visit])
		}
	}
	for _, r := range ls.routes {
		r.Update()
		ls.stats.NumUpdates++
	}

	return nil
}

// perturb removes a small random subset of assigned clients so the
// improvement loop explores beyond the incoming local optimum. A reload
// sentinel left bracketing an empty trip is removed with its client.
func (ls *LocalSearch) perturb() {
	assigned := ls.orderBuf[:0]
	for c := ls.data.NumDepots(); c < ls.data.NumLocations(); c++ {
		if ls.clientNode[c].HasRoute() {
			assigned = append(assigned, c)
		}
	}
	shuffleIntsInPlace(assigned, ls.rng)

	n := min(ls.params.PerturbationSize, len(assigned))
	for i := 0; i < n; i++ {
		node := ls.clientNode[assigned[i]]
		r := node.Route()
		at := node.Idx()
		r.Remove(at)
		ls.pruneEmptyTripAt(r, at)
		r.Update()
		ls.stats.NumMoves++
		ls.stats.NumUpdates++
	}
}

// pruneEmptyTripAt drops one reload sentinel at the seam left by a removal
// at position at, when the removal emptied its trip (two adjacent depot
// visits remain).
func (ls *LocalSearch) pruneEmptyTripAt(r *Route, at int) {
	if !r.GetNode(at).IsDepot() || !r.GetNode(at-1).IsDepot() {
		return
	}
	switch {
	case at-1 >= 1:
		r.Remove(at - 1)
	case at <= r.Size()-2:
		r.Remove(at)
	}
}

// improve runs the randomised improvement loop to its fixed point.
func (ls *LocalSearch) improve(ce CostEvaluator, withRouteOps bool) {
	order := ls.orderBuf[:0]
	for c := ls.data.NumDepots(); c < ls.data.NumLocations(); c++ {
		order = append(order, c)
	}

	for {
		improved := false
		shuffleIntsInPlace(order, ls.rng)
		for _, c := range order {
			u := ls.clientNode[c]
			if !u.HasRoute() {
				continue
			}
			if ls.improveClient(u, ce) {
				improved = true
			}
		}
		if improved {
			continue
		}
		if withRouteOps && ls.routePass(ce) {
			continue
		}

		break
	}
}

// improveClient applies improving moves anchored at u until none remains.
func (ls *LocalSearch) improveClient(u *Node, ce CostEvaluator) bool {
	improved := false
	for ls.tryClientOnce(u, ce) {
		improved = true
	}

	return improved
}

// tryClientOnce scans operators × candidates for u and applies the first
// strictly improving move. Scan order is deterministic: operators in
// registration order, neighbours in precomputed order, then one empty
// route per vehicle type.
func (ls *LocalSearch) tryClientOnce(u *Node, ce CostEvaluator) bool {
	if !u.HasRoute() {
		return false
	}
	ls.findEmptyRoutes()

	for oi, op := range ls.nodeOps {
		for _, vLoc := range ls.neighbours[u.Loc()] {
			v := ls.clientNode[vLoc]
			if v == u || !v.HasRoute() {
				continue
			}
			if ls.tryMove(op, oi, u, v, ce) {
				return true
			}
		}
		for _, ri := range ls.emptyByType {
			if ri < 0 {
				continue
			}
			er := ls.routes[ri]
			if er == u.Route() {
				continue
			}
			if ls.tryMove(op, oi, u, er.StartNode(), ce) {
				return true
			}
		}
	}

	return false
}

// tryMove evaluates one (operator, anchor pair) and applies it when
// strictly improving.
func (ls *LocalSearch) tryMove(op NodeOperator, oi int, u, v *Node, ce CostEvaluator) bool {
	ls.stats.NodeOps[oi].NumEvaluations++
	d := op.Evaluate(u, v, ce)
	if d >= 0 {
		return false
	}

	rU, rV := u.Route(), v.Route()
	op.Apply(u, v)
	rU.Update()
	ls.stats.NumUpdates++
	if rV != rU {
		rV.Update()
		ls.stats.NumUpdates++
	}
	ls.stats.NodeOps[oi].NumApplications++
	ls.stats.NumMoves++
	ls.stats.NumImproving++

	return true
}

// routePass scans all route pairs with every route operator and applies
// improving moves; returns whether any was applied.
func (ls *LocalSearch) routePass(ce CostEvaluator) bool {
	improved := false

	var i, j, oi int
	for i = 0; i < len(ls.routes); i++ {
		for j = i + 1; j < len(ls.routes); j++ {
			a, b := ls.routes[i], ls.routes[j]
			if a.Empty() && b.Empty() {
				continue
			}
			for oi = 0; oi < len(ls.routeOps); oi++ {
				op := ls.routeOps[oi]
				ls.stats.RouteOps[oi].NumEvaluations++
				d := op.Evaluate(a, b, ce)
				if d >= 0 {
					continue
				}
				op.Apply(a, b)
				a.Update()
				b.Update()
				ls.stats.NumUpdates += 2
				ls.stats.RouteOps[oi].NumApplications++
				ls.stats.NumMoves++
				ls.stats.NumImproving++
				improved = true
			}
		}
	}

	return improved
}

// findEmptyRoutes records the first empty route per vehicle type.
func (ls *LocalSearch) findEmptyRoutes() {
	for t := range ls.emptyByType {
		ls.emptyByType[t] = -1
	}
	for _, r := range ls.routes {
		if r.Empty() && ls.emptyByType[r.VehicleTypeIdx()] < 0 {
			ls.emptyByType[r.VehicleTypeIdx()] = r.Idx()
		}
	}
}

// completion inserts missing clients: required ones at their cheapest
// position unconditionally, optional ones when the prize beats the
// insertion cost and their group tolerates another member.
func (ls *LocalSearch) completion(ce CostEvaluator) {
	for c := ls.data.NumDepots(); c < ls.data.NumLocations(); c++ {
		node := ls.clientNode[c]
		if node.HasRoute() {
			continue
		}
		loc := ls.data.Location(c)
		if !loc.Required && ls.groupBlocks(c) {
			continue
		}

		bestDelta, bestRoute, bestPos := ls.cheapestInsertion(c, ce)
		if bestRoute == nil {
			continue
		}
		if !loc.Required && segment.SatSub(bestDelta, loc.Prize) >= 0 {
			continue
		}

		bestRoute.Insert(bestPos+1, node)
		bestRoute.Update()
		ls.stats.NumMoves++
		ls.stats.NumUpdates++
	}
	ls.completeRequiredGroups(ce)
}

// cheapestInsertion scans every route position for client c.
func (ls *LocalSearch) cheapestInsertion(c int, ce CostEvaluator) (int64, *Route, int) {
	var (
		bestDelta int64 = segment.Unbounded
		bestRoute *Route
		bestPos   int
	)
	for _, r := range ls.routes {
		for p := 0; p < r.Size()-1; p++ {
			ls.insSeq = spliceOneSeq(ls.insSeq[:0], r, p, c)
			d := deltaSeq(ce, r, ls.insSeq, &ls.insEv)
			if bestRoute == nil || d < bestDelta {
				bestDelta, bestRoute, bestPos = d, r, p
			}
		}
	}

	return bestDelta, bestRoute, bestPos
}

// groupBlocks reports whether c's mutually-exclusive group already has an
// assigned member.
func (ls *LocalSearch) groupBlocks(c int) bool {
	g := ls.data.Location(c).Group
	if g == vrp.NoGroup {
		return false
	}
	grp := ls.data.Group(g)
	if !grp.MutuallyExclusive {
		return false
	}
	for _, member := range grp.Clients {
		if member != c && ls.clientNode[member].HasRoute() {
			return true
		}
	}

	return false
}

// completeRequiredGroups force-inserts the cheapest member of every
// required group still unrepresented.
func (ls *LocalSearch) completeRequiredGroups(ce CostEvaluator) {
	for g := 0; g < ls.data.NumGroups(); g++ {
		grp := ls.data.Group(g)
		if !grp.Required {
			continue
		}
		represented := false
		for _, member := range grp.Clients {
			if ls.clientNode[member].HasRoute() {
				represented = true
				break
			}
		}
		if represented {
			continue
		}

		var (
			bestDelta  int64 = segment.Unbounded
			bestMember int   = -1
			bestRoute  *Route
			bestPos    int
		)
		for _, member := range grp.Clients {
			d, r, p := ls.cheapestInsertion(member, ce)
			if r != nil && (bestMember < 0 || d < bestDelta) {
				bestDelta, bestMember, bestRoute, bestPos = d, member, r, p
			}
		}
		if bestMember < 0 {
			continue
		}
		bestRoute.Insert(bestPos+1, ls.clientNode[bestMember])
		bestRoute.Update()
		ls.stats.NumMoves++
		ls.stats.NumUpdates++
	}
}

// export snapshots the non-empty routes into a finalised solution.
func (ls *LocalSearch) export() (*vrp.Solution, error) {
	var routes []vrp.Route
	for _, r := range ls.routes {
		if r.Empty() {
			continue
		}
		visits := make([]int, 0, r.Size()-2)
		for i := 1; i < r.Size()-1; i++ {
			visits = append(visits, r.GetNode(i).Loc())
		}
		vr, err := vrp.NewRoute(ls.data, visits, r.VehicleTypeIdx())
		if err != nil {
			return nil, err
		}
		routes = append(routes, vr)
	}

	return vrp.NewSolution(ls.data, routes)
}
