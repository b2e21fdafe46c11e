// Package search - the mutable route representation.
//
// A Route is the visit sequence of one vehicle, bracketed by its start and
// end depot sentinels, with reload-depot sentinels possibly interior.
// Mutations reindex eagerly (so node positions are always valid) but leave
// the segment caches dirty; any cost query rebuilds them in a single
// O(n × dims) pass first.
//
// Invariants:
//   - nodes[0] and nodes[len-1] are the type's depot sentinels and are
//     never removed.
//   - a node belongs to exactly one route's sequence iff HasRoute().
//   - trip count = 1 + interior depot sentinels, ≤ the type's cap.
package search

import (
	"math"

	"github.com/katalvlaran/vroute/segment"
	"github.com/katalvlaran/vroute/vrp"
)

// Route is a mutable vehicle route with lazy prefix/suffix segment caches.
type Route struct {
	data   *vrp.ProblemData
	vt     vrp.VehicleType
	vtIdx  int
	idx    int
	nodes  []*Node
	start  Node
	end    Node
	dirty  bool
	trips  int
	client int

	// Caches, indexed by node position; valid while !dirty.
	cum        []int64
	durBefore  []segment.DurationSegment
	durAfter   []segment.DurationSegment
	loadBefore [][]segment.LoadSegment
	eval       routeEval

	centroidX, centroidY float64
	radius               float64

	seqBuf []int
}

// NewRoute returns an empty route at slot idx for the given vehicle type.
func NewRoute(data *vrp.ProblemData, idx, vehicleType int) *Route {
	r := &Route{
		data:  data,
		vt:    data.VehicleType(vehicleType),
		vtIdx: vehicleType,
		idx:   idx,
	}
	r.start = Node{loc: r.vt.StartDepot, isDepot: true, route: r, idx: 0}
	r.end = Node{loc: r.vt.EndDepot, isDepot: true, route: r, idx: 1}
	r.nodes = []*Node{&r.start, &r.end}
	r.trips = 1
	r.Update()

	return r
}

// Idx returns the route's slot in the orchestrator's arena.
func (r *Route) Idx() int { return r.idx }

// VehicleType returns the route's vehicle type (read-only).
func (r *Route) VehicleType() vrp.VehicleType { return r.vt }

// VehicleTypeIdx returns the vehicle-type index.
func (r *Route) VehicleTypeIdx() int { return r.vtIdx }

// Profile returns the route's matrix profile.
func (r *Route) Profile() int { return r.vt.Profile }

// Size returns the node count, sentinels included.
func (r *Route) Size() int { return len(r.nodes) }

// NumClients returns the client visit count.
func (r *Route) NumClients() int { return r.client }

// NumDepots returns the depot visit count, sentinels included.
func (r *Route) NumDepots() int { return len(r.nodes) - r.client }

// NumTrips returns 1 + the interior reload count.
func (r *Route) NumTrips() int { return r.trips }

// Empty reports a route without clients.
func (r *Route) Empty() bool { return r.client == 0 }

// GetNode returns the node at position i.
func (r *Route) GetNode(i int) *Node { return r.nodes[i] }

// StartNode returns the start-depot sentinel.
func (r *Route) StartNode() *Node { return &r.start }

// EndNode returns the end-depot sentinel.
func (r *Route) EndNode() *Node { return &r.end }

// Append inserts a detached node just before the end sentinel.
func (r *Route) Append(n *Node) { r.Insert(len(r.nodes)-1, n) }

// Insert places a detached node at position at (1 ≤ at ≤ Size()-1),
// shifting the tail right.
func (r *Route) Insert(at int, n *Node) {
	r.nodes = append(r.nodes, nil)
	copy(r.nodes[at+1:], r.nodes[at:])
	r.nodes[at] = n
	n.route = r
	r.reindex()
}

// Remove detaches and returns the interior node at position at.
func (r *Route) Remove(at int) *Node {
	n := r.nodes[at]
	copy(r.nodes[at:], r.nodes[at+1:])
	r.nodes = r.nodes[:len(r.nodes)-1]
	n.detach()
	r.reindex()

	return n
}

// Clear detaches every interior node, leaving only the sentinels.
func (r *Route) Clear() {
	for _, n := range r.nodes[1 : len(r.nodes)-1] {
		n.detach()
	}
	r.nodes = r.nodes[:0]
	r.nodes = append(r.nodes, &r.start, &r.end)
	r.reindex()
}

// setInterior replaces the whole interior with the given nodes, which must
// be detached or about to be re-owned by this route.
func (r *Route) setInterior(interior []*Node) {
	r.nodes = r.nodes[:0]
	r.nodes = append(r.nodes, &r.start)
	r.nodes = append(r.nodes, interior...)
	r.nodes = append(r.nodes, &r.end)
	for _, n := range interior {
		n.route = r
	}
	r.reindex()
}

// SwapNodes exchanges the positions of two nodes, possibly across routes,
// and leaves both routes dirty.
func SwapNodes(a, b *Node) {
	ra, rb := a.route, b.route
	ia, ib := a.idx, b.idx
	ra.nodes[ia], rb.nodes[ib] = b, a
	a.route, b.route = rb, ra
	ra.reindex()
	if rb != ra {
		rb.reindex()
	}
}

// reindex refreshes node back-references and the client/trip counters, and
// marks the caches dirty.
func (r *Route) reindex() {
	r.client = 0
	r.trips = 1

	var (
		i    int
		trip int
	)
	for i = 0; i < len(r.nodes); i++ {
		n := r.nodes[i]
		n.route = r
		n.idx = i
		n.trip = trip
		if n.isDepot && i > 0 && i < len(r.nodes)-1 {
			trip++
			r.trips++
		}
		if !n.isDepot {
			r.client++
		}
	}
	r.dirty = true
}

// maybeUpdate rebuilds the caches when dirty.
func (r *Route) maybeUpdate() {
	if r.dirty {
		r.Update()
	}
}

// Update rebuilds the prefix/suffix caches, the cached totals, and the
// centroid in a single pass over the route.
//
// Complexity: O(n × dims).
func (r *Route) Update() {
	n := len(r.nodes)
	dims := r.data.NumLoadDimensions()

	r.cum = resizeInt64(r.cum, n)
	r.durBefore = resizeDur(r.durBefore, n)
	r.durAfter = resizeDur(r.durAfter, n)
	if cap(r.loadBefore) < dims {
		r.loadBefore = make([][]segment.LoadSegment, dims)
	}
	r.loadBefore = r.loadBefore[:dims]
	for d := range r.loadBefore {
		r.loadBefore[d] = resizeLoad(r.loadBefore[d], n)
	}

	if r.client == 0 {
		// An unused vehicle travels nothing; no arc between its sentinels
		// enters any cost or cache.
		for i := 0; i < n; i++ {
			r.cum[i] = 0
			r.durBefore[i] = segment.IdentityDuration()
			r.durAfter[i] = segment.IdentityDuration()
			for d := range r.loadBefore {
				r.loadBefore[d][i] = segment.LoadSegment{}
			}
		}
		r.eval.reset(dims)
		r.centroidX, r.centroidY, r.radius = 0, 0, 0
		r.dirty = false

		return
	}

	prof := r.vt.Profile

	// Prefix passes.
	r.cum[0] = 0
	r.durBefore[0] = r.durAt(0)
	for d := 0; d < dims; d++ {
		r.loadBefore[d][0] = segment.NewLoadSegment(0, r.vt.InitialLoad[d])
	}
	var i int
	for i = 1; i < n; i++ {
		prev, cur := r.nodes[i-1].loc, r.nodes[i].loc
		r.cum[i] = segment.SatAdd(r.cum[i-1], r.data.Dist(prof, prev, cur))
		r.durBefore[i] = r.durBefore[i-1].Merge(r.data.Dur(prof, prev, cur), r.durAt(i))
		for d := 0; d < dims; d++ {
			if r.nodes[i].isDepot {
				r.loadBefore[d][i] = r.loadBefore[d][i-1].Finalise(r.vt.Capacity[d])
				continue
			}
			loc := r.data.Location(cur)
			r.loadBefore[d][i] = r.loadBefore[d][i-1].Merge(segment.NewLoadSegment(loc.Delivery[d], loc.Pickup[d]))
		}
	}

	// Suffix pass (durations only; distance suffixes derive from cum).
	r.durAfter[n-1] = r.durAt(n - 1)
	for i = n - 2; i >= 0; i-- {
		arc := r.data.Dur(prof, r.nodes[i].loc, r.nodes[i+1].loc)
		r.durAfter[i] = r.durAt(i).Merge(arc, r.durAfter[i+1])
	}

	// Totals via the shared fold, guaranteeing operator deltas match.
	r.seqBuf = r.appendSeq(r.seqBuf[:0], 0, n-1)
	evalSeq(r.data, r.vt, r.seqBuf, &r.eval)

	// Centroid and bounding radius over clients.
	var sumX, sumY float64
	for i = 1; i < n-1; i++ {
		if r.nodes[i].isDepot {
			continue
		}
		loc := r.data.Location(r.nodes[i].loc)
		sumX += float64(loc.X)
		sumY += float64(loc.Y)
	}
	r.centroidX = sumX / float64(r.client)
	r.centroidY = sumY / float64(r.client)
	r.radius = 0
	for i = 1; i < n-1; i++ {
		if r.nodes[i].isDepot {
			continue
		}
		loc := r.data.Location(r.nodes[i].loc)
		d := math.Hypot(float64(loc.X)-r.centroidX, float64(loc.Y)-r.centroidY)
		if d > r.radius {
			r.radius = d
		}
	}

	r.dirty = false
}

// durAt builds the duration segment of the node at position i. The
// bracketing sentinels intersect their depot window with the vehicle
// shift; interior nodes use their own attributes.
func (r *Route) durAt(i int) segment.DurationSegment {
	if i == 0 || i == len(r.nodes)-1 {
		return shiftSentinelDuration(r.data, r.vt, r.nodes[i].loc)
	}
	loc := r.data.Location(r.nodes[i].loc)

	return segment.NewDurationSegment(loc.ServiceDuration, loc.TwEarly, loc.TwLate, loc.ReleaseTime)
}

// appendSeq appends the locations of positions from..to (inclusive) to dst.
func (r *Route) appendSeq(dst []int, from, to int) []int {
	for i := from; i <= to; i++ {
		dst = append(dst, r.nodes[i].loc)
	}

	return dst
}

// Distance returns the route's total distance.
func (r *Route) Distance() int64 {
	r.maybeUpdate()

	return r.eval.distance
}

// ExcessDistance returns the violation of the vehicle's distance cap.
func (r *Route) ExcessDistance() int64 {
	r.maybeUpdate()

	return r.eval.excessDistance
}

// Duration returns travel + service + forced waiting.
func (r *Route) Duration() int64 {
	r.maybeUpdate()

	return r.eval.duration
}

// TimeWarp returns the route's total forced violation, shift overrun
// beyond tolerated overtime included.
func (r *Route) TimeWarp() int64 {
	r.maybeUpdate()

	return r.eval.timeWarp
}

// Overtime returns the tolerated shift overrun.
func (r *Route) Overtime() int64 {
	r.maybeUpdate()

	return r.eval.overtime
}

// Delivery returns the total delivery demand of dimension dim served by
// the route.
func (r *Route) Delivery(dim int) int64 {
	var sum int64
	for i := 1; i < len(r.nodes)-1; i++ {
		if r.nodes[i].isDepot {
			continue
		}
		sum = segment.SatAdd(sum, r.data.Location(r.nodes[i].loc).Delivery[dim])
	}

	return sum
}

// Pickup returns the total pickup demand of dimension dim served by the
// route.
func (r *Route) Pickup(dim int) int64 {
	var sum int64
	for i := 1; i < len(r.nodes)-1; i++ {
		if r.nodes[i].isDepot {
			continue
		}
		sum = segment.SatAdd(sum, r.data.Location(r.nodes[i].loc).Pickup[dim])
	}

	return sum
}

// ExcessLoad returns the per-dimension capacity violations (read-only).
func (r *Route) ExcessLoad() []int64 {
	r.maybeUpdate()

	return r.eval.excessLoad
}

// IsFeasible reports zero violations of every constraint family.
func (r *Route) IsFeasible() bool {
	r.maybeUpdate()
	if r.eval.timeWarp != 0 || r.eval.excessDistance != 0 {
		return false
	}
	for _, e := range r.eval.excessLoad {
		if e != 0 {
			return false
		}
	}

	return true
}

// cost returns the route's penalised cost under ce.
func (r *Route) cost(ce CostEvaluator) int64 {
	r.maybeUpdate()

	return ce.evalCost(&r.eval, r.vt)
}

// Centroid returns the mean client position; (0,0) for an empty route.
func (r *Route) Centroid() (float64, float64) {
	r.maybeUpdate()

	return r.centroidX, r.centroidY
}

// OverlapsWith reports whether the two routes' centroids lie within
// tolerance × the larger bounding radius. Identical centroids overlap at
// every tolerance.
func (r *Route) OverlapsWith(o *Route, tolerance float64) bool {
	r.maybeUpdate()
	o.maybeUpdate()

	d := math.Hypot(r.centroidX-o.centroidX, r.centroidY-o.centroidY)

	return d <= tolerance*max(r.radius, o.radius)
}

// DistBefore returns the distance travelled from the route start up to the
// node at position idx.
func (r *Route) DistBefore(idx int) int64 {
	r.maybeUpdate()

	return r.cum[idx]
}

// DistAfter returns the distance travelled from the node at position idx
// to the route end.
func (r *Route) DistAfter(idx int) int64 {
	r.maybeUpdate()

	return segment.SatSub(r.cum[len(r.nodes)-1], r.cum[idx])
}

// DistBetween returns the distance travelled between positions a and b
// (a ≤ b) under the route's own profile.
func (r *Route) DistBetween(a, b int) int64 {
	r.maybeUpdate()

	return segment.SatSub(r.cum[b], r.cum[a])
}

// DistBetweenProfile recomputes the distance between positions a and b
// under a profile override, arc by arc.
func (r *Route) DistBetweenProfile(profile, a, b int) int64 {
	var sum int64
	for i := a; i < b; i++ {
		sum = segment.SatAdd(sum, r.data.Dist(profile, r.nodes[i].loc, r.nodes[i+1].loc))
	}

	return sum
}

// DurBefore returns the duration segment of positions 0..idx.
func (r *Route) DurBefore(idx int) segment.DurationSegment {
	r.maybeUpdate()

	return r.durBefore[idx]
}

// DurAfter returns the duration segment of positions idx..end.
func (r *Route) DurAfter(idx int) segment.DurationSegment {
	r.maybeUpdate()

	return r.durAfter[idx]
}

// LoadBefore returns the load segment of dimension dim over positions
// 0..idx, trips finalised at interior depots.
func (r *Route) LoadBefore(dim, idx int) segment.LoadSegment {
	r.maybeUpdate()

	return r.loadBefore[dim][idx]
}

// resize helpers keep cache slices allocation-stable across updates.
func resizeInt64(s []int64, n int) []int64 {
	if cap(s) < n {
		return make([]int64, n)
	}

	return s[:n]
}

func resizeDur(s []segment.DurationSegment, n int) []segment.DurationSegment {
	if cap(s) < n {
		return make([]segment.DurationSegment, n)
	}

	return s[:n]
}

func resizeLoad(s []segment.LoadSegment, n int) []segment.LoadSegment {
	if cap(s) < n {
		return make([]segment.LoadSegment, n)
	}

	return s[:n]
}
