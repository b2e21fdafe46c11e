// Package segment provides concatenable route summaries for vehicle-routing
// search: distance, load, and duration segments with O(1) merges.
//
// # What & Why
//
// A segment summarises a contiguous sub-sequence of a route so that the cost
// of any concatenation of segments is computable in O(1), without revisiting
// the underlying nodes. Three kinds cover the constraint families of the VRP:
//
//   - DistanceSegment: travelled distance; excess against a per-route cap.
//   - LoadSegment:     per-dimension delivery/pickup/peak-load bookkeeping
//     with an excess accumulator that carries over trip boundaries, making
//     multi-trip routes costable in O(1).
//   - DurationSegment: travel+service duration, forced time-window violation
//     (time warp), the feasible start window of the segment, and the maximal
//     release time seen.
//
// # Algebra
//
//	LoadSegment merge (A then B):
//	  delivery = A.delivery + B.delivery
//	  pickup   = A.pickup   + B.pickup
//	  load     = max(A.load + B.delivery, B.load + A.pickup)
//	  excess   = A.excess + B.excess
//
//	DurationSegment merge uses the classic time-window concatenation:
//	  any arrival at B's start past B.twLate is pushed into time warp, and
//	  the merged feasible start window is the intersection of A's window
//	  with B's window shifted back by A.duration − A.timeWarp + arc.
//
// Merges are associative but not commutative (matrices may be asymmetric);
// any grouping of a fixed sequence yields the same summary.
//
// # Numeric policy
//
// All quantities are int64. Absent limits (max distance, shift duration,
// late time-window bounds) are the sentinel Unbounded; every operation
// saturates against it instead of wrapping. SatAdd/SatSub/SatMul implement
// that policy and are shared by the cost layers built on top.
//
// # Determinism
//
// All functions here are pure and allocation-free; no RNG, no logging.
package segment
