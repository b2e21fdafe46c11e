// Package segment - distance segments.
//
// The distance summary of a stretch is its travelled distance; the excess
// against a vehicle's max-distance cap is derived on demand so that the
// segment itself stays associative without threading the cap through every
// merge.
package segment

// DistanceSegment summarises the distance travelled inside a contiguous
// route stretch. The zero value is the merge identity.
type DistanceSegment struct {
	// Distance is the total distance traversed inside the stretch.
	Distance int64
}

// Merge concatenates a then b, travelling arc between a's last and b's first
// location.
//
// Complexity: O(1).
func (a DistanceSegment) Merge(arc int64, b DistanceSegment) DistanceSegment {
	return DistanceSegment{Distance: SatAdd(SatAdd(a.Distance, arc), b.Distance)}
}

// Excess reports the violation of maxDistance by the stretch. An Unbounded
// cap never yields excess.
//
// Complexity: O(1).
func (a DistanceSegment) Excess(maxDistance int64) int64 {
	return max(0, SatSub(a.Distance, maxDistance))
}
