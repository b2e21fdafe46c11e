// Package segment - load segments (one instance per load dimension).
//
// A LoadSegment tracks, for a contiguous stretch of a route:
//
//	Delivery - goods carried onto the stretch from the depot (dropped inside),
//	Pickup   - goods collected inside the stretch (carried out),
//	Load     - the maximum instantaneous load observed inside the stretch,
//	Excess   - capacity violation accumulated by trips already closed.
//
// Finalise closes a trip at a reload or end depot: the open fields are
// charged against the capacity and reset, while Excess carries over. This
// carry-over is what keeps multi-trip routes costable in O(1).
package segment

// LoadSegment summarises one load dimension of a contiguous route stretch.
// The zero value is the merge identity (an empty stretch).
type LoadSegment struct {
	// Delivery is the total demand delivered inside the stretch.
	Delivery int64

	// Pickup is the total demand picked up inside the stretch.
	Pickup int64

	// Load is the peak instantaneous load inside the stretch.
	Load int64

	// Excess accumulates capacity violations of trips closed inside or
	// before the stretch. It survives Finalise.
	Excess int64
}

// NewLoadSegment builds the segment of a single visit with the given
// delivery and pickup amounts. The peak load of a single visit is the larger
// of the two: the vehicle arrives carrying the delivery and leaves carrying
// the pickup.
func NewLoadSegment(delivery, pickup int64) LoadSegment {
	return LoadSegment{
		Delivery: delivery,
		Pickup:   pickup,
		Load:     max(delivery, pickup),
	}
}

// Merge concatenates a then b within one trip.
//
// Contracts:
//   - Associative; not commutative.
//   - The zero LoadSegment is the identity on either side.
//
// Complexity: O(1).
func (a LoadSegment) Merge(b LoadSegment) LoadSegment {
	return LoadSegment{
		Delivery: SatAdd(a.Delivery, b.Delivery),
		Pickup:   SatAdd(a.Pickup, b.Pickup),
		Load:     max(SatAdd(a.Load, b.Delivery), SatAdd(b.Load, a.Pickup)),
		Excess:   SatAdd(a.Excess, b.Excess),
	}
}

// ExcessAt reports the total capacity violation of the segment were the
// current (open) trip closed against capacity: carried-over excess plus the
// open trip's overload. capacity 0 is legal and charges the whole load.
//
// Complexity: O(1).
func (a LoadSegment) ExcessAt(capacity int64) int64 {
	return SatAdd(a.Excess, max(0, SatSub(a.Load, capacity)))
}

// Finalise closes the open trip at the given capacity: the overload joins
// Excess and the open fields reset for the next trip.
//
// Complexity: O(1).
func (a LoadSegment) Finalise(capacity int64) LoadSegment {
	return LoadSegment{Excess: a.ExcessAt(capacity)}
}
