// Package segment - duration segments (time-window concatenation).
//
// A DurationSegment carries the classic five-field summary that makes
// time-window feasibility of any concatenation computable in O(1):
//
//	Duration    - travel + service + forced waiting inside the stretch,
//	TimeWarp    - total forced time-window violation inside the stretch,
//	TwEarly     - earliest feasible start of service at the stretch begin,
//	TwLate      - latest start at the stretch begin that avoids new warp,
//	ReleaseTime - the latest release time seen inside the stretch.
//
// [TwEarly, TwLate] is the start window under which every internal time
// window can still be met, possibly after absorbing slack. Starting later
// than TwLate forces warp; starting earlier than TwEarly only adds waiting.
package segment

// DurationSegment summarises the temporal behaviour of a contiguous route
// stretch. Use NewDurationSegment for visits and IdentityDuration for the
// empty stretch; the zero value has a degenerate [0,0] window and is NOT the
// merge identity.
type DurationSegment struct {
	// Duration is travel plus service plus forced waiting so far.
	Duration int64

	// TimeWarp is the total forced violation so far.
	TimeWarp int64

	// TwEarly is the earliest feasible start of the stretch.
	TwEarly int64

	// TwLate is the latest start of the stretch avoiding further warp.
	// Unbounded when no internal window constrains the start.
	TwLate int64

	// ReleaseTime is the maximal release time seen inside the stretch.
	ReleaseTime int64
}

// NewDurationSegment builds the segment of a single visit with the given
// service duration, service window, and release time.
func NewDurationSegment(service, twEarly, twLate, release int64) DurationSegment {
	return DurationSegment{
		Duration:    service,
		TwEarly:     twEarly,
		TwLate:      twLate,
		ReleaseTime: release,
	}
}

// IdentityDuration returns the merge identity: a zero-length stretch that
// can start at any time and constrains nothing.
func IdentityDuration() DurationSegment {
	return DurationSegment{TwLate: Unbounded}
}

// Merge concatenates a then b, travelling arc time between them.
//
// The shift between a's start and b's start, when a starts as late as its
// window allows, is delta = a.Duration − a.TimeWarp + arc. Arriving before
// b.TwEarly forces waiting (folded into Duration); arriving after b.TwLate
// forces warp (folded into TimeWarp). The merged window is the intersection
// of a's window with b's window shifted back by delta.
//
// Contracts:
//   - Associative; not commutative.
//   - Saturates against Unbounded rather than wrapping.
//
// Complexity: O(1).
func (a DurationSegment) Merge(arc int64, b DurationSegment) DurationSegment {
	// Net forward shift from a's start to b's start.
	delta := SatAdd(SatSub(a.Duration, a.TimeWarp), arc)

	// Forced waiting: even a's latest start reaches b before it opens.
	var wait int64
	if a.TwLate != Unbounded {
		wait = max(0, b.TwEarly-SatAdd(a.TwLate, delta))
	}

	// Forced warp: even a's earliest start reaches b after it closes.
	var warp int64
	if b.TwLate != Unbounded {
		warp = max(0, SatSub(SatAdd(a.TwEarly, delta), b.TwLate))
	}

	return DurationSegment{
		Duration:    SatAdd(SatAdd(SatAdd(a.Duration, b.Duration), arc), wait),
		TimeWarp:    SatAdd(SatAdd(a.TimeWarp, b.TimeWarp), warp),
		TwEarly:     max(SatSub(b.TwEarly, delta), a.TwEarly) - wait,
		TwLate:      SatAdd(min(SatSub(b.TwLate, delta), a.TwLate), warp),
		ReleaseTime: max(a.ReleaseTime, b.ReleaseTime),
	}
}

// Warp reports the stretch's total time warp including the violation forced
// by its release time: a stretch that cannot start before ReleaseTime but
// must start by TwLate warps by the difference.
//
// Complexity: O(1).
func (a DurationSegment) Warp() int64 {
	if a.TwLate == Unbounded {
		return a.TimeWarp
	}

	return SatAdd(a.TimeWarp, max(0, a.ReleaseTime-a.TwLate))
}

// StartTime returns the duration-minimising start of the stretch honouring
// its release time: the release clamped into [TwEarly, TwLate].
//
// Complexity: O(1).
func (a DurationSegment) StartTime() int64 {
	return min(max(a.TwEarly, a.ReleaseTime), a.TwLate)
}

// Slack reports how far the start may shift beyond StartTime without
// forcing new warp. Unbounded when TwLate is.
//
// Complexity: O(1).
func (a DurationSegment) Slack() int64 {
	return SatSub(a.TwLate, a.StartTime())
}
