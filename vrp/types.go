// Package vrp - core instance entities.
//
// Locations live in one flat 0-based index space, depots first. Constructors
// return entities with permissive defaults (unbounded windows and caps) so a
// caller only sets what the instance actually constrains.
package vrp

import "github.com/katalvlaran/vroute/segment"

// NoGroup marks a client that belongs to no group.
const NoGroup = -1

// Location is a depot or a client in the flat index space.
type Location struct {
	// X, Y is the planar position (integer coordinates).
	X, Y int64

	// TwEarly, TwLate bound the service time window.
	TwEarly, TwLate int64

	// ServiceDuration is the on-site service time.
	ServiceDuration int64

	// ReleaseTime is the earliest time the location's goods are available
	// at the depot; a route serving it cannot start earlier.
	ReleaseTime int64

	// Delivery and Pickup are per-dimension demand vectors. Empty for
	// depots.
	Delivery, Pickup []int64

	// Prize is the reward for visiting an optional client.
	Prize int64

	// Required marks a client that every complete solution must visit.
	Required bool

	// Group is the client's group index, or NoGroup.
	Group int

	// Name is a free-form label.
	Name string
}

// NewDepot returns a depot at (x, y) with an unbounded window and no demand.
func NewDepot(x, y int64) Location {
	return Location{X: x, Y: y, TwLate: segment.Unbounded, Group: NoGroup}
}

// NewClient returns a required client at (x, y) with an unbounded window,
// zero demand, and no group.
func NewClient(x, y int64) Location {
	return Location{X: x, Y: y, TwLate: segment.Unbounded, Required: true, Group: NoGroup}
}

// VehicleType describes one homogeneous slice of the fleet.
type VehicleType struct {
	// Count is the number of available vehicles of this type.
	Count int

	// StartDepot and EndDepot index the depots the shift starts and ends at.
	StartDepot, EndDepot int

	// Capacity is the per-dimension carrying capacity.
	Capacity []int64

	// FixedCost is charged once per non-empty route.
	FixedCost int64

	// UnitDistanceCost, UnitDurationCost, UnitOvertimeCost scale the
	// respective route totals.
	UnitDistanceCost, UnitDurationCost, UnitOvertimeCost int64

	// TwEarly, TwLate bound the shift.
	TwEarly, TwLate int64

	// ShiftDuration caps the route duration; beyond it overtime begins.
	ShiftDuration int64

	// MaxOvertime caps tolerated overtime; duration beyond
	// ShiftDuration+MaxOvertime counts as time warp.
	MaxOvertime int64

	// MaxDistance caps the route distance.
	MaxDistance int64

	// InitialLoad is cargo already on board when the shift starts; it
	// occupies capacity for the whole first trip.
	InitialLoad []int64

	// ReloadDepots lists depots at which the vehicle may reload mid-route.
	ReloadDepots []int

	// MaxReloads caps reloads per route (trips − 1).
	MaxReloads int

	// Profile selects the distance/duration matrices.
	Profile int

	// Name is a free-form label.
	Name string
}

// NewVehicleType returns a type with count vehicles of the given capacity,
// operating from depot 0 with unbounded shift and distance caps, no
// tolerated overtime (MaxOvertime 0), and unit distance cost 1.
func NewVehicleType(count int, capacity []int64) VehicleType {
	return VehicleType{
		Count:            count,
		Capacity:         capacity,
		UnitDistanceCost: 1,
		TwLate:           segment.Unbounded,
		ShiftDuration:    segment.Unbounded,
		MaxDistance:      segment.Unbounded,
		InitialLoad:      make([]int64, len(capacity)),
	}
}

// MaxTrips returns the trip cap, MaxReloads + 1.
func (vt VehicleType) MaxTrips() int { return vt.MaxReloads + 1 }

// CanReload reports whether the type has at least one reload depot and a
// trip budget above one.
func (vt VehicleType) CanReload() bool {
	return len(vt.ReloadDepots) > 0 && vt.MaxReloads > 0
}

// ClientGroup is a set of clients with joint semantics: a required group
// needs at least one member visited; a mutually-exclusive group tolerates at
// most one.
type ClientGroup struct {
	// Clients lists member client indices (flat index space).
	Clients []int

	// Required demands at least one member in every complete solution.
	Required bool

	// MutuallyExclusive forbids visiting two members.
	MutuallyExclusive bool
}
