// Package vrp - validated, immutable problem instances.
//
// NewProblemData copies its inputs, validates every structural invariant,
// and either returns a frozen handle shared by reference for the rest of
// the solve, or a *ValidationError listing all defects found.
//
// Validation is staged the same way throughout the module: shape first,
// then per-entity invariants, then cross-entity references.
package vrp

import (
	"fmt"

	"github.com/katalvlaran/vroute/segment"
)

// ProblemData is a frozen routing instance. All accessors are read-only and
// safe to share across the whole solve.
type ProblemData struct {
	locations    []Location // depots first
	numDepots    int
	vehicleTypes []VehicleType
	groups       []ClientGroup
	dists        []*Matrix // one per profile
	durs         []*Matrix // one per profile
	numVehicles  int
	loadDims     int
}

// NewProblemData validates and freezes an instance. depots and clients share
// one flat index space with depots first. distances and durations hold one
// matrix per profile, each of order len(depots)+len(clients).
func NewProblemData(
	depots, clients []Location,
	vehicleTypes []VehicleType,
	groups []ClientGroup,
	distances, durations []*Matrix,
) (*ProblemData, error) {
	var errs []string

	if len(depots) == 0 {
		errs = append(errs, ErrEmptyDepots.Error())
	}
	if len(vehicleTypes) == 0 {
		errs = append(errs, ErrEmptyVehicleTypes.Error())
	}
	if len(distances) == 0 || len(durations) != len(distances) {
		errs = append(errs, ErrNoProfiles.Error())
	}

	d := &ProblemData{
		numDepots: len(depots),
		loadDims:  loadDimsOf(vehicleTypes),
	}
	d.locations = make([]Location, 0, len(depots)+len(clients))
	d.locations = append(d.locations, depots...)
	d.locations = append(d.locations, clients...)
	d.vehicleTypes = append(d.vehicleTypes, vehicleTypes...)
	d.groups = append(d.groups, groups...)
	d.dists = append(d.dists, distances...)
	d.durs = append(d.durs, durations...)

	errs = d.validateLocations(errs)
	errs = d.validateVehicleTypes(errs)
	errs = d.validateGroups(errs)
	errs = d.validateMatrices(errs)

	if len(errs) > 0 {
		return nil, &ValidationError{Errors: errs}
	}
	for i := range d.vehicleTypes {
		d.numVehicles += d.vehicleTypes[i].Count
	}
	d.normalizeLoadVectors()

	return d, nil
}

// loadDimsOf derives the shared load dimension from the first vehicle type.
func loadDimsOf(vts []VehicleType) int {
	if len(vts) == 0 {
		return 0
	}

	return len(vts[0].Capacity)
}

func (d *ProblemData) validateLocations(errs []string) []string {
	var (
		i   int
		loc Location
	)
	for i, loc = range d.locations {
		if loc.TwEarly < 0 || loc.ServiceDuration < 0 || loc.ReleaseTime < 0 {
			errs = append(errs, fmt.Sprintf("%v: location %d", ErrNegativeTiming, i))
		}
		if loc.TwEarly > loc.TwLate {
			errs = append(errs, fmt.Sprintf("%v: location %d", ErrInvalidTimeWindow, i))
		}
		if loc.Prize < 0 {
			errs = append(errs, fmt.Sprintf("vrp: negative prize: location %d", i))
		}
		errs = d.validateDemand(errs, i, loc.Delivery, "delivery")
		errs = d.validateDemand(errs, i, loc.Pickup, "pickup")
		if i >= d.numDepots && loc.Group != NoGroup && (loc.Group < 0 || loc.Group >= len(d.groups)) {
			errs = append(errs, fmt.Sprintf("%v: group of location %d", ErrIndexOutOfRange, i))
		}
	}

	return errs
}

func (d *ProblemData) validateDemand(errs []string, loc int, vec []int64, kind string) []string {
	if len(vec) != 0 && len(vec) != d.loadDims {
		return append(errs, fmt.Sprintf("%v: %s of location %d", ErrLoadDimensionMismatch, kind, loc))
	}
	for _, v := range vec {
		if v < 0 {
			return append(errs, fmt.Sprintf("vrp: negative %s: location %d", kind, loc))
		}
	}

	return errs
}

func (d *ProblemData) validateVehicleTypes(errs []string) []string {
	var (
		t  int
		vt VehicleType
	)
	for t, vt = range d.vehicleTypes {
		if vt.Count <= 0 {
			errs = append(errs, fmt.Sprintf("vrp: non-positive vehicle count: type %d", t))
		}
		if vt.StartDepot < 0 || vt.StartDepot >= d.numDepots ||
			vt.EndDepot < 0 || vt.EndDepot >= d.numDepots {
			errs = append(errs, fmt.Sprintf("%v: depots of vehicle type %d", ErrIndexOutOfRange, t))
		}
		if len(vt.Capacity) != d.loadDims ||
			(len(vt.InitialLoad) != 0 && len(vt.InitialLoad) != d.loadDims) {
			errs = append(errs, fmt.Sprintf("%v: vehicle type %d", ErrLoadDimensionMismatch, t))
		}
		for _, c := range vt.Capacity {
			if c < 0 {
				errs = append(errs, fmt.Sprintf("vrp: negative capacity: type %d", t))
				break
			}
		}
		if vt.FixedCost < 0 || vt.UnitDistanceCost < 0 || vt.UnitDurationCost < 0 || vt.UnitOvertimeCost < 0 {
			errs = append(errs, fmt.Sprintf("vrp: negative cost: vehicle type %d", t))
		}
		if vt.TwEarly < 0 || vt.TwEarly > vt.TwLate {
			errs = append(errs, fmt.Sprintf("%v: shift of vehicle type %d", ErrInvalidTimeWindow, t))
		}
		if vt.ShiftDuration < 0 || vt.MaxOvertime < 0 || vt.MaxDistance < 0 || vt.MaxReloads < 0 {
			errs = append(errs, fmt.Sprintf("vrp: negative cap: vehicle type %d", t))
		}
		for _, dep := range vt.ReloadDepots {
			if dep < 0 || dep >= d.numDepots {
				errs = append(errs, fmt.Sprintf("%v: reload depot of vehicle type %d", ErrIndexOutOfRange, t))
				break
			}
		}
		if vt.Profile < 0 || vt.Profile >= len(d.dists) {
			errs = append(errs, fmt.Sprintf("%v: profile of vehicle type %d", ErrIndexOutOfRange, t))
		}
	}

	return errs
}

func (d *ProblemData) validateGroups(errs []string) []string {
	var (
		g   int
		grp ClientGroup
	)
	for g, grp = range d.groups {
		if len(grp.Clients) == 0 {
			errs = append(errs, fmt.Sprintf("vrp: empty group %d", g))
		}
		for _, c := range grp.Clients {
			if c < d.numDepots || c >= len(d.locations) {
				errs = append(errs, fmt.Sprintf("%v: member of group %d", ErrIndexOutOfRange, g))
				continue
			}
			if grp.MutuallyExclusive && d.locations[c].Required {
				errs = append(errs, fmt.Sprintf("%v: group %d client %d", ErrRequiredInExclusiveGroup, g, c))
			}
		}
	}

	return errs
}

func (d *ProblemData) validateMatrices(errs []string) []string {
	order := len(d.locations)
	var p int
	for p = range d.dists {
		errs = d.dists[p].validate(fmt.Sprintf("distance profile %d", p), order, errs)
	}
	for p = range d.durs {
		errs = d.durs[p].validate(fmt.Sprintf("duration profile %d", p), order, errs)
	}

	return errs
}

// normalizeLoadVectors pads nil demand and initial-load vectors to the
// shared dimension so downstream code never branches on missing vectors.
func (d *ProblemData) normalizeLoadVectors() {
	var i int
	for i = range d.locations {
		if len(d.locations[i].Delivery) == 0 {
			d.locations[i].Delivery = make([]int64, d.loadDims)
		}
		if len(d.locations[i].Pickup) == 0 {
			d.locations[i].Pickup = make([]int64, d.loadDims)
		}
	}
	for i = range d.vehicleTypes {
		if len(d.vehicleTypes[i].InitialLoad) == 0 {
			d.vehicleTypes[i].InitialLoad = make([]int64, d.loadDims)
		}
	}
}

// NumDepots returns the number of depot locations.
func (d *ProblemData) NumDepots() int { return d.numDepots }

// NumClients returns the number of client locations.
func (d *ProblemData) NumClients() int { return len(d.locations) - d.numDepots }

// NumLocations returns depots + clients.
func (d *ProblemData) NumLocations() int { return len(d.locations) }

// NumLoadDimensions returns the shared load dimension.
func (d *ProblemData) NumLoadDimensions() int { return d.loadDims }

// NumVehicleTypes returns the number of vehicle types.
func (d *ProblemData) NumVehicleTypes() int { return len(d.vehicleTypes) }

// NumVehicles returns the total fleet size across types.
func (d *ProblemData) NumVehicles() int { return d.numVehicles }

// NumProfiles returns the number of matrix profiles.
func (d *ProblemData) NumProfiles() int { return len(d.dists) }

// NumGroups returns the number of client groups.
func (d *ProblemData) NumGroups() int { return len(d.groups) }

// IsDepot reports whether loc indexes a depot.
func (d *ProblemData) IsDepot(loc int) bool { return loc < d.numDepots }

// IsClient reports whether loc indexes a client.
func (d *ProblemData) IsClient(loc int) bool { return loc >= d.numDepots }

// Location returns the location at the flat index. The returned value
// shares its vectors with the instance; treat it as read-only.
func (d *ProblemData) Location(loc int) Location { return d.locations[loc] }

// VehicleType returns the vehicle type at index t (read-only).
func (d *ProblemData) VehicleType(t int) VehicleType { return d.vehicleTypes[t] }

// Group returns the client group at index g (read-only).
func (d *ProblemData) Group(g int) ClientGroup { return d.groups[g] }

// Dist returns the distance from i to j under the given profile.
func (d *ProblemData) Dist(profile, i, j int) int64 { return d.dists[profile].At(i, j) }

// Dur returns the travel duration from i to j under the given profile.
func (d *ProblemData) Dur(profile, i, j int) int64 { return d.durs[profile].At(i, j) }

// DistMatrix returns the distance matrix of a profile (read-only).
func (d *ProblemData) DistMatrix(profile int) *Matrix { return d.dists[profile] }

// DurMatrix returns the duration matrix of a profile (read-only).
func (d *ProblemData) DurMatrix(profile int) *Matrix { return d.durs[profile] }

// AvgArcDistance returns the mean off-diagonal distance of profile 0,
// rounded down. Used to seed penalty weights.
func (d *ProblemData) AvgArcDistance() int64 { return avgOffDiagonal(d.dists[0]) }

// AvgArcDuration returns the mean off-diagonal duration of profile 0.
func (d *ProblemData) AvgArcDuration() int64 { return avgOffDiagonal(d.durs[0]) }

// AvgClientDemand returns the mean of max(delivery, pickup) over clients in
// the given dimension, rounded down.
func (d *ProblemData) AvgClientDemand(dim int) int64 {
	if d.NumClients() == 0 {
		return 0
	}

	var sum int64
	for i := d.numDepots; i < len(d.locations); i++ {
		sum += max(d.locations[i].Delivery[dim], d.locations[i].Pickup[dim])
	}

	return sum / int64(d.NumClients())
}

// MaxOptionalPrize returns the largest prize among optional clients.
func (d *ProblemData) MaxOptionalPrize() int64 {
	var best int64
	for i := d.numDepots; i < len(d.locations); i++ {
		if !d.locations[i].Required && d.locations[i].Prize > best {
			best = d.locations[i].Prize
		}
	}

	return best
}

// avgOffDiagonal computes the floor of the mean off-diagonal entry.
func avgOffDiagonal(m *Matrix) int64 {
	n := m.Order()
	if n < 2 {
		return 0
	}

	var (
		sum  int64
		i, j int
	)
	for i = 0; i < n; i++ {
		for j = 0; j < n; j++ {
			if i != j {
				sum = segment.SatAdd(sum, m.At(i, j))
			}
		}
	}

	return sum / int64(n*(n-1))
}
