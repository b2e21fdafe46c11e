// Package vrp - finalised routes and solutions.
//
// Route and Solution are immutable snapshots: every aggregate a caller may
// query is computed once at construction from the segment algebra and a
// single forward scheduling pass, then served from cache. The search engine
// converts its mutable working representation to and from these snapshots
// at iteration boundaries.
package vrp

import (
	"math"

	"github.com/samber/lo"

	"github.com/katalvlaran/vroute/segment"
)

// Visit describes one scheduled stop of a route.
type Visit struct {
	// Location is the flat location index (client or depot).
	Location int

	// Trip is the 0-based trip the stop belongs to.
	Trip int

	// StartService and EndService bound the on-site service.
	StartService, EndService int64

	// WaitDuration is idle time before service opens.
	WaitDuration int64

	// TimeWarp is the forced lateness absorbed at this stop.
	TimeWarp int64
}

// Route is a finalised vehicle route: an ordered interior visit list
// (clients, possibly interleaved with reload depots marking trip
// boundaries) tagged with its vehicle type.
type Route struct {
	visits      []int
	vehicleType int

	startDepot, endDepot int
	numTrips             int

	distance, excessDistance int64
	duration, travelDur      int64
	serviceDur, waitDur      int64
	timeWarp, overtime       int64
	startTime, endTime       int64
	slack                    int64

	delivery, pickup, excessLoad []int64
	prizes                       int64
	distanceCost, durationCost   int64
	overtimeCost                 int64

	centroidX, centroidY float64
	schedule             []Visit
}

// NewRoute finalises the interior visit list under the given vehicle type,
// computing and caching every aggregate. Interior depots must be reload
// depots of the type; the trip count must respect the type's cap.
func NewRoute(data *ProblemData, visits []int, vehicleType int) (Route, error) {
	if vehicleType < 0 || vehicleType >= data.NumVehicleTypes() {
		return Route{}, ErrIndexOutOfRange
	}
	vt := data.VehicleType(vehicleType)

	r := Route{
		visits:      append([]int(nil), visits...),
		vehicleType: vehicleType,
		startDepot:  vt.StartDepot,
		endDepot:    vt.EndDepot,
		numTrips:    1,
		slack:       segment.Unbounded,
	}

	var (
		v       int
		clients int
	)
	for _, v = range visits {
		if v < 0 || v >= data.NumLocations() {
			return Route{}, ErrIndexOutOfRange
		}
		if data.IsDepot(v) {
			if !lo.Contains(vt.ReloadDepots, v) {
				return Route{}, ErrDepotInRoute
			}
			r.numTrips++
			continue
		}
		clients++
	}
	if r.numTrips > vt.MaxTrips() {
		return Route{}, ErrTripLimit
	}

	r.delivery = make([]int64, data.NumLoadDimensions())
	r.pickup = make([]int64, data.NumLoadDimensions())
	r.excessLoad = make([]int64, data.NumLoadDimensions())
	if clients == 0 {
		return r, nil
	}
	r.compute(data, vt)

	return r, nil
}

// compute fills every cached aggregate for a non-empty route.
func (r *Route) compute(data *ProblemData, vt VehicleType) {
	seq := make([]int, 0, len(r.visits)+2)
	seq = append(seq, r.startDepot)
	seq = append(seq, r.visits...)
	seq = append(seq, r.endDepot)

	prof := vt.Profile

	// Distance and travel duration: plain arc sums.
	var i int
	for i = 0; i+1 < len(seq); i++ {
		r.distance = segment.SatAdd(r.distance, data.Dist(prof, seq[i], seq[i+1]))
		r.travelDur = segment.SatAdd(r.travelDur, data.Dur(prof, seq[i], seq[i+1]))
	}
	r.excessDistance = max(0, segment.SatSub(r.distance, vt.MaxDistance))
	r.distanceCost = segment.SatMul(vt.UnitDistanceCost, r.distance)

	// Loads: fold per dimension with finalisation at every depot. The
	// vehicle's initial cargo rides the first trip as a pickup at the start.
	var dim int
	for dim = 0; dim < data.NumLoadDimensions(); dim++ {
		ls := segment.NewLoadSegment(0, vt.InitialLoad[dim])
		for i = 1; i < len(seq); i++ {
			loc := data.Location(seq[i])
			if data.IsDepot(seq[i]) {
				ls = ls.Finalise(vt.Capacity[dim])
				continue
			}
			ls = ls.Merge(segment.NewLoadSegment(loc.Delivery[dim], loc.Pickup[dim]))
			r.delivery[dim] += loc.Delivery[dim]
			r.pickup[dim] += loc.Pickup[dim]
		}
		r.excessLoad[dim] = ls.Excess
	}

	// Duration: segment fold, then the shift-duration split into overtime
	// and warp.
	ds := routeDurationSegment(data, vt, seq)
	r.duration = ds.Duration
	r.timeWarp = ds.Warp()
	rawOver := max(0, segment.SatSub(ds.Duration, vt.ShiftDuration))
	r.overtime = min(rawOver, vt.MaxOvertime)
	r.timeWarp = segment.SatAdd(r.timeWarp, rawOver-r.overtime)
	r.durationCost = segment.SatMul(vt.UnitDurationCost, r.duration)
	r.overtimeCost = segment.SatMul(vt.UnitOvertimeCost, r.overtime)
	r.startTime = ds.StartTime()
	r.slack = ds.Slack()

	// Prizes, service total, centroid.
	var sumX, sumY, n float64
	for _, v := range r.visits {
		if data.IsDepot(v) {
			continue
		}
		loc := data.Location(v)
		r.prizes += loc.Prize
		r.serviceDur = segment.SatAdd(r.serviceDur, loc.ServiceDuration)
		sumX += float64(loc.X)
		sumY += float64(loc.Y)
		n++
	}
	r.centroidX, r.centroidY = sumX/n, sumY/n

	r.schedule = buildSchedule(data, vt, seq, r.startTime)
	r.endTime = r.schedule[len(r.schedule)-1].EndService
	r.waitDur = max(0, r.duration-r.travelDur-r.serviceDur)
}

// routeDurationSegment folds the duration segments of seq left to right,
// intersecting the depot sentinels' windows with the vehicle shift.
func routeDurationSegment(data *ProblemData, vt VehicleType, seq []int) segment.DurationSegment {
	ds := sentinelDuration(data, vt, seq[0])

	var i int
	for i = 1; i < len(seq); i++ {
		arc := data.Dur(vt.Profile, seq[i-1], seq[i])
		var next segment.DurationSegment
		if i == len(seq)-1 {
			next = sentinelDuration(data, vt, seq[i])
		} else {
			loc := data.Location(seq[i])
			next = segment.NewDurationSegment(loc.ServiceDuration, loc.TwEarly, loc.TwLate, loc.ReleaseTime)
		}
		ds = ds.Merge(arc, next)
	}

	return ds
}

// sentinelDuration builds the duration segment of a start/end depot
// sentinel: the depot window intersected with the vehicle shift, no service.
func sentinelDuration(data *ProblemData, vt VehicleType, depot int) segment.DurationSegment {
	loc := data.Location(depot)

	return segment.NewDurationSegment(0, max(loc.TwEarly, vt.TwEarly), min(loc.TwLate, vt.TwLate), 0)
}

// Visits returns the interior visit list (read-only).
func (r Route) Visits() []int { return r.visits }

// VehicleType returns the route's vehicle-type index.
func (r Route) VehicleType() int { return r.vehicleType }

// StartDepot returns the depot the route starts at.
func (r Route) StartDepot() int { return r.startDepot }

// EndDepot returns the depot the route ends at.
func (r Route) EndDepot() int { return r.endDepot }

// NumTrips returns 1 + the number of interior reload visits.
func (r Route) NumTrips() int { return r.numTrips }

// NumClients returns the number of client visits.
func (r Route) NumClients() int { return len(r.visits) - (r.numTrips - 1) }

// Empty reports whether the route serves no clients.
func (r Route) Empty() bool { return r.NumClients() == 0 }

// Distance returns the total travelled distance.
func (r Route) Distance() int64 { return r.distance }

// ExcessDistance returns the violation of the vehicle's distance cap.
func (r Route) ExcessDistance() int64 { return r.excessDistance }

// Duration returns travel + service + waiting.
func (r Route) Duration() int64 { return r.duration }

// TravelDuration returns the travel part of the duration.
func (r Route) TravelDuration() int64 { return r.travelDur }

// ServiceDuration returns the service part of the duration.
func (r Route) ServiceDuration() int64 { return r.serviceDur }

// WaitDuration returns the forced idle part of the duration.
func (r Route) WaitDuration() int64 { return r.waitDur }

// TimeWarp returns the route's total forced time-window violation.
func (r Route) TimeWarp() int64 { return r.timeWarp }

// Overtime returns duration beyond the shift cap, up to the overtime cap.
func (r Route) Overtime() int64 { return r.overtime }

// StartTime returns the duration-minimising shift start.
func (r Route) StartTime() int64 { return r.startTime }

// EndTime returns the arrival back at the end depot.
func (r Route) EndTime() int64 { return r.endTime }

// Slack returns how far the start may shift without new warp.
func (r Route) Slack() int64 { return r.slack }

// Delivery returns the per-dimension delivered totals (read-only).
func (r Route) Delivery() []int64 { return r.delivery }

// Pickup returns the per-dimension picked-up totals (read-only).
func (r Route) Pickup() []int64 { return r.pickup }

// ExcessLoad returns the per-dimension capacity violations (read-only).
func (r Route) ExcessLoad() []int64 { return r.excessLoad }

// Prizes returns the total prize collected on the route.
func (r Route) Prizes() int64 { return r.prizes }

// DistanceCost returns unit-distance cost × distance.
func (r Route) DistanceCost() int64 { return r.distanceCost }

// DurationCost returns unit-duration cost × duration.
func (r Route) DurationCost() int64 { return r.durationCost }

// OvertimeCost returns unit-overtime cost × overtime.
func (r Route) OvertimeCost() int64 { return r.overtimeCost }

// Centroid returns the arithmetic mean of client positions; an empty route
// reports (0, 0).
func (r Route) Centroid() (float64, float64) {
	if r.Empty() {
		return 0, 0
	}

	return r.centroidX, r.centroidY
}

// Schedule returns the per-stop timing rows, including both depot
// sentinels (read-only). Nil for empty routes.
func (r Route) Schedule() []Visit { return r.schedule }

// IsFeasible reports zero capacity, time-warp, and distance violations.
func (r Route) IsFeasible() bool {
	return r.timeWarp == 0 && r.excessDistance == 0 &&
		lo.EveryBy(r.excessLoad, func(e int64) bool { return e == 0 })
}

// Solution is an immutable list of finalised routes plus cached aggregates.
type Solution struct {
	routes []Route

	distance, duration int64
	timeWarp, overtime int64
	excessDistance     int64
	excessLoad         []int64
	fixedCost          int64
	prizes             int64
	uncollected        int64

	feasible, complete bool
	groupViolations    int
	numClients         int
	missing            []int
}

// NewSolution validates route compatibility (each client at most once,
// vehicle counts respected) and caches solution-level aggregates.
func NewSolution(data *ProblemData, routes []Route) (*Solution, error) {
	s := &Solution{
		routes:     append([]Route(nil), routes...),
		excessLoad: make([]int64, data.NumLoadDimensions()),
	}

	seen := make([]bool, data.NumLocations())
	typeUse := make([]int, data.NumVehicleTypes())

	var (
		ri  int
		dim int
	)
	for ri = range s.routes {
		r := &s.routes[ri]
		typeUse[r.vehicleType]++
		if typeUse[r.vehicleType] > data.VehicleType(r.vehicleType).Count {
			return nil, ErrVehicleOveruse
		}
		for _, v := range r.visits {
			if data.IsDepot(v) {
				continue
			}
			if seen[v] {
				return nil, ErrClientRevisited
			}
			seen[v] = true
			s.numClients++
		}

		s.distance = segment.SatAdd(s.distance, r.distance)
		s.duration = segment.SatAdd(s.duration, r.duration)
		s.timeWarp = segment.SatAdd(s.timeWarp, r.timeWarp)
		s.overtime = segment.SatAdd(s.overtime, r.overtime)
		s.excessDistance = segment.SatAdd(s.excessDistance, r.excessDistance)
		for dim = range s.excessLoad {
			s.excessLoad[dim] = segment.SatAdd(s.excessLoad[dim], r.excessLoad[dim])
		}
		if !r.Empty() {
			s.fixedCost = segment.SatAdd(s.fixedCost, data.VehicleType(r.vehicleType).FixedCost)
		}
		s.prizes += r.prizes
	}

	s.complete = true
	for c := data.NumDepots(); c < data.NumLocations(); c++ {
		if seen[c] {
			continue
		}
		loc := data.Location(c)
		s.missing = append(s.missing, c)
		if loc.Required {
			s.complete = false
		} else {
			s.uncollected += loc.Prize
		}
	}
	s.groupViolations = countGroupViolations(data, seen)
	if s.groupViolations > 0 {
		s.complete = false
	}

	s.feasible = s.timeWarp == 0 && s.excessDistance == 0 &&
		lo.EveryBy(s.excessLoad, func(e int64) bool { return e == 0 })

	return s, nil
}

// countGroupViolations counts required groups with no member visited and
// mutually-exclusive groups with more than one.
func countGroupViolations(data *ProblemData, seen []bool) int {
	var violations int
	for g := 0; g < data.NumGroups(); g++ {
		grp := data.Group(g)
		visited := lo.CountBy(grp.Clients, func(c int) bool { return seen[c] })
		if grp.Required && visited == 0 {
			violations++
		}
		if grp.MutuallyExclusive && visited > 1 {
			violations++
		}
	}

	return violations
}

// NumRoutes returns the number of routes, empty ones included.
func (s *Solution) NumRoutes() int { return len(s.routes) }

// Route returns the finalised route at index i (read-only).
func (s *Solution) Route(i int) Route { return s.routes[i] }

// Routes returns the route list (read-only).
func (s *Solution) Routes() []Route { return s.routes }

// NumClients returns the number of clients visited across routes.
func (s *Solution) NumClients() int { return s.numClients }

// MissingClients returns the clients in no route (read-only).
func (s *Solution) MissingClients() []int { return s.missing }

// Distance returns the summed route distances.
func (s *Solution) Distance() int64 { return s.distance }

// Duration returns the summed route durations.
func (s *Solution) Duration() int64 { return s.duration }

// TimeWarp returns the summed route time warps.
func (s *Solution) TimeWarp() int64 { return s.timeWarp }

// Overtime returns the summed route overtimes.
func (s *Solution) Overtime() int64 { return s.overtime }

// ExcessDistance returns the summed distance-cap violations.
func (s *Solution) ExcessDistance() int64 { return s.excessDistance }

// ExcessLoad returns the summed per-dimension capacity violations
// (read-only).
func (s *Solution) ExcessLoad() []int64 { return s.excessLoad }

// FixedCost returns the summed fixed costs of non-empty routes.
func (s *Solution) FixedCost() int64 { return s.fixedCost }

// Prizes returns the total collected prize.
func (s *Solution) Prizes() int64 { return s.prizes }

// UncollectedPrizes returns the total prize of unvisited optional clients.
func (s *Solution) UncollectedPrizes() int64 { return s.uncollected }

// GroupViolations counts violated group constraints.
func (s *Solution) GroupViolations() int { return s.groupViolations }

// IsFeasible reports zero capacity, time-warp, and distance violations.
func (s *Solution) IsFeasible() bool { return s.feasible }

// IsComplete reports that every required client is visited and every group
// constraint holds.
func (s *Solution) IsComplete() bool { return s.complete }

// CentroidDistance is a helper for overlap diagnostics: the Euclidean
// distance between two route centroids.
func CentroidDistance(a, b Route) float64 {
	ax, ay := a.Centroid()
	bx, by := b.Centroid()

	return math.Hypot(ax-bx, ay-by)
}
