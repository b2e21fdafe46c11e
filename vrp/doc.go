// Package vrp defines the immutable problem instance and the finalised
// solution snapshot for the vehicle-routing solver, with a consistent API,
// strict sentinel errors, and an exact int64 cost model.
//
// # What & Why
//
// A routing instance is a flat space of N = numDepots + numClients locations
// (depots first), a fleet of heterogeneous vehicle types, optional client
// groups, and one distance plus one duration matrix per routing profile.
// ProblemData freezes a validated instance; Solution freezes an assignment
// of clients to vehicle routes together with every aggregate a caller may
// query (distance, duration, time warp, loads, excess, overtime, prizes,
// schedules).
//
// # Data Model
//
//   - Location: position, time window, service duration, release time,
//     delivery/pickup vectors, prize, required flag, optional group.
//   - VehicleType: count, start/end depots, capacity vector, fixed and
//     per-unit costs, shift window and duration cap, overtime cap, max
//     distance, initial load, reload depots, max reloads, matrix profile.
//   - ClientGroup: member clients plus required / mutually-exclusive flags.
//   - Matrix: dense row-major int64, zero diagonal, possibly asymmetric.
//
// # Invariants
//
//	tw_early ≤ tw_late for every location and shift window.
//	Delivery, pickup, capacity and initial-load vectors share one dimension.
//	Matrix diagonals are zero; all referenced indices are in range.
//	A required client cannot belong to a mutually-exclusive group.
//
// # Errors
//
// Construction rejects malformed instances with a *ValidationError carrying
// every violation found, not just the first. Internal misuse surfaces as the
// strict sentinels of errors.go. Infeasibility is not an error: an
// infeasible Solution simply reports cost Unbounded at the evaluator layer.
//
// # Numeric policy
//
// All quantities are int64; absent limits are segment.Unbounded and all
// arithmetic saturates against it (see package segment).
package vrp
