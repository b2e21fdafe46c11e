// Package vrp - sentinel errors and the boundary error taxonomy.
//
// Validation problems are collected into a *ValidationError so a caller sees
// every defect of an instance at once. Sentinels cover internal misuse;
// they are never wrapped where a sentinel suffices.
package vrp

import (
	"errors"
	"fmt"
	"strings"
)

// Instance-shape sentinels (used as message prefixes inside ValidationError
// and directly by low-level constructors).
var (
	// ErrEmptyDepots indicates an instance without depots.
	ErrEmptyDepots = errors.New("vrp: no depots")

	// ErrEmptyVehicleTypes indicates an instance without vehicle types.
	ErrEmptyVehicleTypes = errors.New("vrp: no vehicle types")

	// ErrLoadDimensionMismatch indicates delivery/pickup/capacity vectors of
	// differing dimensions.
	ErrLoadDimensionMismatch = errors.New("vrp: load dimension mismatch")

	// ErrIndexOutOfRange indicates a depot, client, group, or profile index
	// outside its valid range.
	ErrIndexOutOfRange = errors.New("vrp: index out of range")

	// ErrNegativeTiming indicates a negative duration, window bound, or
	// release time.
	ErrNegativeTiming = errors.New("vrp: negative timing")

	// ErrInvalidTimeWindow indicates tw_early > tw_late.
	ErrInvalidTimeWindow = errors.New("vrp: invalid time window")

	// ErrRequiredInExclusiveGroup indicates a required client inside a
	// mutually-exclusive group.
	ErrRequiredInExclusiveGroup = errors.New("vrp: required client in mutually exclusive group")

	// ErrMatrixShape indicates a non-square matrix or one whose order does
	// not match the number of locations.
	ErrMatrixShape = errors.New("vrp: bad matrix shape")

	// ErrMatrixDiagonal indicates a non-zero matrix diagonal entry.
	ErrMatrixDiagonal = errors.New("vrp: non-zero matrix diagonal")

	// ErrNegativeMatrixEntry indicates a negative distance or duration.
	ErrNegativeMatrixEntry = errors.New("vrp: negative matrix entry")

	// ErrNoProfiles indicates an instance without distance/duration matrices.
	ErrNoProfiles = errors.New("vrp: no matrix profiles")
)

// Solution-shape sentinels.
var (
	// ErrClientRevisited indicates a client appearing in more than one route
	// or more than once within a route.
	ErrClientRevisited = errors.New("vrp: client visited more than once")

	// ErrVehicleOveruse indicates more routes of a vehicle type than the
	// type's available count.
	ErrVehicleOveruse = errors.New("vrp: vehicle type used beyond its count")

	// ErrTripLimit indicates a route with more trips than max_reloads + 1.
	ErrTripLimit = errors.New("vrp: trip limit exceeded")

	// ErrDepotInRoute indicates a visit list containing a depot that is not
	// a reload depot of the route's vehicle type.
	ErrDepotInRoute = errors.New("vrp: illegal depot visit")
)

// ValidationError aggregates every violation found while constructing a
// ProblemData. It matches the boundary taxonomy: malformed input surfaces
// immediately, with the full list of defects.
type ValidationError struct {
	// Errors holds one human-readable message per violation.
	Errors []string
}

// Error implements error.
func (e *ValidationError) Error() string {
	return fmt.Sprintf("vrp: invalid problem: %s", strings.Join(e.Errors, "; "))
}

// SolveError reports an internal invariant violation or resource exhaustion
// inside the solver. It should never surface for valid inputs.
type SolveError struct {
	// Reason describes the failed invariant.
	Reason string
}

// Error implements error.
func (e *SolveError) Error() string {
	return fmt.Sprintf("vrp: solve failed: %s", e.Reason)
}

// NotImplementedError marks an optional feature deliberately not wired up.
type NotImplementedError struct {
	// Function names the missing entry point.
	Function string
}

// Error implements error.
func (e *NotImplementedError) Error() string {
	return fmt.Sprintf("vrp: not implemented: %s", e.Function)
}
