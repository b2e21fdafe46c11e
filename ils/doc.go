// Package ils drives the solver's outer loop: Iterated Local Search with
// Late-Acceptance Hill-Climbing and adaptive penalty management.
//
// # What & Why
//
// Each iteration intensifies the current iterate through the local-search
// engine, registers the candidate's feasibility with the penalty manager,
// keeps the best-ever solution, and accepts the candidate as the new
// iterate when it beats either the current cost or the cost accepted K
// iterations ago (the LAHC rule). A long stretch without best-cost
// improvement triggers a restart from a fresh random solution, driven
// feasible under maximal penalties.
//
// # Components
//
//   - PenaltyManager: one adaptively scaled weight per load dimension plus
//     weights for time warp and excess distance, nudged toward a target
//     feasibility rate over a rolling registration window.
//   - lateBuffer: the LAHC ring buffer (append / skip / peek, slots unset
//     until first written).
//   - Solve: the entry point; consumes a validated ProblemData and Options,
//     produces a Result with the best solution and run statistics.
//
// # Determinism
//
// For a fixed (problem, seed, options) the solve is byte-identical: one
// seed feeds derived streams for the local search and the restart
// generator, and no decision reads the clock (wall time only gates the
// optional MaxRuntime criterion and fills the Runtime statistic).
//
// # Concurrency
//
// Single-threaded by contract. The only cooperative yield is the stop
// criterion consultation between iterations; a cancelled solve returns the
// best solution found so far, never partial state.
package ils
