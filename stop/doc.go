// Package stop provides stopping criteria for the solver's outer loop.
//
// A Criterion is a pure predicate consulted once per iteration with the
// best cost found so far (the Unbounded sentinel while no feasible solution
// exists). Criteria are value types with strict construction-time
// validation; combinators Any and All compose them.
//
// Contracts:
//
//	MaxIterations(n) - true on the n-th consultation (the counter increments
//	                   before comparison); n = 0 stops immediately; negative
//	                   n is rejected at construction.
//	MaxRuntime(d)    - true once wall-clock ≥ d; negative d is rejected.
//	NoImprovement(k) - the counter resets whenever best cost improves; true
//	                   after k consecutive non-improving consultations;
//	                   k = 0 stops immediately.
//	FirstFeasible    - true iff best cost is not the Unbounded sentinel.
//	Any(cs)          - true iff any child is true; rejects an empty list.
//	All(cs)          - true iff all children are true.
package stop
