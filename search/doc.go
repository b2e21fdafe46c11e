// Package search implements the local-search layer of the solver: the
// mutable route representation, the penalised cost evaluator, the closed
// set of move operators, and the orchestrator that drives them to a fixed
// point.
//
// # What & Why
//
// The outer metaheuristic repeatedly asks this package for an improved
// neighbour of a working solution. LocalSearch loads the solution into
// mutable Routes, scans a granular neighbourhood of each client in a
// seeded-random order, applies strictly improving moves until none remains,
// optionally runs whole-route operators, and exports a finalised snapshot.
//
// # Components
//
//   - CostEvaluator: frozen penalty weights; maps routes, proposals, and
//     solutions to a penalised int64 cost.
//   - Route / Node: a doubly-bracketed visit sequence with lazy prefix and
//     suffix segment caches, rebuilt in one O(n) pass after mutations.
//   - Node operators: Exchange(m,n) for (m,n) up to (3,3), SwapTails, and
//     RelocateWithDepot. Each returns the exact delta of the proposed change
//     or 0 when the move is not representable.
//   - Route operators: SwapStar and SwapRoutes.
//   - LocalSearch: the orchestrator, with perturbation and completion
//     passes and per-operator statistics.
//
// # Determinism
//
// A single seeded RNG drives the client permutation and the perturbation
// pass; operators and neighbourhoods are scanned in stable orders with
// index tie-breaks. Two runs from the same seed take identical decisions.
//
// # Contracts
//
//   - Operator Evaluate never mutates; Apply mutates exactly the involved
//     routes and leaves them dirty. Callers update before the next query.
//   - The delta returned by Evaluate equals the observed change in
//     penalised cost after Apply + Update, exactly.
//   - Moves that empty a route credit its fixed cost; moves that fill an
//     empty route charge it. An empty route contributes no depot-to-depot
//     arc to any delta.
package search
