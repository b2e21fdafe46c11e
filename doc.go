// Package vroute is a metaheuristic vehicle-routing solver for Go.
//
// 🚚 What is vroute?
//
//	A deterministic, single-threaded VRP engine that brings together:
//
//	  • Rich instances: multi-depot, heterogeneous fleets, time windows,
//	    pickups & deliveries, multi-trip reloads, prize collecting
//	  • An exact int64 cost algebra with O(1) segment concatenation
//	  • A granular local search with nine Exchange shapes, SwapTails,
//	    RelocateWithDepot, SwapStar and SwapRoutes
//	  • An ILS outer loop with Late-Acceptance Hill-Climbing and
//	    adaptive penalties
//
// ✨ Why choose vroute?
//
//   - Reproducible — a fixed (instance, seed, options) triple replays the
//     solve byte for byte
//   - Exact        — integer costs, saturating arithmetic, no FP drift
//   - Composable   — plain Options structs, pluggable stop criteria
//
// Everything is organized under small, focused subpackages:
//
//	vrp/     — validated instances & finalised solutions
//	segment/ — concatenable distance / load / duration summaries
//	search/  — mutable routes, move operators, the LocalSearch engine
//	ils/     — penalties, LAHC, the Solve entry point
//	stop/    — stopping criteria and combinators
//	vrplib/  — VRPLIB benchmark reader
//
// Quick ASCII example:
//
//	    depot───c1
//	      │      │
//	      c3────c2
//
//	one vehicle, one trip, four arcs: the smallest tour worth optimizing.
//
// See cmd/vroute for the command-line front end.
//
//	go get github.com/katalvlaran/vroute
package vroute
