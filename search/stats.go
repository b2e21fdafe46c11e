// Package search - search statistics.
package search

// OperatorStats counts one operator's activity. Applications never exceed
// evaluations.
type OperatorStats struct {
	// Name is the operator's display name.
	Name string

	// NumEvaluations counts Evaluate calls.
	NumEvaluations int

	// NumApplications counts Apply calls.
	NumApplications int
}

// Statistics aggregates a LocalSearch instance's activity across runs.
type Statistics struct {
	// NumMoves counts every applied mutation, completion inserts included.
	NumMoves int

	// NumImproving counts strictly improving operator applications.
	NumImproving int

	// NumUpdates counts route cache rebuilds triggered by the orchestrator.
	NumUpdates int

	// NodeOps and RouteOps hold per-operator counters in registration
	// order.
	NodeOps  []OperatorStats
	RouteOps []OperatorStats
}

// init sizes the per-operator slots.
func (s *Statistics) init(nodeOps []NodeOperator, routeOps []RouteOperator) {
	s.NodeOps = make([]OperatorStats, len(nodeOps))
	for i, op := range nodeOps {
		s.NodeOps[i].Name = op.Name()
	}
	s.RouteOps = make([]OperatorStats, len(routeOps))
	for i, op := range routeOps {
		s.RouteOps[i].Name = op.Name()
	}
}

// Reset zeroes every counter, keeping the operator slots.
func (s *Statistics) Reset() {
	s.NumMoves, s.NumImproving, s.NumUpdates = 0, 0, 0
	for i := range s.NodeOps {
		s.NodeOps[i].NumEvaluations, s.NodeOps[i].NumApplications = 0, 0
	}
	for i := range s.RouteOps {
		s.RouteOps[i].NumEvaluations, s.RouteOps[i].NumApplications = 0, 0
	}
}
