// Package search - the mutable route node.
//
// Nodes and routes form a cyclic ownership graph; both sides hold plain
// indices and pointers into arena-style slices owned by LocalSearch, never
// owning references of each other.
package search

// Node is one visit slot inside a mutable Route: a client, a reload-depot
// sentinel, or one of the two bracketing depot sentinels.
type Node struct {
	loc     int
	isDepot bool

	route *Route
	idx   int
	trip  int
}

// NewNode returns a detached node for the given location.
func NewNode(loc int, isDepot bool) *Node {
	return &Node{loc: loc, isDepot: isDepot, idx: -1}
}

// Loc returns the flat location index the node visits.
func (n *Node) Loc() int { return n.loc }

// IsDepot reports whether the node is a depot visit (sentinel or reload).
func (n *Node) IsDepot() bool { return n.isDepot }

// Route returns the owning route, or nil while detached.
func (n *Node) Route() *Route { return n.route }

// HasRoute reports whether the node currently belongs to a route.
func (n *Node) HasRoute() bool { return n.route != nil }

// Idx returns the node's 0-based position within its route; -1 while
// detached.
func (n *Node) Idx() int { return n.idx }

// Trip returns the node's 0-based trip number within its route.
func (n *Node) Trip() int { return n.trip }

// detach clears the route back-reference.
func (n *Node) detach() {
	n.route = nil
	n.idx = -1
	n.trip = 0
}
