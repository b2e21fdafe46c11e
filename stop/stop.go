// Package stop - criterion implementations.
package stop

import (
	"errors"
	"time"

	"github.com/katalvlaran/vroute/segment"
)

// Sentinel errors.
var (
	// ErrNegativeLimit indicates a negative iteration or runtime budget.
	ErrNegativeLimit = errors.New("stop: negative limit")

	// ErrEmptyCriteria indicates Any was built from no children.
	ErrEmptyCriteria = errors.New("stop: empty criteria list")
)

// Criterion decides, once per outer-loop iteration, whether to stop.
// bestCost is the best cost found so far, segment.Unbounded while no
// feasible solution exists.
type Criterion interface {
	ShouldStop(bestCost int64) bool
}

// maxIterations stops on the n-th consultation.
type maxIterations struct {
	limit int
	count int
}

// MaxIterations returns a criterion firing on the n-th consultation;
// n = 0 stops immediately.
func MaxIterations(n int) (Criterion, error) {
	if n < 0 {
		return nil, ErrNegativeLimit
	}

	return &maxIterations{limit: n}, nil
}

// ShouldStop implements Criterion. The counter increments before the
// comparison, so limit 0 fires at once.
func (c *maxIterations) ShouldStop(int64) bool {
	c.count++

	return c.count >= c.limit
}

// maxRuntime stops once the wall clock passes the budget. The clock starts
// at the first consultation.
type maxRuntime struct {
	limit    time.Duration
	started  bool
	deadline time.Time
}

// MaxRuntime returns a wall-clock criterion; negative budgets are rejected.
func MaxRuntime(d time.Duration) (Criterion, error) {
	if d < 0 {
		return nil, ErrNegativeLimit
	}

	return &maxRuntime{limit: d}, nil
}

// ShouldStop implements Criterion.
func (c *maxRuntime) ShouldStop(int64) bool {
	if !c.started {
		c.started = true
		c.deadline = time.Now().Add(c.limit)
	}

	return !time.Now().Before(c.deadline)
}

// noImprovement stops after k consecutive non-improving consultations.
type noImprovement struct {
	limit int
	count int
	best  int64
	seen  bool
}

// NoImprovement returns a criterion firing after k consecutive
// consultations without best-cost improvement; k = 0 stops immediately.
func NoImprovement(k int) (Criterion, error) {
	if k < 0 {
		return nil, ErrNegativeLimit
	}

	return &noImprovement{limit: k}, nil
}

// ShouldStop implements Criterion.
func (c *noImprovement) ShouldStop(bestCost int64) bool {
	if !c.seen || bestCost < c.best {
		c.best = bestCost
		c.seen = true
		c.count = 0

		return c.limit == 0
	}
	c.count++

	return c.count >= c.limit
}

// firstFeasible stops as soon as any feasible solution exists.
type firstFeasible struct{}

// FirstFeasible returns a criterion firing once best cost is finite.
func FirstFeasible() Criterion { return firstFeasible{} }

// ShouldStop implements Criterion.
func (firstFeasible) ShouldStop(bestCost int64) bool { return bestCost != segment.Unbounded }

// anyOf fires when any child fires.
type anyOf struct{ children []Criterion }

// Any composes criteria disjunctively; an empty list is rejected.
func Any(cs []Criterion) (Criterion, error) {
	if len(cs) == 0 {
		return nil, ErrEmptyCriteria
	}

	return &anyOf{children: append([]Criterion(nil), cs...)}, nil
}

// ShouldStop implements Criterion. Every child is consulted (stateful
// children keep counting even after another child fires).
func (c *anyOf) ShouldStop(bestCost int64) bool {
	fired := false
	for _, child := range c.children {
		if child.ShouldStop(bestCost) {
			fired = true
		}
	}

	return fired
}

// allOf fires when all children fire.
type allOf struct{ children []Criterion }

// All composes criteria conjunctively. An empty list is permitted and fires
// immediately, matching ∀ over ∅.
func All(cs []Criterion) Criterion {
	return &allOf{children: append([]Criterion(nil), cs...)}
}

// ShouldStop implements Criterion.
func (c *allOf) ShouldStop(bestCost int64) bool {
	all := true
	for _, child := range c.children {
		if !child.ShouldStop(bestCost) {
			all = false
		}
	}

	return all
}
