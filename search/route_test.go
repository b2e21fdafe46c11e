// Package search - mutable-route tests: cache invariants, queries,
// mutation bookkeeping, centroids and overlap.
package search

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/vroute/segment"
)

func TestRoute_DistanceEqualsArcSum(t *testing.T) {
	data := sixClientData(t)
	r, _ := mkRoute(data, 0, 0, 1, 2, 3)

	var want int64
	for i := 0; i+1 < r.Size(); i++ {
		want += data.Dist(0, r.GetNode(i).Loc(), r.GetNode(i+1).Loc())
	}
	require.Equal(t, want, r.Distance())
	require.Equal(t, want, r.DistBefore(r.Size()-1))
	require.Equal(t, int64(0), r.DistAfter(r.Size()-1))
	require.Equal(t, want, r.DistBetween(0, r.Size()-1))
	require.Equal(t, want, r.DistBetweenProfile(0, 0, r.Size()-1))
}

func TestRoute_MutationBookkeeping(t *testing.T) {
	data := sixClientData(t)
	r, nodes := mkRoute(data, 0, 0, 1, 2, 3)

	require.Equal(t, 5, r.Size())
	require.Equal(t, 3, r.NumClients())
	require.Equal(t, 2, r.NumDepots())
	require.Equal(t, 1, r.NumTrips())

	for i, c := range []int{1, 2, 3} {
		require.Same(t, r, nodes[c].Route())
		require.Equal(t, i+1, nodes[c].Idx())
		require.Equal(t, 0, nodes[c].Trip())
	}

	// A reload sentinel splits trips and renumbers the tail.
	r.Insert(3, NewNode(0, true))
	r.Update()
	require.Equal(t, 2, r.NumTrips())
	require.Equal(t, 1, nodes[3].Trip())

	removed := r.Remove(nodes[2].Idx())
	require.False(t, removed.HasRoute())
	require.Equal(t, 2, r.NumClients())

	r.Clear()
	require.True(t, r.Empty())
	require.Equal(t, 2, r.Size())
	require.False(t, nodes[1].HasRoute())
}

func TestSwapNodes_AcrossRoutes(t *testing.T) {
	data := sixClientData(t)
	rA, rB, nodes := twoRoutes(t, data)

	SwapNodes(nodes[1], nodes[5])
	rA.Update()
	rB.Update()

	require.Same(t, rB, nodes[1].Route())
	require.Same(t, rA, nodes[5].Route())
	require.Equal(t, 3, rA.NumClients())
	require.Equal(t, 3, rB.NumClients())
	require.Equal(t, 5, rA.GetNode(1).Loc())
}

func TestRoute_LazyUpdateOnQuery(t *testing.T) {
	data := sixClientData(t)
	r, _ := mkRoute(data, 0, 0, 1, 2)

	before := r.Distance()
	r.Append(NewNode(3, false)) // dirties the caches
	require.NotEqual(t, before, r.Distance())
}

func TestRoute_CentroidAndOverlap(t *testing.T) {
	data := sixClientData(t)
	rA, _ := mkRoute(data, 0, 0, 1, 2)
	rB, _ := mkRoute(data, 1, 0, 1, 2)
	rFar, _ := mkRoute(data, 2, 0, 6)

	x, y := rA.Centroid()
	require.InDelta(t, 15.0, x, 1e-9)
	require.InDelta(t, 0.0, y, 1e-9)

	// Identical routes overlap at every tolerance, zero included.
	require.True(t, rA.OverlapsWith(rB, 0))
	require.True(t, rA.OverlapsWith(rA, 0))

	// A distant singleton (radius 0) cannot reach rA's circle.
	require.False(t, rA.OverlapsWith(rFar, 1))
}

func TestRoute_LoadCachesFinaliseAtReload(t *testing.T) {
	data := sixClientData(t) // capacity 12, deliveries 5

	// [1 2 | reload | 3]: both trips fit; one trip of three would not.
	r, _ := mkRoute(data, 0, 0, 1, 2)
	r.Insert(3, NewNode(0, true))
	r.Append(NewNode(3, false))
	r.Update()

	require.Equal(t, 2, r.NumTrips())
	require.Equal(t, []int64{0}, r.ExcessLoad())
	require.True(t, r.LoadBefore(0, r.Size()-1).Excess == 0)

	single, _ := mkRoute(data, 1, 0, 1, 2, 3)
	require.Equal(t, []int64{3}, single.ExcessLoad()) // 15 against 12
}

func TestRoute_DurationCachesAgreeWithEval(t *testing.T) {
	data := sixClientData(t)
	r, _ := mkRoute(data, 0, 0, 3, 5, 1)

	full := r.DurBefore(r.Size() - 1)
	require.Equal(t, r.Duration(), full.Duration)

	// Prefix∘suffix at any split reproduces the full summary.
	for split := 0; split+1 < r.Size(); split++ {
		arc := data.Dur(0, r.GetNode(split).Loc(), r.GetNode(split+1).Loc())
		merged := r.DurBefore(split).Merge(arc, r.DurAfter(split+1))
		require.Equal(t, full, merged, "split at %d", split)
	}
}

func TestRoute_UnboundedCapsNeverViolate(t *testing.T) {
	data := sixClientData(t)
	r, _ := mkRoute(data, 0, 0, 1, 2)

	require.Equal(t, int64(0), r.ExcessDistance())
	require.Equal(t, int64(0), r.TimeWarp())
	require.Equal(t, segment.Unbounded, segment.SatAdd(segment.Unbounded, r.Distance()))
}
