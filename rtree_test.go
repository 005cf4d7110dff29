package rstar

import (
	"bytes"
	"errors"
	"fmt"
	"math/rand"
	"sort"
	"strings"
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func square(i int) Rect {
	return Rect{X: 0, Y: 0, Width: i, Height: i}
}

func keySet(keys ...int) map[int]struct{} {
	set := make(map[int]struct{}, len(keys))
	for _, k := range keys {
		set[k] = struct{}{}
	}
	return set
}

func keyRange(from, to int) map[int]struct{} {
	set := make(map[int]struct{})
	for k := from; k <= to; k++ {
		set[k] = struct{}{}
	}
	return set
}

func query(rt *RTree[int], q Rect) map[int]struct{} {
	got := make(map[int]struct{})
	rt.AppendIntersectingRecords(q, got)
	return got
}

func TestNewPanicsOnInvalidShape(t *testing.T) {
	assert.Panics(t, func() { New[int](1, 4) })
	assert.Panics(t, func() { New[int](3, 5) })
	assert.NotPanics(t, func() { New[int](2, 4) })
	assert.NotPanics(t, func() { New[int](DefaultMinChildren, DefaultMaxChildren) })
}

func TestEmptyTree(t *testing.T) {
	rt := New[int](2, 4)
	require.NoError(t, rt.Check())
	assert.Equal(t, 0, rt.Len())
	assert.Equal(t, 1, rt.Height())
	assert.Empty(t, query(rt, Rect{X: -100, Y: -100, Width: 1000, Height: 1000}))
	_, ok := rt.Bounds()
	assert.False(t, ok)
}

func TestStackedSquaresShareCorner(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "rstar")
	defer teardown()

	rt := New[int](2, 5)
	for i := 1; i <= 100; i++ {
		rt.Insert(square(i), i)
	}
	require.NoError(t, rt.Check())
	assert.Equal(t, 100, rt.Len())
	assert.Equal(t, keyRange(1, 100), query(rt, Rect{X: 1, Y: 1, Width: 1, Height: 1}))
	assert.Empty(t, query(rt, Rect{X: 150, Y: 150, Width: 100, Height: 100}))

	bounds, ok := rt.Bounds()
	require.True(t, ok)
	assert.Equal(t, square(100), bounds)
}

func TestInsertIdenticalRectTwice(t *testing.T) {
	rt := New[int](2, 4)
	rt.Insert(Rect{X: 0, Y: 0, Width: 5, Height: 5}, 1)
	rt.Insert(Rect{X: 0, Y: 0, Width: 5, Height: 5}, 1)
	require.NoError(t, rt.Check())
	assert.Equal(t, 1, rt.Len())
	assert.Len(t, rt.nodes[rt.root].children, 1)
	assert.Equal(t, []int{1}, rt.Intersecting(Rect{X: 1, Y: 1, Width: 1, Height: 1}))
}

func TestRemoveAndReinsertHalf(t *testing.T) {
	rt := New[int](2, 5)
	for i := 1; i <= 200; i++ {
		rt.Insert(square(i), i)
	}
	for i := 101; i <= 200; i++ {
		rt.Remove(i)
		require.NoError(t, rt.Check())
	}
	point := Rect{X: 1, Y: 1, Width: 1, Height: 1}
	assert.Equal(t, keyRange(1, 100), query(rt, point))

	for i := 101; i <= 200; i++ {
		rt.Insert(square(i), i)
	}
	require.NoError(t, rt.Check())
	assert.Equal(t, keyRange(1, 200), query(rt, point))
}

func TestInvariantsAfterEveryInsert(t *testing.T) {
	rt := New[int](2, 5)
	for i := 1; i <= 100; i++ {
		rt.Insert(square(i), i)
		require.NoError(t, rt.Check(), "after inserting %d", i)
	}
	assert.Greater(t, rt.Height(), 1)
}

func TestOverwriteMovesKey(t *testing.T) {
	rt := New[int](2, 4)
	for i := 0; i < 20; i++ {
		rt.Insert(Rect{X: i * 10, Y: 0, Width: 5, Height: 5}, i)
	}
	rt.Insert(Rect{X: 1000, Y: 1000, Width: 5, Height: 5}, 3)
	require.NoError(t, rt.Check())
	assert.Equal(t, 20, rt.Len())
	assert.NotContains(t, query(rt, Rect{X: 30, Y: 0, Width: 1, Height: 1}), 3)
	assert.Equal(t, keySet(3), query(rt, Rect{X: 1001, Y: 1001, Width: 1, Height: 1}))

	r, ok := rt.Lookup(3)
	require.True(t, ok)
	assert.Equal(t, Rect{X: 1000, Y: 1000, Width: 5, Height: 5}, r)
}

func TestInsertEmptyRectRemoves(t *testing.T) {
	viaInsert, viaRemove := New[int](2, 4), New[int](2, 4)
	for i := 1; i <= 30; i++ {
		viaInsert.Insert(square(i), i)
		viaRemove.Insert(square(i), i)
	}
	viaInsert.Insert(Rect{}, 7)
	viaRemove.Remove(7)
	require.NoError(t, viaInsert.Check())
	require.NoError(t, viaRemove.Check())

	everything := Rect{X: -10, Y: -10, Width: 100, Height: 100}
	assert.NotContains(t, query(viaInsert, everything), 7)
	assert.Equal(t, query(viaRemove, everything), query(viaInsert, everything))
	assert.Equal(t, viaRemove.Len(), viaInsert.Len())
	_, ok := viaInsert.Lookup(7)
	assert.False(t, ok)
}

func TestEmptyRectForUnknownKeyIsNoop(t *testing.T) {
	rt := New[int](2, 4)
	rt.Insert(Rect{X: 3, Y: 3, Width: 0, Height: 10}, 1)
	rt.Insert(Rect{X: 3, Y: 3, Width: 10, Height: -1}, 2)
	require.NoError(t, rt.Check())
	assert.Equal(t, 0, rt.Len())
	rt.Remove(42)
	require.NoError(t, rt.Check())
}

func TestDrainInRandomOrder(t *testing.T) {
	rnd := rand.New(rand.NewSource(7))
	rt := New[int](2, 6)
	const n = 300
	for i := 1; i <= n; i++ {
		rt.Insert(randomRect(rnd, 1000, 50), i)
	}
	for _, k := range rnd.Perm(n) {
		rt.Remove(k + 1)
		require.NoError(t, rt.Check())
	}
	assert.Equal(t, 0, rt.Len())
	assert.Empty(t, query(rt, Rect{X: -1e6, Y: -1e6, Width: 2e6, Height: 2e6}))
	root := rt.nodes[rt.root]
	assert.Equal(t, 0, root.level)
	assert.Empty(t, root.children)
	assert.Equal(t, Rect{}, root.rect)
}

func TestClear(t *testing.T) {
	rt := New[int](2, 4)
	for i := 1; i <= 50; i++ {
		rt.Insert(square(i), i)
	}
	rt.Clear()
	require.NoError(t, rt.Check())
	assert.Equal(t, 0, rt.Len())
	assert.Equal(t, 1, rt.Height())
	assert.Empty(t, query(rt, square(100)))

	rt.Insert(square(3), 3)
	assert.Equal(t, keySet(3), query(rt, square(1)))
}

func TestAppendAccumulates(t *testing.T) {
	rt := New[int](2, 4)
	rt.Insert(Rect{X: 0, Y: 0, Width: 5, Height: 5}, 1)
	rt.Insert(Rect{X: 100, Y: 100, Width: 5, Height: 5}, 2)
	out := keySet(99)
	rt.AppendIntersectingRecords(Rect{X: 1, Y: 1, Width: 1, Height: 1}, out)
	rt.AppendIntersectingRecords(Rect{X: 101, Y: 101, Width: 1, Height: 1}, out)
	assert.Equal(t, keySet(1, 2, 99), out)
}

func TestSearchStopsEarly(t *testing.T) {
	rt := New[int](2, 4)
	for i := 1; i <= 40; i++ {
		rt.Insert(square(i), i)
	}
	var calls int
	err := rt.Search(square(1), func(int) error {
		calls++
		if calls == 3 {
			return Stop
		}
		return nil
	})
	assert.NoError(t, err)
	assert.Equal(t, 3, calls)

	boom := errors.New("boom")
	err = rt.Search(square(1), func(int) error { return boom })
	assert.ErrorIs(t, err, boom)
}

func TestWriteDot(t *testing.T) {
	rt := New[string](2, 4)
	for i := 1; i <= 10; i++ {
		rt.Insert(square(i), fmt.Sprintf("k%d", i))
	}
	var buf bytes.Buffer
	require.NoError(t, rt.WriteDot(&buf))
	out := buf.String()
	assert.True(t, strings.HasPrefix(out, "strict digraph {"))
	assert.Contains(t, out, `"k7\n(0,0 7x7)"`)
	assert.Equal(t, rt.Len()+countInternal(rt)-1, strings.Count(out, "->"))
}

func countInternal[K comparable](rt *RTree[K]) int {
	var count int
	var recurse func(int)
	recurse = func(n int) {
		if rt.nodes[n].isRecord() {
			return
		}
		count++
		for _, c := range rt.nodes[n].children {
			recurse(c)
		}
	}
	recurse(rt.root)
	return count
}

func TestRandom(t *testing.T) {
	for maxCapacity := 4; maxCapacity <= 10; maxCapacity++ {
		for minCapacity := 2; minCapacity <= maxCapacity/2; minCapacity++ {
			for _, population := range []int{0, 1, 5, 20, 75} {
				name := fmt.Sprintf("min_%d_max_%d_pop_%d", minCapacity, maxCapacity, population)
				t.Run(name, func(t *testing.T) {
					rnd := rand.New(rand.NewSource(0))
					rt := New[int](minCapacity, maxCapacity)
					live := make(map[int]Rect)

					for i := 0; i < population; i++ {
						r := randomRect(rnd, 100, 20)
						rt.Insert(r, i)
						if !r.IsEmpty() {
							live[i] = r
						}
						checkAgainst(t, rnd, rt, live)
					}
					// mix of overwrites, removals and empty-rect removals
					for i := 0; i < population; i++ {
						k := rnd.Intn(population)
						switch rnd.Intn(3) {
						case 0:
							rt.Remove(k)
							delete(live, k)
						case 1:
							rt.Insert(Rect{}, k)
							delete(live, k)
						default:
							r := randomRect(rnd, 100, 20)
							rt.Insert(r, k)
							if r.IsEmpty() {
								delete(live, k)
							} else {
								live[k] = r
							}
						}
						checkAgainst(t, rnd, rt, live)
					}
				})
			}
		}
	}
}

func randomRect(rnd *rand.Rand, maxStart, maxSize int) Rect {
	return Rect{
		X:      rnd.Intn(maxStart),
		Y:      rnd.Intn(maxStart),
		Width:  rnd.Intn(maxSize + 1),
		Height: rnd.Intn(maxSize + 1),
	}
}

// checkAgainst validates the tree invariants and compares a few random
// searches with a brute force scan over the live keys.
func checkAgainst(t *testing.T, rnd *rand.Rand, rt *RTree[int], live map[int]Rect) {
	t.Helper()
	require.NoError(t, rt.Check())
	require.Equal(t, len(live), rt.Len())
	for i := 0; i < 5; i++ {
		q := randomRect(rnd, 100, 50)
		got := rt.Intersecting(q)
		var want []int
		for k, r := range live {
			if r.Intersects(q) {
				want = append(want, k)
			}
		}
		sort.Ints(want)
		sort.Ints(got)
		if len(want) == 0 && len(got) == 0 {
			continue
		}
		if !assert.Equal(t, want, got, "search rect: %v", q) {
			t.FailNow()
		}
	}
}
