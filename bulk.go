package rstar

import "sort"

// Item is a key and its rectangle, as used for bulk loading.
type Item[K comparable] struct {
	Rect Rect
	Key  K
}

// BulkLoad bulk loads multiple items into a new tree. The bulk load
// operation is optimised for creating trees with minimal node overlap. This
// allows for fast searching.
//
// Items with empty rectangles are skipped. If a key occurs more than once,
// its last rectangle wins.
func BulkLoad[K comparable](minChildren, maxChildren int, items []Item[K]) *RTree[K] {
	t := New[K](minChildren, maxChildren)
	var level []int
	for _, item := range items {
		if n, ok := t.records[item.Key]; ok {
			t.nodes[n].rect = item.Rect
			continue
		}
		if item.Rect.IsEmpty() {
			continue
		}
		n := t.alloc(node[K]{rect: item.Rect, parent: nilNode, level: recordLevel, key: item.Key})
		t.records[item.Key] = n
		level = append(level, n)
	}
	// a later empty rect for a key removes it again
	kept := level[:0]
	for _, n := range level {
		if t.nodes[n].rect.IsEmpty() {
			delete(t.records, t.nodes[n].key)
			t.release(n)
			continue
		}
		kept = append(kept, n)
	}
	level = kept

	for len(level) > t.maxChildren {
		t.bisectOrder(level)
		level = t.pack(level, t.nodes[level[0]].level+1)
	}
	if len(level) == 0 {
		return t
	}
	t.release(t.root)
	t.root = t.newInternal(t.nodes[level[0]].level + 1)
	for _, n := range level {
		t.addChild(t.root, n)
	}
	tracer().Debugf("rstar: bulk loaded %d keys, height %d", t.Len(), t.Height())
	return t
}

// pack distributes the ordered nodes over as few new nodes at the given
// level as possible, with group sizes differing by at most one.
func (t *RTree[K]) pack(nodes []int, level int) []int {
	groups := (len(nodes) + t.maxChildren - 1) / t.maxChildren
	parents := make([]int, 0, groups)
	start := 0
	for g := 0; g < groups; g++ {
		end := start + (len(nodes)-start)/(groups-g)
		p := t.newInternal(level)
		for _, n := range nodes[start:end] {
			t.addChild(p, n)
		}
		parents = append(parents, p)
		start = end
	}
	return parents
}

// bisectOrder orders nodes so that spatially close nodes are close in the
// slice: the nodes are sorted along the longer axis of their common bounds,
// and both halves are ordered recursively.
func (t *RTree[K]) bisectOrder(nodes []int) {
	if len(nodes) <= 2 {
		return
	}
	var bounds Rect
	for _, n := range nodes {
		bounds.Union(t.nodes[n].rect)
	}

	var sortBy func(i, j int) bool
	if bounds.Width > bounds.Height {
		sortBy = func(i, j int) bool {
			bi, bj := t.nodes[nodes[i]].rect, t.nodes[nodes[j]].rect
			return 2*bi.X+bi.Width < 2*bj.X+bj.Width
		}
	} else {
		sortBy = func(i, j int) bool {
			bi, bj := t.nodes[nodes[i]].rect, t.nodes[nodes[j]].rect
			return 2*bi.Y+bi.Height < 2*bj.Y+bj.Height
		}
	}
	sort.SliceStable(nodes, sortBy)

	split := len(nodes) / 2
	t.bisectOrder(nodes[:split])
	t.bisectOrder(nodes[split:])
}
