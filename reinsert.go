package rstar

import (
	"cmp"
	"slices"
)

// takeFarthestChildren detaches the k children of n whose centres lie
// farthest from the centre of n and appends them to out. The remaining
// children stay in place. n's rectangle is not recomputed.
func (t *RTree[K]) takeFarthestChildren(n, k int, out []int) []int {
	center := t.nodes[n].rect
	children := t.nodes[n].children
	slices.SortStableFunc(children, func(a, b int) int {
		// descending by distance
		return cmp.Compare(distance2(t.nodes[b].rect, center), distance2(t.nodes[a].rect, center))
	})
	for _, c := range children[:k] {
		t.nodes[c].parent = nilNode
	}
	out = append(out, children[:k]...)
	t.nodes[n].children = slices.Clone(children[k:])
	return out
}
