package rstar

import (
	"cmp"
	"slices"
)

// split splits the overflowing node n, which holds exactly maxChildren+1
// children, into two nodes. n keeps the first group of children, and a new
// sibling at the same level receives the rest. The return value is the
// handle of the new sibling, which the caller has to add to n's parent.
//
// The split axis is the one with the least margin sum over all valid
// distributions; along that axis the distribution with the least overlap
// (then least total area) is chosen.
func (t *RTree[K]) split(n int) int {
	count := len(t.nodes[n].children)
	invariant(count == t.maxChildren+1, "rstar: only overflowing nodes can be split")

	byX := slices.Clone(t.nodes[n].children)
	slices.SortStableFunc(byX, func(a, b int) int {
		ra, rb := t.nodes[a].rect, t.nodes[b].rect
		return cmp.Or(cmp.Compare(ra.X, rb.X), cmp.Compare(ra.Width, rb.Width))
	})
	byY := slices.Clone(t.nodes[n].children)
	slices.SortStableFunc(byY, func(a, b int) int {
		ra, rb := t.nodes[a].rect, t.nodes[b].rect
		return cmp.Or(cmp.Compare(ra.Y, rb.Y), cmp.Compare(ra.Height, rb.Height))
	})

	xLow, xHigh := t.cumulativeBounds(byX)
	yLow, yHigh := t.cumulativeBounds(byY)

	sorted, low, high := byX, xLow, xHigh
	if t.marginSum(yLow, yHigh) < t.marginSum(xLow, xHigh) {
		sorted, low, high = byY, yLow, yHigh
	}
	p := t.chooseSplitIndex(low, high)

	level, parent := t.nodes[n].level, t.nodes[n].parent
	sibling := t.alloc(node[K]{
		rect:     high[p],
		parent:   parent,
		level:    level,
		children: slices.Clone(sorted[p:]),
	})
	for _, c := range sorted[p:] {
		t.nodes[c].parent = sibling
	}
	t.nodes[n].children = sorted[:p:p]
	t.nodes[n].rect = low[p-1]
	tracer().Debugf("rstar: split level-%d node into %d + %d children", level, p, count-p)
	return sibling
}

// cumulativeBounds returns for the ordered children the bounds of every
// prefix and every suffix: low[i] covers sorted[:i+1], high[i] covers
// sorted[i:].
func (t *RTree[K]) cumulativeBounds(sorted []int) (low, high []Rect) {
	k := len(sorted)
	low, high = make([]Rect, k), make([]Rect, k)
	low[0] = t.nodes[sorted[0]].rect
	for i := 1; i < k; i++ {
		low[i] = union(low[i-1], t.nodes[sorted[i]].rect)
	}
	high[k-1] = t.nodes[sorted[k-1]].rect
	for i := k - 2; i >= 0; i-- {
		high[i] = union(high[i+1], t.nodes[sorted[i]].rect)
	}
	return low, high
}

// splitRange returns the first and last valid split index for k children:
// both groups must hold at least minChildren.
func (t *RTree[K]) splitRange(k int) (first, last int) {
	return t.minChildren, k - t.minChildren
}

// marginSum sums up the margins of both groups over all valid split indices.
func (t *RTree[K]) marginSum(low, high []Rect) int64 {
	var sum int64
	first, last := t.splitRange(len(low))
	for p := first; p <= last; p++ {
		sum += low[p-1].Margin() + high[p].Margin()
	}
	return sum
}

// chooseSplitIndex returns the valid split index with the least overlap
// between both groups, breaking ties by the least combined area.
func (t *RTree[K]) chooseSplitIndex(low, high []Rect) int {
	first, last := t.splitRange(len(low))
	best := first
	bestOverlap := overlapArea(low[first-1], high[first])
	bestArea := low[first-1].Area() + high[first].Area()
	for p := first + 1; p <= last; p++ {
		overlap := overlapArea(low[p-1], high[p])
		area := low[p-1].Area() + high[p].Area()
		if overlap < bestOverlap || (overlap == bestOverlap && area < bestArea) {
			best, bestOverlap, bestArea = p, overlap, area
		}
	}
	return best
}
