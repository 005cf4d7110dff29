package rstar

// chooseSubtree descends from node n to the node under which a node with the
// given rectangle and level should be inserted, i.e. the best node at
// level+1.
func (t *RTree[K]) chooseSubtree(n int, rect Rect, level int) int {
	for {
		nd := &t.nodes[n]
		if nd.level == level+1 {
			return n
		}
		invariant(nd.level > level+1, "rstar: no subtree at the requested level")
		best := nilNode
		if nd.level == 1 {
			best = t.leastOverlapIncrease(nd.children, rect)
		}
		if best == nilNode {
			best = t.leastEnlargement(nd.children, rect)
		}
		n = best
	}
}

// leastOverlapIncrease returns the child whose overlap with its siblings
// grows the least when expanded to include rect. If several children share
// the least increase, the choice is ambiguous and nilNode is returned.
func (t *RTree[K]) leastOverlapIncrease(children []int, rect Rect) int {
	best := nilNode
	var bestIncrease int64
	ambiguous := false
	for i, c := range children {
		current := t.nodes[c].rect
		expanded := union(current, rect)
		var increase int64
		for j, s := range children {
			if i == j {
				continue
			}
			sibling := t.nodes[s].rect
			increase += overlapArea(sibling, expanded) - overlapArea(sibling, current)
		}
		switch {
		case best == nilNode || increase < bestIncrease:
			best, bestIncrease, ambiguous = c, increase, false
		case increase == bestIncrease:
			ambiguous = true
		}
	}
	if ambiguous {
		return nilNode
	}
	return best
}

// leastEnlargement returns the child whose area grows the least when expanded
// to include rect. Ties go to the child with the smaller area.
func (t *RTree[K]) leastEnlargement(children []int, rect Rect) int {
	best := children[0]
	bestDelta := enlargement(t.nodes[best].rect, rect)
	for _, c := range children[1:] {
		current := t.nodes[c].rect
		delta := enlargement(current, rect)
		if delta < bestDelta {
			best, bestDelta = c, delta
		} else if delta == bestDelta && current.Area() < t.nodes[best].rect.Area() {
			// Area is used as a tie breaker if the enlargements are the same.
			best = c
		}
	}
	return best
}
