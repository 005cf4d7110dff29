package rstar

import "slices"

const (
	// nilNode is the handle of no node (the parent of the root, or of a
	// detached node).
	nilNode = -1

	// recordLevel is the level of a record. Nodes holding records are at
	// level 0, and levels increase by one towards the root.
	recordLevel = -1
)

// node is a node of an RTree. Its level tells which of the two variants it
// is: a record (level -1) carries a key and has no children, an internal
// node (level >= 0) owns its children, which are all exactly one level
// below it.
type node[K comparable] struct {
	// rect is the record's rectangle, or the tightest bounding rectangle of
	// all children for internal nodes.
	rect   Rect
	parent int
	level  int

	key      K
	children []int
}

func (n *node[K]) isRecord() bool {
	return n.level == recordLevel
}

// alloc stores n in the arena, reusing a released slot if there is one, and
// returns its handle. Pointers into the arena are invalid after alloc.
func (t *RTree[K]) alloc(n node[K]) int {
	if k := len(t.free); k > 0 {
		idx := t.free[k-1]
		t.free = t.free[:k-1]
		t.nodes[idx] = n
		return idx
	}
	t.nodes = append(t.nodes, n)
	return len(t.nodes) - 1
}

// release destroys the node with handle idx and returns its slot to the
// arena. The node must already be detached from the tree.
func (t *RTree[K]) release(idx int) {
	t.nodes[idx] = node[K]{parent: nilNode, level: recordLevel}
	t.free = append(t.free, idx)
}

func (t *RTree[K]) newInternal(level int) int {
	return t.alloc(node[K]{parent: nilNode, level: level})
}

// addChild appends child c to node p and grows p's rectangle to cover it. It
// returns the new number of children of p.
func (t *RTree[K]) addChild(p, c int) int {
	parent, child := &t.nodes[p], &t.nodes[c]
	invariant(child.level == parent.level-1, "rstar: child must be exactly one level below its parent")
	parent.children = append(parent.children, c)
	child.parent = p
	parent.rect.Union(child.rect)
	return len(parent.children)
}

// takeChild detaches child c from node p, handing c back to the caller. If c
// is an internal node, its children are detached from c as well and appended
// to orphans. p's rectangle is left as is; callers recompute bounds once
// they know whether p survives.
func (t *RTree[K]) takeChild(p, c int, orphans []int) []int {
	parent := &t.nodes[p]
	i := slices.Index(parent.children, c)
	invariant(i >= 0, "rstar: node to take is not a child of the given parent")
	parent.children = slices.Delete(parent.children, i, i+1)
	child := &t.nodes[c]
	child.parent = nilNode
	if !child.isRecord() {
		for _, o := range child.children {
			t.nodes[o].parent = nilNode
		}
		orphans = append(orphans, child.children...)
		child.children = nil
	}
	return orphans
}

// takeLastChild detaches and returns the last child of p, or nilNode if p
// has no children.
func (t *RTree[K]) takeLastChild(p int) int {
	parent := &t.nodes[p]
	k := len(parent.children)
	if k == 0 {
		return nilNode
	}
	c := parent.children[k-1]
	parent.children = parent.children[:k-1]
	t.nodes[c].parent = nilNode
	return c
}

// recomputeLocalBounds sets the rectangle of internal node n to the union of
// its children's rectangles.
func (t *RTree[K]) recomputeLocalBounds(n int) {
	var r Rect
	for _, c := range t.nodes[n].children {
		r.Union(t.nodes[c].rect)
	}
	t.nodes[n].rect = r
}

// recomputeBoundsUpToRoot recomputes the rectangles of n and all of its
// ancestors.
func (t *RTree[K]) recomputeBoundsUpToRoot(n int) {
	for ; n != nilNode; n = t.nodes[n].parent {
		t.recomputeLocalBounds(n)
	}
}

// eachRecord calls fn for every record in the subtree rooted at n, stopping
// at the first error.
func (t *RTree[K]) eachRecord(n int, fn func(key K) error) error {
	nd := &t.nodes[n]
	if nd.isRecord() {
		return fn(nd.key)
	}
	for _, c := range nd.children {
		if err := t.eachRecord(c, fn); err != nil {
			return err
		}
	}
	return nil
}
