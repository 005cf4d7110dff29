package rstar

// Insert adds key with the given rectangle to the tree.
//
// If key is already present, its rectangle is replaced; inserting an empty
// rectangle for a present key removes it. Inserting an empty rectangle for an
// unknown key does nothing.
func (t *RTree[K]) Insert(rect Rect, key K) {
	if n, ok := t.records[key]; ok {
		if t.nodes[n].rect == rect {
			return
		}
		t.removeNode(n)
		t.pruneRoot()
		if rect.IsEmpty() {
			delete(t.records, key)
			t.release(n)
			return
		}
		t.nodes[n].rect = rect
		t.insertNode(n, newReinsertState())
		return
	}
	if rect.IsEmpty() {
		return
	}
	n := t.alloc(node[K]{rect: rect, parent: nilNode, level: recordLevel, key: key})
	t.records[key] = n
	t.insertNode(n, newReinsertState())
}

// reinsertState tracks the highest level at which children have been
// force-reinserted during one insertion. Forced reinsertion is only done at
// levels above it.
type reinsertState struct {
	highest int
}

func newReinsertState() *reinsertState {
	return &reinsertState{highest: recordLevel}
}

// insertNode inserts the detached node n at its level. Children removed for
// forced reinsertion are reinserted afterwards, most recently removed first,
// sharing the reinsertion state of this insertion.
func (t *RTree[K]) insertNode(n int, state *reinsertState) {
	pending := []int{n}
	for len(pending) > 0 {
		next := pending[len(pending)-1]
		pending = t.insertOne(next, state, pending[:len(pending)-1])
	}
}

// insertOne places n under the best node one level above it and resolves
// overflow, either by forced reinsertion or by splitting up the tree. Nodes
// removed for reinsertion are appended to pending.
func (t *RTree[K]) insertOne(n int, state *reinsertState, pending []int) []int {
	parent := t.chooseSubtree(t.root, t.nodes[n].rect, t.nodes[n].level)
	recompute := t.nodes[parent].parent
	for parent != nilNode {
		if t.addChild(parent, n) <= t.maxChildren {
			n = nilNode
			break
		}
		if level := t.nodes[parent].level; parent != t.root && level > state.highest {
			k := t.maxChildren / 3
			tracer().Debugf("rstar: reinserting %d children of level-%d node", k, level)
			pending = t.takeFarthestChildren(parent, k, pending)
			state.highest = level
			recompute = parent
			n = nilNode
			break
		}
		n = t.split(parent)
		parent = t.nodes[parent].parent
		recompute = parent
	}
	if n != nilNode {
		t.growRoot(n)
	}
	if recompute != nilNode {
		t.recomputeBoundsUpToRoot(recompute)
	}
	return pending
}

// growRoot makes a new root one level above the current one, holding the old
// root and its new sibling.
func (t *RTree[K]) growRoot(sibling int) {
	old := t.root
	root := t.newInternal(t.nodes[old].level + 1)
	t.addChild(root, old)
	t.addChild(root, sibling)
	t.root = root
	tracer().Debugf("rstar: tree grew to height %d", t.Height())
}
