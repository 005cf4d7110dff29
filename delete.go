package rstar

// Remove removes key from the tree. Removing an unknown key does nothing.
func (t *RTree[K]) Remove(key K) {
	n, ok := t.records[key]
	if !ok {
		return
	}
	delete(t.records, key)
	t.removeNode(n)
	t.pruneRoot()
	t.release(n)
}

// removeNode detaches record n from the tree. Ancestors left with fewer than
// minChildren children are dissolved, and everything they held is reinserted
// at its own level. n itself is handed back to the caller.
func (t *RTree[K]) removeNode(n int) {
	parent := t.nodes[n].parent
	orphans := t.takeChild(parent, n, nil)
	for parent != t.root && len(t.nodes[parent].children) < t.minChildren {
		grandparent := t.nodes[parent].parent
		orphans = t.takeChild(grandparent, parent, orphans)
		t.release(parent)
		parent = grandparent
	}
	t.recomputeBoundsUpToRoot(parent)
	// last orphan first; every orphan may reinsert at every level again
	for i := len(orphans) - 1; i >= 0; i-- {
		t.insertNode(orphans[i], newReinsertState())
	}
}

// pruneRoot shortens the tree by one level if the root is left with a single
// internal child.
func (t *RTree[K]) pruneRoot() {
	root := &t.nodes[t.root]
	if root.level == 0 || len(root.children) != 1 {
		return
	}
	child := t.takeLastChild(t.root)
	t.release(t.root)
	t.root = child
	tracer().Debugf("rstar: tree shrank to height %d", t.Height())
}

// resetRoot discards the whole tree and starts over with an empty root.
func (t *RTree[K]) resetRoot() {
	t.nodes = t.nodes[:0]
	t.free = t.free[:0]
	t.root = t.newInternal(0)
}
