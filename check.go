package rstar

import "fmt"

// Check validates the structural invariants of the tree: bounding rectangles
// are tight, child counts stay within bounds, levels decrease by one per step
// and all records are at the same depth, parent links match, no record has an
// empty rectangle, and the key index matches the records in the tree.
//
// Check walks the whole tree and is meant to be used in tests.
func (t *RTree[K]) Check() error {
	if t.root == nilNode {
		return fmt.Errorf("%w: missing root", ErrInvariant)
	}
	root := &t.nodes[t.root]
	if root.parent != nilNode {
		return fmt.Errorf("%w: root has a parent", ErrInvariant)
	}
	if root.isRecord() {
		return fmt.Errorf("%w: root is a record", ErrInvariant)
	}
	if len(root.children) > t.maxChildren {
		return fmt.Errorf("%w: root has %d children, max is %d", ErrInvariant, len(root.children), t.maxChildren)
	}
	if root.level > 0 && len(root.children) < 2 {
		return fmt.Errorf("%w: level-%d root has %d children", ErrInvariant, root.level, len(root.children))
	}
	seen := make(map[K]int, len(t.records))
	if err := t.checkNode(t.root, seen); err != nil {
		return err
	}
	if len(seen) != len(t.records) {
		return fmt.Errorf("%w: %d records in tree, %d keys indexed", ErrInvariant, len(seen), len(t.records))
	}
	for key, n := range t.records {
		if m, ok := seen[key]; !ok || m != n {
			return fmt.Errorf("%w: key %v indexed to node %d, not found there", ErrInvariant, key, n)
		}
	}
	return nil
}

func (t *RTree[K]) checkNode(n int, seen map[K]int) error {
	nd := &t.nodes[n]
	if nd.isRecord() {
		if nd.rect.IsEmpty() {
			return fmt.Errorf("%w: record %v has an empty rect", ErrInvariant, nd.key)
		}
		if _, dup := seen[nd.key]; dup {
			return fmt.Errorf("%w: key %v stored twice", ErrInvariant, nd.key)
		}
		seen[nd.key] = n
		return nil
	}
	if n != t.root {
		if k := len(nd.children); k < t.minChildren || k > t.maxChildren {
			return fmt.Errorf("%w: level-%d node has %d children, want %d..%d",
				ErrInvariant, nd.level, k, t.minChildren, t.maxChildren)
		}
	}
	var bounds Rect
	for _, c := range nd.children {
		child := &t.nodes[c]
		if child.parent != n {
			return fmt.Errorf("%w: child %d of node %d has parent %d", ErrInvariant, c, n, child.parent)
		}
		if child.level != nd.level-1 {
			return fmt.Errorf("%w: level-%d child under level-%d node", ErrInvariant, child.level, nd.level)
		}
		bounds.Union(child.rect)
		if err := t.checkNode(c, seen); err != nil {
			return err
		}
	}
	if bounds != nd.rect {
		return fmt.Errorf("%w: level-%d node has rect %v, children cover %v", ErrInvariant, nd.level, nd.rect, bounds)
	}
	return nil
}
