package rstar

import "errors"

const (
	// DefaultMinChildren is a reasonable lower occupancy bound for nodes.
	DefaultMinChildren = 4
	// DefaultMaxChildren is a reasonable fanout for nodes.
	DefaultMaxChildren = 10
)

// RTree is an in-memory R*-tree holding keys and their rectangles. The
// records themselves aren't stored in the tree; the user is responsible for
// storing their own records, keyed by K.
//
// An RTree is not safe for concurrent use.
type RTree[K comparable] struct {
	nodes []node[K]
	free  []int
	root  int

	minChildren int
	maxChildren int

	// records maps every key in the tree to its record node.
	records map[K]int
}

// New creates an empty tree whose non-root nodes hold between minChildren and
// maxChildren children. minChildren must be at least 2 and at most half of
// maxChildren.
func New[K comparable](minChildren, maxChildren int) *RTree[K] {
	invariant(minChildren >= 2, "rstar: min children must be at least 2")
	invariant(minChildren <= maxChildren/2, "rstar: min children must be less than or equal to half of the max children")
	t := &RTree[K]{
		minChildren: minChildren,
		maxChildren: maxChildren,
		records:     make(map[K]int),
	}
	t.resetRoot()
	return t
}

// Len returns the number of keys in the tree.
func (t *RTree[K]) Len() int {
	return len(t.records)
}

// Height returns the number of internal levels of the tree. An empty tree has
// height 1.
func (t *RTree[K]) Height() int {
	return t.nodes[t.root].level + 1
}

// Lookup returns the rectangle stored for key.
func (t *RTree[K]) Lookup(key K) (Rect, bool) {
	n, ok := t.records[key]
	if !ok {
		return Rect{}, false
	}
	return t.nodes[n].rect, true
}

// Bounds gives the rectangle that most closely bounds all keys of the tree.
// If the tree is empty, then false is returned.
func (t *RTree[K]) Bounds() (Rect, bool) {
	if len(t.records) == 0 {
		return Rect{}, false
	}
	return t.nodes[t.root].rect, true
}

// Clear removes all keys from the tree.
func (t *RTree[K]) Clear() {
	t.resetRoot()
	clear(t.records)
}

// AppendIntersectingRecords adds every key whose rectangle intersects query
// to out. out is not cleared first.
func (t *RTree[K]) AppendIntersectingRecords(query Rect, out map[K]struct{}) {
	_ = t.Search(query, func(key K) error {
		out[key] = struct{}{}
		return nil
	})
}

// Intersecting returns the keys whose rectangles intersect query, in no
// particular order.
func (t *RTree[K]) Intersecting(query Rect) []K {
	var keys []K
	_ = t.Search(query, func(key K) error {
		keys = append(keys, key)
		return nil
	})
	return keys
}

// Search looks for any keys in the tree whose rectangles intersect query.
// The callback is called with each key found. If an error is returned from
// the callback then the search is terminated early. Any error returned from
// the callback is returned by Search, except for the case where the special
// Stop sentinel error is returned (in which case nil will be returned from
// Search).
func (t *RTree[K]) Search(query Rect, fn func(key K) error) error {
	if err := t.search(t.root, query, fn); err != nil && !errors.Is(err, Stop) {
		return err
	}
	return nil
}

func (t *RTree[K]) search(n int, query Rect, fn func(key K) error) error {
	nd := &t.nodes[n]
	if !nd.rect.Intersects(query) {
		return nil
	}
	if nd.isRecord() {
		return fn(nd.key)
	}
	if query.Contains(nd.rect) {
		return t.eachRecord(n, fn)
	}
	for _, c := range nd.children {
		if err := t.search(c, query, fn); err != nil {
			return err
		}
	}
	return nil
}
