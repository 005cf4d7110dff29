package rstar

import "sync"

// SyncRTree guards an RTree with a reader/writer lock. Queries may run
// concurrently with each other; mutations are exclusive.
type SyncRTree[K comparable] struct {
	mu   sync.RWMutex
	tree *RTree[K]
}

// NewSync creates an empty SyncRTree, see New.
func NewSync[K comparable](minChildren, maxChildren int) *SyncRTree[K] {
	return &SyncRTree[K]{tree: New[K](minChildren, maxChildren)}
}

// Synchronized wraps tree, which must not be used directly afterwards.
func Synchronized[K comparable](tree *RTree[K]) *SyncRTree[K] {
	return &SyncRTree[K]{tree: tree}
}

// Insert is RTree.Insert under the write lock.
func (s *SyncRTree[K]) Insert(rect Rect, key K) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tree.Insert(rect, key)
}

// Remove is RTree.Remove under the write lock.
func (s *SyncRTree[K]) Remove(key K) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tree.Remove(key)
}

// Clear is RTree.Clear under the write lock.
func (s *SyncRTree[K]) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tree.Clear()
}

// AppendIntersectingRecords is RTree.AppendIntersectingRecords under the
// read lock. Concurrent callers must not share out.
func (s *SyncRTree[K]) AppendIntersectingRecords(query Rect, out map[K]struct{}) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	s.tree.AppendIntersectingRecords(query, out)
}

// Intersecting is RTree.Intersecting under the read lock.
func (s *SyncRTree[K]) Intersecting(query Rect) []K {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.tree.Intersecting(query)
}

// Search is RTree.Search under the read lock. fn must not modify s.
func (s *SyncRTree[K]) Search(query Rect, fn func(key K) error) error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.tree.Search(query, fn)
}

// Lookup is RTree.Lookup under the read lock.
func (s *SyncRTree[K]) Lookup(key K) (Rect, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.tree.Lookup(key)
}

// Len returns the number of keys in the tree.
func (s *SyncRTree[K]) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.tree.Len()
}

// Check is RTree.Check under the read lock.
func (s *SyncRTree[K]) Check() error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.tree.Check()
}
