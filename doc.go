/*
Package rstar implements an in-memory R*-tree mapping axis-aligned rectangles
to opaque keys.

The tree supports insertion, removal and intersection queries in better than
linear time. Subtrees are chosen by overlap and area heuristics, overflowing
nodes are split along the axis that keeps the resulting groups square-ish,
and once per level and insertion some outlying children are reinserted from
the top instead of splitting. Nodes that underflow after a removal are
dissolved and their children reinserted.

Keys are the only payload: clients keep their records out-of-band, keyed by
the key type K. A tree is not safe for concurrent use; SyncRTree adds a
reader/writer lock around one.
*/
package rstar

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer writes to trace with key 'rstar'
func tracer() tracing.Trace {
	return tracing.Select("rstar")
}

func invariant(condition bool, msg string) {
	if !condition {
		panic(msg)
	}
}
