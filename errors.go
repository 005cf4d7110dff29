package rstar

import "errors"

var (
	// ErrInvariant signals that a structural invariant of the tree is violated.
	ErrInvariant = errors.New("rstar: invariant violated")

	// Stop is a special sentinel error that can be used to stop a search
	// operation without any error.
	Stop = errors.New("stop")
)
