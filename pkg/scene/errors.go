package scene

import "errors"

// Mutation error taxonomy. Every mutation either succeeds and leaves the
// scene valid, or fails with one of these and leaves the scene untouched.
var (
	// ErrNotFound indicates an operation referenced an id unknown to the scene.
	ErrNotFound = errors.New("not found")

	// ErrReference indicates an attempt to create a dangling reference,
	// such as an arrow endpoint naming a node that does not exist.
	ErrReference = errors.New("dangling reference")

	// ErrInvalidGeometry indicates a degenerate shape: a zero-area node,
	// a self-looping arrow, a stroke with no extent, or a non-positive
	// erase radius.
	ErrInvalidGeometry = errors.New("invalid geometry")
)
