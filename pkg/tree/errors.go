package tree

import "errors"

var (
	// ErrNodeNotFound is returned for handles that are not live in the arena,
	// usually because the node has been removed. Callers may recover by
	// falling back to the root.
	ErrNodeNotFound = errors.New("node not found")

	// ErrInvalidMutation is returned for structural changes that would break
	// a tree invariant. The tree is left unchanged.
	ErrInvalidMutation = errors.New("invalid mutation")

	// ErrLayoutStale is returned when computed layout is read before a
	// layout pass, or after a mutation without an intervening pass.
	ErrLayoutStale = errors.New("layout is stale")
)
