// Package tree implements the layout tree: an arena of nodes addressed by
// stable handles, with ordered children, non-owning parent links, per-node
// style records and a cache of computed layout.
package tree

import (
	"fmt"

	"github.com/npillmayer/schuko/tracing"

	"boxscope/pkg/geom"
	"boxscope/pkg/style"
)

// tracer traces with key 'boxscope.tree'.
func tracer() tracing.Trace {
	return tracing.Select("boxscope.tree")
}

// NodeID is a handle to a node in a Tree. A handle stays valid until the
// node is removed; afterwards it is stale and every operation taking it
// fails with ErrNodeNotFound, even when the arena slot has been reused.
// The zero NodeID is never live.
type NodeID struct {
	index uint32
	gen   uint32
}

// Index returns the arena slot of the handle.
func (id NodeID) Index() int {
	return int(id.index)
}

// IsZero reports whether id is the zero handle.
func (id NodeID) IsZero() bool {
	return id.gen == 0
}

func (id NodeID) String() string {
	if id.gen > 1 {
		return fmt.Sprintf("#%d@%d", id.index, id.gen)
	}
	return fmt.Sprintf("#%d", id.index)
}

// Layout is the geometry computed for a node by a layout pass.
// Location and Size describe the margin box; Location is relative to the
// parent's margin box origin.
type Layout struct {
	Location geom.Point
	Size     geom.Size
	Order    int // Stacking order among siblings, ascending = painted later
	Margin   geom.Edges
	Border   geom.Edges
	Padding  geom.Edges
}

// Rect returns the margin box translated by offset.
func (l Layout) Rect(offset geom.Point) geom.Rect {
	return geom.FromMinSize(offset.Add(l.Location), l.Size)
}

func (l Layout) String() string {
	return fmt.Sprintf("loc=%v size=%v order=%d margin=%v border=%v padding=%v",
		l.Location, l.Size, l.Order, l.Margin, l.Border, l.Padding)
}

type node struct {
	gen       uint32
	live      bool
	style     style.Style
	children  []NodeID
	parent    NodeID
	hasParent bool
	layout    Layout
	laidOut   bool
}
