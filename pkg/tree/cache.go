package tree

import (
	"fmt"
	"sort"
)

// Dirty reports whether the tree changed since the last layout commit.
func (t *Tree) Dirty() bool {
	return t.dirty
}

// MarkDirty invalidates all computed layout.
func (t *Tree) MarkDirty() {
	t.dirty = true
}

// MarkClean declares the layouts stored with SetLayout current.
func (t *Tree) MarkClean() {
	t.dirty = false
}

// Layout returns the computed layout of a node. It fails with
// ErrLayoutStale if the node was never laid out or the tree has been
// mutated since the last layout pass.
func (t *Tree) Layout(id NodeID) (Layout, error) {
	n, err := t.lookup(id)
	if err != nil {
		return Layout{}, err
	}
	if t.dirty || !n.laidOut {
		return Layout{}, fmt.Errorf("%w: %v", ErrLayoutStale, id)
	}
	return n.layout, nil
}

// SetLayout stores the computed layout for a single node without touching
// the dirty state.
func (t *Tree) SetLayout(id NodeID, l Layout) error {
	n, err := t.lookup(id)
	if err != nil {
		return err
	}
	n.layout, n.laidOut = l, true
	return nil
}

// Commit stores a complete layout pass and marks the tree clean. Every
// handle is checked before anything is written, so a failing commit leaves
// the previous layout in place.
func (t *Tree) Commit(layouts map[NodeID]Layout) error {
	for id := range layouts {
		if _, err := t.lookup(id); err != nil {
			return err
		}
	}
	for id, l := range layouts {
		n := t.get(id)
		n.layout, n.laidOut = l, true
	}
	t.dirty = false
	tracer().Debugf("committed layout for %d nodes", len(layouts))
	return nil
}

// ChildrenByOrder returns the children of a node in ascending stacking
// order, ties keeping tree order. Painting in this order puts later children
// on top.
func (t *Tree) ChildrenByOrder(id NodeID) ([]NodeID, error) {
	children := t.Children(id)
	orders := make(map[NodeID]int, len(children))
	for _, c := range children {
		l, err := t.Layout(c)
		if err != nil {
			return nil, err
		}
		orders[c] = l.Order
	}
	sort.SliceStable(children, func(i, j int) bool {
		return orders[children[i]] < orders[children[j]]
	})
	return children, nil
}
