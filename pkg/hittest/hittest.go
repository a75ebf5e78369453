// Package hittest resolves a point to the deepest node whose margin box
// contains it.
package hittest

import (
	"fmt"

	"github.com/npillmayer/schuko/tracing"

	"boxscope/pkg/geom"
	"boxscope/pkg/tree"
)

// tracer traces with key 'boxscope.hittest'.
func tracer() tracing.Trace {
	return tracing.Select("boxscope.hittest")
}

// Policy decides which of several overlapping siblings wins a hit.
type Policy uint8

const (
	// Topmost picks the sibling painted last, i.e. the one with the highest
	// stacking order.
	Topmost Policy = iota
	// FirstMatch picks the first sibling in ascending stacking order.
	FirstMatch
)

var policyNames = []string{"topmost", "first-match"}

func (p Policy) String() string {
	if int(p) < len(policyNames) {
		return policyNames[p]
	}
	return fmt.Sprintf("Policy(%d)", int(p))
}

// ParsePolicy parses "topmost" or "first-match".
func ParsePolicy(s string) (Policy, error) {
	for i, n := range policyNames {
		if n == s {
			return Policy(i), nil
		}
	}
	return Topmost, fmt.Errorf("unknown hit-test policy %q", s)
}

// Tester performs hit tests against computed layouts.
type Tester struct {
	Policy Policy
}

// HitTest returns the deepest node of the subtree at node containing pos.
// offset is the absolute position of the origin node's parent. Children are
// tested before their parent; the first child subtree producing a hit
// short-circuits the search. Reading a stale layout fails with
// tree.ErrLayoutStale.
func (h Tester) HitTest(t *tree.Tree, pos, offset geom.Point, node tree.NodeID) (tree.NodeID, bool, error) {
	l, err := t.Layout(node)
	if err != nil {
		return tree.NodeID{}, false, err
	}
	children, err := t.ChildrenByOrder(node)
	if err != nil {
		return tree.NodeID{}, false, err
	}
	childOffset := offset.Add(l.Location)
	for i := range children {
		c := children[i]
		if h.Policy == Topmost {
			c = children[len(children)-1-i]
		}
		hit, ok, err := h.HitTest(t, pos, childOffset, c)
		if err != nil {
			return tree.NodeID{}, false, err
		}
		if ok {
			return hit, true, nil
		}
	}
	if l.Rect(offset).Contains(pos) {
		tracer().Debugf("hit %v at %v", node, pos)
		return node, true, nil
	}
	return tree.NodeID{}, false, nil
}
