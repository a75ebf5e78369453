package tree

import (
	"fmt"

	"github.com/emirpasic/gods/stacks/arraystack"

	"boxscope/pkg/style"
)

// Tree owns every node in an arena. Parent links are handle values and
// never participate in ownership: removing a node detaches it from its
// parent's child list and frees it together with all of its descendants.
//
// A Tree is not safe for concurrent use.
type Tree struct {
	nodes []node
	free  *arraystack.Stack // reusable arena slots
	live  int
	dirty bool
}

// New creates an empty tree.
func New() *Tree {
	return &Tree{
		nodes: make([]node, 0, 16),
		free:  arraystack.New(),
	}
}

// Len returns the number of live nodes.
func (t *Tree) Len() int {
	return t.live
}

// Contains reports whether id refers to a live node.
func (t *Tree) Contains(id NodeID) bool {
	return t.get(id) != nil
}

func (t *Tree) get(id NodeID) *node {
	if id.gen == 0 || int(id.index) >= len(t.nodes) {
		return nil
	}
	n := &t.nodes[id.index]
	if !n.live || n.gen != id.gen {
		return nil
	}
	return n
}

func (t *Tree) lookup(id NodeID) (*node, error) {
	n := t.get(id)
	if n == nil {
		return nil, fmt.Errorf("%w: %v", ErrNodeNotFound, id)
	}
	return n, nil
}

// NewLeaf creates a parentless node with no children.
func (t *Tree) NewLeaf(s style.Style) NodeID {
	var id NodeID
	if v, ok := t.free.Pop(); ok {
		idx := v.(uint32)
		id = NodeID{index: idx, gen: t.nodes[idx].gen}
	} else {
		id = NodeID{index: uint32(len(t.nodes)), gen: 1}
		t.nodes = append(t.nodes, node{gen: 1})
	}
	t.nodes[id.index] = node{gen: id.gen, live: true, style: s.Clone()}
	t.live++
	t.dirty = true
	tracer().Debugf("new node %v", id)
	return id
}

// NewWithChildren creates a node and appends children to it in order.
// Every child must be live, parentless and listed once.
func (t *Tree) NewWithChildren(s style.Style, children ...NodeID) (NodeID, error) {
	seen := make(map[NodeID]bool, len(children))
	for _, c := range children {
		n, err := t.lookup(c)
		if err != nil {
			return NodeID{}, err
		}
		if n.hasParent || seen[c] {
			return NodeID{}, fmt.Errorf("%w: %v already has a parent", ErrInvalidMutation, c)
		}
		seen[c] = true
	}
	id := t.NewLeaf(s)
	p := t.get(id)
	for _, c := range children {
		p.children = append(p.children, c)
		cn := t.get(c)
		cn.parent, cn.hasParent = id, true
	}
	return id, nil
}

// AddChild appends child to parent's children.
func (t *Tree) AddChild(parent, child NodeID) error {
	return t.InsertChildAt(parent, -1, child)
}

// InsertChildAt inserts child into parent's children before position index.
// An index of -1 appends. The child must be parentless and must not be an
// ancestor of parent.
func (t *Tree) InsertChildAt(parent NodeID, index int, child NodeID) error {
	p, err := t.lookup(parent)
	if err != nil {
		return err
	}
	c, err := t.lookup(child)
	if err != nil {
		return err
	}
	switch {
	case parent == child:
		return fmt.Errorf("%w: %v cannot be its own child", ErrInvalidMutation, child)
	case c.hasParent:
		return fmt.Errorf("%w: %v already has parent %v", ErrInvalidMutation, child, c.parent)
	case t.IsAncestor(child, parent):
		return fmt.Errorf("%w: adding %v to %v would form a cycle", ErrInvalidMutation, child, parent)
	}
	if index == -1 {
		index = len(p.children)
	}
	if index < 0 || index > len(p.children) {
		return fmt.Errorf("%w: child index %d out of range", ErrInvalidMutation, index)
	}
	p.children = append(p.children, NodeID{})
	copy(p.children[index+1:], p.children[index:])
	p.children[index] = child
	c.parent, c.hasParent = parent, true
	t.dirty = true
	return nil
}

// ReorderChild moves child to position index within its parent's children.
func (t *Tree) ReorderChild(child NodeID, index int) error {
	c, err := t.lookup(child)
	if err != nil {
		return err
	}
	if !c.hasParent {
		return fmt.Errorf("%w: %v has no parent", ErrInvalidMutation, child)
	}
	p := t.get(c.parent)
	if index < 0 || index >= len(p.children) {
		return fmt.Errorf("%w: child index %d out of range", ErrInvalidMutation, index)
	}
	p.children = removeID(p.children, child)
	p.children = append(p.children, NodeID{})
	copy(p.children[index+1:], p.children[index:])
	p.children[index] = child
	t.dirty = true
	return nil
}

// Remove deletes node and its entire subtree. The node is detached from its
// parent first, then every handle of the subtree is freed; afterwards none
// of them is live.
func (t *Tree) Remove(id NodeID) error {
	n, err := t.lookup(id)
	if err != nil {
		return err
	}
	doomed := t.collect(id)
	if n.hasParent {
		p := t.get(n.parent)
		p.children = removeID(p.children, id)
	}
	for _, d := range doomed {
		t.release(d)
	}
	t.dirty = true
	tracer().Debugf("removed %v with %d descendants", id, len(doomed)-1)
	return nil
}

// collect returns id and all of its descendants, using an explicit stack.
func (t *Tree) collect(id NodeID) []NodeID {
	out := make([]NodeID, 0, 8)
	stack := arraystack.New()
	stack.Push(id)
	for !stack.Empty() {
		v, _ := stack.Pop()
		cur := v.(NodeID)
		out = append(out, cur)
		for _, c := range t.get(cur).children {
			stack.Push(c)
		}
	}
	return out
}

func (t *Tree) release(id NodeID) {
	n := &t.nodes[id.index]
	*n = node{gen: n.gen + 1}
	t.free.Push(id.index)
	t.live--
}

func removeID(ids []NodeID, id NodeID) []NodeID {
	for i, c := range ids {
		if c == id {
			return append(ids[:i:i], ids[i+1:]...)
		}
	}
	return ids
}

// SetStyle replaces the style of a node.
func (t *Tree) SetStyle(id NodeID, s style.Style) error {
	n, err := t.lookup(id)
	if err != nil {
		return err
	}
	n.style = s.Clone()
	t.dirty = true
	return nil
}

// Style returns a copy of the style of a node.
func (t *Tree) Style(id NodeID) (style.Style, error) {
	n, err := t.lookup(id)
	if err != nil {
		return style.Style{}, err
	}
	return n.style.Clone(), nil
}

// Children returns a copy of the ordered children of a node. Stale handles
// yield an empty slice.
func (t *Tree) Children(id NodeID) []NodeID {
	n := t.get(id)
	if n == nil || len(n.children) == 0 {
		return []NodeID{}
	}
	out := make([]NodeID, len(n.children))
	copy(out, n.children)
	return out
}

// ChildCount returns the number of children, 0 for stale handles.
func (t *Tree) ChildCount(id NodeID) int {
	if n := t.get(id); n != nil {
		return len(n.children)
	}
	return 0
}

// Parent returns the parent of a node, if any.
func (t *Tree) Parent(id NodeID) (NodeID, bool) {
	n := t.get(id)
	if n == nil || !n.hasParent {
		return NodeID{}, false
	}
	return n.parent, true
}

// IsAncestor reports whether a is b or a proper ancestor of b.
func (t *Tree) IsAncestor(a, b NodeID) bool {
	if !t.Contains(a) || !t.Contains(b) {
		return false
	}
	for cur, ok := b, true; ok; cur, ok = t.Parent(cur) {
		if cur == a {
			return true
		}
	}
	return false
}

// Walk visits root and its descendants in pre-order. Returning false from
// fn skips the children of the visited node.
func (t *Tree) Walk(root NodeID, fn func(id NodeID, depth int) bool) {
	t.walk(root, 0, fn)
}

func (t *Tree) walk(id NodeID, depth int, fn func(NodeID, int) bool) {
	n := t.get(id)
	if n == nil || !fn(id, depth) {
		return
	}
	for _, c := range n.children {
		t.walk(c, depth+1, fn)
	}
}
