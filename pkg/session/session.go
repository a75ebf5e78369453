// Package session holds the state of an inspector session: the layout tree,
// its root, the current selection and the style template for new nodes.
// It offers the mutating operations of the inspector, each of which keeps
// the selection pointing at a live node, and a Controller that drives one
// frame of interaction at a time.
package session

import (
	"fmt"
	"io"

	"github.com/npillmayer/schuko/tracing"

	"boxscope/pkg/style"
	"boxscope/pkg/tree"
)

// tracer traces with key 'boxscope.session'.
func tracer() tracing.Trace {
	return tracing.Select("boxscope.session")
}

// Session is not safe for concurrent use. Hosts drive it from a single
// goroutine.
type Session struct {
	tree     *tree.Tree
	root     tree.NodeID
	selected tree.NodeID
	template style.Style
}

// Option configures a new Session.
type Option func(*Session)

// WithTemplate sets the style given to added nodes and used by ResetStyle.
func WithTemplate(s style.Style) Option {
	return func(sess *Session) {
		sess.template = s.Clone()
	}
}

// New creates a session holding the default tree: a 600×400 root with a
// column container of two leaves followed by two leaves. All nodes carry
// the template style. The root is selected.
func New(opts ...Option) *Session {
	s := &Session{tree: tree.New(), template: style.Template()}
	for _, opt := range opts {
		opt(s)
	}
	s.root = s.defaultTree()
	s.selected = s.root
	tracer().Debugf("new session with %d nodes", s.tree.Len())
	return s
}

// NewEmpty creates a session whose tree holds a single root node.
func NewEmpty(rootStyle style.Style, opts ...Option) *Session {
	s := &Session{tree: tree.New(), template: style.Template()}
	for _, opt := range opts {
		opt(s)
	}
	s.root = s.tree.NewLeaf(rootStyle)
	s.selected = s.root
	return s
}

func (s *Session) defaultTree() tree.NodeID {
	t := s.tree
	c00 := t.NewLeaf(s.template.Clone())
	c01 := t.NewLeaf(s.template.Clone())
	column := s.template.Clone()
	column.FlexDirection = style.FlexColumn
	c0 := mustNode(t.NewWithChildren(column, c00, c01))
	c1 := t.NewLeaf(s.template.Clone())
	c2 := t.NewLeaf(s.template.Clone())
	rs := s.template.Clone()
	rs.Size = style.Size[style.Dimension]{Width: style.DimLength(600), Height: style.DimLength(400)}
	return mustNode(t.NewWithChildren(rs, c0, c1, c2))
}

// mustNode is used for construction from fresh, parentless nodes, which
// cannot fail.
func mustNode(id tree.NodeID, err error) tree.NodeID {
	if err != nil {
		panic(err)
	}
	return id
}

// Tree returns the session's tree. Callers mutating it directly bypass
// selection repair and should prefer the session's operations.
func (s *Session) Tree() *tree.Tree {
	return s.tree
}

// Root returns the root of the tree. The root is never removed.
func (s *Session) Root() tree.NodeID {
	return s.root
}

// Selected returns the selected node. It is always live.
func (s *Session) Selected() tree.NodeID {
	s.repairSelection()
	return s.selected
}

// Select makes id the selected node.
func (s *Session) Select(id tree.NodeID) error {
	if !s.tree.Contains(id) {
		return fmt.Errorf("select %v: %w", id, tree.ErrNodeNotFound)
	}
	if id != s.selected {
		tracer().Debugf("selected %v", id)
	}
	s.selected = id
	return nil
}

// Template returns a copy of the template style.
func (s *Session) Template() style.Style {
	return s.template.Clone()
}

// PrintTree dumps the subtree at the selected node.
func (s *Session) PrintTree(w io.Writer) {
	s.tree.Print(w, s.Selected())
}

// repairSelection falls back to the root when the selection went stale
// behind the session's back.
func (s *Session) repairSelection() {
	if !s.tree.Contains(s.selected) {
		s.selected = s.root
	}
}
