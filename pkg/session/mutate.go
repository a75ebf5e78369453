package session

import (
	"fmt"

	"boxscope/pkg/style"
	"boxscope/pkg/tree"
)

// AddChildTo appends a new template-styled leaf to parent and returns it.
// The selection is left alone.
func (s *Session) AddChildTo(parent tree.NodeID) (tree.NodeID, error) {
	if !s.tree.Contains(parent) {
		return tree.NodeID{}, fmt.Errorf("add child to %v: %w", parent, tree.ErrNodeNotFound)
	}
	child := s.tree.NewLeaf(s.template.Clone())
	if err := s.tree.AddChild(parent, child); err != nil {
		if rerr := s.tree.Remove(child); rerr != nil {
			tracer().Errorf("discarding orphan %v: %v", child, rerr)
		}
		return tree.NodeID{}, err
	}
	tracer().Debugf("added %v to %v", child, parent)
	return child, nil
}

// Remove deletes the subtree at id. Removing the root fails with
// tree.ErrInvalidMutation. When the selection lies inside the removed
// subtree it moves to the removed node's parent.
func (s *Session) Remove(id tree.NodeID) error {
	if !s.tree.Contains(id) {
		return fmt.Errorf("remove %v: %w", id, tree.ErrNodeNotFound)
	}
	if id == s.root {
		return fmt.Errorf("remove %v: the root cannot be removed: %w", id, tree.ErrInvalidMutation)
	}
	parent, ok := s.tree.Parent(id)
	if !ok {
		parent = s.root
	}
	inside := s.tree.IsAncestor(id, s.selected)
	if err := s.tree.Remove(id); err != nil {
		return err
	}
	if inside {
		s.selected = parent
		tracer().Debugf("selection moved to %v", parent)
	}
	s.repairSelection()
	return nil
}

// ResetStyle replaces the style of id by the template.
func (s *Session) ResetStyle(id tree.NodeID) error {
	return s.tree.SetStyle(id, s.template.Clone())
}

// SetStyle replaces the style of id.
func (s *Session) SetStyle(id tree.NodeID, st style.Style) error {
	return s.tree.SetStyle(id, st)
}

// SetProperty changes a single style property of id, e.g.
// SetProperty(id, "flex-direction", "column").
func (s *Session) SetProperty(id tree.NodeID, property, value string) error {
	st, err := s.tree.Style(id)
	if err != nil {
		return err
	}
	if err := style.Set(&st, property, value); err != nil {
		return err
	}
	return s.tree.SetStyle(id, st)
}

// ApplyStyle applies a CSS declaration list to the style of id. Either all
// declarations apply or the style stays unchanged.
func (s *Session) ApplyStyle(id tree.NodeID, css string) error {
	st, err := s.tree.Style(id)
	if err != nil {
		return err
	}
	if err := style.ApplyDeclarations(&st, css); err != nil {
		return err
	}
	return s.tree.SetStyle(id, st)
}

// --- Queued mutations ------------------------------------------------------

// Mutation is an edit queued on a Controller and applied at the start of
// the next frame.
type Mutation interface {
	Apply(s *Session) error
	String() string
}

// AddChild appends a template leaf to Parent.
type AddChild struct{ Parent tree.NodeID }

func (m AddChild) Apply(s *Session) error {
	_, err := s.AddChildTo(m.Parent)
	return err
}

func (m AddChild) String() string { return fmt.Sprintf("add child to %v", m.Parent) }

// Remove deletes the subtree at Node.
type Remove struct{ Node tree.NodeID }

func (m Remove) Apply(s *Session) error { return s.Remove(m.Node) }

func (m Remove) String() string { return fmt.Sprintf("remove %v", m.Node) }

// ResetStyle restores the template style of Node.
type ResetStyle struct{ Node tree.NodeID }

func (m ResetStyle) Apply(s *Session) error { return s.ResetStyle(m.Node) }

func (m ResetStyle) String() string { return fmt.Sprintf("reset style of %v", m.Node) }

// SetStyle replaces the style of Node.
type SetStyle struct {
	Node  tree.NodeID
	Style style.Style
}

func (m SetStyle) Apply(s *Session) error { return s.SetStyle(m.Node, m.Style) }

func (m SetStyle) String() string { return fmt.Sprintf("set style of %v", m.Node) }

// ApplyStyle applies CSS declarations to the style of Node.
type ApplyStyle struct {
	Node tree.NodeID
	CSS  string
}

func (m ApplyStyle) Apply(s *Session) error { return s.ApplyStyle(m.Node, m.CSS) }

func (m ApplyStyle) String() string { return fmt.Sprintf("apply %q to %v", m.CSS, m.Node) }

// Select changes the selection.
type Select struct{ Node tree.NodeID }

func (m Select) Apply(s *Session) error { return s.Select(m.Node) }

func (m Select) String() string { return fmt.Sprintf("select %v", m.Node) }
