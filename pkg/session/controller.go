package session

import (
	"fmt"
	"strings"

	"boxscope/pkg/geom"
	"boxscope/pkg/hittest"
	"boxscope/pkg/layout"
	"boxscope/pkg/render"
	"boxscope/pkg/tree"
)

// Input is the pointer state of one frame. Origin is the screen position
// the root is drawn at; Hover and Click are nil when absent.
type Input struct {
	Origin geom.Point
	Hover  *geom.Point
	Click  *geom.Point
}

// FrameResult reports what happened during a frame.
type FrameResult struct {
	Hovered   tree.NodeID // Zero when nothing is hovered
	HoverInfo string      // Layout of the hovered node
	Selected  tree.NodeID
	Relaid    bool    // A layout pass ran
	Errors    []error // Failed queued mutations
}

// Controller runs the inspector one frame at a time. A frame applies the
// queued mutations, recomputes the layout if anything changed, resolves
// hover and click against the fresh geometry and finally paints. Geometry
// is therefore never read between a mutation and the next layout pass.
type Controller struct {
	Session   *Session
	Engine    *layout.Engine
	HitTester hittest.Tester
	Renderer  *render.Renderer
	Available layout.Available
	queue     []Mutation
}

// NewController creates a controller with default collaborators. The
// layout shrinks to content on both axes.
func NewController(s *Session) *Controller {
	return &Controller{
		Session:   s,
		Engine:    layout.NewEngine(),
		Renderer:  render.NewRenderer(),
		Available: layout.ShrinkToContent(),
	}
}

// Queue schedules mutations for the next frame, in order.
func (c *Controller) Queue(m ...Mutation) {
	c.queue = append(c.queue, m...)
}

// Pending returns the number of queued mutations.
func (c *Controller) Pending() int {
	return len(c.queue)
}

// Frame runs one frame. A nil painter skips painting. A failing mutation
// is reported in the result and does not stop later ones. A failing layout
// pass aborts the frame before hit testing and painting; the error wraps
// layout.ErrEngineFailure.
func (c *Controller) Frame(in Input, p render.Painter) (FrameResult, error) {
	var res FrameResult
	queue := c.queue
	c.queue = nil
	for _, m := range queue {
		if err := m.Apply(c.Session); err != nil {
			tracer().Infof("%v failed: %v", m, err)
			res.Errors = append(res.Errors, fmt.Errorf("%v: %w", m, err))
		}
	}
	relaid, err := c.Layout()
	res.Relaid = relaid
	if err != nil {
		res.Selected = c.Session.Selected()
		return res, err
	}
	t, root := c.Session.Tree(), c.Session.Root()
	if in.Hover != nil {
		id, ok, err := c.HitTester.HitTest(t, *in.Hover, in.Origin, root)
		if err != nil {
			return res, err
		}
		if ok {
			l, _ := t.Layout(id)
			res.Hovered, res.HoverInfo = id, DescribeLayout(id, l)
		}
	}
	if in.Click != nil {
		id, ok, err := c.HitTester.HitTest(t, *in.Click, in.Origin, root)
		if err != nil {
			return res, err
		}
		if ok {
			_ = c.Session.Select(id)
		}
	}
	res.Selected = c.Session.Selected()
	if p != nil {
		if err := c.Renderer.Paint(p, t, root, in.Origin, res.Selected); err != nil {
			return res, err
		}
	}
	return res, nil
}

// Layout recomputes the layout when the tree changed or was never laid
// out. It reports whether a pass ran.
func (c *Controller) Layout() (bool, error) {
	t, root := c.Session.Tree(), c.Session.Root()
	if _, err := t.Layout(root); err == nil {
		return false, nil
	}
	if err := c.Engine.Compute(t, root, c.Available); err != nil {
		return true, err
	}
	return true, nil
}

// DescribeLayout formats a node's layout for tooltips and dumps.
func DescribeLayout(id tree.NodeID, l tree.Layout) string {
	var b strings.Builder
	fmt.Fprintf(&b, "node %v\n", id)
	fmt.Fprintf(&b, "  location: %v\n", l.Location)
	fmt.Fprintf(&b, "  size:     %v\n", l.Size)
	fmt.Fprintf(&b, "  order:    %d\n", l.Order)
	fmt.Fprintf(&b, "  margin:   %v\n", l.Margin)
	fmt.Fprintf(&b, "  border:   %v\n", l.Border)
	fmt.Fprintf(&b, "  padding:  %v", l.Padding)
	return b.String()
}
