// Package render paints the box model of a laid-out tree: for every node
// the margin, border, padding and content boxes as nested filled
// rectangles, plus a dashed outline around the selected node.
package render

import (
	"github.com/npillmayer/schuko/tracing"

	"boxscope/pkg/geom"
	"boxscope/pkg/tree"
)

// tracer traces with key 'boxscope.render'.
func tracer() tracing.Trace {
	return tracing.Select("boxscope.render")
}

// Renderer paints layout trees onto a Painter.
type Renderer struct {
	Palette        Palette
	SelectionWidth float64 // Line width of the selection outline
	Dash, Gap      float64 // Dash pattern of the selection outline
}

// NewRenderer creates a renderer with the default palette and selection
// style.
func NewRenderer() *Renderer {
	return &Renderer{
		Palette:        DefaultPalette(),
		SelectionWidth: 5,
		Dash:           10,
		Gap:            10,
	}
}

// Paint draws the subtree at node. offset is the absolute position of the
// node's parent. Children are painted after their parent in ascending
// stacking order, so later ones cover earlier ones. Layouts must be fresh;
// a stale layout aborts painting with tree.ErrLayoutStale.
func (r *Renderer) Paint(p Painter, t *tree.Tree, node tree.NodeID, offset geom.Point, selected tree.NodeID) error {
	l, err := t.Layout(node)
	if err != nil {
		return err
	}
	marginBox := l.Rect(offset)
	p.FillRect(marginBox, r.Palette.Margin)
	if node == selected {
		p.StrokeDashedPolygon(marginBox.Outline(), r.SelectionWidth, r.Palette.Selection, r.Dash, r.Gap)
	}
	borderBox := marginBox.Inset(l.Margin)
	p.FillRect(borderBox, r.Palette.Border)
	paddingBox := borderBox.Inset(l.Border)
	p.FillRect(paddingBox, r.Palette.Padding)
	p.FillRect(paddingBox.Inset(l.Padding), r.Palette.Content)

	children, err := t.ChildrenByOrder(node)
	if err != nil {
		return err
	}
	for _, c := range children {
		if err := r.Paint(p, t, c, offset.Add(l.Location), selected); err != nil {
			return err
		}
	}
	return nil
}

// Boxes returns the four nested boxes of a node, outermost first, at the
// absolute position offset of its parent.
func Boxes(l tree.Layout, offset geom.Point) (margin, border, padding, content geom.Rect) {
	margin = l.Rect(offset)
	border = margin.Inset(l.Margin)
	padding = border.Inset(l.Border)
	content = padding.Inset(l.Padding)
	return
}
