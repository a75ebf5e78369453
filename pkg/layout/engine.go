// Package layout computes box geometry for a layout tree.
//
// The engine understands flex containers, block (and grid, which is laid out
// as block) stacking, absolute positioning against the parent's padding box
// and display none. A pass computes every layout of a subtree into a scratch
// map and commits it to the tree only when all of it succeeded, so a failing
// pass leaves the previously computed geometry in place.
package layout

import (
	"errors"
	"fmt"
	"math"

	"github.com/npillmayer/schuko/tracing"

	"boxscope/pkg/geom"
	"boxscope/pkg/style"
	"boxscope/pkg/tree"
)

// tracer traces with key 'boxscope.layout'.
func tracer() tracing.Trace {
	return tracing.Select("boxscope.layout")
}

// ErrEngineFailure is returned when a layout pass could not produce
// geometry. It wraps the cause.
var ErrEngineFailure = errors.New("layout engine failure")

// DefaultMaxDepth is the deepest nesting a pass accepts.
const DefaultMaxDepth = 512

const (
	horizontal = 0
	vertical   = 1
)

// Engine runs layout passes. The zero Engine uses DefaultMaxDepth.
type Engine struct {
	MaxDepth int
}

// NewEngine creates an engine with default limits.
func NewEngine() *Engine {
	return &Engine{MaxDepth: DefaultMaxDepth}
}

// Compute lays out the subtree at root within avail. On success every node
// of the subtree has a fresh layout and the tree is clean. On failure the
// error wraps ErrEngineFailure and the tree is left untouched.
func (e *Engine) Compute(t *tree.Tree, root tree.NodeID, avail Available) error {
	if !t.Contains(root) {
		return fmt.Errorf("%w: root %v: %w", ErrEngineFailure, root, tree.ErrNodeNotFound)
	}
	depth := e.MaxDepth
	if depth <= 0 {
		depth = DefaultMaxDepth
	}
	p := &pass{
		t:        t,
		maxDepth: depth,
		out:      make(map[tree.NodeID]tree.Layout, t.Len()),
		memo:     make(map[measureKey]geom.Size),
	}
	if err := p.layoutRoot(root, avail); err != nil {
		tracer().Errorf("layout of %v failed: %v", root, err)
		return fmt.Errorf("%w: %w", ErrEngineFailure, err)
	}
	for id, l := range p.out {
		if !finite(l) {
			tracer().Errorf("layout of %v produced %v", id, l)
			return fmt.Errorf("%w: non-finite geometry for node %v", ErrEngineFailure, id)
		}
	}
	if err := t.Commit(p.out); err != nil {
		return fmt.Errorf("%w: %w", ErrEngineFailure, err)
	}
	tracer().Debugf("laid out %d nodes within %v", len(p.out), avail)
	return nil
}

func finite(l tree.Layout) bool {
	for _, v := range []float64{
		l.Location.X, l.Location.Y, l.Size.Width, l.Size.Height,
		l.Margin.Left, l.Margin.Right, l.Margin.Top, l.Margin.Bottom,
		l.Border.Left, l.Border.Right, l.Border.Top, l.Border.Bottom,
		l.Padding.Left, l.Padding.Right, l.Padding.Top, l.Padding.Bottom,
	} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

// --- Pass ------------------------------------------------------------------

type opt struct {
	v  float64
	ok bool
}

func some(v float64) opt {
	return opt{v: v, ok: true}
}

// pair holds an optional value per axis.
type pair [2]opt

type measureKey struct {
	id    tree.NodeID
	fixed pair
	avail Available
	cb    pair
}

type pass struct {
	t        *tree.Tree
	maxDepth int
	out      map[tree.NodeID]tree.Layout
	memo     map[measureKey]geom.Size
}

func (p *pass) layoutRoot(root tree.NodeID, avail Available) error {
	s, err := p.t.Style(root)
	if err != nil {
		return err
	}
	if s.Display == style.DisplayNone {
		p.hide(root, 0)
		return nil
	}
	var cb pair
	for axis := range cb {
		if a := avail.axis(axis); a.Kind == SpaceDefinite {
			cb[axis] = some(a.Value)
		}
	}
	b := resolveBox(s, cb)
	var fixed pair
	if !b.size[horizontal].ok && avail.Width.Kind == SpaceDefinite {
		fixed[horizontal] = some(b.clamp(horizontal, avail.Width.Value-b.margin.Horizontal()))
	}
	inner := Available{
		Width:  avail.Width.shrink(b.margin.Horizontal()),
		Height: avail.Height.shrink(b.margin.Vertical()),
	}
	sz, err := p.compute(root, fixed, inner, cb, true, 0)
	if err != nil {
		return err
	}
	p.out[root] = b.layout(geom.Point{}, sz, 0)
	return nil
}

// compute returns the border-box size of id. fixed holds border-box sizes
// imposed by the parent, avail the space offered to the border box and cb
// the containing block percentages resolve against. With place set the
// layouts of all descendants of id are recorded.
func (p *pass) compute(id tree.NodeID, fixed pair, avail Available, cb pair, place bool, depth int) (geom.Size, error) {
	if depth > p.maxDepth {
		return geom.Size{}, fmt.Errorf("nesting deeper than %d levels at node %v", p.maxDepth, id)
	}
	key := measureKey{id: id, fixed: fixed, avail: avail, cb: cb}
	if !place {
		if sz, ok := p.memo[key]; ok {
			return sz, nil
		}
	}
	s, err := p.t.Style(id)
	if err != nil {
		return geom.Size{}, err
	}
	if s.Display == style.DisplayNone {
		if place {
			p.hide(id, 0)
		}
		return geom.Size{}, nil
	}
	b := resolveBox(s, cb)
	size := b.size
	for axis := range size {
		if fixed[axis].ok {
			size[axis] = fixed[axis]
		} else if size[axis].ok {
			size[axis] = some(b.clamp(axis, size[axis].v))
		}
	}
	if place && !(size[horizontal].ok && size[vertical].ok) {
		// measure first, then place children against the resolved size
		sz, err := p.compute(id, fixed, avail, cb, false, depth)
		if err != nil {
			return geom.Size{}, err
		}
		return p.compute(id, pair{some(sz.Width), some(sz.Height)}, avail, cb, true, depth)
	}
	var inner pair
	var innerAvail Available
	for axis := range inner {
		if size[axis].ok {
			inner[axis] = some(math.Max(0, size[axis].v-b.pb(axis)))
			innerAvail.set(axis, Definite(inner[axis].v))
		} else {
			innerAvail.set(axis, avail.axis(axis).shrink(b.pb(axis)))
		}
	}
	kids, err := p.children(id)
	if err != nil {
		return geom.Size{}, err
	}
	origin := geom.Pt(b.margin.Left+b.border.Left+b.padding.Left, b.margin.Top+b.border.Top+b.padding.Top)
	var content geom.Size
	if s.Display == style.DisplayFlex {
		content, err = p.flex(b, kids.flow, inner, innerAvail, origin, place, depth)
	} else {
		content, err = p.block(kids.flow, inner, innerAvail, origin, place, depth)
	}
	if err != nil {
		return geom.Size{}, err
	}
	var out [2]float64
	for axis := range out {
		if size[axis].ok {
			out[axis] = size[axis].v
			continue
		}
		v := axisOf(content, axis) + b.pb(axis)
		if a := avail.axis(axis); a.Kind == SpaceAtMost && v > a.Value {
			v = a.Value
		}
		out[axis] = b.clamp(axis, v)
	}
	sz := geom.Sz(out[horizontal], out[vertical])
	if !place {
		p.memo[key] = sz
		return sz, nil
	}
	for _, h := range kids.hidden {
		p.hide(h.id, h.order)
	}
	if err := p.absolute(kids.abs, b, sz, origin, depth); err != nil {
		return geom.Size{}, err
	}
	return sz, nil
}

// hide records zero geometry for a display-none subtree.
func (p *pass) hide(id tree.NodeID, order int) {
	p.out[id] = tree.Layout{Order: order}
	for i, c := range p.t.Children(id) {
		p.hide(c, i)
	}
}

type child struct {
	id    tree.NodeID
	style style.Style
	order int
}

type kids struct {
	flow, abs, hidden []child
}

// children sorts the children of id into in-flow, absolutely positioned and
// hidden ones. In-flow and hidden children are ordered by tree index,
// absolute children after all of their siblings.
func (p *pass) children(id tree.NodeID) (kids, error) {
	var k kids
	ids := p.t.Children(id)
	for i, c := range ids {
		s, err := p.t.Style(c)
		if err != nil {
			return k, err
		}
		switch {
		case s.Display == style.DisplayNone:
			k.hidden = append(k.hidden, child{id: c, style: s, order: i})
		case s.Position == style.PositionAbsolute:
			k.abs = append(k.abs, child{id: c, style: s, order: len(ids) + i})
		default:
			k.flow = append(k.flow, child{id: c, style: s, order: i})
		}
	}
	return k, nil
}

// --- Box resolution --------------------------------------------------------

// box is a style resolved against a containing block. Sizes are border-box
// sizes.
type box struct {
	style                   style.Style
	margin, border, padding geom.Edges
	size, min, max          pair
}

func resolveBox(s style.Style, cb pair) box {
	b := box{style: s}
	basis := cb[horizontal].v // margins, borders and paddings resolve against the width
	b.margin = geom.Edges{
		Left:   autoZero(s.Margin.Left, basis),
		Right:  autoZero(s.Margin.Right, basis),
		Top:    autoZero(s.Margin.Top, basis),
		Bottom: autoZero(s.Margin.Bottom, basis),
	}
	b.border = resolveEdges(s.Border, basis)
	b.padding = resolveEdges(s.Padding, basis)
	dims := func(sz style.Size[style.Dimension]) pair {
		var out pair
		for axis, d := range [2]style.Dimension{sz.Width, sz.Height} {
			if v, ok := d.Resolve(cb[axis].v, cb[axis].ok); ok {
				if s.BoxSizing == style.ContentBox {
					v += b.pb(axis)
				}
				out[axis] = some(v)
			}
		}
		return out
	}
	b.size = dims(s.Size)
	b.min = dims(s.MinSize)
	b.max = dims(s.MaxSize)
	if r := s.AspectRatio; r != nil && *r > 0 {
		switch {
		case b.size[horizontal].ok && !b.size[vertical].ok:
			b.size[vertical] = some(b.size[horizontal].v / *r)
		case b.size[vertical].ok && !b.size[horizontal].ok:
			b.size[horizontal] = some(b.size[vertical].v * *r)
		}
	}
	return b
}

func autoZero(v style.LengthPercentageAuto, basis float64) float64 {
	x, ok := v.Resolve(basis)
	if !ok {
		return 0
	}
	return x
}

func resolveEdges(r style.Rect[style.LengthPercentage], basis float64) geom.Edges {
	return geom.Edges{
		Left:   r.Left.Resolve(basis),
		Right:  r.Right.Resolve(basis),
		Top:    r.Top.Resolve(basis),
		Bottom: r.Bottom.Resolve(basis),
	}
}

// pb is the padding plus border along an axis.
func (b box) pb(axis int) float64 {
	if axis == horizontal {
		return b.padding.Horizontal() + b.border.Horizontal()
	}
	return b.padding.Vertical() + b.border.Vertical()
}

func (b box) marginSum(axis int) float64 {
	if axis == horizontal {
		return b.margin.Horizontal()
	}
	return b.margin.Vertical()
}

// clamp applies min/max sizes to a border-box size. Min wins over max and
// no box gets smaller than its padding and border.
func (b box) clamp(axis int, v float64) float64 {
	if b.max[axis].ok && v > b.max[axis].v {
		v = b.max[axis].v
	}
	if b.min[axis].ok && v < b.min[axis].v {
		v = b.min[axis].v
	}
	if pb := b.pb(axis); v < pb {
		v = pb
	}
	return v
}

// layout builds the recorded layout from the margin-box origin and the
// border-box size.
func (b box) layout(loc geom.Point, border geom.Size, order int) tree.Layout {
	return tree.Layout{
		Location: loc,
		Size:     geom.Sz(border.Width+b.margin.Horizontal(), border.Height+b.margin.Vertical()),
		Order:    order,
		Margin:   b.margin,
		Border:   b.border,
		Padding:  b.padding,
	}
}

// relativeOffset shifts an in-flow box by its insets. Left wins over right
// and top over bottom.
func relativeOffset(s style.Style, cb pair) geom.Point {
	var d geom.Point
	if v, ok := s.Inset.Left.Resolve(cb[horizontal].v); ok {
		d.X = v
	} else if v, ok := s.Inset.Right.Resolve(cb[horizontal].v); ok {
		d.X = -v
	}
	if v, ok := s.Inset.Top.Resolve(cb[vertical].v); ok {
		d.Y = v
	} else if v, ok := s.Inset.Bottom.Resolve(cb[vertical].v); ok {
		d.Y = -v
	}
	return d
}

func axisOf(sz geom.Size, axis int) float64 {
	if axis == horizontal {
		return sz.Width
	}
	return sz.Height
}

func pointOn(m int, main, cross float64) geom.Point {
	if m == horizontal {
		return geom.Pt(main, cross)
	}
	return geom.Pt(cross, main)
}
