package layout

import (
	"boxscope/pkg/geom"
)

// block stacks in-flow children vertically. A child with an auto width
// fills the content width when that is known. Grid containers are laid out
// the same way.
func (p *pass) block(flow []child, inner pair, avail Available, origin geom.Point, place bool, depth int) (geom.Size, error) {
	y, width := 0.0, 0.0
	for _, ch := range flow {
		b := resolveBox(ch.style, inner)
		var fixed pair
		if b.size[horizontal].ok {
			fixed[horizontal] = some(b.clamp(horizontal, b.size[horizontal].v))
		} else if inner[horizontal].ok {
			fixed[horizontal] = some(b.clamp(horizontal, inner[horizontal].v-b.margin.Horizontal()))
		}
		if b.size[vertical].ok {
			fixed[vertical] = some(b.clamp(vertical, b.size[vertical].v))
		}
		sz, err := p.compute(ch.id, fixed, itemAvail(avail, b), inner, place, depth+1)
		if err != nil {
			return geom.Size{}, err
		}
		if place {
			loc := origin.Add(geom.Pt(0, y)).Add(relativeOffset(ch.style, inner))
			p.out[ch.id] = b.layout(loc, sz, ch.order)
		}
		y += sz.Height + b.margin.Vertical()
		if w := sz.Width + b.margin.Horizontal(); w > width {
			width = w
		}
	}
	return geom.Sz(width, y), nil
}

// absolute places out-of-flow children against the padding box of their
// parent, whose border-box size is border. An auto inset falls back to the
// static position at the start of the content box. A child with both
// insets of an axis set and an auto size stretches between them.
func (p *pass) absolute(abs []child, parent box, border geom.Size, origin geom.Point, depth int) error {
	pad := pair{
		some(border.Width - parent.border.Horizontal()),
		some(border.Height - parent.border.Vertical()),
	}
	start := geom.Pt(parent.margin.Left+parent.border.Left, parent.margin.Top+parent.border.Top)
	for _, ch := range abs {
		b := resolveBox(ch.style, pad)
		in := ch.style.Inset
		left, lok := in.Left.Resolve(pad[horizontal].v)
		right, rok := in.Right.Resolve(pad[horizontal].v)
		top, tok := in.Top.Resolve(pad[vertical].v)
		bottom, bok := in.Bottom.Resolve(pad[vertical].v)
		var fixed pair
		if b.size[horizontal].ok {
			fixed[horizontal] = some(b.clamp(horizontal, b.size[horizontal].v))
		} else if lok && rok {
			fixed[horizontal] = some(b.clamp(horizontal, pad[horizontal].v-left-right-b.margin.Horizontal()))
		}
		if b.size[vertical].ok {
			fixed[vertical] = some(b.clamp(vertical, b.size[vertical].v))
		} else if tok && bok {
			fixed[vertical] = some(b.clamp(vertical, pad[vertical].v-top-bottom-b.margin.Vertical()))
		}
		avail := Available{
			Width:  AtMost(pad[horizontal].v).shrink(b.margin.Horizontal()),
			Height: AtMost(pad[vertical].v).shrink(b.margin.Vertical()),
		}
		sz, err := p.compute(ch.id, fixed, avail, pad, true, depth+1)
		if err != nil {
			return err
		}
		outerW, outerH := sz.Width+b.margin.Horizontal(), sz.Height+b.margin.Vertical()
		loc := origin
		switch {
		case lok:
			loc.X = start.X + left
		case rok:
			loc.X = start.X + pad[horizontal].v - right - outerW
		}
		switch {
		case tok:
			loc.Y = start.Y + top
		case bok:
			loc.Y = start.Y + pad[vertical].v - bottom - outerH
		}
		p.out[ch.id] = b.layout(loc, sz, ch.order)
	}
	return nil
}
