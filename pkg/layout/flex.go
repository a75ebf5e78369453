package layout

import (
	"boxscope/pkg/geom"
	"boxscope/pkg/style"
)

// flexItem is an in-flow child of a flex container. Sizes are border-box
// sizes, positions are margin-box offsets inside the container's content box.
type flexItem struct {
	child
	box        box
	basis      float64 // Hypothetical main size
	main       float64 // Target main size after flexing
	cross      float64
	crossFixed bool
	mainPos    float64
	crossPos   float64
}

func (it *flexItem) outerMain(m int) float64 {
	return it.main + it.box.marginSum(m)
}

func (it *flexItem) outerCross(c int) float64 {
	return it.cross + it.box.marginSum(c)
}

type flexLine struct {
	items []*flexItem
	cross float64
	pos   float64
}

func (l *flexLine) outerMain(m int, gap float64) float64 {
	used := 0.0
	for i, it := range l.items {
		if i > 0 {
			used += gap
		}
		used += it.outerMain(m)
	}
	return used
}

// flex lays out the in-flow children of a flex container and returns the
// size of its content.
func (p *pass) flex(b box, flow []child, inner pair, avail Available, origin geom.Point, place bool, depth int) (geom.Size, error) {
	s := b.style
	m, c := horizontal, vertical
	if !s.FlexDirection.IsRow() {
		m, c = vertical, horizontal
	}
	gaps := [2]float64{s.Gap.Width.Resolve(inner[horizontal].v), s.Gap.Height.Resolve(inner[vertical].v)}
	mainGap, crossGap := gaps[m], gaps[c]

	items, err := p.createFlexItems(flow, m, c, inner, avail, depth)
	if err != nil {
		return geom.Size{}, err
	}
	limit := 0.0
	bounded := false
	if inner[m].ok {
		limit, bounded = inner[m].v, true
	} else if a := avail.axis(m); a.IsBounded() {
		limit, bounded = a.Value, true
	}
	lines := createFlexLines(items, s.FlexWrap != style.NoWrap && bounded, limit, mainGap, m)
	if inner[m].ok {
		for _, line := range lines {
			resolveFlexibleLengths(line, m, inner[m].v, mainGap)
		}
	}

	// cross sizes of items and lines
	for _, line := range lines {
		for _, it := range line.items {
			if it.box.size[c].ok {
				it.cross, it.crossFixed = it.box.clamp(c, it.box.size[c].v), true
			} else {
				var fixed pair
				fixed[m] = some(it.main)
				sz, err := p.compute(it.id, fixed, itemAvail(avail, it.box), inner, false, depth+1)
				if err != nil {
					return geom.Size{}, err
				}
				it.cross = axisOf(sz, c)
			}
			if oc := it.outerCross(c); oc > line.cross {
				line.cross = oc
			}
		}
	}
	alignContent := style.ContentStretch
	if s.AlignContent != nil {
		alignContent = *s.AlignContent
	}
	if inner[c].ok {
		if len(lines) == 1 {
			lines[0].cross = inner[c].v
		} else if alignContent == style.ContentStretch {
			stretchLines(lines, inner[c].v, crossGap)
		}
	}
	for _, line := range lines {
		for _, it := range line.items {
			if alignSelf(s, it.style) == style.AlignStretch && !it.crossFixed && !autoMargins(it.style, c) {
				it.cross = it.box.clamp(c, line.cross-it.box.marginSum(c))
			}
		}
	}

	contentMain := 0.0
	for _, line := range lines {
		if used := line.outerMain(m, mainGap); used > contentMain {
			contentMain = used
		}
	}
	contentCross := 0.0
	for i, line := range lines {
		if i > 0 {
			contentCross += crossGap
		}
		contentCross += line.cross
	}
	content := geom.Size{}
	if m == horizontal {
		content = geom.Sz(contentMain, contentCross)
	} else {
		content = geom.Sz(contentCross, contentMain)
	}
	if !place {
		return content, nil
	}

	mainSpace := contentMain
	if inner[m].ok {
		mainSpace = inner[m].v
	}
	justify := style.ContentFlexStart
	if s.JustifyContent != nil {
		justify = *s.JustifyContent
	}
	for _, line := range lines {
		distributeMainAxis(line, justify, mainSpace, mainGap, m, s.FlexDirection.IsReverse())
	}
	crossSpace := contentCross
	if inner[c].ok {
		crossSpace = inner[c].v
	}
	alignCrossAxis(s, lines, alignContent, crossSpace, crossGap, c)

	for _, line := range lines {
		for _, it := range line.items {
			loc := origin.Add(pointOn(m, it.mainPos, it.crossPos)).Add(relativeOffset(it.style, inner))
			var fixed pair
			fixed[m], fixed[c] = some(it.main), some(it.cross)
			sz, err := p.compute(it.id, fixed, itemAvail(avail, it.box), inner, true, depth+1)
			if err != nil {
				return geom.Size{}, err
			}
			p.out[it.id] = it.box.layout(loc, sz, it.order)
		}
	}
	return content, nil
}

// createFlexItems resolves each child against the container and determines
// its hypothetical main size from flex-basis, its own size or its content.
func (p *pass) createFlexItems(flow []child, m, c int, inner pair, avail Available, depth int) ([]*flexItem, error) {
	items := make([]*flexItem, 0, len(flow))
	for _, ch := range flow {
		it := &flexItem{child: ch, box: resolveBox(ch.style, inner)}
		basis, ok := ch.style.FlexBasis.Resolve(inner[m].v, inner[m].ok)
		switch {
		case ok:
			if ch.style.BoxSizing == style.ContentBox {
				basis += it.box.pb(m)
			}
		case it.box.size[m].ok:
			basis = it.box.size[m].v
		default:
			var fixed pair
			if it.box.size[c].ok {
				fixed[c] = some(it.box.clamp(c, it.box.size[c].v))
			}
			sz, err := p.compute(ch.id, fixed, itemAvail(avail, it.box), inner, false, depth+1)
			if err != nil {
				return nil, err
			}
			basis = axisOf(sz, m)
		}
		it.basis = it.box.clamp(m, basis)
		it.main = it.basis
		items = append(items, it)
	}
	return items, nil
}

func itemAvail(avail Available, b box) Available {
	return Available{
		Width:  avail.Width.shrink(b.margin.Horizontal()),
		Height: avail.Height.shrink(b.margin.Vertical()),
	}
}

// createFlexLines breaks items into lines. Without wrapping all items go on
// a single line. There is always at least one line.
func createFlexLines(items []*flexItem, wrap bool, limit, gap float64, m int) []*flexLine {
	var lines []*flexLine
	line := &flexLine{}
	used := 0.0
	for _, it := range items {
		outer := it.outerMain(m)
		if wrap && len(line.items) > 0 && used+gap+outer > limit {
			lines = append(lines, line)
			line, used = &flexLine{}, 0
		}
		if len(line.items) > 0 {
			used += gap
		}
		used += outer
		line.items = append(line.items, it)
	}
	return append(lines, line)
}

// resolveFlexibleLengths grows or shrinks the items of a line to fill
// space. Growing is proportional to flex-grow, shrinking to flex-shrink
// scaled by the hypothetical size.
func resolveFlexibleLengths(line *flexLine, m int, space, gap float64) {
	free := space - line.outerMain(m, gap)
	switch {
	case free > 0:
		grow := 0.0
		for _, it := range line.items {
			grow += it.style.FlexGrow
		}
		if grow <= 0 {
			return
		}
		if grow < 1 {
			free *= grow
		}
		for _, it := range line.items {
			if g := it.style.FlexGrow; g > 0 {
				it.main = it.box.clamp(m, it.basis+free*g/grow)
			}
		}
	case free < 0:
		scaled := 0.0
		for _, it := range line.items {
			scaled += it.style.FlexShrink * it.basis
		}
		if scaled <= 0 {
			return
		}
		for _, it := range line.items {
			if f := it.style.FlexShrink * it.basis; f > 0 {
				it.main = it.box.clamp(m, it.basis+free*f/scaled)
			}
		}
	}
}

func stretchLines(lines []*flexLine, space, gap float64) {
	used := gap * float64(len(lines)-1)
	for _, line := range lines {
		used += line.cross
	}
	if extra := space - used; extra > 0 {
		for _, line := range lines {
			line.cross += extra / float64(len(lines))
		}
	}
}

// distribute returns the leading offset and the spacing between n
// consecutive boxes sharing free space. Stretch distributes like flex-start.
// Negative free space makes the space-* variants fall back to start or
// center.
func distribute(a style.AlignContent, free float64, n int, gap float64) (offset, between float64) {
	between = gap
	switch a {
	case style.ContentEnd, style.ContentFlexEnd:
		offset = free
	case style.ContentCenter:
		offset = free / 2
	case style.ContentSpaceBetween:
		if n > 1 && free > 0 {
			between += free / float64(n-1)
		}
	case style.ContentSpaceAround:
		if free > 0 {
			between += free / float64(n)
			offset = free / float64(n) / 2
		} else {
			offset = free / 2
		}
	case style.ContentSpaceEvenly:
		if free > 0 {
			between += free / float64(n+1)
			offset = free / float64(n+1)
		} else {
			offset = free / 2
		}
	}
	return offset, between
}

// distributeMainAxis positions the items of a line along the main axis.
// Reverse directions are laid out forward and mirrored; start and end
// refer to the physical axis and are swapped before mirroring.
func distributeMainAxis(line *flexLine, justify style.AlignContent, space, gap float64, m int, reverse bool) {
	if reverse {
		switch justify {
		case style.ContentStart:
			justify = style.ContentFlexEnd
		case style.ContentEnd:
			justify = style.ContentFlexStart
		}
	}
	free := space - line.outerMain(m, gap)
	offset, between := distribute(justify, free, len(line.items), gap)
	pos := offset
	for _, it := range line.items {
		it.mainPos = pos
		pos += it.outerMain(m) + between
	}
	if reverse {
		for _, it := range line.items {
			it.mainPos = space - it.mainPos - it.outerMain(m)
		}
	}
}

// alignCrossAxis positions lines with align-content and the items inside a
// line with align-self. wrap-reverse stacks lines from the cross end.
func alignCrossAxis(s style.Style, lines []*flexLine, alignContent style.AlignContent, space, gap float64, c int) {
	used := gap * float64(len(lines)-1)
	for _, line := range lines {
		used += line.cross
	}
	offset, between := distribute(alignContent, space-used, len(lines), gap)
	pos := offset
	for _, line := range lines {
		line.pos = pos
		pos += line.cross + between
	}
	reverse := s.FlexWrap == style.WrapReverse
	for _, line := range lines {
		if reverse {
			line.pos = space - line.pos - line.cross
		}
		for _, it := range line.items {
			a := alignSelf(s, it.style)
			if reverse {
				switch a {
				case style.AlignFlexStart:
					a = style.AlignFlexEnd
				case style.AlignFlexEnd:
					a = style.AlignFlexStart
				}
			}
			free := line.cross - it.outerCross(c)
			switch a {
			case style.AlignEnd, style.AlignFlexEnd:
				it.crossPos = line.pos + free
			case style.AlignCenter:
				it.crossPos = line.pos + free/2
			default:
				it.crossPos = line.pos
			}
		}
	}
}

// alignSelf resolves the alignment of an item: its own align-self, then the
// container's align-items, then stretch.
func alignSelf(container, item style.Style) style.AlignItems {
	if item.AlignSelf != nil {
		return *item.AlignSelf
	}
	if container.AlignItems != nil {
		return *container.AlignItems
	}
	return style.AlignStretch
}

func autoMargins(s style.Style, axis int) bool {
	if axis == horizontal {
		return s.Margin.Left.IsAuto() || s.Margin.Right.IsAuto()
	}
	return s.Margin.Top.IsAuto() || s.Margin.Bottom.IsAuto()
}
