// Package style defines the style record exchanged between the layout tree,
// the layout engine and the editing surfaces.
//
// Every field is a closed variant. Optional alignment fields are pointers,
// nil meaning the property is disabled. A Style is a plain value; Clone it
// before mutating a copy that shares alignment pointers with a stored one.
package style

import "reflect"

// Style holds the sizing, spacing and alignment attributes of one node.
type Style struct {
	Display        Display
	BoxSizing      BoxSizing
	Overflow       OverflowXY
	ScrollbarWidth float64
	Position       Position
	Inset          Rect[LengthPercentageAuto]

	Size        Size[Dimension]
	MinSize     Size[Dimension]
	MaxSize     Size[Dimension]
	AspectRatio *float64

	Margin  Rect[LengthPercentageAuto]
	Padding Rect[LengthPercentage]
	Border  Rect[LengthPercentage]

	AlignItems     *AlignItems
	AlignSelf      *AlignItems
	JustifyItems   *AlignItems
	JustifySelf    *AlignItems
	AlignContent   *AlignContent
	JustifyContent *AlignContent

	Gap       Size[LengthPercentage]
	TextAlign TextAlign

	FlexDirection FlexDirection
	FlexWrap      FlexWrap
	FlexBasis     Dimension
	FlexGrow      float64
	FlexShrink    float64
}

// Default returns a Style holding the default value of every property.
// As in flexbox-first layout engines the default display is flex.
func Default() Style {
	auto := Size[Dimension]{Width: DimAuto(), Height: DimAuto()}
	return Style{
		Display:        DisplayFlex,
		ScrollbarWidth: 0,
		Inset:          UniformRect(Auto()),
		Size:           auto,
		MinSize:        auto,
		MaxSize:        auto,
		Margin:         UniformRect(LengthAuto(0)),
		Padding:        UniformRect(Length(0)),
		Border:         UniformRect(Length(0)),
		Gap:            Size[LengthPercentage]{Width: Length(0), Height: Length(0)},
		FlexBasis:      DimAuto(),
		FlexShrink:     1,
	}
}

// Template returns the style given to nodes created by the inspector:
// 10px margin, border and padding on every side, a 10px gap, flex-grow 1
// and content-box sizing.
func Template() Style {
	s := Default()
	s.Padding = UniformRect(Length(10))
	s.Margin = UniformRect(LengthAuto(10))
	s.Border = UniformRect(Length(10))
	s.FlexGrow = 1
	s.BoxSizing = ContentBox
	s.Gap = Size[LengthPercentage]{Width: Length(10), Height: Length(10)}
	return s
}

// Clone returns a deep copy of s.
func (s Style) Clone() Style {
	c := s
	c.AspectRatio = clonePtr(s.AspectRatio)
	c.AlignItems = clonePtr(s.AlignItems)
	c.AlignSelf = clonePtr(s.AlignSelf)
	c.JustifyItems = clonePtr(s.JustifyItems)
	c.JustifySelf = clonePtr(s.JustifySelf)
	c.AlignContent = clonePtr(s.AlignContent)
	c.JustifyContent = clonePtr(s.JustifyContent)
	return c
}

// Equal compares two styles by value, following the optional fields.
func Equal(a, b Style) bool {
	return reflect.DeepEqual(a, b)
}

// Some returns a pointer to v, for filling optional fields.
func Some[T any](v T) *T {
	return &v
}

func clonePtr[T any](p *T) *T {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}
