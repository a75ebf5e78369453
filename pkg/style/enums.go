package style

import (
	"fmt"
	"strings"
)

// Display selects the layout algorithm used for a node's children.
type Display uint8

const (
	DisplayBlock Display = iota
	DisplayFlex
	DisplayGrid
	DisplayNone
)

var displayNames = []string{"block", "flex", "grid", "none"}

func (d Display) String() string { return nameOf(displayNames, int(d)) }

// ParseDisplay parses a display keyword.
func ParseDisplay(s string) (Display, error) {
	i, err := parseName("display", displayNames, s)
	return Display(i), err
}

// BoxSizing selects which box the size properties apply to.
type BoxSizing uint8

const (
	ContentBox BoxSizing = iota
	BorderBox
)

var boxSizingNames = []string{"content-box", "border-box"}

func (b BoxSizing) String() string { return nameOf(boxSizingNames, int(b)) }

// ParseBoxSizing parses a box-sizing keyword.
func ParseBoxSizing(s string) (BoxSizing, error) {
	i, err := parseName("box-sizing", boxSizingNames, s)
	return BoxSizing(i), err
}

// Overflow controls how content exceeding a box is handled on one axis.
type Overflow uint8

const (
	OverflowVisible Overflow = iota
	OverflowHidden
	OverflowScroll
	OverflowClip
)

var overflowNames = []string{"visible", "hidden", "scroll", "clip"}

func (o Overflow) String() string { return nameOf(overflowNames, int(o)) }

// ParseOverflow parses an overflow keyword.
func ParseOverflow(s string) (Overflow, error) {
	i, err := parseName("overflow", overflowNames, s)
	return Overflow(i), err
}

// OverflowXY holds independent overflow settings per axis.
type OverflowXY struct {
	X, Y Overflow
}

// Position selects in-flow or out-of-flow positioning.
type Position uint8

const (
	PositionRelative Position = iota
	PositionAbsolute
)

var positionNames = []string{"relative", "absolute"}

func (p Position) String() string { return nameOf(positionNames, int(p)) }

// ParsePosition parses a position keyword.
func ParsePosition(s string) (Position, error) {
	i, err := parseName("position", positionNames, s)
	return Position(i), err
}

// AlignItems is used for align-items, align-self, justify-items and
// justify-self.
type AlignItems uint8

const (
	AlignStart AlignItems = iota
	AlignEnd
	AlignFlexStart
	AlignFlexEnd
	AlignCenter
	AlignBaseline
	AlignStretch
)

var alignItemsNames = []string{"start", "end", "flex-start", "flex-end", "center", "baseline", "stretch"}

func (a AlignItems) String() string { return nameOf(alignItemsNames, int(a)) }

// ParseAlignItems parses an item alignment keyword.
func ParseAlignItems(s string) (AlignItems, error) {
	i, err := parseName("align-items", alignItemsNames, s)
	return AlignItems(i), err
}

// AlignContent is used for align-content and justify-content.
type AlignContent uint8

const (
	ContentStart AlignContent = iota
	ContentEnd
	ContentFlexStart
	ContentFlexEnd
	ContentCenter
	ContentStretch
	ContentSpaceBetween
	ContentSpaceEvenly
	ContentSpaceAround
)

var alignContentNames = []string{
	"start", "end", "flex-start", "flex-end", "center", "stretch",
	"space-between", "space-evenly", "space-around",
}

func (a AlignContent) String() string { return nameOf(alignContentNames, int(a)) }

// ParseAlignContent parses a content distribution keyword.
func ParseAlignContent(s string) (AlignContent, error) {
	i, err := parseName("align-content", alignContentNames, s)
	return AlignContent(i), err
}

// TextAlign is the legacy text alignment.
type TextAlign uint8

const (
	TextAlignAuto TextAlign = iota
	TextAlignLegacyLeft
	TextAlignLegacyRight
	TextAlignLegacyCenter
)

var textAlignNames = []string{"auto", "left", "right", "center"}

func (t TextAlign) String() string { return nameOf(textAlignNames, int(t)) }

// ParseTextAlign parses a text-align keyword. The legacy- prefix is optional.
func ParseTextAlign(s string) (TextAlign, error) {
	s = strings.TrimPrefix(strings.ToLower(strings.TrimSpace(s)), "legacy")
	i, err := parseName("text-align", textAlignNames, s)
	return TextAlign(i), err
}

// FlexDirection is the main axis of a flex container.
type FlexDirection uint8

const (
	FlexRow FlexDirection = iota
	FlexColumn
	FlexRowReverse
	FlexColumnReverse
)

var flexDirectionNames = []string{"row", "column", "row-reverse", "column-reverse"}

func (f FlexDirection) String() string { return nameOf(flexDirectionNames, int(f)) }

// IsRow reports whether the main axis is horizontal.
func (f FlexDirection) IsRow() bool {
	return f == FlexRow || f == FlexRowReverse
}

// IsReverse reports whether items run against the axis.
func (f FlexDirection) IsReverse() bool {
	return f == FlexRowReverse || f == FlexColumnReverse
}

// ParseFlexDirection parses a flex-direction keyword.
func ParseFlexDirection(s string) (FlexDirection, error) {
	i, err := parseName("flex-direction", flexDirectionNames, s)
	return FlexDirection(i), err
}

// FlexWrap controls line breaking of flex items.
type FlexWrap uint8

const (
	NoWrap FlexWrap = iota
	Wrap
	WrapReverse
)

var flexWrapNames = []string{"nowrap", "wrap", "wrap-reverse"}

func (f FlexWrap) String() string { return nameOf(flexWrapNames, int(f)) }

// ParseFlexWrap parses a flex-wrap keyword.
func ParseFlexWrap(s string) (FlexWrap, error) {
	i, err := parseName("flex-wrap", flexWrapNames, s)
	return FlexWrap(i), err
}

func nameOf(names []string, i int) string {
	if i < 0 || i >= len(names) {
		return fmt.Sprintf("invalid(%d)", i)
	}
	return names[i]
}

// parseName matches s against names ignoring case, hyphens and underscores,
// so both "flex-start" and "FlexStart" are accepted.
func parseName(what string, names []string, s string) (int, error) {
	key := normalizeName(s)
	for i, n := range names {
		if normalizeName(n) == key {
			return i, nil
		}
	}
	return 0, fmt.Errorf("unknown %s value %q", what, s)
}

func normalizeName(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	return strings.NewReplacer("-", "", "_", "", " ", "").Replace(s)
}
