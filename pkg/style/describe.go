package style

import (
	"fmt"
	"strings"
)

// Summary returns a one-line description of the properties that matter
// most when reading a tree dump.
func (s Style) Summary() string {
	var b strings.Builder
	b.WriteString(s.Display.String())
	if s.Display == DisplayFlex {
		fmt.Fprintf(&b, " %s", s.FlexDirection)
		if s.FlexWrap != NoWrap {
			fmt.Fprintf(&b, " %s", s.FlexWrap)
		}
	}
	if s.Position == PositionAbsolute {
		b.WriteString(" absolute")
	}
	if !s.Size.Width.IsAuto() || !s.Size.Height.IsAuto() {
		fmt.Fprintf(&b, " size=%sx%s", s.Size.Width, s.Size.Height)
	}
	if s.FlexGrow != 0 {
		fmt.Fprintf(&b, " grow=%g", s.FlexGrow)
	}
	return b.String()
}
