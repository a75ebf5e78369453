package layout

import "fmt"

// SpaceKind tags the variant held by an AvailableSpace.
type SpaceKind uint8

const (
	SpaceDefinite   SpaceKind = iota // Exactly this much room
	SpaceAtMost                      // Up to this much room
	SpaceMinContent                  // Shrink to the narrowest content size
	SpaceMaxContent                  // Grow to the widest content size
)

// AvailableSpace is the room a parent offers along one axis.
type AvailableSpace struct {
	Kind  SpaceKind
	Value float64
}

// Definite offers exactly v.
func Definite(v float64) AvailableSpace {
	return AvailableSpace{Kind: SpaceDefinite, Value: v}
}

// AtMost offers up to v.
func AtMost(v float64) AvailableSpace {
	return AvailableSpace{Kind: SpaceAtMost, Value: v}
}

// MinContent asks for the min-content size.
func MinContent() AvailableSpace {
	return AvailableSpace{Kind: SpaceMinContent}
}

// MaxContent asks for the max-content size.
func MaxContent() AvailableSpace {
	return AvailableSpace{Kind: SpaceMaxContent}
}

// IsBounded reports whether the space carries a size limit.
func (a AvailableSpace) IsBounded() bool {
	return a.Kind == SpaceDefinite || a.Kind == SpaceAtMost
}

// shrink removes d from a bounded space, never going below zero.
func (a AvailableSpace) shrink(d float64) AvailableSpace {
	if !a.IsBounded() {
		return a
	}
	a.Value -= d
	if a.Value < 0 {
		a.Value = 0
	}
	return a
}

func (a AvailableSpace) String() string {
	switch a.Kind {
	case SpaceDefinite:
		return fmt.Sprintf("definite(%g)", a.Value)
	case SpaceAtMost:
		return fmt.Sprintf("at-most(%g)", a.Value)
	case SpaceMinContent:
		return "min-content"
	}
	return "max-content"
}

// Available holds the available space for both axes.
type Available struct {
	Width, Height AvailableSpace
}

// Fixed offers a definite w × h.
func Fixed(w, h float64) Available {
	return Available{Width: Definite(w), Height: Definite(h)}
}

// ShrinkToContent asks for the min-content size on both axes. The
// inspector lays out its tree this way.
func ShrinkToContent() Available {
	return Available{Width: MinContent(), Height: MinContent()}
}

func (a Available) axis(i int) AvailableSpace {
	if i == horizontal {
		return a.Width
	}
	return a.Height
}

func (a *Available) set(i int, s AvailableSpace) {
	if i == horizontal {
		a.Width = s
	} else {
		a.Height = s
	}
}

func (a Available) String() string {
	return fmt.Sprintf("%v × %v", a.Width, a.Height)
}
