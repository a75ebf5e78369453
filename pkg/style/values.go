package style

import "fmt"

// Unit tags the variant held by a length-like value.
type Unit uint8

const (
	UnitLength  Unit = iota // Absolute length in pixels
	UnitPercent             // Percentage of the reference size, on a 0-100 scale
	UnitAuto                // Determined by content or the layout algorithm
)

// LengthPercentage is a length or a percentage. It has no auto variant.
type LengthPercentage struct {
	Unit  Unit
	Value float64
}

// Length returns an absolute LengthPercentage.
func Length(v float64) LengthPercentage {
	return LengthPercentage{Unit: UnitLength, Value: v}
}

// Percent returns a percentage LengthPercentage (50 = 50%).
func Percent(v float64) LengthPercentage {
	return LengthPercentage{Unit: UnitPercent, Value: v}
}

// Resolve returns the absolute value against basis.
func (lp LengthPercentage) Resolve(basis float64) float64 {
	if lp.Unit == UnitPercent {
		return basis * lp.Value / 100.0
	}
	return lp.Value
}

func (lp LengthPercentage) String() string {
	return formatValue(lp.Unit, lp.Value)
}

// LengthPercentageAuto is a length, a percentage or auto.
type LengthPercentageAuto struct {
	Unit  Unit
	Value float64
}

// LengthAuto returns an absolute LengthPercentageAuto.
func LengthAuto(v float64) LengthPercentageAuto {
	return LengthPercentageAuto{Unit: UnitLength, Value: v}
}

// PercentAuto returns a percentage LengthPercentageAuto.
func PercentAuto(v float64) LengthPercentageAuto {
	return LengthPercentageAuto{Unit: UnitPercent, Value: v}
}

// Auto returns the auto LengthPercentageAuto.
func Auto() LengthPercentageAuto {
	return LengthPercentageAuto{Unit: UnitAuto}
}

// IsAuto returns true for the auto variant.
func (v LengthPercentageAuto) IsAuto() bool {
	return v.Unit == UnitAuto
}

// Resolve returns the absolute value against basis; ok is false for auto.
func (v LengthPercentageAuto) Resolve(basis float64) (float64, bool) {
	switch v.Unit {
	case UnitLength:
		return v.Value, true
	case UnitPercent:
		return basis * v.Value / 100.0, true
	}
	return 0, false
}

func (v LengthPercentageAuto) String() string {
	return formatValue(v.Unit, v.Value)
}

// Dimension is a size value: length, percentage or auto.
type Dimension struct {
	Unit  Unit
	Value float64
}

// DimLength returns an absolute Dimension.
func DimLength(v float64) Dimension {
	return Dimension{Unit: UnitLength, Value: v}
}

// DimPercent returns a percentage Dimension.
func DimPercent(v float64) Dimension {
	return Dimension{Unit: UnitPercent, Value: v}
}

// DimAuto returns the auto Dimension.
func DimAuto() Dimension {
	return Dimension{Unit: UnitAuto}
}

// IsAuto returns true for the auto variant.
func (d Dimension) IsAuto() bool {
	return d.Unit == UnitAuto
}

// Resolve returns the absolute value. Percentages need a known basis;
// ok is false for auto and for percentages of an unknown basis.
func (d Dimension) Resolve(basis float64, basisKnown bool) (float64, bool) {
	switch d.Unit {
	case UnitLength:
		return d.Value, true
	case UnitPercent:
		if !basisKnown {
			return 0, false
		}
		return basis * d.Value / 100.0, true
	}
	return 0, false
}

func (d Dimension) String() string {
	return formatValue(d.Unit, d.Value)
}

func formatValue(u Unit, v float64) string {
	switch u {
	case UnitPercent:
		return fmt.Sprintf("%g%%", v)
	case UnitAuto:
		return "auto"
	}
	return fmt.Sprintf("%gpx", v)
}

// Rect holds a value for each of the four sides of a box.
type Rect[T any] struct {
	Left, Right, Top, Bottom T
}

// UniformRect returns a Rect with v on every side.
func UniformRect[T any](v T) Rect[T] {
	return Rect[T]{Left: v, Right: v, Top: v, Bottom: v}
}

// Size holds a value per axis.
type Size[T any] struct {
	Width, Height T
}
