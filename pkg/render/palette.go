package render

import (
	"fmt"
	"image/color"

	"github.com/lucasb-eyer/go-colorful"
)

// Palette holds the colors of the box model layers.
type Palette struct {
	Margin    color.Color
	Border    color.Color
	Padding   color.Color
	Content   color.Color
	Selection color.Color
}

// DefaultPalette returns the inspector's colors.
func DefaultPalette() Palette {
	return Palette{
		Margin:    mustHex("#ff7046"),
		Border:    mustHex("#00a6c3"),
		Padding:   mustHex("#fac357"),
		Content:   mustHex("#00c4a8"),
		Selection: mustHex("#ff00ff"),
	}
}

// Set replaces the color of one layer ("margin", "border", "padding",
// "content" or "selection") by a hex color.
func (p *Palette) Set(layer, hex string) error {
	c, err := ParseColor(hex)
	if err != nil {
		return err
	}
	switch layer {
	case "margin":
		p.Margin = c
	case "border":
		p.Border = c
	case "padding":
		p.Padding = c
	case "content":
		p.Content = c
	case "selection":
		p.Selection = c
	default:
		return fmt.Errorf("unknown palette layer %q", layer)
	}
	return nil
}

// ParseColor parses a "#rrggbb" or "#rgb" color.
func ParseColor(hex string) (color.Color, error) {
	c, err := colorful.Hex(hex)
	if err != nil {
		return nil, fmt.Errorf("color %q: %w", hex, err)
	}
	return c, nil
}

func mustHex(hex string) colorful.Color {
	c, err := colorful.Hex(hex)
	if err != nil {
		panic(err)
	}
	return c
}
