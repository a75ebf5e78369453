package render

import (
	"image/color"

	"github.com/fogleman/gg"

	"boxscope/pkg/geom"
)

// Painter is the drawing surface the renderer needs.
type Painter interface {
	FillRect(r geom.Rect, c color.Color)
	// StrokeDashedPolygon strokes the polyline through points with a dash
	// pattern of dash on, gap off.
	StrokeDashedPolygon(points []geom.Point, width float64, c color.Color, dash, gap float64)
}

// GGPainter paints onto a gg drawing context.
type GGPainter struct {
	dc *gg.Context
}

var _ Painter = (*GGPainter)(nil)

// NewGGPainter wraps a drawing context.
func NewGGPainter(dc *gg.Context) *GGPainter {
	return &GGPainter{dc: dc}
}

// Context returns the underlying drawing context.
func (g *GGPainter) Context() *gg.Context {
	return g.dc
}

func (g *GGPainter) FillRect(r geom.Rect, c color.Color) {
	if r.Empty() {
		return
	}
	g.dc.SetColor(c)
	g.dc.DrawRectangle(r.Min.X, r.Min.Y, r.Width(), r.Height())
	g.dc.Fill()
}

func (g *GGPainter) StrokeDashedPolygon(points []geom.Point, width float64, c color.Color, dash, gap float64) {
	if len(points) < 2 {
		return
	}
	g.dc.SetColor(c)
	g.dc.SetLineWidth(width)
	g.dc.SetDash(dash, gap)
	g.dc.MoveTo(points[0].X, points[0].Y)
	for _, pt := range points[1:] {
		g.dc.LineTo(pt.X, pt.Y)
	}
	g.dc.Stroke()
	g.dc.SetDash() // Reset dash
}
