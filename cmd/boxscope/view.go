package main

import (
	"image"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/widget"

	"boxscope/pkg/geom"
)

// boxView shows the rendered box model and reports pointer input in
// canvas coordinates. One canvas unit maps to one image pixel.
type boxView struct {
	widget.BaseWidget
	img     *canvas.Image
	onTap   func(geom.Point)
	onHover func(*geom.Point) // nil point when the pointer left
}

var (
	_ fyne.Tappable     = (*boxView)(nil)
	_ desktop.Hoverable = (*boxView)(nil)
)

func newBoxView(target image.Image) *boxView {
	v := &boxView{img: canvas.NewImageFromImage(target)}
	v.img.FillMode = canvas.ImageFillOriginal
	v.img.ScaleMode = canvas.ImageScalePixels
	v.ExtendBaseWidget(v)
	return v
}

// SetImage replaces the displayed frame.
func (v *boxView) SetImage(img image.Image) {
	v.img.Image = img
	v.img.Refresh()
}

func (v *boxView) CreateRenderer() fyne.WidgetRenderer {
	return widget.NewSimpleRenderer(v.img)
}

func (v *boxView) Tapped(e *fyne.PointEvent) {
	if v.onTap != nil {
		v.onTap(toPoint(e.Position))
	}
}

func (v *boxView) MouseIn(e *desktop.MouseEvent) {
	v.MouseMoved(e)
}

func (v *boxView) MouseMoved(e *desktop.MouseEvent) {
	if v.onHover != nil {
		p := toPoint(e.Position)
		v.onHover(&p)
	}
}

func (v *boxView) MouseOut() {
	if v.onHover != nil {
		v.onHover(nil)
	}
}

func toPoint(p fyne.Position) geom.Point {
	return geom.Pt(float64(p.X), float64(p.Y))
}
