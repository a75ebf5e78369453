package render

import (
	"image"
	"image/color"

	"github.com/fogleman/gg"
	"golang.org/x/image/font/basicfont"

	"boxscope/pkg/geom"
	"boxscope/pkg/tree"
)

// SnapshotOptions configures off-screen rendering.
type SnapshotOptions struct {
	Background color.Color
	Offset     geom.Point // Position of the root's margin box origin
	Labels     bool       // Print node handles into content boxes
	LabelColor color.Color
}

// DefaultSnapshotOptions returns white background with labels on.
func DefaultSnapshotOptions() SnapshotOptions {
	return SnapshotOptions{
		Background: color.White,
		Labels:     true,
		LabelColor: color.Black,
	}
}

// Snapshot renders the subtree at root into a new width × height image.
func (r *Renderer) Snapshot(t *tree.Tree, root, selected tree.NodeID, width, height int, opts SnapshotOptions) (*image.RGBA, error) {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	dc := gg.NewContextForRGBA(img)
	if opts.Background != nil {
		dc.SetColor(opts.Background)
		dc.Clear()
	}
	if err := r.Paint(NewGGPainter(dc), t, root, opts.Offset, selected); err != nil {
		return nil, err
	}
	if opts.Labels {
		dc.SetFontFace(basicfont.Face7x13)
		if opts.LabelColor != nil {
			dc.SetColor(opts.LabelColor)
		}
		if err := drawLabels(dc, t, root, opts.Offset); err != nil {
			return nil, err
		}
	}
	tracer().Debugf("snapshot %dx%d of %v", width, height, root)
	return img, nil
}

func drawLabels(dc *gg.Context, t *tree.Tree, node tree.NodeID, offset geom.Point) error {
	l, err := t.Layout(node)
	if err != nil {
		return err
	}
	_, _, _, content := Boxes(l, offset)
	if !content.Empty() {
		dc.DrawString(node.String(), content.Min.X+2, content.Min.Y+11)
	}
	for _, c := range t.Children(node) {
		if err := drawLabels(dc, t, c, offset.Add(l.Location)); err != nil {
			return err
		}
	}
	return nil
}

// SavePNG writes an image to a PNG file.
func SavePNG(path string, img image.Image) error {
	return gg.SavePNG(path, img)
}
