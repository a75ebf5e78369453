package render

import (
	"errors"
	"image"
	"image/color"
	"image/draw"
	"path/filepath"
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"boxscope/pkg/geom"
	"boxscope/pkg/layout"
	"boxscope/pkg/style"
	"boxscope/pkg/tree"
)

type op struct {
	kind   string // "fill" or "stroke"
	rect   geom.Rect
	points []geom.Point
	color  color.Color
	width  float64
}

type recorder struct {
	ops []op
}

func (r *recorder) FillRect(rect geom.Rect, c color.Color) {
	r.ops = append(r.ops, op{kind: "fill", rect: rect, color: c})
}

func (r *recorder) StrokeDashedPolygon(points []geom.Point, width float64, c color.Color, dash, gap float64) {
	r.ops = append(r.ops, op{kind: "stroke", points: points, color: c, width: width})
}

// twoNodes builds a 600×400 margin-box root (10px margin, border and
// padding) holding one fixed-size child.
func twoNodes(t *testing.T) (*tree.Tree, tree.NodeID, tree.NodeID) {
	t.Helper()
	tr := tree.New()
	cs := style.Default()
	cs.Size = style.Size[style.Dimension]{Width: style.DimLength(50), Height: style.DimLength(50)}
	child := tr.NewLeaf(cs)
	rs := style.Template()
	rs.BoxSizing = style.BorderBox
	rs.Size = style.Size[style.Dimension]{Width: style.DimLength(580), Height: style.DimLength(380)}
	rs.AlignItems = style.Some(style.AlignStart)
	root, err := tr.NewWithChildren(rs, child)
	require.NoError(t, err)
	require.NoError(t, layout.NewEngine().Compute(tr, root, layout.ShrinkToContent()))
	return tr, root, child
}

func TestPaintNestedBoxes(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "boxscope.render")
	defer teardown()
	//
	tr, root, _ := twoNodes(t)
	rec := &recorder{}
	r := NewRenderer()
	require.NoError(t, r.Paint(rec, tr, root, geom.Point{}, tree.NodeID{}))
	require.Len(t, rec.ops, 8)
	assert.Equal(t, geom.Rect{Max: geom.Pt(600, 400)}, rec.ops[0].rect)
	assert.Equal(t, geom.Rect{Min: geom.Pt(10, 10), Max: geom.Pt(590, 390)}, rec.ops[1].rect)
	assert.Equal(t, geom.Rect{Min: geom.Pt(20, 20), Max: geom.Pt(580, 380)}, rec.ops[2].rect)
	content := rec.ops[3].rect
	assert.Equal(t, 540.0, content.Width())
	assert.Equal(t, 340.0, content.Height())
	for i, c := range []color.Color{r.Palette.Margin, r.Palette.Border, r.Palette.Padding, r.Palette.Content} {
		assert.Equal(t, c, rec.ops[i].color, "layer %d", i)
	}
	// the child is painted after its parent, at the parent's content origin
	assert.Equal(t, geom.Pt(30, 30), rec.ops[4].rect.Min)
}

func TestPaintSelectionOutline(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "boxscope.render")
	defer teardown()
	//
	tr, root, child := twoNodes(t)
	rec := &recorder{}
	r := NewRenderer()
	require.NoError(t, r.Paint(rec, tr, root, geom.Pt(5, 5), child))
	require.Len(t, rec.ops, 9)
	stroke := rec.ops[5]
	assert.Equal(t, "stroke", stroke.kind, "outline follows the margin fill of the selected node")
	require.Len(t, stroke.points, 5)
	assert.Equal(t, stroke.points[0], stroke.points[4])
	assert.Equal(t, geom.Pt(35, 35), stroke.points[0])
	assert.Equal(t, 5.0, stroke.width)
	assert.Equal(t, r.Palette.Selection, stroke.color)
	for i, o := range rec.ops {
		if i != 5 {
			assert.Equal(t, "fill", o.kind)
		}
	}
}

func TestPaintStaleLayout(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "boxscope.render")
	defer teardown()
	//
	tr, root, child := twoNodes(t)
	require.NoError(t, tr.SetStyle(child, style.Template()))
	err := NewRenderer().Paint(&recorder{}, tr, root, geom.Point{}, root)
	assert.True(t, errors.Is(err, tree.ErrLayoutStale))
}

func TestSnapshot(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "boxscope.render")
	defer teardown()
	//
	tr, root, _ := twoNodes(t)
	r := NewRenderer()
	img, err := r.Snapshot(tr, root, root, 640, 480, DefaultSnapshotOptions())
	require.NoError(t, err)
	assert.Equal(t, 640, img.Bounds().Dx())
	want := color.RGBAModel.Convert(r.Palette.Border).(color.RGBA)
	got := img.RGBAAt(15, 200)
	assert.InDelta(t, want.R, got.R, 1)
	assert.InDelta(t, want.G, got.G, 1)
	assert.InDelta(t, want.B, got.B, 1)
	bg := img.RGBAAt(620, 460)
	assert.Equal(t, color.RGBA{255, 255, 255, 255}, bg)
}

func TestSnapshotMatchesReference(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "boxscope.render")
	defer teardown()
	//
	tr, root, _ := twoNodes(t)
	r := NewRenderer()
	opts := DefaultSnapshotOptions()
	opts.Labels = false
	img, err := r.Snapshot(tr, root, tree.NodeID{}, 640, 480, opts)
	require.NoError(t, err)

	want := image.NewRGBA(image.Rect(0, 0, 640, 480))
	fill := func(x0, y0, x1, y1 int, c color.Color) {
		draw.Draw(want, image.Rect(x0, y0, x1, y1), image.NewUniform(c), image.Point{}, draw.Src)
	}
	fill(0, 0, 640, 480, color.White)
	fill(0, 0, 600, 400, r.Palette.Margin)
	fill(10, 10, 590, 390, r.Palette.Border)
	fill(20, 20, 580, 380, r.Palette.Padding)
	fill(30, 30, 570, 370, r.Palette.Content)
	fill(30, 30, 80, 80, r.Palette.Content)

	res, err := Compare(img, want, CompareOptions{Tolerance: 2, Diff: true})
	require.NoError(t, err)
	assert.True(t, res.Match(), "%d of %d pixels differ", res.DifferentPixels, res.TotalPixels)
	assert.Equal(t, img.Bounds(), res.Diff.Bounds())

	// a moved child must be noticed
	fill(30, 30, 80, 80, r.Palette.Padding)
	res, err = Compare(img, want, CompareOptions{Tolerance: 2})
	require.NoError(t, err)
	assert.False(t, res.Match())
	assert.Equal(t, 50*50, res.DifferentPixels)
	assert.Nil(t, res.Diff)

	_, err = Compare(img, image.NewRGBA(image.Rect(0, 0, 10, 10)), CompareOptions{})
	assert.Error(t, err)
}

func TestPNGRoundTrip(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "boxscope.render")
	defer teardown()
	//
	tr, root, _ := twoNodes(t)
	img, err := NewRenderer().Snapshot(tr, root, root, 640, 480, DefaultSnapshotOptions())
	require.NoError(t, err)
	path := filepath.Join(t.TempDir(), "boxes.png")
	require.NoError(t, SavePNG(path, img))
	loaded, err := LoadPNG(path)
	require.NoError(t, err)
	res, err := Compare(img, loaded, CompareOptions{})
	require.NoError(t, err)
	assert.True(t, res.Match())

	_, err = LoadPNG(filepath.Join(t.TempDir(), "missing.png"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "missing.png")
}

func TestPaletteSet(t *testing.T) {
	p := DefaultPalette()
	require.NoError(t, p.Set("content", "#000"))
	r, g, b, _ := p.Content.RGBA()
	assert.Zero(t, r+g+b)
	assert.Error(t, p.Set("shadow", "#fff"))
	assert.Error(t, p.Set("margin", "orange"))
}
