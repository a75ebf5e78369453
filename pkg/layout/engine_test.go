package layout

import (
	"errors"
	"math"
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"boxscope/pkg/geom"
	"boxscope/pkg/style"
	"boxscope/pkg/tree"
)

const eps = 1e-6

func sized(w, h float64) style.Style {
	s := style.Default()
	s.Size = style.Size[style.Dimension]{Width: style.DimLength(w), Height: style.DimLength(h)}
	return s
}

func ptr[T any](v T) *T {
	return &v
}

// inspectorTree builds the tree the inspector starts with: a 600×400 root
// holding a column of two leaves and two more leaves.
func inspectorTree(t *testing.T) (*tree.Tree, map[string]tree.NodeID) {
	t.Helper()
	tr := tree.New()
	s := style.Template()
	ids := map[string]tree.NodeID{}
	ids["c00"] = tr.NewLeaf(s)
	ids["c01"] = tr.NewLeaf(s)
	col := style.Template()
	col.FlexDirection = style.FlexColumn
	c0, err := tr.NewWithChildren(col, ids["c00"], ids["c01"])
	require.NoError(t, err)
	ids["c0"] = c0
	ids["c1"] = tr.NewLeaf(s)
	ids["c2"] = tr.NewLeaf(s)
	rs := style.Template()
	rs.Size = style.Size[style.Dimension]{Width: style.DimLength(600), Height: style.DimLength(400)}
	root, err := tr.NewWithChildren(rs, c0, ids["c1"], ids["c2"])
	require.NoError(t, err)
	ids["root"] = root
	return tr, ids
}

func layoutOf(t *testing.T, tr *tree.Tree, id tree.NodeID) tree.Layout {
	t.Helper()
	l, err := tr.Layout(id)
	require.NoError(t, err)
	return l
}

func TestInspectorTree(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "boxscope.layout")
	defer teardown()
	//
	tr, ids := inspectorTree(t)
	require.NoError(t, NewEngine().Compute(tr, ids["root"], ShrinkToContent()))
	assert.False(t, tr.Dirty())
	for name, id := range ids {
		_, err := tr.Layout(id)
		assert.NoError(t, err, name)
	}
	root := layoutOf(t, tr, ids["root"])
	assert.Equal(t, geom.Point{}, root.Location)
	assert.InDelta(t, 660.0, root.Size.Width, eps)
	assert.InDelta(t, 460.0, root.Size.Height, eps)
	assert.Equal(t, geom.Uniform(10), root.Padding)

	c0 := layoutOf(t, tr, ids["c0"])
	assert.InDelta(t, 30.0, c0.Location.X, eps)
	assert.InDelta(t, 30.0, c0.Location.Y, eps)
	assert.InDelta(t, 233.0+1.0/3, c0.Size.Width, 1e-3)
	assert.InDelta(t, 400.0, c0.Size.Height, eps)

	c1 := layoutOf(t, tr, ids["c1"])
	c2 := layoutOf(t, tr, ids["c2"])
	assert.InDelta(t, 273.0+1.0/3, c1.Location.X, 1e-3)
	assert.InDelta(t, 630.0, c2.Location.X+c2.Size.Width, 1e-3)
	assert.Equal(t, 1, c1.Order)
	assert.Equal(t, 2, c2.Order)

	c00 := layoutOf(t, tr, ids["c00"])
	c01 := layoutOf(t, tr, ids["c01"])
	assert.InDelta(t, 30.0, c00.Location.Y, eps)
	assert.InDelta(t, 165.0, c00.Size.Height, eps)
	assert.InDelta(t, 205.0, c01.Location.Y, eps)
	assert.InDelta(t, 173.0+1.0/3, c01.Size.Width, 1e-3)
}

func TestJustifyContent(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "boxscope.layout")
	defer teardown()
	//
	cases := []struct {
		justify   style.AlignContent
		direction style.FlexDirection
		want      []float64
	}{
		{style.ContentFlexStart, style.FlexRow, []float64{0, 50, 100}},
		{style.ContentCenter, style.FlexRow, []float64{75, 125, 175}},
		{style.ContentSpaceBetween, style.FlexRow, []float64{0, 125, 250}},
		{style.ContentSpaceEvenly, style.FlexRow, []float64{37.5, 125, 212.5}},
		{style.ContentFlexEnd, style.FlexRow, []float64{150, 200, 250}},
		{style.ContentFlexStart, style.FlexRowReverse, []float64{250, 200, 150}},
		{style.ContentStart, style.FlexRowReverse, []float64{100, 50, 0}},
	}
	for _, c := range cases {
		tr := tree.New()
		kids := []tree.NodeID{tr.NewLeaf(sized(50, 50)), tr.NewLeaf(sized(50, 50)), tr.NewLeaf(sized(50, 50))}
		rs := sized(300, 100)
		rs.JustifyContent = ptr(c.justify)
		rs.FlexDirection = c.direction
		root, err := tr.NewWithChildren(rs, kids...)
		require.NoError(t, err)
		require.NoError(t, NewEngine().Compute(tr, root, ShrinkToContent()))
		for i, k := range kids {
			l := layoutOf(t, tr, k)
			if math.Abs(l.Location.X-c.want[i]) > eps {
				t.Errorf("%v %v: item %d at x=%g, want %g", c.direction, c.justify, i, l.Location.X, c.want[i])
			}
		}
	}
}

func TestWrapAndWrapReverse(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "boxscope.layout")
	defer teardown()
	//
	for _, wrap := range []style.FlexWrap{style.Wrap, style.WrapReverse} {
		tr := tree.New()
		kids := []tree.NodeID{tr.NewLeaf(sized(60, 20)), tr.NewLeaf(sized(60, 20)), tr.NewLeaf(sized(60, 20))}
		rs := style.Default()
		rs.Size.Width = style.DimLength(100)
		rs.FlexWrap = wrap
		root, err := tr.NewWithChildren(rs, kids...)
		require.NoError(t, err)
		require.NoError(t, NewEngine().Compute(tr, root, ShrinkToContent()))
		assert.InDelta(t, 60.0, layoutOf(t, tr, root).Size.Height, eps)
		want := []float64{0, 20, 40}
		if wrap == style.WrapReverse {
			want = []float64{40, 20, 0}
		}
		for i, k := range kids {
			l := layoutOf(t, tr, k)
			assert.InDelta(t, 0.0, l.Location.X, eps)
			assert.InDelta(t, want[i], l.Location.Y, eps, "%v item %d", wrap, i)
		}
	}
}

func TestAlignItems(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "boxscope.layout")
	defer teardown()
	//
	tr := tree.New()
	auto := style.Default()
	auto.Size.Width = style.DimLength(20)
	fixed := sized(20, 20)
	centered := sized(20, 20)
	centered.AlignSelf = ptr(style.AlignCenter)
	a, b, c := tr.NewLeaf(auto), tr.NewLeaf(fixed), tr.NewLeaf(centered)
	root, err := tr.NewWithChildren(sized(100, 100), a, b, c)
	require.NoError(t, err)
	require.NoError(t, NewEngine().Compute(tr, root, ShrinkToContent()))
	assert.InDelta(t, 100.0, layoutOf(t, tr, a).Size.Height, eps, "auto cross size stretches")
	assert.InDelta(t, 20.0, layoutOf(t, tr, b).Size.Height, eps, "definite cross size does not stretch")
	assert.InDelta(t, 40.0, layoutOf(t, tr, c).Location.Y, eps)
}

func TestShrinkAndClamp(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "boxscope.layout")
	defer teardown()
	//
	tr := tree.New()
	capped := sized(500, 10)
	capped.MaxSize.Width = style.DimLength(100)
	a := tr.NewLeaf(capped)
	b, d := tr.NewLeaf(sized(100, 10)), tr.NewLeaf(sized(300, 10))
	root, err := tr.NewWithChildren(sized(200, 10), a, b, d)
	require.NoError(t, err)
	require.NoError(t, NewEngine().Compute(tr, root, ShrinkToContent()))
	// hypothetical sizes 100+100+300 overflow 200 by 300, shrink weighted by size
	assert.InDelta(t, 40.0, layoutOf(t, tr, a).Size.Width, eps)
	assert.InDelta(t, 40.0, layoutOf(t, tr, b).Size.Width, eps)
	assert.InDelta(t, 120.0, layoutOf(t, tr, d).Size.Width, eps)
}

func TestShrinkToContentRoot(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "boxscope.layout")
	defer teardown()
	//
	tr := tree.New()
	root, err := tr.NewWithChildren(style.Default(), tr.NewLeaf(sized(30, 30)), tr.NewLeaf(sized(30, 30)))
	require.NoError(t, err)
	require.NoError(t, NewEngine().Compute(tr, root, ShrinkToContent()))
	assert.Equal(t, geom.Sz(60, 30), layoutOf(t, tr, root).Size)
	// a definite width makes an auto-sized root fill it
	require.NoError(t, NewEngine().Compute(tr, root, Fixed(250, 80)))
	assert.Equal(t, 250.0, layoutOf(t, tr, root).Size.Width)
}

func TestBlockStacking(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "boxscope.layout")
	defer teardown()
	//
	tr := tree.New()
	cs := style.Default()
	cs.Size.Height = style.DimLength(30)
	cs.Margin = style.UniformRect(style.LengthAuto(5))
	a, b := tr.NewLeaf(cs), tr.NewLeaf(cs)
	rs := style.Default()
	rs.Display = style.DisplayBlock
	rs.Size.Width = style.DimLength(200)
	root, err := tr.NewWithChildren(rs, a, b)
	require.NoError(t, err)
	require.NoError(t, NewEngine().Compute(tr, root, ShrinkToContent()))
	la, lb := layoutOf(t, tr, a), layoutOf(t, tr, b)
	assert.Equal(t, geom.Sz(200, 40), la.Size)
	assert.Equal(t, geom.Pt(0, 40), lb.Location)
	assert.Equal(t, 80.0, layoutOf(t, tr, root).Size.Height)
}

func TestPercentagesAndAspectRatio(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "boxscope.layout")
	defer teardown()
	//
	tr := tree.New()
	half := style.Default()
	half.Size = style.Size[style.Dimension]{Width: style.DimPercent(50), Height: style.DimLength(10)}
	wide := style.Default()
	wide.Size.Width = style.DimLength(40)
	wide.AspectRatio = ptr(2.0)
	wide.AlignSelf = ptr(style.AlignStart)
	a, b := tr.NewLeaf(half), tr.NewLeaf(wide)
	root, err := tr.NewWithChildren(sized(200, 100), a, b)
	require.NoError(t, err)
	require.NoError(t, NewEngine().Compute(tr, root, ShrinkToContent()))
	assert.Equal(t, 100.0, layoutOf(t, tr, a).Size.Width)
	assert.Equal(t, geom.Sz(40, 20), layoutOf(t, tr, b).Size)
}

func TestAbsolutePositioning(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "boxscope.layout")
	defer teardown()
	//
	tr := tree.New()
	tl := sized(30, 30)
	tl.Position = style.PositionAbsolute
	tl.Inset.Left, tl.Inset.Top = style.LengthAuto(10), style.LengthAuto(20)
	br := sized(30, 30)
	br.Position = style.PositionAbsolute
	br.Inset.Right, br.Inset.Bottom = style.LengthAuto(10), style.LengthAuto(10)
	a, flow, b := tr.NewLeaf(tl), tr.NewLeaf(sized(50, 50)), tr.NewLeaf(br)
	root, err := tr.NewWithChildren(sized(200, 100), a, flow, b)
	require.NoError(t, err)
	require.NoError(t, NewEngine().Compute(tr, root, ShrinkToContent()))
	la, lf, lb := layoutOf(t, tr, a), layoutOf(t, tr, flow), layoutOf(t, tr, b)
	assert.Equal(t, geom.Pt(10, 20), la.Location)
	assert.Equal(t, geom.Pt(160, 60), lb.Location)
	assert.Equal(t, geom.Pt(0, 0), lf.Location, "absolute siblings take no room")
	assert.Less(t, lf.Order, la.Order)
	assert.Less(t, la.Order, lb.Order)
}

func TestDisplayNone(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "boxscope.layout")
	defer teardown()
	//
	tr := tree.New()
	grandchild := tr.NewLeaf(sized(40, 40))
	hidden := sized(80, 80)
	hidden.Display = style.DisplayNone
	h, err := tr.NewWithChildren(hidden, grandchild)
	require.NoError(t, err)
	visible := tr.NewLeaf(sized(50, 50))
	root, err := tr.NewWithChildren(sized(100, 100), h, visible)
	require.NoError(t, err)
	require.NoError(t, NewEngine().Compute(tr, root, ShrinkToContent()))
	assert.Equal(t, geom.Size{}, layoutOf(t, tr, h).Size)
	assert.Equal(t, geom.Size{}, layoutOf(t, tr, grandchild).Size)
	assert.Equal(t, geom.Pt(0, 0), layoutOf(t, tr, visible).Location)
}

func TestEngineFailureKeepsPreviousLayout(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "boxscope.layout")
	defer teardown()
	//
	tr, ids := inspectorTree(t)
	engine := NewEngine()
	require.NoError(t, engine.Compute(tr, ids["root"], ShrinkToContent()))
	before := layoutOf(t, tr, ids["c1"])

	err := engine.Compute(tr, tree.NodeID{}, ShrinkToContent())
	assert.True(t, errors.Is(err, ErrEngineFailure))
	assert.True(t, errors.Is(err, tree.ErrNodeNotFound))
	assert.False(t, tr.Dirty())
	assert.Equal(t, before, layoutOf(t, tr, ids["c1"]))

	s, err := tr.Style(ids["c1"])
	require.NoError(t, err)
	s.Size.Width = style.DimLength(math.NaN())
	require.NoError(t, tr.SetStyle(ids["c1"], s))
	err = engine.Compute(tr, ids["root"], ShrinkToContent())
	assert.True(t, errors.Is(err, ErrEngineFailure))
	assert.True(t, tr.Dirty(), "failed pass must not mark the tree clean")

	s.Size.Width = style.DimLength(math.Inf(1))
	require.NoError(t, tr.SetStyle(ids["c1"], s))
	assert.ErrorIs(t, engine.Compute(tr, ids["root"], ShrinkToContent()), ErrEngineFailure)
}

func TestEngineDepthLimit(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "boxscope.layout")
	defer teardown()
	//
	tr := tree.New()
	id := tr.NewLeaf(style.Default())
	for i := 0; i < 4; i++ {
		var err error
		id, err = tr.NewWithChildren(style.Default(), id)
		require.NoError(t, err)
	}
	err := (&Engine{MaxDepth: 2}).Compute(tr, id, ShrinkToContent())
	assert.ErrorIs(t, err, ErrEngineFailure)
	assert.NoError(t, (&Engine{}).Compute(tr, id, ShrinkToContent()))
}
