package session

import (
	"bytes"
	"errors"
	"image/color"
	"math"
	"strings"
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"boxscope/pkg/geom"
	"boxscope/pkg/layout"
	"boxscope/pkg/style"
	"boxscope/pkg/tree"
)

type countingPainter struct {
	fills, strokes int
}

func (p *countingPainter) FillRect(geom.Rect, color.Color) { p.fills++ }

func (p *countingPainter) StrokeDashedPolygon([]geom.Point, float64, color.Color, float64, float64) {
	p.strokes++
}

// nodes names the nodes of the default tree.
func nodes(s *Session) map[string]tree.NodeID {
	t := s.Tree()
	kids := t.Children(s.Root())
	c0 := t.Children(kids[0])
	return map[string]tree.NodeID{
		"root": s.Root(), "c0": kids[0], "c1": kids[1], "c2": kids[2],
		"c00": c0[0], "c01": c0[1],
	}
}

func TestDefaultSession(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "boxscope.session")
	defer teardown()
	//
	s := New()
	assert.Equal(t, 6, s.Tree().Len())
	assert.Equal(t, s.Root(), s.Selected())
	n := nodes(s)
	st, err := s.Tree().Style(n["c0"])
	require.NoError(t, err)
	assert.Equal(t, style.FlexColumn, st.FlexDirection)

	c := NewController(s)
	p := &countingPainter{}
	res, err := c.Frame(Input{}, p)
	require.NoError(t, err)
	assert.True(t, res.Relaid)
	for name, id := range n {
		_, err := s.Tree().Layout(id)
		assert.NoError(t, err, name)
	}
	assert.Equal(t, 24, p.fills)
	assert.Equal(t, 1, p.strokes, "selected root is outlined")

	res, err = c.Frame(Input{}, nil)
	require.NoError(t, err)
	assert.False(t, res.Relaid, "an unchanged tree is not laid out again")
}

func TestRemoveRepairsSelection(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "boxscope.session")
	defer teardown()
	//
	s := New()
	n := nodes(s)

	require.NoError(t, s.Select(n["c01"]))
	require.NoError(t, s.Remove(n["c01"]))
	assert.Equal(t, n["c0"], s.Selected(), "selection moves to the parent")

	require.NoError(t, s.Select(n["c00"]))
	require.NoError(t, s.Remove(n["c0"]))
	assert.Equal(t, n["root"], s.Selected(), "selection inside a removed subtree moves to its parent")
	assert.False(t, s.Tree().Contains(n["c00"]))
	assert.Equal(t, 3, s.Tree().Len())

	require.NoError(t, s.Select(n["c2"]))
	require.NoError(t, s.Remove(n["c1"]))
	assert.Equal(t, n["c2"], s.Selected(), "selection outside the subtree is kept")

	err := s.Remove(n["c1"])
	assert.True(t, errors.Is(err, tree.ErrNodeNotFound))
}

func TestRootIsProtected(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "boxscope.session")
	defer teardown()
	//
	s := New()
	err := s.Remove(s.Root())
	assert.True(t, errors.Is(err, tree.ErrInvalidMutation))
	assert.Equal(t, 6, s.Tree().Len())
	assert.Equal(t, s.Root(), s.Selected())
}

func TestAddChildAndResetStyle(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "boxscope.session")
	defer teardown()
	//
	s := New()
	n := nodes(s)
	id, err := s.AddChildTo(n["c1"])
	require.NoError(t, err)
	assert.Equal(t, []tree.NodeID{id}, s.Tree().Children(n["c1"]))
	assert.Equal(t, s.Root(), s.Selected(), "adding does not select")
	st, err := s.Tree().Style(id)
	require.NoError(t, err)
	assert.True(t, style.Equal(style.Template(), st))

	require.NoError(t, s.ApplyStyle(n["c1"], "display: block; padding: 2px 4px"))
	require.NoError(t, s.SetProperty(n["c1"], "width", "50%"))
	st, _ = s.Tree().Style(n["c1"])
	assert.Equal(t, style.DisplayBlock, st.Display)
	assert.Equal(t, style.DimPercent(50), st.Size.Width)
	assert.Equal(t, style.Length(2), st.Padding.Top)
	assert.Equal(t, style.Length(4), st.Padding.Left)

	require.NoError(t, s.ResetStyle(n["c1"]))
	st, _ = s.Tree().Style(n["c1"])
	assert.True(t, style.Equal(style.Template(), st))
	assert.Equal(t, []tree.NodeID{id}, s.Tree().Children(n["c1"]), "reset keeps children")

	_, err = s.AddChildTo(tree.NodeID{})
	assert.ErrorIs(t, err, tree.ErrNodeNotFound)
}

func TestControllerOrdering(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "boxscope.session")
	defer teardown()
	//
	s := New()
	n := nodes(s)
	c := NewController(s)
	_, err := c.Frame(Input{}, nil)
	require.NoError(t, err)

	c.Queue(Remove{Node: s.Root()}, AddChild{Parent: n["c2"]}, Select{Node: n["c2"]})
	assert.Equal(t, 3, c.Pending())
	res, err := c.Frame(Input{}, nil)
	require.NoError(t, err)
	assert.Zero(t, c.Pending())
	require.Len(t, res.Errors, 1, "the failing removal is reported")
	assert.ErrorIs(t, res.Errors[0], tree.ErrInvalidMutation)
	assert.True(t, res.Relaid)
	assert.Equal(t, n["c2"], res.Selected)

	kids := s.Tree().Children(n["c2"])
	require.Len(t, kids, 1)
	l, err := s.Tree().Layout(kids[0])
	require.NoError(t, err, "geometry of the added node is fresh after the frame")
	assert.Greater(t, l.Size.Width, 0.0)
}

func TestHoverAndClick(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "boxscope.session")
	defer teardown()
	//
	s := New()
	n := nodes(s)
	c := NewController(s)
	origin := geom.Pt(100, 50)
	hover, click := geom.Pt(400, 150), geom.Pt(200, 150)
	res, err := c.Frame(Input{Origin: origin, Hover: &hover, Click: &click}, nil)
	require.NoError(t, err)
	assert.Equal(t, n["c1"], res.Hovered)
	assert.True(t, strings.HasPrefix(res.HoverInfo, "node "+n["c1"].String()))
	assert.Equal(t, n["c00"], res.Selected)
	assert.Equal(t, n["c00"], s.Selected())

	outside := geom.Pt(5, 5)
	res, err = c.Frame(Input{Origin: origin, Hover: &outside, Click: &outside}, nil)
	require.NoError(t, err)
	assert.True(t, res.Hovered.IsZero())
	assert.Equal(t, n["c00"], res.Selected, "clicking outside keeps the selection")
}

func TestEngineFailureAbortsFrame(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "boxscope.session")
	defer teardown()
	//
	s := New()
	n := nodes(s)
	c := NewController(s)
	bad := s.Template()
	bad.Size.Width = style.DimLength(math.NaN())
	c.Queue(SetStyle{Node: n["c1"], Style: bad})
	p := &countingPainter{}
	_, err := c.Frame(Input{}, p)
	assert.ErrorIs(t, err, layout.ErrEngineFailure)
	assert.Zero(t, p.fills, "nothing is painted after a failed layout")

	c.Queue(ResetStyle{Node: n["c1"]})
	_, err = c.Frame(Input{}, p)
	assert.NoError(t, err)
	assert.Equal(t, 24, p.fills)
}

func TestPrintTreeFromSelection(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "boxscope.session")
	defer teardown()
	//
	s := New()
	n := nodes(s)
	require.NoError(t, s.Select(n["c0"]))
	var buf bytes.Buffer
	s.PrintTree(&buf)
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	assert.Len(t, lines, 3)
	assert.True(t, strings.HasPrefix(lines[0], n["c0"].String()))
}
