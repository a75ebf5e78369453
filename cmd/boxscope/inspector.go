package main

import (
	"errors"
	"fmt"
	"image"
	"os"
	"strings"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/widget"
	"github.com/fogleman/gg"

	"boxscope/pkg/geom"
	"boxscope/pkg/render"
	"boxscope/pkg/script"
	"boxscope/pkg/session"
	"boxscope/pkg/tree"
)

// row is one line of the node list.
type row struct {
	id    tree.NodeID
	depth int
}

// inspector connects the widgets to a controller. All methods run on the
// UI goroutine.
type inspector struct {
	ctl    *session.Controller
	js     *script.Engine
	origin geom.Point
	width  int
	height int
	hover  *geom.Point

	view      *boxView
	nodes     *widget.List
	rows      []row
	status    *widget.Label
	hoverInfo *widget.Label
	syncing   bool
}

func newInspector(ctl *session.Controller, width, height int) *inspector {
	in := &inspector{
		ctl:       ctl,
		origin:    geom.Pt(20, 20),
		width:     width,
		height:    height,
		status:    widget.NewLabel(""),
		hoverInfo: widget.NewLabel(""),
	}
	in.js = script.New(ctl, os.Stdout)
	in.view = newBoxView(image.NewRGBA(image.Rect(0, 0, width, height)))
	in.view.onTap = func(p geom.Point) {
		in.frame(session.Input{Click: &p})
	}
	in.view.onHover = func(p *geom.Point) {
		in.hover = p
		in.frame(session.Input{})
	}
	in.nodes = widget.NewList(
		func() int { return len(in.rows) },
		func() fyne.CanvasObject { return widget.NewLabel("node") },
		func(i widget.ListItemID, o fyne.CanvasObject) {
			o.(*widget.Label).SetText(in.describeRow(in.rows[i]))
		},
	)
	in.nodes.OnSelected = func(i widget.ListItemID) {
		if in.syncing || i >= len(in.rows) {
			return
		}
		in.do(session.Select{Node: in.rows[i].id})
	}
	return in
}

// do queues mutations and runs a frame.
func (in *inspector) do(m ...session.Mutation) {
	in.ctl.Queue(m...)
	in.frame(session.Input{})
}

func (in *inspector) selected() tree.NodeID {
	return in.ctl.Session.Selected()
}

// frame runs one controller frame into a fresh image and refreshes the
// widgets from its result.
func (in *inspector) frame(input session.Input) {
	input.Origin = in.origin
	input.Hover = in.hover
	img := image.NewRGBA(image.Rect(0, 0, in.width, in.height))
	dc := gg.NewContextForRGBA(img)
	dc.SetRGB(1, 1, 1)
	dc.Clear()
	res, err := in.ctl.Frame(input, render.NewGGPainter(dc))
	if err != nil {
		in.status.SetText("Error: " + err.Error())
		return
	}
	in.view.SetImage(img)
	if len(res.Errors) > 0 {
		in.status.SetText("Error: " + errors.Join(res.Errors...).Error())
	} else {
		in.status.SetText(fmt.Sprintf("%d nodes, selected %v", in.ctl.Session.Tree().Len(), res.Selected))
	}
	if res.Hovered.IsZero() {
		in.hoverInfo.SetText("")
	} else {
		in.hoverInfo.SetText(res.HoverInfo)
	}
	in.refreshNodes(res.Selected)
}

// refreshNodes rebuilds the node list and highlights the selection.
func (in *inspector) refreshNodes(selected tree.NodeID) {
	sess := in.ctl.Session
	in.rows = in.rows[:0]
	sess.Tree().Walk(sess.Root(), func(id tree.NodeID, depth int) bool {
		in.rows = append(in.rows, row{id: id, depth: depth})
		return true
	})
	in.syncing = true
	defer func() { in.syncing = false }()
	in.nodes.Refresh()
	for i, r := range in.rows {
		if r.id == selected {
			in.nodes.Select(i)
			break
		}
	}
}

func (in *inspector) describeRow(r row) string {
	st, err := in.ctl.Session.Tree().Style(r.id)
	if err != nil {
		return r.id.String()
	}
	return fmt.Sprintf("%s%v  %s", strings.Repeat("    ", r.depth), r.id, st.Summary())
}

func (in *inspector) addChild() {
	in.do(session.AddChild{Parent: in.selected()})
}

func (in *inspector) removeNode() {
	in.do(session.Remove{Node: in.selected()})
}

func (in *inspector) resetStyle() {
	in.do(session.ResetStyle{Node: in.selected()})
}

func (in *inspector) applyCSS(css string) {
	in.do(session.ApplyStyle{Node: in.selected(), CSS: css})
}

func (in *inspector) printTree() {
	in.ctl.Session.PrintTree(os.Stdout)
}

func (in *inspector) runScript(src string) {
	v, err := in.js.Run(src)
	if err != nil {
		in.frame(session.Input{})
		in.status.SetText(err.Error())
		return
	}
	in.frame(session.Input{})
	if v != "" {
		in.status.SetText("=> " + v)
	}
}
