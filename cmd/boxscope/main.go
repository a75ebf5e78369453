// Command boxscope is the interactive layout inspector. It shows the box
// model of a small layout tree; hovering describes a node, clicking
// selects it, and the side panel edits the selected node.
package main

import (
	"flag"
	"fmt"
	"os"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"

	"boxscope/pkg/cli"
	"boxscope/pkg/hittest"
	"boxscope/pkg/session"
)

var version string

func main() {
	scriptFile := flag.String("script", "", "script to run against the tree at startup")
	policy := flag.String("policy", "topmost", "hit test policy [topmost|first-match]")
	tlevel := flag.String("trace", "Error", "trace level [Debug|Info|Error]")
	flag.Parse()
	if err := cli.SetupTracing(*tlevel); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	ctl := session.NewController(session.New())
	p, err := hittest.ParsePolicy(*policy)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	ctl.HitTester.Policy = p
	if *scriptFile != "" {
		if err := cli.RunScriptFile(ctl, *scriptFile, os.Stdout); err != nil {
			fmt.Fprintf(os.Stderr, "Error running script: %v\n", err)
			os.Exit(1)
		}
	}

	a := app.New()
	w := a.NewWindow("boxscope")
	w.Resize(fyne.NewSize(1280, 760))
	in := newInspector(ctl, 900, 700)

	css := widget.NewEntry()
	css.SetPlaceHolder("width: 120px; flex-grow: 1")
	css.OnSubmitted = func(text string) {
		in.applyCSS(text)
	}
	js := widget.NewEntry()
	js.SetPlaceHolder("selected().addChild()")
	js.OnSubmitted = func(src string) {
		in.runScript(src)
	}
	buttons := container.NewGridWithColumns(2,
		widget.NewButton("Add child", in.addChild),
		widget.NewButton("Delete node", in.removeNode),
		widget.NewButton("Reset style", in.resetStyle),
		widget.NewButton("Print tree", in.printTree),
	)
	side := container.NewBorder(
		container.NewVBox(buttons, widget.NewLabel("Style"), css, widget.NewLabel("Script"), js),
		container.NewVBox(in.hoverInfo, widget.NewLabel("boxscope "+cli.Version(version))),
		nil, nil,
		in.nodes,
	)
	split := container.NewHSplit(container.NewScroll(in.view), side)
	split.Offset = 0.7
	w.SetContent(container.NewBorder(nil, in.status, nil, nil, split))

	in.frame(session.Input{})
	w.ShowAndRun()
}
