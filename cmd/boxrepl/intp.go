package main

import (
	"fmt"
	"strings"

	"github.com/chzyer/readline"
	"github.com/pterm/pterm"

	"boxscope/pkg/render"
	"boxscope/pkg/script"
	"boxscope/pkg/session"
)

// Intp is our interpreter object.
type Intp struct {
	repl *readline.Instance
	ctl  *session.Controller
	js   *script.Engine
}

// REPL starts interactive mode.
func (intp *Intp) REPL() {
	for {
		line, err := intp.repl.Readline()
		if err != nil { // io.EOF or interrupt
			break
		}
		if line = strings.TrimSpace(line); line == "" {
			continue
		}
		if strings.HasPrefix(line, ":") {
			quit, err := intp.command(strings.Fields(line[1:]))
			if err != nil {
				pterm.Error.Println(err.Error())
			}
			if quit {
				break
			}
			continue
		}
		v, err := intp.js.Run(line)
		if err != nil {
			pterm.Error.Println(err.Error())
			continue
		}
		if v != "" {
			fmt.Fprintln(intp.repl.Stdout(), v)
		}
	}
	pterm.Info.Println("Good bye!")
}

func (intp *Intp) command(args []string) (bool, error) {
	if len(args) == 0 {
		help()
		return false, nil
	}
	sess := intp.ctl.Session
	switch args[0] {
	case "quit", "q":
		return true, nil
	case "tree":
		if _, err := intp.ctl.Layout(); err != nil {
			return false, err
		}
		sess.Tree().Print(intp.repl.Stdout(), sess.Root())
	case "sel":
		if _, err := intp.ctl.Layout(); err != nil {
			return false, err
		}
		id := sess.Selected()
		l, err := sess.Tree().Layout(id)
		if err != nil {
			return false, err
		}
		fmt.Fprintln(intp.repl.Stdout(), session.DescribeLayout(id, l))
	case "png":
		path := "boxes.png"
		if len(args) > 1 {
			path = args[1]
		}
		return false, intp.snapshot(path)
	default:
		help()
	}
	return false, nil
}

func (intp *Intp) snapshot(path string) error {
	if _, err := intp.ctl.Layout(); err != nil {
		return err
	}
	sess := intp.ctl.Session
	l, err := sess.Tree().Layout(sess.Root())
	if err != nil {
		return err
	}
	const pad = 20
	opts := render.DefaultSnapshotOptions()
	opts.Offset.X, opts.Offset.Y = pad, pad
	w, h := int(l.Size.Width)+2*pad, int(l.Size.Height)+2*pad
	img, err := intp.ctl.Renderer.Snapshot(sess.Tree(), sess.Root(), sess.Selected(), w, h, opts)
	if err != nil {
		return err
	}
	if err := render.SavePNG(path, img); err != nil {
		return err
	}
	pterm.Info.Printfln("wrote %dx%d to %s", w, h, path)
	return nil
}

func help() {
	pterm.Info.Println(`Console commands:
  :tree        dump the whole tree
  :sel         describe the selected node's layout
  :png [file]  render the box model to a PNG
  :quit        leave
Everything else is JavaScript, e.g.
  root().children[0].addChild().set("width", "40px")
  layout(); print(root())`)
}
