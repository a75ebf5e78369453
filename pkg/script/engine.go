// Package script binds a JavaScript runtime to an inspector session, so
// trees can be built and edited from scripts and the REPL.
//
// Globals:
//
//	root()            the root node
//	selected()        the selected node
//	select(node)      change the selection
//	layout()          recompute the layout if the tree changed
//	print([node])     dump a subtree, default the selection
//	console.log/warn/error
//
// Node objects expose id, parent, children, style and layout, and the
// methods addChild(), remove(), resetStyle(), set(property, value),
// css(declarations) and select().
package script

import (
	"fmt"
	"io"

	"github.com/dop251/goja"
	"github.com/npillmayer/schuko/tracing"

	"boxscope/pkg/session"
	"boxscope/pkg/tree"
)

// tracer traces with key 'boxscope.script'.
func tracer() tracing.Trace {
	return tracing.Select("boxscope.script")
}

// Engine executes JavaScript against a session.
type Engine struct {
	vm    *goja.Runtime
	ctl   *session.Controller
	out   io.Writer
	nodes map[tree.NodeID]*goja.Object
}

// New creates an engine operating on the controller's session. Script
// output goes to out.
func New(ctl *session.Controller, out io.Writer) *Engine {
	e := &Engine{
		vm:    goja.New(),
		ctl:   ctl,
		out:   out,
		nodes: make(map[tree.NodeID]*goja.Object),
	}
	registerConsole(e.vm, out)
	e.registerGlobals()
	return e
}

// Run executes src and returns the string form of its completion value,
// empty for undefined. Failed operations inside the script raise
// exceptions; an uncaught one is returned as error.
func (e *Engine) Run(src string) (string, error) {
	v, err := e.vm.RunString(src)
	if err != nil {
		tracer().Infof("script failed: %v", err)
		return "", fmt.Errorf("script: %w", err)
	}
	if v == nil || goja.IsUndefined(v) || goja.IsNull(v) {
		return "", nil
	}
	return v.String(), nil
}

func (e *Engine) session() *session.Session {
	return e.ctl.Session
}

func (e *Engine) registerGlobals() {
	vm := e.vm
	vm.Set("root", func(goja.FunctionCall) goja.Value {
		return e.nodeProxy(e.session().Root())
	})
	vm.Set("selected", func(goja.FunctionCall) goja.Value {
		return e.nodeProxy(e.session().Selected())
	})
	vm.Set("select", func(call goja.FunctionCall) goja.Value {
		id := e.argNode(call, 0, "select")
		e.check(e.session().Select(id))
		return goja.Undefined()
	})
	vm.Set("layout", func(goja.FunctionCall) goja.Value {
		relaid, err := e.ctl.Layout()
		e.check(err)
		return vm.ToValue(relaid)
	})
	vm.Set("print", func(call goja.FunctionCall) goja.Value {
		id := e.session().Selected()
		if len(call.Arguments) > 0 {
			id = e.argNode(call, 0, "print")
		}
		e.session().Tree().Print(e.out, id)
		return goja.Undefined()
	})
}

// check raises err as a script exception.
func (e *Engine) check(err error) {
	if err != nil {
		panic(e.vm.NewGoError(err))
	}
}

func (e *Engine) argNode(call goja.FunctionCall, i int, fn string) tree.NodeID {
	if len(call.Arguments) <= i {
		panic(e.vm.NewTypeError(fmt.Sprintf("Failed to execute '%s': %d argument(s) required", fn, i+1)))
	}
	id, ok := e.unwrapNode(call.Arguments[i])
	if !ok {
		panic(e.vm.NewTypeError(fmt.Sprintf("Failed to execute '%s': parameter %d is not a node", fn, i+1)))
	}
	return id
}
