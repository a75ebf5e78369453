package script

import (
	"slices"

	"github.com/dop251/goja"

	"boxscope/pkg/tree"
)

// nodeProxy creates (or retrieves from cache) the object wrapping a node,
// so the same node always maps to the same object and === works.
func (e *Engine) nodeProxy(id tree.NodeID) goja.Value {
	if o, ok := e.nodes[id]; ok {
		return o
	}
	o := e.vm.NewDynamicObject(&nodeAccessor{e: e, id: id})
	e.nodes[id] = o
	return o
}

// unwrapNode extracts the node handle from a node object.
func (e *Engine) unwrapNode(v goja.Value) (tree.NodeID, bool) {
	if v == nil || goja.IsNull(v) || goja.IsUndefined(v) {
		return tree.NodeID{}, false
	}
	obj := v.ToObject(e.vm)
	for id, o := range e.nodes {
		if o.SameAs(obj) {
			return id, true
		}
	}
	return tree.NodeID{}, false
}

var nodeKeys = []string{
	"id", "alive", "parent", "children", "style", "layout",
	"addChild", "remove", "resetStyle", "set", "css", "select", "toString",
}

// nodeAccessor implements goja.DynamicObject for node objects. Reading
// layout of a changed tree raises an exception until layout() ran.
type nodeAccessor struct {
	e  *Engine
	id tree.NodeID
}

func (n *nodeAccessor) Get(key string) goja.Value {
	e, vm := n.e, n.e.vm
	t := e.session().Tree()
	switch key {
	case "id":
		return vm.ToValue(n.id.String())
	case "alive":
		return vm.ToValue(t.Contains(n.id))
	case "parent":
		p, ok := t.Parent(n.id)
		if !ok {
			return goja.Null()
		}
		return e.nodeProxy(p)
	case "children":
		kids := t.Children(n.id)
		items := make([]interface{}, len(kids))
		for i, k := range kids {
			items[i] = e.nodeProxy(k)
		}
		return vm.NewArray(items...)
	case "style":
		st, err := t.Style(n.id)
		e.check(err)
		return vm.ToValue(st.Summary())
	case "layout":
		l, err := t.Layout(n.id)
		e.check(err)
		obj := vm.NewObject()
		obj.Set("x", l.Location.X)
		obj.Set("y", l.Location.Y)
		obj.Set("width", l.Size.Width)
		obj.Set("height", l.Size.Height)
		obj.Set("order", l.Order)
		return obj
	case "addChild":
		return vm.ToValue(func(goja.FunctionCall) goja.Value {
			id, err := e.session().AddChildTo(n.id)
			e.check(err)
			return e.nodeProxy(id)
		})
	case "remove":
		return vm.ToValue(func(goja.FunctionCall) goja.Value {
			e.check(e.session().Remove(n.id))
			return goja.Undefined()
		})
	case "resetStyle":
		return vm.ToValue(func(goja.FunctionCall) goja.Value {
			e.check(e.session().ResetStyle(n.id))
			return goja.Undefined()
		})
	case "set":
		return vm.ToValue(func(call goja.FunctionCall) goja.Value {
			if len(call.Arguments) < 2 {
				panic(vm.NewTypeError("Failed to execute 'set': 2 arguments required"))
			}
			e.check(e.session().SetProperty(n.id, call.Arguments[0].String(), call.Arguments[1].String()))
			return goja.Undefined()
		})
	case "css":
		return vm.ToValue(func(call goja.FunctionCall) goja.Value {
			if len(call.Arguments) < 1 {
				panic(vm.NewTypeError("Failed to execute 'css': 1 argument required"))
			}
			e.check(e.session().ApplyStyle(n.id, call.Arguments[0].String()))
			return goja.Undefined()
		})
	case "select":
		return vm.ToValue(func(goja.FunctionCall) goja.Value {
			e.check(e.session().Select(n.id))
			return goja.Undefined()
		})
	case "toString":
		return vm.ToValue(func(goja.FunctionCall) goja.Value {
			return vm.ToValue("node " + n.id.String())
		})
	}
	return goja.Undefined()
}

func (n *nodeAccessor) Set(key string, val goja.Value) bool {
	return false
}

func (n *nodeAccessor) Has(key string) bool {
	return slices.Contains(nodeKeys, key)
}

func (n *nodeAccessor) Delete(key string) bool {
	return false
}

func (n *nodeAccessor) Keys() []string {
	return nodeKeys
}
