package script

import (
	"fmt"
	"io"
	"strings"

	"github.com/dop251/goja"
)

// registerConsole installs console.log, console.warn and console.error,
// all writing to out. Warnings and errors carry a level prefix.
func registerConsole(vm *goja.Runtime, out io.Writer) {
	console := vm.NewObject()
	for _, level := range []string{"log", "warn", "error"} {
		console.Set(level, consoleFn(out, level))
	}
	vm.Set("console", console)
}

func consoleFn(out io.Writer, level string) func(goja.FunctionCall) goja.Value {
	prefix := ""
	if level != "log" {
		prefix = strings.ToUpper(level) + ": "
	}
	return func(call goja.FunctionCall) goja.Value {
		parts := make([]string, len(call.Arguments))
		for i, arg := range call.Arguments {
			parts[i] = arg.String()
		}
		fmt.Fprintln(out, prefix+strings.Join(parts, " "))
		return goja.Undefined()
	}
}
