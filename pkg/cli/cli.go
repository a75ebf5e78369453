// Package cli holds the setup shared by the boxscope binaries.
package cli

import (
	"fmt"
	"io"
	"os"
	"runtime/debug"

	"github.com/npillmayer/schuko/schukonf/testconfig"
	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/schuko/tracing/gologadapter"
	"github.com/npillmayer/schuko/tracing/trace2go"

	"boxscope/pkg/script"
	"boxscope/pkg/session"
)

// TraceKeys lists the tracers of all boxscope packages.
var TraceKeys = []string{
	"boxscope.tree",
	"boxscope.layout",
	"boxscope.hittest",
	"boxscope.render",
	"boxscope.session",
	"boxscope.script",
	"boxscope.cli",
}

// tracer traces with key 'boxscope.cli'.
func tracer() tracing.Trace {
	return tracing.Select("boxscope.cli")
}

// SetupTracing routes all tracers to the Go log package at the given level
// ("Debug", "Info" or "Error").
func SetupTracing(level string) error {
	tracing.RegisterTraceAdapter("go", gologadapter.GetAdapter(), false)
	conf := testconfig.Conf{
		"tracing.adapter": "go",
	}
	for _, key := range TraceKeys {
		conf["trace."+key] = level
	}
	if err := trace2go.ConfigureRoot(conf, "trace", trace2go.ReplaceTracers(true)); err != nil {
		return fmt.Errorf("configuring tracing: %w", err)
	}
	tracing.SetTraceSelector(trace2go.Selector())
	lvl := tracing.TraceLevelFromString(level)
	for _, key := range TraceKeys {
		tracing.Select(key).SetTraceLevel(lvl)
	}
	return nil
}

// Version returns override when set (from -ldflags), else the VCS revision
// the binary was built from.
func Version(override string) string {
	if override != "" {
		return override
	}
	info, ok := debug.ReadBuildInfo()
	if !ok {
		return "unknown"
	}
	for _, s := range info.Settings {
		if s.Key == "vcs.revision" {
			if len(s.Value) > 12 {
				return s.Value[:12]
			}
			return s.Value
		}
	}
	return "devel"
}

// RunScriptFile executes a script file against the controller's session.
func RunScriptFile(ctl *session.Controller, path string, out io.Writer) error {
	src, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	tracer().Infof("running script %s", path)
	if _, err := script.New(ctl, out).Run(string(src)); err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	return nil
}
