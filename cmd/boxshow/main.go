// Command boxshow lays out the inspector's tree, optionally edited by a
// script, and renders its box model to a PNG file.
package main

import (
	"flag"
	"fmt"
	"image"
	"os"
	"path/filepath"
	"strings"

	"boxscope/pkg/cli"
	"boxscope/pkg/geom"
	"boxscope/pkg/render"
	"boxscope/pkg/session"
)

var version string

func main() {
	width := flag.Int("w", 700, "image width in pixels")
	height := flag.Int("h", 500, "image height in pixels")
	output := flag.String("o", "boxes.png", "output PNG file path")
	scriptFile := flag.String("script", "", "script to run against the tree before rendering")
	margin := flag.Float64("offset", 20, "distance of the root from the image corner")
	labels := flag.Bool("labels", true, "print node handles into content boxes")
	printTree := flag.Bool("print", false, "dump the tree after layout")
	palette := flag.String("palette", "", "color overrides, e.g. content=#00ff00,margin=#333")
	reference := flag.String("compare", "", "reference PNG to compare the rendering against")
	tolerance := flag.Int("tolerance", 2, "allowed difference per color channel when comparing")
	tlevel := flag.String("trace", "Error", "trace level [Debug|Info|Error]")
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: boxshow [flags]\n\nFlags:\n")
		flag.PrintDefaults()
	}
	flag.Parse()

	if err := cli.SetupTracing(*tlevel); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	fmt.Fprintf(os.Stderr, "boxshow %s\n", cli.Version(version))

	sess := session.New()
	ctl := session.NewController(sess)
	if err := setPalette(&ctl.Renderer.Palette, *palette); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if *scriptFile != "" {
		if err := cli.RunScriptFile(ctl, *scriptFile, os.Stdout); err != nil {
			fmt.Fprintf(os.Stderr, "Error running script: %v\n", err)
			os.Exit(1)
		}
	}
	if _, err := ctl.Layout(); err != nil {
		fmt.Fprintf(os.Stderr, "Error computing layout: %v\n", err)
		os.Exit(1)
	}
	if *printTree {
		sess.Tree().Print(os.Stdout, sess.Root())
	}

	opts := render.DefaultSnapshotOptions()
	opts.Labels = *labels
	opts.Offset = geom.Pt(*margin, *margin)
	img, err := ctl.Renderer.Snapshot(sess.Tree(), sess.Root(), sess.Selected(), *width, *height, opts)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error rendering: %v\n", err)
		os.Exit(1)
	}
	if err := render.SavePNG(*output, img); err != nil {
		fmt.Fprintf(os.Stderr, "Error saving PNG: %v\n", err)
		os.Exit(1)
	}
	fmt.Fprintf(os.Stderr, "Saved %dx%d to %s\n", *width, *height, *output)
	if *reference != "" {
		os.Exit(compare(img, *reference, *tolerance, *output))
	}
}

func setPalette(p *render.Palette, overrides string) error {
	if overrides == "" {
		return nil
	}
	for _, item := range strings.Split(overrides, ",") {
		layer, hex, ok := strings.Cut(item, "=")
		if !ok {
			return fmt.Errorf("palette entry %q is not layer=color", item)
		}
		if err := p.Set(strings.TrimSpace(layer), strings.TrimSpace(hex)); err != nil {
			return err
		}
	}
	return nil
}

// compare checks the rendering against a reference image and writes a diff
// image next to the output on mismatch. It returns the exit code.
func compare(img image.Image, reference string, tolerance int, output string) int {
	want, err := render.LoadPNG(reference)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading reference: %v\n", err)
		return 1
	}
	res, err := render.Compare(img, want, render.CompareOptions{Tolerance: tolerance, Diff: true})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error comparing: %v\n", err)
		return 1
	}
	if res.Match() {
		fmt.Fprintf(os.Stderr, "Matches %s (max channel difference %d)\n", reference, res.MaxDifference)
		return 0
	}
	diffPath := strings.TrimSuffix(output, filepath.Ext(output)) + "-diff.png"
	if err := render.SavePNG(diffPath, res.Diff); err != nil {
		fmt.Fprintf(os.Stderr, "Error saving diff: %v\n", err)
	}
	fmt.Fprintf(os.Stderr, "%d of %d pixels differ from %s, see %s\n",
		res.DifferentPixels, res.TotalPixels, reference, diffPath)
	return 2
}
