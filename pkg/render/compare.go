package render

import (
	"fmt"
	"image"
	"image/color"

	"github.com/fogleman/gg"
)

// CompareResult reports the outcome of a pixel comparison.
type CompareResult struct {
	DifferentPixels int
	TotalPixels     int
	MaxDifference   int         // Largest channel difference, 0-255
	Diff            *image.RGBA // Differences in red over a gray copy, if requested
}

// Match is true if no pixel differed beyond the tolerance.
func (r CompareResult) Match() bool {
	return r.DifferentPixels == 0
}

// CompareOptions configures Compare.
type CompareOptions struct {
	Tolerance int  // Allowed difference per color channel, 0-255
	Diff      bool // Produce a diff image
}

// Compare compares two images of equal bounds pixel by pixel.
func Compare(actual, expected image.Image, opts CompareOptions) (CompareResult, error) {
	bounds := actual.Bounds()
	if bounds != expected.Bounds() {
		return CompareResult{}, fmt.Errorf("image bounds differ: %v vs %v", bounds, expected.Bounds())
	}
	res := CompareResult{TotalPixels: bounds.Dx() * bounds.Dy()}
	if opts.Diff {
		res.Diff = image.NewRGBA(bounds)
	}
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			a := color.NRGBAModel.Convert(actual.At(x, y)).(color.NRGBA)
			e := color.NRGBAModel.Convert(expected.At(x, y)).(color.NRGBA)
			d := max(channelDiff(a.R, e.R), channelDiff(a.G, e.G), channelDiff(a.B, e.B), channelDiff(a.A, e.A))
			res.MaxDifference = max(res.MaxDifference, d)
			if d > opts.Tolerance {
				res.DifferentPixels++
				if res.Diff != nil {
					res.Diff.Set(x, y, color.RGBA{255, 0, 0, 255})
				}
			} else if res.Diff != nil {
				g := uint8((int(a.R) + int(a.G) + int(a.B)) / 3)
				res.Diff.Set(x, y, color.RGBA{g, g, g, 255})
			}
		}
	}
	return res, nil
}

func channelDiff(a, b uint8) int {
	if a > b {
		return int(a - b)
	}
	return int(b - a)
}

// LoadPNG reads a PNG file.
func LoadPNG(path string) (image.Image, error) {
	img, err := gg.LoadPNG(path)
	if err != nil {
		return nil, fmt.Errorf("loading %s: %w", path, err)
	}
	return img, nil
}
