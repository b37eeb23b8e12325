package emojimosaic

import (
	"fmt"
	"image"
	"sort"
	"strings"

	"github.com/disintegration/imaging"
	"github.com/nfnt/resize"
)

// DefaultFilter is the resampling filter used when none is configured
const DefaultFilter = "gaussian"

// Resizer scales an image to exactly width x height pixels
type Resizer interface {
	Resize(img image.Image, width, height int) image.Image
}

// ImagingResizer resizes with a disintegration/imaging resample filter
type ImagingResizer struct {
	Filter imaging.ResampleFilter
}

// Resize ignores the aspect ratio of img
func (r ImagingResizer) Resize(img image.Image, width, height int) image.Image {
	return imaging.Resize(img, width, height, r.Filter)
}

// NfntResizer resizes with an nfnt/resize interpolation function
type NfntResizer struct {
	InterP resize.InterpolationFunction
}

// Resize ignores the aspect ratio of img
func (r NfntResizer) Resize(img image.Image, width, height int) image.Image {
	return resize.Resize(uint(width), uint(height), img, r.InterP)
}

// GaussianResizer averages contributing source pixels with a Gaussian kernel
var GaussianResizer Resizer = ImagingResizer{Filter: imaging.Gaussian}

var resizers = map[string]Resizer{
	"gaussian":   GaussianResizer,
	"box":        ImagingResizer{Filter: imaging.Box},
	"linear":     ImagingResizer{Filter: imaging.Linear},
	"catmullrom": ImagingResizer{Filter: imaging.CatmullRom},
	"lanczos":    ImagingResizer{Filter: imaging.Lanczos},
	"nearest":    ImagingResizer{Filter: imaging.NearestNeighbor},
	"bilinear":   NfntResizer{InterP: resize.Bilinear},
	"bicubic":    NfntResizer{InterP: resize.Bicubic},
	"mitchell":   NfntResizer{InterP: resize.MitchellNetravali},
	"lanczos3":   NfntResizer{InterP: resize.Lanczos3},
}

// ResizerByName returns the resizer registered under name (case-insensitive).
// An empty name selects DefaultFilter.
func ResizerByName(name string) (Resizer, error) {
	if name == "" {
		name = DefaultFilter
	}
	r, ok := resizers[strings.ToLower(name)]
	if !ok {
		return nil, newError(KindConfig, "select filter", "",
			fmt.Errorf("unknown filter %q (available: %s)", name, strings.Join(FilterNames(), ", ")))
	}
	return r, nil
}

// FilterNames lists the names accepted by ResizerByName
func FilterNames() []string {
	names := make([]string, 0, len(resizers))
	for name := range resizers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
