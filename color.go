package emojimosaic

import (
	"image"
	"image/color"

	"github.com/lucasb-eyer/go-colorful"
)

// Color is an 8-bit per channel RGB color without alpha
type Color struct {
	R, G, B uint8
}

// NewColor returns the color with the given channels
func NewColor(r, g, b uint8) Color {
	return Color{R: r, G: g, B: b}
}

// ColorOf converts c to a Color using its non-premultiplied channels. Alpha
// is dropped.
func ColorOf(c color.Color) Color {
	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	return Color{R: n.R, G: n.G, B: n.B}
}

// Distance returns the Manhattan distance |r1-r2| + |g1-g2| + |b1-b2|
func (c Color) Distance(other Color) uint32 {
	return absDiff(c.R, other.R) + absDiff(c.G, other.G) + absDiff(c.B, other.B)
}

// Hex returns the color as "#rrggbb"
func (c Color) Hex() string {
	return colorful.Color{
		R: float64(c.R) / 255,
		G: float64(c.G) / 255,
		B: float64(c.B) / 255,
	}.Hex()
}

func (c Color) String() string {
	return c.Hex()
}

// ParseHex parses "#rrggbb"
func ParseHex(s string) (Color, error) {
	cf, err := colorful.Hex(s)
	if err != nil {
		return Color{}, err
	}
	r, g, b := cf.RGB255()
	return Color{R: r, G: g, B: b}, nil
}

func absDiff(a, b uint8) uint32 {
	if a > b {
		return uint32(a - b)
	}
	return uint32(b - a)
}

// AverageColor returns the per-channel arithmetic mean over all pixels of
// img, truncated toward zero. Alpha is ignored. An empty image averages to
// black.
func AverageColor(img image.Image) Color {
	bounds := img.Bounds()
	if bounds.Empty() {
		return Color{}
	}

	var r, g, b uint64
	numPixels := uint64(bounds.Dx()) * uint64(bounds.Dy())

	// Fast path for the layout the png decoder produces for tiles with alpha
	if nrgba, ok := img.(*image.NRGBA); ok {
		for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
			row := nrgba.Pix[nrgba.PixOffset(bounds.Min.X, y):nrgba.PixOffset(bounds.Max.X, y)]
			for i := 0; i < len(row); i += 4 {
				r += uint64(row[i])
				g += uint64(row[i+1])
				b += uint64(row[i+2])
			}
		}
	} else {
		for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
			for x := bounds.Min.X; x < bounds.Max.X; x++ {
				c := ColorOf(img.At(x, y))
				r += uint64(c.R)
				g += uint64(c.G)
				b += uint64(c.B)
			}
		}
	}

	return Color{
		R: uint8(r / numPixels),
		G: uint8(g / numPixels),
		B: uint8(b / numPixels),
	}
}
