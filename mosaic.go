package emojimosaic

import (
	"fmt"
	"image"
	"strings"

	"golang.org/x/sync/errgroup"
)

// Default grid dimensions in cells
const (
	DefaultWidth  = 40
	DefaultHeight = 40
)

// Grid is a row-major width x height arrangement of glyphs
type Grid struct {
	width  int
	height int
	cells  []Glyph
}

// Width returns the number of cells per row
func (g *Grid) Width() int { return g.width }

// Height returns the number of rows
func (g *Grid) Height() int { return g.height }

// Cell returns the glyph at column x, row y
func (g *Grid) Cell(x, y int) Glyph {
	return g.cells[y*g.width+x]
}

// Row returns a copy of row y
func (g *Grid) Row(y int) []Glyph {
	row := make([]Glyph, g.width)
	copy(row, g.cells[y*g.width:(y+1)*g.width])
	return row
}

// Lines returns each row joined into one string
func (g *Grid) Lines() []string {
	lines := make([]string, g.height)
	var sb strings.Builder
	for y := range g.height {
		sb.Reset()
		for _, glyph := range g.cells[y*g.width : (y+1)*g.width] {
			sb.WriteString(string(glyph))
		}
		lines[y] = sb.String()
	}
	return lines
}

// String returns all rows separated by newlines
func (g *Grid) String() string {
	return strings.Join(g.Lines(), "\n")
}

// GenerateOptions configures Generate. The zero value uses the Gaussian
// resizer, a linear scan and DefaultFallback.
type GenerateOptions struct {
	Resizer  Resizer
	Matcher  Matcher // overrides the palette scan, e.g. palette.Index()
	Fallback Glyph   // emitted for every cell when nothing matches
	Workers  int     // rows converted concurrently; < 2 means sequential
	Progress Progress
}

// Generate resizes img to width x height pixels and replaces every pixel with
// the glyph of its nearest palette entry. An empty palette yields a grid of
// the fallback glyph.
func Generate(img image.Image, width, height int, palette Palette, opts *GenerateOptions) (*Grid, error) {
	if img == nil {
		return nil, newError(KindConfig, "generate mosaic", "", fmt.Errorf("image cannot be nil"))
	}
	if width < 1 || height < 1 {
		return nil, newError(KindConfig, "generate mosaic", "",
			fmt.Errorf("invalid grid size %dx%d", width, height))
	}
	if opts == nil {
		opts = &GenerateOptions{}
	}

	resizer := opts.Resizer
	if resizer == nil {
		resizer = GaussianResizer
	}
	var matcher Matcher = palette
	if opts.Matcher != nil {
		matcher = opts.Matcher
	}
	fallback := opts.Fallback
	if fallback == "" {
		fallback = DefaultFallback
	}

	resized := resizer.Resize(img, width, height)
	bounds := resized.Bounds()
	if bounds.Dx() != width || bounds.Dy() != height {
		return nil, newError(KindConfig, "generate mosaic", "",
			fmt.Errorf("resizer returned %dx%d, want %dx%d", bounds.Dx(), bounds.Dy(), width, height))
	}

	grid := &Grid{width: width, height: height, cells: make([]Glyph, width*height)}
	progress := newReporter(opts.Progress, StageMosaic, width*height)

	convertRow := func(y int) {
		row := grid.cells[y*width : (y+1)*width]
		for x := range width {
			c := ColorOf(resized.At(bounds.Min.X+x, bounds.Min.Y+y))
			if entry, ok := matcher.Nearest(c); ok {
				row[x] = entry.Glyph
			} else {
				row[x] = fallback
			}
			if opts.Workers < 2 {
				progress.add(1)
			}
		}
		if opts.Workers >= 2 {
			progress.add(width)
		}
	}

	if opts.Workers < 2 {
		for y := range height {
			convertRow(y)
		}
		return grid, nil
	}

	var g errgroup.Group
	g.SetLimit(opts.Workers)
	for y := range height {
		g.Go(func() error {
			convertRow(y)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return grid, nil
}
