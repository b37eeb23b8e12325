package emojimosaic

import (
	"fmt"
	"image"
	"io"
)

// Mosaic is a source image with a fluent API for conversion settings
type Mosaic struct {
	source image.Image
	reader io.Reader
	path   string

	width   int
	height  int
	palette Palette
	opts    GenerateOptions
	indexed bool
}

// New creates a Mosaic from an image.Image
func New(img image.Image) *Mosaic {
	if img == nil {
		return nil
	}
	return &Mosaic{
		source: img,
		width:  DefaultWidth,
		height: DefaultHeight,
	}
}

// Open creates a Mosaic from a file path. The file is decoded on Render.
func Open(path string) (*Mosaic, error) {
	if path == "" {
		return nil, fmt.Errorf("path cannot be empty")
	}
	return &Mosaic{
		path:   path,
		width:  DefaultWidth,
		height: DefaultHeight,
	}, nil
}

// From creates a Mosaic from an io.Reader
func From(r io.Reader) *Mosaic {
	if r == nil {
		return nil
	}
	return &Mosaic{
		reader: r,
		width:  DefaultWidth,
		height: DefaultHeight,
	}
}

// Width sets the grid width in cells
func (m *Mosaic) Width(w int) *Mosaic {
	m.width = w
	return m
}

// Height sets the grid height in cells
func (m *Mosaic) Height(h int) *Mosaic {
	m.height = h
	return m
}

// Size sets both grid dimensions
func (m *Mosaic) Size(w, h int) *Mosaic {
	m.width = w
	m.height = h
	return m
}

// Palette sets the palette to match against
func (m *Mosaic) Palette(p Palette) *Mosaic {
	m.palette = p
	return m
}

// Resizer sets the resampling used before matching
func (m *Mosaic) Resizer(r Resizer) *Mosaic {
	m.opts.Resizer = r
	return m
}

// Fallback sets the glyph used when the palette is empty
func (m *Mosaic) Fallback(g Glyph) *Mosaic {
	m.opts.Fallback = g
	return m
}

// Workers sets the number of rows converted concurrently
func (m *Mosaic) Workers(n int) *Mosaic {
	m.opts.Workers = n
	return m
}

// Indexed switches nearest-color lookup to a bucket index over the palette
func (m *Mosaic) Indexed(v bool) *Mosaic {
	m.indexed = v
	return m
}

// Progress sets the observer for conversion progress
func (m *Mosaic) Progress(p Progress) *Mosaic {
	m.opts.Progress = p
	return m
}

// Image returns the decoded source
func (m *Mosaic) Image() (image.Image, error) {
	return m.loadImage()
}

// Render converts the source into a Grid
func (m *Mosaic) Render() (*Grid, error) {
	img, err := m.loadImage()
	if err != nil {
		return nil, err
	}
	opts := m.opts
	if m.indexed {
		opts.Matcher = m.palette.Index()
	}
	return Generate(img, m.width, m.height, m.palette, &opts)
}

// Blocks renders and chunks the grid into blocks of rows lines
func (m *Mosaic) Blocks(rows int) ([]string, error) {
	grid, err := m.Render()
	if err != nil {
		return nil, err
	}
	return Blocks(grid, rows), nil
}

// loadImage loads the image from the configured source
func (m *Mosaic) loadImage() (image.Image, error) {
	if m.source != nil {
		return m.source, nil
	}

	if m.path != "" {
		img, err := decodeFile(m.path, "decode image")
		if err != nil {
			return nil, err
		}
		m.source = img
		return img, nil
	}

	if m.reader != nil {
		img, _, err := image.Decode(m.reader)
		if err != nil {
			return nil, newError(KindDecode, "decode image", "", fmt.Errorf("failed to decode image: %w", err))
		}
		m.source = img
		return img, nil
	}

	return nil, fmt.Errorf("no image source configured")
}

// Convenience functions for quick conversion

// Render converts img with a 40x40 grid
func Render(img image.Image, p Palette) (*Grid, error) {
	if img == nil {
		return nil, fmt.Errorf("image cannot be nil")
	}
	return New(img).Palette(p).Render()
}

// RenderFile converts the image at path with a 40x40 grid
func RenderFile(path string, p Palette) (*Grid, error) {
	m, err := Open(path)
	if err != nil {
		return nil, err
	}
	return m.Palette(p).Render()
}
