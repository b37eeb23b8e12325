package emojimosaic

import (
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"math"
	"os"
	"path/filepath"
	"strings"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
	"golang.org/x/sync/errgroup"
)

// TwemojiTileDir is where a twemoji checkout keeps its 72x72 PNG tiles
const TwemojiTileDir = "assets/72x72"

// PaletteEntry pairs a tile's average color with the glyph its filename names
type PaletteEntry struct {
	Color Color
	Glyph Glyph
	Name  string // tile filename the entry was built from
}

// Palette is an ordered list of entries. Order decides ties in Nearest.
type Palette []PaletteEntry

// Nearest returns the entry with the smallest Manhattan distance to c. When
// several entries share that distance the earliest one wins. ok is false
// only for an empty palette.
func (p Palette) Nearest(c Color) (entry PaletteEntry, ok bool) {
	best := -1
	bestDist := uint32(math.MaxUint32)
	for i := range p {
		if d := c.Distance(p[i].Color); d < bestDist {
			best, bestDist = i, d
		}
	}
	if best < 0 {
		return PaletteEntry{}, false
	}
	return p[best], true
}

// SupportedImageFunc decides from a file extension (".png") whether a file
// is a tile. A nil filter accepts every regular file.
type SupportedImageFunc func(ext string) bool

// ImageExtensions accepts the formats registered by this package
func ImageExtensions(ext string) bool {
	switch strings.ToLower(ext) {
	case ".png", ".jpg", ".jpeg", ".gif", ".webp", ".bmp", ".tif", ".tiff":
		return true
	default:
		return false
	}
}

// PaletteOptions configures BuildPalette
type PaletteOptions struct {
	// Filter selects which directory entries are tiles. nil means all files.
	Filter SupportedImageFunc
	// Workers is the number of tiles decoded concurrently. Values < 2 decode
	// one tile at a time.
	Workers int
	// Progress receives (tiles processed, tiles total)
	Progress Progress
}

// ResolveTileDir returns dir/assets/72x72 when dir is a twemoji checkout and
// dir otherwise.
func ResolveTileDir(dir string) string {
	nested := filepath.Join(dir, filepath.FromSlash(TwemojiTileDir))
	if info, err := os.Stat(nested); err == nil && info.IsDir() {
		return nested
	}
	return dir
}

// BuildPalette scans dir and returns one entry per tile whose name encodes
// fewer than MaxCodepoints codepoints, in directory order. Any unreadable
// tile, undecodable tile or malformed name aborts the build.
func BuildPalette(dir string, opts *PaletteOptions) (Palette, error) {
	if opts == nil {
		opts = &PaletteOptions{}
	}

	files, err := listTiles(dir, opts.Filter)
	if err != nil {
		return nil, err
	}

	progress := newReporter(opts.Progress, StagePalette, len(files))
	entries := make([]*PaletteEntry, len(files))

	load := func(i int) error {
		entry, err := loadTile(filepath.Join(dir, files[i]))
		if err != nil {
			return err
		}
		entries[i] = entry
		progress.add(1)
		return nil
	}

	if opts.Workers < 2 {
		for i := range files {
			if err := load(i); err != nil {
				return nil, err
			}
		}
	} else {
		var g errgroup.Group
		g.SetLimit(opts.Workers)
		for i := range files {
			g.Go(func() error { return load(i) })
		}
		if err := g.Wait(); err != nil {
			return nil, err
		}
	}

	palette := make(Palette, 0, len(files))
	for _, e := range entries {
		if e != nil {
			palette = append(palette, *e)
		}
	}
	return palette, nil
}

// listTiles returns the sorted names of the regular files in dir accepted by
// filter
func listTiles(dir string, filter SupportedImageFunc) ([]string, error) {
	dirEntries, err := os.ReadDir(dir)
	if err != nil {
		return nil, newError(KindIO, "read tile directory", dir, err)
	}
	files := make([]string, 0, len(dirEntries))
	for _, de := range dirEntries {
		if de.IsDir() {
			continue
		}
		if filter != nil && !filter(filepath.Ext(de.Name())) {
			continue
		}
		files = append(files, de.Name())
	}
	return files, nil
}

// loadTile decodes one tile. It returns a nil entry without error for tiles
// excluded by the codepoint limit.
func loadTile(path string) (*PaletteEntry, error) {
	name := filepath.Base(path)
	glyph, count, err := ParseGlyph(name)
	if err != nil {
		return nil, err
	}

	img, err := decodeFile(path, "decode tile")
	if err != nil {
		return nil, err
	}

	if count >= MaxCodepoints {
		return nil, nil
	}
	return &PaletteEntry{Color: AverageColor(img), Glyph: glyph, Name: name}, nil
}

// decodeFile opens and decodes an image, classifying failures as KindIO or
// KindDecode
func decodeFile(path, op string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, newError(KindIO, op, path, err)
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, newError(KindDecode, op, path, fmt.Errorf("failed to decode image: %w", err))
	}
	return img, nil
}
