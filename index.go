package emojimosaic

import "math"

const (
	bucketBits  = 5 // 32 channel values per bucket
	bucketSide  = 256 >> bucketBits
	bucketWidth = 1 << bucketBits
)

// Matcher selects the palette entry closest to a color
type Matcher interface {
	Nearest(c Color) (PaletteEntry, bool)
}

// Index is a read-only bucket grid over quantized RGB. Its Nearest returns
// exactly what Palette.Nearest returns, ties included.
type Index struct {
	palette Palette
	buckets [bucketSide * bucketSide * bucketSide][]int32
}

// Index builds a bucket grid over p. The palette must not be modified while
// the index is in use.
func (p Palette) Index() *Index {
	idx := &Index{palette: p}
	for i, e := range p {
		b := bucketOf(e.Color)
		idx.buckets[b] = append(idx.buckets[b], int32(i))
	}
	return idx
}

func bucketOf(c Color) int {
	return bucketID(int(c.R>>bucketBits), int(c.G>>bucketBits), int(c.B>>bucketBits))
}

func bucketID(r, g, b int) int {
	return r + bucketSide*g + bucketSide*bucketSide*b
}

// Nearest searches buckets in growing Chebyshev shells around c. After shell
// s every unvisited entry is at least s*bucketWidth+1 away, so the search
// stops once the best distance is below that bound.
func (idx *Index) Nearest(c Color) (PaletteEntry, bool) {
	if len(idx.palette) == 0 {
		return PaletteEntry{}, false
	}

	cr, cg, cb := int(c.R>>bucketBits), int(c.G>>bucketBits), int(c.B>>bucketBits)
	best := int32(-1)
	bestDist := uint32(math.MaxUint32)

	for s := 0; s < bucketSide; s++ {
		for r := max(cr-s, 0); r <= min(cr+s, bucketSide-1); r++ {
			for g := max(cg-s, 0); g <= min(cg+s, bucketSide-1); g++ {
				for b := max(cb-s, 0); b <= min(cb+s, bucketSide-1); b++ {
					if max(abs(r-cr), abs(g-cg), abs(b-cb)) != s {
						continue
					}
					for _, i := range idx.buckets[bucketID(r, g, b)] {
						d := c.Distance(idx.palette[i].Color)
						if d < bestDist || (d == bestDist && i < best) {
							best, bestDist = i, d
						}
					}
				}
			}
		}
		if best >= 0 && bestDist <= uint32(s*bucketWidth) {
			break
		}
	}

	return idx.palette[best], true
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
