package emojimosaic

import (
	"fmt"
	"path/filepath"
	"strconv"
	"strings"
	"unicode/utf8"
)

// Glyph is the text emitted for one mosaic cell
type Glyph string

const (
	// MaxCodepoints is the exclusive upper bound on codepoints per tile.
	// Tiles whose filename encodes this many codepoints or more are left out
	// of the palette.
	MaxCodepoints = 3

	// DefaultFallback is emitted for every cell when the palette is empty
	DefaultFallback Glyph = "0"
)

// ParseGlyph decodes a tile filename such as "1f1fa-1f1f8.png" into the
// glyph it names. The extension is stripped, the stem split on '-', and each
// segment read as a base-16 codepoint. It returns the glyph and the number
// of codepoints it holds.
func ParseGlyph(filename string) (Glyph, int, error) {
	base := filepath.Base(filename)
	stem := strings.TrimSuffix(base, filepath.Ext(base))
	if stem == "" {
		return "", 0, newError(KindFormat, "parse tile name", filename, fmt.Errorf("empty name"))
	}

	var sb strings.Builder
	segments := strings.Split(stem, "-")
	for _, seg := range segments {
		cp, err := strconv.ParseUint(seg, 16, 32)
		if err != nil {
			return "", 0, newError(KindFormat, "parse tile name", filename, fmt.Errorf("segment %q: %w", seg, err))
		}
		r := rune(cp)
		if !utf8.ValidRune(r) {
			return "", 0, newError(KindFormat, "parse tile name", filename, fmt.Errorf("segment %q: U+%X is not a valid codepoint", seg, cp))
		}
		sb.WriteRune(r)
	}

	return Glyph(sb.String()), len(segments), nil
}
