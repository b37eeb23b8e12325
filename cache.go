package emojimosaic

import (
	"encoding/gob"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// CacheVersion is written into every palette cache file. Files with another
// version are rejected.
const CacheVersion = "1"

// paletteFile is the on-disk form of a Palette
type paletteFile struct {
	Version string        `json:"version"`
	Entries []cachedEntry `json:"entries"`
}

type cachedEntry struct {
	Color string `json:"color"` // "#rrggbb"
	Glyph string `json:"glyph"`
	Name  string `json:"name,omitempty"`
}

// SavePalette writes p to path. The encoding is gob for a ".gob" extension
// and JSON otherwise.
func SavePalette(path string, p Palette) error {
	pf := paletteFile{Version: CacheVersion, Entries: make([]cachedEntry, len(p))}
	for i, e := range p {
		pf.Entries[i] = cachedEntry{Color: e.Color.Hex(), Glyph: string(e.Glyph), Name: e.Name}
	}

	f, err := os.Create(path)
	if err != nil {
		return newError(KindIO, "write palette cache", path, err)
	}
	defer f.Close()

	if isGob(path) {
		err = gob.NewEncoder(f).Encode(&pf)
	} else {
		enc := json.NewEncoder(f)
		enc.SetIndent("", "  ")
		err = enc.Encode(&pf)
	}
	if err != nil {
		return newError(KindIO, "write palette cache", path, err)
	}
	return nil
}

// LoadPalette reads a palette written by SavePalette
func LoadPalette(path string) (Palette, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, newError(KindIO, "read palette cache", path, err)
	}
	defer f.Close()

	var pf paletteFile
	if isGob(path) {
		err = gob.NewDecoder(f).Decode(&pf)
	} else {
		err = json.NewDecoder(f).Decode(&pf)
	}
	if err != nil {
		return nil, newError(KindDecode, "read palette cache", path, err)
	}
	if pf.Version != CacheVersion {
		return nil, newError(KindDecode, "read palette cache", path,
			fmt.Errorf("unsupported cache version %q", pf.Version))
	}

	p := make(Palette, len(pf.Entries))
	for i, ce := range pf.Entries {
		c, err := ParseHex(ce.Color)
		if err != nil {
			return nil, newError(KindDecode, "read palette cache", path, fmt.Errorf("entry %d: %w", i, err))
		}
		if ce.Glyph == "" {
			return nil, newError(KindDecode, "read palette cache", path, fmt.Errorf("entry %d: empty glyph", i))
		}
		p[i] = PaletteEntry{Color: c, Glyph: Glyph(ce.Glyph), Name: ce.Name}
	}
	return p, nil
}

func isGob(path string) bool {
	return strings.ToLower(filepath.Ext(path)) == ".gob"
}
