package emojimosaic

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPaletteCache(t *testing.T) {
	palette, err := BuildPalette(createTileDir(t), nil)
	require.NoError(t, err)

	for _, name := range []string{"palette.json", "palette.gob"} {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), name)
			require.NoError(t, SavePalette(path, palette))

			loaded, err := LoadPalette(path)
			require.NoError(t, err)
			assert.Equal(t, palette, loaded)
		})
	}
}

func TestLoadPaletteErrors(t *testing.T) {
	dir := t.TempDir()

	_, err := LoadPalette(filepath.Join(dir, "missing.json"))
	assert.True(t, errors.Is(err, ErrIO))

	tests := []struct {
		name    string
		content string
	}{
		{name: "garbage", content: "{"},
		{name: "version", content: `{"version":"0","entries":[]}`},
		{name: "bad color", content: `{"version":"1","entries":[{"color":"red","glyph":"x"}]}`},
		{name: "empty glyph", content: `{"version":"1","entries":[{"color":"#ff0000","glyph":""}]}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(dir, tt.name+".json")
			require.NoError(t, os.WriteFile(path, []byte(tt.content), 0o644))
			_, err := LoadPalette(path)
			assert.True(t, errors.Is(err, ErrDecode), "got %v", err)
		})
	}
}
