package emojimosaic

import (
	"bytes"
	"errors"
	"image/png"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFluentRender(t *testing.T) {
	palette := Palette{
		{Color: NewColor(255, 0, 0), Glyph: "R"},
		{Color: NewColor(0, 0, 255), Glyph: "B"},
	}

	path := filepath.Join(t.TempDir(), "red.png")
	writePNG(t, path, solidImage(32, 32, red))

	m, err := Open(path)
	require.NoError(t, err)
	grid, err := m.Size(6, 3).Palette(palette).Indexed(true).Workers(2).Render()
	require.NoError(t, err)
	assert.Equal(t, "RRRRRR\nRRRRRR\nRRRRRR", grid.String())

	blocks, err := m.Width(2).Height(4).Blocks(3)
	require.NoError(t, err)
	assert.Equal(t, []string{"RR\nRR\nRR", "RR"}, blocks)
}

func TestFluentDefaults(t *testing.T) {
	grid, err := Render(createTestImage(80, 80), nil)
	require.NoError(t, err)
	assert.Equal(t, DefaultWidth, grid.Width())
	assert.Equal(t, DefaultHeight, grid.Height())
	assert.Equal(t, strings.Repeat("0", DefaultWidth), grid.Lines()[0])
}

func TestFrom(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, solidImage(8, 8, blue)))

	grid, err := From(&buf).Size(2, 2).Palette(Palette{{Color: NewColor(0, 0, 255), Glyph: "B"}}).Render()
	require.NoError(t, err)
	assert.Equal(t, "BB\nBB", grid.String())

	_, err = From(strings.NewReader("garbage")).Render()
	assert.True(t, errors.Is(err, ErrDecode))
}

func TestFluentErrors(t *testing.T) {
	assert.Nil(t, New(nil))
	assert.Nil(t, From(nil))

	_, err := Open("")
	assert.Error(t, err)

	_, err = RenderFile(filepath.Join(t.TempDir(), "missing.png"), nil)
	assert.True(t, errors.Is(err, ErrIO))

	_, err = Render(nil, nil)
	assert.Error(t, err)
}
