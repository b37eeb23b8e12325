package emojimosaic

import (
	"image"
	"os"

	"github.com/charmbracelet/x/mosaic"
	"golang.org/x/term"
)

// Preview renders img with unicode halfblocks at width x height character
// cells, so the source can be checked in a terminal before it is converted.
// Zero dimensions fall back to the terminal size, or 80x24 when stdout is not
// a terminal.
func Preview(img image.Image, width, height int) string {
	if width <= 0 || height <= 0 {
		if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
			width, height = w, h
		} else {
			width, height = 80, 24
		}
	}
	// each cell covers a 2x2 pixel block
	m := mosaic.New().Width(width * 2).Height(height * 2)
	return m.Render(img)
}
