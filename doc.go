/*
Package emojimosaic turns a raster image into a text mosaic of emoji, each
cell chosen to approximate the color of the image region it replaces.

A palette is built once from a directory of small tile images named by their
hexadecimal codepoints (twemoji's assets/72x72 layout: "1f600.png",
"1f1fa-1f1f8.png"). Each tile contributes its average color and the glyph its
name encodes; tiles naming three or more codepoints are left out. The source
image is then resized to the requested grid with a Gaussian filter and every
pixel is replaced by the glyph of the palette entry with the smallest
Manhattan RGB distance. Ties go to the earliest palette entry.

Basic Usage:

	palette, err := emojimosaic.BuildPalette("twemoji/assets/72x72", nil)
	if err != nil {
	    log.Fatal(err)
	}

	grid, err := emojimosaic.RenderFile("image.png", palette)
	if err != nil {
	    log.Fatal(err)
	}
	fmt.Println(grid)

Fluent API:

	m, _ := emojimosaic.Open("image.png")
	grid, err := m.Size(60, 30).
	    Palette(palette).
	    Indexed(true).
	    Workers(4).
	    Render()

Delivery:

	blocks := emojimosaic.Blocks(grid, emojimosaic.DefaultChunkRows)
	sink := emojimosaic.NewWebhookSink(url)
	_, err = emojimosaic.Deliver(ctx, sink, blocks, &emojimosaic.DeliverOptions{
	    Interval: emojimosaic.DefaultInterval,
	    Retries:  emojimosaic.DefaultRetries,
	})

Errors returned by the pipeline are *Error values; use errors.Is with ErrIO,
ErrDecode or ErrFormat to tell unreadable files, undecodable images and
malformed tile names apart.
*/
package emojimosaic
