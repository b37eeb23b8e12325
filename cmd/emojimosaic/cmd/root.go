/*
Copyright © 2024 blacktop

Permission is hereby granted, free of charge, to any person obtaining a copy
of this software and associated documentation files (the "Software"), to deal
in the Software without restriction, including without limitation the rights
to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
copies of the Software, and to permit persons to whom the Software is
furnished to do so, subject to the following conditions:

The above copyright notice and this permission notice shall be included in
all copies or substantial portions of the Software.

THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN
THE SOFTWARE.
*/
package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"

	"github.com/apex/log"
	clihander "github.com/apex/log/handlers/cli"
	emojimosaic "github.com/blacktop/go-emojimosaic"
	"github.com/spf13/cobra"
)

var (
	verbose    bool
	preview    bool
	rebuild    bool
	configPath string
	cfg        = emojimosaic.DefaultConfig()
)

func init() {
	log.SetHandler(clihander.Default)

	flags := rootCmd.Flags()
	flags.BoolVarP(&verbose, "verbose", "V", false, "Enable verbose logging")
	flags.StringVar(&configPath, "config", "", "TOML config file (flags override it)")
	flags.StringVarP(&cfg.TileDir, "tiles", "t", "", "Emoji tile directory or twemoji checkout")
	flags.IntVarP(&cfg.Width, "width", "W", cfg.Width, "Mosaic width in cells")
	flags.IntVarP(&cfg.Height, "height", "H", cfg.Height, "Mosaic height in cells")
	flags.StringVarP(&cfg.Filter, "filter", "f", cfg.Filter, "Resampling filter")
	flags.StringVar(&cfg.Fallback, "fallback", cfg.Fallback, "Glyph used when the palette is empty")
	flags.IntVarP(&cfg.Workers, "workers", "j", cfg.Workers, "Concurrent tile decodes and row conversions")
	flags.BoolVar(&cfg.Indexed, "indexed", cfg.Indexed, "Use a bucket index for nearest-color lookup")
	flags.StringVar(&cfg.Cache, "cache", "", "Palette cache file (.json or .gob)")
	flags.BoolVar(&rebuild, "rebuild", false, "Rebuild the palette cache from the tiles")
	flags.IntVarP(&cfg.ChunkRows, "rows", "r", cfg.ChunkRows, "Rows per delivered block")
	flags.DurationVar(&cfg.Interval.Duration, "interval", cfg.Interval.Duration, "Delay between delivered blocks")
	flags.IntVar(&cfg.Retries, "retries", cfg.Retries, "Retries per failing block")
	flags.StringVar(&cfg.Webhook, "webhook", "", "Chat webhook URL (default: print to stdout)")
	flags.BoolVarP(&preview, "preview", "p", false, "Show a halfblock preview of the source first")
}

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "emojimosaic <image>",
	Short: "Turn an image into an emoji mosaic",
	Args:  cobra.ExactArgs(1),

	// Execute logs the error itself
	SilenceErrors: true,
	SilenceUsage:  true,
	RunE: func(cmd *cobra.Command, args []string) error {
		if verbose {
			log.SetLevel(log.DebugLevel)
		}

		conf, err := resolveConfig(cmd, args[0])
		if err != nil {
			return err
		}

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		defer stop()

		return run(ctx, conf, cmd.OutOrStdout(), cmd.ErrOrStderr())
	},
}

// resolveConfig layers flags that were set explicitly over the config file
func resolveConfig(cmd *cobra.Command, image string) (emojimosaic.Config, error) {
	conf := cfg
	if configPath != "" {
		fileConf, err := emojimosaic.LoadConfig(configPath)
		if err != nil {
			return conf, err
		}
		conf = mergeFlags(cmd, fileConf, cfg)
	}
	conf.Image = image
	if conf.TileDir == "" && conf.Cache == "" {
		return conf, errors.New("a tile directory or palette cache is required")
	}
	if err := conf.Validate(); err != nil {
		return conf, err
	}
	return conf, nil
}

// mergeFlags copies each changed flag value from flagConf onto base
func mergeFlags(cmd *cobra.Command, base, flagConf emojimosaic.Config) emojimosaic.Config {
	changed := cmd.Flags().Changed
	if changed("tiles") {
		base.TileDir = flagConf.TileDir
	}
	if changed("width") {
		base.Width = flagConf.Width
	}
	if changed("height") {
		base.Height = flagConf.Height
	}
	if changed("filter") {
		base.Filter = flagConf.Filter
	}
	if changed("fallback") {
		base.Fallback = flagConf.Fallback
	}
	if changed("workers") {
		base.Workers = flagConf.Workers
	}
	if changed("indexed") {
		base.Indexed = flagConf.Indexed
	}
	if changed("cache") {
		base.Cache = flagConf.Cache
	}
	if changed("rows") {
		base.ChunkRows = flagConf.ChunkRows
	}
	if changed("interval") {
		base.Interval = flagConf.Interval
	}
	if changed("retries") {
		base.Retries = flagConf.Retries
	}
	if changed("webhook") {
		base.Webhook = flagConf.Webhook
	}
	return base
}

// run writes the mosaic to stdout (or the webhook) and the preview to stderr
func run(ctx context.Context, conf emojimosaic.Config, stdout, stderr io.Writer) error {
	m, err := emojimosaic.Open(conf.Image)
	if err != nil {
		return err
	}
	src, err := m.Image()
	if err != nil {
		return fmt.Errorf("failed to open image: %w", err)
	}
	b := src.Bounds()
	log.WithFields(log.Fields{"path": conf.Image, "width": b.Dx(), "height": b.Dy()}).Debug("Decoded source image")

	if preview {
		fmt.Fprint(stderr, emojimosaic.Preview(src, conf.Width, conf.Height))
	}

	progress := emojimosaic.NewTermProgress(os.Stderr)
	if verbose {
		progress = emojimosaic.LogProgress{Logger: log.Log}
	}

	palette, err := loadPalette(conf, progress)
	if err != nil {
		return err
	}
	log.Infof("Palette has %d emoji", len(palette))

	resizer, err := emojimosaic.ResizerByName(conf.Filter)
	if err != nil {
		return err
	}
	grid, err := m.Size(conf.Width, conf.Height).
		Palette(palette).
		Resizer(resizer).
		Fallback(emojimosaic.Glyph(conf.Fallback)).
		Workers(conf.Workers).
		Indexed(conf.Indexed).
		Progress(progress).
		Render()
	if err != nil {
		return fmt.Errorf("failed to convert image: %w", err)
	}

	blocks := emojimosaic.Blocks(grid, conf.ChunkRows)

	var sink emojimosaic.Sink = emojimosaic.NewWriterSink(stdout)
	opts := &emojimosaic.DeliverOptions{Retries: conf.Retries}
	if conf.Webhook != "" {
		sink = emojimosaic.NewWebhookSink(conf.Webhook)
		opts.Interval = conf.Interval.Duration
		opts.Progress = progress
		log.Infof("Sending %d blocks", len(blocks))
	}

	n, err := emojimosaic.Deliver(ctx, sink, blocks, opts)
	if err != nil {
		return fmt.Errorf("delivered %d of %d blocks: %w", n, len(blocks), err)
	}
	log.Debugf("Delivered %d blocks", n)
	return nil
}

// loadPalette reads the cache when one is configured and present, otherwise
// scans the tile directory and refreshes the cache
func loadPalette(conf emojimosaic.Config, progress emojimosaic.Progress) (emojimosaic.Palette, error) {
	if conf.Cache != "" && !rebuild {
		if _, err := os.Stat(conf.Cache); err == nil {
			log.WithField("cache", conf.Cache).Debug("Loading palette cache")
			return emojimosaic.LoadPalette(conf.Cache)
		}
	}

	dir := emojimosaic.ResolveTileDir(conf.TileDir)
	log.WithField("dir", dir).Info("Loading emoji tiles")
	palette, err := emojimosaic.BuildPalette(dir, &emojimosaic.PaletteOptions{
		Workers:  conf.Workers,
		Progress: progress,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to build palette: %w", err)
	}

	if conf.Cache != "" {
		if err := emojimosaic.SavePalette(conf.Cache, palette); err != nil {
			log.WithError(err).Warn("Failed to write palette cache")
		}
	}
	return palette, nil
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		log.Error(err.Error())
		os.Exit(1)
	}
}
