package emojimosaic

import (
	"fmt"
	"time"

	"github.com/BurntSushi/toml"
)

// Duration is a time.Duration read from strings such as "250ms"
type Duration struct {
	time.Duration
}

// UnmarshalText parses a Go duration string
func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	d.Duration = v
	return nil
}

// MarshalText formats the duration
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.Duration.String()), nil
}

// Config holds every option of a run
type Config struct {
	Width     int      `toml:"width"`
	Height    int      `toml:"height"`
	TileDir   string   `toml:"tiles"`
	Image     string   `toml:"image"`
	Filter    string   `toml:"filter"`
	Fallback  string   `toml:"fallback"`
	Workers   int      `toml:"workers"`
	Indexed   bool     `toml:"indexed"`
	Cache     string   `toml:"cache"`
	ChunkRows int      `toml:"chunk_rows"`
	Interval  Duration `toml:"interval"`
	Retries   int      `toml:"retries"`
	Webhook   string   `toml:"webhook"`
}

// DefaultConfig returns a 40x40 grid, Gaussian filter, 5 rows per block and
// 250ms between blocks
func DefaultConfig() Config {
	return Config{
		Width:     DefaultWidth,
		Height:    DefaultHeight,
		Filter:    DefaultFilter,
		Fallback:  string(DefaultFallback),
		Workers:   1,
		ChunkRows: DefaultChunkRows,
		Interval:  Duration{DefaultInterval},
		Retries:   DefaultRetries,
	}
}

// LoadConfig reads a TOML file over DefaultConfig. Keys not present in the
// file keep their defaults; unknown keys are rejected.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	md, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return Config{}, newError(KindConfig, "load config", path, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return Config{}, newError(KindConfig, "load config", path, fmt.Errorf("unknown keys %v", undecoded))
	}
	return cfg, nil
}

// Validate checks option ranges. TileDir and Image are checked when used.
func (c Config) Validate() error {
	switch {
	case c.Width < 1 || c.Height < 1:
		return newError(KindConfig, "validate config", "", fmt.Errorf("invalid grid size %dx%d", c.Width, c.Height))
	case c.ChunkRows < 1:
		return newError(KindConfig, "validate config", "", fmt.Errorf("chunk rows must be at least 1, got %d", c.ChunkRows))
	case c.Interval.Duration < 0:
		return newError(KindConfig, "validate config", "", fmt.Errorf("negative interval %s", c.Interval))
	case c.Retries < 0:
		return newError(KindConfig, "validate config", "", fmt.Errorf("negative retries %d", c.Retries))
	case c.Fallback == "":
		return newError(KindConfig, "validate config", "", fmt.Errorf("fallback glyph cannot be empty"))
	}
	if _, err := ResizerByName(c.Filter); err != nil {
		return err
	}
	return nil
}
