package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"

	"termbar/blocks"
	"termbar/theme"
)

type Config struct {
	StatusCommand       string        `toml:"status_command"`
	SeparatorWidth      float64       `toml:"separator_width"`       // separator line width; 0 hides separators
	SeparatorBlockWidth int           `toml:"separator_block_width"` // spacer for blocks that do not set one (pixels)
	PixelsPerCell       int           `toml:"pixels_per_cell"`       // converts protocol pixels to terminal cells
	BlockPadding        int           `toml:"block_padding"`         // cells on each side of a block's text
	BlocksRadius        float64       `toml:"blocks_r"`
	Caps                []string      `toml:"caps"` // left and right glyphs drawn on rounded corners
	Colors              theme.Palette `toml:"colors"`
	Tags                Tags          `toml:"tags"`
	Status              Status        `toml:"status"`
	path                string        // file the config was read from
}

type Tags struct {
	Names          []string `toml:"names"`
	Radius         float64  `toml:"radius"`
	Padding        int      `toml:"padding"`
	HideInactive   bool     `toml:"hide_inactive"`
	ShowLayoutName bool     `toml:"show_layout_name"`
	LayoutName     string   `toml:"layout_name"` // shown by the built-in tag source
}

func Defaults() *Config {
	return &Config{
		StatusCommand:       "i3status",
		SeparatorWidth:      1,
		SeparatorBlockWidth: blocks.DefaultSeparatorBlockWidth,
		PixelsPerCell:       8,
		BlockPadding:        1,
		Colors:              theme.DefaultPalette,
		Tags: Tags{
			Names:   []string{"1", "2", "3", "4", "5"},
			Padding: 1,
		},
		Status: Status{
			TickHz: 1,
			Modules: Modules{
				CPU:   CPUModule{Enabled: true, IntervalSec: 2, WarnPercent: 70, DangerPercent: 90, Prefix: "CPU"},
				Mem:   MemoryModule{Enabled: true, IntervalSec: 5, WarnPercent: 70, DangerPercent: 90, Prefix: "MEM", Format: "percent"},
				Clock: ClockModule{Enabled: true, Format: "2006-01-02 15:04:05", AltFormat: "Mon 02 Jan"},
			},
		},
	}
}

// Load loads configuration from explicit path or discovered search path.
// Precedence: provided path (if exists) else first existing search path else defaults.
// Missing file yields defaults and an error; parse errors also return defaults + error.
func Load(path string) (*Config, error) {
	cfg := Defaults()
	var chosen string
	if path != "" {
		chosen = path
	} else {
		for _, p := range searchPaths() {
			if _, err := os.Stat(p); err == nil {
				chosen = p
				break
			}
		}
	}
	if chosen == "" { // no file found
		return cfg, errors.New("no config file found; using defaults")
	}
	cfg.path = chosen
	data, err := os.ReadFile(chosen)
	if err != nil {
		return cfg, fmt.Errorf("read config: %w", err)
	}
	md, err := toml.Decode(string(data), cfg) // decode overlays onto defaults
	if err != nil {
		fallback := Defaults()
		fallback.path = chosen
		return fallback, fmt.Errorf("parse config: %w", err)
	}
	// Capture module order from metadata keys: status.modules.<name>
	seen := map[string]struct{}{}
	for _, k := range md.Keys() {
		if len(k) == 3 && k[0] == "status" && k[1] == "modules" {
			if _, ok := seen[k[2]]; !ok {
				cfg.Status.order = append(cfg.Status.order, k[2])
				seen[k[2]] = struct{}{}
			}
		}
	}
	cfg.normalize()
	return cfg, nil
}

// Path returns the file the config came from, or the first search path
// when none was found.
func (c *Config) Path() string {
	if c.path != "" {
		return c.path
	}
	if paths := searchPaths(); len(paths) > 0 {
		return paths[0]
	}
	return ""
}

func searchPaths() []string {
	var out []string
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		out = append(out, filepath.Join(xdg, "termbar", "config.toml"))
	}
	if home, _ := os.UserHomeDir(); home != "" {
		out = append(out, filepath.Join(home, ".config", "termbar", "config.toml"))
	}
	return out
}

// BlockDefaults are the protocol defaults for blocks from the status command.
func (c *Config) BlockDefaults() blocks.Defaults {
	return blocks.Defaults{SeparatorBlockWidth: c.SeparatorBlockWidth}
}

// Cells converts a protocol pixel width to cells. Non-zero widths never
// round down to zero.
func (c *Config) Cells(pixels int) int {
	if pixels <= 0 {
		return 0
	}
	n := (pixels + c.PixelsPerCell/2) / c.PixelsPerCell
	return max(n, 1)
}

// normalize clamps and validates config values after decoding.
func (c *Config) normalize() {
	c.PixelsPerCell = clampInt(c.PixelsPerCell, 1, 64, 8)
	c.SeparatorBlockWidth = clampInt(c.SeparatorBlockWidth, 0, 255, 0)
	c.BlockPadding = clampInt(c.BlockPadding, 0, 8, 0)
	c.Tags.Padding = clampInt(c.Tags.Padding, 0, 8, 0)
	c.SeparatorWidth = max(c.SeparatorWidth, 0)
	c.BlocksRadius = max(c.BlocksRadius, 0)
	c.Tags.Radius = max(c.Tags.Radius, 0)
	if len(c.Caps) != 2 {
		c.Caps = nil
	}
	c.Status.normalize()
}

func clampInt(val, min, max, fallback int) int {
	if val == 0 && fallback != 0 { // allow zero to trigger fallback when min>0
		val = fallback
	}
	if val < min {
		return min
	}
	if val > max {
		return max
	}
	return val
}
