package bar

import (
	"termbar/blocks"
	"termbar/config"
	"termbar/layout"
	"termbar/tags"
	"termbar/text"
	"termbar/theme"
)

// layoutNamePadding is the space on each side of the layout name, in
// protocol pixels.
const layoutNamePadding = 25

// Frame is everything drawn on one bar row.
type Frame struct {
	Width      int                 `json:"width"`
	Tags       layout.TagFrame     `json:"tags"`
	LayoutName *layout.PlacedLabel `json:"layout_name,omitempty"`
	Blocks     layout.Frame        `json:"blocks"`
}

// Left is the x where the left-hand strip (tags and layout name) stops.
func (f Frame) Left() float64 {
	if f.LayoutName != nil {
		return f.LayoutName.X + f.LayoutName.Width
	}
	return f.Tags.End
}

// Layout places tags and the layout name from the left edge and blocks
// against the right edge of a bar width cells wide. The layout name is only
// shown when the config asks for it.
func Layout(bs []blocks.Block, ts []tags.Tag, layoutName string, cfg *config.Config, width int) Frame {
	f := Frame{Width: width}
	f.Tags = layout.ComputeTags(Labels(ts, cfg), 0, cfg.Tags.Radius)
	if cfg.Tags.ShowLayoutName && layoutName != "" {
		pad := cfg.Cells(layoutNamePadding)
		t := text.Measure(layoutName, text.Attributes{PaddingLeft: pad, PaddingRight: pad})
		f.LayoutName = &layout.PlacedLabel{
			X:      f.Tags.End,
			Width:  t.Width(),
			Name:   layoutName,
			Text:   t,
			Colors: theme.Pair{Fg: cfg.Colors.TagInactive.Fg, Bg: cfg.Colors.Background},
		}
	}
	f.Blocks = layout.Compute(layout.Group(Items(bs, cfg)), layout.Options{
		XStart:         f.Left(),
		FullWidth:      float64(width),
		Height:         1,
		Radius:         cfg.BlocksRadius,
		SeparatorWidth: cfg.SeparatorWidth,
	})
	return f
}

// Key identifies the inputs of a layout pass. Versions are bumped by the
// owner whenever the corresponding input is replaced.
type Key struct {
	Blocks uint64
	Tags   uint64
	Config uint64
	Width  int
}

// Cache memoises the last frame.
type Cache struct {
	key   Key
	frame Frame
	valid bool
}

// Get returns the cached frame for k, building it when k changed. rebuilt
// reports whether build ran.
func (c *Cache) Get(k Key, build func() Frame) (f Frame, rebuilt bool) {
	if c.valid && c.key == k {
		return c.frame, false
	}
	c.key, c.frame, c.valid = k, build(), true
	return c.frame, true
}

func (c *Cache) Invalidate() { c.valid = false }
