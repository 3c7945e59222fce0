package bar

import (
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"termbar/blocks"
	"termbar/config"
	"termbar/layout"
	"termbar/theme"
)

const separatorGlyph = "│"

// Render paints f as one terminal row. Blocks that overflow into the tag
// strip or the layout name are clipped where those end.
func Render(f Frame, cfg *config.Config, r *lipgloss.Renderer) string {
	pal := cfg.Colors
	c := newCanvas(f.Width, pal.Foreground, pal.Background)

	for _, l := range f.Tags.Labels {
		x := col(l.X)
		c.write(x, cells(l.Text), l.Colors.Fg, l.Colors.Bg, 0)
		drawCaps(c, cfg.Caps, x, col(l.X+l.Width), l.RLeft, l.RRight, l.Colors.Bg, pal.Background, 0)
	}

	if l := f.LayoutName; l != nil {
		c.write(col(l.X), cells(l.Text), l.Colors.Fg, l.Colors.Bg, 0)
	}

	clip := col(f.Left())
	for _, p := range f.Blocks.Blocks {
		fg, bg, painted := blockColors(p.Block, pal)
		x := col(p.X)
		c.write(x, cells(p.Text), fg, bg, clip)
		if painted {
			drawCaps(c, cfg.Caps, x, col(p.X+p.Width), p.RLeft, p.RRight, bg, pal.Background, clip)
		}
	}
	for _, m := range f.Blocks.Separators {
		c.write(int(math.Floor(m.X)), separatorGlyph, pal.Separator, pal.Background, clip)
	}
	return c.render(r)
}

// blockColors resolves a block's colours. Explicit block colours win over
// the urgent pair; painted reports whether the block has its own background.
func blockColors(b blocks.Block, pal theme.Palette) (fg, bg theme.Color, painted bool) {
	fg, bg = pal.Foreground, pal.Background
	if b.Urgent {
		if p, ok := pal.ColorsFor(theme.SeverityUrgent); ok {
			fg, bg, painted = p.Fg, p.Bg, true
		}
	}
	if c, err := theme.ParseColor(b.Color); b.Color != "" && err == nil && c.Visible() {
		fg = c
	}
	if c, err := theme.ParseColor(b.Background); b.Background != "" && err == nil && c.Visible() {
		bg, painted = c, true
	}
	return fg, bg, painted
}

// drawCaps replaces the outer cells of a rounded shape [x0, x1) with the
// configured cap glyphs, drawn in the shape's colour on the bar.
func drawCaps(c *canvas, caps []string, x0, x1 int, rl, rr float64, shape, bar theme.Color, clip int) {
	if len(caps) != 2 || x1-x0 < 2 {
		return
	}
	if rl > 0 && runewidth.StringWidth(caps[0]) == 1 {
		c.write(x0, caps[0], shape, bar, clip)
	}
	if rr > 0 && runewidth.StringWidth(caps[1]) == 1 {
		c.write(x1-1, caps[1], shape, bar, clip)
	}
}

type celler interface {
	Cells() string
}

func cells(t layout.Text) string {
	if c, ok := t.(celler); ok {
		return c.Cells()
	}
	return strings.Repeat(" ", int(t.Width()))
}

func col(x float64) int { return int(math.Round(x)) }
