package bar

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
	"github.com/rivo/uniseg"

	"termbar/theme"
)

type cell struct {
	ch     string // grapheme cluster; "" marks the tail of a wide one
	w      int    // columns the cluster covers, set on its first cell
	fg, bg theme.Color
}

// canvas is one terminal row of styled cells.
type canvas struct {
	cells []cell
}

func newCanvas(width int, fg, bg theme.Color) *canvas {
	c := &canvas{cells: make([]cell, max(width, 0))}
	for i := range c.cells {
		c.cells[i] = cell{ch: " ", w: 1, fg: fg, bg: bg}
	}
	return c
}

// write draws s from column x one grapheme cluster at a time, sizing each
// cluster the way text.Measure does. Cells left of minX or past the end are
// clipped; a wide cluster cut by the clip turns into spaces.
func (c *canvas) write(x int, s string, fg, bg theme.Color, minX int) {
	g := uniseg.NewGraphemes(s)
	for g.Next() {
		cluster := g.Str()
		w := runewidth.StringWidth(cluster)
		if w == 0 {
			continue
		}
		if x >= minX && x+w <= len(c.cells) {
			c.cells[x] = cell{ch: cluster, w: w, fg: fg, bg: bg}
			for k := 1; k < w; k++ {
				c.cells[x+k] = cell{fg: fg, bg: bg}
			}
		} else {
			for k := range w {
				if x+k >= minX && x+k >= 0 && x+k < len(c.cells) {
					c.cells[x+k] = cell{ch: " ", w: 1, fg: fg, bg: bg}
				}
			}
		}
		x += w
	}
}

// repair blanks the pieces of wide clusters that a later write split.
func (c *canvas) repair() {
	for i := 0; i < len(c.cells); {
		head := &c.cells[i]
		if head.ch == "" {
			head.ch, head.w = " ", 1
			i++
			continue
		}
		w := max(head.w, 1)
		whole := i+w <= len(c.cells)
		for k := 1; whole && k < w; k++ {
			whole = c.cells[i+k].ch == ""
		}
		if !whole {
			head.ch, head.w = " ", 1
			i++
			continue
		}
		i += w
	}
}

// render draws runs of equally styled cells with r.
func (c *canvas) render(r *lipgloss.Renderer) string {
	c.repair()
	var b strings.Builder
	for i := 0; i < len(c.cells); {
		j := i
		var run strings.Builder
		for j < len(c.cells) && c.cells[j].fg == c.cells[i].fg && c.cells[j].bg == c.cells[i].bg {
			run.WriteString(c.cells[j].ch)
			j++
		}
		style := r.NewStyle().
			Foreground(lipgloss.Color(c.cells[i].fg.Hex())).
			Background(lipgloss.Color(c.cells[i].bg.Hex()))
		b.WriteString(style.Render(run.String()))
		i = j
	}
	return b.String()
}
