// Package text measures block and tag renderings in terminal cells.
package text

import (
	"html"
	"strings"

	"github.com/mattn/go-runewidth"
)

type Align int

const (
	AlignLeft Align = iota
	AlignCenter
	AlignRight
)

// ParseAlign maps the protocol's align values; anything else is left.
func ParseAlign(s string) Align {
	switch s {
	case "center":
		return AlignCenter
	case "right":
		return AlignRight
	default:
		return AlignLeft
	}
}

type Attributes struct {
	PaddingLeft  int
	PaddingRight int
	// MinWidth is the minimum width of the text area, padding excluded.
	MinWidth int
	Align    Align
	Markup   bool
}

// Computed is a measured rendering. Empty text measures zero cells
// regardless of padding.
type Computed struct {
	text  string
	left  int
	right int
	width int
}

// Measure sanitises s for a single terminal row and computes its width.
func Measure(s string, a Attributes) Computed {
	if a.Markup {
		s = StripMarkup(s)
	}
	s = singleLine(s)
	w := runewidth.StringWidth(s)
	if w == 0 {
		return Computed{}
	}

	extra := max(a.MinWidth-w, 0)
	c := Computed{
		text:  s,
		left:  max(a.PaddingLeft, 0),
		right: max(a.PaddingRight, 0),
	}
	switch a.Align {
	case AlignRight:
		c.left += extra
	case AlignCenter:
		c.left += extra / 2
		c.right += extra - extra/2
	default:
		c.right += extra
	}
	c.width = c.left + w + c.right
	return c
}

// Width is the total width in cells, padding included.
func (c Computed) Width() float64 { return float64(c.width) }

// Text is the sanitised text without padding.
func (c Computed) Text() string { return c.text }

// Cells is the padded, aligned string exactly Width cells wide.
func (c Computed) Cells() string {
	if c.width == 0 {
		return ""
	}
	return strings.Repeat(" ", c.left) + c.text + strings.Repeat(" ", c.right)
}

// singleLine turns line breaks and tabs into spaces and drops other
// control characters.
func singleLine(s string) string {
	return strings.Map(func(r rune) rune {
		switch {
		case r == '\n' || r == '\r' || r == '\t':
			return ' '
		case r < 0x20 || r == 0x7f:
			return -1
		}
		return r
	}, s)
}

// StripMarkup removes pango tags and resolves entities.
func StripMarkup(s string) string {
	var b strings.Builder
	depth := 0
	for _, r := range s {
		switch {
		case r == '<':
			depth++
		case r == '>' && depth > 0:
			depth--
		case depth == 0:
			b.WriteRune(r)
		}
	}
	return html.UnescapeString(b.String())
}
