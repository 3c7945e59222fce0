// Package layout fits status blocks into the bar's width and places the
// workspace tag labels.
//
// Blocks are grouped into series, runs of same-named blocks with no spacer
// between them. When everything does not fit, whole series switch to their
// short texts, the ones that save the most first. Blocks are anchored to the
// right edge; tag labels to the left.
package layout

import (
	"fmt"
	"math"

	"termbar/blocks"
)

// Text is a measured rendering. Widths are in the bar's unit.
type Text interface {
	Width() float64
}

// Item is a block with its measured renderings.
type Item struct {
	Block blocks.Block
	Full  Text
	// Short is nil when the block has no short form.
	Short Text
	// Gap is the spacer reserved after the block, in the bar's unit.
	// It is zero exactly when the block's separator_block_width is zero.
	Gap float64
}

type Mode int

const (
	ModeFull Mode = iota
	ModeShort
)

func (m Mode) String() string {
	if m == ModeShort {
		return "short"
	}
	return "full"
}

func (m Mode) MarshalText() ([]byte, error) { return []byte(m.String()), nil }

// Series is a maximal run of consecutive items sharing a name where every
// member but the last has no spacer.
type Series struct {
	Items []Item
	// Shrink is the width saved by switching the series to short mode.
	Shrink float64
	Mode   Mode
	// Separator and Gap come from the last member.
	Separator bool
	Gap       float64
}

// Group partitions items into series, preserving order.
func Group(items []Item) []Series {
	var out []Series
	start := 0
	for start < len(items) {
		end := start + 1
		name := items[start].Block.Name
		for end < len(items) && items[end-1].Gap == 0 && items[end].Block.Name == name {
			end++
		}

		last := items[end-1]
		s := Series{
			Items:     items[start:end:end],
			Separator: last.Block.Separator,
			Gap:       checkWidth(last.Gap),
		}
		for _, it := range s.Items {
			full := checkWidth(it.Full.Width())
			if it.Short == nil {
				continue
			}
			if d := full - checkWidth(it.Short.Width()); d > 0 {
				s.Shrink += d
			}
		}
		out = append(out, s)
		start = end
	}
	return out
}

// active is the rendering of it under the series' mode.
func (s Series) active(it Item) Text {
	if s.Mode == ModeShort && it.Short != nil {
		return it.Short
	}
	return it.Full
}

func (s Series) fullWidth() float64 {
	var w float64
	for _, it := range s.Items {
		w += checkWidth(it.Full.Width())
	}
	return w
}

// checkWidth panics on widths no measurer can produce.
func checkWidth(w float64) float64 {
	if w < 0 || math.IsNaN(w) || math.IsInf(w, 0) {
		panic(fmt.Sprintf("layout: invalid width %v", w))
	}
	return w
}
