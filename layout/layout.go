package layout

import (
	"cmp"
	"slices"

	"termbar/blocks"
	"termbar/clicks"
)

type Options struct {
	// XStart is where the blocks area begins; FullWidth is the bar's width.
	XStart    float64
	FullWidth float64
	Height    float64
	// Radius is applied to the outer corners of every series.
	Radius float64
	// SeparatorWidth is the line width of separator marks; zero hides them.
	SeparatorWidth float64
}

// Placed is a block positioned on the bar.
type Placed struct {
	X      float64      `json:"x"`
	Width  float64      `json:"width"`
	Text   Text         `json:"-"`
	Block  blocks.Block `json:"block"`
	Mode   Mode         `json:"mode"`
	RLeft  float64      `json:"r_left"`
	RRight float64      `json:"r_right"`
}

// Mark is a vertical separator line from Y0 to Y1 at X.
type Mark struct {
	X     float64 `json:"x"`
	Y0    float64 `json:"y0"`
	Y1    float64 `json:"y1"`
	Width float64 `json:"width"`
}

// Frame is the result of one layout pass.
type Frame struct {
	Blocks     []Placed                         `json:"blocks"`
	Separators []Mark                           `json:"separators"`
	Regions    clicks.Registry[clicks.Identity] `json:"regions"`
	// Width is the laid-out width, which exceeds FullWidth-XStart on overflow.
	Width    float64 `json:"width"`
	Overflow bool    `json:"overflow"`
}

// Compute lays out series against the right edge of the bar. The input is
// not modified; the chosen modes are reported on the placed blocks.
//
// Overflow left after every shortenable series went short is not an error:
// the drawing surface clips it.
func Compute(series []Series, opts Options) Frame {
	series = slices.Clone(series)

	var total float64
	for i, s := range series {
		total += s.fullWidth()
		if i != len(series)-1 {
			total += s.Gap
		}
	}
	if opts.XStart+total > opts.FullWidth {
		shorten(series, opts.FullWidth-opts.XStart, total)
	}

	visible := make([]visibleSeries, 0, len(series))
	for i := range series {
		v := visibleSeries{series: &series[i]}
		for _, it := range series[i].Items {
			if t := series[i].active(it); checkWidth(t.Width()) > 0 {
				v.items = append(v.items, it)
			}
		}
		if len(v.items) > 0 {
			visible = append(visible, v)
		}
	}

	var f Frame
	x := opts.FullWidth
	for i := len(visible) - 1; i >= 0; i-- {
		v := visible[i]
		if i != len(visible)-1 {
			gap := v.series.Gap
			x -= gap
			if gap > 0 && v.series.Separator && opts.SeparatorWidth > 0 {
				f.Separators = append(f.Separators, Mark{
					X:     x + gap/2,
					Y0:    opts.Height * 0.1,
					Y1:    opts.Height * 0.9,
					Width: opts.SeparatorWidth,
				})
			}
		}
		for j := len(v.items) - 1; j >= 0; j-- {
			it := v.items[j]
			t := v.series.active(it)
			w := t.Width()
			x -= w
			p := Placed{X: x, Width: w, Text: t, Block: it.Block, Mode: v.series.Mode}
			if j == 0 {
				p.RLeft = opts.Radius
			}
			if j == len(v.items)-1 {
				p.RRight = opts.Radius
			}
			f.Blocks = append(f.Blocks, p)
		}
	}
	slices.Reverse(f.Blocks)
	slices.Reverse(f.Separators)

	f.Width = opts.FullWidth - x
	f.Overflow = x < opts.XStart
	for _, p := range f.Blocks {
		f.Regions.Push(p.X, p.Width, p.Block.Identity())
	}
	return f
}

type visibleSeries struct {
	series *Series
	items  []Item
}

// shorten switches series to short mode in descending order of savings,
// ties kept in bar order, until total fits budget. It returns the new total.
func shorten(series []Series, budget, total float64) float64 {
	var candidates []int
	for i := range series {
		if series[i].Shrink > 0 {
			candidates = append(candidates, i)
		}
	}
	slices.SortStableFunc(candidates, func(a, b int) int {
		return cmp.Compare(series[b].Shrink, series[a].Shrink)
	})
	for _, i := range candidates {
		series[i].Mode = ModeShort
		total -= series[i].Shrink
		if total <= budget {
			break
		}
	}
	return total
}
