package layout

import (
	"termbar/clicks"
	"termbar/theme"
)

// Label is a workspace tag label.
type Label struct {
	Name   string
	Text   Text
	Colors theme.Pair
}

type PlacedLabel struct {
	X      float64    `json:"x"`
	Width  float64    `json:"width"`
	Name   string     `json:"name"`
	Text   Text       `json:"-"`
	Colors theme.Pair `json:"colors"`
	RLeft  float64    `json:"r_left"`
	RRight float64    `json:"r_right"`
}

type TagFrame struct {
	Labels  []PlacedLabel           `json:"labels"`
	Regions clicks.Registry[string] `json:"regions"`
	// End is the x where the tag strip stops.
	End float64 `json:"end"`
}

// ComputeTags places labels left to right from xStart. Neighbours with the
// same colour pair are drawn as one shape, so only the outer corners of
// such a run are rounded. Zero-width labels are skipped.
func ComputeTags(labels []Label, xStart, radius float64) TagFrame {
	visible := make([]Label, 0, len(labels))
	for _, l := range labels {
		if checkWidth(l.Text.Width()) > 0 {
			visible = append(visible, l)
		}
	}

	f := TagFrame{End: xStart}
	for i, l := range visible {
		w := l.Text.Width()
		p := PlacedLabel{X: f.End, Width: w, Name: l.Name, Text: l.Text, Colors: l.Colors}
		if i == 0 || visible[i-1].Colors != l.Colors {
			p.RLeft = radius
		}
		if i == len(visible)-1 || visible[i+1].Colors != l.Colors {
			p.RRight = radius
		}
		f.Labels = append(f.Labels, p)
		f.Regions.Push(f.End, w, l.Name)
		f.End += w
	}
	return f
}
