package blocks

// Header is the first object a status command prints.
type Header struct {
	Version     int  `json:"version"`
	ClickEvents bool `json:"click_events"`
	StopSignal  int  `json:"stop_signal,omitempty"`
	ContSignal  int  `json:"cont_signal,omitempty"`
}

// Raw is a block as it appears on the wire. The fields with protocol
// defaults are pointers so absence can be told apart from a zero value.
type Raw struct {
	Block
	Separator           *bool `json:"separator"`
	SeparatorBlockWidth *int  `json:"separator_block_width"`
}

// Defaults fills what a status command left out.
type Defaults struct {
	SeparatorBlockWidth int
}

// Resolve applies the protocol defaults: a separator is drawn unless
// disabled, and the spacer falls back to d, clamped to 0..255.
func (r Raw) Resolve(d Defaults) Block {
	b := r.Block
	b.Separator = true
	if r.Separator != nil {
		b.Separator = *r.Separator
	}
	b.SeparatorBlockWidth = d.SeparatorBlockWidth
	if r.SeparatorBlockWidth != nil {
		b.SeparatorBlockWidth = *r.SeparatorBlockWidth
	}
	b.SeparatorBlockWidth = min(max(b.SeparatorBlockWidth, 0), 255)
	return b
}

// Decode resolves a whole update.
func Decode(raws []Raw, d Defaults) []Block {
	out := make([]Block, len(raws))
	for i, r := range raws {
		out[i] = r.Resolve(d)
	}
	return out
}
