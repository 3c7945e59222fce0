package blocks

import (
	"encoding/json"
	"fmt"

	"termbar/clicks"
)

// Block is one i3bar protocol block as sent by the status command.
// Block lists are replaced wholesale on every update.
type Block struct {
	Name                string   `json:"name,omitempty"`
	Instance            string   `json:"instance,omitempty"`
	FullText            string   `json:"full_text"`
	ShortText           *string  `json:"short_text,omitempty"`
	Color               string   `json:"color,omitempty"`
	Background          string   `json:"background,omitempty"`
	Urgent              bool     `json:"urgent,omitempty"`
	Separator           bool     `json:"separator"`
	SeparatorBlockWidth int      `json:"separator_block_width"`
	MinWidth            MinWidth `json:"min_width,omitzero"`
	Align               string   `json:"align,omitempty"`
	Markup              string   `json:"markup,omitempty"`
}

// DefaultSeparatorBlockWidth is the spacer i3bar reserves when a block
// does not say otherwise.
const DefaultSeparatorBlockWidth = 9

// Identity is the key click events are reported under.
func (b Block) Identity() clicks.Identity {
	return clicks.Identity{Name: b.Name, Instance: b.Instance}
}

// Short returns the short text and whether the block has one.
func (b Block) Short() (string, bool) {
	if b.ShortText == nil {
		return "", false
	}
	return *b.ShortText, true
}

// MinWidth is either a width in pixels or a sample string whose rendered
// width is the minimum.
type MinWidth struct {
	Pixels int
	Text   string
}

func (m MinWidth) IsZero() bool { return m.Pixels == 0 && m.Text == "" }

func (m *MinWidth) UnmarshalJSON(b []byte) error {
	var n int
	if err := json.Unmarshal(b, &n); err == nil {
		*m = MinWidth{Pixels: n}
		return nil
	}
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return fmt.Errorf("min_width: want number or string, got %s", b)
	}
	*m = MinWidth{Text: s}
	return nil
}

func (m MinWidth) MarshalJSON() ([]byte, error) {
	if m.Text != "" {
		return json.Marshal(m.Text)
	}
	return json.Marshal(m.Pixels)
}
