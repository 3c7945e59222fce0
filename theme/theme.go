package theme

import (
	"encoding/hex"
	"fmt"
	"strings"
)

// Color is an RGBA colour as written in i3bar blocks and the config file:
// "#rrggbb" or "#rrggbbaa". A zero alpha means "not painted".
type Color struct {
	R, G, B, A uint8
}

// ParseColor accepts "#rrggbb", "#rrggbbaa" and the same without '#'.
func ParseColor(s string) (Color, error) {
	raw := strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(raw) != 6 && len(raw) != 8 {
		return Color{}, fmt.Errorf("color %q: want #rrggbb or #rrggbbaa", s)
	}
	b, err := hex.DecodeString(raw)
	if err != nil {
		return Color{}, fmt.Errorf("color %q: %w", s, err)
	}
	c := Color{R: b[0], G: b[1], B: b[2], A: 0xff}
	if len(b) == 4 {
		c.A = b[3]
	}
	return c, nil
}

// MustParse is ParseColor for package-level defaults.
func MustParse(s string) Color {
	c, err := ParseColor(s)
	if err != nil {
		panic(err)
	}
	return c
}

// Visible reports whether the colour paints anything.
func (c Color) Visible() bool { return c.A != 0 }

// Hex returns "#rrggbb"; terminals have no alpha channel.
func (c Color) Hex() string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

func (c Color) String() string {
	if c.A == 0xff {
		return c.Hex()
	}
	return fmt.Sprintf("#%02x%02x%02x%02x", c.R, c.G, c.B, c.A)
}

func (c Color) MarshalText() ([]byte, error) { return []byte(c.String()), nil }

func (c *Color) UnmarshalText(b []byte) error {
	parsed, err := ParseColor(string(b))
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}

// Pair is a background/foreground combination. Tag labels sharing a Pair
// are drawn as one rounded shape.
type Pair struct {
	Fg Color `toml:"fg" json:"fg"`
	Bg Color `toml:"bg" json:"bg"`
}
