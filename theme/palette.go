package theme

// Palette holds every colour the bar paints with. Blocks may override
// foreground and background per block.
type Palette struct {
	Background Color `toml:"background"`
	Foreground Color `toml:"foreground"`
	Separator  Color `toml:"separator"`
	Warning    Color `toml:"warning"`

	Urgent Pair `toml:"urgent"`

	Tag         Pair `toml:"tag"`
	TagFocused  Pair `toml:"tag_focused"`
	TagInactive Pair `toml:"tag_inactive"`
	TagUrgent   Pair `toml:"tag_urgent"`
}

var DefaultPalette = Palette{
	Background: MustParse("#282828"),
	Foreground: MustParse("#ffffff"),
	Separator:  MustParse("#9a8a62"),
	Warning:    MustParse("#d08770"),

	Urgent: Pair{Fg: MustParse("#282828"), Bg: MustParse("#bf616a")},

	Tag:         Pair{Fg: MustParse("#d79921"), Bg: MustParse("#282828")},
	TagFocused:  Pair{Fg: MustParse("#1d2021"), Bg: MustParse("#689d68")},
	TagInactive: Pair{Fg: MustParse("#7c6f64"), Bg: MustParse("#282828")},
	TagUrgent:   Pair{Fg: MustParse("#282828"), Bg: MustParse("#cc241d")},
}

type Severity int

const (
	SeverityNormal Severity = iota
	SeverityWarning
	SeverityUrgent
)

// ColorsFor returns the pair painted for sev and true if sev overrides the
// bar's own colours.
func (p Palette) ColorsFor(sev Severity) (Pair, bool) {
	switch sev {
	case SeverityWarning:
		return Pair{Fg: p.Warning, Bg: p.Background}, true
	case SeverityUrgent:
		return p.Urgent, true
	default:
		return Pair{}, false
	}
}
