package bar

import (
	"termbar/blocks"
	"termbar/config"
	"termbar/layout"
	"termbar/tags"
	"termbar/text"
	"termbar/theme"
)

// Items measures blocks for layout. Protocol pixel widths (spacers and
// numeric min_width) are converted to cells.
func Items(bs []blocks.Block, cfg *config.Config) []layout.Item {
	items := make([]layout.Item, len(bs))
	for i, b := range bs {
		attrs := text.Attributes{
			PaddingLeft:  cfg.BlockPadding,
			PaddingRight: cfg.BlockPadding,
			MinWidth:     minWidth(b.MinWidth, cfg),
			Align:        text.ParseAlign(b.Align),
			Markup:       b.Markup == "pango",
		}
		it := layout.Item{
			Block: b,
			Full:  text.Measure(b.FullText, attrs),
			Gap:   float64(cfg.Cells(b.SeparatorBlockWidth)),
		}
		if s, ok := b.Short(); ok {
			it.Short = text.Measure(s, attrs)
		}
		items[i] = it
	}
	return items
}

func minWidth(m blocks.MinWidth, cfg *config.Config) int {
	if m.Text != "" {
		return int(text.Measure(m.Text, text.Attributes{}).Width())
	}
	return cfg.Cells(m.Pixels)
}

// Labels measures the visible tags and picks their colours.
func Labels(ts []tags.Tag, cfg *config.Config) []layout.Label {
	attrs := text.Attributes{PaddingLeft: cfg.Tags.Padding, PaddingRight: cfg.Tags.Padding}
	labels := make([]layout.Label, 0, len(ts))
	for _, t := range ts {
		var colors theme.Pair
		switch {
		case t.Urgent:
			colors = cfg.Colors.TagUrgent
		case t.Focused:
			colors = cfg.Colors.TagFocused
		case t.Active:
			colors = cfg.Colors.Tag
		case !cfg.Tags.HideInactive:
			colors = cfg.Colors.TagInactive
		default:
			continue
		}
		labels = append(labels, layout.Label{Name: t.Name, Text: text.Measure(t.Name, attrs), Colors: colors})
	}
	return labels
}
