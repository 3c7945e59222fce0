package status

import (
	"time"

	"termbar/blocks"
	"termbar/clicks"
	"termbar/config"
)

// Clock shows the local time, redrawn once per second.
type Clock struct {
	format, alt string
	showAlt     bool
	lastSec     int64
	blk         blocks.Block
}

func NewClock(cfg config.ClockModule) *Clock {
	c := &Clock{format: cfg.Format, alt: cfg.AltFormat}
	now := time.Now()
	c.lastSec = now.Unix() - 1 // force first refresh
	c.MaybeRefresh(now.UnixNano())
	return c
}

func (c *Clock) Name() string { return "clock" }

func (c *Clock) Current() blocks.Block { return c.blk }

func (c *Clock) MaybeRefresh(now int64) bool {
	sec := now / int64(time.Second)
	if sec == c.lastSec {
		return false
	}
	c.lastSec = sec
	return c.render()
}

// Click switches between the main and alternate formats.
func (c *Clock) Click(ev clicks.Click) bool {
	if ev.Button != clicks.ButtonLeft || c.alt == "" {
		return false
	}
	c.showAlt = !c.showAlt
	return c.render()
}

func (c *Clock) render() bool {
	layout := c.format
	if c.showAlt {
		layout = c.alt
	}
	txt := time.Unix(c.lastSec, 0).Format(layout)
	if c.blk.FullText == txt {
		return false
	}
	c.blk = blocks.Block{
		Name:                "clock",
		FullText:            txt,
		Separator:           true,
		SeparatorBlockWidth: DefaultSpacer,
	}
	return true
}
