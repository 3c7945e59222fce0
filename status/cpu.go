package status

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"termbar/blocks"
	"termbar/clicks"
	"termbar/config"
	"termbar/theme"
)

// cpuTimes are the aggregate jiffy counters of the "cpu" line.
type cpuTimes struct {
	idle  uint64 // idle + iowait
	total uint64
}

// CPU shows aggregate CPU utilization from /proc/stat deltas.
type CPU struct {
	cfg      config.CPUModule
	pal      theme.Palette
	sample   func() (cpuTimes, error)
	interval int64

	last     int64
	prev     cpuTimes
	havePrev bool
	percent  float64
	blk      blocks.Block
}

// NewCPU takes a baseline sample right away, so the first block reads 0%.
func NewCPU(cfg config.CPUModule, pal theme.Palette, sample func() (cpuTimes, error)) *CPU {
	c := &CPU{
		cfg:      cfg,
		pal:      pal,
		sample:   sample,
		interval: int64(time.Duration(cfg.IntervalSec) * time.Second),
	}
	c.refresh(time.Now().UnixNano())
	return c
}

func (c *CPU) Name() string { return "cpu" }

func (c *CPU) Current() blocks.Block { return c.blk }

func (c *CPU) MaybeRefresh(now int64) bool {
	if now-c.last < c.interval {
		return false
	}
	return c.refresh(now)
}

// Click toggles between whole and one-decimal percentages.
func (c *CPU) Click(ev clicks.Click) bool {
	if ev.Button != clicks.ButtonLeft {
		return false
	}
	c.cfg.Precision = 1 - c.cfg.Precision
	return c.render()
}

func (c *CPU) refresh(now int64) bool {
	c.last = now
	t, err := c.sample()
	if err != nil {
		if c.blk.FullText == "" {
			c.blk = blocks.ErrorBlock("cpu", "cpu err")
			return true
		}
		return false
	}
	if c.havePrev && t.total > c.prev.total && t.idle >= c.prev.idle {
		dt := float64(t.total - c.prev.total)
		di := float64(t.idle - c.prev.idle)
		c.percent = max(dt-di, 0) / dt * 100
	}
	c.prev, c.havePrev = t, true
	return c.render()
}

func (c *CPU) render() bool {
	pct := formatPercent(c.percent, c.cfg.Precision)
	b := paint(blocks.Block{
		Name:                "cpu",
		FullText:            c.cfg.Prefix + " " + pct,
		ShortText:           &pct,
		Separator:           true,
		SeparatorBlockWidth: DefaultSpacer,
	}, severity(c.percent, c.cfg.WarnPercent, c.cfg.DangerPercent), c.pal)
	return c.swap(b)
}

func (c *CPU) swap(b blocks.Block) bool {
	if sameBlock(c.blk, b) {
		return false
	}
	c.blk = b
	return true
}

func procStat() (cpuTimes, error) {
	f, err := os.Open("/proc/stat")
	if err != nil {
		return cpuTimes{}, err
	}
	defer f.Close()
	line, err := bufio.NewReader(f).ReadString('\n')
	if err != nil {
		return cpuTimes{}, err
	}
	return parseCPULine(line)
}

// parseCPULine reads the first eight counters of a /proc/stat "cpu" line:
// user nice system idle iowait irq softirq steal.
func parseCPULine(line string) (cpuTimes, error) {
	fields := strings.Fields(line)
	if len(fields) < 9 || fields[0] != "cpu" {
		return cpuTimes{}, errors.New("short cpu stat")
	}
	var t cpuTimes
	for i := 1; i <= 8; i++ {
		v, err := strconv.ParseUint(fields[i], 10, 64)
		if err != nil {
			return cpuTimes{}, fmt.Errorf("cpu stat field %d: %w", i, err)
		}
		t.total += v
		if i == 4 || i == 5 {
			t.idle += v
		}
	}
	return t, nil
}

func formatPercent(p float64, precision int) string {
	if precision == 0 {
		return strconv.FormatInt(int64(p+0.5), 10) + "%"
	}
	return fmt.Sprintf("%.1f%%", p)
}

func sameBlock(a, b blocks.Block) bool {
	as, _ := a.Short()
	bs, _ := b.Short()
	return a.Name == b.Name && a.FullText == b.FullText && as == bs &&
		a.Color == b.Color && a.Urgent == b.Urgent
}
