package status

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"slices"
	"strconv"
	"strings"
	"time"

	"termbar/blocks"
	"termbar/clicks"
	"termbar/config"
	"termbar/theme"
)

// memInfo holds byte counts from /proc/meminfo.
type memInfo struct {
	total     uint64
	available uint64
}

func (m memInfo) used() uint64 { return m.total - min(m.available, m.total) }

func (m memInfo) percent() float64 { return float64(m.used()) / float64(m.total) * 100 }

// Memory shows memory use as a percentage or as available/used bytes.
type Memory struct {
	cfg      config.MemoryModule
	pal      theme.Palette
	sample   func() (memInfo, error)
	interval int64

	last int64
	info memInfo
	blk  blocks.Block
}

func NewMemory(cfg config.MemoryModule, pal theme.Palette, sample func() (memInfo, error)) *Memory {
	m := &Memory{
		cfg:      cfg,
		pal:      pal,
		sample:   sample,
		interval: int64(time.Duration(cfg.IntervalSec) * time.Second),
	}
	m.refresh(time.Now().UnixNano())
	return m
}

func (m *Memory) Name() string { return "mem" }

func (m *Memory) Current() blocks.Block { return m.blk }

func (m *Memory) MaybeRefresh(now int64) bool {
	if now-m.last < m.interval {
		return false
	}
	return m.refresh(now)
}

// Click cycles through the display formats.
func (m *Memory) Click(ev clicks.Click) bool {
	if ev.Button != clicks.ButtonLeft || m.info.total == 0 {
		return false
	}
	i := slices.Index(config.MemFormats, m.cfg.Format)
	m.cfg.Format = config.MemFormats[(i+1)%len(config.MemFormats)]
	return m.render()
}

func (m *Memory) refresh(now int64) bool {
	m.last = now
	info, err := m.sample()
	if err == nil && info.total == 0 {
		err = errors.New("no MemTotal")
	}
	if err != nil {
		if m.blk.FullText == "" {
			m.blk = blocks.ErrorBlock("mem", "mem err")
			return true
		}
		return false
	}
	m.info = info
	return m.render()
}

func (m *Memory) render() bool {
	pct := formatPercent(m.info.percent(), m.cfg.Precision)
	var text string
	switch m.cfg.Format {
	case "available":
		text = fmt.Sprintf("%s %s free", m.cfg.Prefix, humanBytes(m.info.available))
	case "used":
		text = fmt.Sprintf("%s %s used", m.cfg.Prefix, humanBytes(m.info.used()))
	default:
		text = m.cfg.Prefix + " " + pct
	}
	b := paint(blocks.Block{
		Name:                "mem",
		FullText:            text,
		ShortText:           &pct,
		Separator:           true,
		SeparatorBlockWidth: DefaultSpacer,
	}, severity(m.info.percent(), m.cfg.WarnPercent, m.cfg.DangerPercent), m.pal)
	if sameBlock(m.blk, b) {
		return false
	}
	m.blk = b
	return true
}

func procMeminfo() (memInfo, error) {
	f, err := os.Open("/proc/meminfo")
	if err != nil {
		return memInfo{}, err
	}
	defer f.Close()
	return parseMeminfo(f)
}

// parseMeminfo reads "Key:  value kB" lines. Without MemAvailable, free +
// buffers + cached stands in for it.
func parseMeminfo(r io.Reader) (memInfo, error) {
	kb := map[string]uint64{}
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		key, rest, ok := strings.Cut(sc.Text(), ":")
		if !ok {
			continue
		}
		switch key {
		case "MemTotal", "MemAvailable", "MemFree", "Buffers", "Cached":
		default:
			continue
		}
		fields := strings.Fields(rest)
		if len(fields) == 0 {
			continue
		}
		v, err := strconv.ParseUint(fields[0], 10, 64)
		if err != nil {
			return memInfo{}, fmt.Errorf("meminfo %s: %w", key, err)
		}
		kb[key] = v
	}
	if err := sc.Err(); err != nil {
		return memInfo{}, err
	}
	if kb["MemTotal"] == 0 {
		return memInfo{}, errors.New("no MemTotal")
	}
	avail, ok := kb["MemAvailable"]
	if !ok {
		avail = kb["MemFree"] + kb["Buffers"] + kb["Cached"]
	}
	return memInfo{total: kb["MemTotal"] * 1024, available: avail * 1024}, nil
}

// humanBytes converts bytes to a short string (KiB, MiB, GiB) with one
// decimal below ten.
func humanBytes(b uint64) string {
	const unit = 1024
	if b < unit {
		return fmt.Sprintf("%dB", b)
	}
	div, exp := uint64(unit), 0
	for n := b / unit; n >= unit && exp < 4; n /= unit {
		div *= unit
		exp++
	}
	value := float64(b) / float64(div)
	if value < 10 {
		return fmt.Sprintf("%.1f%ciB", value, "KMGTPE"[exp])
	}
	return fmt.Sprintf("%.0f%ciB", value, "KMGTPE"[exp])
}
