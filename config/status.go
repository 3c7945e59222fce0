package config

import (
	"slices"
	"strings"
)

// Status configures the built-in status command (termbar status).
type Status struct {
	TickHz  int      `toml:"tick_hz"`
	Modules Modules  `toml:"modules"`
	order   []string // order of module tables as they appeared in TOML
}

type Modules struct {
	CPU   CPUModule    `toml:"cpu"`
	Mem   MemoryModule `toml:"mem"`
	Clock ClockModule  `toml:"clock"`
}

type CPUModule struct {
	Enabled       bool   `toml:"enabled"`
	IntervalSec   int    `toml:"interval_sec"`   // sampling interval seconds (default 2)
	WarnPercent   int    `toml:"warn_percent"`   // warn threshold (default 70)
	DangerPercent int    `toml:"danger_percent"` // urgent threshold (default 90)
	Precision     int    `toml:"precision"`      // decimals (0 or 1)
	Prefix        string `toml:"prefix"`
}

type MemoryModule struct {
	Enabled       bool   `toml:"enabled"`
	IntervalSec   int    `toml:"interval_sec"` // sampling interval seconds (default 5)
	WarnPercent   int    `toml:"warn_percent"`
	DangerPercent int    `toml:"danger_percent"`
	Precision     int    `toml:"precision"` // percent decimals (0 or 1)
	Prefix        string `toml:"prefix"`
	Format        string `toml:"format"` // one of: percent, available, used
}

type ClockModule struct {
	Enabled   bool   `toml:"enabled"`
	Format    string `toml:"format"`     // Go time layout
	AltFormat string `toml:"alt_format"` // shown after a click; empty disables toggling
}

// MemFormats lists the memory formats in the order clicks cycle through them.
var MemFormats = []string{"percent", "available", "used"}

// ModuleOrder returns a copy of the module order (may be empty).
func (s *Status) ModuleOrder() []string {
	return slices.Clone(s.order)
}

func (s *Status) normalize() {
	s.TickHz = clampInt(s.TickHz, 1, 20, 1)

	cpu := &s.Modules.CPU
	cpu.IntervalSec = clampInt(cpu.IntervalSec, 1, 30, 2)
	cpu.Precision = clampInt(cpu.Precision, 0, 1, 0)
	cpu.WarnPercent, cpu.DangerPercent = thresholds(cpu.WarnPercent, cpu.DangerPercent)
	if cpu.Prefix == "" {
		cpu.Prefix = "CPU"
	}

	mem := &s.Modules.Mem
	mem.IntervalSec = clampInt(mem.IntervalSec, 1, 60, 5)
	mem.Precision = clampInt(mem.Precision, 0, 1, 0)
	mem.WarnPercent, mem.DangerPercent = thresholds(mem.WarnPercent, mem.DangerPercent)
	mem.Format = strings.ToLower(mem.Format)
	if !slices.Contains(MemFormats, mem.Format) {
		mem.Format = "percent"
	}
	if mem.Prefix == "" {
		mem.Prefix = "MEM"
	}

	if s.Modules.Clock.Format == "" {
		s.Modules.Clock.Format = "15:04:05"
	}
}

// thresholds keeps 0 < warn < danger <= 100.
func thresholds(warn, danger int) (int, int) {
	warn = clampInt(warn, 1, 99, 70)
	if danger <= warn {
		danger = warn + 10
	}
	return warn, min(danger, 100)
}
