package config

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"termbar/theme"
)

func writeConfig(t *testing.T, dir, body string) string {
	t.Helper()
	path := filepath.Join(dir, "config.toml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadOverlaysDefaults(t *testing.T) {
	path := writeConfig(t, t.TempDir(), `
status_command = "my-status"
blocks_r = 1.5
caps = ["(", ")"]

[colors]
background = "#000000"
urgent = { fg = "#ffffff", bg = "#ff0000" }

[tags]
names = ["web", "code"]
hide_inactive = true
show_layout_name = true
layout_name = "tile"
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.StatusCommand != "my-status" || cfg.BlocksRadius != 1.5 {
		t.Errorf("top-level = %q %v", cfg.StatusCommand, cfg.BlocksRadius)
	}
	if cfg.Colors.Background != theme.MustParse("#000000") {
		t.Errorf("background = %v", cfg.Colors.Background)
	}
	if cfg.Colors.Urgent.Bg != theme.MustParse("#ff0000") {
		t.Errorf("urgent bg = %v", cfg.Colors.Urgent.Bg)
	}
	if cfg.Colors.Foreground != theme.DefaultPalette.Foreground {
		t.Errorf("foreground lost its default: %v", cfg.Colors.Foreground)
	}
	if len(cfg.Tags.Names) != 2 || !cfg.Tags.HideInactive || !cfg.Tags.ShowLayoutName || cfg.Tags.LayoutName != "tile" {
		t.Errorf("tags = %+v", cfg.Tags)
	}
	if cfg.SeparatorBlockWidth != 9 || cfg.PixelsPerCell != 8 {
		t.Errorf("defaults lost: sbw=%d ppc=%d", cfg.SeparatorBlockWidth, cfg.PixelsPerCell)
	}
	if len(cfg.Caps) != 2 {
		t.Errorf("caps = %v", cfg.Caps)
	}
	if cfg.Path() != path {
		t.Errorf("Path() = %q, want %q", cfg.Path(), path)
	}
}

func TestLoadNormalizes(t *testing.T) {
	path := writeConfig(t, t.TempDir(), `
separator_block_width = 900
pixels_per_cell = 0
block_padding = -3
separator_width = -1
caps = ["only one"]

[tags]
radius = -2
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.SeparatorBlockWidth != 255 {
		t.Errorf("SeparatorBlockWidth = %d, want 255", cfg.SeparatorBlockWidth)
	}
	if cfg.PixelsPerCell != 8 {
		t.Errorf("PixelsPerCell = %d, want fallback 8", cfg.PixelsPerCell)
	}
	if cfg.BlockPadding != 0 || cfg.SeparatorWidth != 0 || cfg.Tags.Radius != 0 {
		t.Errorf("negatives not clamped: %d %v %v", cfg.BlockPadding, cfg.SeparatorWidth, cfg.Tags.Radius)
	}
	if cfg.Caps != nil {
		t.Errorf("Caps = %v, want nil", cfg.Caps)
	}
}

func TestLoadErrors(t *testing.T) {
	dir := t.TempDir()

	cfg, err := Load(filepath.Join(dir, "missing.toml"))
	if err == nil {
		t.Error("missing file: want error")
	}
	if cfg == nil || cfg.StatusCommand != "i3status" {
		t.Errorf("missing file: want defaults, got %+v", cfg)
	}

	path := writeConfig(t, dir, `[colors]
background = "nope"
`)
	cfg, err = Load(path)
	if err == nil {
		t.Error("bad colour: want error")
	}
	if cfg.Colors.Background != theme.DefaultPalette.Background {
		t.Errorf("bad colour: want default palette, got %v", cfg.Colors.Background)
	}
}

func TestLoadSearchPath(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)
	t.Setenv("HOME", t.TempDir())
	if err := os.MkdirAll(filepath.Join(dir, "termbar"), 0o755); err != nil {
		t.Fatal(err)
	}
	writeConfig(t, filepath.Join(dir, "termbar"), `status_command = "found"`)

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.StatusCommand != "found" {
		t.Errorf("StatusCommand = %q", cfg.StatusCommand)
	}
}

func TestCells(t *testing.T) {
	cfg := Defaults()
	tests := map[int]int{0: 0, -5: 0, 1: 1, 3: 1, 4: 1, 9: 1, 12: 2, 16: 2, 20: 3}
	for px, want := range tests {
		if got := cfg.Cells(px); got != want {
			t.Errorf("Cells(%d) = %d, want %d", px, got, want)
		}
	}
}

func TestWatch(t *testing.T) {
	dir := t.TempDir()
	path := writeConfig(t, dir, `status_command = "one"`)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	changes := make(chan *Config, 8)
	err := Watch(ctx, path, func(cfg *Config, err error) {
		if err == nil {
			changes <- cfg
		}
	})
	if err != nil {
		t.Fatalf("Watch() error = %v", err)
	}

	writeConfig(t, dir, `status_command = "two"`)

	deadline := time.After(5 * time.Second)
	for {
		select {
		case cfg := <-changes:
			if cfg.StatusCommand == "two" {
				return
			}
		case <-deadline:
			t.Fatal("no reload observed")
		}
	}
}

func TestStatusModules(t *testing.T) {
	path := writeConfig(t, t.TempDir(), `
[status]
tick_hz = 50

[status.modules.clock]
enabled = true
format = "15:04"

[status.modules.mem]
enabled = true
format = "USED"
warn_percent = 95
danger_percent = 20

[status.modules.cpu]
enabled = false
precision = 4
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	st := cfg.Status
	if got := st.ModuleOrder(); len(got) != 3 || got[0] != "clock" || got[1] != "mem" || got[2] != "cpu" {
		t.Errorf("ModuleOrder() = %v", got)
	}
	if st.TickHz != 20 {
		t.Errorf("tick_hz = %d, want 20", st.TickHz)
	}
	if st.Modules.Mem.Format != "used" {
		t.Errorf("mem format = %q, want used", st.Modules.Mem.Format)
	}
	if st.Modules.Mem.WarnPercent != 95 || st.Modules.Mem.DangerPercent != 100 {
		t.Errorf("mem thresholds = %d/%d, want 95/100", st.Modules.Mem.WarnPercent, st.Modules.Mem.DangerPercent)
	}
	if st.Modules.CPU.Enabled || st.Modules.CPU.Precision != 1 {
		t.Errorf("cpu = %+v", st.Modules.CPU)
	}
	if st.Modules.Clock.Format != "15:04" || st.Modules.Clock.AltFormat == "" {
		t.Errorf("clock = %+v", st.Modules.Clock)
	}
}

func TestStatusDefaultsHaveNoOrder(t *testing.T) {
	if got := Defaults().Status.ModuleOrder(); len(got) != 0 {
		t.Errorf("default ModuleOrder() = %v, want empty", got)
	}
}
