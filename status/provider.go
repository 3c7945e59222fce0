// Package status is termbar's built-in status command. It samples a few
// system metrics and writes them as an i3bar protocol stream, reacting to
// click events read back from stdin.
package status

import (
	"termbar/blocks"
	"termbar/clicks"
	"termbar/config"
	"termbar/theme"
)

// DefaultSpacer is the separator_block_width, in pixels, of every block
// the built-in providers emit.
const DefaultSpacer = 12

// Provider supplies an up-to-date Block, refreshing internal state at most
// when MaybeRefresh is called and it decides enough time has passed.
// MaybeRefresh reports whether the Block changed.
type Provider interface {
	Name() string
	MaybeRefresh(now int64) (changed bool)
	Current() blocks.Block
}

// Clicker is implemented by providers that react to clicks on their block.
// Click reports whether the Block changed.
type Clicker interface {
	Click(c clicks.Click) (changed bool)
}

// Module describes how to enable and build a provider.
type Module struct {
	Name   string
	Enable func(*config.Status) bool
	Build  func(*config.Status, theme.Palette) Provider
}

// Registry maps provider names to modules, remembering registration order.
type Registry struct {
	modules map[string]Module
	order   []string
}

// Register adds a module. Re-registering a name replaces it but keeps
// its original position.
func (r *Registry) Register(mod Module) {
	if r.modules == nil {
		r.modules = map[string]Module{}
	}
	if _, exists := r.modules[mod.Name]; !exists {
		r.order = append(r.order, mod.Name)
	}
	r.modules[mod.Name] = mod
}

// Build returns provider instances in the order:
//  1. order of module tables as listed in the config file, only those listed;
//  2. otherwise registration order.
//
// Disabled and unknown modules are skipped.
func (r *Registry) Build(st *config.Status, pal theme.Palette) []Provider {
	order := st.ModuleOrder()
	if len(order) == 0 {
		order = r.order
	}
	var providers []Provider
	for _, name := range order {
		mod, ok := r.modules[name]
		if !ok {
			continue
		}
		if mod.Enable != nil && !mod.Enable(st) {
			continue
		}
		providers = append(providers, mod.Build(st, pal))
	}
	return providers
}

// Builtin returns a registry holding the cpu, mem and clock providers.
func Builtin() *Registry {
	r := &Registry{}
	r.Register(Module{
		Name:   "cpu",
		Enable: func(st *config.Status) bool { return st.Modules.CPU.Enabled },
		Build: func(st *config.Status, pal theme.Palette) Provider {
			return NewCPU(st.Modules.CPU, pal, procStat)
		},
	})
	r.Register(Module{
		Name:   "mem",
		Enable: func(st *config.Status) bool { return st.Modules.Mem.Enabled },
		Build: func(st *config.Status, pal theme.Palette) Provider {
			return NewMemory(st.Modules.Mem, pal, procMeminfo)
		},
	})
	r.Register(Module{
		Name:   "clock",
		Enable: func(st *config.Status) bool { return st.Modules.Clock.Enabled },
		Build: func(st *config.Status, _ theme.Palette) Provider {
			return NewClock(st.Modules.Clock)
		},
	})
	return r
}

// paint applies the colours of sev to b. Urgent blocks use the bar's own
// urgent colours.
func paint(b blocks.Block, sev theme.Severity, pal theme.Palette) blocks.Block {
	switch sev {
	case theme.SeverityUrgent:
		b.Urgent = true
	case theme.SeverityWarning:
		if p, ok := pal.ColorsFor(sev); ok {
			b.Color = p.Fg.Hex()
		}
	}
	return b
}

func severity(percent float64, warn, danger int) theme.Severity {
	switch {
	case percent >= float64(danger):
		return theme.SeverityUrgent
	case percent >= float64(warn):
		return theme.SeverityWarning
	}
	return theme.SeverityNormal
}
