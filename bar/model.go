// Package bar draws the status bar as a one-row bubbletea program.
package bar

import (
	"slices"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"termbar/blocks"
	"termbar/clicks"
	"termbar/config"
	"termbar/tags"
)

// errorBlockName names the block drawn when the status command fails.
const errorBlockName = "termbar"

// ClickSender delivers click events to the status command.
type ClickSender interface {
	SendClick(clicks.Click) error
}

// BlocksMsg replaces the block list.
type BlocksMsg []blocks.Block

// ErrorMsg puts the bar in its error state.
type ErrorMsg struct{ Err error }

// ConfigMsg swaps in a reloaded configuration.
type ConfigMsg struct{ Config *config.Config }

// ClickMsg is a click at column X that did not come from the terminal.
type ClickMsg struct {
	X      int
	Button clicks.Button
}

type Options struct {
	Config   *config.Config
	Tags     tags.Source // defaults to a Static source over the configured names
	Sender   ClickSender
	Logger   *log.Logger
	Renderer *lipgloss.Renderer
	Store    *Store
}

type Model struct {
	cfg      *config.Config
	tags     tags.Source
	sender   ClickSender
	logger   *log.Logger
	renderer *lipgloss.Renderer
	store    *Store

	blocks []blocks.Block
	err    error
	width  int

	blocksVer, tagsVer, cfgVer uint64

	cache Cache
	frame Frame
}

func New(o Options) *Model {
	m := &Model{
		cfg:      o.Config,
		tags:     o.Tags,
		sender:   o.Sender,
		logger:   o.Logger,
		renderer: o.Renderer,
		store:    o.Store,
	}
	if m.cfg == nil {
		m.cfg = config.Defaults()
	}
	if m.tags == nil {
		m.tags = tags.NewStatic(m.cfg.Tags.Names, m.cfg.Tags.LayoutName)
	}
	if m.logger == nil {
		m.logger = log.Default()
	}
	if m.renderer == nil {
		m.renderer = lipgloss.DefaultRenderer()
	}
	m.relayout()
	return m
}

func (m *Model) Init() tea.Cmd { return nil }

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		}
	case tea.WindowSizeMsg:
		m.width = msg.Width
	case tea.MouseMsg:
		if msg.Action == tea.MouseActionPress {
			if b := buttonOf(msg.Button); b != clicks.ButtonNone {
				m.click(msg.X, b)
			}
		}
	case ClickMsg:
		m.click(msg.X, msg.Button)
	case BlocksMsg:
		m.blocks, m.err = msg, nil
		m.blocksVer++
	case ErrorMsg:
		m.logger.Error("status command failed", "err", msg.Err)
		m.blocks, m.err = []blocks.Block{blocks.ErrorBlock(errorBlockName, msg.Err.Error())}, msg.Err
		m.blocksVer++
	case ConfigMsg:
		m.setConfig(msg.Config)
	}
	m.relayout()
	return m, nil
}

func (m *Model) View() string {
	if m.width <= 0 {
		return ""
	}
	return Render(m.frame, m.cfg, m.renderer)
}

// Frame returns the current layout.
func (m *Model) Frame() Frame { return m.frame }

// Err returns the last status command error, cleared by the next block list.
func (m *Model) Err() error { return m.err }

func (m *Model) setConfig(cfg *config.Config) {
	if cfg == nil {
		return
	}
	if st, ok := m.tags.(*tags.Static); ok &&
		(!slices.Equal(tagNames(st.Tags()), cfg.Tags.Names) || st.LayoutName() != cfg.Tags.LayoutName) {
		m.tags = tags.NewStatic(cfg.Tags.Names, cfg.Tags.LayoutName)
		m.tagsVer++
	}
	m.cfg = cfg
	m.cfgVer++
	m.logger.Info("config reloaded", "path", cfg.Path())
}

func (m *Model) relayout() {
	key := Key{Blocks: m.blocksVer, Tags: m.tagsVer, Config: m.cfgVer, Width: m.width}
	var ts []tags.Tag
	f, rebuilt := m.cache.Get(key, func() Frame {
		ts = m.tags.Tags()
		return Layout(m.blocks, ts, m.tags.LayoutName(), m.cfg, m.width)
	})
	m.frame = f
	if rebuilt && m.store != nil {
		m.store.Publish(&Snapshot{Blocks: m.blocks, Tags: ts, Frame: f})
	}
}

// click routes a press at column x to the tag strip or to the block under it.
func (m *Model) click(x int, b clicks.Button) {
	fx := float64(x)
	if name, ok := m.frame.Tags.Regions.Hit(fx); ok {
		if m.tags.Click(name, b) {
			m.tagsVer++
		}
		return
	}
	reg, ok := m.frame.Blocks.Regions.HitRegion(fx)
	if !ok || m.sender == nil {
		return
	}
	ev := clicks.Click{
		Name:      reg.Key.Name,
		Instance:  reg.Key.Instance,
		Button:    b,
		X:         x,
		RelativeX: x - col(reg.X),
		Width:     col(reg.Width),
		Height:    1,
	}
	if err := m.sender.SendClick(ev); err != nil {
		m.logger.Warn("send click", "name", ev.Name, "err", err)
		return
	}
	m.logger.Debug("click", "name", ev.Name, "instance", ev.Instance, "button", int(b))
}

func buttonOf(b tea.MouseButton) clicks.Button {
	switch b {
	case tea.MouseButtonLeft:
		return clicks.ButtonLeft
	case tea.MouseButtonMiddle:
		return clicks.ButtonMiddle
	case tea.MouseButtonRight:
		return clicks.ButtonRight
	case tea.MouseButtonWheelUp:
		return clicks.ButtonWheelUp
	case tea.MouseButtonWheelDown:
		return clicks.ButtonWheelDown
	case tea.MouseButtonWheelLeft:
		return clicks.ButtonWheelLeft
	case tea.MouseButtonWheelRight:
		return clicks.ButtonWheelRight
	case tea.MouseButtonBackward:
		return clicks.ButtonBack
	case tea.MouseButtonForward:
		return clicks.ButtonForward
	}
	return clicks.ButtonNone
}

func tagNames(ts []tags.Tag) []string {
	names := make([]string, len(ts))
	for i, t := range ts {
		names[i] = t.Name
	}
	return names
}
