package cli

import (
	"context"
	"errors"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"termbar/bar"
	"termbar/config"
	"termbar/server"
	"termbar/statuscmd"
)

// barOpts holds the flags of the root command.
type barOpts struct {
	command   string // overrides status_command from the config
	debugAddr string // address of the debug HTTP server; empty disables it
	logFile   string // log destination; the terminal belongs to the bar
}

func (c *CLI) barCommand() *cobra.Command {
	var opts barOpts
	cmd := &cobra.Command{
		Use:          appName,
		Short:        "termbar draws an i3bar status line in the terminal",
		Long:         `termbar runs an i3bar/swaybar protocol status command and draws its blocks on one terminal row. Mouse clicks are sent back to the command as click events.`,
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return c.runBar(cmd.Context(), opts)
		},
	}
	cmd.Flags().StringVarP(&opts.command, "command", "c", "", "status command (overrides status_command)")
	cmd.Flags().StringVar(&opts.debugAddr, "debug-addr", "", "serve bar state over HTTP on this address")
	cmd.Flags().StringVar(&opts.logFile, "log-file", "", "log file (default: $XDG_STATE_HOME/termbar/termbar.log)")
	return cmd
}

func (c *CLI) runBar(ctx context.Context, opts barOpts) error {
	f, err := openLogFile(opts.logFile)
	if err != nil {
		return fmt.Errorf("open log file: %w", err)
	}
	defer f.Close()
	c.Logger.SetOutput(f)

	cfg, err := config.Load(c.configPath)
	if err != nil {
		c.Logger.Warn("config", "err", err)
	}
	if opts.command != "" {
		cfg.StatusCommand = opts.command
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	sc, updates, err := statuscmd.Start(ctx, cfg.StatusCommand, cfg.BlockDefaults(), c.Logger)
	if err != nil {
		return err
	}
	defer sc.Kill()

	store := &bar.Store{}
	model := bar.New(bar.Options{Config: cfg, Sender: sc, Logger: c.Logger, Store: store})
	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithMouseCellMotion(), tea.WithContext(ctx))

	go forward(updates, p.Send)

	if path := cfg.Path(); path != "" {
		onChange := func(next *config.Config, err error) {
			if err != nil {
				c.Logger.Warn("reload config", "err", err)
				return
			}
			if next.StatusCommand != cfg.StatusCommand && opts.command == "" {
				c.Logger.Info("status_command changed; restart to apply", "command", next.StatusCommand)
			}
			p.Send(bar.ConfigMsg{Config: next})
		}
		if err := config.Watch(ctx, path, onChange); err != nil {
			c.Logger.Warn("watch config", "err", err)
		}
	}

	if opts.debugAddr != "" {
		srv := server.New(store, server.InjectorFunc(func(m bar.ClickMsg) { p.Send(m) }), c.Logger)
		go func() {
			if err := srv.ListenAndServe(ctx, opts.debugAddr); err != nil {
				c.Logger.Error("debug server", "err", err)
			}
		}()
	}

	_, err = p.Run()
	if ctx.Err() != nil {
		return ctx.Err()
	}
	if err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		return err
	}
	return nil
}

// forward turns status command updates into bar messages until the
// command is gone.
func forward(updates <-chan statuscmd.Update, send func(tea.Msg)) {
	for u := range updates {
		if u.Err != nil {
			send(bar.ErrorMsg{Err: u.Err})
			continue
		}
		send(bar.BlocksMsg(u.Blocks))
	}
}
