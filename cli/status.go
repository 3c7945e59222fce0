package cli

import (
	"github.com/spf13/cobra"

	"termbar/config"
	"termbar/status"
)

// statusCommand runs the built-in status command, e.g.
// status_command = "termbar status".
func (c *CLI) statusCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Write cpu, memory and clock blocks as an i3bar protocol stream",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load(c.configPath)
			if err != nil {
				c.Logger.Debug("config", "err", err)
			}
			providers := status.Builtin().Build(&cfg.Status, cfg.Colors)
			c.Logger.Debug("status providers", "count", len(providers), "tick_hz", cfg.Status.TickHz)
			p := status.NewProducer(providers, cfg.Status.TickHz, cmd.OutOrStdout(), c.Logger)
			return p.Run(cmd.Context(), cmd.InOrStdin())
		},
	}
}
