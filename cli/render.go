package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"termbar/bar"
	"termbar/blocks"
	"termbar/config"
	"termbar/statuscmd"
	"termbar/tags"
)

const defaultWidth = 80 // used when stdout is not a terminal

// renderOpts holds the command-line flags for the render command.
type renderOpts struct {
	input  string // protocol stream file; "-" or empty reads stdin
	width  int    // bar width in cells; 0 uses the terminal width
	asJSON bool   // print the layout frame instead of the row
}

func (c *CLI) renderCommand() *cobra.Command {
	var opts renderOpts
	cmd := &cobra.Command{
		Use:   "render",
		Short: "Render the newest block list of a status stream once",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load(c.configPath)
			if err != nil {
				c.Logger.Debug("config", "err", err)
			}

			in := cmd.InOrStdin()
			if opts.input != "" && opts.input != "-" {
				f, err := os.Open(opts.input)
				if err != nil {
					return err
				}
				defer f.Close()
				in = f
			}
			width := opts.width
			if width <= 0 {
				width = terminalWidth()
			}
			c.Logger.Debug("render", "width", width, "input", opts.input)
			return renderStream(in, cmd.OutOrStdout(), cfg, width, opts.asJSON)
		},
	}
	cmd.Flags().StringVarP(&opts.input, "input", "i", "", "read the status stream from a file instead of stdin")
	cmd.Flags().IntVarP(&opts.width, "width", "w", 0, "bar width in cells (default: terminal width)")
	cmd.Flags().BoolVar(&opts.asJSON, "json", false, "print the layout frame as JSON")
	return cmd
}

func terminalWidth() int {
	if w, _, err := term.GetSize(int(os.Stdout.Fd())); err == nil && w > 0 {
		return w
	}
	return defaultWidth
}

// renderStream reads a whole status stream and writes the newest block
// list laid out at width.
func renderStream(r io.Reader, w io.Writer, cfg *config.Config, width int, asJSON bool) error {
	bs, err := readBlocks(r, cfg.BlockDefaults())
	if err != nil {
		return err
	}
	src := tags.NewStatic(cfg.Tags.Names, cfg.Tags.LayoutName)
	frame := bar.Layout(bs, src.Tags(), src.LayoutName(), cfg, width)
	if asJSON {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(frame)
	}
	_, err = fmt.Fprintln(w, bar.Render(frame, cfg, lipgloss.NewRenderer(w)))
	return err
}

// readBlocks returns the newest block list in r. A final line without a
// newline still counts.
func readBlocks(r io.Reader, d blocks.Defaults) ([]blocks.Block, error) {
	p := statuscmd.NewParser(d)
	var (
		newest []blocks.Block
		seen   bool
		last   byte
	)
	feed := func(b []byte) error {
		bs, ok, err := p.Feed(b)
		if err != nil {
			return err
		}
		if ok {
			newest, seen = bs, true
		}
		return nil
	}

	chunk := make([]byte, 4096)
	for {
		n, err := r.Read(chunk)
		if n > 0 {
			last = chunk[n-1]
			if ferr := feed(chunk[:n]); ferr != nil {
				return nil, ferr
			}
		}
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, err
		}
	}
	if last != 0 && last != '\n' {
		if err := feed([]byte{'\n'}); err != nil {
			return nil, err
		}
	}
	if !seen {
		return nil, errors.New("no block list in input")
	}
	return newest, nil
}
