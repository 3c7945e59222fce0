package status

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"termbar/blocks"
	"termbar/clicks"
)

// Producer writes the i3bar protocol stream for a set of providers.
type Producer struct {
	providers []Provider
	interval  time.Duration
	out       io.Writer
	logger    *log.Logger

	buf     bytes.Buffer
	started bool
}

// NewProducer refreshes providers tickHz times per second.
func NewProducer(providers []Provider, tickHz int, out io.Writer, logger *log.Logger) *Producer {
	return &Producer{
		providers: providers,
		interval:  time.Second / time.Duration(max(tickHz, 1)),
		out:       out,
		logger:    logger,
	}
}

// Run writes the header and a first block list, then a new list whenever a
// provider changes, until ctx is done or writing fails. Click events are
// read from in. When in is an io.Closer, Run closes it on return so the
// click reader stops; otherwise the caller owns unblocking it.
func (p *Producer) Run(ctx context.Context, in io.Reader) error {
	if c, ok := in.(io.Closer); ok {
		defer c.Close()
	}
	if err := p.writeHeader(); err != nil {
		return err
	}
	if err := p.emit(); err != nil {
		return err
	}

	clickCh := make(chan clicks.Click, 16)
	go func() {
		err := clicks.Read(in, func(c clicks.Click) {
			select {
			case clickCh <- c:
			default:
				p.logger.Debug("click dropped", "name", c.Name)
			}
		})
		if err != nil && ctx.Err() == nil {
			p.logger.Warn("click stream", "err", err)
		}
	}()

	timer := time.NewTimer(time.Until(nextBoundary(time.Now(), p.interval)))
	defer timer.Stop()
	for {
		changed := false
		select {
		case <-ctx.Done():
			return ctx.Err()
		case c := <-clickCh:
			changed = p.click(c)
		case now := <-timer.C:
			changed = p.refresh(now.UnixNano())
			timer.Reset(time.Until(nextBoundary(time.Now(), p.interval)))
		}
		if changed {
			if err := p.emit(); err != nil {
				return err
			}
		}
	}
}

func (p *Producer) writeHeader() error {
	h, err := json.Marshal(blocks.Header{Version: 1, ClickEvents: true})
	if err != nil {
		return err
	}
	_, err = io.WriteString(p.out, string(h)+"\n[\n")
	return err
}

// emit writes the current blocks. Every list after the first is comma
// prefixed.
func (p *Producer) emit() error {
	list := make([]blocks.Block, len(p.providers))
	for i, pr := range p.providers {
		list[i] = pr.Current()
	}
	p.buf.Reset()
	if p.started {
		p.buf.WriteByte(',')
	}
	enc := json.NewEncoder(&p.buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(list); err != nil {
		return err
	}
	p.started = true
	_, err := p.out.Write(p.buf.Bytes())
	return err
}

func (p *Producer) refresh(now int64) bool {
	changed := false
	for _, pr := range p.providers {
		if pr.MaybeRefresh(now) {
			changed = true
		}
	}
	return changed
}

// click routes an event to the provider that owns the block.
func (p *Producer) click(c clicks.Click) bool {
	for _, pr := range p.providers {
		if pr.Name() != c.Name {
			continue
		}
		if cl, ok := pr.(Clicker); ok {
			p.logger.Debug("click", "name", c.Name, "button", int(c.Button))
			return cl.Click(c)
		}
		return false
	}
	return false
}

// nextBoundary returns the next multiple of interval after now.
func nextBoundary(now time.Time, interval time.Duration) time.Time {
	next := now.Truncate(interval).Add(interval)
	if !next.After(now) {
		next = next.Add(interval)
	}
	return next
}
