// Package statuscmd runs the status command and turns its output into
// block updates.
package statuscmd

import (
	"bufio"
	"context"
	"errors"
	"io"
	"os"
	"os/exec"
	"sync"
	"syscall"
	"time"

	"github.com/charmbracelet/log"
	"golang.org/x/sys/unix"

	"termbar/blocks"
	"termbar/clicks"
)

// Update carries either a new block list or the error that ended the
// status command. An Update with Err is the last one sent.
type Update struct {
	Blocks []blocks.Block
	Err    error
}

// Cmd is a running status command.
type Cmd struct {
	cmd    *exec.Cmd
	stdin  io.WriteCloser
	clicks *clicks.Writer
	logger *log.Logger

	mu     sync.Mutex
	header blocks.Header
	ready  bool

	killOnce sync.Once
	stderr   sync.WaitGroup // logStderr; done before Wait
}

// Start runs command through sh. Updates are delivered on the returned
// channel, which is closed after the final Update. Cancelling ctx kills
// the process.
func Start(ctx context.Context, command string, d blocks.Defaults, logger *log.Logger) (*Cmd, <-chan Update, error) {
	c := exec.CommandContext(ctx, "sh", "-c", command)
	// Own process group so children of the shell die with it.
	c.SysProcAttr = &syscall.SysProcAttr{Setpgid: true}
	c.Cancel = func() error { return killGroup(c.Process) }
	c.WaitDelay = time.Second
	stdout, err := c.StdoutPipe()
	if err != nil {
		return nil, nil, &Error{Code: CodeSpawn, Err: err}
	}
	stderr, err := c.StderrPipe()
	if err != nil {
		return nil, nil, &Error{Code: CodeSpawn, Err: err}
	}
	stdin, err := c.StdinPipe()
	if err != nil {
		return nil, nil, &Error{Code: CodeSpawn, Err: err}
	}
	if err := c.Start(); err != nil {
		return nil, nil, &Error{Code: CodeSpawn, Err: err}
	}

	sc := &Cmd{
		cmd:    c,
		stdin:  stdin,
		clicks: clicks.NewWriter(stdin),
		logger: logger,
	}
	logger.Info("status command started", "command", command, "pid", c.Process.Pid)

	updates := make(chan Update, 4)
	sc.stderr.Add(1)
	go func() {
		defer sc.stderr.Done()
		sc.logStderr(stderr)
	}()
	go sc.pump(ctx, stdout, NewParser(d), updates)
	return sc, updates, nil
}

// pump reads stdout until it fails, feeding every chunk to the parser.
func (c *Cmd) pump(ctx context.Context, r io.Reader, p *Parser, out chan<- Update) {
	defer close(out)
	send := func(u Update) bool {
		select {
		case out <- u:
			return true
		case <-ctx.Done():
			return false
		}
	}

	chunk := make([]byte, 4096)
	for {
		n, rerr := r.Read(chunk)
		if n > 0 {
			bs, ok, err := p.Feed(chunk[:n])
			if h, seen := p.Header(); seen {
				c.setHeader(h)
			}
			if err != nil {
				c.Kill()
				_ = c.wait()
				send(Update{Err: &Error{Code: CodeMalformed, Err: err}})
				return
			}
			if ok && !send(Update{Blocks: bs}) {
				return
			}
		}
		if rerr != nil {
			err := c.wait()
			if err == nil && !errors.Is(rerr, io.EOF) {
				err = rerr
			}
			send(Update{Err: &Error{Code: CodeExited, Err: err}})
			return
		}
	}
}

// wait reaps the process once stderr has been drained.
func (c *Cmd) wait() error {
	c.stderr.Wait()
	return c.cmd.Wait()
}

func (c *Cmd) setHeader(h blocks.Header) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.ready {
		return
	}
	c.header = h
	c.ready = true
	c.logger.Debug("status command header", "version", h.Version, "click_events", h.ClickEvents)
}

// Header returns the protocol header, if the command sent one.
func (c *Cmd) Header() (blocks.Header, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.header, c.ready
}

// SendClick forwards a click event. Commands that did not enable click
// events in their header are not sent anything.
func (c *Cmd) SendClick(cl clicks.Click) error {
	h, ok := c.Header()
	if !ok || !h.ClickEvents {
		return nil
	}
	return c.clicks.Write(cl)
}

func (c *Cmd) logStderr(r io.Reader) {
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		c.logger.Warn("status command", "stderr", sc.Text())
	}
}

// Kill stops the process. It is safe to call more than once.
func (c *Cmd) Kill() {
	c.killOnce.Do(func() {
		c.stdin.Close()
		_ = killGroup(c.cmd.Process)
	})
}

func killGroup(p *os.Process) error {
	if p == nil {
		return nil
	}
	if err := unix.Kill(-p.Pid, unix.SIGKILL); err != nil {
		return p.Kill()
	}
	return nil
}
