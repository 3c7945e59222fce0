package clicks

import (
	"bytes"
	"encoding/json"
	"io"
	"sync"
)

// Writer emits the click event stream: an opening '[' line, then one event
// per line, every event after the first prefixed with a comma.
type Writer struct {
	mu      sync.Mutex
	w       io.Writer
	started bool
	n       int
}

func NewWriter(w io.Writer) *Writer {
	return &Writer{w: w}
}

// Write sends one click event. It is safe for concurrent use.
func (w *Writer) Write(c Click) error {
	if c.Modifiers == nil {
		c.Modifiers = []string{}
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	var buf bytes.Buffer
	if !w.started {
		buf.WriteString("[\n")
	}
	if w.n > 0 {
		buf.WriteByte(',')
	}
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(c); err != nil {
		return err
	}
	if _, err := w.w.Write(buf.Bytes()); err != nil {
		return err
	}
	w.started = true
	w.n++
	return nil
}
