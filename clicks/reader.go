package clicks

import (
	"errors"
	"fmt"
	"io"

	"termbar/stream"
)

// Read decodes a click event stream as written by Writer, calling fn for
// each event until r is exhausted or the array is closed. Events may be
// split across reads.
func Read(r io.Reader, fn func(Click)) error {
	var buf stream.Buffer
	opened := false
	chunk := make([]byte, 4096)
	for {
		n, rerr := r.Read(chunk)
		buf.Append(chunk[:n])
		for {
			data := buf.Bytes()
			i := skipBlank(data)
			if i == len(data) {
				buf.Reset()
				break
			}
			if !opened {
				if data[i] != '[' {
					return fmt.Errorf("%w: click stream must open with '[', got %q", stream.ErrMalformed, data[i])
				}
				buf.Consume(i + 1)
				opened = true
				continue
			}
			if data[i] == ']' {
				return nil
			}
			c, off, err := stream.ExtractFirst[Click](data)
			if err != nil {
				return err
			}
			buf.Consume(off)
			if c == nil {
				break
			}
			fn(*c)
		}
		if errors.Is(rerr, io.EOF) {
			return nil
		}
		if rerr != nil {
			return rerr
		}
	}
}

func skipBlank(b []byte) int {
	i := 0
	for i < len(b) && (b[i] == ' ' || b[i] == ',' || b[i] == '\n' || b[i] == '\r' || b[i] == '\t') {
		i++
	}
	return i
}
