package stream

// Buffer accumulates bytes read from a producer that have not been consumed
// by a completed extraction. It is not safe for concurrent use.
type Buffer struct {
	data []byte
}

// Append adds freshly read bytes.
func (b *Buffer) Append(p []byte) {
	b.data = append(b.data, p...)
}

// Bytes returns the retained bytes. The slice is only valid until the next
// Append or Consume.
func (b *Buffer) Bytes() []byte { return b.data }

// Len returns the number of retained bytes.
func (b *Buffer) Len() int { return len(b.data) }

// Consume drops the first n bytes.
func (b *Buffer) Consume(n int) {
	if n >= len(b.data) {
		b.data = b.data[:0]
		return
	}
	if n <= 0 {
		return
	}
	k := copy(b.data, b.data[n:])
	b.data = b.data[:k]
}

// Reset drops everything.
func (b *Buffer) Reset() { b.data = b.data[:0] }

// Feed appends p to buf and decodes the newest complete line.
//
// It returns nil while no line is complete or when the newest line holds no
// complete value. Every byte up to and including the newest newline is
// dropped from buf, malformed lines included, so a bad line is reported once.
func Feed[T any](buf *Buffer, p []byte) (*T, error) {
	buf.Append(p)
	line, tail, ok := LastCompleteLine(buf.Bytes())
	if !ok {
		return nil, nil
	}
	consumed := buf.Len() - len(tail)
	v, _, err := ExtractLast[T](line)
	buf.Consume(consumed)
	if err != nil {
		return nil, err
	}
	return v, nil
}
