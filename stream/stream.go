// Package stream recovers complete JSON values from a byte stream that
// arrives in arbitrary chunks.
//
// The functions here never mutate their input. They report offsets and
// remainders so the caller, which owns the accumulating Buffer, decides
// what to keep across reads.
package stream

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
)

// ErrMalformed reports a syntax error that truncation cannot explain.
// Incomplete input is never reported as an error.
var ErrMalformed = errors.New("malformed value")

// skipSeparators returns the number of leading space, comma and newline
// bytes. Other whitespace is left for the JSON decoder.
func skipSeparators(buf []byte) int {
	i := 0
	for i < len(buf) && (buf[i] == ' ' || buf[i] == ',' || buf[i] == '\n') {
		i++
	}
	return i
}

// ExtractFirst decodes the first value in buf.
//
// On success it returns the value and the offset just past it. When buf ends
// before the value is complete it returns a nil value and the offset where
// the incomplete value starts; the caller keeps buf[offset:] and retries once
// more bytes arrive.
func ExtractFirst[T any](buf []byte) (*T, int, error) {
	start := skipSeparators(buf)
	dec := json.NewDecoder(bytes.NewReader(buf[start:]))
	var v T
	err := dec.Decode(&v)
	switch {
	case err == nil:
		return &v, start + int(dec.InputOffset()), nil
	case errors.Is(err, io.EOF):
		// Only whitespace left.
		return nil, len(buf), nil
	case errors.Is(err, io.ErrUnexpectedEOF):
		return nil, start, nil
	}
	return nil, start, fmt.Errorf("%w at byte %d: %v", ErrMalformed, start, err)
}

// ExtractLast decodes values from buf until none is complete and returns the
// newest one with the bytes left over.
//
// A malformed value anywhere fails the whole call, even when an earlier value
// in buf decoded fine.
func ExtractLast[T any](buf []byte) (*T, []byte, error) {
	var last *T
	for {
		v, n, err := ExtractFirst[T](buf)
		if err != nil {
			return nil, nil, err
		}
		buf = buf[n:]
		if v == nil {
			return last, buf, nil
		}
		last = v
	}
}

// LastCompleteLine returns the most recently terminated line of buf and
// everything after its newline. Older complete lines are skipped. ok is
// false while buf holds no newline.
func LastCompleteLine(buf []byte) (line, tail []byte, ok bool) {
	last := bytes.LastIndexByte(buf, '\n')
	if last < 0 {
		return nil, nil, false
	}
	tail = buf[last+1:]
	prev := bytes.LastIndexByte(buf[:last], '\n')
	return buf[prev+1 : last], tail, true
}
