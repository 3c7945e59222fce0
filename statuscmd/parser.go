package statuscmd

import (
	"errors"
	"fmt"
	"strings"

	"termbar/blocks"
	"termbar/stream"
)

type parserState int

const (
	stateStart parserState = iota
	stateOpen
	stateBody
	statePlain
)

// Parser turns status command output into block lists.
//
// Output starting with '{' is the JSON protocol: a header object, the '['
// opening an endless array, then one block list per line. Anything else is
// plain text, where each line becomes a single block.
type Parser struct {
	buf      stream.Buffer
	state    parserState
	header   blocks.Header
	defaults blocks.Defaults
}

func NewParser(d blocks.Defaults) *Parser {
	return &Parser{defaults: d}
}

// Header returns the protocol header once it has been read.
func (p *Parser) Header() (blocks.Header, bool) {
	return p.header, p.state == stateOpen || p.state == stateBody
}

// Feed consumes a chunk of output. ok reports whether a new block list is
// available; only the newest complete one is returned.
func (p *Parser) Feed(chunk []byte) (bs []blocks.Block, ok bool, err error) {
	p.buf.Append(chunk)
	for {
		switch p.state {
		case stateStart:
			data := p.buf.Bytes()
			i := skipSpace(data)
			if i == len(data) {
				p.buf.Reset()
				return nil, false, nil
			}
			if data[i] != '{' {
				p.state = statePlain
				continue
			}
			h, n, err := stream.ExtractFirst[blocks.Header](data[i:])
			if err != nil {
				return nil, false, fmt.Errorf("header: %w", err)
			}
			if h == nil {
				return nil, false, nil
			}
			p.header = *h
			p.buf.Consume(i + n)
			p.state = stateOpen

		case stateOpen:
			data := p.buf.Bytes()
			i := skipSpace(data)
			if i == len(data) {
				p.buf.Reset()
				return nil, false, nil
			}
			if data[i] != '[' {
				return nil, false, fmt.Errorf("%w: want '[' after header, got %q", stream.ErrMalformed, data[i])
			}
			p.buf.Consume(i + 1)
			p.state = stateBody

		case stateBody:
			raws, err := stream.Feed[[]blocks.Raw](&p.buf, nil)
			if err != nil {
				return nil, false, err
			}
			if raws == nil {
				return nil, false, nil
			}
			return blocks.Decode(*raws, p.defaults), true, nil

		case statePlain:
			line, tail, found := stream.LastCompleteLine(p.buf.Bytes())
			if !found {
				return nil, false, nil
			}
			text := strings.TrimRight(string(line), "\r")
			p.buf.Consume(p.buf.Len() - len(tail))
			return []blocks.Block{{
				FullText:            text,
				Separator:           true,
				SeparatorBlockWidth: p.defaults.SeparatorBlockWidth,
			}}, true, nil

		default:
			return nil, false, errors.New("parser in unknown state")
		}
	}
}

func skipSpace(b []byte) int {
	i := 0
	for i < len(b) && (b[i] == ' ' || b[i] == '\t' || b[i] == '\r' || b[i] == '\n') {
		i++
	}
	return i
}
