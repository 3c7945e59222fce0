package statuscmd

import (
	"errors"
	"testing"

	"termbar/blocks"
	"termbar/stream"
)

func feedAll(t *testing.T, p *Parser, chunks ...string) ([]blocks.Block, bool) {
	t.Helper()
	var last []blocks.Block
	var got bool
	for _, c := range chunks {
		bs, ok, err := p.Feed([]byte(c))
		if err != nil {
			t.Fatalf("Feed(%q) error = %v", c, err)
		}
		if ok {
			last, got = bs, true
		}
	}
	return last, got
}

func TestParserProtocol(t *testing.T) {
	p := NewParser(blocks.Defaults{SeparatorBlockWidth: 7})

	if _, ok := feedAll(t, p, `{"version":1,"click`); ok {
		t.Fatal("blocks before header")
	}
	if _, seen := p.Header(); seen {
		t.Fatal("header reported before it was complete")
	}

	bs, ok := feedAll(t, p, `_events":true}`+"\n[\n", `[{"full_text":"a"}]`, ",\n")
	if !ok {
		t.Fatal("no blocks after first line")
	}
	h, seen := p.Header()
	if !seen || h.Version != 1 || !h.ClickEvents {
		t.Errorf("Header() = %+v, %v", h, seen)
	}
	if len(bs) != 1 || bs[0].FullText != "a" || !bs[0].Separator || bs[0].SeparatorBlockWidth != 7 {
		t.Errorf("blocks = %+v", bs)
	}

	bs, ok = feedAll(t, p, `[{"full_text":"b"}],`+"\n"+`[{"full_text":"c","separator":false}],`+"\n"+`[{"full_text":"d"`)
	if !ok || len(bs) != 1 || bs[0].FullText != "c" || bs[0].Separator {
		t.Errorf("burst = %+v, %v; want newest complete line c", bs, ok)
	}

	bs, ok = feedAll(t, p, "}]\n")
	if !ok || bs[0].FullText != "d" {
		t.Errorf("completed tail = %+v, %v", bs, ok)
	}
}

func TestParserHeaderAndBodyInOneChunk(t *testing.T) {
	p := NewParser(blocks.Defaults{})
	bs, ok := feedAll(t, p, "{\"version\":1}\n[\n[{\"full_text\":\"x\"},{\"full_text\":\"y\"}]\n")
	if !ok || len(bs) != 2 {
		t.Fatalf("blocks = %+v, %v", bs, ok)
	}
}

func TestParserEmptyList(t *testing.T) {
	p := NewParser(blocks.Defaults{})
	bs, ok := feedAll(t, p, "{\"version\":1}\n[\n[]\n")
	if !ok || len(bs) != 0 {
		t.Errorf("empty list = %+v, %v", bs, ok)
	}
}

func TestParserPlainText(t *testing.T) {
	p := NewParser(blocks.Defaults{SeparatorBlockWidth: 3})
	if _, ok := feedAll(t, p, "  12:00"); ok {
		t.Fatal("incomplete plain line produced blocks")
	}
	bs, ok := feedAll(t, p, "\r\n12:01\n12:0")
	if !ok || len(bs) != 1 || bs[0].FullText != "12:01" {
		t.Errorf("plain blocks = %+v, %v", bs, ok)
	}
	if _, seen := p.Header(); seen {
		t.Error("plain text reported a header")
	}
}

func TestParserMalformed(t *testing.T) {
	tests := []struct {
		name   string
		chunks []string
	}{
		{name: "bad header", chunks: []string{"{\"version\":1,}\n"}},
		{name: "no opening bracket", chunks: []string{"{\"version\":1}\n{}\n"}},
		{name: "bad line", chunks: []string{"{\"version\":1}\n[\n", "[{\"full_text\":\"a\"}] nope\n"}},
		{name: "wrong type", chunks: []string{"{\"version\":1}\n[\n", "[{\"full_text\":3}]\n"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := NewParser(blocks.Defaults{})
			var err error
			for _, c := range tt.chunks {
				if _, _, err = p.Feed([]byte(c)); err != nil {
					break
				}
			}
			if !errors.Is(err, stream.ErrMalformed) {
				t.Errorf("error = %v, want ErrMalformed", err)
			}
		})
	}
}

func blocksDefaults() blocks.Defaults {
	return blocks.Defaults{SeparatorBlockWidth: blocks.DefaultSeparatorBlockWidth}
}
