package server

import (
	"context"
	"encoding/json"
	"io"
	"net"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/log"

	"termbar/bar"
	"termbar/blocks"
	"termbar/clicks"
	"termbar/config"
)

func testServer(t *testing.T) (*httptest.Server, *bar.Store, *[]bar.ClickMsg) {
	t.Helper()
	store := &bar.Store{}
	var got []bar.ClickMsg
	s := New(store, InjectorFunc(func(m bar.ClickMsg) { got = append(got, m) }), log.New(io.Discard))
	ts := httptest.NewServer(s.Handler())
	t.Cleanup(ts.Close)
	return ts, store, &got
}

func publish(store *bar.Store) {
	bs := []blocks.Block{{Name: "clock", Instance: "local", FullText: "12:00"}}
	cfg := config.Defaults()
	store.Publish(&bar.Snapshot{Blocks: bs, Frame: bar.Layout(bs, nil, "", cfg, 40)})
}

func TestHealthz(t *testing.T) {
	ts, _, _ := testServer(t)
	resp, err := http.Get(ts.URL + "/healthz")
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Errorf("status = %d", resp.StatusCode)
	}
}

func TestBlocks(t *testing.T) {
	ts, store, _ := testServer(t)

	var bs []blocks.Block
	getJSON(t, ts.URL+"/blocks", http.StatusOK, &bs)
	if len(bs) != 0 {
		t.Errorf("blocks before publish = %+v", bs)
	}

	publish(store)
	getJSON(t, ts.URL+"/blocks", http.StatusOK, &bs)
	if len(bs) != 1 || bs[0].Name != "clock" || bs[0].FullText != "12:00" {
		t.Errorf("blocks = %+v", bs)
	}
}

func TestFrame(t *testing.T) {
	ts, store, _ := testServer(t)

	resp, err := http.Get(ts.URL + "/frame")
	if err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusServiceUnavailable {
		t.Errorf("frame before publish: status = %d", resp.StatusCode)
	}

	publish(store)
	var f struct {
		Width  int `json:"width"`
		Blocks struct {
			Blocks []struct {
				X     float64 `json:"x"`
				Width float64 `json:"width"`
				Mode  string  `json:"mode"`
			} `json:"blocks"`
			Regions []struct {
				X   float64         `json:"x"`
				Key clicks.Identity `json:"key"`
			} `json:"regions"`
		} `json:"blocks"`
	}
	getJSON(t, ts.URL+"/frame", http.StatusOK, &f)
	if f.Width != 40 || len(f.Blocks.Blocks) != 1 {
		t.Fatalf("frame = %+v", f)
	}
	if b := f.Blocks.Blocks[0]; b.X != 33 || b.Width != 7 || b.Mode != "full" {
		t.Errorf("placed block = %+v", b)
	}
	if len(f.Blocks.Regions) != 1 || f.Blocks.Regions[0].Key != (clicks.Identity{Name: "clock", Instance: "local"}) {
		t.Errorf("regions = %+v", f.Blocks.Regions)
	}
}

func TestClick(t *testing.T) {
	tests := []struct {
		name   string
		body   string
		status int
		want   *bar.ClickMsg
	}{
		{"left", `{"x":12,"button":1}`, http.StatusAccepted, &bar.ClickMsg{X: 12, Button: clicks.ButtonLeft}},
		{"default button", `{"x":3}`, http.StatusAccepted, &bar.ClickMsg{X: 3, Button: clicks.ButtonLeft}},
		{"wheel", `{"x":0,"button":5}`, http.StatusAccepted, &bar.ClickMsg{X: 0, Button: clicks.ButtonWheelDown}},
		{"missing x", `{"button":1}`, http.StatusBadRequest, nil},
		{"negative x", `{"x":-1}`, http.StatusBadRequest, nil},
		{"unknown button", `{"x":1,"button":12}`, http.StatusBadRequest, nil},
		{"unknown field", `{"x":1,"y":2}`, http.StatusBadRequest, nil},
		{"not json", `x=1`, http.StatusBadRequest, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ts, _, got := testServer(t)
			resp, err := http.Post(ts.URL+"/click", "application/json", strings.NewReader(tt.body))
			if err != nil {
				t.Fatal(err)
			}
			resp.Body.Close()
			if resp.StatusCode != tt.status {
				t.Errorf("status = %d, want %d", resp.StatusCode, tt.status)
			}
			switch {
			case tt.want == nil && len(*got) != 0:
				t.Errorf("unexpected click %+v", *got)
			case tt.want != nil && (len(*got) != 1 || (*got)[0] != *tt.want):
				t.Errorf("clicks = %+v, want %+v", *got, *tt.want)
			}
		})
	}
}

func TestServeShutdown(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatal(err)
	}
	s := New(&bar.Store{}, InjectorFunc(func(bar.ClickMsg) {}), log.New(io.Discard))

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.Serve(ctx, ln) }()

	resp, err := http.Get("http://" + ln.Addr().String() + "/healthz")
	if err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()

	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Errorf("Serve() = %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("Serve did not return after cancel")
	}
}

func getJSON(t *testing.T, url string, status int, v any) {
	t.Helper()
	resp, err := http.Get(url)
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != status {
		t.Fatalf("GET %s: status = %d, want %d", url, resp.StatusCode, status)
	}
	if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
		t.Fatalf("GET %s: decode: %v", url, err)
	}
}
