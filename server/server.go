// Package server exposes the bar's state over HTTP for debugging.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"termbar/bar"
	"termbar/blocks"
	"termbar/clicks"
)

const shutdownTimeout = 2 * time.Second

// Injector delivers a synthetic click to the bar.
type Injector interface {
	Inject(bar.ClickMsg)
}

// InjectorFunc adapts a function to Injector.
type InjectorFunc func(bar.ClickMsg)

func (f InjectorFunc) Inject(m bar.ClickMsg) { f(m) }

type Server struct {
	store  *bar.Store
	inject Injector
	logger *log.Logger
}

func New(store *bar.Store, inject Injector, logger *log.Logger) *Server {
	if logger == nil {
		logger = log.Default()
	}
	return &Server{store: store, inject: inject, logger: logger}
}

// Handler returns the router.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(s.logRequests)

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte("ok\n"))
	})
	r.Get("/blocks", s.getBlocks)
	r.Get("/frame", s.getFrame)
	r.Post("/click", s.postClick)
	return r
}

// ListenAndServe serves on addr until ctx is cancelled, then shuts down.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return err
	}
	return s.Serve(ctx, ln)
}

func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	srv := &http.Server{Handler: s.Handler(), ReadHeaderTimeout: 5 * time.Second}
	errc := make(chan error, 1)
	go func() { errc <- srv.Serve(ln) }()
	s.logger.Info("debug server listening", "addr", ln.Addr().String())

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}
	sctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(sctx); err != nil {
		return err
	}
	if err := <-errc; !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (s *Server) getBlocks(w http.ResponseWriter, _ *http.Request) {
	bs := []blocks.Block{}
	if snap := s.store.Load(); snap != nil && snap.Blocks != nil {
		bs = snap.Blocks
	}
	writeJSON(w, http.StatusOK, bs)
}

func (s *Server) getFrame(w http.ResponseWriter, _ *http.Request) {
	snap := s.store.Load()
	if snap == nil {
		writeError(w, http.StatusServiceUnavailable, "no frame yet")
		return
	}
	writeJSON(w, http.StatusOK, snap.Frame)
}

type clickRequest struct {
	X      *int          `json:"x"`
	Button clicks.Button `json:"button"`
}

func (s *Server) postClick(w http.ResponseWriter, r *http.Request) {
	var req clickRequest
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid body: "+err.Error())
		return
	}
	if req.X == nil || *req.X < 0 {
		writeError(w, http.StatusBadRequest, "x must be a non-negative column")
		return
	}
	if req.Button == clicks.ButtonNone {
		req.Button = clicks.ButtonLeft
	}
	if req.Button < clicks.ButtonNone || req.Button > clicks.ButtonForward {
		writeError(w, http.StatusBadRequest, "unknown button")
		return
	}
	s.inject.Inject(bar.ClickMsg{X: *req.X, Button: req.Button})
	w.WriteHeader(http.StatusAccepted)
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		s.logger.Debug("http", "method", r.Method, "path", r.URL.Path, "status", ww.Status(), "took", time.Since(start))
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
