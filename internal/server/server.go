// Package server serves the rendered changelog page over HTTP. Every request
// to / runs the full pipeline, so edits to the data show up on reload.
package server

import (
	"bytes"
	"context"
	"errors"
	"io/fs"
	"log/slog"
	"net/http"
	"path"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/ariel-frischer/verlog/internal/site"
)

// ShutdownTimeout bounds how long in-flight requests get after the context ends.
const ShutdownTimeout = 5 * time.Second

// Config configures a Server.
type Config struct {
	Addr    string
	Builder *site.Builder

	// Gatherer backs /metrics. Nil disables the endpoint.
	Gatherer prometheus.Gatherer

	// DataFS, when set, is served as static files so the page's data can be
	// fetched from the same origin: IndexFile at /<IndexFile> and
	// VersionsDir at /<VersionsDir>/*.
	DataFS      fs.FS
	IndexFile   string
	VersionsDir string

	Logger *slog.Logger
}

// Server is the changelog HTTP server.
type Server struct {
	cfg    Config
	logger *slog.Logger
	router chi.Router
}

// New creates a Server and builds its routes.
func New(cfg Config) *Server {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	s := &Server{cfg: cfg, logger: logger}
	s.router = s.routes()
	return s
}

// Handler returns the server's http.Handler.
func (s *Server) Handler() http.Handler {
	return s.router
}

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(s.requestLogger)
	r.Use(middleware.Recoverer)

	r.Get("/", s.handlePage)
	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	if s.cfg.Gatherer != nil {
		r.Handle("/metrics", promhttp.HandlerFor(s.cfg.Gatherer, promhttp.HandlerOpts{}))
	}

	if s.cfg.DataFS != nil {
		if s.cfg.IndexFile != "" {
			index := path.Clean(s.cfg.IndexFile)
			r.Get("/"+index, func(w http.ResponseWriter, r *http.Request) {
				http.ServeFileFS(w, r, s.cfg.DataFS, index)
			})
		}
		if s.cfg.VersionsDir != "" {
			r.Handle("/"+path.Clean(s.cfg.VersionsDir)+"/*", http.FileServerFS(s.cfg.DataFS))
		}
	}

	return r
}

// handlePage renders into a buffer first so a failed build never sends a
// half-written page.
func (s *Server) handlePage(w http.ResponseWriter, r *http.Request) {
	var buf bytes.Buffer
	p, err := s.cfg.Builder.WriteTo(r.Context(), &buf)
	if err != nil {
		s.logger.Error("building page", "error", err, "request_id", middleware.GetReqID(r.Context()))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	s.logger.Debug("page built", "versions", p.Versions, "rendered", p.Rendered)
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Cache-Control", "no-cache")
	_, _ = buf.WriteTo(w)
}

func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()

		next.ServeHTTP(ww, r)

		s.logger.Info("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"bytes", ww.BytesWritten(),
			"duration", time.Since(start),
			"request_id", middleware.GetReqID(r.Context()),
		)
	})
}

// ListenAndServe serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.cfg.Addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("serving changelog", "addr", s.cfg.Addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	return nil
}
