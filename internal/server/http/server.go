// Package http exposes the synthesis service over a REST API.
package http

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humachi"
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/michsethowusu/kasanoma/internal/audio"
	"github.com/michsethowusu/kasanoma/internal/service"
)

// Version is reported in the OpenAPI document.
var Version = "dev"

// Options configures the HTTP server.
type Options struct {
	Host             string
	Port             int
	CORSOrigins      []string
	RateLimit        float64
	MaxUploadBytes   int64
	UploadExtensions []string
}

// Server is the HTTP API server.
type Server struct {
	opts    Options
	router  chi.Router
	api     huma.API
	httpSrv *http.Server
}

// NewServer wires the API routes onto a chi router.
func NewServer(opts Options, tts *service.TTS, store *audio.Store) *Server {
	r := chi.NewRouter()

	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(Logging)
	r.Use(chimiddleware.Recoverer)
	if len(opts.CORSOrigins) > 0 {
		r.Use(CORS(opts.CORSOrigins))
	}
	if opts.RateLimit > 0 {
		burst := int(opts.RateLimit * 2)
		r.Use(NewRateLimiter(opts.RateLimit, burst).Limit)
	}

	api := humachi.New(r, huma.DefaultConfig("Kasanoma TTS", Version))

	NewStatusHandler(api, tts)
	NewVoiceHandler(api, tts.Voices())
	NewTTSHandler(api, tts, store, opts.MaxUploadBytes, opts.UploadExtensions)

	return &Server{opts: opts, router: r, api: api}
}

// Handler returns the root HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.router
}

// API returns the huma API, mostly for tests and OpenAPI export.
func (s *Server) API() huma.API {
	return s.api
}

// Addr returns the listen address.
func (s *Server) Addr() string {
	return net.JoinHostPort(s.opts.Host, strconv.Itoa(s.opts.Port))
}

// ListenAndServe serves until ctx is done, then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context) error {
	s.httpSrv = &http.Server{
		Addr:              s.Addr(),
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("HTTP server listening", "addr", s.httpSrv.Addr)
		if err := s.httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("http: server failed: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	slog.Info("Shutting down HTTP server")
	return s.httpSrv.Shutdown(shutdownCtx)
}
