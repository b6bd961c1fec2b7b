// Package api exposes the studio session as a REST API.
package api

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humago"
	"github.com/rs/zerolog"

	"github.com/coreman2200/funtimes-ledstudio/internal/ledcolor"
	"github.com/coreman2200/funtimes-ledstudio/internal/pattern"
	"github.com/coreman2200/funtimes-ledstudio/internal/studio"
)

// Controller is the session surface the API drives.
type Controller interface {
	SetLEDCount(n int)
	SetPattern(id pattern.ID)
	SetSpeed(pct int)
	SetBrightness(pct int)
	Start()
	Stop()
	Reset()
	Play() string
	GenerateCode() string
	Code() string
	Suggest(text string) pattern.ID
	Compose(text string) (pattern.ID, string)
	LEDs() []ledcolor.Color
	Snapshot() studio.Snapshot
	Patterns() []studio.PatternInfo
}

type Options struct {
	Logger zerolog.Logger
	// Metrics, when set, is served on GET /metrics.
	Metrics http.Handler
	// Extra mounts additional handlers such as the websocket hub.
	Extra func(mux *http.ServeMux)
}

type Server struct {
	api huma.API
	mux *http.ServeMux
	ctl Controller
	log zerolog.Logger
	srv *http.Server
}

func NewServer(ctl Controller, opts Options) *Server {
	mux := http.NewServeMux()
	cfg := huma.DefaultConfig("LED Studio API", "1.0.0")
	cfg.Info.Description = "Design, preview and export LED strip animations"
	cfg.Servers = []*huma.Server{}

	s := &Server{
		api: humago.New(mux, cfg),
		mux: mux,
		ctl: ctl,
		log: opts.Logger,
	}
	if opts.Metrics != nil {
		mux.Handle("GET /metrics", opts.Metrics)
	}
	if opts.Extra != nil {
		opts.Extra(mux)
	}
	Register(s.api, ctl)
	return s
}

func (s *Server) API() huma.API { return s.api }

// Handler returns the routed mux wrapped with request logging.
func (s *Server) Handler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		s.mux.ServeHTTP(w, r)
		s.log.Debug().Str("method", r.Method).Str("path", r.URL.Path).
			Dur("took", time.Since(start)).Msg("http")
	})
}

// ListenAndServe blocks until ctx is cancelled or the listener fails.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	s.srv = &http.Server{
		Addr:         addr,
		Handler:      s.Handler(),
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	}
	errc := make(chan error, 1)
	go func() {
		s.log.Info().Str("addr", addr).Msg("HTTP server starting")
		errc <- s.srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return s.srv.Shutdown(shutdownCtx)
	}
}
