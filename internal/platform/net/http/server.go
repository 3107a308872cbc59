package http

import (
	"context"
	"errors"
	stdhttp "net/http"
	"strings"
	"time"

	"chatlens/internal/platform/config"
	"chatlens/internal/platform/logger"

	"github.com/go-chi/chi/v5"
)

// Server owns the chi mux and the listener serving it
type Server struct {
	addr string
	mux  *chi.Mux
	srv  *stdhttp.Server
}

// NewServer reads PORT (":4000"; a bare number such as "8080" is accepted) and
// READ_TIMEOUT (2m, long enough for large uploads) from cfg
func NewServer(cfg config.Conf) *Server {
	addr := listenAddr(cfg.MayString("PORT", ":4000"))
	m := chi.NewRouter()
	return &Server{
		addr: addr,
		mux:  m,
		srv: &stdhttp.Server{
			Addr:              addr,
			Handler:           m,
			ReadHeaderTimeout: 10 * time.Second,
			ReadTimeout:       cfg.MayDuration("READ_TIMEOUT", 2*time.Minute),
		},
	}
}

func listenAddr(v string) string {
	v = strings.TrimSpace(v)
	if v == "" {
		return ":4000"
	}
	if !strings.Contains(v, ":") {
		return ":" + v
	}
	return v
}

// Router exposes the mux through the platform Router
func (s *Server) Router() Router { return AdaptChi(s.mux) }

// Addr is the configured listen address
func (s *Server) Addr() string { return s.addr }

// Run serves until ctx is cancelled, then shuts down gracefully within 10s
func (s *Server) Run(ctx context.Context) error {
	log := logger.Named("http")
	log.Info().Str("addr", s.addr).Dur("read_timeout", s.srv.ReadTimeout).Msg("listening")

	stop := context.AfterFunc(ctx, func() {
		sctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := s.srv.Shutdown(sctx); err != nil {
			log.Error().Err(err).Msg("http shutdown")
		}
	})
	defer stop()

	if err := s.srv.ListenAndServe(); !errors.Is(err, stdhttp.ErrServerClosed) {
		return err
	}
	log.Info().Msg("http stopped")
	return nil
}
