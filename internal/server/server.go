package server

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/termcastio/termcast-server/pkg/config"
)

// Drainer is implemented by components holding long-lived work that
// http.Server.Shutdown cannot see: hijacked WebSocket connections and
// the sessions feeding gRPC streams. Drain must return by ctx deadline.
type Drainer interface {
	Drain(ctx context.Context)
}

// DrainerFunc adapts a function to the Drainer interface.
type DrainerFunc func(ctx context.Context)

// Drain calls f.
func (f DrainerFunc) Drain(ctx context.Context) { f(ctx) }

// Server owns the listener and coordinates graceful shutdown. It accepts
// until the run context is cancelled, then drains: the listener closes
// immediately, drainers wind down their work in order, and in-flight
// requests finish before Run returns.
type Server struct {
	cfg      *config.Config
	logger   *zap.Logger
	httpSrv  *http.Server
	drainers []Drainer

	stopOnce sync.Once
}

// New wires the dispatcher into an http.Server. The drainers run in the
// given order during shutdown; pass the web hub before the session
// registry so viewers get goodbyes before their sessions disappear.
func New(cfg *config.Config, web, rpc http.Handler, logger *zap.Logger, drainers ...Drainer) *Server {
	srvLogger := logger.Named("server")
	return &Server{
		cfg:    cfg,
		logger: srvLogger,
		httpSrv: &http.Server{
			Handler:           NewHandler(web, rpc, logger),
			ReadHeaderTimeout: time.Duration(cfg.Server.ReadHeaderTimeout) * time.Second,
			IdleTimeout:       time.Duration(cfg.Server.IdleTimeout) * time.Second,
			// No read/write timeouts: WebSockets and gRPC streams stay
			// open for the life of a session.
		},
		drainers: drainers,
	}
}

// ListenAndRun binds the configured address and serves until ctx is
// cancelled. A bind failure is returned before any request is served.
func (s *Server) ListenAndRun(ctx context.Context) error {
	lis, err := net.Listen("tcp", s.cfg.Server.Address())
	if err != nil {
		return fmt.Errorf("failed to bind %s: %w", s.cfg.Server.Address(), err)
	}
	return s.Run(ctx, lis)
}

// Run serves on lis until ctx is cancelled, then drains within the
// configured timeout. It returns nil after a drain, or the error that
// stopped the serve loop early.
func (s *Server) Run(ctx context.Context, lis net.Listener) error {
	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("Server listening", zap.String("address", lis.Addr().String()))
		if err := s.httpSrv.Serve(lis); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		s.logger.Info("Shutdown signal received")
	}

	drainCtx, cancel := context.WithTimeout(context.Background(), s.drainTimeout())
	defer cancel()
	s.Shutdown(drainCtx)
	return nil
}

// Shutdown drains the server. The first call closes the listener, asks
// each drainer to wind down and waits for in-flight requests; further
// calls are no-ops while the first drain proceeds.
func (s *Server) Shutdown(ctx context.Context) {
	s.stopOnce.Do(func() { s.drain(ctx) })
}

func (s *Server) drain(ctx context.Context) {
	s.logger.Info("Draining connections")

	// Shutdown closes the listener at once, then waits for in-flight
	// requests; the drainers below are what lets those requests end.
	shutdownErr := make(chan error, 1)
	go func() { shutdownErr <- s.httpSrv.Shutdown(ctx) }()

	for _, d := range s.drainers {
		d.Drain(ctx)
	}

	if err := <-shutdownErr; err != nil {
		s.logger.Warn("Drain deadline exceeded, closing remaining connections", zap.Error(err))
		_ = s.httpSrv.Close()
	} else {
		s.logger.Info("Drain complete")
	}
}

func (s *Server) drainTimeout() time.Duration {
	if s.cfg.Server.DrainTimeout <= 0 {
		return 30 * time.Second
	}
	return time.Duration(s.cfg.Server.DrainTimeout) * time.Second
}
