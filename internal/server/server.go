package server

import (
	"context"
	"fmt"
	"net"
	"os/signal"
	"syscall"

	"github.com/MKhiriev/go-tweeter/internal/config"
	"github.com/MKhiriev/go-tweeter/internal/handler"
	"github.com/MKhiriev/go-tweeter/internal/logger"
)

type server struct {
	httpServer *httpServer
	logger     *logger.Logger
}

func NewServer(handlers *handler.Handlers, cfg config.Server, logger *logger.Logger) (Server, error) {
	logger.Info().Msg("creating new server...")

	if handlers == nil || handlers.HTTP == nil || cfg.HTTPAddress == "" {
		return nil, errNoServersAreCreated
	}

	return &server{
		httpServer: newHTTPServer(handlers.HTTP.Init(), cfg, logger),
		logger:     logger,
	}, nil
}

// RunServer serves until SIGINT, SIGTERM or SIGQUIT arrives, then shuts
// down gracefully.
func (s *server) RunServer() {
	ctx, stop := signal.NotifyContext(
		context.Background(),
		syscall.SIGTERM,
		syscall.SIGINT,
		syscall.SIGQUIT,
	)
	defer stop()

	if err := s.run(ctx); err != nil {
		s.logger.Error().Err(err).Msg("error running server")
	}
}

func (s *server) Shutdown() {
	s.httpServer.Shutdown()
}

// run serves until ctx is done or the listener fails.
func (s *server) run(ctx context.Context) error {
	l, err := net.Listen("tcp", s.httpServer.server.Addr)
	if err != nil {
		return fmt.Errorf("error listening on %q: %w", s.httpServer.server.Addr, err)
	}

	served := make(chan error, 1)
	go func() {
		served <- s.httpServer.Serve(l)
	}()
	s.logger.Info().Str("address", l.Addr().String()).Msg("Launching HTTP server")

	select {
	case err := <-served:
		return err
	case <-ctx.Done():
	}

	s.Shutdown()
	if err := <-served; err != nil {
		return err
	}

	s.logger.Info().Msg("server Shutdown gracefully")
	return nil
}
