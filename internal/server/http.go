package server

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/MKhiriev/go-tweeter/internal/config"
	"github.com/MKhiriev/go-tweeter/internal/logger"
)

type httpServer struct {
	server          *http.Server
	shutdownTimeout time.Duration

	logger *logger.Logger
}

func newHTTPServer(handler http.Handler, cfg config.Server, logger *logger.Logger) *httpServer {
	return &httpServer{
		server: &http.Server{
			Addr:              cfg.HTTPAddress,
			Handler:           handler,
			ReadHeaderTimeout: cfg.RequestTimeout,
			ReadTimeout:       cfg.RequestTimeout,
			WriteTimeout:      cfg.RequestTimeout,
		},
		shutdownTimeout: cfg.ShutdownTimeout,
		logger:          logger,
	}
}

// Serve accepts connections on l until Shutdown is called.
func (h *httpServer) Serve(l net.Listener) error {
	if err := h.server.Serve(l); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown waits for in-flight requests for at most the shutdown timeout.
func (h *httpServer) Shutdown() {
	ctx := context.Background()
	if h.shutdownTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, h.shutdownTimeout)
		defer cancel()
	}

	if err := h.server.Shutdown(ctx); err != nil {
		h.logger.Error().Err(err).Msg("HTTP server Shutdown")
	}
}
