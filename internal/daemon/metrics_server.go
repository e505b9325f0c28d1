package daemon

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strings"
	"time"

	"log/slog"

	"tamer/internal/config"
	"tamer/internal/logging"
)

type metricsHandlerProvider interface {
	Handler() http.Handler
}

type metricsServer struct {
	bind   string
	logger *slog.Logger

	listener net.Listener
	server   *http.Server
}

func newMetricsServer(cfg *config.Config, provider metricsHandlerProvider, logger *slog.Logger) *metricsServer {
	if cfg == nil || provider == nil {
		return nil
	}
	bind := strings.TrimSpace(cfg.Daemon.MetricsBind)
	if bind == "" {
		return nil
	}

	mux := http.NewServeMux()
	mux.Handle("/metrics", provider.Handler())

	return &metricsServer{
		bind:   bind,
		logger: logging.NewComponentLogger(logger, "metrics"),
		server: &http.Server{
			Handler:           mux,
			ReadHeaderTimeout: 5 * time.Second,
			ReadTimeout:       15 * time.Second,
			WriteTimeout:      30 * time.Second,
			IdleTimeout:       60 * time.Second,
		},
	}
}

func (s *metricsServer) start(ctx context.Context) error {
	if s == nil {
		return nil
	}
	listener, err := net.Listen("tcp", s.bind)
	if err != nil {
		return fmt.Errorf("metrics listen: %w", err)
	}
	s.listener = listener

	go func() {
		if err := s.server.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.logger.Error("metrics server error", logging.Error(err))
		}
	}()

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = s.server.Shutdown(shutdownCtx)
	}()

	s.logger.Info("metrics server listening", logging.String("address", listener.Addr().String()))
	return nil
}
