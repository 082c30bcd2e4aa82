package dispatchgen

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/toyz/dispatchgen/internal/errors"
)

// ServerConfig holds configuration for the playground server
type ServerConfig struct {
	// Addr is the host:port to listen on
	Addr string

	// ShutdownTimeout bounds the graceful shutdown (default: 10s)
	ShutdownTimeout time.Duration
}

// DefaultServerConfig returns a server configuration with sensible defaults
func DefaultServerConfig() ServerConfig {
	return ServerConfig{
		Addr:            ":8080",
		ShutdownTimeout: 10 * time.Second,
	}
}

// Serve starts server and blocks until ctx is done or the server fails. On
// cancellation the server is stopped gracefully within ShutdownTimeout.
func Serve(ctx context.Context, server WebServer, config ServerConfig) error {
	if config.ShutdownTimeout <= 0 {
		config.ShutdownTimeout = DefaultServerConfig().ShutdownTimeout
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- server.Start(config.Addr)
	}()

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("%s server failed: %w", server.Name(), err)
		}
		return nil
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), config.ShutdownTimeout)
	defer cancel()

	if err := server.Stop(shutdownCtx); err != nil {
		return fmt.Errorf("%s server forced to shutdown: %w", server.Name(), err)
	}
	if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("%s server failed: %w", server.Name(), err)
	}
	return nil
}
