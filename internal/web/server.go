package web

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"perfoverlay/internal/netx"
)

// NewMux builds the mirror's routes: socket.io, login and the snapshot API
func NewMux(mirror *Mirror) *http.ServeMux {
	server := netx.SetupGlobalServer()
	mirror.Setup(server)

	mux := http.NewServeMux()
	mux.Handle("/socket.io/", server.Handler())
	StartLogin(mux)
	StartAPI(mux, mirror)
	return mux
}

// Serve runs the mirror on addr until ctx is cancelled
func Serve(ctx context.Context, addr string, mirror *Mirror, logger *slog.Logger) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           NewMux(mirror),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("mirror listening", "addr", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("mirror server: %w", err)
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("mirror shutdown: %w", err)
		}
		return nil
	}
}
