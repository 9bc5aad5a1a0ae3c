package feed

import (
	"context"
	"errors"
	"net/http"
	"time"
)

// Path is where the hub accepts websocket connections
const Path = "/feed"

// Serve runs the hub and an HTTP server for it on addr until ctx is done
func Serve(ctx context.Context, addr string, hub *Hub) error {
	go hub.Run(ctx)

	mux := http.NewServeMux()
	mux.Handle(Path, hub)
	srv := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}
