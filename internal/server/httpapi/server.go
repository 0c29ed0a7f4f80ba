// Package httpapi exposes the user operations over HTTP. Every action goes
// through a single endpoint selected by the "action" query parameter and
// answers with the JSON Envelope.
package httpapi

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/dmitrijs2005/userbook/internal/logging"
	"github.com/gin-gonic/gin"
	"golang.org/x/sync/errgroup"
)

// HTTPServer serves a gin engine and shuts it down when the run context ends.
type HTTPServer struct {
	address         string
	engine          *gin.Engine
	logger          logging.Logger
	shutdownTimeout time.Duration
}

func NewHTTPServer(address string, engine *gin.Engine, l logging.Logger, shutdownTimeout time.Duration) *HTTPServer {
	engine.HandleMethodNotAllowed = true
	if shutdownTimeout <= 0 {
		shutdownTimeout = 10 * time.Second
	}
	return &HTTPServer{
		address:         address,
		engine:          engine,
		logger:          l.With("module", "http_server"),
		shutdownTimeout: shutdownTimeout,
	}
}

// Run blocks until ctx is cancelled or the listener fails.
func (s *HTTPServer) Run(ctx context.Context) error {
	listen, err := net.Listen("tcp", s.address)
	if err != nil {
		return fmt.Errorf("listen: %w", err)
	}
	return s.Serve(ctx, listen)
}

// Serve is Run on an already open listener.
func (s *HTTPServer) Serve(ctx context.Context, listen net.Listener) error {
	srv := &http.Server{
		Handler:           s.engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		s.logger.Info(ctx, "Starting HTTP server", "address", listen.Addr().String())
		if err := srv.Serve(listen); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("serve: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		s.logger.Info(ctx, "Stopping HTTP server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), s.shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown: %w", err)
		}
		return nil
	})

	return g.Wait()
}
