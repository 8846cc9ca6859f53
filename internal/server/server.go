package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/jmo7728/5-final-daynight-jam/internal/logger"
)

// Server wraps the HTTP server with graceful shutdown.
type Server struct {
	http *http.Server
}

// New creates a server for the given router.
func New(router *gin.Engine, addr string) *Server {
	return &Server{
		http: &http.Server{
			Addr:              addr,
			Handler:           router,
			ReadHeaderTimeout: 10 * time.Second,
		},
	}
}

// Start serves until the listener fails or Stop is called. A clean
// shutdown returns nil.
func (s *Server) Start() error {
	logger.Info("http server listening", zap.String("addr", s.http.Addr))
	if err := s.http.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Stop gracefully stops the HTTP server, letting in-flight requests
// finish within the context deadline.
func (s *Server) Stop(ctx context.Context) error {
	return s.http.Shutdown(ctx)
}
