// Package rest exposes the services over HTTP using gin.
package rest

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/dmitrijs2005/filesmanager/internal/logging"
	"github.com/dmitrijs2005/filesmanager/internal/server/services"
	"github.com/gin-gonic/gin"
)

const shutdownTimeout = 5 * time.Second

type Server struct {
	address string
	auth    *services.AuthService
	files   *services.FileService
	status  *services.StatusService
	logger  logging.Logger
	engine  *gin.Engine
}

func NewServer(address string, l logging.Logger, a *services.AuthService, f *services.FileService, st *services.StatusService) *Server {
	s := &Server{
		address: address,
		auth:    a,
		files:   f,
		status:  st,
		logger:  l.With("module", "http_server"),
	}
	s.engine = s.routes()
	return s
}

// Handler returns the routed gin engine.
func (s *Server) Handler() http.Handler { return s.engine }

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	listen, err := net.Listen("tcp", s.address)
	if err != nil {
		return err
	}

	srv := &http.Server{
		Handler:           s.engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping HTTP server...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			s.logger.Error(ctx, "HTTP shutdown error", "error", err)
		}
	}()

	s.logger.Info(ctx, "Starting HTTP server", "address", listen.Addr().String())

	if err := srv.Serve(listen); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (s *Server) routes() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), s.requestLogger())

	r.GET("/status", s.getStatus)
	r.GET("/stats", s.getStats)

	r.POST("/users", s.postUser)
	r.GET("/users/me", s.getMe)

	r.GET("/connect", s.getConnect)
	r.GET("/disconnect", s.getDisconnect)

	files := r.Group("/files")
	{
		files.POST("", s.requireSession(), s.postUpload)
		files.GET("", s.requireSession(), s.getIndex)
		files.GET("/:id", s.requireSession(), s.getShow)
		files.PUT("/:id/publish", s.requireSession(), s.putPublish)
		files.PUT("/:id/unpublish", s.requireSession(), s.putUnpublish)
		files.GET("/:id/data", s.optionalSession(), s.getFile)
	}

	return r
}
