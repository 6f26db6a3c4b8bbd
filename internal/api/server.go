// Package api exposes the complaint triage service over HTTP.
package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/complaintdesk/triage/internal/auth"
	"github.com/complaintdesk/triage/internal/logging"
	"github.com/complaintdesk/triage/internal/telemetry"
)

// Default timeout values.
const (
	defaultReadTimeout  = 30 * time.Second
	defaultWriteTimeout = 60 * time.Second
	defaultIdleTimeout  = 120 * time.Second
)

// ServerConfig holds server configuration.
type ServerConfig struct {
	ServiceName    string
	ServiceVersion string
	Port           int
	ReadTimeout    time.Duration
	WriteTimeout   time.Duration
	Debug          bool
}

// Server wraps the gin engine with lifecycle management.
type Server struct {
	router *gin.Engine
	server *http.Server
	logger logging.Logger
	cfg    ServerConfig
}

// NewServer creates the HTTP server with all routes registered.
func NewServer(
	handler *Handler,
	jwtManager *auth.JWTManager,
	provider *telemetry.Provider,
	cfg ServerConfig,
	log logging.Logger,
) *Server {
	if cfg.ReadTimeout == 0 {
		cfg.ReadTimeout = defaultReadTimeout
	}
	if cfg.WriteTimeout == 0 {
		cfg.WriteTimeout = defaultWriteTimeout
	}

	if cfg.Debug {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(recoveryMiddleware(log))
	router.Use(requestLogMiddleware(log))

	SetupRoutes(router, handler, jwtManager, provider)

	httpServer := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
		IdleTimeout:  defaultIdleTimeout,
	}

	return &Server{
		router: router,
		server: httpServer,
		logger: log,
		cfg:    cfg,
	}
}

// Router returns the underlying gin engine.
func (s *Server) Router() *gin.Engine {
	return s.router
}

// Start starts the HTTP server in a blocking manner.
func (s *Server) Start() error {
	s.logger.Info("Starting HTTP server",
		logging.String("address", s.server.Addr),
		logging.String("service", s.cfg.ServiceName),
		logging.String("version", s.cfg.ServiceVersion),
	)

	if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("server error: %w", err)
	}
	return nil
}

// Shutdown gracefully stops the server.
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("Shutting down HTTP server")
	return s.server.Shutdown(ctx)
}

// recoveryMiddleware converts panics into 500 responses.
func recoveryMiddleware(log logging.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if r := recover(); r != nil {
				log.Error("panic recovered",
					logging.String("path", c.Request.URL.Path),
					logging.Any("panic", r),
				)
				c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
			}
		}()
		c.Next()
	}
}

// requestLogMiddleware logs one line per request.
func requestLogMiddleware(log logging.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		log.Info("request",
			logging.String("method", c.Request.Method),
			logging.String("path", c.Request.URL.Path),
			logging.Int("status", c.Writer.Status()),
			logging.Duration("duration", time.Since(start)),
		)
	}
}
