package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/GriffinCanCode/AgentOS/webview/internal/engine"
	handlers "github.com/GriffinCanCode/AgentOS/webview/internal/http"
	"github.com/GriffinCanCode/AgentOS/webview/internal/infrastructure/config"
	"github.com/GriffinCanCode/AgentOS/webview/internal/infrastructure/logging"
	"github.com/GriffinCanCode/AgentOS/webview/internal/infrastructure/monitoring"
	"github.com/GriffinCanCode/AgentOS/webview/internal/middleware"
	"github.com/GriffinCanCode/AgentOS/webview/internal/ws"
)

// Server wraps the HTTP server and dependencies
type Server struct {
	router  *gin.Engine
	http    *http.Server
	stream  *ws.Handler
	logger  *zap.Logger
	config  *config.Config
	metrics *monitoring.Metrics
}

// NewServer creates a new server instance. A nil logger builds one from
// cfg.Logging.
func NewServer(cfg *config.Config, logger *zap.Logger) (*Server, error) {
	if logger == nil {
		built, err := logging.New(logging.Config{
			Level:       cfg.Logging.Level,
			Development: cfg.Logging.Development,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to build logger: %w", err)
		}
		logger = built
	}

	logger.Info("Initializing webview bridge",
		zap.String("port", cfg.Server.Port),
		zap.Int("sdk_int", cfg.Engine.SDKInt),
	)

	metrics := monitoring.NewMetrics()

	var defaults map[string]interface{}
	if cfg.Profile.Path != "" {
		profile, err := config.LoadProfile(cfg.Profile.Path)
		if err != nil {
			return nil, err
		}
		defaults = profile.Params()
		logger.Info("Loaded creation profile", zap.String("path", cfg.Profile.Path))
	}

	stream := ws.NewHandler(ws.Options{
		Settings: cfg.Engine,
		Fetcher:  engine.NewFetcher(cfg.Engine),
		Defaults: defaults,
		Logger:   logger,
		Metrics:  metrics,
	})

	if !cfg.Logging.Development {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()

	router.Use(gin.Recovery())
	router.Use(monitoring.Middleware(metrics))
	router.Use(middleware.CORS(middleware.DefaultCORSConfig()))
	if cfg.RateLimit.Enabled {
		logger.Info("Rate limiting enabled",
			zap.Int("rps", cfg.RateLimit.RequestsPerSecond),
			zap.Int("burst", cfg.RateLimit.Burst),
		)
		limit := middleware.DefaultRateLimitConfig()
		limit.RequestsPerSecond = cfg.RateLimit.RequestsPerSecond
		limit.Burst = cfg.RateLimit.Burst
		router.Use(middleware.RateLimit(limit))
	}

	h := handlers.NewHandlers(stream, metrics)

	router.GET("/", h.Root)
	router.GET("/health", h.Health)
	router.GET("/views", h.ListViews)
	router.GET("/methods", h.ListMethods)

	router.GET("/stream", stream.HandleConnection)

	router.GET("/metrics", gin.WrapH(metrics.Handler()))
	router.GET("/metrics/json", h.MetricsJSON)

	logger.Info("Server initialized successfully")

	return &Server{
		router: router,
		http: &http.Server{
			Addr:              cfg.Server.Host + ":" + cfg.Server.Port,
			Handler:           router,
			ReadHeaderTimeout: 10 * time.Second,
		},
		stream:  stream,
		logger:  logger,
		config:  cfg,
		metrics: metrics,
	}, nil
}

// Handler returns the router.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Metrics returns the server's metrics.
func (s *Server) Metrics() *monitoring.Metrics {
	return s.metrics
}

// Run serves until Shutdown is called.
func (s *Server) Run() error {
	s.logger.Info("Starting HTTP server", zap.String("addr", s.http.Addr))
	if err := s.http.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("server failed: %w", err)
	}
	return nil
}

// Shutdown stops accepting requests, then closes every stream session and
// disposes its views.
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("Shutting down server...")

	err := s.http.Shutdown(ctx)
	if err != nil {
		s.logger.Error("Failed to shut down HTTP server", zap.Error(err))
	}

	done := make(chan struct{})
	go func() {
		s.stream.Close()
		close(done)
	}()
	select {
	case <-done:
		s.logger.Info("Closed stream sessions")
	case <-ctx.Done():
		s.logger.Warn("Stream sessions did not close in time")
		if err == nil {
			err = ctx.Err()
		}
	}

	_ = s.logger.Sync()
	return err
}
