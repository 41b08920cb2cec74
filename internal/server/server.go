package server

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jonboulle/clockwork"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"github.com/vzahanych/rain-prediction-app/internal/config"
	"github.com/vzahanych/rain-prediction-app/internal/observability"
	"github.com/vzahanych/rain-prediction-app/internal/server/handlers"
	"github.com/vzahanych/rain-prediction-app/internal/server/middlewares"
	"github.com/vzahanych/rain-prediction-app/internal/service"
	"github.com/vzahanych/rain-prediction-app/pkg/telemetry"
)

// Deps are the collaborators the HTTP layer is built from.
type Deps struct {
	Service   *service.RainService
	Metrics   *observability.Metrics
	Gatherer  prometheus.Gatherer
	Logger    *zap.Logger
	Telemetry *telemetry.Telemetry
	// Clock drives health uptime; nil means the real clock.
	Clock clockwork.Clock
}

type Server struct {
	cfg    *config.Config
	engine *gin.Engine
	server *http.Server
	deps   Deps
}

func NewServer(cfg *config.Config, deps Deps) *Server {
	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()
	engine.SetHTMLTemplate(handlers.Templates())

	engine.Use(middlewares.RequestIDMiddleware())
	engine.Use(middlewares.LoggingMiddleware(deps.Logger, true))
	engine.Use(middlewares.RecoveryMiddleware(deps.Logger, true))
	engine.Use(middlewares.TelemetryMiddleware(deps.Logger, deps.Telemetry))
	engine.Use(middlewares.MetricsMiddleware(deps.Metrics))

	sc := cfg.Server
	s := &Server{
		cfg:    cfg,
		engine: engine,
		deps:   deps,
		server: &http.Server{
			Addr:         fmt.Sprintf("%s:%d", sc.Host, sc.Port),
			Handler:      engine,
			ReadTimeout:  time.Duration(sc.ReadTimeout) * time.Second,
			WriteTimeout: time.Duration(sc.WriteTimeout) * time.Second,
			IdleTimeout:  time.Duration(sc.IdleTimeout) * time.Second,
		},
	}

	s.setupRoutes()

	return s
}

func (s *Server) setupRoutes() {
	predict := handlers.NewPredictHandler(s.deps.Service, s.deps.Logger, s.cfg.Features.ZeroFillMissing)

	// Form page
	s.engine.GET("/", predict.Page)
	s.engine.POST("/", predict.Page)

	// JSON API
	api := s.engine.Group("/api/v1")
	api.POST("/predict", predict.PredictJSON)
	api.GET("/features", predict.Features)
	api.GET("/explanation", predict.Explanation)

	// Health endpoints (Kubernetes friendly)
	health := handlers.NewHealthHandler(s.deps.Logger, s.deps.Service, s.deps.Clock)
	s.engine.GET("/health", health.Health)
	s.engine.GET("/health/live", health.Liveness)
	s.engine.GET("/health/ready", health.Readiness)

	// Monitoring endpoints
	s.engine.GET("/metrics", handlers.NewMetricsHandler(s.deps.Gatherer).ServeMetrics)
}

// Addr is the host:port the server listens on.
func (s *Server) Addr() string {
	return s.server.Addr
}

// ServeHTTP delegates to the gin engine, useful for testing.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.engine.ServeHTTP(w, r)
}

// Start listens on the configured address. It returns http.ErrServerClosed
// after Shutdown.
func (s *Server) Start() error {
	s.deps.Logger.Info("Starting server", zap.String("addr", s.server.Addr))
	return s.server.ListenAndServe()
}

// Shutdown drains in-flight requests until ctx expires.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.server.Shutdown(ctx)
}
