package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jonboulle/clockwork"
	"go.uber.org/zap"
)

// ReadinessChecker reports whether the service can answer predictions.
type ReadinessChecker interface {
	Ready() bool
}

type HealthHandler struct {
	logger    *zap.Logger
	ready     ReadinessChecker
	clock     clockwork.Clock
	startTime time.Time
}

// NewHealthHandler uses the real clock when clock is nil.
func NewHealthHandler(logger *zap.Logger, ready ReadinessChecker, clock clockwork.Clock) *HealthHandler {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &HealthHandler{
		logger:    logger,
		ready:     ready,
		clock:     clock,
		startTime: clock.Now(),
	}
}

func (h *HealthHandler) uptime() string {
	return h.clock.Since(h.startTime).String()
}

func (h *HealthHandler) Liveness(c *gin.Context) {
	c.JSON(http.StatusOK, HealthResponse{
		Status: "alive",
		Uptime: h.uptime(),
	})
}

func (h *HealthHandler) Readiness(c *gin.Context) {
	if h.ready == nil || !h.ready.Ready() {
		h.logger.Warn("Readiness probe failed: no model loaded")
		c.JSON(http.StatusServiceUnavailable, HealthResponse{
			Status: "unavailable",
			Uptime: h.uptime(),
		})
		return
	}

	c.JSON(http.StatusOK, HealthResponse{
		Status: "ready",
		Uptime: h.uptime(),
	})
}

func (h *HealthHandler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, HealthResponse{
		Status:    "ok",
		Uptime:    h.uptime(),
		Timestamp: h.clock.Now().UTC().Format(time.RFC3339),
	})
}
