package middlewares

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/vzahanych/rain-prediction-app/internal/observability"
	"github.com/vzahanych/rain-prediction-app/internal/server/utils"
	"github.com/vzahanych/rain-prediction-app/pkg/telemetry"
)

func newEngine(handlers ...gin.HandlerFunc) *gin.Engine {
	gin.SetMode(gin.TestMode)
	e := gin.New()
	e.Use(handlers...)
	return e
}

func TestRequestIDMiddleware(t *testing.T) {
	var seen string
	e := newEngine(RequestIDMiddleware())
	e.GET("/x", func(c *gin.Context) {
		seen = utils.GetRequestIDFromGinContext(c)
		c.Status(http.StatusNoContent)
	})

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/x", nil))
	assert.NotEmpty(t, seen)
	assert.Equal(t, seen, rec.Header().Get(RequestIDHeader))

	req := httptest.NewRequest(http.MethodGet, "/x", nil)
	req.Header.Set(RequestIDHeader, strings.Repeat("a", maxRequestIDLen+1))
	rec = httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	assert.Len(t, rec.Header().Get(RequestIDHeader), 36, "oversized IDs are replaced")
}

func TestLoggingMiddleware_LevelByStatus(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	e := newEngine(RequestIDMiddleware(), LoggingMiddleware(zap.New(core), true))
	e.GET("/ok", func(c *gin.Context) { c.Status(http.StatusOK) })
	e.GET("/bad", func(c *gin.Context) { c.Status(http.StatusBadRequest) })
	e.GET("/fail", func(c *gin.Context) { c.Status(http.StatusInternalServerError) })

	for _, path := range []string{"/ok", "/bad", "/fail"} {
		e.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, path, nil))
	}

	entries := logs.All()
	if assert.Len(t, entries, 3) {
		assert.Equal(t, zap.InfoLevel, entries[0].Level)
		assert.Equal(t, zap.WarnLevel, entries[1].Level)
		assert.Equal(t, zap.ErrorLevel, entries[2].Level)
		assert.Equal(t, "/bad", entries[1].ContextMap()["route"])
		assert.NotEmpty(t, entries[0].ContextMap()["request_id"])
	}
}

func TestRecoveryMiddleware(t *testing.T) {
	core, logs := observer.New(zap.ErrorLevel)
	e := newEngine(RecoveryMiddleware(zap.New(core), false))
	e.GET("/panic", func(*gin.Context) { panic("boom") })

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/panic", nil))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, 1, logs.FilterMessage("HTTP panic recovered").Len())
}

func TestTelemetryMiddleware_StoresSpanContext(t *testing.T) {
	var stored bool
	e := newEngine(TelemetryMiddleware(zap.NewNop(), &telemetry.Telemetry{}))
	e.GET("/x", func(c *gin.Context) {
		_, stored = c.Get(utils.SpanContextKey)
		c.Status(http.StatusOK)
	})

	e.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/x", nil))

	assert.True(t, stored)
}

func TestMetricsMiddleware(t *testing.T) {
	m := observability.NewMetrics(prometheus.NewRegistry())
	e := newEngine(MetricsMiddleware(m))
	e.GET("/x", func(c *gin.Context) { c.Status(http.StatusOK) })

	e.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/x", nil))
	e.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/x", nil))
	e.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/nowhere", nil))

	assert.Equal(t, 2.0, testutil.ToFloat64(m.HTTPRequests.WithLabelValues("GET", "/x", "200")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.HTTPRequests.WithLabelValues("GET", "unmatched", "404")))
	assert.Equal(t, 0.0, testutil.ToFloat64(m.HTTPActiveRequests))
}
