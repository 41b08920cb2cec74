package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

type readyStub bool

func (r readyStub) Ready() bool { return bool(r) }

func serve(t *testing.T, handler gin.HandlerFunc) (*httptest.ResponseRecorder, HealthResponse) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)

	handler(c)

	var resp HealthResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	return rec, resp
}

func TestHealth_UptimeFollowsClock(t *testing.T) {
	start := time.Date(2024, time.June, 1, 12, 0, 0, 0, time.UTC)
	clock := clockwork.NewFakeClockAt(start)
	h := NewHealthHandler(zaptest.NewLogger(t), readyStub(true), clock)

	clock.Advance(90 * time.Second)
	rec, resp := serve(t, h.Health)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ok", resp.Status)
	assert.Equal(t, "1m30s", resp.Uptime)
	assert.Equal(t, "2024-06-01T12:01:30Z", resp.Timestamp)
}

func TestLiveness(t *testing.T) {
	h := NewHealthHandler(zaptest.NewLogger(t), readyStub(false), clockwork.NewFakeClock())

	rec, resp := serve(t, h.Liveness)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "alive", resp.Status)
	assert.Equal(t, "0s", resp.Uptime)
}

func TestReadiness(t *testing.T) {
	tests := []struct {
		name       string
		ready      ReadinessChecker
		wantCode   int
		wantStatus string
	}{
		{"model loaded", readyStub(true), http.StatusOK, "ready"},
		{"no model", readyStub(false), http.StatusServiceUnavailable, "unavailable"},
		{"no checker", nil, http.StatusServiceUnavailable, "unavailable"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewHealthHandler(zaptest.NewLogger(t), tt.ready, clockwork.NewFakeClock())

			rec, resp := serve(t, h.Readiness)

			assert.Equal(t, tt.wantCode, rec.Code)
			assert.Equal(t, tt.wantStatus, resp.Status)
		})
	}
}

func TestNewHealthHandler_DefaultsToRealClock(t *testing.T) {
	h := NewHealthHandler(zaptest.NewLogger(t), readyStub(true), nil)

	assert.NotNil(t, h.clock)
	assert.WithinDuration(t, time.Now(), h.startTime, time.Minute)
}
