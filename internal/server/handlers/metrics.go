package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// MetricsHandler exposes the Prometheus registry in text exposition format.
type MetricsHandler struct {
	handler gin.HandlerFunc
}

func NewMetricsHandler(gatherer prometheus.Gatherer) *MetricsHandler {
	return &MetricsHandler{
		handler: gin.WrapH(promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})),
	}
}

func (h *MetricsHandler) ServeMetrics(c *gin.Context) {
	h.handler(c)
}
