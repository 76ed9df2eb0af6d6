package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

type metricsExporter interface {
	Handler() http.Handler
}

// MetricsHandler exposes liveness and Prometheus endpoints.
type MetricsHandler struct {
	metrics metricsExporter
	started time.Time
}

// NewMetricsHandler constructs a metrics handler. metrics may be nil when collection is disabled.
func NewMetricsHandler(metrics metricsExporter) *MetricsHandler {
	return &MetricsHandler{metrics: metrics, started: time.Now()}
}

// Prometheus serves the scrape endpoint, or 503 when collection is disabled.
func (h *MetricsHandler) Prometheus(c *gin.Context) {
	if h.metrics == nil {
		c.Status(http.StatusServiceUnavailable)
		return
	}
	h.metrics.Handler().ServeHTTP(c.Writer, c.Request)
}

// Health is the liveness probe. It does not wait for the dataset; see DatasetHandler.Ready.
func (h *MetricsHandler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":         "ok",
		"uptime_seconds": int64(time.Since(h.started).Seconds()),
	})
}
