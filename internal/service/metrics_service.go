package service

import (
	"fmt"
	"net/http"
	"runtime"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/noah-isme/college-predictor-api/internal/models"
)

// MetricsService encapsulates Prometheus instrumentation.
type MetricsService struct {
	registry        *prometheus.Registry
	handler         http.Handler
	requestDuration *prometheus.HistogramVec
	requestTotal    *prometheus.CounterVec
	searches        prometheus.Counter
	outcomes        *prometheus.CounterVec
	exports         *prometheus.CounterVec
	datasetRows     prometheus.Gauge
	mismatches      prometheus.Gauge
	orphans         prometheus.Gauge
}

// NewMetricsService registers core Prometheus collectors.
func NewMetricsService() *MetricsService {
	registry := prometheus.NewRegistry()

	requestDuration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "http_request_duration_seconds",
		Help:    "Duration of HTTP requests in seconds",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "path", "status"})

	requestTotal := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "http_requests_total",
		Help: "Total number of HTTP requests",
	}, []string{"method", "path", "status"})

	searches := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "college_searches_total",
		Help: "Total number of eligibility searches",
	})

	outcomes := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "college_classifications_total",
		Help: "Colleges classified, by budget status",
	}, []string{"status"})

	exports := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "college_exports_total",
		Help: "Rendered exports, by format and scope",
	}, []string{"format", "scope"})

	datasetRows := prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "college_dataset_rows",
		Help: "Colleges in the merged dataset",
	})

	mismatches := prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "college_image_mismatches",
		Help: "Colleges marked done whose image file is missing",
	})

	orphans := prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "college_image_orphans",
		Help: "Image files matching no college",
	})

	goroutines := prometheus.NewGaugeFunc(prometheus.GaugeOpts{
		Name: "goroutines_total",
		Help: "Total number of goroutines",
	}, func() float64 {
		return float64(runtime.NumGoroutine())
	})

	registry.MustRegister(requestDuration, requestTotal, searches, outcomes, exports, datasetRows, mismatches, orphans, goroutines)

	return &MetricsService{
		registry:        registry,
		handler:         promhttp.HandlerFor(registry, promhttp.HandlerOpts{}),
		requestDuration: requestDuration,
		requestTotal:    requestTotal,
		searches:        searches,
		outcomes:        outcomes,
		exports:         exports,
		datasetRows:     datasetRows,
		mismatches:      mismatches,
		orphans:         orphans,
	}
}

// Handler exposes the Prometheus HTTP handler.
func (m *MetricsService) Handler() http.Handler {
	if m == nil {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusServiceUnavailable)
		})
	}
	return m.handler
}

// ObserveHTTPRequest records request metrics.
func (m *MetricsService) ObserveHTTPRequest(method, path string, status int, duration time.Duration) {
	if m == nil {
		return
	}
	labelStatus := fmt.Sprintf("%d", status)
	m.requestDuration.WithLabelValues(method, path, labelStatus).Observe(duration.Seconds())
	m.requestTotal.WithLabelValues(method, path, labelStatus).Inc()
}

// ObserveSearch counts one classification pass and its outcomes.
func (m *MetricsService) ObserveSearch(classified []models.ClassifiedCollege) {
	if m == nil {
		return
	}
	m.searches.Inc()
	counts := make(map[models.BudgetStatus]int, 3)
	for _, c := range classified {
		counts[c.BudgetStatus]++
	}
	for status, n := range counts {
		m.outcomes.WithLabelValues(string(status)).Add(float64(n))
	}
}

// ObserveExport counts a rendered export.
func (m *MetricsService) ObserveExport(format, scope string) {
	if m == nil {
		return
	}
	m.exports.WithLabelValues(format, scope).Inc()
}

// SetReconciliation publishes the size and findings of the loaded dataset.
func (m *MetricsService) SetReconciliation(rows int, report models.ReconciliationReport) {
	if m == nil {
		return
	}
	m.datasetRows.Set(float64(rows))
	m.mismatches.Set(float64(len(report.Mismatches)))
	m.orphans.Set(float64(len(report.Orphans)))
}
