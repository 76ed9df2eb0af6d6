package service

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/college-predictor-api/internal/models"
)

func TestMetricsServiceRecordsDomainCounters(t *testing.T) {
	m := NewMetricsService()

	m.ObserveSearch([]models.ClassifiedCollege{
		{BudgetStatus: models.BudgetStatusWithin},
		{BudgetStatus: models.BudgetStatusWithin},
		{BudgetStatus: models.BudgetStatusNotPossible},
	})
	m.ObserveExport("xlsx", "all")
	m.SetReconciliation(10, models.ReconciliationReport{
		Mismatches: []models.ReportEntry{{Name: "A", Slug: "a"}},
		Orphans:    []models.ReportEntry{{Slug: "x"}, {Slug: "y"}},
	})
	m.ObserveHTTPRequest(http.MethodGet, "/api/v1/colleges", http.StatusOK, 5*time.Millisecond)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.searches))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.outcomes.WithLabelValues(string(models.BudgetStatusWithin))))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.outcomes.WithLabelValues(string(models.BudgetStatusNotPossible))))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.exports.WithLabelValues("xlsx", "all")))
	assert.Equal(t, 10.0, testutil.ToFloat64(m.datasetRows))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.mismatches))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.orphans))

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "college_searches_total 1")
}

func TestNilMetricsServiceIsSafe(t *testing.T) {
	var m *MetricsService
	m.ObserveSearch(nil)
	m.ObserveExport("csv", "selected")
	m.SetReconciliation(0, models.ReconciliationReport{})

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}
