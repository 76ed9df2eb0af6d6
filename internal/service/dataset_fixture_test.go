package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/noah-isme/college-predictor-api/internal/models"
)

type stubColleges struct {
	rows []models.College
	err  error
}

func (s stubColleges) Load(ctx context.Context) ([]models.College, error) {
	return s.rows, s.err
}

type stubStatuses struct {
	rows []models.ImageStatus
	err  error
}

func (s stubStatuses) Load(ctx context.Context) ([]models.ImageStatus, error) {
	return s.rows, s.err
}

type stubImages struct {
	stems []string
	err   error
}

func (s stubImages) Stems(ctx context.Context) ([]string, error) {
	return s.stems, s.err
}

type recordingMetrics struct {
	rows     int
	report   models.ReconciliationReport
	searches int
	exports  []string
}

func (m *recordingMetrics) SetReconciliation(rows int, report models.ReconciliationReport) {
	m.rows = rows
	m.report = report
}

func (m *recordingMetrics) ObserveSearch(classified []models.ClassifiedCollege) {
	m.searches++
}

func (m *recordingMetrics) ObserveExport(format, scope string) {
	m.exports = append(m.exports, format+"/"+scope)
}

func amount(v int64) *int64 {
	return &v
}

// fixtureColleges classify for rank 1000 and budgets 20,00,000/30,00,000 as:
// Alpha within, Beta exceeding, Gamma and Delta not possible, Epsilon within.
func fixtureColleges() []models.College {
	return []models.College{
		{Name: "Alpha Medical College", UniversityName: "Alpha University", State: "Kerala", TuitionFee: amount(1500000), GrandTotal: amount(2500000), OpeningRank: amount(100), ClosingRank: amount(5000), Website: "https://alpha.test", Overview: "Coastal campus"},
		{Name: "Beta College", UniversityName: "Beta University", State: "Goa", TuitionFee: amount(2500000), GrandTotal: amount(3500000), ClosingRank: amount(8000)},
		{Name: "Gamma Institute", State: "Kerala", TuitionFee: amount(100000)},
		{Name: "Delta College", State: "Punjab", ClosingRank: amount(100)},
		{Name: "Epsilon College, Annexe", State: "Goa", ClosingRank: amount(9000), Extra: map[string]string{"OVERVIEW_TEXT": "Annexe campus"}},
	}
}

func fixtureStatuses() []models.ImageStatus {
	return []models.ImageStatus{
		{SourceName: "Alpha Medical College", Status: "Done"},
		{SourceName: "Beta College", Status: "pending"},
		{SourceName: "beta  college", Status: "done"},
		{SourceName: "Zeta College", Status: "done"},
	}
}

func fixtureDatasetService(t *testing.T) *DatasetService {
	t.Helper()
	svc := NewDatasetService(
		stubColleges{rows: fixtureColleges()},
		stubStatuses{rows: fixtureStatuses()},
		stubImages{stems: []string{"alpha_medical_college", "old_photo"}},
		nil,
		nil,
	)
	_, err := svc.Load(context.Background())
	require.NoError(t, err)
	return svc
}

var errSourceDown = errors.New("source down")
