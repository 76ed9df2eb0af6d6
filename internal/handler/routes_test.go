package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/college-predictor-api/internal/dto"
	"github.com/noah-isme/college-predictor-api/internal/middleware"
	"github.com/noah-isme/college-predictor-api/internal/models"
	"github.com/noah-isme/college-predictor-api/internal/repository"
	"github.com/noah-isme/college-predictor-api/internal/service"
	"github.com/noah-isme/college-predictor-api/pkg/storage"
)

const registryCSV = `COLLEGE,UNIVESITY_NAME,STATE,TUITION_FEE,GRAND_TOTAL,CLOSING_RANK_2023
Alpha Medical College,Alpha University,Kerala,"₹15,00,000","₹25,00,000",5000
Beta College,Beta University,Goa,"25,00,000","35,00,000",8000
Gamma Institute,Gamma University,Kerala,100000,200000,
`

type registryStub struct{}

func (registryStub) Load(ctx context.Context) ([]models.College, error) {
	return repository.ParseColleges(ctx, strings.NewReader(registryCSV))
}

type statusStub struct{}

func (statusStub) Load(ctx context.Context) ([]models.ImageStatus, error) {
	return repository.ParseImageStatuses([][]string{{"College List", "Check"}, {"Alpha Medical College", "done"}})
}

type imagesStub struct{}

func (imagesStub) Stems(ctx context.Context) ([]string, error) {
	return []string{"alpha_medical_college", "stray"}, nil
}

func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	dataset := service.NewDatasetService(registryStub{}, statusStub{}, imagesStub{}, nil, nil)
	_, err := dataset.Load(context.Background())
	require.NoError(t, err)

	search := service.NewSearchService(dataset, nil, nil, service.SearchConfig{}, nil)
	selections := service.NewSelectionService(repository.NewMemorySessionRepository(time.Hour), dataset, nil, nil)
	store, err := storage.NewLocalStorage(t.TempDir())
	require.NoError(t, err)
	exports := service.NewExportService(search, selections, store, storage.NewSignedURLSigner("secret", time.Hour), nil, nil, service.ExportConfig{APIPrefix: "/api/v1"}, nil)

	r := gin.New()
	Handlers{
		Colleges:   NewCollegeHandler(search, selections),
		Selections: NewSelectionHandler(selections),
		Exports:    NewExportHandler(exports),
		Dataset:    NewDatasetHandler(dataset),
	}.Register(r.Group("/api/v1"))
	return r
}

func doRequest(r *gin.Engine, method, target, session string, body interface{}) *httptest.ResponseRecorder {
	var payload []byte
	if body != nil {
		payload, _ = json.Marshal(body)
	}
	req := httptest.NewRequest(method, target, bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	if session != "" {
		req.Header.Set(middleware.SessionHeader, session)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestRoutesSearchSelectExport(t *testing.T) {
	r := newTestRouter(t)

	w := doRequest(r, http.MethodGet, "/api/v1/colleges?rank=1000", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	session := w.Header().Get(middleware.SessionHeader)
	require.NotEmpty(t, session)

	env := decodeEnvelope(t, w)
	var cards []dto.CollegeCard
	require.NoError(t, json.Unmarshal(env.Data, &cards))
	require.Len(t, cards, 2)
	assert.Equal(t, "alpha_medical_college", cards[0].Slug)
	assert.Equal(t, "/images/alpha_medical_college.jpg", cards[0].ImageURL)
	assert.Equal(t, models.BudgetStatusExceeding, cards[1].BudgetStatus)

	w = doRequest(r, http.MethodPost, "/api/v1/selections", session, dto.SelectionRequest{College: "Beta College"})
	require.Equal(t, http.StatusOK, w.Code)

	w = doRequest(r, http.MethodGet, "/api/v1/colleges?rank=1000", session, nil)
	require.NoError(t, json.Unmarshal(decodeEnvelope(t, w).Data, &cards))
	assert.False(t, cards[0].Selected)
	assert.True(t, cards[1].Selected)

	w = doRequest(r, http.MethodPost, "/api/v1/exports", session, dto.ExportRequest{
		Rank: 1000, TuitionBudget: 2000000, OverallBudget: 3000000, Scope: "selected", ClientName: "Acme", Format: "csv",
	})
	require.Equal(t, http.StatusCreated, w.Code)
	var created dto.ExportResponse
	require.NoError(t, json.Unmarshal(decodeEnvelope(t, w).Data, &created))
	assert.Equal(t, 1, created.Rows)

	w = doRequest(r, http.MethodGet, created.URL, "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Beta College,Beta University,Goa")
}

func TestRoutesDetailCompareAndReconciliation(t *testing.T) {
	r := newTestRouter(t)

	w := doRequest(r, http.MethodGet, "/api/v1/colleges/alpha_medical_college?rank=1000", "", nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = doRequest(r, http.MethodGet, "/api/v1/colleges/gamma_institute?rank=1000", "", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	q := url.Values{"rank": {"1000"}, "name": {"Alpha Medical College", "Beta College"}}
	w = doRequest(r, http.MethodGet, "/api/v1/colleges/compare?"+q.Encode(), "", nil)
	require.Equal(t, http.StatusOK, w.Code)

	q = url.Values{"rank": {"1000"}, "name": {"Alpha Medical College"}}
	w = doRequest(r, http.MethodGet, "/api/v1/colleges/compare?"+q.Encode(), "", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doRequest(r, http.MethodGet, "/api/v1/reconciliation", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var report models.ReconciliationReport
	require.NoError(t, json.Unmarshal(decodeEnvelope(t, w).Data, &report))
	assert.Empty(t, report.Mismatches)
	assert.Equal(t, []models.ReportEntry{{Slug: "stray"}}, report.Orphans)
}
