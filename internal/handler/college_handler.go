package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/college-predictor-api/internal/dto"
	"github.com/noah-isme/college-predictor-api/internal/middleware"
	"github.com/noah-isme/college-predictor-api/internal/models"
	appErrors "github.com/noah-isme/college-predictor-api/pkg/errors"
	"github.com/noah-isme/college-predictor-api/pkg/response"
)

type collegeSearcher interface {
	Search(ctx context.Context, query dto.SearchQuery, selected []string) ([]dto.CollegeCard, *models.Pagination, *dto.SearchMeta, error)
	Detail(ctx context.Context, slug string, query dto.SearchQuery) (*dto.CollegeDetail, error)
	Compare(ctx context.Context, query dto.SearchQuery, names []string) (*dto.Comparison, error)
}

type selectionNames interface {
	Names(ctx context.Context, sessionID string) ([]string, error)
}

// CollegeHandler exposes search, detail and comparison endpoints.
type CollegeHandler struct {
	search     collegeSearcher
	selections selectionNames
}

// NewCollegeHandler constructs a college handler. selections may be nil.
func NewCollegeHandler(search collegeSearcher, selections selectionNames) *CollegeHandler {
	return &CollegeHandler{search: search, selections: selections}
}

// Search godoc
// @Summary Search colleges by rank and budget
// @Tags Colleges
// @Produce json
// @Param rank query int true "All-India rank"
// @Param tuitionBudget query int false "Tuition budget in rupees"
// @Param overallBudget query int false "Overall budget in rupees"
// @Param state query []string false "State filter" collectionFormat(multi)
// @Param page query int false "Page"
// @Param limit query int false "Page size"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /colleges [get]
func (h *CollegeHandler) Search(c *gin.Context) {
	query, ok := bindSearchQuery(c)
	if !ok {
		return
	}
	var selected []string
	if h.selections != nil {
		names, err := h.selections.Names(c.Request.Context(), middleware.SessionID(c))
		if err == nil {
			selected = names
		}
	}
	cards, pagination, meta, err := h.search.Search(c.Request.Context(), query, selected)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, cards, pagination, map[string]interface{}{
		"total_pages":      meta.TotalPages,
		"qualifying_count": meta.QualifyingCount,
		"result_count":     meta.ResultCount,
		"state_counts":     meta.StateCounts,
		"summary":          meta.Summary,
	})
}

// Detail godoc
// @Summary Detail view of a qualifying college
// @Tags Colleges
// @Produce json
// @Param slug path string true "College slug"
// @Param rank query int true "All-India rank"
// @Param tuitionBudget query int false "Tuition budget in rupees"
// @Param overallBudget query int false "Overall budget in rupees"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /colleges/{slug} [get]
func (h *CollegeHandler) Detail(c *gin.Context) {
	query, ok := bindSearchQuery(c)
	if !ok {
		return
	}
	detail, err := h.search.Detail(c.Request.Context(), c.Param("slug"), query)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, detail, nil)
}

// Compare godoc
// @Summary Compare two qualifying colleges side by side
// @Tags Colleges
// @Produce json
// @Param name query []string true "College names, exactly two" collectionFormat(multi)
// @Param rank query int true "All-India rank"
// @Param tuitionBudget query int false "Tuition budget in rupees"
// @Param overallBudget query int false "Overall budget in rupees"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /colleges/compare [get]
func (h *CollegeHandler) Compare(c *gin.Context) {
	query, ok := bindSearchQuery(c)
	if !ok {
		return
	}
	comparison, err := h.search.Compare(c.Request.Context(), query, c.QueryArray("name"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, comparison, nil)
}

func bindSearchQuery(c *gin.Context) (dto.SearchQuery, bool) {
	var query dto.SearchQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "rank and budgets must be whole numbers"))
		return query, false
	}
	return query, true
}
