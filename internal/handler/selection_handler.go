package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/college-predictor-api/internal/dto"
	"github.com/noah-isme/college-predictor-api/internal/middleware"
	appErrors "github.com/noah-isme/college-predictor-api/pkg/errors"
	"github.com/noah-isme/college-predictor-api/pkg/response"
)

type selectionService interface {
	List(ctx context.Context, sessionID string) (*dto.SelectionResponse, error)
	Add(ctx context.Context, sessionID string, req dto.SelectionRequest) (*dto.SelectionResponse, error)
	Remove(ctx context.Context, sessionID, slug string) (*dto.SelectionResponse, error)
	Clear(ctx context.Context, sessionID string) error
}

// SelectionHandler manages the visitor's selected colleges.
type SelectionHandler struct {
	service selectionService
}

// NewSelectionHandler constructs a selection handler.
func NewSelectionHandler(service selectionService) *SelectionHandler {
	return &SelectionHandler{service: service}
}

// List godoc
// @Summary List selected colleges
// @Tags Selections
// @Produce json
// @Param X-Session-ID header string false "Session id"
// @Success 200 {object} response.Envelope
// @Router /selections [get]
func (h *SelectionHandler) List(c *gin.Context) {
	resp, err := h.service.List(c.Request.Context(), middleware.SessionID(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, resp, nil)
}

// Add godoc
// @Summary Select a college
// @Tags Selections
// @Accept json
// @Produce json
// @Param X-Session-ID header string false "Session id"
// @Param payload body dto.SelectionRequest true "College name"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /selections [post]
func (h *SelectionHandler) Add(c *gin.Context) {
	var req dto.SelectionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid payload"))
		return
	}
	resp, err := h.service.Add(c.Request.Context(), middleware.SessionID(c), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, resp, nil)
}

// Remove godoc
// @Summary Unselect a college
// @Tags Selections
// @Produce json
// @Param X-Session-ID header string false "Session id"
// @Param slug path string true "College slug"
// @Success 200 {object} response.Envelope
// @Router /selections/{slug} [delete]
func (h *SelectionHandler) Remove(c *gin.Context) {
	resp, err := h.service.Remove(c.Request.Context(), middleware.SessionID(c), c.Param("slug"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, resp, nil)
}

// Clear godoc
// @Summary Clear all selections
// @Tags Selections
// @Param X-Session-ID header string false "Session id"
// @Success 204
// @Router /selections [delete]
func (h *SelectionHandler) Clear(c *gin.Context) {
	if err := h.service.Clear(c.Request.Context(), middleware.SessionID(c)); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}
