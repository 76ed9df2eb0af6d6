package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/college-predictor-api/internal/models"
	"github.com/noah-isme/college-predictor-api/pkg/response"
)

type datasetService interface {
	Report(ctx context.Context) (*models.ReconciliationReport, error)
	Ready() bool
}

// DatasetHandler exposes the state of the loaded dataset.
type DatasetHandler struct {
	dataset datasetService
}

// NewDatasetHandler constructs a dataset handler.
func NewDatasetHandler(dataset datasetService) *DatasetHandler {
	return &DatasetHandler{dataset: dataset}
}

// Reconciliation godoc
// @Summary Image reconciliation report of the loaded dataset
// @Tags Dataset
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /reconciliation [get]
func (h *DatasetHandler) Reconciliation(c *gin.Context) {
	report, err := h.dataset.Report(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, report, nil, map[string]interface{}{
		"mismatch_count": len(report.Mismatches),
		"orphan_count":   len(report.Orphans),
	})
}

// Ready reports 200 once the dataset is loaded.
func (h *DatasetHandler) Ready(c *gin.Context) {
	if h.dataset == nil || !h.dataset.Ready() {
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "loading"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ready"})
}
