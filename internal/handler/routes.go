package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/noah-isme/college-predictor-api/internal/middleware"
)

// Handlers groups the API handlers mounted under the API prefix.
type Handlers struct {
	Colleges   *CollegeHandler
	Selections *SelectionHandler
	Exports    *ExportHandler
	Dataset    *DatasetHandler
}

// Register mounts every API route on group.
func (h Handlers) Register(group *gin.RouterGroup) {
	group.Use(middleware.Session())

	colleges := group.Group("/colleges")
	colleges.GET("", h.Colleges.Search)
	colleges.GET("/compare", h.Colleges.Compare)
	colleges.GET("/:slug", h.Colleges.Detail)

	selections := group.Group("/selections")
	selections.GET("", h.Selections.List)
	selections.POST("", h.Selections.Add)
	selections.DELETE("", h.Selections.Clear)
	selections.DELETE("/:slug", h.Selections.Remove)

	group.POST("/exports", h.Exports.Create)
	group.GET("/export/:token", h.Exports.Download)

	group.GET("/reconciliation", h.Dataset.Reconciliation)
}
