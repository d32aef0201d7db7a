package handler

import (
	"github.com/brandongraves08/packstack/internal/core/ports"
	"github.com/brandongraves08/packstack/pkg/apperror"
	"github.com/brandongraves08/packstack/pkg/response"

	"github.com/gin-gonic/gin"
)

// ComparisonHandler handles the cross-retailer comparison endpoint.
type ComparisonHandler struct {
	comparisonSvc ports.ComparisonService
}

// NewComparisonHandler creates a new ComparisonHandler.
func NewComparisonHandler(comparisonSvc ports.ComparisonService) *ComparisonHandler {
	return &ComparisonHandler{comparisonSvc: comparisonSvc}
}

// Compare handles GET /api/v1/comparison.
func (h *ComparisonHandler) Compare(c *gin.Context) {
	keywords := c.Query("keywords")
	if keywords == "" {
		response.Error(c, apperror.Validation("keywords query parameter is required"))
		return
	}

	result, err := h.comparisonSvc.Compare(c.Request.Context(), keywords)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, result)
}
