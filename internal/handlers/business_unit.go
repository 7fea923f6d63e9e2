package handlers

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	apierrors "github.com/agrohold/kanban-api/internal/errors"
	"github.com/agrohold/kanban-api/internal/services"
)

// BusinessUnitHandler serves the business unit directory.
type BusinessUnitHandler struct {
	unitService *services.BusinessUnitService
}

// NewBusinessUnitHandler creates a new BusinessUnitHandler
func NewBusinessUnitHandler(unitService *services.BusinessUnitService) *BusinessUnitHandler {
	return &BusinessUnitHandler{unitService: unitService}
}

// ListBusinessUnits returns all business units sorted by name.
func (h *BusinessUnitHandler) ListBusinessUnits(c *gin.Context) {
	units, err := h.unitService.ListBusinessUnits()
	if err != nil {
		log.Printf("Get business units error: %v", err)
		apierrors.InternalError(c, "Failed to fetch business units")
		return
	}

	c.JSON(http.StatusOK, units)
}
