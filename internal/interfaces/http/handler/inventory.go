package handler

import (
	inventoryapp "github.com/bizpulse/backend/internal/application/inventory"
	"github.com/gin-gonic/gin"
)

// InventoryHandler handles the inventory status endpoint
type InventoryHandler struct {
	BaseHandler
	statusService *inventoryapp.StatusService
}

// NewInventoryHandler creates a new InventoryHandler
func NewInventoryHandler(statusService *inventoryapp.StatusService) *InventoryHandler {
	return &InventoryHandler{statusService: statusService}
}

// Status returns the stock health report for all active products
func (h *InventoryHandler) Status(c *gin.Context) {
	report, err := h.statusService.Report(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, report)
}
