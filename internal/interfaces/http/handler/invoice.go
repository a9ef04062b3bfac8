package handler

import (
	invoiceapp "github.com/bizpulse/backend/internal/application/invoice"
	"github.com/bizpulse/backend/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
)

// InvoiceHandler handles the invoice query endpoint
type InvoiceHandler struct {
	BaseHandler
	queryService *invoiceapp.QueryService
}

// NewInvoiceHandler creates a new InvoiceHandler
func NewInvoiceHandler(queryService *invoiceapp.QueryService) *InvoiceHandler {
	return &InvoiceHandler{queryService: queryService}
}

// List returns a page of invoices with derived payment status
func (h *InvoiceHandler) List(c *gin.Context) {
	var filter invoiceapp.ListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	page, err := h.queryService.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMeta(c, page.Items, dto.Meta{
		Total:      page.Total,
		Page:       page.Page,
		PageSize:   page.PageSize,
		TotalPages: page.TotalPages,
		HasNext:    page.HasNext,
		HasPrev:    page.HasPrev,
	})
}
