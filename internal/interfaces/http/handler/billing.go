package handler

import (
	appbilling "github.com/bizpulse/backend/internal/application/billing"
	"github.com/bizpulse/backend/internal/interfaces/http/dto"
	"github.com/bizpulse/backend/internal/interfaces/http/middleware"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// BillingHandler handles bill transaction endpoints
type BillingHandler struct {
	BaseHandler
	billingService *appbilling.Service
}

// NewBillingHandler creates a new BillingHandler
func NewBillingHandler(billingService *appbilling.Service) *BillingHandler {
	return &BillingHandler{billingService: billingService}
}

// Create commits a cart as a bill. Legacy line-field aliases are
// normalized before the core sees the input.
func (h *BillingHandler) Create(c *gin.Context) {
	var req dto.CreateBillRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		if middleware.IsValidationError(err) {
			middleware.HandleValidationError(c, err)
			return
		}
		h.Error(c, 400, dto.ErrCodeInvalidJSON, err.Error())
		return
	}

	summary, err := h.billingService.CreateBill(c.Request.Context(), req.ToInput())
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, summary)
}

// GetByID returns a bill with its items and payments
func (h *BillingHandler) GetByID(c *gin.Context) {
	billID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid bill ID")
		return
	}

	detail, err := h.billingService.GetBill(c.Request.Context(), billID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, detail)
}

// Delete reverts a bill: stock, ledger entries, payments and the
// header all go together
func (h *BillingHandler) Delete(c *gin.Context) {
	billID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid bill ID")
		return
	}

	summary, err := h.billingService.DeleteBill(c.Request.Context(), billID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, summary)
}
