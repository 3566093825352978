package handler

import (
	appledger "github.com/costledger/backend/internal/application/ledger"
	"github.com/gin-gonic/gin"
)

// PaymentHandler serves the scheduled payment endpoints
type PaymentHandler struct {
	BaseHandler
	service *appledger.PaymentService
}

// NewPaymentHandler creates a new PaymentHandler
func NewPaymentHandler(service *appledger.PaymentService) *PaymentHandler {
	return &PaymentHandler{service: service}
}

// List handles GET /contracts/:id/payments
func (h *PaymentHandler) List(c *gin.Context) {
	scope, _, ok := h.requireScope(c)
	if !ok {
		return
	}
	payments, err := h.service.List(c.Request.Context(), scope)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, payments)
}

// Get handles GET /contracts/:id/payments/:paymentId
func (h *PaymentHandler) Get(c *gin.Context) {
	scope, _, ok := h.requireScope(c)
	if !ok {
		return
	}
	id, ok := h.requireRecordID(c, "paymentId")
	if !ok {
		return
	}
	payment, err := h.service.Get(c.Request.Context(), scope, id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, payment)
}

// Create handles POST /contracts/:id/payments
func (h *PaymentHandler) Create(c *gin.Context) {
	scope, actorID, ok := h.requireScope(c)
	if !ok {
		return
	}
	var req appledger.CreatePaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.HandleBindingError(c, err)
		return
	}
	payment, err := h.service.Create(c.Request.Context(), actorID, scope, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, payment)
}

// Update handles PUT and PATCH /contracts/:id/payments/:paymentId
func (h *PaymentHandler) Update(c *gin.Context) {
	scope, actorID, ok := h.requireScope(c)
	if !ok {
		return
	}
	id, ok := h.requireRecordID(c, "paymentId")
	if !ok {
		return
	}
	var req appledger.UpdatePaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.HandleBindingError(c, err)
		return
	}
	payment, err := h.service.Update(c.Request.Context(), actorID, scope, id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, payment)
}

// Delete handles DELETE /contracts/:id/payments/:paymentId
func (h *PaymentHandler) Delete(c *gin.Context) {
	scope, actorID, ok := h.requireScope(c)
	if !ok {
		return
	}
	id, ok := h.requireRecordID(c, "paymentId")
	if !ok {
		return
	}
	if err := h.service.Delete(c.Request.Context(), actorID, scope, id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}
