package handler

import (
	appledger "github.com/costledger/backend/internal/application/ledger"
	"github.com/gin-gonic/gin"
)

// BudgetLineHandler serves the budget line endpoints
type BudgetLineHandler struct {
	BaseHandler
	service *appledger.BudgetLineService
}

// NewBudgetLineHandler creates a new BudgetLineHandler
func NewBudgetLineHandler(service *appledger.BudgetLineService) *BudgetLineHandler {
	return &BudgetLineHandler{service: service}
}

// List handles GET /contracts/:id/budget-lines
func (h *BudgetLineHandler) List(c *gin.Context) {
	scope, _, ok := h.requireScope(c)
	if !ok {
		return
	}
	lines, err := h.service.List(c.Request.Context(), scope)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, lines)
}

// Get handles GET /contracts/:id/budget-lines/:lineId
func (h *BudgetLineHandler) Get(c *gin.Context) {
	scope, _, ok := h.requireScope(c)
	if !ok {
		return
	}
	id, ok := h.requireRecordID(c, "lineId")
	if !ok {
		return
	}
	line, err := h.service.Get(c.Request.Context(), scope, id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, line)
}

// Create handles POST /contracts/:id/budget-lines
func (h *BudgetLineHandler) Create(c *gin.Context) {
	scope, actorID, ok := h.requireScope(c)
	if !ok {
		return
	}
	var req appledger.CreateBudgetLineRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.HandleBindingError(c, err)
		return
	}
	line, err := h.service.Create(c.Request.Context(), actorID, scope, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, line)
}

// Update handles PUT and PATCH /contracts/:id/budget-lines/:lineId.
// Both verbs share partial-update semantics: provided fields win, omitted
// fields are left untouched.
func (h *BudgetLineHandler) Update(c *gin.Context) {
	scope, actorID, ok := h.requireScope(c)
	if !ok {
		return
	}
	id, ok := h.requireRecordID(c, "lineId")
	if !ok {
		return
	}
	var req appledger.UpdateBudgetLineRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.HandleBindingError(c, err)
		return
	}
	line, err := h.service.Update(c.Request.Context(), actorID, scope, id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, line)
}

// Delete handles DELETE /contracts/:id/budget-lines/:lineId
func (h *BudgetLineHandler) Delete(c *gin.Context) {
	scope, actorID, ok := h.requireScope(c)
	if !ok {
		return
	}
	id, ok := h.requireRecordID(c, "lineId")
	if !ok {
		return
	}
	if err := h.service.Delete(c.Request.Context(), actorID, scope, id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

// Summary handles GET /contracts/:id/budget-lines/summary
func (h *BudgetLineHandler) Summary(c *gin.Context) {
	scope, _, ok := h.requireScope(c)
	if !ok {
		return
	}
	summary, err := h.service.Summary(c.Request.Context(), scope)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, summary)
}
