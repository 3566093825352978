package handler

import (
	appledger "github.com/costledger/backend/internal/application/ledger"
	"github.com/gin-gonic/gin"
)

// ExpenseHandler serves the expense endpoints
type ExpenseHandler struct {
	BaseHandler
	service *appledger.ExpenseService
}

// NewExpenseHandler creates a new ExpenseHandler
func NewExpenseHandler(service *appledger.ExpenseService) *ExpenseHandler {
	return &ExpenseHandler{service: service}
}

// List handles GET /contracts/:id/expenses
func (h *ExpenseHandler) List(c *gin.Context) {
	scope, _, ok := h.requireScope(c)
	if !ok {
		return
	}
	expenses, err := h.service.List(c.Request.Context(), scope)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, expenses)
}

// Get handles GET /contracts/:id/expenses/:expenseId
func (h *ExpenseHandler) Get(c *gin.Context) {
	scope, _, ok := h.requireScope(c)
	if !ok {
		return
	}
	id, ok := h.requireRecordID(c, "expenseId")
	if !ok {
		return
	}
	expense, err := h.service.Get(c.Request.Context(), scope, id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, expense)
}

// Create handles POST /contracts/:id/expenses
func (h *ExpenseHandler) Create(c *gin.Context) {
	scope, actorID, ok := h.requireScope(c)
	if !ok {
		return
	}
	var req appledger.CreateExpenseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.HandleBindingError(c, err)
		return
	}
	expense, err := h.service.Create(c.Request.Context(), actorID, scope, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, expense)
}

// Update handles PUT and PATCH /contracts/:id/expenses/:expenseId
func (h *ExpenseHandler) Update(c *gin.Context) {
	scope, actorID, ok := h.requireScope(c)
	if !ok {
		return
	}
	id, ok := h.requireRecordID(c, "expenseId")
	if !ok {
		return
	}
	var req appledger.UpdateExpenseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.HandleBindingError(c, err)
		return
	}
	expense, err := h.service.Update(c.Request.Context(), actorID, scope, id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, expense)
}

// Delete handles DELETE /contracts/:id/expenses/:expenseId
func (h *ExpenseHandler) Delete(c *gin.Context) {
	scope, actorID, ok := h.requireScope(c)
	if !ok {
		return
	}
	id, ok := h.requireRecordID(c, "expenseId")
	if !ok {
		return
	}
	if err := h.service.Delete(c.Request.Context(), actorID, scope, id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

// Summary handles GET /contracts/:id/expenses/summary
func (h *ExpenseHandler) Summary(c *gin.Context) {
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
