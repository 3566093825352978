package handler

import (
	"fmt"
	"net/http"
	"time"

	appledger "github.com/costledger/backend/internal/application/ledger"
	"github.com/costledger/backend/internal/interfaces/http/dto"
	"github.com/costledger/backend/internal/interfaces/http/middleware"
	"github.com/gin-gonic/gin"
)

// CostSummaryHandler serves the cost snapshot and the tenant export
type CostSummaryHandler struct {
	BaseHandler
	summaries *appledger.CostSummaryService
	exports   *appledger.ExportService
}

// NewCostSummaryHandler creates a new CostSummaryHandler
func NewCostSummaryHandler(summaries *appledger.CostSummaryService, exports *appledger.ExportService) *CostSummaryHandler {
	return &CostSummaryHandler{summaries: summaries, exports: exports}
}

// Summary handles GET /contracts/:id/cost-summary
func (h *CostSummaryHandler) Summary(c *gin.Context) {
	scope, _, ok := h.requireScope(c)
	if !ok {
		return
	}
	summary, err := h.summaries.Summary(c.Request.Context(), scope)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, summary)
}

// Export handles GET /contracts/export, streaming the tenant's active
// rows across all three ledgers as CSV
func (h *CostSummaryHandler) Export(c *gin.Context) {
	principal, ok := middleware.GetPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, dto.NewErrorResponse(dto.ErrCodeUnauthorized, "Missing principal"))
		return
	}

	rows, err := h.exports.Rows(c.Request.Context(), principal.TenantID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	filename := fmt.Sprintf("ledger-export-%s.csv", time.Now().Format("2006-01-02"))
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Header("Content-Type", "text/csv; charset=utf-8")
	c.Status(http.StatusOK)

	if err := appledger.WriteCSV(c.Writer, rows); err != nil {
		_ = c.Error(err)
	}
}
