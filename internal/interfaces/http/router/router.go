// Package router wires the HTTP surface: middleware chain, capability
// gates per verb and the idempotency guard on mutating routes.
package router

import (
	"time"

	"github.com/costledger/backend/internal/domain/authz"
	"github.com/costledger/backend/internal/domain/shared"
	"github.com/costledger/backend/internal/infrastructure/auth"
	"github.com/costledger/backend/internal/infrastructure/logger"
	"github.com/costledger/backend/internal/interfaces/http/handler"
	"github.com/costledger/backend/internal/interfaces/http/middleware"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Handlers bundles the route handlers
type Handlers struct {
	System      *handler.SystemHandler
	BudgetLines *handler.BudgetLineHandler
	Expenses    *handler.ExpenseHandler
	Payments    *handler.PaymentHandler
	CostSummary *handler.CostSummaryHandler
}

// Config carries the router dependencies
type Config struct {
	Logger         *zap.Logger
	JWTService     *auth.JWTService
	Oracle         authz.Oracle
	Idempotency    shared.IdempotencyStore
	IdempotencyTTL time.Duration
	MaxKeySize     int
	Handlers       Handlers
}

// Setup registers all routes on the engine
func Setup(engine *gin.Engine, cfg Config) {
	handler.RegisterValidators()

	engine.Use(middleware.RequestID())
	engine.Use(logger.GinMiddleware(cfg.Logger))
	engine.Use(logger.Recovery(cfg.Logger))

	api := engine.Group("/api/v1")
	api.GET("/health", cfg.Handlers.System.Health)

	authed := api.Group("", middleware.JWTAuth(cfg.JWTService))

	view := middleware.RequireCapability(cfg.Oracle, authz.CapabilityViewContracts)
	manage := middleware.RequireCapability(cfg.Oracle, authz.CapabilityManageContracts)
	idem := middleware.IdempotencyGuard(cfg.Idempotency, cfg.IdempotencyTTL, cfg.MaxKeySize)

	// Export is routed before /contracts/:id so "export" is not captured
	// as a contract id.
	authed.GET("/contracts/export", view, cfg.Handlers.CostSummary.Export)

	contracts := authed.Group("/contracts/:id")
	{
		contracts.GET("/budget-lines", view, cfg.Handlers.BudgetLines.List)
		contracts.GET("/budget-lines/summary", view, cfg.Handlers.BudgetLines.Summary)
		contracts.GET("/budget-lines/:lineId", view, cfg.Handlers.BudgetLines.Get)
		contracts.POST("/budget-lines", manage, idem, cfg.Handlers.BudgetLines.Create)
		contracts.PUT("/budget-lines/:lineId", manage, idem, cfg.Handlers.BudgetLines.Update)
		contracts.PATCH("/budget-lines/:lineId", manage, idem, cfg.Handlers.BudgetLines.Update)
		contracts.DELETE("/budget-lines/:lineId", manage, cfg.Handlers.BudgetLines.Delete)

		contracts.GET("/expenses", view, cfg.Handlers.Expenses.List)
		contracts.GET("/expenses/summary", view, cfg.Handlers.Expenses.Summary)
		contracts.GET("/expenses/:expenseId", view, cfg.Handlers.Expenses.Get)
		contracts.POST("/expenses", manage, idem, cfg.Handlers.Expenses.Create)
		contracts.PUT("/expenses/:expenseId", manage, idem, cfg.Handlers.Expenses.Update)
		contracts.PATCH("/expenses/:expenseId", manage, idem, cfg.Handlers.Expenses.Update)
		contracts.DELETE("/expenses/:expenseId", manage, cfg.Handlers.Expenses.Delete)

		contracts.GET("/payments", view, cfg.Handlers.Payments.List)
		contracts.GET("/payments/:paymentId", view, cfg.Handlers.Payments.Get)
		contracts.POST("/payments", manage, idem, cfg.Handlers.Payments.Create)
		contracts.PUT("/payments/:paymentId", manage, idem, cfg.Handlers.Payments.Update)
		contracts.PATCH("/payments/:paymentId", manage, idem, cfg.Handlers.Payments.Update)
		contracts.DELETE("/payments/:paymentId", manage, cfg.Handlers.Payments.Delete)

		contracts.GET("/cost-summary", view, cfg.Handlers.CostSummary.Summary)
	}
}
