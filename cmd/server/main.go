package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	appledger "github.com/costledger/backend/internal/application/ledger"
	"github.com/costledger/backend/internal/domain/authz"
	"github.com/costledger/backend/internal/infrastructure/auth"
	"github.com/costledger/backend/internal/infrastructure/cache"
	"github.com/costledger/backend/internal/infrastructure/config"
	"github.com/costledger/backend/internal/infrastructure/logger"
	"github.com/costledger/backend/internal/infrastructure/persistence"
	"github.com/costledger/backend/internal/interfaces/http/handler"
	"github.com/costledger/backend/internal/interfaces/http/router"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("failed to load configuration: " + err.Error())
	}

	log := logger.New(cfg.Log)
	defer func() { _ = log.Sync() }()

	db, err := persistence.NewDatabase(&cfg.Database)
	if err != nil {
		log.Fatal("failed to connect to database", zap.Error(err))
	}

	storeFactory := cache.NewIdempotencyStoreFactory(cfg.Redis,
		cache.WithLogger(log),
		cache.WithInMemoryFallback(!cfg.Idempotency.RequireRedis),
	)
	idempotencyStore, err := storeFactory.CreateStore()
	if err != nil {
		log.Fatal("failed to create idempotency store", zap.Error(err))
	}
	defer func() { _ = idempotencyStore.Close() }()

	contracts := persistence.NewGormContractRepository(db)
	budgetLines := persistence.NewGormBudgetLineRepository(db)
	expenses := persistence.NewGormExpenseRepository(db)
	payments := persistence.NewGormPaymentRepository(db)

	handlers := router.Handlers{
		System:      handler.NewSystemHandler(db),
		BudgetLines: handler.NewBudgetLineHandler(appledger.NewBudgetLineService(contracts, budgetLines)),
		Expenses:    handler.NewExpenseHandler(appledger.NewExpenseService(contracts, expenses)),
		Payments:    handler.NewPaymentHandler(appledger.NewPaymentService(contracts, payments)),
		CostSummary: handler.NewCostSummaryHandler(
			appledger.NewCostSummaryService(contracts, budgetLines, expenses, payments),
			appledger.NewExportService(budgetLines, expenses, payments),
		),
	}

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	engine := gin.New()
	if len(cfg.HTTP.TrustedProxies) > 0 {
		if err := engine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
			log.Fatal("invalid trusted proxies", zap.Error(err))
		}
	}

	router.Setup(engine, router.Config{
		Logger:         log,
		JWTService:     auth.NewJWTService(cfg.JWT),
		Oracle:         authz.NewStaticOracle(),
		Idempotency:    idempotencyStore,
		IdempotencyTTL: cfg.Idempotency.TTL,
		MaxKeySize:     cfg.Idempotency.KeyHeaderMaxSize,
		Handlers:       handlers,
	})

	server := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	go func() {
		log.Info("starting server",
			zap.String("name", cfg.App.Name),
			zap.String("env", cfg.App.Env),
			zap.String("port", cfg.App.Port),
		)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("server failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down server")
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		log.Error("forced shutdown", zap.Error(err))
	}
	log.Info("server stopped")
}
