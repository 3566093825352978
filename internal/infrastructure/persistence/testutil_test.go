package persistence

import (
	"testing"

	"github.com/costledger/backend/internal/domain/ledger"
	"github.com/costledger/backend/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// setupTestDB creates an in-memory sqlite database with the ledger schema
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&models.ContractModel{},
		&models.BudgetLineModel{},
		&models.ExpenseModel{},
		&models.PaymentModel{},
	))
	return db
}

// seedContract inserts a contract row and returns its scope
func seedContract(t *testing.T, db *gorm.DB, currency string, totalValue *decimal.Decimal) ledger.Scope {
	t.Helper()
	contract := models.ContractModel{
		ID:         uuid.New(),
		TenantID:   uuid.New(),
		Currency:   currency,
		TotalValue: totalValue,
	}
	require.NoError(t, db.Create(&contract).Error)
	return ledger.Scope{TenantID: contract.TenantID, ContractID: contract.ID}
}

func dec(t *testing.T, s string) decimal.Decimal {
	t.Helper()
	d, err := decimal.NewFromString(s)
	require.NoError(t, err)
	return d
}

func decPtr(t *testing.T, s string) *decimal.Decimal {
	t.Helper()
	d := dec(t, s)
	return &d
}
