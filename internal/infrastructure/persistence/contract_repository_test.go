package persistence

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/costledger/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// setupMockDB opens a GORM connection over sqlmock with the postgres
// dialector, so the generated SQL matches what production runs.
func setupMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()
	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = mockDB.Close() })

	gormDB, err := gorm.Open(postgres.New(postgres.Config{
		Conn:       mockDB,
		DriverName: "postgres",
	}), &gorm.Config{SkipDefaultTransaction: true})
	require.NoError(t, err)
	return gormDB, mock
}

func TestGormContractRepository_FindForTenant(t *testing.T) {
	ctx := context.Background()

	t.Run("resolves the contract without locking", func(t *testing.T) {
		db, mock := setupMockDB(t)
		repo := NewGormContractRepository(db)

		tenantID := uuid.New()
		contractID := uuid.New()
		mock.ExpectQuery(`SELECT \* FROM "contracts" WHERE tenant_id = \$1 AND id = \$2`).
			WithArgs(tenantID, contractID, 1).
			WillReturnRows(sqlmock.NewRows([]string{"id", "tenant_id", "currency", "total_value"}).
				AddRow(contractID, tenantID, "EUR", "1000"))

		contract, err := repo.FindForTenant(ctx, tenantID, contractID)
		require.NoError(t, err)
		assert.Equal(t, "EUR", contract.Currency)
		require.NotNil(t, contract.TotalValue)
		assert.Equal(t, "1000", contract.TotalValue.String())
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("maps a missing contract to not found", func(t *testing.T) {
		db, mock := setupMockDB(t)
		repo := NewGormContractRepository(db)

		mock.ExpectQuery(`SELECT \* FROM "contracts"`).
			WillReturnRows(sqlmock.NewRows([]string{"id", "tenant_id", "currency", "total_value"}))

		_, err := repo.FindForTenant(ctx, uuid.New(), uuid.New())
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})
}

func TestFindForTenantLocked(t *testing.T) {
	t.Run("emits FOR UPDATE on postgres", func(t *testing.T) {
		db, mock := setupMockDB(t)

		tenantID := uuid.New()
		contractID := uuid.New()
		mock.ExpectQuery(`SELECT \* FROM "contracts" WHERE tenant_id = \$1 AND id = \$2 ORDER BY "contracts"\."id" LIMIT \$3 FOR UPDATE`).
			WithArgs(tenantID, contractID, 1).
			WillReturnRows(sqlmock.NewRows([]string{"id", "tenant_id", "currency", "total_value"}).
				AddRow(contractID, tenantID, "EUR", nil))

		contract, err := findForTenantLocked(db, tenantID, contractID)
		require.NoError(t, err)
		assert.Nil(t, contract.TotalValue)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("skips the locking clause on sqlite", func(t *testing.T) {
		db := setupTestDB(t)
		scope := seedContract(t, db, "EUR", decPtr(t, "1000"))

		contract, err := findForTenantLocked(db, scope.TenantID, scope.ContractID)
		require.NoError(t, err)
		assert.Equal(t, scope.ContractID, contract.ID)
	})
}
