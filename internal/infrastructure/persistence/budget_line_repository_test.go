package persistence

import (
	"context"
	"testing"

	"github.com/costledger/backend/internal/domain/ledger"
	"github.com/costledger/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newBudgetLine(t *testing.T, scope ledger.Scope, total string, opts ...func(*ledger.BudgetLineInput)) *ledger.BudgetLine {
	t.Helper()
	in := ledger.BudgetLineInput{
		Name:        "Materials",
		TotalAmount: decPtr(t, total),
	}
	for _, opt := range opts {
		opt(&in)
	}
	line, err := ledger.NewBudgetLine(scope, uuid.New(), "EUR", in)
	require.NoError(t, err)
	return line
}

func TestGormBudgetLineRepository_CRUD(t *testing.T) {
	ctx := context.Background()

	t.Run("create and find roundtrip", func(t *testing.T) {
		db := setupTestDB(t)
		scope := seedContract(t, db, "EUR", nil)
		repo := NewGormBudgetLineRepository(db)

		line := newBudgetLine(t, scope, "500", func(in *ledger.BudgetLineInput) {
			in.Quantity = decPtr(t, "10")
			in.Unit = "pcs"
			in.UnitPrice = decPtr(t, "50")
		})
		require.NoError(t, repo.Create(ctx, line))

		found, err := repo.FindByID(ctx, scope, line.ID)
		require.NoError(t, err)
		assert.Equal(t, "Materials", found.Name)
		assert.Equal(t, "pcs", found.Unit)
		assert.True(t, found.TotalAmount.Equal(dec(t, "500")))
		assert.Equal(t, ledger.BudgetLineStatusPlanned, found.Status)
	})

	t.Run("update persists changed fields", func(t *testing.T) {
		db := setupTestDB(t)
		scope := seedContract(t, db, "EUR", nil)
		repo := NewGormBudgetLineRepository(db)

		line := newBudgetLine(t, scope, "500")
		require.NoError(t, repo.Create(ctx, line))

		line.Name = "Materials, revised"
		line.Status = ledger.BudgetLineStatusApproved
		line.TotalAmount = dec(t, "650")
		require.NoError(t, repo.Update(ctx, line))

		found, err := repo.FindByID(ctx, scope, line.ID)
		require.NoError(t, err)
		assert.Equal(t, "Materials, revised", found.Name)
		assert.Equal(t, ledger.BudgetLineStatusApproved, found.Status)
		assert.True(t, found.TotalAmount.Equal(dec(t, "650")))
	})

	t.Run("update of a missing row is not found", func(t *testing.T) {
		db := setupTestDB(t)
		scope := seedContract(t, db, "EUR", nil)
		repo := NewGormBudgetLineRepository(db)

		line := newBudgetLine(t, scope, "500")
		assert.ErrorIs(t, repo.Update(ctx, line), shared.ErrNotFound)
	})

	t.Run("update from another tenant is not found", func(t *testing.T) {
		db := setupTestDB(t)
		scope := seedContract(t, db, "EUR", nil)
		repo := NewGormBudgetLineRepository(db)

		line := newBudgetLine(t, scope, "500")
		require.NoError(t, repo.Create(ctx, line))

		// Rebind the line to a foreign tenant; the scoped predicate must
		// not match the stored row.
		line.TenantID = uuid.New()
		assert.ErrorIs(t, repo.Update(ctx, line), shared.ErrNotFound)
	})

	t.Run("soft delete hides the row and is not repeatable", func(t *testing.T) {
		db := setupTestDB(t)
		scope := seedContract(t, db, "EUR", nil)
		repo := NewGormBudgetLineRepository(db)

		line := newBudgetLine(t, scope, "500")
		require.NoError(t, repo.Create(ctx, line))
		require.NoError(t, repo.SoftDelete(ctx, scope, line.ID, uuid.New()))

		_, err := repo.FindByID(ctx, scope, line.ID)
		assert.ErrorIs(t, err, shared.ErrNotFound)
		assert.ErrorIs(t, repo.SoftDelete(ctx, scope, line.ID, uuid.New()), shared.ErrNotFound)
	})
}

func TestGormBudgetLineRepository_Aggregates(t *testing.T) {
	ctx := context.Background()

	t.Run("sum and count skip cancelled and deleted lines", func(t *testing.T) {
		db := setupTestDB(t)
		scope := seedContract(t, db, "EUR", nil)
		repo := NewGormBudgetLineRepository(db)

		require.NoError(t, repo.Create(ctx, newBudgetLine(t, scope, "300")))
		require.NoError(t, repo.Create(ctx, newBudgetLine(t, scope, "200")))

		cancelled := newBudgetLine(t, scope, "1000", func(in *ledger.BudgetLineInput) {
			in.Status = ledger.BudgetLineStatusCancelled
		})
		require.NoError(t, repo.Create(ctx, cancelled))

		deleted := newBudgetLine(t, scope, "1000")
		require.NoError(t, repo.Create(ctx, deleted))
		require.NoError(t, repo.SoftDelete(ctx, scope, deleted.ID, uuid.New()))

		sum, err := repo.SumActive(ctx, scope)
		require.NoError(t, err)
		assert.True(t, sum.Equal(dec(t, "500")), "got %s", sum)

		count, err := repo.CountActive(ctx, scope)
		require.NoError(t, err)
		assert.Equal(t, int64(2), count)
	})

	t.Run("sum of an empty contract is zero", func(t *testing.T) {
		db := setupTestDB(t)
		scope := seedContract(t, db, "EUR", nil)
		repo := NewGormBudgetLineRepository(db)

		sum, err := repo.SumActive(ctx, scope)
		require.NoError(t, err)
		assert.True(t, sum.IsZero())
	})

	t.Run("aggregates are tenant scoped", func(t *testing.T) {
		db := setupTestDB(t)
		scope := seedContract(t, db, "EUR", nil)
		other := seedContract(t, db, "EUR", nil)
		repo := NewGormBudgetLineRepository(db)

		require.NoError(t, repo.Create(ctx, newBudgetLine(t, scope, "300")))
		require.NoError(t, repo.Create(ctx, newBudgetLine(t, other, "900")))

		sum, err := repo.SumActive(ctx, scope)
		require.NoError(t, err)
		assert.True(t, sum.Equal(dec(t, "300")))
	})
}

func TestGormBudgetLineRepository_ListActiveForTenant(t *testing.T) {
	ctx := context.Background()

	db := setupTestDB(t)
	scope := seedContract(t, db, "EUR", nil)
	repo := NewGormBudgetLineRepository(db)

	// A second contract of the same tenant
	second := seedContract(t, db, "EUR", nil)
	second.TenantID = scope.TenantID
	require.NoError(t, db.Exec("UPDATE contracts SET tenant_id = ? WHERE id = ?", scope.TenantID, second.ContractID).Error)

	require.NoError(t, repo.Create(ctx, newBudgetLine(t, scope, "100")))
	require.NoError(t, repo.Create(ctx, newBudgetLine(t, second, "200")))
	cancelled := newBudgetLine(t, scope, "300", func(in *ledger.BudgetLineInput) {
		in.Status = ledger.BudgetLineStatusCancelled
	})
	require.NoError(t, repo.Create(ctx, cancelled))

	foreign := seedContract(t, db, "EUR", nil)
	require.NoError(t, repo.Create(ctx, newBudgetLine(t, foreign, "999")))

	lines, err := repo.ListActiveForTenant(ctx, scope.TenantID)
	require.NoError(t, err)
	require.Len(t, lines, 2)
	for _, line := range lines {
		assert.Equal(t, scope.TenantID, line.TenantID)
		assert.NotEqual(t, ledger.BudgetLineStatusCancelled, line.Status)
	}
}
