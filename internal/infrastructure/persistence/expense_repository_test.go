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

func newExpense(t *testing.T, scope ledger.Scope, amount string, opts ...func(*ledger.ExpenseInput)) *ledger.Expense {
	t.Helper()
	in := ledger.ExpenseInput{
		Name:   "Site works",
		Amount: decPtr(t, amount),
	}
	for _, opt := range opts {
		opt(&in)
	}
	expense, err := ledger.NewExpense(scope, uuid.New(), "EUR", in)
	require.NoError(t, err)
	return expense
}

func TestGormExpenseRepository(t *testing.T) {
	ctx := context.Background()

	t.Run("create and find roundtrip", func(t *testing.T) {
		db := setupTestDB(t)
		scope := seedContract(t, db, "EUR", nil)
		repo := NewGormExpenseRepository(db)

		expense := newExpense(t, scope, "250", func(in *ledger.ExpenseInput) {
			in.Quantity = decPtr(t, "5")
			in.UnitCost = decPtr(t, "50")
		})
		require.NoError(t, repo.Create(ctx, expense))

		found, err := repo.FindByID(ctx, scope, expense.ID)
		require.NoError(t, err)
		assert.Equal(t, "Site works", found.Name)
		assert.True(t, found.Amount.Equal(dec(t, "250")))
		assert.Equal(t, ledger.ExpenseStatusRecorded, found.Status)
	})

	t.Run("update of a deleted expense is not found", func(t *testing.T) {
		db := setupTestDB(t)
		scope := seedContract(t, db, "EUR", nil)
		repo := NewGormExpenseRepository(db)

		expense := newExpense(t, scope, "250")
		require.NoError(t, repo.Create(ctx, expense))
		require.NoError(t, repo.SoftDelete(ctx, scope, expense.ID, uuid.New()))

		expense.Amount = dec(t, "300")
		assert.ErrorIs(t, repo.Update(ctx, expense), shared.ErrNotFound)
	})

	t.Run("listings and lookups are tenant scoped", func(t *testing.T) {
		db := setupTestDB(t)
		scope := seedContract(t, db, "EUR", nil)
		repo := NewGormExpenseRepository(db)

		expense := newExpense(t, scope, "250")
		require.NoError(t, repo.Create(ctx, expense))

		foreign := ledger.Scope{TenantID: uuid.New(), ContractID: scope.ContractID}
		_, err := repo.FindByID(ctx, foreign, expense.ID)
		assert.ErrorIs(t, err, shared.ErrNotFound)

		expenses, err := repo.ListForContract(ctx, foreign)
		require.NoError(t, err)
		assert.Empty(t, expenses)
	})

	t.Run("sum skips cancelled and deleted expenses", func(t *testing.T) {
		db := setupTestDB(t)
		scope := seedContract(t, db, "EUR", nil)
		repo := NewGormExpenseRepository(db)

		require.NoError(t, repo.Create(ctx, newExpense(t, scope, "400")))

		cancelled := newExpense(t, scope, "1000", func(in *ledger.ExpenseInput) {
			in.Status = ledger.ExpenseStatusCancelled
		})
		require.NoError(t, repo.Create(ctx, cancelled))

		deleted := newExpense(t, scope, "1000")
		require.NoError(t, repo.Create(ctx, deleted))
		require.NoError(t, repo.SoftDelete(ctx, scope, deleted.ID, uuid.New()))

		sum, err := repo.SumActive(ctx, scope)
		require.NoError(t, err)
		assert.True(t, sum.Equal(dec(t, "400")), "got %s", sum)

		count, err := repo.CountActive(ctx, scope)
		require.NoError(t, err)
		assert.Equal(t, int64(1), count)
	})
}
