package ledger

import (
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testScope() Scope {
	return Scope{TenantID: uuid.New(), ContractID: uuid.New()}
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func decPtr(s string) *decimal.Decimal {
	d := decimal.RequireFromString(s)
	return &d
}

func TestNewBudgetLine(t *testing.T) {
	scope := testScope()
	actor := uuid.New()

	t.Run("creates line with explicit total", func(t *testing.T) {
		line, err := NewBudgetLine(scope, actor, "EUR", BudgetLineInput{
			Name:        "Groundwork",
			TotalAmount: decPtr("1200.50"),
			Currency:    "USD",
		})
		require.NoError(t, err)
		assert.NotEqual(t, uuid.Nil, line.ID)
		assert.Equal(t, scope.TenantID, line.TenantID)
		assert.Equal(t, scope.ContractID, line.ContractID)
		assert.Equal(t, actor, line.CreatedBy)
		assert.True(t, dec("1200.50").Equal(line.TotalAmount))
		assert.Equal(t, "USD", line.Currency)
		assert.Equal(t, BudgetLineStatusPlanned, line.Status)
	})

	t.Run("auto-computes total from quantity and unit price", func(t *testing.T) {
		line, err := NewBudgetLine(scope, actor, "EUR", BudgetLineInput{
			Name:      "Steel beams",
			Quantity:  decPtr("10"),
			Unit:      "pcs",
			UnitPrice: decPtr("3000"),
		})
		require.NoError(t, err)
		assert.True(t, dec("30000").Equal(line.TotalAmount))
	})

	t.Run("explicit total wins over quantity times unit price", func(t *testing.T) {
		line, err := NewBudgetLine(scope, actor, "EUR", BudgetLineInput{
			Name:        "Steel beams",
			Quantity:    decPtr("10"),
			UnitPrice:   decPtr("3000"),
			TotalAmount: decPtr("25000"),
		})
		require.NoError(t, err)
		assert.True(t, dec("25000").Equal(line.TotalAmount))
	})

	t.Run("inherits contract currency when omitted", func(t *testing.T) {
		line, err := NewBudgetLine(scope, actor, "EUR", BudgetLineInput{
			Name:        "Groundwork",
			TotalAmount: decPtr("100"),
		})
		require.NoError(t, err)
		assert.Equal(t, "EUR", line.Currency)
	})

	t.Run("fails without name", func(t *testing.T) {
		_, err := NewBudgetLine(scope, actor, "EUR", BudgetLineInput{TotalAmount: decPtr("100")})
		require.Error(t, err)
	})

	t.Run("fails when total cannot be resolved", func(t *testing.T) {
		_, err := NewBudgetLine(scope, actor, "EUR", BudgetLineInput{
			Name:     "Groundwork",
			Quantity: decPtr("10"),
		})
		require.Error(t, err)
	})

	t.Run("fails with unknown status", func(t *testing.T) {
		_, err := NewBudgetLine(scope, actor, "EUR", BudgetLineInput{
			Name:        "Groundwork",
			TotalAmount: decPtr("100"),
			Status:      BudgetLineStatus("archived"),
		})
		require.Error(t, err)
	})
}

func TestBudgetLineApply(t *testing.T) {
	scope := testScope()
	actor := uuid.New()

	newLine := func(t *testing.T) *BudgetLine {
		line, err := NewBudgetLine(scope, actor, "EUR", BudgetLineInput{
			Name:      "Steel beams",
			Quantity:  decPtr("10"),
			UnitPrice: decPtr("3000"),
		})
		require.NoError(t, err)
		return line
	}

	t.Run("recomputes total when quantity changes", func(t *testing.T) {
		line := newLine(t)
		editor := uuid.New()
		err := line.Apply(BudgetLinePatch{Quantity: decPtr("5")}, editor)
		require.NoError(t, err)
		assert.True(t, dec("15000").Equal(line.TotalAmount))
		assert.Equal(t, editor, line.UpdatedBy)
	})

	t.Run("explicit total in patch wins", func(t *testing.T) {
		line := newLine(t)
		err := line.Apply(BudgetLinePatch{Quantity: decPtr("5"), TotalAmount: decPtr("9999")}, actor)
		require.NoError(t, err)
		assert.True(t, dec("9999").Equal(line.TotalAmount))
	})

	t.Run("leaves total untouched when unrelated fields change", func(t *testing.T) {
		line := newLine(t)
		name := "Rebar"
		err := line.Apply(BudgetLinePatch{Name: &name}, actor)
		require.NoError(t, err)
		assert.True(t, dec("30000").Equal(line.TotalAmount))
		assert.Equal(t, "Rebar", line.Name)
	})

	t.Run("rejects empty name", func(t *testing.T) {
		line := newLine(t)
		name := ""
		require.Error(t, line.Apply(BudgetLinePatch{Name: &name}, actor))
	})

	t.Run("cancelled line is not active", func(t *testing.T) {
		line := newLine(t)
		status := BudgetLineStatusCancelled
		require.NoError(t, line.Apply(BudgetLinePatch{Status: &status}, actor))
		assert.False(t, line.IsActive())
	})

	t.Run("soft-deleted line is not active", func(t *testing.T) {
		line := newLine(t)
		line.MarkDeleted(actor)
		assert.False(t, line.IsActive())
		assert.NotNil(t, line.DeletedAt)
	})
}
