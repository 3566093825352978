package ledger

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// BudgetLineRepository persists budget lines. Every method is bound to a
// Scope; rows outside the scope's tenant and contract are invisible, and
// soft-deleted rows are excluded from every lookup.
type BudgetLineRepository interface {
	Create(ctx context.Context, line *BudgetLine) error
	Update(ctx context.Context, line *BudgetLine) error
	FindByID(ctx context.Context, scope Scope, id uuid.UUID) (*BudgetLine, error)
	ListForContract(ctx context.Context, scope Scope) ([]BudgetLine, error)
	// ListActiveForTenant returns active lines across all the tenant's
	// contracts, for export.
	ListActiveForTenant(ctx context.Context, tenantID uuid.UUID) ([]BudgetLine, error)
	SoftDelete(ctx context.Context, scope Scope, id, deletedBy uuid.UUID) error
	SumActive(ctx context.Context, scope Scope) (decimal.Decimal, error)
	CountActive(ctx context.Context, scope Scope) (int64, error)
}

// ExpenseRepository persists expenses, mirroring BudgetLineRepository
type ExpenseRepository interface {
	Create(ctx context.Context, expense *Expense) error
	Update(ctx context.Context, expense *Expense) error
	FindByID(ctx context.Context, scope Scope, id uuid.UUID) (*Expense, error)
	ListForContract(ctx context.Context, scope Scope) ([]Expense, error)
	ListActiveForTenant(ctx context.Context, tenantID uuid.UUID) ([]Expense, error)
	SoftDelete(ctx context.Context, scope Scope, id, deletedBy uuid.UUID) error
	SumActive(ctx context.Context, scope Scope) (decimal.Decimal, error)
	CountActive(ctx context.Context, scope Scope) (int64, error)
}

// PaymentRepository persists scheduled payments. CreateChecked and
// UpdateChecked run inside a transaction that locks the contract row for
// the span of the active-sum read and the write, so two concurrent
// mutations cannot jointly overshoot the contract value.
type PaymentRepository interface {
	// CreateChecked inserts the payment after verifying the total-value
	// invariant under a contract-scoped lock.
	CreateChecked(ctx context.Context, payment *Payment) error
	// UpdateChecked saves the payment after re-verifying the invariant,
	// with the active sum computed excluding the payment itself.
	UpdateChecked(ctx context.Context, payment *Payment) error
	FindByID(ctx context.Context, scope Scope, id uuid.UUID) (*Payment, error)
	// ListForContract returns payments ordered by sort_order ascending,
	// ties broken by due_date ascending.
	ListForContract(ctx context.Context, scope Scope) ([]Payment, error)
	// ListActive returns non-cancelled, non-deleted payments in the same order.
	ListActive(ctx context.Context, scope Scope) ([]Payment, error)
	ListActiveForTenant(ctx context.Context, tenantID uuid.UUID) ([]Payment, error)
	SoftDelete(ctx context.Context, scope Scope, id, deletedBy uuid.UUID) error
}
