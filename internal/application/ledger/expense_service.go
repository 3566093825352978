package ledger

import (
	"context"
	"time"

	"github.com/costledger/backend/internal/domain/ledger"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ExpenseService provides application-level expense operations
type ExpenseService struct {
	contracts ledger.ContractLookup
	expenses  ledger.ExpenseRepository
}

// NewExpenseService creates a new ExpenseService
func NewExpenseService(contracts ledger.ContractLookup, expenses ledger.ExpenseRepository) *ExpenseService {
	return &ExpenseService{contracts: contracts, expenses: expenses}
}

// ExpenseResponse represents an expense in API responses
type ExpenseResponse struct {
	ID         uuid.UUID        `json:"id"`
	TenantID   uuid.UUID        `json:"tenant_id"`
	ContractID uuid.UUID        `json:"contract_id"`
	Name       string           `json:"name"`
	Quantity   *decimal.Decimal `json:"quantity,omitempty"`
	UnitCost   *decimal.Decimal `json:"unit_cost,omitempty"`
	Amount     decimal.Decimal  `json:"amount"`
	Currency   string           `json:"currency"`
	Status     string           `json:"status"`
	CreatedAt  time.Time        `json:"created_at"`
	UpdatedAt  time.Time        `json:"updated_at"`
}

// CreateExpenseRequest represents a request to create an expense
type CreateExpenseRequest struct {
	Name     string           `json:"name" binding:"required"`
	Quantity *decimal.Decimal `json:"quantity"`
	UnitCost *decimal.Decimal `json:"unit_cost"`
	Amount   *decimal.Decimal `json:"amount"`
	Currency string           `json:"currency" binding:"omitempty,currency"`
	Status   string           `json:"status" binding:"omitempty,oneof=recorded approved cancelled"`
}

// UpdateExpenseRequest represents a partial update to an expense
type UpdateExpenseRequest struct {
	Name     *string          `json:"name" binding:"omitempty,min=1"`
	Quantity *decimal.Decimal `json:"quantity"`
	UnitCost *decimal.Decimal `json:"unit_cost"`
	Amount   *decimal.Decimal `json:"amount"`
	Currency *string          `json:"currency" binding:"omitempty,currency"`
	Status   *string          `json:"status" binding:"omitempty,oneof=recorded approved cancelled"`
}

// Create creates an expense under the scope's contract
func (s *ExpenseService) Create(ctx context.Context, actorID uuid.UUID, scope ledger.Scope, req CreateExpenseRequest) (*ExpenseResponse, error) {
	contract, err := s.contracts.FindForTenant(ctx, scope.TenantID, scope.ContractID)
	if err != nil {
		return nil, err
	}

	expense, err := ledger.NewExpense(scope, actorID, contract.Currency, ledger.ExpenseInput{
		Name:     req.Name,
		Quantity: req.Quantity,
		UnitCost: req.UnitCost,
		Amount:   req.Amount,
		Currency: req.Currency,
		Status:   ledger.ExpenseStatus(req.Status),
	})
	if err != nil {
		return nil, err
	}

	if err := s.expenses.Create(ctx, expense); err != nil {
		return nil, err
	}
	return toExpenseResponse(expense), nil
}

// Get returns one expense within the scope
func (s *ExpenseService) Get(ctx context.Context, scope ledger.Scope, id uuid.UUID) (*ExpenseResponse, error) {
	if _, err := s.contracts.FindForTenant(ctx, scope.TenantID, scope.ContractID); err != nil {
		return nil, err
	}
	expense, err := s.expenses.FindByID(ctx, scope, id)
	if err != nil {
		return nil, err
	}
	return toExpenseResponse(expense), nil
}

// List returns all non-deleted expenses of the scope's contract
func (s *ExpenseService) List(ctx context.Context, scope ledger.Scope) ([]ExpenseResponse, error) {
	if _, err := s.contracts.FindForTenant(ctx, scope.TenantID, scope.ContractID); err != nil {
		return nil, err
	}
	expenses, err := s.expenses.ListForContract(ctx, scope)
	if err != nil {
		return nil, err
	}
	out := make([]ExpenseResponse, 0, len(expenses))
	for i := range expenses {
		out = append(out, *toExpenseResponse(&expenses[i]))
	}
	return out, nil
}

// Update applies a partial update to an expense
func (s *ExpenseService) Update(ctx context.Context, actorID uuid.UUID, scope ledger.Scope, id uuid.UUID, req UpdateExpenseRequest) (*ExpenseResponse, error) {
	if _, err := s.contracts.FindForTenant(ctx, scope.TenantID, scope.ContractID); err != nil {
		return nil, err
	}
	expense, err := s.expenses.FindByID(ctx, scope, id)
	if err != nil {
		return nil, err
	}

	patch := ledger.ExpensePatch{
		Name:     req.Name,
		Quantity: req.Quantity,
		UnitCost: req.UnitCost,
		Amount:   req.Amount,
		Currency: req.Currency,
	}
	if req.Status != nil {
		status := ledger.ExpenseStatus(*req.Status)
		patch.Status = &status
	}
	if err := expense.Apply(patch, actorID); err != nil {
		return nil, err
	}

	if err := s.expenses.Update(ctx, expense); err != nil {
		return nil, err
	}
	return toExpenseResponse(expense), nil
}

// Delete soft-deletes an expense
func (s *ExpenseService) Delete(ctx context.Context, actorID uuid.UUID, scope ledger.Scope, id uuid.UUID) error {
	if _, err := s.contracts.FindForTenant(ctx, scope.TenantID, scope.ContractID); err != nil {
		return err
	}
	return s.expenses.SoftDelete(ctx, scope, id, actorID)
}

// Summary returns the active expense summary of the scope's contract
func (s *ExpenseService) Summary(ctx context.Context, scope ledger.Scope) (*ledger.ExpenseSummary, error) {
	contract, err := s.contracts.FindForTenant(ctx, scope.TenantID, scope.ContractID)
	if err != nil {
		return nil, err
	}
	total, err := s.expenses.SumActive(ctx, scope)
	if err != nil {
		return nil, err
	}
	count, err := s.expenses.CountActive(ctx, scope)
	if err != nil {
		return nil, err
	}
	summary := ledger.NewExpenseSummary(total, contract.TotalValue, count)
	return &summary, nil
}

func toExpenseResponse(expense *ledger.Expense) *ExpenseResponse {
	return &ExpenseResponse{
		ID:         expense.ID,
		TenantID:   expense.TenantID,
		ContractID: expense.ContractID,
		Name:       expense.Name,
		Quantity:   expense.Quantity,
		UnitCost:   expense.UnitCost,
		Amount:     expense.Amount,
		Currency:   expense.Currency,
		Status:     expense.Status.String(),
		CreatedAt:  expense.CreatedAt,
		UpdatedAt:  expense.UpdatedAt,
	}
}
