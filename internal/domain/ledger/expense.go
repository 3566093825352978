package ledger

import (
	"github.com/costledger/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ExpenseStatus represents the status of an expense
type ExpenseStatus string

const (
	ExpenseStatusRecorded  ExpenseStatus = "recorded"
	ExpenseStatusApproved  ExpenseStatus = "approved"
	ExpenseStatusCancelled ExpenseStatus = "cancelled"
)

// IsValid checks if the status is a valid ExpenseStatus
func (s ExpenseStatus) IsValid() bool {
	switch s {
	case ExpenseStatusRecorded, ExpenseStatusApproved, ExpenseStatusCancelled:
		return true
	}
	return false
}

// String returns the string representation of ExpenseStatus
func (s ExpenseStatus) String() string {
	return string(s)
}

// Expense represents an actual cost booked against a contract
type Expense struct {
	shared.TenantEntity
	ContractID uuid.UUID
	Name       string
	Quantity   *decimal.Decimal
	UnitCost   *decimal.Decimal
	Amount     decimal.Decimal
	Currency   string
	Status     ExpenseStatus
}

// IsActive reports whether the expense participates in sums
func (e *Expense) IsActive() bool {
	return e.Status != ExpenseStatusCancelled && !e.IsDeleted()
}

// ExpenseInput carries the fields accepted on create
type ExpenseInput struct {
	Name     string
	Quantity *decimal.Decimal
	UnitCost *decimal.Decimal
	Amount   *decimal.Decimal
	Currency string
	Status   ExpenseStatus
}

// NewExpense creates an expense within a scope, following the same
// auto-compute and currency-inheritance rules as budget lines, with
// unit_cost in place of unit_price.
func NewExpense(scope Scope, createdBy uuid.UUID, contractCurrency string, in ExpenseInput) (*Expense, error) {
	if in.Name == "" {
		return nil, shared.NewValidationError("Invalid expense", map[string]string{"name": "name is required"})
	}
	status := in.Status
	if status == "" {
		status = ExpenseStatusRecorded
	}
	if !status.IsValid() {
		return nil, shared.NewValidationError("Invalid expense", map[string]string{"status": "status must be one of recorded, approved, cancelled"})
	}
	amount, ok := resolveLineAmount(in.Amount, in.Quantity, in.UnitCost)
	if !ok {
		return nil, shared.NewValidationError("Invalid expense", map[string]string{"amount": "amount is required unless quantity and unit_cost are both set"})
	}
	currency := in.Currency
	if currency == "" {
		currency = contractCurrency
	}

	return &Expense{
		TenantEntity: shared.NewTenantEntity(scope.TenantID, createdBy),
		ContractID:   scope.ContractID,
		Name:         in.Name,
		Quantity:     in.Quantity,
		UnitCost:     in.UnitCost,
		Amount:       amount,
		Currency:     currency,
		Status:       status,
	}, nil
}

// ExpensePatch carries a partial field set for update
type ExpensePatch struct {
	Name     *string
	Quantity *decimal.Decimal
	UnitCost *decimal.Decimal
	Amount   *decimal.Decimal
	Currency *string
	Status   *ExpenseStatus
}

// Apply merges a partial update into the expense
func (e *Expense) Apply(patch ExpensePatch, by uuid.UUID) error {
	if patch.Name != nil {
		if *patch.Name == "" {
			return shared.NewValidationError("Invalid expense", map[string]string{"name": "name cannot be empty"})
		}
		e.Name = *patch.Name
	}
	if patch.Status != nil {
		if !patch.Status.IsValid() {
			return shared.NewValidationError("Invalid expense", map[string]string{"status": "status must be one of recorded, approved, cancelled"})
		}
		e.Status = *patch.Status
	}
	if patch.Quantity != nil {
		e.Quantity = patch.Quantity
	}
	if patch.UnitCost != nil {
		e.UnitCost = patch.UnitCost
	}
	if patch.Currency != nil {
		e.Currency = *patch.Currency
	}

	switch {
	case patch.Amount != nil:
		e.Amount = *patch.Amount
	case (patch.Quantity != nil || patch.UnitCost != nil) && e.Quantity != nil && e.UnitCost != nil:
		e.Amount = e.Quantity.Mul(*e.UnitCost)
	}

	e.Touch(by)
	return nil
}
