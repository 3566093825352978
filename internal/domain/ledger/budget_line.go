package ledger

import (
	"github.com/costledger/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// BudgetLineStatus represents the status of a budget line
type BudgetLineStatus string

const (
	BudgetLineStatusPlanned   BudgetLineStatus = "planned"
	BudgetLineStatusApproved  BudgetLineStatus = "approved"
	BudgetLineStatusCancelled BudgetLineStatus = "cancelled"
)

// IsValid checks if the status is a valid BudgetLineStatus
func (s BudgetLineStatus) IsValid() bool {
	switch s {
	case BudgetLineStatusPlanned, BudgetLineStatusApproved, BudgetLineStatusCancelled:
		return true
	}
	return false
}

// String returns the string representation of BudgetLineStatus
func (s BudgetLineStatus) String() string {
	return string(s)
}

// BudgetLine represents one planned cost position of a contract budget.
// Budget lines may legitimately exceed the contract value; the diff against
// it is informational only.
type BudgetLine struct {
	shared.TenantEntity
	ContractID  uuid.UUID
	Name        string
	Quantity    *decimal.Decimal
	Unit        string
	UnitPrice   *decimal.Decimal
	TotalAmount decimal.Decimal
	Currency    string
	Status      BudgetLineStatus
}

// IsActive reports whether the line participates in sums:
// not cancelled and not soft-deleted.
func (b *BudgetLine) IsActive() bool {
	return b.Status != BudgetLineStatusCancelled && !b.IsDeleted()
}

// resolveLineAmount applies the auto-compute rule shared by budget lines
// and expenses: an explicit total always wins; otherwise quantity times
// unit price when both are present.
func resolveLineAmount(total, quantity, unitPrice *decimal.Decimal) (decimal.Decimal, bool) {
	if total != nil {
		return *total, true
	}
	if quantity != nil && unitPrice != nil {
		return quantity.Mul(*unitPrice), true
	}
	return decimal.Zero, false
}

// BudgetLineInput carries the fields accepted on create
type BudgetLineInput struct {
	Name        string
	Quantity    *decimal.Decimal
	Unit        string
	UnitPrice   *decimal.Decimal
	TotalAmount *decimal.Decimal
	Currency    string
	Status      BudgetLineStatus
}

// NewBudgetLine creates a budget line within a scope. When the input omits
// the currency, the parent contract's currency is inherited at creation
// time and never re-synced later.
func NewBudgetLine(scope Scope, createdBy uuid.UUID, contractCurrency string, in BudgetLineInput) (*BudgetLine, error) {
	if in.Name == "" {
		return nil, shared.NewValidationError("Invalid budget line", map[string]string{"name": "name is required"})
	}
	status := in.Status
	if status == "" {
		status = BudgetLineStatusPlanned
	}
	if !status.IsValid() {
		return nil, shared.NewValidationError("Invalid budget line", map[string]string{"status": "status must be one of planned, approved, cancelled"})
	}
	total, ok := resolveLineAmount(in.TotalAmount, in.Quantity, in.UnitPrice)
	if !ok {
		return nil, shared.NewValidationError("Invalid budget line", map[string]string{"total_amount": "total_amount is required unless quantity and unit_price are both set"})
	}
	currency := in.Currency
	if currency == "" {
		currency = contractCurrency
	}

	return &BudgetLine{
		TenantEntity: shared.NewTenantEntity(scope.TenantID, createdBy),
		ContractID:   scope.ContractID,
		Name:         in.Name,
		Quantity:     in.Quantity,
		Unit:         in.Unit,
		UnitPrice:    in.UnitPrice,
		TotalAmount:  total,
		Currency:     currency,
		Status:       status,
	}, nil
}

// BudgetLinePatch carries a partial field set for update.
// Nil fields are left unchanged.
type BudgetLinePatch struct {
	Name        *string
	Quantity    *decimal.Decimal
	Unit        *string
	UnitPrice   *decimal.Decimal
	TotalAmount *decimal.Decimal
	Currency    *string
	Status      *BudgetLineStatus
}

// Apply merges a partial update into the line. The auto-compute rule is
// re-run when quantity or unit price changed without an explicit total.
func (b *BudgetLine) Apply(patch BudgetLinePatch, by uuid.UUID) error {
	if patch.Name != nil {
		if *patch.Name == "" {
			return shared.NewValidationError("Invalid budget line", map[string]string{"name": "name cannot be empty"})
		}
		b.Name = *patch.Name
	}
	if patch.Status != nil {
		if !patch.Status.IsValid() {
			return shared.NewValidationError("Invalid budget line", map[string]string{"status": "status must be one of planned, approved, cancelled"})
		}
		b.Status = *patch.Status
	}
	if patch.Quantity != nil {
		b.Quantity = patch.Quantity
	}
	if patch.Unit != nil {
		b.Unit = *patch.Unit
	}
	if patch.UnitPrice != nil {
		b.UnitPrice = patch.UnitPrice
	}
	if patch.Currency != nil {
		b.Currency = *patch.Currency
	}

	switch {
	case patch.TotalAmount != nil:
		b.TotalAmount = *patch.TotalAmount
	case (patch.Quantity != nil || patch.UnitPrice != nil) && b.Quantity != nil && b.UnitPrice != nil:
		b.TotalAmount = b.Quantity.Mul(*b.UnitPrice)
	}

	b.Touch(by)
	return nil
}
