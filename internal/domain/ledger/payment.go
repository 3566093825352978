package ledger

import (
	"time"

	"github.com/costledger/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// PaymentStatus represents the status of a scheduled payment
type PaymentStatus string

const (
	PaymentStatusPlanned   PaymentStatus = "planned"
	PaymentStatusDue       PaymentStatus = "due"
	PaymentStatusPaid      PaymentStatus = "paid"
	PaymentStatusCancelled PaymentStatus = "cancelled"
)

// IsValid checks if the status is a valid PaymentStatus
func (s PaymentStatus) IsValid() bool {
	switch s {
	case PaymentStatusPlanned, PaymentStatusDue, PaymentStatusPaid, PaymentStatusCancelled:
		return true
	}
	return false
}

// String returns the string representation of PaymentStatus
func (s PaymentStatus) String() string {
	return string(s)
}

// Payment represents one scheduled payment of a contract. The active sum
// over a contract's payments must never exceed the contract value when the
// contract is finalized.
type Payment struct {
	shared.TenantEntity
	ContractID uuid.UUID
	Name       string
	Amount     decimal.Decimal
	Currency   string
	DueDate    time.Time
	PaidAt     *time.Time
	Status     PaymentStatus
	SortOrder  int
}

// IsActive reports whether the payment participates in sums
func (p *Payment) IsActive() bool {
	return p.Status != PaymentStatusCancelled && !p.IsDeleted()
}

// IsOverdue reports whether the payment is past due: not paid, not
// cancelled, and due strictly before the given day. Compared on calendar
// dates, not instants. Overdue status is computed, never persisted.
func (p *Payment) IsOverdue(today time.Time) bool {
	if p.Status == PaymentStatusPaid || p.Status == PaymentStatusCancelled {
		return false
	}
	return dateOf(p.DueDate).Before(dateOf(today))
}

func dateOf(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// CheckPaymentCeiling enforces the total-value invariant: the active
// payment sum plus the new amount must not exceed the contract value.
// The boundary is inclusive, a sum equal to the ceiling passes. A nil
// ceiling means the contract is not finalized and the check is skipped.
func CheckPaymentCeiling(activeSum, amount decimal.Decimal, ceiling *decimal.Decimal) error {
	if ceiling == nil {
		return nil
	}
	attempted := activeSum.Add(amount)
	if attempted.LessThanOrEqual(*ceiling) {
		return nil
	}
	return &shared.DomainError{
		Code:    shared.CodePaymentTotalExceeded,
		Message: "Scheduled payment total would exceed the contract value",
		Details: map[string]any{
			"validation": map[string]any{
				"amount": map[string]string{
					"attempted": attempted.String(),
					"allowed":   ceiling.String(),
				},
			},
		},
	}
}

// PaymentInput carries the fields accepted on create
type PaymentInput struct {
	Name      string
	Amount    *decimal.Decimal
	Currency  string
	DueDate   time.Time
	PaidAt    *time.Time
	Status    PaymentStatus
	SortOrder int
}

// NewPayment creates a payment within a scope. Currency inheritance
// follows the same rule as budget lines.
func NewPayment(scope Scope, createdBy uuid.UUID, contractCurrency string, in PaymentInput) (*Payment, error) {
	fields := map[string]string{}
	if in.Name == "" {
		fields["name"] = "name is required"
	}
	if in.Amount == nil {
		fields["amount"] = "amount is required"
	}
	if in.DueDate.IsZero() {
		fields["due_date"] = "due_date is required"
	}
	status := in.Status
	if status == "" {
		status = PaymentStatusPlanned
	}
	if !status.IsValid() {
		fields["status"] = "status must be one of planned, due, paid, cancelled"
	}
	if len(fields) > 0 {
		return nil, shared.NewValidationError("Invalid payment", fields)
	}
	currency := in.Currency
	if currency == "" {
		currency = contractCurrency
	}

	return &Payment{
		TenantEntity: shared.NewTenantEntity(scope.TenantID, createdBy),
		ContractID:   scope.ContractID,
		Name:         in.Name,
		Amount:       *in.Amount,
		Currency:     currency,
		DueDate:      in.DueDate,
		PaidAt:       in.PaidAt,
		Status:       status,
		SortOrder:    in.SortOrder,
	}, nil
}

// PaymentPatch carries a partial field set for update
type PaymentPatch struct {
	Name      *string
	Amount    *decimal.Decimal
	Currency  *string
	DueDate   *time.Time
	PaidAt    *time.Time
	Status    *PaymentStatus
	SortOrder *int
}

// Apply merges a partial update into the payment
func (p *Payment) Apply(patch PaymentPatch, by uuid.UUID) error {
	if patch.Name != nil {
		if *patch.Name == "" {
			return shared.NewValidationError("Invalid payment", map[string]string{"name": "name cannot be empty"})
		}
		p.Name = *patch.Name
	}
	if patch.Status != nil {
		if !patch.Status.IsValid() {
			return shared.NewValidationError("Invalid payment", map[string]string{"status": "status must be one of planned, due, paid, cancelled"})
		}
		p.Status = *patch.Status
	}
	if patch.Amount != nil {
		p.Amount = *patch.Amount
	}
	if patch.Currency != nil {
		p.Currency = *patch.Currency
	}
	if patch.DueDate != nil {
		p.DueDate = *patch.DueDate
	}
	if patch.PaidAt != nil {
		p.PaidAt = patch.PaidAt
	}
	if patch.SortOrder != nil {
		p.SortOrder = *patch.SortOrder
	}

	p.Touch(by)
	return nil
}
