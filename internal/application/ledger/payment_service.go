package ledger

import (
	"context"
	"time"

	"github.com/costledger/backend/internal/domain/ledger"
	"github.com/costledger/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const dueDateLayout = "2006-01-02"

// PaymentService provides application-level scheduled payment operations.
// Create and Update delegate the total-value invariant to the repository,
// which verifies it under a contract-scoped lock.
type PaymentService struct {
	contracts ledger.ContractLookup
	payments  ledger.PaymentRepository
	now       func() time.Time
}

// NewPaymentService creates a new PaymentService
func NewPaymentService(contracts ledger.ContractLookup, payments ledger.PaymentRepository) *PaymentService {
	return &PaymentService{contracts: contracts, payments: payments, now: time.Now}
}

// PaymentResponse represents a scheduled payment in API responses.
// Overdue is computed against today's date on every read.
type PaymentResponse struct {
	ID         uuid.UUID       `json:"id"`
	TenantID   uuid.UUID       `json:"tenant_id"`
	ContractID uuid.UUID       `json:"contract_id"`
	Name       string          `json:"name"`
	Amount     decimal.Decimal `json:"amount"`
	Currency   string          `json:"currency"`
	DueDate    string          `json:"due_date"`
	PaidAt     *time.Time      `json:"paid_at,omitempty"`
	Status     string          `json:"status"`
	SortOrder  int             `json:"sort_order"`
	Overdue    bool            `json:"overdue"`
	CreatedAt  time.Time       `json:"created_at"`
	UpdatedAt  time.Time       `json:"updated_at"`
}

// CreatePaymentRequest represents a request to create a scheduled payment
type CreatePaymentRequest struct {
	Name      string           `json:"name" binding:"required"`
	Amount    *decimal.Decimal `json:"amount" binding:"required"`
	Currency  string           `json:"currency" binding:"omitempty,currency"`
	DueDate   string           `json:"due_date" binding:"required,datetime=2006-01-02"`
	PaidAt    *time.Time       `json:"paid_at"`
	Status    string           `json:"status" binding:"omitempty,oneof=planned due paid cancelled"`
	SortOrder int              `json:"sort_order"`
}

// UpdatePaymentRequest represents a partial update to a scheduled payment
type UpdatePaymentRequest struct {
	Name      *string          `json:"name" binding:"omitempty,min=1"`
	Amount    *decimal.Decimal `json:"amount"`
	Currency  *string          `json:"currency" binding:"omitempty,currency"`
	DueDate   *string          `json:"due_date" binding:"omitempty,datetime=2006-01-02"`
	PaidAt    *time.Time       `json:"paid_at"`
	Status    *string          `json:"status" binding:"omitempty,oneof=planned due paid cancelled"`
	SortOrder *int             `json:"sort_order"`
}

// Create creates a scheduled payment under the scope's contract. The
// invariant check happens inside the repository transaction.
func (s *PaymentService) Create(ctx context.Context, actorID uuid.UUID, scope ledger.Scope, req CreatePaymentRequest) (*PaymentResponse, error) {
	contract, err := s.contracts.FindForTenant(ctx, scope.TenantID, scope.ContractID)
	if err != nil {
		return nil, err
	}

	dueDate, err := time.Parse(dueDateLayout, req.DueDate)
	if err != nil {
		return nil, shared.NewValidationError("Invalid payment", map[string]string{"due_date": "due_date must be formatted as YYYY-MM-DD"})
	}

	payment, err := ledger.NewPayment(scope, actorID, contract.Currency, ledger.PaymentInput{
		Name:      req.Name,
		Amount:    req.Amount,
		Currency:  req.Currency,
		DueDate:   dueDate,
		PaidAt:    req.PaidAt,
		Status:    ledger.PaymentStatus(req.Status),
		SortOrder: req.SortOrder,
	})
	if err != nil {
		return nil, err
	}

	if err := s.payments.CreateChecked(ctx, payment); err != nil {
		return nil, err
	}
	return s.toPaymentResponse(payment), nil
}

// Get returns one scheduled payment within the scope
func (s *PaymentService) Get(ctx context.Context, scope ledger.Scope, id uuid.UUID) (*PaymentResponse, error) {
	if _, err := s.contracts.FindForTenant(ctx, scope.TenantID, scope.ContractID); err != nil {
		return nil, err
	}
	payment, err := s.payments.FindByID(ctx, scope, id)
	if err != nil {
		return nil, err
	}
	return s.toPaymentResponse(payment), nil
}

// List returns the contract's payments ordered by sort_order then due_date
func (s *PaymentService) List(ctx context.Context, scope ledger.Scope) ([]PaymentResponse, error) {
	if _, err := s.contracts.FindForTenant(ctx, scope.TenantID, scope.ContractID); err != nil {
		return nil, err
	}
	payments, err := s.payments.ListForContract(ctx, scope)
	if err != nil {
		return nil, err
	}
	out := make([]PaymentResponse, 0, len(payments))
	for i := range payments {
		out = append(out, *s.toPaymentResponse(&payments[i]))
	}
	return out, nil
}

// Update applies a partial update to a scheduled payment. Amount and status
// changes re-verify the invariant with the payment's own active amount
// excluded from the sum.
func (s *PaymentService) Update(ctx context.Context, actorID uuid.UUID, scope ledger.Scope, id uuid.UUID, req UpdatePaymentRequest) (*PaymentResponse, error) {
	if _, err := s.contracts.FindForTenant(ctx, scope.TenantID, scope.ContractID); err != nil {
		return nil, err
	}
	payment, err := s.payments.FindByID(ctx, scope, id)
	if err != nil {
		return nil, err
	}

	patch := ledger.PaymentPatch{
		Name:      req.Name,
		Amount:    req.Amount,
		Currency:  req.Currency,
		PaidAt:    req.PaidAt,
		SortOrder: req.SortOrder,
	}
	if req.DueDate != nil {
		dueDate, err := time.Parse(dueDateLayout, *req.DueDate)
		if err != nil {
			return nil, shared.NewValidationError("Invalid payment", map[string]string{"due_date": "due_date must be formatted as YYYY-MM-DD"})
		}
		patch.DueDate = &dueDate
	}
	if req.Status != nil {
		status := ledger.PaymentStatus(*req.Status)
		patch.Status = &status
	}
	if err := payment.Apply(patch, actorID); err != nil {
		return nil, err
	}

	if err := s.payments.UpdateChecked(ctx, payment); err != nil {
		return nil, err
	}
	return s.toPaymentResponse(payment), nil
}

// Delete soft-deletes a scheduled payment
func (s *PaymentService) Delete(ctx context.Context, actorID uuid.UUID, scope ledger.Scope, id uuid.UUID) error {
	if _, err := s.contracts.FindForTenant(ctx, scope.TenantID, scope.ContractID); err != nil {
		return err
	}
	return s.payments.SoftDelete(ctx, scope, id, actorID)
}

func (s *PaymentService) toPaymentResponse(payment *ledger.Payment) *PaymentResponse {
	return &PaymentResponse{
		ID:         payment.ID,
		TenantID:   payment.TenantID,
		ContractID: payment.ContractID,
		Name:       payment.Name,
		Amount:     payment.Amount,
		Currency:   payment.Currency,
		DueDate:    payment.DueDate.Format(dueDateLayout),
		PaidAt:     payment.PaidAt,
		Status:     payment.Status.String(),
		SortOrder:  payment.SortOrder,
		Overdue:    payment.IsOverdue(s.now()),
		CreatedAt:  payment.CreatedAt,
		UpdatedAt:  payment.UpdatedAt,
	}
}
