package ledger

import (
	"context"
	"time"

	"github.com/costledger/backend/internal/domain/ledger"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// BudgetLineService provides application-level budget line operations.
// Every operation resolves the contract within the caller's tenant first,
// so a contract owned by another tenant surfaces as NotFound before any
// ledger row is touched.
type BudgetLineService struct {
	contracts ledger.ContractLookup
	lines     ledger.BudgetLineRepository
}

// NewBudgetLineService creates a new BudgetLineService
func NewBudgetLineService(contracts ledger.ContractLookup, lines ledger.BudgetLineRepository) *BudgetLineService {
	return &BudgetLineService{contracts: contracts, lines: lines}
}

// BudgetLineResponse represents a budget line in API responses
type BudgetLineResponse struct {
	ID          uuid.UUID        `json:"id"`
	TenantID    uuid.UUID        `json:"tenant_id"`
	ContractID  uuid.UUID        `json:"contract_id"`
	Name        string           `json:"name"`
	Quantity    *decimal.Decimal `json:"quantity,omitempty"`
	Unit        string           `json:"unit,omitempty"`
	UnitPrice   *decimal.Decimal `json:"unit_price,omitempty"`
	TotalAmount decimal.Decimal  `json:"total_amount"`
	Currency    string           `json:"currency"`
	Status      string           `json:"status"`
	CreatedAt   time.Time        `json:"created_at"`
	UpdatedAt   time.Time        `json:"updated_at"`
}

// CreateBudgetLineRequest represents a request to create a budget line
type CreateBudgetLineRequest struct {
	Name        string           `json:"name" binding:"required"`
	Quantity    *decimal.Decimal `json:"quantity"`
	Unit        string           `json:"unit"`
	UnitPrice   *decimal.Decimal `json:"unit_price"`
	TotalAmount *decimal.Decimal `json:"total_amount"`
	Currency    string           `json:"currency" binding:"omitempty,currency"`
	Status      string           `json:"status" binding:"omitempty,oneof=planned approved cancelled"`
}

// UpdateBudgetLineRequest represents a partial update. Omitted fields are
// left unchanged; PUT and PATCH share these semantics.
type UpdateBudgetLineRequest struct {
	Name        *string          `json:"name" binding:"omitempty,min=1"`
	Quantity    *decimal.Decimal `json:"quantity"`
	Unit        *string          `json:"unit"`
	UnitPrice   *decimal.Decimal `json:"unit_price"`
	TotalAmount *decimal.Decimal `json:"total_amount"`
	Currency    *string          `json:"currency" binding:"omitempty,currency"`
	Status      *string          `json:"status" binding:"omitempty,oneof=planned approved cancelled"`
}

// Create creates a budget line under the scope's contract
func (s *BudgetLineService) Create(ctx context.Context, actorID uuid.UUID, scope ledger.Scope, req CreateBudgetLineRequest) (*BudgetLineResponse, error) {
	contract, err := s.contracts.FindForTenant(ctx, scope.TenantID, scope.ContractID)
	if err != nil {
		return nil, err
	}

	line, err := ledger.NewBudgetLine(scope, actorID, contract.Currency, ledger.BudgetLineInput{
		Name:        req.Name,
		Quantity:    req.Quantity,
		Unit:        req.Unit,
		UnitPrice:   req.UnitPrice,
		TotalAmount: req.TotalAmount,
		Currency:    req.Currency,
		Status:      ledger.BudgetLineStatus(req.Status),
	})
	if err != nil {
		return nil, err
	}

	if err := s.lines.Create(ctx, line); err != nil {
		return nil, err
	}
	return toBudgetLineResponse(line), nil
}

// Get returns one budget line within the scope
func (s *BudgetLineService) Get(ctx context.Context, scope ledger.Scope, id uuid.UUID) (*BudgetLineResponse, error) {
	if _, err := s.contracts.FindForTenant(ctx, scope.TenantID, scope.ContractID); err != nil {
		return nil, err
	}
	line, err := s.lines.FindByID(ctx, scope, id)
	if err != nil {
		return nil, err
	}
	return toBudgetLineResponse(line), nil
}

// List returns all non-deleted budget lines of the scope's contract
func (s *BudgetLineService) List(ctx context.Context, scope ledger.Scope) ([]BudgetLineResponse, error) {
	if _, err := s.contracts.FindForTenant(ctx, scope.TenantID, scope.ContractID); err != nil {
		return nil, err
	}
	lines, err := s.lines.ListForContract(ctx, scope)
	if err != nil {
		return nil, err
	}
	out := make([]BudgetLineResponse, 0, len(lines))
	for i := range lines {
		out = append(out, *toBudgetLineResponse(&lines[i]))
	}
	return out, nil
}

// Update applies a partial update to a budget line
func (s *BudgetLineService) Update(ctx context.Context, actorID uuid.UUID, scope ledger.Scope, id uuid.UUID, req UpdateBudgetLineRequest) (*BudgetLineResponse, error) {
	if _, err := s.contracts.FindForTenant(ctx, scope.TenantID, scope.ContractID); err != nil {
		return nil, err
	}
	line, err := s.lines.FindByID(ctx, scope, id)
	if err != nil {
		return nil, err
	}

	patch := ledger.BudgetLinePatch{
		Name:        req.Name,
		Quantity:    req.Quantity,
		Unit:        req.Unit,
		UnitPrice:   req.UnitPrice,
		TotalAmount: req.TotalAmount,
		Currency:    req.Currency,
	}
	if req.Status != nil {
		status := ledger.BudgetLineStatus(*req.Status)
		patch.Status = &status
	}
	if err := line.Apply(patch, actorID); err != nil {
		return nil, err
	}

	if err := s.lines.Update(ctx, line); err != nil {
		return nil, err
	}
	return toBudgetLineResponse(line), nil
}

// Delete soft-deletes a budget line
func (s *BudgetLineService) Delete(ctx context.Context, actorID uuid.UUID, scope ledger.Scope, id uuid.UUID) error {
	if _, err := s.contracts.FindForTenant(ctx, scope.TenantID, scope.ContractID); err != nil {
		return err
	}
	return s.lines.SoftDelete(ctx, scope, id, actorID)
}

// Summary returns the active budget summary of the scope's contract,
// recomputed from current state on every call
func (s *BudgetLineService) Summary(ctx context.Context, scope ledger.Scope) (*ledger.BudgetSummary, error) {
	contract, err := s.contracts.FindForTenant(ctx, scope.TenantID, scope.ContractID)
	if err != nil {
		return nil, err
	}
	total, err := s.lines.SumActive(ctx, scope)
	if err != nil {
		return nil, err
	}
	count, err := s.lines.CountActive(ctx, scope)
	if err != nil {
		return nil, err
	}
	summary := ledger.NewBudgetSummary(total, contract.TotalValue, count)
	return &summary, nil
}

func toBudgetLineResponse(line *ledger.BudgetLine) *BudgetLineResponse {
	return &BudgetLineResponse{
		ID:          line.ID,
		TenantID:    line.TenantID,
		ContractID:  line.ContractID,
		Name:        line.Name,
		Quantity:    line.Quantity,
		Unit:        line.Unit,
		UnitPrice:   line.UnitPrice,
		TotalAmount: line.TotalAmount,
		Currency:    line.Currency,
		Status:      line.Status.String(),
		CreatedAt:   line.CreatedAt,
		UpdatedAt:   line.UpdatedAt,
	}
}
