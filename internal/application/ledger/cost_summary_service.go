package ledger

import (
	"context"
	"time"

	"github.com/costledger/backend/internal/domain/ledger"
)

// CostSummaryService composes the three ledgers into the per-contract cost
// snapshot. Nothing is cached or materialized; every call reads current
// state, so the snapshot is internally consistent but may differ between
// calls.
type CostSummaryService struct {
	contracts ledger.ContractLookup
	lines     ledger.BudgetLineRepository
	expenses  ledger.ExpenseRepository
	payments  ledger.PaymentRepository
	now       func() time.Time
}

// NewCostSummaryService creates a new CostSummaryService
func NewCostSummaryService(
	contracts ledger.ContractLookup,
	lines ledger.BudgetLineRepository,
	expenses ledger.ExpenseRepository,
	payments ledger.PaymentRepository,
) *CostSummaryService {
	return &CostSummaryService{
		contracts: contracts,
		lines:     lines,
		expenses:  expenses,
		payments:  payments,
		now:       time.Now,
	}
}

// Summary recomputes the cost snapshot of the scope's contract
func (s *CostSummaryService) Summary(ctx context.Context, scope ledger.Scope) (*ledger.CostSummary, error) {
	contract, err := s.contracts.FindForTenant(ctx, scope.TenantID, scope.ContractID)
	if err != nil {
		return nil, err
	}
	budgetTotal, err := s.lines.SumActive(ctx, scope)
	if err != nil {
		return nil, err
	}
	actualTotal, err := s.expenses.SumActive(ctx, scope)
	if err != nil {
		return nil, err
	}
	payments, err := s.payments.ListActive(ctx, scope)
	if err != nil {
		return nil, err
	}

	summary := ledger.ComputeCostSummary(contract.TotalValue, budgetTotal, actualTotal, payments, s.now())
	return &summary, nil
}
