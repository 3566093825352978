package ledger

import (
	"time"

	"github.com/shopspring/decimal"
)

// BudgetSummary is the active-sum view of a contract's budget lines.
// The diff is budget minus contract; budget lines may exceed the contract
// value, the diff is informational.
type BudgetSummary struct {
	BudgetTotal          decimal.Decimal  `json:"budget_total"`
	ContractValue        *decimal.Decimal `json:"contract_value"`
	BudgetVsContractDiff *decimal.Decimal `json:"budget_vs_contract_diff"`
	ActiveLineCount      int64            `json:"active_line_count"`
}

// NewBudgetSummary builds the summary; the diff is nil when the contract
// value is nil.
func NewBudgetSummary(budgetTotal decimal.Decimal, contractValue *decimal.Decimal, activeLineCount int64) BudgetSummary {
	s := BudgetSummary{
		BudgetTotal:     budgetTotal,
		ContractValue:   contractValue,
		ActiveLineCount: activeLineCount,
	}
	if contractValue != nil {
		diff := budgetTotal.Sub(*contractValue)
		s.BudgetVsContractDiff = &diff
	}
	return s
}

// ExpenseSummary is the active-sum view of a contract's expenses. Note the
// reversed subtraction order relative to BudgetSummary: the expense diff is
// contract minus actual. This asymmetry is observed behavior and preserved
// verbatim.
type ExpenseSummary struct {
	ActualTotal          decimal.Decimal  `json:"actual_total"`
	ContractValue        *decimal.Decimal `json:"contract_value"`
	ContractVsActualDiff *decimal.Decimal `json:"contract_vs_actual_diff"`
	LineCount            int64            `json:"line_count"`
}

// NewExpenseSummary builds the summary; the diff is nil when the contract
// value is nil.
func NewExpenseSummary(actualTotal decimal.Decimal, contractValue *decimal.Decimal, lineCount int64) ExpenseSummary {
	s := ExpenseSummary{
		ActualTotal:   actualTotal,
		ContractValue: contractValue,
		LineCount:     lineCount,
	}
	if contractValue != nil {
		diff := contractValue.Sub(actualTotal)
		s.ContractVsActualDiff = &diff
	}
	return s
}

// CostSummary is the consistent cost snapshot of one contract, recomputed
// from current ledger state on every read. Nothing here is materialized.
type CostSummary struct {
	ContractValue          *decimal.Decimal `json:"contract_value"`
	BudgetTotal            decimal.Decimal  `json:"budget_total"`
	ActualTotal            decimal.Decimal  `json:"actual_total"`
	PaymentsScheduledTotal decimal.Decimal  `json:"payments_scheduled_total"`
	PaymentsPaidTotal      decimal.Decimal  `json:"payments_paid_total"`
	RemainingToSchedule    *decimal.Decimal `json:"remaining_to_schedule"`
	RemainingToPay         decimal.Decimal  `json:"remaining_to_pay"`
	BudgetVsContractDiff   *decimal.Decimal `json:"budget_vs_contract_diff"`
	ContractVsActualDiff   *decimal.Decimal `json:"contract_vs_actual_diff"`
	OverduePaymentsCount   int              `json:"overdue_payments_count"`
	OverduePaymentsTotal   decimal.Decimal  `json:"overdue_payments_total"`
}

// ComputeCostSummary composes the three ledgers into one snapshot.
// payments must be the contract's active (non-cancelled, non-deleted)
// payments. Fields derived from the contract value are nil while it is nil.
func ComputeCostSummary(contractValue *decimal.Decimal, budgetTotal, actualTotal decimal.Decimal, payments []Payment, today time.Time) CostSummary {
	scheduled := decimal.Zero
	paid := decimal.Zero
	overdueTotal := decimal.Zero
	overdueCount := 0

	for i := range payments {
		p := &payments[i]
		scheduled = scheduled.Add(p.Amount)
		if p.Status == PaymentStatusPaid {
			paid = paid.Add(p.Amount)
		}
		if p.IsOverdue(today) {
			overdueCount++
			overdueTotal = overdueTotal.Add(p.Amount)
		}
	}

	s := CostSummary{
		ContractValue:          contractValue,
		BudgetTotal:            budgetTotal,
		ActualTotal:            actualTotal,
		PaymentsScheduledTotal: scheduled,
		PaymentsPaidTotal:      paid,
		RemainingToPay:         scheduled.Sub(paid),
		OverduePaymentsCount:   overdueCount,
		OverduePaymentsTotal:   overdueTotal,
	}
	if contractValue != nil {
		remaining := contractValue.Sub(scheduled)
		s.RemainingToSchedule = &remaining
		budgetDiff := budgetTotal.Sub(*contractValue)
		s.BudgetVsContractDiff = &budgetDiff
		actualDiff := contractValue.Sub(actualTotal)
		s.ContractVsActualDiff = &actualDiff
	}
	return s
}
