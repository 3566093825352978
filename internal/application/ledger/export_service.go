package ledger

import (
	"context"
	"encoding/csv"
	"io"
	"strconv"

	"github.com/costledger/backend/internal/domain/ledger"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Row kinds of the export dump
const (
	ExportKindBudgetLine = "budget_line"
	ExportKindExpense    = "expense"
	ExportKindPayment    = "payment"
)

// ExportRow is one flat row of the tenant-wide export. Cancelled and
// soft-deleted rows never appear here.
type ExportRow struct {
	Kind       string
	ContractID uuid.UUID
	ID         uuid.UUID
	Name       string
	Quantity   *decimal.Decimal
	Unit       string
	UnitPrice  *decimal.Decimal
	Amount     decimal.Decimal
	Currency   string
	Status     string
	DueDate    string
	SortOrder  int
}

// ExportService assembles the flat active-row dump across all three
// ledgers of a tenant
type ExportService struct {
	lines    ledger.BudgetLineRepository
	expenses ledger.ExpenseRepository
	payments ledger.PaymentRepository
}

// NewExportService creates a new ExportService
func NewExportService(
	lines ledger.BudgetLineRepository,
	expenses ledger.ExpenseRepository,
	payments ledger.PaymentRepository,
) *ExportService {
	return &ExportService{lines: lines, expenses: expenses, payments: payments}
}

// Rows returns every active row of the tenant, budget lines first, then
// expenses, then payments
func (s *ExportService) Rows(ctx context.Context, tenantID uuid.UUID) ([]ExportRow, error) {
	lines, err := s.lines.ListActiveForTenant(ctx, tenantID)
	if err != nil {
		return nil, err
	}
	expenses, err := s.expenses.ListActiveForTenant(ctx, tenantID)
	if err != nil {
		return nil, err
	}
	payments, err := s.payments.ListActiveForTenant(ctx, tenantID)
	if err != nil {
		return nil, err
	}

	rows := make([]ExportRow, 0, len(lines)+len(expenses)+len(payments))
	for i := range lines {
		l := &lines[i]
		rows = append(rows, ExportRow{
			Kind:       ExportKindBudgetLine,
			ContractID: l.ContractID,
			ID:         l.ID,
			Name:       l.Name,
			Quantity:   l.Quantity,
			Unit:       l.Unit,
			UnitPrice:  l.UnitPrice,
			Amount:     l.TotalAmount,
			Currency:   l.Currency,
			Status:     l.Status.String(),
		})
	}
	for i := range expenses {
		e := &expenses[i]
		rows = append(rows, ExportRow{
			Kind:       ExportKindExpense,
			ContractID: e.ContractID,
			ID:         e.ID,
			Name:       e.Name,
			Quantity:   e.Quantity,
			UnitPrice:  e.UnitCost,
			Amount:     e.Amount,
			Currency:   e.Currency,
			Status:     e.Status.String(),
		})
	}
	for i := range payments {
		p := &payments[i]
		rows = append(rows, ExportRow{
			Kind:       ExportKindPayment,
			ContractID: p.ContractID,
			ID:         p.ID,
			Name:       p.Name,
			Amount:     p.Amount,
			Currency:   p.Currency,
			Status:     p.Status.String(),
			DueDate:    p.DueDate.Format(dueDateLayout),
			SortOrder:  p.SortOrder,
		})
	}
	return rows, nil
}

// WriteCSV streams the rows as CSV with a header line
func WriteCSV(w io.Writer, rows []ExportRow) error {
	cw := csv.NewWriter(w)
	header := []string{"kind", "contract_id", "id", "name", "quantity", "unit", "unit_price", "amount", "currency", "status", "due_date", "sort_order"}
	if err := cw.Write(header); err != nil {
		return err
	}
	for i := range rows {
		r := &rows[i]
		record := []string{
			r.Kind,
			r.ContractID.String(),
			r.ID.String(),
			r.Name,
			decimalOrEmpty(r.Quantity),
			r.Unit,
			decimalOrEmpty(r.UnitPrice),
			r.Amount.String(),
			r.Currency,
			r.Status,
			r.DueDate,
			sortOrderOrEmpty(r),
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func decimalOrEmpty(d *decimal.Decimal) string {
	if d == nil {
		return ""
	}
	return d.String()
}

func sortOrderOrEmpty(r *ExportRow) string {
	if r.Kind != ExportKindPayment {
		return ""
	}
	return strconv.Itoa(r.SortOrder)
}
