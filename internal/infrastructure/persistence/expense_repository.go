package persistence

import (
	"context"

	"github.com/costledger/backend/internal/domain/ledger"
	"github.com/costledger/backend/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// GormExpenseRepository implements ledger.ExpenseRepository using GORM
type GormExpenseRepository struct {
	db *gorm.DB
}

// NewGormExpenseRepository creates a new GormExpenseRepository
func NewGormExpenseRepository(db *gorm.DB) *GormExpenseRepository {
	return &GormExpenseRepository{db: db}
}

// Create inserts an expense
func (r *GormExpenseRepository) Create(ctx context.Context, expense *ledger.Expense) error {
	model := models.ExpenseModelFromDomain(expense)
	return mapError(r.db.WithContext(ctx).Create(model).Error)
}

// Update saves all fields of an existing expense
func (r *GormExpenseRepository) Update(ctx context.Context, expense *ledger.Expense) error {
	model := models.ExpenseModelFromDomain(expense)
	result := scoped(r.db.WithContext(ctx).Model(&models.ExpenseModel{}), ledger.Scope{TenantID: expense.TenantID, ContractID: expense.ContractID}).
		Where("id = ?", expense.ID)
	result = notDeleted(result).Select("*").Updates(model)
	if result.Error != nil {
		return mapError(result.Error)
	}
	if result.RowsAffected == 0 {
		return mapError(gorm.ErrRecordNotFound)
	}
	return nil
}

// FindByID finds a non-deleted expense within the scope
func (r *GormExpenseRepository) FindByID(ctx context.Context, scope ledger.Scope, id uuid.UUID) (*ledger.Expense, error) {
	var model models.ExpenseModel
	query := notDeleted(scoped(r.db.WithContext(ctx), scope)).Where("id = ?", id)
	if err := query.First(&model).Error; err != nil {
		return nil, mapError(err)
	}
	return model.ToDomain(), nil
}

// ListForContract returns all non-deleted expenses of the scope's contract
func (r *GormExpenseRepository) ListForContract(ctx context.Context, scope ledger.Scope) ([]ledger.Expense, error) {
	var expenseModels []models.ExpenseModel
	query := notDeleted(scoped(r.db.WithContext(ctx).Model(&models.ExpenseModel{}), scope)).
		Order("created_at ASC")
	if err := query.Find(&expenseModels).Error; err != nil {
		return nil, mapError(err)
	}
	expenses := make([]ledger.Expense, len(expenseModels))
	for i := range expenseModels {
		expenses[i] = *expenseModels[i].ToDomain()
	}
	return expenses, nil
}

// ListActiveForTenant returns active expenses across all of the tenant's
// contracts
func (r *GormExpenseRepository) ListActiveForTenant(ctx context.Context, tenantID uuid.UUID) ([]ledger.Expense, error) {
	var expenseModels []models.ExpenseModel
	query := active(r.db.WithContext(ctx).Model(&models.ExpenseModel{}).Where("tenant_id = ?", tenantID)).
		Order("contract_id ASC, created_at ASC")
	if err := query.Find(&expenseModels).Error; err != nil {
		return nil, mapError(err)
	}
	expenses := make([]ledger.Expense, len(expenseModels))
	for i := range expenseModels {
		expenses[i] = *expenseModels[i].ToDomain()
	}
	return expenses, nil
}

// SoftDelete sets the tombstone on an expense
func (r *GormExpenseRepository) SoftDelete(ctx context.Context, scope ledger.Scope, id, deletedBy uuid.UUID) error {
	return softDelete(r.db.WithContext(ctx), &models.ExpenseModel{}, scope, id, deletedBy)
}

// SumActive returns the active total of the scope's expenses
func (r *GormExpenseRepository) SumActive(ctx context.Context, scope ledger.Scope) (decimal.Decimal, error) {
	return sumActive(active(scoped(r.db.WithContext(ctx).Model(&models.ExpenseModel{}), scope)), "amount")
}

// CountActive returns the number of active expenses in the scope
func (r *GormExpenseRepository) CountActive(ctx context.Context, scope ledger.Scope) (int64, error) {
	var count int64
	query := active(scoped(r.db.WithContext(ctx).Model(&models.ExpenseModel{}), scope))
	if err := query.Count(&count).Error; err != nil {
		return 0, mapError(err)
	}
	return count, nil
}
