package persistence

import (
	"context"

	"github.com/costledger/backend/internal/domain/ledger"
	"github.com/costledger/backend/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// GormBudgetLineRepository implements ledger.BudgetLineRepository using GORM
type GormBudgetLineRepository struct {
	db *gorm.DB
}

// NewGormBudgetLineRepository creates a new GormBudgetLineRepository
func NewGormBudgetLineRepository(db *gorm.DB) *GormBudgetLineRepository {
	return &GormBudgetLineRepository{db: db}
}

// Create inserts a budget line
func (r *GormBudgetLineRepository) Create(ctx context.Context, line *ledger.BudgetLine) error {
	model := models.BudgetLineModelFromDomain(line)
	return mapError(r.db.WithContext(ctx).Create(model).Error)
}

// Update saves all fields of an existing budget line. The scoped predicate
// guards against a row having been claimed by another tenant's id space.
func (r *GormBudgetLineRepository) Update(ctx context.Context, line *ledger.BudgetLine) error {
	model := models.BudgetLineModelFromDomain(line)
	result := scoped(r.db.WithContext(ctx).Model(&models.BudgetLineModel{}), ledger.Scope{TenantID: line.TenantID, ContractID: line.ContractID}).
		Where("id = ?", line.ID)
	result = notDeleted(result).Select("*").Updates(model)
	if result.Error != nil {
		return mapError(result.Error)
	}
	if result.RowsAffected == 0 {
		return mapError(gorm.ErrRecordNotFound)
	}
	return nil
}

// FindByID finds a non-deleted budget line within the scope
func (r *GormBudgetLineRepository) FindByID(ctx context.Context, scope ledger.Scope, id uuid.UUID) (*ledger.BudgetLine, error) {
	var model models.BudgetLineModel
	query := notDeleted(scoped(r.db.WithContext(ctx), scope)).Where("id = ?", id)
	if err := query.First(&model).Error; err != nil {
		return nil, mapError(err)
	}
	return model.ToDomain(), nil
}

// ListForContract returns all non-deleted budget lines of the scope's contract
func (r *GormBudgetLineRepository) ListForContract(ctx context.Context, scope ledger.Scope) ([]ledger.BudgetLine, error) {
	var lineModels []models.BudgetLineModel
	query := notDeleted(scoped(r.db.WithContext(ctx).Model(&models.BudgetLineModel{}), scope)).
		Order("created_at ASC")
	if err := query.Find(&lineModels).Error; err != nil {
		return nil, mapError(err)
	}
	lines := make([]ledger.BudgetLine, len(lineModels))
	for i := range lineModels {
		lines[i] = *lineModels[i].ToDomain()
	}
	return lines, nil
}

// ListActiveForTenant returns active budget lines across all of the
// tenant's contracts
func (r *GormBudgetLineRepository) ListActiveForTenant(ctx context.Context, tenantID uuid.UUID) ([]ledger.BudgetLine, error) {
	var lineModels []models.BudgetLineModel
	query := active(r.db.WithContext(ctx).Model(&models.BudgetLineModel{}).Where("tenant_id = ?", tenantID)).
		Order("contract_id ASC, created_at ASC")
	if err := query.Find(&lineModels).Error; err != nil {
		return nil, mapError(err)
	}
	lines := make([]ledger.BudgetLine, len(lineModels))
	for i := range lineModels {
		lines[i] = *lineModels[i].ToDomain()
	}
	return lines, nil
}

// SoftDelete sets the tombstone on a budget line. Deleting an already
// deleted or missing row is NotFound.
func (r *GormBudgetLineRepository) SoftDelete(ctx context.Context, scope ledger.Scope, id, deletedBy uuid.UUID) error {
	return softDelete(r.db.WithContext(ctx), &models.BudgetLineModel{}, scope, id, deletedBy)
}

// SumActive returns the active total of the scope's budget lines
func (r *GormBudgetLineRepository) SumActive(ctx context.Context, scope ledger.Scope) (decimal.Decimal, error) {
	return sumActive(active(scoped(r.db.WithContext(ctx).Model(&models.BudgetLineModel{}), scope)), "total_amount")
}

// CountActive returns the number of active budget lines in the scope
func (r *GormBudgetLineRepository) CountActive(ctx context.Context, scope ledger.Scope) (int64, error) {
	var count int64
	query := active(scoped(r.db.WithContext(ctx).Model(&models.BudgetLineModel{}), scope))
	if err := query.Count(&count).Error; err != nil {
		return 0, mapError(err)
	}
	return count, nil
}
