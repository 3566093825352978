package persistence

import (
	"context"

	"github.com/costledger/backend/internal/domain/ledger"
	"github.com/costledger/backend/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormContractRepository implements ledger.ContractLookup over the
// externally owned contracts table
type GormContractRepository struct {
	db *gorm.DB
}

// NewGormContractRepository creates a new GormContractRepository
func NewGormContractRepository(db *gorm.DB) *GormContractRepository {
	return &GormContractRepository{db: db}
}

// FindForTenant resolves a contract within a tenant. A contract of another
// tenant and a missing contract are the same NotFound.
func (r *GormContractRepository) FindForTenant(ctx context.Context, tenantID, contractID uuid.UUID) (*ledger.Contract, error) {
	var model models.ContractModel
	if err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND id = ?", tenantID, contractID).
		First(&model).Error; err != nil {
		return nil, mapError(err)
	}
	return model.ToDomain(), nil
}

// findForTenantLocked resolves the contract with a row lock inside tx.
// The lock spans the caller's sum-read and write so concurrent payment
// mutations serialize on the contract row. FOR UPDATE only exists on
// postgres; sqlite serializes writers on its own.
func findForTenantLocked(tx *gorm.DB, tenantID, contractID uuid.UUID) (*ledger.Contract, error) {
	query := tx.Where("tenant_id = ? AND id = ?", tenantID, contractID)
	if tx.Dialector.Name() == "postgres" {
		query = query.Clauses(clause.Locking{Strength: "UPDATE"})
	}
	var model models.ContractModel
	if err := query.First(&model).Error; err != nil {
		return nil, mapError(err)
	}
	return model.ToDomain(), nil
}
