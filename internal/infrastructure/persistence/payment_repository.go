package persistence

import (
	"context"

	"github.com/costledger/backend/internal/domain/ledger"
	"github.com/costledger/backend/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

const paymentOrder = "sort_order ASC, due_date ASC"

// GormPaymentRepository implements ledger.PaymentRepository using GORM.
// CreateChecked and UpdateChecked run inside a transaction holding a lock
// on the contract row, so the active-sum read and the write form one
// atomic step with respect to other payment mutations on the contract.
type GormPaymentRepository struct {
	db *gorm.DB
}

// NewGormPaymentRepository creates a new GormPaymentRepository
func NewGormPaymentRepository(db *gorm.DB) *GormPaymentRepository {
	return &GormPaymentRepository{db: db}
}

// CreateChecked inserts a payment after verifying the total-value invariant
// under the contract lock. Cancelled payments skip the check entirely.
func (r *GormPaymentRepository) CreateChecked(ctx context.Context, payment *ledger.Payment) error {
	return mapError(r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		contract, err := findForTenantLocked(tx, payment.TenantID, payment.ContractID)
		if err != nil {
			return err
		}
		if payment.IsActive() {
			activeSum, err := r.activeSum(tx, ledger.Scope{TenantID: payment.TenantID, ContractID: payment.ContractID}, uuid.Nil)
			if err != nil {
				return err
			}
			if err := ledger.CheckPaymentCeiling(activeSum, payment.Amount, contract.TotalValue); err != nil {
				return err
			}
		}
		return tx.Create(models.PaymentModelFromDomain(payment)).Error
	}))
}

// UpdateChecked saves a payment after re-verifying the invariant, with the
// payment's own row excluded from the active sum
func (r *GormPaymentRepository) UpdateChecked(ctx context.Context, payment *ledger.Payment) error {
	scope := ledger.Scope{TenantID: payment.TenantID, ContractID: payment.ContractID}
	return mapError(r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		contract, err := findForTenantLocked(tx, payment.TenantID, payment.ContractID)
		if err != nil {
			return err
		}
		if payment.IsActive() {
			activeSum, err := r.activeSum(tx, scope, payment.ID)
			if err != nil {
				return err
			}
			if err := ledger.CheckPaymentCeiling(activeSum, payment.Amount, contract.TotalValue); err != nil {
				return err
			}
		}

		model := models.PaymentModelFromDomain(payment)
		result := scoped(tx.Model(&models.PaymentModel{}), scope).Where("id = ?", payment.ID)
		result = notDeleted(result).Select("*").Updates(model)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	}))
}

// activeSum computes the scope's active payment sum, excluding the given
// payment id when not nil. Must run inside the locking transaction.
func (r *GormPaymentRepository) activeSum(tx *gorm.DB, scope ledger.Scope, excludeID uuid.UUID) (decimal.Decimal, error) {
	query := active(scoped(tx.Model(&models.PaymentModel{}), scope))
	if excludeID != uuid.Nil {
		query = query.Where("id <> ?", excludeID)
	}
	return sumActive(query, "amount")
}

// FindByID finds a non-deleted payment within the scope
func (r *GormPaymentRepository) FindByID(ctx context.Context, scope ledger.Scope, id uuid.UUID) (*ledger.Payment, error) {
	var model models.PaymentModel
	query := notDeleted(scoped(r.db.WithContext(ctx), scope)).Where("id = ?", id)
	if err := query.First(&model).Error; err != nil {
		return nil, mapError(err)
	}
	return model.ToDomain(), nil
}

// ListForContract returns the scope's non-deleted payments ordered by
// sort_order ascending with due_date as the tiebreaker
func (r *GormPaymentRepository) ListForContract(ctx context.Context, scope ledger.Scope) ([]ledger.Payment, error) {
	query := notDeleted(scoped(r.db.WithContext(ctx).Model(&models.PaymentModel{}), scope)).
		Order(paymentOrder)
	return r.collect(query)
}

// ListActive returns the scope's active payments in the same order
func (r *GormPaymentRepository) ListActive(ctx context.Context, scope ledger.Scope) ([]ledger.Payment, error) {
	query := active(scoped(r.db.WithContext(ctx).Model(&models.PaymentModel{}), scope)).
		Order(paymentOrder)
	return r.collect(query)
}

// ListActiveForTenant returns active payments across all of the tenant's
// contracts
func (r *GormPaymentRepository) ListActiveForTenant(ctx context.Context, tenantID uuid.UUID) ([]ledger.Payment, error) {
	query := active(r.db.WithContext(ctx).Model(&models.PaymentModel{}).Where("tenant_id = ?", tenantID)).
		Order("contract_id ASC, " + paymentOrder)
	return r.collect(query)
}

// SoftDelete sets the tombstone on a payment
func (r *GormPaymentRepository) SoftDelete(ctx context.Context, scope ledger.Scope, id, deletedBy uuid.UUID) error {
	return softDelete(r.db.WithContext(ctx), &models.PaymentModel{}, scope, id, deletedBy)
}

func (r *GormPaymentRepository) collect(query *gorm.DB) ([]ledger.Payment, error) {
	var paymentModels []models.PaymentModel
	if err := query.Find(&paymentModels).Error; err != nil {
		return nil, mapError(err)
	}
	payments := make([]ledger.Payment, len(paymentModels))
	for i := range paymentModels {
		payments[i] = *paymentModels[i].ToDomain()
	}
	return payments, nil
}
