package persistence

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/costledger/backend/internal/domain/ledger"
	"github.com/costledger/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// scoped applies the tenant and contract predicates. Every ledger query
// goes through this; rows outside the scope do not exist as far as the
// caller is concerned.
func scoped(db *gorm.DB, scope ledger.Scope) *gorm.DB {
	return db.Where("tenant_id = ? AND contract_id = ?", scope.TenantID, scope.ContractID)
}

// notDeleted filters out soft-deleted rows. Applied explicitly, the
// tombstone column carries no ORM behavior of its own.
func notDeleted(db *gorm.DB) *gorm.DB {
	return db.Where("deleted_at IS NULL")
}

// active filters to rows that participate in sums: not soft-deleted and
// not cancelled
func active(db *gorm.DB) *gorm.DB {
	return notDeleted(db).Where("status <> ?", "cancelled")
}

// softDelete sets the tombstone on one row of any ledger table. A row that
// is missing, cross-tenant or already deleted yields NotFound alike.
func softDelete(db *gorm.DB, model any, scope ledger.Scope, id, deletedBy uuid.UUID) error {
	now := time.Now()
	result := notDeleted(scoped(db.Model(model), scope)).
		Where("id = ?", id).
		Updates(map[string]any{
			"deleted_at": &now,
			"updated_by": deletedBy,
			"updated_at": now,
		})
	if result.Error != nil {
		return mapError(result.Error)
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// sumActive runs COALESCE(SUM(column), 0) on an already filtered query.
// The sum travels as a string so decimals never pass through float64.
func sumActive(query *gorm.DB, column string) (decimal.Decimal, error) {
	var raw string
	if err := query.Select(fmt.Sprintf("COALESCE(SUM(%s), 0)", column)).Scan(&raw).Error; err != nil {
		return decimal.Zero, mapError(err)
	}
	if raw == "" {
		return decimal.Zero, nil
	}
	sum, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to parse aggregate %q: %w", raw, err)
	}
	return sum, nil
}

// mapError translates storage errors into domain errors. Serialization
// failures and lock timeouts become the retryable transient conflict;
// context deadlines do too, per the statement-timeout rule.
func mapError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return shared.ErrNotFound
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return shared.ErrTransientConflict
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case "40001", "40P01", "55P03", "57014":
			// serialization_failure, deadlock_detected,
			// lock_not_available, query_canceled
			return shared.ErrTransientConflict
		}
	}
	return err
}
