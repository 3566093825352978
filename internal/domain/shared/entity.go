package shared

import (
	"time"

	"github.com/google/uuid"
)

// TenantEntity provides the common fields for all tenant-scoped ledger
// entities: identity, audit trail and the soft-delete tombstone.
type TenantEntity struct {
	ID        uuid.UUID
	TenantID  uuid.UUID
	CreatedBy uuid.UUID
	UpdatedBy uuid.UUID
	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt *time.Time
}

// NewTenantEntity creates a new tenant-scoped entity with a generated ID
func NewTenantEntity(tenantID, createdBy uuid.UUID) TenantEntity {
	now := time.Now()
	return TenantEntity{
		ID:        uuid.New(),
		TenantID:  tenantID,
		CreatedBy: createdBy,
		UpdatedBy: createdBy,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// IsDeleted reports whether the soft-delete tombstone is set
func (e *TenantEntity) IsDeleted() bool {
	return e.DeletedAt != nil
}

// Touch records a mutation by the given principal
func (e *TenantEntity) Touch(by uuid.UUID) {
	e.UpdatedBy = by
	e.UpdatedAt = time.Now()
}

// MarkDeleted sets the soft-delete tombstone
func (e *TenantEntity) MarkDeleted(by uuid.UUID) {
	now := time.Now()
	e.DeletedAt = &now
	e.UpdatedBy = by
	e.UpdatedAt = now
}
