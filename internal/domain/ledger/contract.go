package ledger

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Contract is the parent of all ledger rows. It is owned by an external
// system and read-only here: the ledger consumes its currency and, when
// finalized, its total value as the payment ceiling.
type Contract struct {
	ID       uuid.UUID
	TenantID uuid.UUID
	Currency string
	// TotalValue is nil while the contract is not finalized; a nil value
	// means there is no budget ceiling.
	TotalValue *decimal.Decimal
}

// ContractLookup resolves a contract by id within a tenant. A contract
// belonging to another tenant is indistinguishable from a missing one:
// implementations return ErrNotFound for both.
type ContractLookup interface {
	FindForTenant(ctx context.Context, tenantID, contractID uuid.UUID) (*Contract, error)
}

// Scope binds a ledger read or write to exactly one tenant and contract.
// It is threaded explicitly through every service and repository call;
// there is no ambient tenant state.
type Scope struct {
	TenantID   uuid.UUID
	ContractID uuid.UUID
}
