// Package authz holds the capability model gating the ledger API.
//
// Capabilities are a typed enum and the role→capability mapping is static,
// resolved once at startup; nothing is re-parsed per request.
package authz

import "github.com/google/uuid"

// Capability is an action a principal may be allowed to perform in a tenant
type Capability string

const (
	// CapabilityViewContracts gates every read endpoint
	CapabilityViewContracts Capability = "view_contracts"
	// CapabilityManageContracts gates create/update/delete on budget
	// lines, expenses and payments
	CapabilityManageContracts Capability = "manage_contracts"
)

// Role is a named set of capabilities
type Role string

const (
	RoleViewer  Role = "viewer"
	RoleManager Role = "manager"
	RoleAdmin   Role = "admin"
)

// roleGrants is the static role→capability-set mapping
var roleGrants = map[Role]map[Capability]bool{
	RoleViewer: {
		CapabilityViewContracts: true,
	},
	RoleManager: {
		CapabilityViewContracts:   true,
		CapabilityManageContracts: true,
	},
	RoleAdmin: {
		CapabilityViewContracts:   true,
		CapabilityManageContracts: true,
	},
}

// Principal is an authenticated caller within one tenant
type Principal struct {
	UserID   uuid.UUID
	TenantID uuid.UUID
	Roles    []Role
}

// Oracle answers "can principal P perform capability C in tenant T"
type Oracle interface {
	Allows(p Principal, tenantID uuid.UUID, c Capability) bool
}

// StaticOracle resolves capabilities from the static role mapping.
// A principal never holds capabilities outside their own tenant.
type StaticOracle struct{}

// NewStaticOracle creates the default role-based oracle
func NewStaticOracle() *StaticOracle {
	return &StaticOracle{}
}

// Allows implements Oracle
func (o *StaticOracle) Allows(p Principal, tenantID uuid.UUID, c Capability) bool {
	if p.TenantID != tenantID {
		return false
	}
	for _, role := range p.Roles {
		if roleGrants[role][c] {
			return true
		}
	}
	return false
}
