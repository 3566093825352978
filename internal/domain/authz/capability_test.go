package authz

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestStaticOracleAllows(t *testing.T) {
	oracle := NewStaticOracle()
	tenantID := uuid.New()

	principal := func(roles ...Role) Principal {
		return Principal{UserID: uuid.New(), TenantID: tenantID, Roles: roles}
	}

	t.Run("viewer can view but not manage", func(t *testing.T) {
		p := principal(RoleViewer)
		assert.True(t, oracle.Allows(p, tenantID, CapabilityViewContracts))
		assert.False(t, oracle.Allows(p, tenantID, CapabilityManageContracts))
	})

	t.Run("manager can view and manage", func(t *testing.T) {
		p := principal(RoleManager)
		assert.True(t, oracle.Allows(p, tenantID, CapabilityViewContracts))
		assert.True(t, oracle.Allows(p, tenantID, CapabilityManageContracts))
	})

	t.Run("no roles grants nothing", func(t *testing.T) {
		p := principal()
		assert.False(t, oracle.Allows(p, tenantID, CapabilityViewContracts))
	})

	t.Run("unknown role grants nothing", func(t *testing.T) {
		p := principal(Role("auditor"))
		assert.False(t, oracle.Allows(p, tenantID, CapabilityViewContracts))
	})

	t.Run("capabilities never cross tenants", func(t *testing.T) {
		p := principal(RoleAdmin)
		assert.False(t, oracle.Allows(p, uuid.New(), CapabilityViewContracts))
	})
}
