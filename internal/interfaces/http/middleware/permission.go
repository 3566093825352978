package middleware

import (
	"net/http"

	"github.com/costledger/backend/internal/domain/authz"
	"github.com/costledger/backend/internal/domain/shared"
	"github.com/costledger/backend/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
)

// RequireCapability gates a route on a capability. Denial happens before
// any ledger logic runs and is always 403, regardless of whether the
// addressed resources exist.
func RequireCapability(oracle authz.Oracle, capability authz.Capability) gin.HandlerFunc {
	return func(c *gin.Context) {
		principal, ok := GetPrincipal(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, dto.NewErrorResponse(dto.ErrCodeUnauthorized, "Missing principal"))
			return
		}
		if !oracle.Allows(principal, principal.TenantID, capability) {
			c.AbortWithStatusJSON(http.StatusForbidden, dto.NewErrorResponse(shared.CodePermissionDenied, "Principal is not allowed to perform this action"))
			return
		}
		c.Next()
	}
}
