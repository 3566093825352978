package middleware

import (
	"net/http"
	"strings"

	"github.com/costledger/backend/internal/domain/authz"
	"github.com/costledger/backend/internal/infrastructure/auth"
	"github.com/costledger/backend/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
)

const principalKey = "principal"

// JWTAuth validates the bearer token and stores the resolved principal in
// the gin context. Token minting is the identity system's job; only
// validation happens here.
func JWTAuth(jwtService *auth.JWTService) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			abortUnauthorized(c, "Missing authorization header")
			return
		}
		parts := strings.SplitN(header, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			abortUnauthorized(c, "Authorization header must be a bearer token")
			return
		}

		claims, err := jwtService.ValidateToken(parts[1])
		if err != nil {
			abortUnauthorized(c, "Invalid or expired token")
			return
		}
		principal, err := claims.Principal()
		if err != nil {
			abortUnauthorized(c, "Token claims are incomplete")
			return
		}

		c.Set(principalKey, principal)
		c.Next()
	}
}

// GetPrincipal returns the authenticated principal set by JWTAuth
func GetPrincipal(c *gin.Context) (authz.Principal, bool) {
	value, exists := c.Get(principalKey)
	if !exists {
		return authz.Principal{}, false
	}
	principal, ok := value.(authz.Principal)
	return principal, ok
}

func abortUnauthorized(c *gin.Context, message string) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, dto.NewErrorResponse(dto.ErrCodeUnauthorized, message))
}
