package middleware

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/costledger/backend/internal/domain/authz"
	"github.com/costledger/backend/internal/infrastructure/cache"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// withPrincipal stands in for JWTAuth in tests
func withPrincipal(p authz.Principal) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(principalKey, p)
		c.Next()
	}
}

func testPrincipal() authz.Principal {
	return authz.Principal{
		UserID:   uuid.New(),
		TenantID: uuid.New(),
		Roles:    []authz.Role{authz.RoleManager},
	}
}

func idempotencyRouter(store *cache.InMemoryIdempotencyStore, principal authz.Principal, handler gin.HandlerFunc) *gin.Engine {
	router := gin.New()
	router.POST("/things",
		withPrincipal(principal),
		IdempotencyGuard(store, time.Hour, 256),
		handler,
	)
	return router
}

func post(router *gin.Engine, key string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/things", strings.NewReader(`{}`))
	if key != "" {
		req.Header.Set(IdempotencyKeyHeader, key)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestIdempotencyGuard(t *testing.T) {
	t.Run("rejects a mutation without a key", func(t *testing.T) {
		store := cache.NewInMemoryIdempotencyStore()
		router := idempotencyRouter(store, testPrincipal(), func(c *gin.Context) {
			c.JSON(http.StatusCreated, gin.H{"success": true})
		})

		w := post(router, "")
		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
		assert.Contains(t, w.Body.String(), `"ok":false`)
		assert.Contains(t, w.Body.String(), "VALIDATION_ERROR")
	})

	t.Run("rejects an oversized key", func(t *testing.T) {
		store := cache.NewInMemoryIdempotencyStore()
		router := idempotencyRouter(store, testPrincipal(), func(c *gin.Context) {
			c.JSON(http.StatusCreated, gin.H{"success": true})
		})

		w := post(router, strings.Repeat("x", 257))
		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	})

	t.Run("replays the stored response without re-running the handler", func(t *testing.T) {
		store := cache.NewInMemoryIdempotencyStore()
		calls := 0
		router := idempotencyRouter(store, testPrincipal(), func(c *gin.Context) {
			calls++
			c.JSON(http.StatusCreated, gin.H{"success": true, "data": gin.H{"id": uuid.NewString()}})
		})

		first := post(router, "client-key-1")
		require.Equal(t, http.StatusCreated, first.Code)

		second := post(router, "client-key-1")
		assert.Equal(t, http.StatusCreated, second.Code)
		assert.Equal(t, first.Body.String(), second.Body.String(), "replay is byte identical")
		assert.Equal(t, 1, calls)
	})

	t.Run("keys do not collide across tenants", func(t *testing.T) {
		store := cache.NewInMemoryIdempotencyStore()
		calls := 0
		handler := func(c *gin.Context) {
			calls++
			c.JSON(http.StatusCreated, gin.H{"success": true})
		}

		routerA := idempotencyRouter(store, testPrincipal(), handler)
		routerB := idempotencyRouter(store, testPrincipal(), handler)

		require.Equal(t, http.StatusCreated, post(routerA, "shared-key").Code)
		require.Equal(t, http.StatusCreated, post(routerB, "shared-key").Code)
		assert.Equal(t, 2, calls)
	})

	t.Run("a duplicate while the original is in flight conflicts", func(t *testing.T) {
		store := cache.NewInMemoryIdempotencyStore()
		principal := testPrincipal()
		router := idempotencyRouter(store, principal, func(c *gin.Context) {
			c.JSON(http.StatusCreated, gin.H{"success": true})
		})

		// Claim the key the middleware will compute, as if the original
		// request were still executing
		storageKey := fmt.Sprintf("%s:POST:/things:%s", principal.TenantID, "inflight-key")
		claimed, err := store.Claim(context.Background(), storageKey, time.Hour)
		require.NoError(t, err)
		require.True(t, claimed)

		w := post(router, "inflight-key")
		assert.Equal(t, http.StatusConflict, w.Code)
		assert.Contains(t, w.Body.String(), "TRANSIENT_CONFLICT")
	})

	t.Run("a failed attempt releases the key for retry", func(t *testing.T) {
		store := cache.NewInMemoryIdempotencyStore()
		calls := 0
		router := idempotencyRouter(store, testPrincipal(), func(c *gin.Context) {
			calls++
			if calls == 1 {
				c.JSON(http.StatusUnprocessableEntity, gin.H{"ok": false, "code": "VALIDATION_ERROR"})
				return
			}
			c.JSON(http.StatusCreated, gin.H{"success": true})
		})

		first := post(router, "retry-key")
		require.Equal(t, http.StatusUnprocessableEntity, first.Code)

		second := post(router, "retry-key")
		assert.Equal(t, http.StatusCreated, second.Code)
		assert.Equal(t, 2, calls)
	})
}
