package middleware

import (
	"bytes"
	"fmt"
	"net/http"
	"time"

	"github.com/costledger/backend/internal/domain/shared"
	"github.com/costledger/backend/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
)

// IdempotencyKeyHeader is the client-supplied deduplication key header
const IdempotencyKeyHeader = "Idempotency-Key"

// responseRecorder duplicates the response body so a successful result can
// be stored for replay
type responseRecorder struct {
	gin.ResponseWriter
	body bytes.Buffer
}

func (r *responseRecorder) Write(b []byte) (int, error) {
	r.body.Write(b)
	return r.ResponseWriter.Write(b)
}

func (r *responseRecorder) WriteString(s string) (int, error) {
	r.body.WriteString(s)
	return r.ResponseWriter.WriteString(s)
}

// IdempotencyGuard deduplicates mutating requests by the Idempotency-Key
// header. The storage key is scoped by tenant and route, so the same
// client key on different endpoints does not collide.
//
// First request claims the key atomically and executes. A replay after a
// successful completion returns the stored response verbatim. A duplicate
// arriving while the first is still in flight gets 409 and may retry. A
// failed mutation releases the claim so the client can retry the key.
func IdempotencyGuard(store shared.IdempotencyStore, ttl time.Duration, maxKeySize int) gin.HandlerFunc {
	return func(c *gin.Context) {
		clientKey := c.GetHeader(IdempotencyKeyHeader)
		if clientKey == "" {
			c.AbortWithStatusJSON(http.StatusUnprocessableEntity, dto.NewValidationErrorResponse(
				"Missing idempotency key",
				map[string]string{"Idempotency-Key": "Idempotency-Key header is required on mutating requests"},
			))
			return
		}
		if len(clientKey) > maxKeySize {
			c.AbortWithStatusJSON(http.StatusUnprocessableEntity, dto.NewValidationErrorResponse(
				"Invalid idempotency key",
				map[string]string{"Idempotency-Key": fmt.Sprintf("Idempotency-Key must not exceed %d bytes", maxKeySize)},
			))
			return
		}

		principal, ok := GetPrincipal(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, dto.NewErrorResponse(dto.ErrCodeUnauthorized, "Missing principal"))
			return
		}
		key := fmt.Sprintf("%s:%s:%s:%s", principal.TenantID, c.Request.Method, c.FullPath(), clientKey)

		ctx := c.Request.Context()
		claimed, err := store.Claim(ctx, key, ttl)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusInternalServerError, dto.NewErrorResponse(shared.CodeInternal, "Idempotency store unavailable"))
			return
		}

		if !claimed {
			stored, err := store.Get(ctx, key)
			if err != nil {
				c.AbortWithStatusJSON(http.StatusInternalServerError, dto.NewErrorResponse(shared.CodeInternal, "Idempotency store unavailable"))
				return
			}
			if stored != nil {
				c.Data(stored.Status, stored.ContentType, stored.Body)
				c.Abort()
				return
			}
			// Claimed but unresolved: the original request is in flight
			c.AbortWithStatusJSON(http.StatusConflict, dto.NewErrorResponse(shared.CodeTransientConflict, "A request with this idempotency key is in progress, retry later"))
			return
		}

		recorder := &responseRecorder{ResponseWriter: c.Writer}
		c.Writer = recorder

		c.Next()

		status := c.Writer.Status()
		if status >= 200 && status < 300 {
			saveErr := store.Save(ctx, key, shared.StoredResponse{
				Status:      status,
				ContentType: c.Writer.Header().Get("Content-Type"),
				Body:        recorder.body.Bytes(),
			}, ttl)
			if saveErr != nil {
				// The mutation already happened; dropping the claim would
				// let a retry run it twice, so keep the claim and log via
				// gin's error list.
				_ = c.Error(saveErr)
			}
			return
		}

		// Failed attempts must not poison the key
		if err := store.Release(ctx, key); err != nil {
			_ = c.Error(err)
		}
	}
}
