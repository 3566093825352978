package dto

import (
	"net/http"

	"github.com/costledger/backend/internal/domain/shared"
)

// ErrorResponse represents the error envelope. Validation details travel
// under details.validation as a field→message map.
type ErrorResponse struct {
	OK      bool           `json:"ok"`
	Code    string         `json:"code"`
	Message string         `json:"message,omitempty"`
	Details map[string]any `json:"details,omitempty"`
}

// NewErrorResponse creates an error response
func NewErrorResponse(code, message string) ErrorResponse {
	return ErrorResponse{
		OK:      false,
		Code:    code,
		Message: message,
	}
}

// NewErrorResponseWithDetails creates an error response carrying details
func NewErrorResponseWithDetails(code, message string, details map[string]any) ErrorResponse {
	return ErrorResponse{
		OK:      false,
		Code:    code,
		Message: message,
		Details: details,
	}
}

// NewValidationErrorResponse creates a 422-style validation error response
// from a field→message map
func NewValidationErrorResponse(message string, fields map[string]string) ErrorResponse {
	return ErrorResponse{
		OK:      false,
		Code:    shared.CodeValidation,
		Message: message,
		Details: map[string]any{"validation": fields},
	}
}

// ErrCodeUnauthorized covers missing or invalid credentials; it has no
// domain counterpart because auth is an external collaborator
const ErrCodeUnauthorized = "UNAUTHORIZED"

// codeStatus maps error codes to HTTP status codes. Cross-tenant access
// deliberately maps to 404, never 403.
var codeStatus = map[string]int{
	shared.CodeNotFound:             http.StatusNotFound,
	shared.CodeValidation:           http.StatusUnprocessableEntity,
	shared.CodePaymentTotalExceeded: http.StatusUnprocessableEntity,
	shared.CodePermissionDenied:     http.StatusForbidden,
	shared.CodeTransientConflict:    http.StatusConflict,
	shared.CodeInternal:             http.StatusInternalServerError,
	ErrCodeUnauthorized:             http.StatusUnauthorized,
}

// GetHTTPStatus returns the HTTP status for an error code, 500 for
// unknown codes
func GetHTTPStatus(code string) int {
	if status, ok := codeStatus[code]; ok {
		return status
	}
	return http.StatusInternalServerError
}
