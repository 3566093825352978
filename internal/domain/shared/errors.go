package shared

// Error codes surfaced to API clients
const (
	CodeNotFound             = "NOT_FOUND"
	CodeValidation           = "VALIDATION_ERROR"
	CodePermissionDenied     = "TENANT_PERMISSION_DENIED"
	CodePaymentTotalExceeded = "PAYMENT_TOTAL_EXCEEDED"
	CodeTransientConflict    = "TRANSIENT_CONFLICT"
	CodeInternal             = "INTERNAL_ERROR"
)

// DomainError represents a domain-level error. Details carries structured
// context (e.g. per-field validation messages) for the error envelope.
type DomainError struct {
	Code    string         `json:"code"`
	Message string         `json:"message"`
	Details map[string]any `json:"details,omitempty"`
}

// Error implements the error interface
func (e *DomainError) Error() string {
	return e.Message
}

// NewDomainError creates a new domain error
func NewDomainError(code, message string) *DomainError {
	return &DomainError{Code: code, Message: message}
}

// NewValidationError creates a validation error with a field→message map
func NewValidationError(message string, fields map[string]string) *DomainError {
	return &DomainError{
		Code:    CodeValidation,
		Message: message,
		Details: map[string]any{"validation": fields},
	}
}

// Common domain errors
var (
	ErrNotFound          = NewDomainError(CodeNotFound, "Resource not found")
	ErrPermissionDenied  = NewDomainError(CodePermissionDenied, "Principal is not allowed to perform this action")
	ErrTransientConflict = NewDomainError(CodeTransientConflict, "Conflicting concurrent request, retry")
)
