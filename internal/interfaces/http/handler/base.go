package handler

import (
	"errors"
	"net/http"

	"github.com/costledger/backend/internal/domain/ledger"
	"github.com/costledger/backend/internal/domain/shared"
	"github.com/costledger/backend/internal/interfaces/http/dto"
	"github.com/costledger/backend/internal/interfaces/http/middleware"
	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

// BaseHandler provides common handler utilities
type BaseHandler struct{}

// Success sends a 200 success response
func (h *BaseHandler) Success(c *gin.Context, data any) {
	c.JSON(http.StatusOK, dto.NewSuccessResponse(data))
}

// Created sends a 201 created response
func (h *BaseHandler) Created(c *gin.Context, data any) {
	c.JSON(http.StatusCreated, dto.NewSuccessResponse(data))
}

// NoContent sends a 204 no content response
func (h *BaseHandler) NoContent(c *gin.Context) {
	c.Status(http.StatusNoContent)
}

// HandleError converts an error into the error envelope. Domain errors map
// by code; everything else is a 500 with a generic message.
func (h *BaseHandler) HandleError(c *gin.Context, err error) {
	var domainErr *shared.DomainError
	if errors.As(err, &domainErr) {
		status := dto.GetHTTPStatus(domainErr.Code)
		c.JSON(status, dto.NewErrorResponseWithDetails(domainErr.Code, domainErr.Message, domainErr.Details))
		return
	}
	_ = c.Error(err)
	c.JSON(http.StatusInternalServerError, dto.NewErrorResponse(shared.CodeInternal, "An unexpected error occurred"))
}

// HandleBindingError converts request binding failures into the 422
// validation envelope with a field→message map
func (h *BaseHandler) HandleBindingError(c *gin.Context, err error) {
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		fields := make(map[string]string, len(validationErrs))
		for _, fe := range validationErrs {
			fields[fe.Field()] = bindingMessage(fe)
		}
		c.JSON(http.StatusUnprocessableEntity, dto.NewValidationErrorResponse("Request validation failed", fields))
		return
	}
	c.JSON(http.StatusUnprocessableEntity, dto.NewValidationErrorResponse("Malformed request body", map[string]string{"body": err.Error()}))
}

func bindingMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "this field is required"
	case "datetime":
		return "must be formatted as YYYY-MM-DD"
	case "oneof":
		return "must be one of: " + fe.Param()
	case "currency":
		return "must be a 3-letter upper-case currency code"
	case "min":
		return "must not be empty"
	case "uuid":
		return "must be a valid UUID"
	default:
		return "is invalid"
	}
}

// requireScope resolves the actor and the tenant+contract scope of the
// request. The tenant always comes from the authenticated principal, never
// from the URL, so a caller cannot address another tenant's data.
func (h *BaseHandler) requireScope(c *gin.Context) (ledger.Scope, uuid.UUID, bool) {
	principal, ok := middleware.GetPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, dto.NewErrorResponse(dto.ErrCodeUnauthorized, "Missing principal"))
		return ledger.Scope{}, uuid.Nil, false
	}
	contractID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusUnprocessableEntity, dto.NewValidationErrorResponse("Invalid contract id", map[string]string{"id": "must be a valid UUID"}))
		return ledger.Scope{}, uuid.Nil, false
	}
	return ledger.Scope{TenantID: principal.TenantID, ContractID: contractID}, principal.UserID, true
}

// requireRecordID parses the record id path parameter
func (h *BaseHandler) requireRecordID(c *gin.Context, param string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(param))
	if err != nil {
		c.JSON(http.StatusUnprocessableEntity, dto.NewValidationErrorResponse("Invalid record id", map[string]string{param: "must be a valid UUID"}))
		return uuid.Nil, false
	}
	return id, true
}
