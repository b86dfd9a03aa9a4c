package server

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	apartmentdomain "github.com/parima/rentledger/internal/apartment/domain"
	loandomain "github.com/parima/rentledger/internal/loan/domain"
	maintenancedomain "github.com/parima/rentledger/internal/maintenance/domain"
	meterdomain "github.com/parima/rentledger/internal/meterreading/domain"
	paymentdomain "github.com/parima/rentledger/internal/payment/domain"
	reconciliationdomain "github.com/parima/rentledger/internal/reconciliation/domain"
	tariffdomain "github.com/parima/rentledger/internal/tariff/domain"
	tenantdomain "github.com/parima/rentledger/internal/tenant/domain"
	"gorm.io/gorm"
)

type ValidationError struct {
	Field   string `json:"field"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

type ValidationErrors struct {
	Errors []ValidationError `json:"errors"`
}

func (v ValidationErrors) Error() string {
	return "validation error"
}

type errorPayload struct {
	Type    string            `json:"type"`
	Message string            `json:"message"`
	Errors  []ValidationError `json:"errors,omitempty"`
}

type errorResponse struct {
	Error errorPayload `json:"error"`
}

var (
	ErrConflict       = errors.New("conflict")
	ErrInternal       = errors.New("internal_error")
	ErrNotFound       = errors.New("not_found")
	ErrInvalidRequest = errors.New("invalid_request")
)

func ErrorHandlingMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if c.Writer.Written() {
			return
		}

		lastErr := c.Errors.Last()
		if lastErr == nil {
			return
		}

		status, payload := mapError(lastErr.Err)
		c.Header("Content-Type", "application/json")
		c.AbortWithStatusJSON(status, errorResponse{Error: payload})
	}
}

func AbortWithError(c *gin.Context, err error) {
	if err == nil {
		return
	}
	_ = c.Error(err)
	c.Abort()
}

func invalidRequestError() error {
	return newValidationError("request", "invalid_request", "invalid request")
}

func newValidationError(field, code, message string) error {
	return &ValidationErrors{
		Errors: []ValidationError{
			{
				Field:   field,
				Code:    code,
				Message: message,
			},
		},
	}
}

func mapError(err error) (int, errorPayload) {
	if err == nil {
		return http.StatusInternalServerError, errorPayload{
			Type:    "internal_error",
			Message: "internal server error",
		}
	}

	if vErr := asValidationErrors(err); vErr != nil {
		return http.StatusBadRequest, errorPayload{
			Type:    "validation_error",
			Message: "validation error",
			Errors:  vErr.Errors,
		}
	}

	if isValidationError(err) {
		code := validationErrorCode(err)
		return http.StatusBadRequest, errorPayload{
			Type:    "validation_error",
			Message: "validation error",
			Errors: []ValidationError{
				{
					Field:   validationErrorField(code),
					Code:    code,
					Message: validationErrorMessage(code),
				},
			},
		}
	}

	switch {
	case errors.Is(err, ErrConflict),
		errors.Is(err, apartmentdomain.ErrTenantAssigned),
		errors.Is(err, meterdomain.ErrDuplicateReading):
		return http.StatusConflict, errorPayload{
			Type:    "conflict",
			Message: "conflict",
		}
	case isNotFoundError(err):
		return http.StatusNotFound, errorPayload{
			Type:    "not_found",
			Message: "not found",
		}
	default:
		return http.StatusInternalServerError, errorPayload{
			Type:    "internal_error",
			Message: "internal server error",
		}
	}
}

func classifyErrorForLog(err error) (string, string) {
	status, payload := mapError(err)
	_ = status
	code := payload.Type
	if len(payload.Errors) > 0 {
		code = payload.Errors[0].Code
	}
	return payload.Type, code
}

func asValidationErrors(err error) *ValidationErrors {
	var vErr *ValidationErrors
	if errors.As(err, &vErr) && vErr != nil {
		return vErr
	}
	return nil
}

func isValidationError(err error) bool {
	switch {
	case errors.Is(err, ErrInvalidRequest):
		return true
	case isTenantValidationError(err),
		isApartmentValidationError(err),
		isPaymentValidationError(err),
		isMaintenanceValidationError(err),
		isLoanValidationError(err),
		isMeterReadingValidationError(err),
		isReconciliationValidationError(err),
		isTariffValidationError(err):
		return true
	default:
		return false
	}
}

func isTenantValidationError(err error) bool {
	return errors.Is(err, tenantdomain.ErrInvalidName) ||
		errors.Is(err, tenantdomain.ErrInvalidID)
}

func isApartmentValidationError(err error) bool {
	return errors.Is(err, apartmentdomain.ErrInvalidLabel) ||
		errors.Is(err, apartmentdomain.ErrInvalidRent) ||
		errors.Is(err, apartmentdomain.ErrInvalidID) ||
		errors.Is(err, apartmentdomain.ErrInvalidTenantID)
}

func isPaymentValidationError(err error) bool {
	return errors.Is(err, paymentdomain.ErrInvalidTenantID) ||
		errors.Is(err, paymentdomain.ErrInvalidAmount) ||
		errors.Is(err, paymentdomain.ErrInvalidType) ||
		errors.Is(err, paymentdomain.ErrInvalidPeriod) ||
		errors.Is(err, paymentdomain.ErrInvalidID)
}

func isMaintenanceValidationError(err error) bool {
	return errors.Is(err, maintenancedomain.ErrInvalidTenantID) ||
		errors.Is(err, maintenancedomain.ErrInvalidCost) ||
		errors.Is(err, maintenancedomain.ErrInvalidCostType) ||
		errors.Is(err, maintenancedomain.ErrInvalidID)
}

func isLoanValidationError(err error) bool {
	return errors.Is(err, loandomain.ErrInvalidTenantID) ||
		errors.Is(err, loandomain.ErrInvalidPrincipal) ||
		errors.Is(err, loandomain.ErrInvalidID)
}

func isMeterReadingValidationError(err error) bool {
	return errors.Is(err, meterdomain.ErrInvalidApartmentID) ||
		errors.Is(err, meterdomain.ErrInvalidReading)
}

func isReconciliationValidationError(err error) bool {
	return errors.Is(err, reconciliationdomain.ErrInvalidTenantID) ||
		errors.Is(err, reconciliationdomain.ErrInvalidYear) ||
		errors.Is(err, reconciliationdomain.ErrInvalidMonth)
}

func isTariffValidationError(err error) bool {
	return errors.Is(err, tariffdomain.ErrInvalidApartmentID)
}

func isNotFoundError(err error) bool {
	switch {
	case errors.Is(err, ErrNotFound),
		errors.Is(err, tenantdomain.ErrNotFound),
		errors.Is(err, apartmentdomain.ErrNotFound),
		errors.Is(err, paymentdomain.ErrNotFound),
		errors.Is(err, maintenancedomain.ErrNotFound),
		errors.Is(err, loandomain.ErrNotFound),
		errors.Is(err, meterdomain.ErrNotFound),
		errors.Is(err, gorm.ErrRecordNotFound):
		return true
	default:
		return false
	}
}

func validationErrorCode(err error) string {
	if errors.Is(err, ErrInvalidRequest) {
		return "invalid_request"
	}
	return err.Error()
}

func validationErrorField(code string) string {
	if code == "invalid_request" {
		return "request"
	}
	if strings.HasPrefix(code, "invalid_") {
		return strings.TrimPrefix(code, "invalid_")
	}
	return ""
}

func validationErrorMessage(code string) string {
	switch code {
	case "invalid_request":
		return "invalid request"
	default:
		return "invalid value"
	}
}
