package server

import (
	"errors"
	"net/http"

	apikeydomain "github.com/batidesk/batidesk/internal/apikey/domain"
	auditdomain "github.com/batidesk/batidesk/internal/audit/domain"
	"github.com/batidesk/batidesk/internal/authorization"
	clientdomain "github.com/batidesk/batidesk/internal/client/domain"
	dashboarddomain "github.com/batidesk/batidesk/internal/dashboard/domain"
	invoicedomain "github.com/batidesk/batidesk/internal/invoice/domain"
	templatedomain "github.com/batidesk/batidesk/internal/invoicetemplate/domain"
	paymentdomain "github.com/batidesk/batidesk/internal/payment/domain"
	projectdomain "github.com/batidesk/batidesk/internal/project/domain"
	"github.com/gin-gonic/gin"
)

// Common transport-level errors.
var (
	ErrNotFound           = errors.New("not_found")
	ErrUnauthorized       = errors.New("unauthorized")
	ErrForbidden          = errors.New("forbidden")
	ErrTooManyRequests    = errors.New("too_many_requests")
	ErrServiceUnavailable = errors.New("service_unavailable")
)

type apiError struct {
	Status  int    `json:"-"`
	Code    string `json:"code"`
	Field   string `json:"field,omitempty"`
	Message string `json:"message"`
}

func (e *apiError) Error() string { return e.Code }

func invalidRequestError() error {
	return &apiError{
		Status:  http.StatusBadRequest,
		Code:    "invalid_request",
		Message: "request body or query is malformed",
	}
}

func newValidationError(field, code, message string) error {
	return &apiError{
		Status:  http.StatusBadRequest,
		Code:    code,
		Field:   field,
		Message: message,
	}
}

// AbortWithError maps domain errors onto HTTP responses.
func AbortWithError(c *gin.Context, err error) {
	var typed *apiError
	if errors.As(err, &typed) {
		c.AbortWithStatusJSON(typed.Status, gin.H{"error": typed})
		return
	}

	status := statusFor(err)
	message := err.Error()
	if status == http.StatusInternalServerError {
		message = "internal error"
	}
	c.AbortWithStatusJSON(status, gin.H{"error": gin.H{
		"code":    codeFor(err, status),
		"message": message,
	}})
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, invoicedomain.ErrPDFNotImplemented):
		return http.StatusNotImplemented
	case errors.Is(err, ErrNotFound),
		errors.Is(err, invoicedomain.ErrInvoiceNotFound),
		errors.Is(err, templatedomain.ErrNotFound),
		errors.Is(err, clientdomain.ErrClientNotFound),
		errors.Is(err, projectdomain.ErrProjectNotFound),
		errors.Is(err, paymentdomain.ErrInvoiceNotFound),
		errors.Is(err, apikeydomain.ErrKeyNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrUnauthorized),
		errors.Is(err, invoicedomain.ErrInvalidOrganization),
		errors.Is(err, templatedomain.ErrInvalidOrganization),
		errors.Is(err, clientdomain.ErrInvalidOrganization),
		errors.Is(err, projectdomain.ErrInvalidOrganization),
		errors.Is(err, paymentdomain.ErrInvalidOrganization),
		errors.Is(err, dashboarddomain.ErrInvalidOrganization),
		errors.Is(err, auditdomain.ErrInvalidOrganization),
		errors.Is(err, apikeydomain.ErrInvalidOrganization):
		return http.StatusUnauthorized
	case errors.Is(err, ErrForbidden),
		errors.Is(err, authorization.ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, ErrTooManyRequests):
		return http.StatusTooManyRequests
	case errors.Is(err, ErrServiceUnavailable):
		return http.StatusServiceUnavailable
	case isValidationError(err):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func isValidationError(err error) bool {
	validation := []error{
		invoicedomain.ErrInvalidID,
		invoicedomain.ErrInvalidType,
		invoicedomain.ErrInvalidItems,
		templatedomain.ErrInvalidID,
		templatedomain.ErrInvalidName,
		templatedomain.ErrInvalidType,
		templatedomain.ErrInvalidFileType,
		templatedomain.ErrInvalidFileURL,
		clientdomain.ErrInvalidID,
		clientdomain.ErrInvalidName,
		clientdomain.ErrInvalidEmail,
		projectdomain.ErrInvalidID,
		projectdomain.ErrInvalidName,
		projectdomain.ErrInvalidStatus,
		projectdomain.ErrInvalidClient,
		projectdomain.ErrInvalidDates,
		paymentdomain.ErrInvalidInvoice,
		paymentdomain.ErrInvalidAmount,
		paymentdomain.ErrInvalidMethod,
		auditdomain.ErrInvalidAction,
		apikeydomain.ErrInvalidName,
	}
	for _, candidate := range validation {
		if errors.Is(err, candidate) {
			return true
		}
	}
	return false
}

func codeFor(err error, status int) string {
	if status == http.StatusInternalServerError {
		return "internal_error"
	}
	return err.Error()
}
