package server

import (
	"errors"
	"net/http"

	clientdomain "github.com/FoleyBridge-Solutions/Nestogy-sub047/internal/client/domain"
	forecastdomain "github.com/FoleyBridge-Solutions/Nestogy-sub047/internal/forecast/domain"
	invoicedomain "github.com/FoleyBridge-Solutions/Nestogy-sub047/internal/invoice/domain"
	paymentdomain "github.com/FoleyBridge-Solutions/Nestogy-sub047/internal/payment/domain"
	taxdomain "github.com/FoleyBridge-Solutions/Nestogy-sub047/internal/tax/domain"
	"github.com/FoleyBridge-Solutions/Nestogy-sub047/pkg/db/pagination"
	"github.com/gin-gonic/gin"
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
	if vErr := asValidationErrors(err); vErr != nil {
		return http.StatusBadRequest, errorPayload{
			Type:    "validation_error",
			Message: "validation error",
			Errors:  vErr.Errors,
		}
	}

	if field, ok := validationField(err); ok {
		return http.StatusBadRequest, errorPayload{
			Type:    "validation_error",
			Message: "validation error",
			Errors: []ValidationError{
				{Field: field, Code: err.Error(), Message: "invalid value"},
			},
		}
	}

	if isNotFoundError(err) {
		return http.StatusNotFound, errorPayload{
			Type:    "not_found",
			Message: "not found",
		}
	}

	return http.StatusInternalServerError, errorPayload{
		Type:    "internal_error",
		Message: "internal server error",
	}
}

func asValidationErrors(err error) *ValidationErrors {
	var vErr *ValidationErrors
	if errors.As(err, &vErr) && vErr != nil {
		return vErr
	}
	return nil
}

// validationField maps domain validation errors to the request field at fault.
func validationField(err error) (string, bool) {
	switch {
	case errors.Is(err, ErrInvalidRequest):
		return "request", true
	case errors.Is(err, taxdomain.ErrInvalidYear):
		return "year", true
	case errors.Is(err, taxdomain.ErrInvalidMonth),
		errors.Is(err, forecastdomain.ErrInvalidMonth):
		return "month", true
	case errors.Is(err, forecastdomain.ErrInvalidHistory):
		return "months", true
	case errors.Is(err, paymentdomain.ErrInvalidReference):
		return "reference", true
	case errors.Is(err, pagination.ErrInvalidPageToken):
		return "page_token", true
	case errors.Is(err, invoicedomain.ErrInvalidDocumentKind):
		return "kind", true
	default:
		return "", false
	}
}

func isNotFoundError(err error) bool {
	switch {
	case errors.Is(err, ErrNotFound),
		errors.Is(err, invoicedomain.ErrDocumentNotFound),
		errors.Is(err, clientdomain.ErrClientNotFound),
		errors.Is(err, gorm.ErrRecordNotFound):
		return true
	default:
		return false
	}
}

func classifyErrorForLog(err error) (string, string) {
	status, payload := mapError(err)
	switch {
	case status == http.StatusBadRequest:
		return "invalid_request", payload.Type
	case status == http.StatusNotFound:
		return "not_found", payload.Type
	default:
		return "internal_error", err.Error()
	}
}
