package utils

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Error kinds exposed to API clients. The strings are part of the contract.
const (
	ErrKindValidation   = "validation_error"
	ErrKindNotFound     = "not_found"
	ErrKindConflict     = "conflict"
	ErrKindUnauthorized = "unauthorized"
)

// ServiceError is the error type produced by the service layer: a stable
// machine-readable kind plus a human message. Raw store errors never cross
// this boundary.
type ServiceError struct {
	Kind    string
	Message string
}

func (e *ServiceError) Error() string {
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func NewValidationError(format string, args ...any) error {
	return &ServiceError{Kind: ErrKindValidation, Message: fmt.Sprintf(format, args...)}
}

func NewNotFoundError(format string, args ...any) error {
	return &ServiceError{Kind: ErrKindNotFound, Message: fmt.Sprintf(format, args...)}
}

func NewConflictError(format string, args ...any) error {
	return &ServiceError{Kind: ErrKindConflict, Message: fmt.Sprintf(format, args...)}
}

func NewUnauthorizedError(format string, args ...any) error {
	return &ServiceError{Kind: ErrKindUnauthorized, Message: fmt.Sprintf(format, args...)}
}

// IsKind reports whether err is a ServiceError of the given kind.
func IsKind(err error, kind string) bool {
	var se *ServiceError
	return errors.As(err, &se) && se.Kind == kind
}

// ErrorResponse defines the structure of error responses
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

func statusForKind(kind string) int {
	switch kind {
	case ErrKindValidation:
		return http.StatusBadRequest
	case ErrKindNotFound:
		return http.StatusNotFound
	case ErrKindConflict:
		return http.StatusConflict
	case ErrKindUnauthorized:
		return http.StatusUnauthorized
	default:
		return http.StatusInternalServerError
	}
}

// RespondError maps a service error onto the HTTP response. Unknown errors
// become opaque 500s.
func RespondError(c *gin.Context, err error) {
	var se *ServiceError
	if errors.As(err, &se) {
		c.JSON(statusForKind(se.Kind), ErrorResponse{Error: se.Kind, Message: se.Message})
		return
	}
	GetLogger().Error("unhandled service error", zap.Error(err))
	c.JSON(http.StatusInternalServerError, ErrorResponse{
		Error:   "internal_error",
		Message: "An unexpected error occurred. Please try again later.",
	})
}

// ErrorHandler is a middleware to catch panics and return structured errors
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if r := recover(); r != nil {
				GetLogger().Error("Unhandled panic", zap.Any("error", r))
				c.JSON(http.StatusInternalServerError, ErrorResponse{
					Error:   "internal_error",
					Message: "An unexpected error occurred. Please try again later.",
				})
				c.Abort()
			}
		}()
		c.Next()
	}
}
