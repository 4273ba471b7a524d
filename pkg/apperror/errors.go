package apperror

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/google/uuid"
)

var (
	ErrNotFound          = errors.New("resource not found")
	ErrUnauthorized      = errors.New("unauthorized")
	ErrForbidden         = errors.New("forbidden")
	ErrBadRequest        = errors.New("bad request")
	ErrInternal          = errors.New("internal server error")
	ErrInvalidInput      = errors.New("invalid input")
	ErrConflict          = errors.New("conflict")
	ErrStorage           = errors.New("storage unavailable")
	ErrTransaction       = errors.New("transaction failed")
	ErrRateLimitExceeded = errors.New("rate limit exceeded")

	// Session errors. All of them are 401 except ErrForbidden.
	ErrInvalidToken    = errors.New("invalid or expired token")
	ErrTokenExpired    = fmt.Errorf("token expired: %w", ErrInvalidToken)
	ErrTokenMalformed  = fmt.Errorf("token malformed: %w", ErrInvalidToken)
	ErrStaleCredential = errors.New("credential no longer exists")
)

// AppError is a custom error type that can hold an HTTP status code
type AppError struct {
	Code    int
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return http.StatusText(e.Code)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// New creates a new AppError
func New(code int, message string, err error) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// Validation reports malformed input. The message names the offending field.
func Validation(field, format string, args ...any) *AppError {
	msg := fmt.Sprintf(format, args...)
	return New(http.StatusBadRequest, fmt.Sprintf("%s: %s", field, msg), ErrInvalidInput)
}

func NotFound(message string) *AppError {
	return New(http.StatusNotFound, message, ErrNotFound)
}

func Conflict(message string) *AppError {
	return New(http.StatusConflict, message, ErrConflict)
}

func Forbidden(message string) *AppError {
	return New(http.StatusForbidden, message, ErrForbidden)
}

// Storage wraps a blob store transport failure.
func Storage(err error) *AppError {
	return New(http.StatusBadGateway, "asset storage unavailable", errors.Join(ErrStorage, err))
}

// TransactionError reports which item of a batch failed to commit. Nothing from the
// batch has been applied when it is returned. Index is -1 when no cart line is at
// fault, as for a direct purchase or a cart that changed under the checkout.
type TransactionError struct {
	Index     int
	LineID    uuid.UUID
	ProductID uuid.UUID
	Reason    string
	Err       error
}

// HasLine reports whether the failure names a cart line.
func (e *TransactionError) HasLine() bool {
	return e.Index >= 0 && e.LineID != uuid.Nil
}

func (e *TransactionError) Error() string {
	switch {
	case e.HasLine():
		return fmt.Sprintf("checkout failed at line %d (%s): %s", e.Index+1, e.LineID, e.Reason)
	case e.ProductID != uuid.Nil:
		return fmt.Sprintf("purchase of product %s failed: %s", e.ProductID, e.Reason)
	default:
		return fmt.Sprintf("checkout failed: %s", e.Reason)
	}
}

func (e *TransactionError) Unwrap() []error {
	if e.Err == nil {
		return []error{ErrTransaction}
	}
	return []error{ErrTransaction, e.Err}
}

// MapErrorToStatus maps common errors to HTTP status codes
func MapErrorToStatus(err error) int {
	// A failed batch is a conflict whatever the cause of the failing item.
	if errors.Is(err, ErrTransaction) {
		return http.StatusConflict
	}
	var appErr *AppError
	if errors.As(err, &appErr) && appErr.Code != 0 {
		return appErr.Code
	}
	if errors.Is(err, ErrNotFound) {
		return http.StatusNotFound
	}
	if errors.Is(err, ErrUnauthorized) || errors.Is(err, ErrInvalidToken) || errors.Is(err, ErrStaleCredential) {
		return http.StatusUnauthorized
	}
	if errors.Is(err, ErrForbidden) {
		return http.StatusForbidden
	}
	if errors.Is(err, ErrBadRequest) || errors.Is(err, ErrInvalidInput) {
		return http.StatusBadRequest
	}
	if errors.Is(err, ErrConflict) {
		return http.StatusConflict
	}
	if errors.Is(err, ErrStorage) {
		return http.StatusBadGateway
	}
	if errors.Is(err, ErrRateLimitExceeded) {
		return http.StatusTooManyRequests
	}
	// Default to internal server error
	return http.StatusInternalServerError
}
