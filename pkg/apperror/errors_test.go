package apperror

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestMapErrorToStatus(t *testing.T) {
	cases := []struct {
		err  error
		want int
	}{
		{Validation("quantity", "must be positive"), http.StatusBadRequest},
		{fmt.Errorf("login: %w", ErrUnauthorized), http.StatusUnauthorized},
		{ErrTokenExpired, http.StatusUnauthorized},
		{ErrTokenMalformed, http.StatusUnauthorized},
		{ErrStaleCredential, http.StatusUnauthorized},
		{Forbidden("not yours"), http.StatusForbidden},
		{NotFound("product not found"), http.StatusNotFound},
		{Conflict("Username already exists"), http.StatusConflict},
		{Storage(errors.New("timeout")), http.StatusBadGateway},
		{&TransactionError{Index: 1, LineID: uuid.New(), Reason: "insufficient stock"}, http.StatusConflict},
		{fmt.Errorf("wrapped: %w", ErrRateLimitExceeded), http.StatusTooManyRequests},
		{errors.New("boom"), http.StatusInternalServerError},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, MapErrorToStatus(tc.err), tc.err.Error())
	}
}

func TestTransactionErrorUnwrap(t *testing.T) {
	cause := NotFound("product not found")
	err := fmt.Errorf("checkout: %w", &TransactionError{Index: 0, LineID: uuid.New(), Reason: "product no longer available", Err: cause})

	assert.ErrorIs(t, err, ErrTransaction)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.Equal(t, http.StatusConflict, MapErrorToStatus(err))

	var txErr *TransactionError
	assert.True(t, errors.As(err, &txErr))
	assert.Equal(t, 0, txErr.Index)
	assert.Contains(t, txErr.Error(), "line 1")
}

func TestTransactionErrorWithoutLine(t *testing.T) {
	productID := uuid.New()

	purchase := &TransactionError{Index: -1, ProductID: productID, Reason: "insufficient stock"}
	assert.False(t, purchase.HasLine())
	assert.Equal(t, "purchase of product "+productID.String()+" failed: insufficient stock", purchase.Error())

	changed := &TransactionError{Index: -1, Reason: "cart changed during checkout"}
	assert.False(t, changed.HasLine())
	assert.Equal(t, "checkout failed: cart changed during checkout", changed.Error())

	zeroValue := &TransactionError{ProductID: productID, Reason: "insufficient stock"}
	assert.False(t, zeroValue.HasLine(), "a zero line id is not a line")
}

func TestValidationNamesField(t *testing.T) {
	err := Validation("rating", "Rating must be between %d and %d", 1, 5)
	assert.Equal(t, "rating: Rating must be between 1 and 5", err.Error())
	assert.ErrorIs(t, err, ErrInvalidInput)
}
