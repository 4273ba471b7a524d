package response

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"anoa.com/marketplace/pkg/apperror"
)

func render(t *testing.T, err error) (int, map[string]any) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodPost, "/", nil)

	ResponseError(c, err)

	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return rec.Code, body
}

func TestResponseErrorCheckoutLine(t *testing.T) {
	lineID, productID := uuid.New(), uuid.New()
	code, body := render(t, &apperror.TransactionError{Index: 1, LineID: lineID, ProductID: productID, Reason: "insufficient stock"})

	assert.Equal(t, http.StatusConflict, code)
	assert.EqualValues(t, 1, body["line"])
	assert.Equal(t, lineID.String(), body["line_id"])
	assert.Equal(t, productID.String(), body["product_id"])
}

func TestResponseErrorDirectPurchase(t *testing.T) {
	productID := uuid.New()
	code, body := render(t, &apperror.TransactionError{Index: -1, ProductID: productID, Reason: "insufficient stock"})

	assert.Equal(t, http.StatusConflict, code)
	assert.NotContains(t, body, "line")
	assert.NotContains(t, body, "line_id")
	assert.Equal(t, productID.String(), body["product_id"])
	assert.Equal(t, "purchase of product "+productID.String()+" failed: insufficient stock", body["message"])
}

func TestResponseErrorHidesInternalDetail(t *testing.T) {
	code, body := render(t, assert.AnError)

	assert.Equal(t, http.StatusInternalServerError, code)
	assert.Equal(t, apperror.ErrInternal.Error(), body["message"])
}
