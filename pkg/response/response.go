package response

import (
	"errors"
	"net/http"

	"anoa.com/marketplace/pkg/apperror"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// GetUserID retrieves the authenticated user ID from the context
func GetUserID(c *gin.Context) (uuid.UUID, error) {
	userIDStr, exists := c.Get("user_id")
	if !exists {
		return uuid.Nil, apperror.ErrUnauthorized
	}

	s, ok := userIDStr.(string)
	if !ok {
		return uuid.Nil, apperror.ErrUnauthorized
	}

	userID, err := uuid.Parse(s)
	if err != nil {
		return uuid.Nil, apperror.ErrUnauthorized
	}

	return userID, nil
}

// ResponseError standardized error response
func ResponseError(c *gin.Context, err error) {
	code := apperror.MapErrorToStatus(err)

	if code >= http.StatusInternalServerError {
		zap.L().Error("request failed",
			zap.String("method", c.Request.Method),
			zap.String("path", c.FullPath()),
			zap.Int("status", code),
			zap.Error(err),
		)
	}

	message := err.Error()
	if code == http.StatusInternalServerError {
		message = apperror.ErrInternal.Error()
	}

	body := gin.H{"status": "error", "message": message}

	var txErr *apperror.TransactionError
	if errors.As(err, &txErr) {
		if txErr.HasLine() {
			body["line"] = txErr.Index
			body["line_id"] = txErr.LineID
		}
		if txErr.ProductID != uuid.Nil {
			body["product_id"] = txErr.ProductID
		}
	}

	c.JSON(code, body)
}

// BindError renders a request binding failure as a 400.
func BindError(c *gin.Context, message string) {
	c.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": message})
}
