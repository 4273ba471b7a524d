package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"anoa.com/marketplace/internal/modules/review/dto"
	"anoa.com/marketplace/internal/modules/review/service"
	"anoa.com/marketplace/pkg/response"
	"anoa.com/marketplace/pkg/validator"
)

type ReviewHandler struct {
	service service.ReviewService
}

func NewReviewHandler(service service.ReviewService) *ReviewHandler {
	return &ReviewHandler{service: service}
}

func (h *ReviewHandler) CreateReview(c *gin.Context) {
	userID, err := response.GetUserID(c)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	var req dto.CreateReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BindError(c, validator.FormatValidationError(err))
		return
	}
	productID, err := uuid.Parse(req.ProductID)
	if err != nil {
		response.BindError(c, "productId must be a valid UUID")
		return
	}

	summary, err := h.service.RecordReview(c.Request.Context(), userID, productID, req.Rating, req.Review)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"status": "success", "message": "Review added", "data": summary})
}

func (h *ReviewHandler) ListReviews(c *gin.Context) {
	productID, err := uuid.Parse(c.Param("productId"))
	if err != nil {
		response.BindError(c, "invalid product id")
		return
	}

	reviews, err := h.service.ListReviews(c.Request.Context(), productID)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, reviews)
}
