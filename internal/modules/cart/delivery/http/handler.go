package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"anoa.com/marketplace/internal/modules/cart/dto"
	"anoa.com/marketplace/internal/modules/cart/service"
	commonDto "anoa.com/marketplace/pkg/dto"
	"anoa.com/marketplace/pkg/response"
	"anoa.com/marketplace/pkg/validator"
)

type CartHandler struct {
	service service.CartService
}

func NewCartHandler(service service.CartService) *CartHandler {
	return &CartHandler{service: service}
}

func (h *CartHandler) AddLine(c *gin.Context) {
	userID, err := response.GetUserID(c)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	var req dto.AddLineRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BindError(c, validator.FormatValidationError(err))
		return
	}

	productID, err := uuid.Parse(req.ProductID)
	if err != nil {
		response.BindError(c, "productId must be a valid UUID")
		return
	}

	line, err := h.service.AddLine(c.Request.Context(), userID, productID, req.Quantity)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"status": "success", "line": line})
}

func (h *CartHandler) ListLines(c *gin.Context) {
	userID, err := response.GetUserID(c)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	cart, err := h.service.ListLines(c.Request.Context(), userID)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, cart)
}

func (h *CartHandler) RemoveLine(c *gin.Context) {
	userID, err := response.GetUserID(c)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	var req commonDto.IDRequest
	if err := c.ShouldBindUri(&req); err != nil {
		response.BindError(c, "invalid id")
		return
	}
	lineID, err := uuid.Parse(req.ID)
	if err != nil {
		response.BindError(c, "invalid id")
		return
	}

	if err := h.service.RemoveLine(c.Request.Context(), userID, lineID); err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "success", "message": "Item removed from cart"})
}
