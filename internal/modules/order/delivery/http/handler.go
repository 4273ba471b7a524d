package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"anoa.com/marketplace/internal/modules/order/dto"
	"anoa.com/marketplace/internal/modules/order/service"
	"anoa.com/marketplace/pkg/response"
	"anoa.com/marketplace/pkg/validator"
)

type OrderHandler struct {
	service service.OrderService
}

func NewOrderHandler(service service.OrderService) *OrderHandler {
	return &OrderHandler{service: service}
}

func (h *OrderHandler) Checkout(c *gin.Context) {
	userID, err := response.GetUserID(c)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	res, err := h.service.Checkout(c.Request.Context(), userID)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"status": "success", "message": "Order placed successfully", "data": res})
}

func (h *OrderHandler) Purchase(c *gin.Context) {
	userID, err := response.GetUserID(c)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	var req dto.PurchaseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BindError(c, validator.FormatValidationError(err))
		return
	}
	productID, err := uuid.Parse(req.ProductID)
	if err != nil {
		response.BindError(c, "productId must be a valid UUID")
		return
	}

	order, err := h.service.DirectPurchase(c.Request.Context(), userID, productID, req.Quantity)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"status": "success", "order": order})
}

func (h *OrderHandler) ListMine(c *gin.Context) {
	userID, err := response.GetUserID(c)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	orders, err := h.service.ListMine(c.Request.Context(), userID)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, orders)
}

func (h *OrderHandler) ListReceived(c *gin.Context) {
	sellerID, err := response.GetUserID(c)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	orders, err := h.service.ListReceived(c.Request.Context(), sellerID)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, orders)
}
