package dto

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"anoa.com/marketplace/internal/entity"
)

type PurchaseRequest struct {
	ProductID string `json:"productId" binding:"required,uuid"`
	Quantity  int    `json:"quantity" binding:"required,gt=0"`
}

type OrderResponse struct {
	ID          uuid.UUID       `json:"id"`
	UserID      uuid.UUID       `json:"userId"`
	ProductID   uuid.UUID       `json:"productId"`
	SellerID    uuid.UUID       `json:"sellerId"`
	ProductName string          `json:"productname"`
	Quantity    int             `json:"quantity"`
	Amount      decimal.Decimal `json:"amount"`
	CreatedAt   time.Time       `json:"created_at"`
}

type CheckoutResponse struct {
	Orders []OrderResponse `json:"orders"`
	Total  decimal.Decimal `json:"total"`
}

func NewOrderResponse(o *entity.Order) OrderResponse {
	return OrderResponse{
		ID:          o.ID,
		UserID:      o.UserID,
		ProductID:   o.ProductID,
		SellerID:    o.SellerID,
		ProductName: o.ProductName,
		Quantity:    o.Quantity,
		Amount:      o.Amount,
		CreatedAt:   o.CreatedAt,
	}
}

func NewOrderResponses(orders []*entity.Order) []OrderResponse {
	out := make([]OrderResponse, 0, len(orders))
	for _, o := range orders {
		out = append(out, NewOrderResponse(o))
	}
	return out
}

func NewCheckoutResponse(orders []*entity.Order) CheckoutResponse {
	res := CheckoutResponse{Orders: NewOrderResponses(orders), Total: decimal.Zero}
	for _, o := range orders {
		res.Total = res.Total.Add(o.Amount)
	}
	return res
}
