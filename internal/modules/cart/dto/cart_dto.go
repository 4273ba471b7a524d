package dto

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"anoa.com/marketplace/internal/entity"
)

type AddLineRequest struct {
	ProductID string `json:"productId" binding:"required,uuid"`
	Quantity  int    `json:"quantity" binding:"required,gt=0"`
}

type CartProduct struct {
	ID        uuid.UUID       `json:"id"`
	Name      string          `json:"productname"`
	Price     decimal.Decimal `json:"price"`
	MainImage string          `json:"mainImage"`
	Stock     int             `json:"stock"`
}

type CartLineResponse struct {
	ID        uuid.UUID       `json:"id"`
	ProductID uuid.UUID       `json:"productId"`
	Quantity  int             `json:"quantity"`
	Amount    decimal.Decimal `json:"amount"`
	Product   CartProduct     `json:"product"`
	CreatedAt time.Time       `json:"created_at"`
}

type CartResponse struct {
	Lines []CartLineResponse `json:"lines"`
	Total decimal.Decimal    `json:"total"`
}

func NewCartLineResponse(l *entity.CartLine) CartLineResponse {
	return CartLineResponse{
		ID:        l.ID,
		ProductID: l.ProductID,
		Quantity:  l.Quantity,
		Amount:    l.Amount,
		Product: CartProduct{
			ID:        l.Product.ID,
			Name:      l.Product.Name,
			Price:     l.Product.Price,
			MainImage: l.Product.MainImage(),
			Stock:     l.Product.Stock,
		},
		CreatedAt: l.CreatedAt,
	}
}

// NewCartResponse totals the captured line amounts, not current prices.
func NewCartResponse(lines []*entity.CartLine) CartResponse {
	res := CartResponse{Lines: make([]CartLineResponse, 0, len(lines)), Total: decimal.Zero}
	for _, l := range lines {
		res.Lines = append(res.Lines, NewCartLineResponse(l))
		res.Total = res.Total.Add(l.Amount)
	}
	return res
}
