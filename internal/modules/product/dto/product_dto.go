package dto

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"anoa.com/marketplace/internal/entity"
	"anoa.com/marketplace/pkg/storage"
)

const MaxAdditionalImages = 4

type SubmitProductInput struct {
	ProductName string          `form:"productname" binding:"required,max=200"`
	Category    string          `form:"category" binding:"required,max=100"`
	Price       decimal.Decimal `form:"-"`
	PriceRaw    string          `form:"price" binding:"required"`
	Description string          `form:"description"`
	Brand       string          `form:"brand" binding:"max=100"`
	Colors      string          `form:"colors"`
	Sizes       string          `form:"sizes"`
	Stock       int             `form:"stock" binding:"gte=0"`
	StyleTips   string          `form:"styleTips"`
	Features    string          `form:"features"`

	MainImage        storage.File   `form:"-"`
	AdditionalImages []storage.File `form:"-"`
}

type ListQuery struct {
	Sort  string `form:"sort"`
	Limit int    `form:"limit" binding:"omitempty,min=1,max=100"`
}

type ProductResponse struct {
	ID            uuid.UUID       `json:"id"`
	SellerID      uuid.UUID       `json:"seller_id"`
	Name          string          `json:"productname"`
	Description   string          `json:"description"`
	Category      string          `json:"category"`
	Brand         string          `json:"brand"`
	Price         decimal.Decimal `json:"price"`
	Stock         int             `json:"stock"`
	MainImage     string          `json:"mainImage"`
	Images        []string        `json:"images"`
	Colors        []string        `json:"colors"`
	Sizes         []string        `json:"sizes"`
	StyleTips     string          `json:"styleTips,omitempty"`
	Features      string          `json:"features,omitempty"`
	NumReviews    int             `json:"numReviews"`
	AverageRating float64         `json:"averageRating"`
	CreatedAt     time.Time       `json:"created_at"`
}

func NewProductResponse(p *entity.Product) ProductResponse {
	return ProductResponse{
		ID:            p.ID,
		SellerID:      p.SellerID,
		Name:          p.Name,
		Description:   p.Description,
		Category:      p.Category,
		Brand:         p.Brand,
		Price:         p.Price,
		Stock:         p.Stock,
		MainImage:     p.MainImage(),
		Images:        nonNil(p.Images),
		Colors:        nonNil(p.Colors),
		Sizes:         nonNil(p.Sizes),
		StyleTips:     p.StyleTips,
		Features:      p.Features,
		NumReviews:    p.NumReviews,
		AverageRating: p.AverageRating,
		CreatedAt:     p.CreatedAt,
	}
}

func NewProductResponses(products []*entity.Product) []ProductResponse {
	out := make([]ProductResponse, 0, len(products))
	for _, p := range products {
		out = append(out, NewProductResponse(p))
	}
	return out
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
