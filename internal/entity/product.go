package entity

import (
	"math"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type Product struct {
	ID            uuid.UUID                   `gorm:"type:uuid;primaryKey" json:"id"`
	SellerID      uuid.UUID                   `gorm:"type:uuid;not null;index" json:"seller_id"`
	Name          string                      `gorm:"size:200;not null" json:"name"`
	Description   string                      `gorm:"type:text" json:"description"`
	Category      string                      `gorm:"size:100;index" json:"category"`
	Brand         string                      `gorm:"size:100" json:"brand"`
	Price         decimal.Decimal             `gorm:"type:numeric(12,2);not null" json:"price"`
	Stock         int                         `gorm:"not null;default:0" json:"stock"`
	Images        datatypes.JSONSlice[string] `json:"images"`
	Colors        datatypes.JSONSlice[string] `json:"colors"`
	Sizes         datatypes.JSONSlice[string] `json:"sizes"`
	StyleTips     string                      `gorm:"type:text" json:"style_tips,omitempty"`
	Features      string                      `gorm:"type:text" json:"features,omitempty"`
	RatingSum     int                         `gorm:"not null;default:0" json:"rating_sum"`
	NumReviews    int                         `gorm:"not null;default:0" json:"num_reviews"`
	AverageRating float64                     `gorm:"not null;default:0" json:"average_rating"`
	CreatedAt     time.Time                   `gorm:"autoCreateTime;index" json:"created_at"`
}

func (p *Product) BeforeCreate(tx *gorm.DB) (err error) {
	if p.ID == uuid.Nil {
		p.ID, err = uuid.NewV7()
	}
	return
}

// MainImage is the first image, or "" for a product without images.
func (p *Product) MainImage() string {
	if len(p.Images) == 0 {
		return ""
	}
	return p.Images[0]
}

// AverageRating is sum/n rounded to one decimal, 0 when n is 0.
func AverageRating(sum, n int) float64 {
	if n <= 0 {
		return 0
	}
	return math.Round(float64(sum)/float64(n)*10) / 10
}
