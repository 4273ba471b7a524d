package dto

import (
	"time"

	"github.com/google/uuid"

	"anoa.com/marketplace/internal/entity"
)

type CreateReviewRequest struct {
	ProductID string `json:"productId" binding:"required,uuid"`
	Rating    int    `json:"rating" binding:"required"`
	Review    string `json:"review" binding:"required"`
}

// RatingSummary is the product's statistics after the review was folded in.
type RatingSummary struct {
	ProductID     uuid.UUID `json:"productId"`
	AverageRating float64   `json:"averageRating"`
	NumReviews    int       `json:"numReviews"`
}

type ReviewResponse struct {
	ID       uuid.UUID `json:"_id"`
	Rating   int       `json:"rating"`
	Review   string    `json:"review"`
	Username string    `json:"username"`
	PostedAt time.Time `json:"postedAt"`
}

func NewReviewResponses(reviews []*entity.Review) []ReviewResponse {
	out := make([]ReviewResponse, 0, len(reviews))
	for _, r := range reviews {
		out = append(out, ReviewResponse{
			ID:       r.ID,
			Rating:   r.Rating,
			Review:   r.Text,
			Username: r.User.Username,
			PostedAt: r.CreatedAt,
		})
	}
	return out
}
