package service

import (
	"context"
	"errors"
	"fmt"
	"html"
	"net/http"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/microcosm-cc/bluemonday"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"anoa.com/marketplace/internal/entity"
	"anoa.com/marketplace/internal/modules/review/dto"
	"anoa.com/marketplace/internal/modules/review/repository"
	"anoa.com/marketplace/pkg/apperror"
	"anoa.com/marketplace/pkg/ratelimiter"
)

const reviewAction = "review"

type ReviewService interface {
	// RecordReview stores the review and folds its rating into the product.
	RecordReview(ctx context.Context, userID, productID uuid.UUID, rating int, text string) (*dto.RatingSummary, error)
	ListReviews(ctx context.Context, productID uuid.UUID) ([]dto.ReviewResponse, error)
}

type reviewService struct {
	repo     repository.ReviewRepository
	limiter  *ratelimiter.Limiter
	cooldown time.Duration
	policy   *bluemonday.Policy
	logger   *zap.Logger
}

func NewReviewService(repo repository.ReviewRepository, limiter *ratelimiter.Limiter, cooldown time.Duration, logger *zap.Logger) ReviewService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &reviewService{
		repo:     repo,
		limiter:  limiter,
		cooldown: cooldown,
		policy:   bluemonday.StrictPolicy(),
		logger:   logger,
	}
}

func (s *reviewService) RecordReview(ctx context.Context, userID, productID uuid.UUID, rating int, text string) (*dto.RatingSummary, error) {
	if rating < entity.MinRating || rating > entity.MaxRating {
		return nil, apperror.Validation("rating", "Rating must be between %d and %d", entity.MinRating, entity.MaxRating)
	}
	text = strings.TrimSpace(html.UnescapeString(s.policy.Sanitize(text)))
	if utf8.RuneCountInString(text) < entity.MinReviewTextLen {
		return nil, apperror.Validation("review", "Review must be at least %d characters", entity.MinReviewTextLen)
	}

	allowed, err := s.limiter.CheckAndSet(ctx, userID, reviewAction, s.cooldown)
	if err != nil {
		s.logger.Warn("review cooldown unavailable", zap.String("user_id", userID.String()), zap.Error(err))
		allowed = true
	}
	if !allowed {
		ttl, _ := s.limiter.TTL(ctx, userID, reviewAction)
		return nil, apperror.New(http.StatusTooManyRequests,
			fmt.Sprintf("You are reviewing too fast. Please wait %.0f seconds", ttl.Seconds()),
			apperror.ErrRateLimitExceeded)
	}

	review := &entity.Review{
		ProductID: productID,
		UserID:    userID,
		Rating:    rating,
		Text:      text,
	}

	product, err := s.repo.CreateAndAggregate(ctx, review)
	if err != nil {
		if clearErr := s.limiter.Clear(context.WithoutCancel(ctx), userID, reviewAction); clearErr != nil {
			s.logger.Warn("failed to reopen review cooldown", zap.String("user_id", userID.String()), zap.Error(clearErr))
		}
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.NotFound("product not found")
		}
		return nil, err
	}

	return &dto.RatingSummary{
		ProductID:     product.ID,
		AverageRating: product.AverageRating,
		NumReviews:    product.NumReviews,
	}, nil
}

func (s *reviewService) ListReviews(ctx context.Context, productID uuid.UUID) ([]dto.ReviewResponse, error) {
	reviews, err := s.repo.FindByProduct(ctx, productID)
	if err != nil {
		return nil, err
	}
	return dto.NewReviewResponses(reviews), nil
}
