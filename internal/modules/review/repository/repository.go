package repository

import (
	"context"
	"errors"

	"anoa.com/marketplace/internal/entity"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ReviewRepository interface {
	WithTx(tx *gorm.DB) ReviewRepository
	// CreateAndAggregate stores the review and folds its rating into the product
	// in one transaction. It returns the product as left by the update.
	CreateAndAggregate(ctx context.Context, review *entity.Review) (*entity.Product, error)
	FindByProduct(ctx context.Context, productID uuid.UUID) ([]*entity.Review, error)
	DeleteByProduct(ctx context.Context, productID uuid.UUID) error
	// RetractByUser takes the user's ratings back out of every product they
	// reviewed, then deletes those reviews. Run it inside a transaction.
	RetractByUser(ctx context.Context, userID uuid.UUID) error
}

type reviewRepository struct {
	db *gorm.DB
}

func NewReviewRepository(db *gorm.DB) ReviewRepository {
	return &reviewRepository{db: db}
}

func (r *reviewRepository) WithTx(tx *gorm.DB) ReviewRepository {
	return &reviewRepository{db: tx}
}

func (r *reviewRepository) CreateAndAggregate(ctx context.Context, review *entity.Review) (*entity.Product, error) {
	var product entity.Product

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("User").Create(review).Error; err != nil {
			return err
		}

		// The increment is evaluated by the store, so concurrent reviews never
		// overwrite each other's contribution.
		res := tx.Model(&entity.Product{}).
			Where("id = ?", review.ProductID).
			UpdateColumns(map[string]any{
				"rating_sum":  gorm.Expr("rating_sum + ?", review.Rating),
				"num_reviews": gorm.Expr("num_reviews + ?", 1),
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}

		if err := tx.First(&product, "id = ?", review.ProductID).Error; err != nil {
			return err
		}

		product.AverageRating = entity.AverageRating(product.RatingSum, product.NumReviews)
		return tx.Model(&entity.Product{}).
			Where("id = ?", product.ID).
			UpdateColumn("average_rating", product.AverageRating).Error
	})
	if err != nil {
		return nil, err
	}

	return &product, nil
}

func (r *reviewRepository) FindByProduct(ctx context.Context, productID uuid.UUID) ([]*entity.Review, error) {
	var reviews []*entity.Review
	if err := r.db.WithContext(ctx).
		Preload("User").
		Where("product_id = ?", productID).
		Order("created_at DESC").Order("id DESC").
		Find(&reviews).Error; err != nil {
		return nil, err
	}
	return reviews, nil
}

func (r *reviewRepository) DeleteByProduct(ctx context.Context, productID uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&entity.Review{}, "product_id = ?", productID).Error
}

func (r *reviewRepository) RetractByUser(ctx context.Context, userID uuid.UUID) error {
	var rows []struct {
		ProductID uuid.UUID
		RatingSum int
		Reviews   int
	}
	if err := r.db.WithContext(ctx).
		Model(&entity.Review{}).
		Select("product_id, SUM(rating) AS rating_sum, COUNT(*) AS reviews").
		Where("user_id = ?", userID).
		Group("product_id").
		Scan(&rows).Error; err != nil {
		return err
	}

	for _, row := range rows {
		if err := r.db.WithContext(ctx).Model(&entity.Product{}).
			Where("id = ?", row.ProductID).
			UpdateColumns(map[string]any{
				"rating_sum":  gorm.Expr("rating_sum - ?", row.RatingSum),
				"num_reviews": gorm.Expr("num_reviews - ?", row.Reviews),
			}).Error; err != nil {
			return err
		}

		var product entity.Product
		if err := r.db.WithContext(ctx).First(&product, "id = ?", row.ProductID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				continue
			}
			return err
		}
		if err := r.db.WithContext(ctx).Model(&entity.Product{}).
			Where("id = ?", product.ID).
			UpdateColumn("average_rating", entity.AverageRating(product.RatingSum, product.NumReviews)).Error; err != nil {
			return err
		}
	}

	return r.db.WithContext(ctx).Delete(&entity.Review{}, "user_id = ?", userID).Error
}
