package repository

import (
	"context"
	"strings"

	"anoa.com/marketplace/internal/entity"
	"gorm.io/gorm"
)

type CategoryCount struct {
	Name         string
	ProductCount int64
}

type CategoryRepository interface {
	// FindAll groups products by category, busiest first.
	FindAll(ctx context.Context, filter string, limit int) ([]CategoryCount, error)
	CountDistinct(ctx context.Context, filter string) (int64, error)
}

type categoryRepository struct {
	db *gorm.DB
}

func NewCategoryRepository(db *gorm.DB) CategoryRepository {
	return &categoryRepository{db: db}
}

func (r *categoryRepository) FindAll(ctx context.Context, filter string, limit int) ([]CategoryCount, error) {
	var rows []CategoryCount
	query := r.filtered(ctx, filter).
		Select("category AS name, COUNT(*) AS product_count").
		Group("category").
		Order("product_count DESC").Order("name ASC")

	if limit > 0 {
		query = query.Limit(limit)
	}

	if err := query.Scan(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *categoryRepository) CountDistinct(ctx context.Context, filter string) (int64, error) {
	var count int64
	err := r.filtered(ctx, filter).Distinct("category").Count(&count).Error
	return count, err
}

func (r *categoryRepository) filtered(ctx context.Context, filter string) *gorm.DB {
	query := r.db.WithContext(ctx).Model(&entity.Product{})
	if filter = strings.TrimSpace(filter); filter != "" {
		query = query.Where("LOWER(category) LIKE ?", "%"+strings.ToLower(filter)+"%")
	}
	return query
}
