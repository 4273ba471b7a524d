package repository

import (
	"context"

	"anoa.com/marketplace/internal/entity"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Filter struct {
	Category string
	SellerID uuid.UUID
	// Sort is "newest" (default), "price_asc", "price_desc", "rating" or
	// "bestselling" (units ordered, newest first among equals).
	Sort  string
	Limit int
}

type ProductRepository interface {
	WithTx(tx *gorm.DB) ProductRepository
	Create(ctx context.Context, product *entity.Product) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Product, error)
	FindAll(ctx context.Context, filter Filter) ([]*entity.Product, error)
	Delete(ctx context.Context, id uuid.UUID) (int64, error)
	// ReserveStock decrements stock only if enough is left. It reports whether it did.
	ReserveStock(ctx context.Context, id uuid.UUID, quantity int) (bool, error)
}

type productRepository struct {
	db *gorm.DB
}

func NewProductRepository(db *gorm.DB) ProductRepository {
	return &productRepository{db: db}
}

func (r *productRepository) WithTx(tx *gorm.DB) ProductRepository {
	return &productRepository{db: tx}
}

func (r *productRepository) Create(ctx context.Context, product *entity.Product) error {
	return r.db.WithContext(ctx).Create(product).Error
}

func (r *productRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Product, error) {
	var product entity.Product
	if err := r.db.WithContext(ctx).First(&product, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &product, nil
}

func (r *productRepository) FindAll(ctx context.Context, filter Filter) ([]*entity.Product, error) {
	var products []*entity.Product
	query := r.db.WithContext(ctx).Model(&entity.Product{})

	if filter.Category != "" {
		query = query.Where("LOWER(category) = LOWER(?)", filter.Category)
	}
	if filter.SellerID != uuid.Nil {
		query = query.Where("seller_id = ?", filter.SellerID)
	}

	switch filter.Sort {
	case "price_asc":
		query = query.Order("price ASC")
	case "price_desc":
		query = query.Order("price DESC")
	case "rating":
		query = query.Order("average_rating DESC").Order("num_reviews DESC")
	case "bestselling":
		query = query.Select("products.*").
			Joins("LEFT JOIN (SELECT product_id, SUM(quantity) AS units FROM orders GROUP BY product_id) sales ON sales.product_id = products.id").
			Order("COALESCE(sales.units, 0) DESC").
			Order("products.created_at DESC").Order("products.id DESC")
	default:
		query = query.Order("created_at DESC").Order("id DESC")
	}

	if filter.Limit > 0 {
		query = query.Limit(filter.Limit)
	}

	if err := query.Find(&products).Error; err != nil {
		return nil, err
	}
	return products, nil
}

func (r *productRepository) Delete(ctx context.Context, id uuid.UUID) (int64, error) {
	res := r.db.WithContext(ctx).Delete(&entity.Product{}, "id = ?", id)
	return res.RowsAffected, res.Error
}

func (r *productRepository) ReserveStock(ctx context.Context, id uuid.UUID, quantity int) (bool, error) {
	res := r.db.WithContext(ctx).
		Model(&entity.Product{}).
		Where("id = ? AND stock >= ?", id, quantity).
		UpdateColumn("stock", gorm.Expr("stock - ?", quantity))
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected == 1, nil
}
