package repository

import (
	"context"

	"anoa.com/marketplace/internal/entity"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type StatRepository interface {
	CountUsers(ctx context.Context, role entity.Role) (int64, error)
	CountProducts(ctx context.Context, sellerID uuid.UUID) (int64, error)
	OrderTotals(ctx context.Context, sellerID uuid.UUID) (int64, decimal.Decimal, error)
}

type statRepository struct {
	db *gorm.DB
}

func NewStatRepository(db *gorm.DB) StatRepository {
	return &statRepository{db: db}
}

// CountUsers counts every credential when role is empty.
func (r *statRepository) CountUsers(ctx context.Context, role entity.Role) (int64, error) {
	var count int64
	query := r.db.WithContext(ctx).Model(&entity.Credential{})
	if role != "" {
		query = query.Where("role = ?", role)
	}
	err := query.Count(&count).Error
	return count, err
}

func (r *statRepository) CountProducts(ctx context.Context, sellerID uuid.UUID) (int64, error) {
	var count int64
	query := r.db.WithContext(ctx).Model(&entity.Product{})
	if sellerID != uuid.Nil {
		query = query.Where("seller_id = ?", sellerID)
	}
	err := query.Count(&count).Error
	return count, err
}

// OrderTotals returns the order count and summed amount, scoped to a seller
// unless sellerID is uuid.Nil.
func (r *statRepository) OrderTotals(ctx context.Context, sellerID uuid.UUID) (int64, decimal.Decimal, error) {
	var row struct {
		Orders  int64
		Revenue decimal.NullDecimal
	}
	query := r.db.WithContext(ctx).Model(&entity.Order{}).
		Select("COUNT(*) AS orders, SUM(amount) AS revenue")
	if sellerID != uuid.Nil {
		query = query.Where("seller_id = ?", sellerID)
	}
	if err := query.Scan(&row).Error; err != nil {
		return 0, decimal.Zero, err
	}
	if !row.Revenue.Valid {
		return row.Orders, decimal.Zero, nil
	}
	return row.Orders, row.Revenue.Decimal, nil
}
