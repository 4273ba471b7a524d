package repository

import (
	"context"

	"anoa.com/marketplace/internal/entity"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type OrderRepository interface {
	WithTx(tx *gorm.DB) OrderRepository
	Create(ctx context.Context, order *entity.Order) error
	FindByUser(ctx context.Context, userID uuid.UUID) ([]*entity.Order, error)
	FindBySeller(ctx context.Context, sellerID uuid.UUID) ([]*entity.Order, error)
	Delete(ctx context.Context, id uuid.UUID) (int64, error)
}

type orderRepository struct {
	db *gorm.DB
}

func NewOrderRepository(db *gorm.DB) OrderRepository {
	return &orderRepository{db: db}
}

func (r *orderRepository) WithTx(tx *gorm.DB) OrderRepository {
	return &orderRepository{db: tx}
}

func (r *orderRepository) Create(ctx context.Context, order *entity.Order) error {
	return r.db.WithContext(ctx).Create(order).Error
}

func (r *orderRepository) FindByUser(ctx context.Context, userID uuid.UUID) ([]*entity.Order, error) {
	var orders []*entity.Order
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").Order("id DESC").
		Find(&orders).Error; err != nil {
		return nil, err
	}
	return orders, nil
}

func (r *orderRepository) FindBySeller(ctx context.Context, sellerID uuid.UUID) ([]*entity.Order, error) {
	var orders []*entity.Order
	if err := r.db.WithContext(ctx).
		Where("seller_id = ?", sellerID).
		Order("created_at DESC").Order("id DESC").
		Find(&orders).Error; err != nil {
		return nil, err
	}
	return orders, nil
}

func (r *orderRepository) Delete(ctx context.Context, id uuid.UUID) (int64, error) {
	res := r.db.WithContext(ctx).Delete(&entity.Order{}, "id = ?", id)
	return res.RowsAffected, res.Error
}
