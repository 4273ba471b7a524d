package repository

import (
	"context"

	"anoa.com/marketplace/internal/entity"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type CartRepository interface {
	WithTx(tx *gorm.DB) CartRepository
	Create(ctx context.Context, line *entity.CartLine) error
	// FindByUser returns the user's lines oldest first with their product loaded.
	FindByUser(ctx context.Context, userID uuid.UUID) ([]*entity.CartLine, error)
	FindByUserAndProduct(ctx context.Context, userID, productID uuid.UUID) (*entity.CartLine, error)
	AddToLine(ctx context.Context, lineID uuid.UUID, quantity int, amount decimal.Decimal) error
	Delete(ctx context.Context, userID, lineID uuid.UUID) (int64, error)
	DeleteLines(ctx context.Context, userID uuid.UUID, lineIDs []uuid.UUID) (int64, error)
	DeleteByUser(ctx context.Context, userID uuid.UUID) (int64, error)
	DeleteByProduct(ctx context.Context, productID uuid.UUID) error
	ExistingIDs(ctx context.Context, userID uuid.UUID, lineIDs []uuid.UUID) (map[uuid.UUID]bool, error)
}

type cartRepository struct {
	db *gorm.DB
}

func NewCartRepository(db *gorm.DB) CartRepository {
	return &cartRepository{db: db}
}

func (r *cartRepository) WithTx(tx *gorm.DB) CartRepository {
	return &cartRepository{db: tx}
}

func (r *cartRepository) Create(ctx context.Context, line *entity.CartLine) error {
	return r.db.WithContext(ctx).Omit("Product").Create(line).Error
}

func (r *cartRepository) FindByUser(ctx context.Context, userID uuid.UUID) ([]*entity.CartLine, error) {
	var lines []*entity.CartLine
	if err := r.db.WithContext(ctx).
		Preload("Product").
		Where("user_id = ?", userID).
		Order("created_at ASC").Order("id ASC").
		Find(&lines).Error; err != nil {
		return nil, err
	}
	return lines, nil
}

func (r *cartRepository) FindByUserAndProduct(ctx context.Context, userID, productID uuid.UUID) (*entity.CartLine, error) {
	var lines []*entity.CartLine
	if err := r.db.WithContext(ctx).
		Where("user_id = ? AND product_id = ?", userID, productID).
		Order("created_at ASC").
		Limit(1).
		Find(&lines).Error; err != nil {
		return nil, err
	}
	if len(lines) == 0 {
		return nil, gorm.ErrRecordNotFound
	}
	return lines[0], nil
}

func (r *cartRepository) AddToLine(ctx context.Context, lineID uuid.UUID, quantity int, amount decimal.Decimal) error {
	return r.db.WithContext(ctx).
		Model(&entity.CartLine{}).
		Where("id = ?", lineID).
		UpdateColumns(map[string]any{
			"quantity": gorm.Expr("quantity + ?", quantity),
			"amount":   gorm.Expr("amount + ?", amount),
		}).Error
}

func (r *cartRepository) Delete(ctx context.Context, userID, lineID uuid.UUID) (int64, error) {
	res := r.db.WithContext(ctx).Delete(&entity.CartLine{}, "id = ? AND user_id = ?", lineID, userID)
	return res.RowsAffected, res.Error
}

func (r *cartRepository) DeleteLines(ctx context.Context, userID uuid.UUID, lineIDs []uuid.UUID) (int64, error) {
	if len(lineIDs) == 0 {
		return 0, nil
	}
	res := r.db.WithContext(ctx).Delete(&entity.CartLine{}, "user_id = ? AND id IN ?", userID, lineIDs)
	return res.RowsAffected, res.Error
}

func (r *cartRepository) DeleteByUser(ctx context.Context, userID uuid.UUID) (int64, error) {
	res := r.db.WithContext(ctx).Delete(&entity.CartLine{}, "user_id = ?", userID)
	return res.RowsAffected, res.Error
}

func (r *cartRepository) DeleteByProduct(ctx context.Context, productID uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&entity.CartLine{}, "product_id = ?", productID).Error
}

func (r *cartRepository) ExistingIDs(ctx context.Context, userID uuid.UUID, lineIDs []uuid.UUID) (map[uuid.UUID]bool, error) {
	found := make(map[uuid.UUID]bool, len(lineIDs))
	if len(lineIDs) == 0 {
		return found, nil
	}

	var ids []uuid.UUID
	if err := r.db.WithContext(ctx).
		Model(&entity.CartLine{}).
		Where("user_id = ? AND id IN ?", userID, lineIDs).
		Pluck("id", &ids).Error; err != nil {
		return nil, err
	}
	for _, id := range ids {
		found[id] = true
	}
	return found, nil
}
