package repository

import (
	"context"

	"anoa.com/marketplace/internal/entity"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ComplaintRepository interface {
	Create(ctx context.Context, complaint *entity.Complaint) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Complaint, error)
	FindByUser(ctx context.Context, userID uuid.UUID) ([]*entity.Complaint, error)
	FindAll(ctx context.Context) ([]*entity.Complaint, error)
	Update(ctx context.Context, complaint *entity.Complaint) error
}

type complaintRepository struct {
	db *gorm.DB
}

func NewComplaintRepository(db *gorm.DB) ComplaintRepository {
	return &complaintRepository{db: db}
}

func (r *complaintRepository) Create(ctx context.Context, complaint *entity.Complaint) error {
	return r.db.WithContext(ctx).Omit("User").Create(complaint).Error
}

func (r *complaintRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Complaint, error) {
	var complaint entity.Complaint
	if err := r.db.WithContext(ctx).Preload("User").First(&complaint, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &complaint, nil
}

func (r *complaintRepository) FindByUser(ctx context.Context, userID uuid.UUID) ([]*entity.Complaint, error) {
	var complaints []*entity.Complaint
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").Order("id DESC").
		Find(&complaints).Error; err != nil {
		return nil, err
	}
	return complaints, nil
}

func (r *complaintRepository) FindAll(ctx context.Context) ([]*entity.Complaint, error) {
	var complaints []*entity.Complaint
	if err := r.db.WithContext(ctx).
		Preload("User").
		Order("created_at DESC").Order("id DESC").
		Find(&complaints).Error; err != nil {
		return nil, err
	}
	return complaints, nil
}

func (r *complaintRepository) Update(ctx context.Context, complaint *entity.Complaint) error {
	return r.db.WithContext(ctx).
		Model(&entity.Complaint{}).
		Where("id = ?", complaint.ID).
		Updates(map[string]any{
			"status": complaint.Status,
			"reply":  complaint.Reply,
		}).Error
}
