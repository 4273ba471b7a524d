package repository

import (
	"context"

	"anoa.com/marketplace/internal/entity"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type UserRepository interface {
	WithTx(tx *gorm.DB) UserRepository
	// Create inserts the credential and whichever profile is attached in one transaction.
	Create(ctx context.Context, credential *entity.Credential) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Credential, error)
	FindByUsername(ctx context.Context, username string) (*entity.Credential, error)
	ExistsByID(ctx context.Context, id uuid.UUID) (bool, error)
	UsernameTaken(ctx context.Context, username string) (bool, error)
	EmailTaken(ctx context.Context, email string) (bool, error)
	FindBuyerProfile(ctx context.Context, credentialID uuid.UUID) (*entity.BuyerProfile, error)
	FindAll(ctx context.Context) ([]*entity.Credential, error)
	SaveBuyerProfile(ctx context.Context, profile *entity.BuyerProfile) error
	SaveSellerProfile(ctx context.Context, profile *entity.SellerProfile) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type userRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) WithTx(tx *gorm.DB) UserRepository {
	return &userRepository{db: tx}
}

func (r *userRepository) Create(ctx context.Context, credential *entity.Credential) error {
	return r.db.WithContext(ctx).Create(credential).Error
}

func (r *userRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Credential, error) {
	var credential entity.Credential
	if err := r.db.WithContext(ctx).
		Preload("BuyerProfile").
		Preload("SellerProfile").
		First(&credential, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &credential, nil
}

func (r *userRepository) FindByUsername(ctx context.Context, username string) (*entity.Credential, error) {
	var credential entity.Credential
	if err := r.db.WithContext(ctx).Where("username = ?", username).First(&credential).Error; err != nil {
		return nil, err
	}
	return &credential, nil
}

func (r *userRepository) ExistsByID(ctx context.Context, id uuid.UUID) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&entity.Credential{}).Where("id = ?", id).Count(&count).Error
	return count > 0, err
}

func (r *userRepository) UsernameTaken(ctx context.Context, username string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&entity.Credential{}).Where("username = ?", username).Count(&count).Error
	return count > 0, err
}

func (r *userRepository) EmailTaken(ctx context.Context, email string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&entity.BuyerProfile{}).Where("email = ?", email).Count(&count).Error
	return count > 0, err
}

func (r *userRepository) FindBuyerProfile(ctx context.Context, credentialID uuid.UUID) (*entity.BuyerProfile, error) {
	var profile entity.BuyerProfile
	if err := r.db.WithContext(ctx).Where("credential_id = ?", credentialID).First(&profile).Error; err != nil {
		return nil, err
	}
	return &profile, nil
}

func (r *userRepository) FindAll(ctx context.Context) ([]*entity.Credential, error) {
	var credentials []*entity.Credential
	if err := r.db.WithContext(ctx).
		Preload("BuyerProfile").
		Preload("SellerProfile").
		Order("created_at DESC").
		Find(&credentials).Error; err != nil {
		return nil, err
	}
	return credentials, nil
}

func (r *userRepository) SaveBuyerProfile(ctx context.Context, profile *entity.BuyerProfile) error {
	return r.db.WithContext(ctx).Save(profile).Error
}

func (r *userRepository) SaveSellerProfile(ctx context.Context, profile *entity.SellerProfile) error {
	return r.db.WithContext(ctx).Save(profile).Error
}

// Delete removes the credential and its profile. The explicit profile deletes keep
// the cascade independent of the driver's foreign key enforcement.
func (r *userRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("credential_id = ?", id).Delete(&entity.BuyerProfile{}).Error; err != nil {
			return err
		}
		if err := tx.Where("credential_id = ?", id).Delete(&entity.SellerProfile{}).Error; err != nil {
			return err
		}
		res := tx.Delete(&entity.Credential{}, "id = ?", id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
}
