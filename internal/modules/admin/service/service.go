package service

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"anoa.com/marketplace/internal/entity"
	"anoa.com/marketplace/internal/modules/admin/dto"
	cartRepo "anoa.com/marketplace/internal/modules/cart/repository"
	productRepo "anoa.com/marketplace/internal/modules/product/repository"
	reviewRepo "anoa.com/marketplace/internal/modules/review/repository"
	userRepo "anoa.com/marketplace/internal/modules/user/repository"
	"anoa.com/marketplace/pkg/apperror"
	"anoa.com/marketplace/pkg/storage"
)

type AdminService interface {
	GetAllUsers(ctx context.Context) ([]dto.AdminUserResponse, error)
	// DeleteUser removes a buyer or seller together with its profile, cart and
	// reviews. A seller's products go with it.
	DeleteUser(ctx context.Context, id uuid.UUID) error
}

type adminService struct {
	db          *gorm.DB
	repo        userRepo.UserRepository
	cartRepo    cartRepo.CartRepository
	productRepo productRepo.ProductRepository
	reviewRepo  reviewRepo.ReviewRepository
	assets      *storage.AssetStore
}

func NewAdminService(
	db *gorm.DB,
	repo userRepo.UserRepository,
	cartRepo cartRepo.CartRepository,
	productRepo productRepo.ProductRepository,
	reviewRepo reviewRepo.ReviewRepository,
	assets *storage.AssetStore,
) AdminService {
	return &adminService{
		db:          db,
		repo:        repo,
		cartRepo:    cartRepo,
		productRepo: productRepo,
		reviewRepo:  reviewRepo,
		assets:      assets,
	}
}

func (s *adminService) GetAllUsers(ctx context.Context) ([]dto.AdminUserResponse, error) {
	users, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, err
	}

	res := make([]dto.AdminUserResponse, 0, len(users))
	for _, u := range users {
		res = append(res, dto.NewAdminUserResponse(u))
	}
	return res, nil
}

func (s *adminService) DeleteUser(ctx context.Context, id uuid.UUID) error {
	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperror.NotFound("user not found")
		}
		return err
	}
	if user.Role == entity.RoleAdmin {
		return apperror.Forbidden("admin accounts cannot be deleted")
	}

	var images []string
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		cart := s.cartRepo.WithTx(tx)
		reviews := s.reviewRepo.WithTx(tx)

		if _, err := cart.DeleteByUser(ctx, id); err != nil {
			return err
		}
		if err := reviews.RetractByUser(ctx, id); err != nil {
			return err
		}

		if user.Role == entity.RoleSeller {
			productImages, err := s.deleteSellerProducts(ctx, tx, id)
			if err != nil {
				return err
			}
			images = append(images, productImages...)
		}

		return s.repo.WithTx(tx).Delete(ctx, id)
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperror.NotFound("user not found")
		}
		return err
	}

	if user.BuyerProfile != nil {
		images = append(images, user.BuyerProfile.ImageURL)
	}
	if user.SellerProfile != nil {
		images = append(images, user.SellerProfile.ImageURL)
	}
	s.assets.DeleteAll(context.WithoutCancel(ctx), images)
	return nil
}

// deleteSellerProducts removes the seller's products with the cart lines and
// reviews that point at them. It returns their image URLs.
func (s *adminService) deleteSellerProducts(ctx context.Context, tx *gorm.DB, sellerID uuid.UUID) ([]string, error) {
	products := s.productRepo.WithTx(tx)
	cart := s.cartRepo.WithTx(tx)
	reviews := s.reviewRepo.WithTx(tx)

	owned, err := products.FindAll(ctx, productRepo.Filter{SellerID: sellerID})
	if err != nil {
		return nil, err
	}

	var images []string
	for _, p := range owned {
		if err := cart.DeleteByProduct(ctx, p.ID); err != nil {
			return nil, err
		}
		if err := reviews.DeleteByProduct(ctx, p.ID); err != nil {
			return nil, err
		}
		if _, err := products.Delete(ctx, p.ID); err != nil {
			return nil, err
		}
		images = append(images, p.Images...)
	}
	return images, nil
}
