package profile

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"anoa.com/marketplace/internal/entity"
	profileDto "anoa.com/marketplace/internal/modules/profile/dto"
	userRepo "anoa.com/marketplace/internal/modules/user/repository"
	"anoa.com/marketplace/pkg/apperror"
	"anoa.com/marketplace/pkg/storage"
)

type ProfileService interface {
	GetCurrentProfile(ctx context.Context, userID uuid.UUID) (*profileDto.ProfileResponse, error)
	UpdateProfile(ctx context.Context, userID uuid.UUID, input profileDto.UpdateProfileInput) (*profileDto.ProfileResponse, error)
}

type profileService struct {
	repo   userRepo.UserRepository
	assets *storage.AssetStore
}

func NewProfileService(repo userRepo.UserRepository, assets *storage.AssetStore) ProfileService {
	return &profileService{
		repo:   repo,
		assets: assets,
	}
}

func (s *profileService) GetCurrentProfile(ctx context.Context, userID uuid.UUID) (*profileDto.ProfileResponse, error) {
	user, err := s.find(ctx, userID)
	if err != nil {
		return nil, err
	}
	return buildResponse(user)
}

func (s *profileService) UpdateProfile(ctx context.Context, userID uuid.UUID, input profileDto.UpdateProfileInput) (*profileDto.ProfileResponse, error) {
	user, err := s.find(ctx, userID)
	if err != nil {
		return nil, err
	}

	if (user.Role == entity.RoleBuyer && user.BuyerProfile == nil) || (user.Role == entity.RoleSeller && user.SellerProfile == nil) {
		return nil, apperror.NotFound("profile not found")
	}

	var newImage string
	if input.Image != nil {
		if user.Role == entity.RoleAdmin {
			return nil, apperror.Validation("image", "admin accounts have no profile image")
		}
		if newImage, err = s.assets.Upload(ctx, *input.Image); err != nil {
			return nil, err
		}
	}

	var oldImage string
	switch user.Role {
	case entity.RoleBuyer:
		p := user.BuyerProfile
		assign(&p.Name, input.Name)
		assign(&p.Phone, input.Phone)
		assign(&p.Address, input.Address)
		if newImage != "" {
			oldImage, p.ImageURL = p.ImageURL, newImage
		}
		err = s.repo.SaveBuyerProfile(ctx, p)
	case entity.RoleSeller:
		p := user.SellerProfile
		assign(&p.StoreName, input.StoreName)
		assign(&p.StoreDesc, input.StoreDesc)
		assign(&p.Phone, input.Phone)
		if newImage != "" {
			oldImage, p.ImageURL = p.ImageURL, newImage
		}
		err = s.repo.SaveSellerProfile(ctx, p)
	case entity.RoleAdmin:
		return buildResponse(user)
	default:
		return nil, fmt.Errorf("credential %s has unknown role %q", user.ID, user.Role)
	}

	if err != nil {
		if newImage != "" {
			s.assets.Delete(context.WithoutCancel(ctx), newImage)
		}
		return nil, fmt.Errorf("failed to update profile: %w", err)
	}
	if oldImage != "" {
		s.assets.Delete(context.WithoutCancel(ctx), oldImage)
	}

	return buildResponse(user)
}

func (s *profileService) find(ctx context.Context, userID uuid.UUID) (*entity.Credential, error) {
	user, err := s.repo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.NotFound("user not found")
		}
		return nil, err
	}
	return user, nil
}

func buildResponse(user *entity.Credential) (*profileDto.ProfileResponse, error) {
	res := &profileDto.ProfileResponse{User: user, Role: user.Role}
	switch user.Role {
	case entity.RoleBuyer:
		res.BuyerProfile = user.BuyerProfile
	case entity.RoleSeller:
		res.SellerProfile = user.SellerProfile
	case entity.RoleAdmin:
	default:
		return nil, fmt.Errorf("credential %s has unknown role %q", user.ID, user.Role)
	}
	// The profile is reported once, beside the credential.
	user.BuyerProfile, user.SellerProfile = nil, nil
	return res, nil
}

func assign(dst *string, value *string) {
	if value == nil {
		return
	}
	if trimmed := strings.TrimSpace(*value); trimmed != "" {
		*dst = trimmed
	}
}
