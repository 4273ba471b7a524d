package service

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"anoa.com/marketplace/internal/entity"
	"anoa.com/marketplace/internal/modules/user/dto"
	"anoa.com/marketplace/internal/modules/user/repository"
	"anoa.com/marketplace/internal/token"
	"anoa.com/marketplace/pkg/apperror"
	"anoa.com/marketplace/pkg/storage"
)

var errInvalidCredentials = apperror.New(http.StatusUnauthorized, "invalid username or password", apperror.ErrUnauthorized)

type AuthService interface {
	RegisterBuyer(ctx context.Context, input dto.RegisterBuyerInput) (*entity.Credential, error)
	RegisterSeller(ctx context.Context, input dto.RegisterSellerInput) (*entity.Credential, error)
	Login(ctx context.Context, input dto.LoginInput) (*dto.AuthResponse, error)
}

type authService struct {
	repo   repository.UserRepository
	assets *storage.AssetStore
	issuer *token.Issuer
}

func NewAuthService(repo repository.UserRepository, assets *storage.AssetStore, issuer *token.Issuer) AuthService {
	return &authService{
		repo:   repo,
		assets: assets,
		issuer: issuer,
	}
}

func (s *authService) RegisterBuyer(ctx context.Context, input dto.RegisterBuyerInput) (*entity.Credential, error) {
	input.Username = strings.TrimSpace(input.Username)
	input.Email = strings.ToLower(strings.TrimSpace(input.Email))

	if err := s.checkUsername(ctx, input.Username); err != nil {
		return nil, err
	}
	taken, err := s.repo.EmailTaken(ctx, input.Email)
	if err != nil {
		return nil, fmt.Errorf("failed to check email: %w", err)
	}
	if taken {
		return nil, apperror.Conflict("Email already exists")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	imageURL, err := s.assets.Upload(ctx, input.Image)
	if err != nil {
		return nil, err
	}

	credential := &entity.Credential{
		Username:     input.Username,
		PasswordHash: string(hash),
		Role:         entity.RoleBuyer,
		BuyerProfile: &entity.BuyerProfile{
			Name:     strings.TrimSpace(input.Name),
			Phone:    input.Phone,
			Email:    input.Email,
			Address:  strings.TrimSpace(input.Address),
			ImageURL: imageURL,
		},
	}

	if err := s.create(ctx, credential, imageURL); err != nil {
		return nil, err
	}
	return credential, nil
}

func (s *authService) RegisterSeller(ctx context.Context, input dto.RegisterSellerInput) (*entity.Credential, error) {
	input.Username = strings.TrimSpace(input.Username)

	if err := s.checkUsername(ctx, input.Username); err != nil {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	imageURL, err := s.assets.Upload(ctx, input.Image)
	if err != nil {
		return nil, err
	}

	credential := &entity.Credential{
		Username:     input.Username,
		PasswordHash: string(hash),
		Role:         entity.RoleSeller,
		SellerProfile: &entity.SellerProfile{
			StoreName: strings.TrimSpace(input.StoreName),
			StoreDesc: strings.TrimSpace(input.StoreDesc),
			Phone:     input.Phone,
			ImageURL:  imageURL,
		},
	}

	if err := s.create(ctx, credential, imageURL); err != nil {
		return nil, err
	}
	return credential, nil
}

func (s *authService) Login(ctx context.Context, input dto.LoginInput) (*dto.AuthResponse, error) {
	credential, err := s.repo.FindByUsername(ctx, strings.TrimSpace(input.Username))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errInvalidCredentials
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(credential.PasswordHash), []byte(input.Password)); err != nil {
		return nil, errInvalidCredentials
	}

	signed, expiresAt, err := s.issuer.Mint(credential.ID, credential.Role)
	if err != nil {
		return nil, err
	}

	return &dto.AuthResponse{
		Status:    "login successful",
		UserType:  credential.Role,
		Token:     signed,
		ExpiresAt: expiresAt.Unix(),
	}, nil
}

func (s *authService) checkUsername(ctx context.Context, username string) error {
	taken, err := s.repo.UsernameTaken(ctx, username)
	if err != nil {
		return fmt.Errorf("failed to check username: %w", err)
	}
	if taken {
		return apperror.Conflict("Username already exists")
	}
	return nil
}

// create persists the credential. The uploaded image is released if the write fails.
func (s *authService) create(ctx context.Context, credential *entity.Credential, imageURL string) error {
	err := s.repo.Create(ctx, credential)
	if err == nil {
		return nil
	}

	s.assets.Delete(context.WithoutCancel(ctx), imageURL)

	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return apperror.Conflict("Username or email already exists")
	}
	return fmt.Errorf("failed to create credential: %w", err)
}
