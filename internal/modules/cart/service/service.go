package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"anoa.com/marketplace/internal/entity"
	"anoa.com/marketplace/internal/modules/cart/dto"
	"anoa.com/marketplace/internal/modules/cart/repository"
	productRepo "anoa.com/marketplace/internal/modules/product/repository"
	"anoa.com/marketplace/pkg/apperror"
)

type CartService interface {
	AddLine(ctx context.Context, userID, productID uuid.UUID, quantity int) (*dto.CartLineResponse, error)
	ListLines(ctx context.Context, userID uuid.UUID) (*dto.CartResponse, error)
	RemoveLine(ctx context.Context, userID, lineID uuid.UUID) error
	Clear(ctx context.Context, userID uuid.UUID) error
}

type cartService struct {
	repo        repository.CartRepository
	productRepo productRepo.ProductRepository
	mergeLines  bool
}

// NewCartService builds the cart ledger. With mergeLines set, adding a product
// that already has a line grows that line instead of appending a new one.
func NewCartService(repo repository.CartRepository, productRepo productRepo.ProductRepository, mergeLines bool) CartService {
	return &cartService{
		repo:        repo,
		productRepo: productRepo,
		mergeLines:  mergeLines,
	}
}

func (s *cartService) AddLine(ctx context.Context, userID, productID uuid.UUID, quantity int) (*dto.CartLineResponse, error) {
	if quantity <= 0 {
		return nil, apperror.Validation("quantity", "must be greater than 0")
	}

	product, err := s.productRepo.FindByID(ctx, productID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.Validation("productId", "product does not exist")
		}
		return nil, err
	}

	amount := product.Price.Mul(decimal.NewFromInt(int64(quantity)))

	if s.mergeLines {
		line, err := s.repo.FindByUserAndProduct(ctx, userID, productID)
		switch {
		case err == nil:
			if err := s.repo.AddToLine(ctx, line.ID, quantity, amount); err != nil {
				return nil, fmt.Errorf("failed to update cart line: %w", err)
			}
			line.Quantity += quantity
			line.Amount = line.Amount.Add(amount)
			line.Product = *product
			res := dto.NewCartLineResponse(line)
			return &res, nil
		case !errors.Is(err, gorm.ErrRecordNotFound):
			return nil, err
		}
	}

	line := &entity.CartLine{
		UserID:    userID,
		ProductID: productID,
		Quantity:  quantity,
		Amount:    amount,
	}
	if err := s.repo.Create(ctx, line); err != nil {
		return nil, fmt.Errorf("failed to add cart line: %w", err)
	}
	line.Product = *product

	res := dto.NewCartLineResponse(line)
	return &res, nil
}

func (s *cartService) ListLines(ctx context.Context, userID uuid.UUID) (*dto.CartResponse, error) {
	lines, err := s.repo.FindByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	res := dto.NewCartResponse(lines)
	return &res, nil
}

func (s *cartService) RemoveLine(ctx context.Context, userID, lineID uuid.UUID) error {
	n, err := s.repo.Delete(ctx, userID, lineID)
	if err != nil {
		return err
	}
	if n == 0 {
		return apperror.NotFound("cart line not found")
	}
	return nil
}

func (s *cartService) Clear(ctx context.Context, userID uuid.UUID) error {
	_, err := s.repo.DeleteByUser(ctx, userID)
	return err
}
