package service

import (
	"context"
	"errors"
	"fmt"
	"html"
	"strings"

	"github.com/google/uuid"
	"github.com/microcosm-cc/bluemonday"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"anoa.com/marketplace/internal/entity"
	cartRepo "anoa.com/marketplace/internal/modules/cart/repository"
	"anoa.com/marketplace/internal/modules/product/dto"
	"anoa.com/marketplace/internal/modules/product/repository"
	reviewRepo "anoa.com/marketplace/internal/modules/review/repository"
	"anoa.com/marketplace/pkg/apperror"
	"anoa.com/marketplace/pkg/storage"
)

const (
	categoryPageSize = 4
	newArrivalsSize  = 4
	bestSellersSize  = 4
)

type ProductService interface {
	SubmitProduct(ctx context.Context, sellerID uuid.UUID, input dto.SubmitProductInput) (*dto.ProductResponse, error)
	DeleteProduct(ctx context.Context, sellerID, productID uuid.UUID) error
	GetProduct(ctx context.Context, id uuid.UUID) (*dto.ProductResponse, error)
	ListProducts(ctx context.Context, query dto.ListQuery) ([]dto.ProductResponse, error)
	ListByCategory(ctx context.Context, category string) ([]dto.ProductResponse, error)
	NewArrivals(ctx context.Context) ([]dto.ProductResponse, error)
	BestSellers(ctx context.Context) ([]dto.ProductResponse, error)
	ListBySeller(ctx context.Context, sellerID uuid.UUID) ([]dto.ProductResponse, error)
}

type productService struct {
	db         *gorm.DB
	repo       repository.ProductRepository
	cartRepo   cartRepo.CartRepository
	reviewRepo reviewRepo.ReviewRepository
	assets     *storage.AssetStore
	policy     *bluemonday.Policy
}

func NewProductService(db *gorm.DB, repo repository.ProductRepository, cartRepo cartRepo.CartRepository, reviewRepo reviewRepo.ReviewRepository, assets *storage.AssetStore) ProductService {
	return &productService{
		db:         db,
		repo:       repo,
		cartRepo:   cartRepo,
		reviewRepo: reviewRepo,
		assets:     assets,
		policy:     bluemonday.StrictPolicy(),
	}
}

func (s *productService) SubmitProduct(ctx context.Context, sellerID uuid.UUID, input dto.SubmitProductInput) (*dto.ProductResponse, error) {
	if strings.TrimSpace(input.ProductName) == "" {
		return nil, apperror.Validation("productname", "is required")
	}
	if !input.Price.IsPositive() {
		return nil, apperror.Validation("price", "must be greater than 0")
	}
	if input.Stock < 0 {
		return nil, apperror.Validation("stock", "must not be negative")
	}
	if input.MainImage.Reader == nil {
		return nil, apperror.Validation("mainimage", "is required")
	}
	if len(input.AdditionalImages) > dto.MaxAdditionalImages {
		return nil, apperror.Validation("additionalImages", "at most %d images are allowed", dto.MaxAdditionalImages)
	}

	files := append([]storage.File{input.MainImage}, input.AdditionalImages...)
	urls, err := s.assets.UploadMany(ctx, files)
	if err != nil {
		return nil, err
	}

	product := &entity.Product{
		SellerID:    sellerID,
		Name:        strings.TrimSpace(input.ProductName),
		Description: s.sanitize(input.Description),
		Category:    strings.TrimSpace(input.Category),
		Brand:       strings.TrimSpace(input.Brand),
		Price:       input.Price.Round(2),
		Stock:       input.Stock,
		Images:      datatypes.JSONSlice[string](urls),
		Colors:      splitList(input.Colors),
		Sizes:       splitList(input.Sizes),
		StyleTips:   s.sanitize(input.StyleTips),
		Features:    s.sanitize(input.Features),
	}

	if err := s.repo.Create(ctx, product); err != nil {
		s.assets.DeleteAll(context.WithoutCancel(ctx), urls)
		return nil, fmt.Errorf("failed to create product: %w", err)
	}

	res := dto.NewProductResponse(product)
	return &res, nil
}

// DeleteProduct removes the product with its cart lines and reviews, then
// releases its images on a best-effort basis.
func (s *productService) DeleteProduct(ctx context.Context, sellerID, productID uuid.UUID) error {
	product, err := s.repo.FindByID(ctx, productID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperror.NotFound("product not found")
		}
		return err
	}

	if product.SellerID != sellerID {
		return apperror.Forbidden("You are not authorized to delete this product")
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.cartRepo.WithTx(tx).DeleteByProduct(ctx, productID); err != nil {
			return err
		}
		if err := s.reviewRepo.WithTx(tx).DeleteByProduct(ctx, productID); err != nil {
			return err
		}
		n, err := s.repo.WithTx(tx).Delete(ctx, productID)
		if err != nil {
			return err
		}
		if n == 0 {
			return apperror.NotFound("product not found")
		}
		return nil
	})
	if err != nil {
		return err
	}

	s.assets.DeleteAll(context.WithoutCancel(ctx), product.Images)
	return nil
}

func (s *productService) GetProduct(ctx context.Context, id uuid.UUID) (*dto.ProductResponse, error) {
	product, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.NotFound("product not found")
		}
		return nil, err
	}
	res := dto.NewProductResponse(product)
	return &res, nil
}

func (s *productService) ListProducts(ctx context.Context, query dto.ListQuery) ([]dto.ProductResponse, error) {
	return s.list(ctx, repository.Filter{Sort: query.Sort, Limit: query.Limit})
}

func (s *productService) ListByCategory(ctx context.Context, category string) ([]dto.ProductResponse, error) {
	return s.list(ctx, repository.Filter{Category: category, Limit: categoryPageSize})
}

func (s *productService) NewArrivals(ctx context.Context) ([]dto.ProductResponse, error) {
	return s.list(ctx, repository.Filter{Limit: newArrivalsSize})
}

func (s *productService) BestSellers(ctx context.Context) ([]dto.ProductResponse, error) {
	return s.list(ctx, repository.Filter{Sort: "bestselling", Limit: bestSellersSize})
}

func (s *productService) ListBySeller(ctx context.Context, sellerID uuid.UUID) ([]dto.ProductResponse, error) {
	return s.list(ctx, repository.Filter{SellerID: sellerID})
}

func (s *productService) list(ctx context.Context, filter repository.Filter) ([]dto.ProductResponse, error) {
	products, err := s.repo.FindAll(ctx, filter)
	if err != nil {
		return nil, err
	}
	return dto.NewProductResponses(products), nil
}

func (s *productService) sanitize(text string) string {
	return strings.TrimSpace(html.UnescapeString(s.policy.Sanitize(text)))
}

func splitList(s string) datatypes.JSONSlice[string] {
	out := datatypes.JSONSlice[string]{}
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
