package category

import (
	"context"

	"anoa.com/marketplace/internal/modules/category/dto"
	"anoa.com/marketplace/internal/modules/category/repository"
	commonDto "anoa.com/marketplace/pkg/dto"
)

type CategoryService interface {
	GetAllCategories(ctx context.Context, filter dto.CategoryFilter) (*dto.CategoryListResponse, error)
}

type categoryService struct {
	repo repository.CategoryRepository
}

func NewCategoryService(repo repository.CategoryRepository) CategoryService {
	return &categoryService{repo: repo}
}

func (s *categoryService) GetAllCategories(ctx context.Context, filter dto.CategoryFilter) (*dto.CategoryListResponse, error) {
	rows, err := s.repo.FindAll(ctx, filter.Search, filter.Limit)
	if err != nil {
		return nil, err
	}

	total, err := s.repo.CountDistinct(ctx, filter.Search)
	if err != nil {
		return nil, err
	}

	categories := make([]dto.CategoryResponse, 0, len(rows))
	for _, row := range rows {
		categories = append(categories, dto.CategoryResponse{
			Name:         row.Name,
			ProductCount: row.ProductCount,
		})
	}

	return &dto.CategoryListResponse{
		Data: categories,
		Meta: commonDto.PaginationMeta{
			TotalItems: total,
			Limit:      filter.Limit,
		},
	}, nil
}
