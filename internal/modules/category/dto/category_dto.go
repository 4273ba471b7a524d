package dto

import commonDto "anoa.com/marketplace/pkg/dto"

type CategoryFilter struct {
	Search string `form:"search" binding:"max=100"`
	Limit  int    `form:"limit" binding:"omitempty,min=1,max=100"`
}

// CategoryResponse is derived from the catalog. Categories have no record of their own.
type CategoryResponse struct {
	Name         string `json:"name"`
	ProductCount int64  `json:"productCount"`
}

type CategoryListResponse struct {
	Data []CategoryResponse       `json:"data"`
	Meta commonDto.PaginationMeta `json:"meta"`
}
