package handler

import (
	"net/http"

	"anoa.com/marketplace/internal/modules/category/dto"
	category "anoa.com/marketplace/internal/modules/category/service"
	"anoa.com/marketplace/pkg/response"
	"anoa.com/marketplace/pkg/validator"
	"github.com/gin-gonic/gin"
)

type CategoryHandler struct {
	service category.CategoryService
}

func NewCategoryHandler(service category.CategoryService) *CategoryHandler {
	return &CategoryHandler{service: service}
}

func (h *CategoryHandler) GetAllCategories(c *gin.Context) {
	var filter dto.CategoryFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		response.BindError(c, validator.FormatValidationError(err))
		return
	}

	categories, err := h.service.GetAllCategories(c.Request.Context(), filter)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, categories)
}
