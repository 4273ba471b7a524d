package handler

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"anoa.com/marketplace/internal/modules/product/dto"
	"anoa.com/marketplace/internal/modules/product/service"
	commonDto "anoa.com/marketplace/pkg/dto"
	"anoa.com/marketplace/pkg/response"
	"anoa.com/marketplace/pkg/validator"
)

type ProductHandler struct {
	service service.ProductService
}

func NewProductHandler(service service.ProductService) *ProductHandler {
	return &ProductHandler{service: service}
}

func (h *ProductHandler) SubmitProduct(c *gin.Context) {
	sellerID, err := response.GetUserID(c)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	var input dto.SubmitProductInput
	if err := c.ShouldBind(&input); err != nil {
		response.BindError(c, validator.FormatValidationError(err))
		return
	}

	price, err := decimal.NewFromString(input.PriceRaw)
	if err != nil {
		response.BindError(c, "price must be a number")
		return
	}
	input.Price = price

	form, err := c.MultipartForm()
	if err != nil {
		response.BindError(c, "multipart form expected")
		return
	}

	mains := form.File["mainimage"]
	if len(mains) != 1 {
		response.BindError(c, "exactly one mainimage is required")
		return
	}
	extras := form.File["additionalImages"]
	if len(extras) > dto.MaxAdditionalImages {
		response.BindError(c, "at most 4 additionalImages are allowed")
		return
	}

	var closers []io.Closer
	defer func() {
		for _, cl := range closers {
			cl.Close()
		}
	}()

	mainImage, closer, err := commonDto.OpenUpload(mains[0])
	if err != nil {
		response.BindError(c, err.Error())
		return
	}
	closers = append(closers, closer)
	input.MainImage = mainImage

	for _, fh := range extras {
		f, closer, err := commonDto.OpenUpload(fh)
		if err != nil {
			response.BindError(c, err.Error())
			return
		}
		closers = append(closers, closer)
		input.AdditionalImages = append(input.AdditionalImages, f)
	}

	res, err := h.service.SubmitProduct(c.Request.Context(), sellerID, input)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"status": "success", "product": res})
}

func (h *ProductHandler) DeleteProduct(c *gin.Context) {
	sellerID, err := response.GetUserID(c)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	id, ok := bindID(c)
	if !ok {
		return
	}

	if err := h.service.DeleteProduct(c.Request.Context(), sellerID, id); err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "success", "message": "Product deleted successfully"})
}

func (h *ProductHandler) GetProduct(c *gin.Context) {
	id, ok := bindID(c)
	if !ok {
		return
	}

	res, err := h.service.GetProduct(c.Request.Context(), id)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, res)
}

func (h *ProductHandler) ListProducts(c *gin.Context) {
	var query dto.ListQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		response.BindError(c, validator.FormatValidationError(err))
		return
	}

	res, err := h.service.ListProducts(c.Request.Context(), query)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, res)
}

func (h *ProductHandler) ListByCategory(c *gin.Context) {
	res, err := h.service.ListByCategory(c.Request.Context(), c.Param("category"))
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, res)
}

func (h *ProductHandler) NewArrivals(c *gin.Context) {
	res, err := h.service.NewArrivals(c.Request.Context())
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, res)
}

func (h *ProductHandler) BestSellers(c *gin.Context) {
	res, err := h.service.BestSellers(c.Request.Context())
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, res)
}

func (h *ProductHandler) ListMine(c *gin.Context) {
	sellerID, err := response.GetUserID(c)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	res, err := h.service.ListBySeller(c.Request.Context(), sellerID)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, res)
}

func bindID(c *gin.Context) (uuid.UUID, bool) {
	var req commonDto.IDRequest
	if err := c.ShouldBindUri(&req); err != nil {
		response.BindError(c, "invalid id")
		return uuid.Nil, false
	}
	id, err := uuid.Parse(req.ID)
	if err != nil {
		response.BindError(c, "invalid id")
		return uuid.Nil, false
	}
	return id, true
}
