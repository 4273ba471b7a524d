package handler

import (
	"net/http"

	statService "anoa.com/marketplace/internal/modules/stat/service"
	"anoa.com/marketplace/pkg/response"
	"github.com/gin-gonic/gin"
)

type StatHandler struct {
	statService statService.StatService
}

func NewStatHandler(statService statService.StatService) *StatHandler {
	return &StatHandler{statService: statService}
}

func (h *StatHandler) GetMarketplaceStats(c *gin.Context) {
	stats, err := h.statService.GetMarketplaceStats(c.Request.Context())
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": stats})
}

func (h *StatHandler) GetSellerStats(c *gin.Context) {
	userID, err := response.GetUserID(c)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	stats, err := h.statService.GetSellerStats(c.Request.Context(), userID)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": stats})
}
