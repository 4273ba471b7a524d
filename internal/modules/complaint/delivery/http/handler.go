package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"anoa.com/marketplace/internal/modules/complaint/dto"
	"anoa.com/marketplace/internal/modules/complaint/service"
	"anoa.com/marketplace/pkg/response"
	"anoa.com/marketplace/pkg/validator"
)

type ComplaintHandler struct {
	service service.ComplaintService
}

func NewComplaintHandler(service service.ComplaintService) *ComplaintHandler {
	return &ComplaintHandler{service: service}
}

func (h *ComplaintHandler) Create(c *gin.Context) {
	userID, err := response.GetUserID(c)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	var req dto.CreateComplaintRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BindError(c, validator.FormatValidationError(err))
		return
	}

	complaint, err := h.service.Create(c.Request.Context(), userID, req.Complaint)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"status": "success", "complaint": complaint})
}

func (h *ComplaintHandler) ListMine(c *gin.Context) {
	userID, err := response.GetUserID(c)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	complaints, err := h.service.ListMine(c.Request.Context(), userID)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, complaints)
}
