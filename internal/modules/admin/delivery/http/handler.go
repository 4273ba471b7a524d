package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	adminService "anoa.com/marketplace/internal/modules/admin/service"
	complaintDto "anoa.com/marketplace/internal/modules/complaint/dto"
	complaintService "anoa.com/marketplace/internal/modules/complaint/service"
	orderService "anoa.com/marketplace/internal/modules/order/service"
	commonDto "anoa.com/marketplace/pkg/dto"
	"anoa.com/marketplace/pkg/response"
	"anoa.com/marketplace/pkg/validator"
)

type AdminHandler struct {
	adminService     adminService.AdminService
	orderService     orderService.OrderService
	complaintService complaintService.ComplaintService
}

func NewAdminHandler(adminService adminService.AdminService, orderService orderService.OrderService, complaintService complaintService.ComplaintService) *AdminHandler {
	return &AdminHandler{
		adminService:     adminService,
		orderService:     orderService,
		complaintService: complaintService,
	}
}

func (h *AdminHandler) GetAllUsers(c *gin.Context) {
	res, err := h.adminService.GetAllUsers(c.Request.Context())
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": res})
}

func (h *AdminHandler) DeleteUser(c *gin.Context) {
	id, ok := bindID(c)
	if !ok {
		return
	}

	if err := h.adminService.DeleteUser(c.Request.Context(), id); err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "success", "message": "user deleted successfully"})
}

func (h *AdminHandler) DeleteOrder(c *gin.Context) {
	id, ok := bindID(c)
	if !ok {
		return
	}

	if err := h.orderService.Delete(c.Request.Context(), id); err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "success", "message": "Order deleted successfully"})
}

func (h *AdminHandler) ListComplaints(c *gin.Context) {
	res, err := h.complaintService.ListAll(c.Request.Context())
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, res)
}

func (h *AdminHandler) ReplyComplaint(c *gin.Context) {
	id, ok := bindID(c)
	if !ok {
		return
	}

	var req complaintDto.ReplyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BindError(c, validator.FormatValidationError(err))
		return
	}

	res, err := h.complaintService.Reply(c.Request.Context(), id, req.Reply)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "success", "complaint": res})
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
