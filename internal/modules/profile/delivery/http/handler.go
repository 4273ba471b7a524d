package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	profileDto "anoa.com/marketplace/internal/modules/profile/dto"
	profile "anoa.com/marketplace/internal/modules/profile/service"
	commonDto "anoa.com/marketplace/pkg/dto"
	"anoa.com/marketplace/pkg/response"
	"anoa.com/marketplace/pkg/validator"
)

type ProfileHandler struct {
	profileService profile.ProfileService
}

func NewProfileHandler(profileService profile.ProfileService) *ProfileHandler {
	return &ProfileHandler{
		profileService: profileService,
	}
}

// GetCurrentProfile also serves the seller dashboard, which is the seller's own profile.
func (h *ProfileHandler) GetCurrentProfile(c *gin.Context) {
	userID, err := response.GetUserID(c)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	res, err := h.profileService.GetCurrentProfile(c.Request.Context(), userID)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, res)
}

func (h *ProfileHandler) UpdateProfile(c *gin.Context) {
	userID, err := response.GetUserID(c)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	var input profileDto.UpdateProfileInput
	if err := c.ShouldBind(&input); err != nil {
		response.BindError(c, validator.FormatValidationError(err))
		return
	}

	if fileHeader, err := c.FormFile("image"); err == nil && fileHeader != nil {
		image, closer, err := commonDto.OpenUpload(fileHeader)
		if err != nil {
			response.BindError(c, err.Error())
			return
		}
		defer closer.Close()
		input.Image = &image
	}

	res, err := h.profileService.UpdateProfile(c.Request.Context(), userID, input)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, res)
}
