package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"anoa.com/marketplace/internal/modules/user/dto"
	"anoa.com/marketplace/internal/modules/user/service"
	commonDto "anoa.com/marketplace/pkg/dto"
	"anoa.com/marketplace/pkg/response"
	"anoa.com/marketplace/pkg/validator"
)

type CookieConfig struct {
	Name   string
	TTL    time.Duration
	Secure bool
}

type AuthHandler struct {
	authService service.AuthService
	cookie      CookieConfig
}

func NewAuthHandler(authService service.AuthService, cookie CookieConfig) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		cookie:      cookie,
	}
}

func (h *AuthHandler) Register(c *gin.Context) {
	var input dto.RegisterBuyerInput
	if err := c.ShouldBind(&input); err != nil {
		response.BindError(c, validator.FormatValidationError(err))
		return
	}

	fileHeader, err := c.FormFile("image")
	if err != nil {
		response.BindError(c, "image is required")
		return
	}
	image, closer, err := commonDto.OpenUpload(fileHeader)
	if err != nil {
		response.BindError(c, err.Error())
		return
	}
	defer closer.Close()
	input.Image = image

	if _, err := h.authService.RegisterBuyer(c.Request.Context(), input); err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"status": "done", "message": "User registered successfully"})
}

func (h *AuthHandler) SellerSignup(c *gin.Context) {
	var input dto.RegisterSellerInput
	if err := c.ShouldBind(&input); err != nil {
		response.BindError(c, validator.FormatValidationError(err))
		return
	}

	fileHeader, err := c.FormFile("image")
	if err != nil {
		response.BindError(c, "image is required")
		return
	}
	image, closer, err := commonDto.OpenUpload(fileHeader)
	if err != nil {
		response.BindError(c, err.Error())
		return
	}
	defer closer.Close()
	input.Image = image

	if _, err := h.authService.RegisterSeller(c.Request.Context(), input); err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"status": "success"})
}

func (h *AuthHandler) Login(c *gin.Context) {
	var input dto.LoginInput
	if err := c.ShouldBind(&input); err != nil {
		response.BindError(c, validator.FormatValidationError(err))
		return
	}

	res, err := h.authService.Login(c.Request.Context(), input)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(h.cookie.Name, res.Token, int(h.cookie.TTL.Seconds()), "/", "", h.cookie.Secure, true)
	c.JSON(http.StatusOK, res)
}

func (h *AuthHandler) Logout(c *gin.Context) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(h.cookie.Name, "", -1, "/", "", h.cookie.Secure, true)
	c.JSON(http.StatusOK, gin.H{"status": "success", "message": "Logged out"})
}
