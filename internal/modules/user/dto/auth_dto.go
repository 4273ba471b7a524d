package dto

import (
	"anoa.com/marketplace/internal/entity"
	"anoa.com/marketplace/pkg/storage"
)

type RegisterBuyerInput struct {
	Username string       `form:"username" binding:"required,min=3,max=30"`
	Password string       `form:"password" binding:"required,min=6"`
	Name     string       `form:"name" binding:"required,min=2"`
	Phone    string       `form:"phone" binding:"required,len=10,numeric"`
	Email    string       `form:"email" binding:"required,email"`
	Address  string       `form:"address" binding:"required,min=5"`
	Image    storage.File `form:"-"`
}

type RegisterSellerInput struct {
	StoreName string       `form:"storeName" binding:"required"`
	StoreDesc string       `form:"storeDesc" binding:"required"`
	Phone     string       `form:"phone" binding:"required,len=10,numeric"`
	Username  string       `form:"username" binding:"required,min=3,max=30"`
	Password  string       `form:"password" binding:"required,min=6"`
	Image     storage.File `form:"-"`
}

type LoginInput struct {
	Username string `json:"username" form:"username" binding:"required"`
	Password string `json:"password" form:"password" binding:"required"`
}

type AuthResponse struct {
	Status    string      `json:"status"`
	UserType  entity.Role `json:"userType"`
	Token     string      `json:"token"`
	ExpiresAt int64       `json:"expires_at"`
}
