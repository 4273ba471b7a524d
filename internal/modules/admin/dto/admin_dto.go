package dto

import (
	"time"

	"github.com/google/uuid"

	"anoa.com/marketplace/internal/entity"
)

type AdminUserResponse struct {
	ID        uuid.UUID   `json:"id"`
	Username  string      `json:"username"`
	Role      entity.Role `json:"role"`
	Name      string      `json:"name,omitempty"`
	Email     string      `json:"email,omitempty"`
	StoreName string      `json:"storeName,omitempty"`
	CreatedAt time.Time   `json:"created_at"`
}

func NewAdminUserResponse(c *entity.Credential) AdminUserResponse {
	res := AdminUserResponse{
		ID:        c.ID,
		Username:  c.Username,
		Role:      c.Role,
		CreatedAt: c.CreatedAt,
	}
	if c.BuyerProfile != nil {
		res.Name = c.BuyerProfile.Name
		res.Email = c.BuyerProfile.Email
	}
	if c.SellerProfile != nil {
		res.StoreName = c.SellerProfile.StoreName
	}
	return res
}
