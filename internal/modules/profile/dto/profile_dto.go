package dto

import (
	"anoa.com/marketplace/internal/entity"
	"anoa.com/marketplace/pkg/storage"
)

// UpdateProfileInput carries the fields of either profile variant. Fields that do
// not belong to the caller's role are ignored.
type UpdateProfileInput struct {
	Name      *string `form:"name" binding:"omitempty,min=2,max=100"`
	Phone     *string `form:"phone" binding:"omitempty,len=10,numeric"`
	Address   *string `form:"address" binding:"omitempty,min=5"`
	StoreName *string `form:"storeName" binding:"omitempty,min=2,max=100"`
	StoreDesc *string `form:"storeDesc"`

	Image *storage.File `form:"-"`
}

// ProfileResponse is the caller's credential with whichever profile its role owns.
type ProfileResponse struct {
	User          *entity.Credential    `json:"user"`
	Role          entity.Role           `json:"userType"`
	BuyerProfile  *entity.BuyerProfile  `json:"buyer,omitempty"`
	SellerProfile *entity.SellerProfile `json:"seller,omitempty"`
}
