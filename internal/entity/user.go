package entity

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Role is a closed set. The zero value is not a valid role.
type Role string

const (
	RoleBuyer  Role = "buyer"
	RoleSeller Role = "seller"
	RoleAdmin  Role = "admin"
)

func (r Role) Valid() bool {
	switch r {
	case RoleBuyer, RoleSeller, RoleAdmin:
		return true
	}
	return false
}

func ParseRole(s string) (Role, error) {
	r := Role(s)
	if !r.Valid() {
		return "", fmt.Errorf("unknown role %q", s)
	}
	return r, nil
}

// Credential is the login identity. Role is written on create only.
type Credential struct {
	ID            uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	Username      string         `gorm:"size:30;uniqueIndex;not null" json:"username"`
	PasswordHash  string         `gorm:"size:255;not null" json:"-"`
	Role          Role           `gorm:"<-:create;size:10;not null;index" json:"role"`
	CreatedAt     time.Time      `gorm:"autoCreateTime" json:"created_at"`
	BuyerProfile  *BuyerProfile  `gorm:"foreignKey:CredentialID;constraint:OnDelete:CASCADE" json:"buyer_profile,omitempty"`
	SellerProfile *SellerProfile `gorm:"foreignKey:CredentialID;constraint:OnDelete:CASCADE" json:"seller_profile,omitempty"`
}

func (c *Credential) BeforeCreate(tx *gorm.DB) (err error) {
	if c.ID == uuid.Nil {
		c.ID, err = uuid.NewV7()
	}
	if !c.Role.Valid() {
		return fmt.Errorf("credential role %q is not valid", c.Role)
	}
	return
}

type BuyerProfile struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	CredentialID uuid.UUID `gorm:"type:uuid;uniqueIndex;not null" json:"credential_id"`
	Name         string    `gorm:"size:100;not null" json:"name"`
	Phone        string    `gorm:"size:20;not null" json:"phone"`
	Email        string    `gorm:"size:100;uniqueIndex;not null" json:"email"`
	Address      string    `gorm:"type:text;not null" json:"address"`
	ImageURL     string    `gorm:"type:text" json:"image_url"`
	CreatedAt    time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (p *BuyerProfile) BeforeCreate(tx *gorm.DB) (err error) {
	if p.ID == uuid.Nil {
		p.ID, err = uuid.NewV7()
	}
	return
}

type SellerProfile struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	CredentialID uuid.UUID `gorm:"type:uuid;uniqueIndex;not null" json:"credential_id"`
	StoreName    string    `gorm:"size:100;not null" json:"store_name"`
	StoreDesc    string    `gorm:"type:text" json:"store_desc"`
	Phone        string    `gorm:"size:20;not null" json:"phone"`
	ImageURL     string    `gorm:"type:text" json:"image_url"`
	CreatedAt    time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (p *SellerProfile) BeforeCreate(tx *gorm.DB) (err error) {
	if p.ID == uuid.Nil {
		p.ID, err = uuid.NewV7()
	}
	return
}
