package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// CartLine captures the amount at the moment it was added.
type CartLine struct {
	ID        uuid.UUID       `gorm:"type:uuid;primaryKey" json:"id"`
	UserID    uuid.UUID       `gorm:"type:uuid;not null;index" json:"user_id"`
	ProductID uuid.UUID       `gorm:"type:uuid;not null;index" json:"product_id"`
	Product   Product         `gorm:"constraint:OnDelete:CASCADE" json:"product"`
	Quantity  int             `gorm:"not null" json:"quantity"`
	Amount    decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"amount"`
	CreatedAt time.Time       `gorm:"autoCreateTime" json:"created_at"`
}

func (l *CartLine) BeforeCreate(tx *gorm.DB) (err error) {
	if l.ID == uuid.Nil {
		l.ID, err = uuid.NewV7()
	}
	return
}

// Order is immutable once written. Product name and seller are copied so the
// order survives product deletion.
type Order struct {
	ID          uuid.UUID       `gorm:"type:uuid;primaryKey" json:"id"`
	UserID      uuid.UUID       `gorm:"type:uuid;not null;index" json:"user_id"`
	ProductID   uuid.UUID       `gorm:"type:uuid;not null;index" json:"product_id"`
	SellerID    uuid.UUID       `gorm:"type:uuid;not null;index" json:"seller_id"`
	ProductName string          `gorm:"size:200;not null" json:"product_name"`
	Quantity    int             `gorm:"not null" json:"quantity"`
	Amount      decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"amount"`
	CreatedAt   time.Time       `gorm:"autoCreateTime;index" json:"created_at"`
}

func (o *Order) BeforeCreate(tx *gorm.DB) (err error) {
	if o.ID == uuid.Nil {
		o.ID, err = uuid.NewV7()
	}
	return
}
